package ym2413

import "math"

// Envelope attenuation resolution: 10 bits, of which the top 8 carry the
// audible range. One unit is ENV_STEP dB.
const (
	envBits      = 10
	envStep      = 128.0 / float64(int(1)<<envBits)
	maxAttIndex  = (1 << (envBits - 2)) - 1 // 255
	minAttIndex  = 0
	sinBits      = 10
	sinLen       = 1 << sinBits
	sinMask      = sinLen - 1
	tlResLen     = 256 // 8-bit addressing, real chip
	tlTabLen     = 11 * 2 * tlResLen
	lfoAMEntries = 210
)

// tlTab converts a combined attenuation+sine index into a signed linear
// sample. Built once from the same log/pow construction as the real chip's
// table: 11 successive right-shifted rows, with odd indices negated to
// pair with the sine table's sign bit.
var tlTab [tlTabLen]int

// sinTab holds two waveforms in attenuation-decibel units: waveform 0 is
// a full sine, waveform 1 is the positive half followed by a silent half
// (half-rectified).
var sinTab [sinLen * 2]uint

// kslTab is the key-scale-level table, indexed by block_fnum>>5 (7 bits):
// 3dB/octave values expressed in the envelope's 0.1875dB units.
var kslTab [8 * 16]int

// slTab maps a 4-bit sustain-level register value to an attenuation in
// envelope units, 3dB per step.
var slTab [16]int

// mulTab maps a 4-bit frequency-multiplier register value to a doubled
// multiplier (half-integer multiples are represented as integers).
var mulTab [16]uint8

// egRateSelect picks, for each of the 96 combined (rate, key-scale) slots,
// which row of egInc supplies the per-cycle increment pattern. Rates 13-15
// select the uniform rows 4-12; the 16 infinite slots select row 14.
var egRateSelect [16 + 64 + 16]uint8

// egRateShift gives, for the same 96 slots, how many low bits of eg_cnt to
// ignore before consulting egInc (i.e. how rarely this rate updates).
var egRateShift [16 + 64 + 16]uint8

// egInc holds the 8-step per-cycle increment patterns. Rows 0-3 are the
// four "normal" rate patterns (average increment 4/8 .. 7/8 per cycle);
// rows 4-7, 8-11 are the uniform rate-13/rate-14 patterns; row 12 is the
// rate-15 uniform increment-by-4; row 13 is the attack-rate overflow
// pattern (increment by 8, used when ar+kcodeScaled reaches rate 62 or more);
// row 14 is the "infinity" pattern used by DUMP/infinite rates (no change).
var egInc = [15][]uint8{
	{0, 1, 0, 1, 0, 1, 0, 1},
	{0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 1},

	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 2, 1, 1, 1, 2},
	{1, 2, 1, 2, 1, 2, 1, 2},
	{1, 2, 2, 2, 1, 2, 2, 2},

	{2, 2, 2, 2, 2, 2, 2, 2},
	{2, 2, 2, 4, 2, 2, 2, 4},
	{2, 4, 2, 4, 2, 4, 2, 4},
	{2, 4, 4, 4, 2, 4, 4, 4},

	{4, 4, 4, 4, 4, 4, 4, 4},
	{8, 8, 8, 8, 8, 8, 8, 8},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

// lfoAMTable is the amplitude-modulation triangle waveform: 27 output
// levels spread over 210 entries, each entry held for 64 consecutive
// samples (13,440 samples/period).
var lfoAMTable = [lfoAMEntries]uint8{
	0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1,
	2, 2, 2, 2,
	3, 3, 3, 3,
	4, 4, 4, 4,
	5, 5, 5, 5,
	6, 6, 6, 6,
	7, 7, 7, 7,
	8, 8, 8, 8,
	9, 9, 9, 9,
	10, 10, 10, 10,
	11, 11, 11, 11,
	12, 12, 12, 12,
	13, 13, 13, 13,
	14, 14, 14, 14,
	15, 15, 15, 15,
	16, 16, 16, 16,
	17, 17, 17, 17,
	18, 18, 18, 18,
	19, 19, 19, 19,
	20, 20, 20, 20,
	21, 21, 21, 21,
	22, 22, 22, 22,
	23, 23, 23, 23,
	24, 24, 24, 24,
	25, 25, 25, 25,
	26, 26, 26,
	25, 25, 25, 25,
	24, 24, 24, 24,
	23, 23, 23, 23,
	22, 22, 22, 22,
	21, 21, 21, 21,
	20, 20, 20, 20,
	19, 19, 19, 19,
	18, 18, 18, 18,
	17, 17, 17, 17,
	16, 16, 16, 16,
	15, 15, 15, 15,
	14, 14, 14, 14,
	13, 13, 13, 13,
	12, 12, 12, 12,
	11, 11, 11, 11,
	10, 10, 10, 10,
	9, 9, 9, 9,
	8, 8, 8, 8,
	7, 7, 7, 7,
	6, 6, 6, 6,
	5, 5, 5, 5,
	4, 4, 4, 4,
	3, 3, 3, 3,
	2, 2, 2, 2,
	1, 1, 1, 1,
}

// lfoPMTable is the vibrato staircase: 8 block_fnum-derived depths, each
// with 8 signed offsets added to block_fnum*2 before the phase increment
// is derived.
var lfoPMTable = [8][8]int8{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 0, 0, -1, 0, 0, 0},
	{2, 1, 0, -1, -2, -1, 0, 1},
	{3, 1, 0, -1, -3, -1, 0, 1},
	{4, 2, 0, -2, -4, -2, 0, 2},
	{5, 2, 0, -2, -5, -2, 0, 2},
	{6, 3, 0, -3, -6, -3, 0, 3},
	{7, 3, 0, -3, -7, -3, 0, 3},
}

// instrumentROM holds the 19 ROM instrument presets: index 0 is the
// user-programmable instrument's reset value (silence), 1-15 are the
// melodic presets (violin through electric guitar), 16-18 are the three
// rhythm presets (bass drum; high-hat/snare; tom-tom/top-cymbal) — each
// 8 bytes mirror registers 0x00-0x07 for a single voice.
var instrumentROM = [19][8]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // user instrument
	{0x61, 0x61, 0x1e, 0x17, 0xf0, 0x7f, 0x00, 0x17}, // violin
	{0x13, 0x41, 0x16, 0x0e, 0xfd, 0xf4, 0x23, 0x23}, // guitar
	{0x03, 0x01, 0x9a, 0x04, 0xf3, 0xf3, 0x13, 0xf3}, // piano
	{0x11, 0x61, 0x0e, 0x07, 0xfa, 0x64, 0x70, 0x17}, // flute
	{0x22, 0x21, 0x1e, 0x06, 0xf0, 0x76, 0x00, 0x28}, // clarinet
	{0x21, 0x22, 0x16, 0x05, 0xf0, 0x71, 0x00, 0x18}, // oboe
	{0x21, 0x61, 0x1d, 0x07, 0x82, 0x80, 0x17, 0x17}, // trumpet
	{0x23, 0x21, 0x2d, 0x16, 0x90, 0x90, 0x00, 0x07}, // organ
	{0x21, 0x21, 0x1b, 0x06, 0x64, 0x65, 0x10, 0x17}, // horn
	{0x21, 0x21, 0x0b, 0x1a, 0x85, 0xa0, 0x70, 0x07}, // synthesizer
	{0x23, 0x01, 0x83, 0x10, 0xff, 0xb4, 0x10, 0xf4}, // harpsichord
	{0x97, 0xc1, 0x20, 0x07, 0xff, 0xf4, 0x22, 0x22}, // vibraphone
	{0x61, 0x00, 0x0c, 0x05, 0xc2, 0xf6, 0x40, 0x44}, // synth bass
	{0x01, 0x01, 0x56, 0x03, 0x94, 0xc2, 0x03, 0x12}, // acoustic bass
	{0x21, 0x01, 0x89, 0x03, 0xf1, 0xe4, 0xf0, 0x23}, // electric guitar
	{0x01, 0x01, 0x16, 0x00, 0xfd, 0xf8, 0x2f, 0x6d}, // bass drum
	{0x01, 0x01, 0x00, 0x00, 0xd8, 0xd8, 0xf9, 0xf8}, // high hat / snare drum
	{0x05, 0x01, 0x00, 0x00, 0xf8, 0xba, 0x49, 0x55}, // tom-tom / top cymbal
}

func init() {
	initKeyScaleLevelTable()
	initSustainLevelTable()
	initRateTables()
	initMultiplierTable()
	initLinearTable()
	initSineTable()
}

// initKeyScaleLevelTable builds the 3dB/octave key-scale-level table,
// expressed in 0.1875dB units (the weight of envelope bit 0).
func initKeyScaleLevelTable() {
	const octave = 16
	steps := [octave * 8]float64{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0.75, 1.125, 1.5, 1.875, 2.25, 2.625, 3.0,
		0, 0, 0, 0, 0, 1.125, 1.875, 2.625, 3.0, 3.75, 4.125, 4.5, 4.875, 5.25, 5.625, 6.0,
		0, 0, 0, 1.875, 3.0, 4.125, 4.875, 5.625, 6.0, 6.75, 7.125, 7.5, 7.875, 8.25, 8.625, 9.0,
		0, 0, 3.0, 4.875, 6.0, 7.125, 7.875, 8.625, 9.0, 9.75, 10.125, 10.5, 10.875, 11.25, 11.625, 12.0,
		0, 3.0, 6.0, 7.875, 9.0, 10.125, 10.875, 11.625, 12.0, 12.75, 13.125, 13.5, 13.875, 14.25, 14.625, 15.0,
		0, 6.0, 9.0, 10.875, 12.0, 13.125, 13.875, 14.625, 15.0, 15.75, 16.125, 16.5, 16.875, 17.25, 17.625, 18.0,
		0, 9.0, 12.0, 13.875, 15.0, 16.125, 16.875, 17.625, 18.0, 18.75, 19.125, 19.5, 19.875, 20.25, 20.625, 21.0,
	}
	for i, db := range steps {
		kslTab[i] = int(db / 0.1875)
	}
}

// initSustainLevelTable builds the 16-step sustain-level table (3dB/step)
// in envelope units.
func initSustainLevelTable() {
	for i := 0; i < 16; i++ {
		slTab[i] = int(float64(i*3) / envStep)
	}
}

// initRateTables builds egRateSelect and egRateShift for the 16 infinite
// rates, the 64 real rates (00-15, each with 4 key-scale sub-steps), and
// the 16 dummy rates that alias rate 15 step 3.
func initRateTables() {
	for i := 0; i < 16; i++ {
		egRateSelect[i] = 14
		egRateShift[i] = 0
	}
	shiftForRate := [13]uint8{13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	for rate := 0; rate < 13; rate++ {
		for sub := 0; sub < 4; sub++ {
			egRateSelect[16+rate*4+sub] = uint8(sub)
			egRateShift[16+rate*4+sub] = shiftForRate[rate]
		}
	}
	for sub := 0; sub < 4; sub++ {
		egRateSelect[16+13*4+sub] = uint8(4 + sub)
		egRateShift[16+13*4+sub] = 0
	}
	for sub := 0; sub < 4; sub++ {
		egRateSelect[16+14*4+sub] = uint8(8 + sub)
		egRateShift[16+14*4+sub] = 0
	}
	for sub := 0; sub < 4; sub++ {
		egRateSelect[16+15*4+sub] = 12
		egRateShift[16+15*4+sub] = 0
	}
	for i := 0; i < 16; i++ {
		egRateSelect[16+64+i] = 12
		egRateShift[16+64+i] = 0
	}
}

// initMultiplierTable builds the doubled frequency-multiplier table; a
// register value of 0 means a multiplier of 0.5.
func initMultiplierTable() {
	steps := [16]float64{0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 12, 12, 15, 15}
	for i, m := range steps {
		mulTab[i] = uint8(2 * m)
	}
}

// initLinearTable builds the attenuation->linear-sample lookup. Row x
// holds floor(2^16 / 2^((x+1)*envStep/4/8)) rounded into 11 bits, then
// stored at 11 successive right shifts with a negated odd counterpart.
func initLinearTable() {
	for x := 0; x < tlResLen; x++ {
		m := math.Floor(float64(1<<16) / math.Pow(2, float64(x+1)*(envStep/4.0)/8.0))
		n := int(m)
		n >>= 4
		n = (n >> 1) + (n & 1)
		for i := 0; i < 11; i++ {
			tlTab[x*2+0+i*2*tlResLen] = n >> i
			tlTab[x*2+1+i*2*tlResLen] = -(n >> i)
		}
	}
}

// initSineTable builds both waveforms in attenuation-decibel units:
// waveform 0 is a full sine (with a sign bit folded into the low bit of
// the second half), waveform 1 copies the positive half of waveform 0 and
// fills its second half with tlTabLen, which calcOutput maps to silence.
func initSineTable() {
	full := sinTab[0*sinLen : 1*sinLen]
	half := sinTab[1*sinLen : 2*sinLen]
	for i := 0; i < sinLen/4; i++ {
		m := math.Sin(float64(2*i+1) * math.Pi / float64(sinLen))
		n := int(math.Round(math.Log(m) * (-256.0 / math.Log(2.0))))
		full[i] = uint(2 * n)
		half[i] = uint(2 * n)
	}
	for i := 0; i < sinLen/4; i++ {
		full[sinLen/4+i] = full[sinLen/4-1-i]
		half[sinLen/4+i] = full[sinLen/4-1-i]
	}
	for i := 0; i < sinLen/2; i++ {
		full[sinLen/2+i] = full[i] | 1
		half[sinLen/2+i] = tlTabLen
	}
}
