package ym2413

// envelopeState is one of the six phases an operator's envelope generator
// can occupy.
type envelopeState int

const (
	egDump envelopeState = iota
	egAttack
	egDecay
	egSustain
	egRelease
	egOff
)

// Key-on sources: a slot can be keyed by the normal register-0x20 path and,
// for channels 6-8 in rhythm mode, independently by the rhythm flags. The
// slot is audible while either bit is set.
const (
	keyMain    = 1 << 0
	keyRhythm  = 1 << 1
)

// slot is one FM operator: a phase generator, an envelope generator, and
// the output stage that combines them. Two slots (mod, car) compose a
// channel. Slot methods take the owning channel as a parameter rather than
// holding a back-reference to it, since every call site already has the
// channel in hand.
type slot struct {
	phase FreqIndex
	freq  FreqIndex

	state envelopeState
	egout int
	sl    int

	ar, dr, rr int
	ksr        int
	ksl        int
	mul        uint8
	tl         int
	tll        int
	amMask     int
	vib        bool
	egSustain  bool
	fbShift    int
	waveform   int

	op1Out [2]int
	key    int

	egShAR, egShDR, egShRR, egShRS, egShDP     uint
	egSelAR, egSelDR, egSelRR, egSelRS, egSelDP []uint8
	egMaskAR, egMaskDR, egMaskRR, egMaskRS, egMaskDP uint
}

func newSlot() *slot {
	s := &slot{
		egSelAR: egInc[0],
		egSelDR: egInc[0],
		egSelRR: egInc[0],
		egSelRS: egInc[0],
		egSelDP: egInc[0],
	}
	s.setEnvelopeState(egOff)
	return s
}

func (s *slot) setEnvelopeState(state envelopeState) {
	s.state = state
}

func (s *slot) isActive() bool {
	return s.state != egOff
}

func (s *slot) setKeyOn(part int) {
	if s.key == 0 {
		// do not restart the phase generator
		s.setEnvelopeState(egDump)
	}
	s.key |= part
}

func (s *slot) setKeyOff(part int) {
	if s.key != 0 {
		s.key &^= part
		if s.key == 0 && s.isActive() {
			s.setEnvelopeState(egRelease)
		}
	}
}

func (s *slot) setKeyOnOff(part int, enabled bool) {
	if enabled {
		s.setKeyOn(part)
	} else {
		s.setKeyOff(part)
	}
}

func (s *slot) setFrequencyMultiplier(value byte) {
	s.mul = mulTab[value&0x0F]
}

func (s *slot) setKeyScaleRate(value bool) {
	if value {
		s.ksr = 0
	} else {
		s.ksr = 2
	}
}

func (s *slot) setEnvelopeSustained(value bool) {
	s.egSustain = value
}

func (s *slot) setVibrato(value bool) {
	s.vib = value
}

func (s *slot) setAmplitudeModulation(value bool) {
	if value {
		s.amMask = ^0
	} else {
		s.amMask = 0
	}
}

func (s *slot) setTotalLevel(ch *channel, value byte) {
	s.tl = int(value) << (envBits - 2 - 7)
	s.updateTotalLevel(ch)
}

func (s *slot) setKeyScaleLevel(ch *channel, value byte) {
	if value != 0 {
		s.ksl = int(3 - value)
	} else {
		s.ksl = 31
	}
	s.updateTotalLevel(ch)
}

func (s *slot) setWaveform(value byte) {
	s.waveform = int(value)
}

func (s *slot) setFeedbackShift(value byte) {
	if value != 0 {
		s.fbShift = 8 - int(value)
	} else {
		s.fbShift = 0
	}
}

func effectiveRate(base byte) int {
	if base == 0 {
		return 0
	}
	return 16 + (int(base) << 2)
}

func (s *slot) setAttackRate(ch *channel, value byte) {
	kcodeScaled := ch.getKeyCode() >> s.ksr
	s.ar = effectiveRate(value)
	s.updateAttackRate(kcodeScaled)
}

func (s *slot) setDecayRate(ch *channel, value byte) {
	kcodeScaled := ch.getKeyCode() >> s.ksr
	s.dr = effectiveRate(value)
	s.updateDecayRate(kcodeScaled)
}

func (s *slot) setReleaseRate(ch *channel, value byte) {
	kcodeScaled := ch.getKeyCode() >> s.ksr
	s.rr = effectiveRate(value)
	s.updateReleaseRate(kcodeScaled)
}

func (s *slot) setSustainLevel(value byte) {
	s.sl = slTab[value&0x0F]
}

func (s *slot) updateTotalLevel(ch *channel) {
	s.tll = s.tl + (ch.getKeyScaleLevelBase() >> uint(s.ksl))
}

func (s *slot) updateAttackRate(kcodeScaled int) {
	if s.ar+kcodeScaled < 16+62 {
		s.egShAR = uint(egRateShift[s.ar+kcodeScaled])
		s.egSelAR = egInc[egRateSelect[s.ar+kcodeScaled]]
	} else {
		s.egShAR = 0
		s.egSelAR = egInc[13]
	}
	s.egMaskAR = (1 << s.egShAR) - 1
}

func (s *slot) updateDecayRate(kcodeScaled int) {
	s.egShDR = uint(egRateShift[s.dr+kcodeScaled])
	s.egSelDR = egInc[egRateSelect[s.dr+kcodeScaled]]
	s.egMaskDR = (1 << s.egShDR) - 1
}

func (s *slot) updateReleaseRate(kcodeScaled int) {
	s.egShRR = uint(egRateShift[s.rr+kcodeScaled])
	s.egSelRR = egInc[egRateSelect[s.rr+kcodeScaled]]
	s.egMaskRR = (1 << s.egShRR) - 1
}

func (s *slot) updateFrequency(ch *channel) {
	s.updateTotalLevel(ch)
	s.updateGenerators(ch)
}

func (s *slot) resetOperators() {
	s.waveform = 0
	s.setEnvelopeState(egOff)
	s.egout = maxAttIndex
}

func (s *slot) updateGenerators(ch *channel) {
	s.freq = ch.getFrequencyIncrement().mulInt(int(s.mul))

	kcodeScaled := ch.getKeyCode() >> s.ksr
	s.updateAttackRate(kcodeScaled)
	s.updateDecayRate(kcodeScaled)
	s.updateReleaseRate(kcodeScaled)

	rs := 16 + (7 << 2)
	if ch.isSustained() {
		rs = 16 + (5 << 2)
	}
	s.egShRS = uint(egRateShift[rs+kcodeScaled])
	s.egSelRS = egInc[egRateSelect[rs+kcodeScaled]]
	s.egMaskRS = (1 << s.egShRS) - 1

	dp := 16 + (13 << 2)
	s.egShDP = uint(egRateShift[dp+kcodeScaled])
	s.egSelDP = egInc[egRateSelect[dp+kcodeScaled]]
	s.egMaskDP = (1 << s.egShDP) - 1
}

// calcEnvelope advances this slot's envelope generator by one sample and
// returns the resulting attenuation. carrier excludes modulators of
// melodic channels from the RELEASE phase (their release is driven only
// by the key-off transition, not by per-sample decay).
func (s *slot) calcEnvelope(ch *channel, egCnt uint, carrier bool) int {
	switch s.state {
	case egDump:
		if egCnt&s.egMaskDP == 0 {
			s.egout += int(s.egSelDP[(egCnt>>s.egShDP)&7])
			if s.egout >= maxAttIndex {
				s.egout = maxAttIndex
				s.setEnvelopeState(egAttack)
				s.phase = FreqIndex(0)
			}
		}
	case egAttack:
		if egCnt&s.egMaskAR == 0 {
			s.egout += (^s.egout * int(s.egSelAR[(egCnt>>s.egShAR)&7])) >> 2
			if s.egout <= minAttIndex {
				s.egout = minAttIndex
				s.setEnvelopeState(egDecay)
			}
		}
	case egDecay:
		if egCnt&s.egMaskDR == 0 {
			s.egout += int(s.egSelDR[(egCnt>>s.egShDR)&7])
			if s.egout >= s.sl {
				s.setEnvelopeState(egSustain)
			}
		}
	case egSustain:
		if s.egSustain {
			// non-percussive: hold
		} else if egCnt&s.egMaskRR == 0 {
			s.egout += int(s.egSelRR[(egCnt>>s.egShRR)&7])
			if s.egout >= maxAttIndex {
				s.egout = maxAttIndex
			}
		}
	case egRelease:
		if carrier {
			sustain := !s.egSustain || ch.isSustained()
			mask, shift, sel := s.egMaskRR, s.egShRR, s.egSelRR
			if sustain {
				mask, shift, sel = s.egMaskRS, s.egShRS, s.egSelRS
			}
			if egCnt&mask == 0 {
				s.egout += int(sel[(egCnt>>shift)&7])
				if s.egout >= maxAttIndex {
					s.egout = maxAttIndex
					s.setEnvelopeState(egOff)
				}
			}
		}
	case egOff:
	}
	return s.egout
}

// calcPhase advances this slot's phase generator by one sample, applying
// vibrato (LFO-PM) when enabled, and returns the new phase's integer part.
func (s *slot) calcPhase(ch *channel, lfoPM int) int {
	if s.vib {
		offset := int(lfoPMTable[(ch.blockFnum&0x01FF)>>6][lfoPM])
		s.phase += fnumToIncrement(ch.blockFnum*2 + offset).mulInt(int(s.mul))
	} else {
		s.phase += s.freq
	}
	return s.phase.toInt()
}

// calcOutput advances the envelope, combines it with total level and
// amplitude modulation, looks up the sine table at phase, and returns the
// signed linear sample (0 when the combined attenuation overflows the
// linear table, i.e. the operator is effectively silent for this sample).
func (s *slot) calcOutput(ch *channel, egCnt uint, carrier bool, lfoAM int, phase int) int {
	egout := s.calcEnvelope(ch, egCnt, carrier)
	env := (s.tll + egout + (lfoAM & s.amMask)) << 5
	p := env + int(sinTab[s.waveform*sinLen+(phase&sinMask)])
	if p < tlTabLen {
		return tlTab[p]
	}
	return 0
}

// calcSlotMod computes this slot's output for use as a modulator: feedback
// (when enabled) adds the sum of the last two outputs, shifted right by
// fbShift, to the phase,
// then the two-sample history is shifted and the previous sample (doubled
// into phase units) is returned to the carrier.
func (s *slot) calcSlotMod(ch *channel, egCnt uint, carrier bool, lfoPM, lfoAM int) int {
	phase := s.calcPhase(ch, lfoPM)
	if s.fbShift != 0 {
		phase += (s.op1Out[0] + s.op1Out[1]) >> uint(s.fbShift)
	}
	s.op1Out[0] = s.op1Out[1]
	s.op1Out[1] = s.calcOutput(ch, egCnt, carrier, lfoAM, phase)
	return s.op1Out[0] << 1
}
