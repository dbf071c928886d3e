package ym2413

// FreqIndex is a 16.16 fixed-point phase accumulator / phase increment.
// The hardware counter this reproduces runs in 10.10; widening to 16.16
// gives headroom without changing the represented magnitude, and relies
// on uint32 wraparound to reproduce the finite-width hardware counter.
type FreqIndex uint32

const freqFracBits = 16

// fnumToIncrement derives a phase increment from a doubled block_fnum
// (bits 0-9 hold fnum<<1, optionally perturbed by a vibrato offset; bits
// 10-12 hold the block). The low 10 bits are widened from a 10.10 to this
// type's 16.16 format by zero-padding the extra fractional bits, which
// preserves the real value while adding headroom; the result is then
// right-shifted by (11-block), matching the original fixed-point divide.
func fnumToIncrement(blockFnumDoubled int) FreqIndex {
	block := uint((blockFnumDoubled & 0x1C00) >> 10)
	raw10 := blockFnumDoubled & 0x03FF
	return FreqIndex(raw10<<(freqFracBits-10)) >> (11 - block)
}

// toInt returns the integer part of the fixed-point value.
func (f FreqIndex) toInt() int {
	return int(f >> freqFracBits)
}

// mulInt scales a FreqIndex by an integer multiplier (phase increments are
// always scaled this way, never by another fixed-point value).
func (f FreqIndex) mulInt(n int) FreqIndex {
	return FreqIndex(uint32(f) * uint32(n))
}

// LFOAMIndex is a fixed-point counter for the amplitude-modulation LFO.
// 6 fractional bits: one AM table step takes 64 samples to advance.
type LFOAMIndex uint32

const lfoAMFracBits = 6

func (l LFOAMIndex) addQuantum() LFOAMIndex { return l + 1 }
func (l LFOAMIndex) toInt() int             { return int(l >> lfoAMFracBits) }

// LFOPMIndex is a fixed-point counter for the phase-modulation (vibrato)
// LFO. 10 fractional bits: one PM phase takes 1024 samples to advance.
type LFOPMIndex uint32

const lfoPMFracBits = 10

func (l LFOPMIndex) addQuantum() LFOPMIndex { return l + 1 }
func (l LFOPMIndex) toInt() int             { return int(l >> lfoPMFracBits) }
