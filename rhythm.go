package ym2413

// setRhythmMode switches channels 6-8 between normal melodic voices and
// the five rhythm instruments. Entering rhythm mode loads the rhythm
// presets; leaving it reloads whatever melodic instrument each channel's
// instvol_r nibble names and releases every rhythm-sourced key bit.
func (c *Chip) setRhythmMode(rhythm bool) {
	if c.rhythm == rhythm {
		return
	}
	c.rhythm = rhythm

	ch6, ch7, ch8 := c.channels[6], c.channels[7], c.channels[8]
	if rhythm {
		ch6.updateInstrument(c.instTab[16])
		ch7.updateInstrument(c.instTab[17])
		ch7.mod.setTotalLevel(ch7, (ch7.instVolR>>4)<<2) // high hat
		ch8.updateInstrument(c.instTab[18])
		ch8.mod.setTotalLevel(ch8, (ch8.instVolR>>4)<<2) // tom-tom
	} else {
		ch6.updateInstrument(c.instTab[ch6.instVolR>>4])
		ch7.updateInstrument(c.instTab[ch7.instVolR>>4])
		ch8.updateInstrument(c.instTab[ch8.instVolR>>4])

		ch6.mod.setKeyOff(keyRhythm)
		ch6.car.setKeyOff(keyRhythm)
		ch7.mod.setKeyOff(keyRhythm)
		ch7.car.setKeyOff(keyRhythm)
		ch8.mod.setKeyOff(keyRhythm)
		ch8.car.setKeyOff(keyRhythm)
	}
}

// setRhythmFlags decodes register 0x0E: bit 5 enables rhythm mode, and
// while enabled bits 4/3/2/1/0 key on/off bass drum, snare drum, tom-tom,
// top cymbal and high hat respectively.
func (c *Chip) setRhythmFlags(flags byte) {
	c.setRhythmMode(flags&0x20 != 0)
	if !c.rhythm {
		return
	}

	ch6, ch7, ch8 := c.channels[6], c.channels[7], c.channels[8]
	ch6.mod.setKeyOnOff(keyRhythm, flags&0x10 != 0) // BD
	ch6.car.setKeyOnOff(keyRhythm, flags&0x10 != 0)
	ch7.mod.setKeyOnOff(keyRhythm, flags&0x01 != 0) // HH
	ch7.car.setKeyOnOff(keyRhythm, flags&0x08 != 0) // SD
	ch8.mod.setKeyOnOff(keyRhythm, flags&0x04 != 0) // TOM
	ch8.car.setKeyOnOff(keyRhythm, flags&0x02 != 0) // TC
}

// genPhaseHighHat derives the non-standard phase fed to channel 7's
// modulator when it's acting as the high-hat, by gating a bit pattern
// from channel 7's modulator phase (or channel 8's carrier phase)
// with the current noise bit.
func genPhaseHighHat(phaseM7, phaseC8 int, noiseBit uint32) int {
	var hi bool
	if phaseC8&0x28 != 0 {
		hi = true
	} else {
		bit7 := phaseM7&0x80 != 0
		bit3 := phaseM7&0x08 != 0
		bit2 := phaseM7&0x04 != 0
		hi = (bit2 != bit7) || bit3
	}
	if noiseBit&1 != 0 {
		if hi {
			return 0x200 | 0xD0
		}
		return 0xD0 >> 2
	}
	if hi {
		return 0x200 | (0xD0 >> 2)
	}
	return 0xD0
}

// genPhaseSnare derives the phase fed to channel 7's carrier when acting
// as the snare drum: channel 7's modulator phase bit 8, XORed with noise.
func genPhaseSnare(phaseM7 int, noiseBit uint32) int {
	return ((phaseM7 & 0x100) + 0x100) ^ int((noiseBit&1)<<8)
}

// genPhaseCymbal derives the phase fed to channel 8's carrier when acting
// as the top cymbal, gated the same way as the high hat but without the
// noise dependency.
func genPhaseCymbal(phaseM7, phaseC8 int) int {
	if phaseC8&0x28 != 0 {
		return 0x300
	}
	bit7 := phaseM7&0x80 != 0
	bit3 := phaseM7&0x08 != 0
	bit2 := phaseM7&0x04 != 0
	if (bit2 != bit7) || bit3 {
		return 0x300
	}
	return 0x100
}

// generateRhythm emits the five rhythm voices for one sample into
// bufs[9:14] (bass drum, snare drum, top cymbal, high hat, tom-tom).
func (c *Chip) generateRhythm(bufs [][]int32, i int, activeBits uint32, lfoPM, lfoAM int) {
	ch6, ch7, ch8 := c.channels[6], c.channels[7], c.channels[8]

	fm := ch6.mod.calcSlotMod(ch6, c.egCnt, true, lfoPM, lfoAM)
	if activeBits&(1<<6) != 0 {
		bufs[9][i] += 2 * int32(ch6.calcOutput(c.egCnt, lfoPM, lfoAM, fm))
	}

	ch7.car.calcPhase(ch7, lfoPM)
	phaseM7 := ch7.mod.calcPhase(ch7, lfoPM)
	phaseC8 := ch8.car.calcPhase(ch8, lfoPM)
	phaseM8 := ch8.mod.calcPhase(ch8, lfoPM)

	noiseBit := c.noise.bit()

	if activeBits&(1<<7) != 0 {
		bufs[10][i] += 2 * int32(ch7.car.calcOutput(ch7, c.egCnt, true, lfoAM, genPhaseSnare(phaseM7, noiseBit)))
	}
	if activeBits&(1<<8) != 0 {
		bufs[11][i] += 2 * int32(ch8.car.calcOutput(ch8, c.egCnt, true, lfoAM, genPhaseCymbal(phaseM7, phaseC8)))
	}
	if activeBits&(1<<(7+9)) != 0 {
		bufs[12][i] += 2 * int32(ch7.mod.calcOutput(ch7, c.egCnt, true, lfoAM, genPhaseHighHat(phaseM7, phaseC8, noiseBit)))
	}
	if activeBits&(1<<(8+9)) != 0 {
		bufs[13][i] += 2 * int32(ch8.mod.calcOutput(ch8, c.egCnt, true, lfoAM, phaseM8))
	}
}
