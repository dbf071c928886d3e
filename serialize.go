package ym2413

import (
	"encoding/binary"
	"errors"
)

const (
	serializeVersion = 1

	// Per-slot: phase(4) + tl(4) + egout(4) + sl(4) + state(1) +
	// op1Out[2](4+4) + egSustain(1) + fbShift(4) + key(1) + ar(4) + dr(4) +
	// rr(4) + ksr(4) + ksl(4) + mul(1) + amEnabled(1) + vib(1) + waveform(1) = 55
	slotSerializeSize = 55
	// Per-channel (non-slot): instVolR(1) + blockFnum(4) + fc(4) +
	// kslBase(4) + sus(1) = 14
	channelSerializeSize = 14
	// Global: egCnt(8) + noiseRng(4) + lfoAMCnt(4) + lfoPMCnt(4) + rhythm(1) = 21
	globalSerializeSize = 21

	// SerializeSize is the total byte length a Chip's state occupies:
	// version(1) + registers(64) + user instrument(8) +
	// 9 channels * (2 slots * slotSerializeSize + channelSerializeSize) + global
	SerializeSize = 1 + 0x40 + 8 + numChannels*(2*slotSerializeSize+channelSerializeSize) + globalSerializeSize
)

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Serialize writes the chip's full state to buf, which must be at least
// SerializeSize bytes long.
func (c *Chip) Serialize(buf []byte) error {
	if len(buf) < SerializeSize {
		return errors.New("ym2413: serialize buffer too small")
	}

	offset := 0
	buf[offset] = serializeVersion
	offset++

	copy(buf[offset:offset+0x40], c.reg[:])
	offset += 0x40

	copy(buf[offset:offset+8], c.instTab[0][:])
	offset += 8

	for _, ch := range c.channels {
		offset = serializeSlot(ch.mod, buf, offset)
		offset = serializeSlot(ch.car, buf, offset)
		offset = serializeChannel(ch, buf, offset)
	}

	binary.LittleEndian.PutUint64(buf[offset:], uint64(c.egCnt))
	offset += 8
	binary.LittleEndian.PutUint32(buf[offset:], c.noise.rng)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(c.lfo.amCnt))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(c.lfo.pmCnt))
	offset += 4
	buf[offset] = boolByte(c.rhythm)
	offset++

	return nil
}

func serializeSlot(s *slot, buf []byte, offset int) int {
	binary.LittleEndian.PutUint32(buf[offset:], uint32(s.phase))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.tl)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.egout)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.sl)))
	offset += 4
	buf[offset] = byte(s.state)
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.op1Out[0])))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.op1Out[1])))
	offset += 4
	buf[offset] = boolByte(s.egSustain)
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.fbShift)))
	offset += 4
	buf[offset] = byte(s.key)
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.ar)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.dr)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.rr)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.ksr)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(s.ksl)))
	offset += 4
	buf[offset] = s.mul
	offset++
	buf[offset] = boolByte(s.amMask != 0)
	offset++
	buf[offset] = boolByte(s.vib)
	offset++
	buf[offset] = byte(s.waveform)
	offset++
	return offset
}

func serializeChannel(ch *channel, buf []byte, offset int) int {
	buf[offset] = ch.instVolR
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(ch.blockFnum)))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(ch.fc))
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(ch.kslBase)))
	offset += 4
	buf[offset] = boolByte(ch.sus)
	offset++
	return offset
}

// Deserialize restores the chip's state from buf, which must contain at
// least SerializeSize bytes as produced by Serialize. Fields derived from
// persisted state (TLL, freq, the envelope-rate shift/select/mask
// triples, idleSamples) are recomputed rather than read.
func (c *Chip) Deserialize(buf []byte) error {
	if len(buf) < SerializeSize {
		return errors.New("ym2413: deserialize buffer too small")
	}

	offset := 0
	if buf[offset] != serializeVersion {
		return errors.New("ym2413: unsupported serialize version")
	}
	offset++

	copy(c.reg[:], buf[offset:offset+0x40])
	offset += 0x40

	copy(c.instTab[0][:], buf[offset:offset+8])
	offset += 8

	for _, ch := range c.channels {
		offset = deserializeSlot(ch.mod, buf, offset)
		offset = deserializeSlot(ch.car, buf, offset)
		offset = deserializeChannel(ch, buf, offset)
	}

	c.egCnt = uint(binary.LittleEndian.Uint64(buf[offset:]))
	offset += 8
	c.noise.rng = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	c.lfo.amCnt = LFOAMIndex(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	c.lfo.pmCnt = LFOPMIndex(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	c.rhythm = buf[offset] != 0
	offset++

	c.idleSamples = 0
	for _, ch := range c.channels {
		ch.mod.updateFrequency(ch)
		ch.car.updateFrequency(ch)
	}

	return nil
}

func deserializeSlot(s *slot, buf []byte, offset int) int {
	s.phase = FreqIndex(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	s.tl = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.egout = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.sl = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.state = envelopeState(buf[offset])
	offset++
	s.op1Out[0] = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.op1Out[1] = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.egSustain = buf[offset] != 0
	offset++
	s.fbShift = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.key = int(buf[offset])
	offset++
	s.ar = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.dr = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.rr = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.ksr = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.ksl = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	s.mul = buf[offset]
	offset++
	if buf[offset] != 0 {
		s.amMask = ^0
	} else {
		s.amMask = 0
	}
	offset++
	s.vib = buf[offset] != 0
	offset++
	s.waveform = int(buf[offset])
	offset++
	return offset
}

func deserializeChannel(ch *channel, buf []byte, offset int) int {
	ch.instVolR = buf[offset]
	offset++
	ch.blockFnum = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	ch.fc = FreqIndex(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4
	ch.kslBase = int(int32(binary.LittleEndian.Uint32(buf[offset:])))
	offset += 4
	ch.sus = buf[offset] != 0
	offset++
	return offset
}
