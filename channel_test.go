package ym2413

import "testing"

func TestSetFrequencyUpdatesDerivedFields(t *testing.T) {
	ch := newChannel()
	ch.setFrequency(0x0ABC)
	if ch.blockFnum != 0x0ABC {
		t.Errorf("blockFnum = %#x, want %#x", ch.blockFnum, 0x0ABC)
	}
	if ch.kslBase != kslTab[0x0ABC>>5] {
		t.Errorf("kslBase = %d, want %d", ch.kslBase, kslTab[0x0ABC>>5])
	}
	if ch.fc != fnumToIncrement(0x0ABC*2) {
		t.Errorf("fc = %d, want %d", ch.fc, fnumToIncrement(0x0ABC*2))
	}
}

func TestSetFrequencySameValueIsNoop(t *testing.T) {
	ch := newChannel()
	ch.setFrequency(0x0100)
	ch.mod.tll = 999
	ch.setFrequency(0x0100)
	if ch.mod.tll != 999 {
		t.Error("setFrequency with an unchanged value recomputed derived state")
	}
}

func TestSetFrequencyLowHighComposeBlockFnum(t *testing.T) {
	ch := newChannel()
	ch.setFrequencyHigh(0x05) // block=2, fnum bit8=1
	ch.setFrequencyLow(0x3C)
	want := (0x05 << 8) | 0x3C
	if ch.blockFnum != want {
		t.Errorf("blockFnum = %#x, want %#x", ch.blockFnum, want)
	}
}

func TestGetKeyCode(t *testing.T) {
	ch := newChannel()
	ch.setFrequency(0x0F00)
	if got := ch.getKeyCode(); got != 0x0F {
		t.Errorf("getKeyCode() = %#x, want %#x", got, 0x0F)
	}
}

func TestUpdateInstrumentPropagatesToBothSlots(t *testing.T) {
	ch := newChannel()
	ch.updateInstrument(instrumentROM[3]) // piano
	if ch.mod.mul != mulTab[instrumentROM[3][0]&0x0F] {
		t.Errorf("mod.mul = %d, want %d", ch.mod.mul, mulTab[instrumentROM[3][0]&0x0F])
	}
	if ch.car.mul != mulTab[instrumentROM[3][1]&0x0F] {
		t.Errorf("car.mul = %d, want %d", ch.car.mul, mulTab[instrumentROM[3][1]&0x0F])
	}
}
