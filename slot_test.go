package ym2413

import "testing"

func TestNewSlotStartsOff(t *testing.T) {
	s := newSlot()
	if s.isActive() {
		t.Error("newSlot() should start inactive (state OFF)")
	}
}

func TestSetKeyOnEntersDump(t *testing.T) {
	s := newSlot()
	s.setKeyOn(keyMain)
	if s.state != egDump {
		t.Errorf("state = %v after key-on from idle, want egDump", s.state)
	}
	if s.key&keyMain == 0 {
		t.Error("keyMain bit not set after setKeyOn(keyMain)")
	}
}

func TestSetKeyOnTwiceDoesNotReenterDump(t *testing.T) {
	s := newSlot()
	s.setKeyOn(keyMain)
	s.state = egSustain
	s.setKeyOn(keyRhythm)
	if s.state != egSustain {
		t.Errorf("state = %v after second key-on while already keyed, want unchanged egSustain", s.state)
	}
	if s.key != keyMain|keyRhythm {
		t.Errorf("key = %#x, want both bits set", s.key)
	}
}

func TestSetKeyOffEntersReleaseOnlyWhenActive(t *testing.T) {
	s := newSlot()
	s.setKeyOn(keyMain)
	s.state = egSustain
	s.setKeyOff(keyMain)
	if s.state != egRelease {
		t.Errorf("state = %v after key-off from sustain, want egRelease", s.state)
	}
	if s.key != 0 {
		t.Errorf("key = %#x after key-off, want 0", s.key)
	}
}

func TestSetKeyOffPartialDoesNotRelease(t *testing.T) {
	s := newSlot()
	s.setKeyOn(keyMain)
	s.setKeyOn(keyRhythm)
	s.state = egSustain
	s.setKeyOff(keyMain)
	if s.state != egSustain {
		t.Errorf("state = %v after partial key-off, want still egSustain", s.state)
	}
}

func TestEffectiveRateZeroIsZero(t *testing.T) {
	if effectiveRate(0) != 0 {
		t.Errorf("effectiveRate(0) = %d, want 0", effectiveRate(0))
	}
	if got := effectiveRate(1); got != 20 {
		t.Errorf("effectiveRate(1) = %d, want 20", got)
	}
}

func TestFeedbackShift(t *testing.T) {
	s := newSlot()
	s.setFeedbackShift(0)
	if s.fbShift != 0 {
		t.Errorf("fbShift = %d after setFeedbackShift(0), want 0", s.fbShift)
	}
	s.setFeedbackShift(7)
	if s.fbShift != 1 {
		t.Errorf("fbShift = %d after setFeedbackShift(7), want 1", s.fbShift)
	}
}

func TestAmplitudeModulationMask(t *testing.T) {
	s := newSlot()
	s.setAmplitudeModulation(true)
	if s.amMask == 0 {
		t.Error("amMask = 0 after enabling AM, want all-ones")
	}
	s.setAmplitudeModulation(false)
	if s.amMask != 0 {
		t.Errorf("amMask = %#x after disabling AM, want 0", s.amMask)
	}
}

func TestResetOperatorsClampsToMaxAttenuation(t *testing.T) {
	s := newSlot()
	s.egout = 10
	s.state = egSustain
	s.resetOperators()
	if s.egout != maxAttIndex {
		t.Errorf("egout = %d after resetOperators, want %d", s.egout, maxAttIndex)
	}
	if s.isActive() {
		t.Error("slot active after resetOperators")
	}
}

func TestCalcEnvelopeClampRange(t *testing.T) {
	ch := newChannel()
	s := newSlot()
	s.setAttackRate(ch, 15)
	s.setDecayRate(ch, 15)
	s.setReleaseRate(ch, 15)
	s.setSustainLevel(8)
	s.setKeyOn(keyMain)
	for i := uint(0); i < 10000; i++ {
		out := s.calcEnvelope(ch, i, true)
		if out < minAttIndex || out > maxAttIndex {
			t.Fatalf("egout = %d at sample %d, want within [%d,%d]", out, i, minAttIndex, maxAttIndex)
		}
	}
}
