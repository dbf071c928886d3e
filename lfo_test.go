package ym2413

import "testing"

func TestLFOAMPeriod(t *testing.T) {
	l := &lfo{}
	_, _ = l.step() // prime to a known starting index
	start := l.amCnt
	const period = lfoAMEntries * 64
	for i := 0; i < period; i++ {
		l.step()
	}
	if l.amCnt != start {
		t.Errorf("amCnt = %d after %d samples, want back to %d", l.amCnt, period, start)
	}
}

func TestLFOPMPhaseCyclesEveryEightSteps(t *testing.T) {
	l := &lfo{}
	seen := map[int]bool{}
	for i := 0; i < 1024*8; i++ {
		_, pm := l.step()
		seen[pm] = true
		if pm < 0 || pm > 7 {
			t.Fatalf("pm = %d out of range [0,7] at sample %d", pm, i)
		}
	}
	if len(seen) != 8 {
		t.Errorf("observed %d distinct PM phases, want 8", len(seen))
	}
}

func TestLFOPMPhaseHoldsFor1024Samples(t *testing.T) {
	l := &lfo{}
	_, first := l.step()
	for i := 1; i < 1024; i++ {
		_, pm := l.step()
		if pm != first {
			t.Fatalf("pm changed to %d at sample %d, want to hold %d for 1024 samples", pm, i, first)
		}
	}
	_, next := l.step()
	if next == first {
		t.Error("pm did not change after 1024 samples")
	}
}

func TestLFOAMOutputHalvesTableValue(t *testing.T) {
	l := &lfo{amCnt: LFOAMIndex(25 << lfoAMFracBits)}
	am, _ := l.step()
	if am != int(lfoAMTable[25])>>1 {
		t.Errorf("am = %d, want %d", am, int(lfoAMTable[25])>>1)
	}
}
