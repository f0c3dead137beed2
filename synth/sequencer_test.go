package synth

import (
	"math"
	"testing"
)

func TestSequencerStepDuration(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	if s.TotalSteps() != 16 {
		t.Fatalf("total steps = %d, want 16", s.TotalSteps())
	}
	if math.Abs(s.StepDuration()-0.125) > 1e-12 {
		t.Fatalf("step duration = %g, want 0.125", s.StepDuration())
	}
}

func TestSequencerAdvancesOneStepPerExactDelta(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	start := s.Step()

	s.Update(0.125)
	if s.Step() != (start+1)%16 {
		t.Fatalf("step after one update = %d, want %d", s.Step(), (start+1)%16)
	}

	for i := 0; i < 15; i++ {
		s.Update(0.125)
	}
	if s.Step() != start {
		t.Fatalf("step after 16 updates = %d, want %d (wrapped)", s.Step(), start)
	}
}

func TestSequencerCatchUpFiresEveryStep(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	s.AddChannel(0, "xxxxxxxxxxxxxxxx")

	// One update spanning the whole 2-second loop must fire all 16 steps.
	notes := s.Update(2.0)
	if len(notes) != 16 {
		t.Fatalf("catch-up fired %d notes, want 16", len(notes))
	}
	for i, n := range notes {
		if !n.Active || n.ID != 64 || n.Instrument != 0 {
			t.Fatalf("note %d malformed: %+v", i, n)
		}
	}
}

func TestSequencerSingleTriggerPerLoop(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	s.AddChannel(0, "x...............")

	fired := 0
	for i := 0; i < 32; i++ { // two full 2-second loops
		fired += len(s.Update(0.125))
	}
	if fired != 2 {
		t.Fatalf("pattern fired %d times over two loops, want 2", fired)
	}
}

func TestSequencerSparsePattern(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	s.AddChannel(3, "x...x...x...x...")

	fired := 0
	for i := 0; i < 16; i++ {
		for _, n := range s.Update(0.125) {
			if n.Instrument != 3 {
				t.Fatalf("note bound to instrument %d, want 3", n.Instrument)
			}
			fired++
		}
	}
	if fired != 4 {
		t.Fatalf("pattern fired %d times per loop, want 4", fired)
	}
}

func TestSequencerShortPatternNeverTriggersPastItsEnd(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)
	s.AddChannel(0, "x") // 1 character against a 16-step grid

	fired := 0
	for i := 0; i < 48; i++ { // three loops, no out-of-range access
		fired += len(s.Update(0.125))
	}
	if fired != 3 {
		t.Fatalf("short pattern fired %d times over three loops, want 3", fired)
	}
}

func TestSequencerFractionalDeltasAccumulate(t *testing.T) {
	s := NewSequencer(120.0, 4, 4)

	// Sub-step deltas must accumulate without losing steps.
	steps := 0
	last := s.Step()
	for i := 0; i < 1000; i++ {
		s.Update(0.01)
		if s.Step() != last {
			steps += (s.Step() - last + 16) % 16
			last = s.Step()
		}
	}
	// 10 seconds of 0.01 deltas is 80 steps; allow one step of float drift
	// at the final boundary.
	if steps < 79 || steps > 80 {
		t.Fatalf("accumulated %d steps, want 80 (+-1)", steps)
	}
}
