package synth

import (
	"math"
	"testing"
)

func TestOnePoleCoefficient(t *testing.T) {
	lp := NewLowPass(120.0, 44100.0)
	want := math.Exp(-2.0 * math.Pi * 120.0 / 44100.0)
	if math.Abs(lp.alpha-want) > 1e-12 {
		t.Fatalf("alpha = %g, want %g", lp.alpha, want)
	}

	lp.SetCutoff(1000.0)
	want = math.Exp(-2.0 * math.Pi * 1000.0 / 44100.0)
	if math.Abs(lp.alpha-want) > 1e-12 {
		t.Fatalf("alpha after SetCutoff = %g, want %g", lp.alpha, want)
	}
}

func TestLowPassConvergesToDC(t *testing.T) {
	lp := NewLowPass(500.0, 44100.0)
	prev := 0.0
	out := 0.0
	for i := 0; i < 4000; i++ {
		out = lp.Process(float64(i)/44100.0, 1.0)
		if out < prev-1e-12 {
			t.Fatalf("step response not monotone at sample %d: %g -> %g", i, prev, out)
		}
		prev = out
	}
	if math.Abs(out-1.0) > 1e-3 {
		t.Fatalf("step response settled at %g, want ~1", out)
	}
}

func TestLowPassMatchesRecurrence(t *testing.T) {
	lp := NewLowPass(250.0, 48000.0)
	alpha := lp.alpha

	prev := 0.0
	inputs := []float64{0.3, -0.8, 1.0, 0.1, -0.2, 0.0, 0.55}
	for i, in := range inputs {
		want := (1.0-alpha)*in + alpha*prev
		got := lp.Process(float64(i)/48000.0, in)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got %g, want %g", i, got, want)
		}
		prev = want
	}
}

func TestHighPassKeepsLiteralForm(t *testing.T) {
	hp := NewHighPass(250.0, 48000.0)
	alpha := hp.alpha

	// First sample: prev is zero, out = alpha*(0 - in).
	if got := hp.Process(0.0, 1.0); math.Abs(got-(-alpha)) > 1e-12 {
		t.Fatalf("first sample: got %g, want %g", got, -alpha)
	}
	// Second sample: out = alpha*(2*prev - in).
	want := alpha * (2.0*(-alpha) - 0.5)
	if got := hp.Process(1.0/48000.0, 0.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("second sample: got %g, want %g", got, want)
	}
}

func TestFilterReset(t *testing.T) {
	lp := NewLowPass(500.0, 44100.0)
	lp.Process(0.0, 1.0)
	lp.Reset()
	if lp.prevSample != 0.0 {
		t.Fatalf("prev sample after Reset = %g, want 0", lp.prevSample)
	}
}
