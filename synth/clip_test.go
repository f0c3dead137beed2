package synth

import (
	"math"
	"testing"
)

func TestSoftClipBounded(t *testing.T) {
	for _, x := range []float64{-100, -4, -1.5, -0.3, 0, 0.3, 1.5, 4, 100} {
		out := SoftClip(x, 1.0)
		if out < -1.0 || out > 1.0 {
			t.Fatalf("SoftClip(%g) = %g, out of [-1,1]", x, out)
		}
	}
}

func TestSoftClipMonotoneAndOdd(t *testing.T) {
	prev := math.Inf(-1)
	for i := -40; i <= 40; i++ {
		x := float64(i) * 0.1
		out := SoftClip(x, 1.0)
		if out < prev-1e-6 {
			t.Fatalf("SoftClip not monotone at x=%g: %g -> %g", x, prev, out)
		}
		prev = out

		if sym := math.Abs(out + SoftClip(-x, 1.0)); sym > 0.02 {
			t.Fatalf("SoftClip not odd at x=%g: asymmetry %g", x, sym)
		}
	}
	if out := math.Abs(SoftClip(0, 1.0)); out > 0.01 {
		t.Fatalf("SoftClip(0) = %g, want ~0", out)
	}
}

func TestSoftClipNearLinearForSmallInput(t *testing.T) {
	for _, x := range []float64{-0.05, -0.01, 0.01, 0.05} {
		out := SoftClip(x, 1.0)
		if math.Abs(out-x) > 0.01 {
			t.Fatalf("SoftClip(%g) = %g, want near-linear", x, out)
		}
	}
}
