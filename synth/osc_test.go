package synth

import (
	"math"
	"math/rand"
	"testing"
)

func TestSineOscStartsAtZero(t *testing.T) {
	if out := Osc(0.0, 440.0, WaveSine, OscParams{}); out != 0.0 {
		t.Fatalf("sine at t=0 should be 0, got %g", out)
	}
}

func TestSineOscZeroCrossings(t *testing.T) {
	const freq = 440.0
	for k := 1; k <= 20; k++ {
		tt := float64(k) / (2.0 * freq)
		out := Osc(tt, freq, WaveSine, OscParams{})
		if math.Abs(out) > 1e-6 {
			t.Fatalf("expected zero crossing at t=%g (k=%d), got %g", tt, k, out)
		}
	}
}

func TestSquareOscIsBinary(t *testing.T) {
	const freq = 220.0
	for i := 1; i < 200; i++ {
		tt := float64(i) * 1e-4
		out := Osc(tt, freq, WaveSquare, OscParams{})
		if out != 1.0 && out != -1.0 {
			t.Fatalf("square output at t=%g is %g, want +-1", tt, out)
		}
	}
}

func TestTriangleOscBounded(t *testing.T) {
	const freq = 220.0
	for i := 0; i < 500; i++ {
		tt := float64(i) * 5e-5
		out := Osc(tt, freq, WaveTriangle, OscParams{})
		if out < -1.0-1e-9 || out > 1.0+1e-9 {
			t.Fatalf("triangle output at t=%g is %g, out of [-1,1]", tt, out)
		}
	}
}

func TestAnalogSawUsesHarmonicCount(t *testing.T) {
	const freq = 110.0
	const tt = 0.0012
	few := Osc(tt, freq, WaveSawAnalog, OscParams{Harmonics: 3})
	many := Osc(tt, freq, WaveSawAnalog, OscParams{Harmonics: 60})
	if few == many {
		t.Fatalf("harmonic count should change the additive saw output (both %g)", few)
	}

	// Unset harmonic count falls back to the default partial bound.
	def := Osc(tt, freq, WaveSawAnalog, OscParams{})
	explicit := Osc(tt, freq, WaveSawAnalog, OscParams{Harmonics: 50})
	if def != explicit {
		t.Fatalf("default partial count mismatch: %g vs %g", def, explicit)
	}
}

func TestNoiseOscSeededAndBounded(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		va := Osc(0.5, 0.0, WaveNoise, OscParams{Rand: a})
		vb := Osc(0.5, 0.0, WaveNoise, OscParams{Rand: b})
		if va != vb {
			t.Fatalf("seeded noise diverged at sample %d: %g vs %g", i, va, vb)
		}
		if va < -1.0 || va > 1.0 {
			t.Fatalf("noise sample %d out of [-1,1]: %g", i, va)
		}
	}
}

func TestFastSinMatchesSinShape(t *testing.T) {
	// Zero crossings at multiples of pi.
	for k := 0; k <= 12; k++ {
		x := float64(k) * math.Pi
		if got := FastSin(x); math.Abs(got) > 1e-3 {
			t.Fatalf("FastSin(%d*pi) = %g, want ~0", k, got)
		}
	}
	// Same sign as sin away from the crossings, amplitude near unity.
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.01
		ref := math.Sin(x)
		got := FastSin(x)
		if math.Abs(got) > 1.01 {
			t.Fatalf("FastSin(%g) = %g, outside [-1.01, 1.01]", x, got)
		}
		if math.Abs(ref) > 0.1 && got*ref <= 0 {
			t.Fatalf("FastSin(%g) = %g disagrees in sign with sin = %g", x, got, ref)
		}
	}
}

func TestOscWavePrimitiveIsPluggable(t *testing.T) {
	const freq = 440.0
	const tt = 0.1 / freq
	exact := Osc(tt, freq, WaveSine, OscParams{})
	fast := Osc(tt, freq, WaveSine, OscParams{Wave: FastSin})
	if exact*fast <= 0 {
		t.Fatalf("fast wave primitive disagrees in sign with exact: %g vs %g", fast, exact)
	}
	if math.Abs(exact-fast) > 0.2 {
		t.Fatalf("fast wave primitive too far from exact: %g vs %g", fast, exact)
	}
}

func TestVibratoModulatesPhase(t *testing.T) {
	const freq = 440.0
	const tt = 0.013
	plain := Osc(tt, freq, WaveSine, OscParams{})
	wobbly := Osc(tt, freq, WaveSine, OscParams{LFOHertz: 5.0, LFOAmplitude: 0.01})
	if plain == wobbly {
		t.Fatalf("vibrato should perturb the phase (both %g)", plain)
	}
}

func TestScaleOctaveHalving(t *testing.T) {
	for id := -24; id <= 96; id++ {
		lo := Scale(id - 12)
		hi := Scale(id)
		if math.Abs(hi-2.0*lo) > 1e-9*hi {
			t.Fatalf("Scale(%d)=%g is not double Scale(%d)=%g", id, hi, id-12, lo)
		}
	}
	if f := Scale(0); math.Abs(f-8.0) > 1e-12 {
		t.Fatalf("Scale(0) = %g, want 8", f)
	}
}
