// Package synth implements a procedural sound-synthesis core: closed-form
// oscillators, ADSR envelopes, one-pole filters, preset instrument voices,
// a step sequencer and a thread-safe note mixer. The package is meant to be
// driven one sample at a time by a host audio pipeline; it performs no I/O.
package synth

import (
	"math"
	"math/rand"
)

// Waveform selects the oscillator shape.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
	WaveSawAnalog
	WaveSawDigital
	WaveNoise
)

// WaveFunc is the trigonometric primitive the oscillator is built on. Any
// implementation must match sin's period and zero crossings; amplitude shape
// may deviate slightly.
type WaveFunc func(float64) float64

// FastSin is a cubic approximation of sin with the same period and zero
// crossings as math.Sin; the amplitude shape deviates noticeably. Valid for
// non-negative x only.
func FastSin(x float64) float64 {
	x *= 0.15915
	x -= math.Trunc(x)
	return 20.875 * x * (x - 0.5) * (x - 1.0)
}

// defaultSawPartials bounds the additive saw's harmonic sum when OscParams
// leaves Harmonics unset.
const defaultSawPartials = 50.0

// OscParams carries the optional oscillator inputs: vibrato settings, the
// partial count for the additive saw, the wave primitive and the noise
// source. The zero value means no vibrato, 50 partials, math.Sin, and the
// process-wide noise source.
type OscParams struct {
	LFOHertz     float64
	LFOAmplitude float64
	Harmonics    float64
	Wave         WaveFunc
	Rand         *rand.Rand
}

// Ang converts a frequency in Hz to angular velocity.
func Ang(hertz float64) float64 {
	return 2.0 * math.Pi * hertz
}

// Osc evaluates one oscillator sample at time t for the given base frequency.
//
// The phase is angular-modulated: 2π·f·t + lfoAmp·f·wave(2π·lfoHz·t).
// WaveSawDigital uses a direct phase-ramp formula that is singular as t→0;
// callers on that path must keep t away from zero.
func Osc(t, hertz float64, waveform Waveform, p OscParams) float64 {
	wave := p.Wave
	if wave == nil {
		wave = math.Sin
	}

	phase := Ang(hertz)*t + p.LFOAmplitude*hertz*wave(Ang(p.LFOHertz)*t)

	switch waveform {
	case WaveSine:
		return wave(phase)

	case WaveTriangle:
		return math.Asin(wave(phase)) * 2.0 / math.Pi

	case WaveSquare:
		if wave(phase) > 0.0 {
			return 1.0
		}
		return -1.0

	case WaveSawAnalog:
		partials := p.Harmonics
		if partials <= 0 {
			partials = defaultSawPartials
		}
		out := 0.0
		for k := 1.0; k < partials; k += 1.0 {
			out += wave(phase*k) / k
		}
		return out * 2.0 / math.Pi

	case WaveSawDigital:
		return phase*math.Mod(t, 1.0/hertz)/math.Pi/t - math.Pi*0.5

	case WaveNoise:
		if p.Rand != nil {
			return 2.0*p.Rand.Float64() - 1.0
		}
		return 2.0*rand.Float64() - 1.0
	}

	return 0.0
}

var twelfthRootOf2 = math.Pow(2.0, 1.0/12.0)

// Scale maps an integer pitch id to a frequency in Hz on an equal-tempered
// scale with id 0 at 8 Hz, so Scale(id) == 2*Scale(id-12) for every id.
func Scale(noteID int) float64 {
	return 8.0 * math.Pow(twelfthRootOf2, float64(noteID))
}
