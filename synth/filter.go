package synth

import "math"

// onePole holds the shared state of the one-pole filter stages: a smoothing
// coefficient derived from the cutoff and one remembered output sample.
// A filter instance must be fed exactly one continuous, strictly-ordered
// sample stream; it is not safe for concurrent use.
type onePole struct {
	alpha      float64
	prevSample float64
	sampleRate float64
}

func newOnePole(cutoff, sampleRate float64) onePole {
	f := onePole{sampleRate: sampleRate}
	f.SetCutoff(cutoff)
	return f
}

// SetCutoff rederives the smoothing coefficient from a cutoff frequency.
func (f *onePole) SetCutoff(freq float64) {
	f.alpha = math.Exp(-2.0 * math.Pi * freq / f.sampleRate)
}

// Reset clears the remembered sample.
func (f *onePole) Reset() {
	f.prevSample = 0.0
}

// LowPass is a one-pole exponential-moving-average smoothing stage.
type LowPass struct {
	onePole
}

func NewLowPass(cutoff, sampleRate float64) *LowPass {
	return &LowPass{onePole: newOnePole(cutoff, sampleRate)}
}

// Process filters one sample. timeGlobal is accepted to match the other
// per-sample operations but does not affect the output.
func (f *LowPass) Process(timeGlobal, sample float64) float64 {
	out := (1.0-f.alpha)*sample + f.alpha*f.prevSample
	f.prevSample = out
	return out
}

// HighPass is the complementary one-pole stage. The difference equation is
// nonstandard (out = alpha·(2·prev − in)) but existing material was tuned
// against it, so it is kept as is.
type HighPass struct {
	onePole
}

func NewHighPass(cutoff, sampleRate float64) *HighPass {
	return &HighPass{onePole: newOnePole(cutoff, sampleRate)}
}

// Process filters one sample.
func (f *HighPass) Process(timeGlobal, sample float64) float64 {
	out := f.alpha * (2.0*f.prevSample - sample)
	f.prevSample = out
	return out
}
