package synth

import "math/rand"

// FinishPolicy decides when a voice considers a note done.
type FinishPolicy uint8

const (
	// FinishOnSilence ends the note once the envelope clamps to zero.
	FinishOnSilence FinishPolicy = iota
	// FinishAfterLifetime ends the note once it has sounded for MaxLifeTime
	// seconds, ignoring the envelope. Percussive voices need this: their
	// off-time never advances, so amplitude alone never signals completion.
	FinishAfterLifetime
)

// oscTerm is one weighted oscillator call in a voice's mix.
type oscTerm struct {
	gain      float64
	semitones int
	fixedFreq bool // term runs at 0 Hz (noise terms)
	waveform  Waveform
	lfoHertz  float64
	lfoAmp    float64
	harmonics float64
}

// Voice is a preset timbre: an envelope shape plus a weighted sum of
// oscillator calls at semitone offsets from the note's pitch id. A voice is
// configured once and read-only during synthesis, so many concurrently
// active notes may share it.
type Voice struct {
	Name        string
	Volume      float64
	MaxLifeTime float64 // negative means unlimited
	Env         ADSR

	policy FinishPolicy
	terms  []oscTerm
	rng    *rand.Rand
}

// SetRandom routes the voice's noise terms through r, making synthesis
// deterministic. A nil r restores the process-wide source.
func (v *Voice) SetRandom(r *rand.Rand) {
	v.rng = r
}

// Policy reports how the voice decides that a note is finished.
func (v *Voice) Policy() FinishPolicy {
	return v.policy
}

// finished applies the voice's termination policy.
func (v *Voice) finished(amplitude, timeGlobal, timeOn float64) bool {
	if v.policy == FinishOnSilence {
		return amplitude <= 0.0
	}
	return v.MaxLifeTime > 0.0 && timeGlobal-timeOn >= v.MaxLifeTime
}

// Sound produces the voice's signal value for note at timeGlobal and reports
// whether the note is finished.
func (v *Voice) Sound(timeGlobal float64, note Note) (float64, bool) {
	amplitude := v.Env.Amplitude(timeGlobal, note.On, note.Off)
	done := v.finished(amplitude, timeGlobal, note.On)

	sound := 0.0
	for _, term := range v.terms {
		hertz := 0.0
		if !term.fixedFreq {
			hertz = Scale(note.ID + term.semitones)
		}
		sound += term.gain * Osc(timeGlobal-note.On, hertz, term.waveform, OscParams{
			LFOHertz:     term.lfoHertz,
			LFOAmplitude: term.lfoAmp,
			Harmonics:    term.harmonics,
			Rand:         v.rng,
		})
	}

	return amplitude * sound * v.Volume, done
}

// NewBell returns the bell preset: three decaying sine partials an octave
// apart, finished when the envelope falls silent.
func NewBell() *Voice {
	env := NewADSR()
	env.AttackTime = 0.01
	env.DecayTime = 1.0
	env.SustainAmplitude = 0.0
	env.ReleaseTime = 1.0

	return &Voice{
		Name:        "Bell",
		Volume:      1.0,
		MaxLifeTime: 3.0,
		Env:         env,
		policy:      FinishOnSilence,
		terms: []oscTerm{
			{gain: 1.0, semitones: 12, waveform: WaveSine, lfoHertz: 5.0, lfoAmp: 0.001},
			{gain: 0.5, semitones: 24, waveform: WaveSine},
			{gain: 0.25, semitones: 36, waveform: WaveSine},
		},
	}
}

// NewHarmonica returns the harmonica preset: a sustained reed-like mix of
// additive saw, squares and a touch of noise.
func NewHarmonica() *Voice {
	env := NewADSR()
	env.AttackTime = 0.0
	env.DecayTime = 1.0
	env.SustainAmplitude = 0.95
	env.ReleaseTime = 0.1

	return &Voice{
		Name:        "Harmonica",
		Volume:      0.3,
		MaxLifeTime: -1.0,
		Env:         env,
		policy:      FinishOnSilence,
		terms: []oscTerm{
			{gain: 1.0, semitones: -12, waveform: WaveSawAnalog, lfoHertz: 5.0, lfoAmp: 0.001, harmonics: 100.0},
			{gain: 1.0, semitones: 0, waveform: WaveSquare, lfoHertz: 5.0, lfoAmp: 0.001},
			{gain: 0.5, semitones: 12, waveform: WaveSquare},
			{gain: 0.05, semitones: 24, waveform: WaveNoise},
		},
	}
}

// NewKick returns the kick drum preset.
func NewKick() *Voice {
	env := NewADSR()
	env.AttackTime = 0.01
	env.DecayTime = 0.15
	env.SustainAmplitude = 0.0
	env.ReleaseTime = 0.0

	return &Voice{
		Name:        "Drum Kick",
		Volume:      1.0,
		MaxLifeTime: 1.5,
		Env:         env,
		policy:      FinishAfterLifetime,
		terms: []oscTerm{
			{gain: 0.99, semitones: -36, waveform: WaveSine, lfoHertz: 1.0, lfoAmp: 1.0},
			{gain: 0.01, fixedFreq: true, waveform: WaveNoise},
		},
	}
}

// NewSnare returns the snare drum preset.
func NewSnare() *Voice {
	env := NewADSR()
	env.AttackTime = 0.0
	env.DecayTime = 0.2
	env.SustainAmplitude = 0.0
	env.ReleaseTime = 0.0

	return &Voice{
		Name:        "Drum Snare",
		Volume:      1.0,
		MaxLifeTime: 1.0,
		Env:         env,
		policy:      FinishAfterLifetime,
		terms: []oscTerm{
			{gain: 0.5, semitones: -24, waveform: WaveSine, lfoHertz: 0.5, lfoAmp: 1.0},
			{gain: 0.5, fixedFreq: true, waveform: WaveNoise},
		},
	}
}

// NewHiHat returns the hi-hat preset.
func NewHiHat() *Voice {
	env := NewADSR()
	env.AttackTime = 0.01
	env.DecayTime = 0.05
	env.SustainAmplitude = 0.0
	env.ReleaseTime = 0.0

	return &Voice{
		Name:        "Drum HiHat",
		Volume:      0.5,
		MaxLifeTime: 1.5,
		Env:         env,
		policy:      FinishAfterLifetime,
		terms: []oscTerm{
			{gain: 0.1, semitones: -12, waveform: WaveSquare, lfoHertz: 1.5, lfoAmp: 1.0},
			{gain: 0.9, fixedFreq: true, waveform: WaveNoise},
		},
	}
}
