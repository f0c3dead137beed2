package synth

// SilenceThreshold is the amplitude below which envelope output is clamped
// to exactly zero. Silence-terminated voices use the clamp to decide that a
// note is finished.
const SilenceThreshold = 0.01

// epsWindow is the shortest attack/decay/release window treated as a real
// ramp; anything shorter is an instantaneous transition.
const epsWindow = 1e-9

// ADSR is an attack-decay-sustain-release envelope shape. It holds no
// per-note state: amplitude is a pure function of the three times passed to
// Amplitude, so one ADSR value may serve any number of concurrent notes.
type ADSR struct {
	AttackTime       float64
	DecayTime        float64
	SustainAmplitude float64
	ReleaseTime      float64
	StartAmplitude   float64
}

// NewADSR returns the neutral envelope shape presets start from.
func NewADSR() ADSR {
	return ADSR{
		AttackTime:       0.1,
		DecayTime:        0.1,
		SustainAmplitude: 1.0,
		ReleaseTime:      0.2,
		StartAmplitude:   1.0,
	}
}

// onAmplitude evaluates the attack/decay/sustain contour for a note that has
// been sounding for lifeTime seconds.
func (e ADSR) onAmplitude(lifeTime float64) float64 {
	amplitude := 0.0

	if lifeTime <= e.AttackTime {
		if e.AttackTime < epsWindow {
			amplitude = e.StartAmplitude
		} else {
			amplitude = lifeTime / e.AttackTime * e.StartAmplitude
		}
	}

	if e.AttackTime < lifeTime && lifeTime <= e.AttackTime+e.DecayTime {
		if e.DecayTime < epsWindow {
			amplitude = e.SustainAmplitude
		} else {
			amplitude = (lifeTime-e.AttackTime)/e.DecayTime*(e.SustainAmplitude-e.StartAmplitude) + e.StartAmplitude
		}
	}

	if e.AttackTime+e.DecayTime < lifeTime {
		amplitude = e.SustainAmplitude
	}

	return amplitude
}

// Amplitude returns the envelope multiplier at timeGlobal for a note that
// went on at timeOn and off at timeOff. timeOn > timeOff means the note is
// still held. Values at or below SilenceThreshold are clamped to zero.
func (e ADSR) Amplitude(timeGlobal, timeOn, timeOff float64) float64 {
	var amplitude float64

	if timeOn > timeOff {
		amplitude = e.onAmplitude(timeGlobal - timeOn)
	} else {
		// Recompute where the contour was at the moment of release, then
		// ramp that value down to zero over the release window.
		releaseAmplitude := e.onAmplitude(timeOff - timeOn)
		if e.ReleaseTime < epsWindow {
			amplitude = 0.0
		} else {
			amplitude = (timeGlobal-timeOff)/e.ReleaseTime*-releaseAmplitude + releaseAmplitude
		}
	}

	if amplitude <= SilenceThreshold {
		return 0.0
	}
	return amplitude
}
