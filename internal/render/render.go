// Package render drives the synthesis core the way a host audio pipeline
// would: once per output sample it advances the sequencer by the sample
// period, hands triggered notes to the mixer and pulls one mixed sample.
package render

import (
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

// Options configures an offline render.
type Options struct {
	SampleRate int
	Duration   float64 // seconds
	MasterGain float64 // applied before the soft clip; 0 means 1.0
	ClipDrive  float64 // soft-clip drive; 0 means 1.0
}

func (o Options) masterGain() float64 {
	if o.MasterGain == 0 {
		return 1.0
	}
	return o.MasterGain
}

func (o Options) clipDrive() float64 {
	if o.ClipDrive == 0 {
		return 1.0
	}
	return o.ClipDrive
}

// Pattern renders a song offline and returns mono float32 samples.
func Pattern(song *preset.Song, opt Options) []float32 {
	mixer := synth.NewMixer(song.Rack)
	dt := 1.0 / float64(opt.SampleRate)
	frames := int(opt.Duration * float64(opt.SampleRate))

	out := make([]float32, 0, frames)
	tg := 0.0
	for i := 0; i < frames; i++ {
		if notes := song.Seq.Update(dt); len(notes) > 0 {
			mixer.Trigger(notes, tg)
		}
		sample := synth.SoftClip(mixer.Sample(tg)*opt.masterGain(), opt.clipDrive())
		out = append(out, float32(sample))
		tg += dt
	}
	return out
}

// VoiceNote renders a single voice sounding one note, releasing it after
// releaseAfter seconds (no release when releaseAfter <= 0 or the duration is
// shorter). The voice is played raw: no master gain or clipping, so probes
// and fitters see the unshaped signal.
func VoiceNote(v *synth.Voice, pitch int, releaseAfter float64, opt Options) []float32 {
	rack := synth.NewRack()
	id := rack.Add(v)
	mixer := synth.NewMixer(rack)

	dt := 1.0 / float64(opt.SampleRate)
	frames := int(opt.Duration * float64(opt.SampleRate))

	// Note-on at one sample period, not zero: a note stamped at t=0 reads
	// as already released (on == off), and the digital saw is singular at
	// zero elapsed time.
	onTime := dt
	released := false

	out := make([]float32, 0, frames)
	tg := 0.0
	started := false
	for i := 0; i < frames; i++ {
		if !started && tg >= onTime {
			if err := mixer.NoteOn(id, pitch, tg); err != nil {
				return out
			}
			started = true
		}
		if started && !released && releaseAfter > 0 && tg >= onTime+releaseAfter {
			mixer.NoteOff(pitch, tg)
			released = true
		}
		out = append(out, float32(mixer.Sample(tg)))
		tg += dt
	}
	return out
}

// ToFloat64 widens a rendered buffer for the analysis helpers.
func ToFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
