// Package preset loads song descriptions: a sequencer grid, a set of
// instrument voices with optional parameter overrides, and the channel
// patterns binding them together.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-synth/synth"
)

// File is the JSON schema for song presets.
type File struct {
	Tempo    *float64                `json:"tempo"`
	Beats    *int                    `json:"beats"`
	SubBeats *int                    `json:"sub_beats"`
	Voices   map[string]VoiceSetting `json:"voices"`
	Channels []ChannelSetting        `json:"channels"`
}

// VoiceSetting is a partial override for one of the built-in voices.
type VoiceSetting struct {
	AttackTime       *float64 `json:"attack_time"`
	DecayTime        *float64 `json:"decay_time"`
	SustainAmplitude *float64 `json:"sustain_amplitude"`
	ReleaseTime      *float64 `json:"release_time"`
	StartAmplitude   *float64 `json:"start_amplitude"`
	Volume           *float64 `json:"volume"`
	MaxLifeTime      *float64 `json:"max_life_time"`
	DisplayName      *string  `json:"display_name"`
}

// ChannelSetting binds a voice to a trigger pattern.
type ChannelSetting struct {
	Voice   string `json:"voice"`
	Pattern string `json:"pattern"`
}

// Song is a fully built preset: the rack owns the voices, the sequencer
// holds the grid and channel patterns.
type Song struct {
	Rack *synth.Rack
	Seq  *synth.Sequencer
}

// voiceConstructors is the closed set of known voice names.
var voiceConstructors = map[string]func() *synth.Voice{
	"bell":      synth.NewBell,
	"harmonica": synth.NewHarmonica,
	"kick":      synth.NewKick,
	"snare":     synth.NewSnare,
	"hihat":     synth.NewHiHat,
}

// NewVoice constructs one of the built-in voices by name (bell, harmonica,
// kick, snare, hihat).
func NewVoice(name string) (*synth.Voice, error) {
	construct, ok := voiceConstructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown voice %q", name)
	}
	return construct(), nil
}

// Load reads a song preset JSON file and builds it.
func Load(path string) (*Song, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return Build(&f)
}

// Build turns a parsed preset file into a playable song.
func Build(f *File) (*Song, error) {
	tempo := 120.0
	beats := 4
	subBeats := 4
	if f.Tempo != nil {
		if *f.Tempo <= 0 {
			return nil, fmt.Errorf("tempo must be > 0, got %g", *f.Tempo)
		}
		tempo = *f.Tempo
	}
	if f.Beats != nil {
		if *f.Beats < 1 {
			return nil, fmt.Errorf("beats must be >= 1, got %d", *f.Beats)
		}
		beats = *f.Beats
	}
	if f.SubBeats != nil {
		if *f.SubBeats < 1 {
			return nil, fmt.Errorf("sub_beats must be >= 1, got %d", *f.SubBeats)
		}
		subBeats = *f.SubBeats
	}

	rack := synth.NewRack()
	seq := synth.NewSequencer(tempo, beats, subBeats)

	ids := make(map[string]synth.InstrumentID)
	for _, ch := range f.Channels {
		name := strings.ToLower(strings.TrimSpace(ch.Voice))
		id, ok := ids[name]
		if !ok {
			construct, known := voiceConstructors[name]
			if !known {
				return nil, fmt.Errorf("unknown voice %q", ch.Voice)
			}
			v := construct()
			if err := applyVoiceSetting(v, f.Voices[name]); err != nil {
				return nil, fmt.Errorf("voice %q: %w", name, err)
			}
			id = rack.Add(v)
			ids[name] = id
		}
		seq.AddChannel(id, ch.Pattern)
	}

	return &Song{Rack: rack, Seq: seq}, nil
}

func applyVoiceSetting(v *synth.Voice, s VoiceSetting) error {
	if s.AttackTime != nil {
		if *s.AttackTime < 0 {
			return fmt.Errorf("attack_time must be >= 0")
		}
		v.Env.AttackTime = *s.AttackTime
	}
	if s.DecayTime != nil {
		if *s.DecayTime < 0 {
			return fmt.Errorf("decay_time must be >= 0")
		}
		v.Env.DecayTime = *s.DecayTime
	}
	if s.SustainAmplitude != nil {
		if *s.SustainAmplitude < 0 || *s.SustainAmplitude > 1 {
			return fmt.Errorf("sustain_amplitude must be in [0,1]")
		}
		v.Env.SustainAmplitude = *s.SustainAmplitude
	}
	if s.ReleaseTime != nil {
		if *s.ReleaseTime < 0 {
			return fmt.Errorf("release_time must be >= 0")
		}
		v.Env.ReleaseTime = *s.ReleaseTime
	}
	if s.StartAmplitude != nil {
		if *s.StartAmplitude < 0 {
			return fmt.Errorf("start_amplitude must be >= 0")
		}
		v.Env.StartAmplitude = *s.StartAmplitude
	}
	if s.Volume != nil {
		if *s.Volume < 0 {
			return fmt.Errorf("volume must be >= 0")
		}
		v.Volume = *s.Volume
	}
	if s.MaxLifeTime != nil {
		v.MaxLifeTime = *s.MaxLifeTime
	}
	if s.DisplayName != nil {
		v.Name = *s.DisplayName
	}
	return nil
}

// Default returns the built-in demo song: a four-on-the-floor drum loop at
// 120 BPM on a 16-step grid.
func Default() *Song {
	rack := synth.NewRack()
	seq := synth.NewSequencer(120.0, 4, 4)

	seq.AddChannel(rack.Add(synth.NewKick()), "x...x...x..x.x..")
	seq.AddChannel(rack.Add(synth.NewSnare()), "....x.......x...")
	seq.AddChannel(rack.Add(synth.NewHiHat()), "x.x.x.x.x.x.x.xx")

	return &Song{Rack: rack, Seq: seq}
}
