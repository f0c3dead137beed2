package render

import (
	"encoding/binary"
	"sync"

	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

// Stream produces a song as 16-bit little-endian mono PCM through io.Reader,
// the shape realtime audio backends consume. Read runs on the audio
// callback goroutine; the control methods may be called from any goroutine.
type Stream struct {
	mu      sync.Mutex
	song    *preset.Song
	mixer   *synth.Mixer
	opt     Options
	dt      float64
	tg      float64
	playing bool
}

func NewStream(song *preset.Song, opt Options) *Stream {
	return &Stream{
		song:  song,
		mixer: synth.NewMixer(song.Rack),
		opt:   opt,
		dt:    1.0 / float64(opt.SampleRate),
	}
}

// Play starts advancing the sequencer on subsequent reads.
func (s *Stream) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Stop pauses the sequencer; already-sounding notes ring out.
func (s *Stream) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// Playing reports whether the sequencer is advancing.
func (s *Stream) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Step returns the sequencer's current grid position.
func (s *Stream) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.song.Seq.Step()
}

// ActiveNotes reports how many notes are currently sounding.
func (s *Stream) ActiveNotes() int {
	return s.mixer.ActiveNotes()
}

// Read fills p with PCM. It never returns an error; a stopped stream keeps
// producing the tail of whatever is still sounding, then silence.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for ; n+2 <= len(p); n += 2 {
		if s.playing {
			if notes := s.song.Seq.Update(s.dt); len(notes) > 0 {
				s.mixer.Trigger(notes, s.tg)
			}
		}
		sample := synth.SoftClip(s.mixer.Sample(s.tg)*s.opt.masterGain(), s.opt.clipDrive())
		s.tg += s.dt

		if sample > 1.0 {
			sample = 1.0
		}
		if sample < -1.0 {
			sample = -1.0
		}
		binary.LittleEndian.PutUint16(p[n:], uint16(int16(sample*32767)))
	}
	return n, nil
}
