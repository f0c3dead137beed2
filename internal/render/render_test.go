package render

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

func seededSong() *preset.Song {
	song := preset.Default()
	for i := 0; i < song.Rack.Len(); i++ {
		song.Rack.Voice(synth.InstrumentID(i)).SetRandom(rand.New(rand.NewSource(int64(i + 1))))
	}
	return song
}

func TestPatternRenderLengthAndContent(t *testing.T) {
	out := Pattern(seededSong(), Options{SampleRate: 8000, Duration: 2.0})
	if len(out) != 16000 {
		t.Fatalf("rendered %d frames, want 16000", len(out))
	}

	sig := ToFloat64(out)
	if analysis.Peak(sig) == 0.0 {
		t.Fatalf("rendered pattern is silent")
	}
	for i, v := range out {
		if v < -1.0 || v > 1.0 {
			t.Fatalf("sample %d out of range: %g", i, v)
		}
	}
}

func TestVoiceNoteDecaysAfterRelease(t *testing.T) {
	v := synth.NewBell()
	out := VoiceNote(v, 64, 0.5, Options{SampleRate: 8000, Duration: 3.0})
	if len(out) != 24000 {
		t.Fatalf("rendered %d frames, want 24000", len(out))
	}

	env := analysis.EnvelopeRMS(ToFloat64(out), 800)
	// The bell decays to silence well before the end of the render.
	if env[len(env)-1] != 0.0 {
		t.Fatalf("bell tail level = %g, want silence", env[len(env)-1])
	}
	if env[1] == 0.0 {
		t.Fatalf("bell attack window is silent")
	}
}

func TestStreamProducesPCM(t *testing.T) {
	s := NewStream(seededSong(), Options{SampleRate: 8000})
	s.Play()

	buf := make([]byte, 4096)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("short read: %d of %d", n, len(buf))
	}
	if !s.Playing() {
		t.Fatalf("stream stopped unexpectedly")
	}

	s.Stop()
	if s.Playing() {
		t.Fatalf("stream still playing after Stop")
	}
}

func TestStreamStepAdvancesWhilePlaying(t *testing.T) {
	s := NewStream(seededSong(), Options{SampleRate: 8000})
	s.Play()

	// 0.2625 s of audio crosses two 0.125 s grid steps, with margin for
	// float accumulation at the boundary.
	buf := make([]byte, 2*2100)
	if _, err := s.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Step() != 2 {
		t.Fatalf("step after 0.2625s = %d, want 2", s.Step())
	}
}
