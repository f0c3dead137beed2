package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-synth/internal/render"
	"github.com/cwbudde/algo-synth/preset"
)

func main() {
	presetPath := flag.String("preset", "", "Song preset JSON path (empty = built-in demo song)")
	duration := flag.Float64("duration", 0, "Stop after this many seconds (0 = play until interrupted)")
	sampleRate := flag.Int("sample-rate", 44100, "Playback sample rate in Hz")
	masterGain := flag.Float64("master-gain", 0.5, "Gain applied before the soft clip")
	flag.Parse()

	var song *preset.Song
	var err error
	if *presetPath == "" {
		song = preset.Default()
	} else {
		song, err = preset.Load(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
	}

	stream := render.NewStream(song, render.Options{
		SampleRate: *sampleRate,
		MasterGain: *masterGain,
	})

	op := &oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	player.SetBufferSize(*sampleRate / 10) // 100ms
	stream.Play()
	player.Play()
	defer player.Close()

	fmt.Printf("Playing %d channels at %.0f BPM, %d Hz. Ctrl+C to stop.\n",
		len(song.Seq.Channels()), song.Seq.Tempo(), *sampleRate)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	if *duration > 0 {
		select {
		case <-time.After(time.Duration(*duration * float64(time.Second))):
		case <-interrupt:
		}
	} else {
		<-interrupt
	}

	stream.Stop()
	// Let active notes ring out briefly before tearing the device down.
	time.Sleep(200 * time.Millisecond)
}
