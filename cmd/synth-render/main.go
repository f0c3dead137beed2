package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/internal/fitcommon"
	"github.com/cwbudde/algo-synth/internal/render"
	"github.com/cwbudde/algo-synth/preset"
)

func main() {
	presetPath := flag.String("preset", "", "Song preset JSON path (empty = built-in demo song)")
	loops := flag.Int("loops", 2, "Number of full pattern loops to render")
	duration := flag.Float64("duration", 0, "Render duration in seconds (overrides -loops when > 0)")
	sampleRate := flag.Int("sample-rate", 44100, "Render sample rate in Hz")
	resampleTo := flag.Int("resample-to", 0, "Convert the output to this sample rate (0 = keep render rate)")
	masterGain := flag.Float64("master-gain", 0.5, "Gain applied before the soft clip")
	clipDrive := flag.Float64("clip-drive", 1.0, "Soft-clip drive")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	song, err := loadSong(*presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
		os.Exit(1)
	}

	seconds := *duration
	if seconds <= 0 {
		if *loops < 1 {
			*loops = 1
		}
		seconds = float64(*loops) * float64(song.Seq.TotalSteps()) * song.Seq.StepDuration()
	}

	fmt.Printf("Rendering %.2fs at %d Hz (%d channels, %d steps, %.0f BPM)...\n",
		seconds, *sampleRate, len(song.Seq.Channels()), song.Seq.TotalSteps(), song.Seq.Tempo())

	samples := render.Pattern(song, render.Options{
		SampleRate: *sampleRate,
		Duration:   seconds,
		MasterGain: *masterGain,
		ClipDrive:  *clipDrive,
	})

	outRate := *sampleRate
	if *resampleTo > 0 && *resampleTo != *sampleRate {
		converted, err := fitcommon.ResampleIfNeeded(render.ToFloat64(samples), *sampleRate, *resampleTo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling to %d Hz: %v\n", *resampleTo, err)
			os.Exit(1)
		}
		samples = make([]float32, len(converted))
		for i, v := range converted {
			samples[i] = float32(v)
		}
		outRate = *resampleTo
		fmt.Printf("Resampled to %d Hz (%d frames)\n", outRate, len(samples))
	}

	if err := fitcommon.WriteMonoWAV(*output, samples, outRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, len(samples))
}

func loadSong(path string) (*preset.Song, error) {
	if path == "" {
		return preset.Default(), nil
	}
	return preset.Load(path)
}
