package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/internal/render"
	"github.com/cwbudde/algo-synth/preset"
)

func main() {
	voiceName := flag.String("voice", "bell", "Voice to probe: bell|harmonica|kick|snare|hihat")
	note := flag.Int("note", 64, "Pitch id")
	duration := flag.Float64("duration", 3.0, "Render duration in seconds")
	releaseAfter := flag.Float64("release-after", 0.5, "Release the note after this many seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	fftSize := flag.Int("fft-size", 4096, "STFT window size")
	flag.Parse()

	voice, err := preset.NewVoice(*voiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	samples := render.VoiceNote(voice, *note, *releaseAfter, render.Options{
		SampleRate: *sampleRate,
		Duration:   *duration,
	})
	signal := render.ToFloat64(samples)

	fmt.Printf("Probing %s, pitch %d: %d frames @ %d Hz\n", voice.Name, *note, len(signal), *sampleRate)
	fmt.Printf("Peak %.4f (%.1f dBFS), RMS %.4f, %d zero crossings\n\n",
		analysis.Peak(signal), db(analysis.Peak(signal)),
		analysis.RMS(signal), analysis.ZeroCrossings(signal))

	plan, err := algofft.NewPlanReal64(*fftSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fft plan: %v\n", err)
		os.Exit(1)
	}

	hop := *fftSize / 2
	hann := make([]float64, *fftSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(*fftSize-1))
	}

	nBins := *fftSize / 2
	spec := make([]complex128, *fftSize/2+1)
	buf := make([]float64, *fftSize)
	avg := make([]float64, nBins)
	nFrames := 0

	for pos := 0; pos+*fftSize <= len(signal); pos += hop {
		for i := 0; i < *fftSize; i++ {
			buf[i] = signal[pos+i] * hann[i]
		}
		plan.Forward(spec, buf)
		for k := 1; k < nBins; k++ {
			avg[k] += cmplx.Abs(spec[k])
		}
		nFrames++
	}
	if nFrames == 0 {
		fmt.Fprintf(os.Stderr, "signal shorter than one FFT window\n")
		os.Exit(1)
	}
	for k := range avg {
		avg[k] /= float64(nFrames)
	}

	type band struct {
		name string
		loHz float64
		hiHz float64
	}
	bands := []band{
		{"sub-bass (20-100Hz)", 20, 100},
		{"bass (100-300Hz)", 100, 300},
		{"low-mid (300-1kHz)", 300, 1000},
		{"mid (1-3kHz)", 1000, 3000},
		{"hi-mid (3-6kHz)", 3000, 6000},
		{"high (6-12kHz)", 6000, 12000},
		{"air (12-20kHz)", 12000, 20000},
	}

	binHz := float64(*sampleRate) / float64(*fftSize)
	fmt.Printf("Average spectrum over %d STFT frames:\n", nFrames)
	for _, b := range bands {
		loK := clampBin(int(b.loHz/binHz), nBins)
		hiK := clampBin(int(b.hiHz/binHz), nBins)
		if loK >= hiK {
			continue
		}
		var power float64
		for k := loK; k <= hiK; k++ {
			power += avg[k] * avg[k]
		}
		fmt.Printf("  %-22s %8.1f dB\n", b.name, db(math.Sqrt(power/float64(hiK-loK+1))))
	}
}

func clampBin(k, nBins int) int {
	if k < 1 {
		return 1
	}
	if k >= nBins {
		return nBins - 1
	}
	return k
}

func db(v float64) float64 {
	return 20.0 * math.Log10(math.Max(v, 1e-12))
}
