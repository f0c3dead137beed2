package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/internal/fitcommon"
	"github.com/cwbudde/algo-synth/internal/render"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

// knobDef describes one ADSR parameter the optimizer may move, with its
// physical range. Candidates live in normalized [0,1] space.
type knobDef struct {
	Name string
	Min  float64
	Max  float64
}

var knobs = []knobDef{
	{Name: "attack_time", Min: 0.0, Max: 0.5},
	{Name: "decay_time", Min: 0.01, Max: 2.0},
	{Name: "sustain_amplitude", Min: 0.0, Max: 1.0},
	{Name: "release_time", Min: 0.01, Max: 2.0},
}

type fitReport struct {
	Voice        string             `json:"voice"`
	Reference    string             `json:"reference"`
	Note         int                `json:"note"`
	ReleaseAfter float64            `json:"release_after"`
	SampleRate   int                `json:"sample_rate"`
	Variant      string             `json:"variant"`
	Evals        int                `json:"evals"`
	ElapsedSec   float64            `json:"elapsed_sec"`
	Score        float64            `json:"score"`
	Envelope     map[string]float64 `json:"envelope"`
}

func main() {
	referencePath := flag.String("reference", "", "Reference WAV file to fit against (required)")
	voiceName := flag.String("voice", "bell", "Voice whose envelope is fitted: bell|harmonica|kick|snare|hihat")
	note := flag.Int("note", 64, "Pitch id used for candidate renders")
	releaseAfter := flag.Float64("release-after", 0.5, "Release the note after this many seconds")
	sampleRate := flag.Int("sample-rate", 22050, "Evaluation sample rate in Hz")
	variant := flag.String("variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	pop := flag.Int("pop", 20, "Mayfly population size")
	iters := flag.Int("iters", 40, "Mayfly iterations")
	seed := flag.Int64("seed", 1, "Random seed")
	outputPath := flag.String("output", "env_fit.json", "Fit report JSON path")
	flag.Parse()

	if *referencePath == "" {
		fmt.Fprintf(os.Stderr, "Error: -reference is required\n")
		flag.Usage()
		os.Exit(1)
	}

	reference, refRate, err := fitcommon.ReadWAVMono(*referencePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading reference %q: %v\n", *referencePath, err)
		os.Exit(1)
	}
	reference, err = fitcommon.ResampleIfNeeded(reference, refRate, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling reference: %v\n", err)
		os.Exit(1)
	}
	// PCM decodes at integer scale; fold to unit peak so envelopes from
	// rendered candidates compare on equal footing.
	reference = analysis.NormalizePeak(reference)
	reference = analysis.TrimLeadingSilence(reference, 1e-4)
	if len(reference) == 0 {
		fmt.Fprintf(os.Stderr, "Error: reference is silent\n")
		os.Exit(1)
	}

	// ~10ms analysis hop.
	hop := fitcommon.MaxInt(1, *sampleRate/100)
	refEnv := analysis.NormalizePeak(analysis.EnvelopeRMS(reference, hop))
	duration := float64(len(reference)) / float64(*sampleRate)

	baseVoice, err := preset.NewVoice(*voiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fitting %s envelope to %s: %.2fs @ %d Hz, %d envelope frames\n",
		baseVoice.Name, *referencePath, duration, *sampleRate, len(refEnv))

	evals := 0
	bestScore := math.Inf(1)
	bestPos := make([]float64, len(knobs))
	for i := range bestPos {
		bestPos[i] = 0.5
	}
	objective := func(pos []float64) float64 {
		evals++
		v, err := preset.NewVoice(*voiceName)
		if err != nil {
			return math.Inf(1)
		}
		applyCandidate(v, pos)
		v.SetRandom(rand.New(rand.NewSource(*seed)))
		out := render.VoiceNote(v, *note, *releaseAfter, render.Options{
			SampleRate: *sampleRate,
			Duration:   duration,
		})
		candEnv := analysis.NormalizePeak(analysis.EnvelopeRMS(render.ToFloat64(out), hop))
		score := analysis.EnvelopeRMSE(refEnv, candEnv)
		if score < bestScore {
			bestScore = score
			copy(bestPos, pos)
			fmt.Printf("Improved eval=%d score=%.6f\n", evals, score)
		}
		return score
	}

	cfg, err := newMayflyConfig(strings.ToLower(*variant), *pop, len(knobs), *iters)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Rand = rand.New(rand.NewSource(*seed))
	cfg.ObjectiveFunc = objective

	start := time.Now()
	if _, err := runMayfly(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Optimization failed: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start).Seconds()

	applyCandidate(baseVoice, bestPos)
	envelope := map[string]float64{
		"attack_time":       baseVoice.Env.AttackTime,
		"decay_time":        baseVoice.Env.DecayTime,
		"sustain_amplitude": baseVoice.Env.SustainAmplitude,
		"release_time":      baseVoice.Env.ReleaseTime,
	}

	fmt.Printf("Done: score=%.6f after %d evals in %.1fs\n", bestScore, evals, elapsed)
	for _, d := range knobs {
		fmt.Printf("  %-18s %.4f\n", d.Name, envelope[d.Name])
	}

	report := fitReport{
		Voice:        *voiceName,
		Reference:    *referencePath,
		Note:         *note,
		ReleaseAfter: *releaseAfter,
		SampleRate:   *sampleRate,
		Variant:      strings.ToLower(*variant),
		Evals:        evals,
		ElapsedSec:   elapsed,
		Score:        bestScore,
		Envelope:     envelope,
	}
	if err := writeReport(*outputPath, &report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outputPath)
}

// applyCandidate maps a normalized position vector onto the voice envelope.
func applyCandidate(v *synth.Voice, pos []float64) {
	vals := make([]float64, len(knobs))
	for i, d := range knobs {
		p := 0.5
		if i < len(pos) {
			p = fitcommon.Clamp(pos[i], 0.0, 1.0)
		}
		vals[i] = d.Min + p*(d.Max-d.Min)
	}
	v.Env.AttackTime = vals[0]
	v.Env.DecayTime = vals[1]
	v.Env.SustainAmplitude = vals[2]
	v.Env.ReleaseTime = vals[3]
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = fitcommon.MaxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

func writeReport(path string, report *fitReport) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
