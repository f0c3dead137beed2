// Package analysis provides objective measurements over rendered audio
// buffers: levels, zero crossings and loudness envelopes. It is used by the
// fitting and probing tools and by tests; nothing here runs on the audio
// path.
package analysis

import "math"

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, v := range signal {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square level of the signal, 0 for an empty one.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range signal {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// ZeroCrossings counts sign changes. Exact zeros are attributed to the
// previous sign so a silent buffer counts none.
func ZeroCrossings(signal []float64) int {
	count := 0
	prev := 0.0
	for _, v := range signal {
		if v == 0.0 {
			continue
		}
		if prev != 0.0 && (v > 0) != (prev > 0) {
			count++
		}
		prev = v
	}
	return count
}

// EnvelopeRMS returns the hop-windowed RMS contour of the signal: one value
// per hop samples. A trailing partial window is measured over what remains.
func EnvelopeRMS(signal []float64, hop int) []float64 {
	if hop <= 0 || len(signal) == 0 {
		return nil
	}
	out := make([]float64, 0, (len(signal)+hop-1)/hop)
	for start := 0; start < len(signal); start += hop {
		end := start + hop
		if end > len(signal) {
			end = len(signal)
		}
		out = append(out, RMS(signal[start:end]))
	}
	return out
}

// TrimLeadingSilence drops samples from the front until one exceeds the
// threshold in magnitude.
func TrimLeadingSilence(signal []float64, threshold float64) []float64 {
	for i, v := range signal {
		if math.Abs(v) > threshold {
			return signal[i:]
		}
	}
	return nil
}

// NormalizePeak scales the signal so its largest absolute value is 1. A
// silent signal is returned unchanged.
func NormalizePeak(signal []float64) []float64 {
	peak := Peak(signal)
	if peak == 0.0 {
		return signal
	}
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v / peak
	}
	return out
}

// EnvelopeRMSE returns the root-mean-square error between two envelope
// contours, comparing up to the shorter length.
func EnvelopeRMSE(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}
