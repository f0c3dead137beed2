// Package fitcommon holds small helpers shared by the command-line tools:
// WAV reading/writing, sample-rate conversion and numeric utilities.
package fitcommon

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
