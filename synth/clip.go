package synth

import "github.com/cwbudde/algo-approx"

// SoftClip squashes x through a tanh-shaped curve so a summed pattern cannot
// leave full scale. drive sets how hard the knee bites; 1 is gentle. Output
// stays in (-1, 1).
func SoftClip(x, drive float64) float64 {
	if drive <= 0 {
		drive = 1.0
	}
	y := drive * x
	if y > 4.0 {
		y = 4.0
	}
	if y < -4.0 {
		y = -4.0
	}
	e := float64(approx.FastExp(float32(2.0 * y)))
	return (e - 1.0) / (e + 1.0)
}
