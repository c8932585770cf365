package models

import "math"

// GainFactor converts a slider level to a linear amplitude multiplier
// on a decibel-style curve: 10^(level/20). Level 0 means "as uploaded"
// (factor 1.0); +20 is roughly x10, -20 roughly x0.1.
func GainFactor(level float64) float64 {
	if level == 0 {
		return 1.0
	}
	return math.Pow(10, level/20)
}
