//go:build !fastmath

package fastmath

import "math"

// Exp computes e^x using the standard library.
func Exp(x float64) float64 {
	return math.Exp(x)
}

// Exp2 computes 2^x using the standard library.
func Exp2(x float64) float64 {
	return math.Exp2(x)
}
