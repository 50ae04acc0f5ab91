//go:build fastmath

package fastmath

import "github.com/meko-christian/algo-approx"

// ln2 is the natural logarithm of 2, used for base conversions.
const ln2 = 0.693147180559945309417232121458

// Exp computes e^x using a fast approximation.
func Exp(x float64) float64 {
	return approx.FastExp(x)
}

// Exp2 computes 2^x using the identity 2^x = e^(x*ln2).
func Exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
