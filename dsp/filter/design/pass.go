package design

import (
	"math"

	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
)

// Highpass designs an RBJ second-order highpass with corner freq (Hz) and
// quality q. Invalid arguments return the identity section.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}
