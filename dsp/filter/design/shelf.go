package design

import (
	"math"

	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
)

// DefaultSlope is the steepest shelf slope without a magnitude bump.
const DefaultSlope = 1.0

// HighShelf designs a high-shelf biquad with gain in dB at the shelf
// midpoint freq (Hz). slope is the RBJ shelf slope S; S=1 equals Q=1/sqrt(2).
func HighShelf(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	alpha := math.Sin(w0) / 2 * math.Sqrt((a+1/a)*(1/normalizedSlope(slope)-1)+2)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

// normalizedSlope keeps S in (0, 1]; larger slopes overshoot.
func normalizedSlope(s float64) float64 {
	if s <= 0 || s > 1 || math.IsNaN(s) {
		return DefaultSlope
	}

	return s
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
