// Package window generates cosine-sum analysis windows for spectral
// measurement.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeFlatTop
	TypeRectangular

	typeCount
)

var typeNames = [typeCount]string{"hann", "hamming", "blackman", "blackman-harris", "flat-top", "rectangular"}

// Cosine-sum terms a0 - a1 cos(x) + a2 cos(2x) - ...
var terms = [typeCount][]float64{
	TypeHann:           {0.5, 0.5},
	TypeHamming:        {0.54, 0.46},
	TypeBlackman:       {0.42, 0.5, 0.08},
	TypeBlackmanHarris: {0.35875, 0.48829, 0.14128, 0.01168},
	TypeFlatTop:        {0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368},
	TypeRectangular:    {1},
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool { return t >= 0 && t < typeCount }

// ParseType resolves a name as printed by String, ignoring case.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("window: unknown type %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing instead of
// the symmetric form.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients of window t.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("window: invalid type: %d", t)
	}
	if length <= 0 {
		return nil, fmt.Errorf("window: length must be > 0: %d", length)
	}
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}
	if den == 0 {
		out[0] = 1
		return out, nil
	}
	a := terms[t]
	for i := range out {
		x := 2 * math.Pi * float64(i) / den
		var v, sign float64 = 0, 1
		for k, ak := range a {
			v += sign * ak * math.Cos(float64(k)*x)
			sign = -sign
		}
		out[i] = v
	}
	return out, nil
}

// Apply multiplies buf in place by coeffs, over the shorter length.
func Apply(buf, coeffs []float64) {
	n := min(len(buf), len(coeffs))
	vecmath.MulBlockInPlace(buf[:n], coeffs[:n])
}

// CoherentGain is the mean coefficient, the amplitude gain a windowed
// sinusoid sees at its bin centre.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	var s float64
	for _, c := range coeffs {
		s += c
	}
	return s / float64(len(coeffs))
}

// ENBW is the equivalent noise bandwidth in bins.
func ENBW(coeffs []float64) float64 {
	var s, s2 float64
	for _, c := range coeffs {
		s += c
		s2 += c * c
	}
	if s == 0 {
		return 0
	}
	return float64(len(coeffs)) * s2 / (s * s)
}
