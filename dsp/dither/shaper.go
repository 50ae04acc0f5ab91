package dither

import "fmt"

// Shape selects a noise-shaping filter for the quantization error.
type Shape int

const (
	// Flat leaves the error spectrum white.
	Flat Shape = iota
	// FirstOrder feeds back the previous error once.
	FirstOrder
	// SecondOrder is a simple 2nd-order highpass.
	SecondOrder
	// FWeighted is a 9th-order F-weighted curve.
	FWeighted

	shapeCount
)

var shapeNames = [shapeCount]string{"flat", "first-order", "second-order", "f-weighted"}

var shapeCoeffs = [shapeCount][]float64{
	Flat:        nil,
	FirstOrder:  {1},
	SecondOrder: {1.0, -0.5},
	FWeighted:   {2.412, -3.370, 3.937, -4.174, 3.353, -2.205, 1.281, -0.569, 0.0847},
}

func (s Shape) String() string {
	if s.Valid() {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool { return s >= 0 && s < shapeCount }

// shaper subtracts weighted past errors from the next input. history[0] is
// the most recent error.
type shaper struct {
	coeffs  []float64
	history []float64
}

func newShaper(s Shape) shaper {
	c := shapeCoeffs[s]
	return shaper{coeffs: c, history: make([]float64, len(c))}
}

func (s *shaper) shape(x float64) float64 {
	for i, c := range s.coeffs {
		x -= c * s.history[i]
	}
	return x
}

func (s *shaper) record(err float64) {
	if len(s.history) == 0 {
		return
	}
	copy(s.history[1:], s.history[:len(s.history)-1])
	s.history[0] = err
}

func (s *shaper) reset() { clear(s.history) }
