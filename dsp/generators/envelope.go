package generators

import (
	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/internal/fastmath"
)

// Shape selects the crackle burst envelope.
type Shape int

const (
	Exponential Shape = iota
	Linear
	Triangle
)

// ShapeLabels are the display names of each Shape.
var ShapeLabels = []string{"exponential", "linear", "triangle"}

func (s Shape) String() string {
	if s < Exponential || s > Triangle {
		return "unknown"
	}
	return ShapeLabels[s]
}

// expDecay is the decay constant k of the exponential envelope.
const expDecay = 10.0

var expFloor = fastmath.Exp(-expDecay)

// Envelope evaluates shape at burst progress t in [0, 1]. All shapes start
// at 1 and end at 0.
//
//	Exponential: (e^(-k t) - e^(-k)) / (1 - e^(-k)), k = 10
//	Linear:      1 - t
//	Triangle:    1 until t = 0.5, then a linear fall to 0
//
// Triangle is a half plateau followed by a ramp, not a symmetric triangle
// peaking mid-burst, so that every shape starts at full level.
func Envelope(shape Shape, t float64) float64 {
	t = core.Clamp(t, 0, 1)
	switch shape {
	case Linear:
		return 1 - t
	case Triangle:
		return min(1, 2*(1-t))
	default:
		return (fastmath.Exp(-expDecay*t) - expFloor) / (1 - expFloor)
	}
}
