package fastmath

import (
	"math"
	"testing"
)

func TestExpMatchesStdlib(t *testing.T) {
	for _, x := range []float64{-10, -2.5, -0.1, 0, 0.5, 3} {
		want := math.Exp(x)
		if got := Exp(x); math.Abs(got-want) > 1e-3*want {
			t.Fatalf("Exp(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestExp2MatchesStdlib(t *testing.T) {
	for _, x := range []float64{-1, -0.25, 0, 1.0 / 12, 1} {
		want := math.Exp2(x)
		if got := Exp2(x); math.Abs(got-want) > 1e-3*want {
			t.Fatalf("Exp2(%v) = %v, want %v", x, got, want)
		}
	}
}
