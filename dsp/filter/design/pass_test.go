package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
)

func TestHighpassResponse(t *testing.T) {
	const fs = 48000
	c := Highpass(100, 1/math.Sqrt2, fs)

	if db := c.MagnitudeDB(100, fs); math.Abs(db+3.01) > 0.05 {
		t.Fatalf("corner gain = %v dB, want -3", db)
	}
	if db := c.MagnitudeDB(10000, fs); math.Abs(db) > 0.05 {
		t.Fatalf("passband gain = %v dB, want 0", db)
	}
	// Second order: 12 dB per octave well below the corner.
	if d := c.MagnitudeDB(25, fs) - c.MagnitudeDB(12.5, fs); math.Abs(d-12) > 0.3 {
		t.Fatalf("stopband slope = %v dB/oct, want 12", d)
	}
}

func TestHighpassInvalidInputsAreIdentity(t *testing.T) {
	for _, c := range []biquad.Coefficients{
		Highpass(0, 0.7, 48000),
		Highpass(30000, 0.7, 48000),
		Highpass(100, 0, 48000),
		Highpass(100, math.NaN(), 48000),
	} {
		if c != biquad.Identity() {
			t.Fatalf("got %+v, want identity", c)
		}
	}
}
