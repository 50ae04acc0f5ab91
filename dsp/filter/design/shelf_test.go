package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
)

func TestHighShelfGainAtExtremes(t *testing.T) {
	const fs = 48000
	tests := []struct {
		name   string
		gainDB float64
	}{
		{name: "boost", gainDB: 12},
		{name: "cut", gainDB: -9},
		{name: "flat", gainDB: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := HighShelf(2000, tt.gainDB, DefaultSlope, fs)
			if db := c.MagnitudeDB(10, fs); math.Abs(db) > 0.05 {
				t.Fatalf("low-frequency gain = %v dB, want ~0", db)
			}
			if db := c.MagnitudeDB(22000, fs); math.Abs(db-tt.gainDB) > 0.5 {
				t.Fatalf("high-frequency gain = %v dB, want ~%v", db, tt.gainDB)
			}
			if db := c.MagnitudeDB(2000, fs); math.Abs(db-tt.gainDB/2) > 0.05 {
				t.Fatalf("midpoint gain = %v dB, want %v", db, tt.gainDB/2)
			}
		})
	}
}

func TestHighShelfInvalidInputsAreIdentity(t *testing.T) {
	for _, c := range []biquad.Coefficients{
		HighShelf(0, 6, 1, 48000),
		HighShelf(30000, 6, 1, 48000),
		HighShelf(1000, 6, 1, 0),
		HighShelf(1000, math.NaN(), 1, 48000),
	} {
		if c != biquad.Identity() {
			t.Fatalf("got %+v, want identity", c)
		}
	}
}

func TestHighShelfSlopeOutOfRangeFallsBack(t *testing.T) {
	want := HighShelf(4000, 6, DefaultSlope, 48000)
	if got := HighShelf(4000, 6, 3, 48000); got != want {
		t.Fatalf("slope 3 = %+v, want default-slope design %+v", got, want)
	}
}
