package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
	c := DeterministicNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRMSAndPeak(t *testing.T) {
	x := []float64{1, -1, 1, -1}
	if got := RMS(x); got != 1 {
		t.Fatalf("RMS = %v, want 1", got)
	}
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak = %v, want 0.7", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
	sine := DeterministicSine(1000, 48000, 1, 4800)
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-3 {
		t.Fatalf("sine RMS = %v, want %v", got, 1/math.Sqrt2)
	}
}

func TestRampAndDualMono(t *testing.T) {
	r := Ramp(1, 4)
	if r[0] != 0.25 || r[3] != 1 {
		t.Fatalf("Ramp = %v", r)
	}
	s := DualMono(r)
	s[0][0] = 9
	if s[1][0] != 0.25 || r[0] != 0.25 {
		t.Fatal("DualMono must copy each channel")
	}
	if dc := DC(0.5, 3); dc[2] != 0.5 {
		t.Fatalf("DC = %v", dc)
	}
}
