package window

import (
	"math"
	"testing"
)

func TestGenerateProperties(t *testing.T) {
	tests := []struct {
		typ  Type
		cg   float64
		enbw float64
	}{
		{TypeHann, 0.5, 1.5},
		{TypeHamming, 0.54, 1.363},
		{TypeBlackman, 0.42, 1.727},
		{TypeBlackmanHarris, 0.35875, 2.004},
		{TypeFlatTop, 0.2156, 3.77},
		{TypeRectangular, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			w, err := Generate(tt.typ, 4096, WithPeriodic())
			if err != nil {
				t.Fatal(err)
			}
			if got := CoherentGain(w); math.Abs(got-tt.cg) > 1e-3 {
				t.Errorf("coherent gain = %v, want %v", got, tt.cg)
			}
			if got := ENBW(w); math.Abs(got-tt.enbw) > 0.01 {
				t.Errorf("ENBW = %v, want %v", got, tt.enbw)
			}
		})
	}
}

func TestSymmetricForm(t *testing.T) {
	w, err := Generate(TypeBlackman, 65)
	if err != nil {
		t.Fatal(err)
	}
	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("w[%d] = %v, mirror %v", i, w[i], w[len(w)-1-i])
		}
	}
	if math.Abs(w[32]-1) > 1e-12 {
		t.Fatalf("peak = %v, want 1", w[32])
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("expected length error")
	}
	if _, err := Generate(Type(42), 8); err == nil {
		t.Fatal("expected type error")
	}
	if w, err := Generate(TypeHann, 1); err != nil || w[0] != 1 {
		t.Fatalf("single point = %v, %v", w, err)
	}
}

func TestParseType(t *testing.T) {
	for ty := TypeHann; ty < typeCount; ty++ {
		got, err := ParseType(ty.String())
		if err != nil || got != ty {
			t.Fatalf("ParseType(%q) = %v, %v", ty, got, err)
		}
	}
	if got, err := ParseType("Hann"); err != nil || got != TypeHann {
		t.Fatalf("case-insensitive parse = %v, %v", got, err)
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error")
	}
}
