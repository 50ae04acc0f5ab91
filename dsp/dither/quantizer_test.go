package dither

import (
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"bit depth low", WithBitDepth(1)},
		{"bit depth high", WithBitDepth(25)},
		{"bad type", WithType(Type(9))},
		{"negative amplitude", WithAmplitude(-1)},
		{"NaN amplitude", WithAmplitude(math.NaN())},
		{"bad shape", WithShape(Shape(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer(nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 16 || q.Type() != Triangular || q.Limit() != 32767 {
		t.Fatalf("defaults = %v limit %d", q, q.Limit())
	}
	if got := q.String(); got != "16-bit triangular dither" {
		t.Fatalf("String = %q", got)
	}
}

func TestQuantizerUndithered(t *testing.T) {
	q, err := NewQuantizer(WithType(None))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-3, -32767},
		{0.5, 16384},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := q.Int(tt.in); got != tt.want {
			t.Errorf("Int(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTriangularDitherBounds(t *testing.T) {
	q, err := NewQuantizer(WithBitDepth(8), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	// TPDF noise of one LSB peak moves a value by at most one code.
	x := 0.3
	center := int(math.Round(x * 127))
	seen := map[int]bool{}
	for range 2000 {
		n := q.Int(x)
		if n < center-1 || n > center+1 {
			t.Fatalf("Int = %d, want within 1 of %d", n, center)
		}
		seen[n] = true
	}
	if len(seen) < 2 {
		t.Fatal("dither produced a constant code")
	}
}

func TestDitherMeanIsUnbiased(t *testing.T) {
	q, err := NewQuantizer(WithBitDepth(8), WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}
	// A level between two codes averages to itself once dithered.
	x := 10.25 / 127
	var sum float64
	const n = 40000
	for range n {
		sum += float64(q.Int(x))
	}
	if mean := sum / n; math.Abs(mean-10.25) > 0.05 {
		t.Fatalf("mean = %v, want 10.25", mean)
	}
}

func TestQuantizerResetReproduces(t *testing.T) {
	q, err := NewQuantizer(WithSeed(5), WithShape(FWeighted))
	if err != nil {
		t.Fatal(err)
	}
	first := make([]int, 64)
	for i := range first {
		first[i] = q.Int(0.1 * math.Sin(float64(i)))
	}
	q.Reset()
	for i := range first {
		if got := q.Int(0.1 * math.Sin(float64(i))); got != first[i] {
			t.Fatalf("sample %d = %d, want %d", i, got, first[i])
		}
	}
}

func TestFirstOrderShapingCancelsError(t *testing.T) {
	q, err := NewQuantizer(WithType(None), WithShape(FirstOrder), WithBitDepth(4))
	if err != nil {
		t.Fatal(err)
	}
	// With first-order feedback the running sum of the output tracks the
	// running sum of the input to within one code.
	x := 0.23
	var in, out float64
	for range 500 {
		in += x * 7
		out += float64(q.Int(x))
		if math.Abs(in-out) > 1 {
			t.Fatalf("accumulated error %v", in-out)
		}
	}
}

func TestShapeAndTypeNames(t *testing.T) {
	for s := Flat; s < shapeCount; s++ {
		if s.String() == "" || !s.Valid() {
			t.Fatalf("shape %d", s)
		}
	}
	if Shape(9).Valid() || Shape(9).String() != "Shape(9)" {
		t.Fatal("invalid shape reported valid")
	}
	for ty := None; ty < typeCount; ty++ {
		got, err := ParseType(ty.String())
		if err != nil || got != ty {
			t.Fatalf("ParseType(%q) = %v, %v", ty, got, err)
		}
	}
	if _, err := ParseType("gaussian"); err == nil {
		t.Fatal("expected error")
	}
}
