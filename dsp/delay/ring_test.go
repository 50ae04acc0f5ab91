package delay

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		if _, err := New(size); err == nil {
			t.Fatalf("expected error for size=%d", size)
		}
	}
}

func TestReadRelativeToWriteHead(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		r.Write(float64(i), -float64(i))
	}
	if got := r.Read(0, 1); got != 7 {
		t.Fatalf("delay 1: got %v want 7", got)
	}
	if got := r.Read(1, 3); got != -5 {
		t.Fatalf("delay 3 right: got %v want -5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	r, _ := New(4)
	for i := range 10 {
		r.Write(float64(i), 0)
	}
	// Holds 6..9, write head at 10 mod 4 = 2.
	if r.WritePos() != 2 {
		t.Fatalf("write pos = %d, want 2", r.WritePos())
	}
	for delay, want := range map[int]float64{1: 9, 2: 8, 3: 7, 4: 6} {
		if got := r.Read(0, delay); got != want {
			t.Fatalf("delay %d: got %v want %v", delay, got, want)
		}
	}
}

func TestReadLinearInterpolatesAcrossWrap(t *testing.T) {
	r, _ := New(4)
	for _, v := range []float64{0, 1, 2, 3} {
		r.Write(v, v)
	}

	tests := []struct {
		pos, want float64
	}{
		{pos: 1.5, want: 1.5},
		{pos: 3.5, want: 1.5}, // between index 3 (3) and index 0 (0)
		{pos: -0.5, want: 1.5},
		{pos: 6.25, want: 2.25},
	}
	for _, tt := range tests {
		if got := r.ReadLinear(0, tt.pos); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("ReadLinear(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestDistanceAndWrap(t *testing.T) {
	r, _ := New(8)
	for range 3 {
		r.Write(1, 1)
	}
	if got := r.Distance(1); got != 2 {
		t.Fatalf("Distance(1) = %v, want 2", got)
	}
	if got := r.Distance(5); got != 6 {
		t.Fatalf("Distance(5) = %v, want 6", got)
	}
	if got := r.Wrap(-1); got != 7 {
		t.Fatalf("Wrap(-1) = %d, want 7", got)
	}
	if got := r.WrapFloat(-0.5); got != 7.5 {
		t.Fatalf("WrapFloat(-0.5) = %v, want 7.5", got)
	}
}

func TestReset(t *testing.T) {
	r, _ := New(4)
	r.Write(1, 1)
	r.Reset()
	if r.WritePos() != 0 || r.At(0, 0) != 0 {
		t.Fatal("Reset did not clear state")
	}
}
