package entropy

import "testing"

func TestZeroDepthIsSilent(t *testing.T) {
	s, err := New(48000, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.SetRate(20)
	for range 200 {
		if v := s.Advance(512); v != 0 {
			t.Fatalf("value = %v with depth 0", v)
		}
	}
}

func TestValueStaysWithinDepth(t *testing.T) {
	s, _ := New(48000, 2)
	s.SetRate(10)
	s.SetDepth(0.6)

	moved := false
	first := s.Value()
	for range 1000 {
		v := s.Advance(256)
		if v < 0 || v > 0.6 {
			t.Fatalf("value %v outside [0, 0.6]", v)
		}
		if v != first {
			moved = true
		}
	}
	if !moved {
		t.Fatal("entropy never moved")
	}
}

func TestDeterministicPerSeed(t *testing.T) {
	a, _ := New(48000, 9)
	b, _ := New(48000, 9)
	a.SetDepth(1)
	b.SetDepth(1)
	for i := range 100 {
		if va, vb := a.Advance(300), b.Advance(300); va != vb {
			t.Fatalf("block %d: %v != %v", i, va, vb)
		}
	}

	a.Reset()
	c, _ := New(48000, 9)
	c.SetDepth(1)
	for i := range 10 {
		if va, vc := a.Advance(300), c.Advance(300); va != vc {
			t.Fatalf("after reset block %d: %v != %v", i, va, vc)
		}
	}
}

func TestSettersClamp(t *testing.T) {
	s, _ := New(48000, 1)
	if !s.SetRate(1000) || s.Rate() != RateRange.Max {
		t.Fatalf("rate = %v, want %v", s.Rate(), RateRange.Max)
	}
	if !s.SetDepth(-3) && s.Depth() != 0 {
		t.Fatalf("depth = %v, want 0", s.Depth())
	}
	if s.SetDepth(0) {
		t.Fatal("unchanged depth reported a change")
	}
}
