package generators

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/internal/testutil"
)

func newTestCrackle(t *testing.T) *Crackle {
	t.Helper()
	c, err := NewCrackle(testSampleRate, WithSeed(3))
	if err != nil {
		t.Fatalf("NewCrackle() error = %v", err)
	}
	c.SetEnabled(true)
	c.SetRate(100)
	c.SetDuration(5)
	c.SetAmplitude(1)
	c.SetRandomness(0)
	c.SetBrightness(1)
	c.Reset()
	return c
}

func TestEnvelopeBoundaries(t *testing.T) {
	for _, shape := range []Shape{Exponential, Linear, Triangle} {
		t.Run(shape.String(), func(t *testing.T) {
			if got := Envelope(shape, 0); math.Abs(got-1) > 1e-3 {
				t.Fatalf("Envelope(0) = %v, want 1", got)
			}
			if got := Envelope(shape, 1); math.Abs(got) > 1e-3 {
				t.Fatalf("Envelope(1) = %v, want 0", got)
			}

			prev := Envelope(shape, 0)
			for i := 1; i <= 100; i++ {
				v := Envelope(shape, float64(i)/100)
				if v > prev+1e-12 {
					t.Fatalf("envelope rises at t=%v", float64(i)/100)
				}
				prev = v
			}
		})
	}

	if Envelope(Linear, -1) != 1 || Envelope(Linear, 2) != 0 {
		t.Fatal("progress outside [0, 1] is not clamped")
	}
	for _, tt := range []struct{ t, want float64 }{
		{0, 1}, {0.25, 1}, {0.5, 1}, {0.75, 0.5}, {1, 0},
	} {
		if got := Envelope(Triangle, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("triangle at %v = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestCrackleClamping(t *testing.T) {
	c, err := NewCrackle(testSampleRate)
	if err != nil {
		t.Fatalf("NewCrackle() error = %v", err)
	}

	tests := []struct {
		name string
		set  func(float64) bool
		get  func() float64
		in   float64
		want float64
	}{
		{"rate", c.SetRate, c.Rate, 500, 100},
		{"rate negative", c.SetRate, c.Rate, -1, 0},
		{"duration", c.SetDuration, c.Duration, 0, 1},
		{"amplitude", c.SetAmplitude, c.Amplitude, 3, 1},
		{"randomness", c.SetRandomness, c.Randomness, -2, 0},
		{"brightness", c.SetBrightness, c.Brightness, 9, 1},
		{"spread", c.SetSpread, c.Spread, -9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set(tt.in)
			if got := tt.get(); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}

	c.SetShape(Shape(7))
	if c.Shape() != Triangle {
		t.Fatalf("shape = %v, want triangle", c.Shape())
	}
}

func TestCrackleStateRoundTrip(t *testing.T) {
	m, _ := NewCrackle(testSampleRate)
	m.SetEnabled(true)
	m.SetRate(42)
	m.SetDuration(17)
	m.SetAmplitude(0.8)
	m.SetRandomness(0.25)
	m.SetBrightness(0.9)
	m.SetShape(Linear)
	m.SetSpread(0.6)

	want := m.State()
	n, _ := NewCrackle(testSampleRate)
	n.SetState(want)
	if got := n.State(); got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestCrackleZeroRateIsSilent(t *testing.T) {
	c := newTestCrackle(t)
	c.SetRate(0)
	out := render(c, 48000, 512)
	if p := testutil.Peak(out[0]); p != 0 {
		t.Fatalf("peak = %v, want 0", p)
	}
}

func TestCrackleProducesBoundedBursts(t *testing.T) {
	c := newTestCrackle(t)
	out := render(c, 48000, 480)
	testutil.RequireFinite(t, out[0])

	p := testutil.Peak(out[0])
	if p == 0 {
		t.Fatal("no bursts in one second at 100 bursts/s")
	}
	if p > 1 {
		t.Fatalf("peak = %v, want <= 1", p)
	}
	testutil.RequireSliceNearlyEqual(t, out[0], out[1], 0)
}

func TestCrackleBurstLength(t *testing.T) {
	c := newTestCrackle(t)
	c.SetDuration(2)
	buf := core.NewStereo(1)

	for range 48000 {
		c.Process(buf)
		if c.Bursting() {
			break
		}
	}
	if !c.Bursting() {
		t.Fatal("no burst triggered")
	}

	// The triggering sample is the first of 96.
	for range 95 {
		if !c.Bursting() {
			t.Fatal("burst ended early")
		}
		c.Process(buf)
	}
	if c.Bursting() {
		t.Fatal("burst did not end after its duration")
	}
}

func TestCrackleSpreadPans(t *testing.T) {
	c := newTestCrackle(t)
	c.SetSpread(1)
	out := render(c, 48000, 512)

	differ := false
	for i := range out[0] {
		if out[0][i] != out[1][i] {
			differ = true
			break
		}
	}
	if !differ {
		t.Fatal("spread 1 produced identical channels")
	}
}

func TestCrackleProcessDoesNotAllocate(t *testing.T) {
	c := newTestCrackle(t)
	c.SetEntropy(0.4)
	buf := core.NewStereo(700)
	testutil.RequireNoAllocs(t, func() { c.Process(buf) })
}
