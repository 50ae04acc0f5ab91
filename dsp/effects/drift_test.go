package effects

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/internal/testutil"
)

func newTestDrift(t *testing.T, opts ...Option) *Drift {
	t.Helper()
	d, err := NewDrift(testSampleRate, opts...)
	if err != nil {
		t.Fatalf("NewDrift() error = %v", err)
	}
	d.SetEnabled(true)
	d.Reset()
	return d
}

func TestNewDriftValidation(t *testing.T) {
	if _, err := NewDrift(testSampleRate, WithRingSize(8)); err == nil {
		t.Fatal("expected error for tiny ring")
	}
	if _, err := NewDrift(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestDriftRingSafety(t *testing.T) {
	d := newTestDrift(t, WithRingSize(1024))
	rng := rand.New(rand.NewSource(2))
	buf := core.NewStereo(700)

	for i := range 500 {
		if i%10 == 0 {
			d.SetPitch(rng.Float64()*8 - 4)
			d.SetFine(rng.Float64()*300 - 150)
			d.SetDepth(rng.Float64())
			d.SetDrift(rng.Float64())
		}
		d.SetEntropy(rng.Float64())
		n := 1 + rng.Intn(len(buf[0]))
		d.Process(buf.Slice(0, n))

		if dist := d.Delay(); dist < d.MinDelay() || dist > 1022 {
			t.Fatalf("block %d: read delay %v outside [%v, 1022]", i, dist, d.MinDelay())
		}
	}
}

func TestDriftUnityRatioIsPureDelay(t *testing.T) {
	d := newTestDrift(t, WithRingSize(64))
	in := testutil.Ramp(1, 200)
	buf := testutil.DualMono(append([]float64(nil), in...))
	d.Process(buf)

	// Read head sits at the middle of [32, 62] frames behind the write head.
	const lag = 46
	for i := lag; i < len(in); i++ {
		if buf[0][i] != in[i-lag] {
			t.Fatalf("frame %d = %v, want %v", i, buf[0][i], in[i-lag])
		}
	}
	if d.Ratio() != 1 {
		t.Fatalf("Ratio() = %v, want 1", d.Ratio())
	}
}

func TestDriftRatio(t *testing.T) {
	tests := []struct {
		name                  string
		pitch, fine, depth, e float64
		want                  float64
	}{
		{"down", -3, -100, 0, 0, math.Exp2(-4.0 / 12)},
		{"up", 2, 0, 0, 0, math.Exp2(2.0 / 12)},
		{"clamped high", 3, 100, 1, 1, 2},
		{"entropy", 0, 0, 0.25, 1, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDrift(t)
			d.SetPitch(tt.pitch)
			d.SetFine(tt.fine)
			d.SetDepth(tt.depth)
			d.SetEntropy(tt.e)
			d.Reset()
			d.Process(core.NewStereo(4))
			if math.Abs(d.Ratio()-tt.want) > 1e-9 {
				t.Fatalf("Ratio() = %v, want %v", d.Ratio(), tt.want)
			}
		})
	}
}

func TestDriftClampingAndState(t *testing.T) {
	d, _ := NewDrift(testSampleRate)
	d.SetPitch(-12)
	d.SetFine(400)
	d.SetDepth(-1)
	d.SetDrift(7)

	want := DriftState{Pitch: -3, Fine: 100, Depth: 0, Drift: 1}
	if got := d.State(); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}

	d.SetEnabled(true)
	n, _ := NewDrift(testSampleRate)
	n.SetState(d.State())
	if n.State() != d.State() {
		t.Fatalf("round trip = %+v, want %+v", n.State(), d.State())
	}
}

func TestDriftProcessDoesNotAllocate(t *testing.T) {
	d := newTestDrift(t)
	d.SetDepth(0.5)
	d.SetEntropy(0.3)
	buf := core.NewStereo(512)
	testutil.RequireNoAllocs(t, func() { d.Process(buf) })
}
