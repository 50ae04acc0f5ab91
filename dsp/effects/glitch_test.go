package effects

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/internal/testutil"
)

const testSampleRate = 48000.0

func newTestGlitch(t *testing.T) *Glitch {
	t.Helper()
	g, err := NewGlitch(testSampleRate, WithSeed(4))
	if err != nil {
		t.Fatalf("NewGlitch() error = %v", err)
	}
	g.SetEnabled(true)
	g.Reset()
	return g
}

// counting returns a stereo buffer whose frame i holds first+i+1.
func counting(first, n int) core.Stereo {
	buf := core.NewStereo(n)
	for i := range n {
		v := float64(first + i + 1)
		buf[0][i], buf[1][i] = v, -v
	}
	return buf
}

func TestGlitchCapacityInvariant(t *testing.T) {
	for _, fs := range []float64{8000, 22050, 44100, 48000, 96000, 192000} {
		g, err := NewGlitch(fs)
		if err != nil {
			t.Fatalf("NewGlitch(%v) error = %v", fs, err)
		}

		rng := rand.New(rand.NewSource(int64(fs)))
		for range 200 {
			g.SetMinJump(rng.Float64() * 1200)
			g.SetMaxJump(rng.Float64() * 1200)
			g.SetLength(rng.Float64() * 300)
			g.SetRepeat(rng.Intn(10))

			jump := core.MsToSamples(max(g.MinJump(), g.MaxJump()), fs)
			need := jump + core.MsToSamples(g.Length(), fs)*g.Repeat()
			if need > g.Capacity() {
				t.Fatalf("fs=%v: jump %d + length*repeat exceeds capacity %d", fs, jump, g.Capacity())
			}
		}
	}
}

func TestGlitchProbabilityOneTriggersImmediately(t *testing.T) {
	g := newTestGlitch(t)
	g.SetProbability(1)
	g.SetLength(10)
	g.SetRepeat(3)

	frame := core.NewStereo(1)
	g.Process(frame)
	if !g.Glitching() {
		t.Fatal("first frame did not trigger a glitch")
	}

	total := core.MsToSamples(10, testSampleRate) * 3
	if g.Remaining() != total-1 {
		t.Fatalf("Remaining() = %d, want %d", g.Remaining(), total-1)
	}

	for i := 1; i < total; i++ {
		if !g.Glitching() {
			t.Fatalf("glitch ended after %d frames, want %d", i, total)
		}
		g.Process(frame)
	}
	if g.Glitching() {
		t.Fatal("glitch outlived length*repeat")
	}
}

func TestGlitchReplaysCapturedSegment(t *testing.T) {
	g := newTestGlitch(t)
	g.SetProbability(0)
	g.SetMinJump(1)
	g.SetMaxJump(1)
	g.SetLength(1)
	g.SetRepeat(2)
	seg := core.MsToSamples(1, testSampleRate)

	const warm = 1000
	g.Process(counting(0, warm))

	g.SetProbability(1)
	buf := counting(warm, 2*seg)
	g.Process(buf)

	// Trigger on frame warm; the loop starts seg-1 frames before it.
	for j := range 2 * seg {
		want := float64(warm - seg + 1 + j%seg + 1)
		if buf[0][j] != want || buf[1][j] != -want {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", j, buf[0][j], buf[1][j], want, -want)
		}
	}
}

func TestGlitchDisabledPassesThrough(t *testing.T) {
	g, _ := NewGlitch(testSampleRate)
	g.SetProbability(1)
	buf := counting(0, 512)
	want := append([]float64(nil), buf[0]...)
	g.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf[0], want, 0)
	if g.Glitching() {
		t.Fatal("disabled glitch triggered")
	}
}

func TestGlitchClampingAndState(t *testing.T) {
	g, _ := NewGlitch(testSampleRate)
	g.SetProbability(2)
	g.SetMinJump(0)
	g.SetMaxJump(5000)
	g.SetLength(-3)
	g.SetRepeat(99)

	want := GlitchState{Probability: 1, MinJump: 1, MaxJump: 1000, Length: 1, Repeat: 8}
	if got := g.State(); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}

	g.SetEnabled(true)
	n, _ := NewGlitch(testSampleRate)
	n.SetState(g.State())
	if n.State() != g.State() {
		t.Fatalf("round trip = %+v, want %+v", n.State(), g.State())
	}

	if changed, ok := n.SetParameter("repeat", 3.6); !ok || !changed || n.Repeat() != 4 {
		t.Fatalf("repeat = %d, want 4", n.Repeat())
	}
}

func TestGlitchProcessDoesNotAllocate(t *testing.T) {
	g := newTestGlitch(t)
	g.SetProbability(0.01)
	buf := core.NewStereo(512)
	testutil.RequireNoAllocs(t, func() { g.Process(buf) })
}
