package playback

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-texture/dsp/core"
)

// ramp writes a running counter to the left channel and its negation to the
// right, so frame order is observable across block boundaries.
type ramp struct {
	next  float64
	calls int
}

func (r *ramp) Process(_, out core.Stereo) {
	r.calls++
	for i := range out.Len() {
		out[0][i] = r.next
		out[1][i] = -r.next
		r.next++
	}
}

func frameAt(p []byte, i int) (float32, float32) {
	l := math.Float32frombits(binary.LittleEndian.Uint32(p[i*BytesPerFrame:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(p[i*BytesPerFrame+4:]))
	return l, r
}

func TestStreamInterleavesAcrossBlocks(t *testing.T) {
	r := &ramp{}
	s := NewStream(r, 4)

	p := make([]byte, 10*BytesPerFrame)
	n, err := s.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(p) {
		t.Fatalf("n = %d, want %d", n, len(p))
	}
	for i := range 10 {
		l, rr := frameAt(p, i)
		if l != float32(i) || rr != -float32(i) {
			t.Fatalf("frame %d = (%v, %v)", i, l, rr)
		}
	}
	if r.calls != 3 {
		t.Fatalf("calls = %d, want 3", r.calls)
	}

	// The remainder of the third block is delivered before a new render.
	n, _ = s.Read(p[:2*BytesPerFrame])
	if n != 2*BytesPerFrame {
		t.Fatalf("n = %d", n)
	}
	if l, _ := frameAt(p, 1); l != 11 {
		t.Fatalf("continuation = %v, want 11", l)
	}
	if r.calls != 3 {
		t.Fatalf("calls = %d, want 3", r.calls)
	}
	if got := s.Frames(); got != 12 {
		t.Fatalf("Frames = %d, want 12", got)
	}
}

func TestStreamPartialFrame(t *testing.T) {
	s := NewStream(&ramp{}, 8)
	p := make([]byte, BytesPerFrame+3)
	n, err := s.Read(p)
	if err != nil || n != BytesPerFrame {
		t.Fatalf("Read = %d, %v", n, err)
	}
	n, err = s.Read(p[:3])
	if err != nil || n != 0 {
		t.Fatalf("short Read = %d, %v", n, err)
	}
}

func TestStreamDefaultBlock(t *testing.T) {
	s := NewStream(&ramp{}, 0)
	if got := s.block.Len(); got != 512 {
		t.Fatalf("block = %d, want 512", got)
	}
}
