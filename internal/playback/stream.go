// Package playback feeds rendered stereo audio to the system output.
//
// A Stream adapts a block renderer to an io.Reader producing interleaved
// little-endian float32 frames, the layout oto expects for
// oto.FormatFloat32LE with two channels. Player owns the oto context.
package playback

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cwbudde/algo-texture/dsp/core"
)

// BytesPerFrame is the size of one interleaved stereo float32 frame.
const BytesPerFrame = 8

// Renderer produces audio into out. An empty in means "no input".
type Renderer interface {
	Process(in, out core.Stereo)
}

// Stream pulls blocks from a Renderer on demand.
type Stream struct {
	mu     sync.Mutex
	r      Renderer
	block  core.Stereo
	pos    int
	frames int64
}

// NewStream returns a stream that renders blockSize frames at a time.
func NewStream(r Renderer, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = 512
	}
	s := &Stream{r: r, block: core.NewStereo(blockSize)}
	s.pos = blockSize
	return s
}

// Read fills p with whole frames. A trailing partial frame is left untouched.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(p) / BytesPerFrame
	size := s.block.Len()
	off := 0
	for range frames {
		if s.pos == size {
			s.r.Process(core.Stereo{}, s.block)
			s.pos = 0
		}
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(s.block[0][s.pos])))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(float32(s.block[1][s.pos])))
		s.pos++
		off += BytesPerFrame
	}
	s.frames += int64(frames)
	return off, nil
}

// Frames reports how many frames have been delivered so far.
func (s *Stream) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
