// Package delay provides the fixed-capacity stereo history buffer shared by
// the glitch and pitch-drift processors.
package delay

import (
	"fmt"
	"math"
)

// Ring is a circular stereo sample history. The write head advances one
// frame per Write; reads address frames either relative to the write head
// (Read) or by absolute position (At, ReadLinear).
type Ring struct {
	buffer   [2][]float64
	writePos int
}

// New returns a ring of fixed size frames.
func New(size int) (*Ring, error) {
	if size <= 1 {
		return nil, fmt.Errorf("delay ring size must be > 1: %d", size)
	}
	return &Ring{buffer: [2][]float64{make([]float64, size), make([]float64, size)}}, nil
}

// Len returns the capacity in frames.
func (r *Ring) Len() int {
	return len(r.buffer[0])
}

// WritePos returns the index the next frame will be written to.
func (r *Ring) WritePos() int {
	return r.writePos
}

// Write stores one stereo frame and advances the write head.
func (r *Ring) Write(left, right float64) {
	r.buffer[0][r.writePos] = left
	r.buffer[1][r.writePos] = right
	r.writePos++
	if r.writePos >= len(r.buffer[0]) {
		r.writePos = 0
	}
}

// Read returns the sample of channel ch written delay frames ago;
// delay 1 is the most recent frame.
func (r *Ring) Read(ch, delay int) float64 {
	return r.At(ch, r.writePos-delay)
}

// At returns the sample of channel ch at absolute position pos, wrapped
// into the buffer.
func (r *Ring) At(ch, pos int) float64 {
	return r.buffer[ch][r.Wrap(pos)]
}

// ReadLinear returns the linearly interpolated sample of channel ch at the
// fractional absolute position pos.
func (r *Ring) ReadLinear(ch int, pos float64) float64 {
	i := math.Floor(pos)
	frac := pos - i
	x0 := r.At(ch, int(i))
	x1 := r.At(ch, int(i)+1)
	return x0 + frac*(x1-x0)
}

// Wrap maps any integer position into [0, Len).
func (r *Ring) Wrap(pos int) int {
	size := len(r.buffer[0])
	pos %= size
	if pos < 0 {
		pos += size
	}
	return pos
}

// WrapFloat maps a fractional position into [0, Len).
func (r *Ring) WrapFloat(pos float64) float64 {
	size := float64(len(r.buffer[0]))
	pos = math.Mod(pos, size)
	if pos < 0 {
		pos += size
	}
	return pos
}

// Distance returns how many frames pos trails the write head, in [0, Len).
func (r *Ring) Distance(pos float64) float64 {
	return r.WrapFloat(float64(r.writePos) - pos)
}

// Reset clears the history and rewinds the write head.
func (r *Ring) Reset() {
	clear(r.buffer[0])
	clear(r.buffer[1])
	r.writePos = 0
}
