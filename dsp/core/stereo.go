package core

import "github.com/cwbudde/algo-vecmath"

// Stereo is a pair of channel buffers (left, right) processed in place.
// Both channels are expected to share the same length; helpers operate on
// the shorter of the two when they differ.
type Stereo [2][]float64

// NewStereo allocates a zeroed stereo buffer of n frames.
func NewStereo(n int) Stereo {
	if n < 0 {
		n = 0
	}
	return Stereo{make([]float64, n), make([]float64, n)}
}

// Len returns the number of frames both channels can hold.
func (s Stereo) Len() int {
	n := len(s[0])
	if len(s[1]) < n {
		n = len(s[1])
	}
	return n
}

// Slice returns the frame range [from, to) of both channels without copying.
func (s Stereo) Slice(from, to int) Stereo {
	return Stereo{s[0][from:to], s[1][from:to]}
}

// Zero clears both channels.
func (s Stereo) Zero() {
	n := s.Len()
	clear(s[0][:n])
	clear(s[1][:n])
}

// CopyFrom copies src into s and returns the number of copied frames.
func (s Stereo) CopyFrom(src Stereo) int {
	n := s.Len()
	if m := src.Len(); m < n {
		n = m
	}
	copy(s[0][:n], src[0][:n])
	copy(s[1][:n], src[1][:n])
	return n
}

// Scale multiplies both channels by gain.
func (s Stereo) Scale(gain float64) {
	n := s.Len()
	vecmath.ScaleBlock(s[0][:n], s[0][:n], gain)
	vecmath.ScaleBlock(s[1][:n], s[1][:n], gain)
}

// MixInto adds src scaled by gain into dst. src is scaled in place, so it
// must be scratch owned by the caller.
func MixInto(dst, src Stereo, gain float64) {
	n := dst.Len()
	if m := src.Len(); m < n {
		n = m
	}
	for ch := range 2 {
		s := src[ch][:n]
		if gain != 1 {
			vecmath.ScaleBlock(s, s, gain)
		}
		vecmath.AddBlockInPlace(dst[ch][:n], s)
	}
}

// ApplyGainCurve multiplies both channels sample-by-sample with curve.
func (s Stereo) ApplyGainCurve(curve []float64) {
	n := s.Len()
	if len(curve) < n {
		n = len(curve)
	}
	vecmath.MulBlockInPlace(s[0][:n], curve[:n])
	vecmath.MulBlockInPlace(s[1][:n], curve[:n])
}
