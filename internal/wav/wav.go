// Package wav writes 16-bit PCM stereo RIFF/WAVE files.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/dither"
	"github.com/cwbudde/algo-texture/dsp/random"
)

const (
	headerSize    = 44
	channels      = 2
	bitsPerSample = 16
	blockAlign    = channels * bitsPerSample / 8
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("wav: writer closed")

type config struct {
	dither dither.Type
	shape  dither.Shape
	seed   int64
}

// Option configures a Writer or Encode.
type Option func(*config) error

// WithDither dithers the 16-bit conversion. Each channel gets its own noise
// stream derived from seed.
func WithDither(t dither.Type, shape dither.Shape, seed int64) Option {
	return func(cfg *config) error {
		if !t.Valid() || !shape.Valid() {
			return fmt.Errorf("wav: invalid dither %v/%v", t, shape)
		}
		cfg.dither, cfg.shape, cfg.seed = t, shape, seed
		return nil
	}
}

func newQuantizers(opts []Option) ([channels]*dither.Quantizer, error) {
	cfg := config{dither: dither.None, shape: dither.Flat, seed: random.DefaultSeed}
	var qs [channels]*dither.Quantizer
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return qs, err
		}
	}
	for ch := range qs {
		q, err := dither.NewQuantizer(
			dither.WithBitDepth(bitsPerSample),
			dither.WithType(cfg.dither),
			dither.WithShape(cfg.shape),
			dither.WithSeed(random.Derive(cfg.seed, ch)),
		)
		if err != nil {
			return qs, fmt.Errorf("wav: %w", err)
		}
		qs[ch] = q
	}
	return qs, nil
}

// Writer streams frames to an io.WriteSeeker and patches the RIFF sizes on
// Close.
type Writer struct {
	w          io.WriteSeeker
	sampleRate int
	frames     int64
	quant      [channels]*dither.Quantizer
	buf        []byte
	closed     bool
}

// NewWriter writes a placeholder header and returns a Writer ready for frames.
func NewWriter(w io.WriteSeeker, sampleRate int, opts ...Option) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: sample rate must be > 0: %d", sampleRate)
	}
	qs, err := newQuantizers(opts)
	if err != nil {
		return nil, err
	}
	wr := &Writer{w: w, sampleRate: sampleRate, quant: qs}
	if _, err := w.Write(header(sampleRate, 0)); err != nil {
		return nil, fmt.Errorf("wav: write header: %w", err)
	}
	return wr, nil
}

// Write appends the frames of buf, clipping to [-1, 1].
func (wr *Writer) Write(buf core.Stereo) error {
	if wr.closed {
		return ErrClosed
	}
	n := buf.Len()
	if need := n * blockAlign; cap(wr.buf) < need {
		wr.buf = make([]byte, need)
	}
	b := wr.buf[:n*blockAlign]
	putFrames(b, buf, wr.quant)
	if _, err := wr.w.Write(b); err != nil {
		return fmt.Errorf("wav: write frames: %w", err)
	}
	wr.frames += int64(n)
	return nil
}

// Frames reports the number of frames written so far.
func (wr *Writer) Frames() int64 { return wr.frames }

// Close rewrites the header with the final data size. It does not close the
// underlying writer.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}
	wr.closed = true
	if _, err := wr.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("wav: seek: %w", err)
	}
	if _, err := wr.w.Write(header(wr.sampleRate, wr.frames*blockAlign)); err != nil {
		return fmt.Errorf("wav: rewrite header: %w", err)
	}
	_, err := wr.w.Seek(0, io.SeekEnd)
	return err
}

// Encode writes buf as a complete WAV file to w.
func Encode(w io.Writer, buf core.Stereo, sampleRate int, opts ...Option) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: sample rate must be > 0: %d", sampleRate)
	}
	qs, err := newQuantizers(opts)
	if err != nil {
		return err
	}
	n := buf.Len()
	out := make([]byte, headerSize+n*blockAlign)
	copy(out, header(sampleRate, int64(n*blockAlign)))
	putFrames(out[headerSize:], buf, qs)
	_, err = w.Write(out)
	return err
}

// putFrames interleaves and quantizes buf into b, which holds exactly
// buf.Len() frames.
func putFrames(b []byte, buf core.Stereo, qs [channels]*dither.Quantizer) {
	for i := range buf.Len() {
		for ch, q := range qs {
			binary.LittleEndian.PutUint16(b[i*blockAlign+2*ch:], uint16(int16(q.Int(buf[ch][i]))))
		}
	}
}

func header(sampleRate int, dataSize int64) []byte {
	h := make([]byte, headerSize)
	copy(h[0:], "RIFF")
	binary.LittleEndian.PutUint32(h[4:], uint32(36+dataSize))
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], 16)
	binary.LittleEndian.PutUint16(h[20:], 1) // PCM
	binary.LittleEndian.PutUint16(h[22:], channels)
	binary.LittleEndian.PutUint32(h[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:], blockAlign)
	binary.LittleEndian.PutUint16(h[34:], bitsPerSample)
	copy(h[36:], "data")
	binary.LittleEndian.PutUint32(h[40:], uint32(dataSize))
	return h
}
