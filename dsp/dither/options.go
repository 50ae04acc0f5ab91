package dither

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/random"
)

const (
	defaultBitDepth = 16
	minBitDepth     = 2
	maxBitDepth     = 24
)

type config struct {
	bitDepth  int
	typ       Type
	amplitude float64
	shape     Shape
	seed      int64
}

func defaultConfig() config {
	return config{
		bitDepth:  defaultBitDepth,
		typ:       Triangular,
		amplitude: 1,
		shape:     Flat,
		seed:      random.DefaultSeed,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2 to 24, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithType sets the dither noise distribution (default Triangular).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type: %d", t)
		}
		cfg.typ = t
		return nil
	}
}

// WithAmplitude scales the dither noise in LSB (default 1).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithShape sets the noise-shaping filter (default Flat).
func WithShape(s Shape) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("dither: invalid shape: %d", s)
		}
		cfg.shape = s
		return nil
	}
}

// WithSeed seeds the dither noise.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}
