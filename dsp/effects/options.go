package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
)

const (
	defaultFadeMs        = 20.0
	defaultDriftRingSize = 8192
	minDriftRingSize     = 16
)

// Option mutates effect construction parameters.
type Option func(*config) error

type config struct {
	seed     int64
	fadeMs   float64
	ringSize int
}

func defaultConfig() config {
	return config{
		seed:     random.DefaultSeed,
		fadeMs:   defaultFadeMs,
		ringSize: defaultDriftRingSize,
	}
}

// WithSeed sets the randomizer seed.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithFadeMs sets the bypass crossfade time in milliseconds.
func WithFadeMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("effect fade must be >= 0 and finite: %f", ms)
		}
		cfg.fadeMs = ms
		return nil
	}
}

// WithRingSize sets the pitch-drift ring buffer length in frames.
func WithRingSize(frames int) Option {
	return func(cfg *config) error {
		if frames < minDriftRingSize {
			return fmt.Errorf("drift ring size must be >= %d: %d", minDriftRingSize, frames)
		}
		cfg.ringSize = frames
		return nil
	}
}

func applyOptions(sampleRate float64, name string, opts []Option) (config, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return config{}, fmt.Errorf("%s sample rate must be > 0 and finite: %f", name, sampleRate)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

func setFloat(dst *float64, r param.Range, v float64) bool {
	v = r.Clamp(v)
	if v == *dst {
		return false
	}
	*dst = v
	return true
}

var enableRange = param.Range{Min: 0, Max: 1, Default: 0}
