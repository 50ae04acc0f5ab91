package generators

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/random"
)

const (
	defaultFadeMs = 20.0

	// chunkSize is the internal scratch length; longer blocks are processed
	// in chunks of this many frames.
	chunkSize = 256
)

// Option mutates generator construction parameters.
type Option func(*config) error

type config struct {
	seed   int64
	fadeMs float64
}

func defaultConfig() config {
	return config{
		seed:   random.DefaultSeed,
		fadeMs: defaultFadeMs,
	}
}

// WithSeed sets the randomizer seed.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithFadeMs sets the enable/disable ramp time in milliseconds.
func WithFadeMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("generator fade must be >= 0 and finite: %f", ms)
		}
		cfg.fadeMs = ms
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
