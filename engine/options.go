package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	defaultQueueSize    = 256
	defaultModuleFadeMs = 20.0
	defaultMasterFadeMs = 50.0
)

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	logger       logrus.FieldLogger
	queueSize    int
	moduleFadeMs float64
	masterFadeMs float64
}

func defaultConfig() config {
	return config{
		logger:       discardLogger(),
		queueSize:    defaultQueueSize,
		moduleFadeMs: defaultModuleFadeMs,
		masterFadeMs: defaultMasterFadeMs,
	}
}

// WithLogger sets the logger for control-side events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if l == nil {
			return fmt.Errorf("engine logger must not be nil")
		}
		cfg.logger = l
		return nil
	}
}

// WithQueueSize sets the capacity of the control-to-audio change queue.
// Zero forces every change through the snapshot path.
func WithQueueSize(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("engine queue size must be >= 0: %d", n)
		}
		cfg.queueSize = n
		return nil
	}
}

// WithModuleFadeMs sets the enable ramp of every module.
func WithModuleFadeMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("engine module fade must be >= 0 and finite: %f", ms)
		}
		cfg.moduleFadeMs = ms
		return nil
	}
}

// WithMasterFadeMs sets the ramp applied when the play mode starts or
// stops the generators.
func WithMasterFadeMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("engine master fade must be >= 0 and finite: %f", ms)
		}
		cfg.masterFadeMs = ms
		return nil
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
