package smooth

import (
	"fmt"
	"math"
)

// settleEpsilon is the distance below which an exponential glide snaps to
// its target.
const settleEpsilon = 1e-9

// Kind selects the smoothing curve.
type Kind int

const (
	// Exponential is a one-pole lowpass glide with time constant timeMs.
	Exponential Kind = iota
	// Linear reaches the target in exactly timeMs with a constant step.
	Linear
)

// Smoother glides a control value toward a target one sample at a time.
type Smoother struct {
	kind       Kind
	sampleRate float64
	timeMs     float64

	coef      float64
	current   float64
	target    float64
	step      float64
	remaining int
	rampLen   int
}

// NewSmoother returns a smoother resting at initial.
func NewSmoother(initial, timeMs, sampleRate float64, kind Kind) (*Smoother, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("smoother sample rate must be > 0 and finite: %f", sampleRate)
	}
	if kind != Exponential && kind != Linear {
		return nil, fmt.Errorf("smoother kind is invalid: %d", kind)
	}

	s := &Smoother{kind: kind, sampleRate: sampleRate}
	s.Init(initial, timeMs)
	return s, nil
}

// Init resets the smoother to rest at initial with the given time constant.
func (s *Smoother) Init(initial, timeMs float64) {
	s.SetTime(timeMs)
	s.Reset(initial)
}

// SetTime changes the smoothing time in milliseconds. Negative or NaN
// values disable smoothing.
func (s *Smoother) SetTime(timeMs float64) {
	if timeMs < 0 || math.IsNaN(timeMs) {
		timeMs = 0
	}
	s.timeMs = timeMs

	if timeMs == 0 {
		s.coef = 1
		s.rampLen = 0
		return
	}

	tauSeconds := timeMs / 1000
	s.coef = 1 - math.Exp(-1/(tauSeconds*s.sampleRate))
	s.coef = math.Min(math.Max(s.coef, 0), 1)
	s.rampLen = int(math.Round(timeMs * s.sampleRate / 1000))
}

// Time returns the smoothing time in milliseconds.
func (s *Smoother) Time() float64 { return s.timeMs }

// Reset jumps to value without gliding.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.step = 0
	s.remaining = 0
}

// SetTarget schedules a new value to glide toward.
func (s *Smoother) SetTarget(target float64) {
	if math.IsNaN(target) {
		return
	}
	s.target = target

	if s.kind == Linear {
		if s.rampLen <= 0 {
			s.current = target
			s.remaining = 0
			return
		}
		s.remaining = s.rampLen
		s.step = (target - s.current) / float64(s.rampLen)
	}
}

// Target returns the value being glided toward.
func (s *Smoother) Target() float64 { return s.target }

// Get returns the last computed value without advancing.
func (s *Smoother) Get() float64 { return s.current }

// Settled reports whether the output has reached the target.
func (s *Smoother) Settled() bool { return s.current == s.target }

// Next advances one sample toward the target and returns the new value.
func (s *Smoother) Next() float64 {
	if s.current == s.target {
		return s.current
	}

	switch s.kind {
	case Linear:
		if s.remaining <= 1 {
			s.current = s.target
			s.remaining = 0
			break
		}
		s.current += s.step
		s.remaining--
	default:
		s.current += (s.target - s.current) * s.coef
		if math.Abs(s.target-s.current) < settleEpsilon {
			s.current = s.target
		}
	}

	return s.current
}

// Skip advances n samples and returns the resulting value.
func (s *Smoother) Skip(n int) float64 {
	for range n {
		if s.current == s.target {
			break
		}
		s.Next()
	}
	return s.current
}
