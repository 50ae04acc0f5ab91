// Package entropy implements the shared modulation source that perturbs the
// texture modules' parameters.
//
// The source picks a new random target in [0, 1] every 1/rate seconds and
// glides toward it; the reported value is the glide scaled by depth. It is
// advanced once per audio block.
package entropy

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

var (
	// RateRange is the target redraw rate in Hz.
	RateRange = param.Range{Min: 0.01, Max: 20, Default: 0.5}
	// DepthRange scales the output.
	DepthRange = param.Range{Min: 0, Max: 1, Default: 0}
)

// glideFraction is the share of one redraw period used as the glide time
// constant.
const glideFraction = 0.33

// Source is the global entropy modulation signal.
type Source struct {
	sampleRate float64
	rate       float64
	depth      float64

	period    int
	countdown int

	rnd   *random.Randomizer
	glide *smooth.Smoother
}

// New returns a source at the default rate and depth.
func New(sampleRate float64, seed int64) (*Source, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("entropy sample rate must be > 0 and finite: %f", sampleRate)
	}

	glide, err := smooth.NewSmoother(0.5, 0, sampleRate, smooth.Exponential)
	if err != nil {
		return nil, err
	}

	s := &Source{
		sampleRate: sampleRate,
		rate:       RateRange.Default,
		depth:      DepthRange.Default,
		rnd:        random.New(0, 1, 0, seed),
		glide:      glide,
	}
	s.updatePeriod()
	s.countdown = s.period
	return s, nil
}

// Rate returns the redraw rate in Hz.
func (s *Source) Rate() float64 { return s.rate }

// Depth returns the output scale in [0, 1].
func (s *Source) Depth() float64 { return s.depth }

// SetRate sets the redraw rate in Hz.
func (s *Source) SetRate(hz float64) bool {
	hz = RateRange.Clamp(hz)
	if hz == s.rate {
		return false
	}
	s.rate = hz
	s.updatePeriod()
	if s.countdown > s.period {
		s.countdown = s.period
	}
	return true
}

// SetDepth sets the output scale.
func (s *Source) SetDepth(depth float64) bool {
	depth = DepthRange.Clamp(depth)
	if depth == s.depth {
		return false
	}
	s.depth = depth
	return true
}

// Advance moves the source forward by n samples and returns Value.
func (s *Source) Advance(n int) float64 {
	s.countdown -= n
	for s.countdown <= 0 {
		s.glide.SetTarget(s.rnd.Next())
		s.countdown += s.period
	}
	s.glide.Skip(n)
	return s.Value()
}

// Value returns the current modulation in [0, depth].
func (s *Source) Value() float64 {
	return s.glide.Get() * s.depth
}

// Walk returns the unscaled glide position in [0, 1].
func (s *Source) Walk() float64 {
	return s.glide.Get()
}

// Reset restarts the random walk from its midpoint.
func (s *Source) Reset() {
	s.rnd.Seed(s.rnd.SeedValue())
	s.glide.Reset(0.5)
	s.countdown = s.period
}

func (s *Source) updatePeriod() {
	periodSec := 1 / s.rate
	s.period = max(1, int(math.Round(periodSec*s.sampleRate)))
	s.glide.SetTime(periodSec * glideFraction * 1000)
}
