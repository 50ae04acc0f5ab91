package smooth

import (
	"fmt"
	"math"
)

// rampEpsilon absorbs accumulated step rounding at the ramp ends.
const rampEpsilon = 1e-9

// Fader ramps a gain between 0 and 1 when a module is switched on or off.
// Retriggering during a ramp continues from the current position.
type Fader struct {
	sampleRate float64
	rampMs     float64
	step       float64
	value      float64
	target     float64
}

// NewFader returns a disabled fader with the given ramp time.
func NewFader(rampMs, sampleRate float64) (*Fader, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("fader sample rate must be > 0 and finite: %f", sampleRate)
	}
	if rampMs < 0 || math.IsNaN(rampMs) || math.IsInf(rampMs, 0) {
		return nil, fmt.Errorf("fader ramp must be >= 0 and finite: %f", rampMs)
	}

	f := &Fader{sampleRate: sampleRate}
	f.Init(rampMs, sampleRate)
	return f, nil
}

// Init reconfigures the ramp and resets to fully off.
func (f *Fader) Init(rampMs, sampleRate float64) {
	f.sampleRate = sampleRate
	f.rampMs = rampMs
	samples := rampMs * sampleRate / 1000
	if samples < 1 {
		f.step = 1
	} else {
		f.step = 1 / samples
	}
	f.value = 0
	f.target = 0
}

// Enable starts a ramp toward 1 (on) or 0 (off).
func (f *Fader) Enable(on bool) {
	if on {
		f.target = 1
	} else {
		f.target = 0
	}
}

// Snap jumps to the current target without ramping.
func (f *Fader) Snap() { f.value = f.target }

// Enabled reports the ramp direction.
func (f *Fader) Enabled() bool { return f.target == 1 }

// Active reports whether the fader is on or still ramping out.
func (f *Fader) Active() bool { return f.target == 1 || f.value > 0 }

// Value returns the current ramp position in [0, 1].
func (f *Fader) Value() float64 { return f.value }

// RampMs returns the full-scale ramp time in milliseconds.
func (f *Fader) RampMs() float64 { return f.rampMs }

// Fade scales x by the current position and advances the ramp.
func (f *Fader) Fade(x float64) float64 {
	y := x * f.value
	f.advance()
	return y
}

// Next advances the ramp and returns the gain used for this sample.
func (f *Fader) Next() float64 {
	g := f.value
	f.advance()
	return g
}

// Fill writes the per-sample gain curve for len(dst) samples.
func (f *Fader) Fill(dst []float64) {
	for i := range dst {
		dst[i] = f.value
		f.advance()
	}
}

func (f *Fader) advance() {
	switch {
	case f.value < f.target:
		f.value += f.step
		if f.value > f.target-rampEpsilon {
			f.value = f.target
		}
	case f.value > f.target:
		f.value -= f.step
		if f.value < f.target+rampEpsilon {
			f.value = f.target
		}
	}
}
