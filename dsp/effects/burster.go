package effects

import (
	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

// Burster parameter ranges.
var (
	IntervalRange   = param.Range{Min: 1, Max: 5000, Default: 1000}
	DurationRange   = param.Range{Min: 1, Max: 2000, Default: 200}
	GateGainRange   = param.Range{Min: 0, Max: 1, Default: 0.2}
	RandomnessRange = param.Range{Min: 0, Max: 1, Default: 0.5}

	minIntervalRange = param.Range{Min: IntervalRange.Min, Max: IntervalRange.Max, Default: 250}
	minDurationRange = param.Range{Min: DurationRange.Min, Max: DurationRange.Max, Default: 50}
	minGainRange     = param.Range{Min: GateGainRange.Min, Max: GateGainRange.Max, Default: 0}
)

// gateSmoothMs is the time constant of the gate gain glide.
const gateSmoothMs = 5.0

// BursterState is the persisted parameter set of a Burster.
type BursterState struct {
	Enabled     bool
	MinInterval float64
	MaxInterval float64
	MinDuration float64
	MaxDuration float64
	MinGain     float64
	MaxGain     float64
	Randomness  float64
	Inverted    bool
}

// BursterParams describes the Burster parameters by name.
var BursterParams = param.Table[BursterState]{
	{
		Spec: param.Spec{Name: "enabled", Kind: param.Bool, Range: enableRange},
		Get:  func(s *BursterState) float64 { return param.BoolValue(s.Enabled) },
		Put:  func(s *BursterState, v float64) { s.Enabled = v != 0 },
	},
	{
		Spec: param.Spec{Name: "min_interval", Unit: "ms", Range: minIntervalRange},
		Get:  func(s *BursterState) float64 { return s.MinInterval },
		Put:  func(s *BursterState, v float64) { s.MinInterval = v },
	},
	{
		Spec: param.Spec{Name: "max_interval", Unit: "ms", Range: IntervalRange},
		Get:  func(s *BursterState) float64 { return s.MaxInterval },
		Put:  func(s *BursterState, v float64) { s.MaxInterval = v },
	},
	{
		Spec: param.Spec{Name: "min_duration", Unit: "ms", Range: minDurationRange},
		Get:  func(s *BursterState) float64 { return s.MinDuration },
		Put:  func(s *BursterState, v float64) { s.MinDuration = v },
	},
	{
		Spec: param.Spec{Name: "max_duration", Unit: "ms", Range: DurationRange},
		Get:  func(s *BursterState) float64 { return s.MaxDuration },
		Put:  func(s *BursterState, v float64) { s.MaxDuration = v },
	},
	{
		Spec: param.Spec{Name: "min_gain", Range: minGainRange},
		Get:  func(s *BursterState) float64 { return s.MinGain },
		Put:  func(s *BursterState, v float64) { s.MinGain = v },
	},
	{
		Spec: param.Spec{Name: "max_gain", Range: GateGainRange},
		Get:  func(s *BursterState) float64 { return s.MaxGain },
		Put:  func(s *BursterState, v float64) { s.MaxGain = v },
	},
	{
		Spec: param.Spec{Name: "randomness", Range: RandomnessRange},
		Get:  func(s *BursterState) float64 { return s.Randomness },
		Put:  func(s *BursterState, v float64) { s.Randomness = v },
	},
	{
		Spec: param.Spec{Name: "inverted", Kind: param.Bool, Range: enableRange},
		Get:  func(s *BursterState) float64 { return param.BoolValue(s.Inverted) },
		Put:  func(s *BursterState, v float64) { s.Inverted = v != 0 },
	},
}

// Burster is a randomized gate. At the end of every interval a new
// interval is drawn, and with probability randomness the gate fires: the
// gain glides to a random level for a random duration and then glides
// back to unity. Inverted flips the gain to 1-g, so the signal is silent
// except while the gate fires.
//
// Process scales the buffer it is given in place; the result already
// contains the input, so callers must not add it to the dry signal again.
//
// Min/max pairs are independent controls; a reversed pair is read as the
// ordered interval.
type Burster struct {
	sampleRate  float64
	msPerSample float64
	state       BursterState

	rnd   *random.Randomizer
	fader *smooth.Fader
	gain  *smooth.Smoother

	intervalLeft float64
	durationLeft float64
	gating       bool
}

// NewBurster creates a disabled gate with default parameters.
func NewBurster(sampleRate float64, opts ...Option) (*Burster, error) {
	cfg, err := applyOptions(sampleRate, "burster", opts)
	if err != nil {
		return nil, err
	}

	fader, err := smooth.NewFader(cfg.fadeMs, sampleRate)
	if err != nil {
		return nil, err
	}
	gain, err := smooth.NewSmoother(1, gateSmoothMs, sampleRate, smooth.Exponential)
	if err != nil {
		return nil, err
	}

	b := &Burster{
		sampleRate:  sampleRate,
		msPerSample: 1000 / sampleRate,
		rnd:         random.New(0, 1, 0, cfg.seed),
		fader:       fader,
		gain:        gain,
	}
	b.SetState(BursterParams.Defaults())
	b.intervalLeft = b.nextInterval()
	return b, nil
}

// Enabled reports whether the effect is switched on.
func (b *Burster) Enabled() bool { return b.state.Enabled }

// SetEnabled starts a crossfade to the gated or the dry signal.
func (b *Burster) SetEnabled(on bool) bool {
	if on == b.state.Enabled {
		return false
	}
	b.state.Enabled = on
	b.fader.Enable(on)
	return true
}

// MinInterval returns the shortest interval in milliseconds.
func (b *Burster) MinInterval() float64 { return b.state.MinInterval }

// SetMinInterval sets the shortest interval in milliseconds.
func (b *Burster) SetMinInterval(ms float64) bool {
	return setFloat(&b.state.MinInterval, minIntervalRange, ms)
}

// MaxInterval returns the longest interval in milliseconds.
func (b *Burster) MaxInterval() float64 { return b.state.MaxInterval }

// SetMaxInterval sets the longest interval in milliseconds.
func (b *Burster) SetMaxInterval(ms float64) bool {
	return setFloat(&b.state.MaxInterval, IntervalRange, ms)
}

// MinDuration returns the shortest gate in milliseconds.
func (b *Burster) MinDuration() float64 { return b.state.MinDuration }

// SetMinDuration sets the shortest gate in milliseconds.
func (b *Burster) SetMinDuration(ms float64) bool {
	return setFloat(&b.state.MinDuration, minDurationRange, ms)
}

// MaxDuration returns the longest gate in milliseconds.
func (b *Burster) MaxDuration() float64 { return b.state.MaxDuration }

// SetMaxDuration sets the longest gate in milliseconds.
func (b *Burster) SetMaxDuration(ms float64) bool {
	return setFloat(&b.state.MaxDuration, DurationRange, ms)
}

// MinGain returns the lowest gate gain.
func (b *Burster) MinGain() float64 { return b.state.MinGain }

// SetMinGain sets the lowest gate gain.
func (b *Burster) SetMinGain(g float64) bool {
	return setFloat(&b.state.MinGain, minGainRange, g)
}

// MaxGain returns the highest gate gain.
func (b *Burster) MaxGain() float64 { return b.state.MaxGain }

// SetMaxGain sets the highest gate gain.
func (b *Burster) SetMaxGain(g float64) bool {
	return setFloat(&b.state.MaxGain, GateGainRange, g)
}

// Randomness returns the probability that an interval fires the gate.
func (b *Burster) Randomness() float64 { return b.state.Randomness }

// SetRandomness sets the probability that an interval fires the gate.
func (b *Burster) SetRandomness(p float64) bool {
	return setFloat(&b.state.Randomness, RandomnessRange, p)
}

// Inverted reports whether the gain is flipped.
func (b *Burster) Inverted() bool { return b.state.Inverted }

// SetInverted flips the gate gain to 1-g.
func (b *Burster) SetInverted(on bool) bool {
	if on == b.state.Inverted {
		return false
	}
	b.state.Inverted = on
	return true
}

// Gating reports whether a gate event is active.
func (b *Burster) Gating() bool { return b.gating }

// CurrentGain returns the smoothed gate gain before inversion.
func (b *Burster) CurrentGain() float64 { return b.gain.Get() }

// State returns a copy of the current parameters.
func (b *Burster) State() BursterState { return b.state }

// SetState applies every field of s through the clamping setters.
func (b *Burster) SetState(s BursterState) {
	b.SetEnabled(s.Enabled)
	b.SetMinInterval(s.MinInterval)
	b.SetMaxInterval(s.MaxInterval)
	b.SetMinDuration(s.MinDuration)
	b.SetMaxDuration(s.MaxDuration)
	b.SetMinGain(s.MinGain)
	b.SetMaxGain(s.MaxGain)
	b.SetRandomness(s.Randomness)
	b.SetInverted(s.Inverted)
}

// Parameters describes the effect's parameters.
func (b *Burster) Parameters() []param.Spec { return BursterParams.Specs() }

// Parameter reads a parameter by name.
func (b *Burster) Parameter(name string) (float64, bool) {
	return BursterParams.Get(&b.state, name)
}

// SetParameter writes a parameter by name. ok is false for unknown names.
func (b *Burster) SetParameter(name string, v float64) (changed, ok bool) {
	s := b.state
	changed, ok = BursterParams.Set(&s, name, v)
	if changed {
		b.SetState(s)
	}
	return changed, ok
}

// Reset returns the gate to unity, restarts the interval timer and snaps
// the fader.
func (b *Burster) Reset() {
	b.gain.Reset(1)
	b.gating = false
	b.durationLeft = 0
	b.intervalLeft = b.nextInterval()
	b.fader.Snap()
}

// Process gates buf in place by multiplying every frame with the current
// gate gain.
func (b *Burster) Process(buf core.Stereo) {
	if !b.fader.Active() {
		return
	}

	n := buf.Len()
	left, right := buf[0][:n], buf[1][:n]
	for i := range left {
		g := b.step()
		if b.state.Inverted {
			g = 1 - g
		}
		// Crossfade between dry (gain 1) and gated.
		g = 1 + b.fader.Next()*(g-1)
		left[i] *= g
		right[i] *= g
	}
}

func (b *Burster) step() float64 {
	b.intervalLeft -= b.msPerSample
	if b.intervalLeft <= 0 {
		b.intervalLeft += b.nextInterval()
		if b.rnd.Chance(b.state.Randomness) {
			b.durationLeft = b.rnd.Between(b.state.MinDuration, b.state.MaxDuration)
			b.gain.SetTarget(b.rnd.Between(b.state.MinGain, b.state.MaxGain))
			b.gating = true
		}
	}

	if b.gating {
		b.durationLeft -= b.msPerSample
		if b.durationLeft <= 0 {
			b.gating = false
			b.gain.SetTarget(1)
		}
	}

	return b.gain.Next()
}

func (b *Burster) nextInterval() float64 {
	return b.rnd.Between(b.state.MinInterval, b.state.MaxInterval)
}
