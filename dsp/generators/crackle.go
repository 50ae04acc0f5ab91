package generators

import (
	"math"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/filter/svf"
	"github.com/cwbudde/algo-texture/dsp/internal/fastmath"
	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

// Crackle parameter ranges.
var (
	RateRange       = param.Range{Min: 0, Max: 100, Default: 10}
	DurationRange   = param.Range{Min: 1, Max: 100, Default: 10}
	AmplitudeRange  = param.Range{Min: 0, Max: 1, Default: 0.5}
	RandomnessRange = param.Range{Min: 0, Max: 1, Default: 0.5}
	ShapeRange      = param.Range{Min: float64(Exponential), Max: float64(Triangle), Default: float64(Exponential)}
	SpreadRange     = param.Range{Min: 0, Max: 1, Default: 0}

	crackleBrightnessRange = param.Range{Min: 0, Max: 1, Default: 0.5}
	crackleEnableRange     = param.Range{Min: 0, Max: 1, Default: 0}
)

const (
	toneCutoffLow  = 800.0
	toneCutoffHigh = 16000.0

	// rateWobble is the entropy depth applied to the burst rate.
	rateWobble = 0.5
)

var log2ToneSpan = math.Log2(toneCutoffHigh / toneCutoffLow)

// CrackleState is the persisted parameter set of a Crackle generator.
type CrackleState struct {
	Enabled    bool
	Rate       float64
	Duration   float64
	Amplitude  float64
	Randomness float64
	Brightness float64
	Shape      Shape
	Spread     float64
}

// CrackleParams describes the Crackle parameters by name.
var CrackleParams = param.Table[CrackleState]{
	{
		Spec: param.Spec{Name: "enabled", Kind: param.Bool, Range: crackleEnableRange},
		Get:  func(s *CrackleState) float64 { return param.BoolValue(s.Enabled) },
		Put:  func(s *CrackleState, v float64) { s.Enabled = v != 0 },
	},
	{
		Spec: param.Spec{Name: "rate", Unit: "Hz", Range: RateRange},
		Get:  func(s *CrackleState) float64 { return s.Rate },
		Put:  func(s *CrackleState, v float64) { s.Rate = v },
	},
	{
		Spec: param.Spec{Name: "duration", Unit: "ms", Range: DurationRange},
		Get:  func(s *CrackleState) float64 { return s.Duration },
		Put:  func(s *CrackleState, v float64) { s.Duration = v },
	},
	{
		Spec: param.Spec{Name: "amplitude", Range: AmplitudeRange},
		Get:  func(s *CrackleState) float64 { return s.Amplitude },
		Put:  func(s *CrackleState, v float64) { s.Amplitude = v },
	},
	{
		Spec: param.Spec{Name: "randomness", Range: RandomnessRange},
		Get:  func(s *CrackleState) float64 { return s.Randomness },
		Put:  func(s *CrackleState, v float64) { s.Randomness = v },
	},
	{
		Spec: param.Spec{Name: "brightness", Range: crackleBrightnessRange},
		Get:  func(s *CrackleState) float64 { return s.Brightness },
		Put:  func(s *CrackleState, v float64) { s.Brightness = v },
	},
	{
		Spec: param.Spec{Name: "shape", Kind: param.Enum, Range: ShapeRange, Labels: ShapeLabels},
		Get:  func(s *CrackleState) float64 { return float64(s.Shape) },
		Put:  func(s *CrackleState, v float64) { s.Shape = Shape(v) },
	},
	{
		Spec: param.Spec{Name: "spread", Range: SpreadRange},
		Get:  func(s *CrackleState) float64 { return s.Spread },
		Put:  func(s *CrackleState, v float64) { s.Spread = v },
	},
}

// Crackle emits sparse, randomly triggered bursts of enveloped noise.
//
// While idle, every sample triggers a burst with probability
// 1/(sampleRate/rate + 1), so rate is the mean number of bursts per second.
// A burst lasts duration ms; its magnitude follows the selected envelope
// with a random sign per sample. Each burst is panned at random within
// [-spread, spread].
type Crackle struct {
	sampleRate float64
	state      CrackleState

	rnd     *random.Randomizer
	fader   *smooth.Fader
	entropy *smooth.Smoother
	tone    *svf.Filter

	bursting  bool
	burstPos  int
	burstLen  int
	burstAmp  float64
	burstGain [2]float64

	scratch core.Stereo
}

// NewCrackle creates a disabled crackle generator with default parameters.
func NewCrackle(sampleRate float64, opts ...Option) (*Crackle, error) {
	cfg, err := applyOptions(sampleRate, "crackle", opts)
	if err != nil {
		return nil, err
	}

	fader, err := smooth.NewFader(cfg.fadeMs, sampleRate)
	if err != nil {
		return nil, err
	}
	entropy, err := smooth.NewSmoother(0, entropySmoothMs, sampleRate, smooth.Exponential)
	if err != nil {
		return nil, err
	}
	tone, err := svf.New(sampleRate)
	if err != nil {
		return nil, err
	}
	tone.SetType(svf.Lowpass)

	c := &Crackle{
		sampleRate: sampleRate,
		rnd:        random.New(0, 1, 0, cfg.seed),
		fader:      fader,
		entropy:    entropy,
		tone:       tone,
		scratch:    core.NewStereo(chunkSize),
	}
	c.SetState(CrackleParams.Defaults())
	c.updateTone()
	return c, nil
}

// Enabled reports whether the generator is switched on.
func (c *Crackle) Enabled() bool { return c.state.Enabled }

// SetEnabled starts a fade in or out.
func (c *Crackle) SetEnabled(on bool) bool {
	if on == c.state.Enabled {
		return false
	}
	c.state.Enabled = on
	c.fader.Enable(on)
	return true
}

// Rate returns the mean burst rate per second.
func (c *Crackle) Rate() float64 { return c.state.Rate }

// SetRate sets the mean burst rate per second; 0 stops new bursts.
func (c *Crackle) SetRate(r float64) bool { return setFloat(&c.state.Rate, RateRange, r) }

// Duration returns the burst length in milliseconds.
func (c *Crackle) Duration() float64 { return c.state.Duration }

// SetDuration sets the burst length in milliseconds.
func (c *Crackle) SetDuration(ms float64) bool {
	return setFloat(&c.state.Duration, DurationRange, ms)
}

// Amplitude returns the peak burst amplitude.
func (c *Crackle) Amplitude() float64 { return c.state.Amplitude }

// SetAmplitude sets the peak burst amplitude.
func (c *Crackle) SetAmplitude(a float64) bool {
	return setFloat(&c.state.Amplitude, AmplitudeRange, a)
}

// Randomness returns how much burst amplitudes vary.
func (c *Crackle) Randomness() float64 { return c.state.Randomness }

// SetRandomness sets how much burst amplitudes vary, from 0 (constant) to
// 1 (uniform in [0, amplitude]).
func (c *Crackle) SetRandomness(r float64) bool {
	return setFloat(&c.state.Randomness, RandomnessRange, r)
}

// Brightness returns the tone control in [0, 1].
func (c *Crackle) Brightness() float64 { return c.state.Brightness }

// SetBrightness moves the lowpass tone filter between 800 Hz and 16 kHz.
func (c *Crackle) SetBrightness(b float64) bool {
	if !setFloat(&c.state.Brightness, crackleBrightnessRange, b) {
		return false
	}
	c.updateTone()
	return true
}

// Shape returns the burst envelope shape.
func (c *Crackle) Shape() Shape { return c.state.Shape }

// SetShape selects the burst envelope shape.
func (c *Crackle) SetShape(s Shape) bool {
	s = Shape(ShapeRange.ClampInt(float64(s)))
	if s == c.state.Shape {
		return false
	}
	c.state.Shape = s
	return true
}

// Spread returns the stereo spread of bursts.
func (c *Crackle) Spread() float64 { return c.state.Spread }

// SetSpread sets the pan range of bursts in [0, 1].
func (c *Crackle) SetSpread(s float64) bool { return setFloat(&c.state.Spread, SpreadRange, s) }

// Bursting reports whether a burst is in progress.
func (c *Crackle) Bursting() bool { return c.bursting }

// SetEntropy feeds the shared entropy value in [0, 1].
func (c *Crackle) SetEntropy(e float64) {
	c.entropy.SetTarget(core.Clamp(e, 0, 1))
}

// State returns a copy of the current parameters.
func (c *Crackle) State() CrackleState { return c.state }

// SetState applies every field of s through the clamping setters.
func (c *Crackle) SetState(s CrackleState) {
	c.SetEnabled(s.Enabled)
	c.SetRate(s.Rate)
	c.SetDuration(s.Duration)
	c.SetAmplitude(s.Amplitude)
	c.SetRandomness(s.Randomness)
	c.SetBrightness(s.Brightness)
	c.SetShape(s.Shape)
	c.SetSpread(s.Spread)
}

// Parameters describes the generator's parameters.
func (c *Crackle) Parameters() []param.Spec { return CrackleParams.Specs() }

// Parameter reads a parameter by name.
func (c *Crackle) Parameter(name string) (float64, bool) {
	return CrackleParams.Get(&c.state, name)
}

// SetParameter writes a parameter by name. ok is false for unknown names.
func (c *Crackle) SetParameter(name string, v float64) (changed, ok bool) {
	s := c.state
	changed, ok = CrackleParams.Set(&s, name, v)
	if changed {
		c.SetState(s)
	}
	return changed, ok
}

// Reset ends any burst, clears the tone filter and snaps the fader.
func (c *Crackle) Reset() {
	c.bursting = false
	c.burstPos = 0
	c.tone.Reset()
	c.fader.Snap()
	c.entropy.Reset(c.entropy.Target())
}

// Process adds one block of crackle into buf.
func (c *Crackle) Process(buf core.Stereo) {
	total := buf.Len()
	e := c.entropy.Skip(total)
	if !c.fader.Active() {
		return
	}

	threshold := 0.0
	if rate := c.state.Rate * (1 + e*rateWobble*c.rnd.Bipolar()); rate > 0 {
		threshold = 1 / (c.sampleRate/rate + 1)
	}

	for off := 0; off < total; off += chunkSize {
		m := min(chunkSize, total-off)
		chunk := c.scratch.Slice(0, m)
		c.render(chunk, threshold)
		c.tone.Process(chunk)
		core.MixInto(buf.Slice(off, off+m), chunk, 1)
	}
}

func (c *Crackle) render(dst core.Stereo, threshold float64) {
	left, right := dst[0], dst[1]
	for i := range left {
		if !c.bursting && c.rnd.Float() < threshold {
			c.trigger()
		}

		var x float64
		if c.bursting {
			t := float64(c.burstPos) / float64(c.burstLen)
			x = c.burstAmp * Envelope(c.state.Shape, t)
			if c.rnd.Float() < 0.5 {
				x = -x
			}
			c.burstPos++
			if c.burstPos >= c.burstLen {
				c.bursting = false
			}
		}

		x = c.fader.Fade(x)
		left[i] = x * c.burstGain[0]
		right[i] = x * c.burstGain[1]
	}
}

func (c *Crackle) trigger() {
	c.bursting = true
	c.burstPos = 0
	c.burstLen = core.MsToSamples(c.state.Duration, c.sampleRate)
	c.burstAmp = c.state.Amplitude * core.Lerp(1, c.rnd.Float(), c.state.Randomness)

	pan := c.state.Spread * c.rnd.Bipolar()
	c.burstGain[0] = min(1, 1-pan)
	c.burstGain[1] = min(1, 1+pan)
}

func (c *Crackle) updateTone() {
	c.tone.SetCutoff(toneCutoffLow * fastmath.Exp2(c.state.Brightness*log2ToneSpan))
}
