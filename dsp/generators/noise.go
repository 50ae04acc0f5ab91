package generators

import (
	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/filter/shelf"
	"github.com/cwbudde/algo-texture/dsp/filter/svf"
	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

// NoiseType selects the spectral color of the noise source.
type NoiseType int

const (
	White NoiseType = iota
	Pink
	Brown
)

// NoiseTypeLabels are the display names of each NoiseType.
var NoiseTypeLabels = []string{"white", "pink", "brown"}

func (t NoiseType) String() string {
	if t < White || t > Brown {
		return "unknown"
	}
	return NoiseTypeLabels[t]
}

// Noise parameter ranges.
var (
	NoiseTypeRange   = param.Range{Min: float64(White), Max: float64(Brown), Default: float64(White)}
	DensityRange     = param.Range{Min: 0, Max: 1, Default: 1}
	BrightnessRange  = param.Range{Min: 0, Max: 1, Default: 0}
	NoiseGainRange   = param.Range{Min: 0, Max: core.DBToLinear(6), Default: 0.5}
	StereoRange      = param.Range{Min: 0, Max: 1, Default: 0}
	noiseEnableRange = param.Range{Min: 0, Max: 1, Default: 0}
)

// Entropy perturbation depths, as fractions of the parameter value.
const (
	densityWobble   = 0.5
	cutoffWobble    = 0.05
	resonanceWobble = 0.05
	gainWobble      = 0.1

	// entropySmoothMs smooths the entropy input between blocks.
	entropySmoothMs = 50.0

	brightnessFloor  = 0.001
	shelfCutoffLow   = 1000.0
	shelfCutoffHigh  = 8000.0
	shelfMaxGainDB   = 12.0
	brownLeak        = 1.02
	brownStep        = 0.02
	brownOutputScale = 3.5
	pinkOutputScale  = 0.11
)

// NoiseState is the persisted parameter set of a Noise generator.
type NoiseState struct {
	Enabled    bool
	Type       NoiseType
	Density    float64
	Brightness float64
	Gain       float64
	Stereo     float64
	FilterType svf.Type
	Cutoff     float64
	Resonance  float64
}

// NoiseParams describes the Noise parameters by name.
var NoiseParams = param.Table[NoiseState]{
	{
		Spec: param.Spec{Name: "enabled", Kind: param.Bool, Range: noiseEnableRange},
		Get:  func(s *NoiseState) float64 { return param.BoolValue(s.Enabled) },
		Put:  func(s *NoiseState, v float64) { s.Enabled = v != 0 },
	},
	{
		Spec: param.Spec{Name: "type", Kind: param.Enum, Range: NoiseTypeRange, Labels: NoiseTypeLabels},
		Get:  func(s *NoiseState) float64 { return float64(s.Type) },
		Put:  func(s *NoiseState, v float64) { s.Type = NoiseType(v) },
	},
	{
		Spec: param.Spec{Name: "density", Range: DensityRange},
		Get:  func(s *NoiseState) float64 { return s.Density },
		Put:  func(s *NoiseState, v float64) { s.Density = v },
	},
	{
		Spec: param.Spec{Name: "brightness", Range: BrightnessRange},
		Get:  func(s *NoiseState) float64 { return s.Brightness },
		Put:  func(s *NoiseState, v float64) { s.Brightness = v },
	},
	{
		Spec: param.Spec{Name: "gain", Range: NoiseGainRange},
		Get:  func(s *NoiseState) float64 { return s.Gain },
		Put:  func(s *NoiseState, v float64) { s.Gain = v },
	},
	{
		Spec: param.Spec{Name: "stereo", Range: StereoRange},
		Get:  func(s *NoiseState) float64 { return s.Stereo },
		Put:  func(s *NoiseState, v float64) { s.Stereo = v },
	},
	{
		Spec: param.Spec{Name: "filter", Kind: param.Enum, Range: svf.TypeRange, Labels: svf.TypeLabels},
		Get:  func(s *NoiseState) float64 { return float64(s.FilterType) },
		Put:  func(s *NoiseState, v float64) { s.FilterType = svf.Type(v) },
	},
	{
		Spec: param.Spec{Name: "cutoff", Unit: "Hz", Range: svf.CutoffRange},
		Get:  func(s *NoiseState) float64 { return s.Cutoff },
		Put:  func(s *NoiseState, v float64) { s.Cutoff = v },
	},
	{
		Spec: param.Spec{Name: "resonance", Range: svf.ResonanceRange},
		Get:  func(s *NoiseState) float64 { return s.Resonance },
		Put:  func(s *NoiseState, v float64) { s.Resonance = v },
	},
}

// Noise is a sparse white/pink/brown noise source with brightness shelf,
// resonant filter and random stereo placement.
type Noise struct {
	sampleRate float64
	state      NoiseState

	rnd     *random.Randomizer
	fader   *smooth.Fader
	entropy *smooth.Smoother
	shelf   *shelf.Filter
	filter  *svf.Filter

	// Paul Kellet pink state and brown integrator.
	pink  [3]float64
	brown float64

	scratch core.Stereo
}

// NewNoise creates a disabled white-noise generator with default parameters.
func NewNoise(sampleRate float64, opts ...Option) (*Noise, error) {
	cfg, err := applyOptions(sampleRate, "noise", opts)
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
	sh, err := shelf.New(sampleRate, shelfCutoffLow)
	if err != nil {
		return nil, err
	}
	filter, err := svf.New(sampleRate)
	if err != nil {
		return nil, err
	}

	n := &Noise{
		sampleRate: sampleRate,
		rnd:        random.New(-1, 1, 0, cfg.seed),
		fader:      fader,
		entropy:    entropy,
		shelf:      sh,
		filter:     filter,
		scratch:    core.NewStereo(chunkSize),
	}
	n.SetState(NoiseParams.Defaults())
	return n, nil
}

// Enabled reports whether the generator is switched on.
func (n *Noise) Enabled() bool { return n.state.Enabled }

// SetEnabled starts a fade in or out.
func (n *Noise) SetEnabled(on bool) bool {
	if on == n.state.Enabled {
		return false
	}
	n.state.Enabled = on
	n.fader.Enable(on)
	return true
}

// Type returns the noise color.
func (n *Noise) Type() NoiseType { return n.state.Type }

// SetType selects the noise color.
func (n *Noise) SetType(t NoiseType) bool {
	t = NoiseType(NoiseTypeRange.ClampInt(float64(t)))
	if t == n.state.Type {
		return false
	}
	n.state.Type = t
	return true
}

// Density returns the probability that a sample carries noise.
func (n *Noise) Density() float64 { return n.state.Density }

// SetDensity sets the per-sample noise probability in [0, 1].
func (n *Noise) SetDensity(d float64) bool {
	return setFloat(&n.state.Density, DensityRange, d)
}

// Brightness returns the shelf brightness in [0, 1].
func (n *Noise) Brightness() float64 { return n.state.Brightness }

// SetBrightness raises the shelf cutoff and gain together.
func (n *Noise) SetBrightness(b float64) bool {
	if !setFloat(&n.state.Brightness, BrightnessRange, b) {
		return false
	}
	n.updateShelf()
	return true
}

// Gain returns the linear output gain.
func (n *Noise) Gain() float64 { return n.state.Gain }

// SetGain sets the linear output gain in [0, +6 dB].
func (n *Noise) SetGain(g float64) bool {
	return setFloat(&n.state.Gain, NoiseGainRange, g)
}

// Stereo returns the stereo placement amount.
func (n *Noise) Stereo() float64 { return n.state.Stereo }

// SetStereo sets how often samples are placed hard left or hard right.
func (n *Noise) SetStereo(s float64) bool {
	return setFloat(&n.state.Stereo, StereoRange, s)
}

// FilterType returns the resonant filter response.
func (n *Noise) FilterType() svf.Type { return n.state.FilterType }

// SetFilterType selects the resonant filter response.
func (n *Noise) SetFilterType(t svf.Type) bool {
	changed := n.filter.SetType(t)
	n.state.FilterType = n.filter.Type()
	return changed
}

// Cutoff returns the resonant filter cutoff in Hz.
func (n *Noise) Cutoff() float64 { return n.state.Cutoff }

// SetCutoff sets the resonant filter cutoff in Hz.
func (n *Noise) SetCutoff(hz float64) bool {
	changed := n.filter.SetCutoff(hz)
	n.state.Cutoff = n.filter.Cutoff()
	return changed
}

// Resonance returns the resonant filter resonance.
func (n *Noise) Resonance() float64 { return n.state.Resonance }

// SetResonance sets the resonant filter resonance in [0, 1].
func (n *Noise) SetResonance(r float64) bool {
	changed := n.filter.SetResonance(r)
	n.state.Resonance = n.filter.Resonance()
	return changed
}

// SetEntropy feeds the shared entropy value in [0, 1]. It is smoothed over
// the following blocks.
func (n *Noise) SetEntropy(e float64) {
	n.entropy.SetTarget(core.Clamp(e, 0, 1))
}

// State returns a copy of the current parameters.
func (n *Noise) State() NoiseState { return n.state }

// SetState applies every field of s through the clamping setters.
func (n *Noise) SetState(s NoiseState) {
	n.SetEnabled(s.Enabled)
	n.SetType(s.Type)
	n.SetDensity(s.Density)
	n.state.Brightness = BrightnessRange.Clamp(s.Brightness)
	n.updateShelf()
	n.SetGain(s.Gain)
	n.SetStereo(s.Stereo)
	n.SetFilterType(s.FilterType)
	n.SetCutoff(s.Cutoff)
	n.SetResonance(s.Resonance)
}

// Parameters describes the generator's parameters.
func (n *Noise) Parameters() []param.Spec { return NoiseParams.Specs() }

// Parameter reads a parameter by name.
func (n *Noise) Parameter(name string) (float64, bool) {
	return NoiseParams.Get(&n.state, name)
}

// SetParameter writes a parameter by name. ok is false for unknown names.
func (n *Noise) SetParameter(name string, v float64) (changed, ok bool) {
	s := n.state
	changed, ok = NoiseParams.Set(&s, name, v)
	if changed {
		n.SetState(s)
	}
	return changed, ok
}

// Reset clears filter and coloring state and snaps the fader to its
// target.
func (n *Noise) Reset() {
	n.pink = [3]float64{}
	n.brown = 0
	n.shelf.Reset()
	n.filter.Reset()
	n.fader.Snap()
	n.entropy.Reset(n.entropy.Target())
}

// Process adds one block of noise into buf.
func (n *Noise) Process(buf core.Stereo) {
	total := buf.Len()
	e := n.entropy.Skip(total)
	if !n.fader.Active() {
		return
	}

	density := core.Clamp(n.state.Density*(1+e*densityWobble*n.rnd.Bipolar()), 0, 1)
	cutoff := n.state.Cutoff * (1 + e*cutoffWobble*n.rnd.Bipolar())
	resonance := n.state.Resonance * (1 + e*resonanceWobble*n.rnd.Bipolar())
	gain := n.state.Gain * (1 + e*gainWobble*n.rnd.Bipolar())

	bright := n.state.Brightness > brightnessFloor
	if bright {
		gain /= n.shelf.Gain()
	}
	n.filter.Modulate(cutoff, resonance)

	for off := 0; off < total; off += chunkSize {
		m := min(chunkSize, total-off)
		chunk := n.scratch.Slice(0, m)
		n.render(chunk, density)
		if bright {
			n.shelf.Process(chunk)
		}
		n.filter.Process(chunk)
		core.MixInto(buf.Slice(off, off+m), chunk, gain)
	}
	n.filter.Restore()
}

func (n *Noise) render(dst core.Stereo, density float64) {
	width := n.state.Stereo / 2
	left, right := dst[0], dst[1]
	for i := range left {
		var w float64
		if n.rnd.Float() < density {
			w = n.rnd.Bipolar()
		}
		x := n.fader.Fade(n.color(w))

		switch p := n.rnd.Float(); {
		case p < width:
			left[i], right[i] = x, 0
		case p < 2*width:
			left[i], right[i] = 0, x
		default:
			left[i], right[i] = x, x
		}
	}
}

func (n *Noise) color(w float64) float64 {
	switch n.state.Type {
	case Pink:
		n.pink[0] = 0.99765*n.pink[0] + w*0.0990460
		n.pink[1] = 0.96300*n.pink[1] + w*0.2965164
		n.pink[2] = 0.57000*n.pink[2] + w*1.0526913
		return (n.pink[0] + n.pink[1] + n.pink[2] + w*0.1848) * pinkOutputScale
	case Brown:
		n.brown = core.Clamp((n.brown+brownStep*w)/brownLeak, -1, 1)
		return core.Clamp(n.brown*brownOutputScale, -1, 1)
	default:
		return w
	}
}

func (n *Noise) updateShelf() {
	b := n.state.Brightness
	n.shelf.SetCutoff(n.sampleRate,
		core.Lerp(shelfCutoffLow, shelfCutoffHigh, b),
		shelfMaxGainDB*b)
}

func setFloat(dst *float64, r param.Range, v float64) bool {
	v = r.Clamp(v)
	if v == *dst {
		return false
	}
	*dst = v
	return true
}
