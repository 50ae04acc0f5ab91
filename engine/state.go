package engine

import (
	"fmt"

	"github.com/cwbudde/algo-texture/dsp/effects"
	"github.com/cwbudde/algo-texture/dsp/entropy"
	"github.com/cwbudde/algo-texture/dsp/generators"
	"github.com/cwbudde/algo-texture/dsp/param"
)

// PlayMode decides when the generators sound.
type PlayMode int

const (
	// Playback runs generators while the host transport plays.
	Playback PlayMode = iota
	// Hold runs generators while the hold latch is set.
	Hold
	// On runs generators continuously.
	On
)

// PlayModeLabels are the display names of each PlayMode.
var PlayModeLabels = []string{"playback", "hold", "on"}

func (m PlayMode) String() string {
	if m < Playback || m > On {
		return fmt.Sprintf("PlayMode(%d)", int(m))
	}
	return PlayModeLabels[m]
}

// PlayModeRange spans the PlayMode enum.
var PlayModeRange = param.Range{Min: float64(Playback), Max: float64(On), Default: float64(On)}

// GlobalState holds the controls that are not owned by one module.
type GlobalState struct {
	PlayMode     PlayMode
	EntropyRate  float64
	EntropyDepth float64
}

// GlobalParams describes the global controls by name.
var GlobalParams = param.Table[GlobalState]{
	{
		Spec: param.Spec{Name: "play_mode", Kind: param.Enum, Range: PlayModeRange, Labels: PlayModeLabels},
		Get:  func(s *GlobalState) float64 { return float64(s.PlayMode) },
		Put:  func(s *GlobalState, v float64) { s.PlayMode = PlayMode(v) },
	},
	{
		Spec: param.Spec{Name: "entropy_rate", Unit: "Hz", Range: entropy.RateRange},
		Get:  func(s *GlobalState) float64 { return s.EntropyRate },
		Put:  func(s *GlobalState, v float64) { s.EntropyRate = v },
	},
	{
		Spec: param.Spec{Name: "entropy_depth", Range: entropy.DepthRange},
		Get:  func(s *GlobalState) float64 { return s.EntropyDepth },
		Put:  func(s *GlobalState, v float64) { s.EntropyDepth = v },
	},
}

// State is the plain-data snapshot of every module and the global
// controls. It is what presets and host save/restore persist.
type State struct {
	Noise   [2]generators.NoiseState
	Crackle [2]generators.CrackleState
	Glitch  [2]effects.GlitchState
	Gate    effects.BursterState
	Pitch   effects.DriftState
	Global  GlobalState
}

// DefaultState returns the state of a freshly created engine.
func DefaultState() State {
	var s State
	for i := range 2 {
		s.Noise[i] = generators.NoiseParams.Defaults()
		s.Crackle[i] = generators.CrackleParams.Defaults()
		s.Glitch[i] = effects.GlitchParams.Defaults()
	}
	s.Gate = effects.BursterParams.Defaults()
	s.Pitch = effects.DriftParams.Defaults()
	s.Global = GlobalParams.Defaults()
	return s
}

// Specs returns the parameter descriptions of module id.
func Specs(id ModuleID) ([]param.Spec, error) {
	switch id {
	case Noise1, Noise2:
		return generators.NoiseParams.Specs(), nil
	case Crackle1, Crackle2:
		return generators.CrackleParams.Specs(), nil
	case Glitch1, Glitch2:
		return effects.GlitchParams.Specs(), nil
	case Gate:
		return effects.BursterParams.Specs(), nil
	case Pitch:
		return effects.DriftParams.Specs(), nil
	case Global:
		return GlobalParams.Specs(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownModule, id)
	}
}

// Get reads one parameter of module id from s.
func (s *State) Get(id ModuleID, name string) (float64, error) {
	var (
		v  float64
		ok bool
	)
	switch id {
	case Noise1, Noise2:
		v, ok = generators.NoiseParams.Get(&s.Noise[id-Noise1], name)
	case Crackle1, Crackle2:
		v, ok = generators.CrackleParams.Get(&s.Crackle[id-Crackle1], name)
	case Glitch1, Glitch2:
		v, ok = effects.GlitchParams.Get(&s.Glitch[id-Glitch1], name)
	case Gate:
		v, ok = effects.BursterParams.Get(&s.Gate, name)
	case Pitch:
		v, ok = effects.DriftParams.Get(&s.Pitch, name)
	case Global:
		v, ok = GlobalParams.Get(&s.Global, name)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownModule, id)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %v.%s", ErrUnknownParameter, id, name)
	}
	return v, nil
}

// Set writes one parameter of module id into s, quantized and clamped to
// its range. It reports whether the stored value changed.
func (s *State) Set(id ModuleID, name string, v float64) (bool, error) {
	var changed, ok bool
	switch id {
	case Noise1, Noise2:
		changed, ok = generators.NoiseParams.Set(&s.Noise[id-Noise1], name, v)
	case Crackle1, Crackle2:
		changed, ok = generators.CrackleParams.Set(&s.Crackle[id-Crackle1], name, v)
	case Glitch1, Glitch2:
		changed, ok = effects.GlitchParams.Set(&s.Glitch[id-Glitch1], name, v)
	case Gate:
		changed, ok = effects.BursterParams.Set(&s.Gate, name, v)
	case Pitch:
		changed, ok = effects.DriftParams.Set(&s.Pitch, name, v)
	case Global:
		changed, ok = GlobalParams.Set(&s.Global, name, v)
	default:
		return false, fmt.Errorf("%w: %v", ErrUnknownModule, id)
	}
	if !ok {
		return false, fmt.Errorf("%w: %v.%s", ErrUnknownParameter, id, name)
	}
	return changed, nil
}

// Normalize clamps every field of s to its range.
func (s *State) Normalize() {
	for i := range 2 {
		normalize(generators.NoiseParams, &s.Noise[i])
		normalize(generators.CrackleParams, &s.Crackle[i])
		normalize(effects.GlitchParams, &s.Glitch[i])
	}
	normalize(effects.BursterParams, &s.Gate)
	normalize(effects.DriftParams, &s.Pitch)
	normalize(GlobalParams, &s.Global)
}

func normalize[S any](t param.Table[S], s *S) {
	for _, f := range t {
		f.Put(s, f.Quantize(f.Get(s)))
	}
}
