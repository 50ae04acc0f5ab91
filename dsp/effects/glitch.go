package effects

import (
	"fmt"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/delay"
	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

// Glitch parameter ranges.
var (
	ProbabilityRange = param.Range{Min: 0, Max: 1, Default: 0.0001}
	JumpRange        = param.Range{Min: 1, Max: 1000, Default: 250}
	LengthRange      = param.Range{Min: 1, Max: 250, Default: 50}
	RepeatRange      = param.Range{Min: 1, Max: 8, Default: 2}

	minJumpRange = param.Range{Min: JumpRange.Min, Max: JumpRange.Max, Default: 50}
)

// GlitchState is the persisted parameter set of a Glitch effect.
type GlitchState struct {
	Enabled     bool
	Probability float64
	MinJump     float64
	MaxJump     float64
	Length      float64
	Repeat      int
}

// GlitchParams describes the Glitch parameters by name.
var GlitchParams = param.Table[GlitchState]{
	{
		Spec: param.Spec{Name: "enabled", Kind: param.Bool, Range: enableRange},
		Get:  func(s *GlitchState) float64 { return param.BoolValue(s.Enabled) },
		Put:  func(s *GlitchState, v float64) { s.Enabled = v != 0 },
	},
	{
		Spec: param.Spec{Name: "probability", Range: ProbabilityRange},
		Get:  func(s *GlitchState) float64 { return s.Probability },
		Put:  func(s *GlitchState, v float64) { s.Probability = v },
	},
	{
		Spec: param.Spec{Name: "min_jump", Unit: "ms", Range: minJumpRange},
		Get:  func(s *GlitchState) float64 { return s.MinJump },
		Put:  func(s *GlitchState, v float64) { s.MinJump = v },
	},
	{
		Spec: param.Spec{Name: "max_jump", Unit: "ms", Range: JumpRange},
		Get:  func(s *GlitchState) float64 { return s.MaxJump },
		Put:  func(s *GlitchState, v float64) { s.MaxJump = v },
	},
	{
		Spec: param.Spec{Name: "length", Unit: "ms", Range: LengthRange},
		Get:  func(s *GlitchState) float64 { return s.Length },
		Put:  func(s *GlitchState, v float64) { s.Length = v },
	},
	{
		Spec: param.Spec{Name: "repeat", Kind: param.Int, Range: RepeatRange},
		Get:  func(s *GlitchState) float64 { return float64(s.Repeat) },
		Put:  func(s *GlitchState, v float64) { s.Repeat = int(v) },
	},
}

// Glitch writes every frame into a history ring and, when triggered,
// replaces the output with a segment captured jump ms earlier, looped
// repeat times.
//
// The ring holds maxJump + maxLength*maxRepeat + 1 frames, so any
// combination of parameters in range fits. The effective jump is never
// shorter than the segment length, so the loop only replays frames that
// were already written when the glitch started.
type Glitch struct {
	sampleRate float64
	state      GlitchState

	rnd   *random.Randomizer
	fader *smooth.Fader
	ring  *delay.Ring

	glitching bool
	start     int
	offset    int
	segment   int
	remaining int
}

// NewGlitch creates a disabled glitcher with default parameters.
func NewGlitch(sampleRate float64, opts ...Option) (*Glitch, error) {
	cfg, err := applyOptions(sampleRate, "glitch", opts)
	if err != nil {
		return nil, err
	}

	fader, err := smooth.NewFader(cfg.fadeMs, sampleRate)
	if err != nil {
		return nil, err
	}
	ring, err := delay.New(GlitchCapacity(sampleRate))
	if err != nil {
		return nil, err
	}

	g := &Glitch{
		sampleRate: sampleRate,
		rnd:        random.New(0, 1, 0, cfg.seed),
		fader:      fader,
		ring:       ring,
	}
	g.SetState(GlitchParams.Defaults())
	if err := g.checkCapacity(); err != nil {
		return nil, err
	}
	return g, nil
}

// GlitchCapacity returns the ring size in frames needed at sampleRate.
func GlitchCapacity(sampleRate float64) int {
	maxJump := core.MsToSamples(JumpRange.Max, sampleRate)
	maxLength := core.MsToSamples(LengthRange.Max, sampleRate)
	return maxJump + maxLength*int(RepeatRange.Max) + 1
}

// Capacity returns the ring size in frames.
func (g *Glitch) Capacity() int { return g.ring.Len() }

// Enabled reports whether the effect is switched on.
func (g *Glitch) Enabled() bool { return g.state.Enabled }

// SetEnabled starts a crossfade to the processed or the dry signal.
func (g *Glitch) SetEnabled(on bool) bool {
	if on == g.state.Enabled {
		return false
	}
	g.state.Enabled = on
	g.fader.Enable(on)
	return true
}

// Probability returns the per-frame trigger probability.
func (g *Glitch) Probability() float64 { return g.state.Probability }

// SetProbability sets the per-frame trigger probability.
func (g *Glitch) SetProbability(p float64) bool {
	return setFloat(&g.state.Probability, ProbabilityRange, p)
}

// MinJump returns the shortest jump in milliseconds.
func (g *Glitch) MinJump() float64 { return g.state.MinJump }

// SetMinJump sets the shortest jump in milliseconds.
func (g *Glitch) SetMinJump(ms float64) bool {
	return setFloat(&g.state.MinJump, minJumpRange, ms)
}

// MaxJump returns the longest jump in milliseconds.
func (g *Glitch) MaxJump() float64 { return g.state.MaxJump }

// SetMaxJump sets the longest jump in milliseconds.
func (g *Glitch) SetMaxJump(ms float64) bool {
	return setFloat(&g.state.MaxJump, JumpRange, ms)
}

// Length returns the looped segment length in milliseconds.
func (g *Glitch) Length() float64 { return g.state.Length }

// SetLength sets the looped segment length in milliseconds.
func (g *Glitch) SetLength(ms float64) bool {
	return setFloat(&g.state.Length, LengthRange, ms)
}

// Repeat returns how many times a segment is played.
func (g *Glitch) Repeat() int { return g.state.Repeat }

// SetRepeat sets how many times a segment is played.
func (g *Glitch) SetRepeat(n int) bool {
	n = RepeatRange.ClampInt(float64(n))
	if n == g.state.Repeat {
		return false
	}
	g.state.Repeat = n
	return true
}

// Glitching reports whether a glitch is playing.
func (g *Glitch) Glitching() bool { return g.glitching }

// Remaining returns the frames left in the current glitch.
func (g *Glitch) Remaining() int { return g.remaining }

// State returns a copy of the current parameters.
func (g *Glitch) State() GlitchState { return g.state }

// SetState applies every field of s through the clamping setters.
func (g *Glitch) SetState(s GlitchState) {
	g.SetEnabled(s.Enabled)
	g.SetProbability(s.Probability)
	g.SetMinJump(s.MinJump)
	g.SetMaxJump(s.MaxJump)
	g.SetLength(s.Length)
	g.SetRepeat(s.Repeat)
}

// Parameters describes the effect's parameters.
func (g *Glitch) Parameters() []param.Spec { return GlitchParams.Specs() }

// Parameter reads a parameter by name.
func (g *Glitch) Parameter(name string) (float64, bool) {
	return GlitchParams.Get(&g.state, name)
}

// SetParameter writes a parameter by name. ok is false for unknown names.
func (g *Glitch) SetParameter(name string, v float64) (changed, ok bool) {
	s := g.state
	changed, ok = GlitchParams.Set(&s, name, v)
	if changed {
		g.SetState(s)
	}
	return changed, ok
}

// Reset clears the history, ends any glitch and snaps the fader.
func (g *Glitch) Reset() {
	g.ring.Reset()
	g.glitching = false
	g.offset = 0
	g.remaining = 0
	g.fader.Snap()
}

// Process glitches buf in place.
func (g *Glitch) Process(buf core.Stereo) {
	n := buf.Len()
	left, right := buf[0][:n], buf[1][:n]
	if !g.fader.Active() {
		for i := range left {
			g.ring.Write(left[i], right[i])
		}
		return
	}

	for i := range left {
		l, r := left[i], right[i]
		g.ring.Write(l, r)

		if !g.glitching && g.rnd.Chance(g.state.Probability) {
			g.trigger()
		}

		wl, wr := l, r
		if g.glitching {
			pos := g.start + g.offset
			wl, wr = g.ring.At(0, pos), g.ring.At(1, pos)
			g.offset++
			if g.offset >= g.segment {
				g.offset = 0
			}
			g.remaining--
			if g.remaining <= 0 {
				g.glitching = false
			}
		}

		k := g.fader.Next()
		left[i] = l*(1-k) + wl*k
		right[i] = r*(1-k) + wr*k
	}
}

func (g *Glitch) trigger() {
	jumpMs := g.rnd.Between(g.state.MinJump, g.state.MaxJump)
	jump := core.MsToSamples(jumpMs, g.sampleRate)
	g.segment = core.MsToSamples(g.state.Length, g.sampleRate)
	jump = max(jump, g.segment)

	g.start = g.ring.Wrap(g.ring.WritePos() - jump)
	g.offset = 0
	g.remaining = g.segment * g.state.Repeat
	g.glitching = true
}

func (g *Glitch) checkCapacity() error {
	need := core.MsToSamples(JumpRange.Max, g.sampleRate) +
		core.MsToSamples(LengthRange.Max, g.sampleRate)*int(RepeatRange.Max)
	if need >= g.ring.Len() {
		return fmt.Errorf("glitch ring of %d frames cannot hold %d", g.ring.Len(), need)
	}
	return nil
}
