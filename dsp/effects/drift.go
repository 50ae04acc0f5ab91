package effects

import (
	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/delay"
	"github.com/cwbudde/algo-texture/dsp/internal/fastmath"
	"github.com/cwbudde/algo-texture/dsp/param"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

// Drift parameter ranges.
var (
	PitchRange = param.Range{Min: -3, Max: 3, Default: 0}
	FineRange  = param.Range{Min: -100, Max: 100, Default: 0}
	DepthRange = param.Range{Min: 0, Max: 1, Default: 0}
	DriftRange = param.Range{Min: 0, Max: 1, Default: 0.5}
)

const (
	minRatio = 0.5
	maxRatio = 2.0

	// Entropy glide time at drift 0 and drift 1.
	slowDriftMs = 500.0
	fastDriftMs = 20.0
)

// DriftState is the persisted parameter set of a Drift effect.
type DriftState struct {
	Enabled bool
	Pitch   float64
	Fine    float64
	Depth   float64
	Drift   float64
}

// DriftParams describes the Drift parameters by name.
var DriftParams = param.Table[DriftState]{
	{
		Spec: param.Spec{Name: "enabled", Kind: param.Bool, Range: enableRange},
		Get:  func(s *DriftState) float64 { return param.BoolValue(s.Enabled) },
		Put:  func(s *DriftState, v float64) { s.Enabled = v != 0 },
	},
	{
		Spec: param.Spec{Name: "pitch", Unit: "st", Range: PitchRange},
		Get:  func(s *DriftState) float64 { return s.Pitch },
		Put:  func(s *DriftState, v float64) { s.Pitch = v },
	},
	{
		Spec: param.Spec{Name: "fine", Unit: "cents", Range: FineRange},
		Get:  func(s *DriftState) float64 { return s.Fine },
		Put:  func(s *DriftState, v float64) { s.Fine = v },
	},
	{
		Spec: param.Spec{Name: "depth", Range: DepthRange},
		Get:  func(s *DriftState) float64 { return s.Depth },
		Put:  func(s *DriftState, v float64) { s.Depth = v },
	},
	{
		Spec: param.Spec{Name: "drift", Range: DriftRange},
		Get:  func(s *DriftState) float64 { return s.Drift },
		Put:  func(s *DriftState, v float64) { s.Drift = v },
	},
}

// Drift resamples its input through a ring buffer at a variable rate:
//
//	ratio = 2^(pitch/12) * 2^(fine/1200) * (1 + entropy*2*depth)
//
// clamped to [0.5, 2]. The read head advances by ratio per frame and is
// kept between half the ring and two frames short of a full ring behind the
// write head. When it leaves that window it jumps back to the middle,
// which is audible as a splice.
type Drift struct {
	sampleRate float64
	state      DriftState

	fader   *smooth.Fader
	entropy *smooth.Smoother
	ring    *delay.Ring

	readPos  float64
	minDelay float64
	maxDelay float64
	ratio    float64
}

// NewDrift creates a disabled pitch-drift processor with default parameters.
func NewDrift(sampleRate float64, opts ...Option) (*Drift, error) {
	cfg, err := applyOptions(sampleRate, "drift", opts)
	if err != nil {
		return nil, err
	}

	fader, err := smooth.NewFader(cfg.fadeMs, sampleRate)
	if err != nil {
		return nil, err
	}
	entropy, err := smooth.NewSmoother(0, slowDriftMs, sampleRate, smooth.Exponential)
	if err != nil {
		return nil, err
	}
	ring, err := delay.New(cfg.ringSize)
	if err != nil {
		return nil, err
	}

	d := &Drift{
		sampleRate: sampleRate,
		fader:      fader,
		entropy:    entropy,
		ring:       ring,
		minDelay:   float64(cfg.ringSize / 2),
		maxDelay:   float64(cfg.ringSize - 2),
		ratio:      1,
	}
	d.SetState(DriftParams.Defaults())
	d.updateGlide()
	d.recenter()
	return d, nil
}

// Enabled reports whether the effect is switched on.
func (d *Drift) Enabled() bool { return d.state.Enabled }

// SetEnabled starts a crossfade to the resampled or the dry signal.
func (d *Drift) SetEnabled(on bool) bool {
	if on == d.state.Enabled {
		return false
	}
	d.state.Enabled = on
	d.fader.Enable(on)
	return true
}

// Pitch returns the coarse transposition in semitones.
func (d *Drift) Pitch() float64 { return d.state.Pitch }

// SetPitch sets the coarse transposition in semitones.
func (d *Drift) SetPitch(st float64) bool { return setFloat(&d.state.Pitch, PitchRange, st) }

// Fine returns the fine transposition in cents.
func (d *Drift) Fine() float64 { return d.state.Fine }

// SetFine sets the fine transposition in cents.
func (d *Drift) SetFine(cents float64) bool { return setFloat(&d.state.Fine, FineRange, cents) }

// Depth returns how strongly entropy bends the pitch.
func (d *Drift) Depth() float64 { return d.state.Depth }

// SetDepth sets how strongly entropy bends the pitch.
func (d *Drift) SetDepth(depth float64) bool { return setFloat(&d.state.Depth, DepthRange, depth) }

// Drift returns how fast the pitch follows entropy.
func (d *Drift) Drift() float64 { return d.state.Drift }

// SetDrift sets how fast the pitch follows entropy, from a 500 ms glide at
// 0 to a 20 ms glide at 1.
func (d *Drift) SetDrift(drift float64) bool {
	if !setFloat(&d.state.Drift, DriftRange, drift) {
		return false
	}
	d.updateGlide()
	return true
}

// SetEntropy feeds the shared entropy value in [0, 1].
func (d *Drift) SetEntropy(e float64) {
	d.entropy.SetTarget(core.Clamp(e, 0, 1))
}

// Ratio returns the playback ratio used for the last frame.
func (d *Drift) Ratio() float64 { return d.ratio }

// Delay returns how many frames the read head trails the write head.
func (d *Drift) Delay() float64 { return d.ring.Distance(d.readPos) }

// MinDelay returns the smallest allowed read delay in frames.
func (d *Drift) MinDelay() float64 { return d.minDelay }

// State returns a copy of the current parameters.
func (d *Drift) State() DriftState { return d.state }

// SetState applies every field of s through the clamping setters.
func (d *Drift) SetState(s DriftState) {
	d.SetEnabled(s.Enabled)
	d.SetPitch(s.Pitch)
	d.SetFine(s.Fine)
	d.SetDepth(s.Depth)
	d.SetDrift(s.Drift)
}

// Parameters describes the effect's parameters.
func (d *Drift) Parameters() []param.Spec { return DriftParams.Specs() }

// Parameter reads a parameter by name.
func (d *Drift) Parameter(name string) (float64, bool) {
	return DriftParams.Get(&d.state, name)
}

// SetParameter writes a parameter by name. ok is false for unknown names.
func (d *Drift) SetParameter(name string, v float64) (changed, ok bool) {
	s := d.state
	changed, ok = DriftParams.Set(&s, name, v)
	if changed {
		d.SetState(s)
	}
	return changed, ok
}

// Reset clears the ring, recenters the read head and snaps the fader.
func (d *Drift) Reset() {
	d.ring.Reset()
	d.recenter()
	d.entropy.Reset(d.entropy.Target())
	d.fader.Snap()
}

// Process resamples buf in place.
func (d *Drift) Process(buf core.Stereo) {
	n := buf.Len()
	left, right := buf[0][:n], buf[1][:n]

	if !d.fader.Active() {
		for i := range left {
			d.ring.Write(left[i], right[i])
		}
		d.readPos = d.ring.WrapFloat(d.readPos + float64(n))
		d.entropy.Skip(n)
		return
	}

	base := fastmath.Exp2(d.state.Pitch/12) * fastmath.Exp2(d.state.Fine/1200)
	for i := range left {
		l, r := left[i], right[i]
		d.ring.Write(l, r)

		e := d.entropy.Next()
		d.ratio = core.Clamp(base*(1+e*2*d.state.Depth), minRatio, maxRatio)

		d.readPos = d.ring.WrapFloat(d.readPos + d.ratio)
		if dist := d.ring.Distance(d.readPos); dist < d.minDelay || dist > d.maxDelay {
			d.recenter()
		}

		k := d.fader.Next()
		left[i] = l*(1-k) + d.ring.ReadLinear(0, d.readPos)*k
		right[i] = r*(1-k) + d.ring.ReadLinear(1, d.readPos)*k
	}
}

func (d *Drift) recenter() {
	mid := (d.minDelay + d.maxDelay) / 2
	d.readPos = d.ring.WrapFloat(float64(d.ring.WritePos()) - mid)
}

func (d *Drift) updateGlide() {
	d.entropy.SetTime(core.Lerp(slowDriftMs, fastDriftMs, d.state.Drift))
}
