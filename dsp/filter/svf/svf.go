// Package svf implements a stereo topology-preserving state-variable filter
// (Simper/Zavalishin TPT form) with a cutoff-dependent resonance ceiling.
//
// Resonance in [0, 1] maps to a quality factor between qMin and a ceiling
// that falls exponentially from qMaxLow at DC to qMaxHigh at Nyquist, so
// high resonance settings cannot drive the loop into self-oscillation near
// Nyquist. Output is hard-clamped to [-1, 1].
package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/param"
)

const (
	qMin     = 0.5
	qMaxLow  = 12.0
	qMaxHigh = 0.707

	// maxNormalizedCutoff keeps tan(pi*fc/fs) finite.
	maxNormalizedCutoff = 0.49
)

// Type selects the filter response.
type Type int

const (
	// Allpass bypasses the filter.
	Allpass Type = iota
	Lowpass
	Bandpass
	Highpass
)

// TypeLabels are the display names of each Type, indexed by value.
var TypeLabels = []string{"allpass", "lowpass", "bandpass", "highpass"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(TypeLabels) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return TypeLabels[t]
}

var (
	// CutoffRange is the accepted cutoff in Hz.
	CutoffRange = param.Range{Min: 20, Max: 18000, Default: 1000}
	// ResonanceRange is the normalized resonance.
	ResonanceRange = param.Range{Min: 0, Max: 1, Default: 0}
	// TypeRange spans the Type enum.
	TypeRange = param.Range{Min: float64(Allpass), Max: float64(Highpass), Default: float64(Allpass)}
)

// Filter is a stereo resonant state-variable filter.
type Filter struct {
	sampleRate float64
	typ        Type
	cutoff     float64
	resonance  float64

	// Simper coefficients.
	k, a1, a2, a3 float64

	ic1eq [2]float64
	ic2eq [2]float64
}

// New returns a bypassed filter at the default cutoff and resonance.
func New(sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("svf sample rate must be > 0 and finite: %f", sampleRate)
	}

	f := &Filter{
		sampleRate: sampleRate,
		typ:        Allpass,
		cutoff:     CutoffRange.Default,
		resonance:  ResonanceRange.Default,
	}
	f.updateCoefficients()
	return f, nil
}

// Type returns the selected response.
func (f *Filter) Type() Type { return f.typ }

// Cutoff returns the cutoff in Hz.
func (f *Filter) Cutoff() float64 { return f.cutoff }

// Resonance returns the normalized resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// Q returns the effective quality factor for the current cutoff and resonance.
func (f *Filter) Q() float64 { return 1 / f.k }

// SetType selects the response. Unknown types fall back to Allpass.
func (f *Filter) SetType(t Type) bool {
	if t < Allpass || t > Highpass {
		t = Allpass
	}
	if t == f.typ {
		return false
	}
	f.typ = t
	return true
}

// SetCutoff sets the cutoff in Hz, clamped to CutoffRange and below Nyquist.
func (f *Filter) SetCutoff(hz float64) bool {
	hz = CutoffRange.Clamp(hz)
	if hz == f.cutoff {
		return false
	}
	f.cutoff = hz
	f.updateCoefficients()
	return true
}

// SetResonance sets the normalized resonance in [0, 1].
func (f *Filter) SetResonance(r float64) bool {
	r = ResonanceRange.Clamp(r)
	if r == f.resonance {
		return false
	}
	f.resonance = r
	f.updateCoefficients()
	return true
}

// Modulate recomputes coefficients for a temporary cutoff/resonance pair
// without changing the stored parameters. Call Restore to go back.
func (f *Filter) Modulate(cutoff, resonance float64) {
	f.computeCoefficients(CutoffRange.Clamp(cutoff), ResonanceRange.Clamp(resonance))
}

// Restore recomputes coefficients from the stored parameters.
func (f *Filter) Restore() { f.updateCoefficients() }

// Reset clears the integrator state.
func (f *Filter) Reset() {
	f.ic1eq = [2]float64{}
	f.ic2eq = [2]float64{}
}

// ProcessSample filters one sample of channel ch (0 or 1).
func (f *Filter) ProcessSample(ch int, x float64) float64 {
	if f.typ == Allpass {
		return x
	}

	v3 := x - f.ic2eq[ch]
	v1 := f.a1*f.ic1eq[ch] + f.a2*v3
	v2 := f.ic2eq[ch] + f.a2*f.ic1eq[ch] + f.a3*v3
	f.ic1eq[ch] = core.FlushDenormals(2*v1 - f.ic1eq[ch])
	f.ic2eq[ch] = core.FlushDenormals(2*v2 - f.ic2eq[ch])

	var y float64
	switch f.typ {
	case Lowpass:
		y = v2
	case Bandpass:
		y = v1
	default:
		y = x - f.k*v1 - v2
	}

	return core.Clamp(y, -1, 1)
}

// Process filters both channels of buf in place.
func (f *Filter) Process(buf core.Stereo) {
	if f.typ == Allpass {
		return
	}
	n := buf.Len()
	for ch := range 2 {
		b := buf[ch][:n]
		for i, x := range b {
			b[i] = f.ProcessSample(ch, x)
		}
	}
}

// MaxQ returns the resonance ceiling for a cutoff at sampleRate.
func MaxQ(cutoff, sampleRate float64) float64 {
	norm := core.Clamp(cutoff/(sampleRate/2), 0, 1)
	return qMaxLow * math.Exp(math.Log(qMaxHigh/qMaxLow)*norm)
}

// ResonanceToQ maps normalized resonance onto a quality factor for cutoff.
func ResonanceToQ(resonance, cutoff, sampleRate float64) float64 {
	ceiling := math.Max(MaxQ(cutoff, sampleRate), qMin)
	return qMin + core.Clamp(resonance, 0, 1)*(ceiling-qMin)
}

func (f *Filter) updateCoefficients() {
	f.computeCoefficients(f.cutoff, f.resonance)
}

func (f *Filter) computeCoefficients(cutoff, resonance float64) {
	fc := math.Min(cutoff, maxNormalizedCutoff*f.sampleRate)
	g := math.Tan(math.Pi * fc / f.sampleRate)
	f.k = 1 / ResonanceToQ(resonance, fc, f.sampleRate)
	f.a1 = 1 / (1 + g*(g+f.k))
	f.a2 = g * f.a1
	f.a3 = g * f.a2
}
