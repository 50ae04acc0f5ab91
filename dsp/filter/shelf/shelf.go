// Package shelf provides the stereo high-shelf filter used for "brightness"
// coloration.
package shelf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
	"github.com/cwbudde/algo-texture/dsp/filter/design"
)

// Filter is a stereo high-shelf biquad with a fixed slope of 1.
type Filter struct {
	sampleRate float64
	cutoff     float64
	gainDB     float64

	sections [2]biquad.Section
}

// New returns a flat (0 dB) shelf at cutoff Hz.
func New(sampleRate, cutoff float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("shelf sample rate must be > 0 and finite: %f", sampleRate)
	}
	f := &Filter{}
	f.SetCutoff(sampleRate, cutoff, 0)
	return f, nil
}

// SetCutoff recomputes the coefficients for the given shelf midpoint and
// gain. Filter state is preserved so sweeps stay continuous.
func (f *Filter) SetCutoff(sampleRate, cutoff, gainDB float64) {
	f.sampleRate = sampleRate
	f.cutoff = cutoff
	f.gainDB = gainDB

	c := design.HighShelf(cutoff, gainDB, design.DefaultSlope, sampleRate)
	f.sections[0].Coefficients = c
	f.sections[1].Coefficients = c
}

// Cutoff returns the shelf midpoint in Hz.
func (f *Filter) Cutoff() float64 { return f.cutoff }

// GainDB returns the shelf gain in dB.
func (f *Filter) GainDB() float64 { return f.gainDB }

// Gain returns the linear shelf gain.
func (f *Filter) Gain() float64 { return core.DBToLinear(f.gainDB) }

// Coefficients returns the current biquad coefficients.
func (f *Filter) Coefficients() biquad.Coefficients { return f.sections[0].Coefficients }

// Process filters both channels of buf in place.
func (f *Filter) Process(buf core.Stereo) {
	n := buf.Len()
	f.sections[0].ProcessBlock(buf[0][:n])
	f.sections[1].ProcessBlock(buf[1][:n])
}

// Reset clears both channel states.
func (f *Filter) Reset() {
	f.sections[0].Reset()
	f.sections[1].Reset()
}
