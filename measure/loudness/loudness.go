// Package loudness measures stereo programme loudness after ITU-R BS.1770:
// K-weighting, 400 ms momentary and 3 s short-term windows, and gated
// integrated loudness.
package loudness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/filter/biquad"
	"github.com/cwbudde/algo-texture/dsp/filter/design"
)

const (
	shelfHz     = 1500.0
	shelfGainDB = 4.0
	highpassHz  = 38.0

	momentarySeconds = 0.4
	shortTermSeconds = 3.0
	// Gating blocks overlap by 75%.
	blockStepSeconds = momentarySeconds / 4

	absoluteGate = -70.0
	relativeGate = -10.0

	// Floor reports silence.
	Floor = -120.0
)

// Meter accumulates loudness over any number of Process calls.
type Meter struct {
	sampleRate float64
	shelf      [2]*biquad.Section
	highpass   [2]*biquad.Section

	mom   window
	short window

	step      int
	sinceStep int
	blocks    []float64
	peak      float64
	frames    int64
}

// window is a sliding mean of per-frame channel power sums.
type window struct {
	hist []float64
	pos  int
	sum  float64
}

func newWindow(n int) window { return window{hist: make([]float64, n)} }

func (w *window) push(v float64) {
	w.sum += v - w.hist[w.pos]
	if w.sum < 0 {
		w.sum = 0
	}
	w.hist[w.pos] = v
	w.pos++
	if w.pos == len(w.hist) {
		w.pos = 0
	}
}

func (w *window) mean() float64 { return w.sum / float64(len(w.hist)) }

func (w *window) reset() {
	clear(w.hist)
	w.pos = 0
	w.sum = 0
}

// New returns a meter for stereo input at sampleRate.
func New(sampleRate float64) (*Meter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("loudness sample rate must be > 0 and finite: %f", sampleRate)
	}
	m := &Meter{
		sampleRate: sampleRate,
		mom:        newWindow(int(math.Round(momentarySeconds * sampleRate))),
		short:      newWindow(int(math.Round(shortTermSeconds * sampleRate))),
		step:       max(1, int(math.Round(blockStepSeconds*sampleRate))),
	}
	shelf := design.HighShelf(shelfHz, shelfGainDB, design.DefaultSlope, sampleRate)
	hp := design.Highpass(highpassHz, 1/math.Sqrt2, sampleRate)
	for ch := range 2 {
		m.shelf[ch] = biquad.NewSection(shelf)
		m.highpass[ch] = biquad.NewSection(hp)
	}
	return m, nil
}

// Process meters buf. It does not modify buf.
func (m *Meter) Process(buf core.Stereo) {
	for i := range buf.Len() {
		var p float64
		for ch := range 2 {
			x := buf[ch][i]
			if a := math.Abs(x); a > m.peak {
				m.peak = a
			}
			y := m.highpass[ch].ProcessSample(m.shelf[ch].ProcessSample(x))
			p += y * y
		}
		m.mom.push(p)
		m.short.push(p)
		m.frames++

		// The first block is complete once a full momentary window is in.
		if m.frames < int64(len(m.mom.hist)) {
			continue
		}
		m.sinceStep++
		if m.frames == int64(len(m.mom.hist)) || m.sinceStep >= m.step {
			m.sinceStep = 0
			m.blocks = append(m.blocks, m.mom.mean())
		}
	}
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 { return lufs(m.mom.mean()) }

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 { return lufs(m.short.mean()) }

// Integrated returns the gated loudness since New or Reset, or Floor when
// nothing passes the gates.
func (m *Meter) Integrated() float64 {
	var sum float64
	var n int
	for _, b := range m.blocks {
		if lufs(b) > absoluteGate {
			sum += b
			n++
		}
	}
	if n == 0 {
		return Floor
	}
	gate := lufs(sum/float64(n)) + relativeGate

	sum, n = 0, 0
	for _, b := range m.blocks {
		if l := lufs(b); l > absoluteGate && l > gate {
			sum += b
			n++
		}
	}
	if n == 0 {
		return Floor
	}
	return lufs(sum / float64(n))
}

// PeakDB returns the sample peak over both channels in dBFS.
func (m *Meter) PeakDB() float64 {
	if m.peak == 0 {
		return Floor
	}
	return 20 * math.Log10(m.peak)
}

// Reset clears all history.
func (m *Meter) Reset() {
	for ch := range 2 {
		m.shelf[ch].Reset()
		m.highpass[ch].Reset()
	}
	m.mom.reset()
	m.short.reset()
	m.sinceStep = 0
	m.blocks = m.blocks[:0]
	m.peak = 0
	m.frames = 0
}

func lufs(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return Floor
	}
	return max(Floor, -0.691+10*math.Log10(meanSquare))
}
