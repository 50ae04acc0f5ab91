package dither

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-texture/dsp/random"
)

// Quantizer maps samples in [-1, 1] onto signed integers of a fixed bit
// depth. Full scale maps to ±(2^(bits-1) - 1); the most negative code is
// never produced, so the range is symmetric.
type Quantizer struct {
	bitDepth  int
	typ       Type
	amplitude float64
	scale     float64
	limit     int
	shaper    shaper
	rnd       *random.Randomizer
	seed      int64
}

// NewQuantizer returns a quantizer. The default is 16 bit, triangular
// dither of one LSB and no noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	limit := 1<<(cfg.bitDepth-1) - 1
	return &Quantizer{
		bitDepth:  cfg.bitDepth,
		typ:       cfg.typ,
		amplitude: cfg.amplitude,
		scale:     float64(limit),
		limit:     limit,
		shaper:    newShaper(cfg.shape),
		rnd:       random.New(0, 1, 0, cfg.seed),
		seed:      cfg.seed,
	}, nil
}

// Int quantizes x. NaN maps to zero.
func (q *Quantizer) Int(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}
	shaped := q.shaper.shape(x * q.scale)
	n := int(math.Round(shaped + q.noise()))
	n = max(-q.limit, min(q.limit, n))
	q.shaper.record(float64(n) - shaped)
	return n
}

// Sample quantizes x and returns it rescaled to [-1, 1].
func (q *Quantizer) Sample(x float64) float64 {
	return float64(q.Int(x)) / q.scale
}

// ProcessInPlace quantizes every sample of buf.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = q.Sample(x)
	}
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.amplitude * (q.rnd.Float() - 0.5)
	case Triangular:
		return q.amplitude * (q.rnd.Float() - q.rnd.Float())
	default:
		return 0
	}
}

// Reset clears the shaping history and restarts the noise sequence.
func (q *Quantizer) Reset() {
	q.shaper.reset()
	q.rnd.Seed(q.seed)
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise distribution.
func (q *Quantizer) Type() Type { return q.typ }

// Limit returns the largest magnitude Int produces.
func (q *Quantizer) Limit() int { return q.limit }

func (q *Quantizer) String() string {
	return fmt.Sprintf("%d-bit %s dither", q.bitDepth, q.typ)
}
