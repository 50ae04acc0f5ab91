// Package levels computes time-domain statistics of a signal: DC, RMS,
// peak, crest factor, zero crossings and the higher moments. Excess
// kurtosis separates impulsive textures (crackle) from steady noise.
package levels

import "math"

// Stats summarizes a signal.
type Stats struct {
	Length        int
	DC            float64
	RMS           float64
	Peak          float64
	CrestDB       float64
	ZeroCrossings int
	Variance      float64
	Skewness      float64
	// Kurtosis is the excess kurtosis: 0 for Gaussian noise, -1.2 for
	// uniform noise, large and positive for sparse impulses.
	Kurtosis float64
}

// Accumulator gathers Stats over consecutive blocks. Results match
// Calculate over the concatenated blocks.
type Accumulator struct {
	n             int
	mean          float64
	m2, m3, m4    float64
	sumSq         float64
	peak          float64
	last          float64
	zeroCrossings int
}

// Update adds samples.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		// Welford update; m4 before m3 before m2.
		n1 := float64(a.n)
		a.n++
		n := float64(a.n)
		delta := x - a.mean
		dn := delta / n
		dn2 := dn * dn
		term := delta * dn * n1

		a.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*a.m2 - 4*dn*a.m3
		a.m3 += term*dn*(n-2) - 3*dn*a.m2
		a.m2 += term
		a.mean += dn

		a.sumSq += x * x
		if v := math.Abs(x); v > a.peak {
			a.peak = v
		}
		if a.n > 1 && a.last*x < 0 {
			a.zeroCrossings++
		}
		a.last = x
	}
}

// Result returns the statistics so far.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}
	nf := float64(a.n)
	s := Stats{
		Length:        a.n,
		DC:            a.mean,
		RMS:           math.Sqrt(a.sumSq / nf),
		Peak:          a.peak,
		ZeroCrossings: a.zeroCrossings,
		Variance:      a.m2 / nf,
	}
	if s.RMS > 0 {
		s.CrestDB = 20 * math.Log10(s.Peak/s.RMS)
	}
	if s.Variance > 0 {
		s.Skewness = (a.m3 / nf) / (s.Variance * math.Sqrt(s.Variance))
		s.Kurtosis = (a.m4/nf)/(s.Variance*s.Variance) - 3
	}
	return s
}

// Reset clears the accumulator.
func (a *Accumulator) Reset() { *a = Accumulator{} }

// Calculate returns the statistics of samples.
func Calculate(samples []float64) Stats {
	var a Accumulator
	a.Update(samples)
	return a.Result()
}
