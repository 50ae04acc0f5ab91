package color

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-texture/dsp/window"
	"github.com/cwbudde/algo-texture/measure/levels"
)

const (
	defaultFFTSize = 4096
	defaultLowHz   = 100.0
	defaultHighHz  = 10000.0

	bandsPerOctave = 3
	minFFTSize     = 256
)

// ErrTooShort is returned when the signal is shorter than one FFT frame.
var ErrTooShort = errors.New("color: signal shorter than one analysis frame")

// Config holds analysis parameters. Zero values select defaults.
type Config struct {
	FFTSize int
	LowHz   float64
	HighHz  float64
	// Window tapers each frame; the zero value is Hann.
	Window window.Type
}

// Band is the averaged power of one fractional-octave band.
type Band struct {
	CenterHz float64
	PowerDB  float64
}

// Report summarizes one channel of audio.
type Report struct {
	RMS     float64
	Peak    float64
	CrestDB float64
	DC      float64
	// Kurtosis is the excess kurtosis of the samples; crackle reads far
	// above steady noise.
	Kurtosis float64

	// SlopeDBPerOctave is the fitted tilt of Bands.
	SlopeDBPerOctave float64
	Bands            []Band
}

func (r Report) String() string {
	return fmt.Sprintf("rms=%.4f peak=%.4f crest=%.2fdB kurtosis=%.2f slope=%.2fdB/oct",
		r.RMS, r.Peak, r.CrestDB, r.Kurtosis, r.SlopeDBPerOctave)
}

// Analyze measures samples with the default configuration.
func Analyze(samples []float64, sampleRate float64) (Report, error) {
	return AnalyzeWith(samples, sampleRate, Config{})
}

// AnalyzeWith measures samples with cfg.
func AnalyzeWith(samples []float64, sampleRate float64, cfg Config) (Report, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("color: sample rate must be > 0 and finite: %f", sampleRate)
	}
	cfg = normalizeConfig(cfg, sampleRate)
	if len(samples) < cfg.FFTSize {
		return Report{}, ErrTooShort
	}

	rep := levelsOf(samples)

	power, err := averagePower(samples, cfg.FFTSize, cfg.Window)
	if err != nil {
		return Report{}, err
	}

	rep.Bands = bands(power, sampleRate, cfg)
	rep.SlopeDBPerOctave = fitSlope(rep.Bands)
	return rep, nil
}

func normalizeConfig(cfg Config, sampleRate float64) Config {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}
	cfg.FFTSize = max(minFFTSize, nextPowerOf2(cfg.FFTSize))
	if cfg.LowHz <= 0 {
		cfg.LowHz = defaultLowHz
	}
	if cfg.HighHz <= 0 || cfg.HighHz > sampleRate/2 {
		cfg.HighHz = math.Min(defaultHighHz, sampleRate/2)
	}
	if cfg.HighHz < cfg.LowHz {
		cfg.LowHz, cfg.HighHz = cfg.HighHz, cfg.LowHz
	}
	return cfg
}

func levelsOf(x []float64) Report {
	st := levels.Calculate(x)
	return Report{RMS: st.RMS, Peak: st.Peak, CrestDB: st.CrestDB, DC: st.DC, Kurtosis: st.Kurtosis}
}

// averagePower returns the mean |X[k]|^2 over 50%-overlapping windowed
// frames, for bins 0..n/2.
func averagePower(x []float64, n int, wt window.Type) ([]float64, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("color: fft plan: %w", err)
	}

	win, err := window.Generate(wt, n, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	bins := n/2 + 1
	frame := make([]complex128, n)
	spec := make([]complex128, n)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)
	acc := make([]float64, bins)

	frames := 0
	for start := 0; start+n <= len(x); start += n / 2 {
		for i := range frame {
			frame[i] = complex(x[start+i]*win[i], 0)
		}
		if err := plan.Forward(spec, frame); err != nil {
			return nil, fmt.Errorf("color: fft: %w", err)
		}
		for k := range bins {
			re[k] = real(spec[k])
			im[k] = imag(spec[k])
		}
		vecmath.Power(pow, re, im)
		vecmath.AddBlockInPlace(acc, pow)
		frames++
	}

	vecmath.ScaleBlock(acc, acc, 1/float64(frames))
	return acc, nil
}

func bands(power []float64, sampleRate float64, cfg Config) []Band {
	binHz := sampleRate / float64(cfg.FFTSize)
	edge := math.Pow(2, 1/(2*float64(bandsPerOctave)))

	var out []Band
	for k := 0; ; k++ {
		center := cfg.LowHz * math.Pow(2, float64(k)/bandsPerOctave)
		if center > cfg.HighHz*1.0001 {
			break
		}
		lo := int(math.Ceil(center / edge / binHz))
		hi := int(math.Floor(center * edge / binHz))
		lo = max(lo, 1)
		hi = min(hi, len(power)-1)
		if hi < lo {
			continue
		}

		var sum float64
		for i := lo; i <= hi; i++ {
			sum += power[i]
		}
		mean := sum / float64(hi-lo+1)
		if mean <= 0 {
			continue
		}
		out = append(out, Band{CenterHz: center, PowerDB: 10 * math.Log10(mean)})
	}
	return out
}

// fitSlope is the least-squares slope of PowerDB against log2(CenterHz).
func fitSlope(b []Band) float64 {
	if len(b) < 2 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for _, band := range b {
		x := math.Log2(band.CenterHz)
		sx += x
		sy += band.PowerDB
		sxx += x * x
		sxy += x * band.PowerDB
	}
	n := float64(len(b))
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
