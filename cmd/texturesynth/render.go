package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/window"
	"github.com/cwbudde/algo-texture/engine"
	"github.com/cwbudde/algo-texture/internal/playback"
	"github.com/cwbudde/algo-texture/internal/wav"
	"github.com/cwbudde/algo-texture/measure/color"
	"github.com/cwbudde/algo-texture/measure/loudness"
)

type renderResult struct {
	frames int64
	mono   []float64
	meter  *loudness.Meter
}

func (r renderResult) report(sampleRate float64, wt window.Type) (color.Report, error) {
	return color.AnalyzeWith(r.mono, sampleRate, color.Config{Window: wt})
}

// summary formats the spectral report and loudness of a kept render.
func (r renderResult) summary(sampleRate float64, wt window.Type) (string, error) {
	rep, err := r.report(sampleRate, wt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\nloudness %.1f LUFS integrated, %.1f LUFS short-term, peak %.1f dBFS",
		rep, r.meter.Integrated(), r.meter.ShortTerm(), r.meter.PeakDB()), nil
}

// renderTo renders frames through e. With a non-empty path the blocks are
// streamed to a WAV file; with keep the mono mix is retained for analysis.
func renderTo(ctx context.Context, e *engine.Engine, frames int, path string, keep bool, wopts ...wav.Option) (res renderResult, err error) {
	cfg := e.Config()
	var w *wav.Writer
	if path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return res, ferr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		if w, ferr = wav.NewWriter(f, int(cfg.SampleRate), wopts...); ferr != nil {
			return res, ferr
		}
	}
	if keep {
		res.mono = make([]float64, 0, frames)
		if res.meter, err = loudness.New(cfg.SampleRate); err != nil {
			return res, err
		}
	}

	block := core.NewStereo(cfg.BlockSize)
	for done := 0; done < frames; {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n := min(cfg.BlockSize, frames-done)
		buf := block.Slice(0, n)
		e.Process(core.Stereo{}, buf)
		if w != nil {
			if err := w.Write(buf); err != nil {
				return res, err
			}
		}
		if keep {
			res.meter.Process(buf)
			for i := range n {
				res.mono = append(res.mono, 0.5*(buf[0][i]+buf[1][i]))
			}
		}
		done += n
		res.frames += int64(n)
	}
	if w != nil {
		if err := w.Close(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// runPlay plays e through the default device for seconds, or until ctx is
// cancelled when seconds <= 0.
func runPlay(ctx context.Context, e *engine.Engine, seconds float64, log logrus.FieldLogger) error {
	cfg := e.Config()
	stream := playback.NewStream(e, cfg.BlockSize)
	p, err := playback.Open(int(cfg.SampleRate), 50*time.Millisecond, stream)
	if err != nil {
		return err
	}
	defer p.Close()

	p.Start()
	log.WithFields(logrus.Fields{"rate": cfg.SampleRate, "seconds": seconds}).Info("playing")

	var timeout <-chan time.Time
	if seconds > 0 {
		timeout = time.After(time.Duration(seconds * float64(time.Second)))
	}
	select {
	case <-ctx.Done():
	case <-timeout:
	}
	if err := p.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	log.WithField("frames", stream.Frames()).Info("playback stopped")
	return nil
}
