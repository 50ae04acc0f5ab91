// Command texturesynth renders, plays and analyzes noise textures.
//
// Usage:
//
//	texturesynth [flags]
//
// Without -out, -play or -live it prints the level and spectral color of the
// rendered texture.
//
// Examples:
//
//	texturesynth -set noise1.type=pink -seconds 10 -out pink.wav
//	texturesynth -preset vinyl.json -play
//	texturesynth -preset vinyl.json -live
//	texturesynth -batch presets/ -out renders/
//	texturesynth -set crackle1.rate=40 -save-preset dusty.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/dither"
	"github.com/cwbudde/algo-texture/dsp/window"
	"github.com/cwbudde/algo-texture/engine"
	"github.com/cwbudde/algo-texture/internal/wav"
	"github.com/cwbudde/algo-texture/preset"
)

// assignments collects repeated -set flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	*a = append(*a, v)
	return nil
}

type options struct {
	preset     string
	sets       assignments
	seconds    float64
	rate       int
	block      int
	seed       int64
	out        string
	play       bool
	live       bool
	analyze    bool
	batch      string
	savePreset string
	dither     string
	shape      string
	window     string
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.preset, "preset", "", "load a JSON preset before applying -set")
	flag.Var(&o.sets, "set", "module.param=value (repeatable), e.g. noise1.type=pink")
	flag.Float64Var(&o.seconds, "seconds", 5, "render length in seconds")
	flag.IntVar(&o.rate, "rate", 48000, "sample rate in Hz")
	flag.IntVar(&o.block, "block", 512, "processing block size in frames")
	flag.Int64Var(&o.seed, "seed", 1, "root random seed")
	flag.StringVar(&o.out, "out", "", "write a 16-bit WAV file (output directory with -batch)")
	flag.BoolVar(&o.play, "play", false, "play through the default audio device")
	flag.BoolVar(&o.live, "live", false, "play and control from the keyboard")
	flag.BoolVar(&o.analyze, "analyze", false, "print level and spectral color of the render")
	flag.StringVar(&o.batch, "batch", "", "render every preset in this directory")
	flag.StringVar(&o.savePreset, "save-preset", "", "write the resulting state as a preset")
	flag.StringVar(&o.dither, "dither", "triangular", "WAV dither: none, rectangular, triangular")
	flag.StringVar(&o.shape, "shape", "flat", "WAV noise shaping: flat, first-order, second-order, f-weighted")
	flag.StringVar(&o.window, "window", "hann", "analysis window: hann, hamming, blackman, blackman-harris, flat-top, rectangular")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texturesynth [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders noise, crackle and glitch textures.\n\n")
		fmt.Fprintf(os.Stderr, "Modules: %s\n\n", moduleNames())
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(o.verbose)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, log); err != nil {
		log.WithError(err).Error("texturesynth failed")
		os.Exit(1)
	}
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func run(ctx context.Context, o options, log logrus.FieldLogger) error {
	if o.seconds <= 0 && !o.live && !o.play {
		return fmt.Errorf("-seconds must be > 0: %g", o.seconds)
	}
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(o.rate)),
		core.WithBlockSize(o.block),
		core.WithSeed(o.seed),
	)
	wopt, err := ditherOption(o.dither, o.shape, o.seed)
	if err != nil {
		return err
	}
	wt, err := window.ParseType(o.window)
	if err != nil {
		return err
	}
	if o.batch != "" {
		return runBatch(ctx, o.batch, o.out, cfg, o.seconds, log, wopt)
	}

	e, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		return err
	}
	// Offline and device rendering have no host transport; generators follow
	// play mode with the transport running.
	e.SetTransport(true)

	name := "untitled"
	if o.preset != "" {
		p, _, err := preset.ReadFile(o.preset, log)
		if err != nil {
			return err
		}
		preset.Apply(e, p)
		name = p.Name
	}
	for _, a := range o.sets {
		id, pname, v, err := parseAssignment(a)
		if err != nil {
			return err
		}
		if _, err := e.Set(id, pname, v); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"module": id, "param": pname, "value": v}).Debug("parameter set")
	}
	if o.savePreset != "" {
		if err := preset.WriteFile(o.savePreset, preset.Capture(e, name)); err != nil {
			return err
		}
		log.WithField("file", o.savePreset).Info("preset saved")
	}

	switch {
	case o.live:
		return runLive(ctx, e, os.Stdin, os.Stdout, log)
	case o.play:
		return runPlay(ctx, e, o.seconds, log)
	}

	frames := int(o.seconds * cfg.SampleRate)
	analyze := o.analyze || o.out == ""
	res, err := renderTo(ctx, e, frames, o.out, analyze, wopt)
	if err != nil {
		return err
	}
	if o.out != "" {
		log.WithFields(logrus.Fields{"file": o.out, "frames": res.frames}).Info("render written")
	}
	if analyze {
		summary, err := res.summary(cfg.SampleRate, wt)
		if err != nil {
			return err
		}
		fmt.Println(summary)
	}
	return nil
}

func ditherOption(typ, shape string, seed int64) (wav.Option, error) {
	t, err := dither.ParseType(typ)
	if err != nil {
		return nil, err
	}
	for s := dither.Flat; s.Valid(); s++ {
		if s.String() == shape {
			return wav.WithDither(t, s, seed), nil
		}
	}
	return nil, fmt.Errorf("unknown noise shape %q", shape)
}

func moduleNames() string {
	ids := engine.Modules()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
