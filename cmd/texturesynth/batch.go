package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/engine"
	"github.com/cwbudde/algo-texture/internal/wav"
	"github.com/cwbudde/algo-texture/preset"
)

// runBatch renders every *.json preset in dir to outDir/<base>.wav, one
// engine per preset. The first failure cancels the rest.
func runBatch(ctx context.Context, dir, outDir string, cfg core.ProcessorConfig, seconds float64, log logrus.FieldLogger, wopts ...wav.Option) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("batch: no presets in %s", dir)
	}
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	frames := int(seconds * cfg.SampleRate)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		g.Go(func() error {
			out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), ".json")+".wav")
			return renderPreset(ctx, path, out, cfg, frames, log, wopts)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"presets": len(paths), "dir": outDir}).Info("batch done")
	return nil
}

func renderPreset(ctx context.Context, path, out string, cfg core.ProcessorConfig, frames int, log logrus.FieldLogger, wopts []wav.Option) error {
	plog := log.WithField("preset", filepath.Base(path))
	p, _, err := preset.ReadFile(path, plog)
	if err != nil {
		return err
	}
	e, err := engine.New(cfg, engine.WithLogger(plog))
	if err != nil {
		return err
	}
	e.SetTransport(true)
	preset.Apply(e, p)

	res, err := renderTo(ctx, e, frames, out, false, wopts...)
	if err != nil {
		return fmt.Errorf("batch %s: %w", path, err)
	}
	plog.WithFields(logrus.Fields{"file": out, "frames": res.frames}).Info("render written")
	return nil
}
