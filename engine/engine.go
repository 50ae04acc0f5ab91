package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-texture/dsp/core"
	"github.com/cwbudde/algo-texture/dsp/effects"
	"github.com/cwbudde/algo-texture/dsp/entropy"
	"github.com/cwbudde/algo-texture/dsp/generators"
	"github.com/cwbudde/algo-texture/dsp/random"
	"github.com/cwbudde/algo-texture/dsp/smooth"
)

var (
	// ErrUnknownModule is returned for a ModuleID or module name outside the
	// fixed module set.
	ErrUnknownModule = errors.New("engine: unknown module")
	// ErrUnknownParameter is returned for a parameter name the module does
	// not have.
	ErrUnknownParameter = errors.New("engine: unknown parameter")
)

// change is one parameter update sent from the control side.
type change struct {
	module ModuleID
	name   string
	value  float64
}

// Engine runs the texture pipeline. See the package documentation for the
// threading contract.
type Engine struct {
	cfg core.ProcessorConfig
	log logrus.FieldLogger

	// Audio side. Only Process and Reset touch these.
	noise   [2]*generators.Noise
	crackle [2]*generators.Crackle
	glitch  [2]*effects.Glitch
	gate    *effects.Burster
	pitch   *effects.Drift
	entropy *entropy.Source

	stages     [numModules]stage
	generators []stage
	effects    []stage
	modulated  []Modulated

	master  *smooth.Fader
	scratch core.Stereo
	curve   []float64

	// Control to audio exchange.
	changes chan change
	pending atomic.Pointer[State]

	playMode  atomic.Int32
	transport atomic.Bool
	hold      atomic.Bool

	// Control side mirror.
	mu     sync.Mutex
	mirror State
}

// New builds the engine and every module at cfg.SampleRate. cfg.BlockSize
// sets the internal chunk length; Process accepts any block length.
// Module seeds are derived from cfg.Seed.
func New(cfg core.ProcessorConfig, opts ...Option) (*Engine, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("engine block size must be > 0: %d", cfg.BlockSize)
	}

	ec := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&ec); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:     cfg,
		log:     ec.logger,
		scratch: core.NewStereo(cfg.BlockSize),
		curve:   make([]float64, cfg.BlockSize),
		changes: make(chan change, ec.queueSize),
	}
	if err := e.build(ec); err != nil {
		return nil, err
	}

	e.mirror = DefaultState()
	e.applyState(&e.mirror)
	e.playMode.Store(int32(e.mirror.Global.PlayMode))

	e.log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"block_size":  cfg.BlockSize,
		"seed":        cfg.Seed,
		"queue_size":  ec.queueSize,
	}).Debug("engine created")

	return e, nil
}

func (e *Engine) build(ec config) error {
	fs := e.cfg.SampleRate
	seed := func(id ModuleID) int64 { return random.Derive(e.cfg.Seed, int(id)) }

	for i := range 2 {
		n, err := generators.NewNoise(fs,
			generators.WithSeed(seed(Noise1+ModuleID(i))),
			generators.WithFadeMs(ec.moduleFadeMs))
		if err != nil {
			return fmt.Errorf("engine: %v: %w", Noise1+ModuleID(i), err)
		}
		e.noise[i] = n

		c, err := generators.NewCrackle(fs,
			generators.WithSeed(seed(Crackle1+ModuleID(i))),
			generators.WithFadeMs(ec.moduleFadeMs))
		if err != nil {
			return fmt.Errorf("engine: %v: %w", Crackle1+ModuleID(i), err)
		}
		e.crackle[i] = c

		g, err := effects.NewGlitch(fs,
			effects.WithSeed(seed(Glitch1+ModuleID(i))),
			effects.WithFadeMs(ec.moduleFadeMs))
		if err != nil {
			return fmt.Errorf("engine: %v: %w", Glitch1+ModuleID(i), err)
		}
		e.glitch[i] = g
	}

	gate, err := effects.NewBurster(fs, effects.WithSeed(seed(Gate)), effects.WithFadeMs(ec.moduleFadeMs))
	if err != nil {
		return fmt.Errorf("engine: %v: %w", Gate, err)
	}
	e.gate = gate

	pitch, err := effects.NewDrift(fs, effects.WithSeed(seed(Pitch)), effects.WithFadeMs(ec.moduleFadeMs))
	if err != nil {
		return fmt.Errorf("engine: %v: %w", Pitch, err)
	}
	e.pitch = pitch

	src, err := entropy.New(fs, seed(Global))
	if err != nil {
		return fmt.Errorf("engine: entropy: %w", err)
	}
	e.entropy = src

	master, err := smooth.NewFader(ec.masterFadeMs, fs)
	if err != nil {
		return fmt.Errorf("engine: master fader: %w", err)
	}
	e.master = master

	e.stages = [numModules]stage{
		Noise1:   e.noise[0],
		Noise2:   e.noise[1],
		Crackle1: e.crackle[0],
		Crackle2: e.crackle[1],
		Glitch1:  e.glitch[0],
		Glitch2:  e.glitch[1],
		Gate:     e.gate,
		Pitch:    e.pitch,
	}
	e.generators = e.stages[Noise1:Glitch1]
	e.effects = e.stages[Glitch1:]
	e.modulated = []Modulated{e.noise[0], e.noise[1], e.crackle[0], e.crackle[1], e.pitch}
	return nil
}

// Config returns the processing configuration.
func (e *Engine) Config() core.ProcessorConfig { return e.cfg }

// Set changes one parameter. The value is clamped to the parameter range;
// the result reports whether it changed.
func (e *Engine) Set(id ModuleID, name string, v float64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed, err := e.mirror.Set(id, name, v)
	if err != nil || !changed {
		return false, err
	}

	if id == Global && name == "play_mode" {
		e.playMode.Store(int32(e.mirror.Global.PlayMode))
		return true, nil
	}

	stored, _ := e.mirror.Get(id, name)
	e.publish(change{module: id, name: name, value: stored})
	return true, nil
}

// Get reads one parameter as last set from the control side.
func (e *Engine) Get(id ModuleID, name string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mirror.Get(id, name)
}

// State returns a copy of the control-side state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mirror
}

// SetState replaces every parameter. Out-of-range fields are clamped. The
// audio side picks the snapshot up at the start of its next block.
func (e *Engine) SetState(s State) {
	s.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.mirror = s
	snap := s
	e.pending.Store(&snap)
	e.playMode.Store(int32(s.Global.PlayMode))

	e.log.WithFields(logrus.Fields{
		"play_mode":     s.Global.PlayMode,
		"entropy_rate":  s.Global.EntropyRate,
		"entropy_depth": s.Global.EntropyDepth,
	}).Info("engine state restored")
}

// SetPlayMode selects when the generators sound.
func (e *Engine) SetPlayMode(m PlayMode) bool {
	changed, _ := e.Set(Global, "play_mode", float64(m))
	return changed
}

// PlayMode returns the current play mode.
func (e *Engine) PlayMode() PlayMode { return PlayMode(e.playMode.Load()) }

// SetTransport reports whether the host transport is playing.
func (e *Engine) SetTransport(playing bool) { e.transport.Store(playing) }

// SetHold sets the hold latch used in Hold mode.
func (e *Engine) SetHold(on bool) { e.hold.Store(on) }

// Hold reports the hold latch.
func (e *Engine) Hold() bool { return e.hold.Load() }

// publish hands c to the audio side. It must be called with mu held.
func (e *Engine) publish(c change) {
	if e.pending.Load() != nil {
		e.storeSnapshot()
		return
	}

	select {
	case e.changes <- c:
	default:
		e.storeSnapshot()
		e.log.WithFields(logrus.Fields{
			"module":     c.module.String(),
			"param":      c.name,
			"queue_size": cap(e.changes),
		}).Debug("change queue full, publishing snapshot")
	}
}

func (e *Engine) storeSnapshot() {
	snap := e.mirror
	e.pending.Store(&snap)
}
