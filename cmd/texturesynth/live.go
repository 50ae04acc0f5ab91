package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/cwbudde/algo-texture/engine"
	"github.com/cwbudde/algo-texture/internal/playback"
)

const liveHelp = "keys: 1-8 toggle module, p play mode, t transport, h hold, [ ] entropy depth, - = entropy rate, r reset, q quit"

// liveModules maps the digit keys to the toggleable modules.
var liveModules = []engine.ModuleID{
	engine.Noise1, engine.Noise2,
	engine.Crackle1, engine.Crackle2,
	engine.Glitch1, engine.Glitch2,
	engine.Gate, engine.Pitch,
}

// controller applies key presses to an engine from the control side.
type controller struct {
	e         *engine.Engine
	transport bool
	hold      bool
}

func newController(e *engine.Engine) *controller {
	return &controller{e: e, transport: true}
}

// key handles one key press and returns a status line. quit is true for q,
// Ctrl-C and Ctrl-D.
func (c *controller) key(k byte) (status string, quit bool) {
	switch {
	case k == 'q' || k == 3 || k == 4:
		return "", true
	case k >= '1' && int(k-'1') < len(liveModules):
		id := liveModules[k-'1']
		on, _ := c.e.Get(id, "enabled")
		_, _ = c.e.Set(id, "enabled", 1-on)
		return fmt.Sprintf("%s %s", id, onOff(on == 0)), false
	case k == 'p':
		m := (c.e.PlayMode() + 1) % engine.PlayMode(len(engine.PlayModeLabels))
		c.e.SetPlayMode(m)
		return "play mode " + m.String(), false
	case k == 't':
		c.transport = !c.transport
		c.e.SetTransport(c.transport)
		return "transport " + onOff(c.transport), false
	case k == 'h':
		c.hold = !c.hold
		c.e.SetHold(c.hold)
		return "hold " + onOff(c.hold), false
	case k == '[' || k == ']':
		return c.nudge("entropy_depth", k == ']', 0.1), false
	case k == '-' || k == '=':
		return c.nudge("entropy_rate", k == '=', 0.25), false
	case k == 'r':
		c.e.SetState(engine.DefaultState())
		return "reset to defaults", false
	}
	return "", false
}

func (c *controller) nudge(name string, up bool, step float64) string {
	v, _ := c.e.Get(engine.Global, name)
	if !up {
		step = -step
	}
	_, _ = c.e.Set(engine.Global, name, v+step)
	v, _ = c.e.Get(engine.Global, name)
	return fmt.Sprintf("%s %.2f", name, v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// runLive plays e and reads single key presses from in, which must be a
// terminal. The terminal is restored on return.
func runLive(ctx context.Context, e *engine.Engine, in *os.File, out io.Writer, log logrus.FieldLogger) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("-live needs a terminal on stdin")
	}

	cfg := e.Config()
	stream := playback.NewStream(e, cfg.BlockSize)
	p, err := playback.Open(int(cfg.SampleRate), 50*time.Millisecond, stream)
	if err != nil {
		return err
	}
	defer p.Close()

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("live: %w", err)
	}
	defer func() { _ = term.Restore(fd, old) }()

	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := in.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	p.Start()
	// Raw mode disables output post-processing, so lines end in \r\n.
	say := func(s string) { fmt.Fprint(out, strings.TrimRight(s, "\n")+"\r\n") }
	say(liveHelp)

	c := newController(e)
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			status, quit := c.key(k)
			if quit {
				log.WithField("frames", stream.Frames()).Debug("live session ended")
				return nil
			}
			if status != "" {
				say(status)
			}
			if err := p.Err(); err != nil {
				return fmt.Errorf("playback: %w", err)
			}
		}
	}
}
