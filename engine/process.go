package engine

import "github.com/cwbudde/algo-texture/dsp/core"

// Process renders one block. out receives a copy of in (silence when in
// is empty), the generators are mixed in and the effects run over the
// result. Blocks of any length are processed in chunks of the configured
// block size.
func (e *Engine) Process(in, out core.Stereo) {
	e.drain()

	n := out.Len()
	if in.Len() == 0 {
		out.Zero()
	} else if copied := out.CopyFrom(in); copied < n {
		out.Slice(copied, n).Zero()
	}

	e.master.Enable(e.generatorsOn())

	for off := 0; off < n; off += len(e.curve) {
		m := min(len(e.curve), n-off)
		e.processChunk(out.Slice(off, off+m))
	}
}

func (e *Engine) processChunk(buf core.Stereo) {
	m := buf.Len()

	v := e.entropy.Advance(m)
	for _, mod := range e.modulated {
		mod.SetEntropy(v)
	}

	if e.master.Active() {
		gen := e.scratch.Slice(0, m)
		gen.Zero()
		for _, g := range e.generators {
			g.Process(gen)
		}
		curve := e.curve[:m]
		e.master.Fill(curve)
		gen.ApplyGainCurve(curve)
		core.MixInto(buf, gen, 1)
	}

	for _, fx := range e.effects {
		fx.Process(buf)
	}
}

func (e *Engine) generatorsOn() bool {
	switch PlayMode(e.playMode.Load()) {
	case Playback:
		return e.transport.Load()
	case Hold:
		return e.hold.Load()
	default:
		return true
	}
}

// drain applies queued changes and then any pending snapshot.
func (e *Engine) drain() {
	for {
		select {
		case c := <-e.changes:
			e.apply(c)
		default:
			if s := e.pending.Swap(nil); s != nil {
				e.applyState(s)
			}
			return
		}
	}
}

func (e *Engine) apply(c change) {
	switch c.module {
	case Global:
		switch c.name {
		case "entropy_rate":
			e.entropy.SetRate(c.value)
		case "entropy_depth":
			e.entropy.SetDepth(c.value)
		}
	default:
		if c.module >= 0 && int(c.module) < numModules {
			e.stages[c.module].SetParameter(c.name, c.value)
		}
	}
}

func (e *Engine) applyState(s *State) {
	for i := range 2 {
		e.noise[i].SetState(s.Noise[i])
		e.crackle[i].SetState(s.Crackle[i])
		e.glitch[i].SetState(s.Glitch[i])
	}
	e.gate.SetState(s.Gate)
	e.pitch.SetState(s.Pitch)
	e.entropy.SetRate(s.Global.EntropyRate)
	e.entropy.SetDepth(s.Global.EntropyDepth)
}

// Reset clears every module's signal state and the entropy walk. It must
// not run concurrently with Process.
func (e *Engine) Reset() {
	e.drain()
	for _, s := range e.stages {
		s.Reset()
	}
	e.entropy.Reset()
	e.master.Enable(e.generatorsOn())
	e.master.Snap()
}
