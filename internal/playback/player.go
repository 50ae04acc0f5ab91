package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays a stereo float32 stream through the default output device.
type Player struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	started bool
}

// Open creates the output context and binds src to a player. The context is
// ready when Open returns.
func Open(sampleRate int, bufferSize time.Duration, src io.Reader) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("playback: sample rate must be > 0: %d", sampleRate)
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(src)}, nil
}

// Start begins playback. Calling it twice is a no-op.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.player.Play()
	p.started = true
}

// Stop pauses playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.player.Pause()
	p.started = false
}

// Err reports an asynchronous playback error, if any.
func (p *Player) Err() error {
	return p.player.Err()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = false
	return p.player.Close()
}
