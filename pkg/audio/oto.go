//go:build !headless && !sdl

package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
)

func otoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   40 * time.Millisecond,
		})
		if err != nil {
			otoErr = fmt.Errorf("audio: %w", err)
			return
		}
		<-ready
		otoCtx, otoRate = ctx, sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("audio: context already running at %d Hz", otoRate)
	}
	return otoCtx, nil
}

// OtoPlayer plays samples through oto.
type OtoPlayer struct {
	player *oto.Player
	mutex  sync.Mutex
	closed bool
}

// Open returns a paused player reading from src.
func Open(sampleRate int, src io.Reader) (Player, error) {
	ctx, err := otoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &OtoPlayer{player: ctx.NewPlayer(src)}, nil
}

func (op *OtoPlayer) Play() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.closed {
		op.player.Play()
	}
}

func (op *OtoPlayer) Pause() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.closed {
		op.player.Pause()
	}
}

func (op *OtoPlayer) Close() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.closed {
		return nil
	}
	op.closed = true
	return op.player.Close()
}
