// Package oto drives a player from an audio device: the device pulls silent
// samples, and every pull advances the player by the duration of the pulled
// samples. This keeps the sequence in sync with any audio played through the
// same device.
package oto

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type (
	// Clock is a player.Clock ticked by an oto player. Only one oto context
	// can exist in a process, so all Clocks share the context created by the
	// first one started, and its sample rate.
	Clock struct {
		SampleRate int
		BufferSize time.Duration

		player device
		reader *tickReader
	}

	// device is the part of *oto.Player the clock uses.
	device interface {
		Play()
		Pause()
		Close() error
	}

	// tickReader produces silence and ticks once per Read.
	tickReader struct {
		mu         sync.Mutex
		tick       func(deltaTime float64)
		sampleRate float64
	}
)

const bytesPerFrame = 4 // mono float32

var (
	contextOnce sync.Once
	context     *oto.Context
	contextRate int
	contextErr  error
)

func NewClock(sampleRate int) *Clock {
	return &Clock{SampleRate: sampleRate, BufferSize: 20 * time.Millisecond}
}

func sharedContext(sampleRate int, bufferSize time.Duration) (*oto.Context, int, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		})
		if err != nil {
			contextErr = fmt.Errorf("cannot create oto context: %w", err)
			return
		}
		<-ready
		context, contextRate = ctx, sampleRate
	})
	return context, contextRate, contextErr
}

func (c *Clock) Start(tick func(deltaTime float64)) error {
	if c.player != nil {
		return fmt.Errorf("oto clock already running")
	}
	ctx, rate, err := sharedContext(c.SampleRate, c.BufferSize)
	if err != nil {
		return err
	}
	c.reader = newTickReader(rate, tick)
	c.player = ctx.NewPlayer(c.reader)
	c.player.Play()
	return nil
}

// Stop pauses and closes the device player. Once Stop returns, tick is not
// called anymore.
func (c *Clock) Stop() {
	if c.player == nil {
		return
	}
	c.player.Pause()
	c.reader.stop()
	c.player.Close()
	c.player, c.reader = nil, nil
}

func newTickReader(sampleRate int, tick func(deltaTime float64)) *tickReader {
	return &tickReader{tick: tick, sampleRate: float64(sampleRate)}
}

func (r *tickReader) Read(p []byte) (int, error) {
	n := len(p) - len(p)%bytesPerFrame
	clear(p[:n])
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tick != nil && n > 0 {
		r.tick(float64(n/bytesPerFrame) / r.sampleRate)
	}
	return n, nil
}

func (r *tickReader) stop() {
	r.mu.Lock()
	r.tick = nil
	r.mu.Unlock()
}
