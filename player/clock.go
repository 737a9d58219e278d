package player

import (
	"errors"
	"sync"
	"time"
)

type (
	// Clock drives the player: once started, it calls tick repeatedly from
	// its own goroutine with the time elapsed since the previous call, in
	// seconds. Stop must not return before the last call to tick has
	// returned.
	Clock interface {
		Start(tick func(deltaTime float64)) error
		Stop()
	}

	// StandardClock is a Clock ticking Frequency times per second from a
	// time.Ticker, measuring the real elapsed time between ticks.
	StandardClock struct {
		Frequency float64

		mu       sync.Mutex
		close    chan struct{}
		finished chan struct{}
	}
)

const DefaultFrequency = 1000

var ErrClockRunning = errors.New("clock already running")

func NewStandardClock(frequency float64) *StandardClock {
	return &StandardClock{Frequency: frequency}
}

func (c *StandardClock) Start(tick func(deltaTime float64)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.close != nil {
		return ErrClockRunning
	}
	if !(c.Frequency > 0) {
		return errors.New("clock frequency must be positive")
	}
	c.close = make(chan struct{}, 1)
	c.finished = make(chan struct{})
	go c.run(tick, c.close, c.finished)
	return nil
}

func (c *StandardClock) run(tick func(float64), closeChan <-chan struct{}, finished chan<- struct{}) {
	defer close(finished)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / c.Frequency))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-closeChan:
			return
		case now := <-ticker.C:
			tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Stop stops the clock and waits for its goroutine to finish. Stopping a
// clock that is not running does nothing.
func (c *StandardClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.close == nil {
		return
	}
	TrySend(c.close, struct{}{})
	<-c.finished
	c.close, c.finished = nil, nil
}
