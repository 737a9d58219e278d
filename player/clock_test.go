package player_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vsariola/sequence/player"
)

func TestStandardClock(t *testing.T) {
	c := player.NewStandardClock(200)
	var ticks atomic.Int64
	var total atomic.Int64
	started := make(chan struct{}, 1)
	err := c.Start(func(dt float64) {
		ticks.Add(1)
		total.Add(int64(dt * 1e6))
		player.TrySend(started, struct{}{})
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.Start(func(float64) {}); !errors.Is(err, player.ErrClockRunning) {
		t.Fatalf("second Start returned %v, want ErrClockRunning", err)
	}
	if _, ok := timeoutReceive(started, 5*time.Second); !ok {
		t.Fatalf("clock did not tick")
	}
	c.Stop()
	n := ticks.Load()
	if total.Load() <= 0 {
		t.Fatalf("clock ticked with no elapsed time")
	}
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != n {
		t.Fatalf("clock ticked after Stop")
	}
	c.Stop()
	if err := c.Start(func(float64) {}); err != nil {
		t.Fatalf("restarting failed: %v", err)
	}
	c.Stop()
}

func TestStandardClockNeedsFrequency(t *testing.T) {
	if err := player.NewStandardClock(0).Start(func(float64) {}); err == nil {
		t.Fatalf("expected an error for a zero frequency")
	}
}
