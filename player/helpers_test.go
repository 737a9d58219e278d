package player_test

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/vsariola/sequence"
	"github.com/vsariola/sequence/player"
)

type manualClock struct {
	tick    func(deltaTime float64)
	stopped bool
}

func (c *manualClock) Start(tick func(deltaTime float64)) error {
	c.tick = tick
	return nil
}

func (c *manualClock) Stop() { c.stopped = true }

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

// upDownSequence has one float track bound to output: 0 to 1 during [0,1),
// back to 0 during [1,2), range [0,10], and the sequence lasts 3 seconds.
func upDownSequence(output string) sequence.Sequence {
	return sequence.Sequence{
		Duration: 3,
		Tracks: []sequence.Track{{
			ID:      "updown",
			Kind:    sequence.Float,
			Output:  output,
			Minimum: []float32{0},
			Maximum: []float32{10},
			Segments: []sequence.Segment{
				{ID: "up", StartTime: 0, Duration: 1, Curves: []sequence.Curve{sequence.NewLinearCurve(0, 1)}},
				{ID: "down", StartTime: 1, Duration: 1, Curves: []sequence.Curve{sequence.NewLinearCurve(1, 0)}},
			},
		}},
	}
}

// newTestPlayer returns a player with a manual clock, started and loaded with
// seq, but not playing.
func newTestPlayer(t *testing.T, seq sequence.Sequence, outputs ...*player.Output) (*player.Player, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	p := player.NewPlayer(outputs, player.WithClock(clock), player.WithLogger(quietLogger()))
	if err := p.Load(seq); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return p, clock
}

// drain returns all messages waiting in the broker.
func drain(b *player.Broker) []player.MsgToMain {
	var ret []player.MsgToMain
	for {
		select {
		case msg := <-b.ToMain:
			ret = append(ret, msg)
		default:
			return ret
		}
	}
}

// timeoutReceive blocks until a value is received from c, or t passes. ok is
// false on a timeout or a closed channel.
func timeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}

// requireResponsive fails if the player lock cannot be taken within a second.
func requireResponsive(t *testing.T, p *player.Player) {
	t.Helper()
	done := make(chan float64, 1)
	go func() { done <- p.PlayerTime() }()
	if _, ok := timeoutReceive(done, time.Second); !ok {
		t.Fatalf("player is locked")
	}
}
