package player

import (
	"sync"

	"github.com/vsariola/sequence"
)

type (
	// Adapter is the playback binding of one track to one output. Tick is
	// called on the player goroutine with the current player time. Destroy
	// unbinds the adapter; a destroyed adapter never writes its parameter
	// again.
	Adapter interface {
		Tick(time float64)
		Destroy()
	}

	// DeferredAdapter is an adapter that stores its values until the
	// goroutine owning the parameter applies them through Output.Update.
	DeferredAdapter interface {
		Adapter
		setValue()
	}

	// curveAdapter samples a track of kind KindOf[V] and delivers the
	// denormalized values to write, either directly from Tick or later from
	// setValue.
	curveAdapter[V sequence.Vector] struct {
		track   *sequence.Track
		output  *Output
		write   func(V)
		deliver func(V)

		mu        sync.Mutex
		pending   V
		hasValue  bool
		destroyed bool
	}
)

// newCurveAdapter selects the delivery mode from output.UseMainThread. A
// deferred adapter registers itself with the output.
func newCurveAdapter[V sequence.Vector](track *sequence.Track, output *Output, write func(V)) (*curveAdapter[V], error) {
	a := &curveAdapter[V]{track: track, output: output, write: write}
	if !output.UseMainThread {
		a.deliver = a.write
		return a, nil
	}
	a.deliver = a.store
	if err := output.RegisterAdapter(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *curveAdapter[V]) Tick(time float64) {
	s := a.track.SegmentAt(time)
	if s == nil {
		return
	}
	pos := (time - s.StartTime) / s.Duration
	a.deliver(sequence.Denormalize(sequence.Value[V](s, pos), a.track.Minimum, a.track.Maximum))
}

// store keeps only the latest value; values stored between two calls to
// setValue are dropped.
func (a *curveAdapter[V]) store(v V) {
	a.mu.Lock()
	a.pending = v
	a.hasValue = true
	a.mu.Unlock()
}

// setValue writes with the lock held, so once Destroy returns no write is in
// flight.
func (a *curveAdapter[V]) setValue() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed || !a.hasValue {
		return
	}
	a.write(a.pending)
}

func (a *curveAdapter[V]) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.mu.Unlock()
	if a.output.UseMainThread {
		a.output.RemoveAdapter(a)
	}
}
