package player

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vsariola/sequence/parameter"
)

// Output is the sink tracks are played into: a parameter plus the adapters
// currently bound to it. With UseMainThread, adapters do not touch the
// parameter on the player goroutine; instead they register here and Update
// applies their latest values on the calling goroutine.
type Output struct {
	ID            string
	Parameter     parameter.Parameter
	UseMainThread bool

	mu       sync.Mutex
	adapters []DeferredAdapter
}

var ErrDuplicateAdapter = errors.New("adapter already registered")

func NewOutput(id string, p parameter.Parameter, useMainThread bool) *Output {
	return &Output{ID: id, Parameter: p, UseMainThread: useMainThread}
}

// RegisterAdapter adds a to the adapters updated by Update. Registering the
// same adapter twice is an error and leaves the registrations unchanged.
func (o *Output) RegisterAdapter(a DeferredAdapter) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if slices.Contains(o.adapters, a) {
		return fmt.Errorf("output %q: %w", o.ID, ErrDuplicateAdapter)
	}
	o.adapters = append(o.adapters, a)
	return nil
}

// RemoveAdapter removes a; removing an adapter that is not registered does
// nothing.
func (o *Output) RemoveAdapter(a DeferredAdapter) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i := slices.Index(o.adapters, a); i >= 0 {
		o.adapters = slices.Delete(o.adapters, i, i+1)
	}
}

// Adapters returns the number of registered adapters.
func (o *Output) Adapters() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.adapters)
}

// Update writes the latest value of every registered adapter to the
// parameter. An adapter that has not received a value yet writes nothing;
// otherwise its value is written again even if it did not change.
func (o *Output) Update(deltaTime float64) {
	o.mu.Lock()
	adapters := slices.Clone(o.adapters)
	o.mu.Unlock()
	for _, a := range adapters {
		a.setValue()
	}
}
