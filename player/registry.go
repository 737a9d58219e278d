package player

import (
	"fmt"
	"log"
	"sync"

	"github.com/vsariola/sequence"
	"github.com/vsariola/sequence/parameter"
)

type (
	// Factory creates the adapter binding track to output, or returns nil if
	// the parameter of the output has a type the track cannot drive.
	Factory func(track *sequence.Track, output *Output, p *Player) Adapter

	// Registry maps track kinds to adapter factories. Factories can only be
	// added, never removed.
	Registry struct {
		mu        sync.RWMutex
		factories map[sequence.Kind]Factory
	}
)

func NewRegistry() *Registry {
	return &Registry{factories: map[sequence.Kind]Factory{}}
}

// NewDefaultRegistry returns a registry with the curve adapters registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterCurveAdapters(r)
	return r
}

// Register adds a factory for a track kind. The first factory registered for
// a kind stays in effect. Register always returns true.
func (r *Registry) Register(kind sequence.Kind, f Factory) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; !ok {
		r.factories[kind] = f
	}
	return true
}

// Create looks up the factory for the kind of the track and calls it. It
// returns nil if there is no factory or the factory declines.
func (r *Registry) Create(track *sequence.Track, output *Output, p *Player) Adapter {
	r.mu.RLock()
	f, ok := r.factories[track.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return f(track, output, p)
}

// RegisterCurveAdapters registers the adapters for all curve track kinds:
// float tracks drive Float, Double and Int parameters, vec2 and vec3 tracks
// drive Vec2 and Vec3 parameters. vec4 tracks are not supported yet.
func RegisterCurveAdapters(r *Registry) {
	r.Register(sequence.Float, newFloatAdapter)
	r.Register(sequence.Vec2Kind, newVectorAdapter[sequence.Vec2])
	r.Register(sequence.Vec3Kind, newVectorAdapter[sequence.Vec3])
	r.Register(sequence.Vec4Kind, newVec4Adapter)
}

func newFloatAdapter(track *sequence.Track, output *Output, p *Player) Adapter {
	var write func(sequence.Vec1)
	switch param := output.Parameter.(type) {
	case *parameter.Float:
		write = func(v sequence.Vec1) { param.SetValue(v[0]) }
	case *parameter.Double:
		write = func(v sequence.Vec1) { param.SetValue(float64(v[0])) }
	case *parameter.Int:
		write = func(v sequence.Vec1) { param.SetValue(int(v[0])) }
	default:
		reject(p, track, output, Warning, fmt.Sprintf("cannot bind a float curve to output %q of type %T", output.ID, output.Parameter))
		return nil
	}
	a, err := newCurveAdapter(track, output, write)
	if err != nil {
		reject(p, track, output, Warning, err.Error())
		return nil
	}
	return a
}

func newVectorAdapter[V sequence.Vec2 | sequence.Vec3](track *sequence.Track, output *Output, p *Player) Adapter {
	param, ok := output.Parameter.(*parameter.Vector[V])
	if !ok {
		reject(p, track, output, Warning, fmt.Sprintf("cannot bind a %v curve to output %q of type %T", track.Kind, output.ID, output.Parameter))
		return nil
	}
	a, err := newCurveAdapter(track, output, param.SetValue)
	if err != nil {
		reject(p, track, output, Warning, err.Error())
		return nil
	}
	return a
}

func newVec4Adapter(track *sequence.Track, output *Output, p *Player) Adapter {
	reject(p, track, output, Error, "vec4 curves are not supported")
	return nil
}

// reject logs why track cannot drive output and alerts the player, if any.
func reject(p *Player, track *sequence.Track, output *Output, priority AlertPriority, message string) {
	logger := log.Default()
	if p != nil {
		logger = p.logger
	}
	logger.Printf("track %q: %s", track.ID, message)
	if p != nil {
		p.alertOnce(track, output, priority, fmt.Sprintf("Track %q: %s", track.ID, message))
	}
}
