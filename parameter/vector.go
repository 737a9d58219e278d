package parameter

import "fmt"

type (
	// Vector is a parameter holding a fixed size float32 vector. Vectors are
	// not clamped.
	Vector[V [2]float32 | [3]float32] struct {
		name     string
		value    V
		onChange []func(V)
	}

	Vec2 = Vector[[2]float32]
	Vec3 = Vector[[3]float32]
)

func NewVector[V [2]float32 | [3]float32](name string, value V) *Vector[V] {
	return &Vector[V]{name: name, value: value}
}

func NewVec2(name string, value [2]float32) *Vec2 { return NewVector(name, value) }
func NewVec3(name string, value [3]float32) *Vec3 { return NewVector(name, value) }

func (p *Vector[V]) Name() string { return p.name }
func (p *Vector[V]) Value() V     { return p.value }

// SetValue stores value and, if it differs from the previous one, calls the
// change callbacks.
func (p *Vector[V]) SetValue(value V) {
	if value == p.value {
		return
	}
	p.value = value
	for _, f := range p.onChange {
		f(value)
	}
}

func (p *Vector[V]) OnChange(f func(V)) {
	p.onChange = append(p.onChange, f)
}

func (p *Vector[V]) String() string {
	return fmt.Sprintf("%s = %v", p.name, p.value)
}
