// Package parameter provides named values that a sequence player can drive:
// scalar Float, Double and Int parameters with a clamping range, and Vec2 and
// Vec3 vector parameters. Parameters are not safe for concurrent use; the
// player either writes them from its own goroutine or defers the writes to
// the goroutine that calls player.Update.
package parameter

import (
	"fmt"
	"math"
)

type (
	// Parameter is what every parameter type has in common.
	Parameter interface {
		Name() string
		String() string
	}

	// Number is a scalar parameter, clamped to its range on every write.
	Number[T float32 | float64 | int] struct {
		name     string
		value    T
		r        Range[T]
		onChange []func(T)
	}

	Range[T float32 | float64 | int] struct {
		Min, Max T
	}

	Float  = Number[float32]
	Double = Number[float64]
	Int    = Number[int]
)

// NewNumber returns a scalar parameter with the given range. The initial
// value is clamped to the range.
func NewNumber[T float32 | float64 | int](name string, value, minimum, maximum T) *Number[T] {
	r := Range[T]{minimum, maximum}
	return &Number[T]{name: name, value: r.Clamp(value), r: r}
}

func NewFloat(name string, value, minimum, maximum float32) *Float {
	return NewNumber(name, value, minimum, maximum)
}

func NewDouble(name string, value, minimum, maximum float64) *Double {
	return NewNumber(name, value, minimum, maximum)
}

func NewInt(name string, value, minimum, maximum int) *Int {
	return NewNumber(name, value, minimum, maximum)
}

func (r Range[T]) Clamp(value T) T {
	return max(min(value, r.Max), r.Min)
}

func (p *Number[T]) Name() string    { return p.name }
func (p *Number[T]) Value() T        { return p.value }
func (p *Number[T]) Range() Range[T] { return p.r }

// SetValue clamps value to the range and stores it. Change callbacks run only
// if the stored value actually changed.
func (p *Number[T]) SetValue(value T) {
	value = p.r.Clamp(value)
	if value == p.value {
		return
	}
	p.value = value
	for _, f := range p.onChange {
		f(value)
	}
}

// SetRange changes the range and clamps the current value into it.
func (p *Number[T]) SetRange(minimum, maximum T) {
	p.r = Range[T]{minimum, maximum}
	p.SetValue(p.value)
}

// OnChange adds a callback that is called with the new value every time the
// value changes. Callbacks run on the goroutine that calls SetValue.
func (p *Number[T]) OnChange(f func(T)) {
	p.onChange = append(p.onChange, f)
}

func (p *Number[T]) String() string {
	return fmt.Sprintf("%s = %v", p.name, p.value)
}

// unboundedRange is used when a configuration leaves the range out.
func unboundedRange[T float32 | float64 | int]() Range[T] {
	var r any
	switch any(*new(T)).(type) {
	case int:
		r = Range[int]{math.MinInt, math.MaxInt}
	case float32:
		r = Range[float32]{-math.MaxFloat32, math.MaxFloat32}
	default:
		r = Range[float64]{-math.MaxFloat64, math.MaxFloat64}
	}
	return r.(Range[T])
}
