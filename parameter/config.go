package parameter

import (
	"fmt"
	"strings"
)

// Config describes a parameter in a configuration file. Min and Max bound
// scalar parameters; if both are zero, the parameter is unbounded. Value holds
// the initial value, one component per dimension.
type Config struct {
	Type  string
	Name  string
	Min   float64   `yaml:",omitempty"`
	Max   float64   `yaml:",omitempty"`
	Value []float64 `yaml:",omitempty,flow"`
}

// New creates a parameter from its configuration. Type is one of "float",
// "double", "int", "vec2" or "vec3".
func New(c Config) (Parameter, error) {
	if c.Min > c.Max {
		return nil, fmt.Errorf("parameter %q: minimum %v is greater than maximum %v", c.Name, c.Min, c.Max)
	}
	switch strings.ToLower(c.Type) {
	case "float":
		return newNumber[float32](c)
	case "double":
		return newNumber[float64](c)
	case "int":
		return newNumber[int](c)
	case "vec2":
		var v [2]float32
		if err := c.fill(v[:]); err != nil {
			return nil, err
		}
		return NewVec2(c.Name, v), nil
	case "vec3":
		var v [3]float32
		if err := c.fill(v[:]); err != nil {
			return nil, err
		}
		return NewVec3(c.Name, v), nil
	}
	return nil, fmt.Errorf("parameter %q: unknown type %q", c.Name, c.Type)
}

func newNumber[T float32 | float64 | int](c Config) (Parameter, error) {
	var initial float64
	switch len(c.Value) {
	case 0:
	case 1:
		initial = c.Value[0]
	default:
		return nil, fmt.Errorf("parameter %q: %s needs 1 initial value, got %d", c.Name, c.Type, len(c.Value))
	}
	r := unboundedRange[T]()
	if c.Min != 0 || c.Max != 0 {
		r = Range[T]{T(c.Min), T(c.Max)}
	}
	return NewNumber(c.Name, T(initial), r.Min, r.Max), nil
}

func (c *Config) fill(dst []float32) error {
	if len(c.Value) == 0 {
		return nil
	}
	if len(c.Value) != len(dst) {
		return fmt.Errorf("parameter %q: %s needs %d initial values, got %d", c.Name, c.Type, len(dst), len(c.Value))
	}
	for i, v := range c.Value {
		dst[i] = float32(v)
	}
	return nil
}
