package parameter_test

import (
	"math"
	"testing"

	"github.com/vsariola/sequence/parameter"
)

func TestNumberClampsAndNotifies(t *testing.T) {
	p := parameter.NewFloat("gain", 5, 0, 10)
	var got []float32
	p.OnChange(func(v float32) { got = append(got, v) })
	p.SetValue(3)
	p.SetValue(3)
	p.SetValue(20)
	p.SetValue(-1)
	if p.Value() != 0 {
		t.Fatalf("Value() = %v, want 0", p.Value())
	}
	want := []float32{3, 10, 0}
	if len(got) != len(want) {
		t.Fatalf("callbacks got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("callbacks got %v, want %v", got, want)
		}
	}
}

func TestSetRangeClampsValue(t *testing.T) {
	p := parameter.NewInt("steps", 8, 0, 16)
	p.SetRange(0, 4)
	if p.Value() != 4 {
		t.Fatalf("Value() = %v after narrowing the range, want 4", p.Value())
	}
	if r := p.Range(); r.Min != 0 || r.Max != 4 {
		t.Fatalf("Range() = %+v", r)
	}
}

func TestVectorNotifiesOnChange(t *testing.T) {
	p := parameter.NewVec3("color", [3]float32{1, 2, 3})
	calls := 0
	p.OnChange(func([3]float32) { calls++ })
	p.SetValue([3]float32{1, 2, 3})
	p.SetValue([3]float32{3, 2, 1})
	if calls != 1 || p.Value() != [3]float32{3, 2, 1} {
		t.Fatalf("got %d calls and value %v", calls, p.Value())
	}
	if p.Name() != "color" || p.String() != "color = [3 2 1]" {
		t.Fatalf("unexpected name or string: %q, %q", p.Name(), p.String())
	}
}

func TestNewFromConfig(t *testing.T) {
	cases := []struct {
		config parameter.Config
		check  func(parameter.Parameter) bool
	}{
		{parameter.Config{Type: "float", Name: "a", Min: -1, Max: 1, Value: []float64{0.5}}, func(p parameter.Parameter) bool {
			f, ok := p.(*parameter.Float)
			return ok && f.Value() == 0.5 && f.Range().Min == -1
		}},
		{parameter.Config{Type: "Double", Name: "b", Value: []float64{1e300}}, func(p parameter.Parameter) bool {
			f, ok := p.(*parameter.Double)
			return ok && f.Value() == 1e300
		}},
		{parameter.Config{Type: "int", Name: "c", Min: 0, Max: 127}, func(p parameter.Parameter) bool {
			i, ok := p.(*parameter.Int)
			return ok && i.Value() == 0 && i.Range().Max == 127
		}},
		{parameter.Config{Type: "int", Name: "d"}, func(p parameter.Parameter) bool {
			i, ok := p.(*parameter.Int)
			return ok && i.Range().Max == math.MaxInt
		}},
		{parameter.Config{Type: "vec2", Name: "e", Value: []float64{1, 2}}, func(p parameter.Parameter) bool {
			v, ok := p.(*parameter.Vec2)
			return ok && v.Value() == [2]float32{1, 2}
		}},
		{parameter.Config{Type: "vec3", Name: "f"}, func(p parameter.Parameter) bool {
			_, ok := p.(*parameter.Vec3)
			return ok
		}},
	}
	for _, c := range cases {
		p, err := parameter.New(c.config)
		if err != nil {
			t.Fatalf("New(%+v) failed: %v", c.config, err)
		}
		if p.Name() != c.config.Name || !c.check(p) {
			t.Fatalf("New(%+v) returned unexpected %v", c.config, p)
		}
	}
}

func TestNewFromConfigErrors(t *testing.T) {
	for _, c := range []parameter.Config{
		{Type: "quaternion", Name: "q"},
		{Type: "float", Name: "r", Min: 1, Max: 0},
		{Type: "vec2", Name: "s", Value: []float64{1}},
		{Type: "int", Name: "t", Value: []float64{1, 2}},
	} {
		if p, err := parameter.New(c); err == nil || p != nil {
			t.Errorf("New(%+v) = %v, %v; want an error", c, p, err)
		}
	}
}
