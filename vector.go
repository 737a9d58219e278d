package sequence

import (
	"fmt"
	"strings"
)

type (
	// Kind is the value kind of a curve track: how many parallel scalar curves
	// each of its segments holds. The zero value is not a valid kind.
	Kind int

	// Vec1 .. Vec4 are the packed values produced by sampling a segment of the
	// corresponding Kind. Only a Vec1 is a plain float in disguise; all of them
	// are arrays so that the sampling code can be written once.
	Vec1 = [1]float32
	Vec2 = [2]float32
	Vec3 = [3]float32
	Vec4 = [4]float32

	// Vector is the closed set of packed value types.
	Vector interface {
		Vec1 | Vec2 | Vec3 | Vec4
	}
)

const (
	Float Kind = iota + 1
	Vec2Kind
	Vec3Kind
	Vec4Kind
)

var kindNames = [...]string{"", "float", "vec2", "vec3", "vec4"}

// Arity returns the number of curves in a segment of this kind, or 0 for an
// invalid kind.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return int(k)
}

func (k Kind) Valid() bool { return k >= Float && k <= Vec4Kind }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid track kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i := Float; i <= Vec4Kind; i++ {
		if kindNames[i] == s {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("unknown track kind %q", s)
}

// KindOf returns the Kind matching the packed value type V.
func KindOf[V Vector]() Kind {
	var v V
	return Kind(len(v))
}

// Value evaluates every curve of the segment at the normalized position pos
// and packs the results. pos is not clamped: callers are expected to only
// sample segments that contain the query time. The segment must hold at least
// len(V) curves.
func Value[V Vector](s *Segment, pos float64) V {
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = s.Curves[i].Evaluate(float32(pos))
	}
	return v
}

// StartValue returns the values of the first control point of every curve.
func StartValue[V Vector](s *Segment) V {
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = s.Curves[i].Points[0].Value
	}
	return v
}

// EndValue returns the values of the last control point of every curve.
func EndValue[V Vector](s *Segment) V {
	var v V
	for i := 0; i < len(v); i++ {
		p := s.Curves[i].Points
		v[i] = p[len(p)-1].Value
	}
	return v
}

// Denormalize maps a normalized value into the [minimum, maximum] range,
// component by component: raw*(maximum-minimum)+minimum.
func Denormalize[V Vector](raw V, minimum, maximum []float32) V {
	for i := 0; i < len(raw); i++ {
		raw[i] = raw[i]*(maximum[i]-minimum[i]) + minimum[i]
	}
	return raw
}

// Normalize is the inverse of Denormalize. Components with an empty range map
// to 0.
func Normalize[V Vector](value V, minimum, maximum []float32) V {
	for i := 0; i < len(value); i++ {
		if d := maximum[i] - minimum[i]; d != 0 {
			value[i] = (value[i] - minimum[i]) / d
		} else {
			value[i] = 0
		}
	}
	return value
}

// SetStartValue writes the values of the first control point of every curve.
func SetStartValue[V Vector](s *Segment, v V) {
	for i := 0; i < len(v); i++ {
		s.Curves[i].Points[0].Value = v[i]
	}
}

// SetEndValue writes the values of the last control point of every curve.
func SetEndValue[V Vector](s *Segment, v V) {
	for i := 0; i < len(v); i++ {
		p := s.Curves[i].Points
		p[len(p)-1].Value = v[i]
	}
}
