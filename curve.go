package sequence

import (
	"fmt"
	"strings"
)

type (
	// Curve is a single scalar function over normalized time, defined by
	// control points in [0,1]×[0,1]. Points are kept ordered by Time; the first
	// point is at time 0 and the last at time 1 for curves created by this
	// package, although loaded curves are only required to be ordered.
	Curve struct {
		Points []CurvePoint
	}

	// CurvePoint is one control point of a Curve. Interp tells how the curve
	// continues from this point to the next one. InTan and OutTan are the
	// bezier handles, relative to the point itself.
	CurvePoint struct {
		Time   float32
		Value  float32
		InTan  Tangent `yaml:",omitempty,flow"`
		OutTan Tangent `yaml:",omitempty,flow"`
		Interp Interp  `yaml:",omitempty"`
	}

	Tangent struct {
		Time  float32
		Value float32
	}

	// Interp is the interpolation mode from a control point to the next.
	Interp int
)

const (
	Linear Interp = iota
	Bezier
	Stepped
)

var interpNames = [...]string{"linear", "bezier", "stepped"}

// bezierIterations is enough bisection steps to get below float32 precision
// on the unit interval.
const bezierIterations = 24

func (i Interp) String() string {
	if i < Linear || i > Stepped {
		return fmt.Sprintf("Interp(%d)", int(i))
	}
	return interpNames[i]
}

func (i Interp) MarshalText() ([]byte, error) {
	if i < Linear || i > Stepped {
		return nil, fmt.Errorf("invalid interpolation %d", int(i))
	}
	return []byte(interpNames[i]), nil
}

func (i *Interp) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for j, n := range interpNames {
		if n == s {
			*i = Interp(j)
			return nil
		}
	}
	return fmt.Errorf("unknown interpolation %q", s)
}

// NewLinearCurve returns a two point linear curve from (0, from) to (1, to).
func NewLinearCurve(from, to float32) Curve {
	return Curve{Points: []CurvePoint{{Time: 0, Value: from}, {Time: 1, Value: to}}}
}

// Evaluate returns the value of the curve at normalized time t. Outside the
// time span of the points, the first or last interval is used: linear
// intervals extrapolate, bezier and stepped intervals clamp. A curve without
// points evaluates to 0 and a single point curve is constant.
func (c *Curve) Evaluate(t float32) float32 {
	n := len(c.Points)
	switch n {
	case 0:
		return 0
	case 1:
		return c.Points[0].Value
	}
	i := 0
	for i < n-2 && t >= c.Points[i+1].Time {
		i++
	}
	p0, p1 := c.Points[i], c.Points[i+1]
	span := p1.Time - p0.Time
	if span <= 0 {
		if t < p1.Time {
			return p0.Value
		}
		return p1.Value
	}
	switch p0.Interp {
	case Stepped:
		if t >= p1.Time {
			return p1.Value
		}
		return p0.Value
	case Bezier:
		if t <= p0.Time {
			return p0.Value
		}
		if t >= p1.Time {
			return p1.Value
		}
		return evalBezier(p0, p1, t)
	default:
		return p0.Value + (t-p0.Time)/span*(p1.Value-p0.Value)
	}
}

// evalBezier solves the cubic x(s) = t for s by bisection and returns y(s).
// The handles are clamped inside the interval so that x(s) stays monotonic.
func evalBezier(p0, p1 CurvePoint, t float32) float32 {
	x0, x3 := p0.Time, p1.Time
	x1 := clamp(p0.Time+p0.OutTan.Time, x0, x3)
	x2 := clamp(p1.Time+p1.InTan.Time, x0, x3)
	y0, y1 := p0.Value, p0.Value+p0.OutTan.Value
	y2, y3 := p1.Value+p1.InTan.Value, p1.Value
	lo, hi := float32(0), float32(1)
	s := float32(0.5)
	for i := 0; i < bezierIterations; i++ {
		s = (lo + hi) / 2
		if cubic(x0, x1, x2, x3, s) < t {
			lo = s
		} else {
			hi = s
		}
	}
	return cubic(y0, y1, y2, y3, s)
}

func cubic(a, b, c, d, s float32) float32 {
	u := 1 - s
	return u*u*u*a + 3*u*u*s*b + 3*u*s*s*c + s*s*s*d
}

func clamp(v, lo, hi float32) float32 {
	return max(min(v, hi), lo)
}

// Copy makes a deep copy of a Curve.
func (c *Curve) Copy() Curve {
	points := make([]CurvePoint, len(c.Points))
	copy(points, c.Points)
	return Curve{Points: points}
}

// validate checks the structure of the curve: at least two points, ordered in
// time, all times inside [0,1].
func (c *Curve) validate() error {
	if len(c.Points) < 2 {
		return fmt.Errorf("%w: curve has %d points, need at least 2", ErrInvalidCurveData, len(c.Points))
	}
	prev := float32(0)
	for i, p := range c.Points {
		if p.Time < 0 || p.Time > 1 {
			return fmt.Errorf("%w: point %d time %v outside [0,1]", ErrInvalidCurveData, i, p.Time)
		}
		if p.Time < prev {
			return fmt.Errorf("%w: point %d time %v before previous point", ErrInvalidCurveData, i, p.Time)
		}
		prev = p.Time
	}
	return nil
}
