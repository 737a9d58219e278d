package sequence_test

import (
	"testing"

	"github.com/vsariola/sequence"
	"github.com/vsariola/sequence/internal/testutil"
)

func TestCurveEvaluate(t *testing.T) {
	stepped := sequence.Curve{Points: []sequence.CurvePoint{
		{Time: 0, Value: 0.25, Interp: sequence.Stepped},
		{Time: 0.5, Value: 0.75, Interp: sequence.Stepped},
		{Time: 1, Value: 1},
	}}
	bezier := sequence.Curve{Points: []sequence.CurvePoint{
		{Time: 0, Value: 0, Interp: sequence.Bezier},
		{Time: 1, Value: 1},
	}}
	easeIn := sequence.Curve{Points: []sequence.CurvePoint{
		{Time: 0, Value: 0, Interp: sequence.Bezier, OutTan: sequence.Tangent{Time: 0.5, Value: 0}},
		{Time: 1, Value: 1, InTan: sequence.Tangent{Time: 0, Value: 0}},
	}}
	linear := sequence.NewLinearCurve(0.2, 0.6)
	cases := []struct {
		name  string
		curve sequence.Curve
		t     float32
		want  float32
	}{
		{"empty", sequence.Curve{}, 0.5, 0},
		{"single", sequence.Curve{Points: []sequence.CurvePoint{{Time: 0.3, Value: 0.7}}}, 0.9, 0.7},
		{"linear start", linear, 0, 0.2},
		{"linear middle", linear, 0.5, 0.4},
		{"linear end", linear, 1, 0.6},
		{"linear extrapolates", linear, 1.5, 0.8},
		{"stepped holds", stepped, 0.49, 0.25},
		{"stepped switches", stepped, 0.5, 0.75},
		{"stepped last", stepped, 1, 1},
		{"bezier without handles is linear", bezier, 0.3, 0.3},
		{"bezier clamps", bezier, 2, 1},
		{"bezier ease in start", easeIn, 0, 0},
		{"bezier ease in end", easeIn, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.curve.Evaluate(c.t)
			if !testutil.NearlyEqual(got, c.want, 1e-4) {
				t.Fatalf("Evaluate(%v) = %v, want %v", c.t, got, c.want)
			}
		})
	}
}

func TestBezierEaseInIsBelowLinear(t *testing.T) {
	c := sequence.Curve{Points: []sequence.CurvePoint{
		{Time: 0, Value: 0, Interp: sequence.Bezier, OutTan: sequence.Tangent{Time: 0.5, Value: 0}},
		{Time: 1, Value: 1},
	}}
	prev := float32(0)
	for i := 1; i < 10; i++ {
		x := float32(i) / 10
		y := c.Evaluate(x)
		if y >= x {
			t.Fatalf("ease in curve at %v = %v, expected below the diagonal", x, y)
		}
		if y < prev {
			t.Fatalf("ease in curve is not monotonic at %v: %v < %v", x, y, prev)
		}
		prev = y
	}
}

func TestInterpText(t *testing.T) {
	for _, i := range []sequence.Interp{sequence.Linear, sequence.Bezier, sequence.Stepped} {
		text, err := i.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", i, err)
		}
		var back sequence.Interp
		if err := back.UnmarshalText(text); err != nil || back != i {
			t.Fatalf("UnmarshalText(%q) = %v, %v; want %v", text, back, err, i)
		}
	}
	var i sequence.Interp
	if err := i.UnmarshalText([]byte("cubic")); err == nil {
		t.Fatalf("expected an error for an unknown interpolation")
	}
}
