package sequence_test

import (
	"errors"
	"testing"

	"github.com/vsariola/sequence"
	"github.com/vsariola/sequence/internal/testutil"
)

// linearTrack returns a float track with one linear 0 to 1 segment per
// duration, laid back to back from time 0.
func linearTrack(minimum, maximum float32, durations ...float64) sequence.Track {
	t := sequence.Track{ID: "track", Kind: sequence.Float, Minimum: []float32{minimum}, Maximum: []float32{maximum}}
	start := 0.0
	for i, d := range durations {
		t.Segments = append(t.Segments, sequence.Segment{
			ID:        string(rune('a' + i)),
			StartTime: start,
			Duration:  d,
			Curves:    []sequence.Curve{sequence.NewLinearCurve(0, 1)},
		})
		start += d
	}
	return t
}

func TestSegmentAtIsHalfOpen(t *testing.T) {
	track := linearTrack(0, 1, 5, 5)
	cases := []struct {
		time float64
		want string
	}{
		{-0.1, ""},
		{0, "a"},
		{4.999, "a"},
		{5, "b"},
		{9.999, "b"},
		{10, ""},
		{11, ""},
	}
	for _, c := range cases {
		s := track.SegmentAt(c.time)
		got := ""
		if s != nil {
			got = s.ID
		}
		if got != c.want {
			t.Errorf("SegmentAt(%v) = %q, want %q", c.time, got, c.want)
		}
	}
}

func TestSegmentAtGap(t *testing.T) {
	track := linearTrack(0, 1, 5)
	track.Segments[0].StartTime = 2
	if track.SegmentAt(1) != nil {
		t.Fatalf("expected no segment before the first start")
	}
	if s := track.SegmentAt(2); s == nil || s.ID != "a" {
		t.Fatalf("expected segment a at its start time")
	}
}

func TestValuePacksComponents(t *testing.T) {
	s := sequence.Segment{Duration: 1, Curves: []sequence.Curve{
		sequence.NewLinearCurve(0, 1),
		sequence.NewLinearCurve(1, 0),
		sequence.NewLinearCurve(0.5, 0.5),
	}}
	v := sequence.Value[sequence.Vec3](&s, 0.25)
	testutil.RequireSliceNearlyEqual(t, v[:], []float32{0.25, 0.75, 0.5}, testutil.Eps)
	start := sequence.StartValue[sequence.Vec3](&s)
	testutil.RequireSliceNearlyEqual(t, start[:], []float32{0, 1, 0.5}, 0)
	sequence.SetEndValue(&s, sequence.Vec3{0.1, 0.2, 0.3})
	end := sequence.EndValue[sequence.Vec3](&s)
	testutil.RequireSliceNearlyEqual(t, end[:], []float32{0.1, 0.2, 0.3}, 0)
	sequence.SetStartValue(&s, sequence.Vec3{0.9, 0.8, 0.7})
	start = sequence.StartValue[sequence.Vec3](&s)
	testutil.RequireSliceNearlyEqual(t, start[:], []float32{0.9, 0.8, 0.7}, 0)
}

func TestDenormalizeRoundTrip(t *testing.T) {
	minimum := []float32{-1, 0, 100}
	maximum := []float32{1, 10, 100}
	for _, raw := range []sequence.Vec3{{0, 0, 0}, {1, 1, 0}, {0.5, 0.25, 0}} {
		v := sequence.Denormalize(raw, minimum, maximum)
		for i := range v {
			want := raw[i]*(maximum[i]-minimum[i]) + minimum[i]
			testutil.RequireNearlyEqual(t, v[i], want, testutil.Eps)
		}
		back := sequence.Normalize(v, minimum, maximum)
		testutil.RequireSliceNearlyEqual(t, back[:], raw[:], testutil.Eps)
	}
	// the bounds map exactly
	lo := sequence.Denormalize(sequence.Vec1{0}, []float32{3}, []float32{7})
	hi := sequence.Denormalize(sequence.Vec1{1}, []float32{3}, []float32{7})
	if lo[0] != 3 || hi[0] != 7 {
		t.Fatalf("Denormalize bounds = %v, %v; want 3, 7", lo[0], hi[0])
	}
}

func TestKindOf(t *testing.T) {
	if k := sequence.KindOf[sequence.Vec1](); k != sequence.Float {
		t.Errorf("KindOf[Vec1] = %v", k)
	}
	if k := sequence.KindOf[sequence.Vec4](); k != sequence.Vec4Kind || k.Arity() != 4 {
		t.Errorf("KindOf[Vec4] = %v", k)
	}
	if sequence.Kind(0).Valid() || sequence.Kind(5).Arity() != 0 {
		t.Errorf("kinds outside 1..4 should be invalid")
	}
}

func TestTrackValidate(t *testing.T) {
	cases := []struct {
		name      string
		modify    func(*sequence.Track)
		curveData bool
	}{
		{"invalid kind", func(tr *sequence.Track) { tr.Kind = 0 }, false},
		{"range length", func(tr *sequence.Track) { tr.Maximum = nil }, false},
		{"one point", func(tr *sequence.Track) {
			tr.Segments[0].Curves[0].Points = tr.Segments[0].Curves[0].Points[:1]
		}, true},
		{"no curves", func(tr *sequence.Track) { tr.Segments[1].Curves = nil }, true},
		{"zero duration", func(tr *sequence.Track) { tr.Segments[1].Duration = 0 }, true},
		{"unordered points", func(tr *sequence.Track) {
			tr.Segments[0].Curves[0].Points[0].Time = 0.5
			tr.Segments[0].Curves[0].Points[1].Time = 0.25
		}, true},
		{"time outside", func(tr *sequence.Track) { tr.Segments[0].Curves[0].Points[1].Time = 1.5 }, true},
		{"gap", func(tr *sequence.Track) { tr.Segments[1].StartTime = 6 }, false},
	}
	valid := linearTrack(0, 1, 5, 5)
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid track failed validation: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			track := valid.Copy()
			c.modify(&track)
			err := track.Validate()
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			if got := errors.Is(err, sequence.ErrInvalidCurveData); got != c.curveData {
				t.Fatalf("errors.Is(%v, ErrInvalidCurveData) = %v, want %v", err, got, c.curveData)
			}
		})
	}
}

func TestUnequalPointCountsFail(t *testing.T) {
	track := sequence.Track{ID: "v", Kind: sequence.Vec2Kind, Minimum: []float32{0, 0}, Maximum: []float32{1, 1}}
	track.Segments = []sequence.Segment{{ID: "s", Duration: 1, Curves: []sequence.Curve{
		sequence.NewLinearCurve(0, 1),
		{Points: []sequence.CurvePoint{{Time: 0}, {Time: 0.5}, {Time: 1}}},
	}}}
	if err := track.Validate(); !errors.Is(err, sequence.ErrInvalidCurveData) {
		t.Fatalf("expected ErrInvalidCurveData, got %v", err)
	}
}

func TestTrackCopyIsDeep(t *testing.T) {
	a := linearTrack(0, 1, 1)
	b := a.Copy()
	b.Segments[0].Curves[0].Points[0].Value = 0.5
	b.Minimum[0] = -1
	if a.Segments[0].Curves[0].Points[0].Value != 0 || a.Minimum[0] != 0 {
		t.Fatalf("modifying a copy changed the original")
	}
}

func TestSegmentAtFirstMatchWins(t *testing.T) {
	track := linearTrack(0, 1, 4, 4)
	track.Segments[1].StartTime = 2
	if s := track.SegmentAt(3); s == nil || s.ID != "a" {
		t.Fatalf("SegmentAt(3) on overlapping segments should return the first one")
	}
	if err := track.Validate(); err == nil {
		t.Fatalf("overlapping segments should not validate")
	}
}
