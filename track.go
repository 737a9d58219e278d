package sequence

import (
	"errors"
	"fmt"
	"math"
)

type (
	// Track is one animated channel: an ordered list of contiguous segments,
	// all of the same Kind, plus the range the normalized curve values are
	// mapped into and the id of the output the track drives.
	Track struct {
		ID   string
		Name string `yaml:",omitempty"`
		Kind Kind

		// Output is the id of the output (and thus parameter) the track is
		// assigned to. An empty Output means the track is not played.
		Output string `yaml:",omitempty"`

		// Minimum and Maximum have one component per curve. A normalized
		// curve value of 0 maps to Minimum, 1 maps to Maximum.
		Minimum []float32 `yaml:",flow"`
		Maximum []float32 `yaml:",flow"`

		Segments []Segment
	}

	// Segment is a span of the timeline holding one curve per component of
	// the track Kind. The curves share the normalized time of the segment: 0
	// at StartTime and 1 at StartTime+Duration.
	Segment struct {
		ID        string
		Label     string `yaml:",omitempty"`
		StartTime float64
		Duration  float64

		// Locked hints editors that the end of the segment should stay put
		// when the previous segments are resized.
		Locked bool `yaml:",omitempty"`

		Curves []Curve
	}
)

var ErrInvalidCurveData = errors.New("invalid curve data")

// contiguityTolerance is how far a segment start may be from the end of the
// previous segment, in seconds.
const contiguityTolerance = 1e-6

// SegmentAt returns the segment whose half-open span [StartTime,
// StartTime+Duration) contains time, or nil if there is none.
func (t *Track) SegmentAt(time float64) *Segment {
	for i := range t.Segments {
		s := &t.Segments[i]
		if time >= s.StartTime && time < s.StartTime+s.Duration {
			return s
		}
	}
	return nil
}

// Segment returns the segment with the given id, and its index, or nil and -1.
func (t *Track) Segment(id string) (*Segment, int) {
	for i := range t.Segments {
		if t.Segments[i].ID == id {
			return &t.Segments[i], i
		}
	}
	return nil, -1
}

// End returns the end time of the last segment, or 0 for an empty track.
func (t *Track) End() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	s := t.Segments[len(t.Segments)-1]
	return s.StartTime + s.Duration
}

// Validate checks the structure of the track: a valid kind, a range with one
// component per curve, and ordered, contiguous segments with well formed
// curves. All curve data errors wrap ErrInvalidCurveData.
func (t *Track) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("track %q: invalid kind %d", t.ID, int(t.Kind))
	}
	n := t.Kind.Arity()
	if len(t.Minimum) != n || len(t.Maximum) != n {
		return fmt.Errorf("track %q: %v track needs %d minimum and maximum components, got %d and %d", t.ID, t.Kind, n, len(t.Minimum), len(t.Maximum))
	}
	for i := range t.Segments {
		s := &t.Segments[i]
		if err := s.validate(n); err != nil {
			return fmt.Errorf("track %q: segment %d (%q): %w", t.ID, i, s.ID, err)
		}
		if i == 0 {
			continue
		}
		prev := &t.Segments[i-1]
		if end := prev.StartTime + prev.Duration; math.Abs(s.StartTime-end) > contiguityTolerance {
			return fmt.Errorf("track %q: segment %d (%q) starts at %v but the previous segment ends at %v", t.ID, i, s.ID, s.StartTime, end)
		}
	}
	return nil
}

func (s *Segment) validate(curveCount int) error {
	if !(s.Duration > 0) {
		return fmt.Errorf("%w: duration %v is not positive", ErrInvalidCurveData, s.Duration)
	}
	if len(s.Curves) != curveCount {
		return fmt.Errorf("%w: %d curves, want %d", ErrInvalidCurveData, len(s.Curves), curveCount)
	}
	for i := range s.Curves {
		if err := s.Curves[i].validate(); err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
		if len(s.Curves[i].Points) != len(s.Curves[0].Points) {
			return fmt.Errorf("%w: curve %d has %d points, curve 0 has %d", ErrInvalidCurveData, i, len(s.Curves[i].Points), len(s.Curves[0].Points))
		}
	}
	return nil
}

// Copy makes a deep copy of a Segment.
func (s *Segment) Copy() Segment {
	curves := make([]Curve, len(s.Curves))
	for i := range s.Curves {
		curves[i] = s.Curves[i].Copy()
	}
	ret := *s
	ret.Curves = curves
	return ret
}

// Copy makes a deep copy of a Track.
func (t *Track) Copy() Track {
	segments := make([]Segment, len(t.Segments))
	for i := range t.Segments {
		segments[i] = t.Segments[i].Copy()
	}
	ret := *t
	ret.Minimum = append([]float32(nil), t.Minimum...)
	ret.Maximum = append([]float32(nil), t.Maximum...)
	ret.Segments = segments
	return ret
}
