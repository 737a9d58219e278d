package sequence

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type (
	// SegmentValue selects the first or the last control point of the curves
	// of a segment.
	SegmentValue int
)

const (
	StartPoint SegmentValue = iota
	EndPoint
)

// MinSegmentDuration is the shortest duration editing operations let a
// segment shrink to, in seconds.
const MinSegmentDuration = 0.05

var (
	ErrTrackNotFound   = errors.New("track not found")
	ErrSegmentNotFound = errors.New("segment not found")
)

// NewID returns a new random identifier for tracks and segments.
func NewID() string {
	return uuid.New().String()
}

// AddTrack appends a new empty track of the given kind, with the range [0,1]
// on every component, and returns it. The returned pointer is only valid
// until the next change of the track list.
func (s *Sequence) AddTrack(kind Kind) (*Track, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("cannot add a track of kind %d", int(kind))
	}
	t := Track{
		ID:      NewID(),
		Kind:    kind,
		Minimum: make([]float32, kind.Arity()),
		Maximum: make([]float32, kind.Arity()),
	}
	for i := range t.Maximum {
		t.Maximum[i] = 1
	}
	s.Tracks = append(s.Tracks, t)
	return &s.Tracks[len(s.Tracks)-1], nil
}

// DeleteTrack removes the track with the given id.
func (s *Sequence) DeleteTrack(id string) error {
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			s.Tracks = append(s.Tracks[:i], s.Tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrTrackNotFound, id)
}

// SetRange changes the denormalization range of the track.
func (t *Track) SetRange(minimum, maximum []float32) error {
	n := t.Kind.Arity()
	if len(minimum) != n || len(maximum) != n {
		return fmt.Errorf("track %q: range needs %d components", t.ID, n)
	}
	t.Minimum = append(t.Minimum[:0], minimum...)
	t.Maximum = append(t.Maximum[:0], maximum...)
	return nil
}

// InsertSegment adds a segment boundary at the given time. When time falls
// inside a segment, the segment is split in two; when it is at or after the
// end of the track, a new flat segment is appended from the end to time; on
// an empty track the first segment spans [0, time). The new segment is
// returned; it is only valid until the next change of the segment list.
func (t *Track) InsertSegment(time float64) (*Segment, error) {
	n := t.Kind.Arity()
	if n == 0 {
		return nil, fmt.Errorf("track %q: invalid kind %d", t.ID, int(t.Kind))
	}
	if len(t.Segments) == 0 {
		if time <= 0 {
			return nil, fmt.Errorf("track %q: cannot insert a segment at %v", t.ID, time)
		}
		seg := Segment{ID: NewID(), Duration: time, Curves: make([]Curve, n)}
		for i := range seg.Curves {
			seg.Curves[i] = NewLinearCurve(0, 1)
		}
		t.Segments = append(t.Segments, seg)
		return &t.Segments[0], nil
	}
	if end := t.End(); time >= end {
		if time-end < MinSegmentDuration {
			return nil, fmt.Errorf("track %q: a segment from %v to %v would be too short", t.ID, end, time)
		}
		last := &t.Segments[len(t.Segments)-1]
		if err := last.checkCurves(n); err != nil {
			return nil, fmt.Errorf("track %q: segment %q: %w", t.ID, last.ID, err)
		}
		seg := Segment{ID: NewID(), StartTime: end, Duration: time - end, Curves: make([]Curve, n)}
		for i := range seg.Curves {
			p := last.Curves[i].Points
			v := p[len(p)-1].Value
			seg.Curves[i] = NewLinearCurve(v, v)
		}
		t.Segments = append(t.Segments, seg)
		return &t.Segments[len(t.Segments)-1], nil
	}
	for i := range t.Segments {
		s := &t.Segments[i]
		if !(time > s.StartTime && time < s.StartTime+s.Duration) {
			continue
		}
		if err := s.checkCurves(n); err != nil {
			return nil, fmt.Errorf("track %q: segment %q: %w", t.ID, s.ID, err)
		}
		pos := float32((time - s.StartTime) / s.Duration)
		seg := Segment{ID: NewID(), StartTime: time, Duration: s.StartTime + s.Duration - time, Curves: make([]Curve, n)}
		for c := range seg.Curves {
			p := s.Curves[c].Points
			split := s.Curves[c].Evaluate(pos)
			seg.Curves[c] = NewLinearCurve(split, p[len(p)-1].Value)
			p[len(p)-1].Value = split
		}
		s.Duration = time - s.StartTime
		t.Segments = append(t.Segments[:i+1], append([]Segment{seg}, t.Segments[i+1:]...)...)
		t.UpdateSegments()
		return &t.Segments[i+1], nil
	}
	return nil, fmt.Errorf("track %q: no segment at %v", t.ID, time)
}

// DeleteSegment removes a segment. The following segment, if any, takes over
// its span.
func (t *Track) DeleteSegment(id string) error {
	s, i := t.Segment(id)
	if s == nil {
		return fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	removed := *s
	t.Segments = append(t.Segments[:i], t.Segments[i+1:]...)
	if i < len(t.Segments) {
		next := &t.Segments[i]
		next.Duration += next.StartTime - removed.StartTime
		next.StartTime = removed.StartTime
	}
	t.UpdateSegments()
	return nil
}

// ChangeSegmentDuration resizes a segment and returns the resulting duration,
// which is the old one if the change was not possible. With adjustFollowing,
// the following segments are moved along until a locked segment, which then
// keeps its end time; without it, the next segment keeps its end time.
// Segments never become shorter than MinSegmentDuration.
func (t *Track) ChangeSegmentDuration(id string, duration float64, adjustFollowing bool) (float64, error) {
	s, i := t.Segment(id)
	if s == nil {
		return 0, fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if duration < MinSegmentDuration {
		return s.Duration, nil
	}
	diff := duration - s.Duration
	for j := i + 1; j < len(t.Segments); j++ {
		prev, seg := &t.Segments[j-1], &t.Segments[j]
		if seg.Locked || !adjustFollowing {
			if prev.StartTime+prev.Duration+diff > seg.StartTime+seg.Duration-MinSegmentDuration {
				return s.Duration, nil
			}
			break
		}
	}
	s.Duration = duration
	for j := i + 1; j < len(t.Segments); j++ {
		prev, seg := &t.Segments[j-1], &t.Segments[j]
		start := prev.StartTime + prev.Duration
		if seg.Locked || !adjustFollowing {
			seg.Duration += seg.StartTime - start
			seg.StartTime = start
			break
		}
		seg.StartTime = start
	}
	t.UpdateSegments()
	return s.Duration, nil
}

// SetSegmentValue changes the first or the last control point value of one
// curve of a segment. Neighbouring segments follow, so the track stays
// continuous.
func (t *Track) SetSegmentValue(id string, curve int, value float32, which SegmentValue) error {
	s, i := t.Segment(id)
	if s == nil {
		return fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if curve < 0 || curve >= len(s.Curves) {
		return fmt.Errorf("segment %q: no curve %d", id, curve)
	}
	if err := s.checkCurves(t.Kind.Arity()); err != nil {
		return fmt.Errorf("segment %q: %w", id, err)
	}
	if i > 0 {
		if err := t.Segments[i-1].checkCurves(t.Kind.Arity()); err != nil {
			return fmt.Errorf("segment %q: %w", t.Segments[i-1].ID, err)
		}
	}
	value = clamp(value, 0, 1)
	p := s.Curves[curve].Points
	switch which {
	case StartPoint:
		p[0].Value = value
		if i > 0 {
			prev := t.Segments[i-1].Curves[curve].Points
			prev[len(prev)-1].Value = value
		}
	case EndPoint:
		p[len(p)-1].Value = value
	default:
		return fmt.Errorf("unknown segment value %d", int(which))
	}
	t.UpdateSegments()
	return nil
}

// UpdateSegments makes the track contiguous, chaining every segment to start
// where the previous one ends, and continuous, copying the end values of every
// segment to the start values of the next one.
func (t *Track) UpdateSegments() {
	for i := 1; i < len(t.Segments); i++ {
		prev, seg := &t.Segments[i-1], &t.Segments[i]
		seg.StartTime = prev.StartTime + prev.Duration
		for c := range seg.Curves {
			if c >= len(prev.Curves) || len(prev.Curves[c].Points) == 0 || len(seg.Curves[c].Points) == 0 {
				continue
			}
			pp := prev.Curves[c].Points
			seg.Curves[c].Points[0].Value = pp[len(pp)-1].Value
		}
	}
}

// checkCurves is the part of validation the edit operations rely on: n curves
// with at least one point each.
func (s *Segment) checkCurves(n int) error {
	if len(s.Curves) != n {
		return fmt.Errorf("%w: %d curves, want %d", ErrInvalidCurveData, len(s.Curves), n)
	}
	for i := range s.Curves {
		if len(s.Curves[i].Points) == 0 {
			return fmt.Errorf("%w: curve %d has no points", ErrInvalidCurveData, i)
		}
	}
	return nil
}

// InsertPoint adds a control point at normalized position pos to every curve
// of the segment, keeping the shape of the curves.
func (s *Segment) InsertPoint(pos float32) error {
	if !(pos > 0 && pos < 1) {
		return fmt.Errorf("segment %q: cannot insert a point at %v", s.ID, pos)
	}
	for c := range s.Curves {
		curve := &s.Curves[c]
		i := 0
		for i < len(curve.Points) && curve.Points[i].Time < pos {
			i++
		}
		p := CurvePoint{Time: pos, Value: curve.Evaluate(pos)}
		if i > 0 {
			p.Interp = curve.Points[i-1].Interp
		}
		curve.Points = append(curve.Points[:i], append([]CurvePoint{p}, curve.Points[i:]...)...)
	}
	return nil
}

// DeletePoint removes the control point at index from every curve of the
// segment. The first and the last points cannot be removed.
func (s *Segment) DeletePoint(index int) error {
	for c := range s.Curves {
		if index <= 0 || index >= len(s.Curves[c].Points)-1 {
			return fmt.Errorf("segment %q: cannot delete point %d of curve %d", s.ID, index, c)
		}
	}
	for c := range s.Curves {
		p := s.Curves[c].Points
		s.Curves[c].Points = append(p[:index], p[index+1:]...)
	}
	return nil
}

// ChangePoint moves a control point of one curve. Values are clamped to
// [0,1]; the first and the last points keep their times, other points stay
// between their neighbours.
func (s *Segment) ChangePoint(curve, index int, time, value float32) error {
	if curve < 0 || curve >= len(s.Curves) {
		return fmt.Errorf("segment %q: no curve %d", s.ID, curve)
	}
	p := s.Curves[curve].Points
	if index < 0 || index >= len(p) {
		return fmt.Errorf("segment %q: curve %d has no point %d", s.ID, curve, index)
	}
	p[index].Value = clamp(value, 0, 1)
	if index > 0 && index < len(p)-1 {
		p[index].Time = clamp(time, p[index-1].Time, p[index+1].Time)
	}
	return nil
}

// SetInterp changes the interpolation of every point of one curve.
func (s *Segment) SetInterp(curve int, interp Interp) error {
	if curve < 0 || curve >= len(s.Curves) {
		return fmt.Errorf("segment %q: no curve %d", s.ID, curve)
	}
	if interp < Linear || interp > Stepped {
		return fmt.Errorf("invalid interpolation %d", int(interp))
	}
	for i := range s.Curves[curve].Points {
		s.Curves[curve].Points[i].Interp = interp
	}
	return nil
}
