package player

import (
	"fmt"

	"github.com/vsariola/sequence"
)

// Controller edits the sequence of a player. Every method is one Edit of the
// player, so edits are safe while playing.
type Controller struct {
	player *Player
}

func NewController(p *Player) *Controller {
	return &Controller{player: p}
}

// AddTrack adds an empty track and returns its id.
func (c *Controller) AddTrack(kind sequence.Kind) (id string, err error) {
	err = c.player.Edit(func(seq *sequence.Sequence) error {
		t, err := seq.AddTrack(kind)
		if err != nil {
			return err
		}
		id = t.ID
		return nil
	})
	return id, err
}

func (c *Controller) DeleteTrack(trackID string) error {
	return c.player.Edit(func(seq *sequence.Sequence) error {
		return seq.DeleteTrack(trackID)
	})
}

// AssignOutput binds a track to an output. An empty outputID unbinds it.
func (c *Controller) AssignOutput(trackID, outputID string) error {
	if outputID != "" && c.player.Output(outputID) == nil {
		return fmt.Errorf("no output %q", outputID)
	}
	return c.editTrack(trackID, func(t *sequence.Track) error {
		t.Output = outputID
		return nil
	})
}

func (c *Controller) ChangeMinMax(trackID string, minimum, maximum []float32) error {
	return c.editTrack(trackID, func(t *sequence.Track) error {
		return t.SetRange(minimum, maximum)
	})
}

// InsertSegment adds a segment boundary at time and returns the id of the new
// segment.
func (c *Controller) InsertSegment(trackID string, time float64) (id string, err error) {
	err = c.editTrack(trackID, func(t *sequence.Track) error {
		s, err := t.InsertSegment(time)
		if err != nil {
			return err
		}
		id = s.ID
		return nil
	})
	return id, err
}

func (c *Controller) DeleteSegment(trackID, segmentID string) error {
	return c.editTrack(trackID, func(t *sequence.Track) error {
		return t.DeleteSegment(segmentID)
	})
}

// ChangeSegmentDuration resizes a segment and returns the resulting duration.
func (c *Controller) ChangeSegmentDuration(trackID, segmentID string, duration float64, adjustFollowing bool) (ret float64, err error) {
	err = c.editTrack(trackID, func(t *sequence.Track) error {
		ret, err = t.ChangeSegmentDuration(segmentID, duration, adjustFollowing)
		return err
	})
	return ret, err
}

func (c *Controller) ChangeSegmentValue(trackID, segmentID string, curve int, value float32, which sequence.SegmentValue) error {
	return c.editTrack(trackID, func(t *sequence.Track) error {
		return t.SetSegmentValue(segmentID, curve, value, which)
	})
}

func (c *Controller) SetSegmentLocked(trackID, segmentID string, locked bool) error {
	return c.editSegment(trackID, segmentID, func(s *sequence.Segment) error {
		s.Locked = locked
		return nil
	})
}

func (c *Controller) InsertCurvePoint(trackID, segmentID string, pos float32) error {
	return c.editSegment(trackID, segmentID, func(s *sequence.Segment) error {
		return s.InsertPoint(pos)
	})
}

func (c *Controller) DeleteCurvePoint(trackID, segmentID string, index int) error {
	return c.editSegment(trackID, segmentID, func(s *sequence.Segment) error {
		return s.DeletePoint(index)
	})
}

// ChangeCurvePoint moves a control point. Moving the first or the last point
// changes the value at a segment boundary, so the track is made continuous
// again afterwards.
func (c *Controller) ChangeCurvePoint(trackID, segmentID string, curve, index int, time, value float32) error {
	return c.editTrack(trackID, func(t *sequence.Track) error {
		s, _ := t.Segment(segmentID)
		if s == nil {
			return fmt.Errorf("%w: %q", sequence.ErrSegmentNotFound, segmentID)
		}
		if err := s.ChangePoint(curve, index, time, value); err != nil {
			return err
		}
		if index == 0 {
			return t.SetSegmentValue(segmentID, curve, s.Curves[curve].Points[0].Value, sequence.StartPoint)
		}
		t.UpdateSegments()
		return nil
	})
}

func (c *Controller) ChangeCurveInterp(trackID, segmentID string, curve int, interp sequence.Interp) error {
	return c.editSegment(trackID, segmentID, func(s *sequence.Segment) error {
		return s.SetInterp(curve, interp)
	})
}

// ChangeSequenceDuration sets the duration of the sequence. It cannot become
// shorter than the longest track.
func (c *Controller) ChangeSequenceDuration(duration float64) error {
	return c.player.Edit(func(seq *sequence.Sequence) error {
		if duration < 0 {
			return fmt.Errorf("negative duration %v", duration)
		}
		seq.Duration = duration
		return nil
	})
}

func (c *Controller) editTrack(trackID string, f func(t *sequence.Track) error) error {
	return c.player.Edit(func(seq *sequence.Sequence) error {
		t := seq.Track(trackID)
		if t == nil {
			return fmt.Errorf("%w: %q", sequence.ErrTrackNotFound, trackID)
		}
		return f(t)
	})
}

func (c *Controller) editSegment(trackID, segmentID string, f func(s *sequence.Segment) error) error {
	return c.editTrack(trackID, func(t *sequence.Track) error {
		s, _ := t.Segment(segmentID)
		if s == nil {
			return fmt.Errorf("%w: %q", sequence.ErrSegmentNotFound, segmentID)
		}
		return f(s)
	})
}
