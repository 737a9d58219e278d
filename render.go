package sequence

import (
	"errors"
	"fmt"

	"github.com/viterin/vek/vek32"
)

// Buffer holds a track rendered at a fixed rate: one row per sample time, one
// column per curve of the track, values already in the range of the track.
type Buffer struct {
	Times   []float64
	Columns [][]float32
}

// Render samples a valid track from the start of its first segment to the end
// of its last segment, rate rows per second. It evaluates the same segment
// search and curves as playback does, so the result is what the parameter of
// the track would see on a clock ticking at rate.
func Render(t *Track, rate float64) (Buffer, error) {
	if !(rate > 0) {
		return Buffer{}, fmt.Errorf("render rate %v is not positive", rate)
	}
	if err := t.Validate(); err != nil {
		return Buffer{}, err
	}
	if len(t.Segments) == 0 {
		return Buffer{}, errors.New("cannot render a track without segments")
	}
	n := t.Kind.Arity()
	start, end := t.Segments[0].StartTime, t.End()
	rows := int((end - start) * rate)
	if float64(rows)/rate+start < end {
		rows++
	}
	ret := Buffer{Times: make([]float64, 0, rows), Columns: make([][]float32, n)}
	for c := range ret.Columns {
		ret.Columns[c] = make([]float32, 0, rows)
	}
	for i := 0; i < rows; i++ {
		time := start + float64(i)/rate
		s := t.SegmentAt(time)
		if s == nil {
			continue
		}
		pos := float32((time - s.StartTime) / s.Duration)
		ret.Times = append(ret.Times, time)
		for c := range ret.Columns {
			ret.Columns[c] = append(ret.Columns[c], s.Curves[c].Evaluate(pos))
		}
	}
	for c, col := range ret.Columns {
		vek32.MulNumber_Inplace(col, t.Maximum[c]-t.Minimum[c])
		vek32.AddNumber_Inplace(col, t.Minimum[c])
	}
	return ret, nil
}

// Len returns the number of rows.
func (b Buffer) Len() int { return len(b.Times) }

// Range returns the smallest and the largest value of column i.
func (b Buffer) Range(i int) (lo, hi float32) {
	col := b.Columns[i]
	if len(col) == 0 {
		return 0, 0
	}
	return vek32.Min(col), vek32.Max(col)
}
