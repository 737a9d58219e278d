// Package sequence holds the data model of a curve sequence: tracks of
// contiguous segments, each segment holding one to four parallel scalar
// curves over normalized time. Playback lives in package player; this package
// only knows how to validate, sample and edit the data.
package sequence

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	// Sequence is the whole timeline: a list of tracks and the total duration
	// in seconds. Duration is at least as long as the longest track, but can
	// be longer, e.g. to leave room at the end when looping.
	Sequence struct {
		Duration float64
		Tracks   []Track
	}
)

// Track returns the track with the given id, or nil.
func (s *Sequence) Track(id string) *Track {
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			return &s.Tracks[i]
		}
	}
	return nil
}

// LongestTrack returns the end time of the longest track.
func (s *Sequence) LongestTrack() float64 {
	ret := 0.0
	for i := range s.Tracks {
		ret = max(ret, s.Tracks[i].End())
	}
	return ret
}

// UpdateDuration grows Duration so that every track fits in it.
func (s *Sequence) UpdateDuration() {
	s.Duration = max(s.Duration, s.LongestTrack())
}

// Validate checks every track and returns all the failures joined, or nil. A
// sequence can still be played when some of its tracks fail: the player just
// skips those.
func (s *Sequence) Validate() error {
	var errs []error
	ids := make(map[string]bool, len(s.Tracks))
	for i := range s.Tracks {
		t := &s.Tracks[i]
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("track %d has no id", i))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate track id %q", t.ID))
		}
		ids[t.ID] = true
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Duration < 0 {
		errs = append(errs, fmt.Errorf("negative sequence duration %v", s.Duration))
	}
	return errors.Join(errs...)
}

// Copy makes a deep copy of a Sequence.
func (s *Sequence) Copy() Sequence {
	tracks := make([]Track, len(s.Tracks))
	for i := range s.Tracks {
		tracks[i] = s.Tracks[i].Copy()
	}
	return Sequence{Duration: s.Duration, Tracks: tracks}
}

// Unmarshal parses a sequence from JSON or, if that fails, from YAML.
func Unmarshal(data []byte, v any) error {
	errJSON := json.Unmarshal(data, v)
	if errJSON == nil {
		return nil
	}
	if errYaml := yaml.Unmarshal(data, v); errYaml != nil {
		return fmt.Errorf("could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
	}
	return nil
}

// Marshal encodes a value as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal: %w", err)
	}
	return out, nil
}
