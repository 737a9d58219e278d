package player

import (
	"fmt"
	"os"
	"strings"

	"github.com/vsariola/sequence"
	"github.com/vsariola/sequence/parameter"
)

type (
	// Show is the file format of a complete setup: the sequence and the
	// outputs its tracks refer to.
	Show struct {
		Sequence sequence.Sequence
		Outputs  []OutputConfig
	}

	OutputConfig struct {
		ID         string
		MainThread bool `yaml:",omitempty"`
		Parameter  parameter.Config
		MIDI       *MIDIConfig `yaml:",omitempty"`
	}

	// MIDIConfig sends the value of an int parameter as a MIDI control change.
	MIDIConfig struct {
		Channel    uint8
		Controller uint8
	}
)

// ReadShow reads a show from a .yml or .json file.
func ReadShow(path string) (Show, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Show{}, fmt.Errorf("could not read show: %w", err)
	}
	var show Show
	if err := sequence.Unmarshal(data, &show); err != nil {
		return Show{}, fmt.Errorf("could not parse %v: %w", path, err)
	}
	return show, nil
}

// BuildOutputs creates the parameter and the output of every output config.
func (s *Show) BuildOutputs() ([]*Output, error) {
	ret := make([]*Output, 0, len(s.Outputs))
	ids := map[string]bool{}
	for _, c := range s.Outputs {
		if c.ID == "" {
			return nil, fmt.Errorf("output for parameter %q has no id", c.Parameter.Name)
		}
		if ids[c.ID] {
			return nil, fmt.Errorf("duplicate output id %q", c.ID)
		}
		ids[c.ID] = true
		if c.MIDI != nil && !strings.EqualFold(c.Parameter.Type, "int") {
			return nil, fmt.Errorf("output %q: MIDI needs an int parameter, got %q", c.ID, c.Parameter.Type)
		}
		p, err := parameter.New(c.Parameter)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", c.ID, err)
		}
		ret = append(ret, NewOutput(c.ID, p, c.MainThread))
	}
	return ret, nil
}
