//go:build !cgo

package main

import (
	"errors"

	"gitlab.com/gomidi/midi/v2"
)

func openMIDI(port string) (send func(midi.Message) error, closer func(), err error) {
	// with no cgo, there is no rtmidi driver
	return nil, nil, errors.New("MIDI output needs a build with cgo")
}
