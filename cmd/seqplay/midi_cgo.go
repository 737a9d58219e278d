//go:build cgo

package main

import (
	"fmt"
	"strings"

	"github.com/vsariola/sequence/midiout"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func openMIDI(port string) (send func(midi.Message) error, closer func(), err error) {
	send, _, err = midiout.Open(port)
	if err != nil {
		if ports := midiout.Ports(); len(ports) > 0 {
			err = fmt.Errorf("%w (available ports: %s)", err, strings.Join(ports, ", "))
		} else {
			err = fmt.Errorf("%w (no MIDI output ports found)", err)
		}
		return nil, nil, err
	}
	return send, midi.CloseDriver, nil
}
