// Package midiout sends the values of int parameters as MIDI control change
// messages.
package midiout

import (
	"fmt"
	"sync"

	"github.com/vsariola/sequence/parameter"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

type (
	// CC sends values to one controller on one channel. Values are clamped to
	// 0..127.
	CC struct {
		Channel    uint8
		Controller uint8

		send func(midi.Message) error

		mu  sync.Mutex
		err error
	}
)

func NewCC(channel, controller uint8, send func(midi.Message) error) *CC {
	return &CC{Channel: channel, Controller: controller, send: send}
}

// Send sends one control change message with the given value.
func (c *CC) Send(value int) error {
	v := uint8(max(min(value, 127), 0))
	if err := c.send(midi.ControlChange(c.Channel, c.Controller, v)); err != nil {
		return fmt.Errorf("sending CC %d on channel %d failed: %w", c.Controller, c.Channel, err)
	}
	return nil
}

// Attach makes every change of p send a message. Send errors do not stop
// later sends; the first one is kept and returned by Err.
func (c *CC) Attach(p *parameter.Int) {
	p.OnChange(func(v int) {
		if err := c.Send(v); err != nil {
			c.mu.Lock()
			if c.err == nil {
				c.err = err
			}
			c.mu.Unlock()
		}
	})
}

func (c *CC) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Open opens an output port and returns a send function for it, to be used
// with NewCC. The port is found by name among the ports of the registered
// driver; an empty name opens the first port.
func Open(port string) (send func(midi.Message) error, out drivers.Out, err error) {
	if port == "" {
		out, err = midi.OutPort(0)
	} else {
		out, err = midi.FindOutPort(port)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not find MIDI output %q: %w", port, err)
	}
	send, err = midi.SendTo(out)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open MIDI output %v: %w", out, err)
	}
	return send, out, nil
}

// Ports returns the names of the output ports of the registered driver.
func Ports() []string {
	var ret []string
	for _, out := range midi.GetOutPorts() {
		ret = append(ret, out.String())
	}
	return ret
}
