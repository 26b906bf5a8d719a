// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"sync"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State holds the buttons currently held down. It is written by
// the input thread and sampled by the emulation thread, so every
// access is guarded. Bit n is set while Button n is pressed.
type State struct {
	mu      sync.Mutex
	buttons uint8
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.mu.Lock()
	s.buttons |= 1 << button
	s.mu.Unlock()
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.mu.Lock()
	s.buttons &^= 1 << button
	s.mu.Unlock()
}

// Snapshot returns the buttons currently pressed.
func (s *State) Snapshot() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buttons
}

// Controller is the P1 register. Select either action or direction
// buttons by writing to the register, and then read out bits 0-3 to
// get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type Controller struct {
	selected uint8
	buttons  uint8

	// pending holds a joypad interrupt raised by a P1 write, until
	// the next Update hands it out.
	pending uint8
}

// NewController returns a new joypad controller, with P1 attached
// to r.
func NewController(r types.Registrar) *Controller {
	c := &Controller{selected: 0x30}
	r.RegisterHardware(
		types.P1,
		func(v uint8) {
			before := c.read()
			c.selected = v & 0x30
			c.pending |= lowered(before, c.read())
		}, c.read,
	)
	return c
}

func (c *Controller) read() uint8 {
	d := 0xC0 | c.selected
	if c.selected&types.Bit4 == 0 {
		d |= c.buttons >> 4 & 0xf
	}
	if c.selected&types.Bit5 == 0 {
		d |= c.buttons & 0xf
	}

	// 0 = pressed
	return d ^ 0xf
}

// Update sets the buttons seen by P1 from a State snapshot, and
// returns interrupts.JoypadFlag if any of P1 bits 0-3 went from high
// to low, either now or through a select write since the last call.
func (c *Controller) Update(buttons uint8) uint8 {
	before := c.read()
	c.buttons = buttons
	irq := c.pending | lowered(before, c.read())
	c.pending = 0
	return irq
}

// lowered returns interrupts.JoypadFlag if any of the input lines
// fell between before and after.
func lowered(before, after uint8) uint8 {
	for bit := uint8(0); bit < 4; bit++ {
		if utils.FallingEdge(before, after, bit) {
			return interrupts.JoypadFlag
		}
	}
	return 0
}
