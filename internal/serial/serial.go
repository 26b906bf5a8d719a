// Package serial provides the serial port of the Game Boy. Only
// the internal clock is driven; a transfer with an external clock
// waits forever, as no second Game Boy is ever connected.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ticksPerBit is the number of cycles it takes to shift one
	// bit at 8192 Hz.
	ticksPerBit = 512
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each cycle, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	data    uint8 // types.SB
	control uint8 // types.SC

	count         uint8 // the number of bits that have been transferred.
	cycles        int
	InternalClock bool // if true, this controller is the master.
	transferring  bool

	AttachedDevice Device // the device that is attached to this controller.
}

// NewController creates a new Controller, with its registers attached
// to r.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. This is the same as if the device is not
// plugged in. If you want to attach a device, use the Controller.Attach method.
func NewController(r types.Registrar) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		control:        0x7E,
	}
	r.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
		}, func() uint8 {
			return c.data
		},
	)
	r.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.control = v | 0x7E // bits 1-6 are unused
			c.InternalClock = v&types.Bit0 == types.Bit0
			c.transferring = v&types.Bit7 == types.Bit7
			c.count, c.cycles = 0, 0
		}, func() uint8 {
			return c.control
		},
	)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Tick advances a transfer driven by the internal clock, and returns
// interrupts.SerialFlag once all 8 bits have been shifted.
func (c *Controller) Tick(cycles int) uint8 {
	if !c.transferring || !c.InternalClock {
		return 0
	}
	c.cycles += cycles
	for c.cycles >= ticksPerBit {
		c.cycles -= ticksPerBit

		bit := c.AttachedDevice.Send()
		c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)
		c.data <<= 1
		if bit {
			c.data |= 1
		}

		c.count++
		if c.count == 8 {
			c.transferring = false
			c.control &^= types.Bit7
			return interrupts.SerialFlag
		}
	}
	return 0
}
