// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// bits holds the bit of the system clock watched for each
// TAC clock select, giving 4096, 262144, 65536 and 16384 Hz.
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency.
//
// TIMA is incremented on every falling edge of the selected
// bit of the 16-bit system clock (whose upper byte is DIV)
// ANDed with the enable bit of TAC. When TIMA overflows it
// reads 0 for 4 cycles, then is reloaded from TMA and the
// timer interrupt is requested.
type Controller struct {
	sysClock   uint16
	currentBit uint16

	tima               uint8
	tma                uint8
	tac                uint8
	ticksSinceOverflow uint8

	Enabled  bool
	lastBit  bool
	overflow bool

	irq uint8
}

// NewController returns a new timer controller, with its
// registers attached to r.
func NewController(r types.Registrar) *Controller {
	c := &Controller{
		currentBit: bits[0],
		tac:        0xF8,
	}
	r.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any write resets the whole system clock, which
			// may produce a falling edge
			c.sysClock = 0
			c.detectEdge()
		}, func() uint8 {
			return uint8(c.sysClock >> 8)
		},
	)
	r.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			// writes to TIMA are ignored if written the same tick it is
			// reloading
			if c.ticksSinceOverflow != 5 {
				c.tima = v
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}, func() uint8 {
			return c.tima
		},
	)
	r.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
			// if you write to TMA the same tick that TIMA is reloading,
			// TIMA will be set to the new value of TMA
			if c.ticksSinceOverflow == 5 {
				c.tima = v
			}
		}, func() uint8 {
			return c.tma
		},
	)
	r.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v
			c.currentBit = bits[v&0b11]
			c.Enabled = v&types.Bit2 == types.Bit2

			// disabling the timer or changing the selected bit
			// can itself produce a falling edge
			c.detectEdge()
		}, func() uint8 {
			return c.tac | 0b11111000
		},
	)

	return c
}

// Tick advances the timer by the given number of cycles, and
// returns interrupts.TimerFlag if TIMA was reloaded.
func (c *Controller) Tick(cycles int) uint8 {
	for i := 0; i < cycles; i++ {
		c.sysClock++
		c.detectEdge()

		if c.overflow {
			c.ticksSinceOverflow++

			// handle ticks since overflow
			switch c.ticksSinceOverflow {
			case 4:
				c.irq |= interrupts.TimerFlag
			case 5:
				c.tima = c.tma
			case 6:
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}
	}

	irq := c.irq
	c.irq = 0
	return irq
}

// detectEdge increments TIMA on a falling edge of the timer signal.
func (c *Controller) detectEdge() {
	newBit := c.Enabled && c.sysClock&c.currentBit != 0
	if c.lastBit && !newBit {
		c.tima++

		// check for overflow
		if c.tima == 0 {
			c.overflow = true
			c.ticksSinceOverflow = 0
		}
	}
	c.lastBit = newBit
}

// SysClock returns the 16-bit system clock.
func (c *Controller) SysClock() uint16 {
	return c.sysClock
}
