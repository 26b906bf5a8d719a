// Package lcd provides the scan timing of the Game Boy LCD. It walks
// the LCD through its modes line by line, keeping LY and STAT up to
// date and requesting the VBlank and STAT interrupts. No pixels are
// produced.
package lcd

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is the LCD timing controller.
//
// The STAT interrupt is requested on the rising edge of the STAT
// line, which is the OR of every enabled source:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable)
type Controller struct {
	lcdc uint8
	stat uint8 // interrupt enable bits 3-6
	ly   uint8
	lyc  uint8

	mode     Mode
	dot      int
	statLine bool

	frame uint64
	irq   uint8
}

// NewController returns a new LCD controller, with its registers
// attached to r. The LCD starts switched off.
func NewController(r types.Registrar) *Controller {
	c := &Controller{}
	r.RegisterHardware(
		types.LCDC,
		func(v uint8) {
			wasEnabled := c.Enabled()
			c.lcdc = v
			switch {
			case wasEnabled && !c.Enabled():
				c.ly, c.dot, c.mode = 0, 0, HBlank
				c.statLine = false
			case !wasEnabled && c.Enabled():
				c.ly, c.dot, c.mode = 0, 0, OAM
				c.updateStat()
			}
		}, func() uint8 {
			return c.lcdc
		},
	)
	r.RegisterHardware(
		types.STAT,
		func(v uint8) {
			c.stat = v & 0x78
			c.updateStat()
		}, func() uint8 {
			v := 0x80 | c.stat | c.mode
			if c.ly == c.lyc {
				v |= types.Bit2
			}
			return v
		},
	)
	r.RegisterHardware(
		types.LY,
		types.NoWrite,
		func() uint8 {
			return c.ly
		},
	)
	r.RegisterHardware(
		types.LYC,
		func(v uint8) {
			c.lyc = v
			c.updateStat()
		}, func() uint8 {
			return c.lyc
		},
	)
	return c
}

// Enabled returns true if the LCD is switched on (LCDC bit 7).
func (c *Controller) Enabled() bool {
	return c.lcdc&types.Bit7 != 0
}

// Mode returns the current mode of the LCD.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Frame returns the number of frames completed since power on.
func (c *Controller) Frame() uint64 {
	return c.frame
}

// Tick advances the LCD by the given number of cycles, and returns
// the interrupts that were requested along the way.
func (c *Controller) Tick(cycles int) uint8 {
	if !c.Enabled() {
		return 0
	}
	for i := 0; i < cycles; i++ {
		c.dot++
		switch {
		case c.dot == DotsPerLine:
			c.dot = 0
			c.ly++
			switch {
			case c.ly == ScreenHeight:
				c.mode = VBlank
				c.irq |= interrupts.VBlankFlag
				c.frame++
			case c.ly == Lines:
				c.ly = 0
				c.mode = OAM
			case c.ly < ScreenHeight:
				c.mode = OAM
			}
			c.updateStat()
		case c.ly < ScreenHeight && c.dot == oamDots:
			c.mode = VRAM
			c.updateStat()
		case c.ly < ScreenHeight && c.dot == oamDots+vramDots:
			c.mode = HBlank
			c.updateStat()
		}
	}

	irq := c.irq
	c.irq = 0
	return irq
}

// updateStat recomputes the STAT line and requests the STAT interrupt
// on a rising edge.
func (c *Controller) updateStat() {
	if !c.Enabled() {
		return
	}
	line := c.ly == c.lyc && c.stat&types.Bit6 != 0
	switch c.mode {
	case HBlank:
		line = line || c.stat&types.Bit3 != 0
	case VBlank:
		line = line || c.stat&types.Bit4 != 0
	case OAM:
		line = line || c.stat&types.Bit5 != 0
	}
	if line && !c.statLine {
		c.irq |= interrupts.LCDFlag
	}
	c.statLine = line
}
