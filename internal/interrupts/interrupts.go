// Package interrupts provides the interrupt lines of the Game Boy,
// their priorities and their vectors.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the LCD enters
	// VBlank.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag = types.Bit4

	// Mask covers the five interrupt lines.
	Mask = 0x1F
)

const (
	VBlankVector uint16 = 0x0040
	LCDVector    uint16 = 0x0048
	TimerVector  uint16 = 0x0050
	SerialVector uint16 = 0x0058
	JoypadVector uint16 = 0x0060
)

// Highest returns the flag of the highest priority interrupt
// in pending, or 0 if none are pending. Priority follows bit
// order, with VBlank (bit 0) the highest and Joypad (bit 4)
// the lowest.
func Highest(pending uint8) uint8 {
	pending &= Mask
	return pending & -pending
}

// Vector returns the vector of the given interrupt flag. The
// flag must have exactly one bit set.
func Vector(flag uint8) uint16 {
	for i := uint16(0); i < 5; i++ {
		if flag == 1<<i {
			return VBlankVector + i*8
		}
	}
	return 0
}

// Service is the interrupt service, used to request
// interrupts and to get the currently pending ones.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. The master enable (IME) lives in the CPU.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service, with the IF and IE
// registers attached to r.
func NewService(r types.Registrar) *Service {
	s := &Service{}
	r.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & Mask // only the first 5 bits are used
		}, func() uint8 {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	r.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v
		}, func() uint8 {
			return s.Enable
		},
	)

	return s
}

// Pending returns the interrupts that are both requested
// and enabled.
func (s *Service) Pending() uint8 {
	return s.Enable & s.Flag & Mask
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & Mask
}

// Clear clears the specified interrupt request.
func (s *Service) Clear(flag uint8) {
	s.Flag &^= flag
}
