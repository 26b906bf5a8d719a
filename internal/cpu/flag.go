package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags is the unpacked form of the F register.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// FlagsToByte packs the flags into their F register
// representation. The lower nibble is always zero.
func FlagsToByte(f Flags) uint8 {
	var b uint8
	if f.Zero {
		b |= 1 << FlagZero
	}
	if f.Subtract {
		b |= 1 << FlagSubtract
	}
	if f.HalfCarry {
		b |= 1 << FlagHalfCarry
	}
	if f.Carry {
		b |= 1 << FlagCarry
	}
	return b
}

// ByteToFlags unpacks an F register value. Bits 0-3 are ignored.
func ByteToFlags(b uint8) Flags {
	return Flags{
		Zero:      b&(1<<FlagZero) != 0,
		Subtract:  b&(1<<FlagSubtract) != 0,
		HalfCarry: b&(1<<FlagHalfCarry) != 0,
		Carry:     b&(1<<FlagCarry) != 0,
	}
}

// Flags returns the unpacked F register.
func (c *CPU) Flags() Flags {
	return ByteToFlags(c.F)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// setFlags replaces all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = FlagsToByte(Flags{zero, subtract, halfCarry, carry})
}

// shouldZeroFlag sets FlagZero if the given value is 0.
func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}
