package cpu

// add is a helper function for adding two bytes together and
// setting the flags accordingly. If withCarry is set, the
// current carry flag is added as well.
//
// Used by:
//
//	ADD A, n
//	ADC A, n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(a, b uint8, withCarry bool) uint8 {
	var carry uint16
	if withCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	half := uint16(a&0xF) + uint16(b&0xF) + carry

	result := uint8(sum)
	c.setFlags(result == 0, false, half > 0xF, sum > 0xFF)
	return result
}

// sub is a helper function for subtracting b from a, and setting
// the flags accordingly. If withCarry is set, the current carry
// flag is subtracted as well.
//
// Used by:
//
//	SUB n
//	SBC A, n
//	CP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(a, b uint8, withCarry bool) uint8 {
	var carry int16
	if withCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	diff := int16(a) - int16(b) - carry
	half := int16(a&0xF) - int16(b&0xF) - carry

	result := uint8(diff)
	c.setFlags(result == 0, true, half < 0, diff < 0)
	return result
}

// and performs a bitwise AND on A and the given value.
//
//	AND n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(value uint8) {
	c.A &= value
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR on A and the given value.
//
//	OR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(value uint8) {
	c.A |= value
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR on A and the given value.
//
//	XOR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(value uint8) {
	c.A ^= value
	c.setFlags(c.A == 0, false, false, false)
}

// alu performs the 8-bit arithmetic operation selected by bits
// 3-5 of the opcode, with A as the destination.
func (c *CPU) alu(op uint8, value uint8) {
	switch op & 7 {
	case 0: // ADD
		c.A = c.add(c.A, value, false)
	case 1: // ADC
		c.A = c.add(c.A, value, true)
	case 2: // SUB
		c.A = c.sub(c.A, value, false)
	case 3: // SBC
		c.A = c.sub(c.A, value, true)
	case 4:
		c.and(value)
	case 5:
		c.xor(value)
	case 6:
		c.or(value)
	case 7: // CP
		c.sub(c.A, value, false)
	}
}

var aluNames = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlags(decremented == 0, true, value&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds the given value to HL.
//
//	ADD HL, rr
//	rr = 16-bit register
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(value)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0xFFF)+(value&0xFFF) > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the given signed offset.
//
// Used by:
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	// the flags are computed from the unsigned low byte
	c.setFlags(false, false, (c.SP&0xF)+uint16(offset&0xF) > 0xF, (c.SP&0xFF)+uint16(offset) > 0xFF)
	return uint16(int32(c.SP) + int32(int8(offset)))
}

// decimalAdjust adjusts A to a valid BCD value after an
// addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	var adjust uint8
	carry := c.isFlagSet(FlagCarry)
	if c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagHalfCarry) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		c.A -= adjust
	} else {
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			adjust |= 0x06
		}
		if carry || c.A > 0x99 {
			adjust |= 0x60
			carry = true
		}
		c.A += adjust
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}
