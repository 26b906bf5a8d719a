package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// rotateLeftCarry rotates the given value left by 1 bit. Bit 7 is
// copied to both the carry flag and bit 0.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(value uint8) uint8 {
	result := value<<1 | value>>7
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit7))
	return result
}

// rotateRightCarry rotates the given value right by 1 bit. Bit 0
// is copied to both the carry flag and bit 7.
//
//	RRC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(value uint8) uint8 {
	result := value>>1 | value<<7
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit0))
	return result
}

// rotateLeft rotates the given value left by 1 bit through the
// carry flag.
//
//	RL n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(value uint8) uint8 {
	result := value << 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit0
	}
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit7))
	return result
}

// rotateRight rotates the given value right by 1 bit through the
// carry flag.
//
//	RR n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(value uint8) uint8 {
	result := value >> 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit7
	}
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit0))
	return result
}

// shiftLeftArithmetic shifts the given value left into the carry
// flag. Bit 0 is reset.
//
//	SLA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(value uint8) uint8 {
	result := value << 1
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit7))
	return result
}

// shiftRightArithmetic shifts the given value right into the
// carry flag. Bit 7 is unchanged.
//
//	SRA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(value uint8) uint8 {
	result := value>>1 | value&types.Bit7
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit0))
	return result
}

// swap swaps the upper and lower nibbles of the given value.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// shiftRightLogical shifts the given value right into the carry
// flag. Bit 7 is reset.
//
//	SRL n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(value uint8) uint8 {
	result := value >> 1
	c.setFlags(result == 0, false, false, types.IsBitSet(value, types.Bit0))
	return result
}

// shiftOps are the operations of the first quarter of the 0xCB
// table, indexed by bits 3-5 of the opcode.
var shiftOps = [8]struct {
	name string
	fn   func(c *CPU, v uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeft},
	{"RR", (*CPU).rotateRight},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// testBit tests the given bit of the given value.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(bit, value uint8) {
	c.setFlags(!utils.TestBit(value, bit), false, true, c.isFlagSet(FlagCarry))
}
