package cpu

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.bus.Write(c.SP-1, uint8(value>>8))
	c.bus.Write(c.SP-2, uint8(value))
	c.SP -= 2
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	lower := uint16(c.bus.Read(c.SP))
	upper := uint16(c.bus.Read(c.SP+1)) << 8
	c.SP += 2
	return lower | upper
}

// condition returns the state of the branch condition encoded in
// bits 3-4 of a conditional opcode.
//
//	0 = NZ, 1 = Z, 2 = NC, 3 = C
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// jumpAbsolute jumps to the given address.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.next = address
}

// jumpRelative jumps to the address relative to the address of
// the next instruction.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.next = uint16(int32(c.next) + int32(int8(offset)))
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.next)
	c.next = address
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.next = c.popStack()
}

// branch runs fn and marks the branch as taken if the condition
// holds.
//
//	JP cc, nn
//	JR cc, e
//	CALL cc, nn
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) branch(cc uint8, fn func()) {
	if c.condition(cc) {
		c.taken = true
		fn()
	}
}
