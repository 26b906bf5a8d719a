package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// pairNames is the order in which the 16-bit pairs are encoded in
// bits 4-5 of an opcode. Index 3 is SP for loads and arithmetic,
// and AF for PUSH and POP.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// getPair returns the 16-bit value selected by bits 4-5 of an
// opcode, with SP at index 3.
func (c *CPU) getPair(index uint8) uint16 {
	if index&3 == 3 {
		return c.SP
	}
	return c.Pair(Pair(index & 3))
}

// setPair sets the 16-bit value selected by bits 4-5 of an
// opcode, with SP at index 3.
func (c *CPU) setPair(index uint8, value uint16) {
	if index&3 == 3 {
		c.SP = value
		return
	}
	c.SetPair(Pair(index&3), value)
}

// stackPair maps bits 4-5 of PUSH and POP onto BC, DE, HL and AF.
func stackPair(index uint8) Pair {
	return Pair(index & 3)
}

func init() {
	defineControl()
	defineLoads()
	defineArithmetic()
	defineJumps()
	defineCB()
}

// defineControl defines the miscellaneous and control instructions.
func defineControl() {
	DefineInstruction(0x00, "NOP", 1, 4, func(c *CPU) {})
	DefineInstruction(0x10, "STOP", 2, 4, func(c *CPU) { c.stop() })
	DefineInstruction(0x76, "HALT", 1, 4, func(c *CPU) { c.halted = true })
	DefineInstruction(0xF3, "DI", 1, 4, func(c *CPU) {
		c.IME = false
		c.imePending = false
	})
	DefineInstruction(0xFB, "EI", 1, 4, func(c *CPU) { c.imePending = true })

	DefineInstruction(0x07, "RLCA", 1, 4, func(c *CPU) {
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", 1, 4, func(c *CPU) {
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", 1, 4, func(c *CPU) {
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", 1, 4, func(c *CPU) {
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	})

	DefineInstruction(0x27, "DAA", 1, 4, func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", 1, 4, func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", 1, 4, func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", 1, 4, func(c *CPU) {
		if c.isFlagSet(FlagCarry) {
			c.clearFlag(FlagCarry)
		} else {
			c.setFlag(FlagCarry)
		}
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
}

// defineLoads defines the 8 and 16-bit load instructions, as well
// as PUSH and POP.
func defineLoads() {
	// 0x40 - 0x7F LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue
			}
			cycles := 4
			if dst == 6 || src == 6 {
				cycles = 8
			}
			d, s := dst, src
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", registerNames[d], registerNames[s]), 1, cycles, func(c *CPU) {
				c.set8(d, c.get8(s))
			})
		}
	}

	// LD r, d8
	for dst := uint8(0); dst < 8; dst++ {
		cycles := 8
		if dst == 6 {
			cycles = 12
		}
		d := dst
		DefineInstruction(0x06|d<<3, fmt.Sprintf("LD %s, d8", registerNames[d]), 2, cycles, func(c *CPU) {
			c.set8(d, c.imm8())
		})
	}

	// LD rr, d16
	for i := uint8(0); i < 4; i++ {
		p := i
		DefineInstruction(0x01|p<<4, fmt.Sprintf("LD %s, d16", pairNames[p]), 3, 12, func(c *CPU) {
			c.setPair(p, c.imm16())
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	indirect := [4]struct {
		name    string
		address func(c *CPU) uint16
	}{
		{"(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
		{"(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
		{"(HL+)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl + 1)
			return hl
		}},
		{"(HL-)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl - 1)
			return hl
		}},
	}
	for i, mode := range indirect {
		address := mode.address
		DefineInstruction(uint8(0x02|i<<4), "LD "+mode.name+", A", 1, 8, func(c *CPU) {
			c.bus.Write(address(c), c.A)
		})
		DefineInstruction(uint8(0x0A|i<<4), "LD A, "+mode.name, 1, 8, func(c *CPU) {
			c.A = c.bus.Read(address(c))
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", 3, 20, func(c *CPU) {
		address := c.imm16()
		c.bus.Write(address, uint8(c.SP))
		c.bus.Write(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xE0, "LDH (a8), A", 2, 12, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.imm8()), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, 12, func(c *CPU) {
		c.A = c.bus.Read(0xFF00 | uint16(c.imm8()))
	})
	DefineInstruction(0xE2, "LD (C), A", 1, 8, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, 8, func(c *CPU) {
		c.A = c.bus.Read(0xFF00 | uint16(c.C))
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, 16, func(c *CPU) {
		c.bus.Write(c.imm16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, 16, func(c *CPU) {
		c.A = c.bus.Read(c.imm16())
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", 2, 12, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.imm8()))
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, 8, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})

	// PUSH rr / POP rr
	for i := uint8(0); i < 4; i++ {
		p := stackPair(i)
		DefineInstruction(0xC5|i<<4, "PUSH "+p.String(), 1, 16, func(c *CPU) {
			c.pushStack(c.Pair(p))
		})
		DefineInstruction(0xC1|i<<4, "POP "+p.String(), 1, 12, func(c *CPU) {
			c.SetPair(p, c.popStack())
		})
	}
}

// defineArithmetic defines the 8 and 16-bit arithmetic and logic
// instructions.
func defineArithmetic() {
	// 0x80 - 0xBF ALU A, r
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			cycles := 4
			if src == 6 {
				cycles = 8
			}
			o, s := op, src
			DefineInstruction(0x80|o<<3|s, aluNames[o]+registerNames[s], 1, cycles, func(c *CPU) {
				c.alu(o, c.get8(s))
			})
		}
		o := op
		DefineInstruction(0xC6|o<<3, aluNames[o]+"d8", 2, 8, func(c *CPU) {
			c.alu(o, c.imm8())
		})
	}

	// INC r / DEC r
	for r := uint8(0); r < 8; r++ {
		cycles := 4
		if r == 6 {
			cycles = 12
		}
		reg := r
		DefineInstruction(0x04|reg<<3, "INC "+registerNames[reg], 1, cycles, func(c *CPU) {
			c.set8(reg, c.increment(c.get8(reg)))
		})
		DefineInstruction(0x05|reg<<3, "DEC "+registerNames[reg], 1, cycles, func(c *CPU) {
			c.set8(reg, c.decrement(c.get8(reg)))
		})
	}

	// INC rr / DEC rr / ADD HL, rr
	for i := uint8(0); i < 4; i++ {
		p := i
		DefineInstruction(0x03|p<<4, "INC "+pairNames[p], 1, 8, func(c *CPU) {
			c.setPair(p, c.getPair(p)+1)
		})
		DefineInstruction(0x0B|p<<4, "DEC "+pairNames[p], 1, 8, func(c *CPU) {
			c.setPair(p, c.getPair(p)-1)
		})
		DefineInstruction(0x09|p<<4, "ADD HL, "+pairNames[p], 1, 8, func(c *CPU) {
			c.addHL(c.getPair(p))
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", 2, 16, func(c *CPU) {
		c.SP = c.addSPSigned(c.imm8())
	})
}

// defineJumps defines the jumps, calls, returns and restarts.
func defineJumps() {
	DefineInstruction(0xC3, "JP a16", 3, 16, func(c *CPU) { c.jumpAbsolute(c.imm16()) })
	DefineInstruction(0xE9, "JP (HL)", 1, 4, func(c *CPU) { c.jumpAbsolute(c.HL.Uint16()) })
	DefineInstruction(0x18, "JR r8", 2, 12, func(c *CPU) { c.jumpRelative(c.imm8()) })
	DefineInstruction(0xCD, "CALL a16", 3, 24, func(c *CPU) { c.call(c.imm16()) })
	DefineInstruction(0xC9, "RET", 1, 16, func(c *CPU) { c.ret() })
	DefineInstruction(0xD9, "RETI", 1, 16, func(c *CPU) {
		c.ret()
		c.IME = true
	})

	for i := uint8(0); i < 4; i++ {
		cc := i
		name := conditionNames[cc]
		DefineConditional(0x20|cc<<3, "JR "+name+", r8", 2, 8, 12, func(c *CPU) {
			c.branch(cc, func() { c.jumpRelative(c.imm8()) })
		})
		DefineConditional(0xC2|cc<<3, "JP "+name+", a16", 3, 12, 16, func(c *CPU) {
			c.branch(cc, func() { c.jumpAbsolute(c.imm16()) })
		})
		DefineConditional(0xC4|cc<<3, "CALL "+name+", a16", 3, 12, 24, func(c *CPU) {
			c.branch(cc, func() { c.call(c.imm16()) })
		})
		DefineConditional(0xC0|cc<<3, "RET "+name, 1, 8, 20, func(c *CPU) {
			c.branch(cc, c.ret)
		})
	}

	// RST n
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 1, 16, func(c *CPU) {
			c.call(vector)
		})
	}
}

// defineCB defines the 0xCB prefixed instructions.
func defineCB() {
	for opcode := 0; opcode < 256; opcode++ {
		op := uint8(opcode)
		reg := op & 7
		bit := op >> 3 & 7
		name := registerNames[reg]
		indirect := reg == 6

		switch op >> 6 {
		case 0: // rotates and shifts
			shift := shiftOps[bit]
			cycles := 8
			if indirect {
				cycles = 16
			}
			DefineInstructionCB(op, shift.name+" "+name, cycles, func(c *CPU) {
				c.set8(reg, shift.fn(c, c.get8(reg)))
			})
		case 1: // BIT b, r
			cycles := 8
			if indirect {
				cycles = 12
			}
			DefineInstructionCB(op, fmt.Sprintf("BIT %d, %s", bit, name), cycles, func(c *CPU) {
				c.testBit(bit, c.get8(reg))
			})
		case 2: // RES b, r
			cycles := 8
			if indirect {
				cycles = 16
			}
			DefineInstructionCB(op, fmt.Sprintf("RES %d, %s", bit, name), cycles, func(c *CPU) {
				c.set8(reg, utils.ClearBit(c.get8(reg), bit))
			})
		case 3: // SET b, r
			cycles := 8
			if indirect {
				cycles = 16
			}
			DefineInstructionCB(op, fmt.Sprintf("SET %d, %s", bit, name), cycles, func(c *CPU) {
				c.set8(reg, utils.SetBit(c.get8(reg), bit))
			})
		}
	}
}
