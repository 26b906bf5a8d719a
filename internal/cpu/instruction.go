package cpu

import (
	"fmt"
)

// Instruction is a single decoded SM83 instruction.
type Instruction struct {
	// Opcode is the opcode byte. For prefixed instructions it is
	// the byte following 0xCB.
	Opcode uint8
	// Prefixed is true for instructions in the 0xCB table.
	Prefixed bool
	// Name is the mnemonic, e.g. "LD A, (HL)".
	Name string
	// Length is the length of the instruction in bytes,
	// including the prefix and any immediate operands.
	Length uint8
	// Cycles is the number of T-cycles the instruction takes.
	// For conditional instructions this is the cost of the
	// branch not being taken.
	Cycles int
	// CyclesTaken is the number of T-cycles a conditional
	// instruction takes when its branch is taken. It is zero
	// for instructions without a condition.
	CyclesTaken int

	fn func(*CPU)
}

// Conditional returns true if the instruction has a branch
// condition.
func (i Instruction) Conditional() bool {
	return i.CyclesTaken != 0
}

func (i Instruction) String() string {
	return i.Name
}

// DecodeError is returned when the byte at PC is not a valid
// instruction.
type DecodeError struct {
	PC       uint16
	Opcode   uint8
	Prefixed bool
}

func (e *DecodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: illegal opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

var (
	// InstructionSet holds the unprefixed instructions, indexed
	// by opcode. Illegal opcodes have an empty Name.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 0xCB prefixed instructions.
	InstructionSetCB [256]Instruction
)

// Decode returns the instruction for the given opcode. A bare
// 0xCB, or any of the eleven unused opcodes, returns a
// *DecodeError.
func Decode(opcode uint8, prefixed bool) (Instruction, error) {
	var instruction Instruction
	if prefixed {
		instruction = InstructionSetCB[opcode]
	} else {
		instruction = InstructionSet[opcode]
	}
	if instruction.fn == nil {
		return Instruction{}, &DecodeError{Opcode: opcode, Prefixed: prefixed}
	}

	return instruction, nil
}

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, length uint8, cycles int, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		Opcode: opcode,
		Name:   name,
		Length: length,
		Cycles: cycles,
		fn:     fn,
	}
}

// DefineConditional defines a conditional instruction, which takes
// cyclesTaken instead of cycles when its branch is taken.
func DefineConditional(opcode uint8, name string, length uint8, cycles, cyclesTaken int, fn func(*CPU)) {
	DefineInstruction(opcode, name, length, cycles, fn)
	InstructionSet[opcode].CyclesTaken = cyclesTaken
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode. Every prefixed instruction is 2 bytes.
func DefineInstructionCB(opcode uint8, name string, cycles int, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		Opcode:   opcode,
		Prefixed: true,
		Name:     name,
		Length:   2,
		Cycles:   cycles,
		fn:       fn,
	}
}

// illegalOpcodes are the opcodes the SM83 does not implement.
// Executing one locks up the real hardware.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}
