// Package cpu provides an emulation of the Sharp SM83, the CPU of
// the Game Boy. The CPU executes one instruction per Step, and
// reports the number of clock cycles (T-cycles) it took.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304
	// InterruptCycles is the number of cycles added to a
	// step when an interrupt is serviced.
	InterruptCycles = 12
)

// Bus is the view of the memory bus the CPU needs. Reads and
// writes never fail; every address maps somewhere.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// Step advances the other hardware by the given number of
	// cycles.
	Step(cycles int)
	// Pending returns the interrupts that are both requested
	// and enabled.
	Pending() uint8
	// ClearInterrupt clears the request bit of the given
	// interrupt.
	ClearInterrupt(flag uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable.
	IME bool

	bus Bus

	halted bool
	// imePending is set by EI, and enables IME once the
	// following instruction has been decoded.
	imePending bool

	// next is the address of the instruction following the
	// one being executed. Jumps overwrite it.
	next uint16
	// taken is set when a conditional instruction takes
	// its branch.
	taken bool
}

// NewCPU creates a new CPU instance with the given Bus. The
// CPU starts at address 0x0000 with all registers cleared, as
// it would before running a boot ROM.
func NewCPU(bus Bus) *CPU {
	c := &CPU{
		bus: bus,
	}
	c.wirePairs()

	return c
}

// SkipBoot sets the registers to the values the DMG boot ROM
// leaves behind, and points PC at the cartridge entry point.
func (c *CPU) SkipBoot() {
	c.A = 0x01
	c.F = 0xB0
	c.B = 0x00
	c.C = 0x13
	c.D = 0x00
	c.E = 0xD8
	c.H = 0x01
	c.L = 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.halted = false
	c.imePending = false
}

// Halted returns true if the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step decodes and executes the instruction at PC, advances the
// rest of the hardware, and services at most one interrupt. It
// returns the number of T-cycles taken.
//
// If the byte at PC does not decode to an instruction, a
// *DecodeError is returned and the CPU state is left untouched.
func (c *CPU) Step() (int, error) {
	pc := c.PC
	opcode := c.bus.Read(pc)
	prefixed := false
	if opcode == 0xCB {
		opcode = c.bus.Read(pc + 1)
		prefixed = true
	}

	instruction, err := Decode(opcode, prefixed)
	if err != nil {
		return 0, &DecodeError{PC: pc, Opcode: opcode, Prefixed: prefixed}
	}

	// EI takes effect after the instruction that follows it
	if c.imePending {
		c.IME = true
		c.imePending = false
	}

	c.next = pc + uint16(instruction.Length)
	c.taken = false
	instruction.fn(c)

	cycles := instruction.Cycles
	if c.taken {
		cycles = instruction.CyclesTaken
	}
	c.bus.Step(cycles)

	// any pending interrupt wakes the CPU, regardless of IME
	if c.bus.Pending() != 0 {
		c.halted = false
	}
	if !c.halted {
		c.PC = c.next
	}

	if c.IME {
		if flag := interrupts.Highest(c.bus.Pending()); flag != 0 {
			c.serviceInterrupt(flag)
			c.bus.Step(InterruptCycles)
			cycles += InterruptCycles
		}
	}

	return cycles, nil
}

// Skip moves PC past the byte at PC. A host uses it to step over
// a byte that failed to decode.
func (c *CPU) Skip() {
	c.PC++
}

// serviceInterrupt pushes PC onto the stack and jumps to the
// vector of the given interrupt, clearing its request and IME.
func (c *CPU) serviceInterrupt(flag uint8) {
	c.bus.ClearInterrupt(flag)
	c.IME = false
	c.pushStack(c.PC)
	c.PC = interrupts.Vector(flag)
}

// stop enters the low power mode used by STOP. The divider is
// reset, and the CPU waits for an interrupt just as with HALT.
func (c *CPU) stop() {
	c.bus.Write(types.DIV, 0)
	c.halted = true
}

// imm8 returns the byte following the opcode.
func (c *CPU) imm8() uint8 {
	return c.bus.Read(c.PC + 1)
}

// imm16 returns the little endian word following the opcode.
func (c *CPU) imm16() uint16 {
	return uint16(c.bus.Read(c.PC+1)) | uint16(c.bus.Read(c.PC+2))<<8
}
