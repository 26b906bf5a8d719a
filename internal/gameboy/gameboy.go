// Package gameboy provides an emulation of a Nintendo Game Boy (DMG).
// It assembles the CPU, the memory bus, the cartridge and the
// hardware that raises interrupts, and steps them one instruction
// at a time.
package gameboy

import (
	"fmt"
	"io"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/lcd"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = lcd.CyclesPerFrame // 70224
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU    *cpu.CPU
	MMU    *mmu.MMU
	LCD    *lcd.Controller
	Timer  *timer.Controller
	Serial *serial.Controller

	// Joypad is written by the input thread; the emulation samples
	// it once per Step.
	Joypad *joypad.State
	pad    *joypad.Controller

	log.Logger

	bootROM   []byte
	dumper    cartridge.RAMDumper
	serialOut io.Writer
	device    *serial.WriterDevice

	cycles uint64
}

// NewGameBoy returns a new GameBoy running the given ROM. Any battery
// save held by the RAMDumper given through WithRAMDumper is loaded
// before the first step.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Joypad: &joypad.State{},
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom, g.dumper)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	if err := cart.LoadSavegame(); err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	g.Infof("cartridge: %s", cart.Header())
	if !cartridge.ValidChecksum(rom) {
		g.Debugf("cartridge: header checksum mismatch")
	}

	g.MMU = mmu.NewMMU(cart, g.Logger)
	g.Timer = timer.NewController(g.MMU)
	g.LCD = lcd.NewController(g.MMU)
	g.Serial = serial.NewController(g.MMU)
	g.pad = joypad.NewController(g.MMU)
	g.MMU.AttachTicker(g.Timer)
	g.MMU.AttachTicker(g.LCD)
	g.MMU.AttachTicker(g.Serial)
	if g.serialOut != nil {
		g.device = serial.NewWriterDevice(g.serialOut)
		g.Serial.Attach(g.device)
	}

	g.CPU = cpu.NewCPU(g.MMU)
	if g.bootROM != nil {
		b, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.Infof("boot rom: %s", b.Model())
		g.MMU.SetBootROM(b)
	} else {
		// start at 0x100 with the registers set to the values
		// upon completion of the boot ROM
		g.CPU.SkipBoot()
		g.skipBoot()
	}

	return g, nil
}

// skipBoot sets the I/O registers to the state the DMG boot ROM
// leaves them in.
func (g *GameBoy) skipBoot() {
	for _, r := range []struct {
		address types.HardwareAddress
		value   uint8
	}{
		{types.P1, 0xCF},
		{types.TAC, 0xF8},
		{types.IF, 0xE1},
		{types.LCDC, 0x91},
		{types.BGP, 0xFC},
		{types.OBP0, 0xFF},
		{types.OBP1, 0xFF},
		{types.BDIS, 0x01},
	} {
		g.MMU.Write(r.address, r.value)
	}
}

// Step samples the joypad, then executes a single instruction and
// returns the number of cycles it took. A *cpu.DecodeError leaves the
// machine untouched; call Skip to step over the byte.
func (g *GameBoy) Step() (int, error) {
	if irq := g.pad.Update(g.Joypad.Snapshot()); irq != 0 {
		g.MMU.RequestInterrupt(irq)
	}

	cycles, err := g.CPU.Step()
	g.cycles += uint64(cycles)
	return cycles, err
}

// RunCycles steps until at least the given number of cycles have
// elapsed, returning the number of cycles actually run.
func (g *GameBoy) RunCycles(cycles int) (int, error) {
	ran := 0
	for ran < cycles {
		n, err := g.Step()
		ran += n
		if err != nil {
			return ran, err
		}
	}
	return ran, nil
}

// Skip advances the program counter over the byte at PC.
func (g *GameBoy) Skip() {
	g.CPU.Skip()
}

// Cycles returns the number of cycles run since power on.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Header returns the header of the inserted cartridge.
func (g *GameBoy) Header() cartridge.Header {
	return g.MMU.Cart.Header()
}

// DumpSavegame hands battery backed RAM to the RAMDumper.
func (g *GameBoy) DumpSavegame() error {
	return g.MMU.Cart.DumpSavegame()
}

// SerialErr returns the first error from the serial output writer.
func (g *GameBoy) SerialErr() error {
	if g.device == nil {
		return nil
	}
	return g.device.Err()
}
