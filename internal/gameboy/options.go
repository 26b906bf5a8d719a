package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its hardware is assembled.
type Opt func(gb *GameBoy)

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		if log != nil {
			gb.Logger = log
		}
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution starts
// at 0x0000 inside the boot ROM instead of at the cartridge entry
// point.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithRAMDumper attaches the collaborator that persists battery
// backed cartridge RAM.
func WithRAMDumper(d cartridge.RAMDumper) Opt {
	return func(gb *GameBoy) {
		gb.dumper = d
	}
}

// SerialDebugger writes every byte sent over the serial port to w.
// Test ROMs print their results this way.
func SerialDebugger(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}
