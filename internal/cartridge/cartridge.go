// Package cartridge provides a Cartridge interface for the DMG.
// The cartridge holds the game ROM, any external RAM and the memory
// bank controller that maps them into the address space.
package cartridge

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Cartridge represents a game cartridge. Read and Write cover the ROM
// region 0x0000-0x7FFF, where writes program the bank controller.
// ReadRAM and WriteRAM take an offset into the external RAM window
// (address - 0xA000).
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	ReadRAM(offset uint16) uint8
	WriteRAM(offset uint16, value uint8)

	// DumpSavegame hands battery backed RAM to the attached
	// RAMDumper. It does nothing for cartridges without a battery.
	DumpSavegame() error
	// LoadSavegame restores battery backed RAM from the attached
	// RAMDumper, if it has any data.
	LoadSavegame() error

	Header() Header
}

// RAMDumper persists battery backed RAM on behalf of a cartridge.
// Dump is fire and forget; Load reports false when there is no save.
type RAMDumper interface {
	Dump(data []byte)
	Load() ([]byte, bool)
}

// UnsupportedTypeError is returned by New for a cartridge type byte
// that does not map to a known memory bank controller.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cartridge: unsupported cartridge type 0x%02X (%s)", uint8(e.Type), e.Type)
}

// New parses the header of rom and returns the Cartridge implementation
// selected by the cartridge type byte at 0x147. dumper may be nil.
func New(rom []byte, dumper RAMDumper) (Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	base := newBankedCartridge(rom, header, dumper)
	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(base), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(base), nil
	case MBC2, MBC2BATT:
		return NewMemoryBankedCartridge2(base), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return NewMemoryBankedCartridge3(base), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return NewMemoryBankedCartridge5(base), nil
	}

	return nil, &UnsupportedTypeError{Type: header.CartridgeType}
}

// bankedCartridge holds the state shared by every controller: the ROM
// and RAM buffers, the RAM enable latch and the save collaborator.
type bankedCartridge struct {
	rom, ram   []byte
	ramEnabled bool

	header Header
	dumper RAMDumper
}

func newBankedCartridge(rom []byte, header Header, dumper RAMDumper) *bankedCartridge {
	return &bankedCartridge{
		rom:    rom,
		ram:    make([]byte, header.RAMSize),
		header: header,
		dumper: dumper,
	}
}

func (b *bankedCartridge) Header() Header {
	return b.header
}

// setRAMEnabled enables RAM only on a write of exactly 0x0A.
func (b *bankedCartridge) setRAMEnabled(value uint8) {
	b.ramEnabled = value == 0x0A
}

// readROM returns the byte at address within the given 16kB bank,
// wrapping the bank into the size of the ROM.
func (b *bankedCartridge) readROM(bank int, address uint16) uint8 {
	return b.rom[utils.Wrap(bank*romBankSize+int(address&0x3FFF), len(b.rom))]
}

// readRAM returns the byte at offset within the given 8kB bank, or
// 0xFF if RAM is disabled or absent.
func (b *bankedCartridge) readRAM(bank int, offset uint16) uint8 {
	if !b.ramEnabled || len(b.ram) == 0 {
		return 0xFF
	}
	return b.ram[utils.Wrap(bank*ramBankSize+int(offset&0x1FFF), len(b.ram))]
}

func (b *bankedCartridge) writeRAM(bank int, offset uint16, value uint8) {
	if !b.ramEnabled || len(b.ram) == 0 {
		return
	}
	b.ram[utils.Wrap(bank*ramBankSize+int(offset&0x1FFF), len(b.ram))] = value
}

// canSave reports whether the cartridge has anything to persist.
func (b *bankedCartridge) canSave() bool {
	return b.dumper != nil && b.header.CartridgeType.Battery()
}

func (b *bankedCartridge) DumpSavegame() error {
	if !b.canSave() || len(b.ram) == 0 {
		return nil
	}
	b.dumper.Dump(append([]byte(nil), b.ram...))
	return nil
}

func (b *bankedCartridge) LoadSavegame() error {
	if !b.canSave() {
		return nil
	}
	if data, ok := b.dumper.Load(); ok {
		copy(b.ram, data)
	}
	return nil
}
