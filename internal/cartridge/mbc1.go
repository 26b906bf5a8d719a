package cartridge

import "github.com/thelolagemann/dmgcore/pkg/utils"

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This
// cartridge type supports up to 2MB of ROM and 32kB of RAM.
//
// The controller has two bank registers. BANK1 holds the low 5 bits of
// the ROM bank, and a write of 0 selects 1. BANK2 holds 2 bits which are
// either the upper bits of the ROM bank or, in mode 1, the RAM bank.
type MemoryBankedCartridge1 struct {
	*bankedCartridge

	bank1 uint8
	bank2 uint8
	mode  uint8
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(b *bankedCartridge) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		bankedCartridge: b,
		bank1:           1,
	}
}

// Read returns the value from the cartridges ROM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	if address < 0x4000 {
		// in mode 1 BANK2 also applies to the lower region
		if m.mode == 1 {
			return m.readROM(int(m.bank2)<<5, address)
		}
		return m.readROM(0, address)
	}
	return m.readROM(m.romBank(), address)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		m.bank1 = utils.ZeroAdjust(value & 0x1F)
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value & 0x01
	}
}

func (m *MemoryBankedCartridge1) ReadRAM(offset uint16) uint8 {
	return m.readRAM(m.ramBank(), offset)
}

func (m *MemoryBankedCartridge1) WriteRAM(offset uint16, value uint8) {
	m.writeRAM(m.ramBank(), offset, value)
}

// romBank returns the bank mapped to 0x4000-0x7FFF.
func (m *MemoryBankedCartridge1) romBank() int {
	return int(m.bank2)<<5 | int(m.bank1)
}

// ramBank returns the bank mapped to 0xA000-0xBFFF.
func (m *MemoryBankedCartridge1) ramBank() int {
	if m.mode == 1 {
		return int(m.bank2)
	}
	return 0
}
