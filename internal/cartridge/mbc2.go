package cartridge

import "github.com/thelolagemann/dmgcore/pkg/utils"

// mbc2RAMSize is the number of 4-bit cells built into the controller.
const mbc2RAMSize = 512

// MemoryBankedCartridge2 represents a MemoryBankedCartridge2 cartridge. It
// supports up to 256kB of ROM and has 512x4 bits of RAM built into the
// controller. Bit 8 of the written address decides whether a write to
// 0x0000-0x3FFF sets the RAM enable latch or the ROM bank.
type MemoryBankedCartridge2 struct {
	*bankedCartridge

	romb uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(b *bankedCartridge) *MemoryBankedCartridge2 {
	b.ram = make([]byte, mbc2RAMSize)
	return &MemoryBankedCartridge2{
		bankedCartridge: b,
		romb:            1,
	}
}

// Read returns the value from the cartridges ROM, depending on the bank
// selected.
func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(int(m.romb), address)
}

func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x100 == 0x100 {
		m.romb = utils.ZeroAdjust(value & 0x0F)
	} else {
		m.setRAMEnabled(value)
	}
}

// ReadRAM returns the low nibble stored at offset. The 512 cells are
// echoed through the whole 0xA000-0xBFFF window.
func (m *MemoryBankedCartridge2) ReadRAM(offset uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[offset%mbc2RAMSize] & 0x0F
}

func (m *MemoryBankedCartridge2) WriteRAM(offset uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	m.ram[offset%mbc2RAMSize] = value & 0x0F
}
