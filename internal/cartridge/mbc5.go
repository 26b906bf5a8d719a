package cartridge

// MemoryBankedCartridge5 represents a MemoryBankedCartridge5 cartridge. It
// supports up to 8MB of ROM through a 9 bit bank number and 128kB of RAM
// through a 4 bit bank number. Unlike MBC1, bank 0 may be mapped into
// 0x4000-0x7FFF.
type MemoryBankedCartridge5 struct {
	*bankedCartridge

	romBank uint16
	ramBank uint8
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(b *bankedCartridge) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		bankedCartridge: b,
		romBank:         1,
	}
}

func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(int(m.romBank), address)
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		m.ramBank = value & 0x0F
	}
}

func (m *MemoryBankedCartridge5) ReadRAM(offset uint16) uint8 {
	return m.readRAM(int(m.ramBank), offset)
}

func (m *MemoryBankedCartridge5) WriteRAM(offset uint16, value uint8) {
	m.writeRAM(int(m.ramBank), offset, value)
}
