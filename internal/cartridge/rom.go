package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC. It may carry a single fixed bank of RAM,
// which is always enabled.
type ROMCartridge struct {
	*bankedCartridge
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(b *bankedCartridge) *ROMCartridge {
	b.ramEnabled = true
	return &ROMCartridge{bankedCartridge: b}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	return r.readROM(int(address>>14), address)
}

// Write does nothing, as there is no controller to program.
func (r *ROMCartridge) Write(uint16, uint8) {}

func (r *ROMCartridge) ReadRAM(offset uint16) uint8 {
	return r.readRAM(0, offset)
}

func (r *ROMCartridge) WriteRAM(offset uint16, value uint8) {
	r.writeRAM(0, offset, value)
}
