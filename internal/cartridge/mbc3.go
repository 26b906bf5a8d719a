package cartridge

import (
	"fmt"
	"time"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// MemoryBankedCartridge3 represents a MemoryBankedCartridge3 cartridge. It
// supports up to 2MB of ROM through a 7 bit bank number, 32kB of RAM in
// 4 banks, and a real time clock whose registers share the RAM window.
type MemoryBankedCartridge3 struct {
	*bankedCartridge

	romBank uint8
	ramBank uint8

	// rtcMode redirects the RAM window to the selected clock register.
	rtcMode     bool
	rtcRegister uint8
	rtc         *RTC
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(b *bankedCartridge) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{
		bankedCartridge: b,
		romBank:         1,
		rtc:             newRTC(time.Now),
	}
}

// Read returns the value from the cartridges ROM, depending on the bank
// selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(int(m.romBank), address)
}

// Write attempts to switch the ROM or RAM bank, select a clock register
// or latch the clock.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.setRAMEnabled(value)
	case address < 0x4000:
		m.romBank = utils.ZeroAdjust(value & 0x7F)
	case address < 0x6000:
		switch {
		case value <= 0x03:
			m.ramBank = value
			m.rtcMode = false
		case value >= RTCSeconds && value <= RTCDaysHigh:
			m.rtcRegister = value
			m.rtcMode = true
		}
	case address < 0x8000:
		m.rtc.Latch(value)
	}
}

func (m *MemoryBankedCartridge3) ReadRAM(offset uint16) uint8 {
	if m.rtcMode {
		if !m.ramEnabled {
			return 0xFF
		}
		return m.rtc.Read(m.rtcRegister)
	}
	return m.readRAM(int(m.ramBank), offset)
}

func (m *MemoryBankedCartridge3) WriteRAM(offset uint16, value uint8) {
	if m.rtcMode {
		if m.ramEnabled {
			m.rtc.Write(m.rtcRegister, value)
		}
		return
	}
	m.writeRAM(int(m.ramBank), offset, value)
}

// DumpSavegame saves the RAM, followed by the clock for cartridges that
// have one.
func (m *MemoryBankedCartridge3) DumpSavegame() error {
	if !m.canSave() {
		return nil
	}
	data := append([]byte(nil), m.ram...)
	if m.header.CartridgeType.Timer() {
		trailer, err := m.rtc.MarshalBinary()
		if err != nil {
			return fmt.Errorf("cartridge: dumping clock: %w", err)
		}
		data = append(data, trailer...)
	}
	if len(data) == 0 {
		return nil
	}
	m.dumper.Dump(data)
	return nil
}

// LoadSavegame restores the RAM, and the clock if the save carries
// a trailer after it. Saves without a trailer leave the clock at zero.
func (m *MemoryBankedCartridge3) LoadSavegame() error {
	if !m.canSave() {
		return nil
	}
	data, ok := m.dumper.Load()
	if !ok {
		return nil
	}
	copy(m.ram, data)
	if m.header.CartridgeType.Timer() && len(data) > len(m.ram) {
		if err := m.rtc.UnmarshalBinary(data[len(m.ram):]); err != nil {
			return fmt.Errorf("cartridge: loading clock: %w", err)
		}
	}
	return nil
}
