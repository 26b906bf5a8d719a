// Package mmu provides a memory management unit for the Game Boy. The
// MMU routes every address of the 64kB address space to exactly one
// backing store, and advances the hardware that raises interrupts.
package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Ticker is implemented by hardware that is advanced by the clock.
// Tick returns the interrupt flags that became pending during the
// given number of cycles.
type Ticker interface {
	Tick(cycles int) uint8
}

// region is the backing store for a range of addresses.
type region struct {
	read  func(address uint16) uint8
	write func(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// regions is indexed by the upper 8 bits of an address. The
	// boundaries of the memory map all fall on 256 byte pages.
	regions [0x100]*region

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM [0x2000]uint8

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM [0x2000]uint8

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam [0xA0]uint8

	// 0xFF00 - 0xFF7F - I/O Registers. Addresses without a
	// registered hardware register are kept as plain bytes.
	registers types.HardwareRegisters
	io        [0x80]uint8

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM [0x7F]uint8

	// 0xFF0F, 0xFFFF - interrupt flag and enable registers
	irq *interrupts.Service

	dma     *DMA
	tickers []Ticker

	Log log.Logger
}

// NewMMU returns a new MMU for the given cartridge.
func NewMMU(cart cartridge.Cartridge, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	m := &MMU{
		Cart: cart,
		Log:  logger,
	}
	m.irq = interrupts.NewService(&m.registers)
	m.dma = NewDMA(m)
	m.init()

	return m
}

func (m *MMU) init() {
	// setup registers
	m.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			// it's assumed any write to this register will disable the boot rom
			if m.bootROM != nil && !m.bootROMDone {
				m.Log.Debugf("boot rom disabled")
			}
			m.bootROMDone = true
		}, types.NoRead)

	rom := &region{read: m.readCart, write: m.Cart.Write}
	vram := &region{
		read:  func(address uint16) uint8 { return m.vRAM[address&0x1FFF] },
		write: func(address uint16, value uint8) { m.vRAM[address&0x1FFF] = value },
	}
	eram := &region{
		read:  func(address uint16) uint8 { return m.Cart.ReadRAM(address - 0xA000) },
		write: func(address uint16, value uint8) { m.Cart.WriteRAM(address-0xA000, value) },
	}
	// the echo covers 0xE000-0xFDFF, which masks onto 0xC000-0xDDFF
	wram := &region{
		read:  func(address uint16) uint8 { return m.wRAM[address&0x1FFF] },
		write: func(address uint16, value uint8) { m.wRAM[address&0x1FFF] = value },
	}
	high := &region{read: m.readHigh, write: m.writeHigh}

	for page := 0x00; page < 0x100; page++ {
		switch {
		case page < 0x80:
			m.regions[page] = rom
		case page < 0xA0:
			m.regions[page] = vram
		case page < 0xC0:
			m.regions[page] = eram
		case page < 0xFE:
			m.regions[page] = wram
		default:
			m.regions[page] = high
		}
	}
}

// SetBootROM maps the boot ROM over 0x0000-0x00FF until it is
// disabled through types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMMapped returns true while the boot ROM overlays the cartridge.
func (m *MMU) BootROMMapped() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// RegisterHardware attaches a hardware register to the I/O block.
func (m *MMU) RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8) {
	m.registers.RegisterHardware(address, write, read)
}

// AttachTicker adds hardware that is advanced on every Step.
func (m *MMU) AttachTicker(t Ticker) {
	m.tickers = append(m.tickers, t)
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if address < 0x100 && m.BootROMMapped() {
		return m.bootROM.Read(address)
	}

	return m.Cart.Read(address)
}

// readHigh handles 0xFE00-0xFFFF: OAM, the unusable area, the I/O
// block, the zero page and IE.
func (m *MMU) readHigh(address uint16) uint8 {
	switch {
	case address < 0xFEA0:
		if m.dma.Active() {
			return 0xFF
		}
		return m.oam[address-0xFE00]
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80, address == types.IE:
		if m.registers.Has(address) {
			return m.registers.Read(address)
		}
		return m.io[address&0x7F]
	default:
		return m.zRAM[address-0xFF80]
	}
}

func (m *MMU) writeHigh(address uint16, value uint8) {
	switch {
	case address < 0xFEA0:
		if !m.dma.Active() {
			m.oam[address-0xFE00] = value
		}
	case address < 0xFF00:
		// unusable
	case address < 0xFF80, address == types.IE:
		if m.registers.Has(address) {
			m.registers.Write(address, value)
			return
		}
		m.io[address&0x7F] = value
	default:
		m.zRAM[address-0xFF80] = value
	}
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.regions[address>>8].read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.regions[address>>8].write(address, value)
}

// Step advances the DMA and every attached Ticker by the given number
// of cycles, and merges the interrupts they raise into IF.
func (m *MMU) Step(cycles int) {
	m.dma.Tick(cycles)
	for _, t := range m.tickers {
		if flags := t.Tick(cycles); flags != 0 {
			m.irq.Request(flags)
		}
	}
}

// Pending returns the interrupts that are both requested and enabled.
func (m *MMU) Pending() uint8 {
	return m.irq.Pending()
}

// ClearInterrupt clears the request bit of the given interrupt.
func (m *MMU) ClearInterrupt(flag uint8) {
	m.irq.Clear(flag)
}

// RequestInterrupt sets the request bit of the given interrupt.
func (m *MMU) RequestInterrupt(flag uint8) {
	m.irq.Request(flag)
}
