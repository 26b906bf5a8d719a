package mmu

import "github.com/thelolagemann/dmgcore/internal/types"

// dmaLength is the number of bytes copied into OAM by a transfer.
const dmaLength = 0xA0

// DMA is the OAM DMA controller. Writing the upper byte of a source
// address to types.DMA copies 160 bytes from that address into OAM,
// one byte every 4 cycles. OAM reads as 0xFF while a transfer runs.
type DMA struct {
	enabled bool

	timer  int
	source uint16
	value  uint8

	m *MMU
}

// NewDMA returns a new DMA controller attached to the MMU.
func NewDMA(m *MMU) *DMA {
	d := &DMA{m: m}
	m.RegisterHardware(
		types.DMA,
		func(v uint8) {
			d.value = v
			d.source = uint16(v) << 8
			d.timer = 0
			d.enabled = true
		},
		func() uint8 {
			return d.value
		},
	)
	return d
}

// Active returns true while a transfer is in progress.
func (d *DMA) Active() bool {
	return d.enabled
}

// Tick advances the transfer by the given number of cycles.
func (d *DMA) Tick(cycles int) {
	for i := 0; i < cycles && d.enabled; i++ {
		d.timer++

		// every 4 ticks, transfer a byte
		if d.timer%4 != 0 {
			continue
		}
		offset := uint16(d.timer-4) >> 2
		source := d.source + offset
		// sources above 0xDFFF read the work RAM underneath
		if source >= 0xE000 {
			source &^= 0x2000
		}
		// write directly to OAM, as the bus is locked
		d.m.oam[offset] = d.m.Read(source)

		if offset == dmaLength-1 {
			d.enabled = false
			d.timer = 0
		}
	}
}
