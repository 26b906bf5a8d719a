package cartridge

import (
	"encoding/binary"
	"fmt"
	"time"
)

// RTC register selectors, as written to 0x4000-0x5FFF.
const (
	RTCSeconds uint8 = 0x08 + iota
	RTCMinutes
	RTCHours
	RTCDaysLower
	RTCDaysHigh
)

const (
	rtcHalt      = 1 << 6
	rtcDayCarry  = 1 << 7
	rtcSaveSize  = 48
	secondsInDay = 24 * 60 * 60
)

var rtcMasks = [5]uint8{0x3F, 0x3F, 0x1F, 0xFF, 0xC1}

// RTC is the real time clock of an MBC3 cartridge. The live registers
// advance with the wall clock, and the game reads a copy that is
// latched by writing 0 then 1 to 0x6000-0x7FFF.
type RTC struct {
	registers [5]uint8
	latched   [5]uint8
	latch     uint8

	lastUpdate time.Time
	now        func() time.Time
}

func newRTC(now func() time.Time) *RTC {
	return &RTC{
		latch:      0xFF,
		lastUpdate: now(),
		now:        now,
	}
}

func (r *RTC) halted() bool {
	return r.registers[4]&rtcHalt != 0
}

// update advances the live registers by the whole seconds elapsed since
// the last update. A halted clock only moves its reference point.
func (r *RTC) update() {
	t := r.now()
	if r.halted() {
		r.lastUpdate = t
		return
	}
	elapsed := int64(t.Sub(r.lastUpdate) / time.Second)
	if elapsed <= 0 {
		return
	}
	r.lastUpdate = r.lastUpdate.Add(time.Duration(elapsed) * time.Second)
	r.advance(elapsed)
}

func (r *RTC) advance(seconds int64) {
	days := int64(r.registers[3]) | int64(r.registers[4]&0x01)<<8
	total := int64(r.registers[0]) + int64(r.registers[1])*60 + int64(r.registers[2])*3600 +
		days*secondsInDay + seconds

	days = total / secondsInDay
	if days > 0x1FF {
		r.registers[4] |= rtcDayCarry
		days %= 0x200
	}
	total %= secondsInDay

	r.registers[0] = uint8(total % 60)
	r.registers[1] = uint8(total / 60 % 60)
	r.registers[2] = uint8(total / 3600)
	r.registers[3] = uint8(days)
	r.registers[4] = r.registers[4]&^0x01 | uint8(days>>8)&0x01
}

// Latch copies the live registers into the readable set on a 0 to 1
// transition of the written value.
func (r *RTC) Latch(value uint8) {
	if r.latch == 0x00 && value == 0x01 {
		r.update()
		r.latched = r.registers
	}
	r.latch = value
}

// Read returns the latched value of the selected register.
func (r *RTC) Read(register uint8) uint8 {
	if register < RTCSeconds || register > RTCDaysHigh {
		return 0xFF
	}
	return r.latched[register-RTCSeconds]
}

// Write sets the live value of the selected register.
func (r *RTC) Write(register, value uint8) {
	if register < RTCSeconds || register > RTCDaysHigh {
		return
	}
	r.update()
	i := register - RTCSeconds
	r.registers[i] = value & rtcMasks[i]
	if register == RTCSeconds {
		// writing seconds resets the sub-second counter
		r.lastUpdate = r.now()
	}
}

// MarshalBinary encodes the clock in the 48 byte trailer appended to
// battery saves: the five live and five latched registers as
// little-endian uint32s, then the unix time of the last update.
func (r *RTC) MarshalBinary() ([]byte, error) {
	r.update()
	b := make([]byte, rtcSaveSize)
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(r.registers[i]))
		binary.LittleEndian.PutUint32(b[20+i*4:], uint32(r.latched[i]))
	}
	binary.LittleEndian.PutUint64(b[40:], uint64(r.lastUpdate.Unix()))
	return b, nil
}

// UnmarshalBinary restores the clock from a save trailer and advances
// it by the time that has passed since the save was written.
func (r *RTC) UnmarshalBinary(b []byte) error {
	if len(b) < rtcSaveSize {
		return fmt.Errorf("cartridge: rtc trailer of %d bytes, want %d", len(b), rtcSaveSize)
	}
	for i := 0; i < 5; i++ {
		r.registers[i] = uint8(binary.LittleEndian.Uint32(b[i*4:])) & rtcMasks[i]
		r.latched[i] = uint8(binary.LittleEndian.Uint32(b[20+i*4:])) & rtcMasks[i]
	}
	r.lastUpdate = time.Unix(int64(binary.LittleEndian.Uint64(b[40:])), 0)
	r.update()
	return nil
}
