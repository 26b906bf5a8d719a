package cartridge

import (
	"testing"
	"time"
)

func TestMBC1(t *testing.T) {
	t.Run("zero is one", func(t *testing.T) {
		c := mustNew(t, newROM(MBC1, 32, 0), nil)
		c.Write(0x2000, 0x00)
		if bank := bankOf(c, 0x4000); bank != 1 {
			t.Errorf("expected bank 1 after writing 0x00, got %d", bank)
		}
		c.Write(0x2000, 0x05)
		if bank := bankOf(c, 0x4000); bank != 5 {
			t.Errorf("expected bank 5, got %d", bank)
		}
		c.Write(0x2000, 0xE5)
		if bank := bankOf(c, 0x4000); bank != 5 {
			t.Errorf("expected bank number masked to 5 bits, got %d", bank)
		}
	})
	t.Run("upper bits", func(t *testing.T) {
		c := mustNew(t, newROM(MBC1, 128, 0), nil)
		c.Write(0x2000, 0x01)
		c.Write(0x4000, 0x02)
		if bank := bankOf(c, 0x4000); bank != 0x41 {
			t.Errorf("expected bank 0x41, got 0x%02X", bank)
		}
		if bank := bankOf(c, 0x0000); bank != 0 {
			t.Errorf("expected bank 0 in mode 0, got %d", bank)
		}
		c.Write(0x6000, 0x01)
		if bank := bankOf(c, 0x0000); bank != 0x40 {
			t.Errorf("expected bank 0x40 in mode 1, got 0x%02X", bank)
		}
	})
	t.Run("wrap", func(t *testing.T) {
		c := mustNew(t, newROM(MBC1, 4, 0), nil)
		c.Write(0x2000, 0x06)
		if bank := bankOf(c, 0x4000); bank != 2 {
			t.Errorf("expected bank 6 to wrap to 2, got %d", bank)
		}
	})
	t.Run("ram banking", func(t *testing.T) {
		c := mustNew(t, newROM(MBC1RAM, 4, 0x03), nil)
		c.Write(0x0000, 0x0A)
		c.Write(0x6000, 0x01)
		for bank := uint8(0); bank < 4; bank++ {
			c.Write(0x4000, bank)
			c.WriteRAM(0x0010, 0x30|bank)
		}
		for bank := uint8(0); bank < 4; bank++ {
			c.Write(0x4000, bank)
			if v := c.ReadRAM(0x0010); v != 0x30|bank {
				t.Errorf("bank %d: expected 0x%02X, got 0x%02X", bank, 0x30|bank, v)
			}
		}

		// mode 0 always maps RAM bank 0
		c.Write(0x6000, 0x00)
		if v := c.ReadRAM(0x0010); v != 0x30 {
			t.Errorf("expected RAM bank 0 in mode 0, got 0x%02X", v)
		}
	})
}

func TestMBC2(t *testing.T) {
	c := mustNew(t, newROM(MBC2, 16, 0), nil)

	// bit 8 clear: RAM enable
	c.Write(0x2000, 0x03)
	if bank := bankOf(c, 0x4000); bank != 1 {
		t.Errorf("expected address bit 8 clear to leave bank 1, got %d", bank)
	}
	c.Write(0x0100, 0x03)
	if bank := bankOf(c, 0x4000); bank != 3 {
		t.Errorf("expected bank 3, got %d", bank)
	}
	c.Write(0x2100, 0x00)
	if bank := bankOf(c, 0x4000); bank != 1 {
		t.Errorf("expected bank 0 to select 1, got %d", bank)
	}

	c.Write(0x0000, 0x0A)
	c.WriteRAM(0x0005, 0xAB)
	if v := c.ReadRAM(0x0005); v != 0x0B {
		t.Errorf("expected low nibble 0x0B, got 0x%02X", v)
	}
	if v := c.ReadRAM(0x0205); v != 0x0B {
		t.Errorf("expected RAM echoed every 512 bytes, got 0x%02X", v)
	}
}

// fakeClock returns a controllable clock for the RTC.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func newMBC3(t *testing.T, typ Type, dumper RAMDumper) (*MemoryBankedCartridge3, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := mustNew(t, newROM(typ, 8, 0x03), dumper).(*MemoryBankedCartridge3)
	c.rtc = newRTC(clock.now)
	return c, clock
}

func latch(c Cartridge) {
	c.Write(0x6000, 0x00)
	c.Write(0x6000, 0x01)
}

func TestMBC3(t *testing.T) {
	t.Run("ram gating", func(t *testing.T) {
		c, _ := newMBC3(t, MBC3RAMBATT, nil)
		c.Write(0x0000, 0x0A)
		c.WriteRAM(0x0000, 0x42)
		if v := c.ReadRAM(0x0000); v != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", v)
		}
		c.Write(0x0000, 0x00)
		if v := c.ReadRAM(0x0000); v == 0x42 {
			t.Errorf("expected RAM to be hidden once disabled")
		}
	})
	t.Run("rom bank", func(t *testing.T) {
		c, _ := newMBC3(t, MBC3, nil)
		c.Write(0x2000, 0x00)
		if bank := bankOf(c, 0x4000); bank != 1 {
			t.Errorf("expected bank 1, got %d", bank)
		}
		c.Write(0x2000, 0x85)
		if bank := bankOf(c, 0x4000); bank != 5 {
			t.Errorf("expected 7 bit bank 5, got %d", bank)
		}
	})
	t.Run("rtc select", func(t *testing.T) {
		c, _ := newMBC3(t, MBC3TIMERRAMBATT, nil)
		c.Write(0x0000, 0x0A)
		c.WriteRAM(0x0000, 0x42)

		c.Write(0x4000, RTCDaysLower)
		c.WriteRAM(0x0000, 0x17)
		latch(c)
		if v := c.ReadRAM(0x0000); v != 0x17 {
			t.Errorf("expected days register 0x17, got 0x%02X", v)
		}

		c.Write(0x4000, 0x00)
		if v := c.ReadRAM(0x0000); v != 0x42 {
			t.Errorf("expected RAM bank 0 to be untouched, got 0x%02X", v)
		}
	})
	t.Run("rtc ticks", func(t *testing.T) {
		c, clock := newMBC3(t, MBC3TIMERBATT, nil)
		c.Write(0x0000, 0x0A)

		clock.t = clock.t.Add(26*time.Hour + 3*time.Minute + 7*time.Second)
		latch(c)
		want := map[uint8]uint8{RTCSeconds: 7, RTCMinutes: 3, RTCHours: 2, RTCDaysLower: 1, RTCDaysHigh: 0}
		for reg, v := range want {
			c.Write(0x4000, reg)
			if got := c.ReadRAM(0); got != v {
				t.Errorf("register 0x%02X: expected %d, got %d", reg, v, got)
			}
		}

		// latched values stay until the next latch
		clock.t = clock.t.Add(10 * time.Second)
		c.Write(0x4000, RTCSeconds)
		if got := c.ReadRAM(0); got != 7 {
			t.Errorf("expected latched seconds 7, got %d", got)
		}
		latch(c)
		if got := c.ReadRAM(0); got != 17 {
			t.Errorf("expected seconds 17 after relatch, got %d", got)
		}
	})
	t.Run("rtc halt and carry", func(t *testing.T) {
		c, clock := newMBC3(t, MBC3TIMERBATT, nil)
		c.Write(0x0000, 0x0A)
		c.Write(0x4000, RTCDaysHigh)
		c.WriteRAM(0, rtcHalt)

		clock.t = clock.t.Add(time.Hour)
		latch(c)
		c.Write(0x4000, RTCHours)
		if got := c.ReadRAM(0); got != 0 {
			t.Errorf("expected halted clock to stay at 0 hours, got %d", got)
		}

		c.Write(0x4000, RTCDaysHigh)
		c.WriteRAM(0, 0x01)
		c.Write(0x4000, RTCDaysLower)
		c.WriteRAM(0, 0xFF)
		clock.t = clock.t.Add(24 * time.Hour)
		latch(c)
		c.Write(0x4000, RTCDaysHigh)
		if got := c.ReadRAM(0); got != rtcDayCarry {
			t.Errorf("expected day carry with day 0, got 0x%02X", got)
		}
	})
	t.Run("savegame", func(t *testing.T) {
		dumper := &fakeDumper{}
		c, clock := newMBC3(t, MBC3TIMERRAMBATT, dumper)
		c.Write(0x0000, 0x0A)
		c.WriteRAM(0x0000, 0x99)
		c.Write(0x4000, RTCMinutes)
		c.WriteRAM(0x0000, 30)
		if err := c.DumpSavegame(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dumper.dumps) != 1 || len(dumper.dumps[0]) != 32*1024+rtcSaveSize {
			t.Fatalf("expected RAM plus clock trailer")
		}

		dumper.save = dumper.dumps[0]
		restored, _ := newMBC3(t, MBC3TIMERRAMBATT, dumper)
		restored.rtc.now = func() time.Time { return clock.t.Add(5 * time.Minute) }
		if err := restored.LoadSavegame(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		restored.Write(0x0000, 0x0A)
		if v := restored.ReadRAM(0x0000); v != 0x99 {
			t.Errorf("expected restored RAM, got 0x%02X", v)
		}
		restored.Write(0x4000, RTCMinutes)
		latch(restored)
		if v := restored.ReadRAM(0x0000); v != 35 {
			t.Errorf("expected clock to advance while off, got %d minutes", v)
		}
	})
	t.Run("truncated trailer", func(t *testing.T) {
		dumper := &fakeDumper{save: make([]byte, 32*1024+rtcSaveSize/2)}
		c, _ := newMBC3(t, MBC3TIMERRAMBATT, dumper)
		if err := c.LoadSavegame(); err == nil {
			t.Errorf("expected an error for a short clock trailer")
		}

		// RAM only saves from other emulators load with a stopped clock
		dumper.save = make([]byte, 32*1024)
		if err := c.LoadSavegame(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("no timer trailer", func(t *testing.T) {
		dumper := &fakeDumper{}
		c, _ := newMBC3(t, MBC3RAMBATT, dumper)
		c.DumpSavegame()
		if len(dumper.dumps[0]) != 32*1024 {
			t.Errorf("expected RAM only, got %d bytes", len(dumper.dumps[0]))
		}
	})
}

func TestMBC5(t *testing.T) {
	c := mustNew(t, newROM(MBC5RAM, 0x102, 0x04), nil)
	c.Write(0x2000, 0x00)
	if bank := bankOf(c, 0x4000); bank != 0 {
		t.Errorf("expected bank 0 with no zero-is-one rule, got %d", bank)
	}
	c.Write(0x2000, 0x01)
	c.Write(0x3000, 0x01)
	if bank := bankOf(c, 0x4000); bank != 0x101 {
		t.Errorf("expected 9 bit bank 0x101, got 0x%03X", bank)
	}
	c.Write(0x3000, 0xFE)
	if bank := bankOf(c, 0x4000); bank != 0x001 {
		t.Errorf("expected only bit 0 of the high write, got 0x%03X", bank)
	}

	c.Write(0x0000, 0x0A)
	for bank := uint8(0); bank < 16; bank++ {
		c.Write(0x4000, bank)
		c.WriteRAM(0x1FFF, bank)
	}
	c.Write(0x4000, 0x03)
	if v := c.ReadRAM(0x1FFF); v != 3 {
		t.Errorf("expected RAM bank 3, got %d", v)
	}
	c.Write(0x4000, 0x13)
	if v := c.ReadRAM(0x1FFF); v != 3 {
		t.Errorf("expected RAM bank masked to 4 bits, got %d", v)
	}
}
