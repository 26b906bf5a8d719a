package cartridge

import (
	"errors"
	"fmt"
	"testing"
)

// newROM returns a ROM image of the given number of 16kB banks. The
// first two bytes of every bank hold its bank number.
func newROM(t Type, banks int, ramCode uint8) []byte {
	rom := make([]byte, banks*romBankSize)
	for i := 0; i < banks; i++ {
		rom[i*romBankSize] = uint8(i)
		rom[i*romBankSize+1] = uint8(i >> 8)
	}
	copy(rom[0x134:], "TESTCART")
	rom[0x147] = uint8(t)
	rom[0x149] = ramCode

	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

// bankOf returns the bank number visible at address.
func bankOf(c Cartridge, address uint16) int {
	return int(c.Read(address)) | int(c.Read(address+1))<<8
}

type fakeDumper struct {
	dumps [][]byte
	save  []byte
}

func (f *fakeDumper) Dump(data []byte) {
	f.dumps = append(f.dumps, data)
}

func (f *fakeDumper) Load() ([]byte, bool) {
	return f.save, f.save != nil
}

func mustNew(t *testing.T, rom []byte, dumper RAMDumper) Cartridge {
	t.Helper()
	c, err := New(rom, dumper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{ROM, "*cartridge.ROMCartridge"},
		{ROMRAMBATT, "*cartridge.ROMCartridge"},
		{MBC1, "*cartridge.MemoryBankedCartridge1"},
		{MBC1RAMBATT, "*cartridge.MemoryBankedCartridge1"},
		{MBC2BATT, "*cartridge.MemoryBankedCartridge2"},
		{MBC3TIMERBATT, "*cartridge.MemoryBankedCartridge3"},
		{MBC3RAM, "*cartridge.MemoryBankedCartridge3"},
		{MBC5, "*cartridge.MemoryBankedCartridge5"},
		{MBC5RUMBLERAMBATT, "*cartridge.MemoryBankedCartridge5"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c := mustNew(t, newROM(tt.typ, 2, 0), nil)
			got := fmt.Sprintf("%T", c)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if c.Header().CartridgeType != tt.typ {
				t.Errorf("expected type %s, got %s", tt.typ, c.Header().CartridgeType)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		for _, typ := range []Type{MMM01, POCKETCAMERA, HUDSONHUC1, 0x04} {
			_, err := New(newROM(typ, 2, 0), nil)
			var typeErr *UnsupportedTypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("0x%02X: expected *UnsupportedTypeError, got %v", uint8(typ), err)
			}
			if typeErr.Type != typ {
				t.Errorf("expected type 0x%02X, got 0x%02X", uint8(typ), uint8(typeErr.Type))
			}
		}
	})
	t.Run("short rom", func(t *testing.T) {
		_, err := New(make([]byte, 0x14F), nil)
		var headerErr *HeaderError
		if !errors.As(err, &headerErr) {
			t.Fatalf("expected *HeaderError, got %v", err)
		}
		if headerErr.Length != 0x14F {
			t.Errorf("expected length 0x14F, got 0x%X", headerErr.Length)
		}
	})
}

func TestHeader(t *testing.T) {
	rom := newROM(MBC3TIMERRAMBATT, 4, 0x03)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "TESTCART" {
		t.Errorf("expected title TESTCART, got %q", h.Title)
	}
	if h.RAMSize != 32*1024 {
		t.Errorf("expected 32kB of RAM, got %d", h.RAMSize)
	}
	if h.Hardware() != "DMG" {
		t.Errorf("expected DMG, got %s", h.Hardware())
	}
	if !ValidChecksum(rom) {
		t.Errorf("expected valid header checksum")
	}
	rom[0x134] = 'X'
	if ValidChecksum(rom) {
		t.Errorf("expected invalid header checksum after modifying title")
	}

	sizes := map[uint8]uint{0x00: 0, 0x01: 2048, 0x02: 8192, 0x03: 32768, 0x04: 131072, 0x05: 65536, 0x06: 0, 0xFF: 0}
	for code, want := range sizes {
		h, _ := ParseHeader(newROM(MBC5RAM, 2, code))
		if h.RAMSize != want {
			t.Errorf("ram code 0x%02X: expected %d bytes, got %d", code, want, h.RAMSize)
		}
	}
}

func TestRAM_Disabled(t *testing.T) {
	for _, typ := range []Type{MBC1RAM, MBC2, MBC3RAM, MBC5RAM} {
		t.Run(typ.String(), func(t *testing.T) {
			c := mustNew(t, newROM(typ, 4, 0x02), nil)
			// enable, write, then disable again
			c.Write(0x0000, 0x0A)
			c.WriteRAM(0x0000, 0x05)
			c.Write(0x0000, 0x00)

			if v := c.ReadRAM(0x0000); v != 0xFF {
				t.Errorf("expected 0xFF while disabled, got 0x%02X", v)
			}
			c.WriteRAM(0x0000, 0x09)
			c.Write(0x0000, 0x0A)
			if v := c.ReadRAM(0x0000); v != 0x05 {
				t.Errorf("expected write while disabled to be dropped, got 0x%02X", v)
			}

			// only 0x0A enables
			c.Write(0x0000, 0x1A)
			if v := c.ReadRAM(0x0000); v != 0xFF {
				t.Errorf("expected 0x1A to disable RAM, got 0x%02X", v)
			}
		})
	}
}

func TestROMCartridge(t *testing.T) {
	c := mustNew(t, newROM(ROMRAM, 2, 0x02), nil)
	c.Write(0x2000, 0x01)
	if bank := bankOf(c, 0x4000); bank != 1 {
		t.Errorf("expected fixed bank 1, got %d", bank)
	}
	c.WriteRAM(0x1FFF, 0x42)
	if v := c.ReadRAM(0x1FFF); v != 0x42 {
		t.Errorf("expected always enabled RAM, got 0x%02X", v)
	}

	empty := mustNew(t, newROM(ROM, 2, 0), nil)
	if v := empty.ReadRAM(0); v != 0xFF {
		t.Errorf("expected 0xFF without RAM, got 0x%02X", v)
	}
}

func TestSavegame(t *testing.T) {
	t.Run("battery", func(t *testing.T) {
		dumper := &fakeDumper{save: []byte{0x11, 0x22}}
		c := mustNew(t, newROM(MBC5RAMBATT, 2, 0x02), dumper)
		if err := c.LoadSavegame(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c.Write(0x0000, 0x0A)
		if v := c.ReadRAM(0x0001); v != 0x22 {
			t.Fatalf("expected loaded save, got 0x%02X", v)
		}

		c.WriteRAM(0x0002, 0x33)
		c.DumpSavegame()
		if len(dumper.dumps) != 1 {
			t.Fatalf("expected 1 dump, got %d", len(dumper.dumps))
		}
		if d := dumper.dumps[0]; len(d) != 8192 || d[0] != 0x11 || d[2] != 0x33 {
			t.Errorf("unexpected dump contents")
		}

		// the dump must be a copy
		c.WriteRAM(0x0002, 0x44)
		if dumper.dumps[0][2] != 0x33 {
			t.Errorf("expected dump to be detached from cartridge RAM")
		}
	})
	t.Run("no battery", func(t *testing.T) {
		dumper := &fakeDumper{save: []byte{0x11}}
		c := mustNew(t, newROM(MBC5RAM, 2, 0x02), dumper)
		c.LoadSavegame()
		c.DumpSavegame()
		c.Write(0x0000, 0x0A)
		if len(dumper.dumps) != 0 || c.ReadRAM(0) != 0 {
			t.Errorf("expected savegame calls to be no-ops")
		}
	})
	t.Run("no dumper", func(t *testing.T) {
		c := mustNew(t, newROM(MBC1RAMBATT, 2, 0x02), nil)
		if err := c.LoadSavegame(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := c.DumpSavegame(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("mbc2", func(t *testing.T) {
		dumper := &fakeDumper{}
		c := mustNew(t, newROM(MBC2BATT, 2, 0), dumper)
		c.DumpSavegame()
		if len(dumper.dumps) != 1 || len(dumper.dumps[0]) != mbc2RAMSize {
			t.Errorf("expected a %d byte dump", mbc2RAMSize)
		}
	})
}
