package cpu

import "testing"

func TestCPU_LoadStackPointer(t *testing.T) {
	c, bus := newTestCPU(0x08, 0x00, 0xC1)
	c.SP = 0xFFF8
	if cycles := mustStep(t, c); cycles != 20 {
		t.Errorf("expected 20 cycles, got %d", cycles)
	}
	if bus.mem[0xC100] != 0xF8 || bus.mem[0xC101] != 0xFF {
		t.Errorf("expected 0xF8 0xFF at 0xC100, got 0x%02X 0x%02X", bus.mem[0xC100], bus.mem[0xC101])
	}
	if c.PC != 0x0103 {
		t.Errorf("expected PC 0x0103, got 0x%04X", c.PC)
	}
}

func TestCPU_LoadHigh(t *testing.T) {
	t.Run("LDH (a8), A", func(t *testing.T) {
		c, bus := newTestCPU(0xE0, 0x80)
		c.A = 0x42
		if cycles := mustStep(t, c); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if bus.mem[0xFF80] != 0x42 {
			t.Errorf("expected 0x42 at 0xFF80, got 0x%02X", bus.mem[0xFF80])
		}
		if c.PC != 0x0102 {
			t.Errorf("expected PC 0x0102, got 0x%04X", c.PC)
		}
	})
	t.Run("LDH A, (a8)", func(t *testing.T) {
		c, bus := newTestCPU(0xF0, 0x85)
		bus.mem[0xFF85] = 0x99
		if cycles := mustStep(t, c); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if c.A != 0x99 {
			t.Errorf("expected A 0x99, got 0x%02X", c.A)
		}
	})
	t.Run("LDH A, (IF)", func(t *testing.T) {
		c, bus := newTestCPU(0xF0, 0x0F)
		bus.flag = 0x04
		mustStep(t, c)
		if c.A != 0xE4 {
			t.Errorf("expected A 0xE4, got 0x%02X", c.A)
		}
	})
}
