package types

import "testing"

func TestHardwareRegisters(t *testing.T) {
	var h HardwareRegisters
	var written uint8
	h.RegisterHardware(TIMA, func(v uint8) {
		written = v
	}, func() uint8 {
		return 0x42
	})

	t.Run("registered", func(t *testing.T) {
		if !h.Has(TIMA) {
			t.Fatalf("expected TIMA to be registered")
		}
		if v := h.Read(TIMA); v != 0x42 {
			t.Errorf("expected 0x42, got 0x%02X", v)
		}
		h.Write(TIMA, 0x99)
		if written != 0x99 {
			t.Errorf("expected write of 0x99, got 0x%02X", written)
		}
	})
	t.Run("unregistered", func(t *testing.T) {
		if h.Has(SB) {
			t.Fatalf("expected SB to be unregistered")
		}
		if v := h.Read(SB); v != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", v)
		}
		h.Write(SB, 0x01) // must not panic
	})
	t.Run("HRAM does not alias P1", func(t *testing.T) {
		h.RegisterHardware(P1, nil, func() uint8 { return 0xCF })
		if h.Has(0xFF80) {
			t.Errorf("expected 0xFF80 to be unregistered")
		}
		if v := h.Read(0xFF80); v != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", v)
		}
	})
	t.Run("write only", func(t *testing.T) {
		h.RegisterHardware(BDIS, func(v uint8) {}, nil)
		if v := h.Read(BDIS); v != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", v)
		}
	})
	t.Run("IE does not alias 0xFF7F", func(t *testing.T) {
		h.RegisterHardware(IE, nil, func() uint8 { return 0x1F })
		if h.Has(0xFF7F) {
			t.Errorf("expected 0xFF7F to be unregistered")
		}
		if v := h.Read(IE); v != 0x1F {
			t.Errorf("expected 0x1F, got 0x%02X", v)
		}
	})
}
