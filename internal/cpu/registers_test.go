package cpu

import "testing"

func TestRegisters_Pair(t *testing.T) {
	values := []uint16{0x0000, 0x0001, 0x00FF, 0x0100, 0x1234, 0xABCD, 0xFF00, 0xFFFF}
	for _, p := range []Pair{BC, DE, HL} {
		t.Run(p.String(), func(t *testing.T) {
			r := NewRegisters()
			for _, v := range values {
				r.SetPair(p, v)
				if got := r.Pair(p); got != v {
					t.Errorf("expected 0x%04X, got 0x%04X", v, got)
				}
			}
		})
	}

	t.Run("byte order", func(t *testing.T) {
		r := NewRegisters()
		r.SetPair(DE, 0xBEEF)
		if r.D != 0xBE || r.E != 0xEF {
			t.Errorf("expected D 0xBE E 0xEF, got D 0x%02X E 0x%02X", r.D, r.E)
		}
		r.H, r.L = 0x12, 0x34
		if r.Pair(HL) != 0x1234 {
			t.Errorf("expected HL 0x1234, got 0x%04X", r.Pair(HL))
		}
	})
	t.Run("AF", func(t *testing.T) {
		r := NewRegisters()
		r.SetPair(AF, 0x12FF)
		if r.A != 0x12 {
			t.Errorf("expected A 0x12, got 0x%02X", r.A)
		}
		if r.F != 0xF0 {
			t.Errorf("expected lower nibble of F to be dropped, got 0x%02X", r.F)
		}
		if r.Pair(AF) != 0x12F0 {
			t.Errorf("expected AF 0x12F0, got 0x%04X", r.Pair(AF))
		}
	})
}
