package types

// Bit masks for single bits of a byte, used throughout the
// hardware registers.
const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// IsBitSet returns true if the given bit mask is set in v.
func IsBitSet(v, mask uint8) bool {
	return v&mask == mask
}
