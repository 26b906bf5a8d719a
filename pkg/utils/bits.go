package utils

// SetBit returns value with the given bit set.
func SetBit(value uint8, bit uint8) uint8 {
	return value | (1 << bit)
}

// ClearBit returns value with the given bit cleared.
func ClearBit(value uint8, bit uint8) uint8 {
	return value &^ (1 << bit)
}

// TestBit returns true if the bit is set, false otherwise.
func TestBit(value uint8, bit uint8) bool {
	return value&(1<<bit) != 0
}

// FallingEdge returns true if the given bit went from 1 in
// before to 0 in after.
func FallingEdge(before, after uint8, bit uint8) bool {
	return TestBit(before, bit) && !TestBit(after, bit)
}
