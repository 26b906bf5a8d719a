package cpu

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The high register holds the most significant byte.
type RegisterPair struct {
	High *Register
	Low  *Register

	// lowMask is applied to the low register on writes. Only the
	// AF pair uses it, as the lower nibble of F is always zero.
	lowMask uint8
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.lowMask
}

// Pair identifies one of the 16-bit register pairs.
type Pair uint8

const (
	BC Pair = iota
	DE
	HL
	AF
)

func (p Pair) String() string {
	switch p {
	case BC:
		return "BC"
	case DE:
		return "DE"
	case HL:
		return "HL"
	case AF:
		return "AF"
	}
	return "??"
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// NewRegisters returns a zeroed register file with its pairs wired.
func NewRegisters() *Registers {
	r := &Registers{}
	r.wirePairs()
	return r
}

// wirePairs points the register pairs at the 8-bit registers. It
// must be called once the Registers have a stable address.
func (r *Registers) wirePairs() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, lowMask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, lowMask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, lowMask: 0xFF}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, lowMask: 0xF0}
}

// Pair returns the 16-bit value of the given register pair.
func (r *Registers) Pair(p Pair) uint16 {
	return r.pair(p).Uint16()
}

// SetPair sets the 16-bit value of the given register pair. Writes
// to AF drop the lower nibble of F.
func (r *Registers) SetPair(p Pair, value uint16) {
	r.pair(p).SetUint16(value)
}

func (r *Registers) pair(p Pair) *RegisterPair {
	switch p {
	case BC:
		return r.BC
	case DE:
		return r.DE
	case HL:
		return r.HL
	default:
		return r.AF
	}
}

// registerNames maps the 3-bit register index used by the
// instruction encoding to a readable name.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// get8 returns the value of the register with the given index, as
// encoded in bits 0-2 or 3-5 of an opcode. Index 6 reads the byte
// pointed to by HL.
func (c *CPU) get8(index uint8) uint8 {
	switch index & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.bus.Read(c.HL.Uint16())
	default:
		return c.A
	}
}

// set8 sets the register with the given index. Index 6 writes the
// byte pointed to by HL.
func (c *CPU) set8(index uint8, value uint8) {
	switch index & 7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.bus.Write(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}
