package types

// HardwareRegisters is a table of hardware registers, which
// can be read and written to. The table is indexed by the
// address of the hardware register ANDed with 0x007F, with
// the IE register (0xFFFF) taking slot 0x7F.
//
// Each bus owns its own table, so that multiple instances of
// the emulator can run side by side.
type HardwareRegisters [0x80]*HardwareRegister

// Registrar is implemented by anything that hardware registers
// can be attached to.
type Registrar interface {
	RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8)
}

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware registers are used to control and read the
// state of the hardware.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// RegisterHardware registers a hardware register with the given
// address and read/write functions. The read and write functions
// may be nil, in which case NoRead or NoWrite is used.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	if write == nil {
		write = NoWrite
	}
	if read == nil {
		read = NoRead
	}
	h[index(address)] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// Has returns true if a hardware register has been registered
// for the given address.
func (h *HardwareRegisters) Has(address uint16) bool {
	r := h[index(address)]
	return r != nil && r.address == address
}

// Read returns the value of the hardware register for
// the given address. If no hardware register exists, it
// returns 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	if !h.Has(address) {
		return 0xFF
	}
	return h[index(address)].read()
}

// Write writes the given value to the hardware register
// for the given address. If no hardware register exists,
// it does nothing.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if !h.Has(address) {
		return
	}
	h[index(address)].write(value)
}

func index(address uint16) uint16 {
	// as the table is indexed by the address ANDed with 0x007F,
	// the IE register lands on slot 0x7F, which is otherwise
	// unused (0xFF7F is never a hardware register)
	return address & 0x007F
}

// NoRead is a read function that always returns 0xFF. This is
// useful for hardware registers that are not readable.
func NoRead() uint8 {
	return 0xFF
}

// NoWrite is a write function that does nothing. This is useful
// for hardware registers that are not writable.
func NoWrite(v uint8) {}
