package serial

import "io"

// Device is a device that can be attached to the Controller.
// Bits are exchanged most significant first.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// WriterDevice is a Device that assembles the bits it receives
// into bytes and writes them to an io.Writer. It sends 1 bits,
// as if nothing were connected. Test ROMs use it to report
// their results.
type WriterDevice struct {
	w     io.Writer
	value uint8
	bits  uint8
	err   error
}

// NewWriterDevice returns a WriterDevice writing to w.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{w: w}
}

// Receive shifts in a bit, writing out the byte once 8 have arrived.
func (d *WriterDevice) Receive(bit bool) {
	d.value <<= 1
	if bit {
		d.value |= 1
	}
	d.bits++
	if d.bits == 8 {
		if _, err := d.w.Write([]byte{d.value}); err != nil && d.err == nil {
			d.err = err
		}
		d.value, d.bits = 0, 0
	}
}

// Send always returns true.
func (d *WriterDevice) Send() bool { return true }

// Err returns the first error returned by the underlying writer.
func (d *WriterDevice) Err() error {
	return d.err
}
