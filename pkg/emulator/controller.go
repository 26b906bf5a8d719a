package emulator

// Controller defines the interface contract for a Session, so
// that a front end is able to control it from another goroutine.
type Controller interface {
	Pause()
	Resume()
	Quit()
	Status() Status
}

var _ Controller = (*Session)(nil)
