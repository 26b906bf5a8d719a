package emulator

// Status represents the status of a Session. It can be one
// of the following:
//
//   - Running
//   - Paused
//   - Stopped
//   - Errored
type Status int32

const (
	// Running represents a Session stepping the machine.
	Running Status = iota
	// Paused represents a Session waiting for CommandResume.
	Paused
	// Stopped represents a Session that has shut down
	// cleanly, or has not started yet.
	Stopped
	// Errored represents a Session that stopped on an
	// unexpected error.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

func (s Status) IsErrored() bool {
	return s == Errored
}
