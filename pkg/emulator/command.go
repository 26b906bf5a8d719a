package emulator

// Command is a command that is sent to a Session to
// control it.
type Command int

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose saves the game, closes the audio player
	// and stops the emulator.
	CommandClose
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	default:
		return "Unknown"
	}
}
