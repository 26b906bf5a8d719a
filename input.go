package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

var buttons = map[string]joypad.Button{
	"a":      joypad.ButtonA,
	"b":      joypad.ButtonB,
	"select": joypad.ButtonSelect,
	"start":  joypad.ButtonStart,
	"right":  joypad.ButtonRight,
	"left":   joypad.ButtonLeft,
	"up":     joypad.ButtonUp,
	"down":   joypad.ButtonDown,
}

// readInput reads one command per line from r until it is exhausted
// or the session stops:
//
//	press <button>   hold a button down
//	release <button> let go of a button
//	pause, resume, quit
func readInput(r io.Reader, c emulator.Controller, pad *joypad.State, logger log.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		quit, err := handleInput(scanner.Text(), c, pad)
		if err != nil {
			logger.Errorf("input: %v", err)
		}
		if quit {
			return
		}
	}
}

// handleInput applies a single line of input, and returns true if
// the session was told to quit.
func handleInput(line string, c emulator.Controller, pad *joypad.State) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "press", "release":
		if len(fields) != 2 {
			return false, fmt.Errorf("%s needs a button", fields[0])
		}
		b, ok := buttons[fields[1]]
		if !ok {
			return false, fmt.Errorf("unknown button %q", fields[1])
		}
		if fields[0] == "press" {
			pad.Press(b)
		} else {
			pad.Release(b)
		}
	case "pause":
		c.Pause()
	case "resume":
		c.Resume()
	case "quit":
		c.Quit()
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
	return false, nil
}
