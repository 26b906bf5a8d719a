// Package emulator provides the host loop that runs a machine on its
// own goroutine and the collaborators it shuts down on Quit.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/audio"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Machine is the emulated hardware driven by a Session. A
// *gameboy.GameBoy satisfies it.
type Machine interface {
	Step() (int, error)
	Skip()
	DumpSavegame() error
}

// Session runs a Machine until it is told to quit. Commands are
// taken between steps, never during one.
type Session struct {
	machine Machine
	player  audio.Player
	saves   *Saves

	commands chan Command
	done     chan struct{}
	status   atomic.Int32

	log         log.Logger
	speed       float64
	skipIllegal bool
	paused      bool
}

// Option configures a Session.
type Option func(s *Session)

// WithLogger sets the logger of the session.
func WithLogger(l log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPlayer sets the audio player closed on shutdown.
func WithPlayer(p audio.Player) Option {
	return func(s *Session) {
		s.player = p
	}
}

// WithSaves reports the errors of the save files written on
// shutdown.
func WithSaves(saves *Saves) Option {
	return func(s *Session) {
		s.saves = saves
	}
}

// MaxSpeed is the highest clock multiplier a Session paces at.
const MaxSpeed = 64

// WithSpeed sets the clock multiplier, limited to [0, MaxSpeed].
// 0 runs unthrottled.
func WithSpeed(speed float64) Option {
	return func(s *Session) {
		s.speed = utils.Clamp(0, speed, MaxSpeed)
	}
}

// SkipIllegal logs undecodable opcodes and steps over them instead
// of stopping.
func SkipIllegal(skip bool) Option {
	return func(s *Session) {
		s.skipIllegal = skip
	}
}

// NewSession returns a session for m. It does nothing until Run.
func NewSession(m Machine, opts ...Option) *Session {
	s := &Session{
		machine:  m,
		commands: make(chan Command, 8),
		done:     make(chan struct{}),
		log:      log.NewNullLogger(),
		speed:    1,
	}
	s.setStatus(Stopped)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send delivers a command to the running session. It returns false
// once the session has stopped.
func (s *Session) Send(cmd Command) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.commands <- cmd:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) Pause()  { s.Send(CommandPause) }
func (s *Session) Resume() { s.Send(CommandResume) }
func (s *Session) Quit()   { s.Send(CommandClose) }

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Status returns the status of the session.
func (s *Session) Status() Status {
	return Status(s.status.Load())
}

func (s *Session) setStatus(status Status) {
	s.status.Store(int32(status))
}

// Run steps the machine until CommandClose is received, ctx is
// cancelled or the machine fails. On the way out the savegame is
// dumped and then the audio player is closed, in that order.
//
// Run may only be called once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	if s.player != nil {
		s.player.Play()
	}
	s.setStatus(Running)

	var (
		frameCycles int
		next        = time.Now()
	)
	for {
		// take every command queued since the last step
		for drained := false; !drained; {
			select {
			case <-ctx.Done():
				return s.shutdown(nil)
			case cmd := <-s.commands:
				if s.handle(cmd) {
					return s.shutdown(nil)
				}
			default:
				drained = true
			}
		}

		if s.paused {
			select {
			case <-ctx.Done():
				return s.shutdown(nil)
			case cmd := <-s.commands:
				if s.handle(cmd) {
					return s.shutdown(nil)
				}
			}
			next = time.Now()
			continue
		}

		cycles, err := s.machine.Step()
		if err != nil {
			var decodeErr *cpu.DecodeError
			if s.skipIllegal && errors.As(err, &decodeErr) {
				s.log.Errorf("skipping: %v", err)
				s.machine.Skip()
				continue
			}
			s.setStatus(Errored)
			return s.shutdown(err)
		}

		frameCycles += cycles
		if s.speed > 0 && frameCycles >= gameboy.CyclesPerFrame {
			frameCycles -= gameboy.CyclesPerFrame
			next = s.pace(ctx, next)
		}
	}
}

// handle applies cmd and returns true if the session should stop.
func (s *Session) handle(cmd Command) bool {
	s.log.Debugf("command: %s", cmd)
	switch cmd {
	case CommandClose:
		return true
	case CommandPause:
		if !s.paused && s.player != nil {
			s.player.Pause()
		}
		s.paused = true
		s.setStatus(Paused)
	case CommandResume:
		if s.paused && s.player != nil {
			s.player.Play()
		}
		s.paused = false
		s.setStatus(Running)
	default:
		s.log.Errorf("unknown command: %d", cmd)
	}
	return false
}

// frameDuration returns the wall clock length of one frame at the
// configured speed.
func (s *Session) frameDuration() time.Duration {
	return time.Duration(float64(time.Second) * gameboy.CyclesPerFrame / (gameboy.ClockSpeed * s.speed))
}

// pace sleeps until the end of the current frame, and returns the
// deadline of the next one. A host that falls more than a frame
// behind starts over from now rather than running fast to catch up.
func (s *Session) pace(ctx context.Context, deadline time.Time) time.Time {
	frame := s.frameDuration()
	deadline = deadline.Add(frame)

	wait := time.Until(deadline)
	if wait <= 0 {
		if -wait > frame {
			return time.Now()
		}
		return deadline
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
	return deadline
}

// shutdown dumps the savegame, then closes the audio player.
func (s *Session) shutdown(cause error) error {
	var result *multierror.Error
	if cause != nil {
		result = multierror.Append(result, cause)
	}

	if err := s.machine.DumpSavegame(); err != nil {
		result = multierror.Append(result, fmt.Errorf("savegame: %w", err))
	}
	if s.saves != nil {
		if err := s.saves.Err(); err != nil {
			result = multierror.Append(result, fmt.Errorf("savegame: %w", err))
		}
	}

	if s.player != nil {
		if err := s.player.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("audio: %w", err))
		}
	}

	if s.Status() != Errored {
		s.setStatus(Stopped)
	}
	s.log.Infof("session stopped")
	return result.ErrorOrNil()
}
