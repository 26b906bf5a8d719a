package emulator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cpu"
)

// recorder keeps the order in which the collaborators of a session
// were called.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeMachine struct {
	rec   *recorder
	steps atomic.Int64
	// failAt makes the step with this index return err.
	failAt int64
	err    error
	skips  int
	// dumpErr is returned from DumpSavegame.
	dumpErr error
}

func (m *fakeMachine) Step() (int, error) {
	n := m.steps.Add(1)
	if m.err != nil && n == m.failAt {
		return 0, m.err
	}
	return 4, nil
}

func (m *fakeMachine) Skip() { m.skips++ }
func (m *fakeMachine) DumpSavegame() error {
	m.rec.record("dump")
	return m.dumpErr
}

type fakePlayer struct {
	rec      *recorder
	closeErr error
}

func (p *fakePlayer) Play()  { p.rec.record("play") }
func (p *fakePlayer) Pause() { p.rec.record("pause") }
func (p *fakePlayer) Close() error {
	p.rec.record("close")
	return p.closeErr
}

func newTestSession(opts ...Option) (*Session, *fakeMachine, *fakePlayer, *recorder) {
	rec := &recorder{}
	m := &fakeMachine{rec: rec}
	p := &fakePlayer{rec: rec}
	opts = append([]Option{WithPlayer(p), WithSpeed(0)}, opts...)
	return NewSession(m, opts...), m, p, rec
}

func runAsync(s *Session, ctx context.Context) <-chan error {
	errs := make(chan error, 1)
	go func() { errs <- s.Run(ctx) }()
	return errs
}

func waitErr(t *testing.T, errs <-chan error) error {
	t.Helper()
	select {
	case err := <-errs:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
		return nil
	}
}

func TestSession_Quit(t *testing.T) {
	s, m, _, rec := newTestSession()
	assert.Equal(t, Stopped, s.Status())

	errs := runAsync(s, context.Background())
	require.Eventually(t, func() bool { return m.steps.Load() > 100 }, time.Second, time.Millisecond)
	assert.Equal(t, Running, s.Status())

	require.True(t, s.Send(CommandClose))
	require.NoError(t, waitErr(t, errs))

	assert.Equal(t, []string{"play", "dump", "close"}, rec.list(), "savegame is dumped before audio closes")
	assert.Equal(t, Stopped, s.Status())

	// no steps after quit
	steps := m.steps.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, steps, m.steps.Load())
	assert.False(t, s.Send(CommandResume))
}

func TestSession_ContextCancel(t *testing.T) {
	s, _, _, rec := newTestSession()
	ctx, cancel := context.WithCancel(context.Background())

	errs := runAsync(s, ctx)
	cancel()
	require.NoError(t, waitErr(t, errs))
	assert.Equal(t, []string{"play", "dump", "close"}, rec.list())

	select {
	case <-s.Done():
	default:
		t.Error("expected Done to be closed")
	}
}

func TestSession_PauseResume(t *testing.T) {
	s, m, _, rec := newTestSession()
	errs := runAsync(s, context.Background())

	s.Pause()
	require.Eventually(t, func() bool { return s.Status() == Paused }, time.Second, time.Millisecond)
	steps := m.steps.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, steps, m.steps.Load(), "no steps while paused")

	s.Resume()
	require.Eventually(t, func() bool { return m.steps.Load() > steps }, time.Second, time.Millisecond)
	assert.Equal(t, Running, s.Status())

	// quitting while paused still saves
	s.Pause()
	require.Eventually(t, func() bool { return s.Status() == Paused }, time.Second, time.Millisecond)
	s.Quit()
	require.NoError(t, waitErr(t, errs))
	assert.Equal(t, []string{"play", "pause", "play", "pause", "dump", "close"}, rec.list())
}

func TestSession_DecodeError(t *testing.T) {
	s, m, _, rec := newTestSession()
	m.failAt = 3
	m.err = &cpu.DecodeError{PC: 0x150, Opcode: 0xD3}

	err := waitErr(t, runAsync(s, context.Background()))
	var decodeErr *cpu.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, uint16(0x150), decodeErr.PC)
	assert.Equal(t, Errored, s.Status())
	assert.Equal(t, []string{"play", "dump", "close"}, rec.list(), "errors still save")
}

func TestSession_SkipIllegal(t *testing.T) {
	s, m, _, _ := newTestSession(SkipIllegal(true))
	m.failAt = 3
	m.err = &cpu.DecodeError{PC: 0x150, Opcode: 0xD3}

	errs := runAsync(s, context.Background())
	require.Eventually(t, func() bool { return m.steps.Load() > 10 }, time.Second, time.Millisecond)
	s.Quit()
	require.NoError(t, waitErr(t, errs))
	assert.Equal(t, 1, m.skips)

	// other errors are not skipped
	s, m, _, _ = newTestSession(SkipIllegal(true))
	m.failAt = 2
	m.err = errors.New("bus fault")
	assert.ErrorIs(t, waitErr(t, runAsync(s, context.Background())), m.err)
}

func TestSession_CloseError(t *testing.T) {
	s, m, p, _ := newTestSession()
	p.closeErr = errors.New("device gone")
	m.failAt = 1
	m.err = &cpu.DecodeError{PC: 0x100, Opcode: 0xDB}

	err := waitErr(t, runAsync(s, context.Background()))
	var decodeErr *cpu.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, p.closeErr)
}

func TestSession_DumpError(t *testing.T) {
	s, m, _, rec := newTestSession()
	m.dumpErr = errors.New("clock trailer")

	errs := runAsync(s, context.Background())
	s.Quit()
	err := waitErr(t, errs)
	assert.ErrorIs(t, err, m.dumpErr)
	assert.Equal(t, []string{"play", "dump", "close"}, rec.list(), "audio still closes after a failed dump")
	assert.Equal(t, Stopped, s.Status())
}

func TestSession_Pacing(t *testing.T) {
	rec := &recorder{}
	s := NewSession(&fakeMachine{rec: rec}, WithSpeed(2))
	assert.InDelta(t, 8372*time.Microsecond, s.frameDuration(), float64(time.Microsecond))

	// a deadline far in the past starts over
	next := s.pace(context.Background(), time.Now().Add(-time.Second))
	assert.WithinDuration(t, time.Now(), next, 100*time.Millisecond)

	start := time.Now()
	s.pace(context.Background(), start)
	assert.GreaterOrEqual(t, time.Since(start), s.frameDuration()-time.Millisecond)
}

func TestWithSpeed(t *testing.T) {
	m := &fakeMachine{rec: &recorder{}}
	assert.Equal(t, 0.0, NewSession(m, WithSpeed(-3)).speed)
	assert.Equal(t, float64(MaxSpeed), NewSession(m, WithSpeed(1000)).speed)
	assert.Equal(t, 1.0, NewSession(m).speed)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Paused", Paused.String())
	assert.Equal(t, "Unknown", Status(42).String())
	assert.True(t, Errored.IsErrored())
	assert.Equal(t, "Close", CommandClose.String())
}
