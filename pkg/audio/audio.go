// Package audio provides the sound output of the emulator host. The
// backend is chosen at build time: oto by default, SDL with the sdl
// build tag, and a silent player with the headless build tag.
//
// Players pull interleaved stereo float32 samples (little endian)
// from an io.Reader.
package audio

import (
	"io"
	"sync"
)

const (
	// Channels is the number of interleaved channels.
	Channels = 2
	// BytesPerSample is the size of one float32 sample.
	BytesPerSample = 4
)

// Player is an audio output.
type Player interface {
	// Play starts or resumes playback.
	Play()
	// Pause suspends playback.
	Pause()
	// Close stops playback and releases the device. A closed
	// Player cannot be reused.
	Close() error
}

// Silence returns a reader producing an endless stream of zero samples.
func Silence() io.Reader {
	return silence{}
}

type silence struct{}

func (silence) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// Headless is a Player without a device. It tracks its state so a
// host can run without sound.
type Headless struct {
	mu      sync.Mutex
	playing bool
	closed  bool
}

// NewHeadless returns a Player that outputs nothing.
func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Play() {
	h.mu.Lock()
	h.playing = !h.closed
	h.mu.Unlock()
}

func (h *Headless) Pause() {
	h.mu.Lock()
	h.playing = false
	h.mu.Unlock()
}

func (h *Headless) Close() error {
	h.mu.Lock()
	h.playing = false
	h.closed = true
	h.mu.Unlock()
	return nil
}

// Playing returns true between Play and Pause or Close.
func (h *Headless) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

// Closed returns true once Close has been called.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
