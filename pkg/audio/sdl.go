//go:build sdl && !headless

package audio

import (
	"io"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// bufferSamples is the number of sample frames queued at a time.
const bufferSamples = 1024

// SDLPlayer queues samples on an SDL audio device.
type SDLPlayer struct {
	id  sdl.AudioDeviceID
	src io.Reader
	buf []byte

	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Open returns a paused player reading from src.
func Open(sampleRate int, src io.Reader) (Player, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32LSB,
		Channels: Channels,
		Samples:  bufferSamples,
	}
	id, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, err
	}

	p := &SDLPlayer{
		id:   id,
		src:  src,
		buf:  make([]byte, bufferSamples*Channels*BytesPerSample),
		done: make(chan struct{}),
	}
	rate := time.Second * bufferSamples / time.Duration(sampleRate)
	p.wg.Add(1)
	go p.feed(rate / 2)

	return p, nil
}

// feed keeps about two buffers queued on the device.
func (p *SDLPlayer) feed(interval time.Duration) {
	defer p.wg.Done()
	tck := time.NewTicker(interval)
	defer tck.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-tck.C:
			if sdl.GetQueuedAudioSize(p.id) >= uint32(2*len(p.buf)) {
				continue
			}
			n, err := io.ReadFull(p.src, p.buf)
			if err != nil && n == 0 {
				continue
			}
			_ = sdl.QueueAudio(p.id, p.buf[:n])
		}
	}
}

func (p *SDLPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		sdl.PauseAudioDevice(p.id, false)
	}
}

func (p *SDLPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		sdl.PauseAudioDevice(p.id, true)
	}
}

func (p *SDLPlayer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
	sdl.CloseAudioDevice(p.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}
