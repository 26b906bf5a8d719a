package audio

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilence(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n, err := io.ReadFull(Silence(), buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, make([]byte, 8), buf)
}

func TestHeadless(t *testing.T) {
	var p Player = NewHeadless()
	h := p.(*Headless)

	p.Play()
	assert.True(t, h.Playing())
	p.Pause()
	assert.False(t, h.Playing())

	p.Play()
	require.NoError(t, p.Close())
	assert.True(t, h.Closed())
	assert.False(t, h.Playing())

	p.Play()
	assert.False(t, h.Playing(), "a closed player stays stopped")
	assert.NoError(t, p.Close())
}
