package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(1, -5, 10))
	assert.Equal(t, 10, Clamp(1, 50, 10))
	assert.Equal(t, 0.5, Clamp(0.0, 0.5, 1.0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0x0010, Wrap(0x8010, 0x8000))
	assert.Equal(t, uint32(5), Wrap(uint32(5), 8))
	assert.Equal(t, 0, Wrap(42, 0), "an empty buffer wraps to 0")
}

func TestZeroAdjust(t *testing.T) {
	assert.Equal(t, uint8(1), ZeroAdjust(uint8(0)))
	assert.Equal(t, uint8(5), ZeroAdjust(uint8(5)))
}
