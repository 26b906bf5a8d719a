package emulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaves(t *testing.T) {
	dir := t.TempDir()
	rom := []byte{1, 2, 3, 4}

	s, err := NewSaves(dir, rom, "POKEMON RED", nil)
	require.NoError(t, err)
	assert.Contains(t, s.Path, "POKEMON_RED-")

	_, ok := s.Load()
	assert.False(t, ok, "no save yet")
	assert.NoError(t, s.Err())

	s.Dump([]byte{0xAA, 0xBB})
	require.NoError(t, s.Err())
	_, err = os.Stat(s.Path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed")

	// the same ROM finds the same folder
	again, err := NewSaves(dir, rom, "POKEMON RED", nil)
	require.NoError(t, err)
	b, ok := again.Load()
	require.True(t, ok)
	assert.Equal(t, []byte{0xAA, 0xBB}, b)

	// a different ROM with the same title does not
	other, err := NewSaves(dir, []byte{5}, "POKEMON RED", nil)
	require.NoError(t, err)
	assert.NotEqual(t, s.Path, other.Path)
}

func TestSaves_Err(t *testing.T) {
	s, err := NewSaves(t.TempDir(), nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "untitled", filepath.Base(filepath.Dir(s.Path))[:8])

	// a directory where the save file should be makes both fail
	require.NoError(t, os.Mkdir(s.Path, 0755))
	_, ok := s.Load()
	assert.False(t, ok)
	assert.Error(t, s.Err())
}
