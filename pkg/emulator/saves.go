package emulator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const saveFile = "battery.sav"

// Saves persists battery backed cartridge RAM to the filesystem. It
// implements cartridge.RAMDumper.
//
// Each cartridge gets its own folder in the save folder, named
// after its title and the xxhash of the ROM, e.g.
// "saves/TETRIS-3a2f...". Dumps are written to a temporary file
// first and then renamed over the save file, so a crash while
// saving never leaves a truncated save behind.
type Saves struct {
	Path string

	log log.Logger

	mu  sync.Mutex
	err error
}

// NewSaves creates the save folder for the given ROM inside dir.
func NewSaves(dir string, rom []byte, title string, logger log.Logger) (*Saves, error) {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	folder := filepath.Join(dir, fmt.Sprintf("%s-%016x", saveName(title), xxhash.Sum64(rom)))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("saves: %w", err)
	}

	return &Saves{
		Path: filepath.Join(folder, saveFile),
		log:  logger,
	}, nil
}

func saveName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, title)
	if name == "" {
		return "untitled"
	}
	return name
}

// Load returns the contents of the save file, if there is one.
func (s *Saves) Load() ([]byte, bool) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.setErr(err)
		}
		return nil, false
	}
	s.log.Infof("saves: loaded %d bytes from %s", len(b), s.Path)
	return b, true
}

// Dump writes data to the save file.
func (s *Saves) Dump(data []byte) {
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		s.setErr(err)
		return
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		s.setErr(err)
		return
	}
	s.log.Infof("saves: wrote %d bytes to %s", len(data), s.Path)
}

func (s *Saves) setErr(err error) {
	s.log.Errorf("saves: %v", err)
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// Err returns the first error encountered while loading or dumping.
func (s *Saves) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
