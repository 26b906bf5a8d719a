// Package config provides the YAML configuration of the emulator
// host. Every field has a default, so a missing file or a partial
// file is not an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read when no path is given.
const DefaultPath = "dmgcore.yaml"

// Audio configures the audio sink.
type Audio struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

// Saves configures where battery saves are kept.
type Saves struct {
	Dir string `yaml:"dir"`
}

// Config is the host configuration.
type Config struct {
	Audio Audio `yaml:"audio"`
	Saves Saves `yaml:"saves"`

	// BootROM is the path of a boot ROM image. Empty skips the
	// boot sequence.
	BootROM string `yaml:"boot_rom"`
	// Speed multiplies the clock; 0 runs unthrottled.
	Speed float64 `yaml:"speed"`
	Debug bool    `yaml:"debug"`
	// SkipIllegal steps over undecodable opcodes instead of
	// stopping the session.
	SkipIllegal bool `yaml:"skip_illegal"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Audio: Audio{
			Enabled:    true,
			SampleRate: 48000,
		},
		Saves: Saves{
			Dir: "saves",
		},
		Speed: 1,
	}
}

// ValidationError describes a field holding an unusable value.
type ValidationError struct {
	Field string
	Value interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %v", e.Field, e.Value)
}

// Load reads the configuration at path. A missing file yields
// Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r over the defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the ranges of numeric fields.
func (c *Config) Validate() error {
	if c.Speed < 0 {
		return &ValidationError{Field: "speed", Value: c.Speed}
	}
	if c.Audio.SampleRate <= 0 {
		return &ValidationError{Field: "audio.sample_rate", Value: c.Audio.SampleRate}
	}
	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}
