// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the length of a DMG family boot ROM.
const Size = 256

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 - 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LengthError is returned by LoadBootROM for an image that is not
// Size bytes long.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("boot: invalid boot rom length: %d (want %d)", e.Length, Size)
}

// LoadBootROM loads a boot ROM into a new ROM struct and returns a
// pointer to it. The image must be exactly Size bytes long. The MD5
// checksum is stored so the model can be identified.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, &LengthError{Length: len(b)}
	}

	bootChecksum := md5.Sum(b)

	return &ROM{
		raw:      append([]byte(nil), b...),
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum, and the value being the
// model of the boot rom.
var knownBootROMChecksums = map[string]string{
	DMG0:         "Game Boy (DMG-0)",
	DMG:          "Game Boy (DMG-01)",
	MGB:          "Game Boy Pocket",
	SGB:          "Super Game Boy",
	SGB2:         "Super Game Boy 2",
	FORTUNE:      "Fortune/Bitman 3000B",
	GAME_FIGHTER: "Game Fighter",
	MAX_STATION:  "Max Station",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM, found in
	// very early DMG units sold only in Japan. On a boot failure
	// it flashes the screen instead of hanging after the logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, found in most
	// DMG-01 units.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM. It differs from
	// the DMG boot ROM by loading 0xFF into A rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM, which sends the
	// cartridge header to the SNES instead of showing the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	// FORTUNE is the checksum of the boot ROM found in the
	// Game Boy clone "Fortune/Bitman 3000B".
	FORTUNE = "92ed4eca17d61fcd53f8a64c3ce84743"
	// GAME_FIGHTER is the checksum of the boot ROM found in the
	// Game Boy clone "Game Fighter".
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	// MAX_STATION is the checksum of the boot ROM found in the
	// Game Boy clone "Maxstation".
	MAX_STATION = "77a7021db824010a678791f6d062943d"
)
