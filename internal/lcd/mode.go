package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1 of
// types.STAT.
type Mode = uint8

const (
	// HBlank (Mode 0) is the horizontal blanking period at the end
	// of each visible line. The CPU can access both VRAM and OAM.
	HBlank Mode = iota
	// VBlank (Mode 1) is the vertical blanking period, lines 144-153.
	// The CPU can access both VRAM and OAM.
	VBlank
	// OAM (Mode 2) is the OAM scan at the start of each visible line.
	OAM
	// VRAM (Mode 3) is the pixel transfer.
	VRAM
)

const (
	// ScreenHeight is the number of visible lines.
	ScreenHeight = 144
	// Lines is the number of lines in a frame, including VBlank.
	Lines = 154
	// DotsPerLine is the number of cycles it takes to draw a line.
	DotsPerLine = 456
	// CyclesPerFrame is the number of cycles in a frame.
	CyclesPerFrame = Lines * DotsPerLine

	oamDots  = 80
	vramDots = 172
)
