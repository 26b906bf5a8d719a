package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being transferred over
	// the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	//
	//  Bit 7: Transfer Start Flag (1=Transfer in progress)
	//  Bit 0: Shift Clock         (1=Internal clock)
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Internally
	// it is a 16-bit register, but only the upper 8 bits may be read.
	// Writing any value resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: 4096 Hz
	//           01: 262144 Hz
	//           10: 65536 Hz
	//           11: 16384 Hz
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD. Only bit 7
	// (LCD Enable) affects the scan timing.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. The STAT
	// hardware register contains the status of the LCD, and is used
	// to request LCD interrupts.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: mode Flag       (mode 0-3)            (Read Only)
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the address of the LY hardware register. The LY
	// hardware register is the current scanline. The range of
	// values for LY is 0-153.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LYC hardware register. This register
	// is compared to LY. When they are the same, the coincidence flag
	// in the STAT hardware register is set, and a STAT interrupt is
	// requested if the coincidence interrupt flag is set.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing a value
	// to DMA transfers 160 bytes of data from XX00-XX9F to OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// BDIS is the address of the BDIS hardware register. Writing
	// any value to it unmaps the boot ROM.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. Each bit
	// enables the interrupt with the same bit in IF.
	IE HardwareAddress = 0xFFFF
)
