package chip8

import (
	"fmt"
	"math/rand/v2"
)

const (
	RamSizeBytes = 0x1000 // 4096
	EntryPoint   = 0x200  // 512

	// from 0x000 to 0x1FF is reserved for the interpreter
	//
	// see more http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#2.1
	RomMaxSizeBytes = RamSizeBytes - EntryPoint

	// The original implementation of the Chip-8 language used
	// a 64x32-pixel monochrome display
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenSize   = ScreenWidth * ScreenHeight

	// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#2.3
	KeyPadSize = 0x10

	// Both timers count down at 60 hz, independent of the CPU pace.
	// see more http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#2.5
	TimerRate = 60

	// Instructions per second the VIP managed, a reasonable default
	// for the host to drive Step at.
	DefaultCyclesPerSec = 700
)

// Chip8 is the virtual machine: memory, registers, stack, timers,
// framebuffer and keypad, plus the instruction engine. It is driven
// from the outside on two clocks. The host calls Step per CPU cycle
// and TickTimers at 60 hz; nothing advances on its own.
//
// All calls must come from one goroutine. The machine never locks
// and Step is not reentrant.
type Chip8 struct {
	ram [RamSizeBytes]byte
	rom Rom

	screen [ScreenSize]bool

	keyPad [KeyPadSize]bool

	// 16 general purpose 8-bit registers. regsV[0xF] is the flag
	// register: carry, not-borrow, shift-out bit, sprite collision.
	regsV [0x10]uint8

	// There is also a 16-bit register called I.
	// This register is generally used to store memory addresses,
	// so only the lowest (rightmost) 12 bits are usually used.
	regI uint16

	// Address of the next instruction to fetch. Step moves it past the
	// fetched word before the instruction runs.
	pc uint16

	stack stack

	delayTimer uint8
	soundTimer uint8

	quirks   Quirks
	randByte func() uint8

	// Set on the first Step failure. The failing instruction may
	// have half-applied, so the machine refuses to run further.
	err error
}

// Config carries the construction-time knobs. The zero value is a
// usable COSMAC VIP machine with a process-wide random source.
type Config struct {
	Flavor Flavor

	// Quirks overrides the switch set the flavor expands into.
	// Leave nil to take Flavor.Quirks().
	Quirks *Quirks

	// RandByte feeds CXNN. Leave nil for math/rand/v2; tests inject
	// a deterministic source here.
	RandByte func() uint8
}

func New(rom Rom, conf Config) *Chip8 {
	c := Chip8{
		rom:      rom,
		pc:       EntryPoint,
		quirks:   conf.Flavor.Quirks(),
		randByte: conf.RandByte,
	}
	if conf.Quirks != nil {
		c.quirks = *conf.Quirks
	}
	if c.randByte == nil {
		c.randByte = func() uint8 { return uint8(rand.IntN(0x100)) }
	}

	copy(c.ram[FontOffset:], font)
	copy(c.ram[EntryPoint:], rom.Data)

	return &c
}

// Step runs one fetch, decode, execute cycle and reports whether the
// instruction touched the framebuffer. PC is advanced past the fetched
// word before the instruction runs, so jumps and skips operate on the
// already-advanced value.
func (c *Chip8) Step() (drew bool, err error) {
	if c.err != nil {
		return false, c.err
	}

	// An odd PC is fine, the fetch just reads overlapping bytes.
	// Some ROMs do that on purpose.
	if int(c.pc)+1 >= RamSizeBytes {
		c.err = fmt.Errorf("fetch at %04X: %w", c.pc, ErrAddressOutOfRange)
		return false, c.err
	}

	opcode := uint16(c.ram[c.pc])<<8 | uint16(c.ram[c.pc+1])
	pc := c.pc
	c.pc += 2

	drew, err = c.execute(opcode)
	if err != nil {
		c.err = fmt.Errorf("opcode %04X at %04X: %w", opcode, pc, err)
		return false, c.err
	}
	return drew, nil
}

// TickTimers moves both down-counters one step toward zero. The host
// calls it at 60 hz regardless of how fast it drives Step.
func (c *Chip8) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// SoundActive reports whether the host should be emitting a tone.
func (c *Chip8) SoundActive() bool {
	return c.soundTimer > 0
}

// SetKey records a key press or release from the host. A set made
// before Step is visible to that step. Out-of-range keys are ignored.
func (c *Chip8) SetKey(key uint8, isPressed bool) {
	if key >= KeyPadSize {
		return
	}
	c.keyPad[key] = isPressed
}

func (c *Chip8) KeyIsPressed(key uint8) bool {
	return key < KeyPadSize && c.keyPad[key]
}

// ScreenPixelSetAt reports whether the pixel at x, y is lit.
func (c *Chip8) ScreenPixelSetAt(x, y int) bool {
	return c.screen[y*ScreenWidth+x]
}

// Screen returns a copy of the framebuffer, row-major, true for lit.
func (c *Chip8) Screen() [ScreenSize]bool {
	return c.screen
}

func (c *Chip8) ScreenSize() (int, int) {
	return ScreenWidth, ScreenHeight
}

func (c *Chip8) GetRomName() string {
	return c.rom.Name
}

var emptyScreen = make([]bool, ScreenSize)

func (c *Chip8) clearScreen() {
	copy(c.screen[:], emptyScreen)
}
