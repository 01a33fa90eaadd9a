package renderer

import (
	"encoding/hex"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/miklilad/chip8/internal/beep"
	"github.com/miklilad/chip8/internal/chip8"
)

// ====================
// keyboard key mapping
// ====================
//
//	1 2 3 C  -> 1 2 3 4
//	4 5 6 D  -> Q W E R
//	7 8 9 E  -> A S D F
//	A 0 B F  -> Z X C V
var keyboardMapping = map[uint8]ebiten.Key{
	0x1: ebiten.Key1, 0x2: ebiten.Key2, 0x3: ebiten.Key3, 0xC: ebiten.Key4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

type Config struct {
	FgColor color.Color
	BgColor color.Color

	// CPU instructions per second. The renderer converts this to
	// steps per 60 hz frame. Zero means chip8.DefaultCyclesPerSec.
	CyclesPerSec int
}

// Renderer owns the host side of the machine: the ebiten window, the
// keyboard, the beeper and both clocks. Every ebiten tick (60 hz) it
// ticks the timers once and runs a frame's worth of CPU steps.
type Renderer struct {
	chip8  *chip8.Chip8
	beeper *beep.Beep

	fgColor color.Color
	bgColor color.Color

	stepsPerFrame int

	paused bool
}

func NewFromConfig(chip8vm *chip8.Chip8, beeper *beep.Beep, conf Config) *Renderer {
	cps := conf.CyclesPerSec
	if cps <= 0 {
		cps = chip8.DefaultCyclesPerSec
	}
	stepsPerFrame := cps / chip8.TimerRate
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	return &Renderer{
		chip8:  chip8vm,
		beeper: beeper,

		fgColor: conf.FgColor,
		bgColor: conf.BgColor,

		stepsPerFrame: stepsPerFrame,
	}
}

func (r *Renderer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		r.paused = !r.paused
		r.setWindowTitle()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		r.beeper.VolumeUp()
	case inpututil.IsKeyJustPressed(ebiten.Key9):
		r.beeper.VolumeDown()
	}

	if r.paused {
		r.beeper.Update(false)
		return nil
	}

	for chip8Key, ebitenKey := range keyboardMapping {
		r.chip8.SetKey(chip8Key, ebiten.IsKeyPressed(ebitenKey))
	}

	r.chip8.TickTimers()
	for i := 0; i < r.stepsPerFrame; i++ {
		if _, err := r.chip8.Step(); err != nil {
			return fmt.Errorf("emulate: %w", err)
		}
	}

	r.beeper.Update(r.chip8.SoundActive())

	return nil
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	w, h := r.chip8.ScreenSize()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			pixelColor := r.bgColor
			if r.chip8.ScreenPixelSetAt(x, y) {
				pixelColor = r.fgColor
			}

			screen.Set(x, y, pixelColor)
		}
	}
}

func (r *Renderer) Layout(int, int) (int, int) {
	return r.chip8.ScreenSize()
}

func (r *Renderer) Run() error {
	ebiten.SetTPS(chip8.TimerRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	r.setWindowTitle()

	if err := ebiten.RunGame(r); err != nil {
		return fmt.Errorf("run renderer: %w", err)
	}
	return nil
}

func (r *Renderer) setWindowTitle() {
	title := "CHIP8 Emulator: " + r.chip8.GetRomName()
	if r.paused {
		title += " (paused)"
	}
	ebiten.SetWindowTitle(title)
}

func DecodeColorFromHex(s string) (color.Color, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode a hex string: %w", err)
	}
	if len(data) != 3 && len(data) != 4 {
		return nil, fmt.Errorf("color must be in rgb or rgba format")
	}

	c := color.RGBA{
		R: data[0],
		G: data[1],
		B: data[2],
		A: 0xff,
	}
	if len(data) == 4 {
		c.A = data[3]
	}

	return c, nil
}
