package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sarchlab/chip8/config"
	"github.com/sarchlab/chip8/emu"
)

// keyMap binds each keypad name to the host key with the same label.
var keyMap = map[string]ebiten.Key{
	"1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2, "3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4,
	"q": ebiten.KeyQ, "w": ebiten.KeyW, "e": ebiten.KeyE, "r": ebiten.KeyR,
	"a": ebiten.KeyA, "s": ebiten.KeyS, "d": ebiten.KeyD, "f": ebiten.KeyF,
	"z": ebiten.KeyZ, "x": ebiten.KeyX, "c": ebiten.KeyC, "v": ebiten.KeyV,
}

// beeper is the part of an audio player the game drives.
type beeper interface {
	Play()
	Pause()
	IsPlaying() bool
}

// Game adapts an emulator to ebiten's game loop. One Update call runs one
// frame of StepsPerFrame instructions.
type Game struct {
	vm     *emu.Emulator
	cfg    *config.Config
	name   string
	beeper beeper

	on, off color.RGBA
	screen  *ebiten.Image // reused framebuffer texture

	paused bool
	last   emu.StepResult
}

func newGame(vm *emu.Emulator, cfg *config.Config, name string) *Game {
	on, off := cfg.Colors()
	return &Game{vm: vm, cfg: cfg, name: name, on: on, off: off}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.silence()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.vm.Reset()
		g.last = emu.StepResult{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	for _, name := range emu.KeyLayout {
		key := keyMap[name]
		if inpututil.IsKeyJustPressed(key) {
			g.vm.KeyDown(name)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.vm.KeyUp(name)
		}
	}

	if g.paused {
		g.silence()
		return nil
	}

	for i := 0; i < g.cfg.Host.StepsPerFrame; i++ {
		g.last = g.vm.Step()
		if g.last.Err != nil {
			break
		}
	}

	if g.last.Err != nil {
		g.silence()
		// Instruction limits end the session; faults stay on screen
		// until the machine is reset.
		if errors.Is(g.last.Err, emu.ErrInstructionLimit) {
			return ebiten.Termination
		}
		return nil
	}

	if g.beeper != nil {
		switch {
		case g.last.Beep && !g.beeper.IsPlaying():
			g.beeper.Play()
		case !g.last.Beep && g.beeper.IsPlaying():
			g.beeper.Pause()
		}
	}

	return nil
}

func (g *Game) silence() {
	if g.beeper != nil && g.beeper.IsPlaying() {
		g.beeper.Pause()
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	d := g.vm.Display()

	if g.screen == nil {
		g.screen = ebiten.NewImage(d.Width(), d.Height())
	}
	g.screen.WritePixels(d.Image(g.on, g.off).Pix)
	d.ClearDirty()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.cfg.Host.Scale), float64(g.cfg.Host.Scale))
	screen.DrawImage(g.screen, op)

	switch {
	case g.vm.State() == emu.StateFaulted:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%v\nF5 to reset", g.vm.Fault()), 4, 4)
	case g.paused:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s paused (%d instructions)", g.name, g.vm.InstructionCount()), 4, 4)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	d := g.vm.Display()
	return d.Width() * g.cfg.Host.Scale, d.Height() * g.cfg.Host.Scale
}
