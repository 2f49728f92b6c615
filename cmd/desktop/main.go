// Command desktop runs a CHIP-8 program in a window.
//
// Usage:
//
//	desktop [-config cfg.json] [-seed N] [-v] <program.ch8>
//
// Keys 1-4, Q-R, A-F and Z-V form the keypad. F5 resets the machine, P
// pauses and Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/sarchlab/chip8/config"
	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/loader"
)

var (
	configPath = flag.String("config", "", "Path to configuration JSON file")
	seed       = flag.Uint64("seed", 0, "Random seed, overrides the config file")
	verbose    = flag.Bool("v", false, "Verbose output")
	mute       = flag.Bool("mute", false, "Disable the beep tone")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: desktop [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Machine.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	prog, err := loader.LoadWithLimit(programPath, cfg.Machine.MemorySize-emu.ProgramStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	emulator := emu.NewEmulator(cfg.EmulatorOptions()...)
	if err := emulator.LoadProgram(prog.Bytes()); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded: %s (%d bytes)\n", programPath, prog.Len())
		fmt.Fprintf(os.Stderr, "Tick rate: %d Hz, %d steps per frame\n",
			cfg.Host.TickRate, cfg.Host.StepsPerFrame)
	}

	game := newGame(emulator, cfg, prog.Name)

	if !*mute {
		audioCtx := audio.NewContext(cfg.Host.SampleRate)
		player, err := audioCtx.NewPlayer(newSquareWave(cfg.Host.SampleRate, cfg.Host.BeepFrequency))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating beep player: %v\n", err)
			os.Exit(1)
		}
		player.SetVolume(0.2)
		game.beeper = player
	}

	ebiten.SetTPS(cfg.Host.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Machine.DisplayWidth*cfg.Host.Scale, cfg.Machine.DisplayHeight*cfg.Host.Scale)
	ebiten.SetWindowTitle("CHIP-8 - " + prog.Name)

	err = ebiten.RunGame(game)

	if *verbose {
		fmt.Fprintf(os.Stderr, "State: %s\n", emulator.State())
		fmt.Fprintf(os.Stderr, "Instructions executed: %d\n", emulator.InstructionCount())
	}

	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if f := emulator.Fault(); f != nil {
		fmt.Fprintf(os.Stderr, "Emulation error: %v\n", f)
		os.Exit(2)
	}
}
