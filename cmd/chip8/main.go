// Package main provides the headless CHIP-8 runner.
//
// Usage:
//
//	chip8 [options] <program.ch8>
//
// The runner executes a program image without a window. It can render the
// display in the terminal (-term), dump the final frame as text (-dump) and
// save it as a PNG (-screenshot).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sarchlab/chip8/config"
	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/loader"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitFault = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "Path to configuration JSON file")
	verbose := flags.Bool("v", false, "Verbose output")
	steps := flags.Uint64("steps", 600, "Number of instructions to execute (0 runs until interrupted)")
	keys := flags.String("keys", "", "Comma-separated key names held down for the whole run")
	term := flags.Bool("term", false, "Render the display in the terminal")
	dump := flags.Bool("dump", false, "Print the final display and registers")
	screenshot := flags.String("screenshot", "", "Write the final display to a PNG file")
	trace := flags.Bool("trace", false, "Trace every instruction to stderr")
	seed := flags.Uint64("seed", 0, "Random seed, overrides the config file")

	if err := flags.Parse(args); err != nil {
		return exitError
	}

	if flags.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: chip8 [options] <program.ch8>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
		return exitError
	}

	programPath := flags.Arg(0)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return exitError
		}
	}
	if *seed != 0 {
		cfg.Machine.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return exitError
	}

	prog, err := loader.LoadWithLimit(programPath, cfg.Machine.MemorySize-emu.ProgramStart)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return exitError
	}

	opts := cfg.EmulatorOptions()
	if *trace {
		opts = append(opts, emu.WithTrace(stderr))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(prog.Bytes()); err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return exitError
	}

	for _, key := range strings.Split(*keys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			emulator.KeyDown(key)
		}
	}

	if *verbose {
		fmt.Fprintf(stderr, "Loaded: %s (%d bytes)\n", programPath, prog.Len())
		fmt.Fprintf(stderr, "Memory: %d bytes, display: %dx%d\n",
			cfg.Machine.MemorySize, cfg.Machine.DisplayWidth, cfg.Machine.DisplayHeight)
	}

	var result emu.StepResult
	if *term {
		result = runTerminal(ctx, emulator, cfg, *steps)
	} else {
		result = emulator.Run(ctx, *steps)
	}

	if *verbose {
		fmt.Fprintf(stderr, "\nProgram: %s\n", prog.Name)
		fmt.Fprintf(stderr, "State: %s\n", emulator.State())
		fmt.Fprintf(stderr, "Instructions executed: %d\n", emulator.InstructionCount())
	}

	if *dump {
		fmt.Fprint(stdout, renderFrame(emulator.Display()))
		fmt.Fprintln(stdout, registerDump(emulator))
	}

	if *screenshot != "" {
		on, off := cfg.Colors()
		if err := writeScreenshot(*screenshot, emulator.Display(), on, off, cfg.Host.Scale); err != nil {
			fmt.Fprintf(stderr, "Error writing screenshot: %v\n", err)
			return exitError
		}
	}

	return exitCode(result.Err, stderr)
}

// exitCode maps the final step error to a process exit code. Running out
// of steps or being interrupted is a normal end.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil,
		errors.Is(err, emu.ErrInstructionLimit),
		errors.Is(err, context.Canceled):
		return exitOK
	case emu.IsFault(err):
		fmt.Fprintf(stderr, "Emulation error: %v\n", err)
		return exitFault
	default:
		fmt.Fprintf(stderr, "Emulation error: %v\n", err)
		return exitError
	}
}
