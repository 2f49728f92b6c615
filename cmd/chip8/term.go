package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tm "github.com/buger/goterm"

	"github.com/sarchlab/chip8/config"
	"github.com/sarchlab/chip8/emu"
)

// runTerminal steps the emulator at the configured frame rate and redraws
// the terminal whenever the display changes.
func runTerminal(ctx context.Context, e *emu.Emulator, cfg *config.Config, steps uint64) emu.StepResult {
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Host.TickRate))
	defer ticker.Stop()

	var (
		result   emu.StepResult
		executed uint64
	)

	for {
		for i := 0; i < cfg.Host.StepsPerFrame; i++ {
			if steps > 0 && executed >= steps {
				return result
			}

			result = e.Step()
			if result.Err != nil {
				drawTerminal(e, result)
				return result
			}
			executed++
		}

		if e.Display().Dirty() || result.Beep {
			drawTerminal(e, result)
			e.Display().ClearDirty()
		}

		select {
		case <-ctx.Done():
			result.Err = ctx.Err()
			return result
		case <-ticker.C:
		}
	}
}

func drawTerminal(e *emu.Emulator, result emu.StepResult) {
	tm.Clear()
	tm.MoveCursor(1, 1)

	_, _ = tm.Print(renderFrame(e.Display()))
	_, _ = tm.Println(statusLine(e, result))

	tm.Flush()
}

// renderFrame draws the display as text, two characters per pixel.
func renderFrame(d *emu.Display) string {
	var sb strings.Builder
	sb.Grow((d.Width()*2*3 + 1) * d.Height())

	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, y) {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func statusLine(e *emu.Emulator, result emu.StepResult) string {
	regs := e.RegFile()
	line := fmt.Sprintf("PC=%03X I=%03X DT=%02X ST=%02X [%s] %d instructions",
		regs.PC, regs.I, regs.DT, regs.ST, e.State(), e.InstructionCount())
	if result.Beep {
		line += " BEEP"
	}
	if result.Err != nil {
		line += "\n" + result.Err.Error()
	}
	return line
}

func registerDump(e *emu.Emulator) string {
	regs := e.RegFile()

	var sb strings.Builder
	for i, v := range regs.V {
		fmt.Fprintf(&sb, "V%X=%02X ", i, v)
	}
	fmt.Fprintf(&sb, "\nPC=%03X I=%03X SP=%d DT=%02X ST=%02X", regs.PC, regs.I, regs.SP, regs.DT, regs.ST)

	return sb.String()
}
