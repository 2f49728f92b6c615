// Package main provides the entry point for the CHIP-8 virtual machine.
// The machine itself lives in the emu package; hosts live under cmd/.
//
// For the headless CLI, use: go run ./cmd/chip8
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("CHIP-8 - Virtual Machine")
	fmt.Println("")
	fmt.Println("Usage: chip8 [options] <program.ch8>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to configuration JSON file")
	fmt.Println("  -steps     Number of instructions to execute")
	fmt.Println("  -term      Render the display in the terminal")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Other commands:")
	fmt.Println("  ./cmd/desktop    windowed host with keyboard and beep")
	fmt.Println("  ./cmd/c8dis      disassembler")
	fmt.Println("  ./cmd/benchmark  benchmark harness")
	fmt.Println("  ./cmd/profile    CPU and heap profiling")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/chip8' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/chip8' instead.")
	}
}
