// Validate decoder allocation behaviour - measures decodes per second and
// heap allocations for a mix of CHIP-8 opcodes.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/insts"
)

func main() {
	memory := emu.NewMemory(emu.DefaultMemorySize)

	program := insts.BuildProgram(
		insts.EncodeLD(0x0, 0x2A),      // LD V0, $2A
		insts.EncodeADDReg(0x1, 0x2),   // ADD V1, V2
		insts.EncodeDRW(0x0, 0x1, 0x5), // DRW V0, V1, $5
		insts.EncodeLDB(0x3),           // LD B, V3
	)
	if err := memory.Store(emu.ProgramStart, program); err != nil {
		fmt.Fprintf(os.Stderr, "store program: %v\n", err)
		os.Exit(1)
	}

	words := make([]uint16, 0, len(program)/2)
	for addr := uint16(emu.ProgramStart); addr < emu.ProgramStart+uint16(len(program)); addr += 2 {
		w, err := memory.Read16(addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read 0x%03X: %v\n", addr, err)
			os.Exit(1)
		}
		words = append(words, w)
	}

	decoder := insts.NewDecoder()

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.Decode(words[0])
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		for _, w := range words {
			decoder.Decode(w)
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * len(words)
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	for _, w := range words {
		fmt.Printf("  %04X  %s\n", w, decoder.Decode(w))
	}
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))

	if float64(allocations)/float64(totalDecodes) <= 1.0 {
		fmt.Printf("\nOK: at most one allocation per decode\n")
	} else {
		fmt.Printf("\nWARNING: more than one allocation per decode\n")
	}
}
