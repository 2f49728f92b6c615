// Command benchmark runs the CHIP-8 benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results in JSON format
//	-core       Run only the core benchmarks
//	-v          Trace every executed instruction
//
// Example:
//
//	# Run all benchmarks with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Every benchmark checks its own result, so the command exits non-zero
// when any of them fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/chip8/benchmarks"
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	verbose := flag.Bool("v", false, "Trace every executed instruction")
	maxInstr := flag.Uint64("max-instr", 100000, "Instruction limit per benchmark")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	// Configure harness
	config := benchmarks.DefaultConfig()
	config.MaxInstructions = *maxInstr
	config.Seed = *seed
	config.Verbose = *verbose
	config.Output = os.Stdout

	// Create harness and add benchmarks
	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("CHIP-8 Benchmark Harness")
		fmt.Println("========================")
		fmt.Printf("Instruction limit: %d\n", config.MaxInstructions)
		fmt.Printf("Seed: %d\n", config.Seed)
		fmt.Println("")
	}

	// Run benchmarks
	results := harness.RunAll()

	// Output results
	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d benchmarks failed\n", failed, len(results))
		os.Exit(1)
	}
}
