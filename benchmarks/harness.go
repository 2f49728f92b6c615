// Package benchmarks provides a benchmark harness that runs small CHIP-8
// programs to completion and checks their results.
//
// A benchmark program signals completion by jumping to itself. Its result
// is the final value of V0.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/chip8/emu"
)

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	// Instructions is the number of instructions executed
	Instructions uint64 `json:"instructions"`

	// Result is the final value of V0
	Result uint8 `json:"result"`

	// Expected is the value V0 should hold at the end
	Expected uint8 `json:"expected"`

	// Halted is true if the program reached its halt loop
	Halted bool `json:"halted"`

	// Passed is true if the program halted with the expected result
	Passed bool `json:"passed"`

	// Error is set if the run stopped on an error
	Error string `json:"error,omitempty"`

	// WallTime is the wall clock time to run the benchmark
	WallTime time.Duration `json:"wall_time_ns"`
}

// InstructionsPerSecond returns the emulation speed of the run.
func (r BenchmarkResult) InstructionsPerSecond() float64 {
	if r.WallTime <= 0 {
		return 0
	}
	return float64(r.Instructions) / r.WallTime.Seconds()
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Setup prepares the emulator state after the program is loaded
	Setup func(regFile *emu.RegFile, memory *emu.Memory)

	// Program is the CHIP-8 program image
	Program []byte

	// Expected is the expected final value of V0
	Expected uint8
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// MaxInstructions bounds each run so a broken program cannot spin
	// forever.
	MaxInstructions uint64

	// Seed seeds the random source of every run.
	Seed uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose traces every executed instruction to Output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		MaxInstructions: 100000,
		Seed:            1,
		Output:          os.Stdout,
		Verbose:         false,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
		Expected:    bench.Expected,
	}

	opts := []emu.EmulatorOption{
		emu.WithSeed(h.config.Seed),
		emu.WithMaxInstructions(h.config.MaxInstructions),
	}
	if h.config.Verbose {
		opts = append(opts, emu.WithTrace(h.config.Output))
	}

	e := emu.NewEmulator(opts...)
	if err := e.LoadProgram(bench.Program); err != nil {
		result.Error = err.Error()
		return result
	}

	if bench.Setup != nil {
		bench.Setup(e.RegFile(), e.Memory())
	}

	start := time.Now()
	for {
		pc := e.RegFile().PC
		step := e.Step()
		if step.Err != nil {
			result.Error = step.Err.Error()
			break
		}
		if step.State == emu.StateRunning && e.RegFile().PC == pc {
			result.Halted = true
			break
		}
	}
	result.WallTime = time.Since(start)

	result.Instructions = e.InstructionCount()
	result.Result = e.RegFile().V[0]
	result.Passed = result.Halted && result.Result == bench.Expected

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== CHIP-8 Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:  %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  V0:           0x%02X (expected 0x%02X)\n", r.Result, r.Expected)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error:        %s\n", r.Error)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:    %v\n", r.WallTime)
		_, _ = fmt.Fprintf(h.config.Output, "  Speed:        %.0f inst/s\n", r.InstructionsPerSecond())
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "name,instructions,result,expected,halted,passed,wall_time_ns")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%t,%t,%d\n",
			r.Name,
			r.Instructions,
			r.Result,
			r.Expected,
			r.Halted,
			r.Passed,
			r.WallTime.Nanoseconds(),
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// MaxInstructions is the per-run instruction limit
	MaxInstructions uint64 `json:"max_instructions"`

	// Seed is the random seed of every run
	Seed uint64 `json:"seed"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	TotalBenchmarks   int           `json:"total_benchmarks"`
	Passed            int           `json:"passed"`
	TotalInstructions uint64        `json:"total_instructions"`
	TotalWallTime     time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		}
		summary.TotalInstructions += r.Instructions
		summary.TotalWallTime += r.WallTime
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			MaxInstructions: h.config.MaxInstructions,
			Seed:            h.config.Seed,
		},
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
