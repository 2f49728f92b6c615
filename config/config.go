// Package config provides the JSON configuration shared by the CHIP-8
// front ends.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/sarchlab/chip8/emu"
)

// MachineConfig holds the construction-time parameters of the emulator.
type MachineConfig struct {
	// MemorySize is the size of main memory in bytes. Default: 4096.
	MemorySize int `json:"memory_size"`

	// DisplayWidth is the number of display columns. Default: 64.
	DisplayWidth int `json:"display_width"`

	// DisplayHeight is the number of display rows. Default: 32.
	DisplayHeight int `json:"display_height"`

	// Seed seeds the random source used by RND. Zero picks a random seed.
	Seed uint64 `json:"seed"`

	// MaxInstructions stops execution after this many instructions.
	// Zero means no limit.
	MaxInstructions uint64 `json:"max_instructions"`
}

// HostConfig holds the settings of the front ends driving the emulator.
type HostConfig struct {
	// TickRate is the number of host frames per second. Default: 60.
	TickRate int `json:"tick_rate"`

	// StepsPerFrame is the number of instructions executed per frame.
	// Timers tick once per instruction. Default: 1.
	StepsPerFrame int `json:"steps_per_frame"`

	// Scale is the window size multiplier of the desktop front end.
	// Default: 10.
	Scale int `json:"scale"`

	// OnColor and OffColor are "#RRGGBB" colors for lit and dark pixels.
	OnColor  string `json:"on_color"`
	OffColor string `json:"off_color"`

	// BeepFrequency is the tone played while the sound timer runs, in Hz.
	// Default: 440.
	BeepFrequency float64 `json:"beep_frequency"`

	// SampleRate is the audio sample rate. Default: 44100.
	SampleRate int `json:"sample_rate"`
}

// Config is the complete configuration.
type Config struct {
	Machine MachineConfig `json:"machine"`
	Host    HostConfig    `json:"host"`
}

// DefaultConfig returns a Config for a standard 64x32 machine.
func DefaultConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			MemorySize:    emu.DefaultMemorySize,
			DisplayWidth:  emu.DefaultDisplayWidth,
			DisplayHeight: emu.DefaultDisplayHeight,
		},
		Host: HostConfig{
			TickRate:      60,
			StepsPerFrame: 1,
			Scale:         10,
			OnColor:       "#FFFFFF",
			OffColor:      "#000000",
			BeepFrequency: 440,
			SampleRate:    44100,
		},
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	m := c.Machine
	if m.MemorySize < emu.ProgramStart+emu.InstructionSize || m.MemorySize > emu.MaxMemorySize {
		return fmt.Errorf("memory_size must be in [%d, %d]",
			emu.ProgramStart+emu.InstructionSize, emu.MaxMemorySize)
	}
	if m.DisplayWidth <= 0 || m.DisplayHeight <= 0 {
		return fmt.Errorf("display_width and display_height must be > 0")
	}

	h := c.Host
	if h.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be > 0")
	}
	if h.StepsPerFrame <= 0 {
		return fmt.Errorf("steps_per_frame must be > 0")
	}
	if h.Scale <= 0 {
		return fmt.Errorf("scale must be > 0")
	}
	if _, err := ParseColor(h.OnColor); err != nil {
		return fmt.Errorf("on_color: %w", err)
	}
	if _, err := ParseColor(h.OffColor); err != nil {
		return fmt.Errorf("off_color: %w", err)
	}
	if h.BeepFrequency <= 0 {
		return fmt.Errorf("beep_frequency must be > 0")
	}
	if h.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be > 0")
	}

	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// EmulatorOptions converts the machine section into emulator options.
func (c *Config) EmulatorOptions() []emu.EmulatorOption {
	opts := []emu.EmulatorOption{
		emu.WithMemorySize(c.Machine.MemorySize),
		emu.WithDisplaySize(c.Machine.DisplayWidth, c.Machine.DisplayHeight),
		emu.WithMaxInstructions(c.Machine.MaxInstructions),
	}
	if c.Machine.Seed != 0 {
		opts = append(opts, emu.WithSeed(c.Machine.Seed))
	}
	return opts
}

// Colors returns the parsed lit and dark pixel colors. Invalid values fall
// back to white on black.
func (c *Config) Colors() (on, off color.RGBA) {
	on, err := ParseColor(c.Host.OnColor)
	if err != nil {
		on = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	off, err = ParseColor(c.Host.OffColor)
	if err != nil {
		off = color.RGBA{A: 0xFF}
	}
	return on, off
}

// ParseColor parses a "#RRGGBB" color.
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q, want #RRGGBB", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
