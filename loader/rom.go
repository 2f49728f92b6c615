// Package loader provides loading of raw CHIP-8 program images.
//
// A program image has no header: its bytes are copied verbatim to the
// program start address of the emulator's memory.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarchlab/chip8/emu"
)

// DefaultMaxSize is the largest image that fits a standard 4 KiB machine
// (4096 bytes of memory minus the 0x200 bytes reserved below the program).
const DefaultMaxSize = 4096 - 0x200

var (
	// ErrEmptyProgram is returned for an image with no bytes. This is a
	// loader policy only: Emulator.LoadProgram accepts an empty image.
	ErrEmptyProgram = errors.New("empty program image")

	// ErrProgramTooLarge is returned for an image larger than the limit.
	// It is the emulator's sentinel, so errors.Is matches either source.
	ErrProgramTooLarge = emu.ErrProgramTooLarge
)

// Program is a loaded program image.
type Program struct {
	// Name identifies the image, usually the file name without extension.
	Name string

	data []byte
}

// NewProgram wraps an in-memory image. The bytes are copied.
func NewProgram(name string, data []byte) *Program {
	return &Program{Name: name, data: append([]byte(nil), data...)}
}

// Len returns the image size in bytes.
func (p *Program) Len() int {
	return len(p.data)
}

// At returns the byte at offset i.
func (p *Program) At(i int) byte {
	return p.data[i]
}

// Bytes returns a copy of the image.
func (p *Program) Bytes() []byte {
	return append([]byte(nil), p.data...)
}

// Load reads a program image from path using DefaultMaxSize.
func Load(path string) (*Program, error) {
	return LoadWithLimit(path, DefaultMaxSize)
}

// LoadWithLimit reads a program image from path, rejecting images larger
// than maxSize bytes.
func LoadWithLimit(path string, maxSize int) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program image: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]

	prog, err := Parse(name, f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return prog, nil
}

// Parse reads a program image from r, rejecting images larger than
// maxSize bytes.
func Parse(name string, r io.Reader, maxSize int) (*Program, error) {
	// Read one byte past the limit so oversized images are detected
	// without reading them whole.
	data, err := io.ReadAll(io.LimitReader(r, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	if len(data) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrProgramTooLarge, maxSize)
	}

	return &Program{Name: name, data: data}, nil
}
