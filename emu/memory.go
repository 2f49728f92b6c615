// Package emu provides functional CHIP-8 emulation.
package emu

// Memory layout constants.
const (
	// DefaultMemorySize is the size of the standard CHIP-8 address space.
	DefaultMemorySize = 4096

	// MaxMemorySize is the largest memory addressable by the 16-bit index
	// register and program counter.
	MaxMemorySize = 0x10000

	// ProgramStart is the address where program images are loaded and where
	// execution begins.
	ProgramStart = 0x200
)

// Memory is a fixed-size, bounds-checked byte store. Every accessor
// reports ErrMemoryOutOfRange instead of touching bytes outside the buffer.
type Memory struct {
	data []byte
}

// NewMemory creates a zeroed memory of the given size with the font set
// preloaded at FontAddress.
func NewMemory(size int) *Memory {
	m := &Memory{data: make([]byte, size)}
	copy(m.data[FontAddress:], FontSet[:])
	return m
}

// Size returns the number of addressable bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

func (m *Memory) check(addr uint16, n int) error {
	if int(addr)+n > len(m.data) {
		return &AccessError{Addr: addr, Len: n, Size: len(m.data)}
	}
	return nil
}

// Read8 reads a single byte.
func (m *Memory) Read8(addr uint16) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// Write8 writes a single byte.
func (m *Memory) Write8(addr uint16, value byte) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m.data[addr] = value
	return nil
}

// Read16 reads a big-endian 16-bit word from addr and addr+1.
func (m *Memory) Read16(addr uint16) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[int(addr)+1]), nil
}

// Slice returns a copy of n bytes starting at addr.
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[addr:])
	return out, nil
}

// Store copies data to memory starting at addr. Nothing is written when
// any part of the range is out of bounds.
func (m *Memory) Store(addr uint16, data []byte) error {
	if err := m.check(addr, len(data)); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	return nil
}

// Bytes returns a copy of the whole memory.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
