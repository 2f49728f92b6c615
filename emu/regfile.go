// Package emu provides functional CHIP-8 emulation.
package emu

import "fmt"

const (
	// NumRegisters is the number of general-purpose V registers.
	NumRegisters = 16

	// FlagRegister is the index of VF, the carry/borrow/collision flag.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack holds.
	StackDepth = 16
)

// RegFile represents the CHIP-8 register file.
// It contains 16 general-purpose 8-bit registers (V0-VF), the index
// register, the program counter, the call stack and the two timers.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// VF doubles as the flag register.
	V [NumRegisters]uint8

	// I is the index register.
	I uint16

	// PC is the program counter.
	PC uint16

	// Stack holds return addresses; SP is the number of entries in use.
	Stack [StackDepth]uint16
	SP    uint8

	// DT is the delay timer.
	DT uint8

	// ST is the sound timer.
	ST uint8
}

// ReadReg reads register Vx. Only the low nibble of x is used.
func (r *RegFile) ReadReg(x uint8) uint8 {
	return r.V[x&0xF]
}

// WriteReg writes register Vx. Only the low nibble of x is used.
func (r *RegFile) WriteReg(x uint8, value uint8) {
	r.V[x&0xF] = value
}

// SetFlag writes 1 or 0 to VF.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
		return
	}
	r.V[FlagRegister] = 0
}

// Push pushes a return address onto the call stack.
func (r *RegFile) Push(addr uint16) error {
	if int(r.SP) >= StackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, r.SP)
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

// Pop pops the most recent return address off the call stack.
func (r *RegFile) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// TickTimers decrements both timers by one, stopping at zero.
func (r *RegFile) TickTimers() {
	if r.DT > 0 {
		r.DT--
	}
	if r.ST > 0 {
		r.ST--
	}
}
