// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"errors"
	"fmt"
)

// Fault causes. A Fault raised by Step wraps exactly one of the ROM fault
// sentinels, so callers can tell them apart with errors.Is.
var (
	// ErrStackOverflow is raised by CALL when all stack entries are in use.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is raised by RET when the stack is empty.
	ErrStackUnderflow = errors.New("call stack underflow")

	// ErrMemoryOutOfRange is raised when an instruction fetch or a data
	// access falls outside memory.
	ErrMemoryOutOfRange = errors.New("memory access out of range")

	// ErrRandSource is raised when the injected random source fails.
	ErrRandSource = errors.New("random source failed")
)

// Caller errors. These are never latched as faults.
var (
	// ErrProgramTooLarge is returned by LoadProgram when the image does not
	// fit between the program start address and the end of memory.
	ErrProgramTooLarge = errors.New("program too large for memory")

	// ErrInstructionLimit is reported by Step once WithMaxInstructions is
	// exhausted.
	ErrInstructionLimit = errors.New("max instructions reached")
)

// FaultKind classifies a ROM fault.
type FaultKind uint8

// Fault kinds.
const (
	FaultStackOverflow FaultKind = iota
	FaultStackUnderflow
	FaultMemoryOutOfRange
	FaultRandSource
)

var faultKindNames = [...]string{
	FaultStackOverflow:    "stack overflow",
	FaultStackUnderflow:   "stack underflow",
	FaultMemoryOutOfRange: "memory out of range",
	FaultRandSource:       "random source",
}

// String returns a short name for the fault kind.
func (k FaultKind) String() string {
	if int(k) < len(faultKindNames) {
		return faultKindNames[k]
	}
	return "unknown"
}

// AccessError reports a memory access that does not fit in memory.
type AccessError struct {
	Addr uint16
	Len  int
	Size int
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%v: 0x%03X+%d beyond 0x%03X",
		ErrMemoryOutOfRange, e.Addr, e.Len, e.Size-1)
}

// Is makes errors.Is(err, ErrMemoryOutOfRange) hold for access errors.
func (e *AccessError) Is(target error) bool {
	return target == ErrMemoryOutOfRange
}

// Fault describes a ROM fault: a condition caused by the running program
// that the emulator cannot execute past. Once raised, the emulator stays
// faulted until Reset.
type Fault struct {
	Kind FaultKind

	// PC is the address of the faulting instruction.
	PC uint16

	// Opcode is the faulting instruction word. It is zero when the fetch
	// itself failed.
	Opcode uint16

	// Addr is the offending data address for memory faults.
	Addr uint16

	// Err is the underlying cause.
	Err error
}

func newFault(pc, opcode uint16, err error) *Fault {
	f := &Fault{PC: pc, Opcode: opcode, Err: err}

	var access *AccessError
	switch {
	case errors.As(err, &access):
		f.Kind = FaultMemoryOutOfRange
		f.Addr = access.Addr
	case errors.Is(err, ErrStackOverflow):
		f.Kind = FaultStackOverflow
	case errors.Is(err, ErrStackUnderflow):
		f.Kind = FaultStackUnderflow
	default:
		f.Kind = FaultRandSource
	}

	return f
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("rom fault (%s) at PC=0x%03X (opcode %04X): %v", f.Kind, f.PC, f.Opcode, f.Err)
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// IsFault reports whether err is, or wraps, a ROM fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
