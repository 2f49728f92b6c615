// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sarchlab/chip8/insts"
)

// State is the execution state of the emulator.
type State uint8

// Execution states.
const (
	// StateRunning is normal execution.
	StateRunning State = iota

	// StateAwaitingKey means an Fx0A instruction is waiting for a key
	// press. Steps re-run that instruction until a key is down.
	StateAwaitingKey

	// StateFaulted means a ROM fault was raised. Steps return the fault
	// until Reset.
	StateFaulted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingKey:
		return "awaiting-key"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Pixels is a row-major copy of the framebuffer, one byte per pixel.
	Pixels []byte

	// Beep is true while the sound timer is non-zero.
	Beep bool

	// State is the emulator state after the step.
	State State

	// Err is set if the step could not execute. It is a *Fault for ROM
	// faults.
	Err error
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	display *Display
	gamepad *Gamepad
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	rand  io.ByteReader
	trace io.Writer

	memorySize    int
	displayWidth  int
	displayHeight int
	program       []byte

	// Execution state
	state            State
	fault            *Fault
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMemorySize sets the memory size in bytes. Sizes that cannot hold at
// least one instruction after ProgramStart, or that exceed MaxMemorySize,
// are ignored.
func WithMemorySize(size int) EmulatorOption {
	return func(e *Emulator) {
		if size >= ProgramStart+InstructionSize && size <= MaxMemorySize {
			e.memorySize = size
		}
	}
}

// WithDisplaySize sets the display dimensions. Non-positive values are
// ignored.
func WithDisplaySize(width, height int) EmulatorOption {
	return func(e *Emulator) {
		if width > 0 && height > 0 {
			e.displayWidth = width
			e.displayHeight = height
		}
	}
}

// WithRandSource sets the byte source used by RND.
func WithRandSource(r io.ByteReader) EmulatorOption {
	return func(e *Emulator) {
		e.rand = r
	}
}

// WithSeed seeds the default random source for reproducible runs.
func WithSeed(seed uint64) EmulatorOption {
	return func(e *Emulator) {
		e.rand = NewRandSource(seed)
	}
}

// WithTrace writes one line per executed instruction to w.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator with an empty program.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder:       insts.NewDecoder(),
		gamepad:       NewGamepad(),
		memorySize:    DefaultMemorySize,
		displayWidth:  DefaultDisplayWidth,
		displayHeight: DefaultDisplayHeight,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rand == nil {
		e.rand = NewRandSource(rand.Uint64())
	}

	e.display = NewDisplay(e.displayWidth, e.displayHeight)
	e.powerOn()

	return e
}

// powerOn rebuilds memory, registers and execution units.
func (e *Emulator) powerOn() {
	e.regFile = &RegFile{PC: ProgramStart}
	e.memory = NewMemory(e.memorySize)
	copy(e.memory.data[ProgramStart:], e.program)

	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)

	e.state = StateRunning
	e.fault = nil
	e.instructionCount = 0
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Display returns the emulator's display.
func (e *Emulator) Display() *Display {
	return e.display
}

// Gamepad returns the emulator's gamepad.
func (e *Emulator) Gamepad() *Gamepad {
	return e.gamepad
}

// State returns the current execution state.
func (e *Emulator) State() State {
	return e.state
}

// Fault returns the latched fault, or nil.
func (e *Emulator) Fault() *Fault {
	return e.fault
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// DelayTimer returns the delay timer value.
func (e *Emulator) DelayTimer() uint8 {
	return e.regFile.DT
}

// SoundTimer returns the sound timer value.
func (e *Emulator) SoundTimer() uint8 {
	return e.regFile.ST
}

// KeyDown presses the named key.
func (e *Emulator) KeyDown(name string) {
	e.gamepad.SetKeyDown(name)
}

// KeyUp releases the named key.
func (e *Emulator) KeyUp(name string) {
	e.gamepad.SetKeyUp(name)
}

// LoadProgram copies a program image to ProgramStart and resets the
// machine so execution starts at the first instruction.
func (e *Emulator) LoadProgram(program []byte) error {
	if limit := e.memorySize - ProgramStart; len(program) > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, len(program), limit)
	}

	e.program = append([]byte(nil), program...)
	e.Reset()

	return nil
}

// Reset returns the emulator to its power-on state, keeping the loaded
// program. The display is cleared and all keys are released.
func (e *Emulator) Reset() {
	e.powerOn()
	e.display.Clear()
	e.gamepad.Reset()
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.fault != nil {
		return e.result(e.fault)
	}

	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return e.result(fmt.Errorf("%w: %d", ErrInstructionLimit, e.maxInstructions))
	}

	// 1. Fetch
	pc := e.regFile.PC
	word, err := e.memory.Read16(pc)
	if err != nil {
		return e.raise(pc, 0, err)
	}

	// 2. Decode
	inst := e.decoder.Decode(word)
	if e.trace != nil {
		_, _ = fmt.Fprintf(e.trace, "%03X  %04X  %s\n", pc, word, inst)
	}

	// 3. Timers
	e.regFile.TickTimers()

	// 4. Execute
	update, err := e.execute(inst)
	if err != nil {
		return e.raise(pc, word, err)
	}

	switch update.Action {
	case PCNext, PCSkip:
		advance := InstructionSize
		if update.Action == PCSkip {
			advance = 2 * InstructionSize
		}
		// The next fetch must still be addressable by the 16-bit PC.
		if int(pc)+advance > MaxMemorySize-InstructionSize {
			return e.raise(pc, word, &AccessError{Addr: pc, Len: advance + InstructionSize, Size: e.memory.Size()})
		}
		e.regFile.PC += uint16(advance)
	case PCJump:
		e.regFile.PC = update.Target
	case PCStay:
	}

	e.instructionCount++

	return e.result(nil)
}

// Run steps the emulator until steps instructions have executed, a step
// reports an error, or ctx is done. A steps value of 0 means no limit.
// It returns the last step result; when ctx ends the run, Err is ctx.Err().
func (e *Emulator) Run(ctx context.Context, steps uint64) StepResult {
	var result StepResult
	for i := uint64(0); steps == 0 || i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return e.result(err)
		}

		result = e.Step()
		if result.Err != nil {
			return result
		}
	}
	return result
}

func (e *Emulator) result(err error) StepResult {
	return StepResult{
		Pixels: e.display.VRAM(),
		Beep:   e.regFile.ST > 0,
		State:  e.state,
		Err:    err,
	}
}

func (e *Emulator) raise(pc, opcode uint16, err error) StepResult {
	e.fault = newFault(pc, opcode, err)
	e.state = StateFaulted
	return e.result(e.fault)
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst *insts.Instruction) (PCUpdate, error) {
	switch inst.Op {
	// System and control flow
	case insts.OpCLS:
		e.display.Clear()
	case insts.OpRET:
		return e.branchUnit.RET()
	case insts.OpJP:
		return e.branchUnit.JP(inst.NNN), nil
	case insts.OpCALL:
		return e.branchUnit.CALL(inst.NNN)
	case insts.OpJPV0:
		return e.branchUnit.JPV0(inst.NNN), nil
	case insts.OpSE:
		return e.branchUnit.SE(inst.X, inst.KK), nil
	case insts.OpSNE:
		return e.branchUnit.SNE(inst.X, inst.KK), nil
	case insts.OpSEReg:
		return e.branchUnit.SEReg(inst.X, inst.Y), nil
	case insts.OpSNEReg:
		return e.branchUnit.SNEReg(inst.X, inst.Y), nil

	// Register arithmetic
	case insts.OpLD:
		e.alu.LDImm(inst.X, inst.KK)
	case insts.OpADD:
		e.alu.ADDImm(inst.X, inst.KK)
	case insts.OpLDReg:
		e.alu.LD(inst.X, inst.Y)
	case insts.OpOR:
		e.alu.OR(inst.X, inst.Y)
	case insts.OpAND:
		e.alu.AND(inst.X, inst.Y)
	case insts.OpXOR:
		e.alu.XOR(inst.X, inst.Y)
	case insts.OpADDReg:
		e.alu.ADD(inst.X, inst.Y)
	case insts.OpSUB:
		e.alu.SUB(inst.X, inst.Y)
	case insts.OpSHR:
		e.alu.SHR(inst.X)
	case insts.OpSUBN:
		e.alu.SUBN(inst.X, inst.Y)
	case insts.OpSHL:
		e.alu.SHL(inst.X)
	case insts.OpRND:
		b, err := e.rand.ReadByte()
		if err != nil {
			return PCUpdate{}, fmt.Errorf("%w: %v", ErrRandSource, err)
		}
		e.alu.LDImm(inst.X, b&inst.KK)

	// Index and memory
	case insts.OpLDI:
		e.lsu.LDI(inst.NNN)
	case insts.OpADDI:
		e.lsu.ADDI(inst.X)
	case insts.OpLDF:
		e.lsu.LDF(inst.X)
	case insts.OpLDB:
		return next(), e.lsu.LDB(inst.X)
	case insts.OpLDIVx:
		return next(), e.lsu.STM(inst.X)
	case insts.OpLDVxI:
		return next(), e.lsu.LDM(inst.X)
	case insts.OpDRW:
		return e.executeDRW(inst)

	// Timers and keys
	case insts.OpLDVxDT:
		e.regFile.WriteReg(inst.X, e.regFile.DT)
	case insts.OpLDDTVx:
		e.regFile.DT = e.regFile.ReadReg(inst.X)
	case insts.OpLDSTVx:
		e.regFile.ST = e.regFile.ReadReg(inst.X)
	case insts.OpSKP:
		return skipIf(e.gamepad.IsKeyIdxPressed(int(e.regFile.ReadReg(inst.X)))), nil
	case insts.OpSKNP:
		return skipIf(!e.gamepad.IsKeyIdxPressed(int(e.regFile.ReadReg(inst.X)))), nil
	case insts.OpLDVxK:
		return e.executeWaitKey(inst), nil

	// Unknown words are skipped
	default:
	}

	return next(), nil
}

func (e *Emulator) executeDRW(inst *insts.Instruction) (PCUpdate, error) {
	sprite, err := e.lsu.Sprite(inst.N)
	if err != nil {
		return PCUpdate{}, err
	}

	x := int(e.regFile.ReadReg(inst.X))
	y := int(e.regFile.ReadReg(inst.Y))
	e.regFile.SetFlag(e.display.DrawSprite(x, y, sprite))

	return next(), nil
}

func (e *Emulator) executeWaitKey(inst *insts.Instruction) PCUpdate {
	idx, ok := e.gamepad.FirstPressedKeyIdx()
	if !ok {
		e.state = StateAwaitingKey
		return PCUpdate{Action: PCStay}
	}

	e.regFile.WriteReg(inst.X, uint8(idx))
	e.state = StateRunning

	return next()
}
