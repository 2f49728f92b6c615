// Package emu provides functional CHIP-8 emulation.
package emu

// InstructionSize is the width of one instruction in bytes.
const InstructionSize = 2

// PCAction says how the program counter moves after an instruction.
type PCAction uint8

// Program counter actions.
const (
	PCNext PCAction = iota // PC += 2
	PCSkip                 // PC += 4
	PCJump                 // PC = Target
	PCStay                 // PC unchanged; the instruction runs again
)

// PCUpdate is the program counter directive returned by an instruction.
type PCUpdate struct {
	Action PCAction
	Target uint16
}

func next() PCUpdate { return PCUpdate{Action: PCNext} }
func jump(target uint16) PCUpdate { return PCUpdate{Action: PCJump, Target: target} }
func skipIf(cond bool) PCUpdate {
	if cond {
		return PCUpdate{Action: PCSkip}
	}
	return next()
}

// BranchUnit implements CHIP-8 control flow: jumps, subroutine calls and
// conditional skips.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JP jumps to nnn.
func (b *BranchUnit) JP(nnn uint16) PCUpdate {
	return jump(nnn)
}

// JPV0 jumps to nnn + V0.
func (b *BranchUnit) JPV0(nnn uint16) PCUpdate {
	return jump(nnn + uint16(b.regFile.ReadReg(0)))
}

// CALL pushes the address of the following instruction and jumps to nnn.
func (b *BranchUnit) CALL(nnn uint16) (PCUpdate, error) {
	pc := b.regFile.PC
	if int(pc)+InstructionSize > MaxMemorySize-InstructionSize {
		return PCUpdate{}, &AccessError{Addr: pc, Len: 2 * InstructionSize, Size: MaxMemorySize}
	}
	if err := b.regFile.Push(pc + InstructionSize); err != nil {
		return PCUpdate{}, err
	}
	return jump(nnn), nil
}

// RET returns to the most recently pushed address.
func (b *BranchUnit) RET() (PCUpdate, error) {
	addr, err := b.regFile.Pop()
	if err != nil {
		return PCUpdate{}, err
	}
	return jump(addr), nil
}

// SE skips the next instruction if Vx == kk.
func (b *BranchUnit) SE(x, kk uint8) PCUpdate {
	return skipIf(b.regFile.ReadReg(x) == kk)
}

// SNE skips the next instruction if Vx != kk.
func (b *BranchUnit) SNE(x, kk uint8) PCUpdate {
	return skipIf(b.regFile.ReadReg(x) != kk)
}

// SEReg skips the next instruction if Vx == Vy.
func (b *BranchUnit) SEReg(x, y uint8) PCUpdate {
	return skipIf(b.regFile.ReadReg(x) == b.regFile.ReadReg(y))
}

// SNEReg skips the next instruction if Vx != Vy.
func (b *BranchUnit) SNEReg(x, y uint8) PCUpdate {
	return skipIf(b.regFile.ReadReg(x) != b.regFile.ReadReg(y))
}
