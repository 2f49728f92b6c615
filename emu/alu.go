// Package emu provides functional CHIP-8 emulation.
package emu

// ALU implements the CHIP-8 register arithmetic and logic operations.
// All arithmetic wraps at 8 bits. Operations that produce a flag write VF
// before the result, so the result wins when x is F.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = kk.
func (a *ALU) LDImm(x, kk uint8) {
	a.regFile.WriteReg(x, kk)
}

// ADDImm performs Vx = Vx + kk without touching VF.
func (a *ALU) ADDImm(x, kk uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+kk)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy, VF = carry.
func (a *ALU) ADD(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)
	sum := uint16(op1) + uint16(op2)

	a.regFile.SetFlag(sum > 0xFF)
	a.regFile.WriteReg(x, uint8(sum))
}

// SUB performs Vx = Vx - Vy, VF = 1 only when Vx > Vy.
func (a *ALU) SUB(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(op1 > op2)
	a.regFile.WriteReg(x, op1-op2)
}

// SUBN performs Vx = Vy - Vx, VF = 1 only when Vy > Vx.
func (a *ALU) SUBN(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(op2 > op1)
	a.regFile.WriteReg(x, op2-op1)
}

// SHR performs VF = the bit shifted out, then Vx = Vx >> 1.
// Vx is read again after the flag write, so 8F06 shifts the flag itself.
func (a *ALU) SHR(x uint8) {
	a.regFile.WriteReg(FlagRegister, a.regFile.ReadReg(x)&0x1)
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)>>1)
}

// SHL performs VF = the bit shifted out, then Vx = Vx << 1.
func (a *ALU) SHL(x uint8) {
	a.regFile.WriteReg(FlagRegister, a.regFile.ReadReg(x)>>7)
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)<<1)
}
