// Package emu provides functional CHIP-8 emulation.
package emu

// LoadStoreUnit implements the CHIP-8 index register and memory transfer
// operations. Every memory access is bounds-checked and nothing is written
// when any part of the range is out of bounds.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LDI performs I = nnn.
func (lsu *LoadStoreUnit) LDI(nnn uint16) {
	lsu.regFile.I = nnn
}

// ADDI performs I = I + Vx, wrapping at 16 bits.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	lsu.regFile.I += uint16(lsu.regFile.ReadReg(x))
}

// LDF sets I = Vx * GlyphSize, the glyph address for hex digit Vx.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	lsu.regFile.I = FontAddress + uint16(lsu.regFile.ReadReg(x))*GlyphSize
}

// LDB stores the decimal digits of Vx at I, I+1 and I+2.
func (lsu *LoadStoreUnit) LDB(x uint8) error {
	v := lsu.regFile.ReadReg(x)
	return lsu.memory.Store(lsu.regFile.I, []byte{v / 100, (v / 10) % 10, v % 10})
}

// STM stores V0 through Vx at I.
func (lsu *LoadStoreUnit) STM(x uint8) error {
	n := int(x&0xF) + 1
	return lsu.memory.Store(lsu.regFile.I, lsu.regFile.V[:n])
}

// LDM loads V0 through Vx from I.
func (lsu *LoadStoreUnit) LDM(x uint8) error {
	n := int(x&0xF) + 1
	data, err := lsu.memory.Slice(lsu.regFile.I, n)
	if err != nil {
		return err
	}
	copy(lsu.regFile.V[:n], data)
	return nil
}

// Sprite returns the n sprite rows starting at I.
func (lsu *LoadStoreUnit) Sprite(n uint8) ([]byte, error) {
	return lsu.memory.Slice(lsu.regFile.I, int(n))
}
