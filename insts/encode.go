package insts

// Instruction encoding helpers. They are the inverse of Decode and are used
// to build programs in tests and benchmarks without a separate assembler.

// BuildProgram assembles instruction words into a big-endian byte slice
// ready to be loaded at the program start address.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func encodeAddr(family uint16, nnn uint16) uint16 {
	return family<<12 | nnn&0x0FFF
}

func encodeRegImm(family uint16, x uint8, kk uint8) uint16 {
	return family<<12 | uint16(x&0xF)<<8 | uint16(kk)
}

func encodeRegReg(family uint16, x, y uint8, n uint8) uint16 {
	return family<<12 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeCLS encodes 00E0.
func EncodeCLS() uint16 { return 0x00E0 }

// EncodeRET encodes 00EE.
func EncodeRET() uint16 { return 0x00EE }

// EncodeJP encodes 1nnn: PC = nnn
func EncodeJP(nnn uint16) uint16 { return encodeAddr(0x1, nnn) }

// EncodeCALL encodes 2nnn: push PC+2, PC = nnn
func EncodeCALL(nnn uint16) uint16 { return encodeAddr(0x2, nnn) }

// EncodeSE encodes 3xkk: skip if Vx == kk
func EncodeSE(x, kk uint8) uint16 { return encodeRegImm(0x3, x, kk) }

// EncodeSNE encodes 4xkk: skip if Vx != kk
func EncodeSNE(x, kk uint8) uint16 { return encodeRegImm(0x4, x, kk) }

// EncodeSEReg encodes 5xy0: skip if Vx == Vy
func EncodeSEReg(x, y uint8) uint16 { return encodeRegReg(0x5, x, y, 0x0) }

// EncodeLD encodes 6xkk: Vx = kk
func EncodeLD(x, kk uint8) uint16 { return encodeRegImm(0x6, x, kk) }

// EncodeADD encodes 7xkk: Vx = Vx + kk
func EncodeADD(x, kk uint8) uint16 { return encodeRegImm(0x7, x, kk) }

// EncodeLDReg encodes 8xy0: Vx = Vy
func EncodeLDReg(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x0) }

// EncodeOR encodes 8xy1: Vx = Vx | Vy
func EncodeOR(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x1) }

// EncodeAND encodes 8xy2: Vx = Vx & Vy
func EncodeAND(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x2) }

// EncodeXOR encodes 8xy3: Vx = Vx ^ Vy
func EncodeXOR(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x3) }

// EncodeADDReg encodes 8xy4: Vx = Vx + Vy, VF = carry
func EncodeADDReg(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x4) }

// EncodeSUB encodes 8xy5: Vx = Vx - Vy, VF = Vx > Vy
func EncodeSUB(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x5) }

// EncodeSHR encodes 8xy6: VF = Vx & 1, Vx >>= 1
func EncodeSHR(x uint8) uint16 { return encodeRegReg(0x8, x, 0, 0x6) }

// EncodeSUBN encodes 8xy7: Vx = Vy - Vx, VF = Vy > Vx
func EncodeSUBN(x, y uint8) uint16 { return encodeRegReg(0x8, x, y, 0x7) }

// EncodeSHL encodes 8xyE: VF = Vx >> 7, Vx <<= 1
func EncodeSHL(x uint8) uint16 { return encodeRegReg(0x8, x, 0, 0xE) }

// EncodeSNEReg encodes 9xy0: skip if Vx != Vy
func EncodeSNEReg(x, y uint8) uint16 { return encodeRegReg(0x9, x, y, 0x0) }

// EncodeLDI encodes Annn: I = nnn
func EncodeLDI(nnn uint16) uint16 { return encodeAddr(0xA, nnn) }

// EncodeJPV0 encodes Bnnn: PC = nnn + V0
func EncodeJPV0(nnn uint16) uint16 { return encodeAddr(0xB, nnn) }

// EncodeRND encodes Cxkk: Vx = random & kk
func EncodeRND(x, kk uint8) uint16 { return encodeRegImm(0xC, x, kk) }

// EncodeDRW encodes Dxyn: draw n rows from [I] at (Vx, Vy)
func EncodeDRW(x, y, n uint8) uint16 { return encodeRegReg(0xD, x, y, n) }

// EncodeSKP encodes Ex9E: skip if key Vx is pressed
func EncodeSKP(x uint8) uint16 { return encodeRegImm(0xE, x, 0x9E) }

// EncodeSKNP encodes ExA1: skip if key Vx is not pressed
func EncodeSKNP(x uint8) uint16 { return encodeRegImm(0xE, x, 0xA1) }

// EncodeLDVxDT encodes Fx07: Vx = DT
func EncodeLDVxDT(x uint8) uint16 { return encodeRegImm(0xF, x, 0x07) }

// EncodeLDVxK encodes Fx0A: wait for a key, Vx = key
func EncodeLDVxK(x uint8) uint16 { return encodeRegImm(0xF, x, 0x0A) }

// EncodeLDDTVx encodes Fx15: DT = Vx
func EncodeLDDTVx(x uint8) uint16 { return encodeRegImm(0xF, x, 0x15) }

// EncodeLDSTVx encodes Fx18: ST = Vx
func EncodeLDSTVx(x uint8) uint16 { return encodeRegImm(0xF, x, 0x18) }

// EncodeADDI encodes Fx1E: I = I + Vx
func EncodeADDI(x uint8) uint16 { return encodeRegImm(0xF, x, 0x1E) }

// EncodeLDF encodes Fx29: I = glyph address of Vx
func EncodeLDF(x uint8) uint16 { return encodeRegImm(0xF, x, 0x29) }

// EncodeLDB encodes Fx33: BCD of Vx at [I]
func EncodeLDB(x uint8) uint16 { return encodeRegImm(0xF, x, 0x33) }

// EncodeLDIVx encodes Fx55: store V0..Vx at [I]
func EncodeLDIVx(x uint8) uint16 { return encodeRegImm(0xF, x, 0x55) }

// EncodeLDVxI encodes Fx65: load V0..Vx from [I]
func EncodeLDVxI(x uint8) uint16 { return encodeRegImm(0xF, x, 0x65) }
