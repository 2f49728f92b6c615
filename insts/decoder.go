package insts

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations. The comment on each names the encoding pattern.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSE         // 3xkk
	OpSNE        // 4xkk
	OpSEReg      // 5xy0
	OpLD         // 6xkk
	OpADD        // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65
)

var opNames = [...]string{
	OpUnknown: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSE:      "SE",
	OpSNE:     "SNE",
	OpSEReg:   "SE",
	OpLD:      "LD",
	OpADD:     "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Format represents the operand layout of an instruction.
type Format uint8

// Instruction formats.
const (
	FormatNone   Format = iota // no operands (CLS, RET) or unknown
	FormatAddr                 // nnn
	FormatRegImm               // x, kk
	FormatRegReg               // x, y
	FormatReg                  // x only
	FormatDraw                 // x, y, n
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Resolved operation
	Format Format // Operand layout

	Raw     uint16   // The undecoded instruction word
	Nibbles [4]uint8 // Nibbles, most significant first

	X   uint8  // Register index, bits 8-11
	Y   uint8  // Register index, bits 4-7
	N   uint8  // 4-bit immediate, bits 0-3
	NNN uint16 // 12-bit address or literal, bits 0-11
	KK  uint8  // 8-bit immediate, bits 0-7
}

// aluOps maps the low nibble of an 8xyN word to its operation.
var aluOps = map[uint8]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

// miscOps maps the low byte of an FxKK word to its operation.
var miscOps = map[uint8]Op{
	0x07: OpLDVxDT,
	0x0A: OpLDVxK,
	0x15: OpLDDTVx,
	0x18: OpLDSTVx,
	0x1E: OpADDI,
	0x29: OpLDF,
	0x33: OpLDB,
	0x55: OpLDIVx,
	0x65: OpLDVxI,
}

// Decoder decodes CHIP-8 instruction words into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Combine joins two consecutive memory bytes into a big-endian
// instruction word.
func Combine(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Decode is a convenience wrapper around Decoder.Decode.
func Decode(word uint16) *Instruction {
	return (&Decoder{}).Decode(word)
}

// Decode decodes a 16-bit CHIP-8 instruction word. Decoding never fails;
// words outside the instruction set decode with Op set to OpUnknown.
// Matching is exact: 5xyN and 9xyN need N == 0 and the E family needs kk
// 9E or A1, so loose variants such as 5xy1, 9xyF or Ex1E are unknown.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Raw: word,
		Nibbles: [4]uint8{
			uint8((word>>12)&0xF),
			uint8((word>>8)&0xF),
			uint8((word>>4)&0xF),
			uint8(word&0xF),
		},
		X:   uint8((word>>8)&0xF),
		Y:   uint8((word>>4)&0xF),
		N:   uint8(word&0xF),
		NNN: word & 0x0FFF,
		KK:  uint8(word&0xFF),
	}

	switch inst.Nibbles[0] {
	case 0x0:
		d.decodeSystem(inst)
	case 0x1:
		inst.Op, inst.Format = OpJP, FormatAddr
	case 0x2:
		inst.Op, inst.Format = OpCALL, FormatAddr
	case 0x3:
		inst.Op, inst.Format = OpSE, FormatRegImm
	case 0x4:
		inst.Op, inst.Format = OpSNE, FormatRegImm
	case 0x5:
		// Only 5xy0 is defined; 5xy1..5xyF stay unknown.
		if inst.N == 0 {
			inst.Op, inst.Format = OpSEReg, FormatRegReg
		}
	case 0x6:
		inst.Op, inst.Format = OpLD, FormatRegImm
	case 0x7:
		inst.Op, inst.Format = OpADD, FormatRegImm
	case 0x8:
		d.decodeALU(inst)
	case 0x9:
		if inst.N == 0 {
			inst.Op, inst.Format = OpSNEReg, FormatRegReg
		}
	case 0xA:
		inst.Op, inst.Format = OpLDI, FormatAddr
	case 0xB:
		inst.Op, inst.Format = OpJPV0, FormatAddr
	case 0xC:
		inst.Op, inst.Format = OpRND, FormatRegImm
	case 0xD:
		inst.Op, inst.Format = OpDRW, FormatDraw
	case 0xE:
		d.decodeKey(inst)
	case 0xF:
		d.decodeMisc(inst)
	}

	return inst
}

// decodeSystem decodes the 0x0 family. Only 00E0 and 00EE are executed;
// 0nnn machine-code calls are left unknown.
func (d *Decoder) decodeSystem(inst *Instruction) {
	switch inst.Raw {
	case 0x00E0:
		inst.Op = OpCLS
	case 0x00EE:
		inst.Op = OpRET
	}
}

// decodeALU decodes the 8xyN register-register family.
func (d *Decoder) decodeALU(inst *Instruction) {
	op, ok := aluOps[inst.N]
	if !ok {
		return
	}

	inst.Op = op
	inst.Format = FormatRegReg
	if op == OpSHR || op == OpSHL {
		inst.Format = FormatReg
	}
}

// decodeKey decodes Ex9E and ExA1.
func (d *Decoder) decodeKey(inst *Instruction) {
	switch inst.KK {
	case 0x9E:
		inst.Op, inst.Format = OpSKP, FormatReg
	case 0xA1:
		inst.Op, inst.Format = OpSKNP, FormatReg
	}
}

// decodeMisc decodes the FxKK timer, keypad and memory family.
func (d *Decoder) decodeMisc(inst *Instruction) {
	if op, ok := miscOps[inst.KK]; ok {
		inst.Op, inst.Format = op, FormatReg
	}
}
