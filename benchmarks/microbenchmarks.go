package benchmarks

import (
	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/insts"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets one group of instructions.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		countdownLoop(),
		functionCalls(),
		branchSkips(),
		carryFlag(),
		bcdConversion(),
		registerSpill(),
		spriteCollision(),
		maskedRandom(),
	}
}

// GetCoreBenchmarks returns a minimal set of benchmarks for quick validation.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countdownLoop(),
		functionCalls(),
		spriteCollision(),
	}
}

// halt returns the self-jump placed at addr that ends a benchmark.
func halt(addr uint16) uint16 {
	return insts.EncodeJP(addr)
}

// addrOf returns the address of the n-th instruction of a program.
func addrOf(n int) uint16 {
	return uint16(emu.ProgramStart + n*emu.InstructionSize)
}

// 1. Arithmetic Sequential - independent immediate adds
func arithmeticSequential() Benchmark {
	words := make([]uint16, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, insts.EncodeADD(uint8(i%5), 1))
	}
	words = append(words, halt(addrOf(20)))

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADD immediates across V0-V4",
		Program:     insts.BuildProgram(words...),
		Expected:    4, // V0 = 4*1
	}
}

// 2. Dependency Chain - every add feeds the next
func dependencyChain() Benchmark {
	words := make([]uint16, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, insts.EncodeADDReg(0x0, 0x1))
	}
	words = append(words, halt(addrOf(20)))

	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADD V0, V1 with carry flag updates",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			regFile.WriteReg(0x1, 3)
		},
		Program:  insts.BuildProgram(words...),
		Expected: 60,
	}
}

// 3. Countdown Loop - backward jump with a conditional skip
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "100 loop iterations using SE and a backward JP",
		Program: insts.BuildProgram(
			insts.EncodeLD(0x1, 100),   // 0x200
			insts.EncodeADD(0x0, 1),    // 0x202 loop:
			insts.EncodeADD(0x1, 0xFF), // 0x204 V1 -= 1
			insts.EncodeSE(0x1, 0),     // 0x206
			insts.EncodeJP(addrOf(1)),  // 0x208
			halt(addrOf(5)),            // 0x20A
		),
		Expected: 100,
	}
}

// 4. Function Calls - CALL/RET pairs
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "4 calls to a subroutine that increments V0",
		Program: insts.BuildProgram(
			insts.EncodeCALL(addrOf(5)), // 0x200
			insts.EncodeCALL(addrOf(5)),
			insts.EncodeCALL(addrOf(5)),
			insts.EncodeCALL(addrOf(5)),
			halt(addrOf(4)),         // 0x208
			insts.EncodeADD(0x0, 1), // 0x20A subroutine
			insts.EncodeRET(),
		),
		Expected: 4,
	}
}

// 5. Branch Skips - taken and not-taken skips of every form
func branchSkips() Benchmark {
	return Benchmark{
		Name:        "branch_skips",
		Description: "SE, SNE and their register forms, taken and not taken",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			regFile.WriteReg(0x1, 7)
			regFile.WriteReg(0x2, 7)
		},
		Program: insts.BuildProgram(
			insts.EncodeSE(0x1, 7),     // taken
			insts.EncodeADD(0x0, 0x10), // skipped
			insts.EncodeSNE(0x1, 7),    // not taken
			insts.EncodeADD(0x0, 1),
			insts.EncodeSEReg(0x1, 0x2),  // taken
			insts.EncodeADD(0x0, 0x10),   // skipped
			insts.EncodeSNEReg(0x1, 0x2), // not taken
			insts.EncodeADD(0x0, 1),
			halt(addrOf(8)),
		),
		Expected: 2,
	}
}

// 6. Carry Flag - VF after an overflowing add
func carryFlag() Benchmark {
	return Benchmark{
		Name:        "carry_flag",
		Description: "ADD with carry, SUB with borrow and shifts collected in V0",
		Program: insts.BuildProgram(
			insts.EncodeLD(0x1, 0xFF),
			insts.EncodeLD(0x2, 0x01),
			insts.EncodeADDReg(0x1, 0x2), // VF = 1
			insts.EncodeADDReg(0x0, 0xF), // V0 = 1
			insts.EncodeSUB(0x1, 0x2),    // 0 - 1 borrows, VF = 0
			insts.EncodeADDReg(0x0, 0xF), // V0 = 1
			insts.EncodeLD(0x3, 0x81),
			insts.EncodeSHL(0x3),         // VF = 1
			insts.EncodeADDReg(0x0, 0xF), // V0 = 2
			insts.EncodeSHR(0x3),         // 0x02 >> 1, VF = 0
			insts.EncodeADDReg(0x0, 0xF), // V0 = 2
			halt(addrOf(11)),
		),
		Expected: 2,
	}
}

// 7. BCD Conversion - LD B, Vx then reading the digits back
func bcdConversion() Benchmark {
	return Benchmark{
		Name:        "bcd_conversion",
		Description: "BCD of 234 stored at I and loaded into V0-V2",
		Program: insts.BuildProgram(
			insts.EncodeLDI(0x300),
			insts.EncodeLD(0x3, 234),
			insts.EncodeLDB(0x3),
			insts.EncodeLDVxI(0x2), // V0 = 2, V1 = 3, V2 = 4
			insts.EncodeADDReg(0x0, 0x1),
			insts.EncodeADDReg(0x0, 0x2),
			halt(addrOf(6)),
		),
		Expected: 9,
	}
}

// 8. Register Spill - store registers, clobber them, reload
func registerSpill() Benchmark {
	return Benchmark{
		Name:        "register_spill",
		Description: "LD [I], V3 followed by LD V3, [I] after clobbering V0",
		Program: insts.BuildProgram(
			insts.EncodeLD(0x0, 0x55),
			insts.EncodeLD(0x3, 0xAA),
			insts.EncodeLDI(0x400),
			insts.EncodeLDIVx(0x3),
			insts.EncodeLD(0x0, 0x00),
			insts.EncodeLDVxI(0x3),
			halt(addrOf(6)),
		),
		Expected: 0x55,
	}
}

// 9. Sprite Collision - drawing the same glyph twice
func spriteCollision() Benchmark {
	return Benchmark{
		Name:        "sprite_collision",
		Description: "draws font glyph 8 twice and reads the collision flag",
		Program: insts.BuildProgram(
			insts.EncodeLD(0x5, 0x8),
			insts.EncodeLDF(0x5),
			insts.EncodeLD(0x6, 60), // wraps horizontally
			insts.EncodeDRW(0x6, 0x6, 5),
			insts.EncodeDRW(0x6, 0x6, 5),
			insts.EncodeLDReg(0x0, 0xF),
			halt(addrOf(6)),
		),
		Expected: 1,
	}
}

// 10. Masked Random - RND with a zero mask is deterministic
func maskedRandom() Benchmark {
	return Benchmark{
		Name:        "masked_random",
		Description: "RND V0 with mask 0x00 always yields zero",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			regFile.WriteReg(0x0, 0xFF)
		},
		Program: insts.BuildProgram(
			insts.EncodeRND(0x0, 0x00),
			halt(addrOf(1)),
		),
		Expected: 0,
	}
}
