// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of 16-bit CHIP-8 instruction words into
// structured instruction representations. It supports the full base
// instruction set:
//   - System and flow control: CLS, RET, JP, CALL, JP V0
//   - Conditional skips: SE, SNE, SKP, SKNP
//   - Register loads and ALU: LD, ADD, OR, AND, XOR, SUB, SUBN, SHR, SHL, RND
//   - Memory and timers: LD I, ADD I, LD F, LD B, LD [I], LD DT, LD ST, LD K
//   - Graphics: DRW
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0xA2F0) // LD I, $2F0
//	fmt.Printf("Op: %v, NNN: %03X\n", inst.Op, inst.NNN)
package insts
