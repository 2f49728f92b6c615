package emu_test

import (
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/insts"
)

var _ = Describe("Emulator", func() {
	var e *emu.Emulator

	load := func(words ...uint16) {
		Expect(e.LoadProgram(insts.BuildProgram(words...))).To(Succeed())
	}

	run := func(n int) emu.StepResult {
		var result emu.StepResult
		for i := 0; i < n; i++ {
			result = e.Step()
			Expect(result.Err).NotTo(HaveOccurred())
		}
		return result
	}

	BeforeEach(func() {
		e = emu.NewEmulator(emu.WithSeed(1))
	})

	Describe("NewEmulator", func() {
		It("should create an emulator with initialized components", func() {
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.Memory()).NotTo(BeNil())
			Expect(e.Display()).NotTo(BeNil())
			Expect(e.Gamepad()).NotTo(BeNil())
		})

		It("should power on at the program start address", func() {
			Expect(e.RegFile().PC).To(Equal(uint16(emu.ProgramStart)))
			Expect(e.RegFile().SP).To(BeZero())
			Expect(e.State()).To(Equal(emu.StateRunning))
			Expect(e.InstructionCount()).To(BeZero())
		})

		It("should preload the font", func() {
			font, err := e.Memory().Slice(emu.FontAddress, len(emu.FontSet))
			Expect(err).NotTo(HaveOccurred())
			Expect(font).To(Equal(emu.FontSet[:]))
		})

		It("should use the standard sizes by default", func() {
			Expect(e.Memory().Size()).To(Equal(4096))
			Expect(e.Display().Width()).To(Equal(64))
			Expect(e.Display().Height()).To(Equal(32))
		})

		It("should honor size options", func() {
			e = emu.NewEmulator(emu.WithMemorySize(0x400), emu.WithDisplaySize(8, 4))
			Expect(e.Memory().Size()).To(Equal(0x400))
			Expect(e.Step().Pixels).To(HaveLen(32))
		})

		It("should ignore sizes it cannot use", func() {
			e = emu.NewEmulator(emu.WithMemorySize(0x100), emu.WithDisplaySize(0, 32))
			Expect(e.Memory().Size()).To(Equal(emu.DefaultMemorySize))
			Expect(e.Display().Width()).To(Equal(emu.DefaultDisplayWidth))
		})
	})

	Describe("LoadProgram", func() {
		It("should copy the image to the program start address", func() {
			Expect(e.LoadProgram([]byte{0xDE, 0xAD, 0xBE, 0xEF})).To(Succeed())

			data, err := e.Memory().Slice(emu.ProgramStart, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
		})

		It("should accept an empty image", func() {
			Expect(e.LoadProgram(nil)).To(Succeed())
			Expect(e.RegFile().PC).To(Equal(uint16(emu.ProgramStart)))
		})

		It("should accept an image that fills memory exactly", func() {
			Expect(e.LoadProgram(make([]byte, 4096-0x200))).To(Succeed())
		})

		It("should reject an image that does not fit", func() {
			err := e.LoadProgram(make([]byte, 4096-0x200+1))
			Expect(errors.Is(err, emu.ErrProgramTooLarge)).To(BeTrue())
			Expect(emu.IsFault(err)).To(BeFalse())
		})
	})

	Describe("Step", func() {
		Context("timers", func() {
			It("should decrement the sound timer once per step", func() {
				load(insts.EncodeJP(0x200))
				e.RegFile().ST = 4

				result := run(1)

				Expect(e.SoundTimer()).To(Equal(uint8(3)))
				Expect(result.Beep).To(BeTrue())
			})

			It("should not underflow a zero sound timer", func() {
				load(insts.EncodeJP(0x200))

				result := run(1)

				Expect(e.SoundTimer()).To(BeZero())
				Expect(result.Beep).To(BeFalse())
			})

			It("should stop beeping when the sound timer runs out", func() {
				load(insts.EncodeJP(0x200))
				e.RegFile().ST = 1

				Expect(run(1).Beep).To(BeFalse())
			})

			It("should decrement before the instruction executes", func() {
				load(
					insts.EncodeLD(0x1, 10),
					insts.EncodeLDDTVx(0x1),
					insts.EncodeLDVxDT(0x2),
				)

				run(3)

				Expect(e.RegFile().V[2]).To(Equal(uint8(9)))
				Expect(e.DelayTimer()).To(Equal(uint8(9)))
			})

			It("should set the sound timer from a register", func() {
				load(insts.EncodeLD(0x3, 5), insts.EncodeLDSTVx(0x3))

				run(2)

				Expect(e.SoundTimer()).To(Equal(uint8(5)))
			})
		})

		Context("register arithmetic", func() {
			It("should load and add immediates", func() {
				load(insts.EncodeLD(0x1, 0x12), insts.EncodeADD(0x1, 0x05))

				run(1)
				Expect(e.RegFile().V[1]).To(Equal(uint8(0x12)))
				run(1)
				Expect(e.RegFile().V[1]).To(Equal(uint8(0x17)))
			})

			It("should wrap 7xkk without touching VF", func() {
				load(insts.EncodeLD(0x1, 0xFF), insts.EncodeADD(0x1, 0x01))
				e.RegFile().V[0xF] = 0x42

				run(2)

				Expect(e.RegFile().V[1]).To(BeZero())
				Expect(e.RegFile().V[0xF]).To(Equal(uint8(0x42)))
			})

			It("should advance the program counter by two", func() {
				load(insts.EncodeLD(0x1, 0x12))

				run(1)

				Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
				Expect(e.InstructionCount()).To(Equal(uint64(1)))
			})

			DescribeTable("8xyN",
				func(word uint16, vx, vy, wantVx, wantVF uint8) {
					load(word)
					e.RegFile().V[0xA] = vx
					e.RegFile().V[0xB] = vy

					run(1)

					Expect(e.RegFile().V[0xA]).To(Equal(wantVx))
					Expect(e.RegFile().V[0xF]).To(Equal(wantVF))
				},
				Entry("ADD with carry", insts.EncodeADDReg(0xA, 0xB), uint8(0xFF), uint8(0x01), uint8(0x00), uint8(1)),
				Entry("ADD without carry", insts.EncodeADDReg(0xA, 0xB), uint8(0x01), uint8(0x01), uint8(0x02), uint8(0)),
				Entry("SUB without borrow", insts.EncodeSUB(0xA, 0xB), uint8(0x05), uint8(0x03), uint8(0x02), uint8(1)),
				Entry("SUB of equal values", insts.EncodeSUB(0xA, 0xB), uint8(0x05), uint8(0x05), uint8(0x00), uint8(0)),
				Entry("SUB with borrow", insts.EncodeSUB(0xA, 0xB), uint8(0x03), uint8(0x05), uint8(0xFE), uint8(0)),
				Entry("SUBN without borrow", insts.EncodeSUBN(0xA, 0xB), uint8(0x03), uint8(0x05), uint8(0x02), uint8(1)),
				Entry("SUBN of equal values", insts.EncodeSUBN(0xA, 0xB), uint8(0x05), uint8(0x05), uint8(0x00), uint8(0)),
				Entry("SUBN with borrow", insts.EncodeSUBN(0xA, 0xB), uint8(0x05), uint8(0x03), uint8(0xFE), uint8(0)),
				Entry("SHR odd", insts.EncodeSHR(0xA), uint8(0x05), uint8(0), uint8(0x02), uint8(1)),
				Entry("SHR even", insts.EncodeSHR(0xA), uint8(0x04), uint8(0), uint8(0x02), uint8(0)),
				Entry("SHL high bit", insts.EncodeSHL(0xA), uint8(0x81), uint8(0), uint8(0x02), uint8(1)),
				Entry("SHL low bits", insts.EncodeSHL(0xA), uint8(0x41), uint8(0), uint8(0x82), uint8(0)),
			)

			DescribeTable("bitwise operations leave VF alone",
				func(word uint16, want uint8) {
					load(word)
					e.RegFile().V[0xA] = 0x0C
					e.RegFile().V[0xB] = 0x0A
					e.RegFile().V[0xF] = 0x77

					run(1)

					Expect(e.RegFile().V[0xA]).To(Equal(want))
					Expect(e.RegFile().V[0xF]).To(Equal(uint8(0x77)))
				},
				Entry("LD", insts.EncodeLDReg(0xA, 0xB), uint8(0x0A)),
				Entry("OR", insts.EncodeOR(0xA, 0xB), uint8(0x0E)),
				Entry("AND", insts.EncodeAND(0xA, 0xB), uint8(0x08)),
				Entry("XOR", insts.EncodeXOR(0xA, 0xB), uint8(0x06)),
			)

			It("should let the result win when VF is the destination", func() {
				load(insts.EncodeADDReg(0xF, 0x1))
				e.RegFile().V[0xF] = 0x10
				e.RegFile().V[0x1] = 0x20

				run(1)

				Expect(e.RegFile().V[0xF]).To(Equal(uint8(0x30)))
			})

			DescribeTable("result overwriting the flag in VF",
				func(word uint16, vf, v1, expected uint8) {
					load(word)
					e.RegFile().V[0xF] = vf
					e.RegFile().V[0x1] = v1

					run(1)

					Expect(e.RegFile().V[0xF]).To(Equal(expected))
				},
				Entry("SUB", insts.EncodeSUB(0xF, 0x1), uint8(0x30), uint8(0x10), uint8(0x20)),
				Entry("SUBN", insts.EncodeSUBN(0xF, 0x1), uint8(0x10), uint8(0x30), uint8(0x20)),
				Entry("SHR", insts.EncodeSHR(0xF), uint8(0x05), uint8(0), uint8(0x00)),
				Entry("SHL", insts.EncodeSHL(0xF), uint8(0x81), uint8(0), uint8(0x02)),
			)

			It("should AND a random byte with kk", func() {
				e = emu.NewEmulator(emu.WithRandSource(bytes.NewReader([]byte{0xAB})))
				load(insts.EncodeRND(0x4, 0x0F))

				run(1)

				Expect(e.RegFile().V[4]).To(Equal(uint8(0x0B)))
			})

			It("should be reproducible with a seed", func() {
				load(insts.EncodeRND(0x4, 0xFF))
				run(1)
				first := e.RegFile().V[4]

				e = emu.NewEmulator(emu.WithSeed(1))
				load(insts.EncodeRND(0x4, 0xFF))
				run(1)

				Expect(e.RegFile().V[4]).To(Equal(first))
			})
		})

		Context("control flow", func() {
			It("should jump", func() {
				load(insts.EncodeJP(0x345))

				run(1)

				Expect(e.RegFile().PC).To(Equal(uint16(0x345)))
			})

			It("should jump relative to V0", func() {
				load(insts.EncodeLD(0x0, 0x10), insts.EncodeJPV0(0x300))

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0x310)))
			})

			It("should return to the instruction after a call", func() {
				words := make([]uint16, 0x81)
				words[0] = insts.EncodeCALL(0x300)
				words[0x80] = insts.EncodeRET()
				load(words...)

				run(1)
				Expect(e.RegFile().PC).To(Equal(uint16(0x300)))
				Expect(e.RegFile().SP).To(Equal(uint8(1)))

				run(1)
				Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
				Expect(e.RegFile().SP).To(BeZero())
			})

			DescribeTable("conditional skips",
				func(word uint16, wantPC uint16) {
					load(word)
					e.RegFile().V[0x1] = 0x42
					e.RegFile().V[0x2] = 0x42
					e.RegFile().V[0x3] = 0x07

					run(1)

					Expect(e.RegFile().PC).To(Equal(wantPC))
				},
				Entry("SE taken", insts.EncodeSE(0x1, 0x42), uint16(0x204)),
				Entry("SE not taken", insts.EncodeSE(0x1, 0x41), uint16(0x202)),
				Entry("SNE taken", insts.EncodeSNE(0x1, 0x41), uint16(0x204)),
				Entry("SNE not taken", insts.EncodeSNE(0x1, 0x42), uint16(0x202)),
				Entry("SE reg taken", insts.EncodeSEReg(0x1, 0x2), uint16(0x204)),
				Entry("SE reg not taken", insts.EncodeSEReg(0x1, 0x3), uint16(0x202)),
				Entry("SNE reg taken", insts.EncodeSNEReg(0x1, 0x3), uint16(0x204)),
				Entry("SNE reg not taken", insts.EncodeSNEReg(0x1, 0x2), uint16(0x202)),
			)

			It("should treat unknown words as no-ops", func() {
				load(0x0123, 0x5AB1)

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0x204)))
				Expect(e.State()).To(Equal(emu.StateRunning))
			})
		})

		Context("index register and memory", func() {
			It("should load and add to I", func() {
				load(insts.EncodeLDI(0x2F0), insts.EncodeLD(0x1, 0x10), insts.EncodeADDI(0x1))

				run(3)

				Expect(e.RegFile().I).To(Equal(uint16(0x300)))
			})

			It("should point I at a font glyph", func() {
				load(insts.EncodeLD(0x1, 0xA), insts.EncodeLDF(0x1))

				run(2)

				Expect(e.RegFile().I).To(Equal(uint16(0xA * 5)))
			})

			It("should store the decimal digits of Vx", func() {
				load(insts.EncodeLDI(0x300), insts.EncodeLD(0x1, 156), insts.EncodeLDB(0x1))

				run(3)

				digits, err := e.Memory().Slice(0x300, 3)
				Expect(err).NotTo(HaveOccurred())
				Expect(digits).To(Equal([]byte{1, 5, 6}))
			})

			It("should store and load registers V0 through Vx", func() {
				load(
					insts.EncodeLDI(0x300),
					insts.EncodeLD(0x0, 0x11),
					insts.EncodeLD(0x1, 0x22),
					insts.EncodeLD(0x2, 0x33),
					insts.EncodeLD(0x3, 0x44),
					insts.EncodeLDIVx(0x2),
				)
				run(6)

				stored, err := e.Memory().Slice(0x300, 4)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored).To(Equal([]byte{0x11, 0x22, 0x33, 0x00}))
				Expect(e.RegFile().I).To(Equal(uint16(0x300)))

				load(insts.EncodeLDI(0x300), insts.EncodeLDVxI(0x1))
				Expect(e.Memory().Store(0x300, []byte{0xAA, 0xBB, 0xCC})).To(Succeed())
				run(2)

				Expect(e.RegFile().V[0]).To(Equal(uint8(0xAA)))
				Expect(e.RegFile().V[1]).To(Equal(uint8(0xBB)))
				Expect(e.RegFile().V[2]).To(BeZero())
			})
		})

		Context("drawing", func() {
			It("should draw a font glyph and report no collision", func() {
				load(insts.EncodeLDI(0x000), insts.EncodeDRW(0x0, 0x1, 5))

				result := run(2)

				Expect(e.RegFile().V[0xF]).To(BeZero())
				Expect(result.Pixels[0:4]).To(Equal([]byte{1, 1, 1, 1}))
				Expect(result.Pixels[64:68]).To(Equal([]byte{1, 0, 0, 1}))
			})

			It("should erase the sprite and report a collision when drawn twice", func() {
				load(insts.EncodeLDI(0x000), insts.EncodeDRW(0x0, 0x1, 5), insts.EncodeDRW(0x0, 0x1, 5))

				result := run(3)

				Expect(e.RegFile().V[0xF]).To(Equal(uint8(1)))
				Expect(result.Pixels).To(Equal(make([]byte, 64*32)))
			})

			It("should clear the screen", func() {
				load(insts.EncodeLDI(0x000), insts.EncodeDRW(0x0, 0x0, 5), insts.EncodeCLS())

				result := run(3)

				Expect(result.Pixels).To(Equal(make([]byte, 64*32)))
			})

			It("should draw nothing for a zero-row sprite", func() {
				load(insts.EncodeDRW(0x0, 0x0, 0))
				e.RegFile().V[0xF] = 1

				result := run(1)

				Expect(e.RegFile().V[0xF]).To(BeZero())
				Expect(result.Pixels).To(Equal(make([]byte, 64*32)))
			})
		})

		Context("keys", func() {
			It("should skip when the key in Vx is pressed", func() {
				load(insts.EncodeLD(0x1, 8), insts.EncodeSKP(0x1))
				e.KeyDown("a")

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
			})

			It("should skip when the key in Vx is not pressed", func() {
				load(insts.EncodeLD(0x1, 8), insts.EncodeSKNP(0x1))

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
			})

			It("should treat key indices past 15 as released", func() {
				load(insts.EncodeLD(0x1, 0x18), insts.EncodeSKP(0x1))
				e.KeyDown("a")

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0x204)))
			})

			It("should wait for a key without advancing", func() {
				load(insts.EncodeLDVxK(0x5))

				result := run(1)
				Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
				Expect(result.State).To(Equal(emu.StateAwaitingKey))

				run(1)
				Expect(e.RegFile().PC).To(Equal(uint16(0x200)))

				e.KeyDown("S")
				e.KeyDown("v")
				result = run(1)

				Expect(e.RegFile().V[5]).To(Equal(uint8(9)))
				Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
				Expect(result.State).To(Equal(emu.StateRunning))
			})

			It("should release keys with KeyUp", func() {
				e.KeyDown("q")
				Expect(e.Gamepad().IsKeyPressed("q")).To(BeTrue())
				e.KeyUp("Q")
				Expect(e.Gamepad().IsKeyPressed("q")).To(BeFalse())
			})
		})
	})

	Describe("faults", func() {
		expectFault := func(result emu.StepResult, sentinel error, kind emu.FaultKind) *emu.Fault {
			Expect(errors.Is(result.Err, sentinel)).To(BeTrue())

			var fault *emu.Fault
			Expect(errors.As(result.Err, &fault)).To(BeTrue())
			Expect(fault.Kind).To(Equal(kind))
			Expect(result.State).To(Equal(emu.StateFaulted))
			return fault
		}

		It("should fault on the seventeenth nested call", func() {
			load(insts.EncodeCALL(0x200))

			run(16)
			Expect(e.RegFile().SP).To(Equal(uint8(16)))

			fault := expectFault(e.Step(), emu.ErrStackOverflow, emu.FaultStackOverflow)
			Expect(fault.PC).To(Equal(uint16(0x200)))
			Expect(fault.Opcode).To(Equal(uint16(0x2200)))
			Expect(e.RegFile().SP).To(Equal(uint8(16)))
		})

		It("should fault on a return with an empty stack", func() {
			load(insts.EncodeRET())

			expectFault(e.Step(), emu.ErrStackUnderflow, emu.FaultStackUnderflow)
			Expect(e.RegFile().SP).To(BeZero())
		})

		It("should fault when fetching past the end of memory", func() {
			load(insts.EncodeJP(0xFFF))
			run(1)

			fault := expectFault(e.Step(), emu.ErrMemoryOutOfRange, emu.FaultMemoryOutOfRange)
			Expect(fault.PC).To(Equal(uint16(0xFFF)))
			Expect(fault.Opcode).To(BeZero())
		})

		Context("at the top of a 64 KiB memory", func() {
			jumpToTop := func(word uint16) {
				e = emu.NewEmulator(emu.WithMemorySize(emu.MaxMemorySize))
				load(insts.EncodeJP(0xFFFE))
				Expect(e.Memory().Store(0xFFFE, insts.BuildProgram(word))).To(Succeed())
				run(1)
			}

			It("should fault instead of wrapping the program counter", func() {
				jumpToTop(insts.EncodeLD(0x0, 0x01))

				fault := expectFault(e.Step(), emu.ErrMemoryOutOfRange, emu.FaultMemoryOutOfRange)
				Expect(fault.PC).To(Equal(uint16(0xFFFE)))
				Expect(fault.Opcode).To(Equal(uint16(0x6001)))
				Expect(fault.Addr).To(Equal(uint16(0xFFFE)))
				Expect(e.RegFile().PC).To(Equal(uint16(0xFFFE)))
			})

			It("should fault instead of pushing a wrapped return address", func() {
				jumpToTop(insts.EncodeCALL(0x200))

				expectFault(e.Step(), emu.ErrMemoryOutOfRange, emu.FaultMemoryOutOfRange)
				Expect(e.RegFile().SP).To(BeZero())
			})

			It("should still execute the last word before the top", func() {
				e = emu.NewEmulator(emu.WithMemorySize(emu.MaxMemorySize))
				load(insts.EncodeJP(0xFFFC))
				Expect(e.Memory().Store(0xFFFC, insts.BuildProgram(insts.EncodeLD(0x0, 0x01)))).To(Succeed())

				run(2)

				Expect(e.RegFile().PC).To(Equal(uint16(0xFFFE)))
			})
		})

		It("should fault on a sprite read past the end of memory", func() {
			load(insts.EncodeLDI(0xFFE), insts.EncodeDRW(0x0, 0x0, 5))
			run(1)

			fault := expectFault(e.Step(), emu.ErrMemoryOutOfRange, emu.FaultMemoryOutOfRange)
			Expect(fault.Addr).To(Equal(uint16(0xFFE)))
			Expect(e.Display().VRAM()).To(Equal(make([]byte, 64*32)))
		})

		It("should write nothing when a register store runs out of memory", func() {
			load(insts.EncodeLDI(0xFFE), insts.EncodeLD(0x0, 0x11), insts.EncodeLDIVx(0x3))
			run(2)

			expectFault(e.Step(), emu.ErrMemoryOutOfRange, emu.FaultMemoryOutOfRange)

			tail, err := e.Memory().Slice(0xFFE, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(tail).To(Equal([]byte{0, 0}))
		})

		It("should fault when the random source fails", func() {
			e = emu.NewEmulator(emu.WithRandSource(bytes.NewReader(nil)))
			load(insts.EncodeRND(0x1, 0xFF))

			expectFault(e.Step(), emu.ErrRandSource, emu.FaultRandSource)
		})

		It("should latch the fault until reset", func() {
			load(insts.EncodeRET())

			first := e.Step()
			second := e.Step()

			Expect(second.Err).To(BeIdenticalTo(first.Err))
			Expect(e.InstructionCount()).To(BeZero())
			Expect(e.Fault()).NotTo(BeNil())

			e.Reset()

			Expect(e.State()).To(Equal(emu.StateRunning))
			Expect(e.Fault()).To(BeNil())
		})
	})

	Describe("instruction limit", func() {
		It("should stop after the configured number of instructions", func() {
			e = emu.NewEmulator(emu.WithMaxInstructions(2))
			load(insts.EncodeJP(0x200))

			run(2)
			result := e.Step()

			Expect(errors.Is(result.Err, emu.ErrInstructionLimit)).To(BeTrue())
			Expect(emu.IsFault(result.Err)).To(BeFalse())
			Expect(e.State()).To(Equal(emu.StateRunning))
		})
	})

	Describe("Reset", func() {
		It("should restore the loaded program and power-on registers", func() {
			load(insts.EncodeLD(0x1, 0x12), insts.EncodeLDI(0x300), insts.EncodeLDIVx(0x1))
			run(3)
			e.KeyDown("1")

			e.Reset()

			Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
			Expect(e.RegFile().V[1]).To(BeZero())
			Expect(e.RegFile().I).To(BeZero())
			Expect(e.InstructionCount()).To(BeZero())
			Expect(e.Gamepad().IsKeyIdxPressed(0)).To(BeFalse())
			Expect(e.Memory().Read8(0x300)).To(BeZero())
			Expect(e.Memory().Read16(0x200)).To(Equal(uint16(0x6112)))
		})
	})

	Describe("Run", func() {
		It("should execute the requested number of steps", func() {
			load(insts.EncodeADD(0x1, 1), insts.EncodeJP(0x200))

			result := e.Run(context.Background(), 10)

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(e.InstructionCount()).To(Equal(uint64(10)))
			Expect(e.RegFile().V[1]).To(Equal(uint8(5)))
		})

		It("should stop at a fault", func() {
			load(insts.EncodeRET())

			result := e.Run(context.Background(), 0)

			Expect(errors.Is(result.Err, emu.ErrStackUnderflow)).To(BeTrue())
		})

		It("should stop when the context is done", func() {
			load(insts.EncodeJP(0x200))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result := e.Run(ctx, 0)

			Expect(result.Err).To(MatchError(context.Canceled))
			Expect(e.InstructionCount()).To(BeZero())
		})
	})

	Describe("trace", func() {
		It("should write one line per instruction", func() {
			var buf bytes.Buffer
			e = emu.NewEmulator(emu.WithTrace(&buf))
			load(insts.EncodeLD(0xA, 0x12), insts.EncodeLDI(0x2F0))

			run(2)

			Expect(buf.String()).To(Equal("200  6A12  LD VA, $12\n202  A2F0  LD I, $2F0\n"))
		})
	})
})
