package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8/insts"
)

var _ = Describe("Encoding helpers", func() {
	It("should lay out programs big-endian", func() {
		program := insts.BuildProgram(0xA2F0, 0x00E0)

		Expect(program).To(Equal([]byte{0xA2, 0xF0, 0x00, 0xE0}))
	})

	It("should produce words the decoder resolves back", func() {
		cases := map[uint16]insts.Op{
			insts.EncodeCALL(0x300):   insts.OpCALL,
			insts.EncodeSE(1, 0x12):   insts.OpSE,
			insts.EncodeSEReg(1, 2):   insts.OpSEReg,
			insts.EncodeADDReg(3, 4):  insts.OpADDReg,
			insts.EncodeSHL(5):        insts.OpSHL,
			insts.EncodeSNEReg(6, 7):  insts.OpSNEReg,
			insts.EncodeDRW(0, 1, 5):  insts.OpDRW,
			insts.EncodeSKNP(2):       insts.OpSKNP,
			insts.EncodeLDVxK(9):      insts.OpLDVxK,
			insts.EncodeLDVxI(0xF):    insts.OpLDVxI,
			insts.EncodeJPV0(0x400):   insts.OpJPV0,
			insts.EncodeRND(0xA, 0xF): insts.OpRND,
		}

		for word, op := range cases {
			Expect(insts.Decode(word).Op).To(Equal(op), "word %04X", word)
		}
	})

	It("should mask register indices and addresses", func() {
		Expect(insts.EncodeJP(0xF123)).To(Equal(uint16(0x1123)))
		Expect(insts.EncodeLD(0x1A, 0x12)).To(Equal(uint16(0x6A12)))
	})
})
