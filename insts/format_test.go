package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8/insts"
)

var _ = Describe("Instruction formatting", func() {
	DescribeTable("String",
		func(word uint16, want string) {
			Expect(insts.Decode(word).String()).To(Equal(want))
		},
		Entry("0x00E0", uint16(0x00E0), "CLS"),
		Entry("0x00EE", uint16(0x00EE), "RET"),
		Entry("0x1234", uint16(0x1234), "JP $234"),
		Entry("0x2300", uint16(0x2300), "CALL $300"),
		Entry("0x3A12", uint16(0x3A12), "SE VA, $12"),
		Entry("0x5AB0", uint16(0x5AB0), "SE VA, VB"),
		Entry("0x6112", uint16(0x6112), "LD V1, $12"),
		Entry("0x8AB4", uint16(0x8AB4), "ADD VA, VB"),
		Entry("0x8A06", uint16(0x8A06), "SHR VA"),
		Entry("0xA2F0", uint16(0xA2F0), "LD I, $2F0"),
		Entry("0xB300", uint16(0xB300), "JP V0, $300"),
		Entry("0xC10F", uint16(0xC10F), "RND V1, $0F"),
		Entry("0xD015", uint16(0xD015), "DRW V0, V1, $5"),
		Entry("0xE39E", uint16(0xE39E), "SKP V3"),
		Entry("0xF307", uint16(0xF307), "LD V3, DT"),
		Entry("0xF30A", uint16(0xF30A), "LD V3, K"),
		Entry("0xF315", uint16(0xF315), "LD DT, V3"),
		Entry("0xF318", uint16(0xF318), "LD ST, V3"),
		Entry("0xF31E", uint16(0xF31E), "ADD I, V3"),
		Entry("0xF329", uint16(0xF329), "LD F, V3"),
		Entry("0xF333", uint16(0xF333), "LD B, V3"),
		Entry("0xF355", uint16(0xF355), "LD [I], V3"),
		Entry("0xF365", uint16(0xF365), "LD V3, [I]"),
		Entry("0x0123", uint16(0x0123), "DW $0123"),
	)
})
