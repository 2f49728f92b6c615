package emu_test

import (
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8/emu"
)

var _ = Describe("Display", func() {
	var d *emu.Display

	BeforeEach(func() {
		d = emu.NewDisplay(64, 32)
	})

	litColumns := func(row int) []int {
		var cols []int
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, row) {
				cols = append(cols, x)
			}
		}
		return cols
	}

	It("should start cleared", func() {
		Expect(d.VRAM()).To(Equal(make([]byte, 64*32)))
		Expect(d.Dirty()).To(BeFalse())
	})

	It("should light a full row without collision", func() {
		Expect(d.DrawSprite(0, 0, []byte{0xFF})).To(BeFalse())
		Expect(litColumns(0)).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7}))
	})

	It("should toggle pixels back off and report a collision", func() {
		d.DrawSprite(0, 0, []byte{0xFF})
		Expect(d.DrawSprite(0, 0, []byte{0xFF})).To(BeTrue())
		Expect(litColumns(0)).To(BeEmpty())
	})

	It("should wrap horizontally", func() {
		d.DrawSprite(60, 0, []byte{0xFF})
		Expect(litColumns(0)).To(Equal([]int{0, 1, 2, 3, 60, 61, 62, 63}))
	})

	It("should wrap vertically", func() {
		d.DrawSprite(0, 31, []byte{0x80, 0x80})
		Expect(d.Pixel(0, 31)).To(BeTrue())
		Expect(d.Pixel(0, 0)).To(BeTrue())
	})

	It("should wrap coordinates past the edge", func() {
		d.DrawSprite(64+2, 32+1, []byte{0x80})
		Expect(d.Pixel(2, 1)).To(BeTrue())
	})

	It("should keep the collision flag once set", func() {
		d.DrawSprite(0, 0, []byte{0x80})
		Expect(d.DrawSprite(0, 0, []byte{0x80, 0x80})).To(BeTrue())
		Expect(d.Pixel(0, 0)).To(BeFalse())
		Expect(d.Pixel(0, 1)).To(BeTrue())
	})

	It("should not touch pixels under zero bits", func() {
		d.DrawSprite(0, 0, []byte{0xFF})
		Expect(d.DrawSprite(0, 0, []byte{0x00})).To(BeFalse())
		Expect(litColumns(0)).To(HaveLen(8))
	})

	It("should export VRAM row-major", func() {
		d.DrawSprite(3, 2, []byte{0x80})
		vram := d.VRAM()
		Expect(vram[2*64+3]).To(Equal(byte(1)))
		Expect(vram).To(HaveLen(64 * 32))
	})

	It("should report pixels outside the display as dark", func() {
		Expect(d.Pixel(-1, 0)).To(BeFalse())
		Expect(d.Pixel(64, 0)).To(BeFalse())
	})

	It("should clear every pixel", func() {
		d.DrawSprite(10, 10, []byte{0xFF, 0xFF})
		d.Clear()
		Expect(d.VRAM()).To(Equal(make([]byte, 64*32)))
	})

	It("should track changes with the dirty flag", func() {
		d.DrawSprite(0, 0, []byte{0x80})
		Expect(d.Dirty()).To(BeTrue())
		d.ClearDirty()
		Expect(d.Dirty()).To(BeFalse())
		d.DrawSprite(0, 0, []byte{0x00})
		Expect(d.Dirty()).To(BeFalse())
	})

	It("should render an image", func() {
		on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
		off := color.RGBA{A: 0xFF}
		d.DrawSprite(1, 0, []byte{0x80})

		img := d.Image(on, off)

		Expect(img.Bounds().Dx()).To(Equal(64))
		Expect(img.Bounds().Dy()).To(Equal(32))
		Expect(img.RGBAAt(1, 0)).To(Equal(on))
		Expect(img.RGBAAt(0, 0)).To(Equal(off))
	})

	It("should support other sizes", func() {
		d = emu.NewDisplay(8, 4)
		d.DrawSprite(6, 3, []byte{0xF0, 0xF0})
		Expect(d.Pixel(7, 3)).To(BeTrue())
		Expect(d.Pixel(0, 3)).To(BeTrue())
		Expect(d.Pixel(1, 0)).To(BeTrue())
		Expect(d.Pixel(2, 0)).To(BeFalse())
	})
})
