package loader_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8/emu"
	"github.com/sarchlab/chip8/loader"
)

var _ = Describe("Program image loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	writeImage := func(name string, data []byte) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
		return path
	}

	Describe("Load", func() {
		It("should load the image verbatim", func() {
			path := writeImage("pong.ch8", []byte{0x6A, 0x02, 0xA2, 0xF0})

			prog, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Name).To(Equal("pong"))
			Expect(prog.Len()).To(Equal(4))
			Expect(prog.At(2)).To(Equal(byte(0xA2)))
			Expect(prog.Bytes()).To(Equal([]byte{0x6A, 0x02, 0xA2, 0xF0}))
		})

		It("should accept an image of exactly the maximum size", func() {
			path := writeImage("full.ch8", make([]byte, loader.DefaultMaxSize))

			prog, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Len()).To(Equal(4096 - 0x200))
		})

		It("should reject an oversized image", func() {
			path := writeImage("big.ch8", make([]byte, loader.DefaultMaxSize+1))

			_, err := loader.Load(path)

			Expect(errors.Is(err, loader.ErrProgramTooLarge)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("big.ch8"))
		})

		It("should report oversized images with the emulator's sentinel", func() {
			path := writeImage("big.ch8", make([]byte, loader.DefaultMaxSize+1))

			_, err := loader.Load(path)

			Expect(errors.Is(err, emu.ErrProgramTooLarge)).To(BeTrue())
		})

		It("should reject an empty image", func() {
			path := writeImage("empty.ch8", nil)

			_, err := loader.Load(path)

			Expect(err).To(MatchError(loader.ErrEmptyProgram))
		})

		It("should wrap open errors", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.ch8"))

			Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
		})

		It("should honor a custom limit", func() {
			path := writeImage("small.ch8", make([]byte, 16))

			_, err := loader.LoadWithLimit(path, 8)

			Expect(err).To(MatchError(loader.ErrProgramTooLarge))
		})
	})

	Describe("Parse", func() {
		It("should read from any reader", func() {
			prog, err := loader.Parse("inline", bytes.NewReader([]byte{0x00, 0xE0}), 16)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Bytes()).To(Equal([]byte{0x00, 0xE0}))
		})
	})

	Describe("NewProgram", func() {
		It("should copy its input", func() {
			data := []byte{0x12, 0x00}
			prog := loader.NewProgram("loop", data)
			data[0] = 0xFF

			Expect(prog.At(0)).To(Equal(byte(0x12)))
		})
	})
})
