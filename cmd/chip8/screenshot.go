package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/sarchlab/chip8/emu"
)

// writeScreenshot saves the display as a PNG, scale image pixels per
// display pixel.
func writeScreenshot(path string, d *emu.Display, on, off color.Color, scale int) error {
	src := d.Image(on, off)
	if scale < 1 {
		scale = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, d.Width()*scale, d.Height()*scale))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.SetRGBA(x, y, src.RGBAAt(x/scale, y/scale))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}

	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}

	return f.Close()
}
