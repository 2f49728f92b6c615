// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"image"
	"image/color"
)

// Default display dimensions.
const (
	DefaultDisplayWidth  = 64
	DefaultDisplayHeight = 32
)

// Display is a monochrome framebuffer drawn with XOR sprites.
type Display struct {
	width  int
	height int
	pixels []bool
	dirty  bool
}

// NewDisplay creates a cleared display of the given size.
func NewDisplay(width, height int) *Display {
	return &Display{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (d *Display) Width() int {
	return d.width
}

// Height returns the number of rows.
func (d *Display) Height() int {
	return d.height
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = false
	}
	d.dirty = true
}

// DrawSprite XORs sprite onto the display with its top-left corner at
// (x, y). Each byte is one row, most significant bit leftmost. Coordinates
// wrap around both edges independently. It reports whether any lit pixel
// was turned off.
func (d *Display) DrawSprite(x, y int, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		py := wrap(y+row, d.height)
		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			idx := py*d.width + wrap(x+bit, d.width)
			if d.pixels[idx] {
				collision = true
			}
			d.pixels[idx] = !d.pixels[idx]
			d.dirty = true
		}
	}

	return collision
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates outside
// the display report false.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	return d.pixels[y*d.width+x]
}

// VRAM returns a row-major copy of the framebuffer, one byte per pixel,
// 1 for lit and 0 for dark.
func (d *Display) VRAM() []byte {
	out := make([]byte, len(d.pixels))
	for i, on := range d.pixels {
		if on {
			out[i] = 1
		}
	}
	return out
}

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty resets the redraw flag.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// Image renders the framebuffer as an RGBA image, one image pixel per
// display pixel.
func (d *Display) Image(on, off color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			if d.pixels[y*d.width+x] {
				img.Set(x, y, on)
			} else {
				img.Set(x, y, off)
			}
		}
	}
	return img
}
