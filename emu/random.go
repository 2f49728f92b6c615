// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"io"
	"math/rand/v2"
)

// pcgSource is the default random byte source.
type pcgSource struct {
	rng *rand.Rand
}

// NewRandSource returns a deterministic random byte source seeded with seed.
func NewRandSource(seed uint64) io.ByteReader {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// ReadByte returns the next pseudo-random byte. It never fails.
func (s *pcgSource) ReadByte() (byte, error) {
	return byte(s.rng.Uint32()), nil
}
