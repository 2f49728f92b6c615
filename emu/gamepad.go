// Package emu provides functional CHIP-8 emulation.
package emu

import "strings"

// NumKeys is the number of keys on the keypad.
const NumKeys = 16

// KeyLayout maps key indices to their symbolic names. Rows of four keys
// follow the left-hand block of a QWERTY keyboard.
var KeyLayout = [NumKeys]string{
	"1", "2", "3", "4",
	"q", "w", "e", "r",
	"a", "s", "d", "f",
	"z", "x", "c", "v",
}

var keyIndex = func() map[string]int {
	m := make(map[string]int, NumKeys)
	for i, name := range KeyLayout {
		m[name] = i
	}
	return m
}()

// Gamepad tracks which of the sixteen keys are held down.
// Names are matched case-insensitively; unknown names are ignored.
type Gamepad struct {
	keys [NumKeys]bool
}

// NewGamepad creates a gamepad with every key released.
func NewGamepad() *Gamepad {
	return &Gamepad{}
}

// KeyIndex returns the index of a key name.
func (g *Gamepad) KeyIndex(name string) (int, bool) {
	idx, ok := keyIndex[strings.ToLower(name)]
	return idx, ok
}

// SetKeyDown marks a key as pressed.
func (g *Gamepad) SetKeyDown(name string) {
	if idx, ok := g.KeyIndex(name); ok {
		g.keys[idx] = true
	}
}

// SetKeyUp marks a key as released.
func (g *Gamepad) SetKeyUp(name string) {
	if idx, ok := g.KeyIndex(name); ok {
		g.keys[idx] = false
	}
}

// IsKeyPressed reports whether the named key is pressed.
func (g *Gamepad) IsKeyPressed(name string) bool {
	idx, ok := g.KeyIndex(name)
	return ok && g.keys[idx]
}

// IsKeyIdxPressed reports whether the key at idx is pressed.
func (g *Gamepad) IsKeyIdxPressed(idx int) bool {
	if idx < 0 || idx >= NumKeys {
		return false
	}
	return g.keys[idx]
}

// FirstPressedKeyIdx returns the lowest pressed key index.
func (g *Gamepad) FirstPressedKeyIdx() (int, bool) {
	for i, down := range g.keys {
		if down {
			return i, true
		}
	}
	return 0, false
}

// Reset releases every key.
func (g *Gamepad) Reset() {
	g.keys = [NumKeys]bool{}
}
