// Package ui is the immediate mode interaction layer the editor runs on. The
// host fills an Input once per frame; widgets ask the Context how the pointer
// interacts with the rectangles they allocate.
package ui

import (
	"image"

	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/geom"
)

// Input is the host's snapshot of one frame. Positions are in render space.
type Input struct {
	Pointer      geom.Point
	PointerValid bool

	// Down is the primary button state at the end of the frame. Pressed and
	// Released report edges seen during the frame; both may be set.
	Down     bool
	Pressed  bool
	Released bool

	Modifiers key.Modifiers
	// Keys lists the keys pressed during the frame.
	Keys []key.Code
	// Runes is text typed during the frame.
	Runes []rune

	// Screen is the area available to the editor.
	Screen geom.Rect
	// PixelsPerPoint converts render space to device pixels.
	PixelsPerPoint float64

	// Capture carries a surface capture the host finished since the last
	// frame.
	Capture *image.RGBA
}

// KeyPressed reports whether code was pressed this frame.
func (in Input) KeyPressed(code key.Code) bool {
	for _, k := range in.Keys {
		if k == code {
			return true
		}
	}
	return false
}

// Shift reports whether a shift key is held.
func (in Input) Shift() bool { return in.Modifiers&key.ModShift != 0 }

// Command reports whether control (or the meta key) is held.
func (in Input) Command() bool {
	return in.Modifiers&(key.ModControl|key.ModMeta) != 0
}

// WithoutKeys returns a copy of in with keyboard input removed.
func (in Input) WithoutKeys() Input {
	in.Keys = nil
	in.Runes = nil
	return in
}

// Scale returns PixelsPerPoint, defaulting to 1.
func (in Input) Scale() float64 {
	if in.PixelsPerPoint <= 0 {
		return 1
	}
	return in.PixelsPerPoint
}
