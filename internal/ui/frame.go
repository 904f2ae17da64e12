package ui

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/theme"
)

// Cursor is a pointer glyph.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorResizeNW
	CursorResizeNE
	CursorResizeSW
	CursorResizeSE
	CursorResizeW
	CursorResizeE
	CursorResizeN
	CursorResizeS
	CursorText
)

// RenderInfo threads the coordinate space context through every draw call of
// a frame.
type RenderInfo struct {
	// Background is where the source image is displayed, in render space.
	Background geom.Rect
	// PixelRatio is render units per source image pixel.
	PixelRatio float64
	// Font is the family used for text labels by default.
	Font string
	// ShotMode hides interactive chrome while a capture is pending.
	ShotMode bool
}

// FromRatio maps a ratio space point to render space.
func (ri RenderInfo) FromRatio(p geom.Point) geom.Point {
	return geom.FromRatio(p, ri.Background)
}

// ToRatio maps a render space point to ratio space.
func (ri RenderInfo) ToRatio(p geom.Point) geom.Point {
	return geom.ToRatio(p, ri.Background)
}

// FromRatioRect maps a ratio space rect to render space.
func (ri RenderInfo) FromRatioRect(r geom.Rect) geom.Rect {
	return geom.FromRatioRect(r, ri.Background)
}

// ToRatioRect maps a render space rect to ratio space.
func (ri RenderInfo) ToRatioRect(r geom.Rect) geom.Rect {
	return geom.ToRatioRect(r, ri.Background)
}

// Frame bundles what a widget needs to draw and interact during one frame.
type Frame struct {
	Ctx   *Context
	Paint paint.Painter
	Info  RenderInfo
	Theme *theme.Theme
}

// Input is shorthand for f.Ctx.Input().
func (f *Frame) Input() Input { return f.Ctx.Input() }

// Style returns the frame theme or the default one.
func (f *Frame) Style() *theme.Theme {
	if f.Theme == nil {
		return theme.Default()
	}
	return f.Theme
}
