// Package manip holds the move and resize state machines shared by every
// annotation and the crop rectangle.
package manip

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/ui"
)

const (
	// ArrowStep is how far one arrow key press moves a selection.
	ArrowStep = 3.0
	// HandleHit is the side of a handle's hit box.
	HandleHit = 10.0

	handleGlyph      = 6.0
	handleGlyphHover = 10.0
)

// ArrowOffset sums the arrow keys pressed this frame.
func ArrowOffset(in ui.Input) geom.Vec {
	var v geom.Vec
	for _, k := range in.Keys {
		switch k {
		case key.CodeLeftArrow:
			v.X -= ArrowStep
		case key.CodeRightArrow:
			v.X += ArrowStep
		case key.CodeUpArrow:
			v.Y -= ArrowStep
		case key.CodeDownArrow:
			v.Y += ArrowStep
		}
	}
	return v
}

// ControlPoint allocates a draggable handle centred on pos and paints its
// glyph. hit is the side of the invisible hit box.
func ControlPoint(f *ui.Frame, id ui.ID, pos geom.Point, cursor ui.Cursor, hit float64) ui.Response {
	resp := f.Ctx.Interact(id, geom.FromCenterSize(pos, geom.V(hit, hit)), ui.Drag)
	size := handleGlyph
	if resp.Hovered || resp.Dragged {
		size = handleGlyphHover
		f.Ctx.SetCursor(cursor)
	}
	th := f.Style()
	f.Paint.Rect(geom.FromCenterSize(pos, geom.V(size, size)), 0, th.HandleFill, paint.NewStroke(1, th.HandleStroke))
	return resp
}

// HoverRange makes r clickable and outlines it while hovered. It reports a
// click.
func HoverRange(f *ui.Frame, id ui.ID, r geom.Rect) bool {
	resp := f.Ctx.Interact(id, r, ui.Click)
	if resp.Hovered && !f.Info.ShotMode {
		f.Paint.Rect(r, 0, paint.Transparent, paint.NewStroke(1, f.Style().HoverOutline))
	}
	return resp.Clicked
}

// BodyCursor picks the grab glyph for a draggable body.
func BodyCursor(f *ui.Frame, resp ui.Response) {
	switch {
	case resp.Dragged:
		f.Ctx.SetCursor(ui.CursorGrabbing)
	case resp.Hovered:
		f.Ctx.SetCursor(ui.CursorGrab)
	}
}

func part(id ui.ID, n uint32) ui.ID {
	id.Part += n
	return id
}
