package ui

import (
	"github.com/example/markshot/internal/geom"
)

// ID names a widget. It must be stable across frames.
type ID struct {
	Scope string
	Owner uint64
	Part  uint32
}

// NewID builds an ID.
func NewID(scope string, owner uint64, part uint32) ID {
	return ID{Scope: scope, Owner: owner, Part: part}
}

// Sense says which pointer gestures a widget reacts to.
type Sense uint8

const (
	Click Sense = 1 << iota
	Drag

	ClickAndDrag = Click | Drag
)

// DragThreshold is how far the pointer travels before a press on a widget
// that also senses clicks turns into a drag.
const DragThreshold = 4.0

// Response is how the pointer interacted with one widget this frame.
type Response struct {
	ID   ID
	Rect geom.Rect

	Hovered     bool
	Clicked     bool
	DragStarted bool
	// Dragged is set on every frame of a drag, including the first and the
	// last.
	Dragged     bool
	DragStopped bool

	// Pos is the pointer position.
	Pos geom.Point
	// Origin is where the button went down.
	Origin geom.Point
	// Delta is the pointer motion this frame while dragged. On the frame the
	// drag starts it spans from Origin.
	Delta geom.Vec
}

type widget struct {
	id    ID
	rect  geom.Rect
	sense Sense
}

// Context resolves pointer gestures against widgets. Hits are tested against
// the widgets allocated during the previous frame; later allocations sit on
// top of earlier ones.
type Context struct {
	in   Input
	prev []widget
	cur  []widget

	held          bool
	origin        geom.Point
	clickTarget   ID
	hasClick      bool
	dragTarget    ID
	hasDrag       bool
	dragImmediate bool
	dragging      bool

	clickedNow  bool
	startedNow  bool
	stoppedNow  bool
	releasedNow bool

	delta   geom.Vec
	last    geom.Point
	hasLast bool
	cursor  Cursor
}

// NewContext returns an idle context.
func NewContext() *Context {
	return &Context{}
}

// Begin starts a frame.
func (c *Context) Begin(in Input) {
	c.in = in
	c.prev, c.cur = c.cur, c.prev[:0]
	c.clickedNow, c.startedNow, c.stoppedNow, c.releasedNow = false, false, false, false
	c.cursor = CursorDefault

	c.delta = geom.Vec{}
	if in.PointerValid {
		if c.hasLast {
			c.delta = in.Pointer.Sub(c.last)
		}
		c.last, c.hasLast = in.Pointer, true
	}

	if in.Pressed && in.PointerValid {
		c.press(in.Pointer)
	}
	if c.held && c.hasDrag && !c.dragging {
		if c.dragImmediate || c.last.Sub(c.origin).Len() >= DragThreshold {
			c.dragging = true
			c.startedNow = true
			c.delta = c.last.Sub(c.origin)
		}
	}
	if in.Released && c.held {
		c.releasedNow = true
		if c.dragging {
			c.stoppedNow = true
		} else if c.hasClick {
			c.clickedNow = true
		}
	}
}

func (c *Context) press(p geom.Point) {
	c.held = true
	c.origin = p
	c.hasClick, c.hasDrag, c.dragImmediate, c.dragging = false, false, false, false
	for i := len(c.prev) - 1; i >= 0; i-- {
		w := c.prev[i]
		if !w.rect.Contains(p) {
			continue
		}
		topmost := !c.hasClick && !c.hasDrag
		if !c.hasClick && w.sense&Click != 0 {
			c.clickTarget, c.hasClick = w.id, true
		}
		if !c.hasDrag && w.sense&Drag != 0 {
			c.dragTarget, c.hasDrag = w.id, true
			c.dragImmediate = topmost && w.sense&Click == 0
		}
		if c.hasClick && c.hasDrag {
			break
		}
	}
}

// End finishes a frame.
func (c *Context) End() {
	if c.releasedNow {
		c.held = false
		c.hasClick, c.hasDrag, c.dragImmediate, c.dragging = false, false, false, false
	}
}

// Input returns the frame's input.
func (c *Context) Input() Input { return c.in }

// Interact allocates a widget covering r and reports the pointer's
// interaction with it.
func (c *Context) Interact(id ID, r geom.Rect, sense Sense) Response {
	c.cur = append(c.cur, widget{id: id, rect: r, sense: sense})
	resp := Response{ID: id, Rect: r, Pos: c.last, Origin: c.origin}

	owner := c.held && ((c.hasClick && c.clickTarget == id) || (c.hasDrag && c.dragTarget == id))
	resp.Hovered = c.in.PointerValid && r.Contains(c.last) && (!c.held || owner)

	if sense&Click != 0 && c.clickedNow && c.clickTarget == id {
		resp.Clicked = true
	}
	if sense&Drag != 0 && c.dragging && c.dragTarget == id {
		resp.Dragged = true
		resp.DragStarted = c.startedNow
		resp.DragStopped = c.stoppedNow
		resp.Delta = c.delta
	}
	return resp
}

// Dragging reports whether any widget is being dragged.
func (c *Context) Dragging() bool { return c.dragging }

// SetCursor requests a pointer glyph for this frame.
func (c *Context) SetCursor(cur Cursor) { c.cursor = cur }

// Cursor is the glyph requested during the frame.
func (c *Context) Cursor() Cursor { return c.cursor }
