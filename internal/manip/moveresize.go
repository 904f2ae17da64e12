package manip

import (
	"math"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/ui"
)

// State is the phase of a MoveResize.
type State int

const (
	Idle State = iota
	Moving
	Resizing
	ResizingSide
)

func (s State) String() string {
	switch s {
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	case ResizingSide:
		return "resizing-side"
	default:
		return "idle"
	}
}

// Axis is the coordinate an edge handle moves.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

type resizeKind int

const (
	resizeNone resizeKind = iota
	resizeFixed
	resizeFromCursor
)

// ResizeMode decides where the anchor of a resize comes from when a drag
// starts.
type ResizeMode struct {
	kind  resizeKind
	fixed geom.Point
}

var (
	// NoResize leaves the state alone on drag start.
	NoResize = ResizeMode{}
	// FromCursor anchors the resize where the button went down.
	FromCursor = ResizeMode{kind: resizeFromCursor}
)

// FixedAt anchors the resize at p (render space).
func FixedAt(p geom.Point) ResizeMode {
	return ResizeMode{kind: resizeFixed, fixed: p}
}

// MoveResize edits a ratio space rectangle. All anchors are kept in render
// space for the length of a gesture.
type MoveResize struct {
	state  State
	offset geom.Vec
	size   geom.Vec
	fixed  geom.Point
	length float64
	axis   Axis
}

// ResizingFrom returns a MoveResize already resizing around fixed, the way a
// freshly created shape follows the drag that created it.
func ResizingFrom(fixed geom.Point) MoveResize {
	return MoveResize{state: Resizing, fixed: fixed}
}

// State returns the current phase.
func (m *MoveResize) State() State { return m.state }

// Show runs the full control set on r: arrow key nudge, body move, four
// corner and four edge handles. id reserves parts id.Part..id.Part+8.
func (m *MoveResize) Show(f *ui.Frame, id ui.ID, r *geom.Rect) {
	m.Nudge(f, r)
	body := f.Ctx.Interact(id, f.Info.FromRatioRect(*r), ui.Drag)
	BodyCursor(f, body)
	m.HandleMove(f, body, r)
	m.ShowHandles(f, id, r)
}

// Nudge moves r by the arrow keys pressed this frame unless a drag is in
// progress.
func (m *MoveResize) Nudge(f *ui.Frame, r *geom.Rect) {
	off := ArrowOffset(f.Input())
	if off == (geom.Vec{}) || f.Ctx.Dragging() {
		return
	}
	*r = f.Info.ToRatioRect(f.Info.FromRatioRect(*r).Translate(off))
}

// ShowHandles runs only the corner and edge handles.
func (m *MoveResize) ShowHandles(f *ui.Frame, id ui.ID, r *geom.Rect) {
	rr := f.Info.FromRatioRect(*r)
	corners := []struct {
		pos, fixed geom.Point
		cursor     ui.Cursor
	}{
		{rr.LeftTop(), rr.RightBottom(), ui.CursorResizeNW},
		{rr.RightBottom(), rr.LeftTop(), ui.CursorResizeSE},
		{rr.RightTop(), rr.LeftBottom(), ui.CursorResizeNE},
		{rr.LeftBottom(), rr.RightTop(), ui.CursorResizeSW},
	}
	for i, c := range corners {
		resp := ControlPoint(f, part(id, uint32(1+i)), c.pos, c.cursor, HandleHit)
		m.HandleResize(f, resp, r, FixedAt(c.fixed))
	}

	sides := []struct {
		pos, fixed geom.Point
		length     float64
		axis       Axis
		cursor     ui.Cursor
	}{
		{rr.LeftCenter(), rr.RightTop(), rr.Height(), AxisX, ui.CursorResizeW},
		{rr.RightCenter(), rr.LeftTop(), rr.Height(), AxisX, ui.CursorResizeE},
		{rr.CenterTop(), rr.LeftBottom(), rr.Width(), AxisY, ui.CursorResizeN},
		{rr.CenterBottom(), rr.LeftTop(), rr.Width(), AxisY, ui.CursorResizeS},
	}
	for i, s := range sides {
		resp := ControlPoint(f, part(id, uint32(5+i)), s.pos, s.cursor, HandleHit)
		m.HandleResizeSide(f, resp, r, s.fixed, s.length, s.axis)
	}
}

// HandleMove translates r with a body drag. The rectangle keeps its size and
// stays inside the background.
func (m *MoveResize) HandleMove(f *ui.Frame, resp ui.Response, r *geom.Rect) {
	if resp.DragStarted {
		rr := f.Info.FromRatioRect(*r)
		m.state = Moving
		m.offset = resp.Origin.Sub(rr.Min)
		m.size = rr.Size()
	}
	if resp.Dragged && m.state == Moving {
		bg := f.Info.Background
		min := resp.Pos.SubVec(m.offset).Clamp(bg.Min, bg.Max.SubVec(m.size))
		*r = f.Info.ToRatioRect(geom.FromMinSize(min, m.size))
	}
	if resp.DragStopped {
		m.state = Idle
	}
}

// HandleResize spans r between the anchor and the pointer. With shift held
// the result is square, using the smaller of the two offsets.
func (m *MoveResize) HandleResize(f *ui.Frame, resp ui.Response, r *geom.Rect, mode ResizeMode) {
	if resp.DragStarted {
		switch mode.kind {
		case resizeFixed:
			m.state, m.fixed = Resizing, mode.fixed
		case resizeFromCursor:
			m.state, m.fixed = Resizing, resp.Origin
		}
	}
	if resp.Dragged && m.state == Resizing {
		other := resp.Pos
		if f.Input().Shift() {
			other = squareFrom(m.fixed, other)
		}
		*r = f.Info.ToRatioRect(geom.FromTwoPoints(m.fixed, other))
	}
	if resp.DragStopped {
		m.state = Idle
	}
}

// HandleResizeSide moves one edge of r. fixed is a corner of the opposite
// edge and length the extent along that edge.
func (m *MoveResize) HandleResizeSide(f *ui.Frame, resp ui.Response, r *geom.Rect, fixed geom.Point, length float64, axis Axis) {
	if resp.DragStarted {
		m.state = ResizingSide
		m.fixed, m.length, m.axis = fixed, length, axis
	}
	if resp.Dragged && m.state == ResizingSide {
		var other geom.Point
		if m.axis == AxisX {
			other = geom.Pt(resp.Pos.X, m.fixed.Y+m.length)
		} else {
			other = geom.Pt(m.fixed.X+m.length, resp.Pos.Y)
		}
		*r = f.Info.ToRatioRect(geom.FromTwoPoints(m.fixed, other))
	}
	if resp.DragStopped {
		m.state = Idle
	}
}

func squareFrom(fixed, p geom.Point) geom.Point {
	d := p.Sub(fixed)
	s := math.Min(math.Abs(d.X), math.Abs(d.Y))
	return fixed.Add(geom.V(math.Copysign(s, d.X), math.Copysign(s, d.Y)))
}
