package manip

import (
	"math"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/ui"
)

// LineState is the phase of a LineMove.
type LineState int

const (
	LineIdle LineState = iota
	MovingWhole
	MovingStart
	MovingEnd
)

// LineMove edits a pair of ratio space endpoints.
type LineMove struct {
	state  LineState
	offset geom.Vec
	vector geom.Vec
}

// State returns the current phase.
func (l *LineMove) State() LineState { return l.state }

// Show runs the control set: arrow key nudge, body drag, and one handle per
// endpoint. expand widens the body and the start handle around start, which
// numbered markers use for their circle. id reserves three parts.
func (l *LineMove) Show(f *ui.Frame, id ui.ID, start, end *geom.Point, expand float64) {
	l.Nudge(f, start, end)

	s, e := f.Info.FromRatio(*start), f.Info.FromRatio(*end)
	bodyRect := geom.FromCenterSize(s, geom.V(expand*2, expand*2)).Extend(e).Expand(2)
	body := f.Ctx.Interact(id, bodyRect, ui.Drag)
	BodyCursor(f, body)
	l.HandleMoveWhole(f, body, start, end)

	rs := ControlPoint(f, part(id, 1), s, ui.CursorGrab, HandleHit+expand*2)
	l.HandleMoveStart(f, rs, start, *end)
	re := ControlPoint(f, part(id, 2), e, ui.CursorGrab, HandleHit)
	l.HandleMoveEnd(f, re, *start, end)
}

// Nudge moves both endpoints by the arrow keys pressed this frame unless a
// drag is in progress.
func (l *LineMove) Nudge(f *ui.Frame, start, end *geom.Point) {
	off := ArrowOffset(f.Input())
	if off == (geom.Vec{}) || f.Ctx.Dragging() {
		return
	}
	*start = f.Info.ToRatio(f.Info.FromRatio(*start).Add(off))
	*end = f.Info.ToRatio(f.Info.FromRatio(*end).Add(off))
}

// HandleMoveWhole translates both endpoints keeping the vector between them.
func (l *LineMove) HandleMoveWhole(f *ui.Frame, resp ui.Response, start, end *geom.Point) {
	if resp.DragStarted {
		s := f.Info.FromRatio(*start)
		l.state = MovingWhole
		l.offset = resp.Origin.Sub(s)
		l.vector = f.Info.FromRatio(*end).Sub(s)
	}
	if resp.Dragged && l.state == MovingWhole {
		s := resp.Pos.SubVec(l.offset)
		*start = f.Info.ToRatio(s)
		*end = f.Info.ToRatio(s.Add(l.vector))
	}
	if resp.DragStopped {
		l.state = LineIdle
	}
}

// HandleMoveStart drags start. end is the fixed endpoint used for shift
// snapping.
func (l *LineMove) HandleMoveStart(f *ui.Frame, resp ui.Response, start *geom.Point, end geom.Point) {
	l.moveEndpoint(f, resp, start, end, MovingStart)
}

// HandleMoveEnd drags end. It does not need a drag start on the same
// response, so a creating drag can be forwarded to it.
func (l *LineMove) HandleMoveEnd(f *ui.Frame, resp ui.Response, start geom.Point, end *geom.Point) {
	l.moveEndpoint(f, resp, end, start, MovingEnd)
}

func (l *LineMove) moveEndpoint(f *ui.Frame, resp ui.Response, moving *geom.Point, other geom.Point, st LineState) {
	if resp.DragStarted {
		l.state = st
	}
	if resp.Dragged {
		p := resp.Pos
		if f.Input().Shift() {
			p = AxisSnap(p, f.Info.FromRatio(other))
		}
		*moving = f.Info.ToRatio(p)
	}
	if resp.DragStopped {
		l.state = LineIdle
	}
}

// AxisSnap aligns p with base on the axis where p is closer, leaving the
// larger offset.
func AxisSnap(p, base geom.Point) geom.Point {
	d := p.Sub(base)
	if math.Abs(d.X) < math.Abs(d.Y) {
		p.X = base.X
	} else {
		p.Y = base.Y
	}
	return p
}
