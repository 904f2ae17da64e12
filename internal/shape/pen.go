package shape

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// minPenPoints is the fewest points a stroke needs to be drawn or hit.
const minPenPoints = 3

// Pen is a free hand stroke.
type Pen struct {
	Points []geom.Point
	Attrs  PenAttrs

	drawing  bool
	finished bool
}

// NewPen starts a stroke at pos.
func NewPen(pos geom.Point, info ui.RenderInfo, a PenAttrs) *Pen {
	return &Pen{Points: []geom.Point{info.ToRatio(pos)}, Attrs: a, drawing: true}
}

func (p *Pen) Kind() Kind { return KindPen }

// Drawing reports whether the creating drag is still in progress.
func (p *Pen) Drawing() bool { return p.drawing }

func (p *Pen) Render(f *ui.Frame, id ID, active bool) bool {
	if len(p.Points) < minPenPoints {
		return active && p.drawing
	}
	pts := geom.FromRatioPoints(p.Points, f.Info.Background)
	f.Paint.Polyline(pts, paint.NewStroke(p.Attrs.Width*f.Info.PixelRatio, p.Attrs.Color))
	bounds := geom.Bounds(pts).Expand(2)

	if p.finished {
		p.finished = false
		return false
	}
	if p.drawing {
		return active
	}
	if !active {
		return manip.HoverRange(f, widgetID(id), bounds)
	}

	var shift geom.Vec
	if off := manip.ArrowOffset(f.Input()); !f.Ctx.Dragging() {
		shift = off
	}
	body := f.Ctx.Interact(widgetID(id), bounds, ui.Drag)
	manip.BodyCursor(f, body)
	if body.Dragged {
		shift = shift.Add(body.Delta)
	}
	if shift != (geom.Vec{}) {
		p.translate(f.Info, shift)
	}
	f.Paint.Rect(bounds, 0, paint.Transparent, paint.NewStroke(1, f.Style().HoverOutline))
	return true
}

func (p *Pen) translate(info ui.RenderInfo, v geom.Vec) {
	for i, pt := range p.Points {
		p.Points[i] = info.ToRatio(info.FromRatio(pt).Add(v))
	}
}

func (p *Pen) Toolbar(form *toolbar.Form) { p.Attrs.Toolbar(form) }

func (p *Pen) OnCreateResponse(f *ui.Frame, resp ui.Response) {
	if !p.drawing {
		return
	}
	if resp.Dragged && resp.Delta != (geom.Vec{}) {
		p.Points = append(p.Points, f.Info.ToRatio(resp.Pos))
	}
	if resp.DragStopped {
		p.drawing = false
		p.finished = true
	}
}
