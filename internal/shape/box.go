package shape

import (
	"math"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// createSize is the side of the box a click creates.
const createSize = 30

// box is the rect geometry shared by rectangles and ellipses.
type box struct {
	Rect geom.Rect
	mr   manip.MoveResize
}

func newBox(pos geom.Point, info ui.RenderInfo) box {
	r := geom.FromMinSize(pos, geom.V(createSize, createSize))
	return box{Rect: info.ToRatioRect(r), mr: manip.ResizingFrom(pos)}
}

func (b *box) control(f *ui.Frame, id ID, active bool, lineWidth float64) bool {
	if active {
		b.mr.Show(f, widgetID(id), &b.Rect)
		return true
	}
	hit := f.Info.FromRatioRect(b.Rect).Expand(lineWidth/2 + 2)
	return manip.HoverRange(f, widgetID(id), hit)
}

func (b *box) OnCreateResponse(f *ui.Frame, resp ui.Response) {
	b.mr.HandleResize(f, resp, &b.Rect, manip.NoResize)
}

// Rectangle is an outlined, optionally filled and rounded box.
type Rectangle struct {
	box
	Attrs RectAttrs
}

// NewRectangle creates a rectangle whose corner follows the creating drag.
func NewRectangle(pos geom.Point, info ui.RenderInfo, a RectAttrs) *Rectangle {
	return &Rectangle{box: newBox(pos, info), Attrs: a}
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Render(f *ui.Frame, id ID, active bool) bool {
	rr := f.Info.FromRatioRect(r.Rect)
	lw := r.Attrs.LineWidth * f.Info.PixelRatio
	short := math.Min(math.Abs(rr.Width()), math.Abs(rr.Height()))
	radius := math.Min(r.Attrs.Radius*short, short/2)
	f.Paint.Rect(rr, radius, r.Attrs.Fill, paint.NewStroke(lw, r.Attrs.Border))
	return r.control(f, id, active, lw)
}

func (r *Rectangle) Toolbar(form *toolbar.Form) { r.Attrs.Toolbar(form) }

// Circle is the ellipse inscribed in its box.
type Circle struct {
	box
	Attrs CircleAttrs
}

// NewCircle creates an ellipse whose box follows the creating drag.
func NewCircle(pos geom.Point, info ui.RenderInfo, a CircleAttrs) *Circle {
	return &Circle{box: newBox(pos, info), Attrs: a}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Render(f *ui.Frame, id ID, active bool) bool {
	rr := f.Info.FromRatioRect(c.Rect)
	lw := c.Attrs.LineWidth * f.Info.PixelRatio
	f.Paint.Ellipse(rr, c.Attrs.Fill, paint.NewStroke(lw, c.Attrs.Border))
	return c.control(f, id, active, lw)
}

func (c *Circle) Toolbar(form *toolbar.Form) { c.Attrs.Toolbar(form) }
