package shape

import (
	"image/color"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// Line is a segment with optional arrowheads.
type Line struct {
	Start, End geom.Point
	Attrs      LineAttrs
	lm         manip.LineMove
}

// NewLine creates a zero length line at pos; the creating drag pulls its end.
func NewLine(pos geom.Point, info ui.RenderInfo, a LineAttrs) *Line {
	p := info.ToRatio(pos)
	return &Line{Start: p, End: p, Attrs: a}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Render(f *ui.Frame, id ID, active bool) bool {
	s, e := f.Info.FromRatio(l.Start), f.Info.FromRatio(l.End)
	lw := l.Attrs.LineWidth * f.Info.PixelRatio
	f.Paint.Line(s, e, paint.NewStroke(lw, l.Attrs.Color))
	size := l.Attrs.ArrowSize * f.Info.PixelRatio
	if l.Attrs.ArrowEnd {
		arrowHead(f.Paint, e, e.Sub(s), size, l.Attrs.Color)
	}
	if l.Attrs.ArrowStart {
		arrowHead(f.Paint, s, s.Sub(e), size, l.Attrs.Color)
	}

	if active {
		l.lm.Show(f, widgetID(id), &l.Start, &l.End, 0)
		return true
	}
	return manip.HoverRange(f, widgetID(id), geom.FromTwoPoints(s, e).Expand(2))
}

func (l *Line) Toolbar(form *toolbar.Form) { l.Attrs.Toolbar(form) }

func (l *Line) OnCreateResponse(f *ui.Frame, resp ui.Response) {
	l.lm.HandleMoveEnd(f, resp, l.Start, &l.End)
}

// ArrowHead returns the triangle of an arrow pointing along dir with its tip
// at tip. It is nil when dir has no length.
func ArrowHead(tip geom.Point, dir geom.Vec, size float64) []geom.Point {
	d := dir.Normalized()
	if d == (geom.Vec{}) || size <= 0 {
		return nil
	}
	return []geom.Point{
		tip.SubVec(d.Rotate(arrowAngle).Mul(size)),
		tip,
		tip.SubVec(d.Rotate(-arrowAngle).Mul(size)),
	}
}

func arrowHead(p paint.Painter, tip geom.Point, dir geom.Vec, size float64, c color.RGBA) {
	if tri := ArrowHead(tip, dir, size); tri != nil {
		p.Polygon(tri, c, paint.Stroke{})
	}
}
