// Package painttest provides a Painter that records draw calls instead of
// rasterizing them.
package painttest

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint"
)

// Kind names a recorded primitive.
type Kind string

const (
	KindRect     Kind = "rect"
	KindEllipse  Kind = "ellipse"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindPolygon  Kind = "polygon"
	KindText     Kind = "text"
	KindImage    Kind = "image"
)

// Op is one recorded call.
type Op struct {
	Kind   Kind
	Rect   geom.Rect
	Radius float64
	Points []geom.Point
	Fill   color.RGBA
	Stroke paint.Stroke
	Text   string
	Font   paint.Font
}

// Recorder implements paint.Painter. Text is measured with fixed metrics:
// every rune is 0.6 em wide and lines are 1.2 em tall.
type Recorder struct {
	Ops []Op
}

var _ paint.Painter = (*Recorder)(nil)

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// OfKind returns the ops of kind k in call order.
func (r *Recorder) OfKind(k Kind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every drawn string.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.OfKind(KindText) {
		out = append(out, op.Text)
	}
	return out
}

func (r *Recorder) Rect(rect geom.Rect, radius float64, fill color.RGBA, s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: KindRect, Rect: rect, Radius: radius, Fill: fill, Stroke: s})
}

func (r *Recorder) Ellipse(rect geom.Rect, fill color.RGBA, s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: KindEllipse, Rect: rect, Fill: fill, Stroke: s})
}

func (r *Recorder) Circle(c geom.Point, radius float64, fill color.RGBA, s paint.Stroke) {
	r.Ellipse(geom.FromCenterSize(c, geom.V(radius*2, radius*2)), fill, s)
}

func (r *Recorder) Line(a, b geom.Point, s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: KindLine, Points: []geom.Point{a, b}, Stroke: s})
}

func (r *Recorder) Polyline(pts []geom.Point, s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: KindPolyline, Points: append([]geom.Point(nil), pts...), Stroke: s})
}

func (r *Recorder) Polygon(pts []geom.Point, fill color.RGBA, s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: KindPolygon, Points: append([]geom.Point(nil), pts...), Fill: fill, Stroke: s})
}

func (r *Recorder) MeasureText(text string, f paint.Font) geom.Vec {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > widest {
			widest = n
		}
	}
	return geom.V(float64(widest)*f.Size*0.6, float64(len(lines))*f.Size*1.2)
}

func (r *Recorder) Text(pos geom.Point, anchor paint.Anchor, text string, f paint.Font, c color.RGBA) geom.Rect {
	size := r.MeasureText(text, f)
	rect := geom.FromMinSize(paint.Place(pos, anchor, size), size)
	r.Ops = append(r.Ops, Op{Kind: KindText, Rect: rect, Fill: c, Text: text, Font: f})
	return rect
}

func (r *Recorder) Image(dst geom.Rect, img image.Image) {
	r.Ops = append(r.Ops, Op{Kind: KindImage, Rect: dst})
}
