// Package paint defines the drawing contract between the annotation engine and
// whatever surface displays it.
package paint

import (
	"image"
	"image/color"

	"github.com/example/markshot/internal/geom"
)

// Stroke describes an outline. A zero width or fully transparent colour draws
// nothing.
type Stroke struct {
	Width float64
	Color color.RGBA
}

// NewStroke builds a stroke.
func NewStroke(width float64, c color.RGBA) Stroke {
	return Stroke{Width: width, Color: c}
}

// Visible reports whether s would leave a mark.
func (s Stroke) Visible() bool {
	return s.Width > 0 && s.Color.A > 0
}

// Font selects a face by family name and size in points.
type Font struct {
	Family string
	Size   float64
}

// Anchor tells Text which point of the laid out text sits on the given
// position.
type Anchor int

const (
	LeftTop Anchor = iota
	LeftCenter
	Center
	RightTop
)

// Painter draws primitives in render space (points). Implementations convert
// to device pixels themselves.
type Painter interface {
	// Rect fills r with fill and outlines it with s. radius rounds the
	// corners.
	Rect(r geom.Rect, radius float64, fill color.RGBA, s Stroke)
	// Ellipse draws the ellipse inscribed in r.
	Ellipse(r geom.Rect, fill color.RGBA, s Stroke)
	// Circle draws a circle of the given radius around c.
	Circle(c geom.Point, radius float64, fill color.RGBA, s Stroke)
	// Line draws the segment a-b.
	Line(a, b geom.Point, s Stroke)
	// Polyline draws connected segments with round joins.
	Polyline(pts []geom.Point, s Stroke)
	// Polygon fills the closed polygon pts.
	Polygon(pts []geom.Point, fill color.RGBA, s Stroke)
	// Text lays out text (newlines start new lines) and returns the rect it
	// occupies.
	Text(pos geom.Point, anchor Anchor, text string, f Font, c color.RGBA) geom.Rect
	// MeasureText returns the size Text would use.
	MeasureText(text string, f Font) geom.Vec
	// Image draws img scaled into dst.
	Image(dst geom.Rect, img image.Image)
}

// Place returns the top-left corner for a box of the given size anchored at
// pos.
func Place(pos geom.Point, anchor Anchor, size geom.Vec) geom.Point {
	switch anchor {
	case LeftCenter:
		return geom.Pt(pos.X, pos.Y-size.Y/2)
	case Center:
		return geom.Pt(pos.X-size.X/2, pos.Y-size.Y/2)
	case RightTop:
		return geom.Pt(pos.X-size.X, pos.Y)
	default:
		return pos
	}
}

// Gray returns an opaque gray.
func Gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 0xff}
}

// Premultiplied builds a colour from straight alpha components.
func Premultiplied(r, g, b, a uint8) color.RGBA {
	m := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{m(r), m(g), m(b), a}
}

var (
	Transparent = color.RGBA{}
	Red         = color.RGBA{0xff, 0, 0, 0xff}
	White       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Black       = color.RGBA{0, 0, 0, 0xff}
)
