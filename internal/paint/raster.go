package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/example/markshot/internal/geom"
)

// Faces supplies font faces sized in device pixels.
type Faces interface {
	Face(family string, size float64) font.Face
}

// Raster paints onto an RGBA image. Render space coordinates are multiplied
// by Scale to get device pixels.
type Raster struct {
	Dst   *image.RGBA
	Scale float64
	Faces Faces
}

// NewRaster wraps dst.
func NewRaster(dst *image.RGBA, scale float64, faces Faces) *Raster {
	if scale <= 0 {
		scale = 1
	}
	return &Raster{Dst: dst, Scale: scale, Faces: faces}
}

func (r *Raster) dev(p geom.Point) geom.Point {
	return geom.Pt(p.X*r.Scale, p.Y*r.Scale)
}

// Clear fills the whole destination with c.
func (r *Raster) Clear(c color.RGBA) {
	draw.Draw(r.Dst, r.Dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) Rect(rect geom.Rect, radius float64, fill color.RGBA, s Stroke) {
	radius = math.Min(radius, math.Min(rect.Width(), rect.Height())/2)
	if fill.A > 0 {
		r.fill(fill, roundedRect(rect, radius, 1))
	}
	if s.Visible() {
		h := s.Width / 2
		outer := rect.Expand(h)
		inner := rect.Expand(-h)
		outerRadius := 0.0
		if radius > 0 {
			outerRadius = radius + h
		}
		paths := [][]geom.Point{roundedRect(outer, outerRadius, 1)}
		if !inner.Empty() {
			paths = append(paths, roundedRect(inner, math.Max(radius-h, 0), -1))
		}
		r.fill(s.Color, paths...)
	}
}

func (r *Raster) Ellipse(rect geom.Rect, fill color.RGBA, s Stroke) {
	c := rect.Center()
	rx, ry := rect.Width()/2, rect.Height()/2
	if fill.A > 0 {
		r.fill(fill, ellipse(c, rx, ry, 1))
	}
	if s.Visible() {
		h := s.Width / 2
		paths := [][]geom.Point{ellipse(c, rx+h, ry+h, 1)}
		if rx > h && ry > h {
			paths = append(paths, ellipse(c, rx-h, ry-h, -1))
		}
		r.fill(s.Color, paths...)
	}
}

func (r *Raster) Circle(c geom.Point, radius float64, fill color.RGBA, s Stroke) {
	r.Ellipse(geom.FromCenterSize(c, geom.V(radius*2, radius*2)), fill, s)
}

func (r *Raster) Line(a, b geom.Point, s Stroke) {
	if !s.Visible() {
		return
	}
	if q := segment(a, b, s.Width/2); q != nil {
		r.fill(s.Color, q)
	}
}

func (r *Raster) Polyline(pts []geom.Point, s Stroke) {
	if !s.Visible() || len(pts) == 0 {
		return
	}
	h := s.Width / 2
	var paths [][]geom.Point
	for i := 0; i+1 < len(pts); i++ {
		if q := segment(pts[i], pts[i+1], h); q != nil {
			paths = append(paths, q)
		}
	}
	for _, p := range pts {
		paths = append(paths, ellipse(p, h, h, 1))
	}
	r.fill(s.Color, paths...)
}

func (r *Raster) Polygon(pts []geom.Point, fill color.RGBA, s Stroke) {
	if len(pts) < 3 {
		return
	}
	if fill.A > 0 {
		r.fill(fill, pts)
	}
	if s.Visible() {
		closed := append(append([]geom.Point(nil), pts...), pts[0])
		r.Polyline(closed, s)
	}
}

func (r *Raster) face(f Font) font.Face {
	return r.Faces.Face(f.Family, f.Size*r.Scale)
}

func (r *Raster) MeasureText(text string, f Font) geom.Vec {
	face := r.face(f)
	w, h := measure(face, text)
	return geom.V(w/r.Scale, h/r.Scale)
}

func (r *Raster) Text(pos geom.Point, anchor Anchor, text string, f Font, c color.RGBA) geom.Rect {
	face := r.face(f)
	w, h := measure(face, text)
	size := geom.V(w/r.Scale, h/r.Scale)
	min := Place(pos, anchor, size)
	m := face.Metrics()
	d := &font.Drawer{Dst: r.Dst, Src: image.NewUniform(c), Face: face}
	origin := r.dev(min)
	lineH := float64(m.Height.Ceil())
	for i, line := range strings.Split(text, "\n") {
		lw := float64(d.MeasureString(line).Ceil())
		x := origin.X
		if anchor == Center {
			x += (w - lw) / 2
		}
		y := origin.Y + float64(i)*lineH + float64(m.Ascent.Ceil())
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(line)
	}
	return geom.FromMinSize(min, size)
}

func (r *Raster) Image(dst geom.Rect, img image.Image) {
	d := r.dev(dst.Min)
	e := r.dev(dst.Max)
	rect := image.Rect(int(math.Round(d.X)), int(math.Round(d.Y)), int(math.Round(e.X)), int(math.Round(e.Y)))
	if rect.Size() == img.Bounds().Size() {
		draw.Draw(r.Dst, rect, img, img.Bounds().Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(r.Dst, rect, img, img.Bounds(), draw.Over, nil)
}

// fill rasterizes the union of paths. Outer paths wind with sign 1 and holes
// with sign -1.
func (r *Raster) fill(c color.RGBA, paths ...[]geom.Point) {
	var box geom.Rect
	first := true
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		b := geom.Bounds(p)
		if first {
			box, first = b, false
			continue
		}
		box = box.Extend(b.Min).Extend(b.Max)
	}
	if first {
		return
	}
	dmin, dmax := r.dev(box.Min), r.dev(box.Max)
	area := image.Rect(int(math.Floor(dmin.X)), int(math.Floor(dmin.Y)), int(math.Ceil(dmax.X)), int(math.Ceil(dmax.Y)))
	area = area.Intersect(r.Dst.Bounds())
	if area.Empty() {
		return
	}
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	for _, p := range paths {
		if len(p) < 3 {
			continue
		}
		for i, pt := range p {
			d := r.dev(pt)
			x, y := float32(d.X-ox), float32(d.Y-oy)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	z.Draw(r.Dst, area, image.NewUniform(c), image.Point{})
}

func measure(face font.Face, text string) (w, h float64) {
	m := face.Metrics()
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if lw := float64(font.MeasureString(face, line).Ceil()); lw > w {
			w = lw
		}
	}
	h = float64(m.Height.Ceil()*(len(lines)-1) + m.Ascent.Ceil() + m.Descent.Ceil())
	return w, h
}

// segment returns the quad covering a-b widened by h on both sides, wound
// the same way as outer ellipses.
func segment(a, b geom.Point, h float64) []geom.Point {
	d := b.Sub(a).Normalized()
	if d == (geom.Vec{}) {
		return nil
	}
	n := geom.V(-d.Y*h, d.X*h)
	return []geom.Point{a.Add(n), b.Add(n), b.SubVec(n), a.SubVec(n)}
}

func arcSteps(r float64) int {
	n := int(math.Ceil(r * 1.5))
	if n < 12 {
		n = 12
	}
	if n > 256 {
		n = 256
	}
	return n
}

// ellipse approximates an ellipse. dir 1 winds like segment quads, -1 the
// opposite way.
func ellipse(c geom.Point, rx, ry float64, dir float64) []geom.Point {
	n := arcSteps(math.Max(rx, ry))
	pts := make([]geom.Point, n)
	for i := range pts {
		t := -dir * 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+rx*math.Cos(t), c.Y+ry*math.Sin(t))
	}
	return pts
}

func roundedRect(r geom.Rect, radius float64, dir float64) []geom.Point {
	var pts []geom.Point
	if radius <= 0 {
		pts = []geom.Point{r.Min, r.LeftBottom(), r.Max, r.RightTop()}
	} else {
		corners := []struct {
			c     geom.Point
			start float64
		}{
			{geom.Pt(r.Min.X+radius, r.Min.Y+radius), 3 * math.Pi / 2},
			{geom.Pt(r.Min.X+radius, r.Max.Y-radius), math.Pi},
			{geom.Pt(r.Max.X-radius, r.Max.Y-radius), math.Pi / 2},
			{geom.Pt(r.Max.X-radius, r.Min.Y+radius), 0},
		}
		n := arcSteps(radius) / 4
		if n < 3 {
			n = 3
		}
		for _, k := range corners {
			for i := 0; i <= n; i++ {
				t := k.start - math.Pi/2*float64(i)/float64(n)
				pts = append(pts, geom.Pt(k.c.X+radius*math.Cos(t), k.c.Y+radius*math.Sin(t)))
			}
		}
	}
	if dir < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}
