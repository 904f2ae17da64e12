// Package geom holds the float geometry shared by the editor: points, vectors
// and rectangles in either render space or ratio space.
package geom

import "math"

// Point is a position.
type Point struct {
	X, Y float64
}

// Vec is a displacement or a size.
type Vec struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add translates p by v.
func (p Point) Add(v Vec) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vec { return Vec{p.X - q.X, p.Y - q.Y} }

// SubVec translates p by -v.
func (p Point) SubVec(v Vec) Point { return Point{p.X - v.X, p.Y - v.Y} }

// Vec returns p as a vector from the origin.
func (p Point) Vec() Vec { return Vec{p.X, p.Y} }

// Clamp limits p to the box spanned by lo and hi. When hi is below lo on an
// axis, lo wins on that axis.
func (p Point) Clamp(lo, hi Point) Point {
	return Point{clamp(p.X, lo.X, hi.X), clamp(p.Y, lo.Y, hi.Y)}
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Mul scales v by s.
func (v Vec) Mul(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len is the euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length, or the zero vector.
func (v Vec) Normalized() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Rotate turns v counter-clockwise (in y-down screen space, clockwise) by
// angle radians.
func (v Vec) Rotate(angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Rect is an axis aligned rectangle. Min is the top-left corner.
type Rect struct {
	Min, Max Point
}

// Unit is the rectangle (0,0)-(1,1), the whole of ratio space.
var Unit = Rect{Max: Point{1, 1}}

// R builds a rectangle from its corner coordinates.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Point{x0, y0}, Point{x1, y1}}
}

// FromMinSize builds a rectangle from its top-left corner and size.
func FromMinSize(min Point, size Vec) Rect {
	return Rect{min, min.Add(size)}
}

// FromCenterSize builds a rectangle centred on c.
func FromCenterSize(c Point, size Vec) Rect {
	h := size.Mul(0.5)
	return Rect{c.SubVec(h), c.Add(h)}
}

// FromTwoPoints returns the bounding box of a and b.
func FromTwoPoints(a, b Point) Rect {
	return Rect{
		Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// Bounds returns the bounding box of pts. It is the zero Rect when pts is empty.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0], pts[0]}
	for _, p := range pts[1:] {
		r = r.Extend(p)
	}
	return r
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec       { return Vec{r.Width(), r.Height()} }

// Center is the midpoint of r.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) LeftTop() Point      { return r.Min }
func (r Rect) RightBottom() Point  { return r.Max }
func (r Rect) RightTop() Point     { return Point{r.Max.X, r.Min.Y} }
func (r Rect) LeftBottom() Point   { return Point{r.Min.X, r.Max.Y} }
func (r Rect) LeftCenter() Point   { return Point{r.Min.X, r.Center().Y} }
func (r Rect) RightCenter() Point  { return Point{r.Max.X, r.Center().Y} }
func (r Rect) CenterTop() Point    { return Point{r.Center().X, r.Min.Y} }
func (r Rect) CenterBottom() Point { return Point{r.Center().X, r.Max.Y} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Point{r.Min.X - d, r.Min.Y - d}, Point{r.Max.X + d, r.Max.Y + d}}
}

// Extend grows r just enough to contain p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Point{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Point{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Translate moves r by v.
func (r Rect) Translate(v Vec) Rect {
	return Rect{r.Min.Add(v), r.Max.Add(v)}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return !(r.Width() > 0) || !(r.Height() > 0)
}

// Lerp maps t in [0,1]² onto r.
func (r Rect) Lerp(t Point) Point {
	return Point{
		r.Min.X + (r.Max.X-r.Min.X)*t.X,
		r.Min.Y + (r.Max.Y-r.Min.Y)*t.Y,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
