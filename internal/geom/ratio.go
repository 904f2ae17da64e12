package geom

// Shapes store their geometry in ratio space: fractions of the background
// image's displayed rectangle. Drawing and hit testing happen in render space.
// The helpers below are the only bridge between the two.

// FromRatio maps a ratio-space point onto bg.
func FromRatio(p Point, bg Rect) Point {
	return bg.Lerp(p)
}

// ToRatio maps a render-space point into the ratio space of bg. An axis on
// which bg has no extent maps to 0.
func ToRatio(p Point, bg Rect) Point {
	return Point{
		ratio(p.X-bg.Min.X, bg.Width()),
		ratio(p.Y-bg.Min.Y, bg.Height()),
	}
}

// FromRatioRect maps both corners of r onto bg.
func FromRatioRect(r Rect, bg Rect) Rect {
	return Rect{FromRatio(r.Min, bg), FromRatio(r.Max, bg)}
}

// ToRatioRect maps both corners of r into the ratio space of bg.
func ToRatioRect(r Rect, bg Rect) Rect {
	return Rect{ToRatio(r.Min, bg), ToRatio(r.Max, bg)}
}

// FromRatioPoints maps every point of pts onto bg.
func FromRatioPoints(pts []Point, bg Rect) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = FromRatio(p, bg)
	}
	return out
}

// ToRatioVec scales a render-space displacement into ratio space.
func ToRatioVec(v Vec, bg Rect) Vec {
	return Vec{ratio(v.X, bg.Width()), ratio(v.Y, bg.Height())}
}

func ratio(v, extent float64) float64 {
	if !(extent > 0) {
		return 0
	}
	return v / extent
}
