package shape

import (
	"strconv"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// Number is a numbered disc with an optional tail pointing at Tail.
type Number struct {
	Center, Tail geom.Point
	Value        int
	Attrs        NumberAttrs
	lm           manip.LineMove
}

// NewNumber places marker value at pos.
func NewNumber(pos geom.Point, info ui.RenderInfo, a NumberAttrs, value int) *Number {
	p := info.ToRatio(pos)
	return &Number{Center: p, Tail: p, Value: value, Attrs: a}
}

func (n *Number) Kind() Kind { return KindNumber }

// TailTriangle returns the tail from a disc of radius r at c towards tail,
// or nil when tail lies inside the disc.
func TailTriangle(c, tail geom.Point, r float64) []geom.Point {
	v := tail.Sub(c)
	if v.Len() < r || v.Len() == 0 {
		return nil
	}
	d := v.Normalized().Mul(r)
	return []geom.Point{c.Add(d.Rotate(arrowAngle)), tail, c.Add(d.Rotate(-arrowAngle))}
}

func (n *Number) Render(f *ui.Frame, id ID, active bool) bool {
	c, t := f.Info.FromRatio(n.Center), f.Info.FromRatio(n.Tail)
	r := n.Attrs.Radius * f.Info.PixelRatio
	if tri := TailTriangle(c, t, r); tri != nil {
		f.Paint.Polygon(tri, n.Attrs.Fill, paint.Stroke{})
	}
	f.Paint.Circle(c, r, n.Attrs.Fill, paint.Stroke{})
	font := paint.Font{Family: f.Info.Font, Size: n.Attrs.FontSize * f.Info.PixelRatio}
	f.Paint.Text(c, paint.Center, strconv.Itoa(n.Value), font, n.Attrs.Text)

	if active {
		n.lm.Show(f, widgetID(id), &n.Center, &n.Tail, r)
		return true
	}
	hit := geom.FromCenterSize(c, geom.V(r*2, r*2)).Extend(t).Expand(2)
	return manip.HoverRange(f, widgetID(id), hit)
}

func (n *Number) Toolbar(form *toolbar.Form) {
	n.Attrs.Toolbar(form)
	form.Int("Number", &n.Value, 0, 128)
}

func (n *Number) OnCreateResponse(f *ui.Frame, resp ui.Response) {
	n.lm.HandleMoveEnd(f, resp, n.Center, &n.Tail)
}
