package shape

import (
	"strings"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// Text is a label centred on Pos.
type Text struct {
	Pos   geom.Point
	Attrs TextAttrs
}

// NewText places a label at pos. A blank label gets DefaultText.
func NewText(pos geom.Point, info ui.RenderInfo, a TextAttrs) *Text {
	if strings.TrimSpace(a.Text) == "" {
		a.Text = DefaultText
	}
	if a.Family == "" {
		a.Family = info.Font
	}
	return &Text{Pos: info.ToRatio(pos), Attrs: a}
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) Render(f *ui.Frame, id ID, active bool) bool {
	p := f.Info.FromRatio(t.Pos)
	font := paint.Font{Family: t.Attrs.Family, Size: t.Attrs.Size * f.Info.PixelRatio}
	area := f.Paint.Text(p, paint.Center, t.Attrs.Text, font, t.Attrs.Color).Expand(2)

	if !active {
		return manip.HoverRange(f, widgetID(id), area)
	}
	shift := manip.ArrowOffset(f.Input())
	if f.Ctx.Dragging() {
		shift = geom.Vec{}
	}
	resp := f.Ctx.Interact(widgetID(id), area, ui.ClickAndDrag)
	manip.BodyCursor(f, resp)
	if resp.Dragged {
		shift = shift.Add(resp.Delta)
	}
	if shift != (geom.Vec{}) {
		t.Pos = f.Info.ToRatio(p.Add(shift))
	}
	f.Paint.Rect(area, 0, paint.Transparent, paint.NewStroke(1, f.Style().HoverOutline))
	return true
}

func (t *Text) Toolbar(form *toolbar.Form) { t.Attrs.Toolbar(form) }

func (t *Text) OnCreateResponse(f *ui.Frame, resp ui.Response) {
	if resp.Dragged {
		t.Pos = f.Info.ToRatio(f.Info.FromRatio(t.Pos).Add(resp.Delta))
	}
}
