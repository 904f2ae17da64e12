package toolbar

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/ui"
)

const (
	pad      = 8.0
	rowH     = 22.0
	gap      = 4.0
	labelW   = 92.0
	swatch   = 14.0
	textSize = 13.0
)

var labelFont = paint.Font{Family: fonts.Proportional, Size: textSize}

// Button is a push button. OnClick runs during Show.
type Button struct {
	Label    string
	Selected bool
	Disabled bool
	OnClick  func()
}

// Section is one block of the panel.
type Section interface {
	height(width float64) float64
	show(l *layout)
}

// Buttons lays buttons out in a grid.
type Buttons struct {
	Columns int
	Items   []Button
}

// Heading is a line of label text.
type Heading string

// Panel is the floating tools window.
type Panel struct {
	Origin geom.Point
	Width  float64

	focus   ui.ID
	focused bool
	rect    geom.Rect
}

// NewPanel places a panel at origin.
func NewPanel(origin geom.Point, width float64) *Panel {
	return &Panel{Origin: origin, Width: width}
}

// WantsKeyboard reports whether a text field holds the keyboard.
func (p *Panel) WantsKeyboard() bool { return p.focused }

// Rect is where the panel was last drawn.
func (p *Panel) Rect() geom.Rect { return p.rect }

type layout struct {
	p        *Panel
	f        *ui.Frame
	raw      ui.Input
	cursor   geom.Point
	inner    float64
	n        uint32
	sawFocus bool
}

// Show draws the panel and runs its widgets. raw is the unfiltered frame
// input; text fields read keys from it.
func (p *Panel) Show(f *ui.Frame, raw ui.Input, sections ...Section) {
	inner := p.Width - 2*pad
	h := pad
	for _, s := range sections {
		h += s.height(inner) + gap
	}
	h += pad - gap
	p.rect = geom.FromMinSize(p.Origin, geom.V(p.Width, h))

	th := f.Style()
	f.Ctx.Interact(ui.NewID("toolbar", 0, 0), p.rect, ui.ClickAndDrag)
	f.Paint.Rect(p.rect, 4, th.PanelBackground, paint.NewStroke(1, th.PanelBorder))

	l := &layout{p: p, f: f, raw: raw, cursor: p.Origin.Add(geom.V(pad, pad)), inner: inner}
	for _, s := range sections {
		s.show(l)
		l.cursor.Y += s.height(inner) + gap
	}
	if !l.sawFocus {
		p.focused = false
	}
}

func (l *layout) id() ui.ID {
	l.n++
	return ui.NewID("toolbar", 0, l.n)
}

func (h Heading) height(float64) float64 { return rowH }

func (h Heading) show(l *layout) {
	l.f.Paint.Text(l.cursor.Add(geom.V(0, rowH/2)), paint.LeftCenter, string(h), labelFont, l.f.Style().Foreground)
}

func (b Buttons) cols() int {
	if b.Columns <= 0 {
		return 1
	}
	return b.Columns
}

func (b Buttons) height(float64) float64 {
	rows := (len(b.Items) + b.cols() - 1) / b.cols()
	if rows == 0 {
		return 0
	}
	return float64(rows)*(rowH+gap) - gap
}

func (b Buttons) show(l *layout) {
	cols := b.cols()
	w := (l.inner - float64(cols-1)*gap) / float64(cols)
	th := l.f.Style()
	for i, item := range b.Items {
		x := l.cursor.X + float64(i%cols)*(w+gap)
		y := l.cursor.Y + float64(i/cols)*(rowH+gap)
		r := geom.FromMinSize(geom.Pt(x, y), geom.V(w, rowH))
		resp := l.f.Ctx.Interact(l.id(), r, ui.Click)

		bg, fg := th.ButtonBackground, th.ButtonText
		switch {
		case item.Disabled:
			fg = th.ButtonTextDisabled
		case item.Selected:
			bg = th.ButtonBackgroundPress
		case resp.Hovered:
			bg = th.ButtonBackgroundHover
		}
		l.f.Paint.Rect(r, 3, bg, paint.NewStroke(1, th.ButtonBorder))
		l.f.Paint.Text(r.Center(), paint.Center, item.Label, labelFont, fg)

		if resp.Clicked && !item.Disabled && item.OnClick != nil {
			item.OnClick()
		}
	}
}

func (f *Form) height(float64) float64 {
	h := 0.0
	for _, fl := range f.Fields {
		h += fieldHeight(fl) + gap
	}
	if h > 0 {
		h -= gap
	}
	return h
}

func fieldHeight(fl Field) float64 {
	switch v := fl.(type) {
	case ColorPicker:
		return swatchesHeight() + gap + rowH
	case TextInput:
		if v.Multiline {
			lines := strings.Count(*v.Value, "\n") + 1
			return math.Max(rowH, float64(lines)*textSize*1.3+8)
		}
	}
	return rowH
}

func (f *Form) show(l *layout) {
	y := l.cursor.Y
	for _, fl := range f.Fields {
		h := fieldHeight(fl)
		l.f.Paint.Text(geom.Pt(l.cursor.X, y+rowH/2), paint.LeftCenter, fl.FieldLabel(), labelFont, l.f.Style().Foreground)
		ctrl := geom.FromMinSize(geom.Pt(l.cursor.X+labelW, y), geom.V(l.inner-labelW, h))
		switch v := fl.(type) {
		case Slider:
			l.slider(ctrl, v)
		case IntSlider:
			val := float64(*v.Value)
			l.slider(ctrl, Slider{Value: &val, Min: float64(v.Min), Max: float64(v.Max), Step: 1})
			*v.Value = int(math.Round(val))
		case ColorPicker:
			l.colors(ctrl, v)
		case Toggle:
			l.toggle(ctrl, v)
		case TextInput:
			l.text(ctrl, v)
		case Choice:
			l.choice(ctrl, v)
		}
		y += h + gap
	}
}

func (l *layout) slider(r geom.Rect, s Slider) {
	resp := l.f.Ctx.Interact(l.id(), r, ui.ClickAndDrag)
	if (resp.Clicked || resp.Dragged) && r.Width() > 0 {
		t := (resp.Pos.X - r.Min.X) / r.Width()
		t = math.Max(0, math.Min(1, t))
		v := s.Min + t*(s.Max-s.Min)
		if s.Step > 0 {
			v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		}
		*s.Value = math.Max(s.Min, math.Min(s.Max, v))
	}

	th := l.f.Style()
	l.f.Paint.Rect(r, 3, th.FieldBackground, paint.NewStroke(1, th.PanelBorder))
	frac := 0.0
	if s.Max > s.Min {
		frac = (*s.Value - s.Min) / (s.Max - s.Min)
	}
	fill := geom.FromMinSize(r.Min, geom.V(r.Width()*math.Max(0, math.Min(1, frac)), r.Height()))
	l.f.Paint.Rect(fill, 3, th.ButtonBackground, paint.Stroke{})
	l.f.Paint.Text(r.Center(), paint.Center, formatValue(*s.Value, s.Step), labelFont, th.ButtonText)
}

func formatValue(v, step float64) string {
	if step >= 1 || step == 0 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func swatchesHeight() float64 {
	rows := (len(Palette()) + 7) / 8
	return float64(rows)*(swatch+gap) - gap
}

// colors shows the palette swatches with an opacity slider below them.
func (l *layout) colors(r geom.Rect, c ColorPicker) {
	th := l.f.Style()
	current := Straight(*c.Value)
	for i, col := range Palette() {
		x := r.Min.X + float64(i%8)*(swatch+gap)
		y := r.Min.Y + float64(i/8)*(swatch+gap)
		sw := geom.FromMinSize(geom.Pt(x, y), geom.V(swatch, swatch))
		resp := l.f.Ctx.Interact(l.id(), sw, ui.Click)
		if resp.Clicked {
			*c.Value = col
		}
		drawSwatch(l.f.Paint, sw, col, th.CheckerLight, th.CheckerDark)
		border := paint.NewStroke(1, th.PanelBorder)
		if sameHue(current, Straight(col)) {
			border = paint.NewStroke(2, th.FieldFocus)
		}
		l.f.Paint.Rect(sw, 0, color.RGBA{}, border)
	}

	alpha := float64(current.A)
	row := geom.FromMinSize(geom.Pt(r.Min.X, r.Min.Y+swatchesHeight()+gap), geom.V(r.Width(), rowH))
	l.slider(row, Slider{Value: &alpha, Min: 0, Max: 0xff, Step: 1})
	if a := uint8(alpha); a != current.A {
		*c.Value = WithAlpha(*c.Value, a)
	}
}

func sameHue(a, b color.NRGBA) bool {
	if a.A == 0 || b.A == 0 {
		return a.A == b.A
	}
	return a.R == b.R && a.G == b.G && a.B == b.B
}

func drawSwatch(p paint.Painter, r geom.Rect, c, light, dark color.RGBA) {
	if c.A < 0xff {
		h := r.Width() / 2
		p.Rect(r, 0, light, paint.Stroke{})
		p.Rect(geom.FromMinSize(r.Min, geom.V(h, h)), 0, dark, paint.Stroke{})
		p.Rect(geom.FromMinSize(r.Min.Add(geom.V(h, h)), geom.V(h, h)), 0, dark, paint.Stroke{})
	}
	p.Rect(r, 0, c, paint.Stroke{})
}

func (l *layout) toggle(r geom.Rect, t Toggle) {
	box := geom.FromMinSize(geom.Pt(r.Min.X, r.Center().Y-8), geom.V(16, 16))
	resp := l.f.Ctx.Interact(l.id(), box, ui.Click)
	if resp.Clicked {
		*t.Value = !*t.Value
	}
	th := l.f.Style()
	l.f.Paint.Rect(box, 2, th.FieldBackground, paint.NewStroke(1, th.PanelBorder))
	if *t.Value {
		l.f.Paint.Rect(box.Expand(-4), 1, th.FieldFocus, paint.Stroke{})
	}
}

func (l *layout) text(r geom.Rect, t TextInput) {
	id := l.id()
	resp := l.f.Ctx.Interact(id, r, ui.Click)
	p := l.p
	focused := p.focused && p.focus == id
	switch {
	case resp.Clicked:
		p.focus, p.focused, focused = id, true, true
	case focused && l.raw.Pressed && !r.Contains(l.raw.Pointer):
		p.focused, focused = false, false
	}
	if focused {
		l.sawFocus = true
		*t.Value = edit(*t.Value, l.raw, t.Multiline, func() { p.focused, focused = false, false })
	}

	th := l.f.Style()
	border := paint.NewStroke(1, th.PanelBorder)
	shown := *t.Value
	if focused {
		border = paint.NewStroke(2, th.FieldFocus)
		shown += "|"
	}
	l.f.Paint.Rect(r, 3, th.FieldBackground, border)
	l.f.Paint.Text(r.Min.Add(geom.V(4, 4)), paint.LeftTop, shown, labelFont, th.Foreground)
}

// edit applies the frame's typing to s. done is called when the field should
// give up the keyboard.
func edit(s string, in ui.Input, multiline bool, done func()) string {
	for _, r := range in.Runes {
		if r == '\n' || r == '\r' || r < 0x20 {
			continue
		}
		s += string(r)
	}
	for _, k := range in.Keys {
		switch k {
		case key.CodeDeleteBackspace:
			if s != "" {
				_, size := utf8.DecodeLastRuneInString(s)
				s = s[:len(s)-size]
			}
		case key.CodeReturnEnter, key.CodeKeypadEnter:
			if multiline {
				s += "\n"
			} else {
				done()
			}
		case key.CodeEscape, key.CodeTab:
			done()
		}
	}
	return s
}

func (l *layout) choice(r geom.Rect, c Choice) {
	resp := l.f.Ctx.Interact(l.id(), r, ui.Click)
	if resp.Clicked && len(c.Options) > 0 {
		next := 0
		for i, o := range c.Options {
			if o == *c.Value {
				next = (i + 1) % len(c.Options)
				break
			}
		}
		*c.Value = c.Options[next]
	}
	th := l.f.Style()
	bg := th.ButtonBackground
	if resp.Hovered {
		bg = th.ButtonBackgroundHover
	}
	l.f.Paint.Rect(r, 3, bg, paint.NewStroke(1, th.ButtonBorder))
	l.f.Paint.Text(r.Center(), paint.Center, *c.Value, labelFont, th.ButtonText)
}
