package shape

import (
	"image/color"

	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/toolbar"
)

// DefaultText is the label a text shape gets when created blank.
const DefaultText = "Edit Text here"

// RectAttrs styles rectangles.
type RectAttrs struct {
	LineWidth float64
	Border    color.RGBA
	Fill      color.RGBA
	// Radius rounds the corners as a fraction of the shorter side, capped at
	// a half so 0.5 and above draw a capsule.
	Radius float64
}

// DefaultRectAttrs returns a 3px red outline.
func DefaultRectAttrs() RectAttrs {
	return RectAttrs{LineWidth: 3, Border: paint.Red}
}

func (a *RectAttrs) Toolbar(f *toolbar.Form) {
	f.Slider("Line width", &a.LineWidth, 1, 20, 0.5)
	f.Color("Border", &a.Border)
	f.Color("Fill", &a.Fill)
	f.Slider("Radius", &a.Radius, 0, 1, 0.05)
}

// CircleAttrs styles ellipses.
type CircleAttrs struct {
	LineWidth float64
	Border    color.RGBA
	Fill      color.RGBA
}

// DefaultCircleAttrs returns a 3px red outline.
func DefaultCircleAttrs() CircleAttrs {
	return CircleAttrs{LineWidth: 3, Border: paint.Red}
}

func (a *CircleAttrs) Toolbar(f *toolbar.Form) {
	f.Slider("Line width", &a.LineWidth, 1, 20, 0.5)
	f.Color("Border", &a.Border)
	f.Color("Fill", &a.Fill)
}

// LineAttrs styles lines and arrows.
type LineAttrs struct {
	LineWidth  float64
	Color      color.RGBA
	ArrowStart bool
	ArrowEnd   bool
	ArrowSize  float64
}

// DefaultLineAttrs returns a plain 3px red line.
func DefaultLineAttrs() LineAttrs {
	return LineAttrs{LineWidth: 3, Color: paint.Red, ArrowSize: 15}
}

func (a *LineAttrs) Toolbar(f *toolbar.Form) {
	f.Slider("Line width", &a.LineWidth, 1, 20, 0.5)
	f.Color("Color", &a.Color)
	f.Toggle("Arrow start", &a.ArrowStart)
	f.Toggle("Arrow end", &a.ArrowEnd)
	f.Slider("Arrow size", &a.ArrowSize, 0, 50, 1)
}

// PenAttrs styles free hand strokes.
type PenAttrs struct {
	Width float64
	Color color.RGBA
}

// DefaultPenAttrs returns a 3px red stroke.
func DefaultPenAttrs() PenAttrs {
	return PenAttrs{Width: 3, Color: paint.Red}
}

func (a *PenAttrs) Toolbar(f *toolbar.Form) {
	f.Slider("Width", &a.Width, 1, 20, 0.5)
	f.Color("Color", &a.Color)
}

// NumberAttrs styles numbered markers.
type NumberAttrs struct {
	Fill     color.RGBA
	Text     color.RGBA
	Radius   float64
	FontSize float64
}

// DefaultNumberAttrs returns a red disc with white digits.
func DefaultNumberAttrs() NumberAttrs {
	return NumberAttrs{Fill: paint.Red, Text: paint.White, Radius: 25, FontSize: 15}
}

func (a *NumberAttrs) Toolbar(f *toolbar.Form) {
	f.Color("Fill", &a.Fill)
	f.Color("Text", &a.Text)
	f.Slider("Circle size", &a.Radius, 0, 100, 1)
	f.Slider("Font size", &a.FontSize, 0, 50, 1)
}

// TextAttrs styles text labels and holds their content.
type TextAttrs struct {
	Text   string
	Color  color.RGBA
	Size   float64
	Family string
}

// DefaultTextAttrs returns red 20pt text in family.
func DefaultTextAttrs(family string) TextAttrs {
	if family == "" {
		family = fonts.Proportional
	}
	return TextAttrs{Text: DefaultText, Color: paint.Red, Size: 20, Family: family}
}

func (a *TextAttrs) Toolbar(f *toolbar.Form) {
	f.Text("Text", &a.Text, true)
	f.Color("Color", &a.Color)
	f.Slider("Size", &a.Size, 0, 100, 1)
	if len(f.Families) > 1 {
		f.Choice("Font", &a.Family, f.Families)
	}
}
