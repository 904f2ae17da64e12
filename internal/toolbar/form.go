// Package toolbar renders the floating tools panel and the attribute forms
// shapes expose through it.
package toolbar

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Field is one editable option of a Form.
type Field interface {
	FieldLabel() string
}

// Slider edits a float between Min and Max in Step increments.
type Slider struct {
	Label    string
	Value    *float64
	Min, Max float64
	Step     float64
}

// IntSlider edits an integer between Min and Max.
type IntSlider struct {
	Label    string
	Value    *int
	Min, Max int
}

// ColorPicker picks an RGBA colour from the palette and sets its opacity.
type ColorPicker struct {
	Label string
	Value *color.RGBA
}

// Toggle edits a boolean.
type Toggle struct {
	Label string
	Value *bool
}

// TextInput edits free text.
type TextInput struct {
	Label     string
	Value     *string
	Multiline bool
}

// Choice picks one of Options.
type Choice struct {
	Label   string
	Value   *string
	Options []string
}

func (s Slider) FieldLabel() string      { return s.Label }
func (s IntSlider) FieldLabel() string   { return s.Label }
func (c ColorPicker) FieldLabel() string { return c.Label }
func (t Toggle) FieldLabel() string      { return t.Label }
func (t TextInput) FieldLabel() string   { return t.Label }
func (c Choice) FieldLabel() string      { return c.Label }

// Form collects the fields of one attribute record. Fields point into the
// record so edits apply live.
type Form struct {
	Fields []Field
	// Families lists the font families a text field may choose from.
	Families []string
}

// Slider appends a float slider.
func (f *Form) Slider(label string, v *float64, min, max, step float64) {
	f.Fields = append(f.Fields, Slider{Label: label, Value: v, Min: min, Max: max, Step: step})
}

// Int appends an integer slider.
func (f *Form) Int(label string, v *int, min, max int) {
	f.Fields = append(f.Fields, IntSlider{Label: label, Value: v, Min: min, Max: max})
}

// Color appends a colour picker.
func (f *Form) Color(label string, v *color.RGBA) {
	f.Fields = append(f.Fields, ColorPicker{Label: label, Value: v})
}

// Toggle appends a checkbox.
func (f *Form) Toggle(label string, v *bool) {
	f.Fields = append(f.Fields, Toggle{Label: label, Value: v})
}

// Text appends a text box.
func (f *Form) Text(label string, v *string, multiline bool) {
	f.Fields = append(f.Fields, TextInput{Label: label, Value: v, Multiline: multiline})
}

// Choice appends a cycling choice box.
func (f *Form) Choice(label string, v *string, options []string) {
	f.Fields = append(f.Fields, Choice{Label: label, Value: v, Options: options})
}

// Labels returns the field labels in order.
func (f *Form) Labels() []string {
	out := make([]string, len(f.Fields))
	for i, fl := range f.Fields {
		out[i] = fl.FieldLabel()
	}
	return out
}

// Palette is the colour set offered by colour pickers: transparent, a gray
// ramp and twelve fully saturated hues.
func Palette() []color.RGBA {
	out := []color.RGBA{
		{},
		{0xff, 0xff, 0xff, 0xff},
		{0x80, 0x80, 0x80, 0xff},
		{0, 0, 0, 0xff},
	}
	for i := 0; i < 12; i++ {
		r, g, b := colorful.Hsv(float64(i)*30, 1, 1).Clamped().RGB255()
		out = append(out, color.RGBA{r, g, b, 0xff})
	}
	return out
}

// Straight returns c without alpha premultiplication.
func Straight(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// WithAlpha returns c with its opacity replaced by a, keeping the hue. A
// fully transparent colour has no hue left and becomes translucent black.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	n := Straight(c)
	n.A = a
	return color.RGBAModel.Convert(n).(color.RGBA)
}
