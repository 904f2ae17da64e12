package toolbar

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint/painttest"
	"github.com/example/markshot/internal/ui"
)

type fixture struct {
	ctx   *ui.Context
	rec   painttest.Recorder
	panel *Panel

	clicked []string
	width   float64
	on      bool
	family  string
	label   string
	col     color.RGBA
}

func newFixture() *fixture {
	return &fixture{
		ctx:    ui.NewContext(),
		panel:  NewPanel(geom.Pt(0, 0), 300),
		width:  3,
		family: "A",
		label:  "hello",
	}
}

func (fx *fixture) frame(in ui.Input) {
	in.PointerValid = true
	fx.ctx.Begin(in)
	fx.rec.Reset()
	form := &Form{}
	form.Slider("Width", &fx.width, 1, 21, 1)
	form.Toggle("On", &fx.on)
	form.Choice("Family", &fx.family, []string{"A", "B", "C"})
	form.Text("Label", &fx.label, false)
	form.Color("Color", &fx.col)
	buttons := Buttons{Columns: 2, Items: []Button{
		{Label: "A", OnClick: func() { fx.clicked = append(fx.clicked, "A") }},
		{Label: "B", Disabled: true, OnClick: func() { fx.clicked = append(fx.clicked, "B") }},
	}}
	f := &ui.Frame{Ctx: fx.ctx, Paint: &fx.rec}
	fx.panel.Show(f, in, buttons, form)
	fx.ctx.End()
}

func (fx *fixture) click(p geom.Point) {
	fx.frame(ui.Input{Pointer: p})
	fx.frame(ui.Input{Pointer: p, Down: true, Pressed: true})
	fx.frame(ui.Input{Pointer: p, Released: true})
}

func TestPanelButtons(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(50, 20))
	fx.click(geom.Pt(200, 20))
	assert.Equal(t, []string{"A"}, fx.clicked)
	assert.Contains(t, fx.rec.Texts(), "A")
}

func TestPanelSlider(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(196, 45))
	assert.Equal(t, 11.0, fx.width)

	fx.frame(ui.Input{Pointer: geom.Pt(110, 45)})
	fx.frame(ui.Input{Pointer: geom.Pt(110, 45), Down: true, Pressed: true})
	fx.frame(ui.Input{Pointer: geom.Pt(400, 45), Down: true})
	assert.Equal(t, 21.0, fx.width)
	fx.frame(ui.Input{Pointer: geom.Pt(0, 45), Released: true})
	assert.Equal(t, 1.0, fx.width)
}

func TestPanelToggleAndChoice(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(108, 71))
	assert.True(t, fx.on)
	fx.click(geom.Pt(200, 97))
	assert.Equal(t, "B", fx.family)
	fx.click(geom.Pt(200, 97))
	fx.click(geom.Pt(200, 97))
	assert.Equal(t, "A", fx.family)
}

func TestPanelTextFocus(t *testing.T) {
	fx := newFixture()
	assert.False(t, fx.panel.WantsKeyboard())
	fx.click(geom.Pt(200, 120))
	require.True(t, fx.panel.WantsKeyboard())

	fx.frame(ui.Input{Pointer: geom.Pt(200, 120), Runes: []rune("!")})
	assert.Equal(t, "hello!", fx.label)
	fx.frame(ui.Input{Pointer: geom.Pt(200, 120), Keys: []key.Code{key.CodeDeleteBackspace, key.CodeDeleteBackspace}})
	assert.Equal(t, "hell", fx.label)

	fx.frame(ui.Input{Pointer: geom.Pt(200, 120), Keys: []key.Code{key.CodeEscape}})
	assert.False(t, fx.panel.WantsKeyboard())
	fx.frame(ui.Input{Pointer: geom.Pt(200, 120), Runes: []rune("x")})
	assert.Equal(t, "hell", fx.label)
}

func TestPanelTextLosesFocusOnOutsidePress(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(200, 120))
	require.True(t, fx.panel.WantsKeyboard())
	fx.click(geom.Pt(600, 600))
	assert.False(t, fx.panel.WantsKeyboard())
}

func TestPanelColor(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(179, 145))
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, fx.col)
}

func TestPanelBlocksPointer(t *testing.T) {
	fx := newFixture()
	fx.frame(ui.Input{Pointer: geom.Pt(5, 5)})
	rect := fx.panel.Rect()
	assert.Equal(t, geom.Pt(0, 0), rect.Min)
	assert.Equal(t, 300.0, rect.Width())
	assert.InDelta(t, 8+22+4+22*4+4*4+32+4+22+8, rect.Height(), 1e-9)
}

func TestPanelColorOpacity(t *testing.T) {
	fx := newFixture()
	fx.click(geom.Pt(179, 145))
	require.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, fx.col)

	// The opacity slider spans x 100..292 below the swatches.
	fx.click(geom.Pt(100+192*128.0/255, 185))
	assert.Equal(t, uint8(0x80), fx.col.A)
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0x80}, Straight(fx.col))

	fx.click(geom.Pt(100, 185))
	assert.Equal(t, color.RGBA{}, fx.col, "zero opacity")

	fx.click(geom.Pt(179, 145))
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, fx.col, "a swatch restores full opacity")
}

func TestWithAlpha(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	half := WithAlpha(red, 0x80)
	assert.Equal(t, color.RGBA{0x80, 0, 0, 0x80}, half)
	assert.Equal(t, red, WithAlpha(half, 0xff))
	assert.Equal(t, color.RGBA{0, 0, 0, 0x40}, WithAlpha(color.RGBA{}, 0x40))
}

func TestPalette(t *testing.T) {
	p := Palette()
	require.Len(t, p, 16)
	assert.Equal(t, color.RGBA{}, p[0])
	assert.Contains(t, p, color.RGBA{0, 0xff, 0, 0xff})
	assert.Contains(t, p, color.RGBA{0, 0, 0xff, 0xff})
}

func TestFormLabels(t *testing.T) {
	var v float64
	var b bool
	f := &Form{}
	f.Slider("Width", &v, 1, 20, 1)
	f.Toggle("Arrow", &b)
	assert.Equal(t, []string{"Width", "Arrow"}, f.Labels())
}
