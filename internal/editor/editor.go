// Package editor is the annotation session: it owns the shapes, the crop and
// the armed tool, and runs one frame per host redraw.
package editor

import (
	"errors"
	"image"
	"math"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/crop"
	"github.com/example/markshot/internal/export"
	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/shape"
	"github.com/example/markshot/internal/theme"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// ErrCropExceedsScreen is shown when the crop is not fully on screen at the
// time an export is requested.
var ErrCropExceedsScreen = errors.New("Save or copy failed. Crop area exceeds screen. Please maximize the window and try again.")

const (
	panelWidth  = 300.0
	panelMargin = 8.0
)

var backgroundID = ui.NewID("background", 0, 0)

// Exporter receives finished images.
type Exporter interface {
	Save(img image.Image) error
	Copy(img image.Image) error
	Pin(img image.Image) error
}

// Result tells the host what to do after a frame.
type Result struct {
	// Close ends the editing session.
	Close bool
	// RequestCapture asks the host to capture the next frame it paints and
	// deliver it as Input.Capture.
	RequestCapture bool
	// Pinned is an image to show in a pinned window.
	Pinned image.Image
	Cursor ui.Cursor
}

// Option configures an Editor.
type Option func(*Editor)

// WithExporter sets where exports go.
func WithExporter(x Exporter) Option { return func(e *Editor) { e.exporter = x } }

// WithExit closes the session after a successful save or copy.
func WithExit(exit bool) Option { return func(e *Editor) { e.exit = exit } }

// WithFit shrinks the image to the available screen.
func WithFit(fit bool) Option { return func(e *Editor) { e.fit = fit } }

// WithFont sets the default family of text labels and the families offered.
func WithFont(family string, families []string) Option {
	return func(e *Editor) {
		e.font = family
		e.families = families
	}
}

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(e *Editor) { e.theme = t } }

// WithTool arms a tool at start.
func WithTool(t Tool) Option { return func(e *Editor) { e.tool = t } }

// Editor is one annotation session over a source image.
type Editor struct {
	img      image.Image
	ctx      *ui.Context
	theme    *theme.Theme
	exporter Exporter
	exit     bool
	fit      bool
	font     string
	families []string

	tool    Tool
	shapes  *shape.Set
	ids     shape.Counter
	numbers shape.Counter
	active  shape.Selection
	crop    *crop.Tool
	pending pending
	panel   *toolbar.Panel

	capture captureState
	action  export.Action
	err     error
	info    ui.RenderInfo
}

// New starts a session on img with the crop tool armed.
func New(img image.Image, opts ...Option) *Editor {
	e := &Editor{
		img:    img,
		ctx:    ui.NewContext(),
		theme:  theme.Default(),
		font:   fonts.Proportional,
		tool:   ToolCrop,
		shapes: shape.NewSet(),
		crop:   crop.New(),
		panel:  toolbar.NewPanel(geom.Pt(panelMargin, panelMargin), panelWidth),
	}
	for _, o := range opts {
		o(e)
	}
	if len(e.families) == 0 {
		e.families = []string{e.font}
	}
	e.pending = defaultPending(e.font)
	return e
}

// Tool is the armed tool.
func (e *Editor) Tool() Tool { return e.tool }

// SelectTool arms t, or disarms it when it is already armed. The active
// shape is dropped.
func (e *Editor) SelectTool(t Tool) {
	if e.tool == t {
		t = ToolNone
	}
	e.tool = t
	e.active.Clear()
}

// Shapes is the session's shape set.
func (e *Editor) Shapes() *shape.Set { return e.shapes }

// Active returns the active shape id.
func (e *Editor) Active() (shape.ID, bool) { return e.active.Get() }

// Crop is the crop tool.
func (e *Editor) Crop() *crop.Tool { return e.crop }

// Err is the message on display, if any.
func (e *Editor) Err() error { return e.err }

// DismissError hides the error message.
func (e *Editor) DismissError() { e.err = nil }

// RenderInfo is the geometry of the last frame.
func (e *Editor) RenderInfo() ui.RenderInfo { return e.info }

// Frame runs one frame of the session and paints it to p.
func (e *Editor) Frame(in ui.Input, p paint.Painter) Result {
	raw := in
	if e.panel.WantsKeyboard() {
		in = in.WithoutKeys()
	}
	e.ctx.Begin(in)

	shot := e.capture != captureIdle
	bg := e.background(in)
	e.info = ui.RenderInfo{
		Background: bg,
		PixelRatio: e.pixelRatio(bg),
		Font:       e.font,
		ShotMode:   shot,
	}
	f := &ui.Frame{Ctx: e.ctx, Paint: p, Info: e.info, Theme: e.theme}

	p.Rect(in.Screen, 0, e.theme.Background, paint.Stroke{})
	p.Image(bg, e.img)
	resp := e.ctx.Interact(backgroundID, bg, ui.ClickAndDrag)

	shape.RenderAll(f, e.shapes, &e.active)

	var res Result
	if !shot {
		e.route(f, resp)
		e.crop.Render(f, e.tool == ToolCrop)
		e.keys(in, &res)
		e.showPanel(f, raw)
		e.showError(f)
	}
	e.handshake(f, in, &res)

	res.Cursor = e.ctx.Cursor()
	e.ctx.End()
	return res
}

// background places the image at its natural size in points, anchored at
// the top left of the screen and optionally shrunk to fit.
func (e *Editor) background(in ui.Input) geom.Rect {
	b := e.img.Bounds()
	size := geom.V(float64(b.Dx()), float64(b.Dy())).Mul(1 / in.Scale())
	avail := in.Screen.Size()
	if e.fit && avail.X > 0 && avail.Y > 0 && size.X > 0 && size.Y > 0 {
		if s := math.Min(avail.X/size.X, avail.Y/size.Y); s < 1 {
			size = size.Mul(s)
		}
	}
	return geom.FromMinSize(in.Screen.Min, size)
}

func (e *Editor) pixelRatio(bg geom.Rect) float64 {
	w := e.img.Bounds().Dx()
	if w == 0 {
		return 1
	}
	return bg.Width() / float64(w)
}

// route hands the background response to the armed tool.
func (e *Editor) route(f *ui.Frame, resp ui.Response) {
	switch e.tool {
	case ToolNone:
		if resp.Clicked {
			e.active.Clear()
		}
	case ToolCrop:
		e.crop.OnGlobalResponse(f, resp)
	default:
		shape.HandleCreate(f, resp, e.shapes, &e.ids, &e.active, e.factory(e.tool))
	}
}

func (e *Editor) keys(in ui.Input, res *Result) {
	for _, k := range in.Keys {
		if in.Command() {
			switch k {
			case key.CodeS:
				e.Request(export.Save)
			case key.CodeC:
				e.Request(export.Copy)
			case key.CodeP:
				e.Request(export.Pin)
			}
			continue
		}
		switch k {
		case key.CodeDeleteForward:
			e.DeleteActive()
		case key.CodeEscape:
			if e.active.Valid() {
				e.active.Clear()
			} else {
				res.Close = true
			}
		default:
			if t, ok := toolKeys[k]; ok {
				if e.tool != t {
					e.SelectTool(t)
				}
				switch k {
				case key.CodeA:
					e.pending.line.ArrowEnd = true
				case key.CodeL:
					e.pending.line.ArrowEnd = false
				}
			}
		}
	}
}

// DeleteActive removes the active shape. It reports whether one was removed.
func (e *Editor) DeleteActive() bool {
	id, ok := e.active.Get()
	if !ok {
		return false
	}
	e.active.Clear()
	return e.shapes.Remove(id)
}

func (e *Editor) showPanel(f *ui.Frame, raw ui.Input) {
	tools := toolbar.Buttons{Columns: 4}
	for _, t := range Tools {
		t := t
		tools.Items = append(tools.Items, toolbar.Button{
			Label:    t.String(),
			Selected: e.tool == t,
			OnClick:  func() { e.SelectTool(t) },
		})
	}
	actions := toolbar.Buttons{Columns: 2, Items: []toolbar.Button{
		{Label: "Save", OnClick: func() { e.Request(export.Save) }},
		{Label: "Copy", OnClick: func() { e.Request(export.Copy) }},
		{Label: "Copy and Save", OnClick: func() { e.Request(export.CopyAndSave) }},
		{Label: "Pin", OnClick: func() { e.Request(export.Pin) }},
	}}

	form := &toolbar.Form{Families: e.families}
	heading := toolbar.Heading(e.tool.String())
	if id, ok := e.active.Get(); ok {
		if sh, ok := e.shapes.Get(id); ok {
			heading = toolbar.Heading(sh.Kind().String())
			sh.Toolbar(form)
		}
	} else {
		e.pending.toolbar(e.tool, form)
	}
	if len(form.Fields) == 0 {
		e.panel.Show(f, raw, tools, actions)
		return
	}
	e.panel.Show(f, raw, tools, actions, heading, form)
}

var errorFont = paint.Font{Family: fonts.Proportional, Size: 14}

// showError draws the message box at the top right of the screen. A click
// on it dismisses it.
func (e *Editor) showError(f *ui.Frame) {
	if e.err == nil {
		return
	}
	msg := strings.ReplaceAll(e.err.Error(), ". ", ".\n")
	size := f.Paint.MeasureText(msg, errorFont).Add(geom.V(24, 16))
	s := f.Input().Screen
	r := geom.FromMinSize(geom.Pt(s.Max.X-panelMargin-size.X, s.Min.Y+panelMargin), size)
	if f.Ctx.Interact(ui.NewID("error", 0, 0), r, ui.Click).Clicked {
		e.err = nil
	}
	f.Paint.Rect(r, 6, e.theme.ErrorBackground, paint.Stroke{})
	f.Paint.Text(r.Center(), paint.Center, msg, errorFont, e.theme.ErrorText)
}
