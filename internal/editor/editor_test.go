package editor

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/export"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/paint/painttest"
	"github.com/example/markshot/internal/shape"
	"github.com/example/markshot/internal/ui"
)

type fakeExporter struct {
	saved, copied, pinned []image.Image
	err                   error
}

func (f *fakeExporter) Save(img image.Image) error {
	f.saved = append(f.saved, img)
	return f.err
}

func (f *fakeExporter) Copy(img image.Image) error {
	f.copied = append(f.copied, img)
	return f.err
}

func (f *fakeExporter) Pin(img image.Image) error {
	f.pinned = append(f.pinned, img)
	return f.err
}

type rig struct {
	e       *Editor
	x       *fakeExporter
	rec     painttest.Recorder
	screen  geom.Rect
	pos     geom.Point
	capture *image.RGBA
}

// newRig opens a 1000x800 image on a 1200x1000 screen.
func newRig(opts ...Option) *rig {
	x := &fakeExporter{}
	img := image.NewRGBA(image.Rect(0, 0, 1000, 800))
	return &rig{
		e:      New(img, append([]Option{WithExporter(x)}, opts...)...),
		x:      x,
		screen: geom.R(0, 0, 1200, 1000),
	}
}

func (r *rig) frame(in ui.Input) Result {
	in.Pointer = r.pos
	in.PointerValid = true
	in.Screen = r.screen
	in.PixelsPerPoint = 1
	in.Capture, r.capture = r.capture, nil
	r.rec.Reset()
	return r.e.Frame(in, &r.rec)
}

func (r *rig) idle() Result { return r.frame(ui.Input{}) }

func (r *rig) hover(p geom.Point) Result {
	r.pos = p
	return r.idle()
}

func (r *rig) press(p geom.Point) Result {
	r.pos = p
	return r.frame(ui.Input{Down: true, Pressed: true})
}

func (r *rig) move(p geom.Point) Result {
	r.pos = p
	return r.frame(ui.Input{Down: true})
}

func (r *rig) release(p geom.Point) Result {
	r.pos = p
	return r.frame(ui.Input{Released: true})
}

func (r *rig) click(p geom.Point) Result {
	r.hover(p)
	r.press(p)
	return r.release(p)
}

func (r *rig) drag(from geom.Point, to ...geom.Point) {
	r.hover(from)
	r.press(from)
	last := from
	for _, p := range to {
		r.move(p)
		last = p
	}
	r.release(last)
}

func (r *rig) key(code key.Code, mods key.Modifiers) Result {
	return r.frame(ui.Input{Keys: []key.Code{code}, Modifiers: mods})
}

func TestStartsWithCropArmed(t *testing.T) {
	r := newRig()
	assert.Equal(t, ToolCrop, r.e.Tool())
	assert.True(t, r.e.Crop().IsFull())
	r.idle()
	assert.Equal(t, geom.R(0, 0, 1000, 800), r.e.RenderInfo().Background)
	assert.InDelta(t, 1, r.e.RenderInfo().PixelRatio, 1e-9)
}

func TestBackgroundScalesWithPixelsPerPoint(t *testing.T) {
	r := newRig()
	r.frame(ui.Input{})
	r.rec.Reset()
	r.e.Frame(ui.Input{Screen: r.screen, PixelsPerPoint: 2}, &r.rec)
	info := r.e.RenderInfo()
	assert.Equal(t, geom.R(0, 0, 500, 400), info.Background)
	assert.InDelta(t, 0.5, info.PixelRatio, 1e-9)
}

func TestFitShrinksToScreen(t *testing.T) {
	r := newRig(WithFit(true))
	r.screen = geom.R(0, 0, 600, 600)
	r.idle()
	assert.Equal(t, geom.R(0, 0, 600, 480), r.e.RenderInfo().Background)
}

func TestCreateAndDeleteShape(t *testing.T) {
	r := newRig(WithTool(ToolRect))
	r.drag(geom.Pt(500, 500), geom.Pt(550, 560), geom.Pt(600, 650))
	require.Equal(t, 1, r.e.Shapes().Len())
	id, ok := r.e.Active()
	require.True(t, ok)

	sh, _ := r.e.Shapes().Get(id)
	rect := r.e.RenderInfo().FromRatioRect(sh.(*shape.Rectangle).Rect)
	assert.InDelta(t, 500, rect.Min.X, 1e-9)
	assert.InDelta(t, 650, rect.Max.Y, 1e-9)

	r.key(key.CodeDeleteForward, 0)
	assert.Equal(t, 0, r.e.Shapes().Len())
	_, ok = r.e.Active()
	assert.False(t, ok)
}

func TestDeleteWithoutActiveIsNoop(t *testing.T) {
	r := newRig(WithTool(ToolCircle))
	r.click(geom.Pt(500, 500))
	r.key(key.CodeEscape, 0)
	_, ok := r.e.Active()
	require.False(t, ok)

	res := r.key(key.CodeDeleteForward, 0)
	assert.Equal(t, 1, r.e.Shapes().Len())
	assert.False(t, res.Close)
	assert.False(t, r.e.DeleteActive())
}

func TestEscapeClosesWhenNothingActive(t *testing.T) {
	r := newRig(WithTool(ToolRect))
	r.click(geom.Pt(500, 500))
	res := r.key(key.CodeEscape, 0)
	assert.False(t, res.Close)
	res = r.key(key.CodeEscape, 0)
	assert.True(t, res.Close)
}

func TestAtMostOneActive(t *testing.T) {
	r := newRig(WithTool(ToolRect))
	r.click(geom.Pt(500, 500))
	r.click(geom.Pt(900, 700))
	r.click(geom.Pt(900, 700))
	require.Equal(t, 2, r.e.Shapes().Len())
	id, ok := r.e.Active()
	require.True(t, ok)
	assert.Equal(t, shape.ID(2), id)

	r.click(geom.Pt(515, 515))
	id, ok = r.e.Active()
	require.True(t, ok)
	assert.Equal(t, shape.ID(1), id)
}

func TestNumbersAreNeverReused(t *testing.T) {
	r := newRig(WithTool(ToolNumber))
	r.click(geom.Pt(500, 500))
	r.key(key.CodeDeleteForward, 0)
	r.click(geom.Pt(700, 600))
	r.click(geom.Pt(900, 100))
	r.click(geom.Pt(900, 100))

	var values []int
	for _, id := range r.e.Shapes().IDs() {
		sh, _ := r.e.Shapes().Get(id)
		values = append(values, sh.(*shape.Number).Value)
	}
	assert.Equal(t, []int{2, 3}, values)
}

func TestToolKeys(t *testing.T) {
	r := newRig()
	r.key(key.CodeX, 0)
	assert.Equal(t, ToolRect, r.e.Tool())
	r.key(key.CodeX, 0)
	assert.Equal(t, ToolRect, r.e.Tool())
	r.key(key.CodeB, 0)
	assert.Equal(t, ToolPen, r.e.Tool())
	r.key(key.CodeA, 0)
	assert.Equal(t, ToolLine, r.e.Tool())
	assert.True(t, r.e.pending.line.ArrowEnd)
	r.key(key.CodeL, 0)
	assert.Equal(t, ToolLine, r.e.Tool())
	assert.False(t, r.e.pending.line.ArrowEnd, "L draws plain lines again")
	r.key(key.CodeM, 0)
	assert.Equal(t, ToolNone, r.e.Tool())
}

func TestSelectToolTwiceDisarms(t *testing.T) {
	r := newRig()
	r.e.SelectTool(ToolPen)
	assert.Equal(t, ToolPen, r.e.Tool())
	r.e.SelectTool(ToolPen)
	assert.Equal(t, ToolNone, r.e.Tool())
}

func TestToolbarButtonSelectsTool(t *testing.T) {
	r := newRig()
	r.click(geom.Pt(120, 27))
	assert.Equal(t, ToolRect, r.e.Tool())
	r.idle()
	assert.Contains(t, r.rec.Texts(), "Line width")
}

func TestSaveHandshake(t *testing.T) {
	r := newRig()
	r.e.Crop().Range = geom.R(0.5, 0.5, 1, 1)
	r.idle()

	res := r.key(key.CodeS, key.ModControl)
	assert.True(t, res.RequestCapture)
	assert.True(t, r.e.Capturing())
	assert.Contains(t, r.rec.Texts(), "Save")

	res = r.idle()
	assert.False(t, res.RequestCapture)
	assert.True(t, r.e.RenderInfo().ShotMode)
	assert.NotContains(t, r.rec.Texts(), "Save", "chrome hidden while capturing")
	assert.Empty(t, r.rec.OfKind(painttest.KindRect)[1:], "only the window background")

	r.idle()
	assert.True(t, r.e.Capturing(), "waits for the capture")
	assert.Empty(t, r.x.saved)

	r.capture = image.NewRGBA(image.Rect(0, 0, 1200, 1000))
	res = r.idle()
	assert.False(t, r.e.Capturing())
	require.Len(t, r.x.saved, 1)
	assert.Equal(t, image.Rect(0, 0, 500, 400), r.x.saved[0].Bounds())
	assert.Empty(t, r.x.copied)
	assert.False(t, res.Close)

	r.idle()
	assert.False(t, r.e.RenderInfo().ShotMode)
}

func completeCapture(r *rig, a export.Action) Result {
	r.idle()
	r.e.Request(a)
	r.idle()
	r.idle()
	r.capture = image.NewRGBA(image.Rect(0, 0, 1200, 1000))
	return r.idle()
}

func TestCopyAndSaveWithExit(t *testing.T) {
	r := newRig(WithExit(true))
	res := completeCapture(r, export.CopyAndSave)
	assert.Len(t, r.x.copied, 1)
	assert.Len(t, r.x.saved, 1)
	assert.True(t, res.Close)
}

func TestPinClosesWithImage(t *testing.T) {
	r := newRig()
	res := completeCapture(r, export.Pin)
	require.NotNil(t, res.Pinned)
	assert.Equal(t, image.Rect(0, 0, 1000, 800), res.Pinned.Bounds())
	assert.True(t, res.Close)
	assert.Len(t, r.x.pinned, 1)
}

func TestExportErrorKeepsEditorOpen(t *testing.T) {
	r := newRig(WithExit(true))
	r.x.err = errors.New("disk full")
	res := completeCapture(r, export.Save)
	assert.False(t, res.Close)
	assert.EqualError(t, r.e.Err(), "disk full")
	assert.False(t, r.e.Capturing())
}

func TestCropExceedsScreen(t *testing.T) {
	r := newRig()
	r.screen = geom.R(0, 0, 600, 600)
	r.idle()
	res := r.key(key.CodeC, key.ModControl)
	assert.False(t, res.RequestCapture)
	assert.False(t, r.e.Capturing())
	assert.ErrorIs(t, r.e.Err(), ErrCropExceedsScreen)

	r.idle()
	joined := strings.Join(r.rec.Texts(), "\n")
	assert.Contains(t, joined, "Crop area exceeds screen.")

	r.e.DismissError()
	assert.NoError(t, r.e.Err())
}

func TestCaptureSmallerThanCrop(t *testing.T) {
	r := newRig()
	r.idle()
	r.e.Request(export.Save)
	r.idle()
	r.idle()
	r.capture = image.NewRGBA(image.Rect(0, 0, 500, 500))
	r.idle()
	assert.ErrorIs(t, r.e.Err(), export.ErrCropOutside)
	assert.False(t, r.e.Capturing())
	assert.Empty(t, r.x.saved)
}

func TestCropToolDragFromImage(t *testing.T) {
	r := newRig()
	r.drag(geom.Pt(900, 700), geom.Pt(600, 400))
	assert.InDelta(t, 0.6, r.e.Crop().Range.Min.X, 1e-9)
	assert.InDelta(t, 0.5, r.e.Crop().Range.Min.Y, 1e-9)
	assert.InDelta(t, 0.9, r.e.Crop().Range.Max.X, 1e-9)
	assert.InDelta(t, 0.875, r.e.Crop().Range.Max.Y, 1e-9)
}
