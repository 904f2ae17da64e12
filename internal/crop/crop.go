// Package crop is the export region tool.
package crop

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/manip"
	"github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/ui"
)

// borderWidth is the stroke drawn just outside a partial crop.
const borderWidth = 2

var widgetID = ui.NewID("crop", 0, 0)

// Tool edits the crop range. The zero value is not usable; use New.
type Tool struct {
	// Range is the exported region in ratio space.
	Range geom.Rect
	mr    manip.MoveResize
}

// New returns a tool covering the whole image.
func New() *Tool {
	return &Tool{Range: geom.Unit}
}

// IsFull reports whether the range covers the whole image.
func (t *Tool) IsFull() bool { return t.Range == geom.Unit }

// Reset drops the crop.
func (t *Tool) Reset() { t.Range = geom.Unit }

// State is the phase of the underlying move/resize primitive.
func (t *Tool) State() manip.State { return t.mr.State() }

// OnGlobalResponse handles the background response while the crop tool is
// armed. A click outside the range resets it, a drag spans a new range from
// where the button went down.
func (t *Tool) OnGlobalResponse(f *ui.Frame, resp ui.Response) {
	if resp.Clicked && !f.Info.FromRatioRect(t.Range).Contains(resp.Pos) {
		t.Reset()
	}
	t.mr.HandleResize(f, resp, &t.Range, manip.FromCursor)
}

// Render shades the area outside a partial range and, when active, runs the
// range controls. A full range only gets handles so a drag on the image
// still defines a new crop.
func (t *Tool) Render(f *ui.Frame, active bool) {
	if !t.IsFull() {
		t.shade(f)
	}
	if !active {
		return
	}
	if t.IsFull() {
		t.mr.ShowHandles(f, widgetID, &t.Range)
		return
	}
	t.mr.Show(f, widgetID, &t.Range)
}

func (t *Tool) shade(f *ui.Frame) {
	bg := f.Info.Background
	r := f.Info.FromRatioRect(t.Range)
	th := f.Style()
	bands := []geom.Rect{
		geom.R(bg.Min.X, bg.Min.Y, bg.Max.X, r.Min.Y),
		geom.R(bg.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		geom.R(r.Max.X, r.Min.Y, bg.Max.X, r.Max.Y),
		geom.R(bg.Min.X, r.Max.Y, bg.Max.X, bg.Max.Y),
	}
	for _, b := range bands {
		if b.Empty() {
			continue
		}
		f.Paint.Rect(b, 0, th.CropShade, paint.Stroke{})
	}
	f.Paint.Rect(r.Expand(borderWidth/2.0), 0, paint.Transparent, paint.NewStroke(borderWidth, th.CropBorder))
}
