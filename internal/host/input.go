package host

import (
	"image"
	"math"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/ui"
)

// scaleFor converts shiny's pixels per typographic point into device pixels
// per render unit, where one unit is a pixel at 96 DPI. It snaps to quarter
// steps and never goes below 1.
func scaleFor(pixelsPerPt float32) float64 {
	s := float64(pixelsPerPt) * 72 / 96
	s = math.Round(s*4) / 4
	if s < 1 || math.IsNaN(s) {
		return 1
	}
	return s
}

// collector folds window events into the next frame's ui.Input.
type collector struct {
	in ui.Input
	px image.Point
}

func newCollector() *collector {
	return &collector{in: ui.Input{PixelsPerPoint: 1}}
}

func (c *collector) size(e size.Event) {
	c.in.PixelsPerPoint = scaleFor(e.PixelsPerPt)
	c.px = image.Pt(e.WidthPx, e.HeightPx)
	s := c.in.PixelsPerPoint
	c.in.Screen = geom.R(0, 0, float64(e.WidthPx)/s, float64(e.HeightPx)/s)
}

func (c *collector) mouse(e mouse.Event) {
	s := c.in.Scale()
	c.in.Pointer = geom.Pt(float64(e.X)/s, float64(e.Y)/s)
	c.in.PointerValid = true
	c.in.Modifiers = e.Modifiers
	if e.Button != mouse.ButtonLeft {
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		c.in.Pressed = true
		c.in.Down = true
	case mouse.DirRelease:
		c.in.Released = true
		c.in.Down = false
	}
}

func (c *collector) key(e key.Event) {
	c.in.Modifiers = e.Modifiers
	if e.Direction == key.DirRelease {
		return
	}
	c.in.Keys = append(c.in.Keys, e.Code)
	if e.Rune > 0 && unicode.IsPrint(e.Rune) && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
		c.in.Runes = append(c.in.Runes, e.Rune)
	}
}

// take returns the input gathered since the last frame and clears the per
// frame edges.
func (c *collector) take() ui.Input {
	in := c.in
	c.in.Pressed = false
	c.in.Released = false
	c.in.Keys = nil
	c.in.Runes = nil
	return in
}
