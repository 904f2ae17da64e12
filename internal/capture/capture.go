// Package capture grabs the desktop through the XDG screenshot portal so it
// can be annotated without a separate screenshot tool.
package capture

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Options tunes a desktop capture.
type Options struct {
	// Interactive lets the portal show its own selection dialog.
	Interactive bool
	// Cursor embeds the pointer in the capture.
	Cursor bool
	// Display selects a monitor by index, name or "primary"; empty keeps
	// the whole desktop.
	Display string
}

var shoot = portalScreenshot

// Screenshot captures the desktop. When a display selector is provided it will
// crop the result to the matching monitor.
func Screenshot(opts Options) (image.Image, error) {
	img, err := shoot(opts)
	if err != nil {
		return nil, err
	}
	if opts.Display == "" {
		return img, nil
	}
	monitors, err := backend.ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("display %q: %w", opts.Display, err)
	}
	mon, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

func cropToRect(src image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	return imaging.Crop(src, rect), nil
}
