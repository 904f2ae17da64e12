package editor

import (
	"fmt"
	"image"
	"log"

	"github.com/example/markshot/internal/export"
	"github.com/example/markshot/internal/ui"
)

// captureState is the phase of the two frame capture handshake.
type captureState int

const (
	captureIdle captureState = iota
	// captureRequested: the host was asked to capture; the next frame is
	// painted without chrome.
	captureRequested
	// captureAwaiting: the chrome-less frame was painted and its pixels are
	// due in a later Input.Capture.
	captureAwaiting
)

func (s captureState) String() string {
	switch s {
	case captureRequested:
		return "requested"
	case captureAwaiting:
		return "awaiting"
	}
	return "idle"
}

// Capturing reports whether a capture is in flight.
func (e *Editor) Capturing() bool { return e.capture != captureIdle }

// Request starts an export of the crop. The crop must lie on screen; it is
// checked against the last frame's geometry.
func (e *Editor) Request(a export.Action) {
	if e.capture != captureIdle {
		return
	}
	screen := e.ctx.Input().Screen
	if !screen.ContainsRect(e.info.FromRatioRect(e.crop.Range)) {
		e.err = ErrCropExceedsScreen
		return
	}
	e.err = nil
	e.action = a
	e.capture = captureRequested
}

// handshake advances the capture state machine at the end of a frame.
func (e *Editor) handshake(f *ui.Frame, in ui.Input, res *Result) {
	switch e.capture {
	case captureRequested:
		if !f.Info.ShotMode {
			// Requested during this frame, which still showed chrome.
			res.RequestCapture = true
			return
		}
		e.capture = captureAwaiting
	case captureAwaiting:
		if in.Capture == nil {
			return
		}
		e.capture = captureIdle
		e.finish(f, in.Capture, res)
	}
}

func (e *Editor) finish(f *ui.Frame, capture *image.RGBA, res *Result) {
	rect := f.Info.FromRatioRect(e.crop.Range)
	img, err := export.CropCapture(capture, rect, f.Input().Scale())
	if err != nil {
		log.Printf("%s: %v", e.action, err)
		e.err = fmt.Errorf("%s failed: %w", e.action, err)
		return
	}
	if e.exporter == nil {
		e.err = fmt.Errorf("%s failed: no exporter", e.action)
		return
	}

	if e.action.Has(export.Copy) {
		if err := e.exporter.Copy(img); err != nil {
			log.Printf("copy: %v", err)
			e.err = err
			return
		}
	}
	if e.action.Has(export.Save) {
		if err := e.exporter.Save(img); err != nil {
			log.Printf("save: %v", err)
			e.err = err
			return
		}
	}
	if e.action.Has(export.Pin) {
		if err := e.exporter.Pin(img); err != nil {
			log.Printf("pin: %v", err)
			e.err = err
			return
		}
		res.Pinned = img
		res.Close = true
		return
	}
	if e.exit {
		res.Close = true
	}
}
