// Package export turns a surface capture into the files, clipboard contents
// and pinned images a session produces.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/notify"
)

// Action is a set of export targets.
type Action uint8

const (
	Save Action = 1 << iota
	Copy
	Pin

	CopyAndSave = Copy | Save
)

func (a Action) Has(b Action) bool { return a&b == b }

func (a Action) String() string {
	switch a {
	case Save:
		return "save"
	case Copy:
		return "copy"
	case CopyAndSave:
		return "copy and save"
	case Pin:
		return "pin"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ErrCropOutside is returned when the crop does not fit in the capture.
var ErrCropOutside = errors.New("crop area lies outside the captured surface")

// PixelRect converts a render space rect to capture pixels, relative to the
// capture origin.
func PixelRect(r geom.Rect, pixelsPerPoint float64, origin image.Point) image.Rectangle {
	px := func(v float64) int { return int(math.Round(v * pixelsPerPoint)) }
	return image.Rect(px(r.Min.X), px(r.Min.Y), px(r.Max.X), px(r.Max.Y)).Add(origin)
}

// CropCapture cuts crop (render space) out of capture.
func CropCapture(capture image.Image, crop geom.Rect, pixelsPerPoint float64) (*image.NRGBA, error) {
	b := capture.Bounds()
	rect := PixelRect(crop, pixelsPerPoint, b.Min)
	if rect.Empty() || !rect.In(b) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrCropOutside, rect, b)
	}
	return imaging.Crop(capture, rect), nil
}

// Emitter writes finished images.
type Emitter struct {
	// Output is the PNG path; "-" is standard output and "" picks a
	// timestamped name in the working directory.
	Output    string
	Stdout    io.Writer
	Clipboard func(image.Image) error
	Notifier  *notify.Notifier

	now func() time.Time
}

// Save encodes img as PNG to the output.
func (e *Emitter) Save(img image.Image) error {
	path := e.Output
	if path == "" {
		path = e.defaultName()
	}
	if path == "-" {
		w := e.Stdout
		if w == nil {
			w = os.Stdout
		}
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		e.Notifier.Save(path)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("save: closing file: %v", cerr)
		}
		return fmt.Errorf("save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save: closing file: %w", err)
	}
	log.Printf("saved %s", path)
	e.Notifier.Save(path)
	return nil
}

// Copy puts img on the clipboard.
func (e *Emitter) Copy(img image.Image) error {
	if e.Clipboard == nil {
		return errors.New("copy: no clipboard available")
	}
	if err := e.Clipboard(img); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	log.Print("image copied to clipboard")
	e.Notifier.Copy()
	return nil
}

// Pin records that img goes to a pinned window; the host shows it.
func (e *Emitter) Pin(img image.Image) error {
	e.Notifier.Pin(img)
	return nil
}

func (e *Emitter) defaultName() string {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	return "markshot-" + now().Format("20060102-150405") + ".png"
}
