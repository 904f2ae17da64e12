// Package host runs editor sessions and pinned images in shiny windows. It
// turns window events into ui.Input frames, rasterizes each frame and hands
// surface captures back to the editor.
package host

import (
	"fmt"
	"image"
	"log"
	"os"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/geom"
	painter "github.com/example/markshot/internal/paint"
	"github.com/example/markshot/internal/render"
	"github.com/example/markshot/internal/theme"
)

// Options configures the windows.
type Options struct {
	Title  string
	Faces  painter.Faces
	Theme  *theme.Theme
	Shadow *render.ShadowOptions
	// OnCopy runs when Ctrl+C is pressed in a pinned window.
	OnCopy func(image.Image) error
}

func (o Options) title() string {
	if o.Title == "" {
		return "markshot"
	}
	return o.Title
}

func (o Options) theme() *theme.Theme {
	if o.Theme == nil {
		return theme.Default()
	}
	return o.Theme
}

func (o Options) shadow() render.ShadowOptions {
	if o.Shadow == nil {
		return render.DefaultShadowOptions()
	}
	return *o.Shadow
}

// Edit opens a window of the given size for ed and blocks until the session
// closes. A session that ends by pinning shows the pinned image before Edit
// returns.
func Edit(ed *editor.Editor, win image.Point, opts Options) error {
	var err error
	driver.Main(func(s screen.Screen) {
		var pinned image.Image
		pinned, err = runEditor(s, ed, win, opts)
		if err == nil && pinned != nil {
			err = runPinned(s, pinned, opts)
		}
	})
	return err
}

// Pin shows img in a pinned window and blocks until it is closed.
func Pin(img image.Image, opts Options) error {
	var err error
	driver.Main(func(s screen.Screen) {
		err = runPinned(s, img, opts)
	})
	return err
}

// redrawer coalesces paint requests so a burst of input events costs one
// frame.
type redrawer struct {
	w       screen.Window
	pending bool
}

func (r *redrawer) redraw() {
	if r.pending {
		return
	}
	r.pending = true
	r.w.Send(paint.Event{})
}

func runEditor(s screen.Screen, ed *editor.Editor, initial image.Point, opts Options) (image.Image, error) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: initial.X, Height: initial.Y, Title: opts.title()})
	if err != nil {
		return nil, fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	c := newCollector()
	r := &redrawer{w: w}
	var capture *image.RGBA
	wantCapture := false

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil, nil
			}
		case size.Event:
			c.size(e)
			r.redraw()
		case mouse.Event:
			c.mouse(e)
			r.redraw()
		case key.Event:
			c.key(e)
			r.redraw()
		case paint.Event:
			r.pending = false
			if c.px.X <= 0 || c.px.Y <= 0 {
				continue
			}
			in := c.take()
			in.Capture, capture = capture, nil

			buf, err := s.NewBuffer(c.px)
			if err != nil {
				return nil, fmt.Errorf("new buffer: %w", err)
			}
			res := ed.Frame(in, painter.NewRaster(buf.RGBA(), in.Scale(), opts.Faces))
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
			if wantCapture {
				capture = cloneRGBA(buf.RGBA())
				wantCapture = false
			}
			buf.Release()

			if res.RequestCapture {
				wantCapture = true
			}
			if res.Close {
				return res.Pinned, nil
			}
			if ed.Capturing() {
				r.redraw()
			}
		}
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// pinnedRect centres an image of size img in a window of size win.
func pinnedRect(win, img image.Point) image.Rectangle {
	at := win.Sub(img).Div(2)
	return image.Rectangle{Min: at, Max: at.Add(img)}
}

func rectOf(r image.Rectangle) geom.Rect {
	return geom.R(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

func runPinned(s screen.Screen, img image.Image, opts Options) error {
	framed := render.ApplyShadow(img, opts.shadow())
	src := framed.Image
	win := src.Bounds().Size()
	title := pinnedTitle(opts.title(), os.Getpid())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: win.X, Height: win.Y, Title: title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	bg := opts.theme().Background
	floatTries := 0
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			switch {
			case e.Code == key.CodeEscape:
				return nil
			case e.Code == key.CodeC && e.Modifiers&(key.ModControl|key.ModMeta) != 0 && opts.OnCopy != nil:
				if err := opts.OnCopy(img); err != nil {
					log.Printf("copy: %v", err)
				}
			}
		case size.Event:
			win = image.Pt(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			if win.X <= 0 || win.Y <= 0 {
				continue
			}
			buf, err := s.NewBuffer(win)
			if err != nil {
				return fmt.Errorf("new buffer: %w", err)
			}
			r := painter.NewRaster(buf.RGBA(), 1, opts.Faces)
			r.Clear(bg)
			dst := pinnedRect(win, src.Bounds().Size())
			r.Image(rectOf(dst), src)
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
			buf.Release()
			if floatTries < maxFloatTries {
				floatTries++
				if err := floatWindow(title); err != nil {
					if floatTries == maxFloatTries {
						log.Printf("pinned window stays decorated: %v", err)
					} else {
						w.Send(paint.Event{})
					}
				} else {
					floatTries = maxFloatTries
				}
			}
		}
	}
}

// maxFloatTries bounds how many frames wait for the window manager to list
// the pinned window.
const maxFloatTries = 5

// pinnedTitle is unique per process so the window manager's client list
// can be searched for it.
func pinnedTitle(title string, pid int) string {
	return fmt.Sprintf("%s (pinned %d)", title, pid)
}
