package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/markshot/internal/capture"
	"github.com/example/markshot/internal/clipboard"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/export"
	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/host"
	"github.com/example/markshot/internal/imageio"
)

var (
	captureScreenshotFn = capture.Screenshot
	editFn              = host.Edit
	writeClipboardFn    = clipboard.WriteImage
	loadFontsFn         = func(reg *fonts.Registry, names []string) ([]string, error) {
		return reg.LoadSystem(names, "")
	}
)

const (
	minWindowW = 640
	minWindowH = 480
	maxWindowW = 1920
	maxWindowH = 1200
)

// stringList is a repeatable flag whose values may also be comma separated.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// editCmd opens an annotation session.
type editCmd struct {
	*root
	fs      *flag.FlagSet
	input   string
	output  string
	exit    bool
	fit     bool
	capture bool
	cursor  bool
	dialog  bool
	display string
	fonts   stringList
	stdin   io.Reader
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.SetOutput(io.Discard)
	fs.StringVar(&e.input, "input", imageio.Stdin, "image to annotate, - for standard input")
	fs.StringVar(&e.output, "output", r.config.Output, "PNG written on save, - for standard output; empty picks a timestamped name")
	fs.BoolVar(&e.exit, "exit", r.config.Exit, "close after a successful save or copy")
	fs.BoolVar(&e.fit, "fit", false, "shrink the image to the window")
	fs.BoolVar(&e.capture, "capture", false, "capture the desktop instead of reading -input")
	fs.BoolVar(&e.cursor, "cursor", false, "include the pointer in -capture")
	fs.BoolVar(&e.dialog, "interactive", false, "let the screenshot portal show its own dialog for -capture")
	fs.StringVar(&e.display, "display", "", "monitor to keep from -capture: index, name or primary")
	e.fonts = append(e.fonts, r.config.Fonts...)
	fs.Var(&e.fonts, "fonts", "system font families offered to text labels; repeat or comma separate")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: e}
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("edit: unexpected argument %q", fs.Arg(0))
	}
	if e.display != "" && !e.capture {
		return nil, errors.New("edit: -display requires -capture")
	}
	return e, nil
}

func (e *editCmd) Run() error {
	img, err := e.source()
	if err != nil {
		return err
	}

	reg := fonts.NewRegistry()
	loaded, err := loadFontsFn(reg, e.fonts)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	family := fonts.Proportional
	if len(loaded) > 0 {
		family = loaded[0]
	}

	emitter := &export.Emitter{
		Output:    e.output,
		Clipboard: writeClipboardFn,
		Notifier:  e.notifier,
	}
	ed := editor.New(img,
		editor.WithExporter(emitter),
		editor.WithExit(e.exit),
		editor.WithFit(e.fit),
		editor.WithFont(family, reg.Families()),
		editor.WithTheme(e.activeTheme),
	)
	opts := host.Options{
		Title:  e.program,
		Faces:  reg,
		Theme:  e.activeTheme,
		OnCopy: emitter.Copy,
	}
	if err := editFn(ed, windowSize(img.Bounds().Size()), opts); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}

func (e *editCmd) source() (image.Image, error) {
	if e.capture {
		img, err := captureScreenshotFn(capture.Options{Interactive: e.dialog, Cursor: e.cursor, Display: e.display})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, nil
	}
	img, err := imageio.Load(e.input, e.stdin)
	if err != nil {
		return nil, fmt.Errorf("edit: %w", err)
	}
	return img, nil
}

// windowSize fits the first window around the image, clamped to a usable
// range.
func windowSize(img image.Point) image.Point {
	return image.Pt(
		min(max(img.X, minWindowW), maxWindowW),
		min(max(img.Y, minWindowH), maxWindowH),
	)
}
