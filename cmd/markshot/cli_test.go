package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markshot/internal/capture"
	"github.com/example/markshot/internal/config"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/host"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/notify"
	"github.com/example/markshot/internal/theme"
)

func testRoot(t *testing.T, cfg *config.Config) *root {
	t.Helper()
	t.Setenv(config.ThemeEnv, "")
	if cfg == nil {
		cfg = config.New()
	}
	return newRootWith(cfg, notify.New(notify.DefaultPreferences()))
}

func pngFile(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

type editCall struct {
	ed   *editor.Editor
	win  image.Point
	opts host.Options
}

func stubEdit(t *testing.T) *[]editCall {
	t.Helper()
	var calls []editCall
	original := editFn
	editFn = func(ed *editor.Editor, win image.Point, opts host.Options) error {
		calls = append(calls, editCall{ed, win, opts})
		return nil
	}
	t.Cleanup(func() { editFn = original })
	return &calls
}

func TestStringListSplitsAndRepeats(t *testing.T) {
	var s stringList
	for _, v := range []string{"Noto Sans, DejaVu Serif", "Inter", " , "} {
		if err := s.Set(v); err != nil {
			t.Fatalf("Set(%q): %v", v, err)
		}
	}
	want := []string{"Noto Sans", "DejaVu Serif", "Inter"}
	if strings.Join(s, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", s, want)
	}
	if s.String() != "Noto Sans,DejaVu Serif,Inter" {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestParseEditDefaultsFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Output = "out.png"
	cfg.Exit = true
	cfg.Fonts = []string{"Inter"}
	r := testRoot(t, cfg)

	e, err := parseEditCmd([]string{"-fonts", "Noto Sans"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e.input != imageio.Stdin {
		t.Fatalf("input = %q, want stdin", e.input)
	}
	if e.output != "out.png" || !e.exit {
		t.Fatalf("config defaults not applied: output=%q exit=%v", e.output, e.exit)
	}
	if strings.Join(e.fonts, "|") != "Inter|Noto Sans" {
		t.Fatalf("fonts = %q", e.fonts)
	}
}

func TestParseEditRejectsDisplayWithoutCapture(t *testing.T) {
	_, err := parseEditCmd([]string{"-display", "0"}, testRoot(t, nil))
	if err == nil || !strings.Contains(err.Error(), "-display requires -capture") {
		t.Fatalf("expected -display error, got %v", err)
	}
}

func TestParseEditHelp(t *testing.T) {
	_, err := parseEditCmd([]string{"-help"}, testRoot(t, nil).subcommand("edit"))
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"markshot edit", "-input", "-fonts", "Ctrl+S"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}

func TestEditRunCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("portal offline")
	captureScreenshotFn = func(capture.Options) (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })
	calls := stubEdit(t)

	e, err := parseEditCmd([]string{"-capture"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = e.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
	if len(*calls) != 0 {
		t.Fatalf("editor opened after failed capture")
	}
}

func TestEditRunCapturePassesOptions(t *testing.T) {
	original := captureScreenshotFn
	var got capture.Options
	captureScreenshotFn = func(opts capture.Options) (image.Image, error) {
		got = opts
		return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
	}
	t.Cleanup(func() { captureScreenshotFn = original })
	stubEdit(t)

	e, err := parseEditCmd([]string{"-capture", "-cursor", "-display", "primary"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != (capture.Options{Cursor: true, Display: "primary"}) {
		t.Fatalf("capture options = %+v", got)
	}
}

func TestEditRunEmptyStdin(t *testing.T) {
	calls := stubEdit(t)
	e, err := parseEditCmd(nil, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e.stdin = strings.NewReader("")
	if err := e.Run(); !errors.Is(err, imageio.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("editor opened without an image")
	}
}

func TestRootRunsEdit(t *testing.T) {
	calls := stubEdit(t)
	path := pngFile(t, 320, 2000)
	r := testRoot(t, nil)
	if err := r.Run([]string{"-theme", "dark", "edit", "-input", path}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one editor session, got %d", len(*calls))
	}
	c := (*calls)[0]
	if c.win != image.Pt(minWindowW, maxWindowH) {
		t.Fatalf("window = %v", c.win)
	}
	if c.opts.Theme == nil || c.opts.Theme != r.activeTheme {
		t.Fatalf("theme not passed to host")
	}
	if c.opts.Title != "markshot edit" {
		t.Fatalf("title = %q", c.opts.Title)
	}
	if c.ed.Tool() != editor.ToolCrop {
		t.Fatalf("editor should start with crop armed")
	}
}

func TestRootUnknownCommand(t *testing.T) {
	err := testRoot(t, nil).Run([]string{"frobnicate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") {
		t.Fatalf("root help not rendered: %s", uerr.Error())
	}
}

func TestRootBadFlag(t *testing.T) {
	err := testRoot(t, nil).Run([]string{"-nope"})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected flag error, got %v", err)
	}
}

func TestRootEnablesNotifications(t *testing.T) {
	cfg := config.New()
	cfg.Notify.Copy = true
	r := testRoot(t, cfg)
	if err := r.Run([]string{"-notify-save", "version"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !r.notifier.Enabled(notify.EventSave) || !r.notifier.Enabled(notify.EventCopy) {
		t.Fatalf("save and copy notifications should be enabled")
	}
	if r.notifier.Enabled(notify.EventPin) {
		t.Fatalf("pin notification should stay disabled")
	}
}

func TestPinRun(t *testing.T) {
	original := pinFn
	var got image.Image
	pinFn = func(img image.Image, opts host.Options) error {
		got = img
		if opts.Shadow == nil || opts.OnCopy == nil {
			t.Errorf("pinned window options incomplete: %+v", opts)
		}
		return nil
	}
	t.Cleanup(func() { pinFn = original })

	path := pngFile(t, 40, 30)
	p, err := parsePinCmd([]string{path}, testRoot(t, nil).subcommand("pin"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got == nil || got.Bounds().Size() != image.Pt(40, 30) {
		t.Fatalf("pinned image = %v", got)
	}
}

func TestPinMissingFile(t *testing.T) {
	p, err := parsePinCmd([]string{"-input", "missing.png"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Run(); err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestWindowSize(t *testing.T) {
	cases := []struct{ in, want image.Point }{
		{image.Pt(100, 100), image.Pt(minWindowW, minWindowH)},
		{image.Pt(1000, 700), image.Pt(1000, 700)},
		{image.Pt(4000, 3000), image.Pt(maxWindowW, maxWindowH)},
	}
	for _, c := range cases {
		if got := windowSize(c.in); got != c.want {
			t.Errorf("windowSize(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConfigPrintFoldsFlags(t *testing.T) {
	r := testRoot(t, nil)
	if err := r.fs.Parse([]string{"-notify-pin", "-theme", "dark"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := parseConfigCmd([]string{"print"}, r.subcommand("config"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"theme = dark", "pin = true", "save = false"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigSaveWritesOverride(t *testing.T) {
	r := testRoot(t, nil)
	r.saveAlerts = true
	c, err := parseConfigCmd([]string{"save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	c.loader = &config.Loader{Version: "test", OverridePath: path, Home: t.TempDir()}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "save = true") {
		t.Fatalf("saved config = %s", data)
	}
}

func TestConfigNeedsSubcommand(t *testing.T) {
	c, err := parseConfigCmd(nil, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var uerr *UsageError
	if err := c.Run(); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRootUnknownThemeFallsBack(t *testing.T) {
	r := testRoot(t, nil)
	if err := r.Run([]string{"-theme", "no-such-theme", "version"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.activeTheme == nil || r.activeTheme.Background != theme.Default().Background {
		t.Fatalf("expected the default theme, got %+v", r.activeTheme)
	}
}

func TestEditRunUnreadableFontIsFatal(t *testing.T) {
	original := loadFontsFn
	sentinel := errors.New("parse font /fonts/broken.ttf: bad table")
	var asked []string
	loadFontsFn = func(_ *fonts.Registry, names []string) ([]string, error) {
		asked = names
		return nil, sentinel
	}
	t.Cleanup(func() { loadFontsFn = original })
	calls := stubEdit(t)

	e, err := parseEditCmd([]string{"-input", pngFile(t, 10, 10), "-fonts", "Broken"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := e.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected font error, got %v", err)
	}
	if strings.Join(asked, "|") != "Broken" {
		t.Fatalf("fonts asked = %q", asked)
	}
	if len(*calls) != 0 {
		t.Fatalf("editor opened after a font failed to load")
	}
}

func TestEditRunUsesFirstLoadedFont(t *testing.T) {
	original := loadFontsFn
	loadFontsFn = func(*fonts.Registry, []string) ([]string, error) { return nil, nil }
	t.Cleanup(func() { loadFontsFn = original })
	calls := stubEdit(t)

	e, err := parseEditCmd([]string{"-input", pngFile(t, 10, 10), "-fonts", "Missing"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("a family that is not installed only warns: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected the editor to open")
	}
}

func TestPinFromClipboard(t *testing.T) {
	originalPin, originalRead := pinFn, readClipboardFn
	t.Cleanup(func() { pinFn, readClipboardFn = originalPin, originalRead })
	readClipboardFn = func() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 7, 5)), nil }
	var got image.Image
	pinFn = func(img image.Image, _ host.Options) error {
		got = img
		return nil
	}

	p, err := parsePinCmd([]string{"-clipboard"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got == nil || got.Bounds().Size() != image.Pt(7, 5) {
		t.Fatalf("pinned image = %v", got)
	}
}

func TestPinClipboardError(t *testing.T) {
	originalPin, originalRead := pinFn, readClipboardFn
	t.Cleanup(func() { pinFn, readClipboardFn = originalPin, originalRead })
	sentinel := errors.New("clipboard does not contain image data")
	readClipboardFn = func() (image.Image, error) { return nil, sentinel }
	pinFn = func(image.Image, host.Options) error {
		t.Fatalf("pinned window opened without an image")
		return nil
	}

	p, err := parsePinCmd([]string{"-clipboard"}, testRoot(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Run(); !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "read clipboard") {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestPinClipboardRejectsInput(t *testing.T) {
	_, err := parsePinCmd([]string{"-clipboard", "-input", "x.png"}, testRoot(t, nil))
	if err == nil || !strings.Contains(err.Error(), "-clipboard cannot be used") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestHelpPages(t *testing.T) {
	r := testRoot(t, nil)
	pages := map[string]HelpData{
		"Commands:":      r,
		"Ctrl+P pin":     &editCmd{root: r.subcommand("edit")},
		"-clipboard":     mustPin(t, r),
		"print   write":  &configCmd{root: r.subcommand("config")},
		"MARKSHOT_THEME": r,
		"-notify-pin":    r,
	}
	for want, page := range pages {
		help := (&UsageError{of: page}).Error()
		if !strings.Contains(help, want) {
			t.Errorf("%s help missing %q:\n%s", page.Program(), want, help)
		}
	}
}

func mustPin(t *testing.T, r *root) *pinCmd {
	t.Helper()
	p, err := parsePinCmd(nil, r.subcommand("pin"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return p
}
