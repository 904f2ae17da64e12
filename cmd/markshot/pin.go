package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/example/markshot/internal/clipboard"
	"github.com/example/markshot/internal/fonts"
	"github.com/example/markshot/internal/host"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/render"
)

var (
	pinFn           = host.Pin
	readClipboardFn = clipboard.ReadImage
)

// pinCmd shows an image in a pinned window.
type pinCmd struct {
	*root
	fs        *flag.FlagSet
	input     string
	clipboard bool
	stdin     io.Reader
}

func (p *pinCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePinCmd(args []string, r *root) (*pinCmd, error) {
	fs := flag.NewFlagSet("pin", flag.ContinueOnError)
	p := &pinCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.SetOutput(io.Discard)
	fs.StringVar(&p.input, "input", imageio.Stdin, "image to pin, - for standard input")
	fs.BoolVar(&p.clipboard, "clipboard", false, "pin the image on the clipboard instead of -input")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: p}
		}
		return nil, err
	}
	if fs.NArg() == 1 && p.input == imageio.Stdin {
		p.input = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, fmt.Errorf("pin: unexpected argument %q", fs.Arg(fs.NArg()-1))
	}
	if p.clipboard && p.input != imageio.Stdin {
		return nil, errors.New("pin: -clipboard cannot be used with an input file")
	}
	return p, nil
}

func (p *pinCmd) Run() error {
	img, err := p.source()
	if err != nil {
		return fmt.Errorf("pin: %w", err)
	}
	p.notifier.Pin(img)
	if err := pinFn(img, p.pinOptions()); err != nil {
		return fmt.Errorf("pin: %w", err)
	}
	return nil
}

func (p *pinCmd) source() (image.Image, error) {
	if p.clipboard {
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return img, nil
	}
	return imageio.Load(p.input, p.stdin)
}

// pinOptions are the window options of a standalone pinned image.
func (r *root) pinOptions() host.Options {
	shadow := render.DefaultShadowOptions()
	return host.Options{
		Title:  r.program,
		Faces:  fonts.Default(),
		Theme:  r.activeTheme,
		Shadow: &shadow,
		OnCopy: func(img image.Image) error {
			if err := writeClipboardFn(img); err != nil {
				return err
			}
			r.notifier.Copy()
			return nil
		},
	}
}
