// Package imageio reads the image a session starts from.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Stdin is the path that reads from standard input.
const Stdin = "-"

// ErrEmptyInput is returned when the input holds no bytes.
var ErrEmptyInput = errors.New("input image is empty")

// Load decodes the image at path, or from stdin when path is "-".
func Load(path string, stdin io.Reader) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin || path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", describe(path), err)
	}
	return Decode(data)
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP data, honouring EXIF
// orientation.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// RGBA returns img as an *image.RGBA anchored at the origin.
func RGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	n := imaging.Clone(img)
	return &image.RGBA{Pix: premultiply(n.Pix), Stride: n.Stride, Rect: n.Rect}
}

func premultiply(pix []uint8) []uint8 {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 0xff {
			continue
		}
		pix[i] = uint8(uint32(pix[i]) * a / 0xff)
		pix[i+1] = uint8(uint32(pix[i+1]) * a / 0xff)
		pix[i+2] = uint8(uint32(pix[i+2]) * a / 0xff)
	}
	return pix
}

func describe(path string) string {
	if path == Stdin || path == "" {
		return "standard input"
	}
	return path
}
