// Package render composes the pinned window's content: the exported image
// floating over a soft drop shadow.
package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by pinned windows.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(6, 6),
		Opacity: 0.5,
	}
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.NRGBA
	// Offset is where the original image's top-left corner ended up inside
	// the expanded canvas.
	Offset image.Point
}

// ApplyShadow composites img with a blurred drop shadow using opts. The result
// has a zero origin and is large enough to hold the blurred shadow.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: imaging.Clone(img)}
	}
	opacity := min(opts.Opacity, 1)
	r := max(opts.Radius, 0)

	left := max(0, r-opts.Offset.X)
	top := max(0, r-opts.Offset.Y)
	right := max(0, r+opts.Offset.X)
	bottom := max(0, r+opts.Offset.Y)
	b := img.Bounds()
	at := image.Pt(left, top)

	silhouette := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{A: uint8(float64(c.A)*opacity + 0.5)}
	})
	canvas := imaging.New(b.Dx()+left+right, b.Dy()+top+bottom, color.NRGBA{})
	canvas = imaging.Paste(canvas, silhouette, at.Add(opts.Offset))
	if r > 0 {
		canvas = imaging.Blur(canvas, float64(r)/2)
	}
	canvas = imaging.Overlay(canvas, img, at, 1)

	return ShadowResult{Image: canvas, Offset: at}
}
