//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func portalScreenshot(Options) (image.Image, error) {
	return nil, fmt.Errorf("portal screenshot is not supported on this platform")
}
