//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package host

import "errors"

func floatWindow(string) error {
	return errors.New("floating windows are not supported on this platform")
}
