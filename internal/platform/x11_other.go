//go:build !linux

package platform

import "fmt"

// X11 is unavailable on this platform.
type X11 struct{}

func NewX11(display string) (*X11, error) {
	return nil, fmt.Errorf("%w: x11", ErrUnsupported)
}

func (*X11) Name() string { return "x11" }

func (*X11) Desktop() (Rect, error) {
	return Rect{}, fmt.Errorf("%w: x11", ErrUnsupported)
}

func (*X11) Close() {}
