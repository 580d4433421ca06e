//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// X11 reads the desktop work area of an X server. Panels and docks are
// already excluded by the window manager's _NET_WORKAREA.
type X11 struct {
	xu *xgbutil.XUtil
}

var _ Viewport = (*X11)(nil)

// NewX11 connects to display, or $DISPLAY when empty.
func NewX11(display string) (*X11, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11{xu: xu}, nil
}

func (*X11) Name() string { return "x11" }

func (x *X11) Desktop() (Rect, error) {
	if x == nil || x.xu == nil {
		return Rect{}, fmt.Errorf("x11 connection not available")
	}

	workArea, err := ewmh.WorkareaGet(x.xu)
	if err == nil && len(workArea) > 0 {
		desktopIndex := 0
		if current, err := ewmh.CurrentDesktopGet(x.xu); err == nil {
			if int(current) >= 0 && int(current) < len(workArea) {
				desktopIndex = int(current)
			}
		}
		wa := workArea[desktopIndex]
		return Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, nil
	}

	// No EWMH window manager: fall back to the root window geometry.
	geom, err := xproto.GetGeometry(x.xu.Conn(), xproto.Drawable(x.xu.RootWin())).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return Rect{Width: int(geom.Width), Height: int(geom.Height)}, nil
}

// Close disconnects from the X server.
func (x *X11) Close() {
	if x != nil && x.xu != nil {
		x.xu.Conn().Close()
	}
}

// XUtil exposes the connection for key grabs.
func (x *X11) XUtil() *xgbutil.XUtil { return x.xu }

// RootWindow returns the root window of the default screen.
func (x *X11) RootWindow() xproto.Window { return x.xu.RootWin() }
