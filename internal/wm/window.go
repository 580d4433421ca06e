package wm

import "github.com/1broseidon/anshos/internal/apps"

// Window is the state of one open application window.
type Window struct {
	ID        string  `json:"id"`
	AppID     apps.ID `json:"app_id"`
	Title     string  `json:"title"`
	Minimized bool    `json:"minimized"`
	Maximized bool    `json:"maximized"`
	ZIndex    int     `json:"z_index"`
	Position  Point   `json:"position"`
	Size      Size    `json:"size"`
}

// Bounds returns the stored geometry, ignoring the maximized flag.
func (w Window) Bounds() Rect {
	return Rect{X: w.Position.X, Y: w.Position.Y, Width: w.Size.Width, Height: w.Size.Height}
}

// DisplayState describes how a window is currently shown. Both flags are
// tracked independently, so a maximized window that is minimized still
// reports Maximized once restored.
func (w Window) DisplayState() string {
	switch {
	case w.Minimized && w.Maximized:
		return "minimized (maximized)"
	case w.Minimized:
		return "minimized"
	case w.Maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// Topmost returns the focused window of a record set: the non-minimized
// window with the highest z-order value.
func Topmost(windows []Window) (Window, bool) {
	var top Window
	found := false
	for _, w := range windows {
		if w.Minimized {
			continue
		}
		if !found || w.ZIndex > top.ZIndex {
			top = w
			found = true
		}
	}
	return top, found
}
