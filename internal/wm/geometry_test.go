package wm

import "testing"

func TestWorkArea(t *testing.T) {
	tests := []struct {
		name    string
		desktop Size
		taskbar int
		want    Rect
	}{
		{"typical", Size{Width: 1920, Height: 1080}, 48, Rect{Width: 1920, Height: 1032}},
		{"no taskbar", Size{Width: 800, Height: 600}, 0, Rect{Width: 800, Height: 600}},
		{"taskbar taller than desktop", Size{Width: 800, Height: 20}, 48, Rect{Width: 800, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkArea(tt.desktop, tt.taskbar); got != tt.want {
				t.Fatalf("WorkArea() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Fatal("top-left corner should be inside")
	}
	if r.Contains(Point{X: 15, Y: 12}) {
		t.Fatal("right edge is exclusive")
	}
	if r.Contains(Point{X: 12, Y: 15}) {
		t.Fatal("bottom edge is exclusive")
	}
}

func TestTopmost(t *testing.T) {
	windows := []Window{
		{ID: "a", ZIndex: 3},
		{ID: "b", ZIndex: 7, Minimized: true},
		{ID: "c", ZIndex: 5},
	}
	top, ok := Topmost(windows)
	if !ok || top.ID != "c" {
		t.Fatalf("Topmost() = %q, %v; want c", top.ID, ok)
	}
	if _, ok := Topmost(nil); ok {
		t.Fatal("empty set has no focused window")
	}
}

func TestDisplayState(t *testing.T) {
	tests := []struct {
		w    Window
		want string
	}{
		{Window{}, "normal"},
		{Window{Minimized: true}, "minimized"},
		{Window{Maximized: true}, "maximized"},
		{Window{Minimized: true, Maximized: true}, "minimized (maximized)"},
	}
	for _, tt := range tests {
		if got := tt.w.DisplayState(); got != tt.want {
			t.Errorf("DisplayState() = %q, want %q", got, tt.want)
		}
	}
}
