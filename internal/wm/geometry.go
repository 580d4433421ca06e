package wm

import "github.com/1broseidon/anshos/internal/apps"

// Point is a position in layout units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in layout units.
type Size = apps.Size

// Rect is a positioned rectangle in layout units.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// WorkArea returns the area available to windows on a desktop of the given
// size once the taskbar strip at the bottom is removed.
func WorkArea(desktop Size, taskbarHeight int) Rect {
	h := desktop.Height - taskbarHeight
	if h < 0 {
		h = 0
	}
	w := desktop.Width
	if w < 0 {
		w = 0
	}
	return Rect{X: 0, Y: 0, Width: w, Height: h}
}
