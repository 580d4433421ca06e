package platform

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrUnsupported is returned when a viewport source is unavailable on this
// system.
var ErrUnsupported = errors.New("viewport source not supported")

// Rect describes a rectangular region in layout units.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Viewport reports the desktop area of the hosting environment.
type Viewport interface {
	Name() string
	Desktop() (Rect, error)
}

// Closer is implemented by viewports holding a connection.
type Closer interface {
	Close()
}

// Static is a viewport of fixed size.
type Static struct {
	Width  int
	Height int
}

var _ Viewport = Static{}

func (Static) Name() string { return "static" }

func (s Static) Desktop() (Rect, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return Rect{}, fmt.Errorf("invalid static viewport %dx%d", s.Width, s.Height)
	}
	return Rect{Width: s.Width, Height: s.Height}, nil
}

// Terminal sizes the desktop from a terminal's character grid. Each cell is
// CellWidth × CellHeight layout units.
type Terminal struct {
	Fd         int
	CellWidth  int
	CellHeight int
}

var _ Viewport = Terminal{}

// NewTerminal returns a viewport for the process's standard output.
func NewTerminal(cellWidth, cellHeight int) Terminal {
	return Terminal{Fd: int(os.Stdout.Fd()), CellWidth: cellWidth, CellHeight: cellHeight}
}

func (Terminal) Name() string { return "terminal" }

func (t Terminal) Desktop() (Rect, error) {
	if !term.IsTerminal(t.Fd) {
		return Rect{}, fmt.Errorf("%w: fd %d is not a terminal", ErrUnsupported, t.Fd)
	}
	cols, rows, err := term.GetSize(t.Fd)
	if err != nil {
		return Rect{}, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return CellsToRect(cols, rows, t.CellWidth, t.CellHeight), nil
}

// CellsToRect converts a character grid to layout units.
func CellsToRect(cols, rows, cellWidth, cellHeight int) Rect {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return Rect{Width: cols * cellWidth, Height: rows * cellHeight}
}

// Options configures New.
type Options struct {
	Width      int
	Height     int
	CellWidth  int
	CellHeight int
	Display    string
}

// New returns the viewport for source: "static", "terminal" or "x11".
func New(source string, opts Options) (Viewport, error) {
	switch source {
	case "static":
		return Static{Width: opts.Width, Height: opts.Height}, nil
	case "terminal":
		return NewTerminal(opts.CellWidth, opts.CellHeight), nil
	case "x11":
		x, err := NewX11(opts.Display)
		if err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, fmt.Errorf("unknown viewport source %q", source)
	}
}
