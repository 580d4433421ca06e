package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleID indexes the palette a canvas is rendered with.
type styleID uint8

const (
	styleWallpaper styleID = iota
	styleIcon
	styleIconSelected
	styleFrame
	styleBody
	styleTitle
	styleTitleFocused
	styleMenu
	styleMenuSelected
	styleTaskbar
	styleTaskbarOpen
	styleTaskbarFocused
	styleStart
	styleNotice
	styleCount
)

// canvas is a grid of terminal cells. Everything on the desktop is painted
// into it back to front and then rendered row by row.
type canvas struct {
	width  int
	height int
	runes  []rune
	styles []styleID
}

func newCanvas(width, height int, fill styleID) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		styles: make([]styleID, width*height),
	}
	c.fill(0, 0, width, height, ' ', fill)
	return c
}

func (c *canvas) set(x, y int, r rune, s styleID) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := y*c.width + x
	c.runes[i] = r
	c.styles[i] = s
}

func (c *canvas) fill(x, y, w, h int, r rune, s styleID) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, r, s)
		}
	}
}

// text writes s starting at x, clipped to maxWidth cells. A negative
// maxWidth means no limit other than the canvas edge.
func (c *canvas) text(x, y int, s string, st styleID, maxWidth int) {
	n := 0
	for _, r := range s {
		if maxWidth >= 0 && n >= maxWidth {
			return
		}
		c.set(x+n, y, r, st)
		n++
	}
}

// row returns the unstyled content of row y.
func (c *canvas) row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	return string(c.runes[y*c.width : (y+1)*c.width])
}

func (c *canvas) styleAt(x, y int) styleID {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return styleWallpaper
	}
	return c.styles[y*c.width+x]
}

// render draws the canvas with palette, grouping runs of equal style.
func (c *canvas) render(palette []lipgloss.Style) string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := y * c.width
		end := start + c.width
		for i := start; i < end; {
			j := i
			for j < end && c.styles[j] == c.styles[i] {
				j++
			}
			b.WriteString(palette[c.styles[i]].Render(string(c.runes[i:j])))
			i = j
		}
	}
	return b.String()
}
