package tui

import (
	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/wm"
)

const (
	minWindowCols = 12
	minWindowRows = 3

	iconCols    = 12
	iconRows    = 2
	iconPitchX  = 14
	iconPitchY  = 3
	iconOriginX = 2
	iconOriginY = 1

	startButtonLabel = "[Start]"
	taskbarAppsX     = 9
	taskbarSlotWidth = 5
	taskbarSlotPitch = 6

	menuWidth = 26
)

// Window title bar buttons, as offsets from the window's right edge.
const (
	minimizeButtonOffset = 6
	maximizeButtonOffset = 4
	closeButtonOffset    = 2
)

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	X, Y, W, H int
}

func (r cellRect) contains(col, row int) bool {
	return col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H
}

type windowButton int

const (
	buttonNone windowButton = iota
	buttonMinimize
	buttonMaximize
	buttonClose
)

type targetKind int

const (
	targetDesktop targetKind = iota
	targetIcon
	targetWindow
	targetStartButton
	targetTaskbar
	targetTaskbarApp
	targetMenu
	targetMenuApp
	targetMenuLogout
)

// target is what lies under a terminal cell.
type target struct {
	kind     targetKind
	appID    apps.ID
	windowID string
	region   wm.Region
	button   windowButton
}

// frame is one consistent view of the desktop used both to paint and to
// resolve pointer events, so both always agree on where things are.
type frame struct {
	cols     int
	rows     int
	cell     wm.Size
	workArea wm.Rect
	// stacking holds visible windows in paint order, lowest first.
	stacking []wm.Window
	icons    []apps.Descriptor
	menuOpen bool
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// desktopRows is the number of rows above the taskbar.
func (f frame) desktopRows() int {
	if f.rows < 1 {
		return 0
	}
	return f.rows - 1
}

func (f frame) taskbarRow() int {
	return f.rows - 1
}

// pointer converts a terminal cell to layout units.
func (f frame) pointer(col, row int) wm.Point {
	return wm.Point{X: col * f.cell.Width, Y: row * f.cell.Height}
}

// layoutSize is the desktop size in layout units.
func (f frame) layoutSize() wm.Size {
	return wm.Size{Width: f.cols * f.cell.Width, Height: f.rows * f.cell.Height}
}

func (f frame) windowRect(w wm.Window) cellRect {
	r := w.Bounds()
	if w.Maximized {
		r = f.workArea
	}
	cols := r.Width / f.cell.Width
	if cols < minWindowCols {
		cols = minWindowCols
	}
	rows := r.Height / f.cell.Height
	if rows < minWindowRows {
		rows = minWindowRows
	}
	return cellRect{
		X: floorDiv(r.X, f.cell.Width),
		Y: floorDiv(r.Y, f.cell.Height),
		W: cols,
		H: rows,
	}
}

func (f frame) iconsPerColumn() int {
	n := (f.desktopRows() - iconOriginY) / iconPitchY
	if n < 1 {
		n = 1
	}
	return n
}

func (f frame) iconRect(i int) cellRect {
	per := f.iconsPerColumn()
	return cellRect{
		X: iconOriginX + (i/per)*iconPitchX,
		Y: iconOriginY + (i%per)*iconPitchY,
		W: iconCols,
		H: iconRows,
	}
}

func (f frame) startButtonRect() cellRect {
	return cellRect{X: 0, Y: f.taskbarRow(), W: len(startButtonLabel), H: 1}
}

func (f frame) taskbarSlot(i int) cellRect {
	return cellRect{X: taskbarAppsX + i*taskbarSlotPitch, Y: f.taskbarRow(), W: taskbarSlotWidth, H: 1}
}

// menuRect is the start menu box: a header row, one row per application,
// a separator and the log out entry.
func (f frame) menuRect() cellRect {
	h := len(f.icons) + 3
	return cellRect{X: 0, Y: f.taskbarRow() - h, W: menuWidth, H: h}
}

func (f frame) menuLogoutRow() int {
	r := f.menuRect()
	return r.Y + r.H - 1
}

// hitTest resolves the cell under the pointer. The taskbar is above
// everything, then the start menu, then windows from the top of the stack
// down, then desktop icons.
func (f frame) hitTest(col, row int) target {
	if row == f.taskbarRow() {
		if f.startButtonRect().contains(col, row) {
			return target{kind: targetStartButton}
		}
		for i, d := range f.icons {
			if f.taskbarSlot(i).contains(col, row) {
				return target{kind: targetTaskbarApp, appID: d.ID}
			}
		}
		return target{kind: targetTaskbar}
	}

	if f.menuOpen {
		menu := f.menuRect()
		if menu.contains(col, row) {
			i := row - menu.Y - 1
			switch {
			case i >= 0 && i < len(f.icons):
				return target{kind: targetMenuApp, appID: f.icons[i].ID}
			case row == f.menuLogoutRow():
				return target{kind: targetMenuLogout}
			default:
				return target{kind: targetMenu}
			}
		}
	}

	for i := len(f.stacking) - 1; i >= 0; i-- {
		w := f.stacking[i]
		r := f.windowRect(w)
		if !r.contains(col, row) {
			continue
		}
		t := target{kind: targetWindow, windowID: w.ID, appID: w.AppID, region: wm.RegionBody}
		if row == r.Y {
			switch col - r.X {
			case r.W - minimizeButtonOffset:
				t.button = buttonMinimize
			case r.W - maximizeButtonOffset:
				t.button = buttonMaximize
			case r.W - closeButtonOffset:
				t.button = buttonClose
			default:
				t.region = wm.RegionTitleBar
			}
		}
		return t
	}

	for i, d := range f.icons {
		if f.iconRect(i).contains(col, row) {
			return target{kind: targetIcon, appID: d.ID}
		}
	}
	return target{kind: targetDesktop}
}
