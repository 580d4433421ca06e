package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/anshos/internal/shell"
	"github.com/1broseidon/anshos/internal/wm"
)

func newPalette(theme shell.Theme) []lipgloss.Style {
	wall := lipgloss.Color(theme.Wallpaper.Color)
	bar := lipgloss.Color(theme.TaskbarColor.Color)

	p := make([]lipgloss.Style, styleCount)
	p[styleWallpaper] = lipgloss.NewStyle().Background(wall).Foreground(lipgloss.Color("250"))
	p[styleIcon] = lipgloss.NewStyle().Background(wall).Foreground(lipgloss.Color("15"))
	p[styleIconSelected] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15"))
	p[styleFrame] = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("245"))
	p[styleBody] = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	p[styleTitle] = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250"))
	p[styleTitleFocused] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15")).Bold(true)
	p[styleMenu] = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252"))
	p[styleMenuSelected] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15"))
	p[styleTaskbar] = lipgloss.NewStyle().Background(bar).Foreground(lipgloss.Color("250"))
	p[styleTaskbarOpen] = lipgloss.NewStyle().Background(bar).Foreground(lipgloss.Color("15")).Underline(true)
	p[styleTaskbarFocused] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15")).Bold(true)
	p[styleStart] = lipgloss.NewStyle().Background(bar).Foreground(lipgloss.Color("15")).Bold(true)
	p[styleNotice] = lipgloss.NewStyle().Background(wall).Foreground(lipgloss.Color("241"))
	return p
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	theme := m.chrome.Theme()

	if m.rotated() {
		return m.viewRotate(theme)
	}
	if m.chrome.Locked() {
		return m.viewLogin(theme)
	}
	return m.paint(m.frame()).render(newPalette(theme))
}

func (m model) viewRotate(theme shell.Theme) string {
	notice := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Render("Please rotate your device") + "\n" +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Render("AnshOS works best in landscape mode.")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, notice,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Wallpaper.Color)))
}

func (m model) viewLogin(theme shell.Theme) string {
	clock, date := shell.Clock(m.clock)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Render(clock)
	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Render(date)

	parts := []string{header, sub, ""}
	if m.login != nil {
		parts = append(parts, m.login.form.View())
	}
	if m.loginErr != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.loginErr))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Wallpaper.Color)))
}

// paint draws the unlocked desktop back to front.
func (m model) paint(f frame) *canvas {
	c := newCanvas(f.cols, f.rows, styleWallpaper)

	m.paintIcons(c, f)

	for i, w := range f.stacking {
		m.paintWindow(c, f.windowRect(w), w, i == len(f.stacking)-1)
	}

	if f.menuOpen {
		m.paintMenu(c, f)
	}
	if m.showHelp {
		c.text(1, 0, helpLine(m.keys), styleNotice, f.cols-2)
	}
	m.paintTaskbar(c, f)
	return c
}

func centered(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	pad := (width - n) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-n-pad)
}

func (m model) paintIcons(c *canvas, f frame) {
	for i, d := range f.icons {
		r := f.iconRect(i)
		st := styleIcon
		if d.ID == m.selectedIcon {
			st = styleIconSelected
		}
		c.text(r.X, r.Y, centered(d.Icon, r.W), st, r.W)
		c.text(r.X, r.Y+1, centered(d.Name, r.W), st, r.W)
	}
}

func (m model) paintWindow(c *canvas, r cellRect, w wm.Window, focused bool) {
	c.fill(r.X, r.Y, r.W, r.H, ' ', styleBody)

	title := styleTitle
	if focused {
		title = styleTitleFocused
	}
	c.fill(r.X, r.Y, r.W, 1, ' ', title)
	label := w.Title
	if d, err := m.registry.Resolve(w.AppID); err == nil {
		label = d.Icon + " " + w.Title
	}
	c.text(r.X+1, r.Y, label, title, r.W-minimizeButtonOffset-2)
	c.set(r.X+r.W-minimizeButtonOffset, r.Y, '_', title)
	c.set(r.X+r.W-maximizeButtonOffset, r.Y, '□', title)
	c.set(r.X+r.W-closeButtonOffset, r.Y, 'x', title)

	bottom := r.Y + r.H - 1
	for row := r.Y + 1; row < bottom; row++ {
		c.set(r.X, row, '│', styleFrame)
		c.set(r.X+r.W-1, row, '│', styleFrame)
	}
	c.fill(r.X+1, bottom, r.W-2, 1, '─', styleFrame)
	c.set(r.X, bottom, '└', styleFrame)
	c.set(r.X+r.W-1, bottom, '┘', styleFrame)

	for i, line := range m.chrome.WindowContent(w.AppID) {
		row := r.Y + 1 + i
		if row >= bottom {
			break
		}
		c.text(r.X+2, row, line, styleBody, r.W-4)
	}
}

func (m model) paintMenu(c *canvas, f frame) {
	r := f.menuRect()
	c.fill(r.X, r.Y, r.W, r.H, ' ', styleMenu)

	header := " AnshOS"
	if user := m.chrome.User(); user != "" {
		header += "  " + user
	}
	c.text(r.X, r.Y, header, styleMenu, r.W)

	for i, d := range f.icons {
		st := styleMenu
		if i == m.menuIndex {
			st = styleMenuSelected
			c.fill(r.X, r.Y+1+i, r.W, 1, ' ', st)
		}
		c.text(r.X+1, r.Y+1+i, d.Icon+" "+d.Name, st, r.W-2)
	}

	sep := f.menuLogoutRow() - 1
	c.fill(r.X, sep, r.W, 1, '─', styleMenu)

	st := styleMenu
	if m.menuIndex == len(f.icons) {
		st = styleMenuSelected
		c.fill(r.X, f.menuLogoutRow(), r.W, 1, ' ', st)
	}
	c.text(r.X+1, f.menuLogoutRow(), "Log out", st, r.W-2)
}

func (m model) paintTaskbar(c *canvas, f frame) {
	row := f.taskbarRow()
	c.fill(0, row, f.cols, 1, ' ', styleTaskbar)
	c.text(0, row, startButtonLabel, styleStart, -1)

	entries := m.chrome.Taskbar()
	for i, e := range entries {
		slot := f.taskbarSlot(i)
		st := styleTaskbar
		switch {
		case e.Focused:
			st = styleTaskbarFocused
		case e.Open:
			st = styleTaskbarOpen
		}
		c.text(slot.X, row, centered(e.Icon, slot.W), st, slot.W)
	}

	clock, date := shell.Clock(m.clock)
	stamp := clock + "  " + date
	clockX := f.cols - len([]rune(stamp)) - 1
	c.text(clockX, row, stamp, styleTaskbar, -1)

	if m.status != "" {
		x := f.taskbarSlot(len(entries)).X + 1
		c.text(x, row, m.status, styleTaskbar, clockX-x-1)
	}
}

func helpLine(k KeyMap) string {
	var parts []string
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return strings.Join(parts, " • ")
}

