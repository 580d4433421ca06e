// Package tui is the terminal desktop: a lock screen, desktop icons, the
// window layer, the start menu and the taskbar, all driven by mouse and
// keyboard through a bubbletea program.
package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/shell"
	"github.com/1broseidon/anshos/internal/wm"
)

// Options configures the desktop program.
type Options struct {
	Manager  *wm.Manager
	Registry *apps.Registry
	Chrome   *shell.Chrome
	// CellWidth and CellHeight are the layout units covered by one
	// terminal cell.
	CellWidth  int
	CellHeight int
	// DefaultUser prefills the login form.
	DefaultUser string
	Now         func() time.Time
}

// Run starts the desktop and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("desktop requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if opts.Manager == nil || opts.Registry == nil || opts.Chrome == nil {
		return fmt.Errorf("desktop requires a window manager, registry and shell")
	}

	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
