package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/prefs"
	"github.com/1broseidon/anshos/internal/runtimepath"
	"github.com/1broseidon/anshos/internal/shell"
	"github.com/1broseidon/anshos/internal/tui"
)

func newDesktopCmd(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "desktop",
		Short: "Open the desktop in this terminal",
		Long: `Open the desktop in this terminal.

Log in, then double-click desktop icons or use the start menu to open
applications. Drag windows by their title bar.

Keybindings:
  s         Start menu (↑/↓, enter, esc)
  tab       Focus next window
  m / f / x Minimize, maximize, close the focused window
  w / c     Next wallpaper, next taskbar colour
  ctrl+l    Lock
  ?         Help
  ctrl+c    Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.load()
			if err != nil {
				return err
			}
			cfg := res.Config

			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			logger := newLogger(out, cfg.SlogLevel())

			mgr, registry := newManager(cfg, logger)
			chrome := shell.NewChrome(mgr, registry, openPrefs(logger),
				shell.Credentials{User: cfg.Login.User, PIN: cfg.Login.PIN}, logger)

			return tui.Run(tui.Options{
				Manager:     mgr,
				Registry:    registry,
				Chrome:      chrome,
				CellWidth:   cfg.Cell.Width,
				CellHeight:  cfg.Cell.Height,
				DefaultUser: cfg.Login.User,
			})
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (the terminal is owned by the desktop)")
	return cmd
}

// openPrefs opens the preferences file, falling back to an in-memory store
// so the desktop still starts when the data directory is unusable.
func openPrefs(logger *slog.Logger) prefs.Store {
	path, err := runtimepath.PrefsPath()
	if err == nil {
		var f *prefs.File
		if f, err = prefs.Open(path); err == nil {
			return f
		}
	}
	logger.Warn("preferences unavailable, changes will not be saved", "error", err)
	return prefs.NewMemory()
}
