package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/config"
	"github.com/1broseidon/anshos/internal/wm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "anshos",
		Short:         "AnshOS - a terminal desktop and window manager",
		Long:          "AnshOS runs a desktop in the terminal, or hosts its window manager in a daemon\ndriven over a local socket and MCP.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (default: ~/.config/anshos/config.yaml)")

	root.AddCommand(
		newDesktopCmd(opts),
		newDaemonCmd(opts),
		newStatusCmd(),
		newReloadCmd(),
		newLaunchCmd(),
		newWindowCmd("close", "Close a window", closeWindow),
		newWindowCmd("focus", "Bring a window to the front", focusWindow),
		newWindowCmd("minimize", "Minimize or restore a window", minimizeWindow),
		newWindowCmd("maximize", "Maximize or restore a window", maximizeWindow),
		newMoveCmd(),
		newListCmd(),
		newAppsCmd(),
		newLogoutCmd(),
		newConfigCmd(opts),
		newMCPCmd(opts),
		newPaletteCmd(opts),
		newPrefsCmd(),
	)
	return root
}

// load reads the config selected by --config.
func (o *rootOptions) load() (*config.LoadResult, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.LoadFromPath(path)
}

func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// managerOptions maps the config onto window manager options.
func managerOptions(cfg *config.Config, logger *slog.Logger) wm.Options {
	opts := wm.DefaultOptions()
	opts.InitialZ = cfg.InitialZIndex
	opts.CascadeOrigin = wm.Point{X: cfg.Cascade.OriginX, Y: cfg.Cascade.OriginY}
	opts.CascadeStep = cfg.Cascade.Step
	opts.FallbackSize = wm.Size{Width: cfg.FallbackSize.Width, Height: cfg.FallbackSize.Height}
	opts.WorkArea = wm.WorkArea(wm.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}, cfg.TaskbarHeight)
	opts.Logger = logger
	return opts
}

func newManager(cfg *config.Config, logger *slog.Logger) (*wm.Manager, *apps.Registry) {
	registry := apps.Default()
	return wm.NewManager(registry, managerOptions(cfg, logger)), registry
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
