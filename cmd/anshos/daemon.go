package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/anshos/internal/daemon"
	"github.com/1broseidon/anshos/internal/hotkeys"
	"github.com/1broseidon/anshos/internal/ipc"
	"github.com/1broseidon/anshos/internal/platform"
	"github.com/1broseidon/anshos/internal/runtimepath"
)

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the window manager daemon (foreground)",
		Long: `Run the window manager in the foreground and serve it on the IPC socket.

The work area follows the configured viewport source. SIGHUP or
'anshos reload' reloads the log level and taskbar height.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
}

func runDaemon(ctx context.Context, opts *rootOptions) error {
	res, err := opts.load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "file", res.File, "viewport_source", cfg.ViewportSource)

	viewport, err := platform.New(string(cfg.ViewportSource), platform.Options{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		CellWidth:  cfg.Cell.Width,
		CellHeight: cfg.Cell.Height,
		Display:    cfg.Display,
	})
	if err != nil {
		return fmt.Errorf("failed to open viewport: %w", err)
	}
	if c, ok := viewport.(platform.Closer); ok {
		defer c.Close()
	}

	mgr, registry := newManager(cfg, logger)

	watcher := daemon.NewWatcher(daemon.WatcherConfig{
		Interval:      time.Duration(cfg.ViewportPollSeconds) * time.Second,
		TaskbarHeight: cfg.TaskbarHeight,
		Logger:        logger,
	}, viewport, mgr)
	watcher.SyncNow()

	reload := func() error {
		next, err := opts.load()
		if err != nil {
			return err
		}
		level.Set(next.Config.SlogLevel())
		watcher.SetTaskbarHeight(next.Config.TaskbarHeight)
		watcher.SyncNow()
		logger.Info("config reloaded", "log_level", next.Config.LogLevel, "taskbar_height", next.Config.TaskbarHeight)
		return nil
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return err
	}
	server, err := ipc.NewServer(ipc.ServerConfig{
		SocketPath:     socketPath,
		ViewportSource: viewport.Name(),
		Reload:         reload,
		Logger:         logger,
	}, mgr, registry)
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer server.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watcher.Run(ctx)
	startPaletteHotkey(ctx, opts, cfg.Palette.Hotkey, viewport, logger)

	logger.Info("anshos daemon started", "socket", socketPath, "work_area", mgr.WorkArea())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading config")
				if err := reload(); err != nil {
					logger.Error("config reload failed", "error", err)
				}
				continue
			}
			logger.Info("shutting down anshos daemon", "signal", sig.String())
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// startPaletteHotkey opens "anshos palette" on a global key press. It only
// applies to the x11 viewport source.
func startPaletteHotkey(ctx context.Context, opts *rootOptions, keys string, viewport platform.Viewport, logger *slog.Logger) {
	if keys == "" {
		return
	}
	handler, err := hotkeys.NewHandler(viewport, logger)
	if err != nil {
		logger.Debug("palette hotkey disabled", "reason", err)
		return
	}
	err = handler.Bind(keys, func() {
		exe, err := os.Executable()
		if err != nil {
			logger.Error("palette: failed to find executable", "error", err)
			return
		}
		args := []string{"palette"}
		if opts.configPath != "" {
			args = append(args, "--config", opts.configPath)
		}
		cmd := exec.Command(exe, args...)
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			logger.Error("palette: failed to launch", "error", err)
			return
		}
		go cmd.Wait()
	})
	if err != nil {
		logger.Warn("failed to register palette hotkey", "error", err)
		return
	}
	go handler.Run(ctx)
	logger.Info("palette hotkey registered", "keys", keys)
}
