package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/anshos/internal/platform"
	"github.com/1broseidon/anshos/internal/wm"
)

// WorkAreaTarget receives the work area computed from the viewport.
type WorkAreaTarget interface {
	SetWorkArea(r wm.Rect)
	WorkArea() wm.Rect
}

// WatcherConfig holds configuration for the viewport watcher.
type WatcherConfig struct {
	Interval      time.Duration
	TaskbarHeight int
	Logger        *slog.Logger
}

// Watcher periodically reads the hosting viewport and keeps the window
// manager's work area in step with it.
type Watcher struct {
	mu            sync.Mutex
	interval      time.Duration
	taskbarHeight int
	viewport      platform.Viewport
	target        WorkAreaTarget
	logger        *slog.Logger
}

// NewWatcher creates a watcher that reads viewport and updates target.
func NewWatcher(cfg WatcherConfig, viewport platform.Viewport, target WorkAreaTarget) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		interval:      interval,
		taskbarHeight: cfg.TaskbarHeight,
		viewport:      viewport,
		target:        target,
		logger:        logger,
	}
}

// Run starts the polling loop. Blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("viewport watcher started", "source", w.viewport.Name(), "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("viewport watcher stopped")
			return
		case <-ticker.C:
			w.sync()
		}
	}
}

// SyncNow reads the viewport immediately and reports whether the work area
// changed.
func (w *Watcher) SyncNow() bool {
	return w.sync()
}

// SetTaskbarHeight updates the height removed from the desktop and
// re-syncs.
func (w *Watcher) SetTaskbarHeight(h int) {
	w.mu.Lock()
	w.taskbarHeight = h
	w.mu.Unlock()
	w.sync()
}

func (w *Watcher) sync() (changed bool) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("viewport watcher panic recovered", "error", err)
			changed = false
		}
	}()

	desktop, err := w.viewport.Desktop()
	if err != nil {
		w.logger.Warn("viewport watcher: failed to read desktop", "source", w.viewport.Name(), "error", err)
		return false
	}

	w.mu.Lock()
	taskbar := w.taskbarHeight
	w.mu.Unlock()

	area := wm.WorkArea(wm.Size{Width: desktop.Width, Height: desktop.Height}, taskbar)
	area.X += desktop.X
	area.Y += desktop.Y

	if area == w.target.WorkArea() {
		return false
	}
	w.target.SetWorkArea(area)
	w.logger.Info("work area updated",
		"x", area.X,
		"y", area.Y,
		"width", area.Width,
		"height", area.Height)
	return true
}
