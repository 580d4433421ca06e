// Package shell holds the transient state of the desktop chrome: the lock
// screen, the start menu, the taskbar and the theme. Window state lives in
// the window manager; the chrome only issues commands to it and derives
// what to show from its snapshots.
package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/prefs"
	"github.com/1broseidon/anshos/internal/wm"
)

var (
	// ErrLocked is returned by every command issued while the lock screen is up.
	ErrLocked = errors.New("desktop is locked")
	// ErrBadCredentials is returned by Login for a wrong user or PIN.
	ErrBadCredentials = errors.New("invalid user or pin")
)

const (
	clockTimeLayout = "3:04 PM"
	clockDateLayout = "1/2/2006"
)

// WindowManager is the subset of *wm.Manager the chrome drives.
type WindowManager interface {
	Launch(appID apps.ID) (string, error)
	ToggleMinimize(id string) error
	Logout()
	Windows() []wm.Window
}

// Credentials are the accepted login. An empty PIN accepts any PIN.
type Credentials struct {
	User string
	PIN  string
}

// TaskbarEntry is one application button on the taskbar.
type TaskbarEntry struct {
	AppID     apps.ID
	Name      string
	Icon      string
	WindowID  string
	Open      bool
	Minimized bool
	Focused   bool
}

// Chrome is the desktop shell. It starts locked.
type Chrome struct {
	mu       sync.Mutex
	windows  WindowManager
	registry *apps.Registry
	store    prefs.Store
	creds    Credentials
	logger   *slog.Logger

	locked    bool
	user      string
	startMenu bool
}

// NewChrome creates a locked shell over windows.
func NewChrome(windows WindowManager, registry *apps.Registry, store prefs.Store, creds Credentials, logger *slog.Logger) *Chrome {
	if store == nil {
		store = prefs.NewMemory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chrome{
		windows:  windows,
		registry: registry,
		store:    store,
		creds:    creds,
		logger:   logger,
		locked:   true,
	}
}

// Login unlocks the desktop.
func (c *Chrome) Login(user, pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.creds.User != "" && user != c.creds.User {
		c.logger.Warn("login rejected", "user", user)
		return ErrBadCredentials
	}
	if c.creds.PIN != "" && pin != c.creds.PIN {
		c.logger.Warn("login rejected", "user", user)
		return ErrBadCredentials
	}
	c.locked = false
	c.user = user
	c.logger.Info("session unlocked", "user", user)
	return nil
}

// Lock shows the lock screen. Open windows are kept.
func (c *Chrome) Lock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = true
	c.startMenu = false
}

// Logout closes every window, resets the window manager and locks the
// desktop. The lock is taken first so no command can launch a window while
// the session is torn down.
func (c *Chrome) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locked = true
	c.startMenu = false
	c.windows.Logout()
	c.logger.Info("logged out", "user", c.user)
	c.user = ""
}

// Locked reports whether the lock screen is up.
func (c *Chrome) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// User returns the logged-in user, empty while locked after a logout.
func (c *Chrome) User() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// StartMenuOpen reports whether the start menu is showing.
func (c *Chrome) StartMenuOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startMenu
}

// ToggleStartMenu opens or closes the start menu.
func (c *Chrome) ToggleStartMenu() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return ErrLocked
	}
	c.startMenu = !c.startMenu
	return nil
}

// CloseStartMenu hides the start menu if it is open.
func (c *Chrome) CloseStartMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startMenu = false
}

// OpenApp handles a desktop icon or start menu activation: the application
// is launched, or its existing window restored and focused.
func (c *Chrome) OpenApp(appID apps.ID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return "", ErrLocked
	}
	c.startMenu = false
	id, err := c.windows.Launch(appID)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", appID, err)
	}
	return id, nil
}

// ClickTaskbar handles a taskbar button. An application with a window has
// that window minimized or restored; one without is launched.
func (c *Chrome) ClickTaskbar(appID apps.ID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return "", ErrLocked
	}
	for _, w := range c.windows.Windows() {
		if w.AppID != appID {
			continue
		}
		if err := c.windows.ToggleMinimize(w.ID); err != nil {
			return "", err
		}
		return w.ID, nil
	}
	id, err := c.windows.Launch(appID)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", appID, err)
	}
	return id, nil
}

// DesktopIcons returns the applications shown on the desktop, in order.
func (c *Chrome) DesktopIcons() []apps.Descriptor {
	return c.registry.All()
}

// Taskbar returns one entry per registered application.
func (c *Chrome) Taskbar() []TaskbarEntry {
	windows := c.windows.Windows()
	focused, hasFocus := wm.Topmost(windows)

	byApp := make(map[apps.ID]wm.Window, len(windows))
	for _, w := range windows {
		byApp[w.AppID] = w
	}

	descs := c.registry.All()
	entries := make([]TaskbarEntry, 0, len(descs))
	for _, d := range descs {
		e := TaskbarEntry{AppID: d.ID, Name: d.Name, Icon: d.Icon}
		if w, ok := byApp[d.ID]; ok {
			e.Open = true
			e.WindowID = w.ID
			e.Minimized = w.Minimized
			e.Focused = hasFocus && focused.ID == w.ID
		}
		entries = append(entries, e)
	}
	return entries
}

// Clock returns the taskbar time and date strings for now.
func Clock(now time.Time) (string, string) {
	return now.Format(clockTimeLayout), now.Format(clockDateLayout)
}

// NeedsRotation reports whether a viewport is too narrow to show the
// desktop. Portrait viewports get a rotate notice instead.
func NeedsRotation(width, height int) bool {
	return width <= height
}

// Theme returns the persisted theme, falling back to the default for
// missing or unrecognised values.
func (c *Chrome) Theme() Theme {
	theme := DefaultTheme()
	if name, ok, err := c.store.Get(prefs.KeyWallpaper); err == nil && ok {
		if w, err := findWallpaper(name); err == nil {
			theme.Wallpaper = w
		}
	} else if err != nil {
		c.logger.Warn("failed to read wallpaper preference", "error", err)
	}
	if name, ok, err := c.store.Get(prefs.KeyTaskbarColor); err == nil && ok {
		if tc, err := findTaskbarColor(name); err == nil {
			theme.TaskbarColor = tc
		}
	} else if err != nil {
		c.logger.Warn("failed to read taskbar colour preference", "error", err)
	}
	return theme
}

// SetWallpaper selects and persists a wallpaper by name.
func (c *Chrome) SetWallpaper(name string) error {
	if c.Locked() {
		return ErrLocked
	}
	w, err := findWallpaper(name)
	if err != nil {
		return err
	}
	if err := c.store.Set(prefs.KeyWallpaper, w.Name); err != nil {
		return fmt.Errorf("save wallpaper: %w", err)
	}
	return nil
}

// SetTaskbarColor selects and persists a taskbar colour by name.
func (c *Chrome) SetTaskbarColor(name string) error {
	if c.Locked() {
		return ErrLocked
	}
	tc, err := findTaskbarColor(name)
	if err != nil {
		return err
	}
	if err := c.store.Set(prefs.KeyTaskbarColor, tc.Name); err != nil {
		return fmt.Errorf("save taskbar colour: %w", err)
	}
	return nil
}
