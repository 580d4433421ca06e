package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/anshos/internal/apps"
)

// ErrWindowNotFound is returned when an operation addresses an id that is
// not in the store. It is never fatal; callers usually ignore it.
var ErrWindowNotFound = errors.New("window not found")

// Resolver looks up application descriptors.
type Resolver interface {
	Resolve(id apps.ID) (apps.Descriptor, error)
}

// Options configures a Manager.
type Options struct {
	// InitialZ is the counter value before the first window is created.
	// The first launch receives InitialZ+1. Logout resets to this value.
	InitialZ int
	// CascadeOrigin is the position of the first window.
	CascadeOrigin Point
	// CascadeStep offsets each new window from the previous one on both axes.
	CascadeStep int
	// FallbackSize is used when a descriptor has no default size.
	FallbackSize Size
	// WorkArea is the initial desktop area available to maximized windows.
	WorkArea Rect
	// NewID generates window ids. Defaults to random UUIDs.
	NewID  func() string
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the desktop.
func DefaultOptions() Options {
	return Options{
		InitialZ:      0,
		CascadeOrigin: Point{X: 100, Y: 50},
		CascadeStep:   20,
		FallbackSize:  Size{Width: 400, Height: 300},
		WorkArea:      WorkArea(Size{Width: 1280, Height: 800}, 48),
	}
}

// Manager owns the window store and the z-order counter. All methods are
// safe for concurrent use; each one runs to completion under a single lock,
// so no operation observes a partially applied one.
type Manager struct {
	mu       sync.Mutex
	registry Resolver
	opts     Options
	newID    func() string
	logger   *slog.Logger

	windows  store
	z        int
	drag     dragState
	workArea Rect
}

// NewManager creates a manager resolving applications through registry.
func NewManager(registry Resolver, opts Options) *Manager {
	if opts.FallbackSize.IsZero() {
		opts.FallbackSize = DefaultOptions().FallbackSize
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		opts:     opts,
		newID:    newID,
		logger:   logger,
		z:        opts.InitialZ,
		workArea: opts.WorkArea,
	}
}

// nextZ advances the counter. Callers must hold m.mu.
func (m *Manager) nextZ() int {
	m.z++
	return m.z
}

// raise focuses w. Callers must hold m.mu.
func (m *Manager) raise(w *Window) {
	w.ZIndex = m.nextZ()
	w.Minimized = false
}

// nextCascade returns the position for a new window. The cascade slot is
// the number of open windows, advanced past any slot where an open window
// already sits. Callers must hold m.mu.
func (m *Manager) nextCascade() Point {
	for slot := m.windows.len(); ; slot++ {
		offset := slot * m.opts.CascadeStep
		pos := m.opts.CascadeOrigin.Add(Point{X: offset, Y: offset})
		if m.opts.CascadeStep <= 0 || !m.windows.occupied(pos) {
			return pos
		}
	}
}

// Launch opens appID and returns the id of its window. An application that
// already has a window is restored and focused instead; no second window is
// created.
func (m *Manager) Launch(appID apps.ID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.windows.byApp(appID); existing != nil {
		m.raise(existing)
		m.logger.Debug("launch focused existing window", "app", appID, "window", existing.ID, "z", existing.ZIndex)
		return existing.ID, nil
	}

	desc, err := m.registry.Resolve(appID)
	if err != nil {
		return "", fmt.Errorf("launch %s: %w", appID, err)
	}

	size := desc.DefaultSize
	if size.IsZero() {
		size = m.opts.FallbackSize
	}
	w := &Window{
		ID:       m.newID(),
		AppID:    appID,
		Title:    desc.Name,
		ZIndex:   m.nextZ(),
		Position: m.nextCascade(),
		Size:     size,
	}
	m.windows.insert(w)
	m.logger.Debug("window created", "app", appID, "window", w.ID, "z", w.ZIndex)
	return w.ID, nil
}

// Close removes the window. Closing an id twice returns ErrWindowNotFound
// the second time and changes nothing.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.windows.remove(id) {
		return fmt.Errorf("close %s: %w", id, ErrWindowNotFound)
	}
	if m.drag.windowID == id {
		m.drag = dragState{}
	}
	m.logger.Debug("window closed", "window", id)
	return nil
}

// Focus raises the window above every other and clears its minimized flag.
func (m *Manager) Focus(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return fmt.Errorf("focus %s: %w", id, ErrWindowNotFound)
	}
	m.raise(w)
	return nil
}

// ToggleMinimize hides or restores the window. Restoring also focuses it;
// hiding keeps its z-order value. The maximized flag is left untouched.
func (m *Manager) ToggleMinimize(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return fmt.Errorf("minimize %s: %w", id, ErrWindowNotFound)
	}
	if w.Minimized {
		m.raise(w)
		return nil
	}
	w.Minimized = true
	if m.drag.windowID == id {
		m.drag = dragState{}
	}
	return nil
}

// ToggleMaximize flips the maximized flag. Stored position and size are not
// modified, so un-maximizing returns the window to its previous geometry.
func (m *Manager) ToggleMaximize(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return fmt.Errorf("maximize %s: %w", id, ErrWindowNotFound)
	}
	w.Maximized = !w.Maximized
	if w.Maximized && m.drag.windowID == id {
		m.drag = dragState{}
	}
	return nil
}

// Move sets the window's position. Requests for maximized windows are
// ignored. Positions are not clamped to the work area.
func (m *Manager) Move(id string, pos Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return fmt.Errorf("move %s: %w", id, ErrWindowNotFound)
	}
	if w.Maximized {
		return nil
	}
	w.Position = pos
	return nil
}

// Logout removes every window and resets the z-order counter to its initial
// value in one step.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := m.windows.len()
	m.windows.clear()
	m.z = m.opts.InitialZ
	m.drag = dragState{}
	m.logger.Info("session cleared", "windows_closed", count)
}

// Windows returns a copy of every record in creation order.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.windows.snapshot()
}

// Window returns a copy of the record with id.
func (m *Manager) Window(id string) (Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return Window{}, fmt.Errorf("window %s: %w", id, ErrWindowNotFound)
	}
	return *w, nil
}

// ByApp returns the window belonging to appID, if one is open.
func (m *Manager) ByApp(appID apps.ID) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.byApp(appID)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// Focused returns the non-minimized window with the highest z-order value.
func (m *Manager) Focused() (Window, bool) {
	return Topmost(m.Windows())
}

// Stacking returns the visible windows in paint order, lowest first.
func (m *Manager) Stacking() []Window {
	all := m.Windows()
	visible := all[:0]
	for _, w := range all {
		if !w.Minimized {
			visible = append(visible, w)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].ZIndex < visible[j].ZIndex
	})
	return visible
}

// Len returns the number of open windows.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.windows.len()
}

// Counter returns the last z-order value handed out.
func (m *Manager) Counter() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.z
}

// SetWorkArea updates the area used for maximized windows.
func (m *Manager) SetWorkArea(r Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workArea = r
}

// WorkArea returns the area used for maximized windows.
func (m *Manager) WorkArea() Rect {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workArea
}

// Layout returns the geometry the window occupies on screen: the full work
// area when maximized, its stored geometry otherwise.
func (m *Manager) Layout(id string) (Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return Rect{}, fmt.Errorf("layout %s: %w", id, ErrWindowNotFound)
	}
	if w.Maximized {
		return m.workArea, nil
	}
	return w.Bounds(), nil
}
