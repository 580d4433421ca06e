package mcp

import (
	"fmt"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
	"github.com/1broseidon/anshos/internal/wm"
)

// Local serves the tools from an in-process window manager, for use when
// no daemon is running.
type Local struct {
	mgr      *wm.Manager
	registry *apps.Registry
}

var _ Desktop = (*Local)(nil)

func NewLocal(mgr *wm.Manager, registry *apps.Registry) *Local {
	return &Local{mgr: mgr, registry: registry}
}

func (l *Local) info(id string) (*ipc.WindowInfo, error) {
	info, ok := ipc.BuildWindowsData(l.mgr.Windows(), l.mgr.WorkArea()).Find(id)
	if !ok {
		return nil, fmt.Errorf("window %s: %w", id, wm.ErrWindowNotFound)
	}
	return &info, nil
}

func (l *Local) Launch(appID apps.ID) (*ipc.WindowInfo, error) {
	id, err := l.mgr.Launch(appID)
	if err != nil {
		return nil, err
	}
	return l.info(id)
}

func (l *Local) Close(windowID string) error {
	return l.mgr.Close(windowID)
}

func (l *Local) Focus(windowID string) (*ipc.WindowInfo, error) {
	if err := l.mgr.Focus(windowID); err != nil {
		return nil, err
	}
	return l.info(windowID)
}

func (l *Local) ToggleMinimize(windowID string) (*ipc.WindowInfo, error) {
	if err := l.mgr.ToggleMinimize(windowID); err != nil {
		return nil, err
	}
	return l.info(windowID)
}

func (l *Local) ToggleMaximize(windowID string) (*ipc.WindowInfo, error) {
	if err := l.mgr.ToggleMaximize(windowID); err != nil {
		return nil, err
	}
	return l.info(windowID)
}

func (l *Local) Move(windowID string, x, y int) (*ipc.WindowInfo, error) {
	if err := l.mgr.Move(windowID, wm.Point{X: x, Y: y}); err != nil {
		return nil, err
	}
	return l.info(windowID)
}

func (l *Local) ListWindows() (*ipc.WindowsData, error) {
	data := ipc.BuildWindowsData(l.mgr.Windows(), l.mgr.WorkArea())
	return &data, nil
}

func (l *Local) ListApps() (*ipc.AppsData, error) {
	data := ipc.BuildAppsData(l.registry, l.mgr.Windows())
	return &data, nil
}

func (l *Local) Logout() error {
	l.mgr.Logout()
	return nil
}
