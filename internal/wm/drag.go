package wm

import "fmt"

// Region identifies which part of a window received a pointer press.
type Region int

const (
	// RegionBody is anywhere inside the window other than the title bar.
	RegionBody Region = iota
	// RegionTitleBar is the strip holding the title and window buttons.
	RegionTitleBar
)

// DragPhase is the state of the pointer drag machine.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return fmt.Sprintf("DragPhase(%d)", int(p))
	}
}

type dragState struct {
	phase    DragPhase
	windowID string
	offset   Point
}

// Press handles a pointer press on a window. The window is always focused.
// A press on the title bar of a non-maximized window also starts a drag,
// remembering where inside the window the pointer grabbed it.
func (m *Manager) Press(id string, pointer Point, region Region) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows.get(id)
	if w == nil {
		return fmt.Errorf("press %s: %w", id, ErrWindowNotFound)
	}
	m.raise(w)

	if region != RegionTitleBar || w.Maximized {
		return nil
	}
	m.drag = dragState{
		phase:    DragDragging,
		windowID: id,
		offset:   pointer.Sub(w.Position),
	}
	return nil
}

// Drag moves the window being dragged so the grab point follows pointer.
// It reports whether a window was moved. The new position is not clamped,
// so windows may be dragged partly or fully off screen.
func (m *Manager) Drag(pointer Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drag.phase != DragDragging {
		return false
	}
	w := m.windows.get(m.drag.windowID)
	if w == nil || w.Maximized {
		m.drag = dragState{}
		return false
	}
	w.Position = pointer.Sub(m.drag.offset)
	return true
}

// Release ends any drag in progress.
func (m *Manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drag = dragState{}
}

// Dragging returns the id of the window being dragged, if any.
func (m *Manager) Dragging() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drag.phase != DragDragging {
		return "", false
	}
	return m.drag.windowID, true
}

// DragPhase returns the current state of the drag machine.
func (m *Manager) DragPhase() DragPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drag.phase
}
