package wm

import "github.com/1broseidon/anshos/internal/apps"

// store is the ordered collection of window records. It is only reached
// through Manager, which holds the lock.
type store struct {
	windows []*Window
}

func (s *store) len() int {
	return len(s.windows)
}

func (s *store) get(id string) *Window {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *store) byApp(appID apps.ID) *Window {
	for _, w := range s.windows {
		if w.AppID == appID {
			return w
		}
	}
	return nil
}

// occupied reports whether an open window is positioned exactly at p.
func (s *store) occupied(p Point) bool {
	for _, w := range s.windows {
		if w.Position == p {
			return true
		}
	}
	return false
}

func (s *store) insert(w *Window) {
	s.windows = append(s.windows, w)
}

// remove deletes the record with id and reports whether one was removed.
func (s *store) remove(id string) bool {
	for i, w := range s.windows {
		if w.ID == id {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return true
		}
	}
	return false
}

func (s *store) clear() {
	s.windows = nil
}

func (s *store) snapshot() []Window {
	out := make([]Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = *w
	}
	return out
}
