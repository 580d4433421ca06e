package apps

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies a registered application.
type ID string

const (
	Calculator ID = "calculator"
	Todo       ID = "todo"
	Timer      ID = "timer"
	Notepad    ID = "notepad"
	Paint      ID = "paint"
	Terminal   ID = "terminal"
	Snake      ID = "snake"
	Settings   ID = "settings"
)

// ErrUnknownApplication is returned when an id is not in the registry.
var ErrUnknownApplication = errors.New("unknown application")

// Size is a width/height pair in layout units.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsZero reports whether the size is unset.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Descriptor describes an application. Descriptors are immutable once
// registered.
type Descriptor struct {
	ID          ID
	Name        string
	Icon        string
	DefaultSize Size
	Widget      Widget
}

// ParseID validates a user-supplied application id against the default set.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Default().Resolve(id); err != nil {
		return "", err
	}
	return id, nil
}

// Registry maps application ids to descriptors, preserving registration
// order for desktop icons and the taskbar.
type Registry struct {
	order []ID
	byID  map[ID]Descriptor
}

// New builds a registry from descriptors. Duplicate or empty ids are rejected.
func New(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		order: make([]ID, 0, len(descriptors)),
		byID:  make(map[ID]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.ID == "" {
			return nil, fmt.Errorf("application id is required")
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate application id %q", d.ID)
		}
		if d.Widget == nil {
			d.Widget = widgetFor(d.ID)
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r, nil
}

// Resolve returns the descriptor for id.
func (r *Registry) Resolve(id ID) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownApplication, id)
	}
	return d, nil
}

// All returns every descriptor in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered applications.
func (r *Registry) Len() int {
	return len(r.order)
}

var defaultRegistry = mustDefault()

// Default returns the built-in registry of desktop applications.
func Default() *Registry {
	return defaultRegistry
}

func mustDefault() *Registry {
	r, err := New(
		Descriptor{ID: Calculator, Name: "Calculator", Icon: "[=]", DefaultSize: Size{Width: 320, Height: 480}},
		Descriptor{ID: Todo, Name: "Task Master", Icon: "[v]", DefaultSize: Size{Width: 400, Height: 500}},
		Descriptor{ID: Timer, Name: "Focus Timer", Icon: "(o)", DefaultSize: Size{Width: 350, Height: 450}},
		Descriptor{ID: Notepad, Name: "Notepad", Icon: "[N]", DefaultSize: Size{Width: 500, Height: 400}},
		Descriptor{ID: Paint, Name: "Paint", Icon: "[P]", DefaultSize: Size{Width: 600, Height: 500}},
		Descriptor{ID: Terminal, Name: "Terminal", Icon: ">_ ", DefaultSize: Size{Width: 500, Height: 350}},
		Descriptor{ID: Snake, Name: "Snake Game", Icon: "~S~", DefaultSize: Size{Width: 400, Height: 600}},
		Descriptor{ID: Settings, Name: "Settings", Icon: "[*]", DefaultSize: Size{Width: 500, Height: 600}},
	)
	if err != nil {
		panic(err)
	}
	return r
}
