// Package palette shows the desktop's start menu through an external dmenu
// style launcher such as rofi, fuzzel, wofi or dmenu.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the launcher closes without a selection.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row handed to a launcher.
type Item struct {
	Label    string
	Action   string
	Icon     string // Icon name, shown by launchers that support icons.
	Meta     string // Extra search keywords.
	IsHeader bool   // Non-selectable section title.
	IsActive bool   // Highlighted row, e.g. the focused window.
}

// Backend presents items and returns the chosen one.
type Backend interface {
	Name() string
	Show(prompt string, items []Item) (Item, error)
}

var backendOrder = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend returns the first launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range backendOrder {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(backendOrder, ", "))
}

// NewBackend returns the launcher called name. "auto" or an empty name
// picks the first one installed.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}
	b, ok := newLauncher(name)
	if !ok {
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(backendOrder, ", "))
	}
	if _, err := exec.LookPath(b.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return b, nil
}
