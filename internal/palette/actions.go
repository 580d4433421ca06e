package palette

import (
	"fmt"
	"strings"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
)

// Verb names what an action does.
type Verb string

const (
	VerbLaunch   Verb = "launch"
	VerbFocus    Verb = "focus"
	VerbMinimize Verb = "minimize"
	VerbMaximize Verb = "maximize"
	VerbClose    Verb = "close"
	VerbLogout   Verb = "logout"
)

// Action is a menu selection encoded as "verb" or "verb:target".
type Action struct {
	Verb   Verb
	Target string
}

func (a Action) String() string {
	if a.Target == "" {
		return string(a.Verb)
	}
	return string(a.Verb) + ":" + a.Target
}

// ParseAction decodes the string form of an Action.
func ParseAction(s string) (Action, error) {
	verb, target, _ := strings.Cut(strings.TrimSpace(s), ":")
	a := Action{Verb: Verb(verb), Target: target}
	switch a.Verb {
	case VerbLogout:
		return a, nil
	case VerbLaunch, VerbFocus, VerbMinimize, VerbMaximize, VerbClose:
		if a.Target == "" {
			return Action{}, fmt.Errorf("action %q needs a target", verb)
		}
		return a, nil
	}
	return Action{}, fmt.Errorf("unknown action %q", s)
}

// Build lays out the start menu: every application, then each open window
// with its window operations, then log out.
func Build(registered []ipc.AppInfo, windows []ipc.WindowInfo) []Entry {
	entries := []Entry{{Label: "Applications", IsHeader: true}}
	for _, app := range registered {
		entries = append(entries, Entry{
			Label:    app.Name,
			Action:   Action{Verb: VerbLaunch, Target: string(app.ID)}.String(),
			Icon:     "application-x-executable",
			Meta:     string(app.ID),
			IsActive: app.Open,
		})
	}

	if len(windows) > 0 {
		entries = append(entries, Entry{Label: "Windows", IsHeader: true})
		for _, w := range windows {
			entries = append(entries, windowEntry(w))
		}
	}

	entries = append(entries, Entry{
		Label:  "Log out",
		Action: Action{Verb: VerbLogout}.String(),
		Icon:   "system-log-out",
	})
	return entries
}

func windowEntry(w ipc.WindowInfo) Entry {
	label := w.Title
	switch {
	case w.Minimized:
		label += " (minimized)"
	case w.Maximized:
		label += " (maximized)"
	}

	minimize, maximize := "Minimize", "Maximize"
	if w.Minimized {
		minimize = "Restore"
	}
	if w.Maximized {
		maximize = "Restore size"
	}
	act := func(v Verb) string { return Action{Verb: v, Target: w.ID}.String() }

	return Entry{
		Label:    label,
		Meta:     string(w.AppID),
		IsActive: w.Focused,
		Children: []Entry{
			{Label: "Focus", Action: act(VerbFocus), Icon: "go-top"},
			{Label: minimize, Action: act(VerbMinimize), Icon: "go-bottom"},
			{Label: maximize, Action: act(VerbMaximize), Icon: "view-fullscreen"},
			{Label: "Close", Action: act(VerbClose), Icon: "window-close"},
		},
	}
}

// Desktop is the set of operations a menu selection can trigger.
type Desktop interface {
	Launch(appID apps.ID) (*ipc.WindowInfo, error)
	Close(windowID string) error
	Focus(windowID string) (*ipc.WindowInfo, error)
	ToggleMinimize(windowID string) (*ipc.WindowInfo, error)
	ToggleMaximize(windowID string) (*ipc.WindowInfo, error)
	Logout() error
}

var _ Desktop = (*ipc.Client)(nil)

// Dispatch performs a on d.
func Dispatch(d Desktop, a Action) error {
	var err error
	switch a.Verb {
	case VerbLaunch:
		var id apps.ID
		if id, err = apps.ParseID(a.Target); err == nil {
			_, err = d.Launch(id)
		}
	case VerbFocus:
		_, err = d.Focus(a.Target)
	case VerbMinimize:
		_, err = d.ToggleMinimize(a.Target)
	case VerbMaximize:
		_, err = d.ToggleMaximize(a.Target)
	case VerbClose:
		err = d.Close(a.Target)
	case VerbLogout:
		err = d.Logout()
	default:
		err = fmt.Errorf("unknown action %q", a.Verb)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", a, err)
	}
	return nil
}
