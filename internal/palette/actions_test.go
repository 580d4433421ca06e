package palette

import (
	"errors"
	"testing"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
	"github.com/1broseidon/anshos/internal/wm"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"launch:calculator", Action{VerbLaunch, "calculator"}, false},
		{"close:w1", Action{VerbClose, "w1"}, false},
		{"logout", Action{Verb: VerbLogout}, false},
		{"focus", Action{}, true},
		{"reboot:now", Action{}, true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAction(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestBuild_Layout(t *testing.T) {
	registered := []ipc.AppInfo{
		{ID: apps.Calculator, Name: "Calculator"},
		{ID: apps.Notepad, Name: "Notepad", Open: true},
	}
	windows := []ipc.WindowInfo{{
		Window:  wm.Window{ID: "w1", AppID: apps.Notepad, Title: "Notepad", Minimized: true},
		Focused: false,
	}}

	entries := Build(registered, windows)
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	want := []string{"Applications", "Calculator", "Notepad", "Windows", "Notepad (minimized)", "Log out"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v", labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}

	if entries[1].Action != "launch:calculator" || !entries[2].IsActive {
		t.Fatalf("unexpected app entries %+v %+v", entries[1], entries[2])
	}
	win := entries[4]
	if len(win.Children) != 4 || win.Children[1].Label != "Restore" || win.Children[3].Action != "close:w1" {
		t.Fatalf("unexpected window submenu %+v", win.Children)
	}
}

func TestBuild_NoWindowsSection(t *testing.T) {
	entries := Build(nil, nil)
	if len(entries) != 2 || entries[1].Action != "logout" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

type recordingDesktop struct {
	calls []string
	err   error
}

func (d *recordingDesktop) Launch(id apps.ID) (*ipc.WindowInfo, error) {
	d.calls = append(d.calls, "launch "+string(id))
	return &ipc.WindowInfo{}, d.err
}
func (d *recordingDesktop) Close(id string) error {
	d.calls = append(d.calls, "close "+id)
	return d.err
}
func (d *recordingDesktop) Focus(id string) (*ipc.WindowInfo, error) {
	d.calls = append(d.calls, "focus "+id)
	return &ipc.WindowInfo{}, d.err
}
func (d *recordingDesktop) ToggleMinimize(id string) (*ipc.WindowInfo, error) {
	d.calls = append(d.calls, "minimize "+id)
	return &ipc.WindowInfo{}, d.err
}
func (d *recordingDesktop) ToggleMaximize(id string) (*ipc.WindowInfo, error) {
	d.calls = append(d.calls, "maximize "+id)
	return &ipc.WindowInfo{}, d.err
}
func (d *recordingDesktop) Logout() error {
	d.calls = append(d.calls, "logout")
	return d.err
}

func TestDispatch_RoutesEachVerb(t *testing.T) {
	d := &recordingDesktop{}
	for _, s := range []string{"launch:todo", "focus:w1", "minimize:w1", "maximize:w1", "close:w1", "logout"} {
		a, err := ParseAction(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if err := Dispatch(d, a); err != nil {
			t.Fatalf("dispatch %q: %v", s, err)
		}
	}
	want := []string{"launch todo", "focus w1", "minimize w1", "maximize w1", "close w1", "logout"}
	for i := range want {
		if d.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", d.calls, want)
		}
	}
}

func TestDispatch_WrapsErrors(t *testing.T) {
	boom := errors.New("daemon gone")
	err := Dispatch(&recordingDesktop{err: boom}, Action{Verb: VerbClose, Target: "w9"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	err = Dispatch(&recordingDesktop{}, Action{Verb: VerbLaunch, Target: "minesweeper"})
	if !errors.Is(err, apps.ErrUnknownApplication) {
		t.Fatalf("expected unknown application, got %v", err)
	}
}
