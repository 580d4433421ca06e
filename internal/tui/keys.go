package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the desktop key bindings.
type KeyMap struct {
	Quit          key.Binding
	StartMenu     key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Cancel        key.Binding
	CycleWindows  key.Binding
	CloseWindow   key.Binding
	Minimize      key.Binding
	Maximize      key.Binding
	NextWallpaper key.Binding
	NextTaskbar   key.Binding
	Lock          key.Binding
	Help          key.Binding
}

// DefaultKeyMap returns the bindings used by the desktop.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		StartMenu: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start menu"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
		CycleWindows: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		CloseWindow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close window"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minimize"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "maximize"),
		),
		NextWallpaper: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wallpaper"),
		),
		NextTaskbar: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "taskbar colour"),
		),
		Lock: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "lock"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartMenu, k.CycleWindows, k.CloseWindow, k.Minimize, k.Maximize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartMenu, k.Up, k.Down, k.Select, k.Cancel},
		{k.CycleWindows, k.CloseWindow, k.Minimize, k.Maximize},
		{k.NextWallpaper, k.NextTaskbar, k.Lock, k.Help, k.Quit},
	}
}
