package mcp

import "github.com/1broseidon/anshos/internal/ipc"

// ListAppsInput is the input for the list_apps tool.
type ListAppsInput struct{}

// ListAppsOutput is the output for the list_apps tool.
type ListAppsOutput struct {
	Apps []ipc.AppInfo `json:"apps"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []ipc.WindowInfo `json:"windows"`
	Focused string           `json:"focused,omitempty"`
}

// LaunchAppInput is the input for the launch_app tool.
type LaunchAppInput struct {
	AppID string `json:"app_id" jsonschema:"Application id: calculator, todo, timer, notepad, paint, terminal, snake or settings"`
}

// WindowInput addresses a single window.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id as returned by launch_app or list_windows"`
}

// WindowOutput describes one window after an operation.
type WindowOutput struct {
	Window ipc.WindowInfo `json:"window"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	WindowID string `json:"window_id"`
	Closed   bool   `json:"closed"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id as returned by launch_app or list_windows"`
	X        int    `json:"x" jsonschema:"New left edge in layout units; may be negative"`
	Y        int    `json:"y" jsonschema:"New top edge in layout units; may be negative"`
}

// LogoutInput is the input for the logout tool.
type LogoutInput struct{}

// LogoutOutput is the output for the logout tool.
type LogoutOutput struct {
	LoggedOut bool `json:"logged_out"`
}
