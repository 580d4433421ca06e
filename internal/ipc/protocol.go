package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandLaunch      CommandType = "LAUNCH"
	CommandClose       CommandType = "CLOSE"
	CommandFocus       CommandType = "FOCUS"
	CommandMinimize    CommandType = "MINIMIZE"
	CommandMaximize    CommandType = "MAXIMIZE"
	CommandMove        CommandType = "MOVE"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandListApps    CommandType = "LIST_APPS"
	CommandLogout      CommandType = "LOGOUT"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandReload      CommandType = "RELOAD"
)

// Error codes carried by ERROR responses so clients can restore sentinel
// errors.
const (
	CodeWindowNotFound     = "window_not_found"
	CodeUnknownApplication = "unknown_application"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
}

// LaunchPayload is the payload for LAUNCH.
type LaunchPayload struct {
	AppID apps.ID `json:"app_id"`
}

// WindowPayload addresses a window for CLOSE, FOCUS, MINIMIZE and MAXIMIZE.
type WindowPayload struct {
	WindowID string `json:"window_id"`
}

// MovePayload is the payload for MOVE.
type MovePayload struct {
	WindowID string `json:"window_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// WindowInfo is a window record plus its derived state.
type WindowInfo struct {
	wm.Window
	Focused bool    `json:"focused"`
	State   string  `json:"state"`
	Layout  wm.Rect `json:"layout"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
	Focused string       `json:"focused,omitempty"`
}

// AppInfo describes a registered application.
type AppInfo struct {
	ID          apps.ID   `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	DefaultSize apps.Size `json:"default_size"`
	Open        bool      `json:"open"`
}

// AppsData represents the data returned by LIST_APPS
type AppsData struct {
	Apps []AppInfo `json:"apps"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount    int     `json:"window_count"`
	FocusedWindow  string  `json:"focused_window,omitempty"`
	WorkArea       wm.Rect `json:"work_area"`
	ViewportSource string  `json:"viewport_source"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
	DaemonRunning  bool    `json:"daemon_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
