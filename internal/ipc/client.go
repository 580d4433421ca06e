package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/runtimepath"
	"github.com/1broseidon/anshos/internal/wm"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientForSocket(socketPath)
}

// NewClientForSocket creates a client for socketPath.
func NewClientForSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		switch resp.Code {
		case CodeWindowNotFound:
			return nil, fmt.Errorf("daemon error: %s: %w", resp.Error, wm.ErrWindowNotFound)
		case CodeUnknownApplication:
			return nil, fmt.Errorf("daemon error: %s: %w", resp.Error, apps.ErrUnknownApplication)
		}
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Launch opens an application, or focuses its existing window.
func (c *Client) Launch(appID apps.ID) (*WindowInfo, error) {
	var info WindowInfo
	if err := c.call(CommandLaunch, LaunchPayload{AppID: appID}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Close closes a window.
func (c *Client) Close(windowID string) error {
	return c.call(CommandClose, WindowPayload{WindowID: windowID}, nil)
}

// Focus raises a window.
func (c *Client) Focus(windowID string) (*WindowInfo, error) {
	return c.windowCall(CommandFocus, windowID)
}

// ToggleMinimize minimizes or restores a window.
func (c *Client) ToggleMinimize(windowID string) (*WindowInfo, error) {
	return c.windowCall(CommandMinimize, windowID)
}

// ToggleMaximize maximizes or un-maximizes a window.
func (c *Client) ToggleMaximize(windowID string) (*WindowInfo, error) {
	return c.windowCall(CommandMaximize, windowID)
}

// Move places a window's top-left corner at x, y.
func (c *Client) Move(windowID string, x, y int) (*WindowInfo, error) {
	var info WindowInfo
	if err := c.call(CommandMove, MovePayload{WindowID: windowID, X: x, Y: y}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListWindows retrieves every open window.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListApps retrieves the registered applications.
func (c *Client) ListApps() (*AppsData, error) {
	var data AppsData
	if err := c.call(CommandListApps, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Logout closes every window and resets the session.
func (c *Client) Logout() error {
	return c.call(CommandLogout, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

func (c *Client) windowCall(cmd CommandType, windowID string) (*WindowInfo, error) {
	var info WindowInfo
	if err := c.call(cmd, WindowPayload{WindowID: windowID}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
