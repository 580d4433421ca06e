package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
)

func (s *Server) handleListApps(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListAppsInput) (*mcpsdk.CallToolResult, ListAppsOutput, error) {
	data, err := s.desktop.ListApps()
	if err != nil {
		return nil, ListAppsOutput{}, err
	}
	return nil, ListAppsOutput{Apps: data.Apps}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	windows := data.Windows
	if windows == nil {
		windows = []ipc.WindowInfo{}
	}
	return nil, ListWindowsOutput{Windows: windows, Focused: data.Focused}, nil
}

func (s *Server) handleLaunchApp(_ context.Context, _ *mcpsdk.CallToolRequest, args LaunchAppInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	appID, err := apps.ParseID(args.AppID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	info, err := s.desktop.Launch(appID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	s.logger.Info("mcp: launched app", "app", appID, "window", info.ID)
	return nil, WindowOutput{Window: *info}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if err := requireWindowID(args.WindowID); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	if err := s.desktop.Close(args.WindowID); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	s.logger.Info("mcp: closed window", "window", args.WindowID)
	return nil, CloseWindowOutput{WindowID: args.WindowID, Closed: true}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args.WindowID, s.desktop.Focus)
}

func (s *Server) handleToggleMinimize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args.WindowID, s.desktop.ToggleMinimize)
}

func (s *Server) handleToggleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowOp(args.WindowID, s.desktop.ToggleMaximize)
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if err := requireWindowID(args.WindowID); err != nil {
		return nil, WindowOutput{}, err
	}
	info, err := s.desktop.Move(args.WindowID, args.X, args.Y)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: *info}, nil
}

func (s *Server) handleLogout(_ context.Context, _ *mcpsdk.CallToolRequest, _ LogoutInput) (*mcpsdk.CallToolResult, LogoutOutput, error) {
	if err := s.desktop.Logout(); err != nil {
		return nil, LogoutOutput{}, err
	}
	s.logger.Info("mcp: logged out")
	return nil, LogoutOutput{LoggedOut: true}, nil
}

func (s *Server) windowOp(windowID string, op func(string) (*ipc.WindowInfo, error)) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if err := requireWindowID(windowID); err != nil {
		return nil, WindowOutput{}, err
	}
	info, err := op(windowID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: *info}, nil
}

func requireWindowID(id string) error {
	if id == "" {
		return fmt.Errorf("window_id is required")
	}
	return nil
}
