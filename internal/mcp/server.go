package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/ipc"
)

const (
	ServerName    = "anshos"
	ServerVersion = "0.1.0"
)

// Desktop is the window manager the tools operate on. *ipc.Client
// satisfies it for a running daemon; Local serves an in-process manager.
type Desktop interface {
	Launch(appID apps.ID) (*ipc.WindowInfo, error)
	Close(windowID string) error
	Focus(windowID string) (*ipc.WindowInfo, error)
	ToggleMinimize(windowID string) (*ipc.WindowInfo, error)
	ToggleMaximize(windowID string) (*ipc.WindowInfo, error)
	Move(windowID string, x, y int) (*ipc.WindowInfo, error)
	ListWindows() (*ipc.WindowsData, error)
	ListApps() (*ipc.AppsData, error)
	Logout() error
}

var _ Desktop = (*ipc.Client)(nil)

// Server is the MCP server exposing desktop window operations as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
	logger    *slog.Logger
}

// NewServer creates a new MCP server over desktop.
func NewServer(desktop Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		desktop: desktop,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_apps",
		Description: "List the applications that can be launched, with their default window size and whether a window is open.",
	}, s.handleListApps)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open windows in creation order with z-index, minimized/maximized flags, position, size and on-screen layout. The focused window is the visible one with the highest z-index.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launch_app",
		Description: "Open an application window. Each application has at most one window: launching an open application restores and focuses its existing window instead.",
	}, s.handleLaunchApp)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. Closing a window that is already gone reports an error and changes nothing.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front, restoring it if minimized.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_minimize",
		Description: "Minimize a visible window, or restore and focus a minimized one. The maximized flag is kept.",
	}, s.handleToggleMinimize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to the full work area, or return it to its previous position and size.",
	}, s.handleToggleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window's top-left corner. Positions are not clamped to the screen. Maximized windows ignore moves.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "logout",
		Description: "End the session: close every window and reset the stacking order.",
	}, s.handleLogout)
}
