package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/anshos/internal/apps"
	"github.com/1broseidon/anshos/internal/wm"
)

// Manager is the window manager the server exposes. *wm.Manager
// satisfies it.
type Manager interface {
	Launch(appID apps.ID) (string, error)
	Close(id string) error
	Focus(id string) error
	ToggleMinimize(id string) error
	ToggleMaximize(id string) error
	Move(id string, pos wm.Point) error
	Logout()
	Windows() []wm.Window
	Window(id string) (wm.Window, error)
	WorkArea() wm.Rect
}

// ServerConfig configures a Server.
type ServerConfig struct {
	SocketPath     string
	ViewportSource string
	// Reload is called for RELOAD. A nil Reload makes RELOAD an error.
	Reload func() error
	Logger *slog.Logger
}

// Server handles IPC requests from clients
type Server struct {
	socketPath     string
	viewportSource string
	reload         func() error
	logger         *slog.Logger
	listener       net.Listener
	mgr            Manager
	registry       *apps.Registry
	startTime      time.Time
	shuttingDown   bool
	shutdownMu     sync.Mutex
	wg             sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(cfg ServerConfig, mgr Manager, registry *apps.Registry) (*Server, error) {
	if cfg.SocketPath == "" {
		return nil, fmt.Errorf("IPC socket path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(cfg.SocketPath)

	return &Server{
		socketPath:     cfg.SocketPath,
		viewportSource: cfg.ViewportSource,
		reload:         cfg.Reload,
		logger:         logger,
		mgr:            mgr,
		registry:       registry,
		startTime:      time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop closes the listener, waits for the accept loop and removes the
// socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	var resp *Response
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC command", "command", req.Command)

	switch req.Command {
	case CommandLaunch:
		return s.handleLaunch(req.Payload)
	case CommandClose:
		return s.handleWindowOp(req.Payload, s.mgr.Close)
	case CommandFocus:
		return s.handleWindowOp(req.Payload, s.mgr.Focus)
	case CommandMinimize:
		return s.handleWindowOp(req.Payload, s.mgr.ToggleMinimize)
	case CommandMaximize:
		return s.handleWindowOp(req.Payload, s.mgr.ToggleMaximize)
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandListWindows:
		return s.handleListWindows()
	case CommandListApps:
		return s.handleListApps()
	case CommandLogout:
		return s.handleLogout()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleLaunch(payload json.RawMessage) *Response {
	var p LaunchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	id, err := s.mgr.Launch(p.AppID)
	if err != nil {
		return errorResponse(err)
	}
	return s.windowResponse(id)
}

func (s *Server) handleWindowOp(payload json.RawMessage, op func(string) error) *Response {
	var p WindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if err := op(p.WindowID); err != nil {
		return errorResponse(err)
	}
	if _, err := s.mgr.Window(p.WindowID); errors.Is(err, wm.ErrWindowNotFound) {
		// Closed.
		resp, _ := NewOKResponse(nil)
		return resp
	}
	return s.windowResponse(p.WindowID)
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var p MovePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if err := s.mgr.Move(p.WindowID, wm.Point{X: p.X, Y: p.Y}); err != nil {
		return errorResponse(err)
	}
	return s.windowResponse(p.WindowID)
}

func (s *Server) handleListWindows() *Response {
	resp, err := NewOKResponse(s.windowsData())
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleListApps() *Response {
	resp, err := NewOKResponse(BuildAppsData(s.registry, s.mgr.Windows()))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// BuildAppsData lists the registered applications, marking those with an
// open window.
func BuildAppsData(registry *apps.Registry, windows []wm.Window) AppsData {
	open := make(map[apps.ID]bool)
	for _, w := range windows {
		open[w.AppID] = true
	}

	var data AppsData
	for _, d := range registry.All() {
		data.Apps = append(data.Apps, AppInfo{
			ID:          d.ID,
			Name:        d.Name,
			Icon:        d.Icon,
			DefaultSize: d.DefaultSize,
			Open:        open[d.ID],
		})
	}
	return data
}

func (s *Server) handleLogout() *Response {
	s.logger.Info("IPC: received LOGOUT command")
	s.mgr.Logout()
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	windows := s.mgr.Windows()
	status := StatusData{
		WindowCount:    len(windows),
		WorkArea:       s.mgr.WorkArea(),
		ViewportSource: s.viewportSource,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}
	if top, ok := wm.Topmost(windows); ok {
		status.FocusedWindow = top.ID
	}
	resp, err := NewOKResponse(status)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	s.logger.Info("IPC: received RELOAD command")
	if s.reload == nil {
		return NewErrorResponse("reload not supported")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) windowsData() WindowsData {
	return BuildWindowsData(s.mgr.Windows(), s.mgr.WorkArea())
}

// BuildWindowsData derives focus, display state and on-screen geometry for
// a window snapshot.
func BuildWindowsData(windows []wm.Window, workArea wm.Rect) WindowsData {
	top, hasTop := wm.Topmost(windows)
	data := WindowsData{Windows: make([]WindowInfo, 0, len(windows))}
	if hasTop {
		data.Focused = top.ID
	}
	for _, w := range windows {
		layout := w.Bounds()
		if w.Maximized {
			layout = workArea
		}
		data.Windows = append(data.Windows, WindowInfo{
			Window:  w,
			Focused: hasTop && top.ID == w.ID,
			State:   w.DisplayState(),
			Layout:  layout,
		})
	}
	return data
}

// Find returns the entry for id.
func (d WindowsData) Find(id string) (WindowInfo, bool) {
	for _, info := range d.Windows {
		if info.ID == id {
			return info, true
		}
	}
	return WindowInfo{}, false
}

func (s *Server) windowResponse(id string) *Response {
	if info, ok := s.windowsData().Find(id); ok {
		resp, err := NewOKResponse(info)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return resp
	}
	return errorResponse(fmt.Errorf("window %s: %w", id, wm.ErrWindowNotFound))
}

func errorResponse(err error) *Response {
	resp := NewErrorResponse(err.Error())
	switch {
	case errors.Is(err, wm.ErrWindowNotFound):
		resp.Code = CodeWindowNotFound
	case errors.Is(err, apps.ErrUnknownApplication):
		resp.Code = CodeUnknownApplication
	}
	return resp
}
