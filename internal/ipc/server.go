package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/runtimepath"
)

// Controller is the part of the window manager the IPC server exposes.
type Controller interface {
	Snapshot() daemon.Snapshot
	Retile() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the runtime socket for display.
func NewServer(display string, ctrl Controller, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPathFor(display)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, ctrl, logger), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a socket left behind by a previous run
	os.Remove(s.socketPath)

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

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
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

	// One JSON request per line
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandRetile:
		return s.handleRetile()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	resp, err := NewOKResponse(StatusFromSnapshot(s.ctrl.Snapshot()))
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleRetile() *Response {
	s.logger.Info("IPC: retile requested")
	if err := s.ctrl.Retile(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to retile: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// StatusFromSnapshot converts manager state into the wire status.
func StatusFromSnapshot(snap daemon.Snapshot) StatusData {
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(snap.Uptime.Seconds()),
		WindowCount:   len(snap.Windows),
		Windows:       make([]WindowInfo, 0, len(snap.Windows)),
	}
	for i, w := range snap.Windows {
		status.Windows = append(status.Windows, WindowInfo{
			ID:     uint32(w.ID),
			Master: i == 0,
			X:      w.Bounds.X,
			Y:      w.Bounds.Y,
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		})
	}
	if snap.Drag != nil {
		status.Drag = &DragInfo{
			WindowID: uint32(snap.Drag.Window),
			Gesture:  snap.Drag.Gesture.String(),
		}
	}
	return status
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
