//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/stackwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh
// X11 connection to display (empty means $DISPLAY).
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Connection exposes the underlying X11 connection for setup code.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops the X11 event loop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Screen returns the root window bounds.
func (b *LinuxBackend) Screen() (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	w, h, err := conn.ScreenSize()
	if err != nil {
		return Rect{}, fmt.Errorf("query screen size: %w", mapError(err))
	}
	return Rect{Width: w, Height: h}, nil
}

// MoveResize issues a ConfigureWindow for the full geometry.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
	return nil
}

// Raise restacks the window above its siblings.
func (b *LinuxBackend) Raise(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	conn.RaiseWindow(xproto.Window(windowID))
	return nil
}

// Geometry queries the current window geometry synchronously.
func (b *LinuxBackend) Geometry(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	x, y, w, h, err := conn.WindowGeometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, fmt.Errorf("query geometry of window %d: %w", windowID, mapError(err))
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend is not connected")
	}
	return b.conn, nil
}

// mapError translates x11 stale-window errors into ErrStaleWindow.
func mapError(err error) error {
	if errors.Is(err, x11.ErrNoSuchWindow) {
		return fmt.Errorf("%w: %v", ErrStaleWindow, err)
	}
	return err
}
