package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// MoveResizeWindow moves and resizes a window to the specified geometry.
// The request is unchecked; a stale window surfaces asynchronously through
// the error handler installed by InstallErrorHandler.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) {
	xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
}

// RaiseWindow restacks a window above its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Stack(xproto.StackModeAbove)
}

// WindowGeometry performs a synchronous GetGeometry round-trip.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, classifyError(err)
	}
	return int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height), nil
}

// ScreenSize returns the root window size. It queries the server each time
// rather than trusting the connection setup block.
func (c *Connection) ScreenSize() (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, classifyError(err)
	}
	return int(geom.Width), int(geom.Height), nil
}
