package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend abstracts the display-server requests the window manager issues.
//
// MoveResize and Raise are fire-and-forget; Geometry is a synchronous
// round-trip. Errors referring to a window that no longer exists wrap
// ErrStaleWindow. Any other error means the display connection is unusable.
type Backend interface {
	// Screen returns the root window geometry. Callers re-query it for every
	// tile pass.
	Screen() (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Raise(windowID WindowID) error
	Geometry(windowID WindowID) (Rect, error)
}
