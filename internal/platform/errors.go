package platform

import "errors"

// ErrStaleWindow reports a request against a window the display server no
// longer knows about. It is benign: the window was destroyed between event
// dispatch and the request.
var ErrStaleWindow = errors.New("no such window")

// IsStale reports whether err wraps ErrStaleWindow.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleWindow)
}
