package movemode

import "github.com/1broseidon/stackwm/internal/platform"

// Gesture selects what a pointer drag does to its window.
type Gesture int

const (
	// GestureMove translates the window and keeps its size
	GestureMove Gesture = iota + 1
	// GestureResize grows or shrinks the window from its bottom-right corner
	GestureResize
)

// String returns the string representation of the gesture
func (g Gesture) String() string {
	switch g {
	case GestureMove:
		return "move"
	case GestureResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Drag is the state of one modifier+button gesture, from press to release.
// A nil *Drag means no gesture is in progress.
type Drag struct {
	Window  platform.WindowID
	Gesture Gesture
	// Pointer position (root-relative) when the button went down
	AnchorX int
	AnchorY int
	// Window geometry when the button went down
	Anchor platform.Rect
}

// Begin starts a drag of window from the given pointer position.
func Begin(window platform.WindowID, gesture Gesture, rootX, rootY int, geom platform.Rect) *Drag {
	return &Drag{
		Window:  window,
		Gesture: gesture,
		AnchorX: rootX,
		AnchorY: rootY,
		Anchor:  geom,
	}
}
