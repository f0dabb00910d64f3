package movemode

import "github.com/1broseidon/stackwm/internal/platform"

// MinSize is the smallest width or height a resize drag produces.
const MinSize = 1

// Apply returns the window geometry for a pointer at (rootX, rootY).
//
// The result depends only on the anchor and the current pointer position,
// never on intermediate motion. A move shifts the anchor position by the
// pointer delta. A resize adds the delta to the anchor size, clamped to
// MinSize per dimension.
func (d *Drag) Apply(rootX, rootY int) platform.Rect {
	dx := rootX - d.AnchorX
	dy := rootY - d.AnchorY

	geom := d.Anchor
	switch d.Gesture {
	case GestureMove:
		geom.X += dx
		geom.Y += dy
	case GestureResize:
		geom.Width = max(MinSize, geom.Width+dx)
		geom.Height = max(MinSize, geom.Height+dy)
	}
	return geom
}

// Targets reports whether the drag operates on window.
func (d *Drag) Targets(window platform.WindowID) bool {
	return d != nil && d.Window == window
}
