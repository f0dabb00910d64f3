package tiling

import "github.com/1broseidon/stackwm/internal/platform"

// TrackedWindow is a managed client and the geometry last assigned to it.
// Bounds is zero until the first tile pass.
type TrackedWindow struct {
	ID     platform.WindowID
	Bounds platform.Rect
}

// Registry is the ordered set of managed windows. Insertion order is tiling
// order: index 0, when present, is the master.
type Registry struct {
	windows []TrackedWindow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert appends a window with zero geometry. Inserting an id twice yields
// two entries.
func (r *Registry) Insert(id platform.WindowID) {
	r.windows = append(r.windows, TrackedWindow{ID: id})
}

// Remove drops every entry for id, keeping the survivors in order, and
// returns how many were dropped. Unknown ids are ignored.
func (r *Registry) Remove(id platform.WindowID) int {
	kept := r.windows[:0]
	for _, w := range r.windows {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	removed := len(r.windows) - len(kept)
	// Clear the tail so the backing array does not hold stale entries.
	for i := len(kept); i < len(r.windows); i++ {
		r.windows[i] = TrackedWindow{}
	}
	r.windows = kept
	return removed
}

// Contains reports whether id is tracked.
func (r *Registry) Contains(id platform.WindowID) bool {
	for _, w := range r.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of tracked entries.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Windows returns a copy of the ordered window list.
func (r *Registry) Windows() []TrackedWindow {
	if len(r.windows) == 0 {
		return nil
	}
	out := make([]TrackedWindow, len(r.windows))
	copy(out, r.windows)
	return out
}

// Replace stores the result of a tile pass. The slice is copied.
func (r *Registry) Replace(windows []TrackedWindow) {
	r.windows = append(r.windows[:0:0], windows...)
}
