package tiling

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/stackwm/internal/platform"
)

// Tiler runs tile passes over a Registry and pushes the resulting geometry
// to the display server.
type Tiler struct {
	backend platform.Backend
	logger  *slog.Logger
}

// NewTiler creates a new tiler instance
func NewTiler(backend platform.Backend, logger *slog.Logger) *Tiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tiler{
		backend: backend,
		logger:  logger,
	}
}

// Tile recomputes the layout of every window in reg and issues one
// MoveResize per window, master first, then the stack top to bottom. The
// computed geometry is stored back into reg.
//
// A command rejected because the window is already gone is skipped. Any
// other backend error aborts the pass and is returned.
func (t *Tiler) Tile(reg *Registry) error {
	if reg.Len() == 0 {
		t.logger.Debug("tile pass skipped, no windows")
		return nil
	}

	screen, err := t.backend.Screen()
	if err != nil {
		return fmt.Errorf("tile: %w", err)
	}

	tiled := MasterStack(screen, reg.Windows())
	for i, w := range tiled {
		if err := t.backend.MoveResize(w.ID, w.Bounds); err != nil {
			if platform.IsStale(err) {
				t.logger.Debug("skipping destroyed window", "window_id", w.ID, "error", err)
				continue
			}
			return fmt.Errorf("tile window %d: %w", w.ID, err)
		}
		t.logger.Debug("window tiled",
			"window_id", w.ID,
			"slot", i,
			"x", w.Bounds.X,
			"y", w.Bounds.Y,
			"width", w.Bounds.Width,
			"height", w.Bounds.Height)
	}

	reg.Replace(tiled)
	t.logger.Info("tile pass complete",
		"windows", len(tiled),
		"screen_width", screen.Width,
		"screen_height", screen.Height)
	return nil
}
