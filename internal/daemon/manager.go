package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/stackwm/internal/movemode"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/tiling"
)

// Bindings are the resolved input chords the manager reacts to. Modifier
// masks are X modifier bits; an event matches when all of them are held.
type Bindings struct {
	DragModifiers  uint16
	MoveButton     uint8
	ResizeButton   uint8
	RaiseModifiers uint16
	RaiseKeycodes  []uint8
}

// Manager owns the window registry and the drag slot and turns display
// events into registry mutations, tile passes and drag updates.
//
// All state is guarded by mu. The X event loop is the only caller of
// HandleEvent; Snapshot and Retile may be called from IPC goroutines.
type Manager struct {
	mu       sync.Mutex
	backend  platform.Backend
	tiler    *tiling.Tiler
	registry *tiling.Registry
	bindings Bindings
	drag     *movemode.Drag
	started  time.Time
	logger   *slog.Logger
}

// NewManager creates a manager with an empty registry and no active drag.
func NewManager(backend platform.Backend, bindings Bindings, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend:  backend,
		tiler:    tiling.NewTiler(backend, logger),
		registry: tiling.NewRegistry(),
		bindings: bindings,
		started:  time.Now(),
		logger:   logger,
	}
}

// HandleEvent processes one event to completion. A returned error is fatal:
// the display connection can no longer be trusted. Stale-window errors are
// absorbed here and never returned.
func (m *Manager) HandleEvent(ev platform.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	switch e := ev.(type) {
	case platform.WindowCreated:
		err = m.windowCreated(e)
	case platform.WindowDestroyed:
		err = m.windowDestroyed(e)
	case platform.KeyPress:
		err = m.keyPress(e)
	case platform.ButtonPress:
		err = m.buttonPress(e)
	case platform.Motion:
		err = m.motion(e)
	case platform.ButtonRelease:
		m.buttonRelease()
	default:
		m.logger.Debug("ignoring event", "event", platform.EventName(ev))
	}

	if err != nil && platform.IsStale(err) {
		m.logger.Debug("request for destroyed window ignored",
			"event", platform.EventName(ev),
			"error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", platform.EventName(ev), err)
	}
	return nil
}

func (m *Manager) windowCreated(e platform.WindowCreated) error {
	m.registry.Insert(e.ID)
	m.logger.Info("window created", "window_id", e.ID, "windows", m.registry.Len())
	return m.tiler.Tile(m.registry)
}

func (m *Manager) windowDestroyed(e platform.WindowDestroyed) error {
	removed := m.registry.Remove(e.ID)
	if m.drag.Targets(e.ID) {
		m.logger.Info("dragged window destroyed, ending drag", "window_id", e.ID)
		m.drag = nil
	}
	if removed == 0 {
		m.logger.Debug("destroy for untracked window", "window_id", e.ID)
	} else {
		m.logger.Info("window destroyed", "window_id", e.ID, "windows", m.registry.Len())
	}
	return m.tiler.Tile(m.registry)
}

func (m *Manager) keyPress(e platform.KeyPress) error {
	if !m.isRaiseChord(e) {
		return nil
	}
	if e.Target == 0 {
		m.logger.Debug("raise key pressed over root, nothing to raise")
		return nil
	}
	m.logger.Debug("raising window", "window_id", e.Target)
	return m.backend.Raise(e.Target)
}

func (m *Manager) isRaiseChord(e platform.KeyPress) bool {
	if e.Modifiers&m.bindings.RaiseModifiers != m.bindings.RaiseModifiers {
		return false
	}
	for _, kc := range m.bindings.RaiseKeycodes {
		if kc == e.Keycode {
			return true
		}
	}
	return false
}

func (m *Manager) buttonPress(e platform.ButtonPress) error {
	if e.Modifiers&m.bindings.DragModifiers != m.bindings.DragModifiers {
		return nil
	}

	var gesture movemode.Gesture
	switch e.Button {
	case m.bindings.MoveButton:
		gesture = movemode.GestureMove
	case m.bindings.ResizeButton:
		gesture = movemode.GestureResize
	default:
		// Only the move and resize buttons start a drag.
		m.logger.Debug("ignoring unbound button", "button", e.Button)
		return nil
	}

	if e.Target == 0 {
		return nil
	}

	geom, err := m.backend.Geometry(e.Target)
	if err != nil {
		// The press ends any earlier drag even when the target is gone.
		m.drag = nil
		return err
	}

	if m.drag != nil {
		m.logger.Debug("new press replaces active drag", "previous_window", m.drag.Window)
	}
	m.drag = movemode.Begin(e.Target, gesture, e.RootX, e.RootY, geom)
	m.logger.Debug("drag started",
		"window_id", e.Target,
		"gesture", gesture.String(),
		"root_x", e.RootX,
		"root_y", e.RootY)
	return nil
}

func (m *Manager) motion(e platform.Motion) error {
	if m.drag == nil {
		return nil
	}
	return m.backend.MoveResize(m.drag.Window, m.drag.Apply(e.RootX, e.RootY))
}

func (m *Manager) buttonRelease() {
	if m.drag != nil {
		m.logger.Debug("drag ended", "window_id", m.drag.Window, "gesture", m.drag.Gesture.String())
	}
	m.drag = nil
}

// Retile forces a full tile pass outside of the event stream.
func (m *Manager) Retile() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.tiler.Tile(m.registry)
	if err != nil && platform.IsStale(err) {
		return nil
	}
	return err
}

// Snapshot is a point-in-time copy of the manager state.
type Snapshot struct {
	Windows []tiling.TrackedWindow
	// Drag is a copy of the active drag, or nil when idle
	Drag   *movemode.Drag
	Uptime time.Duration
}

// Dragging reports whether a drag was active when the snapshot was taken.
func (s Snapshot) Dragging() bool {
	return s.Drag != nil
}

// Snapshot returns a copy of the registry and drag state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Windows: m.registry.Windows(),
		Uptime:  time.Since(m.started),
	}
	if m.drag != nil {
		d := *m.drag
		snap.Drag = &d
	}
	return snap
}
