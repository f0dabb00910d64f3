// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"
	"sync"

	"github.com/1broseidon/stackwm/internal/platform"
)

// CommandKind identifies a recorded backend request.
type CommandKind string

const (
	CommandMoveResize CommandKind = "move_resize"
	CommandRaise      CommandKind = "raise"
	CommandGeometry   CommandKind = "geometry"
)

// Command is one request received by the fake backend.
type Command struct {
	Kind   CommandKind
	Window platform.WindowID
	Bounds platform.Rect
}

// Backend records every request and answers geometry queries from a map.
// Windows listed in Destroyed answer with platform.ErrStaleWindow.
type Backend struct {
	mu sync.Mutex

	ScreenRect platform.Rect
	ScreenErr  error
	Geometries map[platform.WindowID]platform.Rect
	Destroyed  map[platform.WindowID]bool
	// FailWith, when set, is returned by every request.
	FailWith error

	commands []Command
}

var _ platform.Backend = (*Backend)(nil)

// New returns a fake backend with a width x height screen.
func New(width, height int) *Backend {
	return &Backend{
		ScreenRect: platform.Rect{Width: width, Height: height},
		Geometries: make(map[platform.WindowID]platform.Rect),
		Destroyed:  make(map[platform.WindowID]bool),
	}
}

func (b *Backend) Screen() (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return platform.Rect{}, b.FailWith
	}
	if b.ScreenErr != nil {
		return platform.Rect{}, b.ScreenErr
	}
	return b.ScreenRect, nil
}

func (b *Backend) MoveResize(windowID platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failLocked(windowID); err != nil {
		return err
	}
	b.commands = append(b.commands, Command{Kind: CommandMoveResize, Window: windowID, Bounds: bounds})
	b.Geometries[windowID] = bounds
	return nil
}

func (b *Backend) Raise(windowID platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failLocked(windowID); err != nil {
		return err
	}
	b.commands = append(b.commands, Command{Kind: CommandRaise, Window: windowID})
	return nil
}

func (b *Backend) Geometry(windowID platform.WindowID) (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failLocked(windowID); err != nil {
		return platform.Rect{}, err
	}
	b.commands = append(b.commands, Command{Kind: CommandGeometry, Window: windowID})
	return b.Geometries[windowID], nil
}

func (b *Backend) failLocked(windowID platform.WindowID) error {
	if b.FailWith != nil {
		return b.FailWith
	}
	if b.Destroyed[windowID] {
		return fmt.Errorf("window %d: %w", windowID, platform.ErrStaleWindow)
	}
	return nil
}

// Commands returns the requests received since the last Reset.
func (b *Backend) Commands() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Command, len(b.commands))
	copy(out, b.commands)
	return out
}

// MoveResizes returns only the MoveResize requests, in order.
func (b *Backend) MoveResizes() []Command {
	var out []Command
	for _, c := range b.Commands() {
		if c.Kind == CommandMoveResize {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded requests.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = nil
}
