package tiling

import (
	"testing"

	"github.com/1broseidon/stackwm/internal/platform"
)

func ids(windows []TrackedWindow) []platform.WindowID {
	out := make([]platform.WindowID, len(windows))
	for i, w := range windows {
		out[i] = w.ID
	}
	return out
}

func equalIDs(a, b []platform.WindowID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistry_InsertAppendsWithZeroGeometry(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(1)
	reg.Insert(2)

	got := reg.Windows()
	if !equalIDs(ids(got), []platform.WindowID{1, 2}) {
		t.Fatalf("unexpected order: %v", ids(got))
	}
	for _, w := range got {
		if w.Bounds != (platform.Rect{}) {
			t.Fatalf("expected zero geometry for %d, got %+v", w.ID, w.Bounds)
		}
	}
}

func TestRegistry_RemovePreservesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []platform.WindowID{1, 2, 3, 4} {
		reg.Insert(id)
	}

	if n := reg.Remove(2); n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}
	if got := ids(reg.Windows()); !equalIDs(got, []platform.WindowID{1, 3, 4}) {
		t.Fatalf("unexpected order after remove: %v", got)
	}

	if n := reg.Remove(1); n != 1 {
		t.Fatalf("expected master removal, got %d", n)
	}
	if got := ids(reg.Windows()); !equalIDs(got, []platform.WindowID{3, 4}) {
		t.Fatalf("expected 3 to become master, got %v", got)
	}
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(1)

	if n := reg.Remove(99); n != 0 {
		t.Fatalf("expected no removal, got %d", n)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", reg.Len())
	}
}

func TestRegistry_DuplicateInsertsAreAllRemoved(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(5)
	reg.Insert(6)
	reg.Insert(5)

	if reg.Len() != 3 {
		t.Fatalf("expected duplicate entry to be kept, got %d windows", reg.Len())
	}
	if n := reg.Remove(5); n != 2 {
		t.Fatalf("expected both entries removed, got %d", n)
	}
	if got := ids(reg.Windows()); !equalIDs(got, []platform.WindowID{6}) {
		t.Fatalf("unexpected survivors: %v", got)
	}
	if reg.Contains(5) {
		t.Fatalf("expected 5 to be gone")
	}
}

func TestRegistry_WindowsReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(1)

	got := reg.Windows()
	got[0].ID = 42

	if !reg.Contains(1) || reg.Contains(42) {
		t.Fatalf("registry aliased its backing slice")
	}
}
