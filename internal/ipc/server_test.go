package ipc

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/movemode"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/1broseidon/stackwm/internal/tiling"
)

type fakeController struct {
	mu        sync.Mutex
	snap      daemon.Snapshot
	retileErr error
	retiles   int
}

func (f *fakeController) Snapshot() daemon.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeController) Retile() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retiles++
	return f.retileErr
}

func startServer(t *testing.T, ctrl Controller) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stackwm.sock")
	srv := NewServerAt(path, ctrl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(path)
}

func TestServer_GetStatus(t *testing.T) {
	ctrl := &fakeController{snap: daemon.Snapshot{
		Windows: []tiling.TrackedWindow{
			{ID: 1, Bounds: platform.Rect{Width: 1152, Height: 1080}},
			{ID: 2, Bounds: platform.Rect{X: 1152, Width: 768, Height: 1080}},
		},
		Drag:   movemode.Begin(2, movemode.GestureResize, 0, 0, platform.Rect{}),
		Uptime: 90 * time.Second,
	}}
	client := startServer(t, ctrl)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.DaemonRunning || status.WindowCount != 2 || status.UptimeSeconds != 90 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if !status.Windows[0].Master || status.Windows[1].Master {
		t.Fatalf("expected only the first window to be master: %+v", status.Windows)
	}
	if status.Windows[1].X != 1152 || status.Windows[1].Width != 768 {
		t.Fatalf("unexpected stack geometry: %+v", status.Windows[1])
	}
	if status.Drag == nil || status.Drag.WindowID != 2 || status.Drag.Gesture != "resize" {
		t.Fatalf("unexpected drag: %+v", status.Drag)
	}
}

func TestServer_StatusIdleOmitsDrag(t *testing.T) {
	client := startServer(t, &fakeController{})

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Drag != nil || status.WindowCount != 0 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestServer_Retile(t *testing.T) {
	ctrl := &fakeController{}
	client := startServer(t, ctrl)

	if err := client.Retile(); err != nil {
		t.Fatalf("retile: %v", err)
	}
	ctrl.mu.Lock()
	retiles := ctrl.retiles
	ctrl.mu.Unlock()
	if retiles != 1 {
		t.Fatalf("expected 1 retile, got %d", retiles)
	}

	ctrl.mu.Lock()
	ctrl.retileErr = errors.New("display gone")
	ctrl.mu.Unlock()
	err := client.Retile()
	if err == nil || !strings.Contains(err.Error(), "display gone") {
		t.Fatalf("expected daemon error, got %v", err)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	client := startServer(t, &fakeController{})

	_, err := client.sendRequest(&Request{Command: "BOGUS"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestServer_ReplacesLeftoverSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackwm.sock")
	// A daemon killed by a lost display connection leaves its socket behind
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("write leftover: %v", err)
	}

	srv := NewServerAt(path, &fakeController{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := srv.Start(); err != nil {
		t.Fatalf("start over leftover socket: %v", err)
	}
	t.Cleanup(srv.Stop)

	if _, err := NewClientAt(path).GetStatus(); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := client.GetStatus(); err == nil {
		t.Fatalf("expected connection error")
	}
}
