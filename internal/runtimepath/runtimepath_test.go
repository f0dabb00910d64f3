package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/stackwm-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPathFor_IncludesDisplay(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	tests := map[string]string{
		"":             "stackwm.sock",
		":0":           "stackwm-_0.sock",
		":1.0":         "stackwm-_1.0.sock",
		"localhost:10": "stackwm-localhost_10.sock",
	}
	for display, want := range tests {
		got, err := SocketPathFor(display)
		if err != nil {
			t.Fatalf("SocketPathFor(%q) error: %v", display, err)
		}
		if got != filepath.Join(td, want) {
			t.Fatalf("SocketPathFor(%q) = %q, want %q", display, got, filepath.Join(td, want))
		}
	}
}
