package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.MoveChord() != "Control-1" {
		t.Fatalf("expected move chord Control-1, got %q", cfg.MoveChord())
	}
	if cfg.ResizeChord() != "Control-3" {
		t.Fatalf("expected resize chord Control-3, got %q", cfg.ResizeChord())
	}
	if cfg.RaiseChord() != "Control-F1" {
		t.Fatalf("expected raise chord Control-F1, got %q", cfg.RaiseChord())
	}
}

func TestDefaultConfig_DisplayFromEnv(t *testing.T) {
	t.Setenv("DISPLAY", ":7")
	if got := DefaultConfig().Display; got != ":7" {
		t.Fatalf("expected display :7, got %q", got)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"unknown modifier", func(c *Config) { c.Modifier = "Hyper" }, "modifier"},
		{"move button out of range", func(c *Config) { c.MoveButton = 0 }, "move_button"},
		{"resize button out of range", func(c *Config) { c.ResizeButton = 9 }, "resize_button"},
		{"same buttons", func(c *Config) { c.ResizeButton = c.MoveButton }, "resize_button"},
		{"empty raise key", func(c *Config) { c.RaiseKey = " " }, "raise_key"},
		{"raise key with modifier", func(c *Config) { c.RaiseKey = "Mod4-F1" }, "raise_key"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
			if !strings.HasPrefix(err.Error(), tt.path+": ") {
				t.Fatalf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}

	cfg := DefaultConfig()
	cfg.LogLevel = "nonsense"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("expected fallback to info")
	}
}

func TestYAML_RoundTripsKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display = ":1"
	cfg.Modifier = "Mod4"

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	out := string(data)
	for _, key := range []string{"modifier: Mod4", "move_button: 1", "resize_button: 3", "raise_key: F1", "ipc: true"} {
		if !strings.Contains(out, key) {
			t.Fatalf("expected %q in output:\n%s", key, out)
		}
	}

	var decoded Config
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != *cfg {
		t.Fatalf("decoded config differs: %+v vs %+v", decoded, *cfg)
	}
}
