package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Modifier names accepted for the drag and raise chords, in the spelling
// xgbutil's keybind and mousebind parsers expect.
var validModifiers = []string{"Shift", "Lock", "Control", "Mod1", "Mod2", "Mod3", "Mod4", "Mod5"}

// Config holds the window manager settings. There is no config file; values
// come from DefaultConfig and command-line overrides.
type Config struct {
	Display      string `yaml:"display"`       // X display, empty = $DISPLAY
	Modifier     string `yaml:"modifier"`      // Held for drags and the raise key
	MoveButton   int    `yaml:"move_button"`   // Pointer button that moves
	ResizeButton int    `yaml:"resize_button"` // Pointer button that resizes
	RaiseKey     string `yaml:"raise_key"`     // Key that raises the window under the pointer
	LogLevel     string `yaml:"log_level"`
	IPC          bool   `yaml:"ipc"` // Serve status requests on the runtime socket
}

// DefaultConfig returns the built-in settings: Control+F1 raises,
// Control+button 1 moves and Control+button 3 resizes.
func DefaultConfig() *Config {
	return &Config{
		Display:      os.Getenv("DISPLAY"),
		Modifier:     "Control",
		MoveButton:   1,
		ResizeButton: 3,
		RaiseKey:     "F1",
		LogLevel:     "info",
		IPC:          true,
	}
}

// ValidationError reports an invalid setting.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !isValidModifier(c.Modifier) {
		return &ValidationError{Path: "modifier", Err: fmt.Errorf("modifier must be one of: %s", strings.Join(validModifiers, ", "))}
	}
	if c.MoveButton < 1 || c.MoveButton > 5 {
		return &ValidationError{Path: "move_button", Err: fmt.Errorf("move_button must be between 1 and 5")}
	}
	if c.ResizeButton < 1 || c.ResizeButton > 5 {
		return &ValidationError{Path: "resize_button", Err: fmt.Errorf("resize_button must be between 1 and 5")}
	}
	if c.MoveButton == c.ResizeButton {
		return &ValidationError{Path: "resize_button", Err: fmt.Errorf("resize_button must differ from move_button")}
	}
	if strings.TrimSpace(c.RaiseKey) == "" {
		return &ValidationError{Path: "raise_key", Err: fmt.Errorf("raise_key is required")}
	}
	if strings.Contains(c.RaiseKey, "-") {
		return &ValidationError{Path: "raise_key", Err: fmt.Errorf("raise_key must be a single key name; the modifier is set separately")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// MoveChord returns the mousebind chord for the move gesture, e.g. "Control-1".
func (c *Config) MoveChord() string {
	return fmt.Sprintf("%s-%d", c.Modifier, c.MoveButton)
}

// ResizeChord returns the mousebind chord for the resize gesture.
func (c *Config) ResizeChord() string {
	return fmt.Sprintf("%s-%d", c.Modifier, c.ResizeButton)
}

// RaiseChord returns the keybind chord for raising a window, e.g. "Control-F1".
func (c *Config) RaiseChord() string {
	return c.Modifier + "-" + c.RaiseKey
}

// SlogLevel returns the configured level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel maps debug, info, warn/warning and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
}

// YAML renders the configuration for `stackwm config print`.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

func isValidModifier(m string) bool {
	for _, v := range validModifiers {
		if m == v {
			return true
		}
	}
	return false
}
