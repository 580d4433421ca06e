package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ViewportSource selects where the desktop size comes from.
type ViewportSource string

const (
	ViewportStatic   ViewportSource = "static"   // Fixed width × height from config.
	ViewportTerminal ViewportSource = "terminal" // Controlling terminal size × cell size.
	ViewportX11      ViewportSource = "x11"      // Root window work area.
)

// Size is a width/height pair in layout units.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Cascade controls where new windows open.
type Cascade struct {
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	Step    int `yaml:"step"` // Offset between successive windows on both axes, > 0.
}

// Login holds the lock screen credentials. An empty PIN accepts any PIN.
type Login struct {
	User string `yaml:"user"`
	PIN  string `yaml:"pin,omitempty"`
}

// Palette configures the external launcher menu.
type Palette struct {
	Backend string `yaml:"backend"`          // auto, rofi, fuzzel, wofi or dmenu.
	Hotkey  string `yaml:"hotkey,omitempty"` // Global X11 key that opens the launcher.
}

// Config holds the application configuration.
type Config struct {
	LogLevel            string         `yaml:"log_level"`
	ViewportSource      ViewportSource `yaml:"viewport_source"`
	Viewport            Size           `yaml:"viewport"`
	TaskbarHeight       int            `yaml:"taskbar_height"`
	Cell                Size           `yaml:"cell"` // Layout units per terminal cell.
	Cascade             Cascade        `yaml:"cascade"`
	FallbackSize        Size           `yaml:"fallback_size"`
	InitialZIndex       int            `yaml:"initial_z_index"`
	Login               Login          `yaml:"login"`
	ViewportPollSeconds int            `yaml:"viewport_poll_seconds"`
	Display             string         `yaml:"display,omitempty"`
	Palette             Palette        `yaml:"palette"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		ViewportSource:      ViewportTerminal,
		Viewport:            Size{Width: 1280, Height: 800},
		TaskbarHeight:       48,
		Cell:                Size{Width: 10, Height: 20},
		Cascade:             Cascade{OriginX: 100, OriginY: 50, Step: 20},
		FallbackSize:        Size{Width: 400, Height: 300},
		InitialZIndex:       0,
		Login:               Login{User: "user"},
		ViewportPollSeconds: 2,
		Palette:             Palette{Backend: "auto", Hotkey: "Mod4-space"},
	}
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to path, or to the standard location when
// path is empty. Comments in an existing file are not preserved.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.ViewportSource {
	case ViewportStatic, ViewportTerminal, ViewportX11:
	default:
		return &ValidationError{Path: "viewport_source", Err: fmt.Errorf("viewport_source must be one of: static, terminal, x11")}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("viewport width and height must be > 0")}
	}
	if c.TaskbarHeight < 0 {
		return &ValidationError{Path: "taskbar_height", Err: fmt.Errorf("taskbar_height must be >= 0")}
	}
	if c.TaskbarHeight >= c.Viewport.Height {
		return &ValidationError{Path: "taskbar_height", Err: fmt.Errorf("taskbar_height must be smaller than viewport.height")}
	}
	if c.Cell.Width <= 0 || c.Cell.Height <= 0 {
		return &ValidationError{Path: "cell", Err: fmt.Errorf("cell width and height must be > 0")}
	}
	if c.Cascade.Step <= 0 {
		return &ValidationError{Path: "cascade.step", Err: fmt.Errorf("step must be > 0")}
	}
	if c.FallbackSize.Width <= 0 || c.FallbackSize.Height <= 0 {
		return &ValidationError{Path: "fallback_size", Err: fmt.Errorf("fallback_size width and height must be > 0")}
	}
	if c.InitialZIndex < 0 {
		return &ValidationError{Path: "initial_z_index", Err: fmt.Errorf("initial_z_index must be >= 0")}
	}
	if c.ViewportPollSeconds < 0 {
		return &ValidationError{Path: "viewport_poll_seconds", Err: fmt.Errorf("viewport_poll_seconds must be >= 0")}
	}
	switch strings.ToLower(c.Palette.Backend) {
	case "", "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "palette.backend", Err: fmt.Errorf("backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}
	return nil
}

// ValidationError reports an invalid config value and, when known, where in
// the file it was set.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
