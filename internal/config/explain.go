package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at a YAML path and where it came from.
//
// Supported paths are the top-level keys plus their fields, e.g.
//
//	log_level
//	viewport.width
//	cascade.step
//	login.user
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	size := func(s Size) (any, error) {
		if len(parts) == 1 {
			return s, nil
		}
		switch parts[1] {
		case "width":
			return s.Width, nil
		case "height":
			return s.Height, nil
		}
		return nil, fmt.Errorf("unknown config path %q", path)
	}

	switch parts[0] {
	case "log_level":
		return cfg.LogLevel, nil
	case "viewport_source":
		return string(cfg.ViewportSource), nil
	case "viewport":
		return size(cfg.Viewport)
	case "taskbar_height":
		return cfg.TaskbarHeight, nil
	case "cell":
		return size(cfg.Cell)
	case "fallback_size":
		return size(cfg.FallbackSize)
	case "initial_z_index":
		return cfg.InitialZIndex, nil
	case "viewport_poll_seconds":
		return cfg.ViewportPollSeconds, nil
	case "display":
		return cfg.Display, nil
	case "cascade":
		if len(parts) == 1 {
			return cfg.Cascade, nil
		}
		switch parts[1] {
		case "origin_x":
			return cfg.Cascade.OriginX, nil
		case "origin_y":
			return cfg.Cascade.OriginY, nil
		case "step":
			return cfg.Cascade.Step, nil
		}
	case "palette":
		if len(parts) == 1 {
			return cfg.Palette, nil
		}
		switch parts[1] {
		case "backend":
			return cfg.Palette.Backend, nil
		case "hotkey":
			return cfg.Palette.Hotkey, nil
		}
	case "login":
		if len(parts) == 1 {
			return cfg.Login.User, nil
		}
		if parts[1] == "user" {
			return cfg.Login.User, nil
		}
		if parts[1] == "pin" {
			return "<redacted>", nil
		}
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}
