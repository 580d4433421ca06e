package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/anshos/internal/config"
	"github.com/1broseidon/anshos/internal/wm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestManagerOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialZIndex = 10
	cfg.Cascade = config.Cascade{OriginX: 5, OriginY: 6, Step: 7}
	cfg.FallbackSize = config.Size{Width: 300, Height: 200}
	cfg.Viewport = config.Size{Width: 1000, Height: 700}
	cfg.TaskbarHeight = 40

	opts := managerOptions(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, 10, opts.InitialZ)
	assert.Equal(t, wm.Point{X: 5, Y: 6}, opts.CascadeOrigin)
	assert.Equal(t, 7, opts.CascadeStep)
	assert.Equal(t, wm.Size{Width: 300, Height: 200}, opts.FallbackSize)
	assert.Equal(t, wm.Rect{Width: 1000, Height: 660}, opts.WorkArea)
}

func TestNewManager_FirstLaunchUsesConfiguredZ(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialZIndex = 100
	mgr, _ := newManager(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := mgr.Launch("calculator")
	require.NoError(t, err)
	w, err := mgr.Window(id)
	require.NoError(t, err)
	assert.Equal(t, 101, w.ZIndex)
}

func TestConfigValidate(t *testing.T) {
	good := writeConfig(t, "log_level: debug\ncascade:\n  step: 30\n")
	out, err := execute(t, "--config", good, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "config: ok")

	bad := writeConfig(t, "log_level: debug\nwallpaper: neon\n")
	_, err = execute(t, "--config", bad, "config", "validate")
	assert.Error(t, err)
}

func TestConfigExplain(t *testing.T) {
	path := writeConfig(t, "cascade:\n  step: 30\n")

	out, err := execute(t, "--config", path, "config", "explain", "cascade.step")
	require.NoError(t, err)
	assert.Contains(t, out, "source: file:"+path+":2:")
	assert.Contains(t, out, "30")

	out, err = execute(t, "--config", path, "config", "explain", "taskbar_height")
	require.NoError(t, err)
	assert.Contains(t, out, "source: default")
	assert.Contains(t, out, "48")
}

func TestConfigPrintDefaults(t *testing.T) {
	out, err := execute(t, "config", "print", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "viewport_source: terminal")
	assert.Contains(t, out, "taskbar_height: 48")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anshos", "config.yaml")

	_, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err, "existing file is not overwritten without --force")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestPrefsCommands(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	_, err := execute(t, "prefs", "set", "anshos-wallpaper", "Neon City")
	require.NoError(t, err)

	out, err := execute(t, "prefs", "get", "anshos-wallpaper")
	require.NoError(t, err)
	assert.Equal(t, "Neon City\n", out)

	out, err = execute(t, "prefs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "anshos-wallpaper = Neon City")

	_, err = execute(t, "prefs", "delete", "anshos-wallpaper")
	require.NoError(t, err)
	_, err = execute(t, "prefs", "get", "anshos-wallpaper")
	assert.Error(t, err)
}

func TestClientCommandsWithoutDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, err := execute(t, "launch", "calculator")
	assert.Error(t, err)

	_, err = execute(t, "list")
	assert.Error(t, err)
}

func TestLaunchRejectsUnknownApp(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	_, err := execute(t, "launch", "minesweeper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minesweeper")
}

func TestMoveRejectsBadCoordinates(t *testing.T) {
	_, err := execute(t, "move", "w1", "left", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x")
}

func TestAppsWorksOffline(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	out, err := execute(t, "apps")
	require.NoError(t, err)
	for _, name := range []string{"calculator", "Task Master", "snake", "Settings"} {
		assert.True(t, strings.Contains(out, name), "missing %q in %s", name, out)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPaletteRejectsUnknownBackend(t *testing.T) {
	_, err := execute(t, "palette", "--backend", "zenity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown palette backend")
}

func TestConfigValidateRejectsBadPaletteBackend(t *testing.T) {
	path := writeConfig(t, "palette:\n  backend: zenity\n")
	_, err := execute(t, "--config", path, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette.backend")
}
