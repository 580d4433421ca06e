package hotkeys

import (
	"errors"
	"testing"

	"github.com/1broseidon/anshos/internal/platform"
)

func TestNewHandler_RequiresX11Viewport(t *testing.T) {
	_, err := NewHandler(platform.Static{Width: 800, Height: 600}, nil)
	if !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
}

func TestContainsMask(t *testing.T) {
	if !containsMask([]uint16{2, 16}, 16) {
		t.Fatal("expected 16 to be found")
	}
	if containsMask(nil, 2) {
		t.Fatal("empty list contains nothing")
	}
}
