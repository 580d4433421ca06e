// Package hotkeys grabs global X11 key sequences for the daemon.
package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/anshos/internal/platform"
)

// ErrNoDisplay is returned when the viewport has no X11 connection to grab
// keys on.
var ErrNoDisplay = errors.New("hotkeys need the x11 viewport source")

// x11Accessor is implemented by viewports backed by an X connection.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler dispatches global key presses to callbacks.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var keybindOnce sync.Once

// NewHandler binds to the X connection behind viewport.
func NewHandler(viewport platform.Viewport, logger *slog.Logger) (*Handler, error) {
	accessor, ok := viewport.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, ErrNoDisplay
	}
	if logger == nil {
		logger = slog.Default()
	}
	xu := accessor.XUtil()
	keybindOnce.Do(func() {
		keybind.Initialize(xu)
		xevent.IgnoreMods = ignoreMods(xu)
	})
	return &Handler{xu: xu, root: accessor.RootWindow(), logger: logger}, nil
}

// Bind calls fn whenever keySequence (e.g. "Mod4-space") is pressed.
func (h *Handler) Bind(keySequence string, fn func()) error {
	err := keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
		h.logger.Debug("hotkey pressed", "keys", keySequence)
		fn()
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", keySequence, err)
	}
	return nil
}

// Run processes X events until ctx is cancelled. The event loop notices
// the quit request on the next event it reads.
func (h *Handler) Run(ctx context.Context) {
	go xevent.Main(h.xu)
	<-ctx.Done()
	xevent.Quit(h.xu)
}

// ignoreMods lists the lock modifier combinations that must not stop a
// binding from matching: CapsLock, NumLock and ScrollLock in any mix.
func ignoreMods(xu *xgbutil.XUtil) []uint16 {
	locks := []uint16{uint16(xproto.ModMaskLock)}
	for _, sym := range []string{"Num_Lock", "Scroll_Lock"} {
		if mask := modMaskFor(xu, sym); mask != 0 && !containsMask(locks, mask) {
			locks = append(locks, mask)
		}
	}

	masks := make([]uint16, 0, 1<<len(locks))
	for subset := 0; subset < 1<<len(locks); subset++ {
		var mask uint16
		for bit, lock := range locks {
			if subset&(1<<bit) != 0 {
				mask |= lock
			}
		}
		masks = append(masks, mask)
	}
	return masks
}

func modMaskFor(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, code := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, code); mask != 0 {
			return mask
		}
	}
	return 0
}

func containsMask(masks []uint16, m uint16) bool {
	for _, v := range masks {
		if v == m {
			return true
		}
	}
	return false
}
