package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// EventSink consumes translated display events. A returned error is fatal.
type EventSink interface {
	HandleEvent(ev platform.Event) error
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler grabs the configured chords on the root window and forwards
// every root event the window manager cares about to an EventSink.
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	sink    EventSink
	onFatal func(error)
	logger  *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new input handler. onFatal is called from the event
// loop when the sink reports an unrecoverable error.
func NewHandler(backend platform.Backend, sink EventSink, onFatal func(error), logger *slog.Logger) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("backend does not expose an X11 connection")
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:      xu,
		root:    accessor.RootWindow(),
		sink:    sink,
		onFatal: onFatal,
		logger:  logger,
	}, nil
}

// ResolveBindings turns the configured chords into modifier masks, keycodes
// and button numbers for the current keyboard mapping.
func (h *Handler) ResolveBindings(cfg *config.Config) (daemon.Bindings, error) {
	raiseMods, keycodes, err := keybind.ParseString(h.xu, cfg.RaiseChord())
	if err != nil {
		return daemon.Bindings{}, fmt.Errorf("parse raise key %q: %w", cfg.RaiseChord(), err)
	}
	if len(keycodes) == 0 {
		return daemon.Bindings{}, fmt.Errorf("raise key %q has no keycode in the current keymap", cfg.RaiseKey)
	}

	moveMods, moveButton, err := mousebind.ParseString(h.xu, cfg.MoveChord())
	if err != nil {
		return daemon.Bindings{}, fmt.Errorf("parse move chord %q: %w", cfg.MoveChord(), err)
	}
	resizeMods, resizeButton, err := mousebind.ParseString(h.xu, cfg.ResizeChord())
	if err != nil {
		return daemon.Bindings{}, fmt.Errorf("parse resize chord %q: %w", cfg.ResizeChord(), err)
	}
	if moveMods != resizeMods {
		return daemon.Bindings{}, fmt.Errorf("move and resize chords must share a modifier")
	}

	b := daemon.Bindings{
		DragModifiers:  moveMods,
		MoveButton:     uint8(moveButton),
		ResizeButton:   uint8(resizeButton),
		RaiseModifiers: raiseMods,
	}
	for _, kc := range keycodes {
		b.RaiseKeycodes = append(b.RaiseKeycodes, uint8(kc))
	}
	return b, nil
}

// Register grabs the raise key and both drag buttons on the root window and
// connects the root event callbacks. It must run before the event loop.
func (h *Handler) Register(cfg *config.Config, b daemon.Bindings) error {
	if err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.dispatch(platform.KeyPress{
			Modifiers: ev.State,
			Keycode:   uint8(ev.Detail),
			Target:    platform.WindowID(ev.Child),
		})
	}).Connect(h.xu, h.root, cfg.RaiseChord(), true); err != nil {
		return fmt.Errorf("failed to register raise key %q: %w", cfg.RaiseChord(), err)
	}

	for _, button := range []uint8{b.MoveButton, b.ResizeButton} {
		if err := h.grabButton(b.DragModifiers, button); err != nil {
			return err
		}
	}

	h.connectEvents()

	h.logger.Info("input bindings registered",
		"raise", cfg.RaiseChord(),
		"move", cfg.MoveChord(),
		"resize", cfg.ResizeChord())
	return nil
}

// connectEvents attaches the callbacks that turn root X events into
// platform events. It issues no requests.
func (h *Handler) connectEvents() {
	xevent.CreateNotifyFun(h.windowCreated).Connect(h.xu, h.root)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		h.dispatch(platform.ButtonPress{
			Modifiers: ev.State,
			Button:    uint8(ev.Detail),
			Target:    platform.WindowID(ev.Child),
			RootX:     int(ev.RootX),
			RootY:     int(ev.RootY),
		})
	}).Connect(h.xu, h.root)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		h.dispatch(platform.Motion{RootX: int(ev.RootX), RootY: int(ev.RootY)})
	}).Connect(h.xu, h.root)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		h.dispatch(platform.ButtonRelease{})
	}).Connect(h.xu, h.root)
}

// windowCreated registers a DestroyNotify callback on the new window before
// forwarding the create. xevent routes DestroyNotify by the destroyed
// window, not by the root that selected SubstructureNotify.
func (h *Handler) windowCreated(xu *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
	// A repeated create for the same id keeps a single destroy callback
	xevent.Detach(xu, ev.Window)
	xevent.DestroyNotifyFun(h.windowDestroyed).Connect(xu, ev.Window)

	h.dispatch(platform.WindowCreated{ID: platform.WindowID(ev.Window)})
}

func (h *Handler) windowDestroyed(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
	xevent.Detach(xu, ev.Window)
	h.dispatch(platform.WindowDestroyed{ID: platform.WindowID(ev.Window)})
}

// grabButton grabs mods+button on the root for every ignored lock-modifier
// combination. Motion is included in the mask so the drag receives
// MotionNotify while the button is held.
func (h *Handler) grabButton(mods uint16, button uint8) error {
	const mask = xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion

	for _, ignore := range xevent.IgnoreMods {
		err := xproto.GrabButtonChecked(
			h.xu.Conn(), true, h.root, mask,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone,
			button, mods|ignore,
		).Check()
		if err != nil {
			return fmt.Errorf("failed to grab button %d: %w", button, err)
		}
	}
	return nil
}

func (h *Handler) dispatch(ev platform.Event) {
	if err := h.sink.HandleEvent(ev); err != nil {
		h.logger.Error("fatal error handling event", "event", platform.EventName(ev), "error", err)
		if h.onFatal != nil {
			h.onFatal(err)
		}
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
