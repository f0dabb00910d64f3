package x11

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ErrNoSuchWindow wraps BadWindow and BadDrawable replies.
var ErrNoSuchWindow = errors.New("x11: no such window")

// classifyError maps BadWindow/BadDrawable replies onto ErrNoSuchWindow.
// Anything else is returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if isStaleError(err) {
		return fmt.Errorf("%w: %v", ErrNoSuchWindow, err)
	}
	return err
}

func isStaleError(err error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.DrawableError:
		return true
	}
	return false
}

// InstallErrorHandler routes asynchronous X errors from unchecked requests
// to logger. Stale-window errors are expected after a destroy race and are
// logged at debug.
func (c *Connection) InstallErrorHandler(logger *slog.Logger) {
	xevent.ErrorHandlerSet(c.XUtil, func(err xgb.Error) {
		if isStaleError(err) {
			logger.Debug("ignoring request for destroyed window", "error", err)
			return
		}
		logger.Warn("x11 error", "error", err)
	})
}
