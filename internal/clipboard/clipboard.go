// Package clipboard copies the flattened canvas to the system
// clipboard. Two unix backends exist: a cgo backend via
// golang.design/x/clipboard and a pure-Go X11 fallback.
package clipboard

import "errors"

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
