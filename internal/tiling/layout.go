package tiling

import "github.com/1broseidon/stackwm/internal/platform"

// MasterWidthPercent is the share of the screen width given to the master
// window whenever a stack exists.
const MasterWidthPercent = 60

// MasterWidth returns floor(screenWidth * 0.6) using integer arithmetic.
func MasterWidth(screenWidth int) int {
	return screenWidth * MasterWidthPercent / 100
}

// MasterStack computes the master-stack layout for windows on screen.
//
// The master takes the left 60% at full height, or the whole screen when it
// is alone. Every other window shares the right strip, split vertically into
// equal integer heights. The division remainder is left empty at the bottom
// of the strip.
//
// The input is not modified; a new slice in the same order is returned.
func MasterStack(screen platform.Rect, windows []TrackedWindow) []TrackedWindow {
	if len(windows) == 0 {
		return nil
	}

	out := make([]TrackedWindow, len(windows))
	copy(out, windows)

	master := &out[0]
	master.Bounds = platform.Rect{
		X:      screen.X,
		Y:      screen.Y,
		Width:  MasterWidth(screen.Width),
		Height: screen.Height,
	}

	if len(out) == 1 {
		master.Bounds.Width = screen.Width
		return out
	}

	// Stack geometry derives from the master width of this pass.
	stackX := screen.X + master.Bounds.Width
	stackWidth := screen.Width - master.Bounds.Width
	stackCount := len(out) - 1
	stackHeight := screen.Height / stackCount

	for i := 1; i < len(out); i++ {
		out[i].Bounds = platform.Rect{
			X:      stackX,
			Y:      screen.Y + (i-1)*stackHeight,
			Width:  stackWidth,
			Height: stackHeight,
		}
	}

	return out
}

// StackRemainder returns the rows left uncovered at the bottom of the stack
// by integer division, or 0 when there is no stack.
func StackRemainder(screenHeight, numWindows int) int {
	stackCount := numWindows - 1
	if stackCount < 1 {
		return 0
	}
	return screenHeight % stackCount
}
