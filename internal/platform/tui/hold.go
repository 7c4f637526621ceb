package tui

import (
	"time"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// DefaultHold covers the gap before a terminal starts auto-repeating a key.
const DefaultHold = 300 * time.Millisecond

// HoldTracker turns key presses into held actions. Terminals report
// presses and auto-repeats but never releases, so an action stays held
// for a fixed number of ticks after its most recent press.
type HoldTracker struct {
	ticks     int
	remaining map[core.Action]int
}

// NewHoldTracker converts a hold duration into ticks at the given rate.
// Any positive duration holds for at least one tick.
func NewHoldTracker(hold time.Duration, tickRate int) *HoldTracker {
	if tickRate <= 0 {
		tickRate = 60
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	// ceil(hold * rate / 1s) in whole nanoseconds
	ticks := int((hold*time.Duration(tickRate) + time.Second - 1) / time.Second)
	return &HoldTracker{
		ticks:     max(ticks, 1),
		remaining: make(map[core.Action]int),
	}
}

// Ticks returns how many ticks a single press is held for.
func (h *HoldTracker) Ticks() int {
	return h.ticks
}

// Press starts or refreshes the hold on an action.
func (h *HoldTracker) Press(a core.Action) {
	h.remaining[a] = h.ticks
}

// Apply sets every held action on the frame and counts the tick.
func (h *HoldTracker) Apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Release drops all holds.
func (h *HoldTracker) Release() {
	clear(h.remaining)
}
