package physics

import (
	"fmt"
	"time"
)

// TimestepMode selects how host ticks are turned into physics frames.
type TimestepMode string

const (
	// TimestepFixed accumulates wall time and runs whole frames of FrameTime.
	TimestepFixed TimestepMode = "fixed"
	// TimestepMeasured runs one frame per tick with the measured tick duration.
	TimestepMeasured TimestepMode = "measured"
)

// ParseTimestepMode validates a mode name. Empty means fixed.
func ParseTimestepMode(s string) (TimestepMode, error) {
	switch TimestepMode(s) {
	case "", TimestepFixed:
		return TimestepFixed, nil
	case TimestepMeasured:
		return TimestepMeasured, nil
	default:
		return "", fmt.Errorf("unknown timestep mode %q (want fixed or measured)", s)
	}
}

// maxFramesPerTick bounds catch-up after a stall; surplus time is dropped.
const maxFramesPerTick = 5

// FrameClock converts host ticks into the dt values to pass to Step.
type FrameClock struct {
	mode    TimestepMode
	frame   time.Duration
	acc     time.Duration
	last    time.Time
	started bool
}

// NewFrameClock creates a clock for the given mode and reference frame.
func NewFrameClock(mode TimestepMode, frame time.Duration) *FrameClock {
	if frame <= 0 {
		frame = DefaultParams().FrameTime
	}
	return &FrameClock{mode: mode, frame: frame}
}

// Mode returns the clock's timestep mode.
func (c *FrameClock) Mode() TimestepMode {
	return c.mode
}

// Reset forgets the previous tick so the next one starts fresh.
func (c *FrameClock) Reset() {
	c.acc = 0
	c.started = false
}

// Tick records a host tick at now and returns the frames to simulate.
// The first tick after a reset always yields a single reference frame.
func (c *FrameClock) Tick(now time.Time) []time.Duration {
	if !c.started {
		c.started = true
		c.last = now
		return []time.Duration{c.frame}
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}

	if c.mode == TimestepMeasured {
		return []time.Duration{elapsed}
	}

	c.acc += elapsed
	n := int(c.acc / c.frame)
	c.acc -= time.Duration(n) * c.frame
	if n > maxFramesPerTick {
		n = maxFramesPerTick
		c.acc = 0
	}

	frames := make([]time.Duration, n)
	for i := range frames {
		frames[i] = c.frame
	}
	return frames
}
