package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFlipLeft) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionFlipLeft)
	f.Set(ActionRestart)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionFlipLeft) || f.Has(ActionRestart) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionFlipLeft) || !clone.Has(ActionRestart) || clone.Has(ActionFlipRight) {
		t.Errorf("clone = %v", clone.Actions)
	}
}

func TestActionString(t *testing.T) {
	if ActionFlipRight.String() != "FlipRight" {
		t.Errorf("String() = %q", ActionFlipRight.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action name")
	}
	if EventBallLost.String() != "ball_lost" || EventKind(42).String() != "unknown" {
		t.Error("event kind names")
	}
}
