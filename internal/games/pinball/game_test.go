package pinball

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/table"
)

// newTestGame returns a reset game driven by a clock that advances
// exactly one reference frame per tick.
func newTestGame(g *Game) *Game {
	t0 := time.Unix(0, 0)
	g.SetClock(func() time.Time {
		t0 = t0.Add(16 * time.Millisecond)
		return t0
	})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func near(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestGameDeterminism(t *testing.T) {
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch {
		case i%40 < 10:
			inputSequence[i].Set(core.ActionFlipLeft)
		case i%40 >= 20 && i%40 < 30:
			inputSequence[i].Set(core.ActionFlipRight)
		}
	}

	run := func() Snapshot {
		g := newTestGame(New())
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.BallPos != snap2.BallPos {
		t.Errorf("Determinism failed: ball positions differ. Run1=%v, Run2=%v", snap1.BallPos, snap2.BallPos)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(New())

	if g.state != StatePlaying {
		t.Errorf("Expected state %q after reset, got %q", StatePlaying, g.state)
	}
	st := g.State()
	if st.Score != 0 || st.Balls != 3 || st.GameOver || st.Paused {
		t.Errorf("Unexpected state after reset: %+v", st)
	}
	if g.sim.Ball.Position != table.DefaultLayout().Spawn {
		t.Errorf("Ball at %v, want spawn %v", g.sim.Ball.Position, table.DefaultLayout().Spawn)
	}
	if g.sim.Frame != 0 {
		t.Errorf("Frame = %d, want 0", g.sim.Frame)
	}
}

func TestOneFramePerTick(t *testing.T) {
	g := newTestGame(New())

	for i := 1; i <= 5; i++ {
		res := g.Step(input())
		if res.Frames != 1 {
			t.Fatalf("tick %d ran %d frames, want 1", i, res.Frames)
		}
	}
	if g.sim.Frame != 5 {
		t.Errorf("Frame = %d, want 5", g.sim.Frame)
	}
}

func TestFlipperHoldAndRelease(t *testing.T) {
	g := newTestGame(New())
	arc := math.Pi / 4

	for range 10 {
		g.Step(input(core.ActionFlipLeft))
	}
	if math.Abs(g.sim.Left.Angle+arc) > 1e-9 {
		t.Errorf("Left angle = %v, want %v", g.sim.Left.Angle, -arc)
	}
	if g.sim.Right.Angle != 0 {
		t.Errorf("Right angle = %v, want 0", g.sim.Right.Angle)
	}

	for range 10 {
		g.Step(input(core.ActionFlipRight))
	}
	if g.sim.Left.Angle != 0 {
		t.Errorf("Left angle after release = %v, want 0", g.sim.Left.Angle)
	}
	if math.Abs(g.sim.Right.Angle-arc) > 1e-9 {
		t.Errorf("Right angle = %v, want %v", g.sim.Right.Angle, arc)
	}
}

func TestDrainLosesBall(t *testing.T) {
	g := newTestGame(New())
	g.Step(input())

	g.sim.Ball.Position = mgl64.Vec3{0, 5, 20}
	res := g.Step(input())

	if !hasEvent(res.Events, core.EventBallLost) {
		t.Fatalf("Expected ball_lost event, got %v", res.Events)
	}
	if res.State.Balls != 2 {
		t.Errorf("Balls = %d, want 2", res.State.Balls)
	}
	if g.state != StateServe {
		t.Errorf("State = %q, want %q", g.state, StateServe)
	}
	if g.sim.Ball.Position != g.sim.Spawn {
		t.Errorf("Ball not back at spawn: %v", g.sim.Ball.Position)
	}

	frame := g.sim.Frame
	for range 59 {
		g.Step(input())
	}
	if g.state != StateServe || g.sim.Frame != frame {
		t.Errorf("Ball moved during serve delay: state=%q frame=%d", g.state, g.sim.Frame)
	}
	g.Step(input())
	if g.state != StatePlaying {
		t.Errorf("State after serve delay = %q, want %q", g.state, StatePlaying)
	}
}

func TestKillPlaneLosesBall(t *testing.T) {
	g := newTestGame(New())

	g.sim.Ball.Position = mgl64.Vec3{0, -50, 0}
	res := g.Step(input())
	if !hasEvent(res.Events, core.EventBallLost) {
		t.Errorf("Expected ball_lost below kill plane, got %v", res.Events)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(New())
	g.balls = 1

	g.sim.Ball.Position = mgl64.Vec3{0, 5, 20}
	res := g.Step(input())
	if !res.State.GameOver {
		t.Fatal("Expected game over after losing the last ball")
	}
	if !hasEvent(res.Events, core.EventGameOver) {
		t.Errorf("Expected game_over event, got %v", res.Events)
	}

	frame := g.sim.Frame
	g.Step(input(core.ActionFlipLeft))
	if g.sim.Frame != frame {
		t.Error("Physics should not step after game over")
	}

	res = g.Step(input(core.ActionRestart))
	if res.State.GameOver || res.State.Balls != 3 || res.State.Score != 0 {
		t.Errorf("Restart did not reset the game: %+v", res.State)
	}
}

func TestRestartResetsBallWhilePlaying(t *testing.T) {
	g := newTestGame(New())
	for range 5 {
		g.Step(input())
	}

	g.sim.Ball.Position = mgl64.Vec3{3, 4, 0}
	g.sim.Ball.Velocity = mgl64.Vec3{1, 0, 1}
	res := g.Step(input(core.ActionRestart))

	if !hasEvent(res.Events, core.EventBallReset) {
		t.Errorf("Expected ball_reset event, got %v", res.Events)
	}
	// One frame of free fall from spawn
	want := g.sim.Spawn.Add(mgl64.Vec3{0, -0.01, 0})
	if !near(g.sim.Ball.Position, want, 1e-9) {
		t.Errorf("Ball at %v, want %v", g.sim.Ball.Position, want)
	}
	if res.State.Balls != 3 {
		t.Errorf("Reset should not cost a ball, balls=%d", res.State.Balls)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(New())
	g.Step(input())

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Expected paused state")
	}

	frame := g.sim.Frame
	for range 5 {
		g.Step(input(core.ActionFlipLeft))
	}
	if g.sim.Frame != frame || g.sim.Left.Angle != 0 {
		t.Error("Physics should not step while paused")
	}

	res = g.Step(input(core.ActionPause))
	if res.State.Paused {
		t.Error("Expected unpaused state")
	}
	if res.Frames != 1 || g.sim.Frame != frame+1 {
		t.Errorf("Resume should run one frame, ran %d", res.Frames)
	}
}

func TestSandboxNeverDrains(t *testing.T) {
	g := newTestGame(NewSandbox())

	g.sim.Ball.Position = mgl64.Vec3{0, 5, 20}
	res := g.Step(input())
	if hasEvent(res.Events, core.EventBallLost) || res.State.Balls != 3 {
		t.Errorf("Sandbox drained a ball: %+v %v", res.State, res.Events)
	}
	if g.sim.Ball.Position.Z() != 20 {
		t.Errorf("Ball z = %v, want 20", g.sim.Ball.Position.Z())
	}

	g.sim.Ball.Position = mgl64.Vec3{0, -50, 0}
	res = g.Step(input())
	if !hasEvent(res.Events, core.EventBallReset) {
		t.Errorf("Expected ball_reset below kill plane, got %v", res.Events)
	}
	if res.State.GameOver {
		t.Error("Sandbox should never end")
	}
	if g.sim.Ball.Position != g.sim.Spawn {
		t.Errorf("Ball at %v, want spawn", g.sim.Ball.Position)
	}
}

func TestWallContactScores(t *testing.T) {
	g := newTestGame(New())

	// 0.3 from the inner face of the right wall, well above the floor
	g.sim.Ball.Position = mgl64.Vec3{8.7, 2, 0}
	res := g.Step(input())

	if !hasEvent(res.Events, core.EventWallHit) {
		t.Fatalf("Expected wall_hit event, got %v", res.Events)
	}
	if res.State.Score != 10 {
		t.Errorf("Score = %d, want 10", res.State.Score)
	}
	if !g.LastReport().Touched(physics.SurfaceWall) {
		t.Error("LastReport should record the wall contact")
	}
}

func TestContactEpisodesScoreOnce(t *testing.T) {
	g := newTestGame(New())

	wall := physics.Report{Contacts: []physics.Contact{{Probe: table.ProbeRightWall, Surface: physics.SurfaceWall}}}
	flipper := physics.Report{Contacts: []physics.Contact{
		{Probe: table.ProbeFloor, Surface: physics.SurfaceFloor},
		{Probe: table.ProbeLeftFlipper, Surface: physics.SurfaceFlipper},
	}}

	events := g.award(wall, nil)
	events = g.award(wall, events)
	if len(events) != 1 || g.score != 10 {
		t.Fatalf("Held wall contact scored %d events, score %d", len(events), g.score)
	}

	events = g.award(physics.Report{}, nil)
	events = g.award(wall, events)
	if len(events) != 1 || g.score != 20 {
		t.Errorf("New wall episode should score again, score %d", g.score)
	}

	events = g.award(flipper, nil)
	if len(events) != 1 || events[0].Kind != core.EventFlipperHit || events[0].Points != 100 {
		t.Errorf("Flipper contact events = %v", events)
	}
	if g.score != 120 {
		t.Errorf("Score = %d, want 120", g.score)
	}
}

func TestTimestepOverride(t *testing.T) {
	t.Cleanup(func() { _ = SetTimestepMode("") })

	if err := SetTimestepMode("sometimes"); err == nil {
		t.Error("Expected error for unknown timestep mode")
	}
	if err := SetTimestepMode("measured"); err != nil {
		t.Fatalf("SetTimestepMode: %v", err)
	}

	g := newTestGame(New())
	if g.TimestepMode() != physics.TimestepMeasured {
		t.Errorf("TimestepMode = %q, want measured", g.TimestepMode())
	}
}

func TestDifficultyPresetSetsBalls(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	SetDifficultyPreset("hard")
	g := newTestGame(New())
	if g.State().Balls != 2 {
		t.Errorf("Hard preset balls = %d, want 2", g.State().Balls)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(New())
	for range 20 {
		g.Step(input(core.ActionFlipRight))
	}
	snap := g.Snapshot()

	other := newTestGame(New())
	other.ApplySnapshot(snap)
	restored := other.Snapshot()
	if snap.Hash() != restored.Hash() {
		t.Error("ApplySnapshot did not restore the state")
	}
}

func TestSnapshotHashSeparatesFields(t *testing.T) {
	a := Snapshot{Tick: 1, Frame: 23}
	b := Snapshot{Tick: 12, Frame: 3}
	if a.Hash() == b.Hash() {
		t.Error("different tick/frame splits hash the same")
	}
}

func TestApplyPausedSnapshotResumesPlay(t *testing.T) {
	g := newTestGame(New())
	g.Step(input())
	g.Step(input(core.ActionPause))
	snap := g.Snapshot()
	if snap.State != StatePaused {
		t.Fatalf("snapshot state = %q, want paused", snap.State)
	}

	other := newTestGame(New())
	other.ApplySnapshot(snap)
	other.Step(input(core.ActionPause))
	if got := other.Snapshot().State; got != StatePlaying {
		t.Errorf("state after unpause = %q, want %q", got, StatePlaying)
	}
}

func TestSetConfigPathRejectsInvalidFile(t *testing.T) {
	t.Cleanup(func() { configPath = "" })

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules:\n  balls: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(bad); err == nil {
		t.Error("config with zero balls should be rejected")
	}
	if configPath != "" {
		t.Errorf("rejected path was kept: %q", configPath)
	}

	if err := SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file should be rejected")
	}

	good := filepath.Join(t.TempDir(), "good.yaml")
	if err := os.WriteFile(good, []byte("rules:\n  balls: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigPath(good); err != nil {
		t.Fatalf("SetConfigPath(good) failed: %v", err)
	}
	g := newTestGame(New())
	if g.State().Balls != 5 {
		t.Errorf("Balls = %d, want 5", g.State().Balls)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(New())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Balls: 3") {
		t.Errorf("HUD row = %q", hud)
	}

	out := screen.String()
	for _, want := range []rune{BallRest, FlipperChar, DrainChar, '┌'} {
		if !strings.ContainsRune(out, want) {
			t.Errorf("Render missing %q", want)
		}
	}

	g.Step(input(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Paused overlay not rendered")
	}
}

func TestHUDShowsBest(t *testing.T) {
	g := newTestGame(New())
	g.SetBest(450)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Best: 450") {
		t.Errorf("HUD row = %q", hud)
	}

	// A score above the record shows as the best
	g.score = 600
	g.Render(screen)
	if hud := screen.Row(0); !strings.Contains(hud, "Best: 600") {
		t.Errorf("HUD row = %q", hud)
	}
}

func TestBallFlashesOnFlipperHit(t *testing.T) {
	g := newTestGame(New())
	screen := core.NewScreen(80, 24)

	ballColor := func() core.Color {
		for y := range screen.Height() {
			for x := range screen.Width() {
				if c := screen.GetCell(x, y); c.Rune == BallRest {
					return c.Color
				}
			}
		}
		t.Fatal("ball not rendered")
		return core.ColorDefault
	}

	g.Render(screen)
	if got := ballColor(); got != core.ColorBrightWhite {
		t.Errorf("resting ball color = %v, want bright white", got)
	}

	g.last = physics.Report{Contacts: []physics.Contact{{Probe: table.ProbeLeftFlipper, Surface: physics.SurfaceFlipper}}}
	g.Render(screen)
	if got := ballColor(); got != core.ColorBrightYellow {
		t.Errorf("struck ball color = %v, want bright yellow", got)
	}
}

func TestRenderSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10})
	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected too-small message")
	}
	if res := g.Step(input()); res.Frames != 0 {
		t.Errorf("Too-small screen ran %d frames", res.Frames)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"pinball", "pinball_sandbox"} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
	}
}
