// Package pinball runs the tilted-board pinball table on top of the
// ray-probe physics step: serving, scoring, draining and game over.
package pinball

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/table"
)

// GameState constants
const (
	StateServe    = "serve"    // Ball parked at spawn after a drain
	StatePlaying  = "playing"  // Ball in play
	StateGameOver = "gameover" // No balls left
	StatePaused   = "paused"   // Game paused
)

// Mode selects the rule set.
type Mode int

const (
	ModeClassic Mode = iota // Limited balls, drain, game over
	ModeSandbox             // Endless play, the ball respawns when it falls off
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// timestepOverride replaces the config's timestep when set via CLI
var timestepOverride physics.TimestepMode

// SetConfigPath sets the custom config path for loading. A file that
// cannot be read or fails validation is rejected and the path is left
// unchanged.
func SetConfigPath(path string) error {
	if path != "" {
		if _, err := config.LoadPinball(path); err != nil {
			return err
		}
	}
	configPath = path
	return nil
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetTimestepMode overrides the configured timestep ("fixed" or "measured").
// An empty string restores the config value.
func SetTimestepMode(mode string) error {
	if mode == "" {
		timestepOverride = ""
		return nil
	}
	m, err := physics.ParseTimestepMode(mode)
	if err != nil {
		return err
	}
	timestepOverride = m
	return nil
}

// Game implements the pinball table logic.
type Game struct {
	mode Mode

	// Simulation
	tbl         *table.Table
	sim         physics.State
	params      physics.Params
	baseGravity mgl64.Vec3
	clock       *physics.FrameClock
	now         func() time.Time
	touching    map[string]bool // probes in contact on the last frame
	last        physics.Report

	// Game state
	state      string
	resumeTo   string // state to return to when unpaused
	score      int
	best       int // best recorded score on this table
	balls      int
	tickCount  int
	serveDelay int

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.PinballConfig
	difficulty *config.DifficultyManager

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a classic pinball game.
func New() *Game {
	return &Game{mode: ModeClassic, now: time.Now}
}

// NewSandbox creates a pinball game without drains or game over.
func NewSandbox() *Game {
	return &Game{mode: ModeSandbox, now: time.Now}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeSandbox {
		return "pinball_sandbox"
	}
	return "pinball"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSandbox {
		return "Pinball (Sandbox)"
	}
	return "Pinball"
}

// Description returns a one-line summary for menus and listings.
func (g *Game) Description() string {
	if g.mode == ModeSandbox {
		return "Free play on the tilted table, no drain"
	}
	return "Keep the ball above the flippers"
}

// SetClock replaces the time source used by the frame clock.
// Headless runs pass a synthetic clock to stay deterministic.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
	if g.clock != nil {
		g.clock.Reset()
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.now == nil {
		g.now = time.Now
	}

	// Load table config
	cfg, err := config.LoadPinball(configPath)
	if err != nil {
		cfg = config.DefaultPinballConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPinballPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tbl = table.Build(cfg.Table.Layout())
	g.params = cfg.Physics.Params()
	g.baseGravity = g.params.Gravity

	mode := timestepOverride
	if mode == "" {
		mode, err = physics.ParseTimestepMode(cfg.Physics.Timestep)
		if err != nil {
			mode = physics.TimestepFixed
		}
	}
	g.clock = physics.NewFrameClock(mode, g.params.FrameTime)

	g.minScreenW = 30
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.sim = g.tbl.NewState()
	g.touching = make(map[string]bool)
	g.last = physics.Report{}
	g.score = 0
	g.balls = cfg.Rules.Balls
	g.tickCount = 0
	g.serveDelay = 0
	g.state = StatePlaying
	g.resumeTo = ""
}

// Step advances the game by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart after game over
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = g.resumeTo
			g.clock.Reset()
		case StatePlaying, StateServe:
			g.resumeTo = g.state
			g.state = StatePaused
		}
	}

	// Don't update if paused or game over
	if g.state == StatePaused || g.state == StateGameOver {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Handle serve delay countdown
	if g.serveDelay > 0 {
		g.serveDelay--
		if g.serveDelay == 0 {
			g.state = StatePlaying
			g.clock.Reset()
		}
		return core.StepResult{State: g.State()}
	}

	frames := g.clock.Tick(g.now())
	input := physics.Input{
		Left:  in.Has(core.ActionFlipLeft),
		Right: in.Has(core.ActionFlipRight),
		Reset: in.Has(core.ActionRestart),
	}
	g.params.Gravity = g.baseGravity.Mul(g.difficulty.GravityScale(g.score, g.tickCount))

	var events []core.Event
	for i, dt := range frames {
		if i > 0 {
			input.Reset = false
		}

		report := physics.Step(&g.sim, input, g.tbl.Probes, geom.MeshCollider{}, g.params, dt)
		g.last = report
		if report.Reset {
			events = append(events, core.Event{Kind: core.EventBallReset})
		}
		events = g.award(report, events)

		if g.outOfPlay() {
			events = g.handleDrain(events)
			break
		}
	}

	return core.StepResult{State: g.State(), Events: events, Frames: len(frames)}
}

// award scores each probe once per contact episode: a probe earns points
// on the first frame it touches the ball, not while it stays in contact.
func (g *Game) award(report physics.Report, events []core.Event) []core.Event {
	now := make(map[string]bool, len(report.Contacts))
	for _, c := range report.Contacts {
		now[c.Probe] = true
		if g.touching[c.Probe] {
			continue
		}

		switch c.Surface {
		case physics.SurfaceFlipper:
			pts := g.difficulty.Points(g.cfg.Rules.FlipperScore, g.score, g.tickCount)
			g.score += pts
			events = append(events, core.Event{Kind: core.EventFlipperHit, Points: pts})
		case physics.SurfaceWall:
			pts := g.difficulty.Points(g.cfg.Rules.WallScore, g.score, g.tickCount)
			g.score += pts
			events = append(events, core.Event{Kind: core.EventWallHit, Points: pts})
		}
	}
	g.touching = now
	return events
}

// outOfPlay reports whether the ball has left the playfield.
func (g *Game) outOfPlay() bool {
	p := g.sim.Ball.Position
	if p.Y() < g.cfg.Rules.KillY {
		return true
	}
	return g.mode == ModeClassic && p.Z() > g.cfg.Rules.DrainZ
}

// handleDrain loses the ball in classic mode and respawns it in sandbox.
func (g *Game) handleDrain(events []core.Event) []core.Event {
	g.sim.Ball.Reset(g.sim.Spawn)
	g.touching = make(map[string]bool)

	if g.mode == ModeSandbox {
		return append(events, core.Event{Kind: core.EventBallReset})
	}

	g.balls--
	events = append(events, core.Event{Kind: core.EventBallLost})

	if g.balls <= 0 {
		g.balls = 0
		g.state = StateGameOver
		return append(events, core.Event{Kind: core.EventGameOver})
	}

	g.state = StateServe
	g.serveDelay = g.cfg.Rules.ServeDelay
	if g.serveDelay == 0 {
		g.state = StatePlaying
	}
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Balls:    g.balls,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// SetBest sets the best recorded score shown in the HUD.
// It survives Reset.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Physics exposes the simulation state for tracing.
func (g *Game) Physics() physics.State {
	return g.sim
}

// LastReport returns the report of the most recent physics frame.
func (g *Game) LastReport() physics.Report {
	return g.last
}

// TimestepMode returns the active timestep mode.
func (g *Game) TimestepMode() physics.TimestepMode {
	if g.clock == nil {
		return ""
	}
	return g.clock.Mode()
}

// Register the games with the registry
func init() {
	registry.Register("pinball", func() registry.Game {
		return New()
	})
	registry.Register("pinball_sandbox", func() registry.Game {
		return NewSandbox()
	})
}
