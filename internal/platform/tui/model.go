package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger   // nil discards
	Player string        // recorded with saved runs
	Hold   time.Duration // how long a flipper key press stays held
	Menu   bool          // esc/b on pause or game over returns to the menu
}

// timestepper is implemented by games that report their timestep mode.
type timestepper interface {
	TimestepMode() physics.TimestepMode
}

// bestKeeper is implemented by games that show the table record.
type bestKeeper interface {
	SetBest(score int)
}

// Model is the Bubble Tea model for running a pinball table.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	hold       *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	frames     uint64
	best       int
	started    time.Time
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(opts.Hold, cfg.TickRate),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
	m.loadBest()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("table started", "game", m.game.ID(), "player", m.opts.Player, "hold_ticks", m.hold.Ticks())
	return tickCmd(m.config.TickRate)
}

// loadBest hands the stored table record to the game.
func (m *Model) loadBest() {
	if m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.BestScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not read best score", "game", m.game.ID(), "error", err)
		return
	}
	m.best = best
	if bk, ok := m.game.(bestKeeper); ok {
		bk.SetBest(best)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsFlipper(action):
		m.hold.Press(action)
	case action == core.ActionBack:
		if m.opts.Menu && (m.gameState.GameOver || m.gameState.Paused) {
			m.saveRun()
			m.backToMenu = true
			return m, nil
		}
		if !m.gameState.GameOver {
			m.inputFrame.Set(core.ActionPause)
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The table lays itself out
// on every render, so a game in progress keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.frames == 0 {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	m.hold.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.frames += uint64(result.Frames) //#nosec G115 -- frame counts are never negative
	m.logEvents(result.Events)

	// A restart from game over starts a new run
	if wasOver && !m.gameState.GameOver {
		m.frames = 0
		m.started = time.Now()
		m.runSaved = false
		m.hold.Release()
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// logEvents reports notable game events at debug level.
func (m *Model) logEvents(events []core.Event) {
	for _, e := range events {
		m.logger.Debug("event",
			"game", m.game.ID(),
			"kind", e.Kind.String(),
			"points", e.Points,
			"score", m.gameState.Score,
			"balls", m.gameState.Balls,
		)
	}
}

// saveRun records the current run once. Runs without points are skipped.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		GameID:   m.game.ID(),
		Player:   m.opts.Player,
		Score:    m.gameState.Score,
		Frames:   m.frames,
		Duration: int(time.Since(m.started).Seconds()),
	}
	if ts, ok := m.game.(timestepper); ok {
		run.Timestep = string(ts.TimestepMode())
	}

	saved, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "error", err)
		return
	}
	m.logger.Info("run saved", "game", saved.GameID, "run", saved.RunID, "score", saved.Score, "player", saved.Player)

	if saved.Score > m.best {
		m.logger.Info("new table record", "game", saved.GameID, "score", saved.Score, "previous", m.best)
		m.best = saved.Score
		if bk, ok := m.game.(bestKeeper); ok {
			bk.SetBest(saved.Score)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".pinball", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single table.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
