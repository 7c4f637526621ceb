package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Balls    int  // Balls left, including the one in play
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind classifies something notable that happened during a tick.
type EventKind int

const (
	EventFlipperHit EventKind = iota
	EventWallHit
	EventBallLost
	EventBallReset
	EventGameOver
)

// Event is emitted by a game step for the platform to log or react to.
type Event struct {
	Kind   EventKind
	Points int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
	Frames int // physics frames simulated during this tick
}

// String returns a lowercase name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlipperHit:
		return "flipper_hit"
	case EventWallHit:
		return "wall_hit"
	case EventBallLost:
		return "ball_lost"
	case EventBallReset:
		return "ball_reset"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
