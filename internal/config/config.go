// Package config provides YAML-based table configuration loading and
// difficulty management for the pinball platform.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/table"
)

// PinballConfig contains all configuration for a pinball table.
type PinballConfig struct {
	Physics    PinballPhysics   `yaml:"physics"`
	Table      PinballTable     `yaml:"table"`
	Rules      PinballRules     `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PinballPhysics defines the ball step constants.
type PinballPhysics struct {
	BallRadius      float64 `yaml:"ball_radius"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Gravity         float64 `yaml:"gravity"` // downward, per frame
	FlipperStep     float64 `yaml:"flipper_step"`
	FlipperArcDeg   float64 `yaml:"flipper_arc_deg"`
	VerticalDamping float64 `yaml:"vertical_damping"`
	FloorBoost      float64 `yaml:"floor_boost"`
	FlipperKick     float64 `yaml:"flipper_kick"`
	WallDamping     float64 `yaml:"wall_damping"`
	FrameMillis     int     `yaml:"frame_ms"`
	Timestep        string  `yaml:"timestep"` // "fixed" or "measured"
}

// PinballTable defines the board geometry.
type PinballTable struct {
	TiltDeg       float64    `yaml:"tilt_deg"`
	Center        [3]float64 `yaml:"center"`
	Width         float64    `yaml:"width"`
	Length        float64    `yaml:"length"`
	Thickness     float64    `yaml:"thickness"`
	WallHeight    float64    `yaml:"wall_height"`
	WallThickness float64    `yaml:"wall_thickness"`
	FlipperPivotX float64    `yaml:"flipper_pivot_x"`
	FlipperZ      float64    `yaml:"flipper_z"`
	FlipperLength float64    `yaml:"flipper_length"`
	FlipperWidth  float64    `yaml:"flipper_width"`
	FlipperHeight float64    `yaml:"flipper_height"`
	Spawn         [3]float64 `yaml:"spawn"`
}

// PinballRules defines scoring and ball loss.
type PinballRules struct {
	Balls        int     `yaml:"balls"`
	DrainZ       float64 `yaml:"drain_z"` // ball lost past this world Z
	KillY        float64 `yaml:"kill_y"`  // ball lost below this world Y
	FlipperScore int     `yaml:"flipper_score"`
	WallScore    int     `yaml:"wall_score"`
	ServeDelay   int     `yaml:"serve_delay"` // ticks before the next ball
}

// Params converts the YAML physics section into step parameters.
func (p PinballPhysics) Params() physics.Params {
	return physics.Params{
		Radius:          p.BallRadius,
		MaxSpeed:        p.MaxSpeed,
		FlipperStep:     p.FlipperStep,
		FlipperArc:      mgl64.DegToRad(p.FlipperArcDeg),
		Gravity:         mgl64.Vec3{0, -p.Gravity, 0},
		VerticalDamping: p.VerticalDamping,
		FloorBoost:      p.FloorBoost,
		FlipperKick:     p.FlipperKick,
		WallDamping:     p.WallDamping,
		FrameTime:       time.Duration(p.FrameMillis) * time.Millisecond,
	}
}

// Layout converts the YAML table section into a board layout.
func (t PinballTable) Layout() table.Layout {
	return table.Layout{
		Tilt:          mgl64.DegToRad(t.TiltDeg),
		Center:        mgl64.Vec3(t.Center),
		Width:         t.Width,
		Length:        t.Length,
		Thickness:     t.Thickness,
		WallHeight:    t.WallHeight,
		WallThickness: t.WallThickness,
		FlipperPivotX: t.FlipperPivotX,
		FlipperZ:      t.FlipperZ,
		FlipperLength: t.FlipperLength,
		FlipperWidth:  t.FlipperWidth,
		FlipperHeight: t.FlipperHeight,
		Spawn:         mgl64.Vec3(t.Spawn),
	}
}

// Validate reports the first setting that would break the simulation.
func (c PinballConfig) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	check(c.Physics.BallRadius > 0, "physics.ball_radius must be positive")
	check(c.Physics.MaxSpeed > 0, "physics.max_speed must be positive")
	check(c.Physics.FlipperStep > 0, "physics.flipper_step must be positive")
	check(c.Physics.FlipperArcDeg > 0 && c.Physics.FlipperArcDeg < 90, "physics.flipper_arc_deg must be in (0, 90)")
	check(c.Physics.FrameMillis > 0, "physics.frame_ms must be positive")
	if _, err := physics.ParseTimestepMode(c.Physics.Timestep); err != nil {
		errs = append(errs, fmt.Errorf("physics.timestep: %w", err))
	}

	check(c.Table.Width > 2*c.Table.WallThickness, "table.width must exceed both walls")
	check(c.Table.Length > 2*c.Table.WallThickness, "table.length must exceed both walls")
	check(c.Table.Thickness > 0, "table.thickness must be positive")
	check(c.Table.FlipperLength > 0, "table.flipper_length must be positive")

	check(c.Rules.Balls > 0, "rules.balls must be positive")
	check(c.Rules.ServeDelay >= 0, "rules.serve_delay must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("invalid pinball config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier float64 `yaml:"gravity_multiplier"` // added to gravity at max difficulty
	ScoreMultiplier   float64 `yaml:"score_multiplier"`   // added to points at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values give "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// BallsForPreset returns the number of balls per game, or 0 to keep the config value.
func BallsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 2
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
