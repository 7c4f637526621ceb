package config

import (
	_ "embed"
)

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultPinballConfig returns the default pinball configuration.
func DefaultPinballConfig() PinballConfig {
	return PinballConfig{
		Physics: PinballPhysics{
			BallRadius:      0.4,
			MaxSpeed:        10,
			Gravity:         0.01,
			FlipperStep:     0.1,
			FlipperArcDeg:   45,
			VerticalDamping: 0.8,
			FloorBoost:      1.2,
			FlipperKick:     1.5,
			WallDamping:     0.8,
			FrameMillis:     16,
			Timestep:        "fixed",
		},
		Table: PinballTable{
			TiltDeg:       6.5,
			Center:        [3]float64{0, 0, -5},
			Width:         20,
			Length:        40,
			Thickness:     1,
			WallHeight:    3,
			WallThickness: 1,
			FlipperPivotX: 3,
			FlipperZ:      12,
			FlipperLength: 2.5,
			FlipperWidth:  0.6,
			FlipperHeight: 1,
			Spawn:         [3]float64{1.5, 3.5, -18},
		},
		Rules: PinballRules{
			Balls:        3,
			DrainZ:       13,
			KillY:        -10,
			FlipperScore: 100,
			WallScore:    10,
			ServeDelay:   60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				GravityMultiplier: 0.5,
				ScoreMultiplier:   1.0,
			},
		},
	}
}
