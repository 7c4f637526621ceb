package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{GravityMultiplier: 0.5, ScoreMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{500, 0.6},
		{1000, 1.0},
		{5000, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}

	if got := d.GravityScale(1000, 0); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("GravityScale at max = %v, want 1.5", got)
	}
	if got := d.Points(100, 1000, 0); got != 200 {
		t.Errorf("Points at max = %d, want 200", got)
	}
}

func TestDifficultyDisabledHoldsInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{GravityMultiplier: 1},
	})
	if got := d.Level(0, 50); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("time progression Level = %v, want 0.5", got)
	}

	d = NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 3,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{GravityMultiplier: 1},
	})
	if d.IsEnabled() {
		t.Error("expected disabled")
	}
	if got := d.Level(0, 100); got != 1 {
		t.Errorf("disabled Level = %v, want clamped initial 1", got)
	}
	if got := d.GravityScale(0, 0); got != 2 {
		t.Errorf("GravityScale = %v, want 2", got)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvDB, "")
	if got := EnvInt(EnvFPS, 60); got != 30 {
		t.Errorf("EnvInt = %d", got)
	}
	if got := EnvString(EnvDB, "x.db"); got != "x.db" {
		t.Errorf("EnvString = %q", got)
	}

	t.Setenv(EnvFPS, "fast")
	if got := EnvInt(EnvFPS, 60); got != 60 {
		t.Errorf("malformed EnvInt = %d", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PINBALL_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", EnvLogLevel, got)
	}
}
