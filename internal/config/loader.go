package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPinball loads the pinball table configuration.
// Search order: customPath -> ~/.pinball/configs/pinball.yaml -> ./configs/pinball.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadPinball(customPath string) (PinballConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readPinball(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("pinball.yaml"), filepath.Join("configs", "pinball.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := readPinball(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultPinballConfig()
	if err := yaml.Unmarshal(defaultPinballYAML, &cfg); err != nil {
		return DefaultPinballConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func readPinball(path string) (PinballConfig, error) {
	cfg := DefaultPinballConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pinball", "configs", filename)
}

// ApplyPinballPreset modifies the config based on a difficulty preset.
func ApplyPinballPreset(cfg *PinballConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if balls := BallsForPreset(preset); balls > 0 {
		cfg.Rules.Balls = balls
	}
}
