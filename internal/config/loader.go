package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the rules for a variant.
// Search order: customPath -> ~/.snake/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default
//
// Files are layered on top of the variant's built-in defaults, so a file only
// needs the keys it changes. The result is validated.
func Load(variant, customPath string) (SnakeConfig, error) {
	cfg := Default(variant)

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	filename := variant + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if loaded, ok := tryLoadFile(variant, userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoadFile(variant, filepath.Join("configs", filename)); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(variant); data != nil {
		embedded := Default(variant)
		if err := yaml.Unmarshal(data, &embedded); err == nil && embedded.Validate() == nil {
			return embedded, nil
		}
	}
	return cfg, nil // Fallback to hardcoded if embed fails
}

// tryLoadFile reads an optional config file. Missing, unparsable or invalid
// files are skipped so the next location in the search order is used.
func tryLoadFile(variant, path string) (SnakeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SnakeConfig{}, false
	}
	cfg := Default(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, false
	}
	if cfg.Validate() != nil {
		return SnakeConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// ApplySpeedPreset modifies the config based on a speed preset.
// Unknown presets leave the config unchanged.
func ApplySpeedPreset(cfg *SnakeConfig, preset SpeedPreset) {
	switch preset {
	case SpeedSlow:
		cfg.Timing.TickMillis = 150
		cfg.Difficulty.Enabled = false
	case SpeedNormal:
		cfg.Timing.TickMillis = 100
		cfg.Difficulty.Enabled = false
	case SpeedFast:
		cfg.Timing.TickMillis = 60
		cfg.Difficulty.Enabled = false
	case SpeedRamp:
		cfg.Difficulty.Enabled = true
		if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
			cfg.Difficulty.Progression = ProgressionConfig{Type: "score", MaxAt: 50}
		}
		if cfg.Difficulty.Scaling.SpeedMultiplier <= 0 {
			cfg.Difficulty.Scaling.SpeedMultiplier = 1.0
		}
	}
}
