package config

import (
	_ "embed"
)

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

//go:embed defaults/modern.yaml
var defaultModernYAML []byte

// DefaultClassicConfig returns the wall-death rules.
func DefaultClassicConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{Width: 24, Height: 24},
		Snake: SnakeSettings{InitialLength: 6},
		Rules: RulesConfig{
			Wrap:    false,
			Pause:   false,
			Restart: true,
		},
		Timing: TimingConfig{TickMillis: 100},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
		},
		Display: DisplayConfig{ShowGrid: true},
	}
}

// DefaultModernConfig returns the screen-wrapping rules.
func DefaultModernConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{Width: 24, Height: 24},
		Snake: SnakeSettings{InitialLength: 6},
		Rules: RulesConfig{
			Wrap:            true,
			Pause:           true,
			Restart:         true,
			TongueProximity: 2,
		},
		Timing: TimingConfig{TickMillis: 100},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "score", MaxAt: 50},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// Default returns the hard-coded defaults for a variant.
func Default(variant string) SnakeConfig {
	if variant == VariantClassic {
		return DefaultClassicConfig()
	}
	return DefaultModernConfig()
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantClassic:
		return defaultClassicYAML
	case VariantModern:
		return defaultModernYAML
	default:
		return nil
	}
}
