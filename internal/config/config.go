// Package config provides YAML-based rule configuration, environment
// overrides and speed management for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Variant names shipped with the game.
const (
	VariantClassic = "classic"
	VariantModern  = "modern"
)

// SnakeConfig contains all tunables for one rule variant.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snake      SnakeSettings    `yaml:"snake"`
	Rules      RulesConfig      `yaml:"rules"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Display    DisplayConfig    `yaml:"display"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeSettings defines the snake at game start.
type SnakeSettings struct {
	InitialLength int `yaml:"initial_length"`
}

// RulesConfig toggles the rule differences between variants.
type RulesConfig struct {
	Wrap            bool `yaml:"wrap"`             // Leave one edge, enter at the opposite one
	Pause           bool `yaml:"pause"`            // P toggles pause
	Restart         bool `yaml:"restart"`          // Space/R restarts after game over
	TongueProximity int  `yaml:"tongue_proximity"` // Cells ahead that show the tongue, 0 = off
}

// TimingConfig defines the fixed timestep.
type TimingConfig struct {
	TickMillis int `yaml:"tick_ms"`
}

// TickInterval returns the configured tick as a duration.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickMillis) * time.Millisecond
}

// DisplayConfig holds purely cosmetic options.
type DisplayConfig struct {
	ShowGrid bool `yaml:"show_grid"`
}

// DifficultyConfig defines the optional speed-up as the score grows.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = top speed
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
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty
}

// SpeedPreset represents a named speed setting.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedRamp   SpeedPreset = "ramp"
)

// Minimum dimensions accepted by Validate.
const (
	MinBoardSize  = 5
	MinTickMillis = 10
)

// Validate reports configuration that would make the game unplayable.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Board.Width < MinBoardSize || c.Board.Height < MinBoardSize {
		errs = append(errs, fmt.Errorf("board must be at least %dx%d, got %dx%d",
			MinBoardSize, MinBoardSize, c.Board.Width, c.Board.Height))
	}
	if c.Snake.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("initial_length must be positive, got %d", c.Snake.InitialLength))
	}
	// The starting body is laid out to the left of the centre.
	if c.Snake.InitialLength > c.Board.Width/2+1 {
		errs = append(errs, fmt.Errorf("initial_length %d does not fit a board %d wide",
			c.Snake.InitialLength, c.Board.Width))
	}
	if c.Rules.TongueProximity < 0 {
		errs = append(errs, errors.New("tongue_proximity must not be negative"))
	}
	if c.Timing.TickMillis < MinTickMillis {
		errs = append(errs, fmt.Errorf("tick_ms must be at least %d, got %d", MinTickMillis, c.Timing.TickMillis))
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("unknown progression type %q", c.Difficulty.Progression.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
