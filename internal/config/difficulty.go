package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the tick interval based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TickInterval returns the interval between moves for the current level.
// Speed grows from base to base * (1 + speed_multiplier); the interval
// never drops below MinTickMillis.
func (d *DifficultyManager) TickInterval(base time.Duration, score int, ticks uint64) time.Duration {
	level := d.Level(score, ticks)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	interval := time.Duration(float64(base) / speed)
	if floor := MinTickMillis * time.Millisecond; interval < floor {
		interval = floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
