package core

import "time"

// DefaultTickInterval is the fixed simulation timestep. One tick moves the
// snake by one cell.
const DefaultTickInterval = 100 * time.Millisecond

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Time between simulation ticks
	Seed         int64         // RNG seed for deterministic gameplay
	BestScore    int           // Best recorded score, shown in the HUD
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      30,
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventNone Event = iota
	EventAteApple
	EventDied
	EventPaused
	EventResumed
	EventRestarted
)

func (e Event) String() string {
	switch e {
	case EventAteApple:
		return "ate_apple"
	case EventDied:
		return "died"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventRestarted:
		return "restarted"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
