package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Variant    string
	Phase      Phase
	Cause      DeathCause
	Score      int
	Best       int
	Snake      []core.Point
	Direction  core.Direction
	NextDir    core.Direction
	Apple      core.Point
	HasApple   bool
	AboutToEat bool
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	body := make([]core.Point, len(g.snake))
	copy(body, g.snake)
	return Snapshot{
		Tick:       g.tick,
		Variant:    g.variant,
		Phase:      g.phase,
		Cause:      g.cause,
		Score:      g.score,
		Best:       g.bestShown,
		Snake:      body,
		Direction:  g.direction,
		NextDir:    g.nextDir,
		Apple:      g.apple,
		HasApple:   g.hasApple,
		AboutToEat: g.aboutToEat,
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Variant != o.Variant || s.Phase != o.Phase ||
		s.Cause != o.Cause || s.Score != o.Score || s.Best != o.Best ||
		s.Direction != o.Direction || s.NextDir != o.NextDir ||
		s.Apple != o.Apple || s.HasApple != o.HasApple || s.AboutToEat != o.AboutToEat {
		return false
	}
	if len(s.Snake) != len(o.Snake) {
		return false
	}
	for i := range s.Snake {
		if s.Snake[i] != o.Snake[i] {
			return false
		}
	}
	return true
}
