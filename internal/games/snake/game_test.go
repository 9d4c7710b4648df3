package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:    seed,
		ScreenW: 80,
		ScreenH: 40,
	}
}

// newTestGame creates a game with default rules for the variant, optionally
// modified before the first reset.
func newTestGame(t *testing.T, variant string, mutate func(*config.SnakeConfig)) *Game {
	t.Helper()
	cfg := config.Default(variant)
	if mutate != nil {
		mutate(&cfg)
	}
	g := NewWithConfig(variant, cfg)
	g.Reset(testRuntime(42))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// parkApple moves the apple out of the snake's way.
func parkApple(g *Game, p core.Point) {
	g.apple = p
	g.hasApple = true
	g.aboutToEat = g.isAboutToEat()
}

func head(g *Game) core.Point {
	return g.snake[0]
}

func TestResetLayout(t *testing.T) {
	for _, variant := range []string{config.VariantClassic, config.VariantModern} {
		t.Run(variant, func(t *testing.T) {
			g := newTestGame(t, variant, nil)

			if g.Phase() != PhasePlaying {
				t.Fatalf("phase = %v, want playing", g.Phase())
			}
			if len(g.snake) != 6 {
				t.Fatalf("length = %d, want 6", len(g.snake))
			}
			if head(g) != (core.Point{X: 12, Y: 12}) {
				t.Errorf("head = %v, want (12,12)", head(g))
			}
			for i, seg := range g.snake {
				want := core.Point{X: 12 - i, Y: 12}
				if seg != want {
					t.Errorf("segment %d = %v, want %v", i, seg, want)
				}
			}
			if g.direction != core.DirRight {
				t.Errorf("direction = %v, want right", g.direction)
			}
			if !g.hasApple || g.isSnakeAt(g.apple) {
				t.Errorf("apple %v not placed on a free cell", g.apple)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, config.VariantModern, nil)
	g2 := newTestGame(t, config.VariantModern, nil)

	turns := map[int]core.Action{
		5:  core.ActionDown,
		12: core.ActionLeft,
		20: core.ActionUp,
		31: core.ActionRight,
		45: core.ActionDown,
	}
	for i := 0; i < 200; i++ {
		in := core.NewInputFrame()
		if a, ok := turns[i%60]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)

		s1, s2 := g1.Snapshot(), g2.Snapshot()
		if !s1.Equal(s2) {
			t.Fatalf("tick %d: snapshots diverged:\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestDifferentSeedsPlaceDifferentApples(t *testing.T) {
	seen := make(map[core.Point]bool)
	for seed := int64(1); seed <= 10; seed++ {
		g := NewWithConfig(config.VariantModern, config.DefaultModernConfig())
		g.Reset(testRuntime(seed))
		seen[g.apple] = true
	}
	if len(seen) < 2 {
		t.Error("expected different seeds to place apples differently")
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.Step(frame(core.ActionLeft))

	if g.direction != core.DirRight {
		t.Errorf("direction = %v, want right", g.direction)
	}
	if head(g) != (core.Point{X: 13, Y: 12}) {
		t.Errorf("head = %v, want (13,12)", head(g))
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
}

func TestTwoTurnsInOneTickCannotReverse(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	// Up then Left within one tick: Left is the reverse of the last move.
	g.Step(frame(core.ActionUp, core.ActionLeft))

	if g.direction != core.DirUp {
		t.Fatalf("direction = %v, want up", g.direction)
	}
	if head(g) != (core.Point{X: 12, Y: 11}) {
		t.Errorf("head = %v, want (12,11)", head(g))
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("snake died: %v", g.Cause())
	}
}

func TestLastValidTurnWins(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.Step(frame(core.ActionUp, core.ActionDown))

	if g.direction != core.DirDown {
		t.Errorf("direction = %v, want down", g.direction)
	}
	if head(g) != (core.Point{X: 12, Y: 13}) {
		t.Errorf("head = %v, want (12,13)", head(g))
	}
}

func TestModernWrapsAroundEdges(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 5, Y: 0})

	empty := core.NewInputFrame()
	for i := 0; i < 12; i++ {
		g.Step(empty)
		for _, seg := range g.snake {
			if !g.inBounds(seg) {
				t.Fatalf("tick %d: segment %v off the board", i, seg)
			}
		}
	}

	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase())
	}
	if head(g) != (core.Point{X: 0, Y: 12}) {
		t.Errorf("head = %v, want (0,12)", head(g))
	}

	// Vertical wrap
	g.Step(frame(core.ActionUp))
	for i := 0; i < 12; i++ {
		g.Step(empty)
	}
	if head(g) != (core.Point{X: 0, Y: 23}) {
		t.Errorf("head = %v, want (0,23)", head(g))
	}
}

func TestClassicWallKills(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	empty := core.NewInputFrame()
	for i := 0; i < 11; i++ {
		g.Step(empty)
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("died early at %v: %v", head(g), g.Cause())
	}
	if head(g) != (core.Point{X: 23, Y: 12}) {
		t.Fatalf("head = %v, want (23,12)", head(g))
	}

	res := g.Step(empty)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", g.Phase())
	}
	if g.Cause() != DeathWall {
		t.Errorf("cause = %q, want %q", g.Cause(), DeathWall)
	}
	if !res.Has(core.EventDied) || !res.State.GameOver {
		t.Errorf("step result = %+v, want died/game over", res)
	}
}

func TestClassicTopWall(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	parkApple(g, core.Point{X: 0, Y: 23})

	g.Step(frame(core.ActionUp))
	empty := core.NewInputFrame()
	for i := 0; i < 11; i++ {
		g.Step(empty)
	}
	if g.Phase() != PhasePlaying || head(g).Y != 0 {
		t.Fatalf("expected head on row 0, got %v (%v)", head(g), g.Phase())
	}
	g.Step(empty)
	if g.Cause() != DeathWall {
		t.Errorf("cause = %q, want %q", g.Cause(), DeathWall)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.snake = []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 3, Y: 6}}
	g.direction = core.DirLeft
	g.nextDir = core.DirLeft

	res := g.Step(frame(core.ActionDown))

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", g.Phase())
	}
	if g.Cause() != DeathSelf {
		t.Errorf("cause = %q, want %q", g.Cause(), DeathSelf)
	}
	if !res.Has(core.EventDied) {
		t.Error("expected died event")
	}
}

func TestMovingIntoVacatedTail(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.snake = []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	g.direction = core.DirLeft
	g.nextDir = core.DirLeft

	g.Step(frame(core.ActionDown))

	if g.Phase() != PhasePlaying {
		t.Fatalf("snake died chasing its tail: %v", g.Cause())
	}
	want := []core.Point{{X: 5, Y: 6}, {X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}}
	for i, seg := range g.snake {
		if seg != want[i] {
			t.Errorf("segment %d = %v, want %v", i, seg, want[i])
		}
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 13, Y: 12})
	tail := g.snake[len(g.snake)-1]

	res := g.Step(core.NewInputFrame())

	if !res.Has(core.EventAteApple) {
		t.Error("expected ate-apple event")
	}
	if g.score != 1 || res.State.Score != 1 {
		t.Errorf("score = %d, want 1", g.score)
	}
	if len(g.snake) != 7 {
		t.Errorf("length = %d, want 7", len(g.snake))
	}
	if g.snake[len(g.snake)-1] != tail {
		t.Errorf("tail = %v, want old tail %v kept", g.snake[len(g.snake)-1], tail)
	}
	if !g.hasApple || g.isSnakeAt(g.apple) {
		t.Errorf("new apple %v placed on the snake", g.apple)
	}
}

func TestInvariantsUnderPlay(t *testing.T) {
	small := func(c *config.SnakeConfig) {
		c.Board.Width = 8
		c.Board.Height = 8
		c.Snake.InitialLength = 3
	}
	for _, variant := range []string{config.VariantClassic, config.VariantModern} {
		t.Run(variant, func(t *testing.T) {
			g := newTestGame(t, variant, small)
			pattern := []core.Action{core.ActionDown, core.ActionLeft, core.ActionUp, core.ActionRight}

			for i := 0; i < 2000; i++ {
				in := core.NewInputFrame()
				if i%3 == 0 {
					in.Set(pattern[(i/3)%len(pattern)])
				}
				if g.Phase() == PhaseGameOver {
					in.Set(core.ActionRestart)
				}
				g.Step(in)

				if g.Phase() == PhaseGameOver {
					continue
				}
				if len(g.snake) != 3+g.score {
					t.Fatalf("tick %d: length %d != initial + score %d", i, len(g.snake), 3+g.score)
				}
				if g.isSnakeAt(g.apple) {
					t.Fatalf("tick %d: apple %v on the snake", i, g.apple)
				}
				for _, seg := range g.snake {
					if !g.inBounds(seg) {
						t.Fatalf("tick %d: segment %v off the board", i, seg)
					}
				}
			}
		})
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, func(c *config.SnakeConfig) {
		c.Board.Width = 5
		c.Board.Height = 5
		c.Snake.InitialLength = 3
	})

	// Serpentine path covering every cell but (4,4), head last.
	var path []core.Point
	for y := 0; y < 5; y++ {
		for i := 0; i < 5; i++ {
			x := i
			if y%2 == 1 {
				x = 4 - i
			}
			if x == 4 && y == 4 {
				continue
			}
			path = append(path, core.Point{X: x, Y: y})
		}
	}
	g.snake = make([]core.Point, 0, 25)
	for i := len(path) - 1; i >= 0; i-- {
		g.snake = append(g.snake, path[i])
	}
	g.direction = core.DirRight
	g.nextDir = core.DirRight
	parkApple(g, core.Point{X: 4, Y: 4})

	res := g.Step(core.NewInputFrame())

	if !res.Has(core.EventAteApple) || !res.Has(core.EventDied) {
		t.Errorf("events = %v, want ate apple and died", res.Events)
	}
	if g.Cause() != DeathBoardFull {
		t.Errorf("cause = %q, want %q", g.Cause(), DeathBoardFull)
	}
	if len(g.snake) != 25 {
		t.Errorf("length = %d, want 25", len(g.snake))
	}
	if g.hasApple {
		t.Error("apple placed on a full board")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	res := g.Step(frame(core.ActionPause))
	if g.Phase() != PhasePaused || !res.State.Paused {
		t.Fatalf("phase = %v, want paused", g.Phase())
	}
	if !res.Has(core.EventPaused) {
		t.Error("expected paused event")
	}
	before := head(g)

	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if head(g) != before {
		t.Errorf("snake moved while paused: %v -> %v", before, head(g))
	}

	res = g.Step(frame(core.ActionPause))
	if g.Phase() != PhasePlaying || !res.Has(core.EventResumed) {
		t.Fatalf("phase = %v, want playing after resume", g.Phase())
	}
	if head(g) != (core.Point{X: before.X + 1, Y: before.Y}) {
		t.Errorf("head = %v after resume, want one cell right of %v", head(g), before)
	}
}

func TestPauseKeepsTurnForResume(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.Step(frame(core.ActionPause))
	before := head(g)

	g.Step(frame(core.ActionLeft)) // reversal, still rejected
	g.Step(frame(core.ActionUp))
	if head(g) != before {
		t.Fatalf("snake moved while paused: %v -> %v", before, head(g))
	}
	if g.nextDir != core.DirUp {
		t.Fatalf("nextDir = %v, want up", g.nextDir)
	}

	g.Step(frame(core.ActionPause))
	if g.direction != core.DirUp {
		t.Errorf("direction = %v after resume, want up", g.direction)
	}
	if head(g) != (core.Point{X: before.X, Y: before.Y - 1}) {
		t.Errorf("head = %v after resume, want one cell above %v", head(g), before)
	}
}

func TestPauseEveryPressToggles(t *testing.T) {
	tests := []struct {
		name    string
		presses int
		want    Phase
	}{
		{"once", 1, PhasePaused},
		{"twice", 2, PhasePlaying},
		{"three times", 3, PhasePaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, config.VariantModern, nil)
			parkApple(g, core.Point{X: 0, Y: 0})

			actions := make([]core.Action, tt.presses)
			for i := range actions {
				actions[i] = core.ActionPause
			}
			res := g.Step(frame(actions...))

			if g.Phase() != tt.want {
				t.Errorf("phase = %v, want %v", g.Phase(), tt.want)
			}
			if len(res.Events) < tt.presses {
				t.Errorf("events = %v, want one per press", res.Events)
			}
		})
	}
}

func TestPauseDisabledInClassic(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	parkApple(g, core.Point{X: 0, Y: 0})

	g.Step(frame(core.ActionPause))

	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
	if head(g) != (core.Point{X: 13, Y: 12}) {
		t.Errorf("head = %v, want (13,12)", head(g))
	}
}

func TestPauseIgnoredWhenGameOver(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	g.die(DeathSelf)

	g.Step(frame(core.ActionPause))

	if g.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game over", g.Phase())
	}
}

func TestRestart(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 13, Y: 12})
	g.Step(core.NewInputFrame())
	g.die(DeathSelf)

	// Other keys do nothing at game over
	g.Step(frame(core.ActionUp))
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", g.Phase())
	}

	res := g.Step(frame(core.ActionRestart))
	if !res.Has(core.EventRestarted) {
		t.Error("expected restarted event")
	}
	if g.Phase() != PhasePlaying || g.score != 0 || len(g.snake) != 6 {
		t.Errorf("after restart: phase %v score %d length %d", g.Phase(), g.score, len(g.snake))
	}
	if g.bestShown != 1 {
		t.Errorf("best = %d, want 1 kept across restart", g.bestShown)
	}
}

func TestRestartDisabled(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, func(c *config.SnakeConfig) {
		c.Rules.Restart = false
	})
	g.die(DeathWall)

	g.Step(frame(core.ActionRestart))

	if g.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game over", g.Phase())
	}
}

func TestTongue(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 16, Y: 12})
	if g.AboutToEat() {
		t.Fatal("apple 4 cells ahead should not show the tongue")
	}

	g.Step(core.NewInputFrame())
	if g.AboutToEat() {
		t.Fatal("apple 3 cells ahead should not show the tongue")
	}
	g.Step(core.NewInputFrame())
	if !g.AboutToEat() {
		t.Fatal("apple 2 cells ahead should show the tongue")
	}

	// Turning away hides it
	g.Step(frame(core.ActionDown))
	if g.AboutToEat() {
		t.Error("apple behind the head should not show the tongue")
	}
}

func TestTongueAcrossWrappedEdge(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	g.snake = []core.Point{{X: 22, Y: 3}, {X: 21, Y: 3}, {X: 20, Y: 3}}
	parkApple(g, core.Point{X: 0, Y: 3})

	g.Step(core.NewInputFrame())

	if !g.AboutToEat() {
		t.Error("apple across the edge should show the tongue")
	}
}

func TestTongueDisabledInClassic(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	parkApple(g, core.Point{X: 14, Y: 12})

	g.Step(core.NewInputFrame())

	if g.AboutToEat() {
		t.Error("classic rules have no tongue")
	}
}

func TestNewHighScore(t *testing.T) {
	cfg := config.DefaultModernConfig()
	g := NewWithConfig(config.VariantModern, cfg)
	rc := testRuntime(7)
	rc.BestScore = 1
	g.Reset(rc)

	parkApple(g, core.Point{X: 13, Y: 12})
	g.Step(core.NewInputFrame())
	g.die(DeathSelf)
	if g.NewHighScore() {
		t.Error("tying the best score is not a new high score")
	}

	g.Step(frame(core.ActionRestart))
	parkApple(g, core.Point{X: 13, Y: 12})
	g.Step(core.NewInputFrame())
	parkApple(g, core.Point{X: 14, Y: 12})
	g.Step(core.NewInputFrame())
	g.die(DeathSelf)
	if !g.NewHighScore() {
		t.Error("score 2 over best 1 should be a new high score")
	}
}

func TestTickInterval(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	if got := g.TickInterval(); got != 100*time.Millisecond {
		t.Errorf("TickInterval = %v, want 100ms", got)
	}

	ramp := newTestGame(t, config.VariantModern, func(c *config.SnakeConfig) {
		config.ApplySpeedPreset(c, config.SpeedRamp)
	})
	ramp.score = 50
	if got := ramp.TickInterval(); got != 50*time.Millisecond {
		t.Errorf("ramped TickInterval = %v, want 50ms", got)
	}
}

func TestOptionsApplyOnLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prev := CurrentOptions()
	t.Cleanup(func() { SetOptions(prev) })

	SetOptions(Options{Tick: 80 * time.Millisecond})
	g := New(config.VariantClassic)
	g.Reset(testRuntime(1))

	if got := g.Config().Timing.TickMillis; got != 80 {
		t.Errorf("tick_ms = %d, want 80", got)
	}
	if g.Config().Rules.Wrap {
		t.Error("classic config should not wrap")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})
	screen := core.NewScreen(80, 40)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Snake", "Score: 0", "Best: 0", "█", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}

	g.Step(frame(core.ActionPause))
	g.die(DeathSelf)
	g.Render(screen)
	out = screen.String()
	for _, want := range []string{"Game Over", "Score: 0", "You bit yourself", "Press Space to Start"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over overlay missing %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, config.VariantModern, nil)
	parkApple(g, core.Point{X: 0, Y: 0})
	g.Resize(40, 20)

	before := head(g)
	g.Step(core.NewInputFrame())
	if head(g) != before {
		t.Error("snake moved while the window was too small")
	}

	screen := core.NewScreen(40, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message missing")
	}

	g.Resize(80, 40)
	g.Step(core.NewInputFrame())
	if head(g) == before {
		t.Error("snake should move after the window grows")
	}
}

func TestRegistered(t *testing.T) {
	for id, title := range map[string]string{
		config.VariantClassic: "Snake (Classic)",
		config.VariantModern:  "Snake",
	} {
		if !registry.Exists(id) {
			t.Fatalf("variant %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id || g.Title() != title {
			t.Errorf("Create(%q) = %q/%q, want %q/%q", id, g.ID(), g.Title(), id, title)
		}
		if _, ok := g.(registry.Resizer); !ok {
			t.Errorf("%q should implement Resizer", id)
		}
		if _, ok := g.(registry.Paced); !ok {
			t.Errorf("%q should implement Paced", id)
		}
	}
}
