// Package snake implements the snake game logic: a body of grid cells that
// advances one cell per tick, grows when it eats an apple and dies when it
// runs into itself (or, under classic rules, into a wall).
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Phase is the state machine governing which update/draw logic runs.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// DeathCause explains why a game ended.
type DeathCause string

const (
	DeathNone DeathCause = ""
	// DeathWall is the cause when the head leaves the board under classic rules
	DeathWall DeathCause = "wall-collision"
	// DeathSelf is the cause when the head runs into the body
	DeathSelf DeathCause = "self-collision"
	// DeathBoardFull is the cause when no free cell is left for an apple
	DeathBoardFull DeathCause = "board-full"
)

// Options are process-wide overrides set from the command line before games
// are created through the registry.
type Options struct {
	ConfigPath string             // Custom rules file, empty for the search order
	Speed      config.SpeedPreset // Optional speed preset
	Tick       time.Duration      // Fixed tick override, 0 keeps the config value
}

var options Options

// SetOptions sets the overrides used by games created after the call.
func SetOptions(o Options) {
	options = o
}

// CurrentOptions returns the overrides set by SetOptions.
func CurrentOptions() Options {
	return options
}

// Game implements the snake game for one rule variant.
type Game struct {
	variant    string
	title      string
	cfg        config.SnakeConfig
	configured bool
	speed      *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64

	phase     Phase
	cause     DeathCause
	score     int
	best      int // Best score known when the current game started
	bestShown int // Best score displayed in the HUD

	// Snake state
	snake     []core.Point // Head at index 0
	direction core.Direction
	nextDir   core.Direction // Buffered direction for the next move

	apple      core.Point
	hasApple   bool
	aboutToEat bool

	// Screen layout
	screenW  int
	screenH  int
	boardX   int // Screen column of the board's left border
	boardY   int // Screen row of the board's top border
	tooSmall bool
}

// New creates a game for a registered variant, loading its rules on first Reset.
func New(variant string) *Game {
	return &Game{
		variant: variant,
		title:   titleFor(variant),
	}
}

// NewWithConfig creates a game with explicit rules. The config is used as is.
func NewWithConfig(variant string, cfg config.SnakeConfig) *Game {
	g := New(variant)
	g.cfg = cfg
	g.configured = true
	return g
}

func titleFor(variant string) string {
	switch variant {
	case config.VariantClassic:
		return "Snake (Classic)"
	case config.VariantModern:
		return "Snake"
	default:
		return "Snake (" + variant + ")"
	}
}

func init() {
	for _, v := range []string{config.VariantClassic, config.VariantModern} {
		variant := v
		registry.Register(variant, func() registry.Game {
			return New(variant)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Config returns the rules in effect.
func (g *Game) Config() config.SnakeConfig {
	return g.cfg
}

// loadConfig resolves the rules the first time the game is reset.
func (g *Game) loadConfig() {
	if g.configured {
		return
	}
	cfg, err := config.Load(g.variant, options.ConfigPath)
	if err != nil {
		cfg = config.Default(g.variant)
	}
	if options.Speed != "" {
		config.ApplySpeedPreset(&cfg, options.Speed)
	}
	if options.Tick > 0 {
		cfg.Timing.TickMillis = int(options.Tick / time.Millisecond)
	}
	g.cfg = cfg
	g.configured = true
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	g.speed = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.best = cfg.BestScore
	g.bestShown = cfg.BestScore
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.start()
}

// restart begins a new round, keeping the RNG stream and best score.
func (g *Game) restart() {
	g.best = g.bestShown
	g.start()
}

// start places the snake and the first apple.
func (g *Game) start() {
	g.tick = 0
	g.score = 0
	g.phase = PhasePlaying
	g.cause = DeathNone

	// Head at the centre, body extending to the left, heading right
	length := core.Max(1, g.cfg.Snake.InitialLength)
	startX := g.cfg.Board.Width / 2
	startY := g.cfg.Board.Height / 2
	g.snake = make([]core.Point, length, core.Max(length, g.cfg.Board.Width*g.cfg.Board.Height))
	for i := range g.snake {
		g.snake[i] = core.Point{X: startX - i, Y: startY}
	}
	g.direction = core.DirRight
	g.nextDir = core.DirRight

	g.placeApple()
	g.aboutToEat = g.isAboutToEat()
}

// Resize updates the screen layout. The game is held while the window is
// too small to show the whole board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height

	boardW, boardH := g.boardScreenSize()
	requiredW := boardW
	requiredH := boardH + hudHeight
	g.tooSmall = width < requiredW || height < requiredH

	g.boardX = (width - boardW) / 2
	g.boardY = hudHeight
}

// placeApple puts the apple on a random cell not covered by the snake.
// A board without free cells ends the game.
func (g *Game) placeApple() {
	occupied := make(map[core.Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}

	var free []core.Point
	for y := 0; y < g.cfg.Board.Height; y++ {
		for x := 0; x < g.cfg.Board.Width; x++ {
			p := core.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.hasApple = false
		g.apple = core.Point{X: -1, Y: -1}
		g.die(DeathBoardFull)
		return
	}

	g.apple = free[g.rng.Intn(len(free))]
	g.hasApple = true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// inBounds reports whether p lies on the board.
func (g *Game) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.cfg.Board.Width && p.Y >= 0 && p.Y < g.cfg.Board.Height
}

// wrap maps p back onto the board, entering from the opposite edge.
func (g *Game) wrap(p core.Point) core.Point {
	return core.Point{
		X: core.Wrap(p.X, g.cfg.Board.Width),
		Y: core.Wrap(p.Y, g.cfg.Board.Height),
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	var events []core.Event

	if g.phase == PhaseGameOver {
		if g.cfg.Rules.Restart && input.Has(core.ActionRestart) {
			g.restart()
			events = append(events, core.EventRestarted)
		}
		return g.result(events)
	}

	if g.cfg.Rules.Pause {
		for _, a := range input.Sequence() {
			if a == core.ActionPause {
				events = append(events, g.togglePause())
			}
		}
	}

	// Turns pressed while paused are kept for the resume.
	g.processInput(input)

	if g.phase != PhasePlaying || g.tooSmall {
		return g.result(events)
	}

	events = append(events, g.move()...)

	return g.result(events)
}

func (g *Game) result(events []core.Event) core.StepResult {
	return core.StepResult{State: g.State(), Events: events}
}

// togglePause switches between PLAYING and PAUSED.
func (g *Game) togglePause() core.Event {
	if g.phase == PhasePlaying {
		g.phase = PhasePaused
		return core.EventPaused
	}
	g.phase = PhasePlaying
	return core.EventResumed
}

// processInput buffers the requested heading. A turn back onto the direction
// the snake last moved in is ignored, however many turns arrive in one tick.
func (g *Game) processInput(input core.InputFrame) {
	for _, a := range input.Sequence() {
		dir, ok := a.Direction()
		if !ok {
			continue
		}
		if dir != g.direction.Opposite() {
			g.nextDir = dir
		}
	}
}

// move advances the snake one cell and resolves apples and collisions.
func (g *Game) move() []core.Event {
	g.direction = g.nextDir

	head := g.snake[0].Add(g.direction.Delta())
	if g.cfg.Rules.Wrap {
		head = g.wrap(head)
	} else if !g.inBounds(head) {
		g.die(DeathWall)
		return []core.Event{core.EventDied}
	}

	eating := g.hasApple && head == g.apple

	// The tail cell is vacated this tick unless the snake grows
	checkLen := len(g.snake)
	if !eating {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if g.snake[i] == head {
			g.die(DeathSelf)
			return []core.Event{core.EventDied}
		}
	}

	// Shift every segment one slot toward the tail
	g.snake = append(g.snake, core.Point{})
	copy(g.snake[1:], g.snake[:len(g.snake)-1])
	g.snake[0] = head

	var events []core.Event
	if eating {
		g.score++
		if g.score > g.bestShown {
			g.bestShown = g.score
		}
		events = append(events, core.EventAteApple)
		g.placeApple()
		if g.phase == PhaseGameOver {
			events = append(events, core.EventDied)
		}
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	g.aboutToEat = g.isAboutToEat()
	return events
}

// die ends the round.
func (g *Game) die(cause DeathCause) {
	g.phase = PhaseGameOver
	g.cause = cause
	g.aboutToEat = false
}

// isAboutToEat reports whether the apple lies within the tongue proximity
// straight ahead of the head.
func (g *Game) isAboutToEat() bool {
	if !g.hasApple || g.cfg.Rules.TongueProximity <= 0 || len(g.snake) == 0 {
		return false
	}
	p := g.snake[0]
	for step := 1; step <= g.cfg.Rules.TongueProximity; step++ {
		p = p.Add(g.direction.Delta())
		if g.cfg.Rules.Wrap {
			p = g.wrap(p)
		} else if !g.inBounds(p) {
			return false
		}
		if p == g.apple {
			return true
		}
	}
	return false
}

// AboutToEat reports whether the tongue is showing.
func (g *Game) AboutToEat() bool {
	return g.aboutToEat
}

// Phase returns the current game phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Cause returns why the last round ended, empty while playing.
func (g *Game) Cause() DeathCause {
	return g.cause
}

// NewHighScore reports whether the finished round beat the best score known
// when it started.
func (g *Game) NewHighScore() bool {
	return g.phase == PhaseGameOver && g.score > 0 && g.score > g.best
}

// TickInterval returns the time until the next tick for the current speed.
func (g *Game) TickInterval() time.Duration {
	base := g.cfg.Timing.TickInterval()
	if base <= 0 {
		base = core.DefaultTickInterval
	}
	if g.speed == nil {
		return base
	}
	return g.speed.TickInterval(base, g.score, g.tick)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
	}
}

// Outcome returns the death cause of the finished round.
func (g *Game) Outcome() string {
	return string(g.cause)
}
