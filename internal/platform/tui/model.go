package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// statusHeight is the number of rows below the game reserved for the help bar.
const statusHeight = 1

// Options carries the services shared by every screen of a session.
type Options struct {
	Store  *storage.Store // May be nil; play continues without persistence
	Logger *log.Logger    // May be nil; logs are discarded
	Player string         // Name recorded with saved scores
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	id         int64
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	rank       int  // Rank of the last saved score, 0 if none
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultTickInterval
	}

	logger := opts.logger().With("variant", game.ID())
	cfg.BestScore = bestScore(opts.Store, game.ID(), logger)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		id:         nextModelID(),
		game:       game,
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}

	gameCfg := m.gameConfig()
	m.screen = core.NewScreen(gameCfg.ScreenW, gameCfg.ScreenH)
	m.game.Reset(gameCfg)
	m.gameState = m.game.State()

	logger.Debug("game started", "player", opts.Player, "seed", cfg.Seed, "best", cfg.BestScore)
	return m
}

// bestScore looks up the stored high score, 0 when unavailable.
func bestScore(store *storage.Store, variant string, logger *log.Logger) int {
	if store == nil {
		return 0
	}
	best, err := store.HighScore(variant)
	if err != nil {
		logger.Warn("could not load high score", "err", err)
		return 0
	}
	return best
}

// gameConfig returns the runtime config with the game area's size.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = core.Max(0, cfg.ScreenH-statusHeight)
	return cfg
}

// interval returns the delay until the next tick.
func (m Model) interval() time.Duration {
	if p, ok := m.game.(registry.Paced); ok {
		if d := p.TickInterval(); d > 0 {
			return d
		}
	}
	return m.config.TickInterval
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Back):
		// Leaving mid-round needs a pause first
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	gameCfg := m.gameConfig()
	m.screen.Resize(gameCfg.ScreenW, gameCfg.ScreenH)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(gameCfg.ScreenW, gameCfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gameCfg)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, e := range result.Events {
		switch e {
		case core.EventAteApple:
			m.logger.Debug("apple eaten", "score", m.gameState.Score)
		case core.EventPaused, core.EventResumed:
			m.logger.Debug(e.String())
		case core.EventRestarted:
			m.scoreSaved = false
			m.rank = 0
			m.logger.Info("game restarted", "player", m.opts.Player)
		case core.EventDied:
			m.logger.Info("game over", "player", m.opts.Player, "score", m.gameState.Score, "cause", m.outcome())
		}
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		m.saveScore()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.id, m.interval())
}

// outcome describes how the round ended, if the game reports it.
func (m Model) outcome() string {
	if r, ok := m.game.(registry.Reporter); ok {
		return r.Outcome()
	}
	return ""
}

// saveScore stores a positive final score. Failures are logged and play goes on.
func (m *Model) saveScore() {
	score := m.gameState.Score
	if score <= 0 || m.opts.Store == nil {
		return
	}

	rank, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.Player, score)
	if err != nil {
		m.logger.Error("could not save score", "score", score, "err", err)
		return
	}
	m.rank = rank
	m.logger.Info("score saved", "player", m.opts.Player, "score", score, "rank", rank)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	rankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := statusStyle.Render(m.help.View(m.keyMapper.Keys()))
	if m.gameState.GameOver && m.rank > 0 {
		status = rankStyle.Render(fmt.Sprintf("#%d on the board  ", m.rank)) + status
	}

	return RenderScreen(m.screen) + "\n" + status
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Rank returns the leaderboard rank of the last saved score, 0 if none.
func (m Model) Rank() int {
	return m.rank
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: run game: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
