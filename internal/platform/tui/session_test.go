package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func sessionUpdate(t *testing.T, s SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := s.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestMenuListsVariants(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("modern", "ann", 9); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewMenuModel(Options{Store: store, Player: "ann"}, testConfig())
	view := m.View()

	for _, want := range []string{"S N A K E", "Snake (Classic)", "best 9", "ann"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q", want)
		}
	}
	if m.Cursor() != "classic" {
		t.Errorf("cursor = %q, want classic", m.Cursor())
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(Options{}, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // already at the end
	m = next.(MenuModel)
	if m.Cursor() != "modern" {
		t.Fatalf("cursor = %q, want modern", m.Cursor())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != "modern" || cmd == nil {
		t.Errorf("selected = %v, want modern", m.Selected())
	}
}

func TestSessionPlayAndReturn(t *testing.T) {
	s := NewSessionModel(Options{Player: "ann"}, testConfig())

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyDown})
	s, cmd := sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if !s.InGame() {
		t.Fatal("enter should start the game")
	}
	if cmd == nil {
		t.Fatal("starting a game should schedule a tick")
	}
	if s.game.game.ID() != "modern" {
		t.Fatalf("game = %q, want modern", s.game.game.ID())
	}

	// Pause the game, then go back to the menu
	s, _ = sessionUpdate(t, s, runeKey('p'))
	s, _ = sessionUpdate(t, s, TickMsg{ID: s.game.id})
	if !s.game.State().Paused {
		t.Fatal("game should be paused")
	}
	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})

	if s.InGame() {
		t.Fatal("esc on a paused game should return to the menu")
	}
	if s.menu.Cursor() != "modern" {
		t.Errorf("menu cursor = %q, want the last played variant", s.menu.Cursor())
	}
	if s.quitting {
		t.Error("returning to the menu should not end the session")
	}
}

// playRound starts the modern variant from the menu, records its first
// apple, then pauses and returns to the menu.
func playRound(t *testing.T, s SessionModel) (SessionModel, snake.Snapshot) {
	t.Helper()
	s.menu.highlight("modern")
	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if !s.InGame() {
		t.Fatal("enter should start the game")
	}
	g, ok := s.game.game.(*snake.Game)
	if !ok {
		t.Fatalf("game is %T", s.game.game)
	}
	snap := g.Snapshot()

	s, _ = sessionUpdate(t, s, runeKey('p'))
	s, _ = sessionUpdate(t, s, TickMsg{ID: s.game.id})
	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.InGame() {
		t.Fatal("esc on a paused game should return to the menu")
	}
	return s, snap
}

func TestSessionReseedsEachGame(t *testing.T) {
	for _, seed := range []int64{0, 1234567} {
		cfg := testConfig()
		cfg.Seed = seed
		s := NewSessionModel(Options{}, cfg)

		apples := make(map[core.Point]bool)
		for round := 0; round < 4; round++ {
			var snap snake.Snapshot
			s, snap = playRound(t, s)
			apples[snap.Apple] = true
		}
		if len(apples) < 2 {
			t.Errorf("seed %d: every game in the session placed the first apple at %v", seed, apples)
		}
	}
}

func TestSessionFixedSeedReplays(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 99

	first := NewSessionModel(Options{}, cfg)
	second := NewSessionModel(Options{}, cfg)
	for round := 0; round < 3; round++ {
		var a, b snake.Snapshot
		first, a = playRound(t, first)
		second, b = playRound(t, second)
		if !a.Equal(b) {
			t.Errorf("round %d differs between sessions with the same seed", round)
		}
	}
}

func TestSessionScoreboard(t *testing.T) {
	store := openStore(t)
	store.SaveScore("classic", "ann", 12)

	s := NewSessionModel(Options{Store: store}, testConfig())

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if !s.ShowingScores() {
		t.Fatal("tab should open the scoreboard")
	}
	view := s.View()
	for _, want := range []string{"HIGH SCORES", "ann", "12"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.ShowingScores() || s.quitting {
		t.Error("esc should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	s := NewSessionModel(Options{}, testConfig())

	s, cmd := sessionUpdate(t, s, runeKey('q'))
	if !s.quitting || cmd == nil {
		t.Error("q should end the session")
	}
	if s.View() != "" {
		t.Error("ended session should render nothing")
	}
}

func TestScoreboardSwitchVariant(t *testing.T) {
	store := openStore(t)
	store.SaveScore("modern", "bob", 3)

	sb := NewScoreboardModel(store, "classic", 100, 30)
	if sb.Variant() != "classic" {
		t.Fatalf("variant = %q, want classic", sb.Variant())
	}
	if !strings.Contains(sb.View(), "No scores recorded yet") {
		t.Error("empty classic table should say so")
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.Variant() != "modern" {
		t.Fatalf("variant = %q, want modern", sb.Variant())
	}
	if !strings.Contains(sb.View(), "bob") {
		t.Error("modern table should list bob")
	}

	narrow := NewScoreboardModel(nil, "modern", 60, 30)
	if !strings.Contains(narrow.View(), "unavailable") {
		t.Error("scoreboard without a store should say scores are unavailable")
	}
}
