// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID identifies the game model that scheduled it.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var lastModelID atomic.Int64

// nextModelID returns a unique ID for a new game model, so ticks left over
// from a finished game are not delivered to the next one.
func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick after the interval.
func tickCmd(id int64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
