package snake

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight = 1
	// cellW is the number of terminal columns per board cell, keeping cells
	// roughly square.
	cellW = 2
)

// boardScreenSize returns the board's size on screen including its border.
func (g *Game) boardScreenSize() (int, int) {
	return g.cfg.Board.Width*cellW + 2, g.cfg.Board.Height + 2
}

// cellOrigin returns the screen position of a board cell's first column.
func (g *Game) cellOrigin(p core.Point) (int, int) {
	return g.boardX + 1 + p.X*cellW, g.boardY + 1 + p.Y
}

// setCell paints both columns of a board cell.
func (g *Game) setCell(dst *core.Screen, p core.Point, left, right rune, c core.Color) {
	x, y := g.cellOrigin(p)
	dst.SetColored(x, y, left, c)
	dst.SetColored(x+1, y, right, c)
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.boardScreenSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", w, h+hudHeight), core.ColorGray)
		return
	}

	g.renderBoard(dst)
	if g.hasApple {
		g.setCell(dst, g.apple, '●', ' ', core.ColorBrightRed)
	}
	g.renderSnake(dst)

	switch g.phase {
	case PhaseGameOver:
		lines := []string{"Game Over", fmt.Sprintf("Score: %d", g.score)}
		if msg := g.causeMessage(); msg != "" {
			lines = append(lines, msg)
		}
		if g.NewHighScore() {
			lines = append(lines, "New high score!")
		}
		if g.cfg.Rules.Restart {
			lines = append(lines, "Press Space to Start")
		}
		g.renderOverlay(dst, lines...)
	case PhasePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) causeMessage() string {
	switch g.cause {
	case DeathWall:
		return "You hit the wall"
	case DeathSelf:
		return "You bit yourself"
	case DeathBoardFull:
		return "The board is full!"
	default:
		return ""
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d", g.title, g.score, g.bestShown)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// renderBoard draws the border and, when enabled, the grid dots.
func (g *Game) renderBoard(dst *core.Screen) {
	w, h := g.boardScreenSize()
	dst.DrawBox(core.NewRect(g.boardX, g.boardY, w, h), core.ColorGray)

	if !g.cfg.Display.ShowGrid {
		return
	}
	for y := 0; y < g.cfg.Board.Height; y++ {
		for x := 0; x < g.cfg.Board.Width; x++ {
			g.setCell(dst, core.Point{X: x, Y: y}, '·', ' ', core.ColorGray)
		}
	}
}

// renderSnake draws the body, the head and the tongue.
func (g *Game) renderSnake(dst *core.Screen) {
	for i := len(g.snake) - 1; i >= 1; i-- {
		g.setCell(dst, g.snake[i], '▓', '▓', core.ColorGreen)
	}
	if len(g.snake) == 0 {
		return
	}
	g.setCell(dst, g.snake[0], '█', '█', core.ColorBrightGreen)

	if g.aboutToEat {
		g.renderTongue(dst)
	}
}

// renderTongue draws the tongue in the cell ahead of the head, unless the
// apple is already there.
func (g *Game) renderTongue(dst *core.Screen) {
	ahead := g.snake[0].Add(g.direction.Delta())
	if g.cfg.Rules.Wrap {
		ahead = g.wrap(ahead)
	}
	if !g.inBounds(ahead) || ahead == g.apple {
		return
	}

	switch g.direction {
	case core.DirRight:
		g.setCell(dst, ahead, '─', '<', core.ColorRed)
	case core.DirLeft:
		g.setCell(dst, ahead, '>', '─', core.ColorRed)
	case core.DirUp:
		g.setCell(dst, ahead, 'Y', ' ', core.ColorRed)
	case core.DirDown:
		g.setCell(dst, ahead, 'λ', ' ', core.ColorRed)
	}
}

// renderOverlay draws a boxed message centered on the board.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(l))
	}

	boardW, boardH := g.boardScreenSize()
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := g.boardX + (boardW-boxW)/2
	boxY := g.boardY + (boardH-boxH)/2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, boxY+1+i, l, color)
	}
}
