package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// styleFor returns the lipgloss style drawing c.
func styleFor(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color become a single styled run, and trailing
// blank default cells of each row are dropped.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[core.Color]lipgloss.Style)
	var run strings.Builder

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		end := rowEnd(s, y)
		for x := 0; x < end; {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < end; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[color]
			if !ok {
				style = styleFor(color)
				styles[color] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// rowEnd returns the column after the last cell of row y that draws
// something.
func rowEnd(s *core.Screen, y int) int {
	end := s.Width()
	for end > 0 {
		cell := s.GetCell(end-1, y)
		if cell.Rune != ' ' || cell.Color != core.ColorDefault {
			break
		}
		end--
	}
	return end
}
