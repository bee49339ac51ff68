package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Playfield palette.
var (
	outsideColor = lipgloss.Color("#CAC5AE")
	fieldColor   = lipgloss.Color("#4A994C")
	snakeColor   = lipgloss.Color("#EFCD37")
	foodColor    = lipgloss.Color("#882F67")
	gateColor    = lipgloss.Color("#F49390")
	barrierColor = lipgloss.Color("#343434")
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorOutside:   lipgloss.NewStyle().Background(outsideColor).Foreground(outsideColor),
	core.ColorField:     lipgloss.NewStyle().Background(fieldColor).Foreground(fieldColor),
	core.ColorSnake:     lipgloss.NewStyle().Background(snakeColor).Foreground(lipgloss.Color("#B8962A")),
	core.ColorSnakeHead: lipgloss.NewStyle().Background(snakeColor).Foreground(barrierColor).Bold(true),
	core.ColorFood:      lipgloss.NewStyle().Background(foodColor).Foreground(lipgloss.Color("#F2D0E4")),
	core.ColorGate:      lipgloss.NewStyle().Background(gateColor).Foreground(barrierColor),
	core.ColorBarrier:   lipgloss.NewStyle().Background(barrierColor).Foreground(lipgloss.Color("#555555")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}
