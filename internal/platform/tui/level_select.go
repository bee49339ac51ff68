package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/snake/levels"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	invalidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
)

// LevelSelectModel lets the player choose the starting level. Levels that
// fail validation are listed but cannot be picked.
type LevelSelectModel struct {
	results  []levels.Result
	cursor   int
	width    int
	height   int
	selected int // 0 while choosing
	quitting bool
}

// NewLevelSelectModel lists every level in src.
func NewLevelSelectModel(src *levels.Source, width, height int) (LevelSelectModel, error) {
	results, err := src.CheckAll()
	if err != nil {
		return LevelSelectModel{}, err
	}
	if len(results) == 0 {
		return LevelSelectModel{}, fmt.Errorf("tui: no levels in %s", src.Name())
	}

	m := LevelSelectModel{results: results, width: width, height: height}
	m.cursor = m.nextValid(-1, 1)
	return m, nil
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = m.nextValid(m.cursor, -1)
	case MenuActionDown:
		m.cursor = m.nextValid(m.cursor, 1)
	case MenuActionSelect:
		if m.cursor >= 0 && m.results[m.cursor].Err == nil {
			m.selected = m.results[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

// nextValid returns the index of the next selectable level from i in
// direction dir, or i itself when there is none.
func (m LevelSelectModel) nextValid(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.results); j += dir {
		if m.results[j].Err == nil {
			return j
		}
	}
	return i
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select starting level:", m.width))
	b.WriteString("\n\n")

	for i, r := range m.results {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		switch {
		case r.Err != nil:
			line = invalidStyle.Render(fmt.Sprintf("%s%2d. invalid", cursor, r.ID))
		case i == m.cursor:
			line = selectedStyle.Render(fmt.Sprintf("%s%2d. %dx%d", cursor, r.ID, r.Level.Width, r.Level.Height))
		default:
			line = fmt.Sprintf("%s%2d. %dx%d", cursor, r.ID, r.Level.Width, r.Level.Height)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen level id, or 0 while still choosing.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if the user left without choosing.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
