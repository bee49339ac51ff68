package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake/levels"
)

// SessionModel manages the full session flow: level select -> game ->
// level select.
type SessionModel struct {
	opts     Options
	src      *levels.Source
	menu     LevelSelectModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a session that starts at level select.
func NewSessionModel(opts Options, src *levels.Source) (SessionModel, error) {
	opts.setDefaults()
	opts.Levels = src

	menu, err := NewLevelSelectModel(src, opts.Width, opts.Height)
	if err != nil {
		return SessionModel{}, err
	}
	return SessionModel{opts: opts, src: src, menu: menu}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(LevelSelectModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if id := m.menu.Selected(); id > 0 {
		opts := m.opts
		opts.StartLevel = id
		game, err := NewModel(opts)
		if err != nil {
			m.opts.Logger.Error("cannot start level", "level", id, "error", err)
			return m.resetMenu()
		}
		game.keys.Back.SetEnabled(true)
		m.game = &game
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if game, ok := newModel.(Model); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game.recordScore()
		m.game = nil
		return m.resetMenu()
	}

	return m, cmd
}

func (m SessionModel) resetMenu() (tea.Model, tea.Cmd) {
	menu, err := NewLevelSelectModel(m.src, m.opts.Width, m.opts.Height)
	if err != nil {
		m.opts.Logger.Error("cannot list levels", "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.menu = menu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}

// RunSession starts the level select flow in the local terminal.
func RunSession(opts Options, src *levels.Source) error {
	model, err := NewSessionModel(opts, src)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
