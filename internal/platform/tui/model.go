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
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options configures a game session.
type Options struct {
	Config     config.SnakeConfig
	Levels     snake.LevelSource
	Store      *storage.Store // nil disables score persistence
	Logger     *log.Logger
	Player     string
	SessionID  string // generated when empty
	Seed       int64  // 0 = time-based
	StartLevel int    // 0 = Config.Levels.StartLevel
	Width      int
	Height     int
	Clock      func() time.Time // defaults to time.Now
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.SessionID == "" {
		o.SessionID = uuid.NewString()
	}
	if o.StartLevel <= 0 {
		o.StartLevel = max(o.Config.Levels.StartLevel, 1)
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 80, 24
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Config.Display.FPS <= 0 {
		o.Config.Display.FPS = 60
	}
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	opts       Options
	game       *snake.Game
	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	runs       int
	highScore  int
	scoreSaved bool // whether the current game over has been recorded
	quitting   bool
	backToMenu bool
}

// NewModel starts a game. It fails when the start level cannot be loaded.
func NewModel(opts Options) (Model, error) {
	opts.setDefaults()

	m := Model{
		opts:   opts,
		screen: core.NewScreen(opts.Width, screenHeight(opts.Height)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = opts.Width

	if opts.Store != nil {
		if high, err := opts.Store.HighScore(); err == nil {
			m.highScore = high
		} else {
			opts.Logger.Warn("could not read high score", "error", err)
		}
	}

	game, err := m.newGame()
	if err != nil {
		return Model{}, err
	}
	m.game = game
	return m, nil
}

// screenHeight leaves one row for the help line.
func screenHeight(h int) int {
	return max(h-1, 1)
}

func (m *Model) newGame() (*snake.Game, error) {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(m.runs)
	}
	m.runs++

	return snake.New(m.opts.Levels, m.opts.StartLevel,
		snake.WithGameplay(m.opts.Config.Gameplay),
		snake.WithSeed(seed),
		snake.WithClock(m.opts.Clock),
		snake.WithLogger(m.opts.Logger.With("session", m.opts.SessionID)),
	)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.Display.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.game.GameOver() || m.game.Paused() {
			m.backToMenu = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.game.GameOver() {
			return m.restart()
		}
		return m, nil
	}

	in := m.keys.MapKey(msg)
	if in.Kind == core.InputNone {
		return m, nil
	}
	if m.game.Handle(in) {
		m.recordScore()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	game, err := m.newGame()
	if err != nil {
		// The start level loaded before; keep showing the finished game.
		m.opts.Logger.Error("restart failed", "error", err)
		return m, nil
	}
	m.game = game
	m.scoreSaved = false
	return m, nil
}

// handleTick advances the simulation to the frame time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.game.Advance(now)

	if m.game.GameOver() {
		m.recordScore()
	}

	return m, tickCmd(m.opts.Config.Display.FPS)
}

// recordScore saves the current run once. Runs without food are not kept.
func (m *Model) recordScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	score := m.game.Score()
	if score == 0 {
		return
	}
	if score > m.highScore {
		m.opts.Logger.Info("new high score", "score", score, "previous", m.highScore)
		m.highScore = score
	}
	if m.opts.Store == nil {
		return
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	m.opts.Store.SaveScore(storage.ScoreEntry{
		Player:    m.opts.Player,
		SessionID: m.opts.SessionID,
		Score:     score,
		Level:     m.game.Level().ID,
		Steps:     m.game.Steps(),
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%d_%s.txt", m.game.Level().ID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := m.help.View(m.keys)
	if m.highScore > 0 {
		status = fmt.Sprintf("best %d • %s", m.highScore, status)
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status)
}

// Game returns the running engine.
func (m Model) Game() *snake.Game {
	return m.game
}

// IsQuitting reports whether the user asked to end the session.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to level select.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
