// Package snake implements the snake simulation: a snake moving over a
// wraparound grid one tile per discrete step, growing on food, dying on
// collision, and leaving each level through a gate.
//
// The engine never reads the wall clock during a step. The host passes the
// current time to Advance, which converts elapsed time into zero or more
// discrete steps.
package snake

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// LevelSource loads levels by numeric id. Load must return an error when no
// level with that id exists.
type LevelSource interface {
	Load(id int) (*Level, error)
}

// Game is the mutable simulation state for one life.
type Game struct {
	gameplay config.Gameplay
	ramp     config.SpeedRamp
	levels   LevelSource
	rng      *rand.Rand
	now      func() time.Time
	logger   *log.Logger

	score          int
	snake          []core.Tile // Head at index 0
	length         int         // Target body length
	direction      core.Direction
	pending        []core.Direction // FIFO of requested headings
	food           *core.Tile
	gate           *core.Tile
	gameOver       bool
	paused         bool
	level          *Level
	eatenThisLevel int
	stepDelay      time.Duration
	lastStep       time.Time
	steps          uint64
}

// Option configures a Game.
type Option func(*Game)

// WithGameplay overrides the default gameplay parameters.
func WithGameplay(g config.Gameplay) Option {
	return func(game *Game) {
		game.gameplay = g
	}
}

// WithRand sets the random source used for food and gate placement.
func WithRand(rng *rand.Rand) Option {
	return func(game *Game) {
		game.rng = rng
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithClock sets the time source read when a level starts.
func WithClock(now func() time.Time) Option {
	return func(game *Game) {
		game.now = now
	}
}

// WithLogger sets the logger for level and scoring events.
func WithLogger(l *log.Logger) Option {
	return func(game *Game) {
		game.logger = l
	}
}

// New starts a game on level startLevel. Failing to load that level is
// fatal for the session.
func New(levels LevelSource, startLevel int, opts ...Option) (*Game, error) {
	g := &Game{
		gameplay: config.DefaultSnakeConfig().Gameplay,
		levels:   levels,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.ramp = g.gameplay.Ramp()

	lvl, err := levels.Load(startLevel)
	if err != nil {
		return nil, fmt.Errorf("snake: load level %d: %w", startLevel, err)
	}
	g.enterLevel(lvl)
	return g, nil
}

// enterLevel resets everything except the score for a fresh level.
func (g *Game) enterLevel(lvl *Level) {
	g.level = lvl
	g.snake = []core.Tile{lvl.Start}
	g.length = g.gameplay.StartLength
	g.direction = lvl.StartDirection
	g.pending = nil
	g.gate = nil
	g.eatenThisLevel = 0
	g.stepDelay = g.gameplay.StartStepDelay
	g.lastStep = g.now()
	g.food = g.spawn()

	g.logger.Info("level started", "level", lvl.ID, "size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height), "score", g.score)
}

// NextLevel moves to the level after the current one. When that level
// cannot be loaded, or the game is already over, the state is left unchanged
// and NextLevel returns false.
func (g *Game) NextLevel() bool {
	if g.gameOver {
		return false
	}
	next := g.level.ID + 1
	lvl, err := g.levels.Load(next)
	if err != nil {
		g.logger.Debug("staying on current level", "level", g.level.ID, "err", err)
		return false
	}
	g.enterLevel(lvl)
	return true
}

// SetDirection queues a heading change. Requests are not validated here;
// reversals are dropped when the step consumes them.
func (g *Game) SetDirection(d core.Direction) {
	g.pending = append(g.pending, d)
}

// Handle applies a host input intent. It reports whether the host should
// end the session.
func (g *Game) Handle(in core.Input) (quit bool) {
	switch in.Kind {
	case core.InputMove:
		g.SetDirection(in.Dir)
	case core.InputForceNextLevel:
		g.NextLevel()
	case core.InputPause:
		g.SetPaused(!g.paused, g.now())
	case core.InputQuit:
		return true
	}
	return false
}

// SetPaused freezes or resumes the simulation. Time spent paused is not
// caught up on resume. It has no effect once the game is over.
func (g *Game) SetPaused(paused bool, now time.Time) {
	if g.gameOver {
		return
	}
	g.paused = paused
	g.lastStep = now
}

// Advance runs every discrete step that fits in the time since the last
// step and returns how many ran. The step delay is re-read on each
// iteration, so eating food mid-catch-up speeds up the rest of the batch.
func (g *Game) Advance(now time.Time) int {
	if g.paused {
		g.lastStep = now
		return 0
	}

	elapsed := now.Sub(g.lastStep)
	n := 0
	for elapsed >= g.stepDelay {
		if g.gameOver {
			// Further steps are no-ops; settle the clock in one go.
			elapsed %= g.stepDelay
			g.lastStep = now.Add(-elapsed)
			break
		}
		elapsed -= g.stepDelay
		g.step()
		g.lastStep = now.Add(-elapsed)
		n++
	}
	return n
}

// step performs one discrete simulation tick.
func (g *Game) step() {
	if g.gameOver {
		return
	}
	g.steps++

	if len(g.pending) > 0 {
		d := g.pending[0]
		g.pending = g.pending[1:]
		if !core.IsOpposite(g.direction, d) {
			g.direction = d
		}
	}

	head := g.level.Wraparound(g.snake[0].Step(g.direction))

	if g.occupied(head) {
		g.die("self", head)
		return
	}
	if g.level.IsBarrier(head) {
		g.die("barrier", head)
		return
	}

	g.snake = slices.Insert(g.snake, 0, head)

	if g.food != nil && *g.food == head {
		g.eat()
	}

	if g.gate != nil && *g.gate == head {
		g.NextLevel()
	}

	if len(g.snake) > g.length {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

func (g *Game) eat() {
	g.score++
	g.eatenThisLevel++
	g.stepDelay = g.ramp.Next(g.stepDelay)
	g.length += g.gameplay.Growth
	g.food = g.spawn()

	g.logger.Debug("food eaten", "score", g.score, "step_delay", g.stepDelay, "length", g.length)

	if g.gate == nil && g.eatenThisLevel > g.gameplay.GateThreshold {
		g.gate = g.spawn()
		if g.gate != nil {
			g.logger.Debug("gate opened", "level", g.level.ID, "at", *g.gate)
		}
	}
}

func (g *Game) die(cause string, at core.Tile) {
	g.gameOver = true
	g.logger.Info("game over", "cause", cause, "at", at, "score", g.score, "level", g.level.ID)
}

// spawn places a special tile on a free cell, or returns nil on a full board.
func (g *Game) spawn() *core.Tile {
	t, ok := spawnTile(g.rng, g.level, g.occupied)
	if !ok {
		return nil
	}
	return &t
}

func (g *Game) occupied(t core.Tile) bool {
	return slices.Contains(g.snake, t)
}

// Score returns the number of foods eaten this life.
func (g *Game) Score() int {
	return g.score
}

// Snake returns a copy of the body, head first.
func (g *Game) Snake() []core.Tile {
	return slices.Clone(g.snake)
}

// Head returns the head tile.
func (g *Game) Head() core.Tile {
	return g.snake[0]
}

// Length returns the target body length.
func (g *Game) Length() int {
	return g.length
}

// Direction returns the committed heading.
func (g *Game) Direction() core.Direction {
	return g.direction
}

// Pending returns the number of queued heading changes.
func (g *Game) Pending() int {
	return len(g.pending)
}

// Food returns the food tile, if any.
func (g *Game) Food() (core.Tile, bool) {
	if g.food == nil {
		return core.Tile{}, false
	}
	return *g.food, true
}

// Gate returns the gate tile, if it has appeared.
func (g *Game) Gate() (core.Tile, bool) {
	if g.gate == nil {
		return core.Tile{}, false
	}
	return *g.gate, true
}

// GameOver reports whether the snake has crashed.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Paused reports whether the simulation is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Level returns the current level.
func (g *Game) Level() *Level {
	return g.level
}

// EatenThisLevel returns the food count since the level started.
func (g *Game) EatenThisLevel() int {
	return g.eatenThisLevel
}

// StepDelay returns the current time between steps.
func (g *Game) StepDelay() time.Duration {
	return g.stepDelay
}

// LastStep returns the time the last step was accounted for.
func (g *Game) LastStep() time.Time {
	return g.lastStep
}

// Steps returns the number of discrete steps simulated.
func (g *Game) Steps() uint64 {
	return g.steps
}
