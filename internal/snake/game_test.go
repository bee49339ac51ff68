package snake

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

var errMissing = errors.New("missing level")

// stubLevels serves level text keyed by id.
type stubLevels map[int]string

func (s stubLevels) Load(id int) (*Level, error) {
	text, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("level %d: %w", id, errMissing)
	}
	return ParseLevel(id, []byte(text), DefaultLimits())
}

// openLevel returns a barrier-free w x h level with marker at (x, y).
func openLevel(w, h, x, y int, marker byte) string {
	var b strings.Builder
	for row := 0; row < h; row++ {
		line := []byte(strings.Repeat(".", w))
		if row == y {
			line[x] = marker
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, levels stubLevels, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithSeed(42), WithClock(func() time.Time { return t0 })}, opts...)
	g, err := New(levels, 1, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// feedAhead puts the food on the tile the head will enter next.
func feedAhead(g *Game) {
	next := g.level.Wraparound(g.Head().Step(g.direction))
	g.food = &next
}

func TestNewInitialState(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(20, 10, 3, 4, '^')})

	if g.Head() != core.T(3, 4) || g.Direction() != core.Up {
		t.Errorf("head %v heading %v, expected (3,4) up", g.Head(), g.Direction())
	}
	if g.Length() != 10 || len(g.Snake()) != 1 {
		t.Errorf("length=%d body=%d, expected target 10 with a single tile", g.Length(), len(g.Snake()))
	}
	if g.Score() != 0 || g.EatenThisLevel() != 0 || g.GameOver() {
		t.Error("fresh game should have no score and not be over")
	}
	if g.StepDelay() != 162*time.Millisecond {
		t.Errorf("step delay = %v, expected 162ms", g.StepDelay())
	}
	if !g.LastStep().Equal(t0) {
		t.Errorf("last step = %v, expected %v", g.LastStep(), t0)
	}
	food, ok := g.Food()
	if !ok {
		t.Fatal("food should be placed on start")
	}
	if food == g.Head() {
		t.Error("food placed on the snake")
	}
	if _, ok := g.Gate(); ok {
		t.Error("gate should be absent on start")
	}
}

func TestNewMissingLevel(t *testing.T) {
	_, err := New(stubLevels{}, 1)
	if !errors.Is(err, errMissing) {
		t.Fatalf("New error = %v, expected errMissing", err)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(stubLevels{1: ">>"}, 1)
	if !errors.Is(err, ErrMultipleStarts) {
		t.Fatalf("New error = %v, expected ErrMultipleStarts", err)
	}
}

func TestStepMoves(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(20, 10, 5, 5, '>')})
	g.food = nil

	g.step()
	if g.Head() != core.T(6, 5) {
		t.Errorf("head = %v, expected (6,5)", g.Head())
	}
	if got := g.Snake(); len(got) != 2 || got[1] != core.T(5, 5) {
		t.Errorf("body = %v, expected [(6,5) (5,5)]", got)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(20, 10, 5, 5, '>')})
	g.food = nil

	g.SetDirection(core.Left)
	g.step()

	if g.Direction() != core.Right {
		t.Errorf("direction = %v, expected right", g.Direction())
	}
	if g.Head() != core.T(6, 5) {
		t.Errorf("head = %v, expected (6,5)", g.Head())
	}
	if g.Pending() != 0 {
		t.Errorf("reversal should be consumed, %d pending", g.Pending())
	}
}

func TestQueuedDirections(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(20, 10, 5, 5, '>')})
	g.food = nil

	g.SetDirection(core.Down)
	g.SetDirection(core.Left)
	if g.Pending() != 2 {
		t.Fatalf("pending = %d, expected 2", g.Pending())
	}

	g.step()
	if g.Direction() != core.Down || g.Head() != core.T(5, 6) {
		t.Errorf("after step 1: %v at %v, expected down at (5,6)", g.Direction(), g.Head())
	}
	g.step()
	if g.Direction() != core.Left || g.Head() != core.T(4, 6) {
		t.Errorf("after step 2: %v at %v, expected left at (4,6)", g.Direction(), g.Head())
	}
}

func TestWrapsAroundEdges(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(6, 4, 5, 0, '>')})
	g.food = nil

	g.step()
	if g.Head() != core.T(0, 0) {
		t.Errorf("head = %v, expected (0,0) after wrapping right", g.Head())
	}
	g.SetDirection(core.Up)
	g.step()
	if g.Head() != core.T(0, 3) {
		t.Errorf("head = %v, expected (0,3) after wrapping up", g.Head())
	}
}

func TestGrowthInvariant(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})
	initial := g.Length()

	for n := 1; n <= 6; n++ {
		feedAhead(g)
		g.step()
		if g.GameOver() {
			t.Fatalf("died on step %d", n)
		}
		if g.Length() != initial+5*n {
			t.Errorf("after %d foods length = %d, expected %d", n, g.Length(), initial+5*n)
		}
		if want := min(n+1, g.Length()); len(g.Snake()) != want {
			t.Errorf("after %d steps body = %d, expected %d", n, len(g.Snake()), want)
		}
	}
}

func TestBodyTrimmedToLength(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})
	g.food = nil

	for range 15 {
		g.step()
	}
	if len(g.Snake()) != 10 {
		t.Errorf("body = %d, expected the target length 10", len(g.Snake()))
	}
}

func TestBarrierCollision(t *testing.T) {
	g := newTestGame(t, stubLevels{1: ".>#.\n....\n"})
	g.food = nil

	g.step()
	if !g.GameOver() {
		t.Fatal("expected game over on barrier")
	}
	if g.Head() != core.T(1, 0) {
		t.Errorf("head moved to %v, expected it to stay at (1,0)", g.Head())
	}

	steps := g.Steps()
	g.step()
	if g.Steps() != steps {
		t.Error("step after game over should be a no-op")
	}
}

func TestSelfCollisionWraparound(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(5, 3, 4, 0, '>')})
	g.food = nil
	g.snake = []core.Tile{core.T(4, 0), core.T(3, 0), core.T(2, 0), core.T(1, 0), core.T(0, 0)}

	g.step()
	if !g.GameOver() {
		t.Fatal("expected self collision after wrapping onto the tail")
	}
}

func TestCollisionPrecedence(t *testing.T) {
	// The tile ahead is both a barrier and part of the body.
	g := newTestGame(t, stubLevels{1: ".>#\n...\n...\n"})
	g.food = nil
	g.snake = []core.Tile{core.T(1, 0), core.T(2, 0)}

	g.step()
	if !g.GameOver() {
		t.Fatal("expected game over")
	}
}

func TestEatScoresAndSpeedsUp(t *testing.T) {
	// Scenario: three foods in a row.
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})

	want := g.StepDelay()
	for range 3 {
		feedAhead(g)
		g.step()
		want = time.Duration(float64(want) * 0.95)
	}

	if g.Score() != 3 {
		t.Errorf("score = %d, expected 3", g.Score())
	}
	if g.Length() != 25 {
		t.Errorf("length = %d, expected 25", g.Length())
	}
	if g.StepDelay() != want {
		t.Errorf("step delay = %v, expected %v", g.StepDelay(), want)
	}
	if food, ok := g.Food(); !ok || g.occupied(food) {
		t.Errorf("food should be respawned off the snake, got %v %v", food, ok)
	}
}

func TestGateSpawnsOnceAndAdvancesLevel(t *testing.T) {
	levels := stubLevels{
		1: openLevel(40, 6, 1, 2, '>'),
		2: openLevel(12, 12, 6, 6, 'v'),
	}
	g := newTestGame(t, levels)

	for n := 1; n <= 10; n++ {
		feedAhead(g)
		g.step()
	}
	if _, ok := g.Gate(); ok {
		t.Fatal("gate should not appear after 10 foods")
	}

	feedAhead(g)
	g.step()
	if g.EatenThisLevel() != 11 {
		t.Fatalf("eaten = %d, expected 11", g.EatenThisLevel())
	}
	if _, ok := g.Gate(); !ok {
		t.Fatal("gate should appear after the 11th food")
	}

	// Park the gate off the path and check another food does not move it.
	parked := core.T(0, 5)
	g.gate = &parked
	feedAhead(g)
	g.step()
	if gate, ok := g.Gate(); !ok || gate != parked {
		t.Fatalf("gate = %v %v, expected it to stay at %v", gate, ok, parked)
	}

	score := g.Score()
	ahead := g.level.Wraparound(g.Head().Step(g.direction))
	g.gate = &ahead
	g.food = nil
	g.step()

	if g.Level().ID != 2 {
		t.Fatalf("level = %d, expected 2", g.Level().ID)
	}
	if g.Score() != score {
		t.Errorf("score = %d, expected %d to carry over", g.Score(), score)
	}
	if g.EatenThisLevel() != 0 {
		t.Errorf("eaten = %d, expected reset to 0", g.EatenThisLevel())
	}
	if g.Head() != core.T(6, 6) || g.Direction() != core.Down {
		t.Errorf("head %v heading %v, expected level 2 start", g.Head(), g.Direction())
	}
	if g.Length() != 10 || len(g.Snake()) != 1 {
		t.Errorf("length=%d body=%d, expected a fresh snake", g.Length(), len(g.Snake()))
	}
	if g.StepDelay() != 162*time.Millisecond {
		t.Errorf("step delay = %v, expected reset to 162ms", g.StepDelay())
	}
	if _, ok := g.Gate(); ok {
		t.Error("gate should be cleared on a new level")
	}
}

func TestNextLevelMissingKeepsState(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(20, 10, 5, 5, '>')})
	g.step()
	before := g.Snapshot()

	if g.NextLevel() {
		t.Fatal("NextLevel should fail without level 2")
	}
	if after := g.Snapshot(); after != before {
		t.Errorf("state changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestHandle(t *testing.T) {
	levels := stubLevels{
		1: openLevel(20, 10, 5, 5, '>'),
		2: openLevel(20, 10, 1, 1, '<'),
	}
	g := newTestGame(t, levels)

	if g.Handle(core.Move(core.Down)) {
		t.Error("move should not quit")
	}
	if g.Pending() != 1 {
		t.Errorf("pending = %d, expected 1", g.Pending())
	}

	g.Handle(core.ForceNextLevel())
	if g.Level().ID != 2 {
		t.Errorf("level = %d, expected 2 after forcing", g.Level().ID)
	}

	g.Handle(core.Pause())
	if !g.Paused() {
		t.Error("expected paused")
	}
	g.Handle(core.Pause())
	if g.Paused() {
		t.Error("expected resumed")
	}

	if !g.Handle(core.Quit()) {
		t.Error("quit should end the session")
	}
}

func TestHandleAfterGameOver(t *testing.T) {
	levels := stubLevels{
		1: ".>#.\n....\n",
		2: openLevel(12, 12, 6, 6, 'v'),
	}
	g := newTestGame(t, levels)
	g.food = nil
	g.step()
	if !g.GameOver() {
		t.Fatal("expected game over on barrier")
	}
	before := g.Snapshot()
	last := g.LastStep()

	g.Handle(core.ForceNextLevel())
	g.Handle(core.Pause())

	if after := g.Snapshot(); after != before {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
	if g.Paused() {
		t.Error("pause should be ignored once the game is over")
	}
	if !g.LastStep().Equal(last) {
		t.Errorf("last step = %v, expected %v", g.LastStep(), last)
	}
	if g.NextLevel() {
		t.Error("NextLevel should refuse to run after game over")
	}
}

func TestFoodAndGateSameTile(t *testing.T) {
	levels := stubLevels{
		1: openLevel(40, 6, 1, 2, '>'),
		2: openLevel(12, 12, 6, 6, 'v'),
	}
	g := newTestGame(t, levels)
	feedAhead(g)
	food, _ := g.Food()
	g.gate = &food

	g.step()

	if g.Score() != 1 {
		t.Errorf("score = %d, expected the food to count", g.Score())
	}
	if g.Level().ID != 2 {
		t.Fatalf("level = %d, expected the gate to win", g.Level().ID)
	}
	if g.EatenThisLevel() != 0 || g.Length() != 10 {
		t.Errorf("eaten=%d length=%d, expected a fresh level", g.EatenThisLevel(), g.Length())
	}
	if g.Head() != core.T(6, 6) || len(g.Snake()) != 1 {
		t.Errorf("head %v body %d, expected a single tile at (6,6)", g.Head(), len(g.Snake()))
	}
	if _, ok := g.Gate(); ok {
		t.Error("gate should be cleared on the new level")
	}
	if g.StepDelay() != 162*time.Millisecond {
		t.Errorf("step delay = %v, expected it reset to 162ms", g.StepDelay())
	}
}

func TestGateWithoutNextLevel(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 6, 1, 2, '>')})
	g.food = nil
	ahead := g.level.Wraparound(g.Head().Step(g.direction))
	g.gate = &ahead

	g.step()

	if g.Level().ID != 1 || g.GameOver() {
		t.Fatalf("level=%d over=%v, expected to stay on level 1 alive", g.Level().ID, g.GameOver())
	}
	if g.Head() != ahead {
		t.Errorf("head = %v, expected %v", g.Head(), ahead)
	}
	if gate, ok := g.Gate(); !ok || gate != ahead {
		t.Errorf("gate = %v %v, expected it to stay at %v", gate, ok, ahead)
	}

	g.step()
	if g.Head() != core.T(ahead.X+1, ahead.Y) || g.GameOver() {
		t.Errorf("head = %v, expected the snake to keep moving", g.Head())
	}
}

func TestAdvanceCatchUp(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})
	g.food = nil
	delay := g.StepDelay()

	if n := g.Advance(t0.Add(delay - time.Millisecond)); n != 0 {
		t.Errorf("Advance before the first delay ran %d steps", n)
	}

	now := t0.Add(3*delay + 10*time.Millisecond)
	if n := g.Advance(now); n != 3 {
		t.Fatalf("Advance ran %d steps, expected 3", n)
	}
	if !g.LastStep().Equal(t0.Add(3 * delay)) {
		t.Errorf("last step = %v, expected %v", g.LastStep(), t0.Add(3*delay))
	}
	if g.Head() != core.T(4, 2) {
		t.Errorf("head = %v, expected (4,2)", g.Head())
	}

	if n := g.Advance(now); n != 0 {
		t.Errorf("repeated Advance ran %d steps", n)
	}
}

func TestAdvanceRereadsDelay(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})
	feedAhead(g)

	first := g.StepDelay()
	second := g.gameplay.Ramp().Next(first)

	if n := g.Advance(t0.Add(first + second)); n != 2 {
		t.Fatalf("Advance ran %d steps, expected 2 with the faster delay", n)
	}
	if g.Score() < 1 {
		t.Error("expected the first step to eat")
	}
}

func TestAdvanceAfterGameOver(t *testing.T) {
	g := newTestGame(t, stubLevels{1: ".>#.\n....\n"})
	g.food = nil
	delay := g.StepDelay()

	if n := g.Advance(t0.Add(delay)); n != 1 || !g.GameOver() {
		t.Fatalf("expected one fatal step, got %d (over=%v)", n, g.GameOver())
	}

	far := t0.Add(time.Hour)
	if n := g.Advance(far); n != 0 {
		t.Errorf("Advance after game over ran %d steps", n)
	}
	if g.LastStep().After(far) || far.Sub(g.LastStep()) >= delay {
		t.Errorf("last step = %v, expected within one delay of %v", g.LastStep(), far)
	}
}

func TestAdvancePaused(t *testing.T) {
	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')})
	g.food = nil
	delay := g.StepDelay()

	g.SetPaused(true, t0)
	if n := g.Advance(t0.Add(10 * delay)); n != 0 {
		t.Errorf("paused Advance ran %d steps", n)
	}

	resume := t0.Add(10 * delay)
	g.SetPaused(false, resume)
	if n := g.Advance(resume.Add(delay)); n != 1 {
		t.Errorf("Advance after resume ran %d steps, expected 1", n)
	}
}

func TestCustomGameplay(t *testing.T) {
	gp := config.DefaultSnakeConfig().Gameplay
	gp.StartLength = 3
	gp.Growth = 2
	gp.GateThreshold = 0
	gp.StartStepDelay = 100 * time.Millisecond
	gp.MinStepDelay = 99 * time.Millisecond

	g := newTestGame(t, stubLevels{1: openLevel(40, 5, 1, 2, '>')}, WithGameplay(gp))
	feedAhead(g)
	g.step()

	if g.Length() != 5 {
		t.Errorf("length = %d, expected 5", g.Length())
	}
	if g.StepDelay() != 99*time.Millisecond {
		t.Errorf("step delay = %v, expected the 99ms floor", g.StepDelay())
	}
	if _, ok := g.Gate(); !ok {
		t.Error("gate should open after the first food with threshold 0")
	}
}

func TestDeterminism(t *testing.T) {
	levels := stubLevels{1: openLevel(30, 20, 5, 5, '>')}
	run := func() Snapshot {
		g := newTestGame(t, levels, WithSeed(12345))
		now := t0
		for i := 0; i < 200; i++ {
			switch i {
			case 20:
				g.SetDirection(core.Down)
			case 45:
				g.SetDirection(core.Left)
			case 90:
				g.SetDirection(core.Up)
			}
			now = now.Add(50 * time.Millisecond)
			g.Advance(now)
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotState(t *testing.T) {
	g := newTestGame(t, stubLevels{1: ".>#.\n....\n"})
	if s := g.Snapshot(); s.State != StatePlaying || s.Dir != "right" || s.TargetLen != 10 {
		t.Errorf("snapshot = %+v", s)
	}

	g.SetPaused(true, t0)
	if s := g.Snapshot(); s.State != StatePaused {
		t.Errorf("state = %s, expected paused", s.State)
	}
	g.SetPaused(false, t0)

	g.food = nil
	g.step()
	s := g.Snapshot()
	if s.State != StateGameOver {
		t.Errorf("state = %s, expected game_over", s.State)
	}
	if s.HasFood {
		t.Error("snapshot reports food after it was removed")
	}
}
