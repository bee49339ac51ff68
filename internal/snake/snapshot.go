package snake

import "time"

// StateType summarizes the engine status for hosts and logs.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StatePaused   StateType = "paused"
	StateGameOver StateType = "game_over"
)

// Snapshot captures the observable game state for determinism checks and
// for persisting the result of a run.
type Snapshot struct {
	Steps          uint64
	Level          int
	Score          int
	EatenThisLevel int
	SnakeLen       int
	TargetLen      int
	HeadX          int
	HeadY          int
	Dir            string
	HasFood        bool
	FoodX          int
	FoodY          int
	HasGate        bool
	GateX          int
	GateY          int
	StepDelay      time.Duration
	State          StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	head := g.Head()
	snap := Snapshot{
		Steps:          g.steps,
		Level:          g.level.ID,
		Score:          g.score,
		EatenThisLevel: g.eatenThisLevel,
		SnakeLen:       len(g.snake),
		TargetLen:      g.length,
		HeadX:          head.X,
		HeadY:          head.Y,
		Dir:            g.direction.String(),
		StepDelay:      g.stepDelay,
		State:          state,
	}
	if food, ok := g.Food(); ok {
		snap.HasFood, snap.FoodX, snap.FoodY = true, food.X, food.Y
	}
	if gate, ok := g.Gate(); ok {
		snap.HasGate, snap.GateX, snap.GateY = true, gate.X, gate.Y
	}
	return snap
}
