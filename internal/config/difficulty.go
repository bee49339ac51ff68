package config

import (
	"fmt"
	"time"
)

// SpeedRamp computes how the step delay shrinks as food is eaten.
type SpeedRamp struct {
	Speedup float64       // multiplier per food, in (0, 1]
	Floor   time.Duration // lower bound, 0 = none
}

// Ramp returns the speed ramp described by the gameplay settings.
func (g Gameplay) Ramp() SpeedRamp {
	return SpeedRamp{Speedup: g.Speedup, Floor: g.MinStepDelay}
}

// Next returns the step delay after one more food. The result never drops
// below one nanosecond, even without a floor.
func (r SpeedRamp) Next(delay time.Duration) time.Duration {
	next := time.Duration(float64(delay) * r.Speedup)
	if r.Floor > 0 && next < r.Floor {
		return r.Floor
	}
	return max(next, time.Nanosecond)
}

// After returns the step delay after n foods starting from delay.
func (r SpeedRamp) After(delay time.Duration, n int) time.Duration {
	for range n {
		delay = r.Next(delay)
	}
	return delay
}

// ParseDifficulty validates a preset name. The empty string means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.StartStepDelay = 200 * time.Millisecond
		cfg.Gameplay.MinStepDelay = 60 * time.Millisecond
	case DifficultyNormal:
		cfg.Gameplay.StartStepDelay = 162 * time.Millisecond
	case DifficultyHard:
		cfg.Gameplay.StartStepDelay = 120 * time.Millisecond
		cfg.Gameplay.Speedup = 0.93
	case DifficultyFixed:
		// No speed ramp.
		cfg.Gameplay.Speedup = 1.0
	}
}
