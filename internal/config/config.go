// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import "time"

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Gameplay Gameplay `yaml:"gameplay"`
	Board    Board    `yaml:"board"`
	Levels   Levels   `yaml:"levels"`
	Display  Display  `yaml:"display"`
}

// Gameplay defines the simulation parameters.
type Gameplay struct {
	StartLength    int           `yaml:"start_length"`
	Growth         int           `yaml:"growth"`
	GateThreshold  int           `yaml:"gate_threshold"`
	StartStepDelay time.Duration `yaml:"start_step_delay"`
	Speedup        float64       `yaml:"speedup"`
	MinStepDelay   time.Duration `yaml:"min_step_delay"` // 0 = no floor
}

// Board bounds the size of level files.
type Board struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// Levels selects where level files come from.
type Levels struct {
	Dir        string `yaml:"dir"` // empty = built-in levels
	StartLevel int    `yaml:"start_level"`
}

// Display holds host loop settings.
type Display struct {
	FPS int `yaml:"fps"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
