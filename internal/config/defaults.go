package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Gameplay: Gameplay{
			StartLength:    10,
			Growth:         5,
			GateThreshold:  10,
			StartStepDelay: 162 * time.Millisecond,
			Speedup:        0.95,
			MinStepDelay:   0,
		},
		Board: Board{
			MaxWidth:  50,
			MaxHeight: 40,
		},
		Levels: Levels{
			StartLevel: 1,
		},
		Display: Display{
			FPS: 60,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
