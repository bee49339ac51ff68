package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "snake.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultSnakeConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil && fileCfg.Validate() == nil {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting in one error.
func (c SnakeConfig) Validate() error {
	var errs []error
	g := c.Gameplay
	if g.StartLength < 1 {
		errs = append(errs, fmt.Errorf("gameplay.start_length must be positive, got %d", g.StartLength))
	}
	if g.Growth < 0 {
		errs = append(errs, fmt.Errorf("gameplay.growth must not be negative, got %d", g.Growth))
	}
	if g.GateThreshold < 0 {
		errs = append(errs, fmt.Errorf("gameplay.gate_threshold must not be negative, got %d", g.GateThreshold))
	}
	if g.StartStepDelay <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.start_step_delay must be positive, got %s", g.StartStepDelay))
	}
	if g.Speedup <= 0 || g.Speedup > 1 {
		errs = append(errs, fmt.Errorf("gameplay.speedup must be in (0, 1], got %g", g.Speedup))
	}
	if g.MinStepDelay < 0 {
		errs = append(errs, fmt.Errorf("gameplay.min_step_delay must not be negative, got %s", g.MinStepDelay))
	}
	if c.Board.MaxWidth < 1 || c.Board.MaxHeight < 1 {
		errs = append(errs, fmt.Errorf("board limits must be positive, got %dx%d", c.Board.MaxWidth, c.Board.MaxHeight))
	}
	if c.Levels.StartLevel < 1 {
		errs = append(errs, fmt.Errorf("levels.start_level must be at least 1, got %d", c.Levels.StartLevel))
	}
	if c.Display.FPS < 1 {
		errs = append(errs, fmt.Errorf("display.fps must be positive, got %d", c.Display.FPS))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", filename)
}
