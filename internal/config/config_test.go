package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultSnakeConfig())
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := `
gameplay:
  start_step_delay: 100ms
  speedup: 0.9
levels:
  dir: ./mylevels
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg.Gameplay.StartStepDelay != 100*time.Millisecond {
		t.Errorf("StartStepDelay = %s, expected 100ms", cfg.Gameplay.StartStepDelay)
	}
	if cfg.Gameplay.Speedup != 0.9 {
		t.Errorf("Speedup = %g, expected 0.9", cfg.Gameplay.Speedup)
	}
	if cfg.Levels.Dir != "./mylevels" {
		t.Errorf("Levels.Dir = %q, expected ./mylevels", cfg.Levels.Dir)
	}
	// Unset keys keep their defaults.
	if cfg.Gameplay.StartLength != 10 || cfg.Gameplay.Growth != 5 {
		t.Errorf("defaults lost: %+v", cfg.Gameplay)
	}
}

func TestLoadSnakeMissingCustomPath(t *testing.T) {
	_, err := LoadSnake(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadSnakeUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("gameplay:\n  growth: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Gameplay.Growth != 3 {
		t.Errorf("Growth = %d, expected 3 from user config", cfg.Gameplay.Growth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
		field  string
	}{
		{"zero start length", func(c *SnakeConfig) { c.Gameplay.StartLength = 0 }, "start_length"},
		{"speedup above one", func(c *SnakeConfig) { c.Gameplay.Speedup = 1.5 }, "speedup"},
		{"zero speedup", func(c *SnakeConfig) { c.Gameplay.Speedup = 0 }, "speedup"},
		{"negative floor", func(c *SnakeConfig) { c.Gameplay.MinStepDelay = -time.Millisecond }, "min_step_delay"},
		{"zero delay", func(c *SnakeConfig) { c.Gameplay.StartStepDelay = 0 }, "start_step_delay"},
		{"start level zero", func(c *SnakeConfig) { c.Levels.StartLevel = 0 }, "start_level"},
		{"zero fps", func(c *SnakeConfig) { c.Display.FPS = 0 }, "fps"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should mention %s", err, tc.field)
			}
		})
	}

	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestSpeedRamp(t *testing.T) {
	start := 162 * time.Millisecond

	r := SpeedRamp{Speedup: 0.95}
	got := r.After(start, 3)
	want := time.Duration(float64(time.Duration(float64(time.Duration(float64(start)*0.95))*0.95)) * 0.95)
	if got != want {
		t.Errorf("After(3) = %s, expected %s", got, want)
	}

	floored := SpeedRamp{Speedup: 0.5, Floor: 50 * time.Millisecond}
	if d := floored.After(start, 10); d != 50*time.Millisecond {
		t.Errorf("floored ramp = %s, expected 50ms", d)
	}

	fixed := SpeedRamp{Speedup: 1}
	if d := fixed.After(start, 20); d != start {
		t.Errorf("fixed ramp = %s, expected %s", d, start)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultSnakeConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Gameplay.Speedup != 1 {
		t.Errorf("fixed preset Speedup = %g, expected 1", cfg.Gameplay.Speedup)
	}

	cfg = DefaultSnakeConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Gameplay.StartStepDelay >= DefaultSnakeConfig().Gameplay.StartStepDelay {
		t.Error("hard preset should start faster than the default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset should be valid: %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("ParseDifficulty(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
