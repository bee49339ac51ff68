package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagStartLevel int
	flagSelect     bool
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start playing snake in the terminal.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  N                 - Skip to the next level
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot
  ?                 - Toggle full help
  Q/Esc/Ctrl+C      - Quit

Difficulty options:
  easy   - Slower start, step delay never drops below 60ms
  normal - 162ms start, 5% faster per food
  hard   - 120ms start, 7% faster per food
  fixed  - No speed-up

Examples:
  snake play
  snake play --level 3
  snake play --select
  snake play --difficulty hard --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Starting level (0 = use config)")
	playCmd.Flags().BoolVar(&flagSelect, "select", false, "Pick the starting level from a menu")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	src := levelSource(cfg)
	opts := tui.Options{
		Config:     cfg,
		Levels:     src,
		Store:      store,
		Logger:     logger,
		Player:     player,
		Seed:       flagSeed,
		StartLevel: flagStartLevel,
		Width:      width,
		Height:     height,
	}

	logger.Info("starting game", "levels", src.Name(), "start_level", max(flagStartLevel, cfg.Levels.StartLevel))

	var runErr error
	if flagSelect {
		runErr = tui.RunSession(opts, src)
	} else {
		runErr = tui.Run(opts)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		exitf("%v", runErr)
	}
}
