// snake is a terminal Snake game with level files, a speed ramp and gates
// that lead to the next level.
//
// Usage:
//
//	snake play               - Play from the configured start level
//	snake play --select      - Pick the starting level from a menu
//	snake serve              - Start SSH server for remote play
//	snake scores             - Show high scores
//	snake levels             - List and validate level files
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default from config: 60)
//	--seed <value>       - Set RNG seed for reproducible food placement
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--config <path>      - Use a custom config YAML
//	--levels <dir>       - Read levels from a directory instead of the built-in set
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal game played on a wraparound grid. Eat food to
grow and speed up; after enough food a gate opens that leads to the next
level. Running into yourself or a wall ends the run.

Available commands:
  play     - Play a game
  serve    - Start SSH server for remote play
  scores   - View high scores
  levels   - List and validate level files

Examples:
  snake play
  snake play --level 3 --difficulty hard
  snake play --select
  snake serve --ssh :2222
  snake levels --levels ./my-levels`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with level files (default: config, then built-in)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
