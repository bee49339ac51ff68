package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List and validate level files",
	Long: `List every level in the level directory (or the built-in set) and
check that each one is a valid level: rectangular, within the size limits,
only known characters, and exactly one start marker.

Exits with status 1 if any level is invalid.

Examples:
  snake levels
  snake levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	src := levelSource(cfg)
	results, err := src.CheckAll()
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("Levels in %s:\n", src.Name())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No level files found.")
		os.Exit(1)
	}

	fmt.Printf("  %-5s  %-7s  %-5s  %s\n", "ID", "Size", "Start", "Status")
	fmt.Printf("  %-5s  %-7s  %-5s  %s\n", "--", "----", "-----", "------")

	invalid := 0
	for _, r := range results {
		if r.Err != nil {
			invalid++
			fmt.Printf("  %-5d  %-7s  %-5s  %v\n", r.ID, "-", "-", r.Err)
			continue
		}
		size := fmt.Sprintf("%dx%d", r.Level.Width, r.Level.Height)
		fmt.Printf("  %-5d  %-7s  %-5s  ok (%d barriers)\n", r.ID, size, r.Level.StartDirection, len(r.Level.Barriers))
	}

	// The game advances through consecutive ids and stops at the first gap.
	for i, r := range results {
		if r.ID != i+1 {
			fmt.Printf("\nNote: level %d is missing; levels after it are unreachable by gates.\n", i+1)
			break
		}
	}

	if invalid > 0 {
		fmt.Printf("\n%d of %d levels are invalid.\n", invalid, len(results))
		os.Exit(1)
	}
}
