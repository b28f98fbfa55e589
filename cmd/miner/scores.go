package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/platform/tui"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/storage"
)

var flagBoard bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs",
	Long: `Display the top 10 runs for a mode (default: survival).

Examples:
  miner scores
  miner scores zen
  miner scores --board    # Interactive scoreboard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
	mode := "survival"
	if len(args) > 0 {
		mode = args[0]
	}

	modes := newModeRegistry()
	if !modes.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'miner list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, modes.List(), width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(mode, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'miner play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %s\n", "Rank", "Ore", "Wave", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %s\n", "----", "---", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %02d:%02d  %s\n",
			i+1, r.Score, r.Wave,
			r.DurationSecs/60, r.DurationSecs%60,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetModeStats(mode)
	if err == nil && stats.RunCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Deepest wave: %d\n",
			stats.RunCount, stats.HighScore, stats.AvgScore, stats.BestWave)
	}
}
