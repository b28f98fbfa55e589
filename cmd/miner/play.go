package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/platform/tui"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a run",
	Long: `Start a run in the given mode (default: survival).

Controls:
  W/Up       - Thrust
  A/D, arrows - Turn
  Space      - Fire the mining laser
  P          - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  miner play
  miner play zen
  miner play --difficulty hard
  miner play --game-config ./my-miner.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
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

	engineCfg, minerCfg, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyMinerPreset(&minerCfg, config.DifficultyPreset(flagDifficulty))
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:     width,
		ScreenH:     height,
		TickRate:    engineCfg.Timing.TickRate,
		RefreshRate: engineCfg.Timing.TickRate,
		FrameCap:    engineCfg.Timing.FrameCap,
		Seed:        flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	opts, err := tui.NewSession(modes, mode, store, engineCfg, minerCfg, runtime, newLogger("miner"))
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
