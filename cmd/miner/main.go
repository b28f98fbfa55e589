// miner is a terminal asteroid-mining survival game built on a fixed-timestep
// execution core.
//
// Usage:
//
//	miner play [mode]        - Play (modes: survival, zen)
//	miner list               - List available modes
//	miner scores [mode]      - Show best runs
//	miner bench              - Benchmark the execution core headless
//	miner serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Simulation tick rate (default: from engine config)
//	--seed <value>  - RNG seed for reproducible runs
//	--db <path>     - Database path (default: ~/.miner/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/game"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/registry"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagEngineConfig string
	flagGameConfig   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "miner",
	Short: "Asteroid Miner - Mine ore, dodge rocks, survive the escalation",
	Long: `Asteroid Miner is a terminal survival game. Pilot a mining ship
through a drifting asteroid field, lasering rocks for ore while the
spawn pressure escalates wave by wave.

Available commands:
  list     - Show all play modes
  play     - Start a run
  scores   - View best runs
  bench    - Benchmark the execution core without a terminal
  serve    - Start SSH server for remote play

Examples:
  miner play
  miner play zen
  miner play --difficulty hard --seed 42
  miner scores survival
  miner serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation tick rate (0 = engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.miner/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagEngineConfig, "engine-config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger. TUI commands log to stderr so the
// alternate screen stays clean.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfigs loads the engine and game configs, honoring the custom-path
// flags. The --fps flag overrides the configured tick rate.
func loadConfigs() (config.EngineConfig, config.MinerConfig, error) {
	engineCfg, err := config.LoadEngine(flagEngineConfig)
	if err != nil {
		return engineCfg, config.MinerConfig{}, err
	}
	minerCfg, err := config.LoadMiner(flagGameConfig)
	if err != nil {
		return engineCfg, minerCfg, err
	}
	if flagFPS > 0 {
		engineCfg.Timing.TickRate = flagFPS
	}
	return engineCfg, minerCfg, nil
}

// newModeRegistry builds the registry of playable modes.
func newModeRegistry() *registry.Registry {
	r := registry.New()
	game.RegisterModes(r)
	return r
}
