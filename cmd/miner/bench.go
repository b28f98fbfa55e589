package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/game"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/registry"
)

var (
	flagBenchSeconds  int
	flagBenchMode     string
	flagBenchRealtime bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the execution core without a terminal",
	Long: `Run the simulation headless with synthetic frame timestamps and
report loop, pool, and bus statistics. The run is driven as fast as the
CPU allows; the synthetic clock advances one refresh interval per frame,
so the simulation behaves exactly as it would on screen.

With --realtime the loop is driven by a wall-clock ticker instead, taking
the full duration; useful for soak-testing timing behavior.

Examples:
  miner bench
  miner bench --seconds 120 --seed 42
  miner bench --mode zen
  miner bench --seconds 10 --realtime`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchSeconds, "seconds", 60, "Simulated seconds to run")
	benchCmd.Flags().StringVar(&flagBenchMode, "mode", "survival", "Play mode to benchmark")
	benchCmd.Flags().BoolVar(&flagBenchRealtime, "realtime", false, "Drive the loop from a wall-clock ticker")
}

func runBench(_ *cobra.Command, _ []string) {
	modes := newModeRegistry()
	if !modes.Exists(flagBenchMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagBenchMode)
		os.Exit(1)
	}

	engineCfg, minerCfg, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	bus := engine.NewBus(engine.WithFastTopics(engineCfg.Bus.FastTopics...))
	pools := engine.NewRegistry(nil)
	game.RegisterPools(pools, engineCfg.Pools)

	g, err := modes.Create(flagBenchMode, registry.Deps{
		Bus:   bus,
		Pools: pools,
		Miner: minerCfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = 42 // Benchmarks default to a fixed seed for comparability
	}
	runtime := core.RuntimeConfig{
		ScreenW:  160,
		ScreenH:  48,
		TickRate: engineCfg.Timing.TickRate,
		Seed:     seed,
	}
	g.Reset(runtime)

	// A scripted pilot: hold thrust, sweep the turn, hammer the laser.
	script := []core.InputFrame{
		inputFrame(core.ActionThrust, core.ActionFire),
		inputFrame(core.ActionThrust, core.ActionTurnLeft),
		inputFrame(core.ActionThrust, core.ActionFire),
		inputFrame(core.ActionThrust, core.ActionTurnRight),
	}
	step := 0

	screen := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
	renders := 0

	loop := engine.NewLoop(engine.LoopConfig{
		FixedDelta:       1.0 / float64(runtime.TickRate),
		MaxFrameDelta:    float64(engineCfg.Timing.MaxFrameDeltaMS) / 1000.0,
		MaxStepsPerFrame: engineCfg.Timing.MaxStepsPerFrame,
		WarmupFrames:     engineCfg.Timing.WarmupFrames,
		Update: func(dt float64) {
			g.Step(script[step%len(script)], dt)
			step++
		},
		Render: func(alpha float64) {
			g.Render(screen, alpha)
			renders++
		},
	})

	start := time.Now()
	if flagBenchRealtime {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(flagBenchSeconds)*time.Second)
		loop.Run(ctx, runtime.TickRate)
		cancel()
	} else {
		// Drive frames with a synthetic clock at the tick rate. Wall time
		// is only measured to report throughput.
		interval := time.Second / time.Duration(runtime.TickRate)
		totalFrames := flagBenchSeconds*runtime.TickRate + engineCfg.Timing.WarmupFrames + 1
		clock := time.Unix(0, 0)
		for i := 0; i < totalFrames; i++ {
			loop.Frame(clock)
			clock = clock.Add(interval)
		}
	}
	wall := time.Since(start)

	stats := loop.Stats()
	fmt.Printf("Simulated %.1fs in %v (%.1fx real time)\n",
		stats.SimTime, wall.Round(time.Millisecond),
		stats.SimTime/wall.Seconds())
	fmt.Println()

	fmt.Printf("Loop:  frames=%d steps=%d renders=%d clamps=%d\n",
		stats.Frames, stats.Steps, renders, stats.ClampEvents)

	busStats := bus.Stats()
	fmt.Printf("Bus:   published=%d deferred=%d recovered=%d\n",
		busStats.Published, busStats.Deferred, busStats.Recovered)

	poolStats := pools.AllStats()
	names := make([]string, 0, len(poolStats))
	for name := range poolStats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := poolStats[name]
		fmt.Printf("Pool:  %-10s hits=%d misses=%d overflows=%d created=%d live=%d\n",
			name, s.Hits, s.Misses, s.Overflows, s.Created, s.CheckedOut)
	}

	final := g.State()
	fmt.Println()
	fmt.Printf("Run:   score=%d wave=%d hull=%d elapsed=%.1fs game_over=%v\n",
		final.Score, final.Wave, final.Hull, final.Elapsed, final.GameOver)
}

func inputFrame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}
