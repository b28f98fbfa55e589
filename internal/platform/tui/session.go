package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/game"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/registry"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/storage"
)

// NewSession wires the engine services for one play session: an app-level bus
// that observes run lifecycle, a game bus that forwards game-over to it, and
// a pool registry sized from the engine config. Local and SSH play both go
// through here so the wiring cannot drift.
func NewSession(
	modes *registry.Registry,
	mode string,
	store *storage.Store,
	engineCfg config.EngineConfig,
	minerCfg config.MinerConfig,
	runtime core.RuntimeConfig,
	logger *log.Logger,
) (Options, error) {
	appBus := engine.NewBus(engine.WithBusLogger(logger))
	appBus.Subscribe(engine.TopicGameOver, func(msg engine.Message) {
		if logger != nil {
			logger.Info("run ended",
				"score", msg.Data["score"],
				"wave", msg.Data["wave"],
				"elapsed", msg.Data["elapsed"],
			)
		}
	})

	gameBus := engine.NewBus(
		engine.WithFastTopics(engineCfg.Bus.FastTopics...),
		engine.WithForwarding(appBus, engine.TopicGameOver),
		engine.WithBusLogger(logger),
	)

	pools := engine.NewRegistry(logger)
	game.RegisterPools(pools, engineCfg.Pools)

	g, err := modes.Create(mode, registry.Deps{
		Bus:    gameBus,
		Pools:  pools,
		Miner:  minerCfg,
		Logger: logger,
	})
	if err != nil {
		return Options{}, fmt.Errorf("tui: cannot create mode: %w", err)
	}

	return Options{
		Game:    g,
		Bus:     gameBus,
		Pools:   pools,
		Store:   store,
		Runtime: runtime,
		Timing:  engineCfg.Timing,
		Logger:  logger,
	}, nil
}
