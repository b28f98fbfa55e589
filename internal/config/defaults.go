package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/miner.yaml
var defaultMinerYAML []byte

// DefaultEngineConfig returns the hardcoded engine defaults, used when even
// the embedded YAML fails to parse.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Timing: TimingConfig{
			TickRate:         60,
			WarmupFrames:     10,
			MaxStepsPerFrame: 4,
			MaxFrameDeltaMS:  100,
			FrameCap:         0,
		},
		Bus: BusConfig{
			FastTopics: []string{"ship/moved"},
		},
		Pools: map[string]PoolSizing{
			"projectile": {Preallocate: 32, MaxSize: 128},
			"particle":   {Preallocate: 128, MaxSize: 512},
			"asteroid":   {Preallocate: 16, MaxSize: 64},
		},
	}
}

// DefaultMinerConfig returns the hardcoded miner simulation defaults.
func DefaultMinerConfig() MinerConfig {
	return MinerConfig{
		Physics: MinerPhysics{
			Thrust:       18.0,
			TurnRate:     3.5,
			MaxSpeed:     22.0,
			Drag:         0.6,
			LaserSpeed:   40.0,
			LaserLife:    1.2,
			FireCooldown: 0.25,
		},
		Spawning: MinerSpawning{
			InitialAsteroids: 4,
			SpawnInterval:    3.0,
			MinSpeed:         2.0,
			MaxSpeed:         7.0,
			MaxAsteroids:     10,
			OreValue:         10,
		},
		Ship: MinerShip{
			Hull: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:         "time",
				MaxAtSeconds: 300.0,
				WaveInterval: 30.0,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:        1.5,
				SpawnIntervalReduction: 2.0,
				ExtraAsteroids:         14,
			},
		},
	}
}
