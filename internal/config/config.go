// Package config provides YAML-based configuration loading for the engine
// core and the miner simulation.
package config

// EngineConfig tunes the execution core: loop timing, bus fast topics, and
// pool sizing. Everything here has a safe embedded default.
type EngineConfig struct {
	Timing TimingConfig          `yaml:"timing"`
	Bus    BusConfig             `yaml:"bus"`
	Pools  map[string]PoolSizing `yaml:"pools"`
}

// TimingConfig defines the fixed-timestep loop parameters.
type TimingConfig struct {
	TickRate         int `yaml:"tick_rate"`           // Fixed simulation steps per second
	WarmupFrames     int `yaml:"warmup_frames"`       // Callbacks consumed before timing starts
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"` // Step cap per frame callback
	MaxFrameDeltaMS  int `yaml:"max_frame_delta_ms"`  // Per-frame accumulation clamp
	FrameCap         int `yaml:"frame_cap"`           // Render FPS cap, 0 = uncapped
}

// BusConfig defines message bus behavior.
type BusConfig struct {
	// FastTopics bypass the queueing path; reserve for per-step traffic.
	FastTopics []string `yaml:"fast_topics"`
}

// PoolSizing configures one named object pool.
type PoolSizing struct {
	Preallocate int `yaml:"preallocate"`
	MaxSize     int `yaml:"max_size"`
}

// MinerConfig contains all configuration for the miner simulation.
type MinerConfig struct {
	Physics    MinerPhysics     `yaml:"physics"`
	Spawning   MinerSpawning    `yaml:"spawning"`
	Ship       MinerShip        `yaml:"ship"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MinerPhysics defines movement parameters for the ship and projectiles.
type MinerPhysics struct {
	Thrust       float64 `yaml:"thrust"`        // Acceleration in cells/s^2
	TurnRate     float64 `yaml:"turn_rate"`     // Radians per second
	MaxSpeed     float64 `yaml:"max_speed"`     // Cells per second
	Drag         float64 `yaml:"drag"`          // Velocity retained per second
	LaserSpeed   float64 `yaml:"laser_speed"`   // Projectile speed in cells/s
	LaserLife    float64 `yaml:"laser_life"`    // Projectile lifetime in seconds
	FireCooldown float64 `yaml:"fire_cooldown"` // Seconds between shots
}

// MinerSpawning defines asteroid spawn parameters.
type MinerSpawning struct {
	InitialAsteroids int     `yaml:"initial_asteroids"`
	SpawnInterval    float64 `yaml:"spawn_interval"` // Seconds between spawns at level 0
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxAsteroids     int     `yaml:"max_asteroids"` // Simultaneous hazard cap at level 0
	OreValue         int     `yaml:"ore_value"`     // Score per mined asteroid
}

// MinerShip defines the player ship.
type MinerShip struct {
	Hull int `yaml:"hull"` // Hits survivable
}

// DifficultyConfig defines the escalating-survival progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type         string  `yaml:"type"`          // "time" or "none"
	MaxAtSeconds float64 `yaml:"max_at_seconds"` // Simulated seconds at which max difficulty is reached
	WaveInterval float64 `yaml:"wave_interval"`  // Seconds between wave escalations
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier        float64 `yaml:"speed_multiplier"`         // Asteroid speed gain at max difficulty
	SpawnIntervalReduction float64 `yaml:"spawn_interval_reduction"` // Seconds shaved off the spawn interval at max
	ExtraAsteroids         int     `yaml:"extra_asteroids"`          // Added to the simultaneous cap at max
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyMinerPreset modifies the config based on a difficulty preset.
func ApplyMinerPreset(cfg *MinerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
