// Package survival implements the escalating-survival mode controller: a
// periodic consumer of elapsed simulation time that ramps spawn pressure and
// announces wave escalations on the message bus.
package survival

import (
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
)

// Controller calculates dynamic simulation parameters from elapsed simulated
// time. It owns no entities; the game queries it each step and it publishes
// wave transitions as they happen.
type Controller struct {
	cfg          config.DifficultyConfig
	bus          *engine.Bus
	initialLevel float64
	wave         int
}

// New creates a controller. The bus may be nil for headless parameter
// calculations (no wave announcements).
func New(cfg config.DifficultyConfig, bus *engine.Bus) *Controller {
	return &Controller{
		cfg:          cfg,
		bus:          bus,
		initialLevel: cfg.InitialLevel,
		wave:         1,
	}
}

// SetInitialLevel overrides the starting difficulty level (0.0 to 1.0).
func (c *Controller) SetInitialLevel(level float64) {
	c.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (c *Controller) IsEnabled() bool {
	return c.cfg.Enabled && c.cfg.Progression.Type != "none"
}

// Level returns the difficulty level in [0, 1] for the given elapsed
// simulated seconds.
func (c *Controller) Level(elapsed float64) float64 {
	if !c.IsEnabled() {
		return c.initialLevel
	}

	maxAt := c.cfg.Progression.MaxAtSeconds
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return c.initialLevel + progress*(1.0-c.initialLevel)
}

// Wave returns the current escalation wave, starting at 1.
func (c *Controller) Wave() int {
	return c.wave
}

// Tick advances the controller with the current elapsed simulated time,
// publishing a wave escalation when a wave boundary is crossed. Call once
// per fixed step.
func (c *Controller) Tick(elapsed float64) {
	if !c.IsEnabled() {
		return
	}
	interval := c.cfg.Progression.WaveInterval
	if interval <= 0 {
		return
	}

	wave := 1 + int(elapsed/interval)
	if wave <= c.wave {
		return
	}
	c.wave = wave
	if c.bus != nil {
		c.bus.Publish(engine.TopicWaveEscalated, map[string]any{
			"wave":  wave,
			"level": c.Level(elapsed),
		})
	}
}

// SpawnInterval returns the seconds between asteroid spawns at the given
// elapsed time. Shrinks as difficulty rises, floored at a playable minimum.
func (c *Controller) SpawnInterval(base, elapsed float64) float64 {
	level := c.Level(elapsed)
	result := base - level*c.cfg.Scaling.SpawnIntervalReduction
	if result < 0.5 {
		result = 0.5
	}
	return result
}

// Speed returns the asteroid speed multiplier applied to a base speed.
func (c *Controller) Speed(base, elapsed float64) float64 {
	level := c.Level(elapsed)
	return base * (1.0 + level*c.cfg.Scaling.SpeedMultiplier)
}

// MaxAsteroids returns the simultaneous hazard cap at the given elapsed time.
func (c *Controller) MaxAsteroids(base int, elapsed float64) int {
	level := c.Level(elapsed)
	return base + int(level*float64(c.cfg.Scaling.ExtraAsteroids))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
