package core

// RuntimeConfig contains configuration passed to the simulation at
// initialization. It covers what the platform layer decides at launch time:
// screen size, timing, and the RNG seed for deterministic play.
type RuntimeConfig struct {
	ScreenW     int   // Screen width in characters
	ScreenH     int   // Screen height in characters
	TickRate    int   // Fixed simulation steps per second (default 60)
	RefreshRate int   // Display refresh callbacks per second (default 60)
	FrameCap    int   // Render frame-rate cap, 0 = uncapped
	Seed        int64 // RNG seed; 0 means use current time in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		TickRate:    60,
		RefreshRate: 60,
		Seed:        0,
	}
}

// SimState represents the externally visible state of a simulation run.
// Returned by Game.State() to communicate status to the platform.
type SimState struct {
	Score    int     // Ore banked so far
	Wave     int     // Current escalation wave
	Hull     int     // Remaining hull points
	Elapsed  float64 // Simulated seconds survived
	GameOver bool    // Whether the run has ended
	Paused   bool    // Whether the simulation is paused
}
