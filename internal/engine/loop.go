// Package engine provides the real-time execution core: a fixed-timestep
// update loop, a named object-pool registry, and a synchronous message bus.
// Everything in this package runs on a single cooperative control flow driven
// by the platform's per-frame callback; nothing here spawns goroutines on the
// hot path and nothing needs locks.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// Default loop tuning. Values can be overridden through LoopConfig.
const (
	DefaultFixedDelta       = 1.0 / 60.0
	DefaultMaxFrameDelta    = 0.1 // Seconds; clamp after a tab stall or debugger pause
	DefaultMaxStepsPerFrame = 4
	DefaultWarmupFrames     = 10
)

// LoopConfig configures a Loop. Zero fields fall back to package defaults.
type LoopConfig struct {
	// FixedDelta is the simulation step size in seconds.
	FixedDelta float64

	// MaxFrameDelta caps how much real time a single frame callback may
	// contribute to the accumulator, in seconds.
	MaxFrameDelta float64

	// MaxStepsPerFrame bounds the number of simulation steps executed in one
	// frame callback so sustained overload degrades fidelity instead of
	// freezing rendering.
	MaxStepsPerFrame int

	// WarmupFrames is the number of initial callbacks consumed without
	// stepping, letting platform timing stabilize before measurement begins.
	WarmupFrames int

	// FrameRateCap throttles rendering to the given FPS. 0 means uncapped.
	FrameRateCap int

	// Update is invoked once per fixed step with a constant dt.
	Update func(dt float64)

	// Render is invoked at most once per frame callback with the
	// interpolation fraction between the last two simulation states.
	Render func(alpha float64)

	// Logger receives loop diagnostics. Nil disables logging.
	Logger *log.Logger
}

// Loop converts a variable-rate frame callback into a deterministic sequence
// of fixed-size simulation steps plus one render pass per frame.
//
// The contract consumers rely on: Update always receives exactly FixedDelta,
// never a variable per-frame delta.
type Loop struct {
	update func(dt float64)
	render func(alpha float64)
	logger *log.Logger

	fixedDelta    float64
	maxFrameDelta float64
	maxSteps      int
	frameCap      int

	warmupRemaining int
	lastFrameTime   time.Time
	accumulator     float64
	simTime         float64
	paused          bool
	destroyed       bool

	frames      uint64
	steps       uint64
	clampEvents uint64
}

// NewLoop creates a loop in the warmup state.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.FixedDelta <= 0 {
		cfg.FixedDelta = DefaultFixedDelta
	}
	if cfg.MaxFrameDelta <= 0 {
		cfg.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if cfg.MaxStepsPerFrame <= 0 {
		cfg.MaxStepsPerFrame = DefaultMaxStepsPerFrame
	}
	if cfg.WarmupFrames < 0 {
		cfg.WarmupFrames = 0
	}
	return &Loop{
		update:          cfg.Update,
		render:          cfg.Render,
		logger:          cfg.Logger,
		fixedDelta:      cfg.FixedDelta,
		maxFrameDelta:   cfg.MaxFrameDelta,
		maxSteps:        cfg.MaxStepsPerFrame,
		frameCap:        cfg.FrameRateCap,
		warmupRemaining: cfg.WarmupFrames,
	}
}

// Frame is the per-frame callback entry point. The platform calls it with a
// monotonically increasing timestamp; the loop steps the simulation zero or
// more times and renders once.
func (l *Loop) Frame(now time.Time) {
	if l.destroyed || l.paused {
		return
	}

	// Warmup: consume the first N callbacks without stepping, then
	// (re)initialize timing from the current timestamp.
	if l.warmupRemaining > 0 {
		l.warmupRemaining--
		if l.warmupRemaining == 0 {
			l.lastFrameTime = now
		}
		return
	}

	// First running frame with no warmup configured: establish the baseline.
	if l.lastFrameTime.IsZero() {
		l.lastFrameTime = now
		return
	}

	frameDelta := now.Sub(l.lastFrameTime).Seconds()

	// Frame-rate cap: skip the frame entirely for throttling, not timing.
	if l.frameCap > 0 && frameDelta < 1.0/float64(l.frameCap) {
		return
	}

	// Advance timing before invoking hooks so a panicking frame cannot
	// corrupt subsequent deltas.
	l.lastFrameTime = now
	l.frames++

	if frameDelta > l.maxFrameDelta {
		frameDelta = l.maxFrameDelta
	}
	if frameDelta < 0 {
		frameDelta = 0
	}
	l.accumulator += frameDelta

	steps := 0
	for l.accumulator >= l.fixedDelta && steps < l.maxSteps {
		if l.update != nil {
			l.update(l.fixedDelta)
		}
		l.simTime += l.fixedDelta
		l.accumulator -= l.fixedDelta
		steps++
	}
	l.steps += uint64(steps)

	// Spiral-of-death guard: drop catch-up time the step cap left behind.
	if l.accumulator >= l.fixedDelta {
		l.accumulator = math.Mod(l.accumulator, l.fixedDelta)
		l.clampEvents++
		if l.logger != nil {
			l.logger.Debug("accumulator clamped", "steps", steps, "sim_time", l.simTime)
		}
	}

	if l.render != nil {
		l.render(l.accumulator / l.fixedDelta)
	}
}

// Run drives the loop from a wall-clock ticker at the given refresh rate until
// the context is cancelled or Destroy is called. This is the headless
// equivalent of the display-refresh callback; the TUI platform calls Frame
// directly instead.
func (l *Loop) Run(ctx context.Context, refreshRate int) {
	if refreshRate <= 0 {
		refreshRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(refreshRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if l.destroyed {
				return
			}
			l.Frame(now)
		}
	}
}

// SetFrameRateCap throttles rendering to the given FPS. 0 means uncapped;
// simulation still steps at the fixed delta either way.
func (l *Loop) SetFrameRateCap(fps int) {
	if fps < 0 {
		fps = 0
	}
	l.frameCap = fps
}

// FrameRateCap returns the current render cap in FPS (0 = uncapped).
func (l *Loop) FrameRateCap() int {
	return l.frameCap
}

// Pause suspends stepping. Frame callbacks received while paused are ignored.
func (l *Loop) Pause() {
	l.paused = true
}

// Resume re-bases the clock so the paused interval is not replayed as
// catch-up steps.
func (l *Loop) Resume(now time.Time) {
	if !l.paused {
		return
	}
	l.paused = false
	l.lastFrameTime = now
	l.accumulator = 0
}

// Paused reports whether the loop is currently paused.
func (l *Loop) Paused() bool {
	return l.paused
}

// Destroy permanently stops the loop. Further Frame calls are no-ops.
func (l *Loop) Destroy() {
	l.destroyed = true
}

// FixedDelta returns the simulation step size in seconds.
func (l *Loop) FixedDelta() float64 {
	return l.fixedDelta
}

// SimTime returns total simulated time in seconds, advanced only by fixed
// steps.
func (l *Loop) SimTime() float64 {
	return l.simTime
}

// Alpha returns the current interpolation fraction in [0, 1).
func (l *Loop) Alpha() float64 {
	return l.accumulator / l.fixedDelta
}

// LoopStats is a snapshot of loop bookkeeping counters.
type LoopStats struct {
	Frames      uint64 // Frame callbacks that advanced the loop
	Steps       uint64 // Fixed simulation steps executed
	ClampEvents uint64 // Times the anti-spiral clamp discarded catch-up time
	SimTime     float64
}

// Stats returns a snapshot of the loop's counters.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Frames:      l.frames,
		Steps:       l.steps,
		ClampEvents: l.clampEvents,
		SimTime:     l.simTime,
	}
}
