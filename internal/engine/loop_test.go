package engine

import (
	"math"
	"testing"
	"time"
)

// frameClock generates synthetic monotonically increasing timestamps so loop
// behavior is tested without wall-clock sleeps.
type frameClock struct {
	now time.Time
}

func newFrameClock() *frameClock {
	return &frameClock{now: time.Unix(1000, 0)}
}

func (c *frameClock) advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func TestLoopFixedStepDeterminism(t *testing.T) {
	var updates int
	var dts []float64

	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Update: func(dt float64) {
			updates++
			dts = append(dts, dt)
		},
	})

	clock := newFrameClock()
	loop.Frame(clock.now) // Establish baseline

	// 100 frames of 10ms each: exactly one step per frame.
	for i := 0; i < 100; i++ {
		loop.Frame(clock.advance(10 * time.Millisecond))
	}

	if updates != 100 {
		t.Errorf("updates = %d, expected 100", updates)
	}
	for i, dt := range dts {
		if dt != 0.010 {
			t.Errorf("update %d received dt = %v, expected constant 0.010", i, dt)
		}
	}
	if got := loop.SimTime(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("SimTime() = %v, expected 1.0", got)
	}
}

func TestLoopStepCountMatchesElapsed(t *testing.T) {
	tests := []struct {
		name          string
		frameInterval time.Duration
		frames        int
		expectedSteps int
	}{
		{"faster than sim rate", 5 * time.Millisecond, 20, 10},  // 100ms elapsed / 10ms
		{"matching sim rate", 10 * time.Millisecond, 10, 10},    // 100ms / 10ms
		{"slower than sim rate", 30 * time.Millisecond, 10, 30}, // 300ms / 10ms
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var updates int
			loop := NewLoop(LoopConfig{
				FixedDelta: 0.010,
				Update:     func(dt float64) { updates++ },
			})

			clock := newFrameClock()
			loop.Frame(clock.now)
			for i := 0; i < tc.frames; i++ {
				loop.Frame(clock.advance(tc.frameInterval))
			}

			if updates != tc.expectedSteps {
				t.Errorf("updates = %d, expected %d", updates, tc.expectedSteps)
			}
		})
	}
}

func TestLoopAntiSpiralClamp(t *testing.T) {
	var updates int
	loop := NewLoop(LoopConfig{
		FixedDelta:       0.010,
		MaxStepsPerFrame: 4,
		Update:           func(dt float64) { updates++ },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)

	// A 5 second stall must not queue 500 catch-up steps.
	loop.Frame(clock.advance(5 * time.Second))

	if updates > 4 {
		t.Errorf("updates = %d after stall, expected at most 4", updates)
	}
	if alpha := loop.Alpha(); alpha < 0 || alpha >= 1 {
		t.Errorf("Alpha() = %v after clamp, expected [0, 1)", alpha)
	}
	if loop.Stats().ClampEvents == 0 {
		t.Error("expected a clamp event after a 5s stall")
	}
}

func TestLoopMaxFrameDelta(t *testing.T) {
	var updates int
	loop := NewLoop(LoopConfig{
		FixedDelta:       0.010,
		MaxFrameDelta:    0.030,
		MaxStepsPerFrame: 100,
		Update:           func(dt float64) { updates++ },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)
	loop.Frame(clock.advance(time.Second))

	// Only the clamped 30ms contributes: 3 steps.
	if updates != 3 {
		t.Errorf("updates = %d, expected 3 (clamped frame delta)", updates)
	}
}

func TestLoopWarmup(t *testing.T) {
	var updates, renders int
	loop := NewLoop(LoopConfig{
		FixedDelta:   0.010,
		WarmupFrames: 3,
		Update:       func(dt float64) { updates++ },
		Render:       func(alpha float64) { renders++ },
	})

	clock := newFrameClock()
	for i := 0; i < 3; i++ {
		loop.Frame(clock.advance(50 * time.Millisecond))
	}
	if updates != 0 || renders != 0 {
		t.Fatalf("hooks ran during warmup: updates=%d renders=%d", updates, renders)
	}

	// Timers were re-based on the final warmup frame, so the next frame sees
	// only its own delta.
	loop.Frame(clock.advance(10 * time.Millisecond))
	if updates != 1 {
		t.Errorf("updates = %d after warmup, expected 1", updates)
	}
	if renders != 1 {
		t.Errorf("renders = %d after warmup, expected 1", renders)
	}
}

func TestLoopFrameRateCap(t *testing.T) {
	var renders int
	loop := NewLoop(LoopConfig{
		FixedDelta:   0.010,
		FrameRateCap: 30, // 33.3ms interval
		Render:       func(alpha float64) { renders++ },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)

	// 60Hz callbacks against a 30fps cap: every other frame is skipped.
	for i := 0; i < 10; i++ {
		loop.Frame(clock.advance(17 * time.Millisecond))
	}

	if renders != 5 {
		t.Errorf("renders = %d with 30fps cap at 60Hz callbacks, expected 5", renders)
	}
}

func TestLoopInterpolationAlpha(t *testing.T) {
	var lastAlpha float64
	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Render:     func(alpha float64) { lastAlpha = alpha },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)
	loop.Frame(clock.advance(15 * time.Millisecond))

	// 15ms = one 10ms step + 5ms residue.
	if math.Abs(lastAlpha-0.5) > 1e-9 {
		t.Errorf("alpha = %v, expected 0.5", lastAlpha)
	}
}

func TestLoopRenderAfterUpdates(t *testing.T) {
	var order []string
	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Update:     func(dt float64) { order = append(order, "update") },
		Render:     func(alpha float64) { order = append(order, "render") },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)
	loop.Frame(clock.advance(25 * time.Millisecond))

	expected := []string{"update", "update", "render"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
}

func TestLoopPauseResume(t *testing.T) {
	var updates int
	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Update:     func(dt float64) { updates++ },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)
	loop.Frame(clock.advance(10 * time.Millisecond))
	if updates != 1 {
		t.Fatalf("updates = %d before pause, expected 1", updates)
	}

	loop.Pause()
	loop.Frame(clock.advance(500 * time.Millisecond))
	if updates != 1 {
		t.Errorf("updates = %d while paused, expected 1", updates)
	}

	// Resume re-bases the clock: the paused half second is not replayed.
	loop.Resume(clock.now)
	loop.Frame(clock.advance(10 * time.Millisecond))
	if updates != 2 {
		t.Errorf("updates = %d after resume, expected 2", updates)
	}
}

func TestLoopDestroy(t *testing.T) {
	var updates int
	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Update:     func(dt float64) { updates++ },
	})

	clock := newFrameClock()
	loop.Frame(clock.now)
	loop.Destroy()
	loop.Frame(clock.advance(100 * time.Millisecond))

	if updates != 0 {
		t.Errorf("updates = %d after Destroy, expected 0", updates)
	}
}

func TestLoopTimingSurvivesPanickingFrame(t *testing.T) {
	var updates int
	panicOnce := true
	loop := NewLoop(LoopConfig{
		FixedDelta: 0.010,
		Update: func(dt float64) {
			if panicOnce {
				panicOnce = false
				panic("bad frame")
			}
			updates++
		},
	})

	clock := newFrameClock()
	loop.Frame(clock.now)

	func() {
		defer func() { recover() }()
		loop.Frame(clock.advance(10 * time.Millisecond))
	}()

	// lastFrameTime was advanced before the hook ran, so the next frame sees
	// a normal 10ms delta. The failed step's accumulated time is retried,
	// giving two steps here, not a corrupted multi-second delta.
	loop.Frame(clock.advance(10 * time.Millisecond))
	if updates != 2 {
		t.Errorf("updates = %d after recovered frame, expected 2", updates)
	}
}
