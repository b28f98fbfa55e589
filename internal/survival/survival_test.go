package survival

import (
	"math"
	"testing"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
)

func testDifficulty() config.DifficultyConfig {
	return config.DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression: config.ProgressionConfig{
			Type:         "time",
			MaxAtSeconds: 100.0,
			WaveInterval: 10.0,
		},
		Scaling: config.ScalingConfig{
			SpeedMultiplier:        1.0,
			SpawnIntervalReduction: 2.0,
			ExtraAsteroids:         10,
		},
	}
}

func TestLevelProgression(t *testing.T) {
	tests := []struct {
		name     string
		initial  float64
		elapsed  float64
		expected float64
	}{
		{"start", 0.0, 0, 0.0},
		{"halfway", 0.0, 50, 0.5},
		{"max", 0.0, 100, 1.0},
		{"clamped past max", 0.0, 500, 1.0},
		{"hard preset halfway", 0.7, 50, 0.85}, // interpolates 0.7 -> 1.0
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testDifficulty()
			cfg.InitialLevel = tc.initial
			c := New(cfg, nil)
			if got := c.Level(tc.elapsed); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Level(%v) = %v, expected %v", tc.elapsed, got, tc.expected)
			}
		})
	}
}

func TestLevelDisabled(t *testing.T) {
	cfg := testDifficulty()
	cfg.Enabled = false
	cfg.InitialLevel = 0.4
	c := New(cfg, nil)

	if got := c.Level(1000); got != 0.4 {
		t.Errorf("disabled Level = %v, expected fixed 0.4", got)
	}
}

func TestWaveEscalationPublishes(t *testing.T) {
	bus := engine.NewBus()
	var waves []int
	bus.Subscribe(engine.TopicWaveEscalated, func(m engine.Message) {
		waves = append(waves, m.Data["wave"].(int))
	})

	c := New(testDifficulty(), bus)

	// Simulate a minute at one-second ticks; wave interval is 10s.
	for elapsed := 0.0; elapsed <= 60.0; elapsed += 1.0 {
		c.Tick(elapsed)
	}

	expected := []int{2, 3, 4, 5, 6, 7}
	if len(waves) != len(expected) {
		t.Fatalf("waves = %v, expected %v", waves, expected)
	}
	for i := range expected {
		if waves[i] != expected[i] {
			t.Fatalf("waves = %v, expected %v", waves, expected)
		}
	}
	if c.Wave() != 7 {
		t.Errorf("Wave() = %d, expected 7", c.Wave())
	}
}

func TestWaveDoesNotRepeat(t *testing.T) {
	bus := engine.NewBus()
	count := 0
	bus.Subscribe(engine.TopicWaveEscalated, func(m engine.Message) { count++ })

	c := New(testDifficulty(), bus)
	for i := 0; i < 100; i++ {
		c.Tick(15.0) // Same elapsed time repeatedly
	}

	if count != 1 {
		t.Errorf("wave published %d times for one boundary, expected 1", count)
	}
}

func TestParameterScaling(t *testing.T) {
	c := New(testDifficulty(), nil)

	// At max difficulty: interval 3.0 - 2.0 = 1.0, speed doubled, cap +10.
	if got := c.SpawnInterval(3.0, 100); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("SpawnInterval at max = %v, expected 1.0", got)
	}
	if got := c.Speed(5.0, 100); math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Speed at max = %v, expected 10.0", got)
	}
	if got := c.MaxAsteroids(10, 100); got != 20 {
		t.Errorf("MaxAsteroids at max = %d, expected 20", got)
	}

	// Spawn interval never drops below the playable floor.
	if got := c.SpawnInterval(1.0, 100); got != 0.5 {
		t.Errorf("SpawnInterval floor = %v, expected 0.5", got)
	}
}
