package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/registry"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/storage"
)

// Options carries the wired services a play session needs. The command layer
// constructs the bus, pools, and game instance; the model only drives them.
type Options struct {
	Game    registry.Game
	Bus     *engine.Bus
	Pools   *engine.Registry
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Timing  config.TimingConfig
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a play session. Each refresh callback
// hands its timestamp to the engine loop, which decides how many fixed
// simulation steps to run and renders once with the interpolation fraction.
type Model struct {
	opts       Options
	loop       *engine.Loop
	screen     *core.Screen
	inputFrame core.InputFrame
	keys       *KeyMapper
	simState   core.SimState
	config     core.RuntimeConfig
	quitting   bool
	scoreSaved bool
}

// NewModel creates a Bubble Tea model for the given session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	inputFrame := core.NewInputFrame()

	// The loop hooks share the input frame's map and the screen with the
	// model; Bubble Tea copying the model value does not copy either.
	loop := engine.NewLoop(engine.LoopConfig{
		FixedDelta:       1.0 / float64(max(cfg.TickRate, 1)),
		MaxFrameDelta:    float64(opts.Timing.MaxFrameDeltaMS) / 1000.0,
		MaxStepsPerFrame: opts.Timing.MaxStepsPerFrame,
		WarmupFrames:     opts.Timing.WarmupFrames,
		FrameRateCap:     cfg.FrameCap,
		Update: func(dt float64) {
			opts.Game.Step(inputFrame, dt)
			// Consumed by exactly one step; a key press never repeats.
			inputFrame.Clear()
		},
		Render: func(alpha float64) {
			opts.Game.Render(screen, alpha)
		},
		Logger: opts.Logger,
	})

	return Model{
		opts:       opts,
		loop:       loop,
		screen:     screen,
		inputFrame: inputFrame,
		keys:       NewKeyMapper(),
		config:     cfg,
	}
}

// Init initializes the model and starts the refresh callbacks.
func (m Model) Init() tea.Cmd {
	m.opts.Game.Reset(m.config)
	return frameCmd(m.config.RefreshRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.loop.Destroy()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. Resizing mid-run restarts the
// simulation; the play field is the screen, so its dimensions are part of the
// run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.simState.GameOver {
		m.opts.Game.Reset(m.config)
	}
	return m, nil
}

// handleFrame runs one engine frame from the refresh callback timestamp.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.simState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.opts.Game.Reset(m.config)
		m.simState = m.opts.Game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, frameCmd(m.config.RefreshRate)
	}

	m.loop.Frame(now)
	m.simState = m.opts.Game.State()

	// Save the run once on game over, with the engine diagnostics that
	// describe how clean the session was.
	if m.simState.GameOver && !m.scoreSaved {
		if m.opts.Store != nil && m.simState.Score > 0 {
			//nolint:errcheck // Best-effort save, play continues regardless
			m.opts.Store.SaveRun(storage.RunRecord{
				Mode:         m.opts.Game.ID(),
				Score:        m.simState.Score,
				Wave:         m.simState.Wave,
				DurationSecs: int(m.simState.Elapsed),
				ClampEvents:  m.loop.Stats().ClampEvents,
				Overflows:    totalOverflows(m.opts.Pools),
			})
		}
		m.scoreSaved = true
	}

	return m, frameCmd(m.config.RefreshRate)
}

// totalOverflows sums overflow counts across all registered pools.
func totalOverflows(pools *engine.Registry) uint64 {
	if pools == nil {
		return 0
	}
	var total uint64
	for _, s := range pools.AllStats() {
		total += s.Overflows
	}
	return total
}

// View renders the latest frame the engine produced.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a play session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
