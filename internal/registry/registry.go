// Package registry maps mode identifiers to simulation factories, letting
// the platform and CLI instantiate modes without hardcoded dependencies.
// Registries are plain values wired at startup; nothing registers itself
// through package init side effects.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
)

// Game is the interface every simulation mode implements. Modes contain pure
// logic with no terminal dependencies (especially no Bubble Tea); the
// platform handles input mapping, timing, and display.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "survival").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the run. Called once at start and again
	// when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed timestep of dt seconds.
	Step(in core.InputFrame, dt float64)

	// Render draws the current state into the screen buffer, interpolating
	// positions by alpha between the previous and current step.
	Render(dst *core.Screen, alpha float64)

	// State returns the externally visible run status.
	State() core.SimState
}

// Deps carries the shared engine services a mode needs. The same bus and
// pool registry instances serve the whole process; modes never construct
// their own.
type Deps struct {
	Bus    *engine.Bus
	Pools  *engine.Registry
	Miner  config.MinerConfig
	Logger *log.Logger
}

// Factory creates a new mode instance wired to the given services.
type Factory func(deps Deps) Game

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Registry holds mode factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New creates an empty mode registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a mode factory. Panics if the ID is already taken; duplicate
// registration is a wiring bug, not a runtime condition.
func (r *Registry) Register(id, title string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	r.factories[id] = f
	r.titles[id] = title
}

// List returns information about all registered modes, sorted by ID.
func (r *Registry) List() []ModeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ModeInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, ModeInfo{ID: id, Title: r.titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a mode by ID.
func (r *Registry) Create(id string, deps Deps) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(deps), nil
}

// Exists checks if a mode with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}
