// Package game implements the asteroid miner simulation: a ship mining ore
// from drifting asteroids in a wrap-around field, under escalating spawn
// pressure. It is the primary consumer of the engine's pools and message bus.
package game

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/survival"
)

// Miner is one run of the simulation. All state is owned by the single
// control-flow thread; Step and Render are never called concurrently.
type Miner struct {
	cfg    config.MinerConfig
	bus    *engine.Bus
	pools  *engine.Registry
	logger *log.Logger
	zen    bool

	runtime core.RuntimeConfig
	rng     *rand.Rand
	ctrl    *survival.Controller

	shipPos   core.Vec2
	shipPrev  core.Vec2
	shipVel   core.Vec2
	shipAngle float64

	asteroids   []*Asteroid
	projectiles []*Projectile
	particles   []*Particle

	score        int
	hull         int
	elapsed      float64
	spawnTimer   float64
	cooldown     float64
	invulnerable float64
	gameOver     bool
	paused       bool
}

// New creates a miner run wired to the given bus and pool registry. The zen
// flag disables hull damage for practice play.
func New(cfg config.MinerConfig, bus *engine.Bus, pools *engine.Registry, logger *log.Logger, zen bool) *Miner {
	return &Miner{
		cfg:    cfg,
		bus:    bus,
		pools:  pools,
		logger: logger,
		zen:    zen,
	}
}

// ID returns the mode identifier.
func (m *Miner) ID() string {
	if m.zen {
		return "zen"
	}
	return "survival"
}

// Title returns the display name.
func (m *Miner) Title() string {
	if m.zen {
		return "Asteroid Miner (zen)"
	}
	return "Asteroid Miner"
}

// Reset starts a fresh run. Entities still held from a previous run go back
// to their pools first, so restarts never leak checked-out instances.
func (m *Miner) Reset(rc core.RuntimeConfig) {
	m.releaseAll()

	m.runtime = rc
	seed := rc.Seed
	if seed == 0 {
		seed = 1
	}
	m.rng = rand.New(rand.NewSource(seed))
	m.ctrl = survival.New(m.cfg.Difficulty, m.bus)

	m.shipPos = core.Vec2{X: float64(rc.ScreenW) / 2, Y: float64(rc.ScreenH) / 2}
	m.shipPrev = m.shipPos
	m.shipVel = core.Vec2{}
	m.shipAngle = -math.Pi / 2 // Facing up

	m.score = 0
	m.hull = m.cfg.Ship.Hull
	m.elapsed = 0
	m.spawnTimer = 0
	m.cooldown = 0
	m.invulnerable = 0
	m.gameOver = false
	m.paused = false

	for i := 0; i < m.cfg.Spawning.InitialAsteroids; i++ {
		m.spawnAsteroid(AsteroidMedium + m.rng.Intn(2))
	}
}

// State reports the externally visible run status.
func (m *Miner) State() core.SimState {
	return core.SimState{
		Score:    m.score,
		Wave:     m.ctrl.Wave(),
		Hull:     m.hull,
		Elapsed:  m.elapsed,
		GameOver: m.gameOver,
		Paused:   m.paused,
	}
}

// TogglePause flips the pause flag. Has no effect after game over.
func (m *Miner) TogglePause() {
	if !m.gameOver {
		m.paused = !m.paused
	}
}

// Step advances the simulation by one fixed timestep. Input frames are
// edge-triggered; a held key appears once per platform key event, not once
// per step.
func (m *Miner) Step(in core.InputFrame, dt float64) {
	if in.Has(core.ActionPause) {
		m.TogglePause()
	}
	if m.gameOver || m.paused {
		return
	}

	m.elapsed += dt
	m.ctrl.Tick(m.elapsed)

	m.stepShip(in, dt)
	m.stepProjectiles(dt)
	m.stepAsteroids(dt)
	m.stepParticles(dt)
	m.spawnPressure(dt)
	m.collide()
}

func (m *Miner) stepShip(in core.InputFrame, dt float64) {
	phys := m.cfg.Physics

	if in.Has(core.ActionTurnLeft) {
		m.shipAngle -= phys.TurnRate * dt
	}
	if in.Has(core.ActionTurnRight) {
		m.shipAngle += phys.TurnRate * dt
	}
	if in.Has(core.ActionThrust) {
		m.shipVel = m.shipVel.Add(core.Heading(m.shipAngle).Scale(phys.Thrust * dt))
		m.exhaust()
	}

	// Drag, then clamp to max speed.
	m.shipVel = m.shipVel.Scale(math.Pow(phys.Drag, dt))
	if speed := m.shipVel.Length(); speed > phys.MaxSpeed {
		m.shipVel = m.shipVel.Scale(phys.MaxSpeed / speed)
	}

	m.shipPrev = m.shipPos
	m.shipPos = m.wrap(m.shipPos.Add(m.shipVel.Scale(dt)))

	m.cooldown -= dt
	if m.invulnerable > 0 {
		m.invulnerable -= dt
	}
	if in.Has(core.ActionFire) && m.cooldown <= 0 {
		m.fire()
		m.cooldown = phys.FireCooldown
	}

	m.bus.Publish(engine.TopicShipMoved, map[string]any{
		"x":     m.shipPos.X,
		"y":     m.shipPos.Y,
		"angle": m.shipAngle,
	})
}

func (m *Miner) fire() {
	muzzle := core.Heading(m.shipAngle)
	vel := muzzle.Scale(m.cfg.Physics.LaserSpeed).Add(m.shipVel)
	pos := m.shipPos.Add(muzzle.Scale(1.5))
	p := engine.Acquire[Projectile](m.pools, PoolProjectile, pos, vel, m.cfg.Physics.LaserLife)
	m.projectiles = append(m.projectiles, p)
}

// exhaust emits a short-lived particle behind the ship while thrusting.
func (m *Miner) exhaust() {
	back := core.Heading(m.shipAngle).Scale(-1)
	jitter := core.Vec2{X: (m.rng.Float64() - 0.5) * 4, Y: (m.rng.Float64() - 0.5) * 4}
	vel := back.Scale(8 + m.rng.Float64()*4).Add(jitter).Add(m.shipVel)
	p := engine.Acquire[Particle](m.pools, PoolParticle, m.shipPos.Add(back), vel, 0.25+m.rng.Float64()*0.2)
	p.Color = core.ColorYellow
	m.particles = append(m.particles, p)
}

// explosion scatters debris particles from a point.
func (m *Miner) explosion(at core.Vec2, count int, color core.Color) {
	for i := 0; i < count; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		speed := 4 + m.rng.Float64()*10
		p := engine.Acquire[Particle](m.pools, PoolParticle, at, core.Heading(angle).Scale(speed), 0.4+m.rng.Float64()*0.4)
		p.Color = color
		p.Glyph = '*'
		m.particles = append(m.particles, p)
	}
}

func (m *Miner) stepProjectiles(dt float64) {
	alive := m.projectiles[:0]
	for _, p := range m.projectiles {
		p.Life -= dt
		if p.Life <= 0 {
			m.mustRelease(PoolProjectile, p)
			continue
		}
		p.Prev = p.Pos
		p.Pos = m.wrap(p.Pos.Add(p.Vel.Scale(dt)))
		alive = append(alive, p)
	}
	m.projectiles = alive
}

func (m *Miner) stepAsteroids(dt float64) {
	for _, a := range m.asteroids {
		a.Prev = a.Pos
		a.Pos = m.wrap(a.Pos.Add(a.Vel.Scale(dt)))
	}
}

func (m *Miner) stepParticles(dt float64) {
	alive := m.particles[:0]
	for _, p := range m.particles {
		p.Life -= dt
		if p.Life <= 0 {
			m.mustRelease(PoolParticle, p)
			continue
		}
		p.Prev = p.Pos
		p.Pos = m.wrap(p.Pos.Add(p.Vel.Scale(dt)))
		alive = append(alive, p)
	}
	m.particles = alive
}

// spawnPressure drips new asteroids in at the rate the difficulty controller
// dictates, up to the scaled simultaneous cap.
func (m *Miner) spawnPressure(dt float64) {
	m.spawnTimer += dt
	interval := m.ctrl.SpawnInterval(m.cfg.Spawning.SpawnInterval, m.elapsed)
	if m.spawnTimer < interval {
		return
	}
	m.spawnTimer = 0
	if len(m.asteroids) >= m.ctrl.MaxAsteroids(m.cfg.Spawning.MaxAsteroids, m.elapsed) {
		return
	}
	m.spawnAsteroid(AsteroidMedium + m.rng.Intn(2))
}

// spawnAsteroid places an asteroid on a random field edge drifting inward.
func (m *Miner) spawnAsteroid(size int) {
	w, h := float64(m.runtime.ScreenW), float64(m.runtime.ScreenH)
	var pos core.Vec2
	switch m.rng.Intn(4) {
	case 0:
		pos = core.Vec2{X: m.rng.Float64() * w, Y: 0}
	case 1:
		pos = core.Vec2{X: m.rng.Float64() * w, Y: h - 1}
	case 2:
		pos = core.Vec2{X: 0, Y: m.rng.Float64() * h}
	default:
		pos = core.Vec2{X: w - 1, Y: m.rng.Float64() * h}
	}

	sp := m.cfg.Spawning
	speed := sp.MinSpeed + m.rng.Float64()*(sp.MaxSpeed-sp.MinSpeed)
	speed = m.ctrl.Speed(speed, m.elapsed)
	angle := m.rng.Float64() * 2 * math.Pi

	a := engine.Acquire[Asteroid](m.pools, PoolAsteroid, pos, core.Heading(angle).Scale(speed), size)
	m.asteroids = append(m.asteroids, a)
}

// collide resolves projectile/asteroid and ship/asteroid contacts. Fragments
// from split rocks join the field after the sweep so they are not re-tested
// against the projectile that freed them.
func (m *Miner) collide() {
	var fragments []*Asteroid
	survivors := m.asteroids[:0]
	for _, a := range m.asteroids {
		hit := false
		for i, p := range m.projectiles {
			if p.Pos.Sub(a.Pos).Length() <= a.Radius() {
				m.projectiles[i] = m.projectiles[len(m.projectiles)-1]
				m.projectiles = m.projectiles[:len(m.projectiles)-1]
				m.mustRelease(PoolProjectile, p)
				hit = true
				break
			}
		}
		if hit {
			fragments = append(fragments, m.mine(a)...)
			continue
		}

		if !m.gameOver && m.invulnerable <= 0 && m.shipPos.Sub(a.Pos).Length() <= a.Radius()+1 {
			m.shipHit(a)
			continue
		}

		survivors = append(survivors, a)
	}
	m.asteroids = append(survivors, fragments...)
}

// mine destroys an asteroid, banking ore and splitting larger rocks into
// faster fragments.
func (m *Miner) mine(a *Asteroid) []*Asteroid {
	value := m.cfg.Spawning.OreValue * a.Size
	m.score += value
	m.explosion(a.Pos, 3+a.Size*2, core.ColorOrange)

	var fragments []*Asteroid
	if a.Size > AsteroidSmall {
		for i := 0; i < 2; i++ {
			angle := m.rng.Float64() * 2 * math.Pi
			speed := a.Vel.Length()*1.3 + 1
			frag := engine.Acquire[Asteroid](m.pools, PoolAsteroid, a.Pos, core.Heading(angle).Scale(speed), a.Size-1)
			fragments = append(fragments, frag)
		}
	}

	m.bus.Publish(engine.TopicAsteroidMined, map[string]any{
		"value": value,
		"size":  a.Size,
		"score": m.score,
	})
	m.mustRelease(PoolAsteroid, a)
	return fragments
}

// shipHit resolves an asteroid striking the ship.
func (m *Miner) shipHit(a *Asteroid) {
	m.explosion(a.Pos, 8, core.ColorRed)
	m.mustRelease(PoolAsteroid, a)

	if m.zen {
		return
	}

	m.hull--
	m.invulnerable = 2.0 // Grace period after a hit
	m.bus.Publish(engine.TopicShipDamaged, map[string]any{
		"hull": m.hull,
	})

	if m.hull <= 0 {
		m.gameOver = true
		m.bus.Publish(engine.TopicGameOver, map[string]any{
			"score":   m.score,
			"wave":    m.ctrl.Wave(),
			"elapsed": m.elapsed,
		})
	}
}

// mustRelease returns an instance to its pool. A failure here means entity
// bookkeeping is broken, which is a bug worth logging loudly, not hiding.
func (m *Miner) mustRelease(pool string, obj any) {
	var err error
	switch v := obj.(type) {
	case *Projectile:
		err = engine.ReleaseTo(m.pools, pool, v)
	case *Particle:
		err = engine.ReleaseTo(m.pools, pool, v)
	case *Asteroid:
		err = engine.ReleaseTo(m.pools, pool, v)
	}
	if err != nil && m.logger != nil {
		m.logger.Error("pool release failed", "pool", pool, "err", err)
	}
}

// releaseAll returns every live entity to its pool.
func (m *Miner) releaseAll() {
	for _, p := range m.projectiles {
		m.mustRelease(PoolProjectile, p)
	}
	for _, p := range m.particles {
		m.mustRelease(PoolParticle, p)
	}
	for _, a := range m.asteroids {
		m.mustRelease(PoolAsteroid, a)
	}
	m.projectiles = m.projectiles[:0]
	m.particles = m.particles[:0]
	m.asteroids = m.asteroids[:0]
}

// wrap maps a position onto the toroidal play field.
func (m *Miner) wrap(v core.Vec2) core.Vec2 {
	return core.Vec2{
		X: core.Wrap(v.X, float64(m.runtime.ScreenW)),
		Y: core.Wrap(v.Y, float64(m.runtime.ScreenH)),
	}
}
