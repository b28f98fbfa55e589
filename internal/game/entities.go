package game

import (
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/engine"
)

// Pool names used by the simulation. These match the sizing keys in the
// engine config.
const (
	PoolProjectile = "projectile"
	PoolParticle   = "particle"
	PoolAsteroid   = "asteroid"
)

// Projectile is a mining laser bolt. Pos/Prev are kept separately so the
// renderer can interpolate between the last two simulation states.
type Projectile struct {
	Pos  core.Vec2
	Prev core.Vec2
	Vel  core.Vec2
	Life float64 // Seconds remaining
}

// Particle is a short-lived visual effect cell (exhaust, explosion debris).
type Particle struct {
	Pos     core.Vec2
	Prev    core.Vec2
	Vel     core.Vec2
	Life    float64
	MaxLife float64
	Glyph   rune
	Color   core.Color
}

// Asteroid sizes. Large asteroids split into mediums, mediums into smalls.
const (
	AsteroidSmall = iota + 1
	AsteroidMedium
	AsteroidLarge
)

// Asteroid is a drifting hazard and ore source.
type Asteroid struct {
	Pos  core.Vec2
	Prev core.Vec2
	Vel  core.Vec2
	Size int
}

// Radius returns the collision radius in cells.
func (a *Asteroid) Radius() float64 {
	return float64(a.Size)
}

// RegisterPools registers the simulation's object pools with the sizing from
// the engine config. Reset funcs fully reinitialize reused instances, so
// stale state from a previous checkout never leaks into a new effect.
func RegisterPools(pools *engine.Registry, sizing map[string]config.PoolSizing) {
	size := func(name string, preallocate, maxSize int) config.PoolSizing {
		if s, ok := sizing[name]; ok {
			return s
		}
		return config.PoolSizing{Preallocate: preallocate, MaxSize: maxSize}
	}

	proj := size(PoolProjectile, 32, 128)
	engine.RegisterPool(pools, PoolProjectile, engine.PoolConfig[Projectile]{
		Reset: func(p *Projectile, args ...any) {
			*p = Projectile{}
			if len(args) == 3 {
				p.Pos = args[0].(core.Vec2)
				p.Vel = args[1].(core.Vec2)
				p.Life = args[2].(float64)
				p.Prev = p.Pos
			}
		},
		Preallocate: proj.Preallocate,
		MaxSize:     proj.MaxSize,
	})

	part := size(PoolParticle, 128, 512)
	engine.RegisterPool(pools, PoolParticle, engine.PoolConfig[Particle]{
		Reset: func(p *Particle, args ...any) {
			*p = Particle{Glyph: '·', Color: core.ColorGray}
			if len(args) == 3 {
				p.Pos = args[0].(core.Vec2)
				p.Vel = args[1].(core.Vec2)
				p.Life = args[2].(float64)
				p.MaxLife = p.Life
				p.Prev = p.Pos
			}
		},
		Preallocate: part.Preallocate,
		MaxSize:     part.MaxSize,
	})

	ast := size(PoolAsteroid, 16, 64)
	engine.RegisterPool(pools, PoolAsteroid, engine.PoolConfig[Asteroid]{
		Reset: func(a *Asteroid, args ...any) {
			*a = Asteroid{Size: AsteroidMedium}
			if len(args) == 3 {
				a.Pos = args[0].(core.Vec2)
				a.Vel = args[1].(core.Vec2)
				a.Size = args[2].(int)
				a.Prev = a.Pos
			}
		},
		Preallocate: ast.Preallocate,
		MaxSize:     ast.MaxSize,
	})
}
