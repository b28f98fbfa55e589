package game

import (
	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/registry"
)

// RegisterModes adds the miner's play modes to a registry. Survival is the
// standard escalating run; zen disables hull damage for practice.
func RegisterModes(r *registry.Registry) {
	r.Register("survival", "Asteroid Miner", func(deps registry.Deps) registry.Game {
		return New(deps.Miner, deps.Bus, deps.Pools, deps.Logger, false)
	})
	r.Register("zen", "Asteroid Miner (zen)", func(deps registry.Deps) registry.Game {
		return New(deps.Miner, deps.Bus, deps.Pools, deps.Logger, true)
	})
}
