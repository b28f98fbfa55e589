package engine

// Well-known bus topics. Subsystems share these instead of scattering string
// literals; game code may add its own.
const (
	// TopicShipMoved carries per-step transform updates. Registered as a
	// fast topic by default config.
	TopicShipMoved = "ship/moved"

	// TopicAsteroidMined fires when an asteroid is destroyed by mining fire.
	TopicAsteroidMined = "asteroid/mined"

	// TopicShipDamaged fires when the ship takes a hit.
	TopicShipDamaged = "ship/damaged"

	// TopicWaveEscalated fires when the survival controller raises the
	// difficulty level.
	TopicWaveEscalated = "wave/escalated"

	// TopicGameOver is the terminal lifecycle event. Secondary bus
	// instances forward it to the primary bus (see WithForwarding).
	TopicGameOver = "game/over"
)
