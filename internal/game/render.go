package game

import (
	"fmt"
	"math"

	"github.com/matthew-kissinger/Asteroid-Miner-sub004/internal/core"
)

// Render draws the current simulation state into the screen buffer. Positions
// are interpolated between the previous and current fixed step by alpha, so
// motion stays smooth when the display refreshes faster than the simulation
// ticks.
func (m *Miner) Render(dst *core.Screen, alpha float64) {
	dst.Clear()

	for _, p := range m.particles {
		pos := m.lerpWrapped(p.Prev, p.Pos, alpha)
		dst.SetColored(int(pos.X), int(pos.Y), p.Glyph, p.Color)
	}

	for _, a := range m.asteroids {
		pos := m.lerpWrapped(a.Prev, a.Pos, alpha)
		dst.SetColored(int(pos.X), int(pos.Y), asteroidGlyph(a.Size), core.ColorGray)
	}

	for _, p := range m.projectiles {
		pos := m.lerpWrapped(p.Prev, p.Pos, alpha)
		dst.SetColored(int(pos.X), int(pos.Y), '•', core.ColorBrightCyan)
	}

	if !m.gameOver {
		ship := m.lerpWrapped(m.shipPrev, m.shipPos, alpha)
		color := core.ColorBrightWhite
		if m.invulnerable > 0 && int(m.invulnerable*10)%2 == 0 {
			color = core.ColorGray // Blink during the grace period
		}
		dst.SetColored(int(ship.X), int(ship.Y), shipGlyph(m.shipAngle), color)
	}

	m.drawHUD(dst)

	if m.paused {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
	if m.gameOver {
		dst.DrawTextCentered(dst.Height()/2-1, "SHIP DESTROYED")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("ore banked: %d", m.score))
		dst.DrawTextCentered(dst.Height()/2+2, "press R to restart")
	}
}

func (m *Miner) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" ORE %d  HULL %s  WAVE %d  %s",
		m.score, hullBar(m.hull, m.cfg.Ship.Hull), m.ctrl.Wave(), clock(m.elapsed))
	dst.DrawTextColored(0, 0, hud, core.ColorBrightYellow)
}

// lerpWrapped interpolates between two positions unless the entity crossed a
// field seam between steps, in which case interpolating would sweep it across
// the whole screen.
func (m *Miner) lerpWrapped(prev, pos core.Vec2, alpha float64) core.Vec2 {
	if math.Abs(pos.X-prev.X) > float64(m.runtime.ScreenW)/2 ||
		math.Abs(pos.Y-prev.Y) > float64(m.runtime.ScreenH)/2 {
		return pos
	}
	return core.Lerp(prev, pos, alpha)
}

// shipGlyph picks a direction glyph for the ship heading.
func shipGlyph(angle float64) rune {
	// Quantize to 8 directions starting at +X, going clockwise on screen.
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return []rune{'▶', '◢', '▼', '◣', '◀', '◤', '▲', '◥'}[sector]
}

func asteroidGlyph(size int) rune {
	switch size {
	case AsteroidLarge:
		return '@'
	case AsteroidMedium:
		return 'O'
	default:
		return 'o'
	}
}

func hullBar(hull, max int) string {
	bar := make([]rune, 0, max)
	for i := 0; i < max; i++ {
		if i < hull {
			bar = append(bar, '█')
		} else {
			bar = append(bar, '░')
		}
	}
	return string(bar)
}

func clock(elapsed float64) string {
	total := int(elapsed)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
