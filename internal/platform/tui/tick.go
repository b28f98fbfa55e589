// Package tui provides the Bubble Tea integration for the miner: it owns the
// terminal frame callback that drives the engine loop, input mapping, and
// screen presentation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is the display-refresh callback. Its timestamp feeds the engine
// loop, which decides how many fixed steps to run; the message rate only
// controls how often we get the chance.
type FrameMsg time.Time

// frameCmd schedules the next refresh callback at the given rate.
func frameCmd(refreshRate int) tea.Cmd {
	if refreshRate <= 0 {
		refreshRate = 60
	}
	interval := time.Second / time.Duration(refreshRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
