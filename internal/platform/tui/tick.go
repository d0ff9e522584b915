// Package tui runs games in a terminal with Bubble Tea, locally or over SSH.
// It owns the tick clock, maps keys to actions and draws the screen buffer.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Clock identifies the model that scheduled it, so ticks of a finished
// game never drive its successor.
type TickMsg struct {
	Time  time.Time
	Clock uint64
}

var clocks atomic.Uint64

// newClock returns a fresh clock id.
func newClock() uint64 {
	return clocks.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for clock after
// a tick interval.
func tickCmd(tickRate int, clock uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Clock: clock}
	})
}
