// Package tui runs punish2048 in a terminal with Bubble Tea: key and mouse
// mapping, the menu and scoreboard screens, and the SSH server. Each tick
// carries wall time that the game uses to advance its own clock, so idle
// timers fire on the program goroutine in order with input.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when no rate is configured.
const defaultTickRate = 60

// TickMsg is one simulation tick stamped with the wall time it fired at.
// Gen identifies the model that scheduled it; a model drops ticks of
// other generations so a discarded model's pending tick cannot drive a
// newer game.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickInterval returns the period for rate ticks per second.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next tick of generation gen.
func tickCmd(rate int, gen uint64) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
