// Package tui provides the Bubble Tea front end: the level menu, the board,
// the stats screen and SSH hosting via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the board to advance one simulation step. Gen ties the
// message to the tick loop that scheduled it; a loop is abandoned whenever
// the run leaves running, and its late messages are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd schedules one tick message for the given loop generation.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
