// Package tui provides the Bubble Tea integration for the flappy games.
// It handles the terminal UI loop, input mapping, and session flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of a frame. Games are stepped with the
// time elapsed since their first frame, so late ticks are not lost.
type TickMsg struct {
	Time time.Time
	Loop uint64 // tick loop that sent it
}

var loopSeq atomic.Uint64

// nextLoop returns an id for a new tick loop. A model only answers ticks of
// its own loop, so a loop left over from an earlier game dies out.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick at the given rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
