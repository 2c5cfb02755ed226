package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/punish2048/internal/core"
)

// SwipeTracker turns mouse drags into swipe directions. Terminal cell
// offsets are scaled to pixels so the travel threshold means the same
// thing as on a touch screen.
type SwipeTracker struct {
	MinTravel float64 // Minimum travel in pixels
	CellW     float64 // Pixels per terminal column
	CellH     float64 // Pixels per terminal row

	startX, startY int
	dragging       bool
}

// NewSwipeTracker creates a tracker.
func NewSwipeTracker(minTravel, cellW, cellH float64) *SwipeTracker {
	if minTravel <= 0 {
		minTravel = core.DefaultSwipeMin
	}
	return &SwipeTracker{MinTravel: minTravel, CellW: cellW, CellH: cellH}
}

// Handle classifies a mouse message. Every pointer event counts as
// activity; a left-button release far enough from its press also yields a
// direction.
func (s *SwipeTracker) Handle(msg tea.MouseMsg) []core.Action {
	actions := []core.Action{core.ActionActivity}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			s.startX, s.startY = msg.X, msg.Y
			s.dragging = true
		}

	case tea.MouseActionRelease:
		if !s.dragging {
			break
		}
		s.dragging = false
		dx := float64(msg.X-s.startX) * s.CellW
		dy := float64(msg.Y-s.startY) * s.CellH
		if dir, ok := core.SwipeAction(dx, dy, s.MinTravel); ok {
			actions = append(actions, dir)
		}
	}

	return actions
}
