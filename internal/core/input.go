package core

import (
	"math"
	"time"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow, swipe up
	ActionDown            // S, J, Down arrow, swipe down
	ActionLeft            // A, H, Left arrow, swipe left
	ActionRight           // D, L, Right arrow, swipe right
	ActionActivity        // Pointer motion, wheel, press: no effect beyond counting as activity
	ActionNewGame         // N key - start over at any time
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionActivity:
		return "Activity"
	case ActionNewGame:
		return "NewGame"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action is one of the four moves.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// InputFrame represents the input collected during one platform tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Order keeps directional actions in arrival order so two quick
	// key presses within one tick are not collapsed.
	Order []Action

	// Now is the wall-clock time of the tick. Zero means "don't advance timers".
	Now time.Time
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if a.IsDirection() {
		f.Order = append(f.Order, a)
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Directions returns the directional actions of this frame in arrival order.
func (f InputFrame) Directions() []Action {
	return f.Order
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Order = f.Order[:0]
	f.Now = time.Time{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Order = append(clone.Order, f.Order...)
	clone.Now = f.Now
	return clone
}

// DefaultSwipeMin is the minimum travel (in pixels) for a drag to count as a swipe.
const DefaultSwipeMin = 24.0

// SwipeAction classifies a drag displacement as a directional action.
// The axis with the larger absolute displacement wins; its sign picks the
// direction. Displacements shorter than minTravel on both axes are not swipes.
func SwipeAction(dx, dy, minTravel float64) (Action, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if math.Max(ax, ay) < minTravel {
		return ActionNone, false
	}
	if ax > ay {
		if dx > 0 {
			return ActionRight, true
		}
		return ActionLeft, true
	}
	if dy > 0 {
		return ActionDown, true
	}
	return ActionUp, true
}
