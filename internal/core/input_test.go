package core

import (
	"testing"
	"time"
)

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Action
		ok     bool
	}{
		{"short drag", 10, -12, ActionNone, false},
		{"just below threshold", 23.9, 0, ActionNone, false},
		{"at threshold right", 24, 0, ActionRight, true},
		{"left", -40, 10, ActionLeft, true},
		{"down", 5, 30, ActionDown, true},
		{"up", -5, -30, ActionUp, true},
		{"diagonal tie goes vertical", 30, 30, ActionDown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SwipeAction(tc.dx, tc.dy, DefaultSwipeMin)
			if got != tc.want || ok != tc.ok {
				t.Errorf("SwipeAction(%v, %v) = (%v, %v), want (%v, %v)", tc.dx, tc.dy, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionActivity)
	f.Set(ActionUp)
	f.Now = time.Unix(100, 0)

	dirs := f.Directions()
	if len(dirs) != 2 || dirs[0] != ActionLeft || dirs[1] != ActionUp {
		t.Errorf("Directions() = %v, want [Left Up]", dirs)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) || len(f.Directions()) != 0 || !f.Now.IsZero() {
		t.Error("Clear should reset actions, order and time")
	}
	if !clone.Has(ActionUp) || len(clone.Directions()) != 2 || clone.Now.Unix() != 100 {
		t.Error("Clone should be independent of the original")
	}
}
