// Package core holds the platform-neutral pieces shared by the game and
// the terminal front end: runtime config, input frames, and a colored
// cell buffer. Nothing here imports Bubble Tea.
package core

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the first column past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenteredAt returns a w×h box whose center is (cx, cy).
func CenteredAt(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
