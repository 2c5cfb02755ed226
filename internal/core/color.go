package core

// Color is a cell foreground. The platform maps each value to a terminal
// color; games only pick from this set.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return c < colorCount
}

// Palette is an ordered set of colors, lowest emphasis first.
type Palette []Color

// Pick returns the color at position i, clamped to the palette bounds.
func (p Palette) Pick(i int) Color {
	if len(p) == 0 {
		return ColorDefault
	}
	return p[Clamp(i, 0, len(p)-1)]
}
