package t2048

import (
	"math"

	"github.com/vovakirdan/punish2048/internal/core"
)

// Default theme shifting parameters.
const (
	DefaultThemeStep  = 2500
	DefaultThemeCount = 5
)

// ThemeIndex returns the palette index for score: one shift every step
// points, wrapping after count palettes.
func ThemeIndex(score, step, count int) int {
	if step <= 0 || count <= 0 || score < 0 {
		return 0
	}
	return (score / step) % count
}

// MergeIntensity maps a merged tile value to a 0..1 strength, reaching 1 at
// 2048.
func MergeIntensity(value int) float64 {
	if value <= 1 {
		return 0
	}
	return math.Min(1, math.Log2(float64(value))/11)
}

// tileRank returns log2(value) - 1, so 2 is rank 0.
func tileRank(value int) int {
	rank := -1
	for value > 1 {
		value >>= 1
		rank++
	}
	return rank
}

// palettes hold tile colors per theme, low tiles first.
var palettes = []core.Palette{
	{core.ColorWhite, core.ColorYellow, core.ColorOrange, core.ColorBrightRed, core.ColorRed,
		core.ColorBrightYellow, core.ColorBrightGreen, core.ColorGreen, core.ColorBrightCyan, core.ColorBrightMagenta, core.ColorBrightWhite},
	{core.ColorCyan, core.ColorBrightCyan, core.ColorBlue, core.ColorBrightBlue, core.ColorMagenta,
		core.ColorBrightMagenta, core.ColorBrightRed, core.ColorRed, core.ColorYellow, core.ColorBrightYellow, core.ColorBrightWhite},
	{core.ColorGreen, core.ColorBrightGreen, core.ColorYellow, core.ColorBrightYellow, core.ColorOrange,
		core.ColorBrightRed, core.ColorRed, core.ColorMagenta, core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightWhite},
	{core.ColorMagenta, core.ColorBrightMagenta, core.ColorBrightBlue, core.ColorBlue, core.ColorCyan,
		core.ColorBrightCyan, core.ColorBrightGreen, core.ColorGreen, core.ColorYellow, core.ColorOrange, core.ColorBrightWhite},
	{core.ColorGray, core.ColorWhite, core.ColorBrightCyan, core.ColorBrightGreen, core.ColorBrightYellow,
		core.ColorOrange, core.ColorBrightRed, core.ColorRed, core.ColorBrightMagenta, core.ColorMagenta, core.ColorBrightWhite},
}

// TileColor returns the color of a tile value under a theme.
func TileColor(theme, value int) core.Color {
	if value <= 0 {
		return core.ColorGray
	}
	return palettes[theme%len(palettes)].Pick(tileRank(value))
}
