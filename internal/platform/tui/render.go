package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/punish2048/internal/core"
)

// ansiCodes maps core colors to terminal palette indexes. An empty code
// leaves the terminal's own foreground.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle()
		if code != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(code))
		}
	}
	// The brightest tiles stand out.
	styles[core.ColorBrightWhite] = styles[core.ColorBrightWhite].Bold(true)
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns a screen buffer into styled terminal text, one style
// per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	var run strings.Builder

	for y := range lines {
		var line strings.Builder
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			if color == core.ColorDefault {
				line.WriteString(run.String())
			} else {
				line.WriteString(styleFor(color).Render(run.String()))
			}
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

var (
	feedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderFrame stacks the game screen over the help bar. A status
// message, when present, takes the help bar's place.
func renderFrame(screen, status, helpView string, width int) string {
	bar := helpStyle.Render(helpView)
	if status != "" {
		bar = lipgloss.PlaceHorizontal(width, lipgloss.Center, feedStyle.Render(status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, screen, bar)
}
