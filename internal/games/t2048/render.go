package t2048

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/punish2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)

	boardWidth   = BoardSize*cellWidth + 1
	boardHeight  = BoardSize*cellHeight + 1
	hudHeight    = 3
	footerHeight = 2
	gaugeWidth   = 10
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardWidth) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardX, boardY+boardHeight)
	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, scores and the idle gauge.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048 - PUNISH"
	if g.mode == ModeAssist {
		title = "2048 - ASSIST"
	}
	dst.DrawTextColor(boardX+(boardWidth-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))
	best := fmt.Sprintf("Best: %d", g.best)
	dst.DrawText(boardX+boardWidth-len(best), 1, best)

	dst.DrawText(boardX, 2, g.idleGauge())
	pressure := fmt.Sprintf("Fill %3.0f%%", FillRatio(g.board)*100)
	dst.DrawTextColor(boardX+boardWidth-len(pressure), 2, pressure, g.pressureColor())
}

// idleGauge renders the time left before a forced move.
func (g *Game) idleGauge() string {
	if g.supervisor == nil || !g.supervisor.Running() {
		return "Idle: off"
	}
	after := g.cfg.Idle.After()
	left := g.IdleRemaining()
	filled := 0
	if after > 0 {
		filled = int(int64(gaugeWidth) * int64(left) / int64(after))
	}
	filled = core.Clamp(filled, 0, gaugeWidth)
	return fmt.Sprintf("Idle [%s%s] %.1fs",
		strings.Repeat("#", filled),
		strings.Repeat(".", gaugeWidth-filled),
		left.Round(100*time.Millisecond).Seconds(),
	)
}

func (g *Game) pressureColor() core.Color {
	fill := FillRatio(g.board)
	switch {
	case fill >= 0.85:
		return core.ColorBrightRed
	case fill >= 0.6:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	dst.SetPen(core.ColorGray)
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}
	dst.SetPen(core.ColorDefault)

	theme := g.Theme()
	for row := range BoardSize {
		for col := range BoardSize {
			val := g.board.At(row, col)
			if val == 0 {
				continue
			}

			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)

			color := TileColor(theme, val)
			switch g.annotations[Index(row, col)] {
			case AnnotationMerged:
				if MergeIntensity(val) >= 0.5 {
					color = core.ColorBrightWhite
				}
				dst.DrawTextColor(cellX+cellWidth-2, cellY, "*", core.ColorBrightWhite)
			case AnnotationNew:
				dst.DrawTextColor(cellX, cellY, "+", core.ColorGray)
			}
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// renderFooter draws the forced-move notice or move counters.
func (g *Game) renderFooter(dst *core.Screen, boardX, y int) {
	if g.notice != "" && g.clock != nil && g.clock.Now().Before(g.noticeEnd) {
		dst.DrawTextColor(boardX+(boardWidth-len(g.notice))/2, y, g.notice, core.ColorBrightRed)
		return
	}
	stats := fmt.Sprintf("Moves: %d  Forced: %d", g.moves, g.forced)
	dst.DrawTextColor(boardX+(boardWidth-len(stats))/2, y, stats, core.ColorGray)
}

// renderOverlays draws the game over box.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardWidth/2
	centerY := boardY + boardHeight/2

	switch g.status {
	case StatusWon:
		g.drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			fmt.Sprintf("You reached %d!", MaxTile(g.board)),
			"Press R to restart")
	case StatusLost:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			"No more moves available.",
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.CenteredAt(centerX, centerY, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColor(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | Drag: Swipe | N: New | R: Restart | Q: Quit"
}
