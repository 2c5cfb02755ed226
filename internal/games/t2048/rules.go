package t2048

// DefaultWinTile is the tile value that wins the game.
const DefaultWinTile = 2048

// CanMove reports whether any move is legal: an empty cell exists, or some
// cell equals its right neighbor or the neighbor below it.
func CanMove(b Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			v := b.At(r, c)
			if v == 0 {
				return true
			}
			if c+1 < BoardSize && b.At(r, c+1) == v {
				return true
			}
			if r+1 < BoardSize && b.At(r+1, c) == v {
				return true
			}
		}
	}
	return false
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(b Board) bool {
	return !CanMove(b)
}

// IsWin reports whether any tile has reached target.
func IsWin(b Board, target int) bool {
	for _, v := range b {
		if v >= target {
			return true
		}
	}
	return false
}

// EmptyCount returns the number of empty cells.
func EmptyCount(b Board) int {
	n := 0
	for _, v := range b {
		if v == 0 {
			n++
		}
	}
	return n
}

// EmptyCells returns the indices of all empty cells in board order.
func EmptyCells(b Board) []int {
	cells := make([]int, 0, Cells)
	for i, v := range b {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for _, v := range b {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(b Board) int {
	total := 0
	for _, v := range b {
		total += v
	}
	return total
}

// FillRatio returns the occupied share of the board, 0.0 to 1.0.
func FillRatio(b Board) float64 {
	return float64(Cells-EmptyCount(b)) / float64(Cells)
}
