package t2048

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four moves in the order heuristics evaluate them.
var Directions = [4]Direction{DirLeft, DirUp, DirRight, DirDown}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

const (
	// BoardSize is the board dimension.
	BoardSize = 4
	// Cells is the number of cells on the board.
	Cells = BoardSize * BoardSize
)

// Board is the value grid in row-major order (index = row*BoardSize + col).
// A cell is 0 when empty, otherwise a power of two >= 2.
type Board [Cells]int

// Index returns the cell index of (row, col).
func Index(row, col int) int {
	return row*BoardSize + col
}

// Coords returns the (row, col) of a cell index.
func Coords(i int) (row, col int) {
	return i / BoardSize, i % BoardSize
}

// At returns the value at (row, col).
func (b Board) At(row, col int) int {
	return b[Index(row, col)]
}

// BoardFromRows builds a board from a row-major 2D layout.
func BoardFromRows(rows [BoardSize][BoardSize]int) Board {
	var b Board
	for r := range BoardSize {
		for c := range BoardSize {
			b[Index(r, c)] = rows[r][c]
		}
	}
	return b
}

// Rows returns the board as a 2D layout.
func (b Board) Rows() [BoardSize][BoardSize]int {
	var rows [BoardSize][BoardSize]int
	for i, v := range b {
		r, c := Coords(i)
		rows[r][c] = v
	}
	return rows
}

// Outcome is the result of simulating one move.
type Outcome struct {
	Moved  bool  // Any cell changed
	Gained int   // Sum of values created by merges
	Board  Board // Board after the move, before any spawn
	Empty  int   // Empty cells in Board
}

// Simulate plays dir on a copy of b. The input board is never modified.
func Simulate(b Board, dir Direction) Outcome {
	next := b
	moved, gained := slide(&next, dir, nil)
	return Outcome{
		Moved:  moved,
		Gained: gained,
		Board:  next,
		Empty:  EmptyCount(next),
	}
}

// lineIndices returns the cell indices of line n for dir, ordered from the
// leading edge: rows for left/right, columns for up/down, reversed for
// right/down.
func lineIndices(dir Direction, n int) [BoardSize]int {
	var idx [BoardSize]int
	for i := range BoardSize {
		switch dir {
		case DirLeft:
			idx[i] = Index(n, i)
		case DirRight:
			idx[i] = Index(n, BoardSize-1-i)
		case DirUp:
			idx[i] = Index(i, n)
		case DirDown:
			idx[i] = Index(BoardSize-1-i, n)
		}
	}
	return idx
}

// slideRow compacts and merges one line toward index 0.
// Each output slot is produced by at most one merge: a freshly merged value
// is never compared again in the same pass. merged marks slots that hold a
// merge result.
func slideRow(row [BoardSize]int) (result [BoardSize]int, score int, merged [BoardSize]bool) {
	var packed [BoardSize]int
	n := 0
	for _, v := range row {
		if v != 0 {
			packed[n] = v
			n++
		}
	}

	write := 0
	for read := 0; read < n; read++ {
		v := packed[read]
		if read+1 < n && packed[read+1] == v {
			v *= 2
			score += v
			merged[write] = true
			read++
		}
		result[write] = v
		write++
	}

	return result, score, merged
}

// slide applies dir to b in place, line by line. onMerge, when set, is
// called for every merge destination in traversal order (line order, then
// slot order within the line) with the merged value.
func slide(b *Board, dir Direction, onMerge func(at, value int)) (moved bool, gained int) {
	if !dir.Valid() {
		return false, 0
	}

	for n := range BoardSize {
		idx := lineIndices(dir, n)

		var line [BoardSize]int
		for i, at := range idx {
			line[i] = b[at]
		}

		out, score, merged := slideRow(line)
		gained += score

		for i, at := range idx {
			if b[at] != out[i] {
				moved = true
				b[at] = out[i]
			}
			if merged[i] && onMerge != nil {
				onMerge(at, out[i])
			}
		}
	}

	return moved, gained
}
