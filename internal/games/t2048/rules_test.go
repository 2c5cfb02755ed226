package t2048

import (
	"math/rand"
	"testing"
)

func TestCanMove(t *testing.T) {
	tests := []struct {
		name string
		rows [4][4]int
		want bool
	}{
		{
			name: "empty cell",
			rows: [4][4]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 0},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			rows: [4][4]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 8, 8},
			},
			want: true,
		},
		{
			name: "vertical pair",
			rows: [4][4]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 8},
				{4, 2, 4, 8},
			},
			want: true,
		},
		{
			name: "full and stuck",
			rows: [4][4]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BoardFromRows(tt.rows)
			if got := CanMove(b); got != tt.want {
				t.Errorf("CanMove = %v, want %v", got, tt.want)
			}
			if got := IsGameOver(b); got == tt.want {
				t.Errorf("IsGameOver = %v, want %v", got, !tt.want)
			}
		})
	}
}

// bruteCanMove checks every cell against all four neighbors.
func bruteCanMove(b Board) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			v := b.At(r, c)
			if v == 0 {
				return true
			}
			for _, d := range [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= BoardSize || nc < 0 || nc >= BoardSize {
					continue
				}
				if b.At(nr, nc) == v {
					return true
				}
			}
		}
	}
	return false
}

func TestCanMoveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for range 2000 {
		var b Board
		for i := range b {
			// Mostly full boards so the stuck case shows up.
			if rng.Intn(20) == 0 {
				continue
			}
			b[i] = 2 << rng.Intn(4)
		}
		if CanMove(b) != bruteCanMove(b) {
			t.Fatalf("CanMove disagrees with brute force on %v", b.Rows())
		}
		anyMoves := false
		for _, d := range Directions {
			if Simulate(b, d).Moved {
				anyMoves = true
			}
		}
		if CanMove(b) != anyMoves {
			t.Fatalf("CanMove = %v but some direction moves = %v on %v", CanMove(b), anyMoves, b.Rows())
		}
	}
}

func TestIsWin(t *testing.T) {
	withWin := BoardFromRows([4][4]int{
		{2048, 0, 0, 0},
		{0, 2, 0, 0},
	})
	if !IsWin(withWin, DefaultWinTile) {
		t.Error("board with 2048 should be a win")
	}
	if !CanMove(withWin) {
		t.Error("win board should still have moves")
	}

	above := BoardFromRows([4][4]int{{4096}})
	if !IsWin(above, DefaultWinTile) {
		t.Error("tile above target should be a win")
	}

	below := BoardFromRows([4][4]int{{1024, 1024}})
	if IsWin(below, DefaultWinTile) {
		t.Error("board without 2048 should not be a win")
	}
}

func TestMaxTile(t *testing.T) {
	board := BoardFromRows([4][4]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})

	if got := MaxTile(board); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
}

func TestEmptyCells(t *testing.T) {
	board := BoardFromRows([4][4]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	cells := EmptyCells(board)
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != Index(0, 1) {
		t.Errorf("first empty cell = %d, want %d", cells[0], Index(0, 1))
	}
	if got := FillRatio(board); got != 0.5 {
		t.Errorf("FillRatio = %v, want 0.5", got)
	}
}
