package t2048

import (
	"fmt"

	"github.com/vovakirdan/punish2048/internal/config"
)

// emptyWeight makes the change in free cells dominate the points gained.
const emptyWeight = 1000

// Strategy picks the direction of a move the player did not make.
type Strategy func(Board) Direction

// MoveScore ranks a simulated move of b: free cells won (or lost) weigh
// 1000 each, plus the points the move scores.
func MoveScore(b Board, o Outcome) int {
	return (o.Empty-EmptyCount(b))*emptyWeight + o.Gained
}

// SelectWorst returns the moving direction with the lowest MoveScore,
// favoring moves that eat free space. Ties keep the earlier direction in
// Directions order.
func SelectWorst(b Board) Direction {
	return selectBy(b, func(score, current int) bool { return score < current })
}

// SelectBest returns the moving direction with the highest MoveScore.
func SelectBest(b Board) Direction {
	return selectBy(b, func(score, current int) bool { return score > current })
}

func selectBy(b Board, better func(score, current int) bool) Direction {
	chosen := DirLeft
	top := 0
	found := false

	for _, d := range Directions {
		o := Simulate(b, d)
		if !o.Moved {
			continue
		}
		score := MoveScore(b, o)
		if !found || better(score, top) {
			chosen, top, found = d, score, true
		}
	}

	if found {
		return chosen
	}
	return firstMoving(b)
}

// firstMoving is the fallback when no candidate was ranked: the first
// direction that changes the board, or left when nothing does.
func firstMoving(b Board) Direction {
	for _, d := range Directions {
		if Simulate(b, d).Moved {
			return d
		}
	}
	return DirLeft
}

// ParseStrategy maps a strategy name to its selector.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case config.StrategyWorst, "":
		return SelectWorst, nil
	case config.StrategyBest:
		return SelectBest, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStrategy, name)
	}
}
