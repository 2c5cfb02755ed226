package t2048

import "time"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string // "punish" or "assist"
	Status      Status
	Score       int
	Best        int
	Board       Board
	Annotations map[int]Annotation
	MaxTile     int     // Highest tile on board
	Empty       int     // Empty cells
	Fill        float64 // Occupied share of the board
	Theme       int     // Palette index
	Moves       int
	Forced      int
	Locked      bool
	IdleLeft    time.Duration
	TooSmall    bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	annotations := make(map[int]Annotation, len(g.annotations))
	for k, v := range g.annotations {
		annotations[k] = v
	}

	return Snapshot{
		Tick:        g.tick,
		Mode:        string(g.mode),
		Status:      g.status,
		Score:       g.score,
		Best:        g.best,
		Board:       g.board,
		Annotations: annotations,
		MaxTile:     MaxTile(g.board),
		Empty:       EmptyCount(g.board),
		Fill:        FillRatio(g.board),
		Theme:       g.Theme(),
		Moves:       g.moves,
		Forced:      g.forced,
		Locked:      g.locked,
		IdleLeft:    g.IdleRemaining(),
		TooSmall:    g.tooSmall,
	}
}
