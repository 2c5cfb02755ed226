package t2048

import "sync"

// BestStore persists the best score across games. The store may be shared
// by concurrent sessions; SaveBest must never lower the stored value.
type BestStore interface {
	LoadBest() (int, error)
	SaveBest(score int) error
}

// MemoryBest is a BestStore that lives only as long as the process.
type MemoryBest struct {
	mu   sync.Mutex
	best int
}

// LoadBest returns the stored best score.
func (m *MemoryBest) LoadBest() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBest stores score if it beats the stored best.
func (m *MemoryBest) SaveBest(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, score)
	return nil
}

// loadBest reads the persisted best score. A failing store keeps the
// in-memory watermark.
func (g *Game) loadBest() {
	if g.bests == nil {
		return
	}
	best, err := g.bests.LoadBest()
	if err != nil {
		g.logger.Warn("could not load best score, keeping in-memory value", "error", err)
		return
	}
	if best > g.best {
		g.best = best
	}
}

// raiseBest lifts the watermark to the current score and persists it.
// The stored value is re-read first so a best written by another session
// is never overwritten by this session's older one.
func (g *Game) raiseBest() {
	if g.score <= g.best {
		return
	}
	g.loadBest()
	if g.score <= g.best {
		return
	}
	g.best = g.score
	if g.bests == nil {
		return
	}
	if err := g.bests.SaveBest(g.best); err != nil {
		g.logger.Warn("could not persist best score", "best", g.best, "error", err)
	}
}
