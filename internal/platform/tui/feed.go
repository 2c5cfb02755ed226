package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punish2048/internal/games/t2048"
)

// feedFor is how long a status message stays visible.
const feedFor = 2 * time.Second

// effectFeed turns game effect hooks into a transient status line.
type effectFeed struct {
	mu    sync.Mutex
	msg   string
	until time.Time
}

func (f *effectFeed) show(msg string, now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msg = msg
	f.until = now.Add(feedFor)
}

func (f *effectFeed) current(now time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if now.After(f.until) {
		return ""
	}
	return f.msg
}

// effects builds the hooks installed on a game.
func (f *effectFeed) effects(logger *log.Logger) t2048.Effects {
	return t2048.Effects{
		OnStart: func() {
			f.show("New game. Keep moving!", time.Now())
		},
		OnMerge: func(_, _, value int) {
			if t2048.MergeIntensity(value) >= 0.7 {
				f.show(fmt.Sprintf("Merged %d!", value), time.Now())
			}
		},
		OnIdleWarning: func() {
			f.show("Too slow...", time.Now())
		},
		OnForcedMove: func(dir t2048.Direction) {
			logger.Debug("forced move shown", "direction", dir)
		},
		OnGameOver: func(won bool) {
			if won {
				f.show("You reached 2048!", time.Now())
			} else {
				f.show("No more moves available.", time.Now())
			}
		},
	}
}
