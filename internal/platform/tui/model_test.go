package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/games/t2048"
)

func newTestModel(t *testing.T) (Model, *t2048.Game, time.Time) {
	t.Helper()
	logger := log.New(io.Discard)
	g := t2048.New()
	g.SetLogger(logger)

	epoch := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewModel(g, nil, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
		Epoch:    epoch,
	}, Options{Input: config.Default().Input, Logger: logger})
	m.Init()
	return m, g, epoch
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

// tickAt returns a tick of m's generation at now.
func tickAt(m Model, now time.Time) TickMsg {
	return TickMsg{Time: now, Gen: m.gen}
}

func TestModelDropsForeignTicks(t *testing.T) {
	m, g, epoch := newTestModel(t)

	next, cmd := m.Update(TickMsg{Time: epoch.Add(10 * time.Second), Gen: m.gen + 1})
	if cmd != nil {
		t.Error("a foreign tick should not schedule another tick")
	}
	if g.Forced() != 0 || !g.Clock().Now().Equal(epoch) {
		t.Errorf("foreign tick advanced the game: forced %d, clock %v", g.Forced(), g.Clock().Now())
	}

	_, cmd = next.(Model).Update(tickAt(m, epoch.Add(time.Second)))
	if cmd == nil {
		t.Error("an own tick should schedule the next tick")
	}
}

func TestModelTickDrivesIdlePunishment(t *testing.T) {
	m, g, epoch := newTestModel(t)

	m = update(t, m, tickAt(m, epoch.Add(2*time.Second)))
	if g.Forced() != 0 {
		t.Fatalf("forced = %d at 2s, want 0", g.Forced())
	}

	m = update(t, m, tickAt(m, epoch.Add(3*time.Second)))
	if g.Forced() != 1 {
		t.Errorf("forced = %d at 3s, want 1", g.Forced())
	}
	_ = m
}

func TestModelKeyIsActivity(t *testing.T) {
	m, g, epoch := newTestModel(t)

	m = update(t, m, tickAt(m, epoch.Add(2*time.Second)))
	m = update(t, m, runeKey('x'))
	// The key lands with the next tick but counts from the previous one.
	m = update(t, m, tickAt(m, epoch.Add(2500*time.Millisecond)))
	m = update(t, m, tickAt(m, epoch.Add(4900*time.Millisecond)))
	if g.Forced() != 0 {
		t.Fatalf("forced = %d 2.9s after a key press, want 0", g.Forced())
	}
	m = update(t, m, tickAt(m, epoch.Add(5*time.Second)))
	if g.Forced() != 1 {
		t.Errorf("forced = %d a full window after the key press, want 1", g.Forced())
	}
	_ = m
}

func TestModelInputInsideWindowIsNotPunished(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"key", runeKey('x')},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}},
		{"pointer motion", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, g, epoch := newTestModel(t)

			m = update(t, m, tickAt(m, epoch.Add(2980*time.Millisecond)))
			m = update(t, m, tt.msg)
			// The next tick is already past the original deadline.
			m = update(t, m, tickAt(m, epoch.Add(3010*time.Millisecond)))
			if g.Forced() != 0 {
				t.Errorf("forced = %d for input inside the window, want 0", g.Forced())
			}
			_ = m
		})
	}
}

func TestModelMoveKey(t *testing.T) {
	m, g, epoch := newTestModel(t)
	before := g.Board()

	moved := false
	for _, k := range []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyUp}, {Type: tea.KeyRight}, {Type: tea.KeyDown}} {
		m = update(t, m, k)
		// Past the animation lock each time.
		epoch = epoch.Add(200 * time.Millisecond)
		m = update(t, m, tickAt(m, epoch))
		if g.Moves() > 0 {
			moved = true
			break
		}
	}
	if !moved || g.Board() == before {
		t.Error("an arrow key should move the board")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m, g, _ := newTestModel(t)
	before := g.Board()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.Board() != before {
		t.Error("resize should not restart the game")
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Error("view should show the score")
	}
}

func TestEffectFeed(t *testing.T) {
	f := &effectFeed{}
	now := time.Now()
	f.show("hello", now)

	if got := f.current(now.Add(time.Second)); got != "hello" {
		t.Errorf("current = %q, want hello", got)
	}
	if got := f.current(now.Add(3 * time.Second)); got != "" {
		t.Errorf("current after expiry = %q, want empty", got)
	}

	fx := f.effects(log.New(io.Discard))
	fx.OnGameOver(true)
	if got := f.current(time.Now()); got != "You reached 2048!" {
		t.Errorf("game over message = %q", got)
	}
}
