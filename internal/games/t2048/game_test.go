package t2048

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/storage"
)

var testEpoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
		Epoch:    testEpoch,
	}
}

func newTestGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewWithConfig(config.Default(), mode)
	g.SetLogger(log.New(io.Discard))
	g.Reset(testRuntime(42))
	return g
}

var stuckRows = [4][4]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func TestResetSpawnsInitialTiles(t *testing.T) {
	g := newTestGame(t, ModePunish)

	if g.Status() != StatusPlaying {
		t.Errorf("Status = %s, want playing", g.Status())
	}
	if g.Score() != 0 {
		t.Errorf("Score = %d, want 0", g.Score())
	}
	if n := Cells - EmptyCount(g.board); n != 2 {
		t.Fatalf("tiles after reset = %d, want 2", n)
	}
	for i, v := range g.board {
		if v == 0 {
			continue
		}
		if v != 2 && v != 4 {
			t.Errorf("spawned value %d at %d", v, i)
		}
		if g.annotations[i] != AnnotationNew {
			t.Errorf("spawned cell %d not annotated new", i)
		}
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := newTestGame(t, ModePunish)
	g2 := newTestGame(t, ModePunish)

	if g1.board != g2.board {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", g1.board.Rows(), g2.board.Rows())
	}

	g1.Commit(DirLeft)
	g2.Commit(DirLeft)
	if g1.board != g2.board {
		t.Errorf("Same seed should produce same board after a move")
	}
}

func TestCommitConservation(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{8, 0, 8, 0},
	})
	before := Sum(g.board)

	g.Commit(DirLeft)

	gained := g.Score()
	if gained != 4+16 {
		t.Fatalf("gained = %d, want 20", gained)
	}

	spawned := 0
	for i, a := range g.annotations {
		if a == AnnotationNew {
			spawned += g.board[i]
		}
	}
	if spawned != 2 && spawned != 4 {
		t.Fatalf("spawned value = %d, want exactly one 2 or 4", spawned)
	}
	// Merges keep the tile sum; only the spawn adds to it.
	if got := Sum(g.board); got != before+spawned {
		t.Errorf("sum = %d, want %d", got, before+spawned)
	}

	if g.Annotation(0, 0) != AnnotationMerged || g.Annotation(2, 0) != AnnotationMerged {
		t.Error("merge destinations should be annotated merged")
	}
	if g.Moves() != 1 {
		t.Errorf("Moves = %d, want 1", g.Moves())
	}
}

func TestCommitWithoutMove(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 4, 2, 4}})
	before := g.board

	updates := 0
	g.SetEffects(Effects{OnUpdate: func() { updates++ }})
	g.Commit(DirLeft)

	if g.board != before {
		t.Error("non-moving commit must not change or spawn")
	}
	if len(g.annotations) != 0 {
		t.Errorf("annotations = %v, want none", g.annotations)
	}
	if updates != 1 {
		t.Errorf("OnUpdate calls = %d, want 1", updates)
	}
	if g.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", g.Moves())
	}
}

func TestCommitUnknownDirection(t *testing.T) {
	g := newTestGame(t, ModePunish)
	before := g.board
	g.Commit(Direction(-1))
	if g.board != before || g.Score() != 0 {
		t.Error("unknown direction should not change the game")
	}
	if g.Move(Direction(9)) {
		t.Error("Move with unknown direction should be rejected")
	}
}

func TestCommitHookOrder(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 2, 2, 2}})

	var events []string
	g.SetEffects(Effects{
		OnMerge: func(row, col, value int) {
			events = append(events, "merge")
			if row != 0 || value != 4 {
				t.Errorf("merge at (%d,%d) value %d", row, col, value)
			}
		},
		OnSpawn:  func(int, int, int) { events = append(events, "spawn") },
		OnUpdate: func() { events = append(events, "update") },
	})

	g.Commit(DirLeft)

	want := "merge,merge,spawn,update"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestGameOverLost(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows(stuckRows)

	var results []bool
	g.SetEffects(Effects{OnGameOver: func(won bool) { results = append(results, won) }})

	g.Commit(DirLeft)

	if g.Status() != StatusLost {
		t.Fatalf("Status = %s, want lost", g.Status())
	}
	if len(results) != 1 || results[0] {
		t.Fatalf("OnGameOver calls = %v, want [false]", results)
	}
	if !g.State().GameOver || g.State().Won {
		t.Errorf("State = %+v", g.State())
	}

	// Later commits recompute the status without notifying again.
	g.Commit(DirUp)
	if len(results) != 1 {
		t.Errorf("OnGameOver fired %d times, want once per game", len(results))
	}
}

func TestGameOverWon(t *testing.T) {
	g := newTestGame(t, ModePunish)
	rows := stuckRows
	rows[0][0] = 2048
	g.board = BoardFromRows(rows)

	var results []bool
	g.SetEffects(Effects{OnGameOver: func(won bool) { results = append(results, won) }})
	g.Commit(DirRight)

	if g.Status() != StatusWon {
		t.Fatalf("Status = %s, want won", g.Status())
	}
	if len(results) != 1 || !results[0] {
		t.Fatalf("OnGameOver calls = %v, want [true]", results)
	}
}

func TestWinTileWithMovesKeepsPlaying(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2048, 0, 0, 2}})

	g.Commit(DirLeft)

	if !IsWin(g.board, DefaultWinTile) {
		t.Error("IsWin should hold")
	}
	if g.Status() != StatusPlaying {
		t.Errorf("Status = %s, want playing while moves remain", g.Status())
	}
}

func TestMoveAnimationLock(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{0, 0, 0, 2}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 4, 0, 0}})

	var started []Direction
	g.SetEffects(Effects{OnMoveStarted: func(d Direction) { started = append(started, d) }})

	if !g.Move(DirLeft) {
		t.Fatal("first move should be accepted")
	}
	if !g.Locked() {
		t.Fatal("player move should take the animation lock")
	}
	if g.Move(DirRight) {
		t.Error("move during the lock should be rejected")
	}

	g.Clock().Advance(120 * time.Millisecond)
	if g.Locked() {
		t.Fatal("lock should be released after 120ms")
	}
	if !g.Move(DirRight) {
		t.Error("move after the lock should be accepted")
	}
	if len(started) != 2 {
		t.Errorf("OnMoveStarted calls = %d, want 2", len(started))
	}
}

func TestMoveRejectedAfterGameOver(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows(stuckRows)
	g.Commit(DirLeft)

	if g.Move(DirUp) {
		t.Error("moves after game over should be rejected")
	}
}

func TestIdleForcesExactlyOneMove(t *testing.T) {
	g := newTestGame(t, ModePunish)

	var warnings, forced int
	var dirs []Direction
	g.SetEffects(Effects{
		OnIdleWarning: func() { warnings++ },
		OnForcedMove: func(d Direction) {
			forced++
			dirs = append(dirs, d)
		},
	})
	want := SelectWorst(g.board)

	g.Clock().Advance(2999 * time.Millisecond)
	if g.Forced() != 0 {
		t.Fatalf("forced before window = %d, want 0", g.Forced())
	}

	g.Clock().Advance(time.Millisecond)
	if g.Forced() != 1 || forced != 1 || warnings != 1 {
		t.Fatalf("forced = %d, hooks = %d/%d, want 1", g.Forced(), warnings, forced)
	}
	if dirs[0] != want {
		t.Errorf("forced direction = %s, want %s", dirs[0], want)
	}
	if g.Locked() {
		t.Error("forced moves should not take the animation lock")
	}

	g.Clock().Advance(2999 * time.Millisecond)
	if g.Forced() != 1 {
		t.Errorf("forced = %d, want 1 until the next window ends", g.Forced())
	}
}

func TestActivityRestartsIdleWindow(t *testing.T) {
	g := newTestGame(t, ModePunish)

	g.Clock().Advance(2000 * time.Millisecond)
	in := core.NewInputFrame()
	in.Set(core.ActionActivity)
	g.Step(in)

	g.Clock().Advance(2999 * time.Millisecond)
	if g.Forced() != 0 {
		t.Fatalf("forced = %d after activity, want 0", g.Forced())
	}
	g.Clock().Advance(time.Millisecond)
	if g.Forced() != 1 {
		t.Errorf("forced = %d, want 1", g.Forced())
	}
}

func TestIdleSkipsWhenGameOver(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows(stuckRows)
	g.Commit(DirLeft)

	g.Clock().Advance(10 * time.Second)
	if g.Forced() != 0 {
		t.Errorf("forced = %d after game over, want 0", g.Forced())
	}
}

func TestStepAdvancesClock(t *testing.T) {
	g := newTestGame(t, ModePunish)

	in := core.NewInputFrame()
	in.Now = testEpoch.Add(3 * time.Second)
	g.Step(in)

	if g.Forced() != 1 {
		t.Errorf("forced = %d after a 3s frame, want 1", g.Forced())
	}
}

func TestStepInputBeforeDueDeadline(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
	}{
		{"activity", core.ActionActivity},
		{"direction", core.ActionLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, ModePunish)
			g.board = BoardFromRows([4][4]int{{2, 2}})

			in := core.NewInputFrame()
			in.Now = testEpoch.Add(2980 * time.Millisecond)
			g.Step(in)

			in = core.NewInputFrame()
			in.Set(tt.action)
			in.Now = testEpoch.Add(3010 * time.Millisecond)
			g.Step(in)

			if g.Forced() != 0 {
				t.Errorf("forced = %d for input inside the window, want 0", g.Forced())
			}
		})
	}
}

func TestStepMovesAndNewGame(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 2}})

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	res := g.Step(in)
	if !res.Moved || res.State.Score != 4 {
		t.Fatalf("Step result = %+v, want moved with score 4", res)
	}

	g.Clock().Advance(time.Second)
	in = core.NewInputFrame()
	in.Set(core.ActionNewGame)
	res = g.Step(in)
	if res.State.Score != 0 || res.State.Best != 4 {
		t.Errorf("after new game State = %+v, want score 0 best 4", res.State)
	}
	if g.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", g.Moves())
	}
	if g.IdleRemaining() != 3*time.Second {
		t.Errorf("IdleRemaining = %v, want a fresh window", g.IdleRemaining())
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 2}})
	g.Commit(DirLeft)

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.Score() != 4 {
		t.Fatal("restart should be ignored while playing")
	}

	g.board = BoardFromRows(stuckRows)
	g.Commit(DirLeft)
	g.Step(in)
	if g.Status() != StatusPlaying || g.Score() != 0 {
		t.Errorf("restart after game over: status %s score %d", g.Status(), g.Score())
	}
}

type fakeBest struct {
	best    int
	saves   []int
	loadErr error
	saveErr error
}

func (f *fakeBest) LoadBest() (int, error) {
	return f.best, f.loadErr
}

func (f *fakeBest) SaveBest(score int) error {
	f.saves = append(f.saves, score)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.best = score
	return nil
}

func TestBestScorePersistence(t *testing.T) {
	store := &fakeBest{best: 10}
	g := NewWithConfig(config.Default(), ModePunish)
	g.SetLogger(log.New(io.Discard))
	g.SetBestStore(store)
	g.Reset(testRuntime(1))

	if g.Best() != 10 {
		t.Fatalf("Best = %d, want 10 from store", g.Best())
	}

	g.board = BoardFromRows([4][4]int{{4, 4, 2, 2}})
	g.Commit(DirLeft) // +12
	if g.Best() != 12 {
		t.Fatalf("Best = %d, want 12", g.Best())
	}
	if len(store.saves) != 1 || store.saves[0] != 12 {
		t.Errorf("saves = %v, want [12]", store.saves)
	}

	g.Commit(DirLeft)
	g.Commit(DirRight)
	for _, s := range store.saves {
		if s < 12 {
			t.Errorf("saved lower best %d", s)
		}
	}
}

func TestBestScoreStorageFailure(t *testing.T) {
	store := &fakeBest{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	g := NewWithConfig(config.Default(), ModePunish)
	g.SetLogger(log.New(io.Discard))
	g.SetBestStore(store)
	g.Reset(testRuntime(1))

	g.board = BoardFromRows([4][4]int{{2, 2}})
	g.Commit(DirLeft)

	if g.Best() != 4 || g.Score() != 4 {
		t.Errorf("Best/Score = %d/%d, want 4/4 kept in memory", g.Best(), g.Score())
	}

	g.NewGame()
	if g.Best() != 4 {
		t.Errorf("Best after new game = %d, want 4", g.Best())
	}
}

func TestPanickingHookIsContained(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 2}})
	g.SetEffects(Effects{OnMerge: func(int, int, int) { panic("boom") }})

	g.Commit(DirLeft)

	if g.Score() != 4 || g.Moves() != 1 {
		t.Errorf("commit should complete despite hook panic: score %d moves %d", g.Score(), g.Moves())
	}
}

func TestAssistForcesBestMove(t *testing.T) {
	g := newTestGame(t, ModeAssist)
	g.board = BoardFromRows([4][4]int{{2, 2, 4, 0}})

	var got Direction = -1
	g.SetEffects(Effects{OnForcedMove: func(d Direction) { got = d }})
	g.ForceMove()

	if got != DirLeft {
		t.Errorf("assist forced %s, want left", got)
	}
	if g.ID() != "2048_assist" {
		t.Errorf("ID = %s", g.ID())
	}
}

func TestPunishForcesWorstMove(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2, 2, 4, 0}})

	var got Direction = -1
	g.SetEffects(Effects{OnForcedMove: func(d Direction) { got = d }})
	g.ForceMove()

	if got != DirDown {
		t.Errorf("punish forced %s, want down", got)
	}
}

func TestTooSmallBlocksInputAndIdle(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.Resize(20, 10)

	if g.Move(DirLeft) {
		t.Error("moves should be rejected while the window is too small")
	}
	g.Clock().Advance(5 * time.Second)
	if g.Forced() != 0 {
		t.Errorf("forced = %d while too small, want 0", g.Forced())
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too small message not rendered")
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, ModePunish)
	snap := g.Snapshot()

	if snap.Mode != "punish" {
		t.Errorf("Snapshot Mode = %s, want punish", snap.Mode)
	}
	if snap.Status != StatusPlaying {
		t.Errorf("Snapshot Status = %s, want playing", snap.Status)
	}
	if snap.Empty != 14 {
		t.Errorf("Snapshot Empty = %d, want 14", snap.Empty)
	}
	if snap.IdleLeft != 3*time.Second {
		t.Errorf("Snapshot IdleLeft = %v, want 3s", snap.IdleLeft)
	}

	clear(snap.Annotations)
	if len(g.annotations) != 2 {
		t.Error("snapshot annotations should be a copy")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModePunish)
	g.board = BoardFromRows([4][4]int{{2048, 0, 0, 2}})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048 - PUNISH", "Score: 0", "Idle [", "2048"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.board = BoardFromRows(stuckRows)
	g.Commit(DirLeft)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}
}

func TestIdleDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Idle.Enabled = false
	g := NewWithConfig(cfg, ModePunish)
	g.SetLogger(log.New(io.Discard))
	g.Reset(testRuntime(3))

	g.Clock().Advance(10 * time.Second)
	if g.Forced() != 0 {
		t.Errorf("forced = %d with idle disabled", g.Forced())
	}
	if g.IdleRemaining() != 0 {
		t.Errorf("IdleRemaining = %v, want 0", g.IdleRemaining())
	}
}

func TestSharedBestNeverDecreases(t *testing.T) {
	stores := map[string]func(t *testing.T) BestStore{
		"memory": func(*testing.T) BestStore { return &MemoryBest{} },
		"sqlite": func(t *testing.T) BestStore {
			db, err := storage.Open(filepath.Join(t.TempDir(), "best.db"))
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			t.Cleanup(func() { db.Close() })
			return storage.NewBestScore(db, "best2048")
		},
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			shared := open(t)
			session := func() *Game {
				g := NewWithConfig(config.Default(), ModePunish)
				g.SetLogger(log.New(io.Discard))
				g.SetBestStore(shared)
				g.Reset(testRuntime(1))
				return g
			}
			a, b := session(), session()

			a.board = BoardFromRows([4][4]int{{256, 256}})
			a.Commit(DirLeft) // +512
			b.board = BoardFromRows([4][4]int{{2, 2}})
			b.Commit(DirLeft) // +4

			if got, _ := shared.LoadBest(); got != 512 {
				t.Errorf("shared best = %d, want 512", got)
			}

			b.board = BoardFromRows([4][4]int{{512, 512}})
			b.Commit(DirLeft) // +1024
			if got, _ := shared.LoadBest(); got != 1028 {
				t.Errorf("shared best = %d, want 1028", got)
			}
			if b.Best() != 1028 {
				t.Errorf("Best = %d, want 1028", b.Best())
			}
		})
	}
}

func TestInvalidConfigReportedThroughGameLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Idle.Strategy = "sideways"
	g := NewWithConfig(cfg, ModePunish)

	var buf strings.Builder
	g.SetLogger(log.New(&buf))
	g.Reset(testRuntime(1))

	if !strings.Contains(buf.String(), "invalid game configuration") {
		t.Errorf("log = %q, want the configuration warning", buf.String())
	}
	if g.cfg.Idle.Strategy != config.Default().Idle.Strategy {
		t.Errorf("strategy = %q, want the default", g.cfg.Idle.Strategy)
	}

	buf.Reset()
	g.NewGame()
	if strings.Contains(buf.String(), "invalid game configuration") {
		t.Error("the configuration warning should be reported once")
	}
}

func TestSetLoggerAfterResetKeepsIdle(t *testing.T) {
	g := newTestGame(t, ModePunish)

	var buf strings.Builder
	g.SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	g.Clock().Advance(3 * time.Second)
	if g.Forced() != 1 {
		t.Fatalf("forced = %d after a full window, want 1", g.Forced())
	}
	if !strings.Contains(buf.String(), "forcing move") {
		t.Errorf("log = %q, want the supervisor on the new logger", buf.String())
	}
}
