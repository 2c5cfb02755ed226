// Package t2048 is the 2048 game: board rules, the move committer, the idle
// punishment heuristics and terminal rendering.
package t2048

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/idle"
	"github.com/vovakirdan/punish2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	// ModePunish forces the worst move on a stalling player (or whatever
	// the configured strategy picks).
	ModePunish Mode = "punish"
	// ModeAssist forces the best move instead.
	ModeAssist Mode = "assist"
)

// Status is the lifecycle of one game.
type Status int

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Annotation marks a cell touched by the last commit.
type Annotation int

const (
	AnnotationNone Annotation = iota
	AnnotationNew
	AnnotationMerged
)

// noticeFor is how long a forced-move notice stays on screen.
const noticeFor = 1500 * time.Millisecond

// Game implements 2048 with idle punishment.
type Game struct {
	mode     Mode
	cfg      config.Config
	runtime  core.RuntimeConfig
	strategy Strategy
	rng      *rand.Rand
	tick     uint64

	board       Board
	score       int
	best        int
	annotations map[int]Annotation
	status      Status
	moves       int
	forced      int
	lastMove    Direction
	lastForced  bool

	clock      *idle.Loop
	supervisor *idle.Supervisor
	locked     bool
	lockTimer  idle.Timer
	notice     string
	noticeEnd  time.Time

	effects   Effects
	bests     BestStore
	logger    *log.Logger
	configErr error // reported on the first Reset, once a logger is set

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level defaults used by registry factories.
var (
	defaultsMu    sync.RWMutex
	defaultConfig = config.Default()
	defaultBests  BestStore
	defaultLogger *log.Logger
)

// SetDefaults configures games created through the registry.
// A nil store keeps the best score in memory; a nil logger uses log.Default().
func SetDefaults(cfg config.Config, bests BestStore, logger *log.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultConfig = cfg
	defaultBests = bests
	defaultLogger = logger
}

func fromDefaults(mode Mode) *Game {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	g := NewWithConfig(defaultConfig, mode)
	if defaultBests != nil {
		g.SetBestStore(defaultBests)
	}
	if defaultLogger != nil {
		g.SetLogger(defaultLogger)
	}
	return g
}

// New creates a punish mode game with the default configuration.
func New() *Game {
	return NewWithConfig(config.Default(), ModePunish)
}

// NewAssist creates an assist mode game with the default configuration.
func NewAssist() *Game {
	return NewWithConfig(config.Default(), ModeAssist)
}

// NewWithConfig creates a game. The game is not started until Reset.
// An invalid configuration is replaced by the defaults and reported
// through the game's logger on Reset.
func NewWithConfig(cfg config.Config, mode Mode) *Game {
	err := cfg.Validate()
	if err != nil {
		cfg = config.Default()
	}
	return &Game{
		mode:        mode,
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(1)),
		annotations: make(map[int]Annotation),
		bests:       &MemoryBest{},
		logger:      log.Default(),
		configErr:   err,
	}
}

func init() {
	registry.Register(registry.Info{
		ID:    "2048",
		Title: "2048 (Punish)",
		Blurb: "stall and the game plays the worst move for you",
	}, func() registry.Game {
		return fromDefaults(ModePunish)
	})
	registry.Register(registry.Info{
		ID:    "2048_assist",
		Title: "2048 (Assist)",
		Blurb: "stall and the game plays the best move for you",
	}, func() registry.Game {
		return fromDefaults(ModeAssist)
	})
}

// SetEffects installs presentation hooks.
func (g *Game) SetEffects(e Effects) {
	g.effects = e
}

// SetBestStore replaces the best score store. Nil keeps the score in memory.
func (g *Game) SetBestStore(s BestStore) {
	if s == nil {
		s = &MemoryBest{}
	}
	g.bests = s
}

// SetLogger sets the logger of the game and its idle supervisor.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	g.logger = l
	if g.supervisor != nil {
		g.supervisor.SetLogger(l)
	}
}

func (g *Game) resolveStrategy() Strategy {
	if g.mode == ModeAssist {
		return SelectBest
	}
	s, err := ParseStrategy(g.cfg.Idle.Strategy)
	if err != nil {
		g.logger.Warn("falling back to worst-move strategy", "error", err)
		return SelectWorst
	}
	return s
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeAssist {
		return "2048_assist"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAssist {
		return "2048 (Assist)"
	}
	return "2048 (Punish)"
}

// Reset starts a fresh game: empty board, zero score, initial spawns and a
// restarted idle supervisor. The best score survives.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.configErr != nil {
		g.logger.Warn("invalid game configuration, using defaults", "error", g.configErr)
		g.configErr = nil
	}
	if g.strategy == nil {
		g.strategy = g.resolveStrategy()
	}
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	if g.clock == nil {
		epoch := cfg.Epoch
		if epoch.IsZero() {
			epoch = time.Now()
		}
		g.clock = idle.NewLoop(epoch)
	}
	if g.supervisor != nil {
		g.supervisor.Stop()
	}
	g.unlock()

	g.board = Board{}
	g.score = 0
	clear(g.annotations)
	g.status = StatusPlaying
	g.moves = 0
	g.forced = 0
	g.lastForced = false
	g.notice = ""
	g.loadBest()

	for range g.cfg.Board.InitialTiles {
		g.spawnTile()
	}

	g.checkScreenSize()
	g.emitStart()
	g.emitUpdate()

	if g.cfg.Idle.Enabled {
		if g.supervisor == nil {
			g.supervisor = idle.NewSupervisor(g.clock, g, idle.Options{
				After:  g.cfg.Idle.After(),
				Poll:   g.cfg.Idle.Poll(),
				Logger: g.logger,
			})
		}
		g.supervisor.Start()
	}

	g.logger.Debug("new game", "mode", g.mode, "seed", cfg.Seed, "best", g.best)
}

// Stop cancels the idle supervisor and the animation lock. The game keeps
// its state; Reset starts it again.
func (g *Game) Stop() {
	if g.supervisor != nil {
		g.supervisor.Stop()
	}
	g.unlock()
}

// NewGame restarts with a seed drawn from the current game.
func (g *Game) NewGame() {
	next := g.runtime
	next.Seed = g.rng.Int63()
	g.Reset(next)
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := boardWidth + 2
	minH := hudHeight + 1 + boardHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Commit applies dir to the live board: merge and spawn bookkeeping, score,
// hooks, terminal detection and an idle activity report. Unknown
// directions change nothing but still count as a commit.
func (g *Game) Commit(dir Direction) {
	clear(g.annotations)

	var merges []int
	moved, gained := slide(&g.board, dir, func(at, _ int) {
		merges = append(merges, at)
	})

	for _, at := range merges {
		g.annotations[at] = AnnotationMerged
		row, col := Coords(at)
		g.emitMerge(row, col, g.board[at])
	}

	g.score += gained
	g.raiseBest()

	if moved {
		g.moves++
		g.lastMove = dir
		g.spawnTile()
	}

	g.emitUpdate()
	g.checkTerminal()
	g.Touch()
}

// spawnTile places one value from the spawn set in a random empty cell.
func (g *Game) spawnTile() {
	empty := EmptyCells(g.board)
	if len(empty) == 0 {
		return
	}

	at := empty[g.rng.Intn(len(empty))]
	values := g.cfg.Board.SpawnValues
	value := 2
	if len(values) > 0 {
		value = values[g.rng.Intn(len(values))]
	}

	g.board[at] = value
	g.annotations[at] = AnnotationNew
	row, col := Coords(at)
	g.emitSpawn(row, col, value)
}

// checkTerminal ends the game once no legal move remains. The game-over
// hook fires on the transition only; later commits recompute the status
// without notifying again.
func (g *Game) checkTerminal() {
	if CanMove(g.board) {
		return
	}

	won := IsWin(g.board, g.cfg.Board.WinTile)
	wasOver := g.status.Terminal()
	if won {
		g.status = StatusWon
	} else {
		g.status = StatusLost
	}
	if wasOver {
		return
	}

	g.logger.Info("game over",
		"mode", g.mode,
		"won", won,
		"score", g.score,
		"max_tile", MaxTile(g.board),
		"moves", g.moves,
		"forced", g.forced,
	)
	g.emitGameOver(won)
}

// Move handles a player-issued move. It counts as activity even when
// rejected; it is rejected while the animation lock is held, after game
// over, or while the window is too small. Returns whether it was committed.
func (g *Game) Move(dir Direction) bool {
	g.Touch()
	if !dir.Valid() || g.locked || g.status.Terminal() || g.tooSmall {
		return false
	}

	g.lastForced = false
	g.lock()
	g.emitMoveStarted(dir)
	g.Commit(dir)
	return true
}

// Touch reports player activity to the idle supervisor.
func (g *Game) Touch() {
	if g.supervisor != nil {
		g.supervisor.Touch()
	}
}

func (g *Game) lock() {
	d := g.cfg.Input.AnimLock()
	if d <= 0 || g.clock == nil {
		return
	}
	g.unlock()
	g.locked = true
	g.lockTimer = g.clock.AfterFunc(d, g.unlock)
}

func (g *Game) unlock() {
	if g.lockTimer != nil {
		g.lockTimer.Stop()
		g.lockTimer = nil
	}
	g.locked = false
}

// Stalled reports whether a forced move must wait.
func (g *Game) Stalled() bool {
	return g.locked || g.status.Terminal() || g.tooSmall || !CanMove(g.board)
}

// ForceMove commits the strategy's choice on behalf of an idle player.
func (g *Game) ForceMove() {
	g.emitIdleWarning()

	dir := g.strategy(g.board)
	g.forced++
	g.lastForced = true
	if g.clock != nil {
		g.notice = fmt.Sprintf("Too slow! Forced %s", dir)
		g.noticeEnd = g.clock.Now().Add(noticeFor)
	}
	g.logger.Info("forced move", "direction", dir, "forced", g.forced, "score", g.score)

	g.Commit(dir)
	g.emitForcedMove(dir)
}

// Step applies input to the game and advances the game clock to the frame
// time. The frame's input arrived before in.Now, so its activity is
// recorded before any idle timer due by then can fire.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if in.Has(core.ActionActivity) || len(in.Directions()) > 0 {
		g.Touch()
	}
	if !in.Now.IsZero() && g.clock != nil {
		g.clock.AdvanceTo(in.Now)
	}

	before := g.moves

	if in.Has(core.ActionNewGame) || (in.Has(core.ActionRestart) && g.status.Terminal()) {
		g.NewGame()
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Directions() {
		if dir, ok := directionFor(a); ok {
			g.Move(dir)
		}
	}

	return core.StepResult{State: g.State(), Moved: g.moves != before}
}

func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Best:     g.best,
		GameOver: g.status.Terminal(),
		Won:      g.status == StatusWon,
	}
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// Status returns the lifecycle status.
func (g *Game) Status() Status {
	return g.status
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Best returns the best score watermark.
func (g *Game) Best() int {
	return g.best
}

// Moves returns the number of board-changing commits this game.
func (g *Game) Moves() int {
	return g.moves
}

// Forced returns the number of forced moves this game.
func (g *Game) Forced() int {
	return g.forced
}

// Locked reports whether the animation lock is held.
func (g *Game) Locked() bool {
	return g.locked
}

// Clock returns the game's scheduler, nil before the first Reset.
func (g *Game) Clock() *idle.Loop {
	return g.clock
}

// IdleRemaining returns the time left before a forced move, zero when the
// idle punishment is off.
func (g *Game) IdleRemaining() time.Duration {
	if g.supervisor == nil || !g.supervisor.Running() {
		return 0
	}
	return g.supervisor.Remaining()
}

// Annotation returns the annotation of a cell from the last commit.
func (g *Game) Annotation(row, col int) Annotation {
	return g.annotations[Index(row, col)]
}

// Theme returns the palette index for the current score.
func (g *Game) Theme() int {
	return ThemeIndex(g.score, g.cfg.Theme.Step, g.cfg.Theme.Count)
}
