package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/games/t2048"
	"github.com/vovakirdan/punish2048/internal/registry"
	"github.com/vovakirdan/punish2048/internal/storage"
)

// chromeHeight is the number of rows below the game screen (help bar).
const chromeHeight = 1

// Options configures a Model.
type Options struct {
	Input   config.InputConfig
	Logger  *log.Logger
	InMenu  bool // Back returns to the menu instead of doing nothing
	Session string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	swipe      *SwipeTracker
	help       help.Model
	feed       *effectFeed
	logger     *log.Logger
	opts       Options
	gen        uint64 // tick generation owned by this model
	started    time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Input == (config.InputConfig{}) {
		opts.Input = config.Default().Input
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeHeight, 0)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		swipe:      NewSwipeTracker(opts.Input.SwipeMinPx, opts.Input.CellPixelsW, opts.Input.CellPixelsH),
		help:       help.New(),
		feed:       &effectFeed{},
		logger:     opts.Logger,
		opts:       opts,
		gen:        nextTickGen(),
	}
	m.help.Width = cfg.ScreenW

	if g, ok := game.(*t2048.Game); ok {
		g.SetEffects(m.feed.effects(m.logger.With("session", opts.Session)))
	}

	return m
}

// gameConfig returns the runtime config handed to the game: the screen
// minus the help bar.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-chromeHeight, 0)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		for _, a := range m.swipe.Handle(msg) {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	keys := m.keys.Keys()
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Back) && m.opts.InMenu:
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.help.Width = msg.Width

	// Games that can resize keep their board; others restart.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gc)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = now
	}

	m.inputFrame.Now = now
	result := m.game.Step(m.inputFrame)

	if m.gameState.GameOver && !result.State.GameOver {
		// A new game started.
		m.scoreSaved = false
		m.started = now
	}
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult(now)
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveResult records the finished game. Storage errors are logged only.
func (m Model) saveResult(now time.Time) {
	if m.store == nil || m.gameState.Score == 0 {
		return
	}

	var err error
	if g, ok := m.game.(*t2048.Game); ok {
		_, err = m.store.SaveGame(storage.GameRecord{
			GameID:   g.ID(),
			Score:    g.Score(),
			MaxTile:  t2048.MaxTile(g.Board()),
			Moves:    g.Moves(),
			Forced:   g.Forced(),
			Won:      g.Status() == t2048.StatusWon,
			Duration: int(now.Sub(m.started).Seconds()),
		})
	} else {
		_, err = m.store.SaveScore(m.game.ID(), m.gameState.Score)
	}
	if err != nil {
		m.logger.Warn("could not save game result", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path, err := xdg.DataFile(filepath.Join("punish2048", "screenshots", name))
	if err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.feed.show("Screenshot saved", time.Now())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return renderFrame(RenderScreen(m.screen), m.feed.current(time.Now()), m.help.View(m.keys.Keys()), m.config.ScreenW)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer movement counts as activity; drags swipe
	)

	_, err := p.Run()
	return err
}

// stop halts the game's timers when the model is discarded.
func (m Model) stop() {
	if s, ok := m.game.(registry.Stopper); ok {
		s.Stop()
	}
}
