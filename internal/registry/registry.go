// Package registry maps mode IDs to game factories. Modes register
// themselves from init, so the CLI, menu and SSH server can list and
// create them without importing each variant by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/punish2048/internal/core"
)

// ErrUnknownMode is returned by Create for an unregistered ID.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is what the platform drives. Implementations hold no terminal or
// Bubble Tea state; input arrives as core.InputFrame and output is drawn
// into a core.Screen.
type Game interface {
	// ID is the stable mode identifier used by the CLI and score storage.
	ID() string
	Title() string

	// Reset starts a fresh game sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input. The frame's Now, when set, is the
	// wall time the game clock advances to first.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// Resizer is implemented by games that keep their state across a
// terminal resize. Others are reset.
type Resizer interface {
	Resize(w, h int)
}

// Stopper is implemented by games holding timers that must be cancelled
// when the platform discards them.
type Stopper interface {
	Stop()
}

// Info describes a registered mode.
type Info struct {
	ID    string
	Title string
	Blurb string // One line for menus
}

// Factory creates a new, not yet started game.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry
)

// Register adds a mode. Modes are listed in registration order.
// Panics on a duplicate ID or a nil factory.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", info.ID))
	}
	if indexOf(info.ID) >= 0 {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries = append(entries, entry{info: info, factory: f})
}

// List returns all registered modes.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Lookup returns the description of a mode.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if i := indexOf(id); i >= 0 {
		return entries[i].info, true
	}
	return Info{}, false
}

// Create instantiates a new game for the mode.
func Create(id string) (Game, error) {
	mu.RLock()
	i := indexOf(id)
	var f Factory
	if i >= 0 {
		f = entries[i].factory
	}
	mu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return f(), nil
}

// Exists reports whether a mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	return indexOf(id) >= 0
}

// indexOf must be called with mu held.
func indexOf(id string) int {
	return slices.IndexFunc(entries, func(e entry) bool { return e.info.ID == id })
}
