// Package config provides YAML-based configuration loading for punish2048.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Strategy names accepted by IdleConfig.Strategy.
const (
	StrategyWorst = "worst"
	StrategyBest  = "best"
)

// ErrInvalidStrategy is returned for an unknown idle strategy name.
var ErrInvalidStrategy = errors.New("config: invalid strategy")

// Config contains all tunables of the game and its platform.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Idle    IdleConfig    `yaml:"idle"`
	Input   InputConfig   `yaml:"input"`
	Theme   ThemeConfig   `yaml:"theme"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines spawn and win parameters.
type BoardConfig struct {
	SpawnValues  []int `yaml:"spawn_values"`  // Drawn uniformly; repeats weight a value
	WinTile      int   `yaml:"win_tile"`      // Any tile >= this counts as a win
	InitialTiles int   `yaml:"initial_tiles"` // Tiles spawned by a fresh game
}

// IdleConfig defines the idle punishment.
type IdleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	AfterMS  int    `yaml:"after_ms"` // Inactivity window
	PollMS   int    `yaml:"poll_ms"`  // Backstop poll period
	Strategy string `yaml:"strategy"` // "worst" or "best"
}

// After returns the inactivity window.
func (c IdleConfig) After() time.Duration {
	return time.Duration(c.AfterMS) * time.Millisecond
}

// Poll returns the backstop poll period.
func (c IdleConfig) Poll() time.Duration {
	return time.Duration(c.PollMS) * time.Millisecond
}

// InputConfig defines input handling.
type InputConfig struct {
	AnimLockMS  int     `yaml:"anim_lock_ms"`  // Lock held after a player move
	SwipeMinPx  float64 `yaml:"swipe_min_px"`  // Minimum drag travel for a swipe
	CellPixelsW float64 `yaml:"cell_pixels_w"` // Assumed terminal cell width in pixels
	CellPixelsH float64 `yaml:"cell_pixels_h"` // Assumed terminal cell height in pixels
}

// AnimLock returns the move animation lock duration.
func (c InputConfig) AnimLock() time.Duration {
	return time.Duration(c.AnimLockMS) * time.Millisecond
}

// ThemeConfig defines palette shifting by score.
type ThemeConfig struct {
	Step  int `yaml:"step"`  // Score per palette shift
	Count int `yaml:"count"` // Number of palettes
}

// StorageConfig defines persistence.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`  // Empty means the XDG data directory
	BestKey string `yaml:"best_key"` // Key-value entry holding the best score
}

// Validate fills unset values from defaults and rejects inconsistent ones.
func (c *Config) Validate() error {
	def := Default()

	if len(c.Board.SpawnValues) == 0 {
		c.Board.SpawnValues = def.Board.SpawnValues
	}
	for _, v := range c.Board.SpawnValues {
		if v < 2 || v&(v-1) != 0 {
			return fmt.Errorf("config: spawn value %d is not a power of two >= 2", v)
		}
	}
	if c.Board.WinTile <= 0 {
		c.Board.WinTile = def.Board.WinTile
	}
	if c.Board.InitialTiles <= 0 {
		c.Board.InitialTiles = def.Board.InitialTiles
	}

	if c.Idle.AfterMS <= 0 {
		c.Idle.AfterMS = def.Idle.AfterMS
	}
	if c.Idle.PollMS <= 0 {
		c.Idle.PollMS = def.Idle.PollMS
	}
	switch c.Idle.Strategy {
	case "":
		c.Idle.Strategy = def.Idle.Strategy
	case StrategyWorst, StrategyBest:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, c.Idle.Strategy)
	}

	if c.Input.AnimLockMS < 0 {
		c.Input.AnimLockMS = def.Input.AnimLockMS
	}
	if c.Input.SwipeMinPx <= 0 {
		c.Input.SwipeMinPx = def.Input.SwipeMinPx
	}
	if c.Input.CellPixelsW <= 0 {
		c.Input.CellPixelsW = def.Input.CellPixelsW
	}
	if c.Input.CellPixelsH <= 0 {
		c.Input.CellPixelsH = def.Input.CellPixelsH
	}

	if c.Theme.Step <= 0 {
		c.Theme.Step = def.Theme.Step
	}
	if c.Theme.Count <= 0 {
		c.Theme.Count = def.Theme.Count
	}

	if c.Storage.BestKey == "" {
		c.Storage.BestKey = def.Storage.BestKey
	}
	return nil
}
