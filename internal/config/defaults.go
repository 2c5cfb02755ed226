package config

import (
	_ "embed"
)

//go:embed defaults/punish2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			SpawnValues:  []int{2, 2, 2, 2, 4},
			WinTile:      2048,
			InitialTiles: 2,
		},
		Idle: IdleConfig{
			Enabled:  true,
			AfterMS:  3000,
			PollMS:   250,
			Strategy: StrategyWorst,
		},
		Input: InputConfig{
			AnimLockMS:  120,
			SwipeMinPx:  24,
			CellPixelsW: 8,
			CellPixelsH: 16,
		},
		Theme: ThemeConfig{
			Step:  2500,
			Count: 5,
		},
		Storage: StorageConfig{
			BestKey: "best2048",
		},
	}
}
