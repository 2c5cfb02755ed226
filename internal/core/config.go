package core

import "time"

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int       // Screen width in cells
	ScreenH  int       // Screen height in cells
	TickRate int       // Platform ticks per second
	Seed     int64     // Spawn RNG seed; equal seeds replay equal games
	Epoch    time.Time // Clock origin for game timers; zero means time.Now()
}

// GameState is the summary the platform needs after each step.
type GameState struct {
	Score    int
	Best     int
	GameOver bool
	Won      bool // Only meaningful once GameOver is set
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Moved bool // A move was committed during this step
}
