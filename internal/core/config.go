package core

// RuntimeConfig is passed to a game when it is reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // simulation ticks per second
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// DefaultTickRate is the simulation rate of a stage heartbeat (66 ms).
const DefaultTickRate = 15

// DefaultConfig returns a RuntimeConfig sized for a standard terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// GameState is what a game reports to the platform after each step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
