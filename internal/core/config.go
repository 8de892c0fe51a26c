package core

// RuntimeConfig contains platform settings passed to a session when it
// starts. The simulation timestep lives in the physics config; TickRate only
// paces how often the platform asks for the next tick.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Tick requests per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the coarse status the platform needs to drive its loop.
type GameState struct {
	Running  bool // Ticks should be scheduled
	Paused   bool // Run is frozen mid-flight
	GameOver bool // Run reached won or lost
	Won      bool // Run reached the goal
	Stars    int  // Rating after a win, stars collected otherwise
}
