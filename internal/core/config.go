package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Simulation ticks per second (default 60)
	Seed      int64 // RNG seed for deterministic gameplay
	HighScore int   // Best score known to the platform, shown in the HUD
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// WithSeed returns a copy whose zero seed is replaced by one derived from
// now. A non-zero seed is kept so runs can be replayed.
func (c RuntimeConfig) WithSeed(now time.Time) RuntimeConfig {
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	return c
}

// Delta returns the fixed simulation step in seconds.
func (c RuntimeConfig) Delta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score including the current run
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
	Extreme   bool // Whether the level escalated to its hard phase
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventJump EventKind = iota + 1
	EventPickup
	EventExtreme
	EventCrash
	EventNewBest
)

// String returns a short name for the event, used in logs.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventPickup:
		return "pickup"
	case EventExtreme:
		return "extreme"
	case EventCrash:
		return "crash"
	case EventNewBest:
		return "new-best"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for the platform to react to (sound, logs).
type Event struct {
	Kind  EventKind
	Value int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
