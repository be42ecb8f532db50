// Package game provides the snake simulation and its lifecycle states.
package game

// Status represents the current lifecycle state of a run.
type Status int

const (
	// StatusIdle shows the resting pre-game layout; nothing moves.
	StatusIdle Status = iota
	// StatusPlaying advances the snake once per tick.
	StatusPlaying
	// StatusPaused freezes the board until resumed.
	StatusPaused
	// StatusGameOver is terminal for the run; the board keeps the final frame.
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CanStart returns true if a new run may begin from this status.
func (s Status) CanStart() bool {
	return s == StatusIdle || s == StatusGameOver
}
