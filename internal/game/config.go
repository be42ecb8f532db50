package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/neonsnake/internal/grid"
)

// Default simulation parameters.
const (
	DefaultGridSize       = 20
	DefaultInitialSpeed   = 150 // ms per tick
	DefaultMinSpeed       = 60  // ms per tick
	DefaultSpeedDecrement = 2   // ms per food
)

// Config holds the simulation parameters.
type Config struct {
	GridSize         int
	InitialSnake     []grid.Point // Head first
	InitialDirection grid.Direction
	InitialSpeed     int // Tick period in milliseconds
	MinSpeed         int // Floor for the tick period
	SpeedDecrement   int // Period reduction per food eaten

	// Seed for random number generation. Used for reproducible food placement.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// DefaultConfig returns the classic 20x20 layout with a three-cell snake heading up.
func DefaultConfig() Config {
	return Config{
		GridSize: DefaultGridSize,
		InitialSnake: []grid.Point{
			{X: 10, Y: 10},
			{X: 10, Y: 11},
			{X: 10, Y: 12},
		},
		InitialDirection: grid.Up,
		InitialSpeed:     DefaultInitialSpeed,
		MinSpeed:         DefaultMinSpeed,
		SpeedDecrement:   DefaultSpeedDecrement,
	}
}

// Validate checks that the configuration describes a playable board.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid size must be at least 2, got %d", c.GridSize)
	}
	if len(c.InitialSnake) == 0 {
		return errors.New("initial snake must have at least one cell")
	}
	if len(c.InitialSnake) >= c.GridSize*c.GridSize {
		return fmt.Errorf("initial snake of %d cells leaves no room for food", len(c.InitialSnake))
	}

	g := grid.Grid{Size: c.GridSize}
	seen := make(map[grid.Point]bool, len(c.InitialSnake))
	for _, p := range c.InitialSnake {
		if !g.Contains(p) {
			return fmt.Errorf("initial snake cell %v is outside the %dx%d grid", p, c.GridSize, c.GridSize)
		}
		if seen[p] {
			return fmt.Errorf("initial snake cell %v appears twice", p)
		}
		seen[p] = true
	}

	if c.MinSpeed <= 0 {
		return fmt.Errorf("min speed must be positive, got %d", c.MinSpeed)
	}
	if c.InitialSpeed < c.MinSpeed {
		return fmt.Errorf("initial speed %d is below min speed %d", c.InitialSpeed, c.MinSpeed)
	}
	if c.SpeedDecrement < 0 {
		return fmt.Errorf("speed decrement must not be negative, got %d", c.SpeedDecrement)
	}
	return nil
}

// Period converts a speed value to a tick period.
func Period(speed int) time.Duration {
	return time.Duration(speed) * time.Millisecond
}
