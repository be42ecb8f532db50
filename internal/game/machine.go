package game

import (
	"math/rand"
	"slices"
	"time"

	"github.com/samdwyer/neonsnake/internal/food"
	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
)

// Outcome describes what a single tick did.
type Outcome int

const (
	// OutcomeMoved - the snake advanced one cell and dropped its tail
	OutcomeMoved Outcome = iota
	// OutcomeAte - the snake advanced onto food and grew by one
	OutcomeAte
	// OutcomeWall - the move would leave the grid; nothing was applied
	OutcomeWall
	// OutcomeSelf - the move would enter the snake's own body; nothing was applied
	OutcomeSelf
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeWall:
		return "wall"
	case OutcomeSelf:
		return "self"
	default:
		return "unknown"
	}
}

// TickResult reports the outcome of a tick.
type TickResult struct {
	Outcome   Outcome
	Direction grid.Direction // Direction applied by this tick
	Head      grid.Point     // Computed head, even when the move was fatal
}

// Fatal returns true if the tick ended the run.
func (r TickResult) Fatal() bool {
	return r.Outcome == OutcomeWall || r.Outcome == OutcomeSelf
}

// Machine is the discrete-time snake simulation. It owns the snake, food,
// score, speed and the applied direction. Lifecycle status is tracked by the
// caller; Tick must only be called while a run is playing.
type Machine struct {
	cfg     Config
	grid    grid.Grid
	spawner *food.Spawner
	filter  *input.Filter

	snake []grid.Point // Head first
	food  grid.Point
	score int
	speed int
}

// NewMachine creates a machine laid out in its resting pre-game position.
// If rng is nil, one is seeded from cfg.Seed (or the clock when Seed is 0).
func NewMachine(cfg Config, rng *rand.Rand) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	g := grid.Grid{Size: cfg.GridSize}
	m := &Machine{
		cfg:     cfg,
		grid:    g,
		spawner: food.NewSpawner(g, rng),
		filter:  input.NewFilter(cfg.InitialDirection),
	}
	m.Reset()
	return m, nil
}

// Reset restores the initial snake, direction, score and speed, and spawns
// fresh food away from the initial snake.
func (m *Machine) Reset() {
	m.snake = slices.Clone(m.cfg.InitialSnake)
	m.filter.Reset(m.cfg.InitialDirection)
	m.score = 0
	m.speed = m.cfg.InitialSpeed
	m.food = m.spawner.Spawn(m.snake)
}

// RequestDirection passes d through the reversal filter.
// Returns false if d was rejected.
func (m *Machine) RequestDirection(d grid.Direction) bool {
	return m.filter.Request(d)
}

// Tick advances the snake by one cell.
//
// A fatal move (out of bounds or into the body) is never applied: the snake
// stays exactly as it was. The body check includes the tail cell even though
// a non-growing move would vacate it.
func (m *Machine) Tick() TickResult {
	dir := m.filter.Commit()
	next := m.snake[0].Add(dir.Delta())
	result := TickResult{Direction: dir, Head: next}

	if !m.grid.Contains(next) {
		result.Outcome = OutcomeWall
		return result
	}
	if slices.Contains(m.snake, next) {
		result.Outcome = OutcomeSelf
		return result
	}

	grown := make([]grid.Point, 0, len(m.snake)+1)
	grown = append(grown, next)
	grown = append(grown, m.snake...)

	if next == m.food {
		m.score++
		m.speed = max(m.cfg.MinSpeed, m.speed-m.cfg.SpeedDecrement)
		m.snake = grown
		m.food = m.spawner.Spawn(grown)
		result.Outcome = OutcomeAte
		return result
	}

	m.snake = grown[:len(grown)-1]
	result.Outcome = OutcomeMoved
	return result
}

// Snake returns a copy of the body, head first.
func (m *Machine) Snake() []grid.Point {
	return slices.Clone(m.snake)
}

// Head returns the head cell.
func (m *Machine) Head() grid.Point {
	return m.snake[0]
}

// Food returns the current food cell.
func (m *Machine) Food() grid.Point {
	return m.food
}

// Score returns the number of food items eaten this run.
func (m *Machine) Score() int {
	return m.score
}

// Speed returns the current tick period in milliseconds.
func (m *Machine) Speed() int {
	return m.speed
}

// Period returns the current tick period.
func (m *Machine) Period() time.Duration {
	return Period(m.speed)
}

// Direction returns the direction applied by the most recent tick.
func (m *Machine) Direction() grid.Direction {
	return m.filter.LastProcessed()
}

// PendingDirection returns the direction the next tick will apply.
func (m *Machine) PendingDirection() grid.Direction {
	return m.filter.Pending()
}

// Grid returns the playfield bounds.
func (m *Machine) Grid() grid.Grid {
	return m.grid
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() Config {
	return m.cfg
}
