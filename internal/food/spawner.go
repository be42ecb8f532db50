// Package food places food on free grid cells.
package food

import (
	"math/rand"

	"github.com/samdwyer/neonsnake/internal/grid"
)

// Spawner draws food positions from a random source.
type Spawner struct {
	grid grid.Grid
	rng  *rand.Rand
}

// NewSpawner creates a spawner for the given grid.
func NewSpawner(g grid.Grid, rng *rand.Rand) *Spawner {
	return &Spawner{grid: g, rng: rng}
}

// Spawn returns a uniformly random cell that is not in occupied.
// The occupied cells must not cover the whole grid, or Spawn never returns.
func (s *Spawner) Spawn(occupied []grid.Point) grid.Point {
	taken := make(map[grid.Point]struct{}, len(occupied))
	for _, p := range occupied {
		taken[p] = struct{}{}
	}

	for {
		candidate := grid.Point{
			X: s.rng.Intn(s.grid.Size),
			Y: s.rng.Intn(s.grid.Size),
		}
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
