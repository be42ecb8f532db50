// Package input sanitizes player intent before it reaches the simulation.
package input

import "github.com/samdwyer/neonsnake/internal/grid"

// Filter buffers direction requests between ticks and rejects reversals.
//
// Reversal checks compare against the direction applied by the most recent
// tick, not the most recent request, so several quick requests between two
// ticks cannot chain into a 180 degree turn that was never rendered.
type Filter struct {
	pending       grid.Direction
	lastProcessed grid.Direction
}

// NewFilter creates a filter with both pending and last processed set to initial.
func NewFilter(initial grid.Direction) *Filter {
	return &Filter{pending: initial, lastProcessed: initial}
}

// Request stores d as the pending direction unless it reverses the last
// processed direction. Returns false if the request was rejected.
func (f *Filter) Request(d grid.Direction) bool {
	if d.IsOpposite(f.lastProcessed) {
		return false
	}
	f.pending = d
	return true
}

// Commit returns the pending direction and records it as last processed.
// Called once per tick, before the move is evaluated.
func (f *Filter) Commit() grid.Direction {
	f.lastProcessed = f.pending
	return f.pending
}

// Pending returns the direction the next tick will use.
func (f *Filter) Pending() grid.Direction {
	return f.pending
}

// LastProcessed returns the direction applied by the most recent tick.
func (f *Filter) LastProcessed() grid.Direction {
	return f.lastProcessed
}

// Reset sets both pending and last processed to d.
func (f *Filter) Reset(d grid.Direction) {
	f.pending = d
	f.lastProcessed = d
}
