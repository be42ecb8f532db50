// Package store persists integer values such as the high score.
package store

import (
	"context"
	"errors"
	"sync"
)

// HighScoreKey is the key the high score is stored under.
const HighScoreKey = "snake_highscore"

// ErrNotFound is returned by Get when no value is stored for the key.
var ErrNotFound = errors.New("store: key not found")

// Store is a key-value store of integers.
type Store interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
}

// Memory is an in-process Store. It is used when no database is configured
// and in tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

// Get returns the stored value or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

var _ Store = (*Memory)(nil)
