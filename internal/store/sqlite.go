package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/mattn/go-sqlite3"
)

const createScoresTableSQL = `
CREATE TABLE IF NOT EXISTS Scores (
    Key TEXT PRIMARY KEY,
    Value INTEGER NOT NULL,
    UpdatedAt TIMESTAMP NOT NULL
);
`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. A locked or busy database is retried with exponential backoff.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if err := db.PingContext(ctx); err != nil {
			return struct{}{}, err
		}
		_, err := db.ExecContext(ctx, createScoresTableSQL)
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
		backoff.WithMaxElapsedTime(3*time.Second),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

// Get returns the stored value or ErrNotFound.
func (s *SQLite) Get(ctx context.Context, key string) (int, error) {
	var value int
	err := s.db.QueryRowContext(ctx, "SELECT Value FROM Scores WHERE Key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLite) Set(ctx context.Context, key string, value int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO Scores (Key, Value, UpdatedAt) VALUES (?, ?, ?)",
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLite)(nil)
