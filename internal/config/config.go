// Package config reads runtime settings from the environment.
//
// Variables are normally supplied through a .env file loaded by godotenv at
// startup. Every setting has a default matching the classic game.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/neonsnake/internal/commentary"
	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
)

// Config holds all runtime settings.
type Config struct {
	Game game.Config

	DBPath   string // SQLite file for the high score; empty keeps it in memory
	HTTPAddr string // Listen address for the control API; empty disables it
	Headless bool   // Skip the terminal UI and run only the control API
	Sound    bool

	GeminiAPIKey      string
	GeminiModel       string
	CommentaryTimeout time.Duration

	LogFile      string
	LogVerbosity int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Game:              game.DefaultConfig(),
		DBPath:            "neonsnake.db",
		Sound:             true,
		GeminiModel:       commentary.DefaultModel,
		CommentaryTimeout: commentary.DefaultTimeout,
		LogFile:           "neonsnake.log",
	}
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load reads settings from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads settings through lookup, which has the signature of
// os.LookupEnv. Invalid values are collected and returned together.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	r := reader{lookup: lookup}

	cfg.Game.GridSize = r.int("SNAKE_GRID_SIZE", cfg.Game.GridSize)
	cfg.Game.InitialSpeed = r.int("SNAKE_INITIAL_SPEED", cfg.Game.InitialSpeed)
	cfg.Game.MinSpeed = r.int("SNAKE_MIN_SPEED", cfg.Game.MinSpeed)
	cfg.Game.SpeedDecrement = r.int("SNAKE_SPEED_DECREMENT", cfg.Game.SpeedDecrement)
	cfg.Game.Seed = r.int64("SNAKE_SEED", cfg.Game.Seed)
	if v, ok := r.get("SNAKE_INITIAL_DIRECTION"); ok {
		d, err := grid.ParseDirection(v)
		r.fail("SNAKE_INITIAL_DIRECTION", err)
		cfg.Game.InitialDirection = d
	}
	if v, ok := r.get("SNAKE_INITIAL_SNAKE"); ok {
		snake, err := ParsePoints(v)
		r.fail("SNAKE_INITIAL_SNAKE", err)
		if err == nil {
			cfg.Game.InitialSnake = snake
		}
	}

	cfg.DBPath = r.string("SNAKE_DB", cfg.DBPath)
	cfg.HTTPAddr = r.string("SNAKE_HTTP_ADDR", cfg.HTTPAddr)
	cfg.Headless = r.bool("SNAKE_HEADLESS", cfg.Headless)
	cfg.Sound = r.bool("SNAKE_SOUND", cfg.Sound)

	cfg.GeminiAPIKey = r.string("API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiAPIKey = r.string("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = r.string("SNAKE_GEMINI_MODEL", cfg.GeminiModel)
	cfg.CommentaryTimeout = r.duration("SNAKE_COMMENTARY_TIMEOUT", cfg.CommentaryTimeout)

	cfg.LogFile = r.string("SNAKE_LOG_FILE", cfg.LogFile)
	cfg.LogVerbosity = r.int("SNAKE_LOG_VERBOSITY", cfg.LogVerbosity)

	if err := cfg.Game.Validate(); err != nil {
		r.errs = append(r.errs, fmt.Errorf("game: %w", err))
	}
	if cfg.Headless && cfg.HTTPAddr == "" {
		r.errs = append(r.errs, errors.New("SNAKE_HEADLESS requires SNAKE_HTTP_ADDR"))
	}

	return cfg, errors.Join(r.errs...)
}

// ParsePoints parses "x,y;x,y;..." into points, head first.
func ParsePoints(s string) ([]grid.Point, error) {
	var points []grid.Point
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, want x,y", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("invalid x in %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("invalid y in %q: %w", part, err)
		}
		points = append(points, grid.Point{X: x, Y: y})
	}
	if len(points) == 0 {
		return nil, errors.New("no points given")
	}
	return points, nil
}

// reader parses typed values and collects errors.
type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (r *reader) fail(key string, err error) {
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
}

func (r *reader) string(key, def string) string {
	if v, ok := r.get(key); ok {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) int64(key string, def int64) int64 {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}
