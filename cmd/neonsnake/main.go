// Package main is the entry point for Neon Snake.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/samdwyer/neonsnake/internal/app"
	"github.com/samdwyer/neonsnake/internal/audio"
	"github.com/samdwyer/neonsnake/internal/commentary"
	"github.com/samdwyer/neonsnake/internal/config"
	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/server"
	"github.com/samdwyer/neonsnake/internal/session"
	"github.com/samdwyer/neonsnake/internal/store"
	"github.com/samdwyer/neonsnake/internal/telemetry"
	"github.com/samdwyer/neonsnake/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes GEMINI_API_KEY and HONEYCOMB_NEONSNAKE_API_KEY available
	if err := config.LoadDotEnv(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	headless := cfg.Headless || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless && cfg.HTTPAddr == "" {
		log.Fatalf("No terminal available and SNAKE_HTTP_ADDR is not set")
	}

	// The terminal belongs to the game, so logs go to a file unless headless
	logOut, closeLog, err := openLog(cfg.LogFile, headless)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger := telemetry.NewLogger(logOut, cfg.LogVerbosity)

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error(err, "error shutting down telemetry")
			}
		}()
	}

	st := openStore(ctx, cfg.DBPath, logger)
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	commentator := commentary.NewService(newGenerator(ctx, cfg, logger), logger).
		WithTimeout(cfg.CommentaryTimeout)

	machine, err := game.NewMachine(cfg.Game, nil)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	ctrl := session.NewController(ctx, machine, st, commentator, logger)

	player := audio.NewPlayer(cfg.Sound && !headless, logger)
	defer player.Close()

	opts := app.Options{Audio: player, Log: logger}

	if cfg.HTTPAddr != "" {
		srv := server.New(logger)
		opts.Commands = srv.Commands()
		opts.Publisher = srv
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
				logger.Error(err, "http server stopped", "addr", cfg.HTTPAddr)
				stop()
			}
		}()
	}

	if !headless {
		screen, err := ui.NewScreen()
		if err != nil {
			log.Fatalf("Failed to initialize screen: %v", err)
		}
		defer screen.Close()
		opts.Screen = screen
	}

	if err := app.New(ctrl, opts).Run(ctx); err != nil {
		logger.Error(err, "game error")
		os.Exit(1)
	}
}

// openLog returns the log destination: stderr when headless, otherwise the
// configured file.
func openLog(path string, headless bool) (io.Writer, func(), error) {
	if headless || path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// openStore opens the SQLite high score store, falling back to memory.
func openStore(ctx context.Context, path string, logger logr.Logger) store.Store {
	if path == "" {
		return store.NewMemory()
	}
	db, err := store.OpenSQLite(ctx, path)
	if err != nil {
		logger.Error(err, "high score database unavailable, scores will not persist", "path", path)
		return store.NewMemory()
	}
	return db
}

// newGenerator returns the Gemini client, or nil when no key is configured.
func newGenerator(ctx context.Context, cfg config.Config, logger logr.Logger) commentary.Generator {
	if cfg.GeminiAPIKey == "" {
		logger.Info("no Gemini API key configured, commentary disabled")
		return nil
	}
	gen, err := commentary.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error(err, "failed to create Gemini client, commentary disabled")
		return nil
	}
	return gen
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_NEONSNAKE_API_KEY")
	if apiKey == "" {
		return
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may have an unexpanded variable reference that doesn't
	// work, so we construct the headers here
	dataset := os.Getenv("HONEYCOMB_NEONSNAKE_DATASET")
	if dataset == "" {
		dataset = "neonsnake"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
