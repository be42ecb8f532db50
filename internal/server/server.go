// Package server exposes the running game over HTTP.
//
// Handlers never touch game state directly: direction and lifecycle requests
// are queued on Commands for the game loop to apply, and reads are served
// from the last snapshot handed to Publish.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
	"github.com/samdwyer/neonsnake/internal/session"
)

const (
	commandBuffer   = 16
	shutdownTimeout = 3 * time.Second
)

// Server is the control API and spectator feed.
type Server struct {
	log      logr.Logger
	engine   *gin.Engine
	commands chan input.Intent

	mu     sync.RWMutex
	latest []byte // JSON of the last published snapshot

	spectators *spectators
}

// New creates a server with its routes registered.
func New(log logr.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		log:        log.WithName("server"),
		engine:     gin.New(),
		commands:   make(chan input.Intent, commandBuffer),
		latest:     []byte("{}"),
		spectators: newSpectators(),
	}

	s.engine.Use(gin.Recovery(), s.logRequests())
	api := s.engine.Group("/api")
	api.GET("/state", s.getState)
	api.POST("/direction/:dir", s.postDirection)
	api.POST("/start", s.postIntent(input.IntentStart))
	api.POST("/pause", s.postIntent(input.IntentPause))
	s.engine.GET("/ws", s.watch)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Commands delivers intents received over HTTP.
func (s *Server) Commands() <-chan input.Intent {
	return s.commands
}

// Publish records snap as the current state and forwards it to spectators.
// It never blocks; slow spectators miss frames.
func (s *Server) Publish(snap session.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error(err, "failed to encode snapshot")
		return
	}

	s.mu.Lock()
	s.latest = data
	s.mu.Unlock()

	s.spectators.broadcast(data)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.spectators.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.V(1).Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) getState(c *gin.Context) {
	s.mu.RLock()
	data := s.latest
	s.mu.RUnlock()
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) postDirection(c *gin.Context) {
	d, err := grid.ParseDirection(c.Param("dir"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.enqueue(c, input.Steer(d))
}

func (s *Server) postIntent(t input.IntentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.enqueue(c, input.Intent{Type: t})
	}
}

// enqueue hands an intent to the game loop. Acceptance is decided there,
// so a queued request only reports 202.
func (s *Server) enqueue(c *gin.Context, in input.Intent) {
	select {
	case s.commands <- in:
		c.JSON(http.StatusAccepted, gin.H{"queued": in.Type.String()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "command queue full"})
	}
}
