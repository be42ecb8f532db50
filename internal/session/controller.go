// Package session drives runs of the snake game: start, pause, game over,
// high score commits and post-game commentary.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/store"
	"github.com/samdwyer/neonsnake/internal/telemetry"
)

// Simulation is the part of game.Machine the controller drives.
type Simulation interface {
	Reset()
	Tick() game.TickResult
	RequestDirection(d grid.Direction) bool
	Snake() []grid.Point
	Food() grid.Point
	Score() int
	Speed() int
	Period() time.Duration
	Direction() grid.Direction
	Grid() grid.Grid
}

// Commentator produces a remark for a finished run. It must not block forever
// and must not fail; see commentary.Service.
type Commentator interface {
	Generate(ctx context.Context, score, highScore int) string
}

// CommentaryResult is a finished commentary request tagged with its run.
type CommentaryResult struct {
	RunID string
	Text  string
}

// Controller owns the lifecycle status, the high score and the commentary of
// the last finished run. All methods must be called from a single goroutine;
// only commentary requests run concurrently, and their results come back
// through Results to be applied with ApplyCommentary.
type Controller struct {
	sim         Simulation
	store       store.Store
	commentator Commentator
	log         logr.Logger

	status            game.Status
	highScore         int
	runID             string
	commentary        string
	commentaryPending bool

	results chan CommentaryResult
}

// NewController creates a controller in StatusIdle and loads the stored high
// score. A missing or unreadable high score counts as zero.
func NewController(ctx context.Context, sim Simulation, st store.Store, commentator Commentator, log logr.Logger) *Controller {
	c := &Controller{
		sim:         sim,
		store:       st,
		commentator: commentator,
		log:         log.WithName("session"),
		status:      game.StatusIdle,
		results:     make(chan CommentaryResult, 4),
	}
	c.highScore = c.loadHighScore(ctx)
	return c
}

func (c *Controller) loadHighScore(ctx context.Context) int {
	if c.store == nil {
		return 0
	}
	v, err := c.store.Get(ctx, store.HighScoreKey)
	if errors.Is(err, store.ErrNotFound) {
		return 0
	}
	if err != nil {
		c.log.Error(err, "failed to load high score, starting from zero")
		return 0
	}
	return max(v, 0)
}

// Start begins a new run from StatusIdle or StatusGameOver.
// Returns false if a run is already in progress.
func (c *Controller) Start(ctx context.Context) bool {
	if !c.status.CanStart() {
		return false
	}

	c.sim.Reset()
	c.runID = uuid.NewString()
	c.commentary = ""
	c.commentaryPending = false
	c.status = game.StatusPlaying

	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "game.start")
	span.SetAttributes(
		attribute.String("run_id", c.runID),
		attribute.Int("high_score", c.highScore),
		attribute.Int("speed", c.sim.Speed()),
	)
	span.End()

	c.log.Info("run started", "run", c.runID)
	return true
}

// TogglePause switches between StatusPlaying and StatusPaused.
// Returns false in any other status.
func (c *Controller) TogglePause() bool {
	switch c.status {
	case game.StatusPlaying:
		c.status = game.StatusPaused
	case game.StatusPaused:
		c.status = game.StatusPlaying
	default:
		return false
	}
	c.log.V(1).Info("pause toggled", "status", c.status)
	return true
}

// RequestDirection forwards d to the reversal filter while playing.
func (c *Controller) RequestDirection(d grid.Direction) bool {
	if c.status != game.StatusPlaying {
		return false
	}
	return c.sim.RequestDirection(d)
}

// Tick advances the simulation once. It is skipped (ok == false) outside
// StatusPlaying. A fatal tick moves the run to StatusGameOver.
func (c *Controller) Tick(ctx context.Context) (result game.TickResult, ok bool) {
	if c.status != game.StatusPlaying {
		return game.TickResult{}, false
	}

	result = c.sim.Tick()
	if result.Outcome == game.OutcomeAte {
		c.onFoodEaten(ctx)
	}
	if result.Fatal() {
		c.onGameOver(ctx, result)
	}
	return result, true
}

func (c *Controller) onFoodEaten(ctx context.Context) {
	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "game.food")
	span.SetAttributes(
		attribute.String("run_id", c.runID),
		attribute.Int("score", c.sim.Score()),
		attribute.Int("speed", c.sim.Speed()),
		attribute.Int("length", len(c.sim.Snake())),
	)
	span.End()

	c.log.V(1).Info("food eaten", "score", c.sim.Score(), "speed", c.sim.Speed())
}

// onGameOver ends the run, commits a new high score and asks for commentary.
func (c *Controller) onGameOver(ctx context.Context, result game.TickResult) {
	c.status = game.StatusGameOver
	score := c.sim.Score()

	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "game.over")
	span.SetAttributes(
		attribute.String("run_id", c.runID),
		attribute.String("cause", result.Outcome.String()),
		attribute.Int("score", score),
		attribute.Int("length", len(c.sim.Snake())),
		attribute.Int("speed", c.sim.Speed()),
	)
	defer span.End()

	if score > c.highScore {
		c.commitHighScore(ctx, score)
	}

	c.log.Info("run over", "run", c.runID, "cause", result.Outcome, "score", score, "highScore", c.highScore)

	c.commentary = ""
	c.commentaryPending = true
	go c.requestCommentary(ctx, c.runID, score, c.highScore)
}

// commitHighScore records score as the new high score. A store failure is
// logged and the in-memory value still updates.
func (c *Controller) commitHighScore(ctx context.Context, score int) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "highscore.commit")
	span.SetAttributes(
		attribute.Int("previous", c.highScore),
		attribute.Int("score", score),
	)
	defer span.End()

	c.highScore = score
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, store.HighScoreKey, score); err != nil {
		c.log.Error(err, "failed to persist high score", "score", score)
		span.SetAttributes(attribute.Bool("failed", true))
	}
}

func (c *Controller) requestCommentary(ctx context.Context, runID string, score, highScore int) {
	text := c.commentator.Generate(ctx, score, highScore)
	select {
	case c.results <- CommentaryResult{RunID: runID, Text: text}:
	case <-ctx.Done():
	}
}

// Results delivers finished commentary requests.
func (c *Controller) Results() <-chan CommentaryResult {
	return c.results
}

// ApplyCommentary stores a finished commentary and clears the pending flag.
// Results from an earlier run are dropped; returns false in that case.
func (c *Controller) ApplyCommentary(r CommentaryResult) bool {
	if r.RunID != c.runID || c.status != game.StatusGameOver {
		c.log.V(1).Info("dropping stale commentary", "run", r.RunID, "current", c.runID)
		return false
	}
	c.commentary = r.Text
	c.commentaryPending = false
	return true
}

// Status returns the lifecycle status.
func (c *Controller) Status() game.Status {
	return c.status
}

// HighScore returns the best score seen, including the current session.
func (c *Controller) HighScore() int {
	return c.highScore
}

// Period returns the simulation's current tick period.
func (c *Controller) Period() time.Duration {
	return c.sim.Period()
}

// Snapshot returns a copy of the display state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		RunID:             c.runID,
		Status:            c.status,
		GridSize:          c.sim.Grid().Size,
		Snake:             c.sim.Snake(),
		Food:              c.sim.Food(),
		Direction:         c.sim.Direction(),
		Score:             c.sim.Score(),
		HighScore:         c.highScore,
		Speed:             c.sim.Speed(),
		Commentary:        c.commentary,
		CommentaryPending: c.commentaryPending,
	}
}
