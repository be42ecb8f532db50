package app

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
	"github.com/samdwyer/neonsnake/internal/session"
	"github.com/samdwyer/neonsnake/internal/store"
	"github.com/samdwyer/neonsnake/internal/ui"
)

type cannedCommentator struct{ text string }

func (c cannedCommentator) Generate(context.Context, int, int) string { return c.text }

// frames collects published snapshots without blocking the loop.
type frames chan session.Snapshot

func (f frames) Publish(snap session.Snapshot) {
	select {
	case f <- snap:
	default:
	}
}

func newController(t *testing.T, speed int, st store.Store) *session.Controller {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.InitialSpeed = speed
	cfg.MinSpeed = 1
	cfg.SpeedDecrement = 0
	cfg.Seed = 1
	m, err := game.NewMachine(cfg, nil)
	if err != nil {
		t.Fatalf("NewMachine() error: %v", err)
	}
	return session.NewController(context.Background(), m, st, cannedCommentator{"gg"}, logr.Discard())
}

func waitFor(t *testing.T, f frames, cond func(session.Snapshot) bool) session.Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-f:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for frame")
		}
	}
}

func TestRunPlaysToGameOver(t *testing.T) {
	st := store.NewMemory()
	ctrl := newController(t, 2, st)
	commands := make(chan input.Intent, 4)
	out := make(frames, 1024)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := New(ctrl, Options{Commands: commands, Publisher: out, Log: logr.Discard()})
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	commands <- input.Intent{Type: input.IntentStart}

	// Heading up from row 10 the snake reaches the wall without input.
	over := waitFor(t, out, func(s session.Snapshot) bool {
		return s.Status == game.StatusGameOver
	})
	if over.RunID == "" {
		t.Error("game over frame has no run id")
	}

	final := waitFor(t, out, func(s session.Snapshot) bool {
		return s.Status == game.StatusGameOver && !s.CommentaryPending
	})
	if final.Commentary != "gg" {
		t.Errorf("Commentary = %q, want gg", final.Commentary)
	}
	if final.Hint() != "gg" || final.StartLabel() != "RETRY" {
		t.Errorf("Hint/StartLabel = %q/%q", final.Hint(), final.StartLabel())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestQuitIntentStopsRun(t *testing.T) {
	ctrl := newController(t, 150, nil)
	commands := make(chan input.Intent, 1)
	a := New(ctrl, Options{Commands: commands, Log: logr.Discard()})

	commands <- input.Intent{Type: input.IntentQuit}
	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on quit")
	}
}

func TestHandleLifecycle(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, 150, nil)
	a := New(ctrl, Options{Log: logr.Discard()})
	sync := func() { a.driver.Sync(ctrl.Status(), ctrl.Period()) }

	a.handle(ctx, input.Intent{Type: input.IntentPause})
	sync()
	if ctrl.Status() != game.StatusIdle || a.driver.Armed() {
		t.Fatalf("pause from idle: status %v armed %v", ctrl.Status(), a.driver.Armed())
	}

	a.handle(ctx, input.Intent{Type: input.IntentStart})
	sync()
	if ctrl.Status() != game.StatusPlaying || !a.driver.Armed() {
		t.Fatalf("after start: status %v armed %v", ctrl.Status(), a.driver.Armed())
	}
	if a.driver.Period() != 150*time.Millisecond {
		t.Errorf("driver period = %v, want 150ms", a.driver.Period())
	}

	a.handle(ctx, input.Steer(grid.Left))
	if got := ctrl.Snapshot(); got.Direction != grid.Up {
		t.Errorf("direction before tick = %v, want up", got.Direction)
	}
	a.tick(ctx)
	if got := ctrl.Snapshot(); got.Direction != grid.Left {
		t.Errorf("direction after tick = %v, want left", got.Direction)
	}

	a.handle(ctx, input.Intent{Type: input.IntentPause})
	sync()
	if ctrl.Status() != game.StatusPaused || a.driver.Armed() {
		t.Fatalf("after pause: status %v armed %v", ctrl.Status(), a.driver.Armed())
	}

	before := ctrl.Snapshot().Snake
	a.tick(ctx)
	if after := ctrl.Snapshot().Snake; after[0] != before[0] {
		t.Errorf("tick while paused moved head from %v to %v", before[0], after[0])
	}

	a.handle(ctx, input.Intent{Type: input.IntentStart})
	if ctrl.Status() != game.StatusPaused {
		t.Errorf("start while paused changed status to %v", ctrl.Status())
	}
}

func TestRunRendersToScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error: %v", err)
	}
	sim.SetSize(80, 40)

	ctrl := newController(t, 150, nil)
	ctx, cancel := context.WithCancel(context.Background())
	a := New(ctrl, Options{Screen: screen, Log: logr.Discard()})

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	screen.Close()
}
