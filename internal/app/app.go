// Package app runs the game loop that ties the controller to its inputs and
// outputs.
package app

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/neonsnake/internal/audio"
	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/input"
	"github.com/samdwyer/neonsnake/internal/session"
	"github.com/samdwyer/neonsnake/internal/telemetry"
	"github.com/samdwyer/neonsnake/internal/ui"
)

// Publisher receives every frame, e.g. the HTTP server.
type Publisher interface {
	Publish(snap session.Snapshot)
}

// Options configures the optional parts of an App.
type Options struct {
	Screen    *ui.Screen          // nil runs headless
	Commands  <-chan input.Intent // Remote intents, e.g. from the HTTP server
	Publisher Publisher
	Audio     *audio.Player
	Log       logr.Logger
}

// App owns the game loop. Every controller call happens on the goroutine
// running Run.
type App struct {
	ctrl      *session.Controller
	driver    *session.Driver
	screen    *ui.Screen
	renderer  *ui.Renderer
	commands  <-chan input.Intent
	publisher Publisher
	audio     *audio.Player
	log       logr.Logger
	running   bool
}

// New creates an app around ctrl.
func New(ctrl *session.Controller, opts Options) *App {
	a := &App{
		ctrl:      ctrl,
		driver:    session.NewDriver(),
		screen:    opts.Screen,
		commands:  opts.Commands,
		publisher: opts.Publisher,
		audio:     opts.Audio,
		log:       opts.Log.WithName("app"),
		running:   true,
	}
	if a.screen != nil {
		a.renderer = ui.NewRenderer(a.screen)
	}
	return a
}

// Run executes the main loop until a quit intent arrives, the screen closes
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("app")
	_, initSpan := tracer.Start(ctx, "app.init")
	initSpan.SetAttributes(
		attribute.Bool("headless", a.screen == nil),
		attribute.Bool("remote", a.commands != nil),
		attribute.Int("high_score", a.ctrl.HighScore()),
	)
	initSpan.End()

	events := a.pollEvents(ctx)
	defer a.driver.Stop()

	a.refresh()
	for a.running {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handle(ctx, ui.EventIntent(ev))
		case in := <-a.commands:
			a.handle(ctx, in)
		case <-a.driver.C():
			a.tick(ctx)
		case r := <-a.ctrl.Results():
			a.ctrl.ApplyCommentary(r)
		}

		a.driver.Sync(a.ctrl.Status(), a.ctrl.Period())
		a.refresh()
	}
	return nil
}

// pollEvents forwards terminal events until the screen is finalized.
// Returns nil when running headless.
func (a *App) pollEvents(ctx context.Context) <-chan tcell.Event {
	if a.screen == nil {
		return nil
	}
	ch := make(chan tcell.Event)
	go func() {
		defer close(ch)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// handle applies a single intent.
func (a *App) handle(ctx context.Context, in input.Intent) {
	switch in.Type {
	case input.IntentQuit:
		a.running = false
	case input.IntentStart:
		if a.ctrl.Start(ctx) {
			a.play(audio.CueStart)
		}
	case input.IntentPause:
		a.ctrl.TogglePause()
	case input.IntentDirection:
		a.ctrl.RequestDirection(in.Direction)
	case input.IntentResize:
		if a.screen != nil {
			a.screen.Sync()
		}
	}
}

func (a *App) tick(ctx context.Context) {
	result, ok := a.ctrl.Tick(ctx)
	if !ok {
		return
	}
	switch {
	case result.Outcome == game.OutcomeAte:
		a.play(audio.CueEat)
	case result.Fatal():
		a.play(audio.CueGameOver)
	}
}

func (a *App) play(c audio.Cue) {
	if a.audio != nil {
		a.audio.Play(c)
	}
}

// refresh draws and publishes the current frame.
func (a *App) refresh() {
	snap := a.ctrl.Snapshot()
	if a.renderer != nil {
		a.renderer.Render(snap)
	}
	if a.publisher != nil {
		a.publisher.Publish(snap)
	}
}
