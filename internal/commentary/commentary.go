// Package commentary produces a one-line remark about a finished run.
//
// Generate never fails: missing credentials, transport errors and empty
// responses all resolve to a fixed fallback line.
package commentary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/neonsnake/internal/telemetry"
)

// Fallback lines shown when no generated text is available.
const (
	FallbackNoKey = "Great game! (Add API Key for AI roasting)"
	FallbackError = "Connection lost... but your skills remain questionable."
	FallbackEmpty = "Game Over. Try again!"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 15 * time.Second

// Generator turns a prompt into text.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service wraps a Generator with the prompt and the fallback policy.
type Service struct {
	gen     Generator
	timeout time.Duration
	log     logr.Logger
}

// NewService creates a service. A nil generator means no credentials are
// configured and every call returns FallbackNoKey.
func NewService(gen Generator, log logr.Logger) *Service {
	return &Service{
		gen:     gen,
		timeout: DefaultTimeout,
		log:     log.WithName("commentary"),
	}
}

// WithTimeout sets the per-request deadline.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Generate returns a remark for a run that ended with score, given the high
// score after any update.
func (s *Service) Generate(ctx context.Context, score, highScore int) string {
	if s.gen == nil {
		return FallbackNoKey
	}

	tracer := telemetry.Tracer("commentary")
	ctx, span := tracer.Start(ctx, "commentary.generate")
	span.SetAttributes(
		attribute.Int("score", score),
		attribute.Int("high_score", highScore),
	)
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.GenerateText(ctx, Prompt(score, highScore))
	if err != nil {
		s.log.Error(err, "Error generating comment", "score", score)
		span.SetAttributes(attribute.Bool("failed", true))
		return FallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		span.SetAttributes(attribute.Bool("empty", true))
		return FallbackEmpty
	}
	return text
}

// Prompt builds the persona prompt for a finished run.
func Prompt(score, highScore int) string {
	return fmt.Sprintf(`You are a sarcastic, retro arcade machine personality from the 1980s.
The player just lost a game of Snake.
Their Score: %d.
Their High Score: %d.

Generate a short, witty, slightly roasting or encouraging one-sentence comment (max 20 words) based on their performance.
If the score is low (< 5), roast them hard.
If the score is high (> 20), praise them but keep it cool.
Don't use quotes.`, score, highScore)
}
