package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"

	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
	"github.com/samdwyer/neonsnake/internal/session"
)

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPostDirection(t *testing.T) {
	tests := []struct {
		path string
		code int
		want grid.Direction
	}{
		{"/api/direction/up", http.StatusAccepted, grid.Up},
		{"/api/direction/LEFT", http.StatusAccepted, grid.Left},
		{"/api/direction/right", http.StatusAccepted, grid.Right},
		{"/api/direction/diagonal", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := New(logr.Discard())
			rec := do(t, s, http.MethodPost, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			if tt.code != http.StatusAccepted {
				select {
				case in := <-s.Commands():
					t.Errorf("unexpected command %+v", in)
				default:
				}
				return
			}
			select {
			case in := <-s.Commands():
				if in.Type != input.IntentDirection || in.Direction != tt.want {
					t.Errorf("command = %+v, want direction %v", in, tt.want)
				}
			default:
				t.Fatal("no command queued")
			}
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	s := New(logr.Discard())

	if rec := do(t, s, http.MethodPost, "/api/start"); rec.Code != http.StatusAccepted {
		t.Fatalf("start status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/pause"); rec.Code != http.StatusAccepted {
		t.Fatalf("pause status = %d", rec.Code)
	}

	if in := <-s.Commands(); in.Type != input.IntentStart {
		t.Errorf("first command = %v, want start", in.Type)
	}
	if in := <-s.Commands(); in.Type != input.IntentPause {
		t.Errorf("second command = %v, want pause", in.Type)
	}
}

func TestCommandQueueFull(t *testing.T) {
	s := New(logr.Discard())
	for range commandBuffer {
		if rec := do(t, s, http.MethodPost, "/api/start"); rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d while queue has room", rec.Code)
		}
	}
	if rec := do(t, s, http.MethodPost, "/api/start"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 on a full queue", rec.Code)
	}
}

func TestGetState(t *testing.T) {
	s := New(logr.Discard())

	rec := do(t, s, http.MethodGet, "/api/state")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("initial state = %d %q", rec.Code, rec.Body.String())
	}

	s.Publish(session.Snapshot{
		Status:    game.StatusPlaying,
		GridSize:  20,
		Snake:     []grid.Point{{X: 10, Y: 9}, {X: 10, Y: 10}},
		Direction: grid.Up,
		Score:     3,
		HighScore: 7,
	})

	rec = do(t, s, http.MethodGet, "/api/state")
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if got["status"] != "playing" || got["direction"] != "up" {
		t.Errorf("status/direction = %v/%v", got["status"], got["direction"])
	}
	if got["score"] != float64(3) || got["high_score"] != float64(7) {
		t.Errorf("score/high_score = %v/%v", got["score"], got["high_score"])
	}
}

func TestSpectatorStream(t *testing.T) {
	s := New(logr.Discard())
	s.Publish(session.Snapshot{Status: game.StatusIdle, Score: 1})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	read := func() map[string]any {
		t.Helper()
		_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return m
	}

	if got := read(); got["score"] != float64(1) {
		t.Errorf("initial snapshot score = %v, want 1", got["score"])
	}

	s.Publish(session.Snapshot{Status: game.StatusGameOver, Score: 5})
	got := read()
	if got["score"] != float64(5) || got["status"] != "game_over" {
		t.Errorf("pushed snapshot = %v", got)
	}
}

func TestListenAndServeStops(t *testing.T) {
	s := New(logr.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
