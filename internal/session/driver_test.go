package session

import (
	"testing"
	"time"

	"github.com/samdwyer/neonsnake/internal/game"
)

func TestDriverArmsOnlyWhilePlaying(t *testing.T) {
	d := NewDriver()
	defer d.Stop()

	if d.C() != nil {
		t.Error("new driver should have a nil channel")
	}

	if !d.Sync(game.StatusPlaying, 150*time.Millisecond) {
		t.Error("Sync(playing) should arm the driver")
	}
	if d.C() == nil || !d.Armed() {
		t.Error("driver should be armed while playing")
	}

	if d.Sync(game.StatusPlaying, 150*time.Millisecond) {
		t.Error("Sync() with the same pair should not re-arm")
	}

	if !d.Sync(game.StatusPlaying, 148*time.Millisecond) {
		t.Error("Sync() with a new period should re-arm")
	}
	if d.Period() != 148*time.Millisecond {
		t.Errorf("Period() = %v, want 148ms", d.Period())
	}

	for _, s := range []game.Status{game.StatusPaused, game.StatusGameOver, game.StatusIdle} {
		d.Sync(game.StatusPlaying, 148*time.Millisecond)
		if !d.Sync(s, 148*time.Millisecond) {
			t.Errorf("Sync(%v) should stop the driver", s)
		}
		if d.C() != nil || d.Armed() {
			t.Errorf("driver should be stopped while %v", s)
		}
	}
}

func TestDriverDeliversTicks(t *testing.T) {
	d := NewDriver()
	defer d.Stop()

	d.Sync(game.StatusPlaying, 5*time.Millisecond)

	select {
	case <-d.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestSnapshotHintAndLabel(t *testing.T) {
	tests := []struct {
		snap  Snapshot
		hint  string
		label string
	}{
		{Snapshot{Status: game.StatusIdle}, "Press Enter or Start Button to play", "START GAME"},
		{Snapshot{Status: game.StatusPlaying}, "Use Arrow Keys or Buttons to move", ""},
		{Snapshot{Status: game.StatusPaused}, "Paused - press P to resume", ""},
		{Snapshot{Status: game.StatusGameOver, CommentaryPending: true}, "AI is analyzing your failure...", "RETRY"},
		{Snapshot{Status: game.StatusGameOver, Commentary: "Ouch."}, "Ouch.", "RETRY"},
	}

	for _, tt := range tests {
		if got := tt.snap.Hint(); got != tt.hint {
			t.Errorf("Hint() for %v = %q, want %q", tt.snap.Status, got, tt.hint)
		}
		if got := tt.snap.StartLabel(); got != tt.label {
			t.Errorf("StartLabel() for %v = %q, want %q", tt.snap.Status, got, tt.label)
		}
	}
}
