package session

import (
	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
)

// Snapshot is a read-only copy of everything a renderer may display.
type Snapshot struct {
	RunID             string         `json:"run_id,omitempty"`
	Status            game.Status    `json:"status"`
	GridSize          int            `json:"grid_size"`
	Snake             []grid.Point   `json:"snake"`
	Food              grid.Point     `json:"food"`
	Direction         grid.Direction `json:"direction"`
	Score             int            `json:"score"`
	HighScore         int            `json:"high_score"`
	Speed             int            `json:"speed"`
	Commentary        string         `json:"commentary,omitempty"`
	CommentaryPending bool           `json:"commentary_pending"`
}

// Hint returns the status line shown under the board.
func (s Snapshot) Hint() string {
	switch {
	case s.CommentaryPending:
		return "AI is analyzing your failure..."
	case s.Commentary != "":
		return s.Commentary
	case s.Status == game.StatusPlaying:
		return "Use Arrow Keys or Buttons to move"
	case s.Status == game.StatusPaused:
		return "Paused - press P to resume"
	default:
		return "Press Enter or Start Button to play"
	}
}

// StartLabel returns the label of the start button, or "" when it is hidden.
func (s Snapshot) StartLabel() string {
	switch s.Status {
	case game.StatusIdle:
		return "START GAME"
	case game.StatusGameOver:
		return "RETRY"
	default:
		return ""
	}
}
