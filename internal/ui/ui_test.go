package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
	"github.com/samdwyer/neonsnake/internal/session"
)

func TestKeyIntent(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want input.Intent
	}{
		{tcell.KeyUp, 0, input.Steer(grid.Up)},
		{tcell.KeyDown, 0, input.Steer(grid.Down)},
		{tcell.KeyLeft, 0, input.Steer(grid.Left)},
		{tcell.KeyRight, 0, input.Steer(grid.Right)},
		{tcell.KeyRune, 'w', input.Steer(grid.Up)},
		{tcell.KeyRune, 'S', input.Steer(grid.Down)},
		{tcell.KeyRune, 'a', input.Steer(grid.Left)},
		{tcell.KeyRune, 'D', input.Steer(grid.Right)},
		{tcell.KeyRune, 'p', input.Intent{Type: input.IntentPause}},
		{tcell.KeyRune, 'P', input.Intent{Type: input.IntentPause}},
		{tcell.KeyRune, ' ', input.Intent{Type: input.IntentStart}},
		{tcell.KeyEnter, 0, input.Intent{Type: input.IntentStart}},
		{tcell.KeyEscape, 0, input.Intent{Type: input.IntentQuit}},
		{tcell.KeyRune, 'q', input.Intent{Type: input.IntentQuit}},
		{tcell.KeyRune, 'x', input.Intent{}},
		{tcell.KeyTab, 0, input.Intent{}},
	}

	for _, tt := range tests {
		if got := KeyIntent(tt.key, tt.r); got != tt.want {
			t.Errorf("KeyIntent(%v, %q) = %+v, want %+v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#4ade80", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestGradient(t *testing.T) {
	if got := Gradient(0); got != nil {
		t.Errorf("Gradient(0) = %v, want nil", got)
	}

	colors := Gradient(5)
	if len(colors) != 5 {
		t.Fatalf("len(Gradient(5)) = %d, want 5", len(colors))
	}
	if colors[0] != MustParseHexColor(colorHead) {
		t.Errorf("Gradient head = %v, want %v", colors[0], MustParseHexColor(colorHead))
	}
	if colors[4] != MustParseHexColor(colorTail) {
		t.Errorf("Gradient tail = %v, want %v", colors[4], MustParseHexColor(colorTail))
	}
	if one := Gradient(1); one[0] != colors[0] {
		t.Errorf("Gradient(1) = %v, want head color", one[0])
	}
}

func TestBoardLayoutAndCentering(t *testing.T) {
	l := BoardLayout(80, 20)
	if l.Width != 42 || l.Height != 22 {
		t.Errorf("BoardLayout size = %dx%d, want 42x22", l.Width, l.Height)
	}
	if l.Left != 19 {
		t.Errorf("BoardLayout left = %d, want 19", l.Left)
	}
	if narrow := BoardLayout(10, 20); narrow.Left != 0 {
		t.Errorf("BoardLayout on narrow screen left = %d, want 0", narrow.Left)
	}

	if x := CenterX(0, 10, "abcd"); x != 3 {
		t.Errorf("CenterX() = %d, want 3", x)
	}
	if x := CenterX(5, 2, "too wide"); x != 5 {
		t.Errorf("CenterX() for overflowing text = %d, want 5", x)
	}
}

func TestRenderOnSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error: %v", err)
	}
	defer screen.Close()
	sim.SetSize(80, 30)

	r := NewRenderer(screen)
	snaps := []session.Snapshot{
		{Status: game.StatusIdle, GridSize: 20, Snake: []grid.Point{{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 10, Y: 12}}, Food: grid.Point{X: 5, Y: 5}},
		{Status: game.StatusPlaying, GridSize: 20, Snake: []grid.Point{{X: 10, Y: 9}, {X: 10, Y: 10}, {X: 10, Y: 11}}, Score: 1},
		{Status: game.StatusPaused, GridSize: 20, Snake: []grid.Point{{X: 0, Y: 0}}},
		{Status: game.StatusGameOver, GridSize: 20, Snake: []grid.Point{{X: 0, Y: 0}}, CommentaryPending: true},
	}
	for _, snap := range snaps {
		r.Render(snap)
	}
}
