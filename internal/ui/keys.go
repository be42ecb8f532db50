package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/neonsnake/internal/grid"
	"github.com/samdwyer/neonsnake/internal/input"
)

// EventIntent translates a terminal event into an input intent.
func EventIntent(ev tcell.Event) input.Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return KeyIntent(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		return input.Intent{Type: input.IntentResize}
	}
	return input.Intent{}
}

// KeyIntent maps a key (and its rune for tcell.KeyRune) to an intent.
// Arrows and WASD steer, P pauses, Enter and Space start, Esc and Q quit.
func KeyIntent(key tcell.Key, r rune) input.Intent {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.Intent{Type: input.IntentQuit}
	case tcell.KeyEnter:
		return input.Intent{Type: input.IntentStart}
	case tcell.KeyUp:
		return input.Steer(grid.Up)
	case tcell.KeyDown:
		return input.Steer(grid.Down)
	case tcell.KeyLeft:
		return input.Steer(grid.Left)
	case tcell.KeyRight:
		return input.Steer(grid.Right)
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return input.Steer(grid.Up)
		case 's', 'S':
			return input.Steer(grid.Down)
		case 'a', 'A':
			return input.Steer(grid.Left)
		case 'd', 'D':
			return input.Steer(grid.Right)
		case 'p', 'P':
			return input.Intent{Type: input.IntentPause}
		case ' ':
			return input.Intent{Type: input.IntentStart}
		case 'q', 'Q':
			return input.Intent{Type: input.IntentQuit}
		}
	}
	return input.Intent{}
}
