package input

import "github.com/samdwyer/neonsnake/internal/grid"

// IntentType discriminates player actions independent of the device that produced them.
type IntentType uint8

const (
	IntentNone      IntentType = iota
	IntentDirection            // arrows, WASD, HTTP direction
	IntentStart                // Enter, Space, start button
	IntentPause                // p
	IntentQuit                 // Esc, q, Ctrl+C
	IntentResize               // terminal resize
)

// String returns a human-readable intent name.
func (t IntentType) String() string {
	switch t {
	case IntentDirection:
		return "direction"
	case IntentStart:
		return "start"
	case IntentPause:
		return "pause"
	case IntentQuit:
		return "quit"
	case IntentResize:
		return "resize"
	default:
		return "none"
	}
}

// Intent is a single discrete event from an input device.
type Intent struct {
	Type      IntentType
	Direction grid.Direction // Only meaningful for IntentDirection
}

// Steer returns a direction intent.
func Steer(d grid.Direction) Intent {
	return Intent{Type: IntentDirection, Direction: d}
}
