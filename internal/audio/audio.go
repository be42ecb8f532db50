// Package audio plays short sound cues for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.25
)

// Cue identifies a sound.
type Cue int

const (
	CueStart Cue = iota
	CueEat
	CueGameOver
)

// note is a single tone in a cue.
type note struct {
	freq     float64
	duration time.Duration
}

var cues = map[Cue][]note{
	CueStart:    {{523.25, 60 * time.Millisecond}, {659.25, 60 * time.Millisecond}, {783.99, 90 * time.Millisecond}},
	CueEat:      {{880, 40 * time.Millisecond}, {1318.51, 50 * time.Millisecond}},
	CueGameOver: {{392, 120 * time.Millisecond}, {311.13, 120 * time.Millisecond}, {196, 240 * time.Millisecond}},
}

// Player plays cues through the system speaker. A disabled player, or one
// whose device failed to open, silently ignores every call.
type Player struct {
	mu      sync.Mutex
	enabled bool
	log     logr.Logger
}

// NewPlayer opens the speaker when enabled is true.
func NewPlayer(enabled bool, log logr.Logger) *Player {
	p := &Player{log: log.WithName("audio")}
	if !enabled {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		// Non-fatal, game can run without sound
		p.log.Error(err, "audio initialization failed")
		return p
	}
	p.enabled = true
	return p
}

// Enabled returns true if cues are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play queues the cue without blocking.
func (p *Player) Play(c Cue) {
	if !p.Enabled() {
		return
	}
	s, err := Sound(c)
	if err != nil {
		p.log.Error(err, "failed to build cue", "cue", c)
		return
	}
	speaker.Play(s)
}

// Close silences the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		speaker.Clear()
		p.enabled = false
	}
}

// Sound builds the streamer for a cue.
func Sound(c Cue) (beep.Streamer, error) {
	notes := cues[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(volume),
	}, nil
}

// Duration returns the total length of a cue.
func Duration(c Cue) time.Duration {
	var total time.Duration
	for _, n := range cues[c] {
		total += n.duration
	}
	return total
}
