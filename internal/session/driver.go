package session

import (
	"time"

	"github.com/samdwyer/neonsnake/internal/game"
)

// Driver is the tick timer. It reacts to the (status, period) pair and is
// re-armed whenever either changes, so a speed change takes effect on the
// very next tick and no ticks fire outside StatusPlaying.
type Driver struct {
	ticker *time.Ticker
	status game.Status
	period time.Duration
	armed  bool
}

// NewDriver creates a stopped driver.
func NewDriver() *Driver {
	return &Driver{status: game.StatusIdle}
}

// Sync updates the driver to the given status and period.
// Returns true if the timer was re-armed or stopped.
func (d *Driver) Sync(status game.Status, period time.Duration) bool {
	wantArmed := status == game.StatusPlaying && period > 0
	if status == d.status && period == d.period && wantArmed == d.armed {
		return false
	}
	d.status = status
	d.period = period

	if !wantArmed {
		if d.ticker != nil {
			d.ticker.Stop()
		}
		d.armed = false
		return true
	}

	if d.ticker == nil {
		d.ticker = time.NewTicker(period)
	} else {
		d.ticker.Reset(period)
	}
	d.armed = true
	return true
}

// C returns the tick channel, or nil while stopped so a select on it blocks.
func (d *Driver) C() <-chan time.Time {
	if !d.armed {
		return nil
	}
	return d.ticker.C
}

// Armed returns true while ticks are being delivered.
func (d *Driver) Armed() bool {
	return d.armed
}

// Period returns the period the driver was last synced to.
func (d *Driver) Period() time.Duration {
	return d.period
}

// Stop releases the timer.
func (d *Driver) Stop() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
	d.armed = false
}
