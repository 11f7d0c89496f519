// Package cooldown implements the countdown shown while the daily vote
// cooldown overlay is up.
package cooldown

import (
	"fmt"
	"time"
)

const (
	// Window is the full cooldown after a vote.
	Window = 24 * time.Hour
	// Grace is how long after a vote the overlay stays suppressed.
	Grace = 4 * time.Hour
	// Step is the countdown tick interval.
	Step = time.Second
)

// Countdown counts down in fixed Step increments and stops at zero.
type Countdown struct {
	remaining time.Duration
	stopped   bool
}

// New creates a countdown with the given time left.
func New(remaining time.Duration) *Countdown {
	if remaining < 0 {
		remaining = 0
	}
	return &Countdown{remaining: remaining}
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Stopped reports whether the countdown has expired or was stopped early.
func (c *Countdown) Stopped() bool {
	return c.stopped
}

// Stop halts the countdown without expiring it.
func (c *Countdown) Stop() {
	c.stopped = true
}

// Tick advances the countdown by one Step. It returns true exactly once,
// on the tick that reaches zero; ticks after that are ignored.
func (c *Countdown) Tick() bool {
	if c.stopped {
		return false
	}
	if c.remaining <= Step {
		c.remaining = 0
		c.stopped = true
		return true
	}
	c.remaining -= Step
	return false
}

// String renders the time left.
func (c *Countdown) String() string {
	return Format(c.remaining)
}

// Format renders d as "Hh Mm Ss" when at least an hour remains, else "Mm Ss".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)
	seconds := int(d%time.Minute) / int(time.Second)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
