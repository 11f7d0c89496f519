// Package effects draws the decorative particle backdrop behind the bonus
// screen. The backdrop is optional: when it is unavailable the screen is
// drawn without it.
package effects

import (
	"context"
	"errors"
	"time"
)

// Polling defaults used while waiting for a backdrop to become available.
const (
	DefaultAttempts = 30
	DefaultInterval = 100 * time.Millisecond
)

// ErrUnavailable is returned by Render when the backdrop cannot draw.
var ErrUnavailable = errors.New("backdrop unavailable")

// Params are the particle parameters of the bonus backdrop.
type Params struct {
	Color       string
	Count       int
	DensityArea int // cells per Count particles; 0 disables density scaling
	Speed       float64
	Opacity     float64
	MinOpacity  float64
	Size        float64
	MinSize     float64
	FPSLimit    int
}

// BonusParams returns the parameters of the bonus screen backdrop.
func BonusParams() Params {
	return Params{
		Color:       "#9a0aab",
		Count:       60,
		DensityArea: 2000,
		Speed:       0.5,
		Opacity:     0.7,
		MinOpacity:  0.2,
		Size:        2,
		MinSize:     0.5,
		FPSLimit:    60,
	}
}

// FrameInterval is the minimum time between two frames.
func (p Params) FrameInterval() time.Duration {
	if p.FPSLimit <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(p.FPSLimit)
}

// Backdrop is an optional decorative renderer.
type Backdrop interface {
	Available() bool
	// Render draws the next frame of the named container at the given size.
	Render(container string, p Params, width, height int) (string, error)
}

// Await polls b until it is available, up to attempts times with interval
// between polls. It reports availability and never returns an error; a
// backdrop that doesn't show up is simply skipped.
func Await(ctx context.Context, b Backdrop, attempts int, interval time.Duration) bool {
	if b == nil {
		return false
	}
	for i := 0; ; i++ {
		if b.Available() {
			return true
		}
		if i >= attempts {
			return false
		}
		t := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return false
		case <-t.C:
		}
	}
}
