package flow

import (
	"time"

	"github.com/mintnetwork/voteflow/pkg/cooldown"
)

// DecisionKind is the outcome of evaluating persisted state on load.
type DecisionKind string

const (
	// DecisionKeep resumes today's progress.
	DecisionKeep DecisionKind = "keep"
	// DecisionReset starts a fresh day.
	DecisionReset DecisionKind = "reset"
	// DecisionCooldown shows the cooldown overlay before anything else.
	DecisionCooldown DecisionKind = "cooldown"
)

// Decision says how a load should treat the persisted state.
type Decision struct {
	Kind      DecisionKind
	Elapsed   time.Duration // since the last vote, when known
	Remaining time.Duration // until the cooldown window closes, for DecisionCooldown
}

// Evaluate decides between keeping, resetting and the cooldown overlay.
// It has no side effects.
//
// A vote from an earlier day less than Grace ago resets without the overlay.
func Evaluate(s Snapshot, now time.Time) Decision {
	if s.LastVoteDay == Day(now) {
		return Decision{Kind: DecisionKeep}
	}
	if s.LastVoteDay == "" || !s.HasTimestamp() {
		return Decision{Kind: DecisionReset}
	}

	elapsed := now.Sub(s.VoteTimestamp)
	if elapsed >= cooldown.Grace && elapsed < cooldown.Window {
		return Decision{
			Kind:      DecisionCooldown,
			Elapsed:   elapsed,
			Remaining: cooldown.Window - elapsed,
		}
	}
	return Decision{Kind: DecisionReset, Elapsed: elapsed}
}
