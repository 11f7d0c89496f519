package flow

import "time"

// DayLayout formats the calendar day stored as the last vote day.
const DayLayout = "Mon Jan 02 2006"

// Day returns the local calendar day of t.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Snapshot is the persisted voting state as read on load.
type Snapshot struct {
	Completed     []string
	LastVoteDay   string
	VoteTimestamp time.Time // zero when absent
}

// HasTimestamp reports whether a vote timestamp was stored.
func (s Snapshot) HasTimestamp() bool {
	return !s.VoteTimestamp.IsZero()
}

// Persistence is the local store the machine reads on load and writes on
// every change.
type Persistence interface {
	// Load never fails; missing or malformed values come back empty.
	Load() Snapshot
	// SaveCompleted writes the whole completed list.
	SaveCompleted(ids []string) error
	// RecordVote writes the vote timestamp and day together.
	RecordVote(at time.Time, day string) error
	// StartDay drops the completed list and timestamp and stores day.
	StartDay(day string) error
	// Clear removes every persisted value.
	Clear() error
}
