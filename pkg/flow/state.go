package flow

import "time"

// Phase names the stage of the flow a State belongs to.
type Phase string

const (
	PhaseGuided   Phase = "guided"
	PhaseBonus    Phase = "bonus"
	PhaseComplete Phase = "complete"
)

// State is one of Guided, Bonus or Complete.
type State interface {
	Phase() Phase
	isState()
}

// Visit identifies one presentation of one guided site. Delayed events
// carry the visit that scheduled them and are dropped once it is stale.
type Visit uint64

// Guided is the phase in which guided sites are presented one at a time.
type Guided struct {
	Cursor     int
	Processed  int
	Processing bool // a vote was marked and the auto-advance is pending
	Loading    bool // the site frame has not reported load or error yet
}

// Bonus is the phase listing external-only bonus sites.
type Bonus struct {
	CompletedCount int
}

// Complete is the terminal phase.
type Complete struct {
	CompletedCount int
}

func (Guided) Phase() Phase   { return PhaseGuided }
func (Bonus) Phase() Phase    { return PhaseBonus }
func (Complete) Phase() Phase { return PhaseComplete }

func (Guided) isState()   {}
func (Bonus) isState()    {}
func (Complete) isState() {}

// Cooldown is the overlay shown on load when the previous vote is recent
// enough that some sites may still reject a new one.
type Cooldown struct {
	Remaining time.Duration
}
