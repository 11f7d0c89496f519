// Package flow is the guided voting state machine.
//
// A Machine walks a visitor through the guided sites of a catalog, tracks
// which sites were marked voted today, hands over to the bonus phase once
// the catalog is exhausted, and decides on load whether to resume, start a
// new day, or show the cooldown overlay first.
//
// The machine is driven from a single event loop and is not safe for
// concurrent use.
package flow

import (
	"log/slog"
	"slices"
	"time"

	"github.com/mintnetwork/voteflow/pkg/catalog"
)

// Machine holds the flow state for one loaded session.
type Machine struct {
	catalog catalog.Catalog
	store   Persistence
	now     func() time.Time
	logger  *slog.Logger

	state     State
	completed []string
	visit     Visit

	cooldown    *Cooldown
	loaded      bool
	initialized bool

	// lastDay is the vote day this session believes is persisted; an
	// external clear shows up as a stored day of "" while this is set.
	lastDay string
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithLogger sets the logger used for transitions and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a machine over the given catalog and store. Call Load before
// anything else.
func New(cat catalog.Catalog, store Persistence, opts ...Option) *Machine {
	m := &Machine{
		catalog: cat,
		store:   store,
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
		state:   Guided{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the persisted state and performs the initial transition. Only
// the first call has any effect.
func (m *Machine) Load() {
	if m.loaded {
		return
	}
	m.loaded = true

	snap := m.store.Load()
	m.completed = dedupe(snap.Completed)
	m.lastDay = snap.LastVoteDay

	now := m.now()
	d := Evaluate(snap, now)
	switch d.Kind {
	case DecisionCooldown:
		m.cooldown = &Cooldown{Remaining: d.Remaining}
		m.logger.Info("cooldown overlay shown",
			"elapsed", d.Elapsed.Round(time.Second),
			"remaining", d.Remaining.Round(time.Second))
		return
	case DecisionReset:
		m.logger.Info("starting new voting day", "last_vote_day", snap.LastVoteDay)
		m.startDay(now)
	default:
		m.logger.Debug("resuming today's progress", "completed", len(m.completed))
	}
	m.scan()
}

// State returns the current phase state.
func (m *Machine) State() State {
	return m.state
}

// Cooldown returns the overlay while it is active.
func (m *Machine) Cooldown() (Cooldown, bool) {
	if m.cooldown == nil {
		return Cooldown{}, false
	}
	return *m.cooldown, true
}

// Initialized reports whether the site scan has run for this load.
func (m *Machine) Initialized() bool {
	return m.initialized
}

// Catalog returns the catalog the machine walks.
func (m *Machine) Catalog() catalog.Catalog {
	return m.catalog
}

// Visit returns the token of the current site presentation.
func (m *Machine) Visit() Visit {
	return m.visit
}

// Completed returns a copy of the ids marked voted today.
func (m *Machine) Completed() []string {
	return slices.Clone(m.completed)
}

// IsCompleted reports whether the site id was marked voted today.
func (m *Machine) IsCompleted(id string) bool {
	return slices.Contains(m.completed, id)
}

// CurrentSite returns the site under the cursor during the guided phase.
func (m *Machine) CurrentSite() (catalog.Site, bool) {
	g, ok := m.guided()
	if !ok {
		return catalog.Site{}, false
	}
	return m.catalog.Guided[g.Cursor], true
}

// Progress derives the processed count against the catalog size.
func (m *Machine) Progress() Progress {
	total := m.catalog.Len()
	switch s := m.state.(type) {
	case Guided:
		return Progress{Processed: s.Processed, Total: total}
	default:
		return Progress{Processed: total, Total: total}
	}
}

// MarkVoted records a vote on the current site and returns the visit the
// caller should schedule the auto-advance for. It is a no-op while a
// previous mark on the same visit is still pending.
func (m *Machine) MarkVoted() (Visit, bool) {
	g, ok := m.guided()
	if !ok || g.Processing {
		return 0, false
	}
	g.Processing = true
	m.state = g

	site := m.catalog.Guided[g.Cursor]
	if !slices.Contains(m.completed, site.ID) {
		m.completed = append(m.completed, site.ID)
		if err := m.store.SaveCompleted(slices.Clone(m.completed)); err != nil {
			m.logger.Warn("saving completed sites failed", "error", err)
		}
	}

	now := m.now()
	day := Day(now)
	if err := m.store.RecordVote(now, day); err != nil {
		m.logger.Warn("recording vote failed", "error", err)
	}
	m.lastDay = day

	m.logger.Info("site marked voted", "site", site.ID, "visit", m.visit)
	return m.visit, true
}

// AutoAdvance performs the delayed advance scheduled by MarkVoted. It fires
// at most once per visit and ignores visits that are no longer current.
func (m *Machine) AutoAdvance(v Visit) bool {
	g, ok := m.guided()
	if !ok || !g.Processing || v != m.visit {
		return false
	}
	m.advance(g)
	return true
}

// Skip moves past the current site without recording a vote.
func (m *Machine) Skip() bool {
	g, ok := m.guided()
	if !ok || g.Processing {
		return false
	}
	m.logger.Debug("site skipped", "site", m.catalog.Guided[g.Cursor].ID)
	m.advance(g)
	return true
}

// FrameLoaded dismisses the loading indicator of the given visit. Load and
// error are treated the same.
func (m *Machine) FrameLoaded(v Visit) {
	g, ok := m.guided()
	if !ok || v != m.visit {
		return
	}
	g.Loading = false
	m.state = g
}

// FinishVoting moves from the bonus phase to complete.
func (m *Machine) FinishVoting() bool {
	b, ok := m.state.(Bonus)
	if !ok {
		return false
	}
	m.state = Complete(b)
	m.logger.Info("voting finished", "completed", b.CompletedCount)
	return true
}

// ProceedAnyway dismisses the cooldown overlay, starting a fresh day.
func (m *Machine) ProceedAnyway() bool {
	return m.resolveCooldown("proceed")
}

// ExpireCooldown resolves the overlay when its countdown reaches zero. It
// behaves exactly like ProceedAnyway.
func (m *Machine) ExpireCooldown() bool {
	return m.resolveCooldown("expired")
}

// GoBack reports whether the overlay can be left without touching any
// state. The caller is expected to exit the flow.
func (m *Machine) GoBack() bool {
	if m.cooldown == nil {
		return false
	}
	m.logger.Info("left flow from cooldown overlay")
	return true
}

// Reset clears every persisted value and returns the flow to its initial
// phase.
func (m *Machine) Reset() {
	m.cooldown = nil
	m.loaded = true
	m.completed = nil
	m.lastDay = ""
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing voting state failed", "error", err)
	}
	m.logger.Info("voting state reset")
	m.scan()
}

// Reconcile re-reads the store and resets this session if the persisted
// state was cleared by someone else. Other concurrent writes are not
// reconciled; the last writer wins.
func (m *Machine) Reconcile() bool {
	if !m.loaded || m.lastDay == "" {
		return false
	}
	snap := m.store.Load()
	if snap.LastVoteDay != "" || snap.HasTimestamp() || len(snap.Completed) > 0 {
		return false
	}
	m.logger.Info("voting state cleared externally")
	m.Reset()
	return true
}

func (m *Machine) resolveCooldown(reason string) bool {
	if m.cooldown == nil {
		return false
	}
	m.cooldown = nil
	m.logger.Info("cooldown resolved", "reason", reason)
	m.startDay(m.now())
	m.scan()
	return true
}

// startDay drops today's progress and persists the new day.
func (m *Machine) startDay(now time.Time) {
	m.completed = nil
	day := Day(now)
	if err := m.store.StartDay(day); err != nil {
		m.logger.Warn("starting new day failed", "error", err)
	}
	m.lastDay = day
}

// scan positions the cursor on the first site not yet voted, or moves to
// the bonus phase when there is none.
func (m *Machine) scan() {
	m.initialized = true
	m.visit++

	total := m.catalog.Len()
	if total == 0 {
		m.state = Bonus{CompletedCount: 0}
		return
	}

	idx := m.nextOpen(0)
	if idx < 0 {
		m.state = Bonus{CompletedCount: len(m.completed)}
		return
	}
	m.state = Guided{
		Cursor:    idx,
		Processed: min(len(m.completed), total),
		Loading:   true,
	}
}

func (m *Machine) advance(g Guided) {
	total := m.catalog.Len()
	processed := min(g.Processed+1, total)
	m.visit++

	next := m.nextOpen(g.Cursor + 1)
	if next < 0 {
		m.state = Bonus{CompletedCount: len(m.completed)}
		m.logger.Info("guided sites exhausted", "completed", len(m.completed))
		return
	}
	m.state = Guided{Cursor: next, Processed: processed, Loading: true}
}

// nextOpen returns the first index at or after from whose site is not
// completed, or -1.
func (m *Machine) nextOpen(from int) int {
	for i := from; i < len(m.catalog.Guided); i++ {
		if !slices.Contains(m.completed, m.catalog.Guided[i].ID) {
			return i
		}
	}
	return -1
}

// guided returns the guided state when user actions are accepted.
func (m *Machine) guided() (Guided, bool) {
	if !m.initialized || m.cooldown != nil {
		return Guided{}, false
	}
	g, ok := m.state.(Guided)
	return g, ok
}

func dedupe(ids []string) []string {
	var out []string
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
