package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/mintnetwork/voteflow/pkg/cooldown"
	"github.com/mintnetwork/voteflow/pkg/effects"
	"github.com/mintnetwork/voteflow/pkg/flow"
	"github.com/mintnetwork/voteflow/pkg/web"
)

// DefaultAdvanceDelay is the pause between marking a site voted and moving
// to the next one.
const DefaultAdvanceDelay = 800 * time.Millisecond

const (
	probeTimeout   = 10 * time.Second
	minFrameTime   = 100 * time.Millisecond
	backdropHeight = 3
	statusDuration = 3 * time.Second
)

// StoreChangedMsg is sent when the watcher sees the persisted state change.
type StoreChangedMsg struct{}

type advanceMsg struct {
	visit flow.Visit
}

type cooldownTickMsg struct {
	gen int
}

type frameLoadedMsg struct {
	visit flow.Visit
	err   error
}

type effectReadyMsg struct {
	ok bool
}

type effectFrameMsg struct {
	gen int
}

type openedMsg struct {
	url string
	err error
}

// Exit says how the user left the TUI.
type Exit int

const (
	ExitNone Exit = iota
	ExitQuit
	ExitBack
	ExitHub
)

type screen int

const (
	screenGuided screen = iota
	screenCooldown
	screenBonus
	screenComplete
)

// Options wires the model's collaborators. Nil collaborators disable the
// feature they back.
type Options struct {
	Prober       web.Prober
	Opener       web.Opener
	Backdrop     effects.Backdrop
	AdvanceDelay time.Duration
	Logger       *slog.Logger
}

// Model is the Bubble Tea model for the voting flow.
type Model struct {
	machine *flow.Machine
	keys    KeyMap
	width   int
	height  int

	prober       web.Prober
	opener       web.Opener
	advanceDelay time.Duration
	logger       *slog.Logger

	spinner spinner.Model

	// Cooldown overlay countdown; tickGen invalidates in-flight ticks.
	countdown *cooldown.Countdown
	tickGen   int

	backdrop       effects.Backdrop
	effectsStarted bool
	effectsReady   bool
	frameGen       int
	backdropFrame  string

	showHelpModal bool
	exit          Exit

	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel loads the machine and creates the TUI model around it.
func NewModel(machine *flow.Machine, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ProgressFillStyle

	m := Model{
		machine:      machine,
		keys:         DefaultKeyMap(),
		prober:       opts.Prober,
		opener:       opts.Opener,
		backdrop:     opts.Backdrop,
		advanceDelay: opts.AdvanceDelay,
		logger:       opts.Logger,
		spinner:      sp,
	}
	if m.advanceDelay <= 0 {
		m.advanceDelay = DefaultAdvanceDelay
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}

	machine.Load()
	if cd, ok := machine.Cooldown(); ok {
		m.countdown = cooldown.New(cd.Remaining)
	}
	if m.backdrop != nil && m.currentScreen() == screenBonus {
		m.effectsStarted = true
	}
	return m
}

// Exit reports how the user left. It is ExitNone while running.
func (m Model) Exit() Exit {
	return m.exit
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize(), m.spinner.Tick}
	switch m.currentScreen() {
	case screenCooldown:
		cmds = append(cmds, m.scheduleTick())
	case screenGuided:
		cmds = append(cmds, m.probeCurrent())
	case screenBonus:
		if m.effectsStarted {
			cmds = append(cmds, awaitBackdrop(m.backdrop))
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(contentWidth(msg.Width))
		return m, tea.ClearScreen

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cooldownTickMsg:
		if m.countdown == nil || msg.gen != m.tickGen {
			return m, nil
		}
		if !m.countdown.Tick() {
			return m, m.scheduleTick()
		}
		m.countdown = nil
		m.machine.ExpireCooldown()
		m.setStatus("Cooldown over, starting a new day")
		cmd := m.afterTransition()
		return m, cmd

	case advanceMsg:
		if m.machine.AutoAdvance(msg.visit) {
			cmd := m.afterTransition()
			return m, cmd
		}
		return m, nil

	case frameLoadedMsg:
		if msg.err != nil {
			m.logger.Debug("site probe failed", "visit", msg.visit, "error", msg.err)
		}
		m.machine.FrameLoaded(msg.visit)
		return m, nil

	case effectReadyMsg:
		m.effectsReady = msg.ok
		if !msg.ok {
			m.logger.Debug("backdrop unavailable, continuing without it")
			return m, nil
		}
		m.renderBackdrop()
		return m, m.scheduleFrame()

	case effectFrameMsg:
		if msg.gen != m.frameGen || m.currentScreen() != screenBonus {
			return m, nil
		}
		m.renderBackdrop()
		return m, m.scheduleFrame()

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("opening site failed", "url", msg.url, "error", msg.err)
			m.setStatus("Could not open browser: " + msg.err.Error())
		} else {
			m.setStatus("Opened " + msg.url)
		}
		return m, nil

	case StoreChangedMsg:
		if m.machine.Reconcile() {
			m.stopCountdown()
			m.setStatus("Voting state was reset elsewhere")
			cmd := m.afterTransition()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	switch {
	case msg.String() == "ctrl+c":
		m.exit = ExitQuit
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.machine.Reset()
		m.stopCountdown()
		m.setStatus("Voting state reset")
		cmd := m.afterTransition()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		return m, nil
	}

	switch m.currentScreen() {
	case screenCooldown:
		return m.handleCooldownKey(msg)
	case screenGuided:
		return m.handleGuidedKey(msg)
	case screenBonus:
		return m.handleBonusKey(msg)
	case screenComplete:
		return m.handleCompleteKey(msg)
	}
	return m, nil
}

func (m Model) handleCooldownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Proceed):
		if m.machine.ProceedAnyway() {
			m.stopCountdown()
			cmd := m.afterTransition()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Back):
		if m.machine.GoBack() {
			m.stopCountdown()
			m.exit = ExitBack
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.Quit):
		m.exit = ExitQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGuidedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Voted):
		visit, ok := m.machine.MarkVoted()
		if !ok {
			return m, nil
		}
		return m, tea.Tick(m.advanceDelay, func(time.Time) tea.Msg {
			return advanceMsg{visit: visit}
		})
	case key.Matches(msg, m.keys.Skip):
		if m.machine.Skip() {
			cmd := m.afterTransition()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Open):
		if site, ok := m.machine.CurrentSite(); ok {
			return m, m.openURL(site.URL)
		}
	case key.Matches(msg, m.keys.Quit):
		m.exit = ExitQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleBonusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Bonus):
		idx := int(msg.String()[0] - '1')
		bonus := m.machine.Catalog().Bonus
		if idx >= 0 && idx < len(bonus) {
			return m, m.openURL(bonus[idx].URL)
		}
	case key.Matches(msg, m.keys.Finish):
		m.machine.FinishVoting()
	case key.Matches(msg, m.keys.Quit):
		m.exit = ExitQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Hub):
		m.exit = ExitHub
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		m.exit = ExitQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) currentScreen() screen {
	if _, ok := m.machine.Cooldown(); ok {
		return screenCooldown
	}
	switch m.machine.State().(type) {
	case flow.Bonus:
		return screenBonus
	case flow.Complete:
		return screenComplete
	default:
		return screenGuided
	}
}

// afterTransition starts the side work a new state needs: probing the
// presented site or bringing up the bonus backdrop.
func (m *Model) afterTransition() tea.Cmd {
	if _, ok := m.machine.Cooldown(); ok {
		return nil
	}
	switch s := m.machine.State().(type) {
	case flow.Guided:
		if s.Loading {
			return m.probeCurrent()
		}
	case flow.Bonus:
		return m.startEffects()
	}
	return nil
}

func (m Model) probeCurrent() tea.Cmd {
	site, ok := m.machine.CurrentSite()
	if !ok {
		return nil
	}
	visit := m.machine.Visit()
	prober := m.prober
	if prober == nil {
		return func() tea.Msg { return frameLoadedMsg{visit: visit} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return frameLoadedMsg{visit: visit, err: prober.Probe(ctx, site.URL)}
	}
}

// startEffects waits for the backdrop the first time the bonus screen is
// shown and restarts its frame loop on later visits.
func (m *Model) startEffects() tea.Cmd {
	if m.backdrop == nil {
		return nil
	}
	if m.effectsReady {
		m.frameGen++
		m.renderBackdrop()
		return m.scheduleFrame()
	}
	if m.effectsStarted {
		return nil
	}
	m.effectsStarted = true
	return awaitBackdrop(m.backdrop)
}

func awaitBackdrop(b effects.Backdrop) tea.Cmd {
	return func() tea.Msg {
		ok := effects.Await(context.Background(), b, effects.DefaultAttempts, effects.DefaultInterval)
		return effectReadyMsg{ok: ok}
	}
}

func (m *Model) renderBackdrop() {
	if !m.effectsReady || m.backdrop == nil {
		return
	}
	frame, err := m.backdrop.Render("bonus-particles", effects.BonusParams(), contentWidth(m.width), backdropHeight)
	if err != nil {
		m.logger.Debug("backdrop render failed", "error", err)
		m.effectsReady = false
		m.backdropFrame = ""
		return
	}
	m.backdropFrame = frame
}

func (m Model) scheduleFrame() tea.Cmd {
	if !m.effectsReady {
		return nil
	}
	d := max(effects.BonusParams().FrameInterval(), minFrameTime)
	gen := m.frameGen
	return tea.Tick(d, func(time.Time) tea.Msg { return effectFrameMsg{gen: gen} })
}

func (m Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(cooldown.Step, func(time.Time) tea.Msg {
		return cooldownTickMsg{gen: gen}
	})
}

func (m *Model) stopCountdown() {
	if m.countdown != nil {
		m.countdown.Stop()
		m.countdown = nil
	}
	m.tickGen++
}

func (m Model) openURL(url string) tea.Cmd {
	if m.opener == nil {
		return nil
	}
	opener := m.opener
	return func() tea.Msg {
		return openedMsg{url: url, err: opener.Open(context.Background(), url)}
	}
}

func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(statusDuration)
}
