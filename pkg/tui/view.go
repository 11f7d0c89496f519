package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mintnetwork/voteflow/pkg/catalog"
	"github.com/mintnetwork/voteflow/pkg/cooldown"
	"github.com/mintnetwork/voteflow/pkg/flow"
)

const minWidth = 40
const minHeight = 10
const maxContentWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	w := max(m.width, minWidth)
	h := max(m.height, minHeight)

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	scr := m.currentScreen()
	if scr == screenCooldown {
		return placeOverlay(m.renderCooldownModal(), w, h)
	}

	cw := contentWidth(w)
	var b strings.Builder

	b.WriteString(m.renderHeader(scr, cw))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", cw))
	b.WriteString("\n")

	switch scr {
	case screenGuided:
		b.WriteString(m.renderGuided(cw))
	case screenBonus:
		b.WriteString(m.renderBonus(cw))
	case screenComplete:
		b.WriteString(m.renderComplete(cw))
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", cw))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.keys.ShortHelp(scr)))

	return b.String()
}

func (m Model) renderHeader(scr screen, width int) string {
	var title, stats string
	switch scr {
	case screenGuided:
		title = "Guided Voting"
		if g, ok := m.machine.State().(flow.Guided); ok {
			stats = fmt.Sprintf("site %d of %d", g.Cursor+1, m.machine.Catalog().Len())
		}
	case screenBonus:
		title = "Bonus Voting Sites"
		stats = fmt.Sprintf("%d guided votes", len(m.machine.Completed()))
	case screenComplete:
		title = "Voting Complete"
	}
	left := HeaderStyle.Render("Mint Network · " + title)
	right := HeaderCountStyle.Render(stats)

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusStyle.Render(m.statusMsg) + "  "
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(status)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + status + right
}

func (m Model) renderGuided(width int) string {
	g, ok := m.machine.State().(flow.Guided)
	site, hasSite := m.machine.CurrentSite()
	if !ok || !hasSite {
		return FooterStyle.Render("Preparing voting sites…")
	}

	var b strings.Builder
	b.WriteString(renderProgress(m.machine.Progress(), width))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(SiteNameStyle.Render(site.Name))
	card.WriteString("\n\n")
	if site.Rewards != "" {
		card.WriteString(ModalLabelStyle.Render("Rewards"))
		card.WriteString(RewardStyle.Render(site.Rewards))
		card.WriteString("\n")
	}
	if est := catalog.FormatEstimate(site.EstimatedTime); est != "" {
		card.WriteString(ModalLabelStyle.Render("Estimated time"))
		card.WriteString(MetaStyle.Render(est))
		card.WriteString("\n")
	}
	card.WriteString(ModalLabelStyle.Render("Vote at"))
	card.WriteString(hyperlink(site.URL, LinkStyle.Render(site.URL)))
	card.WriteString("\n\n")

	switch {
	case g.Processing:
		card.WriteString(DoneStyle.Render(IconComplete + " Marked voted, moving on…"))
	case g.Loading:
		card.WriteString(m.spinner.View() + MetaStyle.Render(" Loading site…"))
	case m.machine.IsCompleted(site.ID):
		card.WriteString(DoneStyle.Render(IconComplete + " Already voted today"))
	default:
		card.WriteString(MetaStyle.Render("Vote on the site, then press v. Press s to skip it."))
	}

	b.WriteString(CardStyle.Width(width - 2).Render(card.String()))
	b.WriteString("\n")
	b.WriteString(m.renderSiteList())
	return b.String()
}

// renderSiteList shows every guided site with its state for today.
func (m Model) renderSiteList() string {
	cat := m.machine.Catalog()
	cursor := -1
	if g, ok := m.machine.State().(flow.Guided); ok {
		cursor = g.Cursor
	}

	var b strings.Builder
	for i, s := range cat.Guided {
		icon := FooterStyle.Render(IconPending)
		name := FooterStyle.Render(s.Name)
		if m.machine.IsCompleted(s.ID) {
			icon = DoneStyle.Render(IconComplete)
		}
		if i == cursor {
			name = SiteNameStyle.Render(s.Name)
		}
		b.WriteString(" " + icon + " " + name + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderProgress(p flow.Progress, width int) string {
	label := fmt.Sprintf("  %d of %d processed (%.0f%%)", p.Processed, p.Total, p.Percent())
	barWidth := max(width-lipgloss.Width(label), 10)
	filled := int(p.Percent() / 100 * float64(barWidth))
	filled = min(max(filled, 0), barWidth)

	return ProgressFillStyle.Render(strings.Repeat(IconFilled, filled)) +
		ProgressEmptyStyle.Render(strings.Repeat(IconEmpty, barWidth-filled)) +
		HeaderCountStyle.Render(label)
}

func (m Model) renderBonus(width int) string {
	var b strings.Builder
	if m.backdropFrame != "" {
		b.WriteString(m.backdropFrame)
		b.WriteString("\n")
	}

	count := len(m.machine.Completed())
	b.WriteString(MetaStyle.Render(fmt.Sprintf(
		"Great job completing %d guided votes! Here are some bonus sites for extra rewards.", count)))
	b.WriteString("\n\n")

	bonus := m.machine.Catalog().Bonus
	if len(bonus) == 0 {
		b.WriteString(FooterStyle.Render("No bonus sites today."))
	}
	for i, s := range bonus {
		idx := "   "
		if i < 9 {
			idx = fmt.Sprintf("[%d]", i+1)
		}
		b.WriteString(BonusIndexStyle.Render(idx))
		b.WriteString(" ")
		b.WriteString(BonusNameStyle.Render(s.Name))
		if s.Rewards != "" {
			b.WriteString("  ")
			b.WriteString(RewardStyle.Render(s.Rewards))
		}
		b.WriteString("\n    ")
		b.WriteString(hyperlink(s.URL, LinkStyle.Render(s.URL)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderComplete(width int) string {
	md := completeMarkdown(len(m.machine.Completed()))
	if m.glamourRenderer != nil && m.glamourWidth == width {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return md
}

func completeMarkdown(votes int) string {
	var md strings.Builder
	md.WriteString("# Thanks for voting!\n\n")
	fmt.Fprintf(&md, "You completed **%d** guided votes today.\n\n", votes)
	fmt.Fprintf(&md, "Estimated rewards: **%s coins**\n\n", humanize.Comma(int64(catalog.EstimatedCoins(votes))))
	md.WriteString("Come back tomorrow to vote again. Press **enter** to return to the hub.\n")
	return md.String()
}

func (m Model) renderCooldownModal() string {
	remaining := time.Duration(0)
	if m.countdown != nil {
		remaining = m.countdown.Remaining()
	} else if cd, ok := m.machine.Cooldown(); ok {
		remaining = cd.Remaining
	}
	elapsed := cooldown.Window - remaining

	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Voting cooldown active"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "You last voted %s ago. Voting sites reset\n24 hours after your last vote.\n\n",
		cooldown.Format(elapsed.Truncate(time.Minute)))
	b.WriteString(ModalLabelStyle.Render("Time remaining"))
	b.WriteString(CountdownStyle.Render(cooldown.Format(remaining)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[p]") + " Proceed anyway  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[b]") + " Go back")

	return ModalStyle.Render(b.String())
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(10)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

// hyperlink wraps text in an OSC 8 terminal hyperlink so it's clickable.
func hyperlink(url, text string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

func contentWidth(width int) int {
	return min(max(width, minWidth), maxContentWidth)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := max((height-len(modalLines))/2, 0)
	leftPadding := max((width-lipgloss.Width(modalLines[0]))/2, 0)

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
