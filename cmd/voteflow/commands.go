package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mintnetwork/voteflow/pkg/catalog"
	"github.com/mintnetwork/voteflow/pkg/cooldown"
	"github.com/mintnetwork/voteflow/pkg/effects"
	"github.com/mintnetwork/voteflow/pkg/flow"
	"github.com/mintnetwork/voteflow/pkg/logging"
	"github.com/mintnetwork/voteflow/pkg/store"
	"github.com/mintnetwork/voteflow/pkg/tui"
	"github.com/mintnetwork/voteflow/pkg/web"
)

var errNotConfirmed = errors.New("reset needs --yes when not run from a terminal")

// now is the clock used by status; tests replace it.
var now = time.Now

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "voteflow",
		Short:         "Guided daily voting across Mint Network's vote sites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return runStatus(a, cmd.OutOrStdout(), false)
			}
			return runTUI(a, cmd.OutOrStdout())
		},
	}
	a.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newStatusCmd(a),
		newSitesCmd(a),
		newResetCmd(a),
	)
	return root
}

func newStatusCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's voting progress and any active cooldown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(a, cmd.OutOrStdout(), jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newSitesCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the guided and bonus vote sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(a.cfg.Catalog)
			if err != nil {
				return err
			}
			return printSites(cmd.OutOrStdout(), cat, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all persisted voting state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !stdinIsTerminal() {
					return errNotConfirmed
				}
				confirmed := false
				if err := confirmReset(&confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return nil
				}
			}

			s, err := a.open(true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.votes.Clear(); err != nil {
				return fmt.Errorf("clearing voting state: %w", err)
			}
			s.logger.Info("voting state cleared from the command line")
			fmt.Fprintln(cmd.OutOrStdout(), "Voting state cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirmReset(result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear today's voting progress?").
				Description("Completed sites, the last vote day and the vote timestamp are removed.").
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
}

func runTUI(a *app, out io.Writer) error {
	s, err := a.open(true)
	if err != nil {
		return err
	}
	defer s.Close()

	machine := flow.New(s.catalog, s.votes, flow.WithLogger(logging.WithFields("component", "flow")))
	model := tui.NewModel(machine, tui.Options{
		Prober:       web.NewHTTPProber(web.DefaultProbeTimeout),
		Opener:       web.NewSystemOpener(),
		Backdrop:     effects.NewSparkles(a.cfg.Effects, uint64(time.Now().UnixNano())),
		AdvanceDelay: a.cfg.AdvanceDelay,
		Logger:       logging.WithFields("component", "tui"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if a.cfg.Backend != store.BackendMemory {
		cleanup, err := tui.StartWatcher(a.cfg.Dir, p, logging.WithFields("component", "watcher"))
		if err != nil {
			s.logger.Warn("file watcher failed", "error", err)
		} else {
			defer cleanup()
		}
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok {
		switch fm.Exit() {
		case tui.ExitHub, tui.ExitBack:
			fmt.Fprintf(out, "Return to the hub: %s\n", a.cfg.HubURL)
		}
	}
	return nil
}

type statusReport struct {
	Day            string   `json:"day"`
	Phase          string   `json:"phase"`
	Completed      []string `json:"completed"`
	Total          int      `json:"total"`
	NextSite       string   `json:"next_site,omitempty"`
	LastVoteDay    string   `json:"last_vote_day,omitempty"`
	LastVoteAt     string   `json:"last_vote_at,omitempty"`
	Cooldown       string   `json:"cooldown_remaining,omitempty"`
	EstimatedCoins int      `json:"estimated_coins"`
}

// buildStatus describes what the next TUI run would show without changing
// any persisted state.
func buildStatus(cat catalog.Catalog, snap flow.Snapshot, at time.Time) statusReport {
	r := statusReport{
		Day:         flow.Day(at),
		Total:       cat.Len(),
		Completed:   []string{},
		LastVoteDay: snap.LastVoteDay,
	}
	if snap.HasTimestamp() {
		r.LastVoteAt = snap.VoteTimestamp.Format(time.RFC3339)
	}

	d := flow.Evaluate(snap, at)
	switch d.Kind {
	case flow.DecisionCooldown:
		r.Phase = "cooldown"
		r.Cooldown = cooldown.Format(d.Remaining.Truncate(time.Second))
		return r
	case flow.DecisionReset:
		r.Phase = string(flow.PhaseGuided)
		if cat.Len() > 0 {
			r.NextSite = cat.Guided[0].ID
		} else {
			r.Phase = string(flow.PhaseBonus)
		}
		return r
	}

	for _, site := range cat.Guided {
		if slices.Contains(snap.Completed, site.ID) {
			r.Completed = append(r.Completed, site.ID)
		} else if r.NextSite == "" {
			r.NextSite = site.ID
		}
	}
	r.Phase = string(flow.PhaseGuided)
	if r.NextSite == "" {
		r.Phase = string(flow.PhaseBonus)
	}
	r.EstimatedCoins = catalog.EstimatedCoins(len(r.Completed))
	return r
}

func runStatus(a *app, out io.Writer, jsonOut bool) error {
	s, err := a.open(false)
	if err != nil {
		return err
	}
	defer s.Close()

	at := now()
	snap := s.votes.Load()
	r := buildStatus(s.catalog, snap, at)
	if jsonOut {
		return outputJSON(out, r)
	}

	fmt.Fprintf(out, "Day: %s\n", r.Day)
	if snap.HasTimestamp() {
		fmt.Fprintf(out, "Last vote: %s\n", humanize.RelTime(snap.VoteTimestamp, at, "ago", "from now"))
	}
	switch r.Phase {
	case "cooldown":
		fmt.Fprintf(out, "Cooldown active: %s until the sites reset\n", r.Cooldown)
	case string(flow.PhaseBonus):
		fmt.Fprintf(out, "All %d guided sites processed, bonus sites are open\n", r.Total)
	default:
		fmt.Fprintf(out, "Voted: %d of %d guided sites\n", len(r.Completed), r.Total)
		if r.NextSite != "" {
			fmt.Fprintf(out, "Next: %s\n", r.NextSite)
		}
	}
	if r.EstimatedCoins > 0 {
		fmt.Fprintf(out, "Estimated rewards: %s coins\n", humanize.Comma(int64(r.EstimatedCoins)))
	}
	return nil
}

func printSites(out io.Writer, cat catalog.Catalog, jsonOut bool) error {
	if jsonOut {
		return outputJSON(out, cat)
	}

	fmt.Fprintln(out, "Guided:")
	for i, s := range cat.Guided {
		est := catalog.FormatEstimate(s.EstimatedTime)
		fmt.Fprintf(out, "%2d. %-24s %-8s %s\n", i+1, s.Name, est, s.URL)
	}
	if len(cat.Bonus) > 0 {
		fmt.Fprintln(out, "\nBonus:")
		for _, b := range cat.Bonus {
			fmt.Fprintf(out, "  - %-24s %s\n", b.Name, b.URL)
		}
	}
	return nil
}

func outputJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
