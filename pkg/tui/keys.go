package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Voted   key.Binding
	Skip    key.Binding
	Open    key.Binding
	Proceed key.Binding
	Back    key.Binding
	Finish  key.Binding
	Bonus   key.Binding
	Hub     key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Voted: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "I voted"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Proceed: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "proceed anyway"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b", "go back"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finished voting"),
		),
		Bonus: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "open bonus site"),
		),
		Hub: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "return to hub"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset voting state"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text for a screen.
func (k KeyMap) ShortHelp(s screen) string {
	switch s {
	case screenCooldown:
		return "p proceed anyway  b go back  q quit"
	case screenGuided:
		return "v I voted  s skip  o open  ? help  q quit"
	case screenBonus:
		return "1-9 open site  f finished voting  ? help  q quit"
	case screenComplete:
		return "enter return to hub  q quit"
	default:
		return "q quit"
	}
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"v", "Mark the current site voted"},
		{"s", "Skip the current site"},
		{"o", "Open the current site in the browser"},
		{"p", "Proceed anyway (cooldown)"},
		{"b/esc", "Go back to the hub (cooldown)"},
		{"1-9", "Open a bonus site"},
		{"f", "Finished voting (bonus)"},
		{"enter", "Return to the hub (complete)"},
		{"ctrl+r", "Reset all voting state"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
