package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple   = lipgloss.Color("#9A0AAB")
	ColorViolet   = lipgloss.Color("#7D56F4")
	ColorGreen    = lipgloss.Color("#25A065")
	ColorBlue     = lipgloss.Color("#4285F4")
	ColorRed      = lipgloss.Color("#E05252")
	ColorYellow   = lipgloss.Color("#E5C07B")
	ColorGray     = lipgloss.Color("#626262")
	ColorGrayDim  = lipgloss.Color("#404040")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorOffWhite = lipgloss.Color("#D0D0D0")
	ColorCyan     = lipgloss.Color("#56B6C2")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Site card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGrayDim).
			Padding(1, 2)

	SiteNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	RewardStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Underline(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Progress bar styles
var (
	ProgressFillStyle = lipgloss.NewStyle().
				Foreground(ColorPurple)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorGrayDim)
)

// Bonus list styles
var (
	BonusIndexStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorViolet)

	BonusNameStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(16)

	ModalValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	CountdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)
)

// Status icons
const (
	IconComplete = "✓"
	IconPending  = "○"
	IconFilled   = "█"
	IconEmpty    = "░"
)
