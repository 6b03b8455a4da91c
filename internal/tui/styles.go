package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8BC34A")
	danger  = lipgloss.Color("#e53935")
	warning = lipgloss.Color("#FFC107")
	info    = lipgloss.Color("#2196F3")
	muted   = lipgloss.Color("#6b7280")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hudStyle   = lipgloss.NewStyle().Foreground(muted)
	helpStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(danger)
	cueStyle   = lipgloss.NewStyle().Foreground(warning)

	bigStyle  = lipgloss.NewStyle().Bold(true)
	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	loseStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)

	cellOn  = lipgloss.NewStyle().Background(info).Foreground(lipgloss.Color("#ffffff"))
	cellOff = lipgloss.NewStyle().Foreground(muted)
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(info).
	Padding(1, 3).
	Width(48).
	Align(lipgloss.Center)

// inkColors Цвета слов STROOP
var inkColors = map[string]lipgloss.Color{
	"RED":    lipgloss.Color("#e53935"),
	"GREEN":  lipgloss.Color("#43a047"),
	"BLUE":   lipgloss.Color("#1e88e5"),
	"YELLOW": lipgloss.Color("#fdd835"),
}
