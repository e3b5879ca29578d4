package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the semantic colors used across the console.
type palette struct {
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color
}

var theme = palette{
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#DFDBDD"),
	Primary: lipgloss.Color("#6B50FF"),
	Success: lipgloss.Color("#00FFB2"),
	Warning: lipgloss.Color("#FFD300"),
	Danger:  lipgloss.Color("#E94090"),
	Info:    lipgloss.Color("#00CED1"),
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	tabStyle       = lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Underline(true).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Foreground(theme.Muted).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(theme.Muted)
	labelStyle     = lipgloss.NewStyle().Foreground(theme.Muted).Width(14)
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	helpStyle      = lipgloss.NewStyle().Foreground(theme.Muted)

	messageStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
		"warning": lipgloss.NewStyle().Foreground(theme.Warning).Bold(true),
		"danger":  lipgloss.NewStyle().Foreground(theme.Danger).Bold(true),
		"info":    lipgloss.NewStyle().Foreground(theme.Info),
	}
)
