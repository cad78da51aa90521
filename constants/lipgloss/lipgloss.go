package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECB71"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#6CB6FF"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true)
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))

	// BoxStyle frames summaries such as token counts.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6CB6FF")).
			Padding(0, 1)
)
