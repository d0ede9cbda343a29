package player

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93C5FD")).
			Background(lipgloss.Color("#1F2937")).
			Bold(true).
			Padding(0, 1)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Align(lipgloss.Center).
			Padding(1, 2)

	listStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#374151"))

	lineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	currentLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)
