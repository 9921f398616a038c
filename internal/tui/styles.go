package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	countStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	completedBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("22")).Background(lipgloss.Color("157")).Padding(0, 1)
	pendingBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("18")).Background(lipgloss.Color("153")).Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("9")).
			PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("63"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
)
