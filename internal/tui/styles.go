package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1)

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	checkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	doneTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Padding(1, 2)
	toastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	rejectedInputStyle = inputStyle.BorderForeground(lipgloss.Color("196"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 2)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding

	// confettiPalette mirrors a bright party palette.
	confettiPalette = []lipgloss.Color{"196", "46", "21", "226", "201", "51"}
)
