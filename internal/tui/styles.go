package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	dirtyStyle = lipgloss.NewStyle().Foreground(warningColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(mutedColor)

	focusedPaneStyle = paneStyle.BorderForeground(primaryColor)

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	noticeStyles = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(successColor),
		"warning": lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		"error":   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}

	overlayStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3)

	confirmBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(warningColor).
			Padding(1, 3).
			Align(lipgloss.Center)

	selectionColor = lipgloss.Color("#6d28d9")
	draggingColor  = lipgloss.Color("#a16207")
)
