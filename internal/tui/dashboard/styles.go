package dashboard

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor    = lipgloss.Color("99")  // Purple
	warningColor    = lipgloss.Color("226") // Yellow
	errorColor      = lipgloss.Color("196") // Red
	mutedColor      = lipgloss.Color("245") // Gray
	accentColor     = lipgloss.Color("212") // Pink
	backgroundColor = lipgloss.Color("235") // Dark gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			PaddingBottom(1).
			MarginBottom(1)

	// Document item styles
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	sectionStyle = lipgloss.NewStyle().Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			PaddingTop(1).
			MarginTop(1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("52")). // Dark red background
				Bold(true).
				Padding(1, 2).
				MarginBottom(1).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(errorColor)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Background(backgroundColor).
			Padding(1, 2).
			Width(50).
			Align(lipgloss.Center)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Align(lipgloss.Center).
			PaddingTop(4).
			PaddingBottom(4)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// ApplyMaxWidth applies a maximum width to all relevant styles
func ApplyMaxWidth(width int) {
	itemStyle = itemStyle.MaxWidth(width - 4)
	selectedItemStyle = selectedItemStyle.MaxWidth(width - 4)
	headerStyle = headerStyle.Width(width - 2)
	footerStyle = footerStyle.Width(width - 2)
}
