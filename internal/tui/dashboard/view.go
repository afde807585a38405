package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

// itemHeight is the number of lines one document takes in the list.
const itemHeight = 3

// View renders the current model state
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderConfirmView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderListView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(m.renderErrorBanner())
		content.WriteString("\n")
	}

	content.WriteString(m.renderDocumentList())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	icon := "🎠 "
	if !m.useUnicode {
		icon = ""
	}
	title := titleStyle.Render(icon + "Carousel Library")

	summary := fmt.Sprintf("%d document(s)", len(m.documents))
	if m.loading {
		summary += "  " + m.spinner.View() + " Loading"
	}

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, summary))
}

func (m Model) renderDocumentList() string {
	if len(m.documents) == 0 {
		if m.loading {
			return ""
		}
		return m.renderEmptyState()
	}

	start := m.scrollOffset
	end := min(len(m.documents), start+m.visibleItems())

	var items []string
	if start > 0 {
		items = append(items, mutedStyle.Render("▲ More above"))
	}
	for i := start; i < end; i++ {
		items = append(items, m.renderDocumentItem(i, i == m.cursor))
	}
	if end < len(m.documents) {
		items = append(items, mutedStyle.Render("▼ More below"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m Model) renderDocumentItem(index int, selected bool) string {
	d := m.documents[index]

	title := d.Title
	if title == "" {
		title = "Untitled carousel"
	}

	line1 := fmt.Sprintf("%d. %s", index+1, lipgloss.NewStyle().Bold(true).Render(title))
	line2 := fmt.Sprintf("   %d slide(s)  %s", d.Slides, mutedStyle.Render(d.ID))
	line3 := "   " + mutedStyle.Render("Updated: "+FormatLastRun(d.UpdatedAt))

	content := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
	if selected {
		return selectedItemStyle.Render(content)
	}
	return itemStyle.Render(content)
}

func (m Model) renderEmptyState() string {
	message := `No carousels saved yet.

To start one, use:
  carousel new <title>
or press n`

	return emptyStateStyle.Render(message)
}

func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓: navigate",
		"enter: details",
		"o: open",
		"n: new",
		"d: delete",
		"r: refresh",
		"?: help",
	}
	if m.showError {
		hints = append(hints, "x: dismiss error")
	}
	hints = append(hints, "q: quit")

	return footerStyle.Render(strings.Join(hints, "  •  "))
}

func (m Model) renderErrorBanner() string {
	return errorBannerStyle.Render(m.errorMsg)
}

// FormatLastRun formats a timestamp to a human-readable relative time
func FormatLastRun(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

func (m Model) renderDetailView() string {
	if m.detail == nil {
		return "Document not found"
	}
	doc := m.detail

	var content strings.Builder

	title := doc.Title
	if title == "" {
		title = "Untitled carousel"
	}
	icon := "📋 "
	if !m.useUnicode {
		icon = ""
	}
	content.WriteString(titleStyle.Render(icon + title))
	content.WriteString("\n\n")

	if m.showError {
		content.WriteString(m.renderErrorBanner())
		content.WriteString("\n\n")
	}

	content.WriteString(sectionStyle.Render("Metadata"))
	content.WriteString("\n")
	fmt.Fprintf(&content, "  ID: %s\n", m.selectedID)
	fmt.Fprintf(&content, "  Slides: %d\n", len(doc.Slides))
	fmt.Fprintf(&content, "  Page size: %dx%d\n", doc.Settings.Width, doc.Settings.Height)
	if sel, ok := m.summary(m.selectedID); ok {
		fmt.Fprintf(&content, "  Updated: %s\n", FormatLastRun(sel.UpdatedAt))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Slides"))
	content.WriteString("\n")
	content.WriteString(renderSlides(*doc))
	content.WriteString("\n")

	if len(m.history) > 0 {
		content.WriteString(sectionStyle.Render("History"))
		content.WriteString("\n")
		for _, rev := range m.history {
			hash := rev.Hash
			if len(hash) > 7 {
				hash = hash[:7]
			}
			fmt.Fprintf(&content, "  %s  %s  %s\n", hash, strings.TrimSpace(rev.Message), mutedStyle.Render(FormatLastRun(rev.When)))
		}
		content.WriteString("\n")
	}

	if m.loading {
		content.WriteString(lipgloss.NewStyle().Foreground(primaryColor).Render(m.spinner.View() + " Loading..."))
		content.WriteString("\n")
	}

	hints := []string{
		"o: open",
		"d: delete",
		"r: reload",
		"esc: back",
		"?: help",
		"q: quit",
	}
	footer := footerStyle.Render(strings.Join(hints, "  •  "))

	contentHeight := m.height - 4
	lines := strings.Split(content.String(), "\n")
	if len(lines) > contentHeight {
		lines = lines[:max(0, contentHeight)]
		content.Reset()
		content.WriteString(strings.Join(lines, "\n"))
		content.WriteString("\n")
		content.WriteString(mutedStyle.Render("... (content truncated)"))
		content.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, content.String(), "", footer)
}

// renderSlides lists each slide with the first text it carries.
func renderSlides(doc model.Carousel) string {
	first := make(map[int]string)
	for _, e := range translate.ExtractTexts(doc) {
		p, err := translate.ParsePath(e.Path)
		if err != nil {
			continue
		}
		if _, ok := first[p.Slide]; !ok {
			first[p.Slide] = e.Value
		}
	}

	var b strings.Builder
	for i, s := range doc.Slides {
		line := fmt.Sprintf("  %2d  %-11s %d block(s)", i+1, s.Type, len(s.Blocks))
		if text := first[i]; text != "" {
			if r := []rune(text); len(r) > 40 {
				text = string(r[:39]) + "…"
			}
			line += "  " + mutedStyle.Render(text)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelpView() string {
	title := titleStyle.Render("Carousel Library Help")

	helpContent := `
List View:
  ↑/↓, j/k      Navigate up/down
  1-9           Jump to document by number
  Enter         View document details
  o, e          Open document in the editor
  n             Start a new document
  d             Delete document (with confirmation)
  r             Reload the library
  ?             Toggle this help
  q, Ctrl+C     Quit

Detail View:
  o, Enter      Open document in the editor
  d             Delete document (with confirmation)
  r             Reload this document
  Esc           Back to list
`

	helpText := lipgloss.NewStyle().Padding(1, 2).Render(helpContent)
	footer := footerStyle.Render("Press ? or Esc to close")

	return lipgloss.JoinVertical(lipgloss.Left, title, helpText, footer)
}

func (m Model) renderConfirmView() string {
	message := m.confirmMessage
	if message == "" {
		message = "Confirm action?"
	}

	dialog := confirmBoxStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			message,
			"",
			mutedStyle.Render("y = Yes    n = No    Esc = Cancel"),
		),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
