package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders export completion as a page counter and a bar.
type Progress struct {
	bar   progress.Model
	total int
	label string
}

// NewProgress creates a progress component for total pages.
func NewProgress(total int, label string) Progress {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	if label == "" {
		label = "Exporting"
	}
	return Progress{bar: bar, total: total, label: label}
}

// Total is the number of pages the bar counts towards.
func (p Progress) Total() int {
	return p.total
}

// Ratio is the completed fraction, capped at 1.
func (p Progress) Ratio(completed int) float64 {
	if p.total <= 0 {
		return 0
	}
	return math.Min(1.0, float64(completed)/float64(p.total))
}

// View renders the bar for the provided page count.
func (p Progress) View(completed int) string {
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s %d/%d", p.label, completed, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(p.Ratio(completed)))
}
