package components

import (
	"fmt"
	"strings"
	"time"
)

// SummaryData describes a finished or failed export.
type SummaryData struct {
	Path      string
	Pages     int
	Width     int
	Height    int
	Elapsed   time.Duration
	Cancelled bool
	Err       error
}

// Summary renders a textual export summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	switch {
	case s.data.Cancelled:
		lines = append(lines, "✗ Export cancelled")
	case s.data.Err != nil:
		lines = append(lines, "✗ Export failed")
		lines = append(lines, "  "+s.data.Err.Error())
	default:
		lines = append(lines, fmt.Sprintf("✓ Exported %d page(s)", s.data.Pages))
		if s.data.Width > 0 && s.data.Height > 0 {
			lines = append(lines, fmt.Sprintf("  Page size: %dx%d pt", s.data.Width, s.data.Height))
		}
		if s.data.Path != "" {
			lines = append(lines, "  Saved to: "+s.data.Path)
		}
		if s.data.Elapsed > 0 {
			lines = append(lines, "  Took: "+s.data.Elapsed.Round(time.Millisecond).String())
		}
	}
	return strings.Join(lines, "\n")
}
