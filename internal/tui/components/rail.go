package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RailEntry is one slide thumbnail in the rail.
type RailEntry struct {
	Order    int
	Type     string
	Caption  string
	Active   bool
	Dragging bool
	Overflow bool
}

// Rail renders the ordered list of slides.
type Rail struct {
	entries []RailEntry
}

var (
	railItem     = lipgloss.NewStyle().PaddingLeft(1)
	railActive   = lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(lipgloss.Color("212")).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("99"))
	railDragging = railActive.BorderForeground(lipgloss.Color("226")).Foreground(lipgloss.Color("226"))
	railMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	railWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// NewRail constructs a rail from entries in slide order.
func NewRail(entries []RailEntry) Rail {
	clone := make([]RailEntry, len(entries))
	copy(clone, entries)
	return Rail{entries: clone}
}

// Entries returns the ordered rail entries.
func (r Rail) Entries() []RailEntry {
	clone := make([]RailEntry, len(r.entries))
	copy(clone, r.entries)
	return clone
}

// View renders the rail at most width cells wide.
func (r Rail) View(width int) string {
	if width < 8 {
		width = 8
	}
	lines := make([]string, 0, len(r.entries)*2)
	for _, e := range r.entries {
		head := fmt.Sprintf("%2d %s", e.Order, e.Type)
		if e.Overflow {
			head += " " + railWarning.Render("!")
		}
		caption := truncate(e.Caption, width-4)
		body := head + "\n   " + railMuted.Render(caption)

		switch {
		case e.Dragging:
			lines = append(lines, railDragging.MaxWidth(width).Render(body))
		case e.Active:
			lines = append(lines, railActive.MaxWidth(width).Render(body))
		default:
			lines = append(lines, railItem.MaxWidth(width).Render(body))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
