package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/editor"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/tui/components"
)

const (
	headerHeight    = 2
	footerHeight    = 3
	railWidth       = 24
	panelWidth      = 38
	railEntryHeight = 2
	minWidth        = 80
	minHeight       = 20
)

// layout places the panes. The preview sits between the rail and the panel,
// inside a one cell border.
type layout struct {
	railW       int
	panelW      int
	previewX    int
	previewY    int
	previewCols int
	previewRows int
}

func (m Model) layout() layout {
	l := layout{railW: railWidth, panelW: panelWidth}
	l.previewX = railWidth + 2
	l.previewY = headerHeight + 1
	l.previewCols = max(10, m.width-railWidth-panelWidth-4)
	l.previewRows = max(5, m.height-headerHeight-footerHeight-2)
	return l
}

func (l layout) inPreview(x, y int) bool {
	return x >= l.previewX && x < l.previewX+l.previewCols && y >= l.previewY && y < l.previewY+l.previewRows
}

// View renders the current model state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: %dx%d", m.width, m.height, minWidth, minHeight)
	}

	switch m.overlay {
	case overlayHelp:
		return m.place(overlayStyle.Render(m.renderHelp()))
	case overlayTemplates:
		return m.place(overlayStyle.Render(m.renderTemplatePicker()))
	case overlayBlockTypes:
		return m.place(overlayStyle.Render(m.renderBlockPicker()))
	case overlayExport:
		return m.place(overlayStyle.Render(m.renderExport()))
	case overlayConfirmQuit:
		return m.place(confirmBoxStyle.Render("Discard unsaved changes?\n\n[y] quit   [n] keep editing"))
	}

	l := m.layout()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRail(l),
		" ",
		m.renderPreviewPane(l),
		" ",
		m.renderPanel(l),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHeader() string {
	title := m.state.Doc.Title
	if title == "" {
		title = "Untitled carousel"
	}
	if m.editing && m.editTarget == titleTarget {
		title = m.input.View()
	}
	header := titleStyle.Render("Carousel · " + title)
	if m.state.Dirty {
		header += dirtyStyle.Render("● unsaved")
	}
	status := mutedStyle.Render(fmt.Sprintf("  slide %d/%d · v%d", m.state.ActiveSlide+1, len(m.state.Doc.Slides), m.state.Version))
	return header + status + "\n"
}

func (m Model) renderRail(l layout) string {
	texts := blockTexts(m.state.Doc)
	entries := make([]components.RailEntry, len(m.state.Doc.Slides))
	for i, s := range m.state.Doc.Slides {
		var words []string
		for b := range s.Blocks {
			words = append(words, texts[[2]int{i, b}]...)
		}
		entries[i] = components.RailEntry{
			Order:    s.Order,
			Type:     string(s.Type),
			Caption:  caption(words),
			Active:   i == m.state.ActiveSlide,
			Dragging: m.state.Drag != nil && m.state.Drag.Kind == document.DragSlide && i == m.state.Drag.Index,
		}
	}
	return lipgloss.NewStyle().Width(l.railW).MaxWidth(l.railW).Render(components.NewRail(entries).View(l.railW))
}

func (m Model) renderPreviewPane(l layout) string {
	scene := m.scene()
	preview := renderPreview(scene, m.state.Viewport, l.previewCols, l.previewRows, m.state.ActiveBlock, m.state.Drag != nil)
	if scene.Overflow {
		preview += "\n" + noticeStyles["warning"].Render("Content overflows the slide")
	}
	st := paneStyle
	if m.focus != focusFields {
		st = focusedPaneStyle
	}
	return st.Width(l.previewCols).Height(l.previewRows).Render(preview)
}

func (m Model) renderPanel(l layout) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Blocks"))
	b.WriteString("\n")
	b.WriteString(m.renderBlockList())
	b.WriteString("\n\n")

	switch m.state.Mode {
	case editor.ModeStyling:
		b.WriteString(sectionStyle.Render("Slide style"))
		b.WriteString("\n")
		b.WriteString(m.renderStyleRows())
	case editor.ModeSelected:
		block, _ := m.state.Block()
		b.WriteString(sectionStyle.Render(string(block.Type)))
		b.WriteString("\n")
		b.WriteString(m.renderFields())
	default:
		b.WriteString(mutedStyle.Render("Select a block to edit it"))
	}

	return lipgloss.NewStyle().Width(l.panelW).MaxWidth(l.panelW).Render(b.String())
}

func (m Model) renderBlockList() string {
	slide := m.state.Slide()
	if len(slide.Blocks) == 0 {
		return mutedStyle.Render("  (empty slide, press b)")
	}
	texts := blockTexts(m.state.Doc)
	lines := make([]string, len(slide.Blocks))
	for i, block := range slide.Blocks {
		label := string(block.Type)
		if render.IsFallback(block.Type) {
			label += "?"
		}
		if snippet := caption(texts[[2]int{m.state.ActiveSlide, i}]); snippet != "" {
			label += "  " + mutedStyle.Render(snippet)
		}
		if block.ID == m.state.ActiveBlock {
			lines[i] = selectedItemStyle.MaxWidth(panelWidth).Render(label)
		} else {
			lines[i] = itemStyle.MaxWidth(panelWidth).Render(label)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFields() string {
	controls := editor.Controls(m.state)
	if len(controls) == 0 {
		return mutedStyle.Render("  This block cannot be edited here")
	}
	lines := make([]string, len(controls))
	for i, c := range controls {
		value := c.Value
		if c.Kind == render.ControlLines {
			value = strings.ReplaceAll(value, "\n", linesSeparator)
		}
		if c.Kind == render.ControlChoice || c.Kind == render.ControlToggle {
			value = "‹ " + value + " ›"
		}
		if m.editing && m.editTarget == c.Key {
			value = m.input.View()
		}
		line := labelStyle.Render(c.Label) + valueStyle.Render(value)
		if m.focus == focusFields && i == m.fieldCursor {
			lines[i] = selectedItemStyle.Render(line)
		} else {
			lines[i] = itemStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStyleRows() string {
	styles := m.state.Slide().Styles
	background := style.ResolveBackground(styles.Background).Label
	if styles.BackgroundImage != nil {
		background = "Image"
	}
	values := []string{background, string(styles.Padding), string(styles.VerticalAlign)}

	lines := make([]string, len(styleRows))
	for i, name := range styleRows {
		line := labelStyle.Render(name) + valueStyle.Render("‹ "+values[i]+" ›")
		if i == m.styleCursor {
			lines[i] = selectedItemStyle.Render(line)
		} else {
			lines[i] = itemStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	notice := ""
	if m.editing && m.editTarget == imageTarget {
		notice = labelStyle.Render("Image file") + m.input.View()
	} else if n := m.state.Notice; n != nil {
		notice = noticeStyles[string(n.Level)].Render(n.Message)
	} else if m.state.Drag != nil {
		notice = noticeStyles["warning"].Render("Moving: ↑/↓ to reorder, enter to drop, esc to cancel")
	}
	return notice + "\n" + m.help.View(m.keys)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return sectionStyle.Render("Keyboard shortcuts") + "\n\n" + h.View(m.keys) + "\n\n" +
		mutedStyle.Render("Mouse: click a slide in the rail, drag blocks in the preview")
}

func (m Model) renderTemplatePicker() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Add slide"))
	b.WriteString("\n\n")
	for i, t := range document.Templates() {
		line := fmt.Sprintf("%-15s %s", t.Label, mutedStyle.Render(t.Description))
		b.WriteString(m.pickerLine(i, line))
	}
	return b.String()
}

func (m Model) renderBlockPicker() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Add block"))
	b.WriteString("\n\n")
	for i, t := range model.BlockTypes() {
		b.WriteString(m.pickerLine(i, string(t)))
	}
	return b.String()
}

func (m Model) pickerLine(i int, line string) string {
	if i == m.pickCursor {
		return selectedItemStyle.Render(line) + "\n"
	}
	return itemStyle.Render(line) + "\n"
}

func (m Model) renderExport() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Export PDF"))
	b.WriteString("\n\n")
	b.WriteString(m.progress.View(m.exportDone))
	b.WriteString("\n\n")
	if m.summary != nil {
		b.WriteString(components.NewSummary(*m.summary).View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter to close"))
	} else {
		b.WriteString(mutedStyle.Render("esc to cancel"))
	}
	return b.String()
}
