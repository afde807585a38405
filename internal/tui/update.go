package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/editor"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/tui/components"
)

// linesSeparator stands in for newlines while a multi-line field is edited
// in the single line input.
const linesSeparator = " | "

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		l := m.layout()
		m.state = editor.Resize(m.state, float64(l.previewCols), float64(l.previewRows*2))
		m.input.Width = l.panelW - 6
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case SavedMsg:
		m.docID = msg.ID
		m.state = editor.Info(editor.MarkSaved(m.state), "Saved "+msg.ID)
		m = m.prune()
		m.opts.Log.WithFields(map[string]any{"id": msg.ID, "version": m.state.Version}).Info("document saved")
		return m, nil

	case SaveErrorMsg:
		m.state = withError(m.state, fmt.Sprintf("Save failed: %v", msg.Err))
		m.opts.Log.Error(msg.Err, "save failed")
		return m, nil

	case ExportProgressMsg:
		m.exportDone = msg.Progress.Current
		return m, waitForExport(m.exportCh)

	case ExportDoneMsg:
		m.exporting = false
		m.exportCh = nil
		if m.exportCancel != nil {
			m.exportCancel()
			m.exportCancel = nil
		}
		if msg.Err == nil {
			m.exportDone = m.progress.Total()
		}
		m.summary = &components.SummaryData{
			Path:      msg.Path,
			Pages:     msg.Pages,
			Width:     msg.Width,
			Height:    msg.Height,
			Elapsed:   msg.Elapsed,
			Cancelled: msg.Canceled,
			Err:       msg.Err,
		}
		return m, nil

	case ClipboardMsg:
		return m.handleClipboard(msg), nil

	case ImageReadMsg:
		return m.importImage(msg), nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC && !m.editing {
		m.quitting = true
		return m, tea.Quit
	}
	if m.editing {
		return m.handleInputKey(msg)
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.overlay = overlayNone
		}
		return m, nil
	case overlayTemplates, overlayBlockTypes:
		return m.handlePickerKey(msg), nil
	case overlayExport:
		return m.handleExportKey(msg), nil
	case overlayConfirmQuit:
		switch msg.String() {
		case "y", "Y":
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.overlay = overlayNone
		}
		return m, nil
	}

	if m.state.Drag != nil {
		return m.handleDragKey(msg), nil
	}
	if m.state.Mode == editor.ModeStyling {
		if next, handled := m.handleStyleKey(msg); handled {
			return next, nil
		}
	}

	m.state = editor.ClearNotice(m.state)

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.state.Dirty {
			m.overlay = overlayConfirmQuit
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp

	case key.Matches(msg, m.keys.Focus):
		m = m.cycleFocus()

	case key.Matches(msg, m.keys.Up):
		m = m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m = m.move(1)

	case key.Matches(msg, m.keys.Left):
		m = m.cycleField(-1)

	case key.Matches(msg, m.keys.Right):
		m = m.cycleField(1)

	case key.Matches(msg, m.keys.Enter):
		return m.activate()

	case key.Matches(msg, m.keys.Back):
		m = m.back()

	case key.Matches(msg, m.keys.Style):
		if m.state.Mode == editor.ModeSelected {
			m.state = editor.OpenStyling(m.state)
			m.styleCursor = 0
			m.focus = focusFields
		} else {
			m.state = editor.Info(m.state, "Select a block to open the style panel")
		}

	case key.Matches(msg, m.keys.AddSlide):
		m.overlay = overlayTemplates
		m.pickCursor = 0

	case key.Matches(msg, m.keys.AddBlock):
		m.overlay = overlayBlockTypes
		m.pickCursor = 0

	case key.Matches(msg, m.keys.Delete):
		m = m.deleteFocused()

	case key.Matches(msg, m.keys.Duplicate):
		m = m.duplicateFocused()

	case key.Matches(msg, m.keys.Grab):
		m = m.grab()

	case key.Matches(msg, m.keys.Undo):
		m.state = editor.Undo(m.state)

	case key.Matches(msg, m.keys.Redo):
		m.state = editor.Redo(m.state)

	case key.Matches(msg, m.keys.Title):
		m = m.startEditing(titleTarget, m.state.Doc.Title)

	case key.Matches(msg, m.keys.Image):
		m = m.startImport()

	case key.Matches(msg, m.keys.Unset):
		m = m.clearBackground()

	case key.Matches(msg, m.keys.Save):
		return m, saveCmd(m.opts.Store, m.opts.Path, m.state.Doc)

	case key.Matches(msg, m.keys.Export):
		return m.startExport()

	case key.Matches(msg, m.keys.Yank):
		return m.yank()

	case key.Matches(msg, m.keys.Paste):
		if _, ok := m.currentControl(); !ok {
			m.state = editor.Info(m.state, "Select a field to paste into")
			return m, nil
		}
		return m, pasteCmd(m.opts.Clipboard)
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.input.Value()
		target := m.editTarget
		m = m.stopEditing()
		if target == titleTarget {
			m.state = editor.SetTitle(m.state, value)
			return m, nil
		}
		if target == imageTarget {
			return m, readImageCmd(value, m.importBlock)
		}
		if c, ok := m.controlByKey(target); ok && c.Kind == render.ControlLines {
			value = strings.ReplaceAll(value, linesSeparator, "\n")
		}
		m.state = editor.EditField(m.state, target, value)
		return m, nil
	case tea.KeyEsc:
		return m.stopEditing(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing(target, value string) Model {
	m.editing = true
	m.editTarget = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) stopEditing() Model {
	m.editing = false
	m.editTarget = ""
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m Model) handlePickerKey(msg tea.KeyMsg) Model {
	n := len(document.Templates())
	if m.overlay == overlayBlockTypes {
		n = len(model.BlockTypes())
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pickCursor > 0 {
			m.pickCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickCursor < n-1 {
			m.pickCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.overlay == overlayTemplates {
			m.state = editor.AddSlide(m.state, document.Templates()[m.pickCursor].Type)
			m.focus = focusSlides
		} else {
			m.state = editor.AddBlock(m.state, model.BlockTypes()[m.pickCursor])
			m.focus = focusBlocks
			m.fieldCursor = 0
		}
		m.overlay = overlayNone
	case key.Matches(msg, m.keys.Back, m.keys.Quit):
		m.overlay = overlayNone
	}
	return m
}

func (m Model) handleExportKey(msg tea.KeyMsg) Model {
	if m.exporting {
		if key.Matches(msg, m.keys.Back) && m.exportCancel != nil {
			m.exportCancel()
		}
		return m
	}
	if key.Matches(msg, m.keys.Back, m.keys.Enter, m.keys.Quit) {
		m.overlay = overlayNone
		m.summary = nil
	}
	return m
}

func (m Model) handleDragKey(msg tea.KeyMsg) Model {
	d := m.state.Drag
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state = editor.DragOver(m.state, d.Index-1)
	case key.Matches(msg, m.keys.Down):
		m.state = editor.DragOver(m.state, d.Index+1)
	case key.Matches(msg, m.keys.Grab, m.keys.Enter):
		m.state = editor.EndDrag(m.state)
	case key.Matches(msg, m.keys.Back):
		m.state = editor.CancelDrag(m.state)
	}
	return m
}

// styleRows are the slide level settings shown in the style panel.
var styleRows = []string{"Background", "Padding", "Vertical align"}

var (
	paddingOptions = []model.PaddingPreset{model.PaddingCompact, model.PaddingNormal, model.PaddingSpacious}
	valignOptions  = []model.VerticalAlign{model.AlignTop, model.AlignCenter, model.AlignBottom}
)

func (m Model) handleStyleKey(msg tea.KeyMsg) (Model, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.styleCursor > 0 {
			m.styleCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.styleCursor < len(styleRows)-1 {
			m.styleCursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.state = m.cycleStyle(-1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		m.state = m.cycleStyle(1)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Style):
		m.state = editor.CloseStyling(m.state)
		m.focus = focusBlocks
	default:
		return m, false
	}
	return m, true
}

func (m Model) cycleStyle(delta int) editor.State {
	styles := m.state.Slide().Styles
	switch m.styleCursor {
	case 0:
		keys := style.Keys()
		return editor.SetBackground(m.state, keys[wrapIndex(indexOf(keys, styles.Background), delta, len(keys))])
	case 1:
		return editor.SetPadding(m.state, paddingOptions[wrapIndex(indexOf(paddingOptions, styles.Padding), delta, len(paddingOptions))])
	default:
		return editor.SetVerticalAlign(m.state, valignOptions[wrapIndex(indexOf(valignOptions, styles.VerticalAlign), delta, len(valignOptions))])
	}
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}

// wrapIndex steps i by delta around n items. An unknown position (-1)
// steps to the first or last item.
func wrapIndex(i, delta, n int) int {
	if i < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return ((i+delta)%n + n) % n
}

func (m Model) cycleFocus() Model {
	switch m.focus {
	case focusSlides:
		m.focus = focusBlocks
		if m.state.ActiveBlock == "" {
			m.state = editor.SelectBlockAt(m.state, 0)
		}
	case focusBlocks:
		if m.state.ActiveBlock != "" && len(editor.Controls(m.state)) > 0 {
			m.focus = focusFields
			m.fieldCursor = 0
		} else {
			m.focus = focusSlides
		}
	default:
		m.focus = focusSlides
	}
	return m
}

func (m Model) move(delta int) Model {
	switch m.focus {
	case focusSlides:
		m.state = editor.SelectSlide(m.state, m.state.ActiveSlide+delta)
		m.fieldCursor = 0
	case focusBlocks:
		idx := m.state.ActiveBlockIndex()
		if idx < 0 {
			idx = 0
		} else {
			idx += delta
		}
		m.state = editor.SelectBlockAt(m.state, idx)
		m.fieldCursor = 0
	case focusFields:
		n := len(editor.Controls(m.state))
		m.fieldCursor = max(0, min(n-1, m.fieldCursor+delta))
	}
	return m
}

// cycleField steps choice and toggle fields through their options.
func (m Model) cycleField(delta int) Model {
	if m.focus != focusFields {
		return m
	}
	c, ok := m.currentControl()
	if !ok || len(c.Options) == 0 {
		return m
	}
	next := c.Options[wrapIndex(indexOf(c.Options, c.Value), delta, len(c.Options))]
	m.state = editor.EditField(m.state, c.Key, next)
	return m
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSlides:
		m.focus = focusBlocks
		m.state = editor.SelectBlockAt(m.state, 0)
	case focusBlocks:
		if m.state.ActiveBlock == "" {
			m.state = editor.SelectBlockAt(m.state, 0)
			break
		}
		if len(editor.Controls(m.state)) > 0 {
			m.focus = focusFields
			m.fieldCursor = 0
		}
	case focusFields:
		c, ok := m.currentControl()
		if !ok {
			break
		}
		switch c.Kind {
		case render.ControlChoice, render.ControlToggle:
			m = m.cycleField(1)
		case render.ControlLines:
			m = m.startEditing(c.Key, strings.ReplaceAll(c.Value, "\n", linesSeparator))
			return m, textinput.Blink
		default:
			m = m.startEditing(c.Key, c.Value)
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) back() Model {
	switch m.focus {
	case focusFields:
		m.focus = focusBlocks
	case focusBlocks:
		m.state = editor.Deselect(m.state)
		m.focus = focusSlides
	default:
		m.state = editor.Deselect(m.state)
	}
	return m
}

func (m Model) deleteFocused() Model {
	if m.focus == focusSlides {
		m.state = editor.DeleteSlide(m.state, m.state.ActiveSlide)
		return m
	}
	if m.state.ActiveBlock == "" {
		return m
	}
	idx := m.state.ActiveBlockIndex()
	m.state = editor.DeleteBlock(m.state, m.state.ActiveBlock)
	if blocks := m.state.Slide().Blocks; len(blocks) > 0 {
		m.state = editor.SelectBlockAt(m.state, min(idx, len(blocks)-1))
	} else {
		m.focus = focusSlides
	}
	m.fieldCursor = 0
	return m
}

func (m Model) duplicateFocused() Model {
	if m.focus == focusSlides || m.state.ActiveBlock == "" {
		m.state = editor.DuplicateSlide(m.state, m.state.ActiveSlide)
		return m
	}
	m.state = editor.DuplicateBlock(m.state, m.state.ActiveBlock)
	return m
}

func (m Model) grab() Model {
	if m.focus == focusSlides {
		m.state = editor.BeginSlideDrag(m.state, m.state.ActiveSlide)
		return m
	}
	if idx := m.state.ActiveBlockIndex(); idx >= 0 {
		m.state = editor.BeginBlockDrag(m.state, idx)
	}
	return m
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.opts.Exporter == nil {
		m.state = editor.Info(m.state, "Export is not available")
		return m, nil
	}
	if m.exporting {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.exportCancel = cancel
	m.exporting = true
	m.exportDone = 0
	m.summary = nil
	m.overlay = overlayExport
	m.progress = components.NewProgress(len(m.state.Doc.Slides), "Exporting")
	m.exportCh = startExport(ctx, m.opts.Exporter, m.state.Doc, m.opts.Export, m.opts.OutDir)
	return m, waitForExport(m.exportCh)
}

func (m Model) yank() (tea.Model, tea.Cmd) {
	idx := m.state.ActiveBlockIndex()
	if idx < 0 {
		m.state = editor.Info(m.state, "Select a block to copy its text")
		return m, nil
	}
	texts := blockTexts(m.state.Doc)[[2]int{m.state.ActiveSlide, idx}]
	if len(texts) == 0 {
		m.state = editor.Info(m.state, "This block has no text")
		return m, nil
	}
	return m, yankCmd(m.opts.Clipboard, strings.Join(texts, "\n"))
}

func (m Model) handleClipboard(msg ClipboardMsg) Model {
	if msg.Err != nil {
		m.state = withError(m.state, fmt.Sprintf("Clipboard: %v", msg.Err))
		return m
	}
	if !msg.Paste {
		m.state = editor.Info(m.state, fmt.Sprintf("Copied %d characters", len([]rune(msg.Text))))
		return m
	}
	c, ok := m.currentControl()
	if !ok {
		return m
	}
	value := msg.Text
	if c.Kind != render.ControlLines {
		value = strings.Join(strings.Fields(value), " ")
	}
	m.state = editor.EditField(m.state, c.Key, value)
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	l := m.layout()
	scene := m.scene()
	dx := float64(msg.X-l.previewX) + 0.5
	dy := float64(msg.Y-l.previewY)*2 + 1

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.overlay != overlayNone || m.editing {
			return m
		}
		if msg.X < l.railW {
			if idx := (msg.Y - headerHeight) / railEntryHeight; msg.Y >= headerHeight && idx < len(m.state.Doc.Slides) {
				m.state = editor.BeginSlideDrag(m.state, idx)
				m.focus = focusSlides
				m.mouseDragging = true
			}
			return m
		}
		if !l.inPreview(msg.X, msg.Y) {
			return m
		}
		lx, ly := m.state.Viewport.ToLogical(dx, dy)
		id := scene.HitTest(lx, ly)
		if id == "" {
			m.state = editor.Deselect(m.state)
			m.focus = focusSlides
			return m
		}
		m.state = editor.SelectBlock(m.state, id)
		m.state = editor.BeginBlockDrag(m.state, m.state.ActiveBlockIndex())
		m.focus = focusBlocks
		m.fieldCursor = 0
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging || m.state.Drag == nil {
			return m
		}
		if m.state.Drag.Kind == document.DragSlide {
			slot := (msg.Y - headerHeight) / railEntryHeight
			m.state = editor.DragOver(m.state, min(max(slot, 0), len(m.state.Doc.Slides)-1))
		} else {
			m.state = editor.DragBlockAt(m.state, scene, dy)
		}

	case tea.MouseActionRelease:
		if m.mouseDragging {
			m.state = editor.EndDrag(m.state)
			m.mouseDragging = false
		}
	}
	return m
}

func (m Model) currentControl() (render.Control, bool) {
	if m.focus != focusFields {
		return render.Control{}, false
	}
	controls := editor.Controls(m.state)
	if m.fieldCursor < 0 || m.fieldCursor >= len(controls) {
		return render.Control{}, false
	}
	return controls[m.fieldCursor], true
}

func (m Model) controlByKey(k string) (render.Control, bool) {
	for _, c := range editor.Controls(m.state) {
		if c.Key == k {
			return c, true
		}
	}
	return render.Control{}, false
}

// startImport asks for an image path. In the style panel the image becomes
// the slide background; otherwise the selected IMAGE block receives it.
func (m Model) startImport() Model {
	if m.opts.Uploads == nil {
		m.state = editor.Info(m.state, "Image import is not available")
		return m
	}
	switch m.state.Mode {
	case editor.ModeStyling:
		m.importBlock = ""
	case editor.ModeSelected:
		block, ok := m.state.Block()
		if !ok || block.Type != model.BlockImage {
			m.state = editor.Info(m.state, "Select an IMAGE block, or open the style panel for a background")
			return m
		}
		m.importBlock = block.ID
	default:
		m.state = editor.Info(m.state, "Select an IMAGE block, or open the style panel for a background")
		return m
	}
	return m.startEditing(imageTarget, "")
}

func (m Model) importImage(msg ImageReadMsg) Model {
	log := m.opts.Log.WithFields(map[string]any{"file": msg.File.Name, "block": msg.BlockID})
	if msg.Err != nil {
		m.state = withError(m.state, fmt.Sprintf("Import failed: %v", msg.Err))
		log.Error(msg.Err, "image import failed")
		return m
	}
	if m.opts.Uploads == nil {
		return m
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	var err error
	if msg.BlockID == "" {
		m.state, err = m.opts.Uploads.UploadBackground(ctx, m.state, msg.File)
	} else {
		m.state, err = m.opts.Uploads.UploadImage(ctx, m.state, msg.BlockID, msg.File)
	}
	if err != nil {
		log.Error(err, "image import failed")
		return m
	}
	m.state = editor.Info(m.state, "Imported "+msg.File.Name)
	log.Info("image imported")
	return m
}

// prune deletes images imported in this session that the saved document
// and its history no longer use.
func (m Model) prune() Model {
	if m.opts.Uploads == nil {
		return m
	}
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	next, err := m.opts.Uploads.Prune(ctx, m.state)
	m.state = next
	if err != nil {
		m.opts.Log.Error(err, "prune uploads failed")
	}
	return m
}

func (m Model) clearBackground() Model {
	if m.state.Mode != editor.ModeStyling {
		m.state = editor.Info(m.state, "Open the style panel to clear the background image")
		return m
	}
	if m.state.Slide().Styles.BackgroundImage == nil {
		m.state = editor.Info(m.state, "This slide has no background image")
		return m
	}
	var u editor.Uploader
	if m.opts.Uploads != nil {
		u = *m.opts.Uploads
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()
	next, err := u.ClearBackground(ctx, m.state)
	m.state = next
	if err != nil {
		m.opts.Log.Error(err, "clear background failed")
	}
	return m
}

func withError(s editor.State, msg string) editor.State {
	s.Notice = &editor.Notice{Level: editor.LevelError, Message: msg}
	return s
}
