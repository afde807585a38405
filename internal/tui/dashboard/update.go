package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/carousel/internal/store"
)

const (
	minWidth  = 80
	minHeight = 24
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ApplyMaxWidth(m.width)

		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.ClearError()
		}
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DocumentsLoadedMsg:
		m.loading = false
		m.documents = msg.Documents
		if m.cursor >= len(m.documents) {
			m.cursor = max(0, len(m.documents)-1)
		}
		m.scrollOffset = min(m.scrollOffset, m.cursor)
		m.ensureVisible()
		return m, nil

	case DocumentLoadedMsg:
		m.loading = false
		doc := msg.Document
		m.detail = &doc
		m.history = msg.History
		m.selectedID = msg.ID
		m.viewMode = ViewDetail
		return m, nil

	case DocumentDeletedMsg:
		m.documents = slices.DeleteFunc(m.documents, func(s store.Summary) bool { return s.ID == msg.ID })
		if m.cursor >= len(m.documents) {
			m.cursor = max(0, len(m.documents)-1)
		}
		if m.selectedID == msg.ID {
			m.selectedID = ""
			m.detail = nil
			m.history = nil
		}
		m.viewMode = ViewList
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadDocumentsCmd(m.library))

	case ErrorMsg:
		m.loading = false
		m.setError(msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes keys to the handler for the current view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showError && (key == "x" || key == "esc") {
		m.ClearError()
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
	case "down", "j":
		m.MoveCursorDown()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.SetCursor(int(key[0] - '1'))

	case "enter":
		if sel, ok := m.GetSelected(); ok {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadDocumentCmd(m.library, sel.ID))
		}

	case "o", "e":
		if sel, ok := m.GetSelected(); ok {
			return m.open(sel.ID)
		}

	case "n":
		m.createNew = true
		m.quitting = true
		return m, tea.Quit

	case "d", "delete":
		if sel, ok := m.GetSelected(); ok {
			return m.confirmDelete(sel.ID, sel.Title), nil
		}

	case "r":
		m.loading = true
		m.ClearError()
		return m, tea.Batch(m.spinner.Tick, loadDocumentsCmd(m.library))

	case "?":
		m.previousMode = m.viewMode
		m.viewMode = ViewHelp
	}

	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showError && key == "x" {
		m.ClearError()
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "backspace":
		m.viewMode = ViewList
	case "o", "e", "enter":
		return m.open(m.selectedID)
	case "d", "delete":
		title := ""
		if m.detail != nil {
			title = m.detail.Title
		}
		return m.confirmDelete(m.selectedID, title), nil
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadDocumentCmd(m.library, m.selectedID))
	case "?":
		m.previousMode = m.viewMode
		m.viewMode = ViewHelp
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc":
		m.viewMode = m.previousMode
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		m.confirmID = ""
		m.confirmMessage = ""
		m.viewMode = m.previousMode
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, deleteDocumentCmd(m.library, id))
	case "n", "N", "esc":
		m.confirmID = ""
		m.confirmMessage = ""
		m.viewMode = m.previousMode
	}
	return m, nil
}

func (m Model) confirmDelete(id, title string) Model {
	if id == "" {
		return m
	}
	if title == "" {
		title = id
	}
	m.confirmID = id
	m.confirmMessage = fmt.Sprintf("Delete %q?\n\nThis cannot be undone.", title)
	m.previousMode = m.viewMode
	m.viewMode = ViewConfirm
	return m
}

func (m Model) open(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	m.chosen = id
	m.quitting = true
	return m, tea.Quit
}
