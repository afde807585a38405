// Package dashboard is the terminal browser for stored carousels. It lists
// the library, shows one document in detail, deletes with confirmation and
// hands the chosen document back to the caller for editing.
package dashboard

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
)

// Model is the main dashboard model
type Model struct {
	// Core data
	documents []store.Summary
	library   Library

	// UI state
	viewMode     ViewMode
	previousMode ViewMode
	cursor       int
	selectedID   string
	scrollOffset int

	// Component state
	spinner spinner.Model

	// Operation state
	loading   bool
	showError bool
	errorMsg  string

	// Detail state
	detail  *model.Carousel
	history []store.Revision

	// Confirmation state
	confirmID      string
	confirmMessage string

	// Outcome
	chosen    string
	createNew bool
	quitting  bool

	// Dimensions
	width  int
	height int

	useUnicode bool
}

// NewModel creates a dashboard over lib. The listing is loaded by Init.
func NewModel(lib Library) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		library:    lib,
		viewMode:   ViewList,
		spinner:    s,
		loading:    true,
		useUnicode: true,
		width:      80,
		height:     24,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDocumentsCmd(m.library))
}

// WithUnicode toggles emoji and box glyphs for terminals that lack them.
func (m Model) WithUnicode(enabled bool) Model {
	m.useUnicode = enabled
	return m
}

// Documents returns the current listing.
func (m *Model) Documents() []store.Summary {
	return m.documents
}

// Chosen reports the outcome once the program exits: the id of the document
// to open, or createNew when the user asked for a fresh one.
func (m *Model) Chosen() (id string, createNew bool) {
	return m.chosen, m.createNew
}

// GetSelected returns the summary under the cursor
func (m *Model) GetSelected() (store.Summary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.documents) {
		return store.Summary{}, false
	}
	return m.documents[m.cursor], true
}

func (m *Model) summary(id string) (store.Summary, bool) {
	for _, d := range m.documents {
		if d.ID == id {
			return d, true
		}
	}
	return store.Summary{}, false
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.documents) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.documents) - 1
	}
	m.ensureVisible()
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.documents) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.documents) {
		m.cursor = 0
	}
	m.ensureVisible()
}

// SetCursor sets the cursor position with bounds checking
func (m *Model) SetCursor(pos int) {
	if pos < 0 || pos >= len(m.documents) {
		return
	}
	m.cursor = pos
	m.ensureVisible()
}

// visibleItems is how many list entries fit between header and footer.
func (m *Model) visibleItems() int {
	return max(1, (m.height-10)/itemHeight)
}

func (m *Model) ensureVisible() {
	n := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+n {
		m.scrollOffset = m.cursor - n + 1
	}
}

// IsLoading reports whether a library call is in flight.
func (m *Model) IsLoading() bool {
	return m.loading
}

// HasError returns true if an error is being displayed
func (m *Model) HasError() bool {
	return m.showError
}

// GetError returns the current error message
func (m *Model) GetError() string {
	return m.errorMsg
}

// ClearError clears the current error
func (m *Model) ClearError() {
	m.showError = false
	m.errorMsg = ""
}

func (m *Model) setError(err error) {
	m.showError = true
	if errors.Is(err, store.ErrNotFound) {
		m.errorMsg = "Document not found; it may have been deleted elsewhere"
		return
	}
	m.errorMsg = err.Error()
}

// GetViewMode returns the current view mode
func (m *Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Run shows the dashboard until the user opens a document, asks for a new
// one or quits. An empty id with createNew false means the user quit.
func Run(ctx context.Context, lib Library, unicode bool) (id string, createNew bool, err error) {
	p := tea.NewProgram(NewModel(lib).WithUnicode(unicode), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(Model)
	if !ok {
		return "", false, nil
	}
	id, createNew = m.Chosen()
	return id, createNew, nil
}
