// Package tui is the terminal editing surface: a slide rail, a scaled
// preview of the active slide and a panel for blocks, fields and slide
// styles. All document changes go through the editor reducers.
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/carousel/internal/editor"
	"github.com/alexisbeaulieu97/carousel/internal/export"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	"github.com/alexisbeaulieu97/carousel/internal/tui/components"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// Options wires the editor to its services. Every field is optional.
type Options struct {
	// Store receives ctrl+s saves. When nil the document is written to Path.
	Store store.Store
	Path  string

	Exporter *export.Exporter
	Export   export.Options
	// OutDir is where exported PDFs are written.
	OutDir string

	// Uploads stores imported images. When nil, importing is unavailable.
	Uploads *editor.Uploader

	Clipboard Clipboard
	Measurer  render.Measurer
	Log       *logger.Logger
}

// Model is the bubbletea model of the editor.
type Model struct {
	state editor.State
	opts  Options
	docID string

	keys  keyMap
	help  help.Model
	input textinput.Model

	// UI state
	focus       focus
	overlay     overlay
	pickCursor  int
	fieldCursor int
	styleCursor int
	editing     bool
	editTarget  string
	importBlock string

	// Export state
	exporting    bool
	exportCh     <-chan tea.Msg
	exportCancel context.CancelFunc
	exportDone   int
	progress     components.Progress
	summary      *components.SummaryData

	mouseDragging bool
	width         int
	height        int
	quitting      bool
}

const (
	titleTarget = "\x00title"
	// imageTarget edits the path of an image to import.
	imageTarget = "\x00image"
)

// NewModel opens doc for editing. docID is the store id the document was
// loaded from, if any.
func NewModel(doc model.Carousel, docID string, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	if opts.Measurer == nil {
		opts.Measurer = typeface.Default()
	}
	if opts.Export.Quality == 0 {
		opts.Export = export.DefaultOptions()
	}
	opts.Log = opts.Log.WithComponent("editor")

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 2000

	return Model{
		state: editor.New(doc),
		opts:  opts,
		docID: docID,
		keys:  defaultKeys(),
		help:  help.New(),
		input: input,
		focus: focusSlides,
	}
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current editor state.
func (m Model) State() editor.State {
	return m.state
}

// Document returns the document being edited.
func (m Model) Document() model.Carousel {
	return m.state.Doc
}

// DocID is the store id of the document, once it has been saved.
func (m Model) DocID() string {
	return m.docID
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Exporting reports whether an export is running.
func (m Model) Exporting() bool {
	return m.exporting
}

func (m Model) scene() render.Scene {
	return render.LayoutSlide(m.state.Slide(), m.state.Doc.Settings, m.opts.Measurer)
}

// Run edits doc in the terminal until the user quits and returns the final
// document.
func Run(ctx context.Context, doc model.Carousel, docID string, opts Options) (model.Carousel, error) {
	m := NewModel(doc, docID, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return doc, err
	}
	if fm, ok := final.(Model); ok {
		if fm.exportCancel != nil {
			fm.exportCancel()
		}
		if !fm.state.Dirty {
			fm = fm.prune()
		}
		return fm.Document(), nil
	}
	return doc, nil
}
