package dashboard

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
)

// failingLibrary fails every call with err.
type failingLibrary struct {
	err error
}

func (f failingLibrary) List(context.Context) ([]store.Summary, error) { return nil, f.err }
func (f failingLibrary) Load(context.Context, string) (model.Carousel, error) {
	return model.Carousel{}, f.err
}
func (f failingLibrary) Delete(context.Context, string) error { return f.err }

var errBroken = errors.New("disk on fire")

func newFileLibrary(t *testing.T, titles ...string) (*store.FileStore, []string) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	ids := make([]string, len(titles))
	for i, title := range titles {
		doc := document.NewCarousel(title)
		doc = document.AddSlide(doc, document.NewSlide(model.SlideList))
		ids[i], err = fs.Save(context.Background(), doc)
		require.NoError(t, err)
	}
	return fs, ids
}

// run executes cmd and returns its message. Batches are searched for the
// first message that is not a spinner tick.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			switch inner := c().(type) {
			case DocumentsLoadedMsg, DocumentLoadedMsg, DocumentDeletedMsg, ErrorMsg:
				return inner
			}
		}
		t.Fatal("batch carried no library message")
	}
	return msg
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// loaded returns a sized dashboard whose listing came from lib.
func loaded(t *testing.T, lib Library) Model {
	t.Helper()
	m := NewModel(lib)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = step(t, m, run(t, loadDocumentsCmd(lib)))
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
