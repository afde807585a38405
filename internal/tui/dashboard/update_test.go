package dashboard

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/store"
)

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := NewModel(failingLibrary{err: errBroken})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.False(t, m.HasError())
}

func TestUpdate_WindowSizeMsg_TooSmall(t *testing.T) {
	m := NewModel(failingLibrary{err: errBroken})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	require.True(t, m.HasError())
	assert.Contains(t, m.GetError(), "Terminal too small")

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.False(t, m.HasError(), "size error clears once the terminal grows")
}

func TestUpdate_SpinnerTickStopsWhenIdle(t *testing.T) {
	m := NewModel(failingLibrary{err: errBroken})

	_, cmd := step(t, m, spinner.TickMsg{})
	assert.NotNil(t, cmd, "spinner keeps ticking while loading")

	m.loading = false
	_, cmd = step(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestUpdate_DocumentsLoaded(t *testing.T) {
	lib, _ := newFileLibrary(t, "One", "Two", "Three")
	m := loaded(t, lib)

	assert.False(t, m.IsLoading())
	assert.Len(t, m.Documents(), 3)

	m.SetCursor(2)
	m, _ = step(t, m, DocumentsLoadedMsg{Documents: m.Documents()[:1]})
	assert.Equal(t, 0, m.cursor, "cursor is clamped to the shorter listing")
}

func TestUpdate_ErrorMsg(t *testing.T) {
	m := loaded(t, failingLibrary{err: errBroken})

	assert.False(t, m.IsLoading())
	require.True(t, m.HasError())
	assert.Contains(t, m.GetError(), "disk on fire")

	m, _ = step(t, m, key("x"))
	assert.False(t, m.HasError())
}

func TestUpdate_KeyMsg_ListNavigation(t *testing.T) {
	lib, _ := newFileLibrary(t, "One", "Two", "Three")
	m := loaded(t, lib)

	m, _ = step(t, m, key("down"))
	assert.Equal(t, 1, m.cursor)
	m, _ = step(t, m, key("j"))
	assert.Equal(t, 2, m.cursor)
	m, _ = step(t, m, key("k"))
	assert.Equal(t, 1, m.cursor)
	m, _ = step(t, m, key("up"))
	m, _ = step(t, m, key("up"))
	assert.Equal(t, 2, m.cursor)
}

func TestUpdate_KeyMsg_DirectSelection(t *testing.T) {
	lib, _ := newFileLibrary(t, "One", "Two", "Three")
	m := loaded(t, lib)

	m, _ = step(t, m, key("3"))
	assert.Equal(t, 2, m.cursor)
	m, _ = step(t, m, key("9"))
	assert.Equal(t, 2, m.cursor, "numbers past the end are ignored")
}

func TestUpdate_KeyMsg_EnterShowsDetail(t *testing.T) {
	lib, ids := newFileLibrary(t, "Deck")
	m := loaded(t, lib)

	m, cmd := step(t, m, key("enter"))
	assert.True(t, m.IsLoading())

	m, _ = step(t, m, run(t, cmd))
	assert.Equal(t, ViewDetail, m.GetViewMode())
	assert.Equal(t, ids[0], m.selectedID)
	require.NotNil(t, m.detail)
	assert.Equal(t, "Deck", m.detail.Title)

	m, _ = step(t, m, key("esc"))
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestUpdate_KeyMsg_OpenFromListAndDetail(t *testing.T) {
	lib, ids := newFileLibrary(t, "Deck")
	m := loaded(t, lib)

	opened, cmd := step(t, m, key("o"))
	require.NotNil(t, cmd)
	id, createNew := opened.Chosen()
	assert.Equal(t, ids[0], id)
	assert.False(t, createNew)
	assert.Empty(t, opened.View())

	m, cmd = step(t, m, key("enter"))
	m, _ = step(t, m, run(t, cmd))
	opened, _ = step(t, m, key("enter"))
	id, _ = opened.Chosen()
	assert.Equal(t, ids[0], id)
}

func TestUpdate_KeyMsg_New(t *testing.T) {
	lib, _ := newFileLibrary(t)
	m := loaded(t, lib)

	m, cmd := step(t, m, key("n"))
	require.NotNil(t, cmd)
	id, createNew := m.Chosen()
	assert.Empty(t, id)
	assert.True(t, createNew)
}

func TestUpdate_KeyMsg_Quit(t *testing.T) {
	lib, _ := newFileLibrary(t, "Deck")
	m := loaded(t, lib)

	for _, k := range []string{"q", "ctrl+c"} {
		quit, cmd := step(t, m, key(k))
		require.NotNil(t, cmd)
		id, createNew := quit.Chosen()
		assert.Empty(t, id)
		assert.False(t, createNew)
	}
}

func TestUpdate_KeyMsg_HelpToggle(t *testing.T) {
	lib, _ := newFileLibrary(t, "Deck")
	m := loaded(t, lib)

	m, _ = step(t, m, key("?"))
	assert.Equal(t, ViewHelp, m.GetViewMode())
	m, _ = step(t, m, key("?"))
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestUpdate_KeyMsg_ConfirmDelete(t *testing.T) {
	lib, ids := newFileLibrary(t, "Keep", "Gone")
	m := loaded(t, lib)

	var target string
	for i, d := range m.Documents() {
		if d.Title == "Gone" {
			m.SetCursor(i)
			target = d.ID
		}
	}
	require.NotEmpty(t, target)

	// Declining leaves the document alone.
	m, _ = step(t, m, key("d"))
	assert.Equal(t, ViewConfirm, m.GetViewMode())
	assert.Contains(t, m.confirmMessage, `"Gone"`)
	m, _ = step(t, m, key("n"))
	assert.Equal(t, ViewList, m.GetViewMode())
	_, err := lib.Load(context.Background(), target)
	require.NoError(t, err)

	m, _ = step(t, m, key("d"))
	m, cmd := step(t, m, key("y"))
	assert.True(t, m.IsLoading())

	deleted := run(t, cmd)
	require.Equal(t, DocumentDeletedMsg{ID: target}, deleted)
	m, cmd = step(t, m, deleted)
	assert.Len(t, m.Documents(), 1)

	m, _ = step(t, m, run(t, cmd))
	require.Len(t, m.Documents(), 1)
	assert.Contains(t, ids, m.Documents()[0].ID)
	assert.Equal(t, "Keep", m.Documents()[0].Title)

	_, err = lib.Load(context.Background(), target)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdate_KeyMsg_DeleteFromDetail(t *testing.T) {
	lib, ids := newFileLibrary(t, "Deck")
	m := loaded(t, lib)

	m, cmd := step(t, m, key("enter"))
	m, _ = step(t, m, run(t, cmd))
	m, _ = step(t, m, key("d"))
	require.Equal(t, ViewConfirm, m.GetViewMode())

	m, cmd = step(t, m, key("y"))
	m, _ = step(t, m, run(t, cmd))
	assert.Equal(t, ViewList, m.GetViewMode())
	assert.Nil(t, m.detail)
	assert.Empty(t, m.selectedID)
	assert.NotContains(t, m.Documents(), store.Summary{ID: ids[0]})
}

func TestUpdate_KeyMsg_Refresh(t *testing.T) {
	lib, _ := newFileLibrary(t, "One")
	m := loaded(t, lib)

	doc, err := lib.Load(context.Background(), m.Documents()[0].ID)
	require.NoError(t, err)
	doc.ID = ""
	_, err = lib.Save(context.Background(), doc)
	require.NoError(t, err)

	m, cmd := step(t, m, key("r"))
	assert.True(t, m.IsLoading())
	m, _ = step(t, m, run(t, cmd))
	assert.Len(t, m.Documents(), 2)
}
