package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const operationTimeout = 10 * time.Second

// loadDocumentsCmd lists the library.
func loadDocumentsCmd(lib Library) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		docs, err := lib.List(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("list documents: %w", err)}
		}
		return DocumentsLoadedMsg{Documents: docs}
	}
}

// loadDocumentCmd decodes one document, with its revisions when the library
// keeps them. A history failure is not fatal to the detail view.
func loadDocumentCmd(lib Library, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		doc, err := lib.Load(ctx, id)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("load %s: %w", id, err)}
		}
		msg := DocumentLoadedMsg{ID: id, Document: doc}
		if h, ok := lib.(Historian); ok {
			if revs, err := h.History(ctx, id); err == nil {
				msg.History = revs
			}
		}
		return msg
	}
}

// deleteDocumentCmd removes a document from the library.
func deleteDocumentCmd(lib Library, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		if err := lib.Delete(ctx, id); err != nil {
			return ErrorMsg{Err: fmt.Errorf("delete %s: %w", id, err)}
		}
		return DocumentDeletedMsg{ID: id}
	}
}
