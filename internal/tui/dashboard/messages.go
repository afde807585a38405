package dashboard

import (
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
)

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
	ViewConfirm
)

// DocumentsLoadedMsg carries a fresh listing of the library.
type DocumentsLoadedMsg struct {
	Documents []store.Summary
}

// DocumentLoadedMsg carries one decoded document for the detail view.
// History is empty for stores that do not keep revisions.
type DocumentLoadedMsg struct {
	ID       string
	Document model.Carousel
	History  []store.Revision
}

// DocumentDeletedMsg indicates a document was removed from the store.
type DocumentDeletedMsg struct {
	ID string
}

// ErrorMsg reports a failed library operation.
type ErrorMsg struct {
	Err error
}
