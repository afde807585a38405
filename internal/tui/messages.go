package tui

import (
	"time"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/export"
)

// focus is the pane that receives navigation keys.
type focus int

const (
	focusSlides focus = iota
	focusBlocks
	focusFields
)

// overlay is a modal drawn above the editor.
type overlay int

const (
	overlayNone overlay = iota
	overlayTemplates
	overlayBlockTypes
	overlayHelp
	overlayExport
	overlayConfirmQuit
)

// SavedMsg reports a successful save.
type SavedMsg struct {
	ID string
	At time.Time
}

// SaveErrorMsg reports a failed save.
type SaveErrorMsg struct {
	Err error
}

// ExportProgressMsg is sent after each exported page.
type ExportProgressMsg struct {
	Progress export.Progress
}

// ExportDoneMsg ends an export, successful or not.
type ExportDoneMsg struct {
	Path     string
	Pages    int
	Width    int
	Height   int
	Elapsed  time.Duration
	Err      error
	Canceled bool
}

// ClipboardMsg reports the outcome of a copy or paste.
type ClipboardMsg struct {
	Text  string
	Paste bool
	Err   error
}

// ImageReadMsg carries an image file read from disk for import. BlockID is
// the IMAGE block to fill, or empty for the slide background.
type ImageReadMsg struct {
	BlockID string
	File    assets.File
	Err     error
}
