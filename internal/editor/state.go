// Package editor holds the single owned, versioned editing state and the
// reducers that change it. Reducers are pure: they take a State and return a
// new one. Only reducers replace the document.
package editor

import (
	"errors"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Mode is the per-block interaction state.
type Mode string

const (
	ModeIdle     Mode = "idle"
	ModeSelected Mode = "selected"
	ModeStyling  Mode = "styling"
)

// Level grades a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user facing message produced by the last reducer.
type Notice struct {
	Level   Level
	Message string
}

// HistoryLimit bounds the undo stack.
const HistoryLimit = 50

// State is the editor's whole world.
type State struct {
	Doc         model.Carousel
	Version     int
	ActiveSlide int
	ActiveBlock string
	Mode        Mode
	Drag        *document.Drag
	Notice      *Notice
	Viewport    Viewport
	Dirty       bool

	past    []model.Carousel
	future  []model.Carousel
	preDrag *model.Carousel
	// uploaded holds asset paths stored during this session, and released
	// the subset a reducer stopped referencing.
	uploaded []string
	released []string
}

// New starts an editing session on doc. An empty document gets a blank slide
// so the editor always has something to show.
func New(doc model.Carousel) State {
	doc = doc.Clone()
	if len(doc.Slides) == 0 {
		doc.Slides = []model.Slide{document.NewSlide(model.SlideBlank)}
	}
	doc = document.Renumber(doc)
	return State{
		Doc:      doc,
		Mode:     ModeIdle,
		Viewport: Viewport{Scale: 1},
	}
}

// Slide returns the active slide.
func (s State) Slide() model.Slide {
	return s.Doc.Slides[s.ActiveSlide]
}

// Block returns the active block and whether one is selected.
func (s State) Block() (model.Block, bool) {
	if s.ActiveBlock == "" {
		return model.Block{}, false
	}
	slide := s.Slide()
	idx := slide.BlockIndex(s.ActiveBlock)
	if idx < 0 {
		return model.Block{}, false
	}
	return slide.Blocks[idx], true
}

// ActiveBlockIndex is the position of the selected block, or -1.
func (s State) ActiveBlockIndex() int {
	if s.ActiveBlock == "" {
		return -1
	}
	return s.Slide().BlockIndex(s.ActiveBlock)
}

// CanUndo reports whether Undo has anything to restore.
func (s State) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether Redo has anything to restore.
func (s State) CanRedo() bool { return len(s.future) > 0 }

// commit replaces the document and records the previous one for undo.
func commit(s State, next model.Carousel) State {
	s.past = pushBounded(s.past, s.Doc)
	s.future = nil
	return replace(s, next)
}

// replace swaps the document without touching history.
func replace(s State, next model.Carousel) State {
	s.Doc = next
	s.Version++
	s.Dirty = true
	s.Notice = nil
	if s.ActiveSlide >= len(next.Slides) {
		s.ActiveSlide = len(next.Slides) - 1
	}
	if s.ActiveSlide < 0 {
		s.ActiveSlide = 0
	}
	if s.ActiveBlock != "" && s.Slide().BlockIndex(s.ActiveBlock) < 0 {
		s.ActiveBlock = ""
		s.Mode = ModeIdle
	}
	return s
}

func pushBounded(stack []model.Carousel, doc model.Carousel) []model.Carousel {
	out := make([]model.Carousel, 0, len(stack)+1)
	out = append(out, stack...)
	out = append(out, doc)
	if len(out) > HistoryLimit {
		out = out[len(out)-HistoryLimit:]
	}
	return out
}

// refuse leaves the document untouched and turns err into a notice.
func refuse(s State, err error) State {
	level := LevelError
	var invErr *carouselerrors.InvariantError
	if errors.As(err, &invErr) {
		level = LevelWarning
	}
	s.Notice = &Notice{Level: level, Message: err.Error()}
	return s
}

// Info sets an informational notice.
func Info(s State, msg string) State {
	s.Notice = &Notice{Level: LevelInfo, Message: msg}
	return s
}

// ClearNotice dismisses the current notice.
func ClearNotice(s State) State {
	s.Notice = nil
	return s
}

// MarkSaved clears the dirty flag after a successful save.
func MarkSaved(s State) State {
	s.Dirty = false
	return s
}
