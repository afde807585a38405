package editor

import (
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
)

// SelectSlide navigates to a slide. Navigation always returns to idle.
func SelectSlide(s State, index int) State {
	if index < 0 || index >= len(s.Doc.Slides) {
		return s
	}
	s.ActiveSlide = index
	s.ActiveBlock = ""
	s.Mode = ModeIdle
	return s
}

// NextSlide selects the following slide.
func NextSlide(s State) State { return SelectSlide(s, s.ActiveSlide+1) }

// PrevSlide selects the previous slide.
func PrevSlide(s State) State { return SelectSlide(s, s.ActiveSlide-1) }

// SelectBlock makes id the only selected block. Unknown ids are ignored.
func SelectBlock(s State, id string) State {
	if s.Slide().BlockIndex(id) < 0 {
		return s
	}
	s.ActiveBlock = id
	s.Mode = ModeSelected
	return s
}

// SelectBlockAt selects the block at index on the active slide.
func SelectBlockAt(s State, index int) State {
	blocks := s.Slide().Blocks
	if index < 0 || index >= len(blocks) {
		return s
	}
	return SelectBlock(s, blocks[index].ID)
}

// Deselect returns to idle.
func Deselect(s State) State {
	s.ActiveBlock = ""
	s.Mode = ModeIdle
	return s
}

// OpenStyling opens the style panel for the selected block.
func OpenStyling(s State) State {
	if s.Mode != ModeSelected {
		return s
	}
	s.Mode = ModeStyling
	return s
}

// CloseStyling closes the style panel and ends the selection.
func CloseStyling(s State) State {
	if s.Mode != ModeStyling {
		return s
	}
	return Deselect(s)
}

// AddSlide appends a slide from a template and makes it active.
func AddSlide(s State, t model.SlideType) State {
	s = commit(s, document.AddSlide(s.Doc, document.NewSlide(t)))
	return SelectSlide(s, len(s.Doc.Slides)-1)
}

// DeleteSlide removes a slide. The active slide clamps to the nearest valid
// predecessor. Deleting the last slide is refused with a warning.
func DeleteSlide(s State, index int) State {
	next, err := document.DeleteSlide(s.Doc, index)
	if err != nil {
		return refuse(s, err)
	}

	active := s.ActiveSlide
	if index <= active && active > 0 {
		active--
	}
	s = commit(s, next)
	return SelectSlide(s, active)
}

// DuplicateSlide copies a slide and activates the copy.
func DuplicateSlide(s State, index int) State {
	next, err := document.DuplicateSlide(s.Doc, index)
	if err != nil {
		return refuse(s, err)
	}
	s = commit(s, next)
	return SelectSlide(s, index+1)
}

// MoveSlide reorders slides. The active slide follows its content.
func MoveSlide(s State, from, to int) State {
	activeID := s.Slide().ID
	next, err := document.MoveSlide(s.Doc, from, to)
	if err != nil {
		return refuse(s, err)
	}
	if from == to {
		return s
	}
	s = commit(s, next)
	s.ActiveSlide = s.Doc.SlideIndex(activeID)
	return s
}

// SetSlideStyles replaces the active slide's styles.
func SetSlideStyles(s State, styles model.SlideStyles) State {
	next, err := document.UpdateSlideStyles(s.Doc, s.ActiveSlide, styles)
	if err != nil {
		return refuse(s, err)
	}
	return commit(s, next)
}

// SetBackground picks a catalog background and drops any background image.
func SetBackground(s State, key model.StyleKey) State {
	styles := s.Slide().Styles
	styles.Background = key
	styles.BackgroundImage = nil
	return SetSlideStyles(s, styles)
}

// SetPadding changes the active slide's padding preset.
func SetPadding(s State, preset model.PaddingPreset) State {
	styles := s.Slide().Styles
	styles.Padding = preset
	return SetSlideStyles(s, styles)
}

// SetVerticalAlign changes where the block stack sits.
func SetVerticalAlign(s State, align model.VerticalAlign) State {
	styles := s.Slide().Styles
	styles.VerticalAlign = align
	return SetSlideStyles(s, styles)
}

// AddBlock appends a default block to the active slide and selects it.
func AddBlock(s State, t model.BlockType) State {
	block := schema.NewBlock(t)
	next, err := document.AddBlock(s.Doc, s.ActiveSlide, block)
	if err != nil {
		return refuse(s, err)
	}
	s = commit(s, next)
	return SelectBlock(s, block.ID)
}

// DeleteBlock removes a block. The selection returns to idle.
func DeleteBlock(s State, id string) State {
	index := s.Slide().BlockIndex(id)
	next, err := document.DeleteBlock(s.Doc, s.ActiveSlide, index)
	if err != nil {
		return refuse(s, err)
	}
	s = commit(s, next)
	return Deselect(s)
}

// DuplicateBlock copies a block and selects the copy.
func DuplicateBlock(s State, id string) State {
	index := s.Slide().BlockIndex(id)
	next, err := document.DuplicateBlock(s.Doc, s.ActiveSlide, index)
	if err != nil {
		return refuse(s, err)
	}
	s = commit(s, next)
	return SelectBlock(s, s.Slide().Blocks[index+1].ID)
}

// ReorderBlock moves a block within the active slide.
func ReorderBlock(s State, from, to int) State {
	next, err := document.ReorderBlocks(s.Doc, s.ActiveSlide, from, to)
	if err != nil {
		return refuse(s, err)
	}
	if from == to {
		return s
	}
	return commit(s, next)
}

// UpdateBlock replaces a block's content wholesale. Invalid content is
// refused and the document is unchanged.
func UpdateBlock(s State, id string, content model.Content) State {
	next, err := document.UpdateBlock(s.Doc, s.ActiveSlide, id, content)
	if err != nil {
		return refuse(s, err)
	}
	return commit(s, next)
}

// SetTitle renames the document.
func SetTitle(s State, title string) State {
	if title == s.Doc.Title {
		return s
	}
	return commit(s, document.SetTitle(s.Doc, title))
}

// Load replaces the whole document, for example after translation. It is
// undoable like any other change.
func Load(s State, doc model.Carousel) State {
	if len(doc.Slides) == 0 {
		return s
	}
	return commit(s, document.Renumber(doc))
}

// Undo restores the previous document.
func Undo(s State) State {
	if len(s.past) == 0 {
		return Info(s, "nothing to undo")
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[: len(s.past)-1 : len(s.past)-1]
	s.future = pushBounded(s.future, s.Doc)
	return replace(s, prev)
}

// Redo re-applies the last undone document.
func Redo(s State) State {
	if len(s.future) == 0 {
		return Info(s, "nothing to redo")
	}
	next := s.future[len(s.future)-1]
	s.future = s.future[: len(s.future)-1 : len(s.future)-1]
	s.past = pushBounded(s.past, s.Doc)
	return replace(s, next)
}
