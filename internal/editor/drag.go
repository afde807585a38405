package editor

import (
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/render"
)

// BeginSlideDrag starts dragging the slide at index.
func BeginSlideDrag(s State, index int) State {
	d, err := document.StartSlideDrag(s.Doc, index)
	if err != nil {
		return refuse(s, err)
	}
	return beginDrag(SelectSlide(s, index), d)
}

// BeginBlockDrag starts dragging a block of the active slide.
func BeginBlockDrag(s State, blockIndex int) State {
	d, err := document.StartBlockDrag(s.Doc, s.ActiveSlide, blockIndex)
	if err != nil {
		return refuse(s, err)
	}
	return beginDrag(SelectBlock(s, d.ItemID), d)
}

func beginDrag(s State, d document.Drag) State {
	snapshot := s.Doc
	s.Drag = &d
	s.preDrag = &snapshot
	return s
}

// DragOver moves the dragged item into slot target as soon as the pointer
// crosses into it. Intermediate positions are not recorded in history.
func DragOver(s State, target int) State {
	if s.Drag == nil {
		return s
	}
	d, next, err := s.Drag.Over(s.Doc, target)
	if err != nil {
		return refuse(s, err)
	}
	if d.Index == s.Drag.Index {
		return s
	}

	s = replace(s, next)
	s.Drag = &d
	if d.Kind == document.DragSlide {
		s.ActiveSlide = d.Index
	}
	return s
}

// DragBlockAt updates a block drag from a pointer position in device pixels.
func DragBlockAt(s State, scene render.Scene, deviceY float64) State {
	if s.Drag == nil || s.Drag.Kind != document.DragBlock {
		return s
	}
	_, y := s.Viewport.ToLogical(0, deviceY)
	return DragOver(s, SlotAt(scene, y))
}

// EndDrag finishes the drag. The order is already final; this only records
// one undo step for the whole gesture.
func EndDrag(s State) State {
	if s.Drag == nil {
		return s
	}
	moved := s.Drag.Moved()
	if moved && s.preDrag != nil {
		s.past = pushBounded(s.past, *s.preDrag)
		s.future = nil
	}
	s.Drag = nil
	s.preDrag = nil
	return s
}

// CancelDrag puts the dragged item back where it started.
func CancelDrag(s State) State {
	if s.Drag == nil {
		return s
	}
	if s.preDrag != nil && s.Drag.Moved() {
		s = replace(s, *s.preDrag)
	}
	s.Drag = nil
	s.preDrag = nil
	return s
}

// SlotAt maps a logical y coordinate to a block slot. The pointer enters a
// sibling's slot once it passes that sibling's vertical midpoint.
func SlotAt(scene render.Scene, y float64) int {
	if len(scene.Blocks) == 0 {
		return 0
	}
	slot := 0
	for i, b := range scene.Blocks {
		if y >= b.Frame.Y+b.Frame.H/2 {
			slot = i
		}
	}
	return slot
}
