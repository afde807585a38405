package document

import (
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// DragKind tells a drag session what it is moving.
type DragKind string

const (
	DragSlide DragKind = "slide"
	DragBlock DragKind = "block"
)

// Drag is an in-progress reorder. The move is applied every time the pointer
// crosses into a sibling's slot, so the document always reflects the current
// pointer position and dropping needs no further computation.
type Drag struct {
	Kind       DragKind
	ItemID     string
	SlideIndex int
	Origin     int
	Index      int
}

// StartSlideDrag begins dragging the slide at index.
func StartSlideDrag(c model.Carousel, index int) (Drag, error) {
	if err := checkSlide("drag slide", c, index); err != nil {
		return Drag{}, err
	}
	return Drag{Kind: DragSlide, ItemID: c.Slides[index].ID, SlideIndex: index, Origin: index, Index: index}, nil
}

// StartBlockDrag begins dragging a block within one slide.
func StartBlockDrag(c model.Carousel, slideIndex, blockIndex int) (Drag, error) {
	if err := checkBlock("drag block", c, slideIndex, blockIndex); err != nil {
		return Drag{}, err
	}
	return Drag{
		Kind:       DragBlock,
		ItemID:     c.Slides[slideIndex].Blocks[blockIndex].ID,
		SlideIndex: slideIndex,
		Origin:     blockIndex,
		Index:      blockIndex,
	}, nil
}

// Over reports that the pointer is now over the sibling slot target. When
// target differs from the dragged item's current position the move is
// applied immediately. Targets past either end are clamped.
func (d Drag) Over(c model.Carousel, target int) (Drag, model.Carousel, error) {
	n := d.siblings(c)
	if n == 0 {
		return d, c, carouselerrors.NewInvariantError("drag", "nothing to drag over")
	}
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}
	if target == d.Index {
		return d, c, nil
	}

	var (
		out model.Carousel
		err error
	)
	switch d.Kind {
	case DragSlide:
		out, err = MoveSlide(c, d.Index, target)
		if err == nil {
			d.SlideIndex = target
		}
	default:
		out, err = ReorderBlocks(c, d.SlideIndex, d.Index, target)
	}
	if err != nil {
		return d, c, err
	}

	d.Index = target
	return d, out, nil
}

// Cancel moves the dragged item back to where the drag started.
func (d Drag) Cancel(c model.Carousel) (model.Carousel, error) {
	_, out, err := d.Over(c, d.Origin)
	return out, err
}

// Moved reports whether the item ended somewhere other than its origin.
func (d Drag) Moved() bool {
	return d.Index != d.Origin
}

func (d Drag) siblings(c model.Carousel) int {
	if d.Kind == DragSlide {
		return len(c.Slides)
	}
	if d.SlideIndex < 0 || d.SlideIndex >= len(c.Slides) {
		return 0
	}
	return len(c.Slides[d.SlideIndex].Blocks)
}
