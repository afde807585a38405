// Package document implements the structural operations on a carousel. Every
// operation is pure: it returns a new carousel and never writes into its
// argument. After every operation each slide's order equals its index + 1.
package document

import (
	"fmt"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Renumber rewrites order on every slide of c so it matches position.
func Renumber(c model.Carousel) model.Carousel {
	out := c.Clone()
	renumber(out.Slides)
	return out
}

func renumber(slides []model.Slide) {
	for i := range slides {
		slides[i].Order = i + 1
	}
}

// AddSlide appends a copy of s. The new slide's index is len(result.Slides)-1.
func AddSlide(c model.Carousel, s model.Slide) model.Carousel {
	out := c.Clone()
	out.Slides = append(out.Slides, s.Clone())
	renumber(out.Slides)
	return out
}

// DeleteSlide removes the slide at index. Removing the last remaining slide
// is refused with an InvariantError and c is returned unchanged.
func DeleteSlide(c model.Carousel, index int) (model.Carousel, error) {
	if err := checkSlide("delete slide", c, index); err != nil {
		return c, err
	}
	if len(c.Slides) <= 1 {
		return c, carouselerrors.NewInvariantError("delete slide", "a carousel needs at least one slide")
	}

	out := c.Clone()
	out.Slides = append(out.Slides[:index], out.Slides[index+1:]...)
	renumber(out.Slides)
	return out, nil
}

// DuplicateSlide deep-copies the slide at index, mints fresh ids for the copy
// and every block in it, and inserts the copy right after the source.
func DuplicateSlide(c model.Carousel, index int) (model.Carousel, error) {
	if err := checkSlide("duplicate slide", c, index); err != nil {
		return c, err
	}

	dup := c.Slides[index].Clone()
	mintSlideIDs(&dup)

	out := c.Clone()
	out.Slides = insertAt(out.Slides, index+1, dup)
	renumber(out.Slides)
	return out, nil
}

// MoveSlide splices the slide at from into position to. from == to is a no-op.
func MoveSlide(c model.Carousel, from, to int) (model.Carousel, error) {
	if err := checkSlide("move slide", c, from); err != nil {
		return c, err
	}
	if err := checkSlide("move slide", c, to); err != nil {
		return c, err
	}
	if from == to {
		return c, nil
	}

	out := c.Clone()
	out.Slides = move(out.Slides, from, to)
	renumber(out.Slides)
	return out, nil
}

// AddBlock appends a copy of b to the slide at slideIndex. A block without an
// id gets one.
func AddBlock(c model.Carousel, slideIndex int, b model.Block) (model.Carousel, error) {
	if err := checkSlide("add block", c, slideIndex); err != nil {
		return c, err
	}

	block := b.Clone()
	if block.ID == "" {
		block.ID = schema.NewID()
	}
	if c.Slides[slideIndex].BlockIndex(block.ID) >= 0 {
		return c, carouselerrors.NewInvariantError("add block", fmt.Sprintf("block id %q already exists on slide %d", block.ID, slideIndex+1))
	}

	out := c.Clone()
	slide := &out.Slides[slideIndex]
	slide.Blocks = append(slide.Blocks, block)
	renumber(out.Slides)
	return out, nil
}

// DeleteBlock removes one block from a slide.
func DeleteBlock(c model.Carousel, slideIndex, blockIndex int) (model.Carousel, error) {
	if err := checkBlock("delete block", c, slideIndex, blockIndex); err != nil {
		return c, err
	}

	out := c.Clone()
	slide := &out.Slides[slideIndex]
	slide.Blocks = append(slide.Blocks[:blockIndex], slide.Blocks[blockIndex+1:]...)
	renumber(out.Slides)
	return out, nil
}

// DuplicateBlock copies a block with a fresh id and inserts it after the source.
func DuplicateBlock(c model.Carousel, slideIndex, blockIndex int) (model.Carousel, error) {
	if err := checkBlock("duplicate block", c, slideIndex, blockIndex); err != nil {
		return c, err
	}

	dup := c.Slides[slideIndex].Blocks[blockIndex].Clone()
	dup.ID = schema.NewID()

	out := c.Clone()
	slide := &out.Slides[slideIndex]
	slide.Blocks = insertAt(slide.Blocks, blockIndex+1, dup)
	renumber(out.Slides)
	return out, nil
}

// ReorderBlocks splices a block within its slide. from == to is a no-op.
func ReorderBlocks(c model.Carousel, slideIndex, from, to int) (model.Carousel, error) {
	if err := checkBlock("reorder blocks", c, slideIndex, from); err != nil {
		return c, err
	}
	if err := checkBlock("reorder blocks", c, slideIndex, to); err != nil {
		return c, err
	}
	if from == to {
		return c, nil
	}

	out := c.Clone()
	slide := &out.Slides[slideIndex]
	slide.Blocks = move(slide.Blocks, from, to)
	renumber(out.Slides)
	return out, nil
}

// UpdateBlock replaces the content of the block with blockID. The new content
// must be of the block's type and pass schema validation.
func UpdateBlock(c model.Carousel, slideIndex int, blockID string, content model.Content) (model.Carousel, error) {
	if err := checkSlide("update block", c, slideIndex); err != nil {
		return c, err
	}
	blockIndex := c.Slides[slideIndex].BlockIndex(blockID)
	if blockIndex < 0 {
		return c, carouselerrors.NewInvariantError("update block", fmt.Sprintf("no block %q on slide %d", blockID, slideIndex+1))
	}

	current := c.Slides[slideIndex].Blocks[blockIndex]
	if content == nil || content.BlockType() != current.Type {
		return c, carouselerrors.NewValidationError("content", fmt.Sprintf("content does not match block type %s", current.Type), nil)
	}
	if err := schema.ValidateContent(content); err != nil {
		return c, err
	}

	out := c.Clone()
	out.Slides[slideIndex].Blocks[blockIndex].Content = model.CloneContent(content)
	renumber(out.Slides)
	return out, nil
}

// UpdateSlideStyles replaces a slide's styles.
func UpdateSlideStyles(c model.Carousel, slideIndex int, styles model.SlideStyles) (model.Carousel, error) {
	if err := checkSlide("update slide styles", c, slideIndex); err != nil {
		return c, err
	}

	out := c.Clone()
	slide := model.Slide{Styles: styles}.Clone()
	out.Slides[slideIndex].Styles = slide.Styles
	renumber(out.Slides)
	return out, nil
}

// SetTitle renames the carousel.
func SetTitle(c model.Carousel, title string) model.Carousel {
	out := c.Clone()
	out.Title = title
	return out
}

func mintSlideIDs(s *model.Slide) {
	s.ID = schema.NewID()
	for i := range s.Blocks {
		s.Blocks[i].ID = schema.NewID()
	}
}

func checkSlide(op string, c model.Carousel, index int) error {
	if index < 0 || index >= len(c.Slides) {
		return carouselerrors.NewInvariantError(op, fmt.Sprintf("slide index %d out of range [0,%d)", index, len(c.Slides)))
	}
	return nil
}

func checkBlock(op string, c model.Carousel, slideIndex, blockIndex int) error {
	if err := checkSlide(op, c, slideIndex); err != nil {
		return err
	}
	n := len(c.Slides[slideIndex].Blocks)
	if blockIndex < 0 || blockIndex >= n {
		return carouselerrors.NewInvariantError(op, fmt.Sprintf("block index %d out of range [0,%d)", blockIndex, n))
	}
	return nil
}

func insertAt[T any](items []T, index int, item T) []T {
	items = append(items, item)
	copy(items[index+1:], items[index:])
	items[index] = item
	return items
}

func move[T any](items []T, from, to int) []T {
	item := items[from]
	items = append(items[:from], items[from+1:]...)
	return insertAt(items, to, item)
}
