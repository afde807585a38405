package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

func deck(n int) model.Carousel {
	c := NewCarousel("Deck")
	for len(c.Slides) < n {
		c = AddSlide(c, NewSlide(model.SlideContent))
	}
	return c
}

func slideIDs(c model.Carousel) []string {
	ids := make([]string, len(c.Slides))
	for i, s := range c.Slides {
		ids[i] = s.ID
	}
	return ids
}

func requireOrdered(t *testing.T, c model.Carousel) {
	t.Helper()
	for i, s := range c.Slides {
		require.Equal(t, i+1, s.Order, "slide %d", i)
	}
}

func TestAddSlideAppends(t *testing.T) {
	t.Parallel()

	c := deck(2)
	s := NewSlide(model.SlideQuote)
	out := AddSlide(c, s)

	require.Len(t, c.Slides, 2)
	require.Len(t, out.Slides, 3)
	require.Equal(t, s.ID, out.Slides[2].ID)
	requireOrdered(t, out)
}

func TestDeleteSlideNeverEmptiesCarousel(t *testing.T) {
	t.Parallel()

	c := deck(1)
	out, err := DeleteSlide(c, 0)

	var invErr *carouselerrors.InvariantError
	require.ErrorAs(t, err, &invErr)
	require.Len(t, out.Slides, 1)
	require.Equal(t, c, out)
}

func TestDeleteSlideRenumbers(t *testing.T) {
	t.Parallel()

	c := deck(4)
	out, err := DeleteSlide(c, 1)
	require.NoError(t, err)

	require.Len(t, out.Slides, 3)
	require.Equal(t, []string{c.Slides[0].ID, c.Slides[2].ID, c.Slides[3].ID}, slideIDs(out))
	requireOrdered(t, out)
	requireOrdered(t, c)
	require.Len(t, c.Slides, 4)
}

func TestDuplicateSlideMintsFreshIDs(t *testing.T) {
	t.Parallel()

	c := deck(4)
	c.Slides[2] = NewSlide(model.SlideList)
	c = Renumber(c)

	out, err := DuplicateSlide(c, 2)
	require.NoError(t, err)
	require.Len(t, out.Slides, 5)
	requireOrdered(t, out)

	src, dup := out.Slides[2], out.Slides[3]
	require.Equal(t, c.Slides[2], src)
	require.NotEqual(t, src.ID, dup.ID)
	require.Len(t, dup.Blocks, len(src.Blocks))
	for i := range src.Blocks {
		require.NotEqual(t, src.Blocks[i].ID, dup.Blocks[i].ID)
		require.Equal(t, src.Blocks[i].Type, dup.Blocks[i].Type)
		require.Equal(t, src.Blocks[i].Content, dup.Blocks[i].Content)
	}
	require.Equal(t, src.Styles, dup.Styles)

	// no aliasing between source and copy
	items := dup.Blocks[1].Content.(model.BulletListContent).Items
	items[0] = "changed"
	require.Equal(t, "Start small", src.Blocks[1].Content.(model.BulletListContent).Items[0])
}

func TestMoveSlideRoundTripRestoresOrder(t *testing.T) {
	t.Parallel()

	c := deck(5)
	last := len(c.Slides) - 1

	moved, err := MoveSlide(c, 0, last)
	require.NoError(t, err)
	require.Equal(t, c.Slides[0].ID, moved.Slides[last].ID)
	requireOrdered(t, moved)

	back, err := MoveSlide(moved, last, 0)
	require.NoError(t, err)
	require.Equal(t, c, back)
}

func TestMoveSlideToSameIndexIsNoop(t *testing.T) {
	t.Parallel()

	c := deck(3)
	out, err := MoveSlide(c, 1, 1)
	require.NoError(t, err)
	require.Equal(t, c, out)
}

func TestOutOfRangeIndicesAreRefused(t *testing.T) {
	t.Parallel()

	c := deck(2)
	_, err := MoveSlide(c, 0, 2)
	require.Error(t, err)
	_, err = DeleteSlide(c, -1)
	require.Error(t, err)
	_, err = DeleteBlock(c, 0, 99)
	require.Error(t, err)
}

func TestOrderInvariantAfterEveryMutation(t *testing.T) {
	t.Parallel()

	c := deck(3)
	steps := []func(model.Carousel) (model.Carousel, error){
		func(c model.Carousel) (model.Carousel, error) { return AddSlide(c, NewSlide(model.SlideTip)), nil },
		func(c model.Carousel) (model.Carousel, error) { return DuplicateSlide(c, 0) },
		func(c model.Carousel) (model.Carousel, error) { return MoveSlide(c, 4, 1) },
		func(c model.Carousel) (model.Carousel, error) { return DeleteSlide(c, 2) },
		func(c model.Carousel) (model.Carousel, error) {
			return AddBlock(c, 0, schema.NewBlock(model.BlockDivider))
		},
		func(c model.Carousel) (model.Carousel, error) { return DuplicateBlock(c, 0, 0) },
		func(c model.Carousel) (model.Carousel, error) { return ReorderBlocks(c, 0, 0, 2) },
		func(c model.Carousel) (model.Carousel, error) { return DeleteBlock(c, 0, 1) },
		func(c model.Carousel) (model.Carousel, error) {
			return UpdateSlideStyles(c, 1, model.SlideStyles{Background: "mesh-candy", Padding: model.PaddingCompact})
		},
	}

	for i, step := range steps {
		var err error
		c, err = step(c)
		require.NoError(t, err, "step %d", i)
		requireOrdered(t, c)
		require.NoError(t, schema.ValidateCarousel(c), "step %d", i)
	}
}

func TestReorderBlocksKeepsIdentity(t *testing.T) {
	t.Parallel()

	c := deck(1)
	before := c.Slides[0].Blocks

	out, err := ReorderBlocks(c, 0, 0, len(before)-1)
	require.NoError(t, err)

	after := out.Slides[0].Blocks
	require.Equal(t, before[0].ID, after[len(after)-1].ID)
	require.Equal(t, before[1].ID, after[0].ID)
	require.Equal(t, before[0].ID, c.Slides[0].Blocks[0].ID)
}

func TestUpdateBlockReplacesContent(t *testing.T) {
	t.Parallel()

	c := deck(1)
	heading := c.Slides[0].Blocks[1]
	require.Equal(t, model.BlockHeading, heading.Type)

	next := model.HeadingContent{TextBody: model.TextBody{Text: "Changed", FontSize: model.SizeLG}}
	out, err := UpdateBlock(c, 0, heading.ID, next)
	require.NoError(t, err)
	require.Equal(t, next, out.Slides[0].Blocks[1].Content)
	require.NotEqual(t, next, c.Slides[0].Blocks[1].Content)

	_, err = UpdateBlock(c, 0, heading.ID, model.QuoteContent{Text: "wrong type"})
	var ve *carouselerrors.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = UpdateBlock(c, 0, heading.ID, model.HeadingContent{TextBody: model.TextBody{Color: "nope"}})
	require.Error(t, err)
}

func TestAddBlockRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	c := deck(1)
	_, err := AddBlock(c, 0, c.Slides[0].Blocks[0])
	require.Error(t, err)

	out, err := AddBlock(c, 0, model.Block{Type: model.BlockBadge, Content: model.BadgeContent{Label: "x"}})
	require.NoError(t, err)
	require.NotEmpty(t, out.Slides[0].Blocks[len(out.Slides[0].Blocks)-1].ID)
}

func TestDragAppliesMoveOnEveryBoundaryCrossing(t *testing.T) {
	t.Parallel()

	c := deck(4)
	ids := slideIDs(c)

	drag, err := StartSlideDrag(c, 0)
	require.NoError(t, err)

	drag, c, err = drag.Over(c, 1)
	require.NoError(t, err)
	require.Equal(t, []string{ids[1], ids[0], ids[2], ids[3]}, slideIDs(c))

	drag, c, err = drag.Over(c, 2)
	require.NoError(t, err)
	require.Equal(t, []string{ids[1], ids[2], ids[0], ids[3]}, slideIDs(c))

	// moving back past the origin is just as continuous
	drag, c, err = drag.Over(c, 0)
	require.NoError(t, err)
	require.Equal(t, []string{ids[0], ids[1], ids[2], ids[3]}, slideIDs(c))
	require.False(t, drag.Moved())

	drag, c, err = drag.Over(c, 99)
	require.NoError(t, err)
	require.Equal(t, ids[0], c.Slides[3].ID)
	require.Equal(t, 3, drag.Index)
	requireOrdered(t, c)
}

func TestBlockDragFinalOrderDependsOnlyOnFinalPosition(t *testing.T) {
	t.Parallel()

	c := deck(1)
	blockIDs := func(c model.Carousel) []string {
		var out []string
		for _, b := range c.Slides[0].Blocks {
			out = append(out, b.ID)
		}
		return out
	}

	direct, err := ReorderBlocks(c, 0, 0, 2)
	require.NoError(t, err)

	drag, err := StartBlockDrag(c, 0, 0)
	require.NoError(t, err)
	wandering := c
	for _, target := range []int{1, 3, 2, 1, 2} {
		drag, wandering, err = drag.Over(wandering, target)
		require.NoError(t, err)
	}
	require.Equal(t, blockIDs(direct), blockIDs(wandering))

	restored, err := drag.Cancel(wandering)
	require.NoError(t, err)
	require.Equal(t, blockIDs(c), blockIDs(restored))
}

func TestEveryTemplateIsValid(t *testing.T) {
	t.Parallel()

	c := NewCarousel("")
	require.Equal(t, "Untitled carousel", c.Title)

	for _, tmpl := range Templates() {
		c = AddSlide(c, NewSlide(tmpl.Type))
	}
	require.Len(t, c.Slides, len(Templates())+1)
	require.NoError(t, schema.ValidateCarousel(c))
	require.Empty(t, NewSlide(model.SlideBlank).Blocks)
}
