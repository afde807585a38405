package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

const defaultSlideCount = 5

// OutlineGenerator builds a fragment offline: a cover stating the
// hypothesis, one slide per point and a closing call to action. It is the
// fallback when no generation service is configured.
type OutlineGenerator struct {
	// Handle is written into the branding blocks.
	Handle string
}

// GenerateFromHypothesis implements Generator.
func (g OutlineGenerator) GenerateFromHypothesis(ctx context.Context, p Params) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}

	count := p.SlideCount
	if count == 0 {
		count = max(defaultSlideCount, len(p.Points)+2)
	}
	count = min(max(count, 2), MaxSlides)

	hypothesis := strings.TrimSpace(p.Hypothesis)
	f := Fragment{Title: hypothesis}

	cover := document.NewSlide(model.SlideCover)
	for i, b := range cover.Blocks {
		switch c := b.Content.(type) {
		case model.BadgeContent:
			if p.Audience != "" {
				c.Label = strings.ToUpper(p.Audience)
			}
			cover.Blocks[i].Content = c
		case model.HeadingContent:
			c.Text = hypothesis
			cover.Blocks[i].Content = c
		case model.BrandingContent:
			if g.Handle != "" {
				c.Handle = g.Handle
			}
			cover.Blocks[i].Content = c
		}
	}
	f.Slides = append(f.Slides, cover)

	for i := 0; i < count-2; i++ {
		point := fmt.Sprintf("Point %d", i+1)
		if i < len(p.Points) {
			point = p.Points[i]
		}
		f.Slides = append(f.Slides, pointSlide(i, point))
	}

	cta := document.NewSlide(model.SlideCTA)
	for i, b := range cta.Blocks {
		if c, ok := b.Content.(model.BrandingContent); ok && g.Handle != "" {
			c.Handle = g.Handle
			cta.Blocks[i].Content = c
		}
	}
	f.Slides = append(f.Slides, cta)
	return f, nil
}

// pointSlide alternates tip and stat layouts so long decks do not repeat.
func pointSlide(i int, point string) model.Slide {
	if i%2 == 1 {
		s := document.NewSlide(model.SlideStat)
		for j, b := range s.Blocks {
			switch c := b.Content.(type) {
			case model.NumberContent:
				c.Value = fmt.Sprintf("%02d", i+1)
				s.Blocks[j].Content = c
			case model.ParagraphContent:
				c.Text = point
				s.Blocks[j].Content = c
			}
		}
		return s
	}

	s := document.NewSlide(model.SlideTip)
	for j, b := range s.Blocks {
		switch c := b.Content.(type) {
		case model.BadgeContent:
			c.Label = fmt.Sprintf("TIP %d", i+1)
			s.Blocks[j].Content = c
		case model.HeadingContent:
			c.Text = point
			s.Blocks[j].Content = c
		}
	}
	return s
}
