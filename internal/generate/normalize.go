package generate

import (
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
)

// Normalize turns a fragment into a document: a fresh document id, fresh
// ids wherever one is missing or repeated, schema defaults on every block,
// default slide styles and order renumbered from 1. Authored text is kept
// as is. An empty fragment yields a single cover slide.
func Normalize(f Fragment) model.Carousel {
	if len(f.Slides) == 0 {
		return document.NewCarousel(f.Title)
	}

	c := document.NewCarousel(f.Title)
	c.Slides = make([]model.Slide, 0, len(f.Slides))

	slideIDs := make(map[string]struct{}, len(f.Slides))
	for _, src := range f.Slides {
		s := src.Clone()
		s.ID = uniqueID(s.ID, slideIDs)
		if s.Type == "" {
			s.Type = model.SlideContent
		}
		if s.Styles.Background == "" {
			s.Styles.Background = "solid-dark"
		}
		if s.Styles.Padding == "" {
			s.Styles.Padding = model.PaddingNormal
		}
		if s.Styles.VerticalAlign == "" {
			s.Styles.VerticalAlign = model.AlignCenter
		}

		blockIDs := make(map[string]struct{}, len(s.Blocks))
		blocks := make([]model.Block, 0, len(s.Blocks))
		for _, b := range s.Blocks {
			b.ID = uniqueID(b.ID, blockIDs)
			switch {
			case b.Content == nil:
				b.Content = schema.DefaultContent(b.Type)
				if b.Content == nil {
					continue
				}
			default:
				b.Content = schema.WithDefaults(b.Content)
				if _, unknown := b.Content.(model.UnknownContent); !unknown {
					b.Type = b.Content.BlockType()
				}
			}
			blocks = append(blocks, b)
		}
		s.Blocks = blocks
		c.Slides = append(c.Slides, s)
	}

	return document.Renumber(c)
}

func uniqueID(id string, seen map[string]struct{}) string {
	if _, dup := seen[id]; id == "" || dup {
		id = schema.NewID()
	}
	seen[id] = struct{}{}
	return id
}
