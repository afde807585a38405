package schema

import (
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// NewID mints a fresh block or slide identifier. Identifiers are never
// derived from position.
func NewID() string {
	return uuid.NewString()
}

// DefaultContent returns the starting payload for a freshly inserted block.
// Unknown types get nil.
func DefaultContent(t model.BlockType) model.Content {
	switch t {
	case model.BlockHeading:
		return model.HeadingContent{TextBody: model.TextBody{Text: "Your headline", FontSize: model.SizeXL, Align: model.TextCenter, Bold: true}}
	case model.BlockSubheading:
		return model.SubheadingContent{TextBody: model.TextBody{Text: "A supporting line", FontSize: model.SizeLG, Align: model.TextCenter}}
	case model.BlockParagraph:
		return model.ParagraphContent{TextBody: model.TextBody{Text: "Write something worth reading.", FontSize: model.SizeBase, Align: model.TextLeft}}
	case model.BlockImage:
		return model.ImageContent{Fit: model.FitCover, Height: 480, BorderRadius: 24, Filter: model.FilterNone}
	case model.BlockIcon:
		return model.IconContent{Name: model.IconStar, Size: model.SizeLG}
	case model.BlockBadge:
		return model.BadgeContent{Label: "NEW"}
	case model.BlockDivider:
		return model.DividerContent{Style: model.DividerSolid, Thickness: 4, Width: 30}
	case model.BlockBranding:
		return model.BrandingContent{Label: "Your Name", Handle: "@handle"}
	case model.BlockQuote:
		return model.QuoteContent{Text: "Simplicity is prerequisite for reliability.", Author: "Edsger Dijkstra", FontSize: model.SizeBase}
	case model.BlockBulletList:
		return model.BulletListContent{Items: []string{"First point", "Second point", "Third point"}, BulletStyle: model.BulletDot, FontSize: model.SizeBase}
	case model.BlockNumber:
		return model.NumberContent{Value: "01", Label: "Step one", Size: model.SizeBase}
	default:
		return nil
	}
}

// NewBlock builds a block of type t with default content and a fresh id.
func NewBlock(t model.BlockType) model.Block {
	return model.Block{ID: NewID(), Type: t, Content: DefaultContent(t)}
}

// WithDefaults fills presentation fields left empty by an author or a
// generator. Text is never invented.
func WithDefaults(content model.Content) model.Content {
	switch c := content.(type) {
	case model.HeadingContent:
		c.TextBody = textDefaults(c.TextBody, model.SizeXL, model.TextCenter)
		return c
	case model.SubheadingContent:
		c.TextBody = textDefaults(c.TextBody, model.SizeLG, model.TextCenter)
		return c
	case model.ParagraphContent:
		c.TextBody = textDefaults(c.TextBody, model.SizeBase, model.TextLeft)
		return c
	case model.ImageContent:
		if c.Fit == "" {
			c.Fit = model.FitCover
		}
		if c.Filter == "" {
			c.Filter = model.FilterNone
		}
		if c.Height == 0 {
			c.Height = 480
		}
		return c
	case model.IconContent:
		if c.Name == "" {
			c.Name = model.IconStar
		}
		if c.Size == "" {
			c.Size = model.SizeLG
		}
		return c
	case model.DividerContent:
		if c.Style == "" {
			c.Style = model.DividerSolid
		}
		if c.Thickness == 0 {
			c.Thickness = 4
		}
		if c.Width == 0 {
			c.Width = 30
		}
		return c
	case model.QuoteContent:
		if c.FontSize == "" {
			c.FontSize = model.SizeBase
		}
		return c
	case model.BulletListContent:
		if c.BulletStyle == "" {
			c.BulletStyle = model.BulletDot
		}
		if c.FontSize == "" {
			c.FontSize = model.SizeBase
		}
		if c.Items == nil {
			c.Items = []string{}
		}
		return c
	case model.NumberContent:
		if c.Size == "" {
			c.Size = model.SizeBase
		}
		return c
	default:
		return content
	}
}

func textDefaults(body model.TextBody, size model.FontSize, align model.Align) model.TextBody {
	if body.FontSize == "" {
		body.FontSize = size
	}
	if body.Align == "" {
		body.Align = align
	}
	return body
}
