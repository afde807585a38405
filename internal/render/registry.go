package render

import (
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
)

// Env is what a strategy knows about the slide it is drawn on.
type Env struct {
	Width   float64
	Paint   style.Paint
	Measure Measurer
}

// Strategy draws and edits one block type. Static output is pure
// presentation; Editable returns controls that replace the content wholesale
// through onChange.
type Strategy interface {
	Static(content model.Content, env Env) Box
	Editable(content model.Content, onChange func(model.Content)) []Control
}

// For returns the strategy for a block type. Types this build does not know
// get the plain text strategy, so a document never fails to render.
func For(t model.BlockType) Strategy {
	switch t {
	case model.BlockHeading:
		return headingStrategy{}
	case model.BlockSubheading:
		return subheadingStrategy{}
	case model.BlockParagraph:
		return paragraphStrategy{}
	case model.BlockImage:
		return imageStrategy{}
	case model.BlockIcon:
		return iconStrategy{}
	case model.BlockBadge:
		return badgeStrategy{}
	case model.BlockDivider:
		return dividerStrategy{}
	case model.BlockBranding:
		return brandingStrategy{}
	case model.BlockQuote:
		return quoteStrategy{}
	case model.BlockBulletList:
		return bulletListStrategy{}
	case model.BlockNumber:
		return numberStrategy{}
	default:
		return plainTextStrategy{}
	}
}

// IsFallback reports whether t is drawn by the plain text strategy.
func IsFallback(t model.BlockType) bool {
	_, ok := For(t).(plainTextStrategy)
	return ok
}
