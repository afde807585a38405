package document

import (
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
)

// Template describes a named starting point for a slide.
type Template struct {
	Type        model.SlideType
	Label       string
	Description string
}

// Templates lists the slide templates in picker order.
func Templates() []Template {
	return []Template{
		{model.SlideCover, "Cover", "Hook slide with badge, headline and your handle"},
		{model.SlideContent, "Content", "Headline followed by a paragraph"},
		{model.SlideTip, "Tip", "A single highlighted tip"},
		{model.SlideList, "List", "Headline and a bullet list"},
		{model.SlideComparison, "Comparison", "Before and after, split by a divider"},
		{model.SlideQuote, "Quote", "A large pull quote"},
		{model.SlideStat, "Stat", "One big number with context"},
		{model.SlideCTA, "Call to action", "Closing slide asking readers to follow"},
		{model.SlideBlank, "Blank", "Empty slide"},
	}
}

// NewCarousel starts a document with a single cover slide.
func NewCarousel(title string) model.Carousel {
	if title == "" {
		title = "Untitled carousel"
	}
	c := model.Carousel{
		ID:       schema.NewID(),
		Title:    title,
		Settings: model.DefaultSettings(),
		Slides:   []model.Slide{NewSlide(model.SlideCover)},
	}
	renumber(c.Slides)
	return c
}

// NewSlide builds a slide from a template with fresh ids. Unknown slide types
// produce a blank slide of that type. Order is left for the caller's renumber.
func NewSlide(t model.SlideType) model.Slide {
	s := model.Slide{
		ID:     schema.NewID(),
		Type:   t,
		Blocks: []model.Block{},
		Styles: model.SlideStyles{Background: "solid-dark", Padding: model.PaddingNormal, VerticalAlign: model.AlignCenter},
	}

	switch t {
	case model.SlideCover:
		s.Styles.Background = "gradient-sunset"
		s.Blocks = blocks(
			model.BadgeContent{Label: "NEW SERIES"},
			model.HeadingContent{TextBody: model.TextBody{Text: "Your big idea in one line", FontSize: model.SizeXXL, Align: model.TextCenter, Bold: true}},
			model.SubheadingContent{TextBody: model.TextBody{Text: "Swipe to learn more", FontSize: model.SizeBase, Align: model.TextCenter}},
			model.BrandingContent{Label: "Your Name", Handle: "@handle"},
		)
	case model.SlideContent:
		s.Styles.VerticalAlign = model.AlignTop
		s.Blocks = blocks(
			model.HeadingContent{TextBody: model.TextBody{Text: "Section title", FontSize: model.SizeLG, Align: model.TextLeft, Bold: true}},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Explain one idea clearly. Keep paragraphs short so they read well on a phone.", FontSize: model.SizeLG, Align: model.TextLeft}},
		)
	case model.SlideTip:
		s.Styles.Background = "solid-navy"
		s.Blocks = blocks(
			model.IconContent{Name: model.IconBolt, Size: model.SizeLG},
			model.BadgeContent{Label: "TIP"},
			model.HeadingContent{TextBody: model.TextBody{Text: "Do the simple thing first", FontSize: model.SizeLG, Align: model.TextCenter, Bold: true}},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Then measure before you optimise.", FontSize: model.SizeLG, Align: model.TextCenter}},
		)
	case model.SlideList:
		s.Styles.Background = "solid-light"
		s.Styles.VerticalAlign = model.AlignTop
		s.Blocks = blocks(
			model.HeadingContent{TextBody: model.TextBody{Text: "Three things to remember", FontSize: model.SizeLG, Align: model.TextLeft, Bold: true}},
			model.BulletListContent{Items: []string{"Start small", "Ship often", "Listen to feedback"}, BulletStyle: model.BulletCheck, FontSize: model.SizeLG},
		)
	case model.SlideComparison:
		s.Styles.Background = "solid-cream"
		s.Blocks = blocks(
			model.SubheadingContent{TextBody: model.TextBody{Text: "Before", FontSize: model.SizeBase, Align: model.TextCenter, Bold: true}},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Manual, slow and error prone.", FontSize: model.SizeLG, Align: model.TextCenter}},
			model.DividerContent{Style: model.DividerDashed, Thickness: 4, Width: 40},
			model.SubheadingContent{TextBody: model.TextBody{Text: "After", FontSize: model.SizeBase, Align: model.TextCenter, Bold: true}},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Automated, fast and repeatable.", FontSize: model.SizeLG, Align: model.TextCenter}},
		)
	case model.SlideQuote:
		s.Styles.Background = "gradient-purple"
		s.Blocks = blocks(
			model.QuoteContent{Text: "Simplicity is prerequisite for reliability.", Author: "Edsger Dijkstra", FontSize: model.SizeLG},
		)
	case model.SlideStat:
		s.Styles.Background = "mesh-aurora"
		s.Blocks = blocks(
			model.NumberContent{Value: "87%", Label: "of readers swipe past slide two", Size: model.SizeXL},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Make the first slides count.", FontSize: model.SizeLG, Align: model.TextCenter}},
		)
	case model.SlideCTA:
		s.Styles.Background = "gradient-ocean"
		s.Blocks = blocks(
			model.HeadingContent{TextBody: model.TextBody{Text: "Found this useful?", FontSize: model.SizeXL, Align: model.TextCenter, Bold: true}},
			model.ParagraphContent{TextBody: model.TextBody{Text: "Follow for more and share it with a friend.", FontSize: model.SizeLG, Align: model.TextCenter}},
			model.DividerContent{Style: model.DividerSolid, Thickness: 4, Width: 20},
			model.BrandingContent{Label: "Your Name", Handle: "@handle"},
		)
	}
	return s
}

func blocks(contents ...model.Content) []model.Block {
	out := make([]model.Block, len(contents))
	for i, content := range contents {
		out[i] = model.Block{ID: schema.NewID(), Type: content.BlockType(), Content: content}
	}
	return out
}
