package model

// CanvasSize is the logical edge length of every slide. Slides are square.
const CanvasSize = 1080

// SlideType names the template a slide was created from.
type SlideType string

const (
	SlideCover      SlideType = "cover"
	SlideContent    SlideType = "content"
	SlideTip        SlideType = "tip"
	SlideList       SlideType = "list"
	SlideComparison SlideType = "comparison"
	SlideQuote      SlideType = "quote"
	SlideStat       SlideType = "stat"
	SlideCTA        SlideType = "cta"
	SlideBlank      SlideType = "blank"
)

// SlideTypes lists every slide template in picker order.
func SlideTypes() []SlideType {
	return []SlideType{SlideCover, SlideContent, SlideTip, SlideList, SlideComparison, SlideQuote, SlideStat, SlideCTA, SlideBlank}
}

// StyleKey identifies a background entry in the style catalog.
type StyleKey string

// PaddingPreset selects one of the fixed inner padding sizes.
type PaddingPreset string

const (
	PaddingCompact  PaddingPreset = "compact"
	PaddingNormal   PaddingPreset = "normal"
	PaddingSpacious PaddingPreset = "spacious"
)

// VerticalAlign positions the block stack inside the padded slide area.
type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignCenter VerticalAlign = "center"
	AlignBottom VerticalAlign = "bottom"
)

// Settings holds the logical canvas dimensions of a carousel.
type Settings struct {
	Width  int `json:"width" validate:"required,eqfield=Height"`
	Height int `json:"height" validate:"required"`
}

// DefaultSettings returns the square 1080 canvas used by every slide type.
func DefaultSettings() Settings {
	return Settings{Width: CanvasSize, Height: CanvasSize}
}

// Carousel is the top-level multi-slide document. It exclusively owns its slides.
type Carousel struct {
	ID       string   `json:"id" validate:"required"`
	Title    string   `json:"title" validate:"max=200"`
	Slides   []Slide  `json:"slides" validate:"required,min=1,dive"`
	Settings Settings `json:"settings"`
}

// BackgroundImage is a user supplied image that overrides the catalog background.
type BackgroundImage struct {
	URL  string `json:"url" validate:"required"`
	Path string `json:"path,omitempty"`
}

// SlideStyles describes how a slide's background and block stack are painted.
type SlideStyles struct {
	Background      StyleKey         `json:"background"`
	BackgroundImage *BackgroundImage `json:"backgroundImage,omitempty"`
	Padding         PaddingPreset    `json:"padding" validate:"omitempty,oneof=compact normal spacious"`
	VerticalAlign   VerticalAlign    `json:"verticalAlign" validate:"omitempty,oneof=top center bottom"`
}

// Slide is one page of the carousel. It exclusively owns its blocks.
type Slide struct {
	ID     string      `json:"id" validate:"required"`
	Type   SlideType   `json:"type"`
	Order  int         `json:"order" validate:"min=1"`
	Blocks []Block     `json:"blocks" validate:"dive"`
	Styles SlideStyles `json:"styles"`
}

// Clone returns a deep copy of the carousel. Identifiers are preserved.
func (c Carousel) Clone() Carousel {
	out := c
	if c.Slides != nil {
		out.Slides = make([]Slide, len(c.Slides))
		for i, s := range c.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the slide. Identifiers are preserved.
func (s Slide) Clone() Slide {
	out := s
	if s.Blocks != nil {
		out.Blocks = make([]Block, len(s.Blocks))
		for i, b := range s.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	if s.Styles.BackgroundImage != nil {
		img := *s.Styles.BackgroundImage
		out.Styles.BackgroundImage = &img
	}
	return out
}

// SlideIndex returns the position of the slide with the given id, or -1.
func (c Carousel) SlideIndex(id string) int {
	for i, s := range c.Slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// BlockIndex returns the position of the block with the given id, or -1.
func (s Slide) BlockIndex(id string) int {
	for i, b := range s.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
