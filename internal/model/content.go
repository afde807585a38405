package model

import "encoding/json"

// BlockType is the closed set of content block kinds.
type BlockType string

const (
	BlockHeading    BlockType = "HEADING"
	BlockSubheading BlockType = "SUBHEADING"
	BlockParagraph  BlockType = "PARAGRAPH"
	BlockImage      BlockType = "IMAGE"
	BlockIcon       BlockType = "ICON"
	BlockBadge      BlockType = "BADGE"
	BlockDivider    BlockType = "DIVIDER"
	BlockBranding   BlockType = "BRANDING"
	BlockQuote      BlockType = "QUOTE"
	BlockBulletList BlockType = "BULLET_LIST"
	BlockNumber     BlockType = "NUMBER"
)

// BlockTypes lists every known block type in palette order.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockHeading, BlockSubheading, BlockParagraph, BlockImage, BlockIcon, BlockBadge,
		BlockDivider, BlockBranding, BlockQuote, BlockBulletList, BlockNumber,
	}
}

// Known reports whether t is one of the closed set of block types.
func (t BlockType) Known() bool {
	for _, known := range BlockTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// FontSize is a step on the per-block font size ladder.
type FontSize string

const (
	SizeBase FontSize = "base"
	SizeLG   FontSize = "lg"
	SizeXL   FontSize = "xl"
	SizeXXL  FontSize = "xxl"
)

// Align is horizontal text alignment.
type Align string

const (
	TextLeft   Align = "left"
	TextCenter Align = "center"
	TextRight  Align = "right"
)

// Content is the type-specific payload of a block. The set of
// implementations is closed: one struct per BlockType plus UnknownContent.
type Content interface {
	BlockType() BlockType
	cloneContent() Content
}

// TextBody is shared by the plain text block types.
type TextBody struct {
	Text     string   `json:"text"`
	FontSize FontSize `json:"fontSize,omitempty" validate:"omitempty,fontsize"`
	Align    Align    `json:"align,omitempty" validate:"omitempty,oneof=left center right"`
	Color    string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Bold     bool     `json:"bold,omitempty"`
}

type HeadingContent struct {
	TextBody
}

type SubheadingContent struct {
	TextBody
}

type ParagraphContent struct {
	TextBody
}

// ImageFit controls how an image fills its box.
type ImageFit string

const (
	FitCover   ImageFit = "cover"
	FitContain ImageFit = "contain"
)

// ImageFilter is a color treatment applied when the image is painted.
type ImageFilter string

const (
	FilterNone      ImageFilter = "none"
	FilterGrayscale ImageFilter = "grayscale"
	FilterSepia     ImageFilter = "sepia"
	FilterDim       ImageFilter = "dim"
)

// ImageContent is a raster image placed in the block stack. Src is nil until
// an upload has been accepted.
type ImageContent struct {
	Src          *string     `json:"src"`
	Path         string      `json:"path,omitempty"`
	Fit          ImageFit    `json:"fit,omitempty" validate:"omitempty,oneof=cover contain"`
	Height       int         `json:"height,omitempty" validate:"omitempty,min=80,max=1080"`
	BorderRadius int         `json:"borderRadius" validate:"min=0,max=540"`
	Filter       ImageFilter `json:"filter,omitempty" validate:"omitempty,oneof=none grayscale sepia dim"`
	Shadow       bool        `json:"shadow"`
	Border       bool        `json:"border"`
	BorderColor  string      `json:"borderColor,omitempty" validate:"omitempty,hexcolor"`
}

// IconName is one of the built-in vector icons.
type IconName string

const (
	IconStar  IconName = "star"
	IconCheck IconName = "check"
	IconArrow IconName = "arrow"
	IconBolt  IconName = "bolt"
	IconHeart IconName = "heart"
	IconPlus  IconName = "plus"
	IconDot   IconName = "dot"
)

// IconNames lists the built-in icons in picker order.
func IconNames() []IconName {
	return []IconName{IconStar, IconCheck, IconArrow, IconBolt, IconHeart, IconPlus, IconDot}
}

type IconContent struct {
	Name  IconName `json:"name" validate:"required,oneof=star check arrow bolt heart plus dot"`
	Size  FontSize `json:"size,omitempty" validate:"omitempty,fontsize"`
	Color string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type BadgeContent struct {
	Label      string `json:"label"`
	Color      string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Background string `json:"background,omitempty" validate:"omitempty,hexcolor"`
}

// DividerStyle is the stroke pattern of a divider.
type DividerStyle string

const (
	DividerSolid  DividerStyle = "solid"
	DividerDashed DividerStyle = "dashed"
	DividerDotted DividerStyle = "dotted"
)

type DividerContent struct {
	Style     DividerStyle `json:"style,omitempty" validate:"omitempty,oneof=solid dashed dotted"`
	Color     string       `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Thickness int          `json:"thickness,omitempty" validate:"omitempty,min=1,max=16"`
	Width     int          `json:"width,omitempty" validate:"omitempty,min=10,max=100"`
}

type BrandingContent struct {
	Label  string `json:"label"`
	Handle string `json:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Color  string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type QuoteContent struct {
	Text     string   `json:"text"`
	Author   string   `json:"author,omitempty"`
	FontSize FontSize `json:"fontSize,omitempty" validate:"omitempty,fontsize"`
	Color    string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// BulletStyle is the marker drawn before each list item.
type BulletStyle string

const (
	BulletDot    BulletStyle = "dot"
	BulletCheck  BulletStyle = "check"
	BulletArrow  BulletStyle = "arrow"
	BulletNumber BulletStyle = "number"
	BulletDash   BulletStyle = "dash"
)

type BulletListContent struct {
	Items       []string    `json:"items"`
	BulletStyle BulletStyle `json:"bulletStyle,omitempty" validate:"omitempty,oneof=dot check arrow number dash"`
	Color       string      `json:"color,omitempty" validate:"omitempty,hexcolor"`
	FontSize    FontSize    `json:"fontSize,omitempty" validate:"omitempty,fontsize"`
}

type NumberContent struct {
	Value string   `json:"value"`
	Label string   `json:"label,omitempty"`
	Size  FontSize `json:"size,omitempty" validate:"omitempty,fontsize"`
	Color string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UnknownContent keeps the raw payload of a block whose type this build does
// not recognise, so a newer document survives a load/save cycle. Keys, their
// order and number literals are kept; whitespace is normalized on encode.
type UnknownContent struct {
	Type BlockType
	Raw  json.RawMessage
}

func (HeadingContent) BlockType() BlockType    { return BlockHeading }
func (SubheadingContent) BlockType() BlockType { return BlockSubheading }
func (ParagraphContent) BlockType() BlockType  { return BlockParagraph }
func (ImageContent) BlockType() BlockType      { return BlockImage }
func (IconContent) BlockType() BlockType       { return BlockIcon }
func (BadgeContent) BlockType() BlockType      { return BlockBadge }
func (DividerContent) BlockType() BlockType    { return BlockDivider }
func (BrandingContent) BlockType() BlockType   { return BlockBranding }
func (QuoteContent) BlockType() BlockType      { return BlockQuote }
func (BulletListContent) BlockType() BlockType { return BlockBulletList }
func (NumberContent) BlockType() BlockType     { return BlockNumber }
func (u UnknownContent) BlockType() BlockType  { return u.Type }

func (c HeadingContent) cloneContent() Content    { return c }
func (c SubheadingContent) cloneContent() Content { return c }
func (c ParagraphContent) cloneContent() Content  { return c }
func (c IconContent) cloneContent() Content       { return c }
func (c BadgeContent) cloneContent() Content      { return c }
func (c DividerContent) cloneContent() Content    { return c }
func (c BrandingContent) cloneContent() Content   { return c }
func (c QuoteContent) cloneContent() Content      { return c }
func (c NumberContent) cloneContent() Content     { return c }

func (c ImageContent) cloneContent() Content {
	if c.Src != nil {
		src := *c.Src
		c.Src = &src
	}
	return c
}

func (c BulletListContent) cloneContent() Content {
	if c.Items != nil {
		c.Items = append([]string(nil), c.Items...)
	}
	return c
}

func (c UnknownContent) cloneContent() Content {
	if c.Raw != nil {
		c.Raw = append(json.RawMessage(nil), c.Raw...)
	}
	return c
}

// CloneContent deep-copies block content. A nil content stays nil.
func CloneContent(c Content) Content {
	if c == nil {
		return nil
	}
	return c.cloneContent()
}

// StringPtr is a convenience for building ImageContent literals.
func StringPtr(s string) *string {
	return &s
}
