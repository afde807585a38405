// Package translate extracts the translatable text of a carousel as
// (path, value) pairs and writes translated values back by path, leaving
// every other field untouched.
package translate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Field names a translatable leaf of block content.
type Field string

const (
	FieldText  Field = "text"
	FieldLabel Field = "label"
	FieldItems Field = "items"
)

// Text is one translatable leaf.
type Text struct {
	Path  string `json:"path" yaml:"path"`
	Value string `json:"value" yaml:"value"`
}

// Path addresses a leaf as slideIndex.blockIndex.field[.itemIndex].
type Path struct {
	Slide int
	Block int
	Field Field
	Item  int
}

// String formats the path. Item is only written for the items field.
func (p Path) String() string {
	base := fmt.Sprintf("%d.%d.%s", p.Slide, p.Block, p.Field)
	if p.Field == FieldItems {
		return base + "." + strconv.Itoa(p.Item)
	}
	return base
}

// ParsePath is the inverse of Path.String.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 3 || len(parts) > 4 {
		return Path{}, fmt.Errorf("path %q: want slide.block.field[.item]", s)
	}

	slide, err := index(parts[0])
	if err != nil {
		return Path{}, fmt.Errorf("path %q: slide: %w", s, err)
	}
	block, err := index(parts[1])
	if err != nil {
		return Path{}, fmt.Errorf("path %q: block: %w", s, err)
	}

	p := Path{Slide: slide, Block: block, Field: Field(parts[2])}
	switch p.Field {
	case FieldText, FieldLabel:
		if len(parts) != 3 {
			return Path{}, fmt.Errorf("path %q: %s takes no item index", s, p.Field)
		}
	case FieldItems:
		if len(parts) != 4 {
			return Path{}, fmt.Errorf("path %q: items needs an item index", s)
		}
		if p.Item, err = index(parts[3]); err != nil {
			return Path{}, fmt.Errorf("path %q: item: %w", s, err)
		}
	default:
		return Path{}, fmt.Errorf("path %q: unknown field %q", s, p.Field)
	}
	return p, nil
}

func index(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, fmt.Errorf("%q is not an index", s)
	}
	return n, nil
}

// ExtractTexts walks slides and blocks in order and returns every non-empty
// text leaf.
func ExtractTexts(c model.Carousel) []Text {
	var out []Text
	for si, slide := range c.Slides {
		for bi, block := range slide.Blocks {
			for _, leaf := range leaves(block.Content) {
				if strings.TrimSpace(leaf.value) == "" {
					continue
				}
				p := Path{Slide: si, Block: bi, Field: leaf.field, Item: leaf.item}
				out = append(out, Text{Path: p.String(), Value: leaf.value})
			}
		}
	}
	return out
}

type leaf struct {
	field Field
	item  int
	value string
}

func leaves(content model.Content) []leaf {
	switch c := content.(type) {
	case model.HeadingContent:
		return []leaf{{field: FieldText, value: c.Text}}
	case model.SubheadingContent:
		return []leaf{{field: FieldText, value: c.Text}}
	case model.ParagraphContent:
		return []leaf{{field: FieldText, value: c.Text}}
	case model.QuoteContent:
		return []leaf{{field: FieldText, value: c.Text}}
	case model.BadgeContent:
		return []leaf{{field: FieldLabel, value: c.Label}}
	case model.BrandingContent:
		return []leaf{{field: FieldLabel, value: c.Label}}
	case model.NumberContent:
		return []leaf{{field: FieldLabel, value: c.Label}}
	case model.BulletListContent:
		return itemLeaves(c.Items)
	case model.UnknownContent:
		return rawLeaves(c.Raw)
	default:
		return nil
	}
}

func itemLeaves(items []string) []leaf {
	out := make([]leaf, len(items))
	for i, item := range items {
		out[i] = leaf{field: FieldItems, item: i, value: item}
	}
	return out
}

// rawLeaves reads text, label and items out of content this build does not
// model, so newer block types still get translated.
func rawLeaves(raw json.RawMessage) []leaf {
	var fields struct {
		Text  *string  `json:"text"`
		Label *string  `json:"label"`
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	var out []leaf
	if fields.Text != nil {
		out = append(out, leaf{field: FieldText, value: *fields.Text})
	}
	if fields.Label != nil {
		out = append(out, leaf{field: FieldLabel, value: *fields.Label})
	}
	return append(out, itemLeaves(fields.Items)...)
}

// ApplyTranslations returns a deep copy of c with the addressed leaves
// overwritten. Any invalid path fails the whole call and c is not modified.
func ApplyTranslations(c model.Carousel, texts []Text) (model.Carousel, error) {
	out := c.Clone()
	for _, t := range texts {
		p, err := ParsePath(t.Path)
		if err != nil {
			return c, carouselerrors.NewTranslationError(t.Path, err)
		}
		if p.Slide >= len(out.Slides) {
			return c, carouselerrors.NewTranslationError(t.Path, fmt.Errorf("no slide %d", p.Slide))
		}
		slide := &out.Slides[p.Slide]
		if p.Block >= len(slide.Blocks) {
			return c, carouselerrors.NewTranslationError(t.Path, fmt.Errorf("slide %d has no block %d", p.Slide, p.Block))
		}
		block := &slide.Blocks[p.Block]

		next, err := patch(block.Content, p, t.Value)
		if err != nil {
			return c, carouselerrors.NewTranslationError(t.Path, err)
		}
		block.Content = next
	}
	return out, nil
}

func patch(content model.Content, p Path, value string) (model.Content, error) {
	mismatch := fmt.Errorf("%s blocks have no %s leaf", typeOf(content), p.Field)

	switch c := content.(type) {
	case model.HeadingContent:
		if p.Field != FieldText {
			return nil, mismatch
		}
		c.Text = value
		return c, nil
	case model.SubheadingContent:
		if p.Field != FieldText {
			return nil, mismatch
		}
		c.Text = value
		return c, nil
	case model.ParagraphContent:
		if p.Field != FieldText {
			return nil, mismatch
		}
		c.Text = value
		return c, nil
	case model.QuoteContent:
		if p.Field != FieldText {
			return nil, mismatch
		}
		c.Text = value
		return c, nil
	case model.BadgeContent:
		if p.Field != FieldLabel {
			return nil, mismatch
		}
		c.Label = value
		return c, nil
	case model.BrandingContent:
		if p.Field != FieldLabel {
			return nil, mismatch
		}
		c.Label = value
		return c, nil
	case model.NumberContent:
		if p.Field != FieldLabel {
			return nil, mismatch
		}
		c.Label = value
		return c, nil
	case model.BulletListContent:
		if p.Field != FieldItems {
			return nil, mismatch
		}
		if p.Item >= len(c.Items) {
			return nil, fmt.Errorf("list has no item %d", p.Item)
		}
		c.Items[p.Item] = value
		return c, nil
	case model.UnknownContent:
		return patchRaw(c, p, value)
	default:
		return nil, mismatch
	}
}

// patchRaw rewrites one leaf of an opaque payload. An unchanged value leaves
// the payload bytes as they were.
func patchRaw(c model.UnknownContent, p Path, value string) (model.Content, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", c.Type, err)
	}
	raw, ok := fields[string(p.Field)]
	if !ok {
		return nil, fmt.Errorf("%s content has no %s", c.Type, p.Field)
	}

	var current string
	if p.Field == FieldItems {
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		if p.Item >= len(items) {
			return nil, fmt.Errorf("list has no item %d", p.Item)
		}
		current = items[p.Item]
		items[p.Item] = value
		if current != value {
			if raw, err := json.Marshal(items); err == nil {
				fields[string(p.Field)] = raw
			}
		}
	} else {
		if err := json.Unmarshal(raw, &current); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.Field, err)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[string(p.Field)] = encoded
	}

	if current == value {
		return c, nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	c.Raw = data
	return c, nil
}

func typeOf(content model.Content) model.BlockType {
	if content == nil {
		return "EMPTY"
	}
	return content.BlockType()
}
