package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Block is one typed content unit placed on a slide. Content's concrete type
// is determined by Type.
type Block struct {
	ID      string
	Type    BlockType
	Content Content
}

type blockWire struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Clone returns a deep copy of the block with the same identifier.
func (b Block) Clone() Block {
	return Block{ID: b.ID, Type: b.Type, Content: CloneContent(b.Content)}
}

// MarshalJSON writes the block as {id, type, content}.
func (b Block) MarshalJSON() ([]byte, error) {
	wire := blockWire{ID: b.ID, Type: b.Type}

	switch c := b.Content.(type) {
	case nil:
		wire.Content = json.RawMessage("null")
	case UnknownContent:
		if len(c.Raw) == 0 {
			wire.Content = json.RawMessage("null")
		} else {
			wire.Content = c.Raw
		}
	default:
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode %s content: %w", b.Type, err)
		}
		wire.Content = data
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes the content payload according to the block type.
// Unrecognised types keep their raw payload in UnknownContent.
func (b *Block) UnmarshalJSON(data []byte) error {
	var wire blockWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	b.ID = wire.ID
	b.Type = wire.Type

	content, err := decodeContent(wire.Type, wire.Content)
	if err != nil {
		return fmt.Errorf("block %s: %w", wire.ID, err)
	}
	b.Content = content
	return nil
}

func decodeContent(t BlockType, raw json.RawMessage) (Content, error) {
	empty := len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	switch t {
	case BlockHeading:
		return decodeInto[HeadingContent](raw, empty)
	case BlockSubheading:
		return decodeInto[SubheadingContent](raw, empty)
	case BlockParagraph:
		return decodeInto[ParagraphContent](raw, empty)
	case BlockImage:
		return decodeInto[ImageContent](raw, empty)
	case BlockIcon:
		return decodeInto[IconContent](raw, empty)
	case BlockBadge:
		return decodeInto[BadgeContent](raw, empty)
	case BlockDivider:
		return decodeInto[DividerContent](raw, empty)
	case BlockBranding:
		return decodeInto[BrandingContent](raw, empty)
	case BlockQuote:
		return decodeInto[QuoteContent](raw, empty)
	case BlockBulletList:
		return decodeInto[BulletListContent](raw, empty)
	case BlockNumber:
		return decodeInto[NumberContent](raw, empty)
	default:
		var keep json.RawMessage
		if !empty {
			keep = append(json.RawMessage(nil), raw...)
		}
		return UnknownContent{Type: t, Raw: keep}, nil
	}
}

func decodeInto[T Content](raw json.RawMessage, empty bool) (Content, error) {
	var out T
	if empty {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", out.BlockType(), err)
	}
	return out, nil
}
