package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// Padding presets in logical units.
const (
	PaddingCompact  = 48.0
	PaddingNormal   = 80.0
	PaddingSpacious = 120.0
)

// BlockGap is the vertical space between stacked blocks.
const BlockGap = 32.0

// Padding returns the inner padding for a preset; unknown presets use normal.
func Padding(preset model.PaddingPreset) float64 {
	switch preset {
	case model.PaddingCompact:
		return PaddingCompact
	case model.PaddingSpacious:
		return PaddingSpacious
	default:
		return PaddingNormal
	}
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorOr parses s and falls back to def when s is empty or malformed.
func ColorOr(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	c, err := ParseHex(s)
	if err != nil {
		return def
	}
	return c
}

// Hex formats c as #rrggbb, appending alpha when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func mustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
