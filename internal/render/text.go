package render

import (
	"strings"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

// Measurer reports text advances in logical units.
type Measurer interface {
	Advance(text string, size float64, weight typeface.Weight) float64
}

// Font size ladders in logical units, indexed base, lg, xl, xxl.
var (
	headingLadder    = [4]float64{56, 72, 88, 104}
	subheadingLadder = [4]float64{32, 40, 48, 56}
	paragraphLadder  = [4]float64{24, 28, 32, 40}
	quoteLadder      = [4]float64{32, 40, 48, 56}
	bulletLadder     = [4]float64{24, 28, 32, 36}
	numberLadder     = [4]float64{96, 128, 160, 192}
	iconLadder       = [4]float64{48, 64, 96, 128}
)

const (
	badgeSize    = 22.0
	brandingSize = 24.0
	captionSize  = 28.0
)

// FontSizeFor maps a ladder step to pixels for the given block type.
func FontSizeFor(t model.BlockType, size model.FontSize) float64 {
	ladder := paragraphLadder
	switch t {
	case model.BlockHeading:
		ladder = headingLadder
	case model.BlockSubheading:
		ladder = subheadingLadder
	case model.BlockQuote:
		ladder = quoteLadder
	case model.BlockBulletList:
		ladder = bulletLadder
	case model.BlockNumber:
		ladder = numberLadder
	case model.BlockIcon:
		ladder = iconLadder
	case model.BlockBadge:
		return badgeSize
	case model.BlockBranding:
		return brandingSize
	}
	return ladder[step(size)]
}

func step(size model.FontSize) int {
	switch size {
	case model.SizeLG:
		return 1
	case model.SizeXL:
		return 2
	case model.SizeXXL:
		return 3
	default:
		return 0
	}
}

// wrap breaks text into lines no wider than max. Explicit newlines are kept;
// words longer than a line are split by rune.
func wrap(m Measurer, text string, size float64, weight typeface.Weight, max float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.Advance(candidate, size, weight) <= max {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for m.Advance(word, size, weight) > max && utf8.RuneCountInString(word) > 1 {
				head, tail := splitToWidth(m, word, size, weight, max)
				lines = append(lines, head)
				word = tail
			}
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

func splitToWidth(m Measurer, word string, size float64, weight typeface.Weight, max float64) (string, string) {
	runes := []rune(word)
	cut := 1
	for i := 2; i <= len(runes); i++ {
		if m.Advance(string(runes[:i]), size, weight) > max {
			break
		}
		cut = i
	}
	return string(runes[:cut]), string(runes[cut:])
}

// textLines lays out wrapped text as one node per line inside width w.
func textLines(m Measurer, box *Box, text string, size float64, weight typeface.Weight, lineHeight float64, align model.Align, w float64, y float64, n Node) float64 {
	lh := size * lineHeight
	for _, line := range wrap(m, text, size, weight, w) {
		adv := m.Advance(line, size, weight)
		x := 0.0
		switch align {
		case model.TextCenter:
			x = (w - adv) / 2
		case model.TextRight:
			x = w - adv
		}
		node := n
		node.Kind = NodeText
		node.Text = line
		node.Size = size
		node.Weight = weight
		node.Frame = Rect{X: x, Y: y, W: adv, H: lh}
		box.add(node)
		y += lh
	}
	return y
}
