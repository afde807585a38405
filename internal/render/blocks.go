package render

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

type (
	headingStrategy    struct{}
	subheadingStrategy struct{}
	paragraphStrategy  struct{}
	imageStrategy      struct{}
	iconStrategy       struct{}
	badgeStrategy      struct{}
	dividerStrategy    struct{}
	brandingStrategy   struct{}
	quoteStrategy      struct{}
	bulletListStrategy struct{}
	numberStrategy     struct{}
	plainTextStrategy  struct{}
)

func (headingStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.HeadingContent)
	return textBlock(env, c.TextBody, model.BlockHeading, true, 1.15, env.Paint.TextColor())
}

func (subheadingStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.SubheadingContent)
	return textBlock(env, c.TextBody, model.BlockSubheading, false, 1.25, env.Paint.MutedColor())
}

func (paragraphStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.ParagraphContent)
	return textBlock(env, c.TextBody, model.BlockParagraph, false, 1.5, env.Paint.TextColor())
}

func textBlock(env Env, body model.TextBody, t model.BlockType, forceBold bool, lineHeight float64, def color.RGBA) Box {
	size := FontSizeFor(t, body.FontSize)
	weight := typeface.Regular
	if body.Bold || forceBold {
		weight = typeface.Bold
	}

	box := Box{W: env.Width}
	box.H = textLines(env.Measure, &box, body.Text, size, weight, lineHeight, body.Align, env.Width, 0, Node{Color: style.ColorOr(body.Color, def)})
	return box
}

func (imageStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.ImageContent)

	h := float64(c.Height)
	if h <= 0 {
		h = 480
	}
	frame := Rect{W: env.Width, H: h}
	radius := math.Min(float64(c.BorderRadius), math.Min(h, env.Width)/2)
	box := Box{W: env.Width, H: h}

	if c.Shadow {
		box.add(Node{Kind: NodeRect, Frame: frame.Offset(0, 12), Fill: color.RGBA{A: 64}, Radius: radius})
	}

	if c.Src == nil || *c.Src == "" {
		fill := color.RGBA{R: 255, G: 255, B: 255, A: 26}
		if env.Paint.Tone == style.ToneLight {
			fill = color.RGBA{A: 20}
		}
		box.add(Node{Kind: NodeRect, Frame: frame, Fill: fill, Radius: radius})

		label := "Add an image"
		adv := env.Measure.Advance(label, captionSize, typeface.Regular)
		lh := captionSize * 1.2
		box.add(Node{
			Kind:  NodeText,
			Text:  label,
			Size:  captionSize,
			Color: env.Paint.MutedColor(),
			Frame: Rect{X: (env.Width - adv) / 2, Y: (h - lh) / 2, W: adv, H: lh},
		})
	} else {
		fit := c.Fit
		if fit == "" {
			fit = model.FitCover
		}
		box.add(Node{Kind: NodeImage, Frame: frame, Src: *c.Src, Fit: fit, Filter: c.Filter, Radius: radius})
	}

	if c.Border {
		box.add(Node{Kind: NodeRect, Frame: frame, Color: style.ColorOr(c.BorderColor, env.Paint.Accent), Stroke: 4, Radius: radius})
	}
	return box
}

func (iconStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.IconContent)
	name := c.Name
	if name == "" {
		name = model.IconStar
	}

	size := FontSizeFor(model.BlockIcon, c.Size)
	box := Box{W: env.Width, H: size}
	box.add(Node{
		Kind:  NodeIcon,
		Icon:  name,
		Color: style.ColorOr(c.Color, env.Paint.Accent),
		Frame: Rect{X: (env.Width - size) / 2, W: size, H: size},
	})
	return box
}

func (badgeStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.BadgeContent)

	const (
		height = 48.0
		padX   = 20.0
	)
	adv := env.Measure.Advance(c.Label, badgeSize, typeface.Bold)
	w := adv + 2*padX
	x := (env.Width - w) / 2
	fill := style.ColorOr(c.Background, env.Paint.Accent)
	lh := badgeSize * 1.2

	box := Box{W: env.Width, H: height}
	box.add(Node{Kind: NodeRect, Frame: Rect{X: x, W: w, H: height}, Fill: fill, Radius: height / 2})
	box.add(Node{
		Kind:   NodeText,
		Text:   c.Label,
		Size:   badgeSize,
		Weight: typeface.Bold,
		Color:  style.ColorOr(c.Color, contrast(fill)),
		Frame:  Rect{X: x + padX, Y: (height - lh) / 2, W: adv, H: lh},
	})
	return box
}

func (dividerStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.DividerContent)

	thickness := float64(c.Thickness)
	if thickness <= 0 {
		thickness = 4
	}
	pct := float64(c.Width)
	if pct <= 0 {
		pct = 30
	}
	w := env.Width * pct / 100

	var dash []float64
	switch c.Style {
	case model.DividerDashed:
		dash = []float64{thickness * 4, thickness * 2}
	case model.DividerDotted:
		dash = []float64{thickness, thickness * 1.5}
	}

	box := Box{W: env.Width, H: thickness}
	box.add(Node{
		Kind:   NodeRect,
		Frame:  Rect{X: (env.Width - w) / 2, W: w, H: thickness},
		Fill:   style.ColorOr(c.Color, env.Paint.Accent),
		Radius: thickness / 2,
		Dash:   dash,
	})
	return box
}

func (brandingStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.BrandingContent)

	const (
		avatar = 56.0
		gap    = 16.0
	)
	handleSize := brandingSize * 0.85
	labelAdv := env.Measure.Advance(c.Label, brandingSize, typeface.Bold)
	handleAdv := env.Measure.Advance(c.Handle, handleSize, typeface.Regular)
	row := avatar + gap + math.Max(labelAdv, handleAdv)
	x := (env.Width - row) / 2
	accent := env.Paint.Accent

	box := Box{W: env.Width, H: avatar}
	avatarFrame := Rect{X: x, W: avatar, H: avatar}
	if c.Avatar != "" {
		box.add(Node{Kind: NodeImage, Frame: avatarFrame, Src: c.Avatar, Fit: model.FitCover, Radius: avatar / 2})
	} else {
		box.add(Node{Kind: NodeEllipse, Frame: avatarFrame, Fill: accent})
		initial := initialOf(c.Label)
		adv := env.Measure.Advance(initial, brandingSize, typeface.Bold)
		box.add(Node{
			Kind:   NodeText,
			Text:   initial,
			Size:   brandingSize,
			Weight: typeface.Bold,
			Color:  contrast(accent),
			Frame:  Rect{X: x + (avatar-adv)/2, Y: (avatar - brandingSize*1.2) / 2, W: adv, H: brandingSize * 1.2},
		})
	}

	textX := x + avatar + gap
	labelColor := style.ColorOr(c.Color, env.Paint.TextColor())
	if c.Handle == "" {
		box.add(Node{Kind: NodeText, Text: c.Label, Size: brandingSize, Weight: typeface.Bold, Color: labelColor,
			Frame: Rect{X: textX, Y: (avatar - brandingSize*1.2) / 2, W: labelAdv, H: brandingSize * 1.2}})
		return box
	}

	stack := brandingSize*1.2 + handleSize*1.2
	top := (avatar - stack) / 2
	box.add(Node{Kind: NodeText, Text: c.Label, Size: brandingSize, Weight: typeface.Bold, Color: labelColor,
		Frame: Rect{X: textX, Y: top, W: labelAdv, H: brandingSize * 1.2}})
	box.add(Node{Kind: NodeText, Text: c.Handle, Size: handleSize, Color: env.Paint.MutedColor(),
		Frame: Rect{X: textX, Y: top + brandingSize*1.2, W: handleAdv, H: handleSize * 1.2}})
	return box
}

func (quoteStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.QuoteContent)

	size := FontSizeFor(model.BlockQuote, c.FontSize)
	markSize := size * 1.6
	mark := "“"
	markAdv := env.Measure.Advance(mark, markSize, typeface.Bold)

	box := Box{W: env.Width}
	box.add(Node{
		Kind:   NodeText,
		Text:   mark,
		Size:   markSize,
		Weight: typeface.Bold,
		Color:  env.Paint.Accent,
		Frame:  Rect{X: (env.Width - markAdv) / 2, W: markAdv, H: markSize},
	})

	y := textLines(env.Measure, &box, c.Text, size, typeface.Italic, 1.4, model.TextCenter, env.Width, markSize,
		Node{Color: style.ColorOr(c.Color, env.Paint.TextColor())})

	if c.Author != "" {
		y += 16
		y = textLines(env.Measure, &box, "— "+c.Author, brandingSize, typeface.Regular, 1.2, model.TextCenter, env.Width, y,
			Node{Color: env.Paint.MutedColor()})
	}
	box.H = y
	return box
}

func (bulletListStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.BulletListContent)

	size := FontSizeFor(model.BlockBulletList, c.FontSize)
	const lineHeight = 1.4
	lh := size * lineHeight
	indent := size * 1.6
	gap := size * 0.6
	textColor := style.ColorOr(c.Color, env.Paint.TextColor())
	accent := env.Paint.Accent

	box := Box{W: env.Width}
	y := 0.0
	for i, item := range c.Items {
		if i > 0 {
			y += gap
		}
		box.Nodes = append(box.Nodes, bulletMarker(env, c.BulletStyle, i, size, lh, y, accent)...)

		var lines Box
		end := textLines(env.Measure, &lines, item, size, typeface.Regular, lineHeight, model.TextLeft, env.Width-indent, y, Node{Color: textColor})
		for _, n := range lines.Nodes {
			n.Frame = n.Frame.Offset(indent, 0)
			box.add(n)
		}
		y = end
	}
	box.H = y
	return box
}

func bulletMarker(env Env, bullet model.BulletStyle, index int, size, lh, y float64, accent color.RGBA) []Node {
	switch bullet {
	case model.BulletCheck, model.BulletArrow:
		icon := model.IconCheck
		if bullet == model.BulletArrow {
			icon = model.IconArrow
		}
		s := size * 0.9
		return []Node{{Kind: NodeIcon, Icon: icon, Color: accent, Frame: Rect{X: 0, Y: y + (lh-s)/2, W: s, H: s}}}
	case model.BulletNumber:
		label := fmt.Sprintf("%d.", index+1)
		adv := env.Measure.Advance(label, size, typeface.Bold)
		return []Node{{Kind: NodeText, Text: label, Size: size, Weight: typeface.Bold, Color: accent, Frame: Rect{Y: y, W: adv, H: lh}}}
	case model.BulletDash:
		w := size * 0.6
		h := math.Max(2, size*0.1)
		return []Node{{Kind: NodeRect, Fill: accent, Frame: Rect{X: size * 0.2, Y: y + (lh-h)/2, W: w, H: h}}}
	default:
		d := size * 0.35
		return []Node{{Kind: NodeEllipse, Fill: accent, Frame: Rect{X: size * 0.3, Y: y + (lh-d)/2, W: d, H: d}}}
	}
}

func (numberStrategy) Static(content model.Content, env Env) Box {
	c, _ := content.(model.NumberContent)

	size := FontSizeFor(model.BlockNumber, c.Size)
	box := Box{W: env.Width}
	y := textLines(env.Measure, &box, c.Value, size, typeface.Bold, 1.0, model.TextCenter, env.Width, 0,
		Node{Color: style.ColorOr(c.Color, env.Paint.Accent)})
	if c.Label != "" {
		y += 8
		y = textLines(env.Measure, &box, c.Label, captionSize, typeface.Regular, 1.3, model.TextCenter, env.Width, y,
			Node{Color: env.Paint.MutedColor()})
	}
	box.H = y
	return box
}

func (plainTextStrategy) Static(content model.Content, env Env) Box {
	size := FontSizeFor(model.BlockParagraph, model.SizeBase)
	box := Box{W: env.Width}
	box.H = textLines(env.Measure, &box, PlainText(content), size, typeface.Regular, 1.5, model.TextLeft, env.Width, 0,
		Node{Color: env.Paint.MutedColor()})
	return box
}

// PlainText extracts the most useful string from content this build cannot
// draw natively.
func PlainText(content model.Content) string {
	if content == nil {
		return ""
	}
	unknown, ok := content.(model.UnknownContent)
	if !ok {
		return fmt.Sprintf("[%s]", content.BlockType())
	}

	var fields map[string]any
	if err := json.Unmarshal(unknown.Raw, &fields); err == nil {
		for _, key := range []string{"text", "label", "title", "value"} {
			if s, ok := fields[key].(string); ok && s != "" {
				return s
			}
		}
		if items, ok := fields["items"].([]any); ok {
			var parts []string
			for _, item := range items {
				if s, ok := item.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "\n")
			}
		}
	}
	return fmt.Sprintf("[%s]", unknown.Type)
}

func contrast(bg color.RGBA) color.RGBA {
	lum := 0.2126*float64(bg.R) + 0.7152*float64(bg.G) + 0.0722*float64(bg.B)
	if lum > 160 {
		return color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

func initialOf(label string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(label))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
