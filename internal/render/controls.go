package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
)

// ControlKind tells a front end which widget to show for a control.
type ControlKind string

const (
	ControlText   ControlKind = "text"
	ControlLines  ControlKind = "lines"
	ControlChoice ControlKind = "choice"
	ControlToggle ControlKind = "toggle"
	ControlColor  ControlKind = "color"
	ControlNumber ControlKind = "number"
)

// Control edits one content field. Set parses the raw value, builds a new
// content value and hands it to the strategy's onChange; the old content is
// never written.
type Control struct {
	Key     string
	Label   string
	Kind    ControlKind
	Value   string
	Options []string

	build    func(string) (model.Content, error)
	onChange func(model.Content)
}

// Set applies value. Invalid input is rejected and onChange is not called.
func (c Control) Set(value string) error {
	if c.build == nil {
		return fmt.Errorf("control %s is read-only", c.Key)
	}
	next, err := c.build(value)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Key, err)
	}
	if err := schema.ValidateContent(next); err != nil {
		return err
	}
	if c.onChange != nil {
		c.onChange(model.CloneContent(next))
	}
	return nil
}

var (
	fontSizeOptions = []string{string(model.SizeBase), string(model.SizeLG), string(model.SizeXL), string(model.SizeXXL)}
	alignOptions    = []string{string(model.TextLeft), string(model.TextCenter), string(model.TextRight)}
	fitOptions      = []string{string(model.FitCover), string(model.FitContain)}
	filterOptions   = []string{string(model.FilterNone), string(model.FilterGrayscale), string(model.FilterSepia), string(model.FilterDim)}
	dividerOptions  = []string{string(model.DividerSolid), string(model.DividerDashed), string(model.DividerDotted)}
	bulletOptions   = []string{string(model.BulletDot), string(model.BulletCheck), string(model.BulletArrow), string(model.BulletNumber), string(model.BulletDash)}
	iconNameOptions = iconNames()
)

func iconNames() []string {
	var out []string
	for _, name := range model.IconNames() {
		out = append(out, string(name))
	}
	return out
}

type controlSet struct {
	onChange func(model.Content)
	out      []Control
}

func (s *controlSet) add(key, label string, kind ControlKind, value string, options []string, build func(string) (model.Content, error)) {
	s.out = append(s.out, Control{Key: key, Label: label, Kind: kind, Value: value, Options: options, build: build, onChange: s.onChange})
}

func (s *controlSet) text(key, label, value string, set func(string) model.Content) {
	s.add(key, label, ControlText, value, nil, func(v string) (model.Content, error) { return set(v), nil })
}

func (s *controlSet) color(key, label, value string, set func(string) model.Content) {
	s.add(key, label, ControlColor, value, nil, func(v string) (model.Content, error) { return set(strings.TrimSpace(v)), nil })
}

func (s *controlSet) choice(key, label, value string, options []string, set func(string) model.Content) {
	s.add(key, label, ControlChoice, value, options, func(v string) (model.Content, error) {
		for _, opt := range options {
			if v == opt {
				return set(v), nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", v, strings.Join(options, ", "))
	})
}

func (s *controlSet) toggle(key, label string, value bool, set func(bool) model.Content) {
	s.add(key, label, ControlToggle, strconv.FormatBool(value), []string{"true", "false"}, func(v string) (model.Content, error) {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		return set(b), nil
	})
}

func (s *controlSet) number(key, label string, value int, set func(int) model.Content) {
	s.add(key, label, ControlNumber, strconv.Itoa(value), nil, func(v string) (model.Content, error) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		return set(n), nil
	})
}

func textBodyControls(body model.TextBody, onChange func(model.Content), wrap func(model.TextBody) model.Content) []Control {
	s := controlSet{onChange: onChange}
	s.text("text", "Text", body.Text, func(v string) model.Content { b := body; b.Text = v; return wrap(b) })
	s.choice("fontSize", "Size", string(body.FontSize), fontSizeOptions, func(v string) model.Content {
		b := body
		b.FontSize = model.FontSize(v)
		return wrap(b)
	})
	s.choice("align", "Align", string(body.Align), alignOptions, func(v string) model.Content {
		b := body
		b.Align = model.Align(v)
		return wrap(b)
	})
	s.color("color", "Color", body.Color, func(v string) model.Content { b := body; b.Color = v; return wrap(b) })
	s.toggle("bold", "Bold", body.Bold, func(v bool) model.Content { b := body; b.Bold = v; return wrap(b) })
	return s.out
}

func (headingStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.HeadingContent)
	return textBodyControls(c.TextBody, onChange, func(b model.TextBody) model.Content { return model.HeadingContent{TextBody: b} })
}

func (subheadingStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.SubheadingContent)
	return textBodyControls(c.TextBody, onChange, func(b model.TextBody) model.Content { return model.SubheadingContent{TextBody: b} })
}

func (paragraphStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.ParagraphContent)
	return textBodyControls(c.TextBody, onChange, func(b model.TextBody) model.Content { return model.ParagraphContent{TextBody: b} })
}

func (imageStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.ImageContent)
	s := controlSet{onChange: onChange}

	src := ""
	if c.Src != nil {
		src = *c.Src
	}
	s.text("src", "Source", src, func(v string) model.Content {
		n := c
		n.Src = nil
		if v = strings.TrimSpace(v); v != "" {
			n.Src = model.StringPtr(v)
		}
		return n
	})
	s.choice("fit", "Fit", string(c.Fit), fitOptions, func(v string) model.Content { n := c; n.Fit = model.ImageFit(v); return n })
	s.number("height", "Height", c.Height, func(v int) model.Content { n := c; n.Height = v; return n })
	s.number("borderRadius", "Radius", c.BorderRadius, func(v int) model.Content { n := c; n.BorderRadius = v; return n })
	s.choice("filter", "Filter", string(c.Filter), filterOptions, func(v string) model.Content { n := c; n.Filter = model.ImageFilter(v); return n })
	s.toggle("shadow", "Shadow", c.Shadow, func(v bool) model.Content { n := c; n.Shadow = v; return n })
	s.toggle("border", "Border", c.Border, func(v bool) model.Content { n := c; n.Border = v; return n })
	s.color("borderColor", "Border color", c.BorderColor, func(v string) model.Content { n := c; n.BorderColor = v; return n })
	return s.out
}

func (iconStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.IconContent)
	s := controlSet{onChange: onChange}
	s.choice("name", "Icon", string(c.Name), iconNameOptions, func(v string) model.Content { n := c; n.Name = model.IconName(v); return n })
	s.choice("size", "Size", string(c.Size), fontSizeOptions, func(v string) model.Content { n := c; n.Size = model.FontSize(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	return s.out
}

func (badgeStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.BadgeContent)
	s := controlSet{onChange: onChange}
	s.text("label", "Label", c.Label, func(v string) model.Content { n := c; n.Label = v; return n })
	s.color("color", "Text color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	s.color("background", "Background", c.Background, func(v string) model.Content { n := c; n.Background = v; return n })
	return s.out
}

func (dividerStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.DividerContent)
	s := controlSet{onChange: onChange}
	s.choice("style", "Style", string(c.Style), dividerOptions, func(v string) model.Content { n := c; n.Style = model.DividerStyle(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	s.number("thickness", "Thickness", c.Thickness, func(v int) model.Content { n := c; n.Thickness = v; return n })
	s.number("width", "Width %", c.Width, func(v int) model.Content { n := c; n.Width = v; return n })
	return s.out
}

func (brandingStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.BrandingContent)
	s := controlSet{onChange: onChange}
	s.text("label", "Name", c.Label, func(v string) model.Content { n := c; n.Label = v; return n })
	s.text("handle", "Handle", c.Handle, func(v string) model.Content { n := c; n.Handle = v; return n })
	s.text("avatar", "Avatar", c.Avatar, func(v string) model.Content { n := c; n.Avatar = strings.TrimSpace(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	return s.out
}

func (quoteStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.QuoteContent)
	s := controlSet{onChange: onChange}
	s.text("text", "Quote", c.Text, func(v string) model.Content { n := c; n.Text = v; return n })
	s.text("author", "Author", c.Author, func(v string) model.Content { n := c; n.Author = v; return n })
	s.choice("fontSize", "Size", string(c.FontSize), fontSizeOptions, func(v string) model.Content { n := c; n.FontSize = model.FontSize(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	return s.out
}

func (bulletListStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.BulletListContent)
	s := controlSet{onChange: onChange}
	s.add("items", "Items", ControlLines, strings.Join(c.Items, "\n"), nil, func(v string) (model.Content, error) {
		n := c
		n.Items = splitLines(v)
		return n, nil
	})
	s.choice("bulletStyle", "Bullet", string(c.BulletStyle), bulletOptions, func(v string) model.Content { n := c; n.BulletStyle = model.BulletStyle(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	s.choice("fontSize", "Size", string(c.FontSize), fontSizeOptions, func(v string) model.Content { n := c; n.FontSize = model.FontSize(v); return n })
	return s.out
}

func (numberStrategy) Editable(content model.Content, onChange func(model.Content)) []Control {
	c, _ := content.(model.NumberContent)
	s := controlSet{onChange: onChange}
	s.text("value", "Value", c.Value, func(v string) model.Content { n := c; n.Value = v; return n })
	s.text("label", "Label", c.Label, func(v string) model.Content { n := c; n.Label = v; return n })
	s.choice("size", "Size", string(c.Size), fontSizeOptions, func(v string) model.Content { n := c; n.Size = model.FontSize(v); return n })
	s.color("color", "Color", c.Color, func(v string) model.Content { n := c; n.Color = v; return n })
	return s.out
}

// Editable for unknown content exposes nothing; the payload is preserved as is.
func (plainTextStrategy) Editable(model.Content, func(model.Content)) []Control {
	return nil
}

func splitLines(v string) []string {
	v = strings.TrimRight(v, "\n")
	if v == "" {
		return []string{}
	}
	return strings.Split(v, "\n")
}
