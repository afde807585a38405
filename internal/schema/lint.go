package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Severity ranks a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one lint finding.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// Lint reports every problem in the document. Schema violations are errors;
// things that render but probably are not what the author wants are warnings.
func Lint(c model.Carousel) []Issue {
	var issues []Issue

	if err := ValidateCarousel(c); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Field: fieldOf(err), Message: messageOf(err)})
	}

	if c.Settings.Width != model.CanvasSize || c.Settings.Height != model.CanvasSize {
		issues = append(issues, warn("settings", fmt.Sprintf("canvas is %dx%d, slides are designed for %dx%d",
			c.Settings.Width, c.Settings.Height, model.CanvasSize, model.CanvasSize)))
	}

	for i, slide := range c.Slides {
		if slide.Styles.Background != "" && !style.Known(slide.Styles.Background) {
			issues = append(issues, warn(fieldForSlide(i, "styles.background"),
				fmt.Sprintf("unknown background %q, %s will be used", slide.Styles.Background, style.DefaultKey)))
		}
		if len(slide.Blocks) == 0 && slide.Styles.BackgroundImage == nil {
			issues = append(issues, warn(fieldForSlide(i, "blocks"), "slide has no content"))
		}

		for j, block := range slide.Blocks {
			field := fieldForBlock(i, j, "content")
			switch content := block.Content.(type) {
			case model.UnknownContent:
				issues = append(issues, warn(fieldForBlock(i, j, "type"), fmt.Sprintf("unknown block type %q renders as plain text", block.Type)))
			case model.ImageContent:
				if content.Src == nil || *content.Src == "" {
					issues = append(issues, warn(field+".src", "image has no source and will render as a placeholder"))
				}
			case model.HeadingContent:
				issues = appendEmpty(issues, field+".text", content.Text)
			case model.SubheadingContent:
				issues = appendEmpty(issues, field+".text", content.Text)
			case model.ParagraphContent:
				issues = appendEmpty(issues, field+".text", content.Text)
			case model.QuoteContent:
				issues = appendEmpty(issues, field+".text", content.Text)
			case model.BulletListContent:
				for k, item := range content.Items {
					issues = appendEmpty(issues, fmt.Sprintf("%s.items[%d]", field, k), item)
				}
			}
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func appendEmpty(issues []Issue, field, text string) []Issue {
	if strings.TrimSpace(text) == "" {
		return append(issues, warn(field, "text is empty"))
	}
	return issues
}

func warn(field, msg string) Issue {
	return Issue{Severity: SeverityWarning, Field: field, Message: msg}
}

func fieldOf(err error) string {
	var ve *carouselerrors.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return ve.Field
	}
	return "carousel"
}

func messageOf(err error) string {
	var ve *carouselerrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
