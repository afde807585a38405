// Package schema validates carousel documents and supplies the default content
// for every block type.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	fontSizes = map[string]struct{}{
		string(model.SizeBase): {},
		string(model.SizeLG):   {},
		string(model.SizeXL):   {},
		string(model.SizeXXL):  {},
	}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("fontsize", func(fl validator.FieldLevel) bool {
			_, ok := fontSizes[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// Validator exposes the shared instance for packages with their own structs.
func Validator() *validator.Validate {
	return validatorInstance()
}

// ValidateContent checks a single block payload against its schema.
func ValidateContent(content model.Content) error {
	if content == nil {
		return carouselerrors.NewValidationError("content", "content is required", nil)
	}
	if _, ok := content.(model.UnknownContent); ok {
		return nil
	}
	if err := validatorInstance().Struct(content); err != nil {
		return convertValidationError("content", err)
	}
	return nil
}

// ValidateBlock checks the block identity and its payload.
func ValidateBlock(b model.Block) error {
	if b.ID == "" {
		return carouselerrors.NewValidationError("id", "block id is required", nil)
	}
	if b.Content != nil && b.Content.BlockType() != b.Type {
		return carouselerrors.NewValidationError("type", fmt.Sprintf("block type %s does not match %s content", b.Type, b.Content.BlockType()), nil)
	}
	return ValidateContent(b.Content)
}

// ValidateCarousel performs schema and structural validation of a whole
// document and reports the first violation.
func ValidateCarousel(c model.Carousel) error {
	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError("", err)
	}

	slideIDs := make(map[string]int, len(c.Slides))
	for i, slide := range c.Slides {
		if prev, exists := slideIDs[slide.ID]; exists {
			return carouselerrors.NewValidationError(fieldForSlide(i, "id"), fmt.Sprintf("duplicate slide id %q (also slides[%d])", slide.ID, prev), nil)
		}
		slideIDs[slide.ID] = i

		if slide.Order != i+1 {
			return carouselerrors.NewValidationError(fieldForSlide(i, "order"), fmt.Sprintf("order is %d, expected %d", slide.Order, i+1), nil)
		}

		blockIDs := make(map[string]struct{}, len(slide.Blocks))
		for j, block := range slide.Blocks {
			if _, exists := blockIDs[block.ID]; exists {
				return carouselerrors.NewValidationError(fieldForBlock(i, j, "id"), fmt.Sprintf("duplicate block id %q", block.ID), nil)
			}
			blockIDs[block.ID] = struct{}{}

			if err := ValidateBlock(block); err != nil {
				return prefixField(fieldForBlock(i, j, ""), err)
			}
		}
	}

	return nil
}

func convertValidationError(prefix string, err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldPath(ve)
		if prefix != "" {
			field = joinField(prefix, field)
		}
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return carouselerrors.NewValidationError(field, msg, err)
	}

	if prefix == "" {
		prefix = "carousel"
	}
	return carouselerrors.NewValidationError(prefix, err.Error(), err)
}

// fieldPath turns "Carousel.slides[0].blocks[1].Content.TextBody.color"
// into "slides[0].blocks[1].content.color".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "TextBody":
			continue
		case "ID", "Type", "Content":
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return strings.Join(out, ".")
}

func prefixField(prefix string, err error) error {
	ve, ok := err.(*carouselerrors.ValidationError)
	if !ok {
		return err
	}
	field := joinField(prefix, ve.Field)
	return carouselerrors.NewValidationError(field, ve.Message, ve.Err)
}

func joinField(prefix, field string) string {
	prefix = strings.TrimSuffix(prefix, ".")
	if field == "" {
		return prefix
	}
	return prefix + "." + field
}

func fieldForSlide(index int, field string) string {
	return fmt.Sprintf("slides[%d].%s", index, field)
}

func fieldForBlock(slide, block int, field string) string {
	return fmt.Sprintf("slides[%d].blocks[%d].%s", slide, block, field)
}
