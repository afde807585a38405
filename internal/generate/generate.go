package generate

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// MaxSlides caps how many slides a generator is asked for.
const MaxSlides = 20

// Params describes what a generated carousel should argue.
type Params struct {
	Hypothesis string   `json:"hypothesis" validate:"required,max=500"`
	Audience   string   `json:"audience,omitempty" validate:"max=120"`
	Tone       string   `json:"tone,omitempty" validate:"omitempty,oneof=casual professional playful bold"`
	Language   string   `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
	SlideCount int      `json:"slideCount,omitempty" validate:"min=0,max=20"`
	Points     []string `json:"points,omitempty" validate:"max=18,dive,required"`
}

// Fragment is the document shape a generator returns: a title and ordered
// slides, possibly missing ids, order and presentation defaults.
type Fragment struct {
	Title  string        `json:"title"`
	Slides []model.Slide `json:"slides"`
}

// Generator produces a fragment from a hypothesis.
type Generator interface {
	GenerateFromHypothesis(ctx context.Context, p Params) (Fragment, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, p Params) (Fragment, error)

// GenerateFromHypothesis calls f.
func (f GeneratorFunc) GenerateFromHypothesis(ctx context.Context, p Params) (Fragment, error) {
	return f(ctx, p)
}

// ValidateParams checks p before it is sent to a generator.
func ValidateParams(p Params) error {
	err := schema.Validator().Struct(p)
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		field := fe.Field()
		return carouselerrors.NewValidationError(field, fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag()), err)
	}
	return carouselerrors.NewValidationError("params", err.Error(), err)
}

// Generate validates p, calls g and normalizes the result into a complete
// document.
func Generate(ctx context.Context, g Generator, p Params, log *logger.Logger) (model.Carousel, error) {
	if err := ValidateParams(p); err != nil {
		return model.Carousel{}, err
	}
	log = log.WithComponent("generate")

	fragment, err := g.GenerateFromHypothesis(ctx, p)
	if err != nil {
		log.Error(err, "generation failed")
		return model.Carousel{}, fmt.Errorf("generate carousel: %w", err)
	}

	c := Normalize(fragment)
	log.WithFields(map[string]any{
		"id":     c.ID,
		"slides": len(c.Slides),
	}).Info("carousel generated")
	return c, nil
}
