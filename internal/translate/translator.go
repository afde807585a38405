package translate

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Translator translates a batch of strings into the target language. The
// result must have one entry per input, in the same order.
type Translator interface {
	Translate(ctx context.Context, texts []string, target string) ([]string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, texts []string, target string) ([]string, error)

// Translate calls f.
func (f TranslatorFunc) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	return f(ctx, texts, target)
}

// Pipeline runs extract, translate and apply as one step.
type Pipeline struct {
	translator Translator
	log        *logger.Logger
}

// NewPipeline builds a pipeline around t.
func NewPipeline(t Translator, log *logger.Logger) *Pipeline {
	return &Pipeline{translator: t, log: log.WithComponent("translate")}
}

// Translate returns a translated copy of c. On any failure it returns c
// itself together with a labeled error; a document is never half translated.
func (p *Pipeline) Translate(ctx context.Context, c model.Carousel, target string) (model.Carousel, error) {
	if target == "" {
		return c, carouselerrors.NewTranslationError("", fmt.Errorf("target language is required"))
	}

	texts := ExtractTexts(c)
	if len(texts) == 0 {
		return c.Clone(), nil
	}

	values := make([]string, len(texts))
	for i, t := range texts {
		values[i] = t.Value
	}

	translated, err := p.translator.Translate(ctx, values, target)
	if err != nil {
		p.log.Error(err, "translation failed")
		return c, carouselerrors.NewTranslationError("", err)
	}
	if len(translated) != len(texts) {
		err := fmt.Errorf("translator returned %d strings for %d inputs", len(translated), len(texts))
		p.log.Error(err, "translation failed")
		return c, carouselerrors.NewTranslationError("", err)
	}

	for i := range texts {
		texts[i].Value = translated[i]
	}
	out, err := ApplyTranslations(c, texts)
	if err != nil {
		return c, err
	}

	p.log.WithFields(map[string]any{
		"target": target,
		"leaves": len(texts),
	}).Info("document translated")
	return out, nil
}
