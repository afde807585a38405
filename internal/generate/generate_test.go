package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

func TestNormalizeFillsIdsOrderAndDefaults(t *testing.T) {
	t.Parallel()

	f := Fragment{
		Title: "Ship smaller",
		Slides: []model.Slide{
			{Order: 7, Blocks: []model.Block{
				{Type: model.BlockHeading, Content: model.HeadingContent{TextBody: model.TextBody{Text: "Ship smaller"}}},
				{ID: "dup", Type: model.BlockParagraph, Content: model.ParagraphContent{TextBody: model.TextBody{Text: "Less risk"}}},
				{ID: "dup", Type: model.BlockBadge},
			}},
			{ID: "keep", Type: model.SlideQuote, Order: 1, Styles: model.SlideStyles{Background: "gradient-ocean"}},
			{ID: "keep"},
		},
	}

	c := Normalize(f)
	require.NoError(t, schema.ValidateCarousel(c))
	require.Equal(t, "Ship smaller", c.Title)
	require.NotEmpty(t, c.ID)
	require.Len(t, c.Slides, 3)

	for i, s := range c.Slides {
		require.Equal(t, i+1, s.Order)
		require.NotEmpty(t, s.ID)
	}
	require.Equal(t, "keep", c.Slides[1].ID)
	require.NotEqual(t, "keep", c.Slides[2].ID)
	require.Equal(t, model.StyleKey("gradient-ocean"), c.Slides[1].Styles.Background)
	require.Equal(t, model.StyleKey("solid-dark"), c.Slides[0].Styles.Background)
	require.Equal(t, model.SlideContent, c.Slides[0].Type)

	blocks := c.Slides[0].Blocks
	require.Len(t, blocks, 3)
	require.NotEmpty(t, blocks[0].ID)
	require.Equal(t, "dup", blocks[1].ID)
	require.NotEqual(t, "dup", blocks[2].ID)

	heading := blocks[0].Content.(model.HeadingContent)
	require.Equal(t, "Ship smaller", heading.Text)
	require.Equal(t, model.SizeXL, heading.FontSize)
	require.Equal(t, schema.DefaultContent(model.BlockBadge), blocks[2].Content)
}

func TestNormalizeDropsContentlessUnknownBlocks(t *testing.T) {
	t.Parallel()

	c := Normalize(Fragment{Slides: []model.Slide{{Blocks: []model.Block{
		{ID: "x", Type: "POLL"},
		{ID: "y", Type: "POLL", Content: model.UnknownContent{Type: "POLL", Raw: json.RawMessage(`{"q":1}`)}},
	}}}})
	require.Len(t, c.Slides[0].Blocks, 1)
	require.Equal(t, "y", c.Slides[0].Blocks[0].ID)
	require.Equal(t, model.BlockType("POLL"), c.Slides[0].Blocks[0].Type)
}

func TestNormalizeEmptyFragment(t *testing.T) {
	t.Parallel()

	c := Normalize(Fragment{})
	require.Len(t, c.Slides, 1)
	require.NotEmpty(t, c.Title)
	require.NoError(t, schema.ValidateCarousel(c))
}

func TestOutlineGenerator(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		params Params
		slides int
	}{
		"default count":     {Params{Hypothesis: "Remote teams ship faster"}, defaultSlideCount},
		"explicit count":    {Params{Hypothesis: "x", SlideCount: 3}, 3},
		"points extend":     {Params{Hypothesis: "x", Points: []string{"a", "b", "c", "d", "e"}}, 7},
		"count lower bound": {Params{Hypothesis: "x", SlideCount: 1}, 2},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c, err := Generate(context.Background(), OutlineGenerator{Handle: "@me"}, tt.params, logger.Nop())
			require.NoError(t, err)
			require.Len(t, c.Slides, tt.slides)
			require.NoError(t, schema.ValidateCarousel(c))
			require.Equal(t, model.SlideCover, c.Slides[0].Type)
			require.Equal(t, model.SlideCTA, c.Slides[len(c.Slides)-1].Type)
		})
	}
}

func TestOutlineGeneratorUsesPoints(t *testing.T) {
	t.Parallel()

	f, err := OutlineGenerator{Handle: "@me"}.GenerateFromHypothesis(context.Background(), Params{
		Hypothesis: "Write less code",
		Audience:   "engineers",
		Points:     []string{"Delete dead paths", "Prefer data"},
		SlideCount: 4,
	})
	require.NoError(t, err)
	require.Equal(t, "Write less code", f.Title)

	var texts []string
	for _, s := range f.Slides {
		for _, b := range s.Blocks {
			switch c := b.Content.(type) {
			case model.HeadingContent:
				texts = append(texts, c.Text)
			case model.ParagraphContent:
				texts = append(texts, c.Text)
			case model.BadgeContent:
				texts = append(texts, c.Label)
			case model.BrandingContent:
				require.Equal(t, "@me", c.Handle)
			}
		}
	}
	require.Contains(t, texts, "Write less code")
	require.Contains(t, texts, "ENGINEERS")
	require.Contains(t, texts, "Delete dead paths")
	require.Contains(t, texts, "Prefer data")
}

func TestGenerateValidatesParams(t *testing.T) {
	t.Parallel()

	called := false
	g := GeneratorFunc(func(context.Context, Params) (Fragment, error) {
		called = true
		return Fragment{}, nil
	})
	tests := map[string]struct {
		params Params
		field  string
	}{
		"missing hypothesis": {Params{}, "hypothesis"},
		"bad tone":           {Params{Hypothesis: "x", Tone: "angry"}, "tone"},
		"too many slides":    {Params{Hypothesis: "x", SlideCount: 50}, "slideCount"},
	}
	for name, tt := range tests {
		_, err := Generate(context.Background(), g, tt.params, logger.Nop())
		var ve *carouselerrors.ValidationError
		require.ErrorAs(t, err, &ve, name)
		require.Equal(t, tt.field, ve.Field, name)
	}
	require.False(t, called)
}

func TestGeneratePropagatesFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	g := GeneratorFunc(func(context.Context, Params) (Fragment, error) { return Fragment{}, boom })
	_, err := Generate(context.Background(), g, Params{Hypothesis: "x"}, logger.Nop())
	require.ErrorIs(t, err, boom)
}

func TestHTTPGenerator(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Params
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		if p.Hypothesis == "fail" {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"title":"` + p.Hypothesis + `","slides":[
			{"type":"content","blocks":[{"type":"HEADING","content":{"text":"Hello"}}]}
		]}`))
	}))
	t.Cleanup(srv.Close)

	g := &HTTPGenerator{Endpoint: srv.URL, Client: srv.Client()}
	c, err := Generate(context.Background(), g, Params{Hypothesis: "From the wire"}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, "From the wire", c.Title)
	require.Len(t, c.Slides, 1)
	require.Equal(t, "Hello", c.Slides[0].Blocks[0].Content.(model.HeadingContent).Text)
	require.NoError(t, schema.ValidateCarousel(c))

	_, err = g.GenerateFromHypothesis(context.Background(), Params{Hypothesis: "fail"})
	require.ErrorContains(t, err, "model overloaded")
}
