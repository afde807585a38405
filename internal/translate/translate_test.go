package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

func deck() model.Carousel {
	c := document.NewCarousel("Deck")
	c = document.AddSlide(c, document.NewSlide(model.SlideList))
	c = document.AddSlide(c, document.NewSlide(model.SlideQuote))
	c.Slides[2].Blocks = append(c.Slides[2].Blocks, model.Block{
		ID:      "future",
		Type:    "POLL",
		Content: model.UnknownContent{Type: "POLL", Raw: json.RawMessage(`{"label":"Pick one","items":["Yes","No"],"votes":3}`)},
	})
	return c
}

func TestPathRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0.0.text", "3.2.label", "1.4.items.0", "10.11.items.12"} {
		p, err := ParsePath(s)
		require.NoError(t, err, s)
		require.Equal(t, s, p.String())
	}
}

func TestParsePathRejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "0", "0.0", "0.0.title", "a.0.text", "-1.0.text", "01.0.text", "0.0.text.1", "0.0.items", "0.0.items.x"} {
		_, err := ParsePath(s)
		require.Error(t, err, s)
	}
}

func TestExtractTextsOrderAndPaths(t *testing.T) {
	t.Parallel()

	c := deck()
	texts := ExtractTexts(c)
	require.NotEmpty(t, texts)

	paths := make([]string, len(texts))
	for i, tx := range texts {
		paths[i] = tx.Path
		require.NotEmpty(t, strings.TrimSpace(tx.Value))
	}
	require.Contains(t, paths, "0.1.text")
	require.Contains(t, paths, "1.1.items.0")
	require.Contains(t, paths, "2.1.label")
	require.Contains(t, paths, "2.1.items.1")

	for i := 1; i < len(texts); i++ {
		a, _ := ParsePath(texts[i-1].Path)
		b, _ := ParsePath(texts[i].Path)
		require.True(t, a.Slide < b.Slide || (a.Slide == b.Slide && a.Block <= b.Block), "%s before %s", texts[i-1].Path, texts[i].Path)
	}
}

func TestApplyIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	c := deck()
	out, err := ApplyTranslations(c, ExtractTexts(c))
	require.NoError(t, err)
	require.Equal(t, c, out)

	before, err := model.Encode(c)
	require.NoError(t, err)
	after, err := model.Encode(out)
	require.NoError(t, err)
	require.JSONEq(t, string(before), string(after))
}

func TestApplyOverwritesOnlyAddressedLeaves(t *testing.T) {
	t.Parallel()

	c := deck()
	out, err := ApplyTranslations(c, []Text{
		{Path: "0.1.text", Value: "Votre titre"},
		{Path: "1.1.items.0", Value: "Premier"},
		{Path: "2.1.items.1", Value: "Non"},
	})
	require.NoError(t, err)

	require.Equal(t, "Votre titre", out.Slides[0].Blocks[1].Content.(model.HeadingContent).Text)
	require.Equal(t, "Premier", out.Slides[1].Blocks[1].Content.(model.BulletListContent).Items[0])
	require.NotEqual(t, "Votre titre", c.Slides[0].Blocks[1].Content.(model.HeadingContent).Text)
	require.NotEqual(t, "Premier", c.Slides[1].Blocks[1].Content.(model.BulletListContent).Items[0])

	raw := out.Slides[2].Blocks[1].Content.(model.UnknownContent).Raw
	require.JSONEq(t, `{"label":"Pick one","items":["Yes","Non"],"votes":3}`, string(raw))

	for i := range c.Slides {
		require.Equal(t, c.Slides[i].ID, out.Slides[i].ID)
		require.Equal(t, c.Slides[i].Styles, out.Slides[i].Styles)
	}
}

func TestApplyRejectsInvalidPaths(t *testing.T) {
	t.Parallel()

	c := deck()
	for _, path := range []string{"9.0.text", "0.9.text", "0.1.label", "1.1.items.99", "nonsense"} {
		out, err := ApplyTranslations(c, []Text{{Path: "0.1.text", Value: "changed"}, {Path: path, Value: "x"}})
		var te *carouselerrors.TranslationError
		require.ErrorAs(t, err, &te, path)
		require.Equal(t, path, te.Path)
		require.Equal(t, c, out, path)
	}
}

func TestPipelineTranslates(t *testing.T) {
	t.Parallel()

	upper := TranslatorFunc(func(_ context.Context, texts []string, target string) ([]string, error) {
		out := make([]string, len(texts))
		for i, s := range texts {
			out[i] = target + ":" + strings.ToUpper(s)
		}
		return out, nil
	})
	c := deck()
	out, err := NewPipeline(upper, logger.Nop()).Translate(context.Background(), c, "fr")
	require.NoError(t, err)

	for _, tx := range ExtractTexts(out) {
		require.True(t, strings.HasPrefix(tx.Value, "fr:"), tx.Path)
	}
	changes := Preview(c, out)
	require.Len(t, changes, len(ExtractTexts(c)))
	require.Contains(t, RenderPreview(changes), "+fr:")
}

func TestPipelineIsAllOrNothing(t *testing.T) {
	t.Parallel()

	boom := errors.New("service down")
	cases := map[string]Translator{
		"error": TranslatorFunc(func(context.Context, []string, string) ([]string, error) { return nil, boom }),
		"short": TranslatorFunc(func(_ context.Context, texts []string, _ string) ([]string, error) { return texts[:1], nil }),
	}
	for name, tr := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := deck()
			out, err := NewPipeline(tr, logger.Nop()).Translate(context.Background(), c, "de")
			var te *carouselerrors.TranslationError
			require.ErrorAs(t, err, &te)
			require.Equal(t, c, out)
		})
	}
}

func TestGlossaryTranslator(t *testing.T) {
	t.Parallel()

	g, err := ParseGlossary("glossary.yaml", []byte(`
languages:
  fr:
    "Your headline": "Votre titre"
    tip: astuce
    quick tip: astuce rapide
`))
	require.NoError(t, err)
	tr := NewGlossaryTranslator(g)

	out, err := tr.Translate(context.Background(), []string{"Your headline", "A quick tip and a tip", "tipping point"}, "fr")
	require.NoError(t, err)
	require.Equal(t, []string{"Votre titre", "A astuce rapide and a astuce", "tipping point"}, out)

	_, err = tr.Translate(context.Background(), []string{"x"}, "de")
	require.Error(t, err)
}

func TestParseGlossaryErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseGlossary("g.yaml", []byte("languages: [unclosed"))
	var pe *carouselerrors.ParseError
	require.ErrorAs(t, err, &pe)

	_, err = ParseGlossary("g.yaml", []byte("languages: {}\n"))
	var ve *carouselerrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestHTTPTranslator(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req httpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Target == "xx" {
			http.Error(w, "unsupported language", http.StatusBadRequest)
			return
		}
		out := httpResponse{}
		for _, s := range req.Texts {
			out.Translations = append(out.Translations, "["+req.Target+"] "+s)
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)

	tr := &HTTPTranslator{Endpoint: srv.URL, APIKey: "secret", Client: srv.Client()}
	out, err := tr.Translate(context.Background(), []string{"a", "b"}, "es")
	require.NoError(t, err)
	require.Equal(t, []string{"[es] a", "[es] b"}, out)

	_, err = tr.Translate(context.Background(), []string{"a"}, "xx")
	require.ErrorContains(t, err, "unsupported language")
}
