package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

var pageObject = regexp.MustCompile(`/Type /Page\b`)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// fiveSlides builds a five slide deck whose third slide uses an uploaded
// background image.
func fiveSlides(bg string) model.Carousel {
	c := document.NewCarousel("Launch Week: Day 1!")
	for _, t := range []model.SlideType{model.SlideTip, model.SlideQuote, model.SlideStat, model.SlideCTA} {
		c = document.AddSlide(c, document.NewSlide(t))
	}
	c.Slides[2].Styles.BackgroundImage = &model.BackgroundImage{URL: bg}
	return c
}

func newExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	loader := assets.NewLoader(assets.LoaderOptions{BaseDir: dir, Logger: logger.Nop()})
	return New(loader, logger.Nop()), dir
}

func TestExportFiveSlidesWithBackgroundImage(t *testing.T) {
	t.Parallel()

	exp, dir := newExporter(t)
	writePNG(t, filepath.Join(dir, "bg.png"))
	c := fiveSlides("bg.png")

	var progress []Progress
	art, err := exp.Export(context.Background(), c, Targets(c), Options{
		Quality:    1,
		OnProgress: func(p Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	require.Equal(t, 5, art.Pages)
	require.Equal(t, 1080, art.Width)
	require.Equal(t, 1080, art.Height)
	require.Len(t, art.Digests, 5)
	require.Equal(t, "%PDF-", string(art.Data[:5]))
	require.Len(t, pageObject.FindAll(art.Data, -1), 5)
	require.Equal(t, "launch-week-day-1.pdf", art.Filename)

	require.Len(t, progress, 5)
	for i, p := range progress {
		require.Equal(t, i+1, p.Current)
		require.Equal(t, 5, p.Total)
	}
	require.Equal(t, 100, progress[4].Percentage)
	require.Equal(t, 20, progress[0].Percentage)
}

func TestExportIsIdempotent(t *testing.T) {
	t.Parallel()

	exp, dir := newExporter(t)
	writePNG(t, filepath.Join(dir, "bg.png"))
	c := fiveSlides("bg.png")

	first, err := exp.Export(context.Background(), c, Targets(c), Options{Quality: 1})
	require.NoError(t, err)
	second, err := exp.Export(context.Background(), c, Targets(c), Options{Quality: 1})
	require.NoError(t, err)

	require.Equal(t, first.Digests, second.Digests)
	require.Equal(t, first.Data, second.Data)
}

func TestExportPinsDocumentDates(t *testing.T) {
	t.Parallel()

	exp, _ := newExporter(t)
	c := document.NewCarousel("Dates")

	art, err := exp.Export(context.Background(), c, Targets(c), Options{Quality: 1})
	require.NoError(t, err)
	require.Contains(t, string(art.Data), "/CreationDate (D:20200101000000)")
	require.Contains(t, string(art.Data), "/ModDate (D:20200101000000)")
}

func TestExportAbortsOnFailingAsset(t *testing.T) {
	t.Parallel()

	exp, _ := newExporter(t)
	c := fiveSlides("missing.png")

	var seen []int
	art, err := exp.Export(context.Background(), c, Targets(c), Options{
		Quality:    1,
		OnProgress: func(p Progress) { seen = append(seen, p.Current) },
	})
	require.Nil(t, art)

	var exportErr *carouselerrors.ExportError
	require.ErrorAs(t, err, &exportErr)
	require.Equal(t, 2, exportErr.SlideIndex)
	require.Contains(t, err.Error(), "slide 3")

	var assetErr *carouselerrors.AssetError
	require.ErrorAs(t, err, &assetErr)
	require.Equal(t, []int{1, 2}, seen)
}

func TestExportHonoursCancellation(t *testing.T) {
	t.Parallel()

	exp, _ := newExporter(t)
	c := document.NewCarousel("x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exp.Export(ctx, c, Targets(c), Options{Quality: 1})
	require.True(t, errors.Is(err, context.Canceled))
}

func TestExportValidatesTargetsAndOptions(t *testing.T) {
	t.Parallel()

	exp, _ := newExporter(t)
	c := fiveSlides("bg.png")

	cases := map[string]struct {
		targets []Target
		opts    Options
		field   string
	}{
		"too few targets":  {targets: Targets(c)[:3], opts: Options{Quality: 1}, field: "targets"},
		"out of order":     {targets: []Target{{0, c.Slides[1].ID}, {1, c.Slides[0].ID}, {2, c.Slides[2].ID}, {3, c.Slides[3].ID}, {4, c.Slides[4].ID}}, opts: Options{Quality: 1}, field: "targets[0]"},
		"quality too high": {targets: Targets(c), opts: Options{Quality: 8}, field: "quality"},
		"negative timeout": {targets: Targets(c), opts: Options{Quality: 1, AssetTimeout: -1}, field: "asset_timeout"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := exp.Export(context.Background(), c, tc.targets, tc.opts)
			var validation *carouselerrors.ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tc.field, validation.Field)
		})
	}
}

func TestRenderSlidePNG(t *testing.T) {
	t.Parallel()

	exp, _ := newExporter(t)
	c := document.NewCarousel("Thumbs")

	data, err := exp.RenderSlidePNG(context.Background(), c, 0, 0.25)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 270, img.Bounds().Dx())

	_, err = exp.RenderSlidePNG(context.Background(), c, 3, 1)
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                     "carousel.pdf",
		"   ":                  "carousel.pdf",
		"!!!":                  "carousel.pdf",
		"My Deck":              "my-deck.pdf",
		"  10 Tips / Go  ":     "10-tips-go.pdf",
		"Café résumé":          "café-résumé.pdf",
		"trailing dashes --- ": "trailing-dashes.pdf",
	}
	for title, want := range cases {
		require.Equal(t, want, Filename(title), title)
	}
}
