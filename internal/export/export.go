// Package export turns a carousel into a multi-page PDF, one full-bleed page
// per slide. Slides are captured strictly one after another through a single
// shared surface; the first failure aborts the whole export.
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/raster"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

const (
	// DefaultQuality renders at twice the logical resolution.
	DefaultQuality = 2
	// DefaultAssetTimeout bounds how long one slide may wait for its images.
	DefaultAssetTimeout = 30 * time.Second
	// FallbackFilename is used when the title has nothing usable in it.
	FallbackFilename = "carousel"
)

// Progress is reported after each slide is captured.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Options tunes an export.
type Options struct {
	// Quality is the raster multiplier, 1 to 4. Zero means DefaultQuality.
	Quality float64
	// OnProgress is called synchronously after every page.
	OnProgress func(Progress)
	// AssetTimeout bounds image loading per slide. Zero means unbounded.
	AssetTimeout time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Quality: DefaultQuality, AssetTimeout: DefaultAssetTimeout}
}

// Target names the slide captured for one page.
type Target struct {
	Index   int
	SlideID string
}

// Targets returns one target per slide, in document order.
func Targets(c model.Carousel) []Target {
	out := make([]Target, len(c.Slides))
	for i, s := range c.Slides {
		out[i] = Target{Index: i, SlideID: s.ID}
	}
	return out
}

// Artifact is a finished export.
type Artifact struct {
	Filename string
	Data     []byte
	Pages    int
	Width    int
	Height   int
	// Digests holds the SHA-256 of each page image, in page order.
	Digests []string
}

// WriteTo writes the PDF bytes.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Data)
	return int64(n), err
}

// Exporter owns the capture surface. Exports through the same Exporter are
// serialized.
type Exporter struct {
	mu       sync.Mutex
	renderer *raster.Renderer
	fonts    *typeface.Bank
	log      *logger.Logger
}

// New builds an exporter that loads images through fetch.
func New(fetch assets.Fetcher, log *logger.Logger) *Exporter {
	fonts := typeface.Default()
	return &Exporter{
		renderer: raster.New(fonts, fetch),
		fonts:    fonts,
		log:      log.WithComponent("export"),
	}
}

// Export captures every target and assembles the PDF. Nothing is returned
// unless every slide succeeds.
func (e *Exporter) Export(ctx context.Context, c model.Carousel, targets []Target, opts Options) (*Artifact, error) {
	quality, err := checkOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := checkTargets(c, targets); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	width, height := canvas(c.Settings)
	pages := newPageWriter(c.Title, float64(width), float64(height))
	total := len(targets)
	digests := make([]string, 0, total)
	started := time.Now()

	e.log.WithFields(map[string]any{
		"slides":  total,
		"quality": quality,
	}).Info("export started")

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, carouselerrors.NewExportError(i, target.SlideID, err)
		}

		slide := c.Slides[target.Index]
		img, err := e.capture(ctx, slide, c.Settings, quality, opts.AssetTimeout)
		if err != nil {
			e.log.Error(err, fmt.Sprintf("export aborted on slide %d", i+1))
			return nil, carouselerrors.NewExportError(i, slide.ID, err)
		}

		encoded, err := pages.addPage(img)
		if err != nil {
			return nil, carouselerrors.NewExportError(i, slide.ID, err)
		}
		sum := sha256.Sum256(encoded)
		digests = append(digests, hex.EncodeToString(sum[:]))

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Current:    i + 1,
				Total:      total,
				Percentage: (i + 1) * 100 / total,
			})
		}
	}

	data, err := pages.bytes()
	if err != nil {
		return nil, carouselerrors.NewExportError(-1, "", err)
	}

	e.log.WithFields(map[string]any{
		"pages":    total,
		"bytes":    len(data),
		"duration": time.Since(started).String(),
	}).Info("export finished")

	return &Artifact{
		Filename: Filename(c.Title),
		Data:     data,
		Pages:    total,
		Width:    width,
		Height:   height,
		Digests:  digests,
	}, nil
}

// RenderSlidePNG renders one slide as a PNG, for thumbnails and previews.
func (e *Exporter) RenderSlidePNG(ctx context.Context, c model.Carousel, index int, quality float64) ([]byte, error) {
	if index < 0 || index >= len(c.Slides) {
		return nil, carouselerrors.NewValidationError("slide", fmt.Sprintf("index %d out of range (%d slides)", index, len(c.Slides)), nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	img, err := e.capture(ctx, c.Slides[index], c.Settings, quality, DefaultAssetTimeout)
	if err != nil {
		return nil, carouselerrors.NewExportError(index, c.Slides[index].ID, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// capture rebuilds the slide's static scene and rasterizes it. Callers hold
// the surface lock.
func (e *Exporter) capture(ctx context.Context, slide model.Slide, settings model.Settings, quality float64, timeout time.Duration) (*image.RGBA, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	scene := render.LayoutSlide(slide, settings, e.fonts)
	return e.renderer.Render(ctx, scene, quality)
}

func checkOptions(opts Options) (float64, error) {
	q := opts.Quality
	if q == 0 {
		q = DefaultQuality
	}
	if q < 1 || q > raster.MaxQuality {
		return 0, carouselerrors.NewValidationError("quality", fmt.Sprintf("must be between 1 and %d, got %g", raster.MaxQuality, q), nil)
	}
	if opts.AssetTimeout < 0 {
		return 0, carouselerrors.NewValidationError("asset_timeout", "must not be negative", nil)
	}
	return q, nil
}

// checkTargets requires exactly one target per slide, in slide order.
func checkTargets(c model.Carousel, targets []Target) error {
	if len(c.Slides) == 0 {
		return carouselerrors.NewValidationError("slides", "nothing to export", nil)
	}
	if len(targets) != len(c.Slides) {
		return carouselerrors.NewValidationError("targets", fmt.Sprintf("got %d targets for %d slides", len(targets), len(c.Slides)), nil)
	}
	for i, t := range targets {
		if t.Index != i || c.Slides[i].ID != t.SlideID {
			return carouselerrors.NewValidationError(fmt.Sprintf("targets[%d]", i), fmt.Sprintf("expected slide %q at position %d", c.Slides[i].ID, i+1), nil)
		}
		if c.Slides[i].Order != i+1 {
			return carouselerrors.NewValidationError(fmt.Sprintf("slides[%d].order", i), fmt.Sprintf("is %d, expected %d", c.Slides[i].Order, i+1), nil)
		}
	}
	return nil
}

func canvas(s model.Settings) (int, int) {
	if s.Width <= 0 || s.Height <= 0 {
		return model.CanvasSize, model.CanvasSize
	}
	return s.Width, s.Height
}

// Filename derives a file name from a title: letters and digits survive,
// everything else collapses into single dashes.
func Filename(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	name := b.String()
	if name == "" {
		name = FallbackFilename
	}
	return name + ".pdf"
}
