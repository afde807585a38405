package raster

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

type mapFetcher map[string]image.Image

var errMissing = errors.New("missing image")

func (m mapFetcher) Load(_ context.Context, src string) (image.Image, error) {
	img, ok := m[src]
	if !ok {
		return nil, errMissing
	}
	return img, nil
}

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func scene(bg style.Paint, nodes ...render.Node) render.Scene {
	return render.Scene{Width: 200, Height: 200, Background: bg, Nodes: nodes}
}

func TestSolidBackgroundAndQuality(t *testing.T) {
	t.Parallel()

	paint := style.ResolveBackground("solid-light")
	r := New(nil, nil)

	img, err := r.Render(context.Background(), scene(paint), 1)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
	require.Equal(t, paint.Color, img.RGBAAt(100, 100))

	img, err = r.Render(context.Background(), scene(paint), 2)
	require.NoError(t, err)
	require.Equal(t, 400, img.Bounds().Dx())

	img, err = r.Render(context.Background(), scene(paint), 10)
	require.NoError(t, err)
	require.Equal(t, 200*MaxQuality, img.Bounds().Dx())
}

func TestGradientRunsAlongAngle(t *testing.T) {
	t.Parallel()

	paint := style.Paint{
		Kind:  style.KindGradient,
		Angle: 90,
		Stops: []style.Stop{
			{Offset: 0, Color: color.RGBA{R: 255, A: 255}},
			{Offset: 1, Color: color.RGBA{B: 255, A: 255}},
		},
	}
	img, err := New(nil, nil).Render(context.Background(), scene(paint), 1)
	require.NoError(t, err)

	left, right := img.RGBAAt(0, 100), img.RGBAAt(199, 100)
	require.Greater(t, left.R, left.B)
	require.Greater(t, right.B, right.R)
	require.Equal(t, img.RGBAAt(10, 0), img.RGBAAt(10, 199))
}

func TestMeshBlobsTintBase(t *testing.T) {
	t.Parallel()

	paint := style.Paint{
		Kind:   style.KindMesh,
		Color:  color.RGBA{A: 255},
		Layers: []style.MeshLayer{{X: 0.5, Y: 0.5, Radius: 0.3, Color: color.RGBA{G: 255, A: 255}}},
	}
	img, err := New(nil, nil).Render(context.Background(), scene(paint), 1)
	require.NoError(t, err)
	require.Greater(t, img.RGBAAt(100, 100).G, uint8(200))
	require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(2, 2))
}

func TestImageBackgroundGetsOverlay(t *testing.T) {
	t.Parallel()

	paint := style.ResolveSlide(model.SlideStyles{
		Background:      "solid-dark",
		BackgroundImage: &model.BackgroundImage{URL: "bg.png"},
	})
	fetch := mapFetcher{"bg.png": uniform(50, 80, color.RGBA{R: 255, G: 255, B: 255, A: 255})}

	img, err := New(nil, fetch).Render(context.Background(), scene(paint), 1)
	require.NoError(t, err)

	top, bottom := img.RGBAAt(100, 0), img.RGBAAt(100, 199)
	require.Less(t, top.R, uint8(255))
	require.Greater(t, top.R, bottom.R)
}

func TestMissingImageAbortsRender(t *testing.T) {
	t.Parallel()

	s := scene(style.ResolveBackground(style.DefaultKey),
		render.Node{Kind: render.NodeImage, Src: "gone.png", Frame: render.Rect{W: 50, H: 50}})
	_, err := New(nil, mapFetcher{}).Render(context.Background(), s, 1)
	require.ErrorIs(t, err, errMissing)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := scene(style.ResolveBackground(style.DefaultKey),
		render.Node{Kind: render.NodeRect, Fill: color.RGBA{R: 255, A: 255}, Frame: render.Rect{W: 10, H: 10}})
	_, err := New(nil, nil).Render(ctx, s, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLaidOutSlidePaintsText(t *testing.T) {
	t.Parallel()

	slide := model.Slide{
		ID:     "s1",
		Order:  1,
		Styles: model.SlideStyles{Background: "solid-dark", Padding: model.PaddingNormal, VerticalAlign: model.AlignCenter},
		Blocks: []model.Block{{
			ID:      "b1",
			Type:    model.BlockHeading,
			Content: model.HeadingContent{TextBody: model.TextBody{Text: "Hello", Align: model.TextCenter}},
		}},
	}
	sc := render.LayoutSlide(slide, model.DefaultSettings(), typeface.Default())
	img, err := New(nil, nil).Render(context.Background(), sc, 0.5)
	require.NoError(t, err)

	bg := img.RGBAAt(0, 0)
	painted := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				painted++
			}
		}
	}
	require.Positive(t, painted)
}

func TestStrokedRectLeavesInteriorAlone(t *testing.T) {
	t.Parallel()

	paint := style.Paint{Kind: style.KindSolid, Color: color.RGBA{A: 255}}
	s := scene(paint, render.Node{
		Kind:   render.NodeRect,
		Frame:  render.Rect{X: 20, Y: 20, W: 160, H: 160},
		Color:  color.RGBA{R: 255, A: 255},
		Stroke: 4,
		Radius: 24,
	})
	img, err := New(nil, nil).Render(context.Background(), s, 1)
	require.NoError(t, err)

	require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(100, 100))
	require.Equal(t, uint8(255), img.RGBAAt(100, 21).R)
}

func TestRoundedImageNodeWithFilter(t *testing.T) {
	t.Parallel()

	fetch := mapFetcher{"red.png": uniform(40, 20, color.RGBA{R: 200, G: 40, B: 40, A: 255})}
	paint := style.Paint{Kind: style.KindSolid, Color: color.RGBA{A: 255}}
	s := scene(paint, render.Node{
		Kind:   render.NodeImage,
		Src:    "red.png",
		Frame:  render.Rect{X: 0, Y: 0, W: 100, H: 100},
		Fit:    model.FitCover,
		Filter: model.FilterGrayscale,
		Radius: 40,
	})
	img, err := New(nil, fetch).Render(context.Background(), s, 1)
	require.NoError(t, err)

	center := img.RGBAAt(50, 50)
	require.Equal(t, center.R, center.G)
	require.Equal(t, center.G, center.B)
	require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 1))
}

func TestIconsCoverTheirFrame(t *testing.T) {
	t.Parallel()

	paint := style.Paint{Kind: style.KindSolid, Color: color.RGBA{A: 255}}
	for _, name := range model.IconNames() {
		s := scene(paint, render.Node{
			Kind:  render.NodeIcon,
			Icon:  name,
			Color: color.RGBA{G: 255, A: 255},
			Frame: render.Rect{X: 50, Y: 50, W: 100, H: 100},
		})
		img, err := New(nil, nil).Render(context.Background(), s, 1)
		require.NoError(t, err, name)
		painted := false
		for y := 50; y < 150 && !painted; y++ {
			for x := 50; x < 150; x++ {
				if img.RGBAAt(x, y).G > 128 {
					painted = true
					break
				}
			}
		}
		require.True(t, painted, name)
		require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(10, 10), name)
	}
}

func TestApplyFilterSepiaStaysWithinAlpha(t *testing.T) {
	t.Parallel()

	img := uniform(2, 2, color.RGBA{R: 100, G: 100, B: 100, A: 128})
	applyFilter(img, model.FilterSepia)
	px := img.RGBAAt(0, 0)
	require.LessOrEqual(t, px.R, px.A)
	require.Greater(t, px.R, px.B)
}
