// Package raster paints laid out scenes into RGBA images. It is the only
// place that knows about device pixels: scenes are in logical units and the
// quality multiplier scales them at paint time.
//
// Scene colors carry straight (non-premultiplied) alpha.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

// MaxQuality bounds the quality multiplier.
const MaxQuality = 4

// Renderer paints scenes. It is safe for concurrent use when its fetcher is.
type Renderer struct {
	fonts *typeface.Bank
	fetch assets.Fetcher
}

// New builds a renderer. A nil bank uses the shared default faces.
func New(fonts *typeface.Bank, fetch assets.Fetcher) *Renderer {
	if fonts == nil {
		fonts = typeface.Default()
	}
	return &Renderer{fonts: fonts, fetch: fetch}
}

// Render paints scene at quality device pixels per logical unit. Every image
// the scene references is loaded before painting starts; the first failure
// aborts the render.
func (r *Renderer) Render(ctx context.Context, scene render.Scene, quality float64) (*image.RGBA, error) {
	q := clampQuality(quality)

	images, err := r.load(ctx, scene.Images())
	if err != nil {
		return nil, err
	}

	w := int(math.Round(scene.Width * q))
	h := int(math.Round(scene.Height * q))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("scene has no area (%gx%g)", scene.Width, scene.Height)
	}

	p := &painter{
		dst:    image.NewRGBA(image.Rect(0, 0, w, h)),
		q:      q,
		fonts:  r.fonts,
		images: images,
	}
	p.background(scene.Background)
	for _, n := range scene.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.node(n)
	}
	return p.dst, nil
}

func (r *Renderer) load(ctx context.Context, srcs []string) (map[string]image.Image, error) {
	out := make(map[string]image.Image, len(srcs))
	for _, src := range srcs {
		if _, ok := out[src]; ok {
			continue
		}
		if r.fetch == nil {
			return nil, fmt.Errorf("no image fetcher configured for %q", src)
		}
		img, err := r.fetch.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		out[src] = img
	}
	return out, nil
}

func clampQuality(q float64) float64 {
	switch {
	case q <= 0 || math.IsNaN(q):
		return 1
	case q > MaxQuality:
		return MaxQuality
	default:
		return q
	}
}

type painter struct {
	dst    *image.RGBA
	q      float64
	fonts  *typeface.Bank
	images map[string]image.Image
}

func (p *painter) background(paint style.Paint) {
	switch paint.Kind {
	case style.KindGradient:
		p.linearGradient(paint.Angle, paint.Stops)
	case style.KindMesh:
		p.fillUniform(paint.Color)
		for _, layer := range paint.Layers {
			p.radialBlob(layer)
		}
	case style.KindImage:
		p.fillUniform(paint.Color)
		if img, ok := p.images[paint.URL]; ok {
			b := p.dst.Bounds()
			cover(p.dst, b, img)
		}
		if paint.Overlay != nil {
			p.verticalScrim(*paint.Overlay)
		}
	default:
		p.fillUniform(paint.Color)
	}
}

func (p *painter) fillUniform(c color.RGBA) {
	if c.A == 0 {
		c = color.RGBA{A: 255}
	}
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(straight(c)), image.Point{}, draw.Src)
}

// linearGradient follows the CSS convention: 0deg points up, 90deg points
// right, and the gradient line spans the whole canvas along that direction.
func (p *painter) linearGradient(angle float64, stops []style.Stop) {
	if len(stops) == 0 {
		p.fillUniform(color.RGBA{A: 255})
		return
	}
	b := p.dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(w*dx) + math.Abs(h*dy)
	if length == 0 {
		length = 1
	}
	cx, cy := w/2, h/2

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			t := ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/length + 0.5
			p.dst.SetRGBA(x, y, premultiply(sampleStops(stops, t)))
		}
	}
}

func (p *painter) radialBlob(layer style.MeshLayer) {
	b := p.dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cx, cy := layer.X*w, layer.Y*h
	radius := layer.Radius * w
	if radius <= 0 {
		return
	}

	x0 := max(0, int(cx-radius))
	x1 := min(b.Dx(), int(math.Ceil(cx+radius)))
	y0 := max(0, int(cy-radius))
	y1 := min(b.Dy(), int(math.Ceil(cy+radius)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / radius
			if d >= 1 {
				continue
			}
			falloff := (1 - d) * (1 - d)
			blend(p.dst, x, y, layer.Color, falloff)
		}
	}
}

func (p *painter) verticalScrim(ov style.Overlay) {
	b := p.dst.Bounds()
	h := float64(b.Dy())
	for y := 0; y < b.Dy(); y++ {
		c := lerpColor(ov.Top, ov.Bottom, (float64(y)+0.5)/h)
		for x := 0; x < b.Dx(); x++ {
			blend(p.dst, x, y, c, 1)
		}
	}
}

func (p *painter) node(n render.Node) {
	switch n.Kind {
	case render.NodeText:
		p.text(n)
	case render.NodeRect:
		p.rect(n)
	case render.NodeEllipse:
		f := p.device(n.Frame)
		p.fillPath(f, n.Fill, func(b *pathBuilder) { b.ellipse(f) })
	case render.NodeIcon:
		p.icon(n)
	case render.NodeImage:
		p.image(n)
	}
}

func (p *painter) text(n render.Node) {
	if n.Text == "" || n.Size <= 0 {
		return
	}
	ascent, descent := p.fonts.Metrics(n.Size, n.Weight)
	baseline := n.Frame.Y + (n.Frame.H-(ascent+descent))/2 + ascent
	p.fonts.Draw(p.dst, n.Text, n.Frame.X*p.q, baseline*p.q, n.Size*p.q, n.Weight, straight(n.Color))
}

func (p *painter) rect(n render.Node) {
	f := p.device(n.Frame)
	radius := n.Radius * p.q

	if n.Fill.A > 0 {
		if len(n.Dash) > 0 {
			p.dashed(f, n.Dash, n.Fill)
		} else if radius <= 0 {
			p.fillRect(f, n.Fill)
		} else {
			p.fillPath(f, n.Fill, func(b *pathBuilder) { b.roundRect(f, radius, false) })
		}
	}

	if n.Stroke > 0 && n.Color.A > 0 {
		s := n.Stroke * p.q
		inner := render.Rect{X: f.X + s, Y: f.Y + s, W: f.W - 2*s, H: f.H - 2*s}
		p.fillPath(f, n.Color, func(b *pathBuilder) {
			b.roundRect(f, radius, false)
			if inner.W > 0 && inner.H > 0 {
				b.roundRect(inner, math.Max(0, radius-s), true)
			}
		})
	}
}

// dashed lays segments along the longer side of f.
func (p *painter) dashed(f render.Rect, pattern []float64, c color.RGBA) {
	on := pattern[0] * p.q
	off := on
	if len(pattern) > 1 {
		off = pattern[1] * p.q
	}
	if on <= 0 {
		return
	}

	horizontal := f.W >= f.H
	length := f.W
	if !horizontal {
		length = f.H
	}
	thickness := math.Min(f.W, f.H)
	for pos := 0.0; pos < length; pos += on + off {
		seg := render.Rect{X: f.X + pos, Y: f.Y, W: math.Min(on, length-pos), H: f.H}
		if !horizontal {
			seg = render.Rect{X: f.X, Y: f.Y + pos, W: f.W, H: math.Min(on, length-pos)}
		}
		p.fillPath(seg, c, func(b *pathBuilder) { b.roundRect(seg, thickness/2, false) })
	}
}

func (p *painter) fillRect(f render.Rect, c color.RGBA) {
	r := image.Rect(
		int(math.Round(f.X)), int(math.Round(f.Y)),
		int(math.Round(f.Right())), int(math.Round(f.Bottom())),
	).Intersect(p.dst.Bounds())
	draw.Draw(p.dst, r, image.NewUniform(straight(c)), image.Point{}, draw.Over)
}

func (p *painter) device(r render.Rect) render.Rect {
	return render.Rect{X: r.X * p.q, Y: r.Y * p.q, W: r.W * p.q, H: r.H * p.q}
}

func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func premultiply(c color.RGBA) color.RGBA {
	if c.A == 255 {
		return c
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// blend composites straight-alpha c over the pixel, scaled by coverage.
func blend(dst *image.RGBA, x, y int, c color.RGBA, coverage float64) {
	a := float64(c.A) / 255 * coverage
	if a <= 0 {
		return
	}
	i := dst.PixOffset(x, y)
	px := dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	px[0] = uint8(math.Round(float64(c.R)*a + float64(px[0])*inv))
	px[1] = uint8(math.Round(float64(c.G)*a + float64(px[1])*inv))
	px[2] = uint8(math.Round(float64(c.B)*a + float64(px[2])*inv))
	px[3] = uint8(math.Round(255*a + float64(px[3])*inv))
}

func sampleStops(stops []style.Stop, t float64) color.RGBA {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return last.Color
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
