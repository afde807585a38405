package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

type point struct{ x, y float64 }

type segment struct {
	c1, c2 point
	to     point
	curve  bool
}

// pathBuilder feeds absolute device coordinates into a rasterizer whose
// origin sits at (ox, oy).
type pathBuilder struct {
	z      *vector.Rasterizer
	ox, oy float64
}

func (b *pathBuilder) moveTo(p point) {
	b.z.MoveTo(float32(p.x-b.ox), float32(p.y-b.oy))
}

func (b *pathBuilder) segment(s segment) {
	if s.curve {
		b.z.CubeTo(
			float32(s.c1.x-b.ox), float32(s.c1.y-b.oy),
			float32(s.c2.x-b.ox), float32(s.c2.y-b.oy),
			float32(s.to.x-b.ox), float32(s.to.y-b.oy),
		)
		return
	}
	b.z.LineTo(float32(s.to.x-b.ox), float32(s.to.y-b.oy))
}

// closed emits a closed contour. The rasterizer accumulates signed area, so a
// reversed contour inside another one cuts a hole.
func (b *pathBuilder) closed(start point, segs []segment, reverse bool) {
	if len(segs) == 0 {
		return
	}
	if !reverse {
		b.moveTo(start)
		for _, s := range segs {
			b.segment(s)
		}
		b.z.ClosePath()
		return
	}

	b.moveTo(segs[len(segs)-1].to)
	for i := len(segs) - 1; i >= 0; i-- {
		to := start
		if i > 0 {
			to = segs[i-1].to
		}
		s := segs[i]
		b.segment(segment{c1: s.c2, c2: s.c1, to: to, curve: s.curve})
	}
	b.z.ClosePath()
}

func (b *pathBuilder) roundRect(r render.Rect, radius float64, reverse bool) {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	k := radius * kappa
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()

	start := point{x0 + radius, y0}
	segs := []segment{
		{to: point{x1 - radius, y0}},
		{c1: point{x1 - radius + k, y0}, c2: point{x1, y0 + radius - k}, to: point{x1, y0 + radius}, curve: radius > 0},
		{to: point{x1, y1 - radius}},
		{c1: point{x1, y1 - radius + k}, c2: point{x1 - radius + k, y1}, to: point{x1 - radius, y1}, curve: radius > 0},
		{to: point{x0 + radius, y1}},
		{c1: point{x0 + radius - k, y1}, c2: point{x0, y1 - radius + k}, to: point{x0, y1 - radius}, curve: radius > 0},
		{to: point{x0, y0 + radius}},
		{c1: point{x0, y0 + radius - k}, c2: point{x0 + radius - k, y0}, to: start, curve: radius > 0},
	}
	b.closed(start, segs, reverse)
}

func (b *pathBuilder) ellipse(r render.Rect) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	rx, ry := r.W/2, r.H/2
	kx, ky := rx*kappa, ry*kappa

	start := point{cx + rx, cy}
	b.closed(start, []segment{
		{c1: point{cx + rx, cy + ky}, c2: point{cx + kx, cy + ry}, to: point{cx, cy + ry}, curve: true},
		{c1: point{cx - kx, cy + ry}, c2: point{cx - rx, cy + ky}, to: point{cx - rx, cy}, curve: true},
		{c1: point{cx - rx, cy - ky}, c2: point{cx - kx, cy - ry}, to: point{cx, cy - ry}, curve: true},
		{c1: point{cx + kx, cy - ry}, c2: point{cx + rx, cy - ky}, to: start, curve: true},
	}, false)
}

func (b *pathBuilder) polygon(pts []point) {
	if len(pts) < 3 {
		return
	}
	segs := make([]segment, 0, len(pts))
	for _, p := range pts[1:] {
		segs = append(segs, segment{to: p})
	}
	segs = append(segs, segment{to: pts[0]})
	b.closed(pts[0], segs, false)
}

// fillPath rasterizes the contours emitted by build, clipped to bounds and to
// the destination, and composites c through the resulting coverage.
func (p *painter) fillPath(bounds render.Rect, c color.RGBA, build func(*pathBuilder)) {
	if c.A == 0 {
		return
	}
	r := image.Rect(
		int(math.Floor(bounds.X)), int(math.Floor(bounds.Y)),
		int(math.Ceil(bounds.Right())), int(math.Ceil(bounds.Bottom())),
	).Intersect(p.dst.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	build(&pathBuilder{z: z, ox: float64(r.Min.X), oy: float64(r.Min.Y)})
	z.Draw(p.dst, r, image.NewUniform(straight(c)), image.Point{})
}

func (p *painter) icon(n render.Node) {
	f := p.device(n.Frame)
	shape := iconShape(n.Icon)
	p.fillPath(f, n.Color, func(b *pathBuilder) { shape(b, f) })
}

// iconShape returns a drawer for a built-in icon. Shapes are authored in a
// unit square and stretched to the frame.
func iconShape(name model.IconName) func(*pathBuilder, render.Rect) {
	at := func(f render.Rect, pts ...point) []point {
		out := make([]point, len(pts))
		for i, p := range pts {
			out[i] = point{f.X + p.x*f.W, f.Y + p.y*f.H}
		}
		return out
	}

	switch name {
	case model.IconCheck:
		return func(b *pathBuilder, f render.Rect) {
			b.polygon(at(f, point{0.08, 0.55}, point{0.2, 0.43}, point{0.4, 0.63}, point{0.8, 0.2}, point{0.92, 0.32}, point{0.4, 0.87}))
		}
	case model.IconArrow:
		return func(b *pathBuilder, f render.Rect) {
			b.polygon(at(f, point{0.08, 0.42}, point{0.55, 0.42}, point{0.55, 0.18}, point{0.92, 0.5},
				point{0.55, 0.82}, point{0.55, 0.58}, point{0.08, 0.58}))
		}
	case model.IconBolt:
		return func(b *pathBuilder, f render.Rect) {
			b.polygon(at(f, point{0.6, 0.04}, point{0.18, 0.56}, point{0.46, 0.56}, point{0.38, 0.96},
				point{0.82, 0.42}, point{0.54, 0.42}))
		}
	case model.IconPlus:
		return func(b *pathBuilder, f render.Rect) {
			b.polygon(at(f, point{0.4, 0.1}, point{0.6, 0.1}, point{0.6, 0.4}, point{0.9, 0.4}, point{0.9, 0.6},
				point{0.6, 0.6}, point{0.6, 0.9}, point{0.4, 0.9}, point{0.4, 0.6}, point{0.1, 0.6},
				point{0.1, 0.4}, point{0.4, 0.4}))
		}
	case model.IconHeart:
		return func(b *pathBuilder, f render.Rect) {
			p := at(f,
				point{0.5, 0.9},
				point{0.1, 0.62}, point{0.02, 0.38}, point{0.14, 0.22},
				point{0.28, 0.06}, point{0.46, 0.12}, point{0.5, 0.28},
				point{0.54, 0.12}, point{0.72, 0.06}, point{0.86, 0.22},
				point{0.98, 0.38}, point{0.9, 0.62}, point{0.5, 0.9},
			)
			b.closed(p[0], []segment{
				{c1: p[1], c2: p[2], to: p[3], curve: true},
				{c1: p[4], c2: p[5], to: p[6], curve: true},
				{c1: p[7], c2: p[8], to: p[9], curve: true},
				{c1: p[10], c2: p[11], to: p[12], curve: true},
			}, false)
		}
	case model.IconDot:
		return func(b *pathBuilder, f render.Rect) {
			b.ellipse(render.Rect{X: f.X + f.W*0.25, Y: f.Y + f.H*0.25, W: f.W * 0.5, H: f.H * 0.5})
		}
	default:
		return func(b *pathBuilder, f render.Rect) {
			b.polygon(at(f, starPoints()...))
		}
	}
}

func starPoints() []point {
	const (
		outer = 0.5
		inner = 0.2
	)
	pts := make([]point, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, point{0.5 + r*math.Cos(a), 0.54 + r*math.Sin(a)})
	}
	return pts
}
