package raster

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
)

func (p *painter) image(n render.Node) {
	src, ok := p.images[n.Src]
	if !ok {
		return
	}
	f := p.device(n.Frame)
	r := image.Rect(
		int(math.Round(f.X)), int(math.Round(f.Y)),
		int(math.Round(f.Right())), int(math.Round(f.Bottom())),
	)
	if r.Empty() {
		return
	}

	tile := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if n.Fit == model.FitContain {
		contain(tile, tile.Bounds(), src)
	} else {
		cover(tile, tile.Bounds(), src)
	}
	applyFilter(tile, n.Filter)

	radius := n.Radius * p.q
	if radius <= 0 {
		draw.Draw(p.dst, r, tile, image.Point{}, draw.Over)
		return
	}

	mask := image.NewAlpha(tile.Bounds())
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	(&pathBuilder{z: z}).roundRect(render.Rect{W: float64(r.Dx()), H: float64(r.Dy())}, radius, false)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(p.dst, r, tile, image.Point{}, mask, image.Point{}, draw.Over)
}

// cover scales src to fill r, cropping the overflow evenly on both sides.
func cover(dst draw.Image, r image.Rectangle, src image.Image) {
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 || r.Empty() {
		return
	}
	scale := math.Max(float64(r.Dx())/sw, float64(r.Dy())/sh)
	cw, ch := float64(r.Dx())/scale, float64(r.Dy())/scale
	x0 := sb.Min.X + int((sw-cw)/2)
	y0 := sb.Min.Y + int((sh-ch)/2)
	crop := image.Rect(x0, y0, x0+int(math.Round(cw)), y0+int(math.Round(ch))).Intersect(sb)
	xdraw.CatmullRom.Scale(dst, r, src, crop, xdraw.Over, nil)
}

// contain scales src to fit inside r and centers it.
func contain(dst draw.Image, r image.Rectangle, src image.Image) {
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 || r.Empty() {
		return
	}
	scale := math.Min(float64(r.Dx())/sw, float64(r.Dy())/sh)
	w, h := int(math.Round(sw*scale)), int(math.Round(sh*scale))
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, xdraw.Over, nil)
}

// applyFilter recolors premultiplied pixels in place.
func applyFilter(img *image.RGBA, filter model.ImageFilter) {
	var fn func(r, g, b float64) (float64, float64, float64)
	switch filter {
	case model.FilterGrayscale:
		fn = func(r, g, b float64) (float64, float64, float64) {
			l := 0.299*r + 0.587*g + 0.114*b
			return l, l, l
		}
	case model.FilterSepia:
		fn = func(r, g, b float64) (float64, float64, float64) {
			return 0.393*r + 0.769*g + 0.189*b,
				0.349*r + 0.686*g + 0.168*b,
				0.272*r + 0.534*g + 0.131*b
		}
	case model.FilterDim:
		fn = func(r, g, b float64) (float64, float64, float64) {
			return r * 0.6, g * 0.6, b * 0.6
		}
	default:
		return
	}

	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		a := float64(pix[i+3])
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = uint8(math.Round(math.Min(r, a)))
		pix[i+1] = uint8(math.Round(math.Min(g, a)))
		pix[i+2] = uint8(math.Round(math.Min(b, a)))
	}
}
