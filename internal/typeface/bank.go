// Package typeface loads the embedded Go fonts and hands out cached faces for
// measuring and drawing slide text.
package typeface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Weight selects one of the embedded font files.
type Weight int

const (
	Regular Weight = iota
	Bold
	Italic
	BoldItalic
)

func (w Weight) String() string {
	switch w {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

type faceKey struct {
	weight Weight
	size   int // hundredths of a unit
}

// Bank owns parsed fonts and a face cache. Faces are not safe for concurrent
// use, so every operation that touches one holds mu.
type Bank struct {
	mu    sync.Mutex
	fonts map[Weight]*opentype.Font
	cache map[faceKey]font.Face
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the process wide bank built from the embedded Go fonts.
func Default() *Bank {
	defaultOnce.Do(func() {
		defaultBank, defaultErr = NewBank()
	})
	if defaultErr != nil {
		// The embedded fonts are compiled in; failing to parse them is a build defect.
		panic(defaultErr)
	}
	return defaultBank
}

// NewBank parses the embedded fonts.
func NewBank() (*Bank, error) {
	sources := map[Weight][]byte{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	}

	bank := &Bank{fonts: make(map[Weight]*opentype.Font, len(sources)), cache: map[faceKey]font.Face{}}
	for weight, data := range sources {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", weight, err)
		}
		bank.fonts[weight] = f
	}
	return bank, nil
}

// face returns a cached face. Callers must hold mu.
func (b *Bank) face(weight Weight, size float64) font.Face {
	key := faceKey{weight: weight, size: int(math.Round(size * 100))}
	if f, ok := b.cache[key]; ok {
		return f
	}

	base := b.fonts[weight]
	if base == nil {
		base = b.fonts[Regular]
	}
	if base == nil || size <= 0 {
		return basicfont.Face7x13
	}

	// HintingNone keeps advances proportional to size, so a layout measured at
	// logical size matches the raster drawn at a multiple of it.
	f, err := opentype.NewFace(base, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = f
	return f
}

// Advance measures the horizontal advance of text in logical units.
func (b *Bank) Advance(text string, size float64, weight Weight) float64 {
	if text == "" {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return fromFixed(font.MeasureString(b.face(weight, size), text))
}

// Metrics returns ascent and descent for a face.
func (b *Bank) Metrics(size float64, weight Weight) (ascent, descent float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.face(weight, size).Metrics()
	return fromFixed(m.Ascent), fromFixed(m.Descent)
}

// Draw paints text onto dst with its baseline starting at (x, y).
func (b *Bank) Draw(dst draw.Image, text string, x, y, size float64, weight Weight, c color.Color) {
	if text == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: b.face(weight, size),
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
}

// Faces reports how many faces are cached.
func (b *Bank) Faces() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cache)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
