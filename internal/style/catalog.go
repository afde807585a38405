// Package style holds the static background catalog and layout constants
// shared by the editor preview and the export rasterizer. Everything here is
// built once at init and never written afterwards.
package style

import (
	"image/color"
	"sort"

	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// Kind discriminates the paint variants.
type Kind string

const (
	KindSolid    Kind = "solid"
	KindGradient Kind = "gradient"
	KindMesh     Kind = "mesh"
	KindImage    Kind = "image"
)

// Tone tells blocks whether they sit on a light or a dark background.
type Tone string

const (
	ToneDark  Tone = "dark"
	ToneLight Tone = "light"
)

// DefaultKey is used whenever a slide names a key the catalog does not know.
const DefaultKey model.StyleKey = "solid-dark"

// Stop is one color stop of a linear gradient. Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// MeshLayer is a soft radial blob painted over the mesh base color.
// X, Y and Radius are fractions of the slide width.
type MeshLayer struct {
	X      float64
	Y      float64
	Radius float64
	Color  color.RGBA
}

// Overlay is the vertical scrim composited above a background image and
// below every content block.
type Overlay struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// ImageOverlay darkens from 30% at the top to 50% at the bottom.
var ImageOverlay = Overlay{
	Top:    color.RGBA{A: 77},
	Bottom: color.RGBA{A: 128},
}

// Paint is a resolved background description.
type Paint struct {
	Key     model.StyleKey
	Kind    Kind
	Label   string
	Color   color.RGBA
	Angle   float64
	Stops   []Stop
	Layers  []MeshLayer
	URL     string
	Overlay *Overlay
	Tone    Tone
	Accent  color.RGBA
	Premium bool
}

// Clone copies the slices so callers can never write into the catalog.
func (p Paint) Clone() Paint {
	out := p
	out.Stops = append([]Stop(nil), p.Stops...)
	out.Layers = append([]MeshLayer(nil), p.Layers...)
	if p.Overlay != nil {
		ov := *p.Overlay
		out.Overlay = &ov
	}
	return out
}

// TextColor is the default foreground for blocks without an explicit color.
func (p Paint) TextColor() color.RGBA {
	if p.Tone == ToneLight {
		return mustHex("#0f172a")
	}
	return mustHex("#ffffff")
}

// MutedColor is the default foreground for secondary text.
func (p Paint) MutedColor() color.RGBA {
	if p.Tone == ToneLight {
		return mustHex("#475569")
	}
	return mustHex("#cbd5e1")
}

var (
	catalog map[model.StyleKey]Paint
	ordered []model.StyleKey
)

func init() {
	entries := []Paint{
		solid("solid-dark", "Midnight", "#0f172a", ToneDark, "#38bdf8"),
		solid("solid-light", "Paper", "#f8fafc", ToneLight, "#2563eb"),
		solid("solid-navy", "Navy", "#1e3a8a", ToneDark, "#fbbf24"),
		solid("solid-cream", "Cream", "#fdf6e3", ToneLight, "#b45309"),
		solid("solid-forest", "Forest", "#14532d", ToneDark, "#86efac"),
		solid("solid-coral", "Coral", "#fb7185", ToneDark, "#fff1f2"),
		gradient("gradient-sunset", "Sunset", 135, ToneDark, "#fde68a", "#f97316", "#db2777"),
		gradient("gradient-ocean", "Ocean", 180, ToneDark, "#bae6fd", "#0ea5e9", "#1e3a8a"),
		gradient("gradient-purple", "Grape", 135, ToneDark, "#f0abfc", "#a855f7", "#4c1d95"),
		gradient("gradient-midnight", "Dusk", 180, ToneDark, "#fbbf24", "#111827", "#020617"),
		gradient("gradient-mint", "Mint", 160, ToneLight, "#ecfdf5", "#a7f3d0"),
		mesh("mesh-aurora", "Aurora", "#0b1026", "#38bdf8",
			MeshLayer{X: 0.15, Y: 0.2, Radius: 0.6, Color: mustHex("#22d3ee")},
			MeshLayer{X: 0.85, Y: 0.3, Radius: 0.55, Color: mustHex("#a855f7")},
			MeshLayer{X: 0.5, Y: 0.95, Radius: 0.7, Color: mustHex("#10b981")},
		),
		mesh("mesh-candy", "Candy", "#3b0764", "#fde047",
			MeshLayer{X: 0.1, Y: 0.9, Radius: 0.65, Color: mustHex("#f472b6")},
			MeshLayer{X: 0.9, Y: 0.1, Radius: 0.6, Color: mustHex("#fb923c")},
			MeshLayer{X: 0.5, Y: 0.5, Radius: 0.4, Color: mustHex("#c084fc")},
		),
		mesh("mesh-nebula", "Nebula", "#020617", "#f472b6",
			MeshLayer{X: 0.3, Y: 0.3, Radius: 0.5, Color: mustHex("#6366f1")},
			MeshLayer{X: 0.75, Y: 0.7, Radius: 0.55, Color: mustHex("#ec4899")},
		),
	}

	catalog = make(map[model.StyleKey]Paint, len(entries))
	for _, entry := range entries {
		catalog[entry.Key] = entry
		ordered = append(ordered, entry.Key)
	}
}

// ResolveBackground returns the paint for a catalog key. Unknown keys fall
// back to DefaultKey; resolution never fails.
func ResolveBackground(key model.StyleKey) Paint {
	if p, ok := catalog[key]; ok {
		return p.Clone()
	}
	return catalog[DefaultKey].Clone()
}

// ResolveSlide returns the paint for a slide. A background image bypasses the
// catalog and always carries ImageOverlay. The catalog entry still decides
// tone and accent so block colors stay readable.
func ResolveSlide(styles model.SlideStyles) Paint {
	base := ResolveBackground(styles.Background)
	if styles.BackgroundImage == nil || styles.BackgroundImage.URL == "" {
		return base
	}

	overlay := ImageOverlay
	return Paint{
		Key:     base.Key,
		Kind:    KindImage,
		Label:   "Image",
		Color:   base.Color,
		URL:     styles.BackgroundImage.URL,
		Overlay: &overlay,
		Tone:    ToneDark,
		Accent:  base.Accent,
	}
}

// Known reports whether the catalog contains key.
func Known(key model.StyleKey) bool {
	_, ok := catalog[key]
	return ok
}

// Keys returns every catalog key in picker order.
func Keys() []model.StyleKey {
	return append([]model.StyleKey(nil), ordered...)
}

// PremiumKeys returns the mesh entries, sorted.
func PremiumKeys() []model.StyleKey {
	var keys []model.StyleKey
	for key, p := range catalog {
		if p.Premium {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func solid(key, label, hex string, tone Tone, accent string) Paint {
	return Paint{Key: model.StyleKey(key), Kind: KindSolid, Label: label, Color: mustHex(hex), Tone: tone, Accent: mustHex(accent)}
}

func gradient(key, label string, angle float64, tone Tone, hexes ...string) Paint {
	stops := make([]Stop, len(hexes))
	for i, hex := range hexes {
		offset := 0.0
		if len(hexes) > 1 {
			offset = float64(i) / float64(len(hexes)-1)
		}
		stops[i] = Stop{Offset: offset, Color: mustHex(hex)}
	}
	return Paint{
		Key:    model.StyleKey(key),
		Kind:   KindGradient,
		Label:  label,
		Color:  stops[0].Color,
		Angle:  angle,
		Stops:  stops,
		Tone:   tone,
		Accent: mustHex("#ffffff"),
	}
}

func mesh(key, label, base, accent string, layers ...MeshLayer) Paint {
	return Paint{
		Key:     model.StyleKey(key),
		Kind:    KindMesh,
		Label:   label,
		Color:   mustHex(base),
		Layers:  layers,
		Tone:    ToneDark,
		Accent:  mustHex(accent),
		Premium: true,
	}
}

// IsPremium reports whether key names a premium (mesh) background.
func IsPremium(key model.StyleKey) bool {
	p, ok := catalog[key]
	return ok && p.Premium
}
