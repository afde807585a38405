package editor

import (
	"math"

	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// Viewport maps the logical canvas onto a device surface. All layout and hit
// testing happens in logical units; only painting uses device units.
type Viewport struct {
	Scale float64
}

// FitViewport scales the canvas to fit inside a device area.
func FitViewport(deviceW, deviceH float64, settings model.Settings) Viewport {
	w, h := float64(settings.Width), float64(settings.Height)
	if w <= 0 || h <= 0 || deviceW <= 0 || deviceH <= 0 {
		return Viewport{Scale: 1}
	}
	return Viewport{Scale: math.Min(deviceW/w, deviceH/h)}
}

// ToLogical converts device coordinates to logical ones.
func (v Viewport) ToLogical(x, y float64) (float64, float64) {
	scale := v.scale()
	return x / scale, y / scale
}

// ToDevice converts logical coordinates to device ones.
func (v Viewport) ToDevice(x, y float64) (float64, float64) {
	scale := v.scale()
	return x * scale, y * scale
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// Resize fits the viewport to a new device area.
func Resize(s State, deviceW, deviceH float64) State {
	s.Viewport = FitViewport(deviceW, deviceH, s.Doc.Settings)
	return s
}
