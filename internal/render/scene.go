// Package render turns slides into positioned scenes. The same layout feeds
// the editor preview, PNG thumbnails and PDF export, so what the author sees
// is what gets exported.
package render

import (
	"image/color"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/typeface"
)

// Rect is an axis aligned box in logical units.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Offset returns r translated by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Bottom is the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Right is the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// NodeKind discriminates scene primitives.
type NodeKind string

const (
	NodeText    NodeKind = "text"
	NodeRect    NodeKind = "rect"
	NodeEllipse NodeKind = "ellipse"
	NodeImage   NodeKind = "image"
	NodeIcon    NodeKind = "icon"
)

// Node is one positioned primitive. Only the fields relevant to Kind are set.
type Node struct {
	Kind    NodeKind
	BlockID string
	Frame   Rect

	Text   string
	Size   float64
	Weight typeface.Weight

	Color  color.RGBA
	Fill   color.RGBA
	Radius float64
	Stroke float64
	Dash   []float64

	Src    string
	Fit    model.ImageFit
	Filter model.ImageFilter
	Icon   model.IconName
}

// Scene is a fully laid out slide.
type Scene struct {
	Width      float64
	Height     float64
	Background style.Paint
	Content    Rect
	Nodes      []Node
	Blocks     []BlockBox
	Overflow   bool
}

// BlockBox records where each block landed, for hit testing in the editor.
type BlockBox struct {
	BlockID string
	Type    model.BlockType
	Frame   Rect
}

// Box is the output of a strategy: nodes relative to (0,0) and the space
// they occupy.
type Box struct {
	W     float64
	H     float64
	Nodes []Node
}

func (b *Box) add(n Node) {
	b.Nodes = append(b.Nodes, n)
}

func (b Box) translate(dx, dy float64, blockID string) []Node {
	out := make([]Node, len(b.Nodes))
	for i, n := range b.Nodes {
		n.Frame = n.Frame.Offset(dx, dy)
		n.BlockID = blockID
		if n.Dash != nil {
			n.Dash = append([]float64(nil), n.Dash...)
		}
		out[i] = n
	}
	return out
}
