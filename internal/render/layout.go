package render

import (
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
)

// LayoutSlide stacks the slide's blocks inside the padded area and positions
// the stack according to the slide's vertical alignment. It is pure: the same
// slide and measurer always produce the same scene.
func LayoutSlide(slide model.Slide, settings model.Settings, m Measurer) Scene {
	width := float64(settings.Width)
	height := float64(settings.Height)
	if width <= 0 || height <= 0 {
		width, height = model.CanvasSize, model.CanvasSize
	}

	pad := style.Padding(slide.Styles.Padding)
	content := Rect{X: pad, Y: pad, W: width - 2*pad, H: height - 2*pad}
	paint := style.ResolveSlide(slide.Styles)
	env := Env{Width: content.W, Paint: paint, Measure: m}

	boxes := make([]Box, len(slide.Blocks))
	total := 0.0
	for i, block := range slide.Blocks {
		boxes[i] = For(block.Type).Static(block.Content, env)
		total += boxes[i].H
		if i > 0 {
			total += style.BlockGap
		}
	}

	y := content.Y
	switch slide.Styles.VerticalAlign {
	case model.AlignCenter:
		y += (content.H - total) / 2
	case model.AlignBottom:
		y += content.H - total
	}

	scene := Scene{
		Width:      width,
		Height:     height,
		Background: paint,
		Content:    content,
		Overflow:   total > content.H,
	}
	for i, block := range slide.Blocks {
		if i > 0 {
			y += style.BlockGap
		}
		box := boxes[i]
		scene.Nodes = append(scene.Nodes, box.translate(content.X, y, block.ID)...)
		scene.Blocks = append(scene.Blocks, BlockBox{
			BlockID: block.ID,
			Type:    block.Type,
			Frame:   Rect{X: content.X, Y: y, W: content.W, H: box.H},
		})
		y += box.H
	}
	return scene
}

// HitTest returns the id of the block under the logical point, or "".
func (s Scene) HitTest(x, y float64) string {
	for i := len(s.Blocks) - 1; i >= 0; i-- {
		f := s.Blocks[i].Frame
		if x >= f.X && x < f.Right() && y >= f.Y && y < f.Bottom() {
			return s.Blocks[i].BlockID
		}
	}
	return ""
}

// Images lists every image source the scene needs, background first.
func (s Scene) Images() []string {
	var srcs []string
	if s.Background.Kind == style.KindImage && s.Background.URL != "" {
		srcs = append(srcs, s.Background.URL)
	}
	for _, n := range s.Nodes {
		if n.Kind == NodeImage && n.Src != "" {
			srcs = append(srcs, n.Src)
		}
	}
	return srcs
}
