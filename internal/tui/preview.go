package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/carousel/internal/editor"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
	"github.com/alexisbeaulieu97/carousel/internal/style"
)

// A terminal cell is one device unit wide and two device units tall.
const cellAspect = 2

type cell struct {
	r     rune
	fg    color.RGBA
	block string
}

// canvas is the character grid the preview draws a scene into.
type canvas struct {
	cols  int
	rows  int
	cells [][]cell
	vp    editor.Viewport
}

func newCanvas(scene render.Scene, vp editor.Viewport, maxCols, maxRows int) *canvas {
	w, h := vp.ToDevice(scene.Width, scene.Height)
	c := &canvas{
		cols: max(1, min(maxCols, int(math.Round(w)))),
		rows: max(1, min(maxRows, int(math.Round(h/cellAspect)))),
		vp:   vp,
	}
	c.cells = make([][]cell, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, c.cols)
	}
	return c
}

// cellAt maps a logical point to a cell position.
func (c *canvas) cellAt(x, y float64) (int, int) {
	dx, dy := c.vp.ToDevice(x, y)
	return int(dx), int(dy / cellAspect)
}

func (c *canvas) set(col, row int, r rune, fg color.RGBA) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col].r = r
	c.cells[row][col].fg = fg
}

func (c *canvas) text(col, row int, s string, fg color.RGBA) {
	for _, r := range s {
		c.set(col, row, r, fg)
		col++
	}
}

func (c *canvas) fill(frame render.Rect, r rune, fg color.RGBA) {
	c0, r0 := c.cellAt(frame.X, frame.Y)
	c1, r1 := c.cellAt(frame.Right(), frame.Bottom())
	for row := r0; row <= max(r0, r1-1); row++ {
		for col := c0; col <= max(c0, c1-1); col++ {
			c.set(col, row, r, fg)
		}
	}
}

func (c *canvas) mark(frame render.Rect, id string) {
	c0, r0 := c.cellAt(frame.X, frame.Y)
	c1, r1 := c.cellAt(frame.Right(), frame.Bottom())
	for row := max(0, r0); row <= min(c.rows-1, max(r0, r1-1)); row++ {
		for col := max(0, c0); col <= min(c.cols-1, max(c0, c1-1)); col++ {
			c.cells[row][col].block = id
		}
	}
}

func (c *canvas) draw(n render.Node) {
	col, row := c.cellAt(n.Frame.X, n.Frame.Y)
	switch n.Kind {
	case render.NodeText:
		c.text(col, row, n.Text, n.Color)
	case render.NodeImage:
		c.fill(n.Frame, '░', color.RGBA{R: 148, G: 163, B: 184, A: 255})
	case render.NodeEllipse:
		c.set(col, row, '●', n.Fill)
	case render.NodeIcon:
		c.set(col, row, iconGlyph(n.Icon), n.Color)
	case render.NodeRect:
		_, h := c.vp.ToDevice(0, n.Frame.H)
		if h < cellAspect && n.Fill.A > 0 {
			c.fill(n.Frame, '─', n.Fill)
		}
	}
}

func iconGlyph(name model.IconName) rune {
	switch name {
	case model.IconStar:
		return '★'
	case model.IconCheck:
		return '✓'
	case model.IconArrow:
		return '→'
	case model.IconBolt:
		return '⚡'
	case model.IconHeart:
		return '♥'
	case model.IconPlus:
		return '+'
	default:
		return '•'
	}
}

// renderPreview draws the scene at the viewport scale. The selected block is
// highlighted, and so is the block being dragged.
func renderPreview(scene render.Scene, vp editor.Viewport, maxCols, maxRows int, selected string, dragging bool) string {
	c := newCanvas(scene, vp, maxCols, maxRows)
	for _, b := range scene.Blocks {
		c.mark(b.Frame, b.BlockID)
	}
	for _, n := range scene.Nodes {
		c.draw(n)
	}

	bg := lipgloss.Color(termHex(baseColor(scene.Background)))
	highlight := selectionColor
	if dragging {
		highlight = draggingColor
	}

	lines := make([]string, c.rows)
	for row, cells := range c.cells {
		var b strings.Builder
		start := 0
		for col := 1; col <= len(cells); col++ {
			if col < len(cells) && sameRun(cells[start], cells[col], selected) {
				continue
			}
			st := lipgloss.NewStyle().Background(bg)
			if selected != "" && cells[start].block == selected {
				st = st.Background(highlight)
			}
			if cells[start].r != 0 {
				st = st.Foreground(lipgloss.Color(termHex(cells[start].fg)))
			}
			b.WriteString(st.Render(runString(cells[start:col])))
			start = col
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameRun(a, b cell, selected string) bool {
	if (a.block == selected) != (b.block == selected) {
		return false
	}
	if a.r == 0 || b.r == 0 {
		return a.r == b.r
	}
	return a.fg == b.fg
}

func runString(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		if c.r == 0 {
			rs[i] = ' '
			continue
		}
		rs[i] = c.r
	}
	return string(rs)
}

// baseColor picks one color that stands in for the whole background.
func baseColor(p style.Paint) color.RGBA {
	switch p.Kind {
	case style.KindGradient:
		if len(p.Stops) > 0 {
			return p.Stops[0].Color
		}
	case style.KindImage:
		return color.RGBA{R: 17, G: 24, B: 39, A: 255}
	}
	return p.Color
}

func termHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
