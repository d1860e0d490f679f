package main

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Canvas is the terminal render surface. It keeps a private copy of the
// last frame the session published and rasterises it on demand.
type Canvas struct {
	shapes     []Shape
	inProgress *Shape
	preview    *Point
	frames     int
}

func NewCanvas() *Canvas {
	return &Canvas{
		shapes: make([]Shape, 0),
	}
}

func (c *Canvas) Render(shapes []Shape, inProgress *Shape, preview *Point) {
	c.shapes = cloneShapes(shapes)
	c.inProgress = inProgress.Clone()
	c.preview = nil
	if preview != nil {
		p := *preview
		c.preview = &p
	}
	c.frames++
}

// Frames is the number of frames published so far.
func (c *Canvas) Frames() int {
	return c.frames
}

func (c *Canvas) IsEmpty() bool {
	return len(c.shapes) == 0 && (c.inProgress == nil || len(c.inProgress.Vertices) == 0)
}

// Lines rasterises the current frame into a width x height viewport whose
// top-left cell is the world cell (panX, panY).
func (c *Canvas) Lines(width, height, panX, panY int) []string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, shape := range c.shapes {
		c.drawPolygon(grid, shape.Vertices, true, glyphEdge, glyphVertex, panX, panY)
	}

	if c.inProgress != nil {
		if last, ok := c.inProgress.LastVertex(); ok && c.preview != nil {
			c.drawPreview(grid, last.cell(), c.preview.cell(), panX, panY)
		}
		c.drawPolygon(grid, c.inProgress.Vertices, false, glyphOpenEdge, glyphOpenVertex, panX, panY)
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

func (c *Canvas) drawPolygon(grid [][]rune, vertices []Point, closed bool, edge, vertex rune, panX, panY int) {
	n := len(vertices)
	for i := 0; i+1 < n; i++ {
		c.drawLine(grid, vertices[i].cell(), vertices[i+1].cell(), edge, panX, panY)
	}
	if closed && n >= minShapeVertices {
		c.drawLine(grid, vertices[n-1].cell(), vertices[0].cell(), edge, panX, panY)
	}
	for _, v := range vertices {
		c.plot(grid, v.cell(), vertex, panX, panY)
	}
}

func (c *Canvas) drawLine(grid [][]rune, from, to point, r rune, panX, panY int) {
	rasterLine(from, to, func(_ int, p point) {
		c.plot(grid, p, r, panX, panY)
	})
}

// drawPreview draws the dashed guide from the last open vertex to the
// pointer. The starting cell is left to the vertex glyph.
func (c *Canvas) drawPreview(grid [][]rune, from, to point, panX, panY int) {
	rasterLine(from, to, func(step int, p point) {
		switch {
		case p == to:
			c.plot(grid, p, glyphPreviewPoint, panX, panY)
		case step > 0 && step%2 == 0:
			c.plot(grid, p, glyphPreview, panX, panY)
		}
	})
}

func (c *Canvas) plot(grid [][]rune, p point, r rune, panX, panY int) {
	x, y := p.X-panX, p.Y-panY
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

// rasterLine walks the Bresenham line from one cell to another, inclusive
// of both ends.
func rasterLine(from, to point, plot func(step int, p point)) {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	for step := 0; ; step++ {
		plot(step, point{X: x, Y: y})
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (c *Canvas) ExportToPNG(filename string) error {
	minP, maxP, ok := drawingBounds(c.shapes, c.inProgress)
	if !ok {
		return errNothingToExport
	}

	// Pixels per terminal cell
	charWidth := 8.0
	charHeight := 16.0
	padding := 2.0

	minX, minY := minP.X-padding, minP.Y-padding
	imageWidth := int((maxP.X - minX + padding) * charWidth)
	imageHeight := int((maxP.Y - minY + padding) * charHeight)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	toPixel := func(p Point) (float64, float64) {
		return (p.X - minX) * charWidth, (p.Y - minY) * charHeight
	}

	for i, shape := range c.shapes {
		c.tracePNG(dc, shape.Vertices, toPixel)
		dc.ClosePath()
		dc.SetColor(color.RGBA{R: 200, G: 220, B: 255, A: 255})
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		x, y := toPixel(shape.Vertices[0])
		dc.DrawStringAnchored(strconv.Itoa(i+1), x, y-4, 0.5, 0)
	}

	if c.inProgress != nil && len(c.inProgress.Vertices) > 0 {
		c.tracePNG(dc, c.inProgress.Vertices, toPixel)
		dc.SetColor(color.RGBA{R: 200, A: 255})
		dc.SetLineWidth(1.5)
		dc.SetDash(6, 4)
		dc.Stroke()
		dc.SetDash()
		for _, v := range c.inProgress.Vertices {
			x, y := toPixel(v)
			dc.DrawCircle(x, y, 2.5)
			dc.Fill()
		}
	}

	return dc.SavePNG(filename)
}

func (c *Canvas) tracePNG(dc *gg.Context, vertices []Point, toPixel func(Point) (float64, float64)) {
	for i, v := range vertices {
		x, y := toPixel(v)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
}
