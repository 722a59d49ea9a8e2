package viz

import (
	"strings"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/env"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in sub-pixels; a canvas of
// Width x Height cells has (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark replaces the whole cell holding sub-pixel (x, y) with r.
func (c *Canvas) Mark(x, y int, r rune) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = r
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps playground coordinates onto canvas sub-pixels, y up.
type Viewport struct {
	Bounds env.Bounds
	W, H   int
}

func NewViewport(b env.Bounds, c *Canvas) Viewport {
	return Viewport{Bounds: b, W: c.Width * 2, H: c.Height * 4}
}

func (v Viewport) Project(p asv.Vector2) (int, int) {
	b := v.Bounds
	fx := (p.X - b.XMin) / (b.XMax - b.XMin)
	fy := (b.YMax - p.Y) / (b.YMax - b.YMin)
	return int(fx * float64(v.W-1)), int(fy * float64(v.H-1))
}

// DrawTrail connects consecutive points of a trail.
func (c *Canvas) DrawTrail(v Viewport, trail []asv.Vector2) {
	for i := 1; i < len(trail); i++ {
		x0, y0 := v.Project(trail[i-1])
		x1, y1 := v.Project(trail[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	if len(trail) == 1 {
		c.Set(v.Project(trail[0]))
	}
}

func (c *Canvas) DrawFrame() {
	w, h := c.Width*2-1, c.Height*4-1
	c.DrawLine(0, 0, w, 0)
	c.DrawLine(w, 0, w, h)
	c.DrawLine(w, h, 0, h)
	c.DrawLine(0, h, 0, 0)
}
