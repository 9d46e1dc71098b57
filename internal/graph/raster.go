package graph

import (
	"math"
	"strings"
)

// Cell glyphs.
const (
	glyphEdge   = '·'
	glyphCenter = '◉'
	glyphNode   = '●'
)

// Raster draws a frame into a cols x rows grid of terminal cells and returns
// the rows joined by newlines. Each node is followed by its initials.
func Raster(d Diagram, f Frame, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cols))
	}

	cell := func(i int) (int, int, bool) {
		if i >= len(f.Positions) {
			return 0, 0, false
		}
		p := f.Positions[i]
		x := int(math.Round(p.X / CanvasWidth * float64(cols-1)))
		y := int(math.Round(p.Y / CanvasHeight * float64(rows-1)))
		return clamp(x, 0, cols-1), clamp(y, 0, rows-1), true
	}

	for _, e := range d.Edges {
		x0, y0, ok0 := cell(e.Source)
		x1, y1, ok1 := cell(e.Target)
		if !ok0 || !ok1 {
			continue
		}
		line(x0, y0, x1, y1, func(x, y int) {
			grid[y][x] = glyphEdge
		})
	}

	// Connections first so the centre is drawn on top.
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		x, y, ok := cell(i)
		if !ok {
			continue
		}
		n := d.Nodes[i]
		if n.IsCenter() {
			grid[y][x] = glyphCenter
		} else {
			grid[y][x] = glyphNode
		}
		for j, r := range []rune(n.Initials) {
			if x+1+j < cols {
				grid[y][x+1+j] = r
			}
		}
	}

	out := make([]string, rows)
	for y, r := range grid {
		out[y] = string(r)
	}
	return strings.Join(out, "\n")
}

// line walks the cells between two points (Bresenham).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
