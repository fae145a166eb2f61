package tui

import "strings"

// Braille cells pack 2x4 dots per rune, unicode offset 0x2800.
var brailleDots = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// brailleCanvas plots at sub-cell resolution: (cols*2) x (rows*4) dots.
type brailleCanvas struct {
	cols, rows int
	grid       [][]rune
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	c := &brailleCanvas{cols: cols, rows: rows, grid: make([][]rune, rows)}
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

func (c *brailleCanvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] |= brailleDots[y%4][x%2]
}

func (c *brailleCanvas) line(x0, y0, x1, y1 int) {
	dx, dy := intAbs(x1-x0), intAbs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func (c *brailleCanvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// waveform plots a series as a connected braille trace, rows cells tall.
func waveform(data []float64, cols, rows int) string {
	if len(data) < 2 {
		return ""
	}
	minV, maxV := data[0], data[0]
	for _, v := range data {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	c := newBrailleCanvas(cols, rows)
	w, h := cols*2, rows*4
	px, py := 0, 0
	for i, v := range data {
		x := i * (w - 1) / (len(data) - 1)
		y := h - 1 - int((v-minV)/span*float64(h-1))
		if i > 0 {
			c.line(px, py, x, y)
		}
		px, py = x, y
	}
	return strings.TrimRight(c.String(), "\n")
}
