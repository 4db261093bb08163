// Package term renders the particle field in a terminal with half-block cells.
package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Each terminal cell stands for a CellWidth x CellHeight block of surface
// pixels, split into an upper and a lower half.
const (
	CellWidth  = 8
	CellHeight = 16
	halfHeight = CellHeight / 2

	upperHalf = '▀'

	// hits at which a half-cell reaches full brightness
	fullHits = 4
)

type halfCell struct {
	c    color.NRGBA
	hits int
}

// Canvas accumulates particles into half-cells before pushing them to a screen.
type Canvas struct {
	cols  int
	rows  int
	cells []halfCell // [row*2+half][col], flattened
	style tcell.Style
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{style: tcell.StyleDefault.Background(tcell.ColorBlack)}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the canvas when the terminal size changes.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(0, cols), max(0, rows)
	if cols == c.cols && rows == c.rows && c.cells != nil {
		return
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]halfCell, cols*rows*2)
}

// PixelSize is the surface size the field should be seeded for.
func (c *Canvas) PixelSize() (int, int) {
	return c.cols * CellWidth, c.rows * CellHeight
}

// Clear empties every half-cell.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Plot adds a particle at surface pixel (x, y). Accent colors win over the
// base color so repelled particles stay visible in dense cells.
func (c *Canvas) Plot(x, y float64, col color.NRGBA, accent bool) {
	if x < 0 || y < 0 {
		return
	}
	cx := int(x) / CellWidth
	sy := int(y) / halfHeight
	if cx >= c.cols || sy >= c.rows*2 {
		return
	}
	hc := &c.cells[sy*c.cols+cx]
	if hc.hits == 0 || accent {
		hc.c = col
	}
	hc.hits++
}

// At returns the color and hit count of a half-cell, for tests and debugging.
func (c *Canvas) At(col, sub int) (color.NRGBA, int) {
	if col < 0 || sub < 0 || col >= c.cols || sub >= c.rows*2 {
		return color.NRGBA{}, 0
	}
	hc := c.cells[sub*c.cols+col]
	return hc.c, hc.hits
}

// Flush writes every cell to screen. It does not call Show.
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := c.cells[(row*2)*c.cols+col]
			bottom := c.cells[(row*2+1)*c.cols+col]
			if top.hits == 0 && bottom.hits == 0 {
				screen.SetContent(col, row, ' ', nil, c.style)
				continue
			}
			style := c.style.Foreground(shade(top)).Background(shade(bottom))
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}

// shade dims sparse half-cells so glyph density shows through.
func shade(h halfCell) tcell.Color {
	if h.hits == 0 {
		return tcell.ColorBlack
	}
	k := 0.35 + 0.65*float64(min(h.hits, fullHits))/fullHits
	return tcell.NewRGBColor(
		int32(float64(h.c.R)*k),
		int32(float64(h.c.G)*k),
		int32(float64(h.c.B)*k),
	)
}
