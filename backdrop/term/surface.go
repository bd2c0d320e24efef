// Package term hosts the backdrop in a terminal. Pixels are folded into
// character cells; particles become dots and links become faint middots
// blended over the background.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spicorn/Danler/field"
)

const (
	glyphSmall = '•'
	glyphLarge = '●'
	glyphLink  = '·'
)

type cell struct {
	glyph rune
	ink   field.Ink
	alpha float64
	dot   bool
}

// Surface rasterizes draw calls into a grid of cells. A cell keeps the
// strongest stroke it received, and a particle dot is never overwritten by
// a link.
type Surface struct {
	cols, rows   int
	cellW, cellH float64
	background   colorful.Color
	cells        []cell
}

// NewSurface creates a cols x rows surface where each cell covers
// cellWidth x cellHeight pixels.
func NewSurface(cols, rows, cellWidth, cellHeight int, background field.Ink) *Surface {
	s := &Surface{
		cellW:      float64(max(cellWidth, 1)),
		cellH:      float64(max(cellHeight, 1)),
		background: inkColor(background),
	}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	n := s.cols * s.rows
	if cap(s.cells) < n {
		s.cells = make([]cell, n)
	}
	s.cells = s.cells[:n]
	s.Clear()
}

// Size returns the grid size in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// PixelSize returns the surface size in pixels.
func (s *Surface) PixelSize() (width, height int) {
	return s.cols * int(s.cellW), s.rows * int(s.cellH)
}

// Clear empties every cell.
func (s *Surface) Clear() {
	clear(s.cells)
}

func (s *Surface) at(x, y float64) *cell {
	if s.cols == 0 || s.rows == 0 || math.IsNaN(x) || math.IsNaN(y) {
		return nil
	}
	col := min(max(int(x/s.cellW), 0), s.cols-1)
	row := min(max(int(y/s.cellH), 0), s.rows-1)
	return &s.cells[row*s.cols+col]
}

func (s *Surface) FillCircle(x, y, radius float64, ink field.Ink) {
	c := s.at(x, y)
	if c == nil {
		return
	}
	if c.dot && c.alpha >= ink.A {
		return
	}
	glyph := glyphSmall
	if radius >= 2 {
		glyph = glyphLarge
	}
	*c = cell{glyph: glyph, ink: ink, alpha: ink.A, dot: true}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, ink field.Ink) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0)/s.cellW, math.Abs(y1-y0)/s.cellH)))
	for k := 0; k <= steps; k++ {
		t := 0.0
		if steps > 0 {
			t = float64(k) / float64(steps)
		}
		c := s.at(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if c == nil || c.dot || c.alpha >= ink.A {
			continue
		}
		*c = cell{glyph: glyphLink, ink: ink, alpha: ink.A}
	}
}

// Cell returns the glyph and blended foreground of a cell. Empty and
// out-of-range cells report a space.
func (s *Surface) Cell(col, row int) (rune, colorful.Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return ' ', s.background
	}
	c := s.cells[row*s.cols+col]
	if c.glyph == 0 {
		return ' ', s.background
	}
	return c.glyph, s.background.BlendRgb(inkColor(c.ink), c.alpha).Clamped()
}

// Flush copies the grid to screen. The caller calls Show.
func (s *Surface) Flush(screen tcell.Screen) {
	bg := tcellColor(s.background)
	base := tcell.StyleDefault.Background(bg)

	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			glyph, fg := s.Cell(col, row)
			screen.SetContent(col, row, glyph, nil, base.Foreground(tcellColor(fg)))
		}
	}
}

func inkColor(ink field.Ink) colorful.Color {
	return colorful.Color{R: float64(ink.R) / 255, G: float64(ink.G) / 255, B: float64(ink.B) / 255}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
