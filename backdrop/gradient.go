package backdrop

import (
	"math"

	"github.com/spicorn/Danler/field"
)

// Corner names a viewport corner, clockwise from the top left.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// Gradient is a diagonal wash drawn over the shapes. It has Ink.A alpha in
// Corner and fades linearly to transparent on the diagonal through the two
// neighbouring corners, so the opposite half of the viewport is untouched.
type Gradient struct {
	Corner Corner
	Ink    field.Ink
}

// GradientVertex is one corner of the viewport quad with its alpha.
type GradientVertex struct {
	X, Y  float64
	Alpha float64
}

var indigo900 = field.Ink{R: 49, G: 46, B: 129}

// DefaultGradients returns the two washes of the dark page theme. Both
// are anchored in the top left corner.
func DefaultGradients() []Gradient {
	return []Gradient{
		{Corner: CornerTopLeft, Ink: indigo900.WithAlpha(0.2)},
		{Corner: CornerTopLeft, Ink: indigo900.WithAlpha(0.1)},
	}
}

// AlphaAt returns the wash alpha at (x, y) on a width x height viewport.
func (g Gradient) AlphaAt(x, y, width, height float64) float64 {
	if !(width > 0) || !(height > 0) {
		return 0
	}
	u, v := x/width, y/height
	switch g.Corner {
	case CornerTopRight:
		u = 1 - u
	case CornerBottomRight:
		u, v = 1-u, 1-v
	case CornerBottomLeft:
		v = 1 - v
	}
	t := (u + v) / 2
	return g.Ink.A * math.Max(0, 1-2*t)
}

// Quad returns the viewport corners, clockwise from the top left, with
// their alphas. Interpolating alpha linearly over the triangles of
// Indices reproduces AlphaAt exactly.
func (g Gradient) Quad(width, height float64) [4]GradientVertex {
	q := [4]GradientVertex{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}
	if width > 0 && height > 0 {
		q[g.Corner].Alpha = g.Ink.A
	}
	return q
}

// Indices splits the quad along the diagonal that avoids Corner.
func (g Gradient) Indices() []uint16 {
	if g.Corner == CornerTopLeft || g.Corner == CornerBottomRight {
		return []uint16{0, 1, 3, 1, 2, 3}
	}
	return []uint16{0, 1, 2, 0, 2, 3}
}
