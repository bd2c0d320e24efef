// Package surface provides host-independent field.Surface implementations:
// a Recorder that keeps every draw call and a Counter that only tallies them.
package surface

import "github.com/spicorn/Danler/field"

// Circle is a recorded FillCircle call.
type Circle struct {
	X, Y, Radius float64
	Ink          field.Ink
}

// Line is a recorded StrokeLine call.
type Line struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Ink            field.Ink
}

// Recorder stores draw calls in issue order.
type Recorder struct {
	Circles []Circle
	Lines   []Line
}

func (r *Recorder) FillCircle(x, y, radius float64, ink field.Ink) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, Radius: radius, Ink: ink})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, ink field.Ink) {
	r.Lines = append(r.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Ink: ink})
}

// Reset drops recorded calls while keeping capacity.
func (r *Recorder) Reset() {
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
}

// Counter counts draw calls without storing them.
type Counter struct {
	Circles int64
	Lines   int64
}

func (c *Counter) FillCircle(x, y, radius float64, ink field.Ink) {
	c.Circles++
}

func (c *Counter) StrokeLine(x0, y0, x1, y1, width float64, ink field.Ink) {
	c.Lines++
}
