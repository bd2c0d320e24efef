package backdrop

import (
	"math"

	"github.com/spicorn/Danler/field"
)

// Outline is the figure a Shape traces.
type Outline int

const (
	OutlineCircle Outline = iota
	OutlineSquare
	OutlineRoundedSquare
)

const (
	circleSegments = 48
	cornerSegments = 4
	cornerRadius   = 8
)

// Anchor places a shape's bounding box relative to the viewport. X and Y
// are pixel offsets from the left/top edge, or from the right/bottom edge
// when FromRight/FromBottom is set. RelX adds a fraction of the width to
// the horizontal offset, measured from the same edge.
type Anchor struct {
	X, Y       float64
	RelX       float64
	FromRight  bool
	FromBottom bool
}

// Shape is an outlined figure looping through scale and rotation keyframes.
// Keyframes are evenly spaced over Period seconds and interpolated linearly.
type Shape struct {
	Outline Outline
	Size    float64
	Anchor  Anchor
	Scale   []float64
	Rotate  []float64 // degrees
	Period  float64
	Ink     field.Ink
	Width   float64
}

var (
	indigo300 = field.Ink{R: 165, G: 180, B: 252, A: 0.2}
	indigo400 = field.Ink{R: 129, G: 140, B: 248, A: 0.2}
	indigo500 = field.Ink{R: 99, G: 102, B: 241, A: 0.2}
)

// DefaultShapes returns the four outlines floating over the hero section.
func DefaultShapes() []Shape {
	return []Shape{
		{
			Outline: OutlineCircle,
			Size:    128,
			Anchor:  Anchor{X: 80, Y: 80},
			Scale:   []float64{1, 1.2, 1},
			Rotate:  []float64{0, 180, 360},
			Period:  20,
			Ink:     indigo300,
			Width:   1,
		},
		{
			Outline: OutlineRoundedSquare,
			Size:    96,
			Anchor:  Anchor{X: 128, Y: 160, FromRight: true},
			Scale:   []float64{1, 1.1, 1},
			Rotate:  []float64{0, -180, -360},
			Period:  15,
			Ink:     indigo400,
			Width:   1,
		},
		{
			Outline: OutlineSquare,
			Size:    80,
			Anchor:  Anchor{RelX: 0.25, Y: 128, FromBottom: true},
			Scale:   []float64{1, 1.3, 1},
			Rotate:  []float64{0, 90, 180, 270, 360},
			Period:  25,
			Ink:     indigo500,
			Width:   1,
		},
		{
			Outline: OutlineCircle,
			Size:    64,
			Anchor:  Anchor{X: 80, Y: 80, FromRight: true, FromBottom: true},
			Scale:   []float64{1, 1.4, 1},
			Rotate:  []float64{0, -90, -180, -270, -360},
			Period:  18,
			Ink:     indigo300,
			Width:   1,
		},
	}
}

// Center returns the shape's center on a width x height viewport.
func (s Shape) Center(width, height float64) (float64, float64) {
	x := s.Anchor.X + s.Anchor.RelX*width
	if s.Anchor.FromRight {
		x = width - x - s.Size
	}
	y := s.Anchor.Y
	if s.Anchor.FromBottom {
		y = height - s.Anchor.Y - s.Size
	}
	return x + s.Size/2, y + s.Size/2
}

// At returns the scale and the rotation in radians t seconds into the loop.
func (s Shape) At(t float64) (scale, rotation float64) {
	progress := 0.0
	if s.Period > 0 {
		progress = math.Mod(t, s.Period) / s.Period
		if progress < 0 {
			progress++
		}
	}
	return keyframe(s.Scale, progress, 1), keyframe(s.Rotate, progress, 0) * math.Pi / 180
}

func keyframe(values []float64, progress, fallback float64) float64 {
	switch len(values) {
	case 0:
		return fallback
	case 1:
		return values[0]
	}

	pos := progress * float64(len(values)-1)
	i := int(pos)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := pos - float64(i)
	return values[i] + (values[i+1]-values[i])*frac
}

type point struct{ x, y float64 }

// Draw strokes the outline at time t.
func (s Shape) Draw(surf field.Surface, width, height, t float64) {
	cx, cy := s.Center(width, height)
	scale, rotation := s.At(t)
	half := s.Size / 2 * scale

	pts := s.outline(half, scale)
	sin, cos := math.Sincos(rotation)
	for i := range pts {
		x, y := pts[i].x, pts[i].y
		pts[i] = point{cx + x*cos - y*sin, cy + x*sin + y*cos}
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		surf.StrokeLine(a.x, a.y, b.x, b.y, s.Width, s.Ink)
	}
}

func (s Shape) outline(half, scale float64) []point {
	switch s.Outline {
	case OutlineSquare:
		return []point{{half, half}, {-half, half}, {-half, -half}, {half, -half}}

	case OutlineRoundedSquare:
		r := math.Min(cornerRadius*scale, half)
		inner := half - r
		corners := []point{{inner, inner}, {-inner, inner}, {-inner, -inner}, {inner, -inner}}
		pts := make([]point, 0, len(corners)*(cornerSegments+1))
		for c, corner := range corners {
			start := float64(c) * math.Pi / 2
			for k := 0; k <= cornerSegments; k++ {
				a := start + float64(k)*(math.Pi/2)/cornerSegments
				pts = append(pts, point{corner.x + r*math.Cos(a), corner.y + r*math.Sin(a)})
			}
		}
		return pts

	default:
		pts := make([]point, circleSegments)
		for k := range pts {
			a := float64(k) * 2 * math.Pi / circleSegments
			pts[k] = point{half * math.Cos(a), half * math.Sin(a)}
		}
		return pts
	}
}
