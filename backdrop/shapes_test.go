package backdrop_test

import (
	"math"
	"testing"

	"github.com/spicorn/Danler/backdrop"
	"github.com/spicorn/Danler/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeKeyframes(t *testing.T) {
	shapes := backdrop.DefaultShapes()
	require.Len(t, shapes, 4)
	circle := shapes[0]

	tests := []struct {
		t        float64
		scale    float64
		rotation float64
	}{
		{0, 1, 0},
		{5, 1.1, 90},
		{10, 1.2, 180},
		{15, 1.1, 270},
		{20, 1, 0},
		{30, 1.2, 180},
		{-5, 1.1, 270},
	}

	for _, tt := range tests {
		scale, rotation := circle.At(tt.t)
		assert.InDelta(t, tt.scale, scale, 1e-9, "scale at %v", tt.t)
		assert.InDelta(t, tt.rotation*math.Pi/180, rotation, 1e-9, "rotation at %v", tt.t)
	}

	square := shapes[2]
	_, rotation := square.At(25.0 / 8)
	assert.InDelta(t, 45*math.Pi/180, rotation, 1e-9)
	scale, _ := square.At(25.0 / 2)
	assert.InDelta(t, 1.3, scale, 1e-9)

	static := backdrop.Shape{Size: 10}
	scale, rotation = static.At(3)
	assert.Equal(t, 1.0, scale)
	assert.Equal(t, 0.0, rotation)
}

func TestShapeCenter(t *testing.T) {
	shapes := backdrop.DefaultShapes()

	tests := []struct {
		shape  int
		cx, cy float64
	}{
		{0, 144, 144},
		{1, 824, 208},
		{2, 290, 632},
		{3, 888, 688},
	}

	for _, tt := range tests {
		cx, cy := shapes[tt.shape].Center(1000, 800)
		assert.Equal(t, tt.cx, cx, "shape %d", tt.shape)
		assert.Equal(t, tt.cy, cy, "shape %d", tt.shape)
	}
}

func TestShapeCenterRelativeOffset(t *testing.T) {
	left := backdrop.Shape{Size: 20, Anchor: backdrop.Anchor{X: 10, RelX: 0.1, Y: 30}}
	cx, cy := left.Center(1000, 800)
	assert.Equal(t, 120.0, cx)
	assert.Equal(t, 40.0, cy)

	right := left
	right.Anchor.FromRight = true
	cx, _ = right.Center(1000, 800)
	assert.Equal(t, 880.0, cx)
}

func TestShapeDrawStaysOnOutline(t *testing.T) {
	for i, shape := range backdrop.DefaultShapes() {
		for _, at := range []float64{0, 1.7, 6.25, 11} {
			rec := &surface.Recorder{}
			shape.Draw(rec, 1000, 800, at)
			require.NotEmpty(t, rec.Lines)

			cx, cy := shape.Center(1000, 800)
			scale, _ := shape.At(at)
			half := shape.Size / 2 * scale

			for _, l := range rec.Lines {
				d := math.Hypot(l.X0-cx, l.Y0-cy)
				switch shape.Outline {
				case backdrop.OutlineCircle:
					assert.InDelta(t, half, d, 1e-9, "shape %d", i)
				default:
					assert.LessOrEqual(t, d, half*math.Sqrt2+1e-9, "shape %d", i)
					assert.GreaterOrEqual(t, d, half-1e-9, "shape %d", i)
				}
			}

			first, last := rec.Lines[0], rec.Lines[len(rec.Lines)-1]
			assert.InDelta(t, first.X0, last.X1, 1e-9, "outline must close")
			assert.InDelta(t, first.Y0, last.Y1, 1e-9, "outline must close")
		}
	}
}
