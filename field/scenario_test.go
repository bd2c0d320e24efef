package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type strokes struct {
	circles int
	lines   []Ink
}

func (s *strokes) FillCircle(x, y, radius float64, ink Ink) { s.circles++ }

func (s *strokes) StrokeLine(x0, y0, x1, y1, width float64, ink Ink) {
	s.lines = append(s.lines, ink)
}

func TestReflectAtLeftEdge(t *testing.T) {
	f := New(400, 300, WithSeed(1))
	f.particles = []Particle{{X: 0, Y: 5, VX: -0.2, VY: 0.1, Radius: 2, Opacity: 0.5}}

	f.Advance()

	p := f.particles[0]
	assert.Equal(t, 0.2, p.VX)
	assert.Equal(t, 0.1, p.VY)
	assert.Equal(t, 0.0, p.X)
	assert.InDelta(t, 5.1, p.Y, 1e-12)

	f.Advance()
	assert.InDelta(t, 0.2, f.particles[0].X, 1e-12)
	assert.Equal(t, 0.2, f.particles[0].VX)
}

func TestReflectAtFarCorner(t *testing.T) {
	f := New(400, 300, WithSeed(1))
	f.particles = []Particle{{X: 399.9, Y: 299.95, VX: 0.25, VY: 0.1, Radius: 1, Opacity: 0.2}}

	f.Advance()

	p := f.particles[0]
	assert.Equal(t, -0.25, p.VX)
	assert.Equal(t, -0.1, p.VY)
	assert.Equal(t, 400.0, p.X)
	assert.Equal(t, 300.0, p.Y)
}

func TestLinkScenario(t *testing.T) {
	f := New(400, 300, WithSeed(1))

	t.Run("within link distance", func(t *testing.T) {
		f.particles = []Particle{
			{X: 0, Y: 0, Radius: 1, Opacity: 0.5},
			{X: 100, Y: 0, Radius: 1, Opacity: 0.5},
		}
		s := &strokes{}
		f.Render(s)

		assert.Equal(t, 2, s.circles)
		require.Len(t, s.lines, 1)
		assert.InDelta(t, 0.1, s.lines[0].A, 1e-12)
		assert.Equal(t, 1, f.Stats().Links)
	})

	t.Run("exactly at link distance", func(t *testing.T) {
		f.particles = []Particle{
			{X: 0, Y: 0, Radius: 1, Opacity: 0.5},
			{X: 150, Y: 0, Radius: 1, Opacity: 0.5},
		}
		s := &strokes{}
		f.Render(s)
		assert.Empty(t, s.lines)
		assert.Equal(t, 0, f.Stats().Links)
	})

	t.Run("across grid cells", func(t *testing.T) {
		f.particles = []Particle{
			{X: 149, Y: 149, Radius: 1, Opacity: 0.5},
			{X: 151, Y: 151, Radius: 1, Opacity: 0.5},
			{X: 10, Y: 290, Radius: 1, Opacity: 0.5},
		}
		s := &strokes{}
		f.Render(s)
		require.Len(t, s.lines, 1)
		assert.Greater(t, s.lines[0].A, 0.29)
	})

	t.Run("coincident particles", func(t *testing.T) {
		f.particles = []Particle{
			{X: 20, Y: 20, Radius: 1, Opacity: 0.5},
			{X: 20, Y: 20, Radius: 1, Opacity: 0.5},
		}
		s := &strokes{}
		f.Render(s)
		require.Len(t, s.lines, 1)
		assert.InDelta(t, 0.3, s.lines[0].A, 1e-12)
	})
}

func TestGridReuse(t *testing.T) {
	f := New(1000, 800, WithSeed(2))
	for i := 0; i < 10; i++ {
		f.Links(func(int, int, float64) {})
		f.Advance()
	}
	assert.Equal(t, f.grid.used, f.grid.index.Len())
}
