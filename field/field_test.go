package field_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spicorn/Danler/field"
	"github.com/spicorn/Danler/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	cfg := field.DefaultConfig()

	tests := []struct {
		width, height float64
		want          int
	}{
		{1000, 800, 40},
		{1920, 1080, 50},
		{4000, 4000, 50},
		{200, 100, 1},
		{100, 100, 0},
		{0, 800, 0},
		{800, 0, 0},
		{-100, 800, 0},
		{-100, -800, 0},
		{math.NaN(), 800, 0},
		{math.Inf(1), 800, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%vx%v", tt.width, tt.height), func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Count(tt.width, tt.height))
		})
	}
}

func TestNewSeedsWithinBounds(t *testing.T) {
	sizes := [][2]float64{{1000, 800}, {1920, 1080}, {300, 70}, {5000, 5}}

	for _, size := range sizes {
		w, h := size[0], size[1]
		f := field.New(w, h, field.WithSeed(7))

		require.Equal(t, field.DefaultConfig().Count(w, h), f.Len())
		for _, p := range f.Particles() {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.LessOrEqual(t, p.X, w)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.LessOrEqual(t, p.Y, h)

			assert.LessOrEqual(t, math.Abs(p.VX), 0.25)
			assert.LessOrEqual(t, math.Abs(p.VY), 0.25)
			assert.GreaterOrEqual(t, p.Radius, 1.0)
			assert.LessOrEqual(t, p.Radius, 3.0)
			assert.GreaterOrEqual(t, p.Opacity, 0.2)
			assert.LessOrEqual(t, p.Opacity, 0.7)
		}
	}
}

func TestConcreteCount(t *testing.T) {
	f := field.New(1000, 800)
	assert.Equal(t, 40, f.Len())
}

func TestZeroSurface(t *testing.T) {
	f := field.New(0, 0)
	assert.Equal(t, 0, f.Len())

	rec := &surface.Recorder{}
	assert.NotPanics(t, func() {
		f.Advance()
		f.Render(rec)
	})
	assert.Empty(t, rec.Circles)
	assert.Empty(t, rec.Lines)

	neg := field.New(-20, 500)
	assert.Equal(t, 0, neg.Len())
}

func TestAdvanceKeepsParticlesInBounds(t *testing.T) {
	const w, h = 640.0, 480.0
	f := field.New(w, h, field.WithSeed(42))
	require.Equal(t, 15, f.Len())

	for step := 0; step < 20000; step++ {
		f.Advance()
		for i, p := range f.Particles() {
			if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
				t.Fatalf("step %d: particle %d escaped to (%v, %v)", step, i, p.X, p.Y)
			}
		}
	}
	assert.Equal(t, uint64(20000), f.Stats().Frames)
}

func TestAdvanceReflectsVelocity(t *testing.T) {
	// A tiny surface makes boundary crossings frequent.
	const w, h = 150.0, 140.0
	cfg := field.DefaultConfig()
	cfg.AreaPerParticle = 100
	cfg.MaxSpeed = 3
	f := field.New(w, h, field.WithSeed(3), field.WithConfig(cfg))
	require.Equal(t, 50, f.Len())

	reflections := 0
	for step := 0; step < 2000; step++ {
		before := append([]field.Particle(nil), f.Particles()...)
		f.Advance()
		after := f.Particles()

		for i, p := range before {
			nx, ny := p.X+p.VX, p.Y+p.VY
			if nx < 0 || nx > w {
				assert.Equal(t, -p.VX, after[i].VX, "step %d particle %d x", step, i)
				reflections++
			} else {
				assert.Equal(t, p.VX, after[i].VX)
			}
			if ny < 0 || ny > h {
				assert.Equal(t, -p.VY, after[i].VY, "step %d particle %d y", step, i)
				reflections++
			} else {
				assert.Equal(t, p.VY, after[i].VY)
			}
		}
	}
	assert.Greater(t, reflections, 0)
}

func TestResize(t *testing.T) {
	f := field.New(1000, 800, field.WithSeed(11))
	require.Equal(t, 40, f.Len())

	t.Run("same bounds is a no-op", func(t *testing.T) {
		before := append([]field.Particle(nil), f.Particles()...)
		for i := 0; i < 5; i++ {
			f.Resize(1000, 800)
		}
		assert.Equal(t, 40, f.Len())
		assert.Empty(t, cmp.Diff(before, f.Particles()))
	})

	t.Run("new bounds re-seed", func(t *testing.T) {
		f.Resize(500, 400)
		assert.Equal(t, 10, f.Len())
		w, h := f.Bounds()
		assert.Equal(t, 500.0, w)
		assert.Equal(t, 400.0, h)
		for _, p := range f.Particles() {
			assert.LessOrEqual(t, p.X, 500.0)
			assert.LessOrEqual(t, p.Y, 400.0)
		}

		f.Resize(2560, 1440)
		assert.Equal(t, 50, f.Len())
	})

	t.Run("collapse to zero", func(t *testing.T) {
		f.Resize(0, 400)
		assert.Equal(t, 0, f.Len())
		assert.NotPanics(t, f.Advance)
	})
}

type pair struct {
	I, J int
	D    float64
}

func bruteForceLinks(particles []field.Particle, limit float64) []pair {
	var out []pair
	for i := range particles {
		for j := i + 1; j < len(particles); j++ {
			dx := particles[i].X - particles[j].X
			dy := particles[i].Y - particles[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < limit {
				out = append(out, pair{I: i, J: j, D: d})
			}
		}
	}
	return out
}

func TestLinksMatchBruteForce(t *testing.T) {
	cfg := field.DefaultConfig()
	cfg.MaxParticles = 3000
	cfg.AreaPerParticle = 500

	f := field.New(1600, 900, field.WithSeed(99), field.WithConfig(cfg))
	require.Equal(t, 2880, f.Len())

	sortPairs := cmpopts.SortSlices(func(a, b pair) bool {
		if a.I != b.I {
			return a.I < b.I
		}
		return a.J < b.J
	})

	for step := 0; step < 3; step++ {
		var got []pair
		f.Links(func(i, j int, d float64) {
			got = append(got, pair{I: i, J: j, D: d})
		})
		want := bruteForceLinks(f.Particles(), cfg.LinkDistance)

		require.NotEmpty(t, want)
		assert.Empty(t, cmp.Diff(want, got, sortPairs))

		for k := 1; k < len(got); k++ {
			assert.LessOrEqual(t, got[k-1].I, got[k].I)
		}
		f.Advance()
	}
}

func TestRenderDrawsParticlesAndLinks(t *testing.T) {
	f := field.New(1280, 720, field.WithSeed(5))
	require.Equal(t, 46, f.Len())

	rec := &surface.Recorder{}
	f.Render(rec)

	require.Len(t, rec.Circles, f.Len())
	for i, p := range f.Particles() {
		c := rec.Circles[i]
		assert.Equal(t, p.X, c.X)
		assert.Equal(t, p.Y, c.Y)
		assert.Equal(t, p.Radius, c.Radius)
		assert.Equal(t, p.Opacity, c.Ink.A)
		assert.Equal(t, field.DefaultInk.R, c.Ink.R)
	}

	links := bruteForceLinks(f.Particles(), 150)
	require.Len(t, rec.Lines, len(links))
	assert.Equal(t, len(links), f.Stats().Links)

	got := make([]surface.Line, len(rec.Lines))
	copy(got, rec.Lines)
	want := make([]surface.Line, 0, len(links))
	ps := f.Particles()
	for _, l := range links {
		want = append(want, surface.Line{
			X0: ps[l.I].X, Y0: ps[l.I].Y,
			X1: ps[l.J].X, Y1: ps[l.J].Y,
			Width: 1,
			Ink:   field.DefaultInk.WithAlpha((1 - l.D/150) * 0.3),
		})
	}

	sortLines := cmpopts.SortSlices(func(a, b surface.Line) bool {
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		if a.X1 != b.X1 {
			return a.X1 < b.X1
		}
		return a.Y1 < b.Y1
	})
	assert.Empty(t, cmp.Diff(want, got, sortLines, cmpopts.EquateApprox(0, 1e-12)))

	for _, l := range rec.Lines {
		assert.Greater(t, l.Ink.A, 0.0)
		assert.LessOrEqual(t, l.Ink.A, 0.3)
	}
}

func TestLinkAlphaAt(t *testing.T) {
	cfg := field.DefaultConfig()

	assert.InDelta(t, 0.3, cfg.LinkAlphaAt(0), 1e-12)
	assert.InDelta(t, 0.1, cfg.LinkAlphaAt(100), 1e-12)
	assert.InDelta(t, 0.15, cfg.LinkAlphaAt(75), 1e-12)
	assert.Equal(t, 0.0, cfg.LinkAlphaAt(150))
	assert.Equal(t, 0.0, cfg.LinkAlphaAt(151))
}

func TestInkNRGBA(t *testing.T) {
	c := field.DefaultInk.WithAlpha(0.5).NRGBA()
	assert.Equal(t, uint8(99), c.R)
	assert.Equal(t, uint8(102), c.G)
	assert.Equal(t, uint8(241), c.B)
	assert.Equal(t, uint8(128), c.A)

	assert.Equal(t, uint8(0), field.DefaultInk.WithAlpha(-1).NRGBA().A)
	assert.Equal(t, uint8(255), field.DefaultInk.WithAlpha(3).NRGBA().A)
}
