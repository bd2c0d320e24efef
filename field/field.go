// Package field simulates the drifting, proximity-linked particle cloud drawn
// behind the site. Particles live in a flat arena that is updated in place
// every frame; nothing outside the Field holds a reference to one.
package field

import (
	"math/rand/v2"
)

// Particle is a single simulated point.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
}

// Stats describes the current state of a field.
type Stats struct {
	Particles int
	Links     int
	Frames    uint64
	Width     float64
	Height    float64
}

// Option configures a Field at construction.
type Option func(*Field)

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) Option {
	return func(f *Field) {
		f.cfg = cfg
	}
}

// WithRand sets the random source used for seeding particles.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		f.rng = rng
	}
}

// WithSeed seeds a deterministic PCG source. A zero seed is ignored.
func WithSeed(seed uint64) Option {
	return func(f *Field) {
		if seed != 0 {
			f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// Field owns the particle arena and the bounds it is confined to.
type Field struct {
	cfg       Config
	rng       *rand.Rand
	particles []Particle
	width     float64
	height    float64

	grid      linkGrid
	lastLinks int
	frames    uint64
}

// New creates a field for a surface of the given size, seeding
// cfg.Count(width, height) particles.
func New(width, height float64, opts ...Option) *Field {
	f := &Field{
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	f.width, f.height = width, height
	f.Reseed()
	return f
}

// Config returns the tuning the field was built with.
func (f *Field) Config() Config {
	return f.cfg
}

// Resize updates the bounds and re-seeds every particle for the new area.
// Resizing to the current bounds leaves the field untouched.
func (f *Field) Resize(width, height float64) {
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height
	f.Reseed()
}

// Reseed re-randomizes the arena for the current bounds.
func (f *Field) Reseed() {
	n := f.cfg.Count(f.width, f.height)
	if cap(f.particles) < n {
		f.particles = make([]Particle, n)
	} else {
		f.particles = f.particles[:n]
	}

	for i := range f.particles {
		f.particles[i] = f.spawn()
	}
	f.lastLinks = 0
}

func (f *Field) spawn() Particle {
	return Particle{
		X:       f.rng.Float64() * f.width,
		Y:       f.rng.Float64() * f.height,
		VX:      (f.rng.Float64()*2 - 1) * f.cfg.MaxSpeed,
		VY:      (f.rng.Float64()*2 - 1) * f.cfg.MaxSpeed,
		Radius:  f.uniform(f.cfg.MinRadius, f.cfg.MaxRadius),
		Opacity: f.uniform(f.cfg.MinOpacity, f.cfg.MaxOpacity),
	}
}

func (f *Field) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Advance moves every particle one step. A particle that left the bounds
// on an axis has that velocity component negated, then its position is
// clamped back inside. The reflection therefore takes effect one frame
// after the crossing.
func (f *Field) Advance() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 || p.X > f.width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > f.height {
			p.VY = -p.VY
		}

		p.X = clamp(p.X, 0, f.width)
		p.Y = clamp(p.Y, 0, f.height)
	}
	f.frames++
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Particles returns the arena. Callers must not retain or modify it.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Bounds returns the current surface size.
func (f *Field) Bounds() (width, height float64) {
	return f.width, f.height
}

// Stats returns a snapshot of the field.
func (f *Field) Stats() Stats {
	return Stats{
		Particles: len(f.particles),
		Links:     f.lastLinks,
		Frames:    f.frames,
		Width:     f.width,
		Height:    f.height,
	}
}
