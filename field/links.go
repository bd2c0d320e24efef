package field

import (
	"math"

	"github.com/kamstrup/intmap"
)

// linkGrid buckets particle indices into square cells one link distance
// wide, so every linked pair sits in the same or an adjacent cell.
type linkGrid struct {
	cell    float64
	index   *intmap.Map[uint64, int32]
	keys    []uint64
	buckets [][]int32
	used    int
}

func cellKey(cx, cy int) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

func (g *linkGrid) reset() {
	if g.index == nil {
		g.index = intmap.New[uint64, int32](64)
	}
	for b := 0; b < g.used; b++ {
		g.index.Del(g.keys[b])
		g.buckets[b] = g.buckets[b][:0]
	}
	g.used = 0
}

func (g *linkGrid) build(particles []Particle, cell float64) {
	g.reset()
	g.cell = cell

	for i := range particles {
		cx, cy := g.cellOf(&particles[i])
		key := cellKey(cx, cy)

		b, ok := g.index.Get(key)
		if !ok {
			b = int32(g.used)
			if g.used == len(g.buckets) {
				g.buckets = append(g.buckets, make([]int32, 0, 4))
				g.keys = append(g.keys, 0)
			}
			g.keys[b] = key
			g.index.Put(key, b)
			g.used++
		}
		g.buckets[b] = append(g.buckets[b], int32(i))
	}
}

func (g *linkGrid) cellOf(p *Particle) (int, int) {
	return int(p.X / g.cell), int(p.Y / g.cell)
}

func (g *linkGrid) bucket(cx, cy int) []int32 {
	if cx < 0 || cy < 0 {
		return nil
	}
	b, ok := g.index.Get(cellKey(cx, cy))
	if !ok {
		return nil
	}
	return g.buckets[b]
}

// Links calls fn once for every unordered pair i < j whose distance is
// strictly less than the link distance. Pairs are visited in ascending
// order of i; the order of j within one i is stable between calls on an
// unchanged field.
func (f *Field) Links(fn func(i, j int, distance float64)) {
	limit := f.cfg.LinkDistance
	if limit <= 0 || len(f.particles) < 2 {
		return
	}

	f.grid.build(f.particles, limit)

	for i := range f.particles {
		p := &f.particles[i]
		cx, cy := f.grid.cellOf(p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range f.grid.bucket(cx+dx, cy+dy) {
					if int(j) <= i {
						continue
					}
					q := &f.particles[j]
					d := distance(p, q)
					if d < limit {
						fn(i, int(j), d)
					}
				}
			}
		}
	}
}

func distance(p, q *Particle) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// LinkAlphaAt returns the stroke alpha of a link of length d:
// (1 - d/LinkDistance) * LinkAlpha, or zero when d is out of range.
func (c Config) LinkAlphaAt(d float64) float64 {
	if c.LinkDistance <= 0 || d >= c.LinkDistance {
		return 0
	}
	return (1 - d/c.LinkDistance) * c.LinkAlpha
}
