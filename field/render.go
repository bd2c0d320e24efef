package field

// Render issues the draw calls for one frame: a filled circle per particle
// at its own opacity, then one line per linked pair whose alpha fades with
// distance. Each pair is stroked once.
func (f *Field) Render(s Surface) {
	ink := f.cfg.Ink
	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.X, p.Y, p.Radius, ink.WithAlpha(p.Opacity))
	}

	links := 0
	f.Links(func(i, j int, d float64) {
		p, q := &f.particles[i], &f.particles[j]
		s.StrokeLine(p.X, p.Y, q.X, q.Y, f.cfg.LinkWidth, ink.WithAlpha(f.cfg.LinkAlphaAt(d)))
		links++
	})
	f.lastLinks = links
}
