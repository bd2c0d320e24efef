package field

import "math"

// Config holds the tuning constants of a particle field.
type Config struct {
	MaxParticles    int
	AreaPerParticle float64
	LinkDistance    float64
	MaxSpeed        float64
	MinRadius       float64
	MaxRadius       float64
	MinOpacity      float64
	MaxOpacity      float64
	LinkAlpha       float64
	LinkWidth       float64
	Ink             Ink
}

// DefaultInk is the indigo used for particles and links.
var DefaultInk = Ink{R: 99, G: 102, B: 241, A: 1}

// DefaultConfig returns the stock background tuning.
func DefaultConfig() Config {
	return Config{
		MaxParticles:    50,
		AreaPerParticle: 20000,
		LinkDistance:    150,
		MaxSpeed:        0.25,
		MinRadius:       1,
		MaxRadius:       3,
		MinOpacity:      0.2,
		MaxOpacity:      0.7,
		LinkAlpha:       0.3,
		LinkWidth:       1,
		Ink:             DefaultInk,
	}
}

// Count returns the number of particles a surface of the given size holds:
// min(MaxParticles, floor(width*height/AreaPerParticle)). Degenerate
// surfaces hold none.
func (c Config) Count(width, height float64) int {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return 0
	}
	if c.AreaPerParticle <= 0 || c.MaxParticles <= 0 {
		return 0
	}

	n := math.Floor(width * height / c.AreaPerParticle)
	if n >= float64(c.MaxParticles) {
		return c.MaxParticles
	}
	return int(n)
}
