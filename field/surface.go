package field

import "image/color"

// Ink is an RGB color with a fractional alpha in [0, 1].
type Ink struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns a copy of the ink carrying alpha a.
func (i Ink) WithAlpha(a float64) Ink {
	i.A = a
	return i
}

// NRGBA converts the ink to a non-premultiplied color, rounding the alpha.
func (i Ink) NRGBA() color.NRGBA {
	a := i.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: i.R, G: i.G, B: i.B, A: uint8(a*255 + 0.5)}
}

// Surface receives the draw calls of a rendered frame.
type Surface interface {
	FillCircle(x, y, radius float64, ink Ink)
	StrokeLine(x0, y0, x1, y1, width float64, ink Ink)
}
