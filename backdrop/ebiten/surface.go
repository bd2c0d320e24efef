// Package ebiten hosts the backdrop in a desktop window using the Ebiten
// game engine.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spicorn/Danler/field"
)

// Surface draws onto an ebiten image.
type Surface struct {
	Target    *ebiten.Image
	Antialias bool
}

func (s *Surface) FillCircle(x, y, radius float64, ink field.Ink) {
	vector.DrawFilledCircle(s.Target, float32(x), float32(y), float32(radius), ink.NRGBA(), s.Antialias)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, ink field.Ink) {
	vector.StrokeLine(s.Target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), ink.NRGBA(), s.Antialias)
}
