package backdrop

import (
	"github.com/spicorn/Danler/field"
	"github.com/spicorn/Danler/frame"
)

// ClockSystem accumulates animation time for the shapes.
type ClockSystem struct {
	Elapsed float64
}

func (c *ClockSystem) Execute(u *frame.Update) {
	c.Elapsed += u.DeltaTime
}

// AdvanceSystem moves the field one step per frame, independent of the
// frame's delta time.
type AdvanceSystem struct {
	Field *field.Field
}

func (a *AdvanceSystem) Execute(u *frame.Update) {
	if a.Field != nil {
		a.Field.Advance()
	}
}
