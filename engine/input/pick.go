package input

import (
	"github.com/1siamBot/bughunt/engine/core"
)

// Pick returns the entity under (x, y). Entities later in the slice are drawn
// on top, so they win when bodies overlap.
func Pick(entities []core.EntityView, x, y float64) (core.EntityID, bool) {
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		r := e.Kind.BodyRadius() * max(e.Scale, core.HitScaleMin)
		body := core.Position{X: e.X, Y: e.Y}
		if body.DistanceTo(x, y) <= r {
			return e.ID, true
		}
	}
	return 0, false
}
