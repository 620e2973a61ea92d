package systems

import (
	"math"

	"github.com/1siamBot/bughunt/engine/core"
)

// MovementSystem integrates velocity and reflects entities off the
// playfield interior walls
type MovementSystem struct {
	Session *core.Session
}

func (s *MovementSystem) Priority() int { return 20 }

func (s *MovementSystem) Update(w *core.World, _ float64) {
	if !s.Session.Playing() {
		return
	}
	b := s.Session.Bounds
	wiggle := math.Sin(float64(w.TickCount)*core.WiggleRate) * core.WiggleDegrees

	for _, id := range w.Query(core.CompPosition, core.CompVelocity) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		vel := w.Get(id, core.CompVelocity).(*core.Velocity)

		pos.X += vel.VX
		pos.Y += vel.VY

		if spr, ok := w.Get(id, core.CompSprite).(*core.Sprite); ok {
			spr.Rotation = wiggle
		}

		pos.X, vel.VX = reflect(pos.X, vel.VX, b.MinX(), b.MaxX())
		pos.Y, vel.VY = reflect(pos.Y, vel.VY, b.MinY(), b.MaxY())
	}
}

// reflect bounces one axis: touching or crossing a bound flips the velocity
// and clamps the coordinate back onto the bound.
func reflect(p, v, lo, hi float64) (float64, float64) {
	if p <= lo || p >= hi {
		return math.Max(lo, math.Min(p, hi)), -v
	}
	return p, v
}
