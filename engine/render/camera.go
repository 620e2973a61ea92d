package render

import (
	"math"

	"github.com/1siamBot/bughunt/engine/core"
)

// Camera offsets the playfield for screen shake. Picking ignores the offset;
// it never exceeds a few pixels.
type Camera struct {
	Intensity float64 // peak offset in pixels for the current shake
	Duration  float64 // seconds
	remaining float64
	t         float64
}

func NewCamera() *Camera {
	return &Camera{}
}

// Shake starts a shake unless a stronger one is already running
func (c *Camera) Shake(intensity, seconds float64) {
	if c.remaining > 0 && c.Intensity*c.remaining/c.Duration >= intensity {
		return
	}
	c.Intensity = intensity
	c.Duration = seconds
	c.remaining = seconds
}

// Update advances the shake by dt seconds
func (c *Camera) Update(dt float64) {
	c.t += dt
	c.remaining = math.Max(0, c.remaining-dt)
}

// Shaking is true while an offset is applied
func (c *Camera) Shaking() bool { return c.remaining > 0 }

// Offset returns the current displacement. It decays linearly to zero.
func (c *Camera) Offset() (float64, float64) {
	if c.remaining <= 0 || c.Duration <= 0 {
		return 0, 0
	}
	amp := c.Intensity * c.remaining / c.Duration
	return amp * math.Sin(c.t*53), amp * math.Cos(c.t*41)
}

// Listen shakes the view on boss hits and when a level ends badly
func (c *Camera) Listen(bus *core.EventBus) {
	bus.On(core.EvtEntityHit, func(e core.Event) {
		if ev, ok := e.Payload.(core.EntityEvent); ok && ev.Kind == core.KindBoss {
			c.Shake(3, 0.15)
		}
	})
	bus.On(core.EvtEntityKilled, func(e core.Event) {
		if ev, ok := e.Payload.(core.EntityEvent); ok && ev.Kind == core.KindBoss {
			c.Shake(8, 0.5)
		}
	})
	bus.On(core.EvtPowerUpUsed, func(core.Event) { c.Shake(5, 0.3) })
	bus.On(core.EvtGameOver, func(core.Event) { c.Shake(10, 0.6) })
}
