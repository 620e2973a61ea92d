package core

import (
	"time"

	"github.com/google/uuid"
)

// Effect is a short-lived explosion marker. It has no gameplay effect.
type Effect struct {
	ID   string
	X, Y float64
	Born time.Time
}

// Effects keeps transient effects and expires them on the wall clock,
// independent of whether the simulation is ticking.
type Effects struct {
	TTL  time.Duration
	Now  func() time.Time
	list []Effect
}

func NewEffects(ttl time.Duration, now func() time.Time) *Effects {
	if now == nil {
		now = time.Now
	}
	return &Effects{TTL: ttl, Now: now}
}

// Add records a new effect at (x, y)
func (e *Effects) Add(x, y float64) Effect {
	fx := Effect{ID: uuid.NewString(), X: x, Y: y, Born: e.Now()}
	e.list = append(e.list, fx)
	return fx
}

// Expire drops every effect older than TTL and returns how many went away
func (e *Effects) Expire() int {
	now := e.Now()
	kept := e.list[:0]
	for _, fx := range e.list {
		if now.Sub(fx.Born) < e.TTL {
			kept = append(kept, fx)
		}
	}
	n := len(e.list) - len(kept)
	clear(e.list[len(kept):])
	e.list = kept
	return n
}

func (e *Effects) Clear() {
	clear(e.list)
	e.list = e.list[:0]
}

func (e *Effects) Len() int { return len(e.list) }

// Views returns copies with their age as a 0..1 progress value
func (e *Effects) Views() []EffectView {
	now := e.Now()
	out := make([]EffectView, 0, len(e.list))
	for _, fx := range e.list {
		p := 1.0
		if e.TTL > 0 {
			p = float64(now.Sub(fx.Born)) / float64(e.TTL)
		}
		out = append(out, EffectView{ID: fx.ID, X: fx.X, Y: fx.Y, Progress: min(max(p, 0), 1)})
	}
	return out
}
