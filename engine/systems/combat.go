package systems

import (
	"github.com/1siamBot/bughunt/engine/core"
)

// HitResolver applies player clicks to entities
type HitResolver struct {
	Session *core.Session
	Effects *core.Effects
	Rand    core.Rand
	Bus     *core.EventBus
}

// Resolve processes one interaction. It does nothing outside Playing or when
// the entity is already gone.
func (r *HitResolver) Resolve(w *core.World, hit core.Hit) {
	if !r.Session.Playing() || !w.Exists(hit.ID) {
		return
	}
	cr, ok := w.Get(hit.ID, core.CompCreature).(*core.Creature)
	if !ok {
		return
	}
	if cr.Kind == core.KindPowerUp {
		w.Remove(hit.ID)
		r.spray(w, hit.ID)
		return
	}
	if !w.Has(hit.ID, core.CompHealth) {
		return
	}
	r.damage(w, hit, cr.Kind)
}

// damage takes one hit point off a creature or the boss
func (r *HitResolver) damage(w *core.World, hit core.Hit, kind core.Kind) {
	h := w.Get(hit.ID, core.CompHealth).(*core.Health)
	h.Current--
	if spr, ok := w.Get(hit.ID, core.CompSprite).(*core.Sprite); ok {
		spr.Bump(core.HitScaleFactor, core.HitScaleMin, core.HitScaleMax)
	}
	r.Effects.Add(hit.X, hit.Y)

	if !h.Dead() {
		if vel, ok := w.Get(hit.ID, core.CompVelocity).(*core.Velocity); ok {
			vel.Startle(core.StartleFactor, core.MaxSpeed)
		}
		r.Bus.Emit(core.Event{
			Type:    core.EvtEntityHit,
			Tick:    w.TickCount,
			Payload: core.EntityEvent{ID: hit.ID, Kind: kind, X: hit.X, Y: hit.Y},
		})
		return
	}

	h.Current = 0
	w.Remove(hit.ID)
	points := core.BugScore
	if kind == core.KindBoss {
		points = core.BossScore
	}
	r.Session.Score += points
	r.Bus.Emit(core.Event{
		Type:    core.EvtEntityKilled,
		Tick:    w.TickCount,
		Payload: core.EntityEvent{ID: hit.ID, Kind: kind, X: hit.X, Y: hit.Y, Score: points},
	})

	if kind != core.KindBoss {
		return
	}
	if err := r.Session.CompleteLevel(); err != nil {
		return
	}
	evt := core.EvtLevelComplete
	if r.Session.State == core.StateVictory {
		evt = core.EvtVictory
	}
	r.Bus.Emit(core.Event{
		Type: evt,
		Tick: w.TickCount,
		Payload: core.LevelEvent{
			RunID: r.Session.RunID,
			Level: r.Session.Level,
			Score: r.Session.Score,
		},
	})
}

// spray clears up to SprayKills ordinary creatures picked at random
func (r *HitResolver) spray(w *core.World, item core.EntityID) {
	var targets []core.EntityID
	for _, id := range w.Query(core.CompCreature) {
		if w.Get(id, core.CompCreature).(*core.Creature).Kind.IsBug() {
			targets = append(targets, id)
		}
	}

	removed := make([]core.EntityID, 0, core.SprayKills)
	for i := 0; i < core.SprayKills && len(targets) > 0; i++ {
		idx := r.Rand.IntN(len(targets))
		id := targets[idx]
		targets = append(targets[:idx], targets[idx+1:]...)

		pos := w.Get(id, core.CompPosition).(*core.Position)
		r.Effects.Add(pos.X, pos.Y)
		w.Remove(id)
		r.Session.Score += core.BugScore
		removed = append(removed, id)
	}

	r.Bus.Emit(core.Event{
		Type: core.EvtPowerUpUsed,
		Tick: w.TickCount,
		Payload: core.PowerUpEvent{
			ID:      item,
			Removed: removed,
			Score:   len(removed) * core.BugScore,
		},
	})
}
