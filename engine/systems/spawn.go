package systems

import (
	"github.com/1siamBot/bughunt/engine/core"
)

// Spawner creates entities at random positions for the current level
type Spawner struct {
	Session *core.Session
	Rand    core.Rand
	Bus     *core.EventBus
}

// Spawn creates one entity of the given kind and returns its ID
func (sp *Spawner) Spawn(w *core.World, kind core.Kind) core.EntityID {
	cfg := sp.Session.Config()
	b := sp.Session.Bounds
	speed := cfg.BugSpeed * kind.SpeedMultiplier()

	x := sp.Rand.Float64()*(b.Width-core.SpawnPadding*2) + core.SpawnPadding
	y := sp.Rand.Float64()*(b.Height-core.SpawnReserve) + core.SpawnTop
	vx := (sp.Rand.Float64() - 0.5) * speed
	vy := (sp.Rand.Float64() - 0.5) * speed

	hp := 1
	scale := 1.0
	switch kind {
	case core.KindBoss:
		hp = cfg.BossHP
	case core.KindPowerUp:
	default:
		scale = 0.8 + sp.Rand.Float64()*0.4
	}

	id := w.Spawn()
	w.Attach(id, &core.Creature{Kind: kind})
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Velocity{VX: vx, VY: vy})
	w.Attach(id, &core.Health{Current: hp, Max: hp})
	w.Attach(id, &core.Sprite{Scale: scale})

	sp.Bus.Emit(core.Event{
		Type:    core.EvtEntitySpawned,
		Tick:    w.TickCount,
		Payload: core.EntityEvent{ID: id, Kind: kind, X: x, Y: y},
	})
	return id
}

// SpawnWave creates the opening wave of a level. It is always made of weak
// creatures, whatever the level.
func (sp *Spawner) SpawnWave(w *core.World) []core.EntityID {
	n := sp.Session.Config().BugCount
	ids := make([]core.EntityID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, sp.Spawn(w, core.KindWeak))
	}
	return ids
}

// Census counts what is alive in the world
type Census struct {
	Bugs    int
	Items   int
	HasBoss bool
}

// TakeCensus walks every creature once
func TakeCensus(w *core.World) Census {
	var c Census
	for _, id := range w.Query(core.CompCreature) {
		switch w.Get(id, core.CompCreature).(*core.Creature).Kind {
		case core.KindBoss:
			c.HasBoss = true
		case core.KindPowerUp:
			c.Items++
		default:
			c.Bugs++
		}
	}
	return c
}

// SpawnSystem brings in the boss, tops up creatures and drops items
type SpawnSystem struct {
	Spawner
}

func (s *SpawnSystem) Priority() int { return 10 }

func (s *SpawnSystem) Update(w *core.World, _ float64) {
	if !s.Session.Playing() {
		return
	}
	c := TakeCensus(w)
	onSecond := w.TickCount%w.FramesPerSecond() == 0

	switch {
	case c.Bugs == 0 && !c.HasBoss:
		id := s.Spawn(w, core.KindBoss)
		s.Bus.Emit(core.Event{
			Type:    core.EvtBossSpawned,
			Tick:    w.TickCount,
			Payload: core.EntityEvent{ID: id, Kind: core.KindBoss},
		})
	case c.Bugs < core.ReplenishBelow && !c.HasBoss && onSecond:
		s.Spawn(w, s.Session.Config().ReplenishKind())
	}

	if c.Bugs > core.ItemDropAbove && c.Items < core.MaxItems && s.Rand.Float64() < core.ItemDropChance {
		s.Spawn(w, core.KindPowerUp)
	}
}
