package core

// EntityView is a read-only copy of one entity
type EntityView struct {
	ID        EntityID `json:"id" msgpack:"id"`
	Kind      Kind     `json:"kind" msgpack:"kind"`
	X         float64  `json:"x" msgpack:"x"`
	Y         float64  `json:"y" msgpack:"y"`
	VX        float64  `json:"vx" msgpack:"vx"`
	VY        float64  `json:"vy" msgpack:"vy"`
	Health    int      `json:"hp" msgpack:"hp"`
	MaxHealth int      `json:"max_hp" msgpack:"max_hp"`
	Rotation  float64  `json:"rot" msgpack:"rot"`
	Scale     float64  `json:"scale" msgpack:"scale"`
}

// EffectView is a read-only copy of one transient effect
type EffectView struct {
	ID       string  `json:"id" msgpack:"id"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Progress float64 `json:"p" msgpack:"p"`
}

// Snapshot is what the presentation layer reads after each tick or interaction.
type Snapshot struct {
	Tick          uint64       `json:"tick" msgpack:"tick"`
	RunID         string       `json:"run_id" msgpack:"run_id"`
	Level         int          `json:"level" msgpack:"level"`
	Score         int          `json:"score" msgpack:"score"`
	TimeLeft      int          `json:"time_left" msgpack:"time_left"`
	State         GameState    `json:"state" msgpack:"state"`
	BossName      string       `json:"boss" msgpack:"boss"`
	SystemMessage string       `json:"msg" msgpack:"msg"`
	BossTaunt     string       `json:"taunt" msgpack:"taunt"`
	Width         float64      `json:"w" msgpack:"w"`
	Height        float64      `json:"h" msgpack:"h"`
	Entities      []EntityView `json:"entities" msgpack:"entities"`
	Effects       []EffectView `json:"effects" msgpack:"effects"`
}

// Boss returns the boss view if one is alive
func (s Snapshot) Boss() (EntityView, bool) {
	for _, e := range s.Entities {
		if e.Kind == KindBoss {
			return e, true
		}
	}
	return EntityView{}, false
}

// Count returns how many entities of kind k are alive
func (s Snapshot) Count(k Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// View copies one entity out of the world
func (w *World) View(id EntityID) (EntityView, bool) {
	if !w.Exists(id) {
		return EntityView{}, false
	}
	v := EntityView{ID: id}
	if c, ok := w.Get(id, CompCreature).(*Creature); ok {
		v.Kind = c.Kind
	}
	if p, ok := w.Get(id, CompPosition).(*Position); ok {
		v.X, v.Y = p.X, p.Y
	}
	if vel, ok := w.Get(id, CompVelocity).(*Velocity); ok {
		v.VX, v.VY = vel.VX, vel.VY
	}
	if h, ok := w.Get(id, CompHealth).(*Health); ok {
		v.Health, v.MaxHealth = h.Current, h.Max
	}
	if s, ok := w.Get(id, CompSprite).(*Sprite); ok {
		v.Rotation, v.Scale = s.Rotation, s.Scale
	}
	return v, true
}

// Views copies every creature in ascending ID order
func (w *World) Views() []EntityView {
	ids := w.Query(CompCreature)
	out := make([]EntityView, 0, len(ids))
	for _, id := range ids {
		if v, ok := w.View(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// TakeSnapshot assembles the read model from the session, world and effects
func TakeSnapshot(s *Session, w *World, fx *Effects) Snapshot {
	snap := Snapshot{
		Tick:          w.TickCount,
		RunID:         s.RunID,
		Level:         s.Level,
		Score:         s.Score,
		TimeLeft:      s.TimeLeft,
		State:         s.State,
		SystemMessage: s.SystemMessage,
		BossTaunt:     s.BossTaunt,
		Width:         s.Bounds.Width,
		Height:        s.Bounds.Height,
		Entities:      w.Views(),
	}
	if s.Level > 0 {
		snap.BossName = s.Config().BossName
	}
	if fx != nil {
		snap.Effects = fx.Views()
	}
	return snap
}
