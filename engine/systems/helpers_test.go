package systems_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1siamBot/bughunt/engine/core"
)

// scriptRand replays fixed values; once exhausted it returns 0.5 and 0.
type scriptRand struct {
	floats []float64
	ints   []int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

type fixture struct {
	session *core.Session
	world   *core.World
	bus     *core.EventBus
	effects *core.Effects
	rand    *scriptRand
	events  []core.Event
}

func newFixture(t *testing.T, level int) *fixture {
	t.Helper()
	f := &fixture{
		session: core.NewSession(core.Bounds{Width: 800, Height: 600}),
		world:   core.NewWorld(core.TickRate),
		bus:     core.NewEventBus(),
		effects: core.NewEffects(core.EffectTTL, func() time.Time { return time.Unix(0, 0) }),
		rand:    &scriptRand{},
	}
	require.NoError(t, f.session.Begin(level))
	for _, et := range []core.EventType{
		core.EvtEntitySpawned, core.EvtEntityHit, core.EvtEntityKilled, core.EvtBossSpawned,
		core.EvtPowerUpUsed, core.EvtLevelComplete, core.EvtGameOver, core.EvtVictory,
	} {
		f.bus.On(et, func(e core.Event) { f.events = append(f.events, e) })
	}
	return f
}

func (f *fixture) add(kind core.Kind, x, y, vx, vy float64, hp int) core.EntityID {
	id := f.world.Spawn()
	f.world.Attach(id, &core.Creature{Kind: kind})
	f.world.Attach(id, &core.Position{X: x, Y: y})
	f.world.Attach(id, &core.Velocity{VX: vx, VY: vy})
	f.world.Attach(id, &core.Health{Current: hp, Max: hp})
	f.world.Attach(id, &core.Sprite{Scale: 1})
	return id
}

func (f *fixture) addBugs(n int) []core.EntityID {
	ids := make([]core.EntityID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, f.add(core.KindWeak, 100+float64(i)*10, 200, 1, 1, 1))
	}
	return ids
}

func (f *fixture) dispatched() []core.EventType {
	f.bus.Dispatch()
	out := make([]core.EventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func (f *fixture) position(id core.EntityID) *core.Position {
	return f.world.Get(id, core.CompPosition).(*core.Position)
}

func (f *fixture) velocity(id core.EntityID) *core.Velocity {
	return f.world.Get(id, core.CompVelocity).(*core.Velocity)
}
