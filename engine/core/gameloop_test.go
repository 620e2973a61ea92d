package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/bughunt/engine/core"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1700000000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func tickDuration(rate float64) time.Duration {
	return time.Duration(float64(time.Second) / rate)
}

func playingSession(t *testing.T) *core.Session {
	s := core.NewSession(core.Bounds{Width: 800, Height: 600})
	require.NoError(t, s.Begin(1))
	return s
}

func TestGameLoop_FixedTimestep(t *testing.T) {
	clk := newFakeClock()
	gl := core.NewGameLoop(core.TickRate, playingSession(t))
	gl.Now = clk.Now
	gl.Play()

	clk.Advance(tickDuration(core.TickRate) + time.Millisecond)
	assert.Equal(t, 1, gl.Update())
	assert.Equal(t, uint64(1), gl.CurrentTick())

	// A long stall is capped at a quarter second.
	clk.Advance(2 * time.Second)
	assert.Equal(t, 15, gl.Update())
}

func TestGameLoop_DoesNotTickOutsidePlaying(t *testing.T) {
	clk := newFakeClock()
	s := core.NewSession(core.Bounds{Width: 800, Height: 600})
	gl := core.NewGameLoop(core.TickRate, s)
	gl.Now = clk.Now
	gl.Play()

	clk.Advance(100 * time.Millisecond)
	assert.Zero(t, gl.Update())
	assert.False(t, gl.Step())
	assert.Zero(t, gl.CurrentTick())
}

func TestGameLoop_Step(t *testing.T) {
	gl := core.NewGameLoop(core.TickRate, playingSession(t))
	assert.True(t, gl.Step())
	assert.True(t, gl.Step())
	assert.Equal(t, uint64(2), gl.CurrentTick())
}

func TestEffects_ExpireOnWallClock(t *testing.T) {
	clk := newFakeClock()
	fx := core.NewEffects(core.EffectTTL, clk.Now)

	first := fx.Add(10, 20)
	clk.Advance(400 * time.Millisecond)
	fx.Add(30, 40)
	assert.NotEqual(t, first.ID, fx.Views()[1].ID)

	clk.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, fx.Expire())
	require.Equal(t, 1, fx.Len())
	v := fx.Views()[0]
	assert.Equal(t, 30.0, v.X)
	assert.InDelta(t, 1.0/3.0, v.Progress, 1e-9)

	clk.Advance(time.Second)
	assert.Equal(t, 1, fx.Expire())
	assert.Zero(t, fx.Len())
}

func TestEventBus_DispatchesQueuedAndChainedEvents(t *testing.T) {
	bus := core.NewEventBus()
	var got []core.EventType
	bus.On(core.EvtEntityKilled, func(e core.Event) {
		got = append(got, e.Type)
		bus.Emit(core.Event{Type: core.EvtLevelComplete})
	})
	bus.On(core.EvtLevelComplete, func(e core.Event) { got = append(got, e.Type) })

	bus.Emit(core.Event{Type: core.EvtEntityKilled})
	assert.Empty(t, got, "nothing runs before Dispatch")
	bus.Dispatch()

	assert.Equal(t, []core.EventType{core.EvtEntityKilled, core.EvtLevelComplete}, got)
	bus.Dispatch()
	assert.Len(t, got, 2, "the queue is empty after Dispatch")

	var nilBus *core.EventBus
	assert.NotPanics(t, func() { nilBus.Emit(core.Event{}) })
}

func TestTakeSnapshot_CopiesState(t *testing.T) {
	s := playingSession(t)
	w := core.NewWorld(core.TickRate)
	id := w.Spawn()
	w.Attach(id, &core.Creature{Kind: core.KindBoss})
	w.Attach(id, &core.Position{X: 5, Y: 6})
	w.Attach(id, &core.Health{Current: 3, Max: 15})
	w.Attach(id, &core.Sprite{Scale: 1})

	snap := core.TakeSnapshot(s, w, nil)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "Trojan.Win32", snap.BossName)
	boss, ok := snap.Boss()
	require.True(t, ok)
	assert.Equal(t, 3, boss.Health)
	assert.Equal(t, 1, snap.Count(core.KindBoss))

	// Mutating the snapshot must not reach the world.
	snap.Entities[0].X = 999
	pos := w.Get(id, core.CompPosition).(*core.Position)
	assert.Equal(t, 5.0, pos.X)
}
