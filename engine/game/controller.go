// Package game owns one play session: the world, its systems, the state
// machine and the background flavor requests. Everything here runs on the
// caller's goroutine; only flavor fetches leave it.
package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/1siamBot/bughunt/engine/core"
	"github.com/1siamBot/bughunt/engine/flavor"
	"github.com/1siamBot/bughunt/engine/systems"
)

// Publisher receives a snapshot every few ticks. It must not block.
type Publisher interface {
	Publish(core.Snapshot)
}

type Options struct {
	Bounds         core.Bounds
	TickRate       float64
	Rand           core.Rand
	Provider       flavor.Provider
	Now            func() time.Time
	RequestTimeout time.Duration
	Publisher      Publisher
	PublishEvery   uint64
}

// Controller drives the game on behalf of the UI
type Controller struct {
	session  *core.Session
	loop     *core.GameLoop
	bus      *core.EventBus
	effects  *core.Effects
	spawner  *systems.Spawner
	resolver *systems.HitResolver
	flavor   *flavor.Dispatcher
	provider flavor.Provider

	publisher    Publisher
	publishEvery uint64
	lastPublish  uint64

	bossSeen bool // the boss warning replaces the level alert
}

func NewController(opts Options) *Controller {
	if opts.TickRate <= 0 {
		opts.TickRate = core.TickRate
	}
	if opts.Rand == nil {
		opts.Rand = core.NewRand(uint64(time.Now().UnixNano()))
	}
	if opts.Provider == nil {
		opts.Provider = flavor.Offline{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PublishEvery == 0 {
		opts.PublishEvery = 1
	}

	session := core.NewSession(opts.Bounds)
	loop := core.NewGameLoop(opts.TickRate, session)
	loop.Now = opts.Now
	bus := core.NewEventBus()
	effects := core.NewEffects(core.EffectTTL, opts.Now)
	spawner := &systems.Spawner{Session: session, Rand: opts.Rand, Bus: bus}

	c := &Controller{
		session:      session,
		loop:         loop,
		bus:          bus,
		effects:      effects,
		spawner:      spawner,
		resolver:     &systems.HitResolver{Session: session, Effects: effects, Rand: opts.Rand, Bus: bus},
		flavor:       flavor.NewDispatcher(opts.RequestTimeout),
		provider:     opts.Provider,
		publisher:    opts.Publisher,
		publishEvery: opts.PublishEvery,
	}

	loop.World.AddSystem(&systems.TimerSystem{Session: session, Bus: bus})
	loop.World.AddSystem(&systems.SpawnSystem{Spawner: *spawner})
	loop.World.AddSystem(&systems.MovementSystem{Session: session})

	bus.On(core.EvtBossSpawned, c.onBossSpawned)
	bus.On(core.EvtLevelComplete, c.logLevelEvent("level complete"))
	bus.On(core.EvtVictory, c.logLevelEvent("victory"))
	bus.On(core.EvtGameOver, c.logLevelEvent("game over"))
	return c
}

// Bus exposes the event bus so audio and other observers can subscribe
func (c *Controller) Bus() *core.EventBus { return c.bus }

// Session returns the live session. Treat it as read-only.
func (c *Controller) Session() *core.Session { return c.session }

// Start begins level 1. Only valid from Idle.
func (c *Controller) Start() error {
	if c.session.State != core.StateIdle {
		return fmt.Errorf("%w: start from %s", core.ErrInvalidTransition, c.session.State)
	}
	return c.begin(1)
}

// Advance moves to the next level after a boss kill
func (c *Controller) Advance() error {
	if c.session.State != core.StateLevelComplete {
		return fmt.Errorf("%w: advance from %s", core.ErrInvalidTransition, c.session.State)
	}
	return c.begin(c.session.Level + 1)
}

// Restart begins a fresh run from any terminal state
func (c *Controller) Restart() error {
	if !c.session.State.Terminal() {
		return fmt.Errorf("%w: restart from %s", core.ErrInvalidTransition, c.session.State)
	}
	return c.begin(1)
}

func (c *Controller) begin(level int) error {
	if err := c.session.Begin(level); err != nil {
		return err
	}
	c.bossSeen = false
	w := c.loop.World
	w.Clear()
	c.effects.Clear()
	c.loop.Play()
	c.spawner.SpawnWave(w)

	cfg := c.session.Config()
	log.Printf("[game] run %s level %d started: %d bugs, %ds, boss %s",
		c.session.RunID, level, cfg.BugCount, cfg.TimeLimit, cfg.BossName)

	// A reply that lands after a restart or level change still overwrites the
	// display text. It never touches the world.
	runID := c.session.RunID
	c.flavor.Go("system message", func(ctx context.Context) (string, error) {
		return c.provider.SystemMessage(ctx, level, cfg.BossName)
	}, flavor.SystemFallback(cfg.BossName), func(text string) {
		if !c.bossSeen {
			c.session.SystemMessage = text
		}
	})

	c.bus.Emit(core.Event{
		Type:    core.EvtLevelStarted,
		Tick:    w.TickCount,
		Payload: core.LevelEvent{RunID: runID, Level: level, Score: c.session.Score},
	})
	c.bus.Dispatch()
	c.publish(true)
	return nil
}

func (c *Controller) onBossSpawned(e core.Event) {
	cfg := c.session.Config()
	c.bossSeen = true
	c.session.SystemMessage = fmt.Sprintf(core.MsgBossFormat, cfg.BossName)
	log.Printf("[game] boss %s spawned at tick %d", cfg.BossName, e.Tick)

	c.flavor.Go("boss taunt", func(ctx context.Context) (string, error) {
		return c.provider.BossTaunt(ctx, cfg.BossName)
	}, flavor.TauntFallback, func(text string) {
		c.session.BossTaunt = text
	})
}

func (c *Controller) logLevelEvent(what string) core.EventHandler {
	return func(e core.Event) {
		if ev, ok := e.Payload.(core.LevelEvent); ok {
			log.Printf("[game] run %s %s at level %d, score %d", ev.RunID, what, ev.Level, ev.Score)
		}
	}
}

// Hit applies a click on an entity. Clicks on entities that are already gone
// and clicks outside Playing are ignored.
func (c *Controller) Hit(id core.EntityID, x, y float64) {
	before := c.loop.World.EntityCount()
	c.resolver.Resolve(c.loop.World, core.Hit{ID: id, X: x, Y: y})
	c.bus.Dispatch()
	if c.loop.World.EntityCount() != before {
		c.publish(true)
	}
}

// Update advances the simulation by wall-clock time. Call once per frame.
// It returns the number of ticks simulated.
func (c *Controller) Update() int {
	c.flavor.Drain()
	n := c.loop.Update()
	c.afterTicks(n)
	return n
}

// Step advances exactly one tick regardless of the clock
func (c *Controller) Step() bool {
	c.flavor.Drain()
	if !c.loop.Step() {
		return false
	}
	c.afterTicks(1)
	return true
}

func (c *Controller) afterTicks(n int) {
	c.bus.Dispatch()
	c.effects.Expire()
	if n > 0 {
		c.publish(false)
	}
}

func (c *Controller) publish(force bool) {
	if c.publisher == nil {
		return
	}
	tick := c.loop.CurrentTick()
	if !force && tick-c.lastPublish < c.publishEvery {
		return
	}
	c.lastPublish = tick
	c.publisher.Publish(c.Snapshot())
}

// Snapshot copies everything the renderer needs
func (c *Controller) Snapshot() core.Snapshot {
	return core.TakeSnapshot(c.session, c.loop.World, c.effects)
}

// Resize changes the playfield. Entities outside the new bounds are pulled
// back in on their next move.
func (c *Controller) Resize(width, height float64) {
	b := core.Bounds{Width: width, Height: height}
	if b == c.session.Bounds || width <= 0 || height <= 0 {
		return
	}
	c.session.Bounds = b
}

// Flush waits for outstanding flavor requests and applies their results
func (c *Controller) Flush() {
	c.flavor.Wait()
	c.flavor.Drain()
}

// Close abandons outstanding flavor requests
func (c *Controller) Close() {
	c.flavor.Close()
}
