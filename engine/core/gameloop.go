package core

import "time"

// GameLoop manages the fixed-timestep simulation clock
type GameLoop struct {
	World       *World
	Session     *Session
	TickRate    float64 // fixed ticks per second
	Now         func() time.Time
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, s *Session) *GameLoop {
	return &GameLoop{
		World:    NewWorld(tickRate),
		Session:  s,
		TickRate: tickRate,
		Now:      time.Now,
		lastTime: time.Now(),
	}
}

// Update should be called every render frame. It runs the simulation at a
// fixed timestep while the session is playing and returns the number of
// ticks it ran.
func (gl *GameLoop) Update() int {
	now := gl.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	ticks := 0
	for gl.accumulator >= dt {
		gl.accumulator -= dt
		if gl.Session.Playing() {
			gl.World.Tick(dt)
			ticks++
		}
	}
	return ticks
}

// Step runs exactly one tick if the session is playing
func (gl *GameLoop) Step() bool {
	if !gl.Session.Playing() {
		return false
	}
	gl.World.Tick(1.0 / gl.TickRate)
	return true
}

// Play resets the clock so time spent outside Playing is not replayed
func (gl *GameLoop) Play() {
	gl.lastTime = gl.Now()
	gl.accumulator = 0
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
