package systems_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/bughunt/engine/core"
	"github.com/1siamBot/bughunt/engine/systems"
)

func TestMovement_IntegratesVelocityInsideInterior(t *testing.T) {
	f := newFixture(t, 1)
	f.world.AddSystem(&systems.MovementSystem{Session: f.session})
	id := f.add(core.KindWeak, 100, 100, 3, -2, 1)

	f.world.Tick(0)

	pos, vel := f.position(id), f.velocity(id)
	assert.Equal(t, 103.0, pos.X)
	assert.Equal(t, 98.0, pos.Y)
	assert.Equal(t, 3.0, vel.VX)
	assert.Equal(t, -2.0, vel.VY)
}

func TestMovement_ReflectsOnlyTheCrossingAxis(t *testing.T) {
	cases := []struct {
		name           string
		x, y, vx, vy   float64
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{"right wall", 799, 300, 3, 1, 800, 301, -3, 1},
		{"left wall", 1, 300, -2, 1, 0, 301, 2, 1},
		{"top margin", 300, 41, 1, -2, 301, core.TopMargin, 1, 2},
		{"bottom band", 300, 479, 1, 2, 301, 600 - core.BottomBand, 1, -2},
		{"corner", 799, 479, 3, 2, 800, 480, -3, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 1)
			f.world.AddSystem(&systems.MovementSystem{Session: f.session})
			id := f.add(core.KindWeak, tc.x, tc.y, tc.vx, tc.vy, 1)

			f.world.Tick(0)

			pos, vel := f.position(id), f.velocity(id)
			assert.Equal(t, tc.wantX, pos.X)
			assert.Equal(t, tc.wantY, pos.Y)
			assert.Equal(t, tc.wantVX, vel.VX)
			assert.Equal(t, tc.wantVY, vel.VY)
		})
	}
}

func TestMovement_RotationFollowsFrameCounter(t *testing.T) {
	f := newFixture(t, 1)
	f.world.AddSystem(&systems.MovementSystem{Session: f.session})
	id := f.add(core.KindWeak, 300, 300, 0, 0, 1)
	f.world.TickCount = 9

	f.world.Tick(0)

	spr := f.world.Get(id, core.CompSprite).(*core.Sprite)
	assert.InDelta(t, math.Sin(1.0)*10, spr.Rotation, 1e-9)
}

func TestMovement_PausedOutsidePlaying(t *testing.T) {
	f := newFixture(t, 1)
	f.world.AddSystem(&systems.MovementSystem{Session: f.session})
	id := f.add(core.KindWeak, 100, 100, 3, 3, 1)
	assert.NoError(t, f.session.Expire())

	f.world.Tick(0)

	assert.Equal(t, 100.0, f.position(id).X)
}

func TestMovement_ResizeAffectsOnlyLaterBoundChecks(t *testing.T) {
	f := newFixture(t, 1)
	f.world.AddSystem(&systems.MovementSystem{Session: f.session})
	id := f.add(core.KindWeak, 700, 300, 1, 0, 1)

	f.session.Bounds = core.Bounds{Width: 500, Height: 600}
	assert.Equal(t, 700.0, f.position(id).X, "resize does not move entities")

	f.world.Tick(0)
	assert.Equal(t, 500.0, f.position(id).X)
	assert.Equal(t, -1.0, f.velocity(id).VX)
}
