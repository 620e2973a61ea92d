package core

import "time"

const (
	TickRate = 60.0

	// Playfield interior: full width, vertical band between the menu bar and the dock.
	TopMargin  = 40.0
	BottomBand = 120.0

	// Spawn area inside the interior, away from icons and dock.
	SpawnPadding = 50.0
	SpawnTop     = 80.0
	SpawnReserve = 250.0

	BossSpeedMult    = 2.0
	PowerUpSpeedMult = 0.5

	ReplenishBelow   = 5     // creatures below this get topped up once per second
	ItemDropAbove    = 5     // creatures above this allow item drops
	MaxItems         = 2     // power-ups alive at once
	ItemDropChance   = 0.001 // per tick
	SprayKills       = 3
	BugScore         = 100
	BossScore        = 1000
	HitScaleFactor   = 1.2
	HitScaleMin      = 0.8
	HitScaleMax      = 2.0
	StartleFactor    = 1.5
	MaxSpeed         = 24.0 // per velocity component, px/tick
	WiggleRate       = 0.1
	WiggleDegrees    = 10.0
	EffectTTL        = 600 * time.Millisecond
	CriticalTimeLeft = 10 // seconds, HUD turns red
)
