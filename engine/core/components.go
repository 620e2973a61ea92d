package core

import "math"

// ---- Position & Motion ----

// Position is a playfield position in pixels
type Position struct {
	X, Y float64
}

func (p *Position) Type() ComponentType { return CompPosition }

// DistanceTo returns euclidean distance to a point
func (p *Position) DistanceTo(x, y float64) float64 {
	return math.Hypot(p.X-x, p.Y-y)
}

// Velocity is the per-tick displacement
type Velocity struct {
	VX, VY float64
}

func (v *Velocity) Type() ComponentType { return CompVelocity }

// Startle reverses and amplifies the velocity, clamping each component to ±limit.
func (v *Velocity) Startle(factor, limit float64) {
	v.VX = clampAbs(-v.VX*factor, limit)
	v.VY = clampAbs(-v.VY*factor, limit)
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(v, limit))
}

// ---- Health ----

// Health represents hit points
type Health struct {
	Current int
	Max     int
}

func (h *Health) Type() ComponentType { return CompHealth }

// Ratio is Current/Max, 0 when Max is unset
func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// Dead reports whether the entity has run out of hit points
func (h *Health) Dead() bool { return h.Current <= 0 }

// ---- Creature ----

// Kind is the variant of a simulated actor
type Kind uint8

const (
	KindWeak Kind = iota
	KindMedium
	KindStrong
	KindBoss
	KindPowerUp
)

var kindNames = [...]string{"weak", "medium", "strong", "boss", "powerup"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsBug is true for ordinary creatures: not the boss, not an item.
func (k Kind) IsBug() bool { return k != KindBoss && k != KindPowerUp }

// SpeedMultiplier scales the level base speed for a kind.
func (k Kind) SpeedMultiplier() float64 {
	switch k {
	case KindBoss:
		return BossSpeedMult
	case KindPowerUp:
		return PowerUpSpeedMult
	default:
		return 1
	}
}

// BodyRadius is the on-screen radius at scale 1, shared by drawing and picking.
func (k Kind) BodyRadius() float64 {
	switch k {
	case KindBoss:
		return 48
	case KindPowerUp:
		return 18
	case KindStrong:
		return 22
	case KindMedium:
		return 19
	default:
		return 16
	}
}

// Creature tags an entity with its kind
type Creature struct {
	Kind Kind
}

func (c *Creature) Type() ComponentType { return CompCreature }

// ---- Sprite ----

// Sprite holds visual-only state
type Sprite struct {
	Rotation float64 // degrees
	Scale    float64
}

func (s *Sprite) Type() ComponentType { return CompSprite }

// Bump enlarges the sprite as hit feedback, never shrinking it and never past max.
func (s *Sprite) Bump(factor, lo, hi float64) {
	next := math.Min(hi, math.Max(lo, s.Scale*factor))
	s.Scale = math.Max(s.Scale, next)
}
