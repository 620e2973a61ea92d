package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/bughunt/engine/core"
)

// KindColors maps creature kinds to body colors
var KindColors = map[core.Kind]color.RGBA{
	core.KindWeak:    {80, 200, 120, 255},  // green
	core.KindMedium:  {240, 180, 40, 255},  // amber
	core.KindStrong:  {220, 70, 70, 255},   // red
	core.KindBoss:    {170, 40, 200, 255},  // violet
	core.KindPowerUp: {60, 170, 240, 255},  // blue
}

var (
	legColor    = color.RGBA{20, 20, 30, 255}
	eyeColor    = color.RGBA{255, 255, 255, 255}
	pupilColor  = color.RGBA{0, 0, 0, 255}
	hpBack      = color.RGBA{40, 0, 0, 220}
	hpFront     = color.RGBA{255, 40, 40, 255}
	nozzleColor = color.RGBA{200, 200, 210, 255}
)

// Segment is a line from (X0, Y0) to (X1, Y1)
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// rotate turns (x, y) around the origin by deg degrees
func rotate(x, y, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// Legs returns the six legs of a creature in screen space. Each side's legs
// swing with the creature's rotation.
func Legs(e core.EntityView) []Segment {
	r := e.Kind.BodyRadius() * e.Scale
	legs := make([]Segment, 0, 6)
	for _, side := range []float64{-1, 1} {
		for i := -1; i <= 1; i++ {
			bx, by := side*r*0.7, float64(i)*r*0.55
			tx, ty := side*r*1.5, float64(i)*r*0.8
			tx, ty = rotate(tx-bx, ty-by, e.Rotation*side)
			legs = append(legs, Segment{
				X0: e.X + bx, Y0: e.Y + by,
				X1: e.X + bx + tx, Y1: e.Y + by + ty,
			})
		}
	}
	return legs
}

// DrawEntity draws one creature or item
func DrawEntity(screen *ebiten.Image, e core.EntityView) {
	if e.Kind == core.KindPowerUp {
		drawSprayCan(screen, e)
		return
	}
	r := float32(e.Kind.BodyRadius() * e.Scale)
	x, y := float32(e.X), float32(e.Y)
	clr, ok := KindColors[e.Kind]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}

	for _, l := range Legs(e) {
		vector.StrokeLine(screen, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), 2, legColor, true)
	}
	if e.Kind == core.KindBoss {
		vector.DrawFilledCircle(screen, x, y, r+6, color.RGBA{clr.R, clr.G, clr.B, 60}, true)
	}
	vector.DrawFilledCircle(screen, x, y, r, clr, true)
	vector.StrokeCircle(screen, x, y, r, 1.5, color.RGBA{0, 0, 0, 160}, true)

	// Eyes look along the heading
	hx, hy := heading(e.VX, e.VY)
	for _, side := range []float32{-1, 1} {
		ex := x + side*r*0.35 + hx*r*0.3
		ey := y - r*0.25 + hy*r*0.3
		vector.DrawFilledCircle(screen, ex, ey, r*0.22, eyeColor, true)
		vector.DrawFilledCircle(screen, ex+hx*r*0.08, ey+hy*r*0.08, r*0.1, pupilColor, true)
	}

	if e.Kind == core.KindBoss {
		drawHealthBar(screen, e)
	}
}

func heading(vx, vy float64) (float32, float32) {
	l := math.Hypot(vx, vy)
	if l == 0 {
		return 0, 0
	}
	return float32(vx / l), float32(vy / l)
}

// HealthBarFill is the width of the filled part of a bar of the given width
func HealthBarFill(e core.EntityView, width float64) float64 {
	hp := core.Health{Current: e.Health, Max: e.MaxHealth}
	return width * min(max(hp.Ratio(), 0), 1)
}

func drawHealthBar(screen *ebiten.Image, e core.EntityView) {
	const w, h = 80.0, 6.0
	r := e.Kind.BodyRadius() * e.Scale
	x := float32(e.X - w/2)
	y := float32(e.Y - r - 16)
	vector.DrawFilledRect(screen, x, y, w, h, hpBack, false)
	vector.DrawFilledRect(screen, x, y, float32(HealthBarFill(e, w)), h, hpFront, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{0, 0, 0, 200}, false)
}

func drawSprayCan(screen *ebiten.Image, e core.EntityView) {
	r := float32(e.Kind.BodyRadius() * e.Scale)
	x, y := float32(e.X), float32(e.Y)
	clr := KindColors[core.KindPowerUp]

	// soft pulse so the item stands out from the bugs
	pulse := float32(0.5 + 0.5*math.Sin(e.Rotation/core.WiggleDegrees*math.Pi))
	vector.DrawFilledCircle(screen, x, y, r+4*pulse, color.RGBA{clr.R, clr.G, clr.B, 50}, true)

	bw, bh := r*0.9, r*1.6
	vector.DrawFilledRect(screen, x-bw/2, y-bh/2+4, bw, bh, clr, true)
	vector.DrawFilledRect(screen, x-bw/4, y-bh/2-2, bw/2, 6, nozzleColor, true)
	vector.DrawFilledRect(screen, x-bw/2, y-2, bw, 5, color.RGBA{255, 255, 255, 200}, true)
}
