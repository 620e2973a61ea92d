package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/bughunt/engine/core"
)

var (
	sceneBG   = color.RGBA{10, 14, 24, 255}
	gridColor = color.RGBA{0, 80, 120, 24}
	bandColor = color.RGBA{0, 0, 0, 90}
	fxColor   = color.RGBA{255, 220, 80, 255}
)

// SceneRenderer draws the playfield: background, creatures and effects.
// The HUD is drawn on top by the ui package.
type SceneRenderer struct {
	Camera *Camera
	frame  float64
}

func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{Camera: NewCamera()}
}

// Draw renders one snapshot
func (r *SceneRenderer) Draw(screen *ebiten.Image, snap core.Snapshot) {
	r.frame++
	r.Camera.Update(1 / float64(ebiten.TPS()))
	ox, oy := r.Camera.Offset()
	screen.Fill(sceneBG)
	r.drawGrid(screen, snap.Width, snap.Height)

	// bottom band is reserved for the message panel
	band := float32(core.BottomBand)
	vector.DrawFilledRect(screen, 0, float32(snap.Height)-band, float32(snap.Width), band, bandColor, false)

	for _, e := range snap.Entities {
		e.X, e.Y = e.X+ox, e.Y+oy
		DrawEntity(screen, e)
	}
	for _, fx := range snap.Effects {
		fx.X, fx.Y = fx.X+ox, fx.Y+oy
		drawEffect(screen, fx)
	}
}

func (r *SceneRenderer) drawGrid(screen *ebiten.Image, w, h float64) {
	const step = 48.0
	drift := math.Mod(r.frame*0.25, step)
	for x := drift; x < w; x += step {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, gridColor, false)
	}
	for y := drift; y < h; y += step {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, gridColor, false)
	}
}

// EffectRing returns the radius and opacity of an explosion at the given progress
func EffectRing(progress float64) (radius float64, alpha uint8) {
	p := min(max(progress, 0), 1)
	return 8 + 32*p, uint8(255 * (1 - p))
}

func drawEffect(screen *ebiten.Image, fx core.EffectView) {
	radius, alpha := EffectRing(fx.Progress)
	if alpha == 0 {
		return
	}
	x, y := float32(fx.X), float32(fx.Y)
	ring := color.RGBA{fxColor.R, fxColor.G, fxColor.B, alpha}
	vector.StrokeCircle(screen, x, y, float32(radius), 3, ring, true)
	vector.DrawFilledCircle(screen, x, y, float32(radius)*0.4, color.RGBA{255, 255, 255, alpha / 2}, true)
}
