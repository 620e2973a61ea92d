package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/bughunt/engine/core"
)

// Action is what an overlay button asks the game to do
type Action int

const (
	ActNone Action = iota
	ActStart
	ActAdvance
	ActRestart
)

// MenuButton represents a clickable menu button
type MenuButton struct {
	X, Y, W, H int
	Text       string
	Action     Action
}

// Contains reports whether (mx, my) is inside the button
func (b MenuButton) Contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

var (
	menuShade   = color.RGBA{0, 0, 0, 170}
	menuBtnNorm = color.RGBA{25, 35, 55, 240}
	menuBtnHov  = color.RGBA{35, 55, 90, 255}
	menuAccent  = color.RGBA{0, 200, 255, 255}
)

// MenuSystem draws the overlay shown outside Playing and turns clicks on its
// button into actions
type MenuSystem struct {
	ScreenW int
	ScreenH int
	Tick    float64

	hoverIdx int

	OnStart   func()
	OnAdvance func()
	OnRestart func()
}

func NewMenuSystem(screenW, screenH int) *MenuSystem {
	return &MenuSystem{ScreenW: screenW, ScreenH: screenH, hoverIdx: -1}
}

// Buttons lays out the buttons for a state. Playing has none.
func (m *MenuSystem) Buttons(state core.GameState) []MenuButton {
	var label string
	var act Action
	switch state {
	case core.StateIdle:
		label, act = "START SCAN", ActStart
	case core.StateLevelComplete:
		label, act = "NEXT LEVEL", ActAdvance
	case core.StateGameOver:
		label, act = "REBOOT SYSTEM", ActRestart
	case core.StateVictory:
		label, act = "PLAY AGAIN", ActRestart
	default:
		return nil
	}
	bw, bh := 220, 40
	return []MenuButton{{
		X: m.ScreenW/2 - bw/2, Y: m.ScreenH/2 + 40,
		W: bw, H: bh, Text: label, Action: act,
	}}
}

// Update tracks hover and fires the callback for a click or the confirm key.
// It returns the action taken.
func (m *MenuSystem) Update(dt float64, state core.GameState, mx, my int, clicked, confirm bool) Action {
	m.Tick += dt
	buttons := m.Buttons(state)
	m.hoverIdx = -1
	for i, b := range buttons {
		if b.Contains(mx, my) {
			m.hoverIdx = i
		}
	}
	if len(buttons) == 0 {
		return ActNone
	}
	switch {
	case clicked && m.hoverIdx >= 0:
		return m.fire(buttons[m.hoverIdx].Action)
	case confirm:
		return m.fire(buttons[0].Action)
	}
	return ActNone
}

func (m *MenuSystem) fire(a Action) Action {
	var cb func()
	switch a {
	case ActStart:
		cb = m.OnStart
	case ActAdvance:
		cb = m.OnAdvance
	case ActRestart:
		cb = m.OnRestart
	}
	if cb != nil {
		cb()
	}
	return a
}

// Title returns the overlay heading and body lines for a state
func Title(snap core.Snapshot) (string, []string) {
	switch snap.State {
	case core.StateIdle:
		return "BUG HUNT", []string{
			"Viruses are crawling through system memory.",
			"Click them to purge. Clear the wave to draw out the boss.",
		}
	case core.StateLevelComplete:
		return "THREAT NEUTRALIZED", []string{
			fmt.Sprintf("%s removed.", snap.BossName),
			fmt.Sprintf("Score: %d", snap.Score),
		}
	case core.StateGameOver:
		return "SYSTEM CRASH", []string{
			fmt.Sprintf("%s took over level %d.", snap.BossName, snap.Level),
			fmt.Sprintf("Score: %d", snap.Score),
		}
	case core.StateVictory:
		return "SYSTEM SECURE", []string{
			"Every threat has been cleared.",
			fmt.Sprintf("Final score: %d", snap.Score),
		}
	}
	return "", nil
}

func (m *MenuSystem) Draw(screen *ebiten.Image, snap core.Snapshot) {
	buttons := m.Buttons(snap.State)
	if len(buttons) == 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(m.ScreenW), float32(m.ScreenH), menuShade, false)

	cx, cy := m.ScreenW/2, m.ScreenH/2
	pw, ph := 460, 220
	px, py := float32(cx-pw/2), float32(cy-ph/2)
	vector.DrawFilledRect(screen, px, py, float32(pw), float32(ph), panelBG, false)
	vector.StrokeRect(screen, px, py, float32(pw), float32(ph), 2, panelBorder, false)

	title, body := Title(snap)
	titleClr := hudGold
	switch snap.State {
	case core.StateGameOver:
		titleClr = hudRed
	case core.StateVictory, core.StateLevelComplete:
		titleClr = hudGreen
	}
	ty := float64(py) + 24
	drawTextCentered(screen, title, float64(cx), ty, titleClr)

	// pulsing accent under the title
	pulse := 0.7 + 0.3*math.Sin(m.Tick*2)
	vector.DrawFilledRect(screen, float32(cx-80), float32(ty)+20, 160, 2,
		color.RGBA{menuAccent.R, menuAccent.G, menuAccent.B, uint8(255 * pulse)}, false)

	y := ty + 40
	for _, line := range body {
		drawTextCentered(screen, line, float64(cx), y, hudText)
		y += lineH + 4
	}

	for i, b := range buttons {
		m.drawMenuButton(screen, b, i == m.hoverIdx)
	}
}

func (m *MenuSystem) drawMenuButton(screen *ebiten.Image, b MenuButton, hovered bool) {
	clr := menuBtnNorm
	border := color.RGBA{40, 70, 120, 200}
	if hovered {
		clr, border = menuBtnHov, menuAccent
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), clr, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1.5, border, false)
	drawTextCentered(screen, b.Text, float64(b.X+b.W/2), float64(b.Y+b.H/2-6), hudText)
}
