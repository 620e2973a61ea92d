package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/bughunt/engine/core"
)

var (
	barBG       = color.RGBA{0, 0, 0, 180}
	panelBG     = color.RGBA{15, 15, 30, 230}
	panelBorder = color.RGBA{0, 140, 200, 255}
	hudText     = color.RGBA{200, 220, 255, 255}
	hudDim      = color.RGBA{100, 120, 150, 255}
	hudGold     = color.RGBA{255, 200, 50, 255}
	hudRed      = color.RGBA{220, 50, 50, 255}
	hudGreen    = color.RGBA{50, 220, 80, 255}
)

// FormatClock renders seconds as mm:ss
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// TimerCritical is true once the countdown needs the player's attention
func TimerCritical(seconds int) bool {
	return seconds < core.CriticalTimeLeft
}

// HUD is the heads-up display drawn over the playfield
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	Muted            bool
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: int(core.TopMargin),
	}
}

// Draw renders the menu bar and, while playing, the timer and message panel
func (h *HUD) Draw(screen *ebiten.Image, snap core.Snapshot) {
	h.drawTopBar(screen, snap)
	if snap.State != core.StatePlaying {
		return
	}
	h.drawTimer(screen, snap.TimeLeft)
	h.drawMessagePanel(screen, snap)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, snap core.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), barBG, false)
	vector.StrokeLine(screen, 0, float32(h.TopBarHeight), float32(h.ScreenW), float32(h.TopBarHeight), 1, panelBorder, false)

	drawText(screen, "BUG HUNT", 12, 12, hudGold)
	info := fmt.Sprintf("Score: %d", snap.Score)
	if snap.Level > 0 {
		info += fmt.Sprintf(" | Level %d/%d", snap.Level, core.FinalLevel)
	}
	drawText(screen, info, 100, 12, hudText)

	status := strings.ToUpper(strings.ReplaceAll(snap.State.String(), "_", " "))
	if h.Muted {
		status += " | MUTED"
	}
	drawText(screen, status, float64(h.ScreenW)-float64(len(status)*glyphW)-12, 12, hudDim)
}

func (h *HUD) drawTimer(screen *ebiten.Image, seconds int) {
	const w, hgt = 96, 28
	x := float32(h.ScreenW/2 - w/2)
	y := float32(h.TopBarHeight + 8)
	clr := hudText
	border := panelBorder
	if TimerCritical(seconds) {
		clr, border = hudRed, hudRed
	}
	vector.DrawFilledRect(screen, x, y, w, hgt, panelBG, false)
	vector.StrokeRect(screen, x, y, w, hgt, 1.5, border, false)
	drawTextCentered(screen, FormatClock(seconds), float64(h.ScreenW)/2, float64(y)+8, clr)
}

func (h *HUD) drawMessagePanel(screen *ebiten.Image, snap core.Snapshot) {
	band := int(core.BottomBand)
	px, py := 16, h.ScreenH-band+12
	pw, ph := h.ScreenW-32, band-24
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), panelBG, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 1, panelBorder, false)

	y := float64(py) + 10
	drawText(screen, "> SYSTEM", float64(px)+10, y, hudGreen)
	y += lineH
	cols := max((pw-20)/glyphW, 1)
	lines := Wrap(snap.SystemMessage, cols)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	for _, line := range lines {
		drawText(screen, line, float64(px)+10, y, hudText)
		y += lineH
	}
	if snap.BossTaunt != "" {
		taunt := fmt.Sprintf("%s: \"%s\"", snap.BossName, snap.BossTaunt)
		if t := Wrap(taunt, cols); len(t) > 0 {
			drawText(screen, t[0], float64(px)+10, y, hudRed)
		}
	}
}
