package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	MouseX, MouseY  int
	LeftJustPressed bool

	// Touch taps count as clicks
	TapX, TapY int
	Tapped     bool

	Confirm bool // Enter or Space
	Mute    bool // M
	Quit    bool // Escape

	touches []ebiten.TouchID
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	s.Tapped = false
	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	if len(s.touches) > 0 {
		s.TapX, s.TapY = ebiten.TouchPosition(s.touches[0])
		s.Tapped = true
	}

	s.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.Mute = inpututil.IsKeyJustPressed(ebiten.KeyM)
	s.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// Click returns the position of this frame's click or tap, if any
func (s *InputState) Click() (x, y int, ok bool) {
	switch {
	case s.LeftJustPressed:
		return s.MouseX, s.MouseY, true
	case s.Tapped:
		return s.TapX, s.TapY, true
	}
	return 0, 0, false
}
