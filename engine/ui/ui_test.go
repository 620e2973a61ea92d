package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/bughunt/engine/core"
	"github.com/1siamBot/bughunt/engine/ui"
)

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		120: "02:00",
		61:  "01:01",
		9:   "00:09",
		0:   "00:00",
		-3:  "00:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, ui.FormatClock(in))
	}
}

func TestTimerCritical(t *testing.T) {
	assert.False(t, ui.TimerCritical(10))
	assert.True(t, ui.TimerCritical(9))
	assert.True(t, ui.TimerCritical(0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"WARNING: Trojan.Win32", "has entered system", "memory."},
		ui.Wrap("WARNING: Trojan.Win32 has entered system memory.", 21))
	assert.Equal(t, []string{"abcd", "ef x"}, ui.Wrap("abcdef x", 4))
	assert.Empty(t, ui.Wrap("   ", 10))
	assert.Nil(t, ui.Wrap("anything", 0))
}

func TestMenu_OneButtonPerWaitingState(t *testing.T) {
	m := ui.NewMenuSystem(800, 600)
	cases := map[core.GameState]ui.Action{
		core.StateIdle:          ui.ActStart,
		core.StateLevelComplete: ui.ActAdvance,
		core.StateGameOver:      ui.ActRestart,
		core.StateVictory:       ui.ActRestart,
	}
	for state, want := range cases {
		buttons := m.Buttons(state)
		require.Len(t, buttons, 1, state.String())
		assert.Equal(t, want, buttons[0].Action)
	}
	assert.Empty(t, m.Buttons(core.StatePlaying))
}

func TestMenu_ClickFiresCallback(t *testing.T) {
	m := ui.NewMenuSystem(800, 600)
	var started, advanced int
	m.OnStart = func() { started++ }
	m.OnAdvance = func() { advanced++ }
	b := m.Buttons(core.StateIdle)[0]

	assert.Equal(t, ui.ActNone, m.Update(1.0/60, core.StateIdle, 0, 0, true, false), "click outside")
	assert.Equal(t, ui.ActNone, m.Update(1.0/60, core.StateIdle, b.X+1, b.Y+1, false, false), "hover only")
	assert.Equal(t, ui.ActStart, m.Update(1.0/60, core.StateIdle, b.X+1, b.Y+1, true, false))
	assert.Equal(t, 1, started)

	assert.Equal(t, ui.ActAdvance, m.Update(1.0/60, core.StateLevelComplete, 0, 0, false, true), "confirm key")
	assert.Equal(t, 1, advanced)

	assert.Equal(t, ui.ActNone, m.Update(1.0/60, core.StatePlaying, b.X+1, b.Y+1, true, true))
	assert.Equal(t, 1, started)
}

func TestButtonContains(t *testing.T) {
	b := ui.MenuButton{X: 10, Y: 20, W: 100, H: 40}
	assert.True(t, b.Contains(10, 20))
	assert.True(t, b.Contains(109, 59))
	assert.False(t, b.Contains(110, 20))
	assert.False(t, b.Contains(10, 60))
}

func TestTitle(t *testing.T) {
	title, body := ui.Title(core.Snapshot{State: core.StateVictory, Score: 4321})
	assert.Equal(t, "SYSTEM SECURE", title)
	assert.Contains(t, body, "Final score: 4321")

	title, _ = ui.Title(core.Snapshot{State: core.StatePlaying})
	assert.Empty(t, title)
}
