package systems

import (
	"github.com/1siamBot/bughunt/engine/core"
)

// TimerSystem counts the level timer down once per simulated second and ends
// the run when it reaches zero. It runs before spawning and motion so the
// rest of the tick sees GameOver.
type TimerSystem struct {
	Session *core.Session
	Bus     *core.EventBus
}

func (s *TimerSystem) Priority() int { return 5 }

func (s *TimerSystem) Update(w *core.World, _ float64) {
	if !s.Session.Playing() {
		return
	}
	if s.Session.TimeLeft > 0 && w.TickCount%w.FramesPerSecond() == 0 {
		s.Session.TimeLeft--
	}
	if s.Session.TimeLeft > 0 {
		return
	}
	if err := s.Session.Expire(); err != nil {
		return
	}
	s.Bus.Emit(core.Event{
		Type: core.EvtGameOver,
		Tick: w.TickCount,
		Payload: core.LevelEvent{
			RunID: s.Session.RunID,
			Level: s.Session.Level,
			Score: s.Session.Score,
		},
	})
}
