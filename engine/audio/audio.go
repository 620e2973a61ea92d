package audio

import (
	"log"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/1siamBot/bughunt/engine/core"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndHit       SoundID = "hit"
	SndSquash    SoundID = "squash"
	SndBossAlarm SoundID = "boss_alarm"
	SndSpray     SoundID = "spray"
	SndClear     SoundID = "clear"
	SndCrash     SoundID = "crash"
)

// SoundFor maps a game event to its sound cue
func SoundFor(e core.Event) (SoundID, bool) {
	switch e.Type {
	case core.EvtEntityHit:
		return SndHit, true
	case core.EvtEntityKilled:
		return SndSquash, true
	case core.EvtBossSpawned:
		return SndBossAlarm, true
	case core.EvtPowerUpUsed:
		return SndSpray, true
	case core.EvtLevelComplete, core.EvtVictory:
		return SndClear, true
	case core.EvtGameOver:
		return SndCrash, true
	}
	return "", false
}

// AudioManager plays synthesized sound effects through Ebitengine's audio
// package. Without a context it only counts what it would have played.
type AudioManager struct {
	MasterVolume float64
	Muted        bool
	Played       int

	ctx   *ebaudio.Context
	cache map[SoundID][]byte
}

// NewAudioManager creates the audio context when enabled. Only one context
// may exist per process.
func NewAudioManager(enabled bool, volume float64) *AudioManager {
	am := &AudioManager{cache: make(map[SoundID][]byte)}
	am.SetVolume(volume)
	if enabled {
		am.ctx = ebaudio.NewContext(int(SampleRate))
	}
	return am
}

// Listen plays the cue for every event that has one
func (am *AudioManager) Listen(bus *core.EventBus) {
	for _, t := range []core.EventType{
		core.EvtEntityHit, core.EvtEntityKilled, core.EvtBossSpawned, core.EvtPowerUpUsed,
		core.EvtLevelComplete, core.EvtVictory, core.EvtGameOver,
	} {
		bus.On(t, func(e core.Event) {
			if id, ok := SoundFor(e); ok {
				am.PlaySFX(id)
			}
		})
	}
}

// PlaySFX plays a sound effect
func (am *AudioManager) PlaySFX(id SoundID) {
	if am.Muted || am.MasterVolume == 0 {
		return
	}
	am.Played++
	if am.ctx == nil {
		return
	}
	pcm, ok := am.cache[id]
	if !ok {
		pcm = Render(Synth(id))
		am.cache[id] = pcm
	}
	if len(pcm) == 0 {
		return
	}
	p := am.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(am.MasterVolume)
	p.Play()
}

// ToggleMute flips mute and returns the new state
func (am *AudioManager) ToggleMute() bool {
	am.Muted = !am.Muted
	log.Printf("[audio] muted=%v", am.Muted)
	return am.Muted
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.MasterVolume = min(max(v, 0), 1)
}
