package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is shared by synthesis and playback
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length oscillator with a linear frequency sweep
type tone struct {
	from, to float64
	wave     WaveType
	phase    float64
	total    int
	pos      int
}

// Tone returns a streamer sweeping from one frequency to another over d
func Tone(from, to float64, d time.Duration, wave WaveType) beep.Streamer {
	return &tone{from: from, to: to, wave: wave, total: SampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		}
		// fade the last 10% to avoid clicks
		if tail := t.total / 10; tail > 0 && t.pos > t.total-tail {
			val *= float64(t.total-t.pos) / float64(tail)
		}
		samples[i][0], samples[i][1] = val, val

		freq := t.from + (t.to-t.from)*float64(t.pos)/float64(t.total)
		t.phase += freq / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales a stream linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synth builds the streamer for a sound effect
func Synth(id SoundID) beep.Streamer {
	ms := time.Millisecond
	switch id {
	case SndHit:
		return withVolume(Tone(660, 520, 60*ms, WaveSquare), 0.5)
	case SndSquash:
		return withVolume(Tone(420, 90, 140*ms, WaveSaw), 0.6)
	case SndBossAlarm:
		return withVolume(beep.Seq(
			Tone(440, 880, 180*ms, WaveSquare),
			Tone(880, 440, 180*ms, WaveSquare),
			Tone(440, 880, 180*ms, WaveSquare),
		), 0.45)
	case SndSpray:
		// Mix never ends on its own
		return withVolume(beep.Take(SampleRate.N(300*ms), beep.Mix(
			Tone(1200, 300, 300*ms, WaveSaw),
			Tone(900, 250, 300*ms, WaveSine),
		)), 0.35)
	case SndClear:
		return withVolume(beep.Seq(
			Tone(523.25, 523.25, 110*ms, WaveSine),
			Tone(659.25, 659.25, 110*ms, WaveSine),
			Tone(783.99, 783.99, 220*ms, WaveSine),
		), 0.6)
	case SndCrash:
		return withVolume(Tone(220, 40, 700*ms, WaveSaw), 0.6)
	}
	return nil
}

// Render drains a streamer into 16-bit little-endian stereo PCM
func Render(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(toPCM(v)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toPCM(v float64) int16 {
	v = min(max(v, -1), 1)
	return int16(v * math.MaxInt16)
}
