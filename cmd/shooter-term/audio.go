package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/maskecs/game"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq, sweep float64
	length      time.Duration
	square      bool
}

var tones = map[game.Sound]tone{
	game.SoundShot:        {freq: 880, sweep: -400, length: 60 * time.Millisecond, square: true},
	game.SoundEnemyShot:   {freq: 440, sweep: -200, length: 80 * time.Millisecond, square: true},
	game.SoundExplosion:   {freq: 160, sweep: -120, length: 200 * time.Millisecond},
	game.SoundPlayerDeath: {freq: 220, sweep: -180, length: 600 * time.Millisecond},
	game.SoundWave:        {freq: 523, sweep: 260, length: 250 * time.Millisecond},
}

// Speaker plays synthesized effects through the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) Play(sound game.Sound) {
	t, ok := tones[sound]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(t.length), newSweep(t)))
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// sweep is an oscillator whose frequency slides linearly and whose volume decays to silence.
type sweep struct {
	tone
	phase float64
	pos   int
	total int
}

func newSweep(t tone) *sweep {
	return &sweep{tone: t, total: sampleRate.N(t.length)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		var val float64
		if s.square {
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		} else {
			val = math.Sin(2 * math.Pi * s.phase)
		}
		val *= 0.25 * (1 - progress)
		samples[i][0], samples[i][1] = val, val

		freq := s.freq + s.sweep*progress
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
