package game

import "github.com/plus3/maskecs/ecs"

// SoundBoard plays a sound for shots, deaths and new waves. The event bus holds observers
// weakly, so the SoundBoard must stay referenced for as long as sounds are wanted.
type SoundBoard struct {
	audio Audio

	onShot  *ecs.ObserverFunc[ShotFiredEvent]
	onDeath *ecs.ObserverFunc[DeathEvent]
	onWave  *ecs.ObserverFunc[WaveEvent]
}

func NewSoundBoard(events *ecs.Events, audio Audio) *SoundBoard {
	if audio == nil {
		audio = NopAudio{}
	}
	sb := &SoundBoard{audio: audio}

	onShot := ecs.ObserverFunc[ShotFiredEvent](func(ev ShotFiredEvent) {
		if ev.Side == FactionPlayer {
			sb.audio.Play(SoundShot)
		} else {
			sb.audio.Play(SoundEnemyShot)
		}
	})
	onDeath := ecs.ObserverFunc[DeathEvent](func(ev DeathEvent) {
		if ev.Player {
			sb.audio.Play(SoundPlayerDeath)
		} else {
			sb.audio.Play(SoundExplosion)
		}
	})
	onWave := ecs.ObserverFunc[WaveEvent](func(WaveEvent) {
		sb.audio.Play(SoundWave)
	})
	sb.onShot, sb.onDeath, sb.onWave = &onShot, &onDeath, &onWave

	ecs.Listen[ShotFiredEvent](events, sb.onShot)
	ecs.Listen[DeathEvent](events, sb.onDeath)
	ecs.Listen[WaveEvent](events, sb.onWave)
	return sb
}

// Close stops the SoundBoard from receiving events.
func (sb *SoundBoard) Close(events *ecs.Events) {
	ecs.Unlisten[ShotFiredEvent](events, sb.onShot)
	ecs.Unlisten[DeathEvent](events, sb.onDeath)
	ecs.Unlisten[WaveEvent](events, sb.onWave)
}
