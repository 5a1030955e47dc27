package platform

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/mix"

	"github.com/dkarella/i8080-space-invaders/internal/ports"
)

var soundFiles = map[ports.SoundID]string{
	ports.SoundUFO:         "ufo.wav",
	ports.SoundShot:        "shoot.wav",
	ports.SoundPlayerDie:   "player_die.wav",
	ports.SoundInvaderDie:  "invader_die.wav",
	ports.SoundFleetMove1:  "fleet_movement_1.wav",
	ports.SoundFleetMove2:  "fleet_movement_2.wav",
	ports.SoundFleetMove3:  "fleet_movement_3.wav",
	ports.SoundFleetMove4:  "fleet_movement_4.wav",
	ports.SoundUFODie:      "ufo_die.wav",
}

// Mixer implements ports.Sounder over SDL_mixer, loading every cabinet
// sample up front so OUT-triggered playback never touches disk.
type Mixer struct {
	chunks map[ports.SoundID]*mix.Chunk
}

// NewMixer opens the default audio device and loads every sample from
// dir. A missing sample is logged and skipped rather than failing cabinet
// startup, per the sound subsystem's "must remain playable" disposition.
func NewMixer(dir string) (*Mixer, error) {
	if err := mix.OpenAudio(22050, mix.DEFAULT_FORMAT, 2, 1024); err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	m := &Mixer{chunks: make(map[ports.SoundID]*mix.Chunk, len(soundFiles))}
	for id, name := range soundFiles {
		chunk, err := mix.LoadWAV(dir + "/" + name)
		if err != nil {
			log.Printf("platform: failed to load sound %q: %v", name, err)
			continue
		}
		m.chunks[id] = chunk
	}
	return m, nil
}

// Close frees every loaded sample and shuts down the audio device.
func (m *Mixer) Close() {
	for _, chunk := range m.chunks {
		chunk.Free()
	}
	mix.CloseAudio()
}

// PlayOnce fires a sample to completion on any free channel.
func (m *Mixer) PlayOnce(id ports.SoundID) {
	chunk, ok := m.chunks[id]
	if !ok {
		return
	}
	if _, err := chunk.Play(-1, 0); err != nil {
		log.Printf("platform: play %v: %v", id, err)
	}
}

// PlayLoop fires a sample on indefinite repeat and returns the channel it
// was assigned, or -1 on failure, so the caller can Stop it later.
func (m *Mixer) PlayLoop(id ports.SoundID) int {
	chunk, ok := m.chunks[id]
	if !ok {
		return -1
	}
	channel, err := chunk.Play(-1, -1)
	if err != nil {
		log.Printf("platform: loop %v: %v", id, err)
		return -1
	}
	return channel
}

// Stop fades out the given channel. A negative channel (never started, or
// a failed PlayLoop) is a no-op.
func (m *Mixer) Stop(channel int) {
	if channel < 0 {
		return
	}
	if err := mix.FadeOutChannel(channel, 100); err != nil {
		log.Printf("platform: stop channel %d: %v", channel, err)
	}
}
