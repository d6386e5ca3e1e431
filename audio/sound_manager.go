package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager manages all game audio
// Every Play method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      [soundTypeCount]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDurationMs*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("audio: speaker ready at %d Hz", sampleRate)
	return nil
}

// Cleanup stops all sounds; the speaker itself stays open for a later Initialize
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// SetVolume sets the master volume, clamped to [0,1]
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = max(0, min(1, v))
}

func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// Played returns how many sounds of a type were queued
func (sm *SoundManager) Played(t SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if t < 0 || t >= soundTypeCount {
		return 0
	}
	return sm.played[t]
}

// play queues a streamer built under the lock; build runs only when audio is live
func (sm *SoundManager) play(t SoundType, build func(volume float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return
	}

	s := build(sm.volume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[t]++
}

// PlayImpact plays a collision thump; strength is clamped to [0,1]
func (sm *SoundManager) PlayImpact(strength float64) {
	sm.play(SoundImpact, func(volume float64) beep.Streamer {
		return CreateImpactSound(strength, volume)
	})
}

// PlayRingOut plays the falling ring-out tones
func (sm *SoundManager) PlayRingOut() {
	sm.play(SoundRingOut, CreateRingOutSound)
}

// PlayRoundStart plays the round start blip
func (sm *SoundManager) PlayRoundStart() {
	sm.play(SoundRoundStart, CreateRoundStartSound)
}
