// Package audio synthesizes game sound effects with beep and plays them through the speaker
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundImpact     SoundType = iota // Two animals colliding
	SoundRingOut                     // A player left the ring
	SoundRoundStart                  // New round countdown done
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundImpact:
		return "impact"
	case SoundRingOut:
		return "ring-out"
	case SoundRoundStart:
		return "round-start"
	}
	return "unknown"
}

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100

	// Impact: short noise burst over a low thump, scaled by strength
	impactDuration       = 120 * time.Millisecond
	impactAttack         = 2 * time.Millisecond
	impactRelease        = 90 * time.Millisecond
	impactThumpFreqHz    = 70.0
	impactThumpAmplitude = 0.6
	impactNoiseAmplitude = 0.3

	// Ring-out: falling pair of sine tones
	ringOutNoteDuration = 180 * time.Millisecond
	ringOutAttack       = 5 * time.Millisecond
	ringOutRelease      = 120 * time.Millisecond
	ringOutHighFreqHz   = 440.0
	ringOutLowFreqHz    = 220.0
	ringOutAmplitude    = 0.5

	// Round start: single bright square blip
	roundStartDuration  = 90 * time.Millisecond
	roundStartAttack    = 2 * time.Millisecond
	roundStartRelease   = 40 * time.Millisecond
	roundStartFreqHz    = 330.0
	roundStartAmplitude = 0.3

	// DefaultVolume is the master volume before SetVolume
	DefaultVolume = 0.6
)
