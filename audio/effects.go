package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack/release to a stream and ends it after its duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp up and a release ramp down
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if left := e.totalSamples - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect generators

// CreateImpactSound builds a thump whose loudness and pitch follow strength in [0,1]
func CreateImpactSound(strength, volume float64) beep.Streamer {
	strength = math.Max(0, math.Min(1, strength))

	thump := NewOscillator(impactThumpFreqHz*(1+strength), impactDuration, WaveSine, sampleRate)
	noise := NewOscillator(0, impactDuration, WaveNoise, sampleRate)
	mixed := beep.Mix(
		newVolume(thump, impactThumpAmplitude),
		newVolume(noise, impactNoiseAmplitude*strength),
	)
	shaped := NewEnvelope(mixed, impactDuration, impactAttack, impactRelease, sampleRate)
	return newVolume(shaped, volume*(0.3+0.7*strength))
}

// CreateRingOutSound plays a falling two-note sine sequence
func CreateRingOutSound(volume float64) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			// Only fails for frequencies at or above Nyquist
			tone = NewOscillator(freq, ringOutNoteDuration, WaveSine, sampleRate)
		}
		return NewEnvelope(tone, ringOutNoteDuration, ringOutAttack, ringOutRelease, sampleRate)
	}
	seq := beep.Seq(note(ringOutHighFreqHz), note(ringOutLowFreqHz))
	return newVolume(seq, volume*ringOutAmplitude)
}

// CreateRoundStartSound plays a short square blip
func CreateRoundStartSound(volume float64) beep.Streamer {
	osc := NewOscillator(roundStartFreqHz, roundStartDuration, WaveSquare, sampleRate)
	shaped := NewEnvelope(osc, roundStartDuration, roundStartAttack, roundStartRelease, sampleRate)
	return newVolume(shaped, volume*roundStartAmplitude)
}

// GetSoundEffect returns the streamer for a sound type at full strength
func GetSoundEffect(soundType SoundType, volume float64) beep.Streamer {
	switch soundType {
	case SoundImpact:
		return CreateImpactSound(1, volume)
	case SoundRingOut:
		return CreateRingOutSound(volume)
	case SoundRoundStart:
		return CreateRoundStartSound(volume)
	default:
		return nil
	}
}
