package engine

import (
	"time"
)

// DefaultMaxSteps caps catch-up steps per frame
const DefaultMaxSteps = 5

// FixedStep converts elapsed wall time into whole physics steps
// Time spent paused is excluded; backlog past MaxSteps is dropped
type FixedStep struct {
	Step     time.Duration
	MaxSteps int

	clock       Clock
	last        time.Time
	accumulator time.Duration

	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
	dropped     int
}

// NewFixedStep ticks every step according to clock
func NewFixedStep(step time.Duration, clock Clock) *FixedStep {
	if step <= 0 {
		step = time.Second / 60
	}
	return &FixedStep{
		Step:     step,
		MaxSteps: DefaultMaxSteps,
		clock:    clock,
		last:     clock.Now(),
	}
}

// Advance returns how many steps are due since the previous call
func (f *FixedStep) Advance() int {
	now := f.clock.Now()
	if f.paused {
		f.last = now
		return 0
	}

	elapsed := now.Sub(f.last)
	f.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	f.accumulator += elapsed

	n := int(f.accumulator / f.Step)
	f.accumulator -= time.Duration(n) * f.Step
	if f.MaxSteps > 0 && n > f.MaxSteps {
		f.dropped += n - f.MaxSteps
		n = f.MaxSteps
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for interpolation
func (f *FixedStep) Alpha() float64 {
	return float64(f.accumulator) / float64(f.Step)
}

// Pause stops time from accruing
func (f *FixedStep) Pause() {
	if f.paused {
		return
	}
	f.paused = true
	f.pauseStart = f.clock.Now()
}

// Resume restarts accrual from now
func (f *FixedStep) Resume() {
	if !f.paused {
		return
	}
	now := f.clock.Now()
	f.totalPaused += now.Sub(f.pauseStart)
	f.paused = false
	f.last = now
}

// SetPaused pauses or resumes
func (f *FixedStep) SetPaused(p bool) {
	if p {
		f.Pause()
	} else {
		f.Resume()
	}
}

func (f *FixedStep) IsPaused() bool {
	return f.paused
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (f *FixedStep) TotalPaused() time.Duration {
	total := f.totalPaused
	if f.paused {
		total += f.clock.Now().Sub(f.pauseStart)
	}
	return total
}

// Dropped counts steps discarded by the MaxSteps cap
func (f *FixedStep) Dropped() int {
	return f.dropped
}
