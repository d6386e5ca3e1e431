// Package engine runs a minigame at a fixed physics rate inside a terminal frame loop
package engine

import (
	"sync"
	"time"
)

// Clock supplies the current time to the loop
type Clock interface {
	Now() time.Time
}

// RealClock reads the monotonic system clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable Clock for tests and headless runs
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock starts at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps to t
func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
