package status

import (
	"sync/atomic"
	"time"
)

// Metric keys written by Stats
const (
	KeyFrames    = "frames"
	KeySteps     = "steps"
	KeyBodies    = "bodies"
	KeyJoints    = "joints"
	KeyContacts  = "contacts"
	KeyStepMs    = "step_ms"
	KeyStepMaxMs = "step_max_ms"
)

// stepSmoothing is the EMA weight for step time
const stepSmoothing = 0.1

// WorldCounter is the read side of a physics world Stats samples
type WorldCounter interface {
	BodyCount() int
	JointCount() int
	ContactCount() int
}

// Stats caches metric pointers for the per-frame hot path
type Stats struct {
	Registry *Registry

	frames    *atomic.Int64
	steps     *atomic.Int64
	bodies    *atomic.Int64
	joints    *atomic.Int64
	contacts  *atomic.Int64
	stepMs    *AtomicFloat
	stepMaxMs *AtomicFloat
}

// NewStats registers the physics metrics in reg
func NewStats(reg *Registry) *Stats {
	return &Stats{
		Registry:  reg,
		frames:    reg.Ints.Get(KeyFrames),
		steps:     reg.Ints.Get(KeySteps),
		bodies:    reg.Ints.Get(KeyBodies),
		joints:    reg.Ints.Get(KeyJoints),
		contacts:  reg.Ints.Get(KeyContacts),
		stepMs:    reg.Floats.Get(KeyStepMs),
		stepMaxMs: reg.Floats.Get(KeyStepMaxMs),
	}
}

// Frame counts one rendered frame
func (s *Stats) Frame() {
	s.frames.Add(1)
}

// RecordStep accounts one physics step that took d
func (s *Stats) RecordStep(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	s.steps.Add(1)
	s.stepMs.Smooth(ms, stepSmoothing)
	s.stepMaxMs.Max(ms)
}

// Sample copies entity counts from w
func (s *Stats) Sample(w WorldCounter) {
	s.bodies.Store(int64(w.BodyCount()))
	s.joints.Store(int64(w.JointCount()))
	s.contacts.Store(int64(w.ContactCount()))
}

func (s *Stats) Frames() int64 { return s.frames.Load() }

func (s *Stats) Steps() int64 { return s.steps.Load() }

func (s *Stats) StepMs() float64 { return s.stepMs.Get() }
