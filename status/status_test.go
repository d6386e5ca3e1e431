package status

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestAtomicFloatConcurrentAdd verifies CAS updates lose nothing under contention
func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 4000 {
		t.Errorf("expected 4000, got %f", f.Get())
	}
}

// TestAtomicFloatSmoothMax verifies EMA seeding and max tracking
func TestAtomicFloatSmoothMax(t *testing.T) {
	var f AtomicFloat
	if got := f.Smooth(10, 0.5); got != 10 {
		t.Errorf("first sample should seed, got %f", got)
	}
	if got := f.Smooth(20, 0.5); got != 15 {
		t.Errorf("EMA %f, want 15", got)
	}

	var m AtomicFloat
	m.Max(3)
	m.Max(1)
	if m.Get() != 3 {
		t.Errorf("max %f", m.Get())
	}
}

// TestMetricMapPointerStable verifies repeated Get returns the cached pointer
func TestMetricMapPointerStable(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	a.Set(2)
	if b := m.Get("x"); b != a || b.Get() != 2 {
		t.Error("second Get returned a different metric")
	}
	if !m.Has("x") || m.Has("y") || m.Count() != 1 {
		t.Error("membership mismatch")
	}
}

type fakeWorld struct{ b, j, c int }

func (w fakeWorld) BodyCount() int    { return w.b }
func (w fakeWorld) JointCount() int   { return w.j }
func (w fakeWorld) ContactCount() int { return w.c }

// TestStatsLine verifies stats flow into the sorted HUD line
func TestStatsLine(t *testing.T) {
	s := NewStats(NewRegistry())
	s.Frame()
	s.Frame()
	s.RecordStep(2 * time.Millisecond)
	s.RecordStep(4 * time.Millisecond)
	s.Sample(fakeWorld{b: 3, j: 1, c: 2})

	if s.Frames() != 2 || s.Steps() != 2 {
		t.Errorf("frames %d steps %d", s.Frames(), s.Steps())
	}
	if math.Abs(s.StepMs()-2.2) > 1e-9 {
		t.Errorf("smoothed step %f, want 2.2", s.StepMs())
	}

	line := s.Registry.Line()
	want := "bodies=3 contacts=2 frames=2 joints=1 steps=2 step_max_ms=4.00 step_ms=2.20"
	if line != want {
		t.Errorf("line\n got %q\nwant %q", line, want)
	}
	if !strings.HasPrefix(line, "bodies=") || s.Registry.TotalCount() != 7 {
		t.Errorf("registry holds %d metrics", s.Registry.TotalCount())
	}
}
