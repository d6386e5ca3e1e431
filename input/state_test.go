package input

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestApplyDeadzone verifies per-axis zeroing and rescaling
func TestApplyDeadzone(t *testing.T) {
	tests := []struct {
		v    int16
		dz   int
		want int16
	}{
		{0, 8000, 0},
		{7999, 8000, 0},
		{-8000, 8000, 0},
		{32767, 8000, 32767},
		{-32768, 8000, -32767},
		{1000, 0, 1000},
		{1000, 40000, 0},
	}
	for _, tt := range tests {
		if got := ApplyDeadzone(tt.v, tt.dz); got != tt.want {
			t.Errorf("ApplyDeadzone(%d, %d) = %d, want %d", tt.v, tt.dz, got, tt.want)
		}
	}

	mid := ApplyDeadzone(20384, 8000)
	if mid <= 0 || mid >= 20384 {
		t.Errorf("rescaled value %d not compressed toward zero", mid)
	}
}

// TestKeyboardLatch verifies key presses hold for the window and release on Tick
func TestKeyboardLatch(t *testing.T) {
	s := NewState(true, 0)
	t0 := time.Unix(100, 0)

	s.HandleEvent(runeEvent('d'), t0)
	s.HandleEvent(runeEvent(' '), t0)

	if s.Controllers[0].Axis(AxisLeftX) != AxisMax || !s.Controllers[0].Button(ButtonA) {
		t.Fatal("press not applied")
	}

	s.Tick(t0.Add(DefaultHold / 2))
	if s.Controllers[0].Axis(AxisLeftX) != AxisMax {
		t.Error("released before hold window ended")
	}

	s.Tick(t0.Add(DefaultHold + time.Millisecond))
	if s.Controllers[0].Axis(AxisLeftX) != 0 || s.Controllers[0].Button(ButtonA) {
		t.Error("not released after hold window")
	}
}

// TestOppositeDirectionWins verifies releasing a direction does not cancel its opposite
func TestOppositeDirectionWins(t *testing.T) {
	s := NewState(true, 0)
	t0 := time.Unix(100, 0)

	s.HandleEvent(runeEvent('a'), t0)
	s.HandleEvent(runeEvent('d'), t0.Add(DefaultHold/2))
	s.Tick(t0.Add(DefaultHold + time.Millisecond))

	if s.Controllers[0].Axis(AxisLeftX) != AxisMax {
		t.Errorf("axis %d, want right still held", s.Controllers[0].Axis(AxisLeftX))
	}
}

// TestPlayerTwoArrows verifies arrow keys drive the second controller
func TestPlayerTwoArrows(t *testing.T) {
	s := NewState(true, 0)
	now := time.Unix(0, 0)
	s.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), now)
	s.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), now)

	v := s.StickVector(1)
	if v.X != 0 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("player 2 stick %v, want up", v)
	}
	if !s.Controllers[1].Button(ButtonA) {
		t.Error("enter did not press A")
	}
	if s.StickVector(0) != (s.StickVector(5)) {
		t.Error("player 1 moved or out-of-range controller not zero")
	}
}

// TestKeyboardDisabled verifies bindings are ignored without keyboard mode
func TestKeyboardDisabled(t *testing.T) {
	s := NewState(false, 0)
	s.HandleEvent(runeEvent('w'), time.Now())
	if s.Controllers[0].Axis(AxisLeftY) != 0 {
		t.Error("keyboard input applied while disabled")
	}
}

// TestQuitAndPause verifies control keys
func TestQuitAndPause(t *testing.T) {
	s := NewState(true, 0)
	if !s.HandleEvent(runeEvent('p'), time.Now()) || !s.Pause {
		t.Error("p did not toggle pause")
	}
	if !s.HandleEvent(tcell.NewEventResize(80, 24), time.Now()) {
		t.Error("resize treated as quit")
	}
	if s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), time.Now()) || !s.Quit {
		t.Error("escape did not quit")
	}
}

// TestStickVectorDiagonal verifies stick magnitude is clamped to 1
func TestStickVectorDiagonal(t *testing.T) {
	s := NewState(true, 0)
	s.Controllers[0].SetAxis(AxisLeftX, AxisMax)
	s.Controllers[0].SetAxis(AxisLeftY, AxisMax)
	v := s.StickVector(0)
	if math.Abs(v.Mag()-1) > 1e-9 {
		t.Errorf("diagonal magnitude %f", v.Mag())
	}
	if v.X <= 0 || v.Y >= 0 {
		t.Errorf("diagonal direction %v, want right-down", v)
	}
}
