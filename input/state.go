// Package input turns terminal key events into virtual gamepad state
// Terminals report key presses only, so keyboard input is latched for a hold window
package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/setanarut/vec"
)

// DefaultHold is how long a key press keeps its control engaged without a repeat
const DefaultHold = 180 * time.Millisecond

// Players with a keyboard layout
const Players = 2

// binding is what one key drives on one controller
type binding struct {
	player int
	button Button
	axis   Axis
	value  int16
	isAxis bool
}

type latch struct {
	binding
	until time.Time
}

// State is the input snapshot minigames read each frame
type State struct {
	Controllers []ControllerState
	Quit        bool
	Pause       bool

	keyboard bool
	deadzone int
	hold     time.Duration

	runes   map[rune]binding
	keys    map[tcell.Key]binding
	latched map[binding]latch
}

// NewState creates Players controllers; keyboard enables the key layouts
func NewState(keyboard bool, deadzone int) *State {
	s := &State{
		Controllers: make([]ControllerState, Players),
		keyboard:    keyboard,
		deadzone:    deadzone,
		hold:        DefaultHold,
		latched:     make(map[binding]latch),
	}
	for i := range s.Controllers {
		s.Controllers[i].ID = i
	}
	s.runes, s.keys = defaultBindings()
	return s
}

// SetHold changes the key latch window
func (s *State) SetHold(d time.Duration) {
	s.hold = d
}

func axisBinding(player int, a Axis, v int16) binding {
	return binding{player: player, axis: a, value: v, isAxis: true}
}

func buttonBinding(player int, b Button) binding {
	return binding{player: player, button: b}
}

// defaultBindings maps player 1 to WASD and player 2 to the arrow keys
func defaultBindings() (map[rune]binding, map[tcell.Key]binding) {
	runes := map[rune]binding{
		'w': axisBinding(0, AxisLeftY, -AxisMax),
		's': axisBinding(0, AxisLeftY, AxisMax),
		'a': axisBinding(0, AxisLeftX, -AxisMax),
		'd': axisBinding(0, AxisLeftX, AxisMax),
		' ': buttonBinding(0, ButtonA),
		'e': buttonBinding(0, ButtonB),
		'r': buttonBinding(0, ButtonStart),

		'i': axisBinding(1, AxisRightY, -AxisMax),
		'k': axisBinding(1, AxisRightY, AxisMax),
		'j': axisBinding(1, AxisRightX, -AxisMax),
		'l': axisBinding(1, AxisRightX, AxisMax),
		'0': buttonBinding(1, ButtonB),
	}
	keys := map[tcell.Key]binding{
		tcell.KeyUp:    axisBinding(1, AxisLeftY, -AxisMax),
		tcell.KeyDown:  axisBinding(1, AxisLeftY, AxisMax),
		tcell.KeyLeft:  axisBinding(1, AxisLeftX, -AxisMax),
		tcell.KeyRight: axisBinding(1, AxisLeftX, AxisMax),
		tcell.KeyEnter: buttonBinding(1, ButtonA),
	}
	return runes, keys
}

// HandleEvent applies ev at time now; returns false once quit was requested
func (s *State) HandleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return !s.Quit
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.Quit = true
		return false
	case tcell.KeyRune:
		r := key.Rune()
		if r == 'q' {
			s.Quit = true
			return false
		}
		if r == 'p' {
			s.Pause = !s.Pause
			return true
		}
		if b, ok := s.runes[toLower(r)]; ok && s.keyboard {
			s.press(b, now)
		}
	default:
		if b, ok := s.keys[key.Key()]; ok && s.keyboard {
			s.press(b, now)
		}
	}
	return true
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func (s *State) press(b binding, now time.Time) {
	s.apply(b, true)
	s.latched[b] = latch{binding: b, until: now.Add(s.hold)}
}

func (s *State) apply(b binding, down bool) {
	if b.player >= len(s.Controllers) {
		return
	}
	c := &s.Controllers[b.player]
	if !b.isAxis {
		c.SetButton(b.button, down)
		return
	}
	switch {
	case down:
		c.SetAxis(b.axis, b.value)
	case c.Axis(b.axis) == b.value:
		// Only center if the opposite direction has not taken over
		c.SetAxis(b.axis, 0)
	}
}

// Tick releases latched keys whose hold window ended before now
func (s *State) Tick(now time.Time) {
	for b, l := range s.latched {
		if now.After(l.until) {
			s.apply(b, false)
			delete(s.latched, b)
		}
	}
}

// Controller returns controller i or nil
func (s *State) Controller(i int) *ControllerState {
	if i < 0 || i >= len(s.Controllers) {
		return nil
	}
	return &s.Controllers[i]
}

// StickVector returns controller i's left stick in world orientation (y up), deadzone applied
// Magnitude is at most 1
func (s *State) StickVector(i int) vec.Vec2 {
	return s.stick(i, AxisLeftX, AxisLeftY)
}

// RightStickVector is StickVector for the right stick
func (s *State) RightStickVector(i int) vec.Vec2 {
	return s.stick(i, AxisRightX, AxisRightY)
}

func (s *State) stick(i int, ax, ay Axis) vec.Vec2 {
	c := s.Controller(i)
	if c == nil {
		return vec.Vec2{}
	}
	x := ApplyDeadzone(c.Axis(ax), s.deadzone)
	y := ApplyDeadzone(c.Axis(ay), s.deadzone)
	v := vec.Vec2{X: float64(x) / AxisMax, Y: -float64(y) / AxisMax}
	if v.Mag() > 1 {
		return v.Unit()
	}
	return v
}
