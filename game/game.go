// Package game holds the minigames: physics scenes driven by controller input
package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/config"
	"github.com/lixenwraith/zoo-spree/input"
	"github.com/lixenwraith/zoo-spree/physics"
	"github.com/lixenwraith/zoo-spree/render"
	"github.com/lixenwraith/zoo-spree/status"
)

// MiniGame is one self-contained scene; Step advances one physics step
type MiniGame interface {
	Name() string
	Step(in *input.State)
	Render(c *render.Canvas)
	Counters() status.WorldCounter
	Close()
}

// Sounds is the audio a minigame triggers
type Sounds interface {
	PlayImpact(strength float64)
	PlayRingOut()
	PlayRoundStart()
}

// NopSounds plays nothing
type NopSounds struct{}

func (NopSounds) PlayImpact(float64) {}
func (NopSounds) PlayRingOut()       {}
func (NopSounds) PlayRoundStart()    {}

// Options configure a minigame at construction
type Options struct {
	Physics config.PhysicsConfig
	// Draw selects debug overlays; zero draws only the game's own shapes
	Draw   physics.DrawFlags
	Sounds Sounds
}

// DefaultOptions uses default physics settings and no audio
func DefaultOptions() Options {
	return Options{
		Physics: config.Default().Physics,
		Sounds:  NopSounds{},
	}
}

// StepDuration is the physics time step as a duration
func (o Options) StepDuration() time.Duration {
	return time.Duration(o.Physics.TimeStep * float64(time.Second))
}

// ErrUnknownGame is returned by New for names not in Names
var ErrUnknownGame = errors.New("unknown minigame")

var constructors = map[string]func(Options) (MiniGame, error){
	SandboxName: func(o Options) (MiniGame, error) { return NewSandbox(o) },
	SumoName:    func(o Options) (MiniGame, error) { return NewSumo(o) },
}

// Names lists the registered minigames in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// New builds the minigame registered under name
func New(name string, opts Options) (MiniGame, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, Names(), ErrUnknownGame)
	}
	if opts.Sounds == nil {
		opts.Sounds = NopSounds{}
	}
	return ctor(opts)
}

// Shape is a convex outline in body-local coordinates with its fill color
type Shape struct {
	Vertices []vec.Vec2
	Color    render.RGB
}

// Physics builds the collision polygon for the outline
func (s Shape) Physics() (physics.Shape, error) {
	vs := make([]physics.Vec2, len(s.Vertices))
	for i, v := range s.Vertices {
		vs[i] = render.ToPhysics(v)
	}
	return physics.NewPolygon(vs)
}

// boxShape is an axis-aligned rectangle centered on the body origin
func boxShape(hw, hh float64, color render.RGB) Shape {
	return Shape{
		Vertices: []vec.Vec2{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}},
		Color:    color,
	}
}

// object pairs a body with the outline drawn for it
type object struct {
	shape Shape
	body  physics.BodyHandle
}

// spawn creates a body with a single polygon fixture for shape
func spawn[B, F, J any](w *physics.World[B, F, J], shape Shape, def physics.BodyDef, data B) (object, error) {
	poly, err := shape.Physics()
	if err != nil {
		return object{}, err
	}
	h := w.CreateBodyWith(&def, data)
	ref := w.BodyMut(h)
	fd := physics.DefaultFixtureDef()
	fd.Density = 1
	fd.Friction = 0.3
	ref.Get().CreateFixture(poly, fd)
	ref.Release()
	return object{shape: shape, body: h}, nil
}

// drawObjects fills every live object at its body transform
func drawObjects[B, F, J any](c *render.Canvas, w *physics.World[B, F, J], objs []object) {
	for _, o := range objs {
		ref, ok := w.TryBody(o.body)
		if !ok {
			continue
		}
		xf := ref.Get().Transform()
		ref.Release()
		c.DrawShape(o.shape.Vertices, xf, render.GlyphFill, o.shape.Color.Style())
	}
}

// fitCamera frames the world box when the viewport changed
func fitCamera(c *render.Canvas, lo, hi vec.Vec2, last *[2]int) {
	w, h := c.Size()
	if last[0] == w && last[1] == h {
		return
	}
	*last = [2]int{w, h}
	c.Camera.Fit(lo, hi)
}
