package game

import (
	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/input"
	"github.com/lixenwraith/zoo-spree/physics"
	"github.com/lixenwraith/zoo-spree/render"
	"github.com/lixenwraith/zoo-spree/status"
)

const (
	SandboxName = "sandbox"

	// sandboxForce is the push at full stick deflection
	sandboxForce = 11.0
	// sandboxFloor is where a fallen triangle respawns
	sandboxFloor = -20.0
)

var (
	sandboxViewLo = vec.Vec2{X: -4, Y: -3}
	sandboxViewHi = vec.Vec2{X: 4, Y: 3}
)

// Sandbox is a single triangle pushed around by the first controller above a static wedge
type Sandbox struct {
	world   *physics.SimpleWorld
	opts    Options
	objects []object
	player  physics.BodyHandle
	view    [2]int
}

var _ MiniGame = (*Sandbox)(nil)

// NewSandbox builds the triangle scene
func NewSandbox(opts Options) (*Sandbox, error) {
	s := &Sandbox{
		world: physics.NewWorld(opts.Physics.Gravity()),
		opts:  opts,
	}

	player, err := spawn(s.world, Shape{
		Vertices: []vec.Vec2{{X: -0.5, Y: 0.5}, {X: 0.6, Y: 0.5}, {X: 0, Y: 0}},
		Color:    render.RGBBlue,
	}, physics.DynamicBodyDef(physics.V(0, 0)), physics.NoUserData{})
	if err != nil {
		s.world.Close()
		return nil, err
	}
	s.player = player.body

	border, err := spawn(s.world, Shape{
		Vertices: []vec.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: -2}},
		Color:    render.RGBGreen,
	}, physics.DefaultBodyDef(), physics.NoUserData{})
	if err != nil {
		s.world.Close()
		return nil, err
	}

	s.objects = []object{player, border}
	return s, nil
}

func (s *Sandbox) Name() string { return SandboxName }

// Step advances the world, then applies the stick force for the next step
func (s *Sandbox) Step(in *input.State) {
	p := s.opts.Physics
	s.world.Step(p.TimeStep, p.VelocityIterations, p.PositionIterations)

	ref := s.world.BodyMut(s.player)
	defer ref.Release()
	b := ref.Get()

	if b.Position().Y < sandboxFloor {
		b.SetTransform(physics.V(0, 0), 0)
		b.SetLinearVelocity(physics.V(0, 0))
		b.SetAngularVelocity(0)
	}

	force := in.StickVector(0).Scale(sandboxForce)
	b.ApplyForceToCenter(render.ToPhysics(force), true)
}

func (s *Sandbox) Render(c *render.Canvas) {
	fitCamera(c, sandboxViewLo, sandboxViewHi, &s.view)
	drawObjects(c, s.world, s.objects)
	if s.opts.Draw != 0 {
		s.world.DrawDebugData(render.NewDebugDraw(c), s.opts.Draw)
	}
}

// PlayerPosition reports the triangle's origin
func (s *Sandbox) PlayerPosition() physics.Vec2 {
	ref := s.world.Body(s.player)
	defer ref.Release()
	return ref.Get().Position()
}

func (s *Sandbox) Counters() status.WorldCounter { return s.world }

func (s *Sandbox) Close() { s.world.Close() }
