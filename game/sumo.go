package game

import (
	"fmt"
	"log"

	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/audio"
	"github.com/lixenwraith/zoo-spree/input"
	"github.com/lixenwraith/zoo-spree/physics"
	"github.com/lixenwraith/zoo-spree/render"
	"github.com/lixenwraith/zoo-spree/status"
)

const (
	SumoName = "sumo"

	sumoPushForce   = 40.0
	sumoLeashLength = 4.0
	// sumoRingOutY is the height below which an animal off the platform is out
	sumoRingOutY = -4.0
	// sumoRoundPause is the number of steps between a ring-out and the next round
	sumoRoundPause = 60

	platformHalfWidth  = 6.0
	platformHalfHeight = 0.5
	platformY          = -2.0

	leashTag = "leash"
)

var (
	sumoViewLo = vec.Vec2{X: -10, Y: -8}
	sumoViewHi = vec.Vec2{X: 10, Y: 6}
)

// animal is one player's body blueprint
type animal struct {
	name  string
	shape Shape
	spawn physics.Vec2
}

var animals = [2]animal{
	{
		name:  "elephant",
		shape: boxShape(0.8, 0.6, render.RGBGray),
		spawn: physics.V(-3, platformY+platformHalfHeight+0.65),
	},
	{
		name: "giraffe",
		shape: Shape{
			Vertices: []vec.Vec2{{X: -0.6, Y: -0.6}, {X: 0.6, Y: -0.6}, {X: 0.3, Y: 0.8}, {X: -0.3, Y: 0.8}},
			Color:    render.RGBYellow,
		},
		spawn: physics.V(3, platformY+platformHalfHeight+0.65),
	},
}

// sumoWorld tags bodies with an animal or "platform" and joints with their role
type sumoWorld = physics.World[string, physics.NoUserData, string]

// Sumo pits two animals on a platform; pushing the other off scores a point
type Sumo struct {
	world *sumoWorld
	opts  Options

	platform object
	players  [2]object
	scores   [2]int
	round    int

	leash   physics.JointHandle
	leashOn bool
	prevA   [2]bool
	pause   int
	lastOut int
	view    [2]int
}

var _ MiniGame = (*Sumo)(nil)

// NewSumo builds the platform and the first round
func NewSumo(opts Options) (*Sumo, error) {
	if opts.Sounds == nil {
		opts.Sounds = NopSounds{}
	}
	s := &Sumo{
		world:   physics.New[string, physics.NoUserData, string](opts.Physics.Gravity()),
		opts:    opts,
		lastOut: -1,
	}

	platform, err := spawn(s.world, boxShape(platformHalfWidth, platformHalfHeight, render.RGBGreen),
		staticAt(physics.V(0, platformY)), "platform")
	if err != nil {
		s.world.Close()
		return nil, err
	}
	s.platform = platform

	if err := s.spawnPlayers(); err != nil {
		s.world.Close()
		return nil, err
	}
	s.world.SetContactListener(audio.NewImpactListener(opts.Sounds, audio.WorldProbe(s.world)))
	return s, nil
}

func staticAt(p physics.Vec2) physics.BodyDef {
	def := physics.DefaultBodyDef()
	def.Position = p
	return def
}

func (s *Sumo) spawnPlayers() error {
	for i, a := range animals {
		o, err := spawn(s.world, a.shape, physics.DynamicBodyDef(a.spawn), a.name)
		if err != nil {
			return fmt.Errorf("spawn %s: %w", a.name, err)
		}
		s.players[i] = o
	}
	s.round++
	return nil
}

func (s *Sumo) Name() string { return SumoName }

// Step advances one physics step and the round state
func (s *Sumo) Step(in *input.State) {
	p := s.opts.Physics
	s.world.Step(p.TimeStep, p.VelocityIterations, p.PositionIterations)

	if s.pause > 0 {
		s.pause--
		if s.pause == 0 {
			s.newRound()
		}
		return
	}

	// Presses on the same step from both players count as one toggle
	toggle := false
	for i := range s.players {
		c := in.Controller(i)
		a := c != nil && c.Button(input.ButtonA)
		toggle = toggle || (a && !s.prevA[i])
		s.prevA[i] = a
	}
	if toggle {
		s.toggleLeash()
	}

	for i := range s.players {
		force := in.StickVector(i).Scale(sumoPushForce)
		ref := s.world.BodyMut(s.players[i].body)
		ref.Get().ApplyForceToCenter(render.ToPhysics(force), true)
		ref.Release()
	}

	out := [2]bool{s.isOut(0), s.isOut(1)}
	switch {
	case out[0] && out[1]:
		s.endRound(-1)
	case out[0]:
		s.endRound(0)
	case out[1]:
		s.endRound(1)
	}
}

// isOut reports whether player i fell below the ring line without touching the platform
func (s *Sumo) isOut(i int) bool {
	ref := s.world.Body(s.players[i].body)
	defer ref.Release()
	b := ref.Get()
	if b.Position().Y >= sumoRingOutY {
		return false
	}
	for other, c := range b.Contacts() {
		if other == s.platform.body && c.IsTouching() {
			return false
		}
	}
	return true
}

// endRound scores against loser (-1 for both out) and starts the pause
func (s *Sumo) endRound(loser int) {
	if loser >= 0 {
		s.scores[1-loser]++
		log.Printf("sumo: round %d, %s out", s.round, animals[loser].name)
	} else {
		log.Printf("sumo: round %d, both out", s.round)
	}
	s.lastOut = loser
	s.pause = sumoRoundPause
	s.opts.Sounds.PlayRingOut()
}

// newRound replaces both animals; destroying them also drops the leash
func (s *Sumo) newRound() {
	for _, o := range s.players {
		s.world.DestroyBody(o.body)
	}
	s.leashOn = false
	s.lastOut = -1
	if err := s.spawnPlayers(); err != nil {
		// Shapes are fixed and valid, so this is a programming error
		panic(err)
	}
	s.opts.Sounds.PlayRoundStart()
}

// toggleLeash ties the animals together with a rope or cuts it
func (s *Sumo) toggleLeash() {
	if s.leashOn && s.world.HasJoint(s.leash) {
		s.world.DestroyJoint(s.leash)
		s.leashOn = false
		return
	}
	def := &physics.RopeJointDef{
		JointBase: physics.JointBase{
			BodyA:            s.players[0].body,
			BodyB:            s.players[1].body,
			CollideConnected: true,
		},
		MaxLength: sumoLeashLength,
	}
	s.leash = s.world.CreateJointWith(def, leashTag)
	s.leashOn = true
}

func (s *Sumo) Render(c *render.Canvas) {
	fitCamera(c, sumoViewLo, sumoViewHi, &s.view)

	objs := []object{s.platform, s.players[0], s.players[1]}
	drawObjects(c, s.world, objs)

	if s.leashOn {
		if ref, ok := s.world.TryJoint(s.leash); ok {
			j := ref.Get()
			c.DrawSegment(render.ToVec(j.AnchorA()), render.ToVec(j.AnchorB()), render.GlyphLine, render.RGBWhite.Style())
			ref.Release()
		}
	}

	if s.opts.Draw != 0 {
		s.world.DrawDebugData(render.NewDebugDraw(c), s.opts.Draw)
	}

	score := fmt.Sprintf("%s %d : %d %s   round %d", animals[0].name, s.scores[0], s.scores[1], animals[1].name, s.round)
	c.DrawText(0, 1, score, render.RGBWhite.Style())
	if s.pause > 0 {
		msg := "RING OUT"
		if s.lastOut >= 0 {
			msg = animals[s.lastOut].name + " is out!"
		}
		w, _ := c.Size()
		c.DrawText(max(0, (w-len(msg))/2), 2, msg, render.RGBRed.Style())
	}
}

// Scores returns the points of both players
func (s *Sumo) Scores() [2]int { return s.scores }

// Round is the 1-based round number
func (s *Sumo) Round() int { return s.round }

// Player returns the current body of player i
func (s *Sumo) Player(i int) physics.BodyHandle { return s.players[i].body }

// Leashed reports whether the rope joint is in place
func (s *Sumo) Leashed() bool { return s.leashOn }

func (s *Sumo) Counters() status.WorldCounter { return s.world }

func (s *Sumo) Close() { s.world.Close() }
