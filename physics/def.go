package physics

import "github.com/ByteArena/box2d"

// BodyDef holds the construction parameters of a body
type BodyDef struct {
	Type            BodyType
	Position        Vec2
	Angle           float64
	LinearVelocity  Vec2
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	AllowSleep      bool
	Awake           bool
	FixedRotation   bool
	Bullet          bool
	Active          bool
	GravityScale    float64
}

// DefaultBodyDef returns a static, awake, active body at the origin
func DefaultBodyDef() BodyDef {
	return BodyDef{
		Type:         StaticBody,
		AllowSleep:   true,
		Awake:        true,
		Active:       true,
		GravityScale: 1,
	}
}

// DynamicBodyDef returns the default definition with dynamic type at position
func DynamicBodyDef(position Vec2) BodyDef {
	def := DefaultBodyDef()
	def.Type = DynamicBody
	def.Position = position
	return def
}

func (d *BodyDef) native() box2d.B2BodyDef {
	n := box2d.MakeB2BodyDef()
	n.Type = uint8(d.Type)
	n.Position = d.Position
	n.Angle = d.Angle
	n.LinearVelocity = d.LinearVelocity
	n.AngularVelocity = d.AngularVelocity
	n.LinearDamping = d.LinearDamping
	n.AngularDamping = d.AngularDamping
	n.AllowSleep = d.AllowSleep
	n.Awake = d.Awake
	n.FixedRotation = d.FixedRotation
	n.Bullet = d.Bullet
	n.Active = d.Active
	n.GravityScale = d.GravityScale
	return n
}

// FixtureDef holds the material and filtering of a fixture; the shape is passed separately
type FixtureDef struct {
	Density     float64
	Friction    float64
	Restitution float64
	IsSensor    bool
	Filter      Filter
}

// DefaultFilter collides with everything in category 1
func DefaultFilter() Filter {
	return box2d.MakeB2Filter()
}

// DefaultFixtureDef returns zero density, 0.2 friction and the default filter
func DefaultFixtureDef() FixtureDef {
	return FixtureDef{
		Friction: 0.2,
		Filter:   DefaultFilter(),
	}
}

func (d *FixtureDef) native(shape Shape) box2d.B2FixtureDef {
	n := box2d.MakeB2FixtureDef()
	n.Shape = shape.native
	n.Density = d.Density
	n.Friction = d.Friction
	n.Restitution = d.Restitution
	n.IsSensor = d.IsSensor
	n.Filter = d.Filter
	return n
}
